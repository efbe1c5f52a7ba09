package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"miniblog/pkg/store"
)

// intFilter is an optional integer match taken from a query parameter or
// path segment. An empty parameter means no filter; one with no leading
// integer is still a filter, and matches nothing.
type intFilter struct {
	set   bool
	valid bool
	value int
}

func parseFilter(raw string) intFilter {
	if raw == "" {
		return intFilter{}
	}
	n, ok := leadingInt(raw)
	return intFilter{set: true, valid: ok, value: n}
}

// leadingInt reads the integer at the start of s after leading whitespace,
// ignoring anything that follows it: "12abc" is 12, "abc" is not a number.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

func queryFilter(r *http.Request, name string) intFilter {
	return parseFilter(r.URL.Query().Get(name))
}

// pathFilter always filters, even on an empty segment.
func pathFilter(r *http.Request, name string) intFilter {
	f := parseFilter(chi.URLParam(r, name))
	f.set = true
	return f
}

// orAll drops a filter that holds no number, so it matches everything.
func (f intFilter) orAll() intFilter {
	if !f.valid {
		return intFilter{}
	}
	return f
}

func (f intFilter) match(v int) bool {
	if !f.set {
		return true
	}
	return f.valid && v == f.value
}

// pathID parses the {id} segment. ok is false when it does not start with
// an integer, which callers report as not found.
func pathID(r *http.Request) (int, bool) {
	return leadingInt(chi.URLParam(r, "id"))
}

// storeError maps store.ErrNotFound to a 404 carrying message.
func storeError(err error, message string) error {
	if errors.Is(err, store.ErrNotFound) {
		return NotFound(message)
	}
	return err
}
