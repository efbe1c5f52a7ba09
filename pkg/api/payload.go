package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

// Payload is a decoded request body. JSON objects and urlencoded forms
// both decode to it; form values are kept as strings.
type Payload map[string]any

type payloadKey struct{}

// PayloadFrom returns the payload decoded by the body stage, or an empty
// payload when there was none.
func PayloadFrom(r *http.Request) Payload {
	if p, ok := r.Context().Value(payloadKey{}).(Payload); ok {
		return p
	}
	return Payload{}
}

// String returns the value for key when it is truthy: a non-empty string,
// a non-zero number or true.
func (p Payload) String(key string) (string, bool) {
	switch v := p[key].(type) {
	case string:
		return v, v != ""
	case float64:
		if v == 0 {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		if !v {
			return "", false
		}
		return "true", true
	default:
		return "", false
	}
}

// Int returns the value for key when it is truthy and starts with an
// integer. Fractions are truncated and strings are read up to the first
// non-digit, so form submissions work the same as JSON numbers.
func (p Payload) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case float64:
		if v == 0 || math.Abs(v) > math.MaxInt32 {
			return 0, false
		}
		return int(math.Trunc(v)), true
	case string:
		return leadingInt(v)
	default:
		return 0, false
	}
}

// decodeBody is the first pipeline stage. It never rejects a request for
// having no body or an unknown content type; it only fails on bodies it
// cannot read.
func (s *Server) decodeBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, err := readPayload(w, r)
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), payloadKey{}, payload)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func readPayload(w http.ResponseWriter, r *http.Request) (Payload, error) {
	payload := Payload{}
	if r.Body == nil || r.Body == http.NoBody {
		return payload, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" && mediaType != "application/x-www-form-urlencoded" {
		return payload, nil
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, NewError(http.StatusRequestEntityTooLarge, "Payload Too Large")
		}
		return nil, BadRequest("Unable to read request body")
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return payload, nil
	}

	if mediaType == "application/json" {
		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return nil, BadRequest("Invalid JSON body")
		}
		if obj, ok := decoded.(map[string]any); ok {
			payload = obj
		}
		return payload, nil
	}

	values, err := url.ParseQuery(string(data))
	if err != nil {
		return nil, BadRequest("Invalid form body")
	}
	for k, v := range values {
		if len(v) > 0 {
			payload[k] = v[0]
		}
	}
	return payload, nil
}
