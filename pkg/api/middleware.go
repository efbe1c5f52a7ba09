package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type apiKeyKey struct{}

// KeyFrom returns the API key accepted by the gate for this request.
func KeyFrom(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(apiKeyKey{}).(string)
	return key, ok
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		log := s.logger().With().Str("request_id", requestID).Logger()
		event := log.Info().
			Str("method", r.Method).
			Str("url", r.URL.RequestURI()).
			Time("received", start)
		if payload := PayloadFrom(r); len(payload) > 0 {
			if data, err := json.Marshal(payload); err == nil {
				event = event.RawJSON("data", data)
			}
		}
		event.Msg("request received")

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(log.WithContext(r.Context())))

		log.Debug().
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// requireAPIKey rejects requests whose api-key query parameter is missing
// or not in keys. Rejected requests stop here.
func (s *Server) requireAPIKey(keys map[string]struct{}) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.URL.Query().Get("api-key")
			s.requestLogger(r).Debug().Str("api_key", key).Msg("api key used")

			if key == "" {
				s.renderError(w, r, BadRequest("API Key Required"))
				return
			}
			if _, ok := keys[key]; !ok {
				s.renderError(w, r, Unauthorized("Invalid API Key"))
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), apiKeyKey{}, key)))
		})
	}
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.renderError(w, r, fmt.Errorf("panic: %v", rec))
		}()
		next.ServeHTTP(w, r)
	})
}
