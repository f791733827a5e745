package middleware

import (
	"net/http"
	"time"
)

// RequestObserver records served requests
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// unmatchedRoute labels requests no mux pattern matched, keeping label
// cardinality bounded
const unmatchedRoute = "unmatched"

// Metrics reports every request under its ServeMux pattern.
// The mux stores the pattern on the request it receives, so Metrics must sit
// after any middleware that replaces the request (RequestID does).
func Metrics(obs RequestObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			route := r.Pattern
			if route == "" {
				route = unmatchedRoute
			}
			obs.ObserveRequest(r.Method, route, wrapped.statusCode, time.Since(start))
		})
	}
}
