package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// NewRateLimitMiddleware rejects requests over the configured rate with 429.
// The limiter is process-wide; it guards the LLM quota, not per-client fairness.
func NewRateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
