package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// NewLoggingMiddleware creates a new logging middleware with payload size tracking
func NewLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			logger.Info("request started", appendLoggerFields(r.Context(),
				"method", r.Method,
				"path", r.URL.Path,
				"peer", r.RemoteAddr,
				"request_size_bytes", r.ContentLength,
			)...)

			cw := &countingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)

			duration := time.Since(start)

			if cw.status >= http.StatusInternalServerError {
				logger.Error("request failed", appendLoggerFields(r.Context(),
					"method", r.Method,
					"path", r.URL.Path,
					"status", cw.status,
					"duration", duration.String(),
					"duration_ms", duration.Milliseconds(),
					"response_size_bytes", cw.bytes,
				)...)
			} else {
				logger.Info("request completed", appendLoggerFields(r.Context(),
					"method", r.Method,
					"path", r.URL.Path,
					"status", cw.status,
					"duration", duration.String(),
					"duration_ms", duration.Milliseconds(),
					"response_size_bytes", cw.bytes,
				)...)
			}
		})
	}
}

func appendLoggerFields(ctx context.Context, base ...any) []any {
	if requestID, ok := RequestIDFromContext(ctx); ok && requestID != "" {
		base = append(base, "request_id", requestID)
	}
	return base
}

type countingWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (w *countingWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}
