package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for PlansGenerated.
const (
	OutcomeAI       = "ai"
	OutcomeFallback = "fallback"
)

var (
	// PlansGenerated counts generated itineraries by outcome: served from the
	// model or recovered via the local fallback.
	PlansGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "weekendly_plans_generated_total",
		Help: "Number of weekend plans generated, by outcome.",
	}, []string{"outcome"})

	// GenerationDuration observes wall time of external generator calls.
	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "weekendly_generation_duration_seconds",
		Help:    "Duration of external LLM generation calls.",
		Buckets: prometheus.DefBuckets,
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "weekendly_http_requests_total",
		Help: "HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "weekendly_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// NewMetricsMiddleware records request counts and latency for every route.
func NewMetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			httpRequests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(sw.status)).Inc()
			httpDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}
