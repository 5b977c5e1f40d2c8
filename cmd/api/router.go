package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/weekendly/weekendly-api/pkg/middleware"
	"github.com/weekendly/weekendly-api/pkg/observability"
)

// SetupRouter configures all routes and returns the HTTP handler.
func SetupRouter(deps *Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewRecoveryMiddleware(deps.Logger))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	if deps.Config.Observability.MetricsEnabled {
		r.Use(observability.NewMetricsMiddleware())
	}

	if deps.Config.Server.RateLimitPerSecond > 0 && deps.Config.Server.RateLimitBurst > 0 {
		limiter := rate.NewLimiter(
			rate.Limit(float64(deps.Config.Server.RateLimitPerSecond)),
			deps.Config.Server.RateLimitBurst,
		)
		r.Use(middleware.NewRateLimitMiddleware(limiter))
	}

	// Non-POST on the plan endpoint must answer 405.
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	registerPlannerRoutes(r, deps)
	registerUtilityRoutes(r, deps)

	// Enable CORS for browser clients (local frontend)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: deps.Config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept-Encoding",
			"Content-Type",
			middleware.RequestIDHeader,
		},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	return corsHandler.Handler(r)
}

// registerPlannerRoutes registers the plan generation endpoint.
func registerPlannerRoutes(r chi.Router, deps *Dependencies) {
	r.Post("/api/weekend-plan", deps.PlannerHandler.CreateWeekendPlan)
	deps.Logger.Info("registered planner route", "path", "/api/weekend-plan")
}

// registerUtilityRoutes registers health check, metrics, and other utility routes
func registerUtilityRoutes(r chi.Router, deps *Dependencies) {
	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	deps.Logger.Info("registered health check", "path", "/health")

	// Readiness check endpoint
	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})
	deps.Logger.Info("registered readiness check", "path", "/ready")

	// Metrics endpoint (Prometheus)
	if deps.Config.Observability.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
		deps.Logger.Info("registered metrics endpoint", "path", "/metrics")
	}
}
