package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration, parsed from the environment.
type Config struct {
	Server        ServerConfig
	LLM           LLMConfig
	Planner       PlannerConfig
	Observability ObservabilityConfig

	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

type ServerConfig struct {
	Addr               string   `env:"HTTP_ADDR" envDefault:":8080"`
	RateLimitPerSecond int      `env:"RATE_LIMIT_PER_SECOND" envDefault:"10"`
	RateLimitBurst     int      `env:"RATE_LIMIT_BURST" envDefault:"20"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

type LLMConfig struct {
	// APIKey is required unless the planner runs in fallback-only mode.
	APIKey      string  `env:"GEMINI_API_KEY"`
	Temperature float32 `env:"LLM_TEMPERATURE" envDefault:"0.7"`
}

type PlannerConfig struct {
	// FallbackEnabled makes POST /api/weekend-plan always answer 200 with a
	// locally generated plan when the generator path fails. Disabled, the
	// endpoint surfaces raw 5xx errors instead.
	FallbackEnabled bool          `env:"PLANNER_FALLBACK_ENABLED" envDefault:"true"`
	CacheTTL        time.Duration `env:"PLANNER_CACHE_TTL" envDefault:"30m"`
}

type ObservabilityConfig struct {
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
