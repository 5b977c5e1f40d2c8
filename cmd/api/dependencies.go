package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weekendly/weekendly-api/internal/domain/planner"
	"github.com/weekendly/weekendly-api/internal/llm"
	"github.com/weekendly/weekendly-api/pkg/config"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	// Clients
	AIClient llm.ChatClient

	// Services
	PlannerService planner.Service

	// Handlers
	PlannerHandler *planner.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initClients(ctx); err != nil {
		return nil, fmt.Errorf("failed to init clients: %w", err)
	}

	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	if err := deps.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initClients initializes the external generator client. The credential is
// injected from config rather than read globally so the planner stays
// testable with a fake client.
func (d *Dependencies) initClients(ctx context.Context) error {
	if d.Config.LLM.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}

	aiClient, err := llm.NewGeminiChatClient(ctx, d.Config.LLM.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %w", err)
	}
	d.AIClient = aiClient

	d.Logger.Info("llm client initialized", "model", aiClient.Model())
	return nil
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() error {
	d.PlannerService = planner.NewService(
		d.AIClient,
		d.Config.LLM.Temperature,
		d.Config.Planner.CacheTTL,
		d.Logger,
	)

	d.Logger.Info("services initialized")
	return nil
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() error {
	d.PlannerHandler = planner.NewHandler(d.PlannerService, d.Config.Planner.FallbackEnabled, d.Logger)
	d.Logger.Info("handlers initialized")
	return nil
}
