package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"

	"github.com/weekendly/weekendly-api/internal/llm"
	"github.com/weekendly/weekendly-api/internal/types"
	"github.com/weekendly/weekendly-api/pkg/observability"
)

const defaultTemperature = 0.7

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for weekend plan generation.
type Service interface {
	// Generate always resolves to a usable itinerary: any failure of the
	// generator path is recovered via the local fallback. The only error it
	// returns is an invalid form (empty city).
	Generate(ctx context.Context, form types.WeekendForm) (*types.WeekendItinerary, error)
	// GenerateStrict runs the same pipeline but surfaces failures as typed
	// errors instead of falling back, for callers that own their own error
	// contract.
	GenerateStrict(ctx context.Context, form types.WeekendForm) (*types.WeekendItinerary, error)
}

// ServiceImpl provides the implementation for Service.
type ServiceImpl struct {
	logger      *slog.Logger
	aiClient    llm.ChatClient
	temperature float32
	cache       *cache.Cache
	group       singleflight.Group
}

// NewService creates a new planner service. The LLM client is injected so
// tests can substitute a fake generator.
func NewService(aiClient llm.ChatClient, temperature float32, cacheTTL time.Duration, logger *slog.Logger) *ServiceImpl {
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return &ServiceImpl{
		logger:      logger,
		aiClient:    aiClient,
		temperature: temperature,
		cache:       cache.New(cacheTTL, cacheTTL/2+time.Minute),
	}
}

func (s *ServiceImpl) Generate(ctx context.Context, form types.WeekendForm) (*types.WeekendItinerary, error) {
	form = form.Normalize()
	if form.City == "" {
		return nil, fmt.Errorf("%w: %s", types.ErrBadRequest, types.ErrMissingCity)
	}

	itinerary, err := s.GenerateStrict(ctx, form)
	if err == nil {
		return itinerary, nil
	}

	s.logger.WarnContext(ctx, "generator path failed, serving fallback itinerary",
		slog.String("city", form.City),
		slog.String("days", string(form.Days)),
		slog.Any("error", err))
	observability.PlansGenerated.WithLabelValues(observability.OutcomeFallback).Inc()

	return fallbackItinerary(form), nil
}

func (s *ServiceImpl) GenerateStrict(ctx context.Context, form types.WeekendForm) (*types.WeekendItinerary, error) {
	form = form.Normalize()
	if form.City == "" {
		return nil, fmt.Errorf("%w: %s", types.ErrBadRequest, types.ErrMissingCity)
	}

	key := formFingerprint(form)
	if cached, found := s.cache.Get(key); found {
		if itinerary, ok := cached.(*types.WeekendItinerary); ok {
			return itinerary, nil
		}
	}

	// Collapse concurrent identical requests into a single generator call.
	result, err, _ := s.group.Do(key, func() (any, error) {
		return s.generateFromModel(ctx, form, key)
	})
	if err != nil {
		return nil, err
	}
	return result.(*types.WeekendItinerary), nil
}

func (s *ServiceImpl) generateFromModel(ctx context.Context, form types.WeekendForm, cacheKey string) (*types.WeekendItinerary, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "generateFromModel")
	defer span.End()
	span.SetAttributes(
		attribute.String("form.city", form.City),
		attribute.String("form.mood", string(form.Mood)),
		attribute.String("form.group", string(form.Group)),
		attribute.String("form.days", string(form.Days)),
	)

	interactionID := uuid.New()
	request := buildGenerationRequest(form, s.temperature)
	prompt := request.SystemInstruction + "\n\n" + request.UserPrompt
	span.SetAttributes(attribute.Int("prompt.length", len(prompt)))

	startTime := time.Now()
	// Single attempt, no retry: the first failure hands control to the caller.
	response, err := s.aiClient.GenerateResponse(ctx, prompt, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](request.Temperature),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "AI generation failed")
		s.logger.ErrorContext(ctx, "AI generation failed",
			slog.String("interaction_id", interactionID.String()),
			slog.String("city", form.City),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", types.ErrUpstreamUnavailable, err)
	}
	span.SetAttributes(attribute.Int64("generation.duration_ms", time.Since(startTime).Milliseconds()))
	observability.GenerationDuration.Observe(time.Since(startTime).Seconds())

	txt := llm.ResponseText(response)
	if txt == "" {
		err := fmt.Errorf("%w: no content in model response", types.ErrUpstreamUnavailable)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty response from AI")
		return nil, err
	}
	span.SetAttributes(attribute.Int("response.length", len(txt)))

	itinerary, err := parseItinerary(txt, form)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			s.logger.WarnContext(ctx, "model response failed validation",
				slog.String("interaction_id", interactionID.String()),
				slog.String("kind", string(vErr.Kind)),
				slog.String("field", vErr.Field))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to validate itinerary JSON")
		return nil, fmt.Errorf("%w: %w", types.ErrResponseMalformed, err)
	}

	span.SetStatus(codes.Ok, "Itinerary generated")
	s.logger.InfoContext(ctx, "itinerary generated",
		slog.String("interaction_id", interactionID.String()),
		slog.String("model", s.aiClient.Model()),
		slog.String("city", itinerary.City),
		slog.Int("days", len(itinerary.Days)))
	observability.PlansGenerated.WithLabelValues(observability.OutcomeAI).Inc()

	s.cache.Set(cacheKey, itinerary, cache.DefaultExpiration)
	return itinerary, nil
}

func formFingerprint(form types.WeekendForm) string {
	return fmt.Sprintf("plan:%s:%s:%s:%s:%s", form.City, form.Group, form.Mood, form.Budget, form.Days)
}
