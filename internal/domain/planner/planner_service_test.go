package planner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/weekendly/weekendly-api/internal/types"
)

// --- Mocks for Dependencies ---

// MockAIClient satisfies llm.ChatClient.
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, prompt, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.GenerateContentResponse), args.Error(1)
}

func (m *MockAIClient) Model() string {
	return "gemini-test"
}

func textResponse(raw string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: raw}}}},
		},
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestService(client *MockAIClient) *ServiceImpl {
	return NewService(client, 0.7, time.Minute, newTestLogger())
}

func TestGenerate_UsesModelResponse(t *testing.T) {
	client := &MockAIClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(validItineraryJSON()), nil).Once()

	svc := newTestService(client)
	itinerary, err := svc.Generate(context.Background(), types.WeekendForm{City: "Lisbon", Days: types.DaySaturday})
	require.NoError(t, err)
	require.Equal(t, "Lisbon", itinerary.City)
	require.Len(t, itinerary.Days, 1)
	client.AssertExpectations(t)
}

func TestGenerate_FallsBackOnUpstreamError(t *testing.T) {
	client := &MockAIClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("rpc deadline exceeded")).Once()

	svc := newTestService(client)
	form := types.WeekendForm{City: "Lisbon", Mood: types.MoodNightlife, Days: types.DayBoth}

	itinerary, err := svc.Generate(context.Background(), form)
	require.NoError(t, err)
	require.Equal(t, fallbackItinerary(form), itinerary)
	client.AssertExpectations(t)
}

func TestGenerate_FallsBackOnMalformedResponse(t *testing.T) {
	client := &MockAIClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse("I'm sorry, I can't help with that."), nil).Once()

	svc := newTestService(client)
	form := types.WeekendForm{City: "Lisbon", Days: types.DaySaturday}

	itinerary, err := svc.Generate(context.Background(), form)
	require.NoError(t, err)
	require.Equal(t, fallbackItinerary(form), itinerary)
}

func TestGenerate_FamilyNightlifeScenario(t *testing.T) {
	// Even when the model emits nightlife for a family group, the caller
	// never sees it: validation rejects the response and the fallback wins.
	raw := `{"city": "Lisbon", "days": [{"label": "Saturday", "summary": "s", "activities": [
		{"time": "09:00", "title": "a", "kind": "coffee", "description": "d"},
		{"time": "12:00", "title": "b", "kind": "food", "description": "d"},
		{"time": "22:00", "title": "c", "kind": "nightlife", "description": "d"}
	]}]}`
	client := &MockAIClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(raw), nil).Once()

	svc := newTestService(client)
	form := types.WeekendForm{City: "Lisbon", Group: types.GroupFamily, Mood: types.MoodNightlife, Budget: types.BudgetMedium, Days: types.DaySaturday}

	itinerary, err := svc.Generate(context.Background(), form)
	require.NoError(t, err)
	require.Len(t, itinerary.Days, 1)
	require.Equal(t, types.DayLabelSaturday, itinerary.Days[0].Label)
	for _, act := range itinerary.Days[0].Activities {
		require.NotEqual(t, types.KindNightlife, act.Kind)
		require.Contains(t, []types.ActivityKind{types.KindFood, types.KindCoffee, types.KindActivity}, act.Kind)
	}
}

func TestGenerate_EmptyCity(t *testing.T) {
	svc := newTestService(&MockAIClient{})

	_, err := svc.Generate(context.Background(), types.WeekendForm{City: "   "})
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrBadRequest)
}

func TestGenerateStrict_TypedErrors(t *testing.T) {
	client := &MockAIClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	svc := newTestService(client)
	_, err := svc.GenerateStrict(context.Background(), types.WeekendForm{City: "Lisbon"})
	require.ErrorIs(t, err, types.ErrUpstreamUnavailable)

	client2 := &MockAIClient{}
	client2.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse("not json"), nil).Once()

	svc2 := newTestService(client2)
	_, err = svc2.GenerateStrict(context.Background(), types.WeekendForm{City: "Lisbon"})
	require.ErrorIs(t, err, types.ErrResponseMalformed)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Equal(t, ValidationMalformed, vErr.Kind)
}

func TestGenerateStrict_CachesByFormFingerprint(t *testing.T) {
	client := &MockAIClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(validItineraryJSON()), nil).Once()

	svc := newTestService(client)
	form := types.WeekendForm{City: "Lisbon", Days: types.DaySaturday}

	first, err := svc.GenerateStrict(context.Background(), form)
	require.NoError(t, err)

	// Second identical request is served from cache; the mock only allows
	// one generator call.
	second, err := svc.GenerateStrict(context.Background(), form)
	require.NoError(t, err)
	require.Equal(t, first, second)
	client.AssertExpectations(t)
}

func TestGenerateStrict_PromptCarriesRules(t *testing.T) {
	var captured string
	client := &MockAIClient{}
	client.On("GenerateResponse", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		captured = prompt
		return true
	}), mock.Anything).Return(textResponse(validItineraryJSON()), nil).Once()

	svc := newTestService(client)
	_, err := svc.GenerateStrict(context.Background(), types.WeekendForm{City: "Lisbon", Group: types.GroupFamily, Days: types.DaySaturday})
	require.NoError(t, err)
	require.Contains(t, captured, "weekend planning assistant")
	require.Contains(t, captured, `NEVER use the "nightlife" kind`)
}
