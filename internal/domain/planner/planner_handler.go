package planner

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/weekendly/weekendly-api/internal/domain/planner/presenter"
	"github.com/weekendly/weekendly-api/internal/types"
)

// Handler serves the weekend-plan HTTP endpoint.
type Handler struct {
	service         Service
	fallbackEnabled bool
	logger          *slog.Logger
}

// NewHandler creates a new Handler. With fallbackEnabled the endpoint always
// resolves to a plan; without it, generator failures surface as 5xx.
func NewHandler(service Service, fallbackEnabled bool, logger *slog.Logger) *Handler {
	return &Handler{
		service:         service,
		fallbackEnabled: fallbackEnabled,
		logger:          logger,
	}
}

type planRequest struct {
	Form *types.WeekendForm `json:"form"`
}

// CreateWeekendPlan handles POST /api/weekend-plan.
func (h *Handler) CreateWeekendPlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Form == nil || strings.TrimSpace(req.Form.City) == "" {
		writeError(w, http.StatusBadRequest, "Missing form data")
		return
	}

	form := req.Form.Normalize()

	var (
		itinerary *types.WeekendItinerary
		err       error
	)
	if h.fallbackEnabled {
		itinerary, err = h.service.Generate(r.Context(), form)
	} else {
		itinerary, err = h.service.GenerateStrict(r.Context(), form)
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(presenter.ToText(itinerary)))
		return
	}

	writeJSON(w, http.StatusOK, presenter.ToPlanResponse(itinerary))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, types.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "Missing form data")
	case errors.Is(err, types.ErrResponseMalformed):
		writeError(w, http.StatusInternalServerError, "Failed to parse AI response")
	default:
		h.logger.ErrorContext(r.Context(), "weekend plan generation failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "AI backend error")
	}
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
