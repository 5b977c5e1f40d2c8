// Package presenter converts domain itineraries to the wire shapes the
// frontend consumes: the JSON envelope and the plain-text export.
package presenter

import (
	"fmt"
	"strings"

	"github.com/weekendly/weekendly-api/internal/types"
)

// PlanResponse is the success envelope of POST /api/weekend-plan.
type PlanResponse struct {
	Itinerary *types.WeekendItinerary `json:"itinerary"`
}

func ToPlanResponse(itinerary *types.WeekendItinerary) *PlanResponse {
	return &PlanResponse{Itinerary: itinerary}
}

// ToText renders the plain-text export the frontend offers for copy/share.
func ToText(itinerary *types.WeekendItinerary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Weekend in %s\n", itinerary.City)
	for _, day := range itinerary.Days {
		fmt.Fprintf(&b, "\n=== %s ===\n", day.Label)
		if day.Summary != "" {
			b.WriteString(day.Summary)
			b.WriteString("\n")
		}
		for _, act := range day.Activities {
			fmt.Fprintf(&b, "- %s – %s", act.Time, act.Title)
			if act.Area != "" {
				fmt.Fprintf(&b, " (%s)", act.Area)
			}
			if act.PriceLevel != types.BudgetUnset {
				fmt.Fprintf(&b, " [%s]", act.PriceLevel)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
