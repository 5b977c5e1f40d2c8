package planner

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/weekendly/weekendly-api/internal/types"
)

// ValidationKind tags the two failure modes of the response pipeline.
type ValidationKind string

const (
	// ValidationMalformed means the raw text could not be decoded as JSON at all.
	ValidationMalformed ValidationKind = "malformed"
	// ValidationSchemaMismatch means the decoded object violates the itinerary schema.
	ValidationSchemaMismatch ValidationKind = "schema_mismatch"
)

// ValidationError reports why a generator response was rejected. Field is the
// path of the offending field for schema mismatches (for example
// "days[0].activities[2].kind").
type ValidationError struct {
	Kind   ValidationKind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("itinerary validation failed (%s) at %s: %s", e.Kind, e.Field, e.Reason)
	}
	return fmt.Sprintf("itinerary validation failed (%s): %s", e.Kind, e.Reason)
}

func malformed(reason string) *ValidationError {
	return &ValidationError{Kind: ValidationMalformed, Reason: reason}
}

func schemaMismatch(field, reason string) *ValidationError {
	return &ValidationError{Kind: ValidationSchemaMismatch, Field: field, Reason: reason}
}

var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

// CleanJSONResponse extracts the JSON object from raw LLM output. It strips
// markdown code fences, locates the object by brace counting so extraneous
// prose before or after is dropped, and removes trailing commas, a common
// LLM formatting error.
func CleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return response
	}

	braceCount := 0
	lastValidBrace := -1
	for i := firstBrace; i < len(response); i++ {
		switch response[i] {
		case '{':
			braceCount++
		case '}':
			braceCount--
			if braceCount == 0 {
				lastValidBrace = i
			}
		}
		if lastValidBrace != -1 {
			break
		}
	}

	if lastValidBrace == -1 {
		// Fall back to the last brace when counting never closes.
		lastBrace := strings.LastIndex(response, "}")
		if lastBrace == -1 || lastBrace <= firstBrace {
			return response
		}
		lastValidBrace = lastBrace
	}

	jsonPortion := response[firstBrace : lastValidBrace+1]
	jsonPortion = strings.ReplaceAll(jsonPortion, "`", "")
	jsonPortion = trailingCommaRe.ReplaceAllString(jsonPortion, "$1")

	return strings.TrimSpace(jsonPortion)
}

// parseItinerary decodes and validates raw generator output against the
// itinerary schema for the given form. Out-of-order activities within a day
// are re-sorted rather than rejected; every other violation is a typed
// *ValidationError. A nil error guarantees the returned itinerary is
// schema-valid and time-ordered.
func parseItinerary(raw string, form types.WeekendForm) (*types.WeekendItinerary, error) {
	form = form.Normalize()

	var itinerary types.WeekendItinerary
	if err := json.Unmarshal([]byte(CleanJSONResponse(raw)), &itinerary); err != nil {
		return nil, malformed(err.Error())
	}

	if err := validateStructure(&itinerary); err != nil {
		return nil, err
	}
	if err := validateSemantics(&itinerary, form); err != nil {
		return nil, err
	}

	normalizeOrder(&itinerary)
	return &itinerary, nil
}

func validateStructure(it *types.WeekendItinerary) error {
	if strings.TrimSpace(it.City) == "" {
		return schemaMismatch("city", "must be a non-empty string")
	}
	if len(it.Days) == 0 {
		return schemaMismatch("days", "must be a non-empty array")
	}
	if len(it.Days) > 2 {
		return schemaMismatch("days", fmt.Sprintf("at most 2 days allowed, got %d", len(it.Days)))
	}

	for i, day := range it.Days {
		path := fmt.Sprintf("days[%d]", i)
		if day.Label != types.DayLabelSaturday && day.Label != types.DayLabelSunday {
			return schemaMismatch(path+".label", fmt.Sprintf("must be %q or %q, got %q", types.DayLabelSaturday, types.DayLabelSunday, day.Label))
		}
		if len(day.Activities) == 0 {
			return schemaMismatch(path+".activities", "must be a non-empty array")
		}
		for j, act := range day.Activities {
			actPath := fmt.Sprintf("%s.activities[%d]", path, j)
			if strings.TrimSpace(act.Title) == "" {
				return schemaMismatch(actPath+".title", "must be a non-empty string")
			}
			if !types.ValidActivityKind(act.Kind) {
				return schemaMismatch(actPath+".kind", fmt.Sprintf("unknown kind %q", act.Kind))
			}
			if act.PriceLevel != types.BudgetUnset &&
				act.PriceLevel != types.BudgetLow && act.PriceLevel != types.BudgetMedium && act.PriceLevel != types.BudgetHigh {
				return schemaMismatch(actPath+".priceLevel", fmt.Sprintf("unknown price level %q", act.PriceLevel))
			}
		}
	}
	return nil
}

func validateSemantics(it *types.WeekendItinerary, form types.WeekendForm) error {
	if want := expectedDayCount(form.Days); len(it.Days) != want {
		return schemaMismatch("days", fmt.Sprintf("expected %d day(s) for %q, got %d", want, daysOrDefault(form.Days), len(it.Days)))
	}

	minActivities, maxActivities := 3, 5
	if form.Days == types.DayHalf {
		minActivities, maxActivities = 2, 3
	}

	for i, day := range it.Days {
		path := fmt.Sprintf("days[%d]", i)
		if n := len(day.Activities); n < minActivities || n > maxActivities {
			return schemaMismatch(path+".activities", fmt.Sprintf("expected %d-%d activities, got %d", minActivities, maxActivities, n))
		}
		for j, act := range day.Activities {
			actPath := fmt.Sprintf("%s.activities[%d]", path, j)
			if _, err := types.ParseActivityTime(act.Time); err != nil {
				return schemaMismatch(actPath+".time", fmt.Sprintf("%q is not a valid 24h HH:MM value", act.Time))
			}
			if act.Kind == types.KindNightlife {
				switch {
				case form.Group == types.GroupFamily:
					return schemaMismatch(actPath+".kind", "nightlife is not allowed for family groups")
				case form.Mood != types.MoodNightlife:
					return schemaMismatch(actPath+".kind", "nightlife is only allowed when the mood is nightlife")
				case form.Days == types.DayHalf:
					return schemaMismatch(actPath+".kind", "nightlife is not allowed on a half day")
				}
			}
		}
	}
	return nil
}

// normalizeOrder re-sorts each day's activities ascending by time. Sorting is
// a repair, not an error: callers must never see an out-of-order day.
func normalizeOrder(it *types.WeekendItinerary) {
	for i := range it.Days {
		sortActivities(it.Days[i].Activities)
	}
}

func sortActivities(activities []types.ItineraryActivity) {
	sort.SliceStable(activities, func(a, b int) bool {
		ta, _ := types.ParseActivityTime(activities[a].Time)
		tb, _ := types.ParseActivityTime(activities[b].Time)
		return ta.Before(tb)
	})
}

func expectedDayCount(days types.DayChoice) int {
	return daysOrDefault(days).DayCount()
}

func daysOrDefault(days types.DayChoice) types.DayChoice {
	if days == types.DayUnset {
		return types.DaySaturday
	}
	return days
}
