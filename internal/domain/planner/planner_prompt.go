package planner

import (
	"fmt"
	"strings"

	"github.com/weekendly/weekendly-api/internal/types"
)

const systemInstruction = `You are a weekend planning assistant. You design realistic, walkable day plans for a single city. You always answer with a single JSON object and nothing else: no explanations, no markdown formatting, no surrounding text.`

// GenerationRequest is the structured payload handed to the external
// generator: a system instruction, one user message carrying the rules and
// the target schema, and a sampling temperature.
type GenerationRequest struct {
	SystemInstruction string
	UserPrompt        string
	Temperature       float32
}

// buildGenerationRequest deterministically builds the generation request for
// a form. Unset fields are substituted with defaults before any rule text is
// produced: budget falls back to medium, group to a neutral adult framing and
// mood to a blend of chill and explore. Pure function of its input.
func buildGenerationRequest(form types.WeekendForm, temperature float32) GenerationRequest {
	form = form.Normalize()

	return GenerationRequest{
		SystemInstruction: systemInstruction,
		UserPrompt: fmt.Sprintf(`Plan a weekend in %s.

USER SELECTIONS:
%s

RULES:
%s

Return the response STRICTLY as a JSON object with this exact structure:
%s`, form.City, echoedSelections(form), rulesText(form), itinerarySchema),
		Temperature: temperature,
	}
}

func echoedSelections(form types.WeekendForm) string {
	display := func(s, fallback string) string {
		if s == "" {
			return fallback
		}
		return s
	}
	return fmt.Sprintf(`    - City: %s
    - Group: %s
    - Mood: %s
    - Budget: %s
    - Days: %s`,
		form.City,
		display(string(form.Group), "not specified (neutral adult)"),
		display(string(form.Mood), "not specified (blend of chill and explore)"),
		display(string(form.Budget), "not specified (assume medium)"),
		display(string(form.Days), "not specified (assume saturday)"))
}

func rulesText(form types.WeekendForm) string {
	var rules []string

	rules = append(rules, dayCountRule(form.Days))

	if form.Days == types.DayHalf {
		rules = append(rules, `Activity count: the half day has 2 to 3 activities, no more.`)
		rules = append(rules, `Time window: confine the half day to one compact 4-6 hour block. No nightlife activities.`)
	} else {
		rules = append(rules, `Activity count: each full day has 3 to 5 activities.`)
		rules = append(rules, `Time windows (24h clock): coffee/breakfast 08:00-11:00, lunch 12:00-14:30, afternoon activities 14:00-18:00, dinner 19:00-21:30, nightlife 21:30-01:00.`)
	}

	rules = append(rules, moodRule(form.Mood))
	rules = append(rules, groupRule(form.Group))
	rules = append(rules, budgetRule(form.Budget))

	rules = append(rules,
		`Kind usage: use "food" for meals, "coffee" for cafe-type stops, "activity" for everything that is neither food nor nightlife, "nightlife" only as allowed above.`,
		`Within each day, list activities in ascending time order.`,
		`Use generic venue descriptors only (for example "a riverside cafe", "a local trattoria"). Never invent proper venue names.`)

	var b strings.Builder
	for _, r := range rules {
		b.WriteString("    - ")
		b.WriteString(r)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func dayCountRule(days types.DayChoice) string {
	switch days {
	case types.DaySunday:
		return `Days: produce exactly 1 day labeled "Sunday".`
	case types.DayBoth:
		return `Days: produce exactly 2 days, labeled "Saturday" then "Sunday", in that order.`
	case types.DayHalf:
		return `Days: produce exactly 1 day, labeled "Saturday" or "Sunday".`
	default:
		// saturday and unset
		return `Days: produce exactly 1 day labeled "Saturday".`
	}
}

func moodRule(mood types.Mood) string {
	switch mood {
	case types.MoodChill:
		return `Mood is chill: fewer total stops, favour parks, cafes and unhurried time.`
	case types.MoodFoodie:
		return `Mood is foodie: include at least 2 "food" stops per day.`
	case types.MoodExplore:
		return `Mood is explore: mix walks, viewpoints and light culture.`
	case types.MoodCultural:
		return `Mood is cultural: favour museums and galleries, with at most 2 food or coffee stops per day.`
	case types.MoodOutdoors:
		return `Mood is outdoors: parks, waterfront and viewpoints are the primary stops, food is secondary.`
	case types.MoodNightlife:
		return `Mood is nightlife: exactly one "nightlife" activity in the evening, keep the rest of the day lighter.`
	default:
		return `Mood was not specified: blend chill and explore, with relaxed walks and one or two interesting sights.`
	}
}

func groupRule(group types.GroupType) string {
	switch group {
	case types.GroupFamily:
		return `Group is family: NEVER use the "nightlife" kind, even if the mood is nightlife. Substitute a family-friendly early-evening activity instead. Keep everything suitable for children.`
	case types.GroupCouple:
		return `Group is a couple: frame activities as cosy and intimate.`
	case types.GroupFriends:
		return `Group is friends: frame activities as social and lively.`
	case types.GroupSolo:
		return `Group is solo: frame activities as safe and comfortable for one person.`
	default:
		return `Group was not specified: use a neutral adult framing.`
	}
}

func budgetRule(budget types.BudgetLevel) string {
	switch budget {
	case types.BudgetLow:
		return `Budget is low: prefer free or cheap options and set "priceLevel" accordingly.`
	case types.BudgetHigh:
		return `Budget is high: premium options are welcome, set "priceLevel" accordingly.`
	default:
		// medium and unset both resolve to medium
		return `Budget is medium: mid-range options, set "priceLevel" accordingly.`
	}
}

const itinerarySchema = `{
    "city": "the city name",
    "days": [
        {
            "label": "Saturday" or "Sunday",
            "summary": "one sentence describing the day",
            "activities": [
                {
                    "time": "HH:MM (24h clock)",
                    "title": "short generic title",
                    "kind": "food" | "activity" | "coffee" | "nightlife",
                    "description": "1-2 sentences",
                    "area": "neighbourhood or area, optional",
                    "priceLevel": "low" | "medium" | "high", optional
                }
            ]
        }
    ]
}`
