package types

import (
	"fmt"
	"strings"
	"time"
)

// GroupType describes who the weekend is planned for.
type GroupType string

const (
	GroupSolo    GroupType = "solo"
	GroupCouple  GroupType = "couple"
	GroupFriends GroupType = "friends"
	GroupFamily  GroupType = "family"
	GroupUnset   GroupType = ""
)

// Mood steers the overall character of the generated plan.
type Mood string

const (
	MoodChill     Mood = "chill"
	MoodFoodie    Mood = "foodie"
	MoodExplore   Mood = "explore"
	MoodCultural  Mood = "cultural"
	MoodOutdoors  Mood = "outdoors"
	MoodNightlife Mood = "nightlife"
	MoodUnset     Mood = ""
)

// BudgetLevel is the price band for the whole plan and for individual stops.
type BudgetLevel string

const (
	BudgetLow    BudgetLevel = "low"
	BudgetMedium BudgetLevel = "medium"
	BudgetHigh   BudgetLevel = "high"
	BudgetUnset  BudgetLevel = ""
)

// DayChoice is which part of the weekend the user has available.
type DayChoice string

const (
	DaySaturday DayChoice = "saturday"
	DaySunday   DayChoice = "sunday"
	DayBoth     DayChoice = "both"
	DayHalf     DayChoice = "half-day"
	DayUnset    DayChoice = ""
)

// ActivityKind classifies an itinerary stop.
type ActivityKind string

const (
	KindFood      ActivityKind = "food"
	KindActivity  ActivityKind = "activity"
	KindCoffee    ActivityKind = "coffee"
	KindNightlife ActivityKind = "nightlife"
)

// ValidActivityKind reports whether k is one of the four allowed kinds.
func ValidActivityKind(k ActivityKind) bool {
	switch k {
	case KindFood, KindActivity, KindCoffee, KindNightlife:
		return true
	}
	return false
}

// WeekendForm is the questionnaire result and the sole input to plan generation.
// Only City is required; every other field may be left unset and the request
// builder substitutes documented defaults.
type WeekendForm struct {
	City   string      `json:"city"`
	Group  GroupType   `json:"group,omitempty"`
	Mood   Mood        `json:"mood,omitempty"`
	Budget BudgetLevel `json:"budget,omitempty"`
	Days   DayChoice   `json:"days,omitempty"`
}

// Normalize trims the city and maps unknown enum values to their unset
// sentinel so downstream code only ever sees known values.
func (f WeekendForm) Normalize() WeekendForm {
	f.City = strings.TrimSpace(f.City)
	switch f.Group {
	case GroupSolo, GroupCouple, GroupFriends, GroupFamily:
	default:
		f.Group = GroupUnset
	}
	switch f.Mood {
	case MoodChill, MoodFoodie, MoodExplore, MoodCultural, MoodOutdoors, MoodNightlife:
	default:
		f.Mood = MoodUnset
	}
	switch f.Budget {
	case BudgetLow, BudgetMedium, BudgetHigh:
	default:
		f.Budget = BudgetUnset
	}
	switch f.Days {
	case DaySaturday, DaySunday, DayBoth, DayHalf:
	default:
		f.Days = DayUnset
	}
	return f
}

// DayCount returns how many itinerary days the days choice asks for.
func (d DayChoice) DayCount() int {
	if d == DayBoth {
		return 2
	}
	return 1
}

// ItineraryActivity is a single scheduled stop within a day.
type ItineraryActivity struct {
	Time        string       `json:"time"`
	Title       string       `json:"title"`
	Kind        ActivityKind `json:"kind"`
	Description string       `json:"description"`
	Area        string       `json:"area,omitempty"`
	PriceLevel  BudgetLevel  `json:"priceLevel,omitempty"`
}

// ParseActivityTime parses the 24h "HH:MM" clock value of an activity.
// Both fields must be zero-padded; time.Parse alone would accept "8:0".
func ParseActivityTime(value string) (time.Time, error) {
	if len(value) != 5 || value[2] != ':' {
		return time.Time{}, fmt.Errorf("invalid time %q: want HH:MM", value)
	}
	return time.Parse("15:04", value)
}

// ItineraryDay is one day of the weekend plan with its ordered stops.
type ItineraryDay struct {
	Label      string              `json:"label"`
	Summary    string              `json:"summary"`
	Activities []ItineraryActivity `json:"activities"`
}

// WeekendItinerary is the full generated plan returned to the presentation
// layer. It is produced fresh per request and never persisted.
type WeekendItinerary struct {
	City string         `json:"city"`
	Days []ItineraryDay `json:"days"`
}

const (
	DayLabelSaturday = "Saturday"
	DayLabelSunday   = "Sunday"
)
