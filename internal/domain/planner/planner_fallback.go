package planner

import (
	"fmt"

	"github.com/weekendly/weekendly-api/internal/types"
)

// fallbackItinerary produces a deterministic, schema-valid plan from fixed
// templates. It never fails and makes no external calls; the orchestration
// layer returns it whenever the generator path breaks so the user always
// gets a usable plan.
func fallbackItinerary(form types.WeekendForm) *types.WeekendItinerary {
	form = form.Normalize()
	price := form.Budget
	if price == types.BudgetUnset {
		price = types.BudgetMedium
	}

	if form.Days == types.DayHalf {
		return &types.WeekendItinerary{
			City: form.City,
			Days: []types.ItineraryDay{halfDayTemplate(form, price)},
		}
	}

	primaryLabel := types.DayLabelSaturday
	if form.Days == types.DaySunday {
		primaryLabel = types.DayLabelSunday
	}

	days := []types.ItineraryDay{fullDayTemplate(form, primaryLabel, price)}
	if form.Days == types.DayBoth {
		days = append(days, lighterSundayTemplate(form, price))
	}

	return &types.WeekendItinerary{City: form.City, Days: days}
}

func fullDayTemplate(form types.WeekendForm, label string, price types.BudgetLevel) types.ItineraryDay {
	activities := []types.ItineraryActivity{
		{
			Time:        "09:30",
			Title:       "Morning coffee",
			Kind:        types.KindCoffee,
			Description: fmt.Sprintf("Start the day at a well-reviewed local cafe in %s.", form.City),
			PriceLevel:  types.BudgetLow,
		},
		{
			Time:        "12:30",
			Title:       "Lunch at a local favourite",
			Kind:        types.KindFood,
			Description: "A casual spot serving regional dishes.",
			PriceLevel:  price,
		},
		{
			Time:        "15:00",
			Title:       "Afternoon walk",
			Kind:        types.KindActivity,
			Description: "An unhurried walk through a central neighbourhood, with time for a viewpoint or a small gallery.",
			PriceLevel:  types.BudgetLow,
		},
		{
			Time:        "19:30",
			Title:       "Dinner",
			Kind:        types.KindFood,
			Description: "Dinner at a relaxed neighbourhood restaurant.",
			PriceLevel:  price,
		},
	}

	if form.Mood == types.MoodNightlife {
		if form.Group == types.GroupFamily {
			// Family groups never get the nightlife kind; substitute an
			// early-evening activity instead.
			activities = append(activities, types.ItineraryActivity{
				Time:        "18:00",
				Title:       "Early evening stroll",
				Kind:        types.KindActivity,
				Description: "A family-friendly evening walk past the city's landmarks before dinner.",
				PriceLevel:  types.BudgetLow,
			})
		} else {
			activities = append(activities, types.ItineraryActivity{
				Time:        "22:00",
				Title:       "Evening out",
				Kind:        types.KindNightlife,
				Description: "Finish the day at a lively bar district.",
				PriceLevel:  price,
			})
		}
	}

	sortActivities(activities)

	return types.ItineraryDay{
		Label:      label,
		Summary:    fmt.Sprintf("A classic %s day in %s: coffee, food and a good walk.", label, form.City),
		Activities: activities,
	}
}

func lighterSundayTemplate(form types.WeekendForm, price types.BudgetLevel) types.ItineraryDay {
	return types.ItineraryDay{
		Label:   types.DayLabelSunday,
		Summary: fmt.Sprintf("A slower Sunday in %s to round off the weekend.", form.City),
		Activities: []types.ItineraryActivity{
			{
				Time:        "10:00",
				Title:       "Late breakfast",
				Kind:        types.KindCoffee,
				Description: "A slow start with coffee and pastries.",
				PriceLevel:  types.BudgetLow,
			},
			{
				Time:        "12:00",
				Title:       "Park or waterfront time",
				Kind:        types.KindActivity,
				Description: "Open-air time in a park or along the waterfront.",
				PriceLevel:  types.BudgetLow,
			},
			{
				Time:        "14:00",
				Title:       "Long Sunday lunch",
				Kind:        types.KindFood,
				Description: "An unhurried lunch before heading home.",
				PriceLevel:  price,
			},
		},
	}
}

func halfDayTemplate(form types.WeekendForm, price types.BudgetLevel) types.ItineraryDay {
	return types.ItineraryDay{
		Label:   types.DayLabelSaturday,
		Summary: fmt.Sprintf("A compact half day in %s.", form.City),
		Activities: []types.ItineraryActivity{
			{
				Time:        "10:00",
				Title:       "Coffee to start",
				Kind:        types.KindCoffee,
				Description: "Meet at a central cafe.",
				PriceLevel:  types.BudgetLow,
			},
			{
				Time:        "11:00",
				Title:       "City highlights walk",
				Kind:        types.KindActivity,
				Description: "A short loop past the main sights.",
				PriceLevel:  types.BudgetLow,
			},
			{
				Time:        "13:00",
				Title:       "Lunch",
				Kind:        types.KindFood,
				Description: "Wrap up with lunch at a casual spot.",
				PriceLevel:  price,
			},
		},
	}
}
