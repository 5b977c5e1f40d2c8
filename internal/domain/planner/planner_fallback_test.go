package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weekendly/weekendly-api/internal/types"
)

func TestFallbackItinerary_DayCounts(t *testing.T) {
	cases := []struct {
		days  types.DayChoice
		count int
		first string
	}{
		{types.DaySaturday, 1, types.DayLabelSaturday},
		{types.DaySunday, 1, types.DayLabelSunday},
		{types.DayBoth, 2, types.DayLabelSaturday},
		{types.DayHalf, 1, types.DayLabelSaturday},
		{types.DayUnset, 1, types.DayLabelSaturday},
	}

	for _, tc := range cases {
		itinerary := fallbackItinerary(types.WeekendForm{City: "Lisbon", Days: tc.days})
		require.Len(t, itinerary.Days, tc.count, "days=%q", tc.days)
		require.Equal(t, tc.first, itinerary.Days[0].Label, "days=%q", tc.days)
		if tc.count == 2 {
			require.Equal(t, types.DayLabelSunday, itinerary.Days[1].Label)
		}
	}
}

func TestFallbackItinerary_AlwaysSchemaValid(t *testing.T) {
	groups := []types.GroupType{types.GroupUnset, types.GroupSolo, types.GroupCouple, types.GroupFriends, types.GroupFamily}
	moods := []types.Mood{types.MoodUnset, types.MoodChill, types.MoodFoodie, types.MoodExplore, types.MoodCultural, types.MoodOutdoors, types.MoodNightlife}
	days := []types.DayChoice{types.DayUnset, types.DaySaturday, types.DaySunday, types.DayBoth, types.DayHalf}

	for _, g := range groups {
		for _, m := range moods {
			for _, d := range days {
				form := types.WeekendForm{City: "Lisbon", Group: g, Mood: m, Days: d}
				itinerary := fallbackItinerary(form)

				minActivities, maxActivities := 3, 5
				if d == types.DayHalf {
					minActivities, maxActivities = 2, 3
				}

				for _, day := range itinerary.Days {
					n := len(day.Activities)
					require.GreaterOrEqual(t, n, minActivities, "group=%q mood=%q days=%q", g, m, d)
					require.LessOrEqual(t, n, maxActivities, "group=%q mood=%q days=%q", g, m, d)

					var prev string
					for _, act := range day.Activities {
						_, err := types.ParseActivityTime(act.Time)
						require.NoError(t, err)
						require.True(t, types.ValidActivityKind(act.Kind))
						require.NotEmpty(t, act.Title)
						if prev != "" {
							require.LessOrEqual(t, prev, act.Time, "activities must be time-ordered")
						}
						prev = act.Time

						if act.Kind == types.KindNightlife {
							require.Equal(t, types.MoodNightlife, m)
							require.NotEqual(t, types.GroupFamily, g)
							require.NotEqual(t, types.DayHalf, d)
						}
					}
				}
			}
		}
	}
}

func TestFallbackItinerary_NightlifeOnlyForNightlifeMood(t *testing.T) {
	itinerary := fallbackItinerary(types.WeekendForm{City: "Lisbon", Mood: types.MoodNightlife, Days: types.DaySaturday})

	var nightlife int
	for _, act := range itinerary.Days[0].Activities {
		if act.Kind == types.KindNightlife {
			nightlife++
		}
	}
	require.Equal(t, 1, nightlife)
}

func TestFallbackItinerary_FamilySubstitution(t *testing.T) {
	itinerary := fallbackItinerary(types.WeekendForm{City: "Lisbon", Group: types.GroupFamily, Mood: types.MoodNightlife, Days: types.DaySaturday})

	require.Len(t, itinerary.Days, 1)
	for _, act := range itinerary.Days[0].Activities {
		require.NotEqual(t, types.KindNightlife, act.Kind)
	}
	// The substituted early-evening stop keeps the activity count at five.
	require.Len(t, itinerary.Days[0].Activities, 5)
}

func TestFallbackItinerary_BudgetDrivesPriceLevel(t *testing.T) {
	itinerary := fallbackItinerary(types.WeekendForm{City: "Lisbon", Budget: types.BudgetHigh, Days: types.DaySaturday})

	var sawHigh bool
	for _, act := range itinerary.Days[0].Activities {
		if act.PriceLevel == types.BudgetHigh {
			sawHigh = true
		}
	}
	require.True(t, sawHigh)

	unset := fallbackItinerary(types.WeekendForm{City: "Lisbon", Days: types.DaySaturday})
	var sawMedium bool
	for _, act := range unset.Days[0].Activities {
		if act.PriceLevel == types.BudgetMedium {
			sawMedium = true
		}
	}
	require.True(t, sawMedium)
}

func TestFallbackItinerary_Deterministic(t *testing.T) {
	form := types.WeekendForm{City: "Lisbon", Group: types.GroupFriends, Mood: types.MoodNightlife, Days: types.DayBoth}
	require.Equal(t, fallbackItinerary(form), fallbackItinerary(form))
}
