package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"fitness-tracker/internal/schemas"
)

// ActivitySummary is the response of the activity statistics route. Durations are given in minutes.
type ActivitySummary struct {
	TotalActivities   int                `json:"totalActivities"`
	TotalDuration     float64            `json:"totalDuration"`
	LongestSession    *float64           `json:"longestSession"`
	AverageSession    *float64           `json:"averageSession"`
	TotalCalories     float64            `json:"totalCalories"`
	AverageCalories   *float64           `json:"averageCalories"`
	Streak            int                `json:"streak"`
	MostFrequentType  *string            `json:"mostFrequentType"`
	MostActiveWeekday *string            `json:"mostActiveWeekday"`
	DurationByType    map[string]float64 `json:"durationByType"`
	CountByType       map[string]int     `json:"countByType"`
}

// Streak counts the consecutive days up to and including today with at least one activity.
// Days are taken in the location of now. Without an activity today the streak is 0.
func Streak(activities []schemas.ActivityEntry, now time.Time) int {
	active := make(map[string]bool, len(activities))
	for _, activity := range activities {
		active[dayKey(activity.Date.In(now.Location()))] = true
	}

	streak := 0
	for day := now; active[dayKey(day)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// MostFrequentType returns the most logged activity type, ties going to the type logged first.
func MostFrequentType(activities []schemas.ActivityEntry) (string, bool) {
	keys := make([]string, 0, len(activities))
	for _, activity := range chronologicalActivities(activities) {
		keys = append(keys, activity.Type)
	}
	return mode(keys)
}

// MostActiveWeekday returns the weekday with the most activities in the given location,
// ties going to the weekday of the earliest activity.
func MostActiveWeekday(activities []schemas.ActivityEntry, loc *time.Location) (time.Weekday, bool) {
	keys := make([]string, 0, len(activities))
	byName := make(map[string]time.Weekday, 7)
	for _, activity := range chronologicalActivities(activities) {
		weekday := activity.Date.In(loc).Weekday()
		byName[weekday.String()] = weekday
		keys = append(keys, weekday.String())
	}
	name, ok := mode(keys)
	return byName[name], ok
}

// SummarizeActivities builds the activity summary relative to now.
func SummarizeActivities(activities []schemas.ActivityEntry, now time.Time) ActivitySummary {
	summary := ActivitySummary{
		TotalActivities: len(activities),
		DurationByType:  make(map[string]float64),
		CountByType:     make(map[string]int),
		Streak:          Streak(activities, now),
	}
	if len(activities) == 0 {
		return summary
	}

	total, calories := decimal.Zero, decimal.Zero
	longest := 0.0
	caloriesLogged := 0
	for _, activity := range activities {
		minutes := DurationMinutes(activity)
		total = total.Add(decimal.NewFromFloat(minutes))
		longest = max(longest, minutes)

		summary.DurationByType[activity.Type] = decimal.NewFromFloat(summary.DurationByType[activity.Type]).
			Add(decimal.NewFromFloat(minutes)).InexactFloat64()
		summary.CountByType[activity.Type]++

		if activity.CaloriesBurned > 0 {
			calories = calories.Add(decimal.NewFromFloat(activity.CaloriesBurned))
			caloriesLogged++
		}
	}

	summary.TotalDuration = total.InexactFloat64()
	summary.LongestSession = &longest

	average := total.Div(decimal.NewFromInt(int64(len(activities)))).Round(1).InexactFloat64()
	summary.AverageSession = &average

	summary.TotalCalories = calories.InexactFloat64()
	if caloriesLogged > 0 {
		averageCalories := calories.Div(decimal.NewFromInt(int64(caloriesLogged))).Round(1).InexactFloat64()
		summary.AverageCalories = &averageCalories
	}

	if activityType, ok := MostFrequentType(activities); ok {
		summary.MostFrequentType = &activityType
	}
	if weekday, ok := MostActiveWeekday(activities, now.Location()); ok {
		name := weekday.String()
		summary.MostActiveWeekday = &name
	}

	return summary
}
