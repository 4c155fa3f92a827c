// Package analytics derives trends and summaries from the entry history of a user.
// All functions are pure and take the reference time explicitly.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fitness-tracker/internal/schemas"
)

const hoursPerDay = 24

var poundsPerKilogram = decimal.RequireFromString("2.20462")

// round1 rounds half away from zero to one decimal place.
func round1(value float64) float64 {
	return decimal.NewFromFloat(value).Round(1).InexactFloat64()
}

// ConvertWeight converts a weight between kg and lbs. Unknown units are returned unchanged.
func ConvertWeight(value float64, from, to string) float64 {
	if from == to || from == "" || to == "" {
		return value
	}
	amount := decimal.NewFromFloat(value)
	switch {
	case from == schemas.UnitKilograms && to == schemas.UnitPounds:
		return amount.Mul(poundsPerKilogram).InexactFloat64()
	case from == schemas.UnitPounds && to == schemas.UnitKilograms:
		return amount.Div(poundsPerKilogram).InexactFloat64()
	}
	return value
}

// DurationMinutes normalizes an activity duration to minutes.
func DurationMinutes(activity schemas.ActivityEntry) float64 {
	if activity.Unit == schemas.UnitHours {
		return decimal.NewFromFloat(activity.Duration).Mul(decimal.NewFromInt(60)).InexactFloat64()
	}
	return activity.Duration
}

// daysBetween counts the whole days from date to now, truncated toward zero.
func daysBetween(now, date time.Time) int {
	return int(now.Sub(date).Hours() / hoursPerDay)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// chronologicalWeights returns a copy sorted by date, oldest first. Equal dates keep input order.
func chronologicalWeights(entries []schemas.WeightEntry) []schemas.WeightEntry {
	sorted := make([]schemas.WeightEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted
}

func chronologicalActivities(entries []schemas.ActivityEntry) []schemas.ActivityEntry {
	sorted := make([]schemas.ActivityEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted
}

// mode returns the most frequent key. Ties go to the key seen first in keys.
func mode(keys []string) (string, bool) {
	counts := make(map[string]int, len(keys))
	var order []string
	for _, key := range keys {
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	best, bestCount := "", 0
	for _, key := range order {
		if counts[key] > bestCount {
			best, bestCount = key, counts[key]
		}
	}
	return best, bestCount > 0
}
