package analytics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"fitness-tracker/internal/schemas"
)

// WeightChange is the difference between the latest and the earliest weight of a window.
type WeightChange struct {
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	From      float64   `json:"from"`
	To        float64   `json:"to"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// GoalProgress describes how far the user got from the first weight towards the goal.
type GoalProgress struct {
	Percent int     `json:"percent"`
	Latest  float64 `json:"latest"`
	Goal    float64 `json:"goal"`
	Unit    string  `json:"unit"`
}

// WeightSummary is the response of the weight statistics route.
type WeightSummary struct {
	TotalEntries  int           `json:"totalEntries"`
	CurrentWeight *float64      `json:"currentWeight"`
	LowestWeight  *float64      `json:"lowestWeight"`
	Unit          string        `json:"unit"`
	Change        *WeightChange `json:"change"`
	Change7Days   *WeightChange `json:"change7Days"`
	Change30Days  *WeightChange `json:"change30Days"`
	GoalProgress  *GoalProgress `json:"goalProgress"`
}

// ChangeWithin computes the weight change over entries at most days old. days <= 0 covers the whole history.
// Earlier entries are converted into the unit of the latest one. Fewer than two entries yield nil.
func ChangeWithin(entries []schemas.WeightEntry, now time.Time, days int) *WeightChange {
	var window []schemas.WeightEntry
	for _, entry := range chronologicalWeights(entries) {
		if days <= 0 || daysBetween(now, entry.Date) <= days {
			window = append(window, entry)
		}
	}
	if len(window) < 2 {
		return nil
	}

	first, last := window[0], window[len(window)-1]
	from := ConvertWeight(first.Weight, first.Unit, last.Unit)
	return &WeightChange{
		Value:     decimal.NewFromFloat(last.Weight).Sub(decimal.NewFromFloat(from)).Round(1).InexactFloat64(),
		Unit:      last.Unit,
		From:      round1(from),
		To:        last.Weight,
		StartDate: first.Date,
		EndDate:   last.Date,
	}
}

// Progress returns the share of the distance between first and goal already covered by latest,
// clamped to [0, 100]. A goal equal to the first weight yields 0.
func Progress(first, latest, goal float64) int {
	total := math.Abs(goal - first)
	if total == 0 {
		return 0
	}
	done := math.Abs(latest - first)
	percent := decimal.NewFromFloat(done / total * 100).Round(0).IntPart()
	return int(max(0, min(100, percent)))
}

// SummarizeWeights builds the weight summary. goal is given in goalUnit and may be nil,
// an empty goalUnit means the unit of the latest entry.
func SummarizeWeights(entries []schemas.WeightEntry, goal *float64, goalUnit string, now time.Time) WeightSummary {
	summary := WeightSummary{TotalEntries: len(entries)}
	if len(entries) == 0 {
		return summary
	}

	sorted := chronologicalWeights(entries)
	first, latest := sorted[0], sorted[len(sorted)-1]
	summary.Unit = latest.Unit

	current := latest.Weight
	summary.CurrentWeight = &current

	lowest := math.Inf(1)
	for _, entry := range sorted {
		lowest = math.Min(lowest, ConvertWeight(entry.Weight, entry.Unit, latest.Unit))
	}
	lowest = round1(lowest)
	summary.LowestWeight = &lowest

	summary.Change = ChangeWithin(sorted, now, 0)
	summary.Change7Days = ChangeWithin(sorted, now, 7)
	summary.Change30Days = ChangeWithin(sorted, now, 30)

	if goal != nil && len(sorted) > 1 {
		if goalUnit == "" {
			goalUnit = latest.Unit
		}
		goalValue := round1(ConvertWeight(*goal, goalUnit, latest.Unit))
		start := ConvertWeight(first.Weight, first.Unit, latest.Unit)
		summary.GoalProgress = &GoalProgress{
			Percent: Progress(start, latest.Weight, goalValue),
			Latest:  latest.Weight,
			Goal:    goalValue,
			Unit:    latest.Unit,
		}
	}

	return summary
}
