package analysis

import (
	"math"
	"sort"

	"healthscore/internal/store"
)

const dayMs = 24 * 60 * 60 * 1000

// MetricComparison counts how the overall and pillar scores moved between two assessments
type MetricComparison struct {
	Improved  int `json:"improved"`
	Unchanged int `json:"unchanged"`
	Declined  int `json:"declined"`
}

// CalculateStreak counts consecutive daily assessments, starting from the most
// recent one. The walk stops at the first gap that is not exactly one day.
func CalculateStreak(records []store.Assessment) int {
	if len(records) == 0 {
		return 0
	}

	times := sortedMillis(records)

	// Walk backwards from the newest record
	streak := 1
	for i := len(times) - 1; i > 0; i-- {
		days := math.Round(float64(times[i]-times[i-1]) / dayMs)
		if days != 1 {
			break
		}
		streak++
	}
	return streak
}

// CalculateCompletionRate returns the percentage of days between the first and
// last assessment on which an assessment was recorded. Several assessments on
// one day can push it above 100.
func CalculateCompletionRate(records []store.Assessment) int {
	if len(records) == 0 {
		return 0
	}

	times := sortedMillis(records)
	span := float64(times[len(times)-1] - times[0])
	totalDays := math.Ceil(span/dayMs) + 1

	return int(math.Round(float64(len(records)) / totalDays * 100))
}

// CompareMetrics compares the overall and four pillar scores of current against previous.
// Body composition is not part of the comparison.
func CompareMetrics(current, previous *store.Assessment) MetricComparison {
	var c MetricComparison
	if current == nil || previous == nil {
		return c
	}

	pairs := [][2]int{
		{current.OverallScore, previous.OverallScore},
		{current.Scores.Exercise, previous.Scores.Exercise},
		{current.Scores.Nutrition, previous.Scores.Nutrition},
		{current.Scores.Wellbeing, previous.Scores.Wellbeing},
		{current.Scores.Sleep, previous.Scores.Sleep},
	}
	for _, p := range pairs {
		switch {
		case p[0] > p[1]:
			c.Improved++
		case p[0] < p[1]:
			c.Declined++
		default:
			c.Unchanged++
		}
	}
	return c
}

// sortedMillis returns the creation times in ascending order without touching records
func sortedMillis(records []store.Assessment) []int64 {
	times := make([]int64, len(records))
	for i, r := range records {
		times[i] = r.CreatedAtMillis()
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times
}
