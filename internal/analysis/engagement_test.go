package analysis

import (
	"testing"
	"time"

	"healthscore/internal/store"
)

var day0 = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

// recordsAt builds assessments created at the given offsets from day0
func recordsAt(offsets ...time.Duration) []store.Assessment {
	records := make([]store.Assessment, len(offsets))
	for i, off := range offsets {
		records[i] = store.Assessment{
			ID:        string(rune('a' + i)),
			CreatedAt: day0.Add(off),
		}
	}
	return records
}

func nDays(n float64) time.Duration {
	return time.Duration(n * float64(24*time.Hour))
}

func TestCalculateStreak(t *testing.T) {
	tests := []struct {
		name     string
		records  []store.Assessment
		expected int
	}{
		{
			name:     "empty",
			records:  nil,
			expected: 0,
		},
		{
			name:     "single record",
			records:  recordsAt(0),
			expected: 1,
		},
		{
			name:     "three consecutive days",
			records:  recordsAt(0, nDays(1), nDays(2)),
			expected: 3,
		},
		{
			name:     "unordered input",
			records:  recordsAt(nDays(2), 0, nDays(1)),
			expected: 3,
		},
		{
			name: "gap of two days breaks the streak",
			// Newest is day 3; the gap to day 1 ends the walk
			records:  recordsAt(0, nDays(1), nDays(3)),
			expected: 1,
		},
		{
			name:     "streak counts back from the newest record",
			records:  recordsAt(0, nDays(2), nDays(3), nDays(4)),
			expected: 3,
		},
		{
			name:     "day difference is rounded",
			records:  recordsAt(0, nDays(1.2), nDays(2.1)),
			expected: 3,
		},
		{
			name:     "a day and a half rounds to two",
			records:  recordsAt(0, nDays(1.5)),
			expected: 1,
		},
		{
			name:     "two records on the same day",
			records:  recordsAt(0, time.Hour),
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateStreak(tt.records); got != tt.expected {
				t.Errorf("CalculateStreak() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCalculateCompletionRate(t *testing.T) {
	tests := []struct {
		name     string
		records  []store.Assessment
		expected int
	}{
		{
			name:     "empty",
			records:  nil,
			expected: 0,
		},
		{
			name:     "single record",
			records:  recordsAt(0),
			expected: 100,
		},
		{
			name:     "five records over five consecutive days",
			records:  recordsAt(0, nDays(1), nDays(2), nDays(3), nDays(4)),
			expected: 100,
		},
		{
			name:     "five records over ten days",
			records:  recordsAt(nDays(9), 0, nDays(2), nDays(4), nDays(6)),
			expected: 50,
		},
		{
			name: "partial day rounds span up",
			// ceil(2.5) + 1 = 4 days, 2 records
			records:  recordsAt(0, nDays(2.5)),
			expected: 50,
		},
		{
			name: "several per day exceed 100",
			// ceil(2h / 24h) + 1 = 2 days, 3 records
			records:  recordsAt(0, time.Hour, 2*time.Hour),
			expected: 150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateCompletionRate(tt.records); got != tt.expected {
				t.Errorf("CalculateCompletionRate() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestEngagementDoesNotMutateInput(t *testing.T) {
	records := recordsAt(nDays(3), 0, nDays(1))

	CalculateStreak(records)
	CalculateCompletionRate(records)

	for i, want := range []string{"a", "b", "c"} {
		if records[i].ID != want {
			t.Fatalf("records reordered: got %s at %d, want %s", records[i].ID, i, want)
		}
	}
}

func TestCompareMetrics(t *testing.T) {
	better := &store.Assessment{
		OverallScore: 80,
		Scores:       store.PillarScores{Exercise: 80, Nutrition: 70, Wellbeing: 90, Sleep: 75, BodyComposition: 10},
	}
	worse := &store.Assessment{
		OverallScore: 60,
		Scores:       store.PillarScores{Exercise: 50, Nutrition: 60, Wellbeing: 70, Sleep: 65, BodyComposition: 90},
	}
	mixed := &store.Assessment{
		OverallScore: 60,
		Scores:       store.PillarScores{Exercise: 90, Nutrition: 40, Wellbeing: 70, Sleep: 65, BodyComposition: 90},
	}

	tests := []struct {
		name     string
		current  *store.Assessment
		previous *store.Assessment
		expected MetricComparison
	}{
		{"all improved", better, worse, MetricComparison{Improved: 5}},
		{"all declined", worse, better, MetricComparison{Declined: 5}},
		{"identical", worse, worse, MetricComparison{Unchanged: 5}},
		{"mixed", mixed, worse, MetricComparison{Improved: 1, Unchanged: 3, Declined: 1}},
		{"missing current", nil, worse, MetricComparison{}},
		{"missing previous", better, nil, MetricComparison{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareMetrics(tt.current, tt.previous); got != tt.expected {
				t.Errorf("CompareMetrics() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}
