package service

import (
	"healthscore/internal/analysis"
	"healthscore/internal/store"
)

// DashboardData contains all data needed for a user's dashboard
type DashboardData struct {
	UserID string `json:"userId"`

	// Latest and previous assessment, nil when there are not enough records
	Latest   *store.Assessment `json:"latest"`
	Previous *store.Assessment `json:"previous"`

	Description    string                    `json:"description"`
	WeakestPillar  string                    `json:"weakestPillar,omitempty"`
	Feedback       []analysis.PillarFeedback `json:"feedback,omitempty"`
	DataQuality    string                    `json:"dataQuality,omitempty"`
	Comparison     analysis.MetricComparison `json:"comparison"`
	Streak         int                       `json:"streak"`
	CompletionRate int                       `json:"completionRate"`
	TotalCount     int                       `json:"totalAssessments"`

	// For charts, oldest first
	ScoreHistory []int    `json:"scoreHistory"`
	ScoreLabels  []string `json:"scoreLabels"`

	// Newest first
	Recent []store.Assessment `json:"recent"`
}

// GetDashboardData fetches everything the dashboard shows for userID
func (s *AssessmentService) GetDashboardData(userID string) (*DashboardData, error) {
	records, err := s.store.ListAssessments(userID)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{
		UserID:       userID,
		TotalCount:   len(records),
		ScoreHistory: []int{},
		ScoreLabels:  []string{},
		Recent:       []store.Assessment{},
	}
	if len(records) == 0 {
		data.Description = "No assessments yet"
		return data, nil
	}

	latest := records[len(records)-1]
	data.Latest = &latest
	if len(records) >= ComparisonRecordMin {
		prev := records[len(records)-2]
		data.Previous = &prev
	}

	result := analysis.Assess(latest.Answers)
	data.Description = analysis.ScoreDescription(latest.OverallScore)
	data.WeakestPillar = analysis.WeakestPillar(latest.Scores).Label()
	data.Feedback = result.Feedback
	data.DataQuality = analysis.DataQualityDescription(latest.Answers.Len())
	data.Comparison = analysis.CompareMetrics(data.Latest, data.Previous)
	data.Streak = analysis.CalculateStreak(records)
	data.CompletionRate = analysis.CalculateCompletionRate(records)

	start := 0
	if len(records) > ScoreHistoryLimit {
		start = len(records) - ScoreHistoryLimit
	}
	for _, r := range records[start:] {
		data.ScoreHistory = append(data.ScoreHistory, r.OverallScore)
		data.ScoreLabels = append(data.ScoreLabels, r.CreatedAt.Format("Jan 02"))
	}

	for i := len(records) - 1; i >= 0 && len(data.Recent) < RecentHistoryLimit; i-- {
		data.Recent = append(data.Recent, records[i])
	}

	return data, nil
}
