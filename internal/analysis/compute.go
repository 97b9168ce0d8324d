package analysis

import (
	"healthscore/internal/questionnaire"
	"healthscore/internal/store"
)

// Result is the full engine output for one answer set
type Result struct {
	Calculations store.HealthCalculations `json:"calculations"`
	Scores       store.PillarScores       `json:"scores"`
	Feedback     []PillarFeedback         `json:"feedback"`
	OverallScore int                      `json:"overallScore"`
	Description  string                   `json:"description"`
}

// Assess runs the metrics calculator, pillar scorer and overall scorer.
// It holds no state and is safe for concurrent use.
func Assess(answers questionnaire.AnswerSet) Result {
	calc := ComputeHealthCalculations(answers)
	scores := ComputePillarScores(answers, calc)
	overall := OverallFromPillars(scores)

	return Result{
		Calculations: calc,
		Scores:       scores,
		Feedback:     ComputePillarFeedback(answers, calc),
		OverallScore: overall,
		Description:  ScoreDescription(overall),
	}
}

// WeakestPillar returns the lowest-scoring pillar. Ties go to the earlier pillar in display order.
func WeakestPillar(s store.PillarScores) Pillar {
	weakest := Pillars[0]
	for _, p := range Pillars[1:] {
		if p.Score(s) < weakest.Score(s) {
			weakest = p
		}
	}
	return weakest
}

// DataQualityDescription describes how complete an answer set is
func DataQualityDescription(answered int) string {
	total := len(questionnaire.Questions())
	pct := float64(answered) / float64(total)
	switch {
	case pct >= 0.9:
		return "Complete"
	case pct >= 0.6:
		return "Mostly complete"
	case pct >= 0.3:
		return "Partial - scores lean on neutral defaults"
	default:
		return "Sparse - scores are mostly neutral defaults"
	}
}
