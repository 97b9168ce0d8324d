package analysis

import (
	"math"

	"healthscore/internal/questionnaire"
	"healthscore/internal/store"
)

// PillarWeights is the contribution of each pillar to the overall score. Sums to 1.
var PillarWeights = map[Pillar]float64{
	PillarExercise:        0.25,
	PillarNutrition:       0.25,
	PillarWellbeing:       0.20,
	PillarSleep:           0.20,
	PillarBodyComposition: 0.10,
}

// ComputeOverallScore returns the weighted 0-100 health score for an answer set
func ComputeOverallScore(answers questionnaire.AnswerSet, calc store.HealthCalculations) int {
	return OverallFromPillars(ComputePillarScores(answers, calc))
}

// OverallFromPillars combines pillar scores into the rounded weighted average
func OverallFromPillars(s store.PillarScores) int {
	var total float64
	for _, p := range Pillars {
		total += PillarWeights[p] * float64(p.Score(s))
	}
	return int(math.Round(total))
}

// ScoreDescription returns a label for an overall score
func ScoreDescription(score int) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 55:
		return "Fair"
	case score >= 40:
		return "Needs work"
	default:
		return "Poor"
	}
}
