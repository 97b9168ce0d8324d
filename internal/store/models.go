package store

import (
	"time"

	"healthscore/internal/questionnaire"
)

// HealthCalculations holds the physiological metrics derived from an answer set.
// Nil fields mean the inputs needed to compute them were missing.
type HealthCalculations struct {
	BMI                 *float64 `json:"bmi"`
	BMICategory         string   `json:"bmiCategory,omitempty"`
	BMR                 *float64 `json:"bmr"`  // kcal/day
	TDEE                *float64 `json:"tdee"` // kcal/day
	BodyFat             *float64 `json:"bodyFat"` // percent
	IsBodyFatEstimated  bool     `json:"isBodyFatEstimated"`
	IdealWeightLow      *float64 `json:"idealWeightLow"`  // kg
	IdealWeightHigh     *float64 `json:"idealWeightHigh"` // kg
	RecommendedCalories *float64 `json:"recommendedCalories"`
	ProteinGrams        *float64 `json:"proteinGrams"`
	CarbGrams           *float64 `json:"carbGrams"`
	FatGrams            *float64 `json:"fatGrams"`
}

// PillarScores holds the 0-100 score of each health pillar
type PillarScores struct {
	Exercise        int `json:"exercise"`
	Nutrition       int `json:"nutrition"`
	Wellbeing       int `json:"wellbeing"`
	Sleep           int `json:"sleep"`
	BodyComposition int `json:"bodyComposition"`
}

// Assessment is a persisted snapshot of one completed questionnaire
type Assessment struct {
	ID           string                  `json:"id"`
	UserID       string                  `json:"userId"`
	CreatedAt    time.Time               `json:"createdAt"`
	Answers      questionnaire.AnswerSet `json:"answers"`
	Calculations HealthCalculations      `json:"calculations"`
	Scores       PillarScores            `json:"scores"`
	OverallScore int                     `json:"overallScore"`
	Coaching     *string                 `json:"coaching,omitempty"` // nullable until generated
}

// CreatedAtMillis returns the creation time as Unix milliseconds
func (a Assessment) CreatedAtMillis() int64 {
	return a.CreatedAt.UnixMilli()
}
