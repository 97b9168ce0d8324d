package analysis

import (
	"math"

	"healthscore/internal/questionnaire"
	"healthscore/internal/store"
)

// BMI category labels
const (
	BMIUnderweight = "underweight"
	BMINormal      = "normal"
	BMIOverweight  = "overweight"
	BMIObese       = "obese"
)

// ActivityMultipliers scales BMR to total daily energy expenditure
var ActivityMultipliers = map[string]float64{
	questionnaire.ActivitySedentary:  1.2,
	questionnaire.ActivityLight:      1.375,
	questionnaire.ActivityModerate:   1.55,
	questionnaire.ActivityActive:     1.725,
	questionnaire.ActivityVeryActive: 1.9,
}

// GoalAdjustments is the fractional calorie change applied to TDEE per goal
var GoalAdjustments = map[string]float64{
	questionnaire.GoalLose:     -0.20,
	questionnaire.GoalMaintain: 0,
	questionnaire.GoalGain:     0.10,
}

// MacroSplit is the share of calories from each macronutrient
type MacroSplit struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

// MacroSplits keyed by carbohydrate preference
var MacroSplits = map[string]MacroSplit{
	questionnaire.CarbsLow:      {Protein: 0.30, Carbs: 0.20, Fat: 0.50},
	questionnaire.CarbsModerate: {Protein: 0.25, Carbs: 0.45, Fat: 0.30},
	questionnaire.CarbsHigh:     {Protein: 0.20, Carbs: 0.55, Fat: 0.25},
}

const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0

	healthyBMILow  = 18.5
	healthyBMIHigh = 25.0

	minBodyFat = 2.0
	maxBodyFat = 70.0
)

// ComputeHealthCalculations derives physiological metrics from an answer set.
// Any metric whose inputs are missing is left nil.
func ComputeHealthCalculations(answers questionnaire.AnswerSet) store.HealthCalculations {
	var calc store.HealthCalculations

	weight, hasWeight := positive(answers, questionnaire.Weight)
	height, hasHeight := positive(answers, questionnaire.Height)
	age, hasAge := positive(answers, questionnaire.Age)
	gender, _ := answers.Choice(questionnaire.Gender)

	if hasWeight && hasHeight {
		m := height / 100
		bmi := weight / (m * m)
		calc.BMI = &bmi
		calc.BMICategory = BMICategory(bmi)

		low := healthyBMILow * m * m
		high := healthyBMIHigh * m * m
		calc.IdealWeightLow = &low
		calc.IdealWeightHigh = &high
	}

	if hasWeight && hasHeight && hasAge {
		bmr := BMR(weight, height, age, gender)
		calc.BMR = &bmr

		if level, ok := answers.Choice(questionnaire.ActivityLevel); ok {
			if mult, ok := ActivityMultipliers[level]; ok {
				tdee := bmr * mult
				calc.TDEE = &tdee
			}
		}
	}

	if bf, ok := answers.Number(questionnaire.BodyFat); ok && bf > 0 && bf < 100 {
		calc.BodyFat = &bf
	} else if calc.BMI != nil && hasAge {
		est := EstimateBodyFat(*calc.BMI, age, gender)
		calc.BodyFat = &est
		calc.IsBodyFatEstimated = true
	}

	if calc.TDEE != nil {
		goal, _ := answers.Choice(questionnaire.Goal)
		kcal := RecommendedCalories(*calc.TDEE, goal)
		calc.RecommendedCalories = &kcal

		pref, _ := answers.Choice(questionnaire.CarbPreference)
		protein, carbs, fat := MacroGrams(kcal, pref)
		calc.ProteinGrams = &protein
		calc.CarbGrams = &carbs
		calc.FatGrams = &fat
	}

	return calc
}

// BMICategory classifies a BMI value. Lower bounds are inclusive.
func BMICategory(bmi float64) string {
	switch {
	case bmi < healthyBMILow:
		return BMIUnderweight
	case bmi < healthyBMIHigh:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// BMR uses the Mifflin-St Jeor equation (kg, cm, years).
// Genders other than male and female use the midpoint of the two constants.
func BMR(weightKg, heightCm, age float64, gender string) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*age
	switch gender {
	case questionnaire.GenderMale:
		return base + 5
	case questionnaire.GenderFemale:
		return base - 161
	default:
		return base - 78
	}
}

// EstimateBodyFat uses the Deurenberg adult formula, clamped to a plausible range
func EstimateBodyFat(bmi, age float64, gender string) float64 {
	sex := 0.5
	switch gender {
	case questionnaire.GenderMale:
		sex = 1
	case questionnaire.GenderFemale:
		sex = 0
	}
	bf := 1.20*bmi + 0.23*age - 10.8*sex - 5.4
	return math.Max(minBodyFat, math.Min(maxBodyFat, bf))
}

// RecommendedCalories adjusts TDEE for a goal. Unknown goals mean maintenance.
func RecommendedCalories(tdee float64, goal string) float64 {
	return math.Round(tdee * (1 + GoalAdjustments[goal]))
}

// MacroGrams splits a calorie budget into protein, carb and fat grams,
// rounded to 0.1 g. Unknown preferences use the moderate split.
func MacroGrams(kcal float64, carbPreference string) (protein, carbs, fat float64) {
	split, ok := MacroSplits[carbPreference]
	if !ok {
		split = MacroSplits[questionnaire.CarbsModerate]
	}
	protein = round1(kcal * split.Protein / kcalPerGramProtein)
	carbs = round1(kcal * split.Carbs / kcalPerGramCarbs)
	fat = round1(kcal * split.Fat / kcalPerGramFat)
	return protein, carbs, fat
}

// MacroCalories converts macro grams back into calories
func MacroCalories(protein, carbs, fat float64) float64 {
	return protein*kcalPerGramProtein + carbs*kcalPerGramCarbs + fat*kcalPerGramFat
}

// positive returns a numeric answer only when it is a finite value above zero
func positive(answers questionnaire.AnswerSet, id string) (float64, bool) {
	v, ok := answers.Number(id)
	if !ok || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
