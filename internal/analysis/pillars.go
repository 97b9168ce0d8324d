package analysis

import (
	"math"
	"sort"

	"healthscore/internal/questionnaire"
	"healthscore/internal/store"
)

// Pillar names a scored health category
type Pillar string

const (
	PillarExercise        Pillar = "exercise"
	PillarNutrition       Pillar = "nutrition"
	PillarWellbeing       Pillar = "wellbeing"
	PillarSleep           Pillar = "sleep"
	PillarBodyComposition Pillar = "bodyComposition"
)

// Pillars lists every pillar in display order
var Pillars = []Pillar{PillarExercise, PillarNutrition, PillarWellbeing, PillarSleep, PillarBodyComposition}

// Label returns a human-readable pillar name
func (p Pillar) Label() string {
	switch p {
	case PillarExercise:
		return "Exercise"
	case PillarNutrition:
		return "Nutrition"
	case PillarWellbeing:
		return "Wellbeing"
	case PillarSleep:
		return "Sleep & Recovery"
	case PillarBodyComposition:
		return "Body Composition"
	default:
		return string(p)
	}
}

// Score returns the pillar's value from a set of scores
func (p Pillar) Score(s store.PillarScores) int {
	switch p {
	case PillarExercise:
		return s.Exercise
	case PillarNutrition:
		return s.Nutrition
	case PillarWellbeing:
		return s.Wellbeing
	case PillarSleep:
		return s.Sleep
	case PillarBodyComposition:
		return s.BodyComposition
	default:
		return 0
	}
}

// NeutralPoints is used for any input the user did not answer
const NeutralPoints = 50.0

// maxRecommendations caps the advice returned per pillar
const maxRecommendations = 3

// PillarFeedback is the explanation that accompanies a pillar score
type PillarFeedback struct {
	Pillar          Pillar   `json:"pillar"`
	Score           int      `json:"score"`
	Feedback        string   `json:"feedback"`
	Recommendations []string `json:"recommendations"`
}

// factor is one scored input of a pillar
type factor struct {
	id     string
	points func(questionnaire.AnswerSet, store.HealthCalculations) (float64, bool)
	advice string
}

func choicePoints(id string, table map[string]float64) func(questionnaire.AnswerSet, store.HealthCalculations) (float64, bool) {
	return func(a questionnaire.AnswerSet, _ store.HealthCalculations) (float64, bool) {
		v, ok := a.Choice(id)
		if !ok {
			return 0, false
		}
		p, ok := table[v]
		return p, ok
	}
}

func boolPoints(id string, yes, no float64) func(questionnaire.AnswerSet, store.HealthCalculations) (float64, bool) {
	return func(a questionnaire.AnswerSet, _ store.HealthCalculations) (float64, bool) {
		v, ok := a.Bool(id)
		if !ok {
			return 0, false
		}
		if v {
			return yes, true
		}
		return no, true
	}
}

func numberPoints(id string, fn func(float64) float64) func(questionnaire.AnswerSet, store.HealthCalculations) (float64, bool) {
	return func(a questionnaire.AnswerSet, _ store.HealthCalculations) (float64, bool) {
		v, ok := a.Number(id)
		if !ok {
			return 0, false
		}
		return fn(v), true
	}
}

// scalePoints maps a scale answer linearly onto 0-100; inverted scales score the low end highest
func scalePoints(id string, inverted bool) func(questionnaire.AnswerSet, store.HealthCalculations) (float64, bool) {
	q, _ := questionnaire.Lookup(id)
	return numberPoints(id, func(v float64) float64 {
		frac := (v - q.Min) / (q.Max - q.Min)
		if inverted {
			frac = 1 - frac
		}
		return 100 * math.Max(0, math.Min(1, frac))
	})
}

var pillarFactors = map[Pillar][]factor{
	PillarExercise: {
		{
			id: questionnaire.ActivityLevel,
			points: choicePoints(questionnaire.ActivityLevel, map[string]float64{
				questionnaire.ActivitySedentary:  10,
				questionnaire.ActivityLight:      35,
				questionnaire.ActivityModerate:   60,
				questionnaire.ActivityActive:     85,
				questionnaire.ActivityVeryActive: 100,
			}),
			advice: "Add movement to your day: take the stairs, walk during calls or break up long periods of sitting.",
		},
		{
			id: questionnaire.ExerciseFrequency,
			points: choicePoints(questionnaire.ExerciseFrequency, map[string]float64{
				"none": 0, "1-2": 40, "3-4": 75, "5+": 100,
			}),
			advice: "Aim for at least three workouts a week.",
		},
		{
			id: questionnaire.ExerciseIntensity,
			points: choicePoints(questionnaire.ExerciseIntensity, map[string]float64{
				"low": 40, "moderate": 75, "high": 100,
			}),
			advice: "Include some sessions that raise your heart rate enough that talking becomes hard.",
		},
		{
			id: questionnaire.ExerciseDuration,
			points: choicePoints(questionnaire.ExerciseDuration, map[string]float64{
				"<15": 20, "15-30": 50, "30-60": 85, "60+": 100,
			}),
			advice: "Build your sessions up towards 30 minutes or more.",
		},
		{
			id:     questionnaire.StrengthTraining,
			points: boolPoints(questionnaire.StrengthTraining, 100, 30),
			advice: "Add two strength sessions a week to protect muscle and bone.",
		},
		{
			id: questionnaire.RecoveryDays,
			points: numberPoints(questionnaire.RecoveryDays, func(d float64) float64 {
				switch {
				case d < 1:
					return 40
				case d <= 3:
					return 100
				case d <= 5:
					return 60
				default:
					return 20
				}
			}),
			advice: "Balance training and rest: one to three recovery days a week suits most people.",
		},
	},
	PillarNutrition: {
		{
			id: questionnaire.VegetableServings,
			points: numberPoints(questionnaire.VegetableServings, func(v float64) float64 {
				switch {
				case v >= 5:
					return 100
				case v >= 3:
					return 75
				case v >= 1:
					return 45
				default:
					return 10
				}
			}),
			advice: "Work towards five servings of vegetables a day.",
		},
		{
			id: questionnaire.FruitServings,
			points: numberPoints(questionnaire.FruitServings, func(v float64) float64 {
				switch {
				case v > 4:
					return 85
				case v >= 2:
					return 100
				case v >= 1:
					return 70
				default:
					return 30
				}
			}),
			advice: "Have two pieces of fruit a day.",
		},
		{
			id: questionnaire.WaterIntake,
			points: numberPoints(questionnaire.WaterIntake, func(v float64) float64 {
				switch {
				case v >= 8:
					return 100
				case v >= 6:
					return 75
				case v >= 4:
					return 50
				default:
					return 20
				}
			}),
			advice: "Drink more water: around eight glasses a day.",
		},
		{
			id: questionnaire.ProcessedFood,
			points: choicePoints(questionnaire.ProcessedFood, map[string]float64{
				"never": 100, "rarely": 85, "sometimes": 60, "often": 30, "daily": 10,
			}),
			advice: "Swap processed meals for home-cooked food where you can.",
		},
		{
			id: questionnaire.SugaryDrinks,
			points: numberPoints(questionnaire.SugaryDrinks, func(v float64) float64 {
				switch {
				case v == 0:
					return 100
				case v <= 2:
					return 80
				case v <= 5:
					return 55
				case v <= 10:
					return 30
				default:
					return 10
				}
			}),
			advice: "Cut back on sugary drinks.",
		},
		{
			id: questionnaire.MealsPerDay,
			points: numberPoints(questionnaire.MealsPerDay, func(v float64) float64 {
				switch {
				case v >= 3 && v <= 5:
					return 100
				case v == 2 || v == 6:
					return 70
				default:
					return 40
				}
			}),
			advice: "Eat regular meals through the day.",
		},
	},
	PillarWellbeing: {
		{
			id:     questionnaire.StressLevel,
			points: scalePoints(questionnaire.StressLevel, true),
			advice: "Set aside time each day to decompress and manage stress.",
		},
		{
			id:     questionnaire.Mood,
			points: scalePoints(questionnaire.Mood, false),
			advice: "Keep track of your mood and talk to someone if it stays low.",
		},
		{
			id:     questionnaire.SocialConnection,
			points: scalePoints(questionnaire.SocialConnection, false),
			advice: "Make time for friends and family.",
		},
		{
			id:     questionnaire.Mindfulness,
			points: boolPoints(questionnaire.Mindfulness, 100, 50),
			advice: "Try a few minutes of mindfulness or breathing exercises.",
		},
		{
			id:     questionnaire.Smoking,
			points: boolPoints(questionnaire.Smoking, 0, 100),
			advice: "Quitting smoking is the single biggest improvement you can make.",
		},
		{
			id: questionnaire.AlcoholPerWeek,
			points: numberPoints(questionnaire.AlcoholPerWeek, func(v float64) float64 {
				switch {
				case v == 0:
					return 100
				case v <= 7:
					return 80
				case v <= 14:
					return 50
				default:
					return 15
				}
			}),
			advice: "Keep alcohol to a few drinks a week at most.",
		},
	},
	PillarSleep: {
		{
			id: questionnaire.SleepHours,
			points: numberPoints(questionnaire.SleepHours, func(h float64) float64 {
				switch {
				case h >= 7 && h <= 9:
					return 100
				case h >= 6 && h <= 10:
					return 70
				case h >= 5:
					return 40
				default:
					return 15
				}
			}),
			advice: "Aim for seven to nine hours of sleep a night.",
		},
		{
			id:     questionnaire.SleepQuality,
			points: scalePoints(questionnaire.SleepQuality, false),
			advice: "Keep a consistent bedtime and a dark, cool bedroom.",
		},
		{
			id: questionnaire.ScreenBeforeBed,
			points: choicePoints(questionnaire.ScreenBeforeBed, map[string]float64{
				"none": 100, "under30": 75, "30to60": 45, "over60": 20,
			}),
			advice: "Put screens away for the hour before bed.",
		},
		{
			id:     questionnaire.WakeRefreshed,
			points: boolPoints(questionnaire.WakeRefreshed, 100, 30),
			advice: "If you rarely wake refreshed, review your sleep schedule or speak to a doctor.",
		},
	},
	PillarBodyComposition: {
		{
			id: "bmi",
			points: func(_ questionnaire.AnswerSet, c store.HealthCalculations) (float64, bool) {
				if c.BMI == nil {
					return 0, false
				}
				return bmiPoints(*c.BMI), true
			},
			advice: "Work towards a BMI between 18.5 and 25 with diet and exercise.",
		},
		{
			id: "bodyFat",
			points: func(a questionnaire.AnswerSet, c store.HealthCalculations) (float64, bool) {
				if c.BodyFat == nil {
					return 0, false
				}
				gender, _ := a.Choice(questionnaire.Gender)
				return bodyFatPoints(*c.BodyFat, gender), true
			},
			advice: "Combine strength training with a balanced diet to improve body composition.",
		},
	},
}

func bmiPoints(bmi float64) float64 {
	switch {
	case bmi >= healthyBMILow && bmi < healthyBMIHigh:
		return 100
	case bmi >= 17 && bmi < 30:
		return 65
	case bmi >= 15 && bmi < 35:
		return 35
	default:
		return 15
	}
}

// bodyFatRanges is the healthy body fat range (percent) per gender
var bodyFatRanges = map[string][2]float64{
	questionnaire.GenderMale:   {8, 20},
	questionnaire.GenderFemale: {21, 33},
	questionnaire.GenderOther:  {14, 27},
}

func bodyFatPoints(bf float64, gender string) float64 {
	r, ok := bodyFatRanges[gender]
	if !ok {
		r = bodyFatRanges[questionnaire.GenderOther]
	}
	switch {
	case bf < r[0]:
		return 60
	case bf < r[1]:
		return 100
	case bf < r[1]+5:
		return 70
	default:
		return 35
	}
}

type scoredFactor struct {
	points float64
	advice string
}

// scorePillar returns the rounded mean of a pillar's factor points and the
// scored factors, weakest first
func scorePillar(p Pillar, answers questionnaire.AnswerSet, calc store.HealthCalculations) (int, []scoredFactor) {
	factors := pillarFactors[p]
	if len(factors) == 0 {
		return int(NeutralPoints), nil
	}

	scored := make([]scoredFactor, 0, len(factors))
	var sum float64
	for _, f := range factors {
		pts, ok := f.points(answers, calc)
		if !ok {
			pts = NeutralPoints
		}
		sum += pts
		if ok {
			scored = append(scored, scoredFactor{points: pts, advice: f.advice})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].points < scored[j].points })
	return int(math.Round(sum / float64(len(factors)))), scored
}

// ComputePillarScores scores each pillar from 0 to 100. Unanswered inputs
// count as neutral rather than zero.
func ComputePillarScores(answers questionnaire.AnswerSet, calc store.HealthCalculations) store.PillarScores {
	score := func(p Pillar) int {
		s, _ := scorePillar(p, answers, calc)
		return s
	}
	return store.PillarScores{
		Exercise:        score(PillarExercise),
		Nutrition:       score(PillarNutrition),
		Wellbeing:       score(PillarWellbeing),
		Sleep:           score(PillarSleep),
		BodyComposition: score(PillarBodyComposition),
	}
}

// ComputePillarFeedback explains each pillar score and suggests improvements
// for its weakest answered inputs
func ComputePillarFeedback(answers questionnaire.AnswerSet, calc store.HealthCalculations) []PillarFeedback {
	out := make([]PillarFeedback, 0, len(Pillars))
	for _, p := range Pillars {
		score, scored := scorePillar(p, answers, calc)

		recs := []string{}
		for _, f := range scored {
			if f.points >= 60 || len(recs) == maxRecommendations {
				break
			}
			recs = append(recs, f.advice)
		}

		out = append(out, PillarFeedback{
			Pillar:          p,
			Score:           score,
			Feedback:        PillarDescription(p, score),
			Recommendations: recs,
		})
	}
	return out
}

// PillarDescription returns a one-line summary of a pillar score
func PillarDescription(p Pillar, score int) string {
	switch {
	case score >= 80:
		return p.Label() + " is a strength - keep it up"
	case score >= 60:
		return p.Label() + " is solid with room to improve"
	case score >= 40:
		return p.Label() + " needs some attention"
	default:
		return p.Label() + " is a priority area"
	}
}
