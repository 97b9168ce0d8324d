package analysis

import (
	"strings"
	"testing"

	"healthscore/internal/questionnaire"
	"healthscore/internal/store"
)

// bestAnswers scores 100 on every pillar
func bestAnswers() map[string]any {
	return map[string]any{
		questionnaire.Weight:            70,
		questionnaire.Height:            175,
		questionnaire.Age:               30,
		questionnaire.Gender:            "male",
		questionnaire.ActivityLevel:     "veryActive",
		questionnaire.ExerciseFrequency: "5+",
		questionnaire.ExerciseIntensity: "high",
		questionnaire.ExerciseDuration:  "60+",
		questionnaire.StrengthTraining:  true,
		questionnaire.RecoveryDays:      2,
		questionnaire.VegetableServings: 5,
		questionnaire.FruitServings:     2,
		questionnaire.WaterIntake:       8,
		questionnaire.ProcessedFood:     "never",
		questionnaire.SugaryDrinks:      0,
		questionnaire.MealsPerDay:       3,
		questionnaire.StressLevel:       1,
		questionnaire.Mood:              10,
		questionnaire.SocialConnection:  5,
		questionnaire.Mindfulness:       true,
		questionnaire.Smoking:           false,
		questionnaire.AlcoholPerWeek:    0,
		questionnaire.SleepHours:        8,
		questionnaire.SleepQuality:      5,
		questionnaire.ScreenBeforeBed:   "none",
		questionnaire.WakeRefreshed:     true,
	}
}

func TestComputePillarScores(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		expected store.PillarScores
	}{
		{
			name:     "no answers scores neutral",
			raw:      map[string]any{},
			expected: store.PillarScores{Exercise: 50, Nutrition: 50, Wellbeing: 50, Sleep: 50, BodyComposition: 50},
		},
		{
			name:     "best answers",
			raw:      bestAnswers(),
			expected: store.PillarScores{Exercise: 100, Nutrition: 100, Wellbeing: 100, Sleep: 100, BodyComposition: 100},
		},
		{
			name: "partial answers blend with neutral",
			raw: map[string]any{
				// (30 + 5*50) / 6 = 46.7
				questionnaire.StrengthTraining: false,
				// (0 + 5*50) / 6 = 41.7
				questionnaire.Smoking: true,
				// (15 + 3*50) / 4 = 41.25
				questionnaire.SleepHours: 3,
			},
			expected: store.PillarScores{Exercise: 47, Nutrition: 50, Wellbeing: 42, Sleep: 41, BodyComposition: 50},
		},
		{
			name: "obese BMI lowers body composition",
			raw: map[string]any{
				// BMI 35.9, estimated body fat ~36 for a 40 year old male
				questionnaire.Weight: 110,
				questionnaire.Height: 175,
				questionnaire.Age:    40,
				questionnaire.Gender: "male",
			},
			// (15 + 35) / 2
			expected: store.PillarScores{Exercise: 50, Nutrition: 50, Wellbeing: 50, Sleep: 50, BodyComposition: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := mustParse(t, tt.raw)
			got := ComputePillarScores(answers, ComputeHealthCalculations(answers))
			if got != tt.expected {
				t.Errorf("ComputePillarScores() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestPillarScoresInRange(t *testing.T) {
	worst := map[string]any{
		questionnaire.Weight:            150,
		questionnaire.Height:            150,
		questionnaire.Age:               70,
		questionnaire.Gender:            "female",
		questionnaire.ActivityLevel:     "sedentary",
		questionnaire.ExerciseFrequency: "none",
		questionnaire.ExerciseIntensity: "low",
		questionnaire.ExerciseDuration:  "<15",
		questionnaire.StrengthTraining:  false,
		questionnaire.RecoveryDays:      7,
		questionnaire.VegetableServings: 0,
		questionnaire.FruitServings:     0,
		questionnaire.WaterIntake:       0,
		questionnaire.ProcessedFood:     "daily",
		questionnaire.SugaryDrinks:      40,
		questionnaire.MealsPerDay:       1,
		questionnaire.StressLevel:       10,
		questionnaire.Mood:              1,
		questionnaire.SocialConnection:  1,
		questionnaire.Mindfulness:       false,
		questionnaire.Smoking:           true,
		questionnaire.AlcoholPerWeek:    30,
		questionnaire.SleepHours:        3,
		questionnaire.SleepQuality:      1,
		questionnaire.ScreenBeforeBed:   "over60",
		questionnaire.WakeRefreshed:     false,
	}

	answers := mustParse(t, worst)
	scores := ComputePillarScores(answers, ComputeHealthCalculations(answers))

	for _, p := range Pillars {
		s := p.Score(scores)
		if s < 0 || s > 100 {
			t.Errorf("%s score %d out of range", p, s)
		}
		if s >= 50 {
			t.Errorf("%s score %d should be below neutral for worst answers", p, s)
		}
	}
}

func TestComputePillarFeedback(t *testing.T) {
	raw := bestAnswers()
	raw[questionnaire.SleepHours] = 4
	raw[questionnaire.ScreenBeforeBed] = "over60"
	raw[questionnaire.WakeRefreshed] = false
	answers := mustParse(t, raw)

	feedback := ComputePillarFeedback(answers, ComputeHealthCalculations(answers))
	if len(feedback) != len(Pillars) {
		t.Fatalf("got %d feedback entries, want %d", len(feedback), len(Pillars))
	}

	for _, f := range feedback {
		switch f.Pillar {
		case PillarSleep:
			// 15 + 100 + 20 + 30 = 165 / 4 = 41.25
			if f.Score != 41 {
				t.Errorf("sleep score = %d, want 41", f.Score)
			}
			if len(f.Recommendations) != 3 {
				t.Fatalf("sleep recommendations = %v, want 3", f.Recommendations)
			}
			// Weakest input first
			if !strings.Contains(f.Recommendations[0], "seven to nine hours") {
				t.Errorf("first recommendation = %q, want sleep hours advice", f.Recommendations[0])
			}
			if !strings.Contains(f.Feedback, "needs some attention") {
				t.Errorf("sleep feedback = %q", f.Feedback)
			}
		case PillarExercise:
			if len(f.Recommendations) != 0 {
				t.Errorf("exercise recommendations = %v, want none", f.Recommendations)
			}
			if !strings.Contains(f.Feedback, "strength") {
				t.Errorf("exercise feedback = %q", f.Feedback)
			}
		}
	}
}

func TestPillarDescription(t *testing.T) {
	tests := []struct {
		score    int
		contains string
	}{
		{95, "strength"},
		{80, "strength"},
		{79, "room to improve"},
		{45, "attention"},
		{10, "priority"},
	}

	for _, tt := range tests {
		got := PillarDescription(PillarNutrition, tt.score)
		if !strings.HasPrefix(got, "Nutrition") || !strings.Contains(got, tt.contains) {
			t.Errorf("PillarDescription(%d) = %q, want it to mention %q", tt.score, got, tt.contains)
		}
	}
}
