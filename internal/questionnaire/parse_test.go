package questionnaire

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		wantErr []string // fields expected in the validation error
		checkFn func(t *testing.T, set AnswerSet)
	}{
		{
			name: "typical answers",
			raw: map[string]any{
				Weight:           70.0,
				Height:           175,
				Age:              "30",
				Gender:           "male",
				StrengthTraining: "yes",
				StressLevel:      4.0,
				HealthConditions: []any{"asthma", "asthma"},
				Notes:            "  knee injury  ",
			},
			checkFn: func(t *testing.T, set AnswerSet) {
				if set.Len() != 8 {
					t.Errorf("Len() = %d, want 8", set.Len())
				}
				if w, ok := set.Number(Weight); !ok || w != 70 {
					t.Errorf("Number(weight) = %v, %v, want 70, true", w, ok)
				}
				if a, ok := set.Number(Age); !ok || a != 30 {
					t.Errorf("Number(age) = %v, %v, want 30, true", a, ok)
				}
				if g, ok := set.Choice(Gender); !ok || g != "male" {
					t.Errorf("Choice(gender) = %q, %v", g, ok)
				}
				if b, ok := set.Bool(StrengthTraining); !ok || !b {
					t.Errorf("Bool(strengthTraining) = %v, %v", b, ok)
				}
				if s, ok := set.Number(StressLevel); !ok || s != 4 {
					t.Errorf("Number(stressLevel) = %v, %v", s, ok)
				}
				conditions, ok := set.Choices(HealthConditions)
				if !ok || len(conditions) != 1 || conditions[0] != "asthma" {
					t.Errorf("Choices(healthConditions) = %v, %v, want [asthma]", conditions, ok)
				}
				a, _ := set.Get(Notes)
				if text, _ := a.Text(); text != "knee injury" {
					t.Errorf("notes = %q, want trimmed text", text)
				}
			},
		},
		{
			name: "blank values are unanswered",
			raw: map[string]any{
				Weight: nil,
				Gender: "",
				Height: 180,
			},
			checkFn: func(t *testing.T, set AnswerSet) {
				if set.Len() != 1 {
					t.Errorf("Len() = %d, want 1", set.Len())
				}
				if _, ok := set.Number(Weight); ok {
					t.Error("weight should be unanswered")
				}
			},
		},
		{
			name: "negative weight rejected",
			raw: map[string]any{
				Weight: -5,
			},
			wantErr: []string{Weight},
		},
		{
			name: "every problem is reported",
			raw: map[string]any{
				"favouriteColour": "blue",
				ActivityLevel:     "extreme",
				SleepQuality:      3.5,
				Smoking:           "sometimes",
				HealthConditions:  []any{"none", 3},
			},
			wantErr: []string{ActivityLevel, "favouriteColour", HealthConditions, SleepQuality, Smoking},
		},
		{
			name: "scale out of range",
			raw: map[string]any{
				Mood: 11,
			},
			wantErr: []string{Mood},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Parse(tt.raw)
			if len(tt.wantErr) > 0 {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("Parse() error = %v, want *ValidationError", err)
				}
				if len(verr.Fields) != len(tt.wantErr) {
					t.Fatalf("got %d field errors (%v), want %d", len(verr.Fields), verr, len(tt.wantErr))
				}
				for i, f := range verr.Fields {
					if f.Field != tt.wantErr[i] {
						t.Errorf("field error %d = %q, want %q", i, f.Field, tt.wantErr[i])
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			tt.checkFn(t, set)
		})
	}
}

func TestParseLenient(t *testing.T) {
	set, dropped := ParseLenient(map[string]any{
		Weight:            82.5,
		Mood:              11,
		"favouriteColour": "green",
		Notes:             "",
	})

	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}
	if w, ok := set.Number(Weight); !ok || w != 82.5 {
		t.Errorf("Number(weight) = %v, %v, want 82.5, true", w, ok)
	}

	var fields []string
	for _, f := range dropped {
		fields = append(fields, f.Field)
	}
	want := []string{"favouriteColour", Mood}
	if strings.Join(fields, ",") != strings.Join(want, ",") {
		t.Errorf("dropped = %v, want %v", fields, want)
	}

	if _, err := Parse(map[string]any{Weight: 82.5, Mood: 11}); err == nil {
		t.Error("Parse() should still reject what ParseLenient drops")
	}
}

func TestAnswerAccessorsRespectKind(t *testing.T) {
	a := ChoiceAnswer("moderate")
	if _, ok := a.Number(); ok {
		t.Error("choice answer should not expose a number")
	}
	if _, ok := a.Bool(); ok {
		t.Error("choice answer should not expose a bool")
	}

	s := ScaleAnswer(7)
	if n, ok := s.Number(); !ok || n != 7 {
		t.Errorf("ScaleAnswer(7).Number() = %v, %v", n, ok)
	}

	m := ChoicesAnswer("a", "b")
	c, _ := m.Choices()
	c[0] = "changed"
	again, _ := m.Choices()
	if again[0] != "a" {
		t.Error("Choices() must return a copy")
	}
}

func TestAnswerSetJSONRoundTrip(t *testing.T) {
	set, err := Parse(map[string]any{
		Weight:       82.5,
		SleepQuality: 4,
		Goal:         "lose",
		Mindfulness:  true,
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded AnswerSet
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Len() != 4 {
		t.Errorf("decoded Len() = %d, want 4", decoded.Len())
	}
	if q, ok := decoded.Number(SleepQuality); !ok || q != 4 {
		t.Errorf("decoded sleepQuality = %v, %v", q, ok)
	}
}

func TestDecode(t *testing.T) {
	t.Run("yaml nested under answers", func(t *testing.T) {
		data := []byte("answers:\n  weight: 70\n  height: 175\n  gender: female\n")
		set, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if g, _ := set.Choice(Gender); g != "female" {
			t.Errorf("gender = %q, want female", g)
		}
	})

	t.Run("json at top level", func(t *testing.T) {
		set, err := Decode([]byte(`{"weight": 70, "smoking": false}`))
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if b, ok := set.Bool(Smoking); !ok || b {
			t.Errorf("smoking = %v, %v, want false, true", b, ok)
		}
	})

	t.Run("LoadFile reports missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil || !strings.Contains(err.Error(), "reading answers file") {
			t.Errorf("LoadFile() error = %v", err)
		}
	})

	t.Run("LoadFile reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "answers.yaml")
		if err := os.WriteFile(path, []byte("height: 160\n"), 0600); err != nil {
			t.Fatal(err)
		}
		set, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if h, _ := set.Number(Height); h != 160 {
			t.Errorf("height = %v, want 160", h)
		}
	})
}

func TestCatalog(t *testing.T) {
	seen := make(map[string]bool)
	for _, q := range Questions() {
		if seen[q.ID] {
			t.Errorf("duplicate question %q", q.ID)
		}
		seen[q.ID] = true
		if (q.Kind == KindSingle || q.Kind == KindMulti) && len(q.Options) == 0 {
			t.Errorf("question %q has no options", q.ID)
		}
		if (q.Kind == KindNumber || q.Kind == KindScale) && q.Max <= q.Min {
			t.Errorf("question %q has an empty range", q.ID)
		}
	}
}
