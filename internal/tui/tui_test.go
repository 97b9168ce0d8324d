package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"healthscore/internal/config"
	"healthscore/internal/questionnaire"
	"healthscore/internal/service"
	"healthscore/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func TestUnits(t *testing.T) {
	kg := 70.0
	low, high := 56.7, 76.3

	tests := []struct {
		unit      string
		weight    string
		weightPtr string
		rangeStr  string
		height    string
	}{
		{"kg", "70.0 kg", "70.0 kg", "57-76 kg", "175 cm"},
		{"lb", "154.3 lb", "154.3 lb", "125-168 lb", "5'9\""},
		{"", "70.0 kg", "70.0 kg", "57-76 kg", "175 cm"},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			u := NewUnits(config.DisplayConfig{WeightUnit: tt.unit})
			if got := u.FormatWeight(kg); got != tt.weight {
				t.Errorf("FormatWeight = %q, want %q", got, tt.weight)
			}
			if got := u.FormatWeightPtr(&kg); got != tt.weightPtr {
				t.Errorf("FormatWeightPtr = %q, want %q", got, tt.weightPtr)
			}
			if got := u.FormatWeightRange(&low, &high); got != tt.rangeStr {
				t.Errorf("FormatWeightRange = %q, want %q", got, tt.rangeStr)
			}
			if got := u.FormatHeight(175); got != tt.height {
				t.Errorf("FormatHeight = %q, want %q", got, tt.height)
			}
			if got := u.FormatWeightPtr(nil); got != "-" {
				t.Errorf("FormatWeightPtr(nil) = %q, want -", got)
			}
		})
	}
}

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		d    int
		want string
	}{
		{5, "↑ +5"},
		{-3, "↓ -3"},
		{0, "→ 0"},
	}
	for _, tt := range tests {
		if got := formatDelta(tt.d); got != tt.want {
			t.Errorf("formatDelta(%d) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func newTestService(t *testing.T) *service.AssessmentService {
	t.Helper()
	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := service.NewAssessmentService(db, nil, nil)
	next := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time {
		now := next
		next = next.Add(24 * time.Hour)
		return now
	})
	return svc
}

func submit(t *testing.T, svc *service.AssessmentService, sleep int) *store.Assessment {
	t.Helper()
	answers, err := questionnaire.Parse(map[string]any{
		questionnaire.Weight:     70,
		questionnaire.Height:     175,
		questionnaire.SleepHours: sleep,
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	a, err := svc.Submit(context.Background(), "ann", answers)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	return a
}

// run executes a command chain until it produces no message
func run(app *App, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = app.Update(msg)
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppNavigation(t *testing.T) {
	svc := newTestService(t)
	submit(t, svc, 5)
	latest := submit(t, svc, 8)

	app := NewApp(svc, "ann", NewUnits(config.DisplayConfig{WeightUnit: "kg"}))
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	run(app, app.Init())

	view := app.View()
	if !strings.Contains(view, "Overall Health") || !strings.Contains(view, "Day streak") {
		t.Errorf("dashboard view missing cards:\n%s", view)
	}

	_, cmd := app.Update(key("2"))
	run(app, cmd)
	if app.screen != ScreenHistory {
		t.Fatalf("screen = %d, want history", app.screen)
	}
	if !strings.Contains(app.View(), "Assessments (1-2 of 2)") {
		t.Errorf("history view:\n%s", app.View())
	}

	// Newest is first; enter opens it
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(app, cmd)
	if app.screen != ScreenDetail || app.detail.id != latest.ID {
		t.Fatalf("screen = %d id = %q, want detail of %q", app.screen, app.detail.id, latest.ID)
	}
	if !strings.Contains(app.View(), "Body Metrics") {
		t.Errorf("detail view:\n%s", app.View())
	}

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	run(app, cmd)
	if app.screen != ScreenHistory {
		t.Errorf("esc from detail should return to history, got %d", app.screen)
	}

	_, cmd = app.Update(key("3"))
	run(app, cmd)
	if !strings.Contains(app.View(), "Sleep & Recovery") {
		t.Errorf("comparison view:\n%s", app.View())
	}

	_, cmd = app.Update(key("?"))
	run(app, cmd)
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	run(app, cmd)
	if app.screen != ScreenComparisons {
		t.Errorf("esc from help should restore the previous screen, got %d", app.screen)
	}
}

func TestAppDeleteFromDetail(t *testing.T) {
	svc := newTestService(t)
	a := submit(t, svc, 7)

	app := NewApp(svc, "ann", NewUnits(config.DisplayConfig{}))
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	_, cmd := app.Update(OpenAssessmentDetailMsg{ID: a.ID})
	run(app, cmd)

	_, cmd = app.Update(key("d"))
	run(app, cmd)
	if !app.detail.confirming {
		t.Fatal("d should ask for confirmation")
	}

	_, cmd = app.Update(key("y"))
	run(app, cmd)

	if app.screen != ScreenHistory {
		t.Errorf("screen = %d, want history after delete", app.screen)
	}
	if _, err := svc.GetAssessment(a.ID); err == nil {
		t.Error("assessment should be deleted")
	}
	if !strings.Contains(app.View(), "Assessment deleted") {
		t.Errorf("status should confirm deletion:\n%s", app.View())
	}
}
