package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"healthscore/internal/analysis"
	"healthscore/internal/questionnaire"
	"healthscore/internal/store"
)

// openTestDB creates an in-memory SQLite database with migrations applied
func openTestDB(t *testing.T) *store.DB {
	t.Helper()

	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

type fakeCoach struct {
	text  string
	err   error
	calls int
}

func (f *fakeCoach) GenerateCoaching(_ context.Context, _ analysis.Result) (string, error) {
	f.calls++
	return f.text, f.err
}

// dailyClock returns a clock that advances one day per call
func dailyClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(24 * time.Hour)
		return t
	}
}

func answers(t *testing.T, raw map[string]any) questionnaire.AnswerSet {
	t.Helper()
	set, err := questionnaire.Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return set
}

func profile() map[string]any {
	return map[string]any{
		questionnaire.Weight:        70,
		questionnaire.Height:        175,
		questionnaire.Age:           30,
		questionnaire.Gender:        "male",
		questionnaire.ActivityLevel: "moderate",
	}
}

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestSubmit(t *testing.T) {
	tests := []struct {
		name    string
		coach   *fakeCoach
		checkFn func(t *testing.T, db *store.DB, a *store.Assessment, c *fakeCoach)
	}{
		{
			name: "no coach configured",
			checkFn: func(t *testing.T, db *store.DB, a *store.Assessment, c *fakeCoach) {
				if a.Coaching != nil {
					t.Errorf("Coaching = %q, want nil", *a.Coaching)
				}
			},
		},
		{
			name:  "coaching attached",
			coach: &fakeCoach{text: "Walk more."},
			checkFn: func(t *testing.T, db *store.DB, a *store.Assessment, c *fakeCoach) {
				if c.calls != 1 {
					t.Errorf("coach called %d times, want 1", c.calls)
				}
				stored, err := db.GetAssessment(a.ID)
				if err != nil {
					t.Fatalf("GetAssessment failed: %v", err)
				}
				if stored.Coaching == nil || *stored.Coaching != "Walk more." {
					t.Errorf("stored coaching = %v", stored.Coaching)
				}
			},
		},
		{
			name:  "coach failure keeps assessment",
			coach: &fakeCoach{err: errors.New("upstream down")},
			checkFn: func(t *testing.T, db *store.DB, a *store.Assessment, c *fakeCoach) {
				if a.Coaching != nil {
					t.Error("Coaching should stay nil when the coach fails")
				}
				if _, err := db.GetAssessment(a.ID); err != nil {
					t.Errorf("assessment should be stored: %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openTestDB(t)
			var coach Coach
			if tt.coach != nil {
				coach = tt.coach
			}
			svc := NewAssessmentService(db, coach, nil)
			svc.SetClock(func() time.Time { return epoch })

			a, err := svc.Submit(context.Background(), "ann", answers(t, profile()))
			if err != nil {
				t.Fatalf("Submit failed: %v", err)
			}

			if a.ID == "" || a.UserID != "ann" {
				t.Errorf("assessment = %+v", a)
			}
			if !a.CreatedAt.Equal(epoch) {
				t.Errorf("CreatedAt = %v, want %v", a.CreatedAt, epoch)
			}
			want := analysis.Assess(a.Answers)
			if a.OverallScore != want.OverallScore || a.Scores != want.Scores {
				t.Errorf("scores = %d %+v, want %d %+v", a.OverallScore, a.Scores, want.OverallScore, want.Scores)
			}
			tt.checkFn(t, db, a, tt.coach)
		})
	}
}

func TestSubmit_RequiresUser(t *testing.T) {
	svc := NewAssessmentService(openTestDB(t), nil, nil)
	if _, err := svc.Submit(context.Background(), "", answers(t, profile())); err == nil {
		t.Error("expected error for empty user id")
	}
}

func TestGetDashboardData(t *testing.T) {
	t.Run("no assessments", func(t *testing.T) {
		svc := NewAssessmentService(openTestDB(t), nil, nil)
		data, err := svc.GetDashboardData("nobody")
		if err != nil {
			t.Fatalf("GetDashboardData failed: %v", err)
		}
		if data.Latest != nil || data.Streak != 0 || data.TotalCount != 0 {
			t.Errorf("data = %+v, want empty dashboard", data)
		}
		if data.ScoreHistory == nil || data.Recent == nil {
			t.Error("slices should be empty, not nil")
		}
	})

	t.Run("three daily assessments", func(t *testing.T) {
		svc := NewAssessmentService(openTestDB(t), nil, nil)
		svc.SetClock(dailyClock(epoch))

		sleepy := profile()
		sleepy[questionnaire.SleepHours] = 4
		rested := profile()
		rested[questionnaire.SleepHours] = 8

		var last *store.Assessment
		for _, raw := range []map[string]any{profile(), sleepy, rested} {
			a, err := svc.Submit(context.Background(), "ann", answers(t, raw))
			if err != nil {
				t.Fatalf("Submit failed: %v", err)
			}
			last = a
		}

		data, err := svc.GetDashboardData("ann")
		if err != nil {
			t.Fatalf("GetDashboardData failed: %v", err)
		}

		if data.Latest == nil || data.Latest.ID != last.ID {
			t.Fatalf("Latest = %+v, want %s", data.Latest, last.ID)
		}
		if data.Previous == nil {
			t.Fatal("Previous should be set")
		}
		if data.Streak != 3 {
			t.Errorf("Streak = %d, want 3", data.Streak)
		}
		if data.CompletionRate != 100 {
			t.Errorf("CompletionRate = %d, want 100", data.CompletionRate)
		}
		if data.Latest.Scores.Sleep <= data.Previous.Scores.Sleep {
			t.Errorf("sleep score should improve: %d -> %d", data.Previous.Scores.Sleep, data.Latest.Scores.Sleep)
		}
		if data.Comparison.Improved < 1 {
			t.Errorf("Comparison = %+v, want at least one improvement", data.Comparison)
		}
		total := data.Comparison.Improved + data.Comparison.Unchanged + data.Comparison.Declined
		if total != 5 {
			t.Errorf("comparison covers %d metrics, want 5", total)
		}
		if len(data.ScoreHistory) != 3 || data.ScoreHistory[2] != last.OverallScore {
			t.Errorf("ScoreHistory = %v", data.ScoreHistory)
		}
		if len(data.Recent) != 3 || data.Recent[0].ID != last.ID {
			t.Errorf("Recent should be newest first")
		}
		if data.Description != analysis.ScoreDescription(last.OverallScore) {
			t.Errorf("Description = %q", data.Description)
		}
		if len(data.Feedback) != len(analysis.Pillars) {
			t.Errorf("Feedback has %d entries, want %d", len(data.Feedback), len(analysis.Pillars))
		}
	})
}

func TestGetHistoryAndDelete(t *testing.T) {
	svc := NewAssessmentService(openTestDB(t), nil, nil)
	svc.SetClock(dailyClock(epoch))

	first, err := svc.Submit(context.Background(), "ann", answers(t, profile()))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := svc.Submit(context.Background(), "ann", answers(t, profile())); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := svc.Submit(context.Background(), "bob", answers(t, profile())); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	history, err := svc.GetHistory("ann")
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 2 || history[0].ID != first.ID {
		t.Fatalf("history = %d records, first %q", len(history), history[0].ID)
	}

	if err := svc.DeleteAssessment(first.ID); err != nil {
		t.Fatalf("DeleteAssessment failed: %v", err)
	}
	if _, err := svc.GetAssessment(first.ID); !errors.Is(err, store.ErrAssessmentNotFound) {
		t.Errorf("GetAssessment after delete: %v, want ErrAssessmentNotFound", err)
	}
	if err := svc.DeleteAssessment(first.ID); !errors.Is(err, store.ErrAssessmentNotFound) {
		t.Errorf("second delete: %v, want ErrAssessmentNotFound", err)
	}
}

func TestGetAdminAnalytics(t *testing.T) {
	t.Run("empty database", func(t *testing.T) {
		svc := NewAssessmentService(openTestDB(t), nil, nil)
		stats, err := svc.GetAdminAnalytics(context.Background())
		if err != nil {
			t.Fatalf("GetAdminAnalytics failed: %v", err)
		}
		if stats.UserCount != 0 || stats.AssessmentCount != 0 || stats.AvgOverall != 0 {
			t.Errorf("stats = %+v, want zeros", stats)
		}
		if len(stats.AvgPillars) != len(analysis.Pillars) {
			t.Errorf("AvgPillars should list every pillar, got %v", stats.AvgPillars)
		}
	})

	t.Run("several users", func(t *testing.T) {
		svc := NewAssessmentService(openTestDB(t), nil, nil)
		svc.SetClock(dailyClock(epoch))

		submit := func(user string, raw map[string]any) *store.Assessment {
			t.Helper()
			a, err := svc.Submit(context.Background(), user, answers(t, raw))
			if err != nil {
				t.Fatalf("Submit failed: %v", err)
			}
			return a
		}

		// ann: two consecutive days, normal BMI
		submit("ann", profile())
		ann := submit("ann", profile())
		// bob: one assessment with nothing answered
		bob := submit("bob", map[string]any{})

		stats, err := svc.GetAdminAnalytics(context.Background())
		if err != nil {
			t.Fatalf("GetAdminAnalytics failed: %v", err)
		}

		if stats.UserCount != 2 {
			t.Errorf("UserCount = %d, want 2", stats.UserCount)
		}
		if stats.AssessmentCount != 3 {
			t.Errorf("AssessmentCount = %d, want 3", stats.AssessmentCount)
		}

		wantOverall := float64(ann.OverallScore+bob.OverallScore) / 2
		if math.Abs(stats.AvgOverall-wantOverall) > 0.051 {
			t.Errorf("AvgOverall = %.1f, want %.1f", stats.AvgOverall, wantOverall)
		}
		// Unanswered pillars count as 50
		if bob.Scores.Sleep != 50 {
			t.Fatalf("empty answer set sleep score = %d, want 50", bob.Scores.Sleep)
		}
		wantSleep := float64(ann.Scores.Sleep+50) / 2
		if math.Abs(stats.AvgPillars["sleep"]-wantSleep) > 0.051 {
			t.Errorf("AvgPillars[sleep] = %.1f, want %.1f", stats.AvgPillars["sleep"], wantSleep)
		}

		if stats.BMICategories[analysis.BMINormal] != 1 || stats.BMICategories["unknown"] != 1 {
			t.Errorf("BMICategories = %v", stats.BMICategories)
		}
		// ann has a 2-day streak, bob 1
		if stats.AvgStreak != 1.5 {
			t.Errorf("AvgStreak = %.1f, want 1.5", stats.AvgStreak)
		}
		if stats.AvgCompletion != 100 {
			t.Errorf("AvgCompletion = %.1f, want 100", stats.AvgCompletion)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		svc := NewAssessmentService(openTestDB(t), nil, nil)
		if _, err := svc.Submit(context.Background(), "ann", answers(t, profile())); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := svc.GetAdminAnalytics(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestAggregateSkipsVanishedUsers(t *testing.T) {
	summaries := []*userSummary{
		{
			streak:     3,
			completion: 80,
			latest: store.Assessment{
				OverallScore: 70,
				Scores:       store.PillarScores{Exercise: 60, Nutrition: 70, Wellbeing: 80, Sleep: 90, BodyComposition: 50},
				Calculations: store.HealthCalculations{BMICategory: analysis.BMINormal},
			},
		},
		nil, // deleted while the aggregate was being built
		{
			streak:     1,
			completion: 40,
			latest: store.Assessment{
				OverallScore: 50,
				Scores:       store.PillarScores{Exercise: 40, Nutrition: 50, Wellbeing: 60, Sleep: 70, BodyComposition: 30},
			},
		},
	}

	got := aggregate(summaries)

	if got.UserCount != 2 {
		t.Errorf("UserCount = %d, want 2", got.UserCount)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"AvgOverall", got.AvgOverall, 60},
		{"AvgStreak", got.AvgStreak, 2},
		{"AvgCompletion", got.AvgCompletion, 60},
		{"AvgPillars[sleep]", got.AvgPillars["sleep"], 80},
		{"AvgPillars[exercise]", got.AvgPillars["exercise"], 50},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 0.001 {
			t.Errorf("%s = %.1f, want %.1f", c.name, c.got, c.want)
		}
	}
	if got.BMICategories[analysis.BMINormal] != 1 || got.BMICategories["unknown"] != 1 {
		t.Errorf("BMICategories = %v", got.BMICategories)
	}

	if empty := aggregate([]*userSummary{nil, nil}); empty.UserCount != 0 || empty.AvgOverall != 0 {
		t.Errorf("all vanished = %+v, want zeros", empty)
	}
}
