package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"healthscore/internal/analysis"
	"healthscore/internal/logger"
	"healthscore/internal/questionnaire"
	"healthscore/internal/store"
)

// Coach generates coaching text for an assessment result
type Coach interface {
	GenerateCoaching(ctx context.Context, result analysis.Result) (string, error)
}

// AssessmentService scores, stores and queries assessments
type AssessmentService struct {
	store *store.DB
	coach Coach
	log   *logger.Logger
	now   func() time.Time
}

// NewAssessmentService creates a new assessment service. coach and log may be nil.
func NewAssessmentService(db *store.DB, coach Coach, log *logger.Logger) *AssessmentService {
	if log == nil {
		log = logger.Nop()
	}
	return &AssessmentService{
		store: db,
		coach: coach,
		log:   log,
		now:   time.Now,
	}
}

// SetClock replaces the time source used to stamp new assessments
func (s *AssessmentService) SetClock(now func() time.Time) {
	s.now = now
}

// Submit scores an answer set and stores the result for userID.
// Coaching failures are logged; the assessment is kept without coaching.
func (s *AssessmentService) Submit(ctx context.Context, userID string, answers questionnaire.AnswerSet) (*store.Assessment, error) {
	if userID == "" {
		return nil, errors.New("submitting assessment: user id required")
	}

	result := analysis.Assess(answers)
	a := &store.Assessment{
		ID:           uuid.NewString(),
		UserID:       userID,
		CreatedAt:    s.now().UTC(),
		Answers:      answers,
		Calculations: result.Calculations,
		Scores:       result.Scores,
		OverallScore: result.OverallScore,
	}

	if err := s.store.SaveAssessment(a); err != nil {
		return nil, fmt.Errorf("saving assessment: %w", err)
	}
	s.log.Info("assessment stored",
		"assessment_id", a.ID,
		"user_id", userID,
		"overall_score", a.OverallScore,
		"answered", answers.Len(),
	)

	if s.coach == nil {
		return a, nil
	}

	text, err := s.coach.GenerateCoaching(ctx, result)
	if err != nil {
		s.log.Warn("coaching unavailable", "assessment_id", a.ID, "error", err)
		return a, nil
	}
	if err := s.store.UpdateCoaching(a.ID, text); err != nil {
		s.log.Warn("storing coaching failed", "assessment_id", a.ID, "error", err)
		return a, nil
	}
	a.Coaching = &text

	if rl, ok := s.coach.(interface{ RemainingRequests() int }); ok {
		s.log.Debug("coaching attached", "assessment_id", a.ID, "coach_requests_left", rl.RemainingRequests())
	}
	return a, nil
}

// Result recomputes the engine output (including feedback) for a stored assessment
func (s *AssessmentService) Result(a *store.Assessment) analysis.Result {
	return analysis.Assess(a.Answers)
}

// GetAssessment returns one assessment by ID
func (s *AssessmentService) GetAssessment(id string) (*store.Assessment, error) {
	return s.store.GetAssessment(id)
}

// DeleteAssessment removes one assessment by ID
func (s *AssessmentService) DeleteAssessment(id string) error {
	if err := s.store.DeleteAssessment(id); err != nil {
		return err
	}
	s.log.Info("assessment deleted", "assessment_id", id)
	return nil
}

// GetHistory returns every assessment for a user, oldest first
func (s *AssessmentService) GetHistory(userID string) ([]store.Assessment, error) {
	return s.store.ListAssessments(userID)
}
