package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"healthscore/internal/questionnaire"
)

// ErrAssessmentNotFound is returned when an assessment doesn't exist
var ErrAssessmentNotFound = errors.New("assessment not found")

// timeFormat is fixed-width so created_at sorts lexically
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

const assessmentColumns = `id, user_id, created_at, answers, calculations,
	overall_score, exercise_score, nutrition_score, wellbeing_score, sleep_score,
	body_composition_score, coaching`

// SaveAssessment inserts a new assessment. Existing records are never overwritten.
func (db *DB) SaveAssessment(a *Assessment) error {
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return fmt.Errorf("encoding answers: %w", err)
	}
	calcs, err := json.Marshal(a.Calculations)
	if err != nil {
		return fmt.Errorf("encoding calculations: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO assessments (`+assessmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID, a.UserID, a.CreatedAt.UTC().Format(timeFormat), string(answers), string(calcs),
		a.OverallScore, a.Scores.Exercise, a.Scores.Nutrition, a.Scores.Wellbeing, a.Scores.Sleep,
		a.Scores.BodyComposition, a.Coaching,
	)
	if err != nil {
		return fmt.Errorf("inserting assessment %s: %w", a.ID, err)
	}
	return nil
}

// GetAssessment retrieves an assessment by ID
func (db *DB) GetAssessment(id string) (*Assessment, error) {
	row := db.QueryRow(`
		SELECT `+assessmentColumns+`
		FROM assessments
		WHERE id = ?
	`, id)

	a, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAssessments returns a user's assessments ordered oldest first
func (db *DB) ListAssessments(userID string) ([]Assessment, error) {
	rows, err := db.Query(`
		SELECT `+assessmentColumns+`
		FROM assessments
		WHERE user_id = ?
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssessments(rows)
}

// LatestAssessments returns up to n of a user's most recent assessments, newest first
func (db *DB) LatestAssessments(userID string, n int) ([]Assessment, error) {
	rows, err := db.Query(`
		SELECT `+assessmentColumns+`
		FROM assessments
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssessments(rows)
}

// DeleteAssessment removes an assessment
func (db *DB) DeleteAssessment(id string) error {
	result, err := db.Exec(`DELETE FROM assessments WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAssessmentNotFound
	}
	return nil
}

// UpdateCoaching attaches generated coaching text to an assessment
func (db *DB) UpdateCoaching(id, text string) error {
	result, err := db.Exec(`UPDATE assessments SET coaching = ? WHERE id = ?`, text, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAssessmentNotFound
	}
	return nil
}

// ListUserIDs returns every user with at least one assessment
func (db *DB) ListUserIDs() ([]string, error) {
	rows, err := db.Query(`SELECT DISTINCT user_id FROM assessments ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountAssessments returns the total number of assessments
func (db *DB) CountAssessments() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM assessments").Scan(&count)
	return count, err
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// scanAssessment scans a single assessment
func scanAssessment(s scanner) (*Assessment, error) {
	var a Assessment
	var createdAt, answers, calcs string
	var coaching sql.NullString

	err := s.Scan(
		&a.ID, &a.UserID, &createdAt, &answers, &calcs,
		&a.OverallScore, &a.Scores.Exercise, &a.Scores.Nutrition, &a.Scores.Wellbeing, &a.Scores.Sleep,
		&a.Scores.BodyComposition, &coaching,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt, err = time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	var rawAnswers map[string]any
	if err := json.Unmarshal([]byte(answers), &rawAnswers); err != nil {
		return nil, fmt.Errorf("decoding answers of %s: %w", a.ID, err)
	}
	// Answers the current catalog no longer accepts are dropped
	a.Answers, _ = questionnaire.ParseLenient(rawAnswers)
	if err := json.Unmarshal([]byte(calcs), &a.Calculations); err != nil {
		return nil, fmt.Errorf("decoding calculations of %s: %w", a.ID, err)
	}
	if coaching.Valid {
		a.Coaching = &coaching.String
	}

	return &a, nil
}

// scanAssessments scans multiple assessments from rows
func scanAssessments(rows *sql.Rows) ([]Assessment, error) {
	var assessments []Assessment

	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, *a)
	}

	return assessments, rows.Err()
}
