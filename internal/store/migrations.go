package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Assessments (one row per submitted questionnaire)
		`CREATE TABLE IF NOT EXISTS assessments (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			answers TEXT NOT NULL,
			calculations TEXT NOT NULL,
			overall_score INTEGER NOT NULL,
			exercise_score INTEGER NOT NULL,
			nutrition_score INTEGER NOT NULL,
			wellbeing_score INTEGER NOT NULL,
			sleep_score INTEGER NOT NULL,
			body_composition_score INTEGER NOT NULL,
			coaching TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_assessments_user_created ON assessments(user_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
