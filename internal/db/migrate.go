package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS syllabi (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		name        TEXT NOT NULL,
		exam_date   TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_syllabi_user ON syllabi(user_id)`,

	`CREATE TABLE IF NOT EXISTS topics (
		id               TEXT PRIMARY KEY,
		syllabus_id      TEXT NOT NULL REFERENCES syllabi(id) ON DELETE CASCADE,
		name             TEXT NOT NULL,
		subject          TEXT NOT NULL DEFAULT '',
		weight           REAL NOT NULL CHECK(weight >= 0 AND weight <= 100),
		estimated_hours  REAL NOT NULL CHECK(estimated_hours >= 0),
		difficulty       TEXT NOT NULL CHECK(difficulty IN ('easy','medium','hard')),
		prerequisites    TEXT NOT NULL DEFAULT '[]',
		subtopics        TEXT NOT NULL DEFAULT '[]',
		order_index      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_topics_syllabus ON topics(syllabus_id)`,

	`CREATE TABLE IF NOT EXISTS study_plans (
		id            TEXT PRIMARY KEY,
		syllabus_id   TEXT NOT NULL REFERENCES syllabi(id) ON DELETE CASCADE,
		user_id       TEXT NOT NULL,
		start_date    TEXT NOT NULL,
		end_date      TEXT NOT NULL,
		total_hours   REAL NOT NULL DEFAULT 0,
		daily_hours   REAL NOT NULL CHECK(daily_hours > 0),
		is_active     INTEGER NOT NULL DEFAULT 1,
		progress      INTEGER NOT NULL DEFAULT 0 CHECK(progress >= 0 AND progress <= 100),
		last_updated  TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_study_plans_user ON study_plans(user_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_study_plans_one_active
		ON study_plans(user_id, syllabus_id) WHERE is_active = 1`,

	`CREATE TABLE IF NOT EXISTS study_sessions (
		id               TEXT PRIMARY KEY,
		plan_id          TEXT NOT NULL REFERENCES study_plans(id) ON DELETE CASCADE,
		topic_id         TEXT NOT NULL,
		topic_name       TEXT NOT NULL DEFAULT '',
		subject          TEXT NOT NULL DEFAULT '',
		scheduled_date   TEXT NOT NULL,
		duration         INTEGER NOT NULL CHECK(duration > 0),
		priority         TEXT NOT NULL CHECK(priority IN ('low','medium','high')),
		status           TEXT NOT NULL DEFAULT 'pending'
		                 CHECK(status IN ('pending','completed','postponed')),
		actual_duration  INTEGER,
		notes            TEXT NOT NULL DEFAULT '',
		order_index      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_study_sessions_plan ON study_sessions(plan_id)`,
	`ALTER TABLE study_sessions ADD COLUMN performance INTEGER`,

	`CREATE TABLE IF NOT EXISTS flashcards (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		front       TEXT NOT NULL,
		back        TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_flashcards_user ON flashcards(user_id)`,
	`ALTER TABLE flashcards ADD COLUMN subject TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS flashcard_review_states (
		flashcard_id      TEXT PRIMARY KEY REFERENCES flashcards(id) ON DELETE CASCADE,
		interval_days     INTEGER NOT NULL DEFAULT 1 CHECK(interval_days >= 1),
		repetitions       INTEGER NOT NULL DEFAULT 0 CHECK(repetitions >= 0),
		ease_factor       REAL NOT NULL DEFAULT 2.5 CHECK(ease_factor >= 1.3),
		next_review_date  TEXT NOT NULL,
		last_reviewed_at  TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_review_states_due ON flashcard_review_states(next_review_date)`,

	`CREATE TABLE IF NOT EXISTS flashcard_reviews (
		id             TEXT PRIMARY KEY,
		flashcard_id   TEXT NOT NULL REFERENCES flashcards(id) ON DELETE CASCADE,
		quality        INTEGER NOT NULL CHECK(quality >= 0 AND quality <= 5),
		interval_days  INTEGER NOT NULL,
		ease_factor    REAL NOT NULL,
		repetitions    INTEGER NOT NULL,
		reviewed_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_flashcard_reviews_card ON flashcard_reviews(flashcard_id)`,

	`CREATE TABLE IF NOT EXISTS exams (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS questions (
		id              TEXT PRIMARY KEY,
		exam_id         TEXT NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
		subject         TEXT NOT NULL,
		prompt          TEXT NOT NULL DEFAULT '',
		correct_answer  TEXT NOT NULL,
		order_index     INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_exam ON questions(exam_id)`,

	`CREATE TABLE IF NOT EXISTS exam_results (
		id            TEXT PRIMARY KEY,
		exam_id       TEXT NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
		user_id       TEXT NOT NULL,
		time_spent    REAL NOT NULL DEFAULT 0 CHECK(time_spent >= 0),
		completed_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_exam_results_user ON exam_results(user_id)`,

	`CREATE TABLE IF NOT EXISTS exam_answers (
		result_id    TEXT NOT NULL REFERENCES exam_results(id) ON DELETE CASCADE,
		question_id  TEXT NOT NULL,
		answer       TEXT NOT NULL,
		PRIMARY KEY (result_id, question_id)
	)`,
}
