package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	err := Migrate(db)
	require.NoError(t, err)

	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"syllabi", "topics", "study_plans", "study_sessions",
		"flashcards", "flashcard_review_states", "flashcard_reviews",
		"exams", "questions", "exam_results", "exam_answers",
	}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_syllabi_user",
		"idx_topics_syllabus",
		"idx_study_plans_user",
		"idx_study_plans_one_active",
		"idx_study_sessions_plan",
		"idx_flashcards_user",
		"idx_review_states_due",
		"idx_flashcard_reviews_card",
		"idx_questions_exam",
		"idx_exam_results_user",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_AddedColumnsExist(t *testing.T) {
	db := openTestDB(t)

	assert.True(t, hasColumn(t, db, "study_sessions", "performance"))
	assert.True(t, hasColumn(t, db, "flashcards", "subject"))
}

func TestMigrate_UpgradeKeepsLegacyFlashcards(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE flashcards (
		id TEXT PRIMARY KEY, user_id TEXT NOT NULL, front TEXT NOT NULL,
		back TEXT NOT NULL, created_at TEXT NOT NULL, updated_at TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO flashcards VALUES ('c1','u1','front','back','2025-01-01T00:00:00Z','2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var subject string
	require.NoError(t, db.QueryRow(`SELECT subject FROM flashcards WHERE id = 'c1'`).Scan(&subject))
	assert.Equal(t, "", subject)
}

func TestMigrate_OnlyOneActivePlanPerSyllabus(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO syllabi (id, user_id, name, exam_date, created_at)
		VALUES ('s1','u1','Edital','2025-06-01','2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	insertPlan := `INSERT INTO study_plans (id, syllabus_id, user_id, start_date, end_date, daily_hours, is_active, last_updated, created_at)
		VALUES (?, 's1', 'u1', '2025-01-01', '2025-06-01', 2, ?, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`
	_, err = db.Exec(insertPlan, "p1", 1)
	require.NoError(t, err)
	_, err = db.Exec(insertPlan, "p2", 0)
	require.NoError(t, err, "inactive plans do not conflict")
	_, err = db.Exec(insertPlan, "p3", 1)
	assert.Error(t, err, "second active plan must be rejected")
}

func TestOpenDB_ForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO topics (id, syllabus_id, name, weight, estimated_hours, difficulty)
		VALUES ('t1', 'missing', 'Topic', 10, 1, 'easy')`)
	assert.Error(t, err)
}

func hasColumn(t *testing.T, db *sql.DB, table, column string) bool {
	t.Helper()
	rows, err := db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		if name == column {
			return true
		}
	}
	return false
}
