package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyllabusRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSyllabusRepo(db)
	ctx := context.Background()

	prereq := testutil.NewTestTopic("Lógica")
	dependent := testutil.NewTestTopic("Raciocínio", testutil.WithPrerequisites(prereq.ID))
	dependent.Subtopics = []string{"Silogismos", "Tabelas-verdade"}
	syl := testutil.NewTestSyllabus("TRF 2025", testutil.WithTopics(prereq, dependent))
	require.NoError(t, repo.Create(ctx, syl))

	fetched, err := repo.GetByID(ctx, syl.ID)
	require.NoError(t, err)
	assert.Equal(t, "TRF 2025", fetched.Name)
	assert.Equal(t, testutil.TestUserID, fetched.UserID)
	assert.Equal(t, syl.ExamDate, fetched.ExamDate)
	assert.Equal(t, syl.CreatedAt, fetched.CreatedAt)

	require.Len(t, fetched.Topics, 2)
	assert.Equal(t, "Lógica", fetched.Topics[0].Name)
	assert.Equal(t, []string{prereq.ID}, fetched.Topics[1].Prerequisites)
	assert.Equal(t, []string{"Silogismos", "Tabelas-verdade"}, fetched.Topics[1].Subtopics)
	assert.Equal(t, syl.ID, fetched.Topics[1].SyllabusID)
	assert.Equal(t, domain.DifficultyMedium, fetched.Topics[1].Difficulty)
}

func TestSyllabusRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteSyllabusRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSyllabusRepo_ListByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSyllabusRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSyllabus("Mine")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSyllabus("Other", testutil.WithOwner("someone-else"))))

	list, err := repo.ListByUser(ctx, testutil.TestUserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mine", list[0].Name)
	assert.Len(t, list[0].Topics, 2)
}

func TestSyllabusRepo_DeleteCascadesTopics(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSyllabusRepo(db)
	ctx := context.Background()

	syl := testutil.NewTestSyllabus("Gone")
	require.NoError(t, repo.Create(ctx, syl))
	require.NoError(t, repo.Delete(ctx, syl.ID))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM topics WHERE syllabus_id = ?`, syl.ID).Scan(&n))
	assert.Zero(t, n)

	assert.ErrorIs(t, repo.Delete(ctx, syl.ID), ErrNotFound)
}

func TestSyllabusRepo_RejectsOutOfRangeWeight(t *testing.T) {
	repo := NewSQLiteSyllabusRepo(testutil.NewTestDB(t))

	syl := testutil.NewTestSyllabus("Bad", testutil.WithTopics(testutil.NewTestTopic("X", testutil.WithWeight(150))))
	assert.Error(t, repo.Create(context.Background(), syl))
}
