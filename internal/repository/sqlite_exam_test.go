package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/edital/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamRepo_CreateAndGetExam(t *testing.T) {
	repo := NewSQLiteExamRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	exam := testutil.NewTestExam("Simulado 1",
		testutil.NewTestQuestion("Português", "a"),
		testutil.NewTestQuestion("Matemática", "c"),
	)
	require.NoError(t, repo.CreateExam(ctx, exam))

	fetched, err := repo.GetExam(ctx, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, "Simulado 1", fetched.Title)
	require.Len(t, fetched.Questions, 2)
	assert.Equal(t, "Português", fetched.Questions[0].Subject)
	assert.Equal(t, "c", fetched.Questions[1].CorrectAnswer)

	_, err = repo.GetExam(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExamRepo_ListResultsByUser_JoinsExam(t *testing.T) {
	repo := NewSQLiteExamRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	q1 := testutil.NewTestQuestion("Português", "a")
	q2 := testutil.NewTestQuestion("Matemática", "c")
	exam := testutil.NewTestExam("Simulado", q1, q2)
	require.NoError(t, repo.CreateExam(ctx, exam))

	base := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	later := testutil.NewTestResult(exam, []string{q1.ID, q2.ID}, testutil.WithCompletedAt(base.AddDate(0, 0, 3)))
	earlier := testutil.NewTestResult(exam, []string{q1.ID}, testutil.WithCompletedAt(base), testutil.WithTimeSpent(45))
	require.NoError(t, repo.CreateResult(ctx, later))
	require.NoError(t, repo.CreateResult(ctx, earlier))

	results, err := repo.ListResultsByUser(ctx, testutil.TestUserID)
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, earlier.ID, first.ID)
	assert.Equal(t, 45.0, first.TimeSpent)
	assert.Equal(t, base, first.CompletedAt)
	assert.Equal(t, earlier.Answers, first.Answers)
	require.NotNil(t, first.Exam)
	assert.Len(t, first.Exam.Questions, 2)
	assert.Same(t, results[0].Exam, results[1].Exam, "exam is loaded once per id")

	none, err := repo.ListResultsByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestExamRepo_CreateResult_UnknownExam(t *testing.T) {
	repo := NewSQLiteExamRepo(testutil.NewTestDB(t))
	exam := testutil.NewTestExam("never stored", testutil.NewTestQuestion("x", "y"))

	err := repo.CreateResult(context.Background(), testutil.NewTestResult(exam, nil))
	assert.Error(t, err)
}
