package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewReviewState_Defaults(t *testing.T) {
	created := time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)
	s := NewReviewState("card-1", created)

	assert.Equal(t, "card-1", s.FlashcardID)
	assert.Equal(t, 1, s.Interval)
	assert.Equal(t, 0, s.Repetitions)
	assert.Equal(t, 2.5, s.EaseFactor)
	assert.Equal(t, created.AddDate(0, 0, 1), s.NextReviewDate)
	assert.Nil(t, s.LastReviewedAt)
}

func TestFlashcardReviewState_IsDue(t *testing.T) {
	due := time.Date(2025, 3, 18, 10, 0, 0, 0, time.UTC)
	s := FlashcardReviewState{NextReviewDate: due}

	assert.False(t, s.IsDue(due.Add(-time.Minute)))
	assert.True(t, s.IsDue(due))
	assert.True(t, s.IsDue(due.AddDate(0, 0, 3)))
}

func TestFlashcard_Validate(t *testing.T) {
	assert.NoError(t, (&Flashcard{Front: "capital of Brazil", Back: "Brasília"}).Validate())
	assert.ErrorIs(t, (&Flashcard{Front: "  ", Back: "x"}).Validate(), ErrInvalidInput)
	assert.ErrorIs(t, (&Flashcard{Front: "x"}).Validate(), ErrInvalidInput)
}

func TestExamResult_IsCorrect(t *testing.T) {
	r := &ExamResult{Answers: map[string]string{"q1": "b", "q2": "B"}}
	assert.True(t, r.IsCorrect(Question{ID: "q1", CorrectAnswer: "b"}))
	assert.False(t, r.IsCorrect(Question{ID: "q2", CorrectAnswer: "b"}), "answers match exactly")
	assert.False(t, r.IsCorrect(Question{ID: "q3", CorrectAnswer: ""}), "unanswered is never correct")
}

func TestSyllabus_TotalEstimatedHours(t *testing.T) {
	s := &Syllabus{Topics: []Topic{{ID: "a", EstimatedHours: 1.5}, {ID: "b", EstimatedHours: 4}}}
	assert.Equal(t, 5.5, s.TotalEstimatedHours())
	assert.Equal(t, "b", s.TopicByID("b").ID)
	assert.Nil(t, s.TopicByID("z"))
}
