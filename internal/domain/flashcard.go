package domain

import (
	"fmt"
	"strings"
	"time"
)

// Default review state for a newly created flashcard.
const (
	DefaultInterval    = 1
	DefaultEaseFactor  = 2.5
	MinEaseFactor      = 1.3
	DefaultRepetitions = 0
)

type FlashcardReviewState struct {
	FlashcardID    string
	Interval       int // days
	Repetitions    int
	EaseFactor     float64
	NextReviewDate time.Time
	LastReviewedAt *time.Time
}

type Flashcard struct {
	ID        string
	UserID    string
	Front     string
	Back      string
	Subject   string
	Review    FlashcardReviewState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewLog records one review submission with the state it produced.
type ReviewLog struct {
	ID          string
	FlashcardID string
	Quality     int
	Interval    int
	EaseFactor  float64
	Repetitions int
	ReviewedAt  time.Time
}

// NewReviewState returns the default state for a card created at createdAt.
func NewReviewState(flashcardID string, createdAt time.Time) FlashcardReviewState {
	return FlashcardReviewState{
		FlashcardID:    flashcardID,
		Interval:       DefaultInterval,
		Repetitions:    DefaultRepetitions,
		EaseFactor:     DefaultEaseFactor,
		NextReviewDate: createdAt.AddDate(0, 0, DefaultInterval),
	}
}

// IsDue reports whether the card should be reviewed at now.
func (s FlashcardReviewState) IsDue(now time.Time) bool {
	return !s.NextReviewDate.After(now)
}

// Validate checks that both card faces carry text.
func (f *Flashcard) Validate() error {
	if strings.TrimSpace(f.Front) == "" {
		return fmt.Errorf("flashcard front is required: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(f.Back) == "" {
		return fmt.Errorf("flashcard back is required: %w", ErrInvalidInput)
	}
	return nil
}
