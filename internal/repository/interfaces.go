package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
)

type SyllabusRepo interface {
	// Create inserts the syllabus and its topics.
	Create(ctx context.Context, s *domain.Syllabus) error
	GetByID(ctx context.Context, id string) (*domain.Syllabus, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Syllabus, error)
	Delete(ctx context.Context, id string) error
}

type PlanRepo interface {
	// Create inserts the plan and its sessions.
	Create(ctx context.Context, p *domain.StudyPlan) error
	GetByID(ctx context.Context, id string) (*domain.StudyPlan, error)
	// GetActive returns the active plan for a user and syllabus.
	GetActive(ctx context.Context, userID, syllabusID string) (*domain.StudyPlan, error)
	ListByUser(ctx context.Context, userID string, activeOnly bool) ([]*domain.StudyPlan, error)
	// Update writes the plan header (activity, progress, last update); sessions are untouched.
	Update(ctx context.Context, p *domain.StudyPlan) error
	UpdateSession(ctx context.Context, s *domain.StudySession) error
	// ReplaceSessions swaps the plan's session set for sessions.
	ReplaceSessions(ctx context.Context, planID string, sessions []domain.StudySession) error
	Delete(ctx context.Context, id string) error
}

type FlashcardRepo interface {
	// Create inserts the card and its review state.
	Create(ctx context.Context, f *domain.Flashcard) error
	GetByID(ctx context.Context, id string) (*domain.Flashcard, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Flashcard, error)
	// ListDue returns the user's cards whose next review is at or before now, soonest first.
	ListDue(ctx context.Context, userID string, now time.Time) ([]*domain.Flashcard, error)
	UpdateReviewState(ctx context.Context, s *domain.FlashcardReviewState) error
	LogReview(ctx context.Context, l *domain.ReviewLog) error
	ListReviews(ctx context.Context, flashcardID string) ([]domain.ReviewLog, error)
	Delete(ctx context.Context, id string) error
}

type ExamRepo interface {
	// CreateExam inserts the exam and its questions.
	CreateExam(ctx context.Context, e *domain.Exam) error
	GetExam(ctx context.Context, id string) (*domain.Exam, error)
	// CreateResult inserts the result and its answers.
	CreateResult(ctx context.Context, r *domain.ExamResult) error
	// ListResultsByUser returns the user's results oldest first, each with its exam joined.
	ListResultsByUser(ctx context.Context, userID string) ([]domain.ExamResult, error)
}
