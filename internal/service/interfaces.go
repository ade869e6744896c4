package service

import (
	"context"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/importer"
	"github.com/alexanderramin/edital/internal/scheduler"
)

type SyllabusService interface {
	// Import validates and stores a parsed syllabus file for userID.
	Import(ctx context.Context, userID string, schema *importer.SyllabusImport) (*domain.Syllabus, error)
	ImportFile(ctx context.Context, userID, path string) (*domain.Syllabus, error)
	GetByID(ctx context.Context, id string) (*domain.Syllabus, error)
	List(ctx context.Context, userID string) ([]*domain.Syllabus, error)
	Delete(ctx context.Context, id string) error
}

// GenerateOptions tunes plan generation. A zero Now means the current time.
type GenerateOptions struct {
	Replace bool
	Now     time.Time
}

// AdaptResult is the outcome of adapting one plan to exam performance.
type AdaptResult struct {
	Plan            *domain.StudyPlan
	Metrics         *scheduler.PerformanceMetrics
	SessionsChanged int
}

type PlanService interface {
	// GeneratePlan builds and stores a plan for the syllabus. An existing
	// active plan yields domain.ErrPlanExists unless opts.Replace is set.
	GeneratePlan(ctx context.Context, userID, syllabusID string, dailyHours float64, opts GenerateOptions) (*domain.StudyPlan, error)
	AdaptPlan(ctx context.Context, planID string) (*AdaptResult, error)
	// AdaptActivePlans adapts every active plan of the user.
	AdaptActivePlans(ctx context.Context, userID string) ([]*AdaptResult, error)
	UpdateSessionStatus(ctx context.Context, planID, sessionID string, update domain.SessionUpdate) (*domain.StudyPlan, error)
	GetPlan(ctx context.Context, id string) (*domain.StudyPlan, error)
	ListPlans(ctx context.Context, userID string, activeOnly bool) ([]*domain.StudyPlan, error)
	DeactivatePlan(ctx context.Context, id string) error
	// Risk reports whether the plan's remaining sessions still fit before the exam.
	Risk(ctx context.Context, planID string, now time.Time) (*scheduler.RiskResult, error)
}

type FlashcardService interface {
	Create(ctx context.Context, card *domain.Flashcard) error
	// Review grades a recall (quality 0-5) and reschedules the card.
	Review(ctx context.Context, cardID string, quality int, now time.Time) (*domain.Flashcard, error)
	ListDue(ctx context.Context, userID string, now time.Time) ([]*domain.Flashcard, error)
	List(ctx context.Context, userID string) ([]*domain.Flashcard, error)
	GetByID(ctx context.Context, id string) (*domain.Flashcard, error)
	History(ctx context.Context, cardID string) ([]domain.ReviewLog, error)
	Delete(ctx context.Context, id string) error
}

type ExamService interface {
	// RecordResult stores the exam (if new) and the attempt in one transaction.
	RecordResult(ctx context.Context, exam *domain.Exam, result *domain.ExamResult) error
	ImportResultFile(ctx context.Context, userID, path string) (*domain.ExamResult, error)
	PerformanceReport(ctx context.Context, userID string) (*scheduler.PerformanceMetrics, error)
}
