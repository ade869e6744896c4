package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/edital/internal/db"
	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/importer"
	"github.com/alexanderramin/edital/internal/repository"
	"github.com/alexanderramin/edital/internal/scheduler"
)

type examService struct {
	exams    repository.ExamRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewExamService(exams repository.ExamRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ExamService {
	return &examService{exams: exams, uow: uow, observer: combineObservers(observers)}
}

func (s *examService) RecordResult(ctx context.Context, exam *domain.Exam, result *domain.ExamResult) (err error) {
	fields := map[string]any{"exam_id": exam.ID, "questions": len(exam.Questions)}
	defer observe(ctx, s.observer, "record-exam-result", fields)(&err)

	if result.UserID == "" {
		return fmt.Errorf("user id is required: %w", domain.ErrInvalidInput)
	}
	if result.TimeSpent < 0 {
		return fmt.Errorf("time spent must not be negative: %w", domain.ErrInvalidInput)
	}
	result.ExamID = exam.ID

	// A known exam id keeps its stored questions; the result is scored
	// against those, as later performance reports will be.
	stored := exam
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		exams := repository.NewSQLiteExamRepo(tx)

		existing, err := exams.GetExam(ctx, exam.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			if err := exams.CreateExam(ctx, exam); err != nil {
				return err
			}
			fields["new_exam"] = true
		case err != nil:
			return err
		default:
			stored = existing
		}
		return exams.CreateResult(ctx, result)
	})
	if err != nil {
		return err
	}

	result.Exam = stored
	correct := 0
	for _, q := range stored.Questions {
		if result.IsCorrect(q) {
			correct++
		}
	}
	fields["correct"] = correct
	return nil
}

func (s *examService) ImportResultFile(ctx context.Context, userID, path string) (*domain.ExamResult, error) {
	schema, err := importer.LoadExamResultImport(path)
	if err != nil {
		return nil, fmt.Errorf("loading exam result file: %w", err)
	}
	if errs := importer.ValidateExamResultImport(schema); len(errs) > 0 {
		return nil, fmt.Errorf("invalid exam result file: %w", &importer.ValidationError{Errs: errs})
	}
	exam, result, err := importer.ConvertExamResult(schema, userID, time.Now().UTC().Truncate(time.Second))
	if err != nil {
		return nil, err
	}
	if err := s.RecordResult(ctx, exam, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *examService) PerformanceReport(ctx context.Context, userID string) (*scheduler.PerformanceMetrics, error) {
	history, err := s.exams.ListResultsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return scheduler.AggregatePerformance(history), nil
}
