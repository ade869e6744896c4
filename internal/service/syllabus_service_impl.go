package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/edital/internal/db"
	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/importer"
	"github.com/alexanderramin/edital/internal/repository"
)

type syllabusService struct {
	syllabi  repository.SyllabusRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSyllabusService(syllabi repository.SyllabusRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SyllabusService {
	return &syllabusService{syllabi: syllabi, uow: uow, observer: combineObservers(observers)}
}

func (s *syllabusService) ImportFile(ctx context.Context, userID, path string) (*domain.Syllabus, error) {
	schema, err := importer.LoadSyllabusImport(path)
	if err != nil {
		return nil, fmt.Errorf("loading syllabus file: %w", err)
	}
	return s.Import(ctx, userID, schema)
}

func (s *syllabusService) Import(ctx context.Context, userID string, schema *importer.SyllabusImport) (syl *domain.Syllabus, err error) {
	fields := map[string]any{"topics": len(schema.Topics)}
	defer observe(ctx, s.observer, "import-syllabus", fields)(&err)

	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", domain.ErrInvalidInput)
	}
	if errs := importer.ValidateSyllabusImport(schema); len(errs) > 0 {
		return nil, fmt.Errorf("invalid syllabus file: %w", &importer.ValidationError{Errs: errs})
	}

	syl, err = importer.ConvertSyllabus(schema, userID, time.Now().UTC().Truncate(time.Second))
	if err != nil {
		return nil, err
	}
	fields["syllabus_id"] = syl.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSyllabusRepo(tx).Create(ctx, syl)
	})
	if err != nil {
		return nil, err
	}
	return syl, nil
}

func (s *syllabusService) GetByID(ctx context.Context, id string) (*domain.Syllabus, error) {
	return s.syllabi.GetByID(ctx, id)
}

func (s *syllabusService) List(ctx context.Context, userID string) ([]*domain.Syllabus, error) {
	return s.syllabi.ListByUser(ctx, userID)
}

func (s *syllabusService) Delete(ctx context.Context, id string) error {
	return s.syllabi.Delete(ctx, id)
}
