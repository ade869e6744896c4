package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/edital/internal/db"
	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/repository"
	"github.com/alexanderramin/edital/internal/scheduler"
	"github.com/google/uuid"
)

type flashcardService struct {
	cards    repository.FlashcardRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewFlashcardService(cards repository.FlashcardRepo, uow db.UnitOfWork, observers ...UseCaseObserver) FlashcardService {
	return &flashcardService{cards: cards, uow: uow, observer: combineObservers(observers)}
}

// Create fills in the id, timestamps and default review state before storing
// the card. A caller-supplied review state is kept when its ease factor is set.
func (s *flashcardService) Create(ctx context.Context, card *domain.Flashcard) (err error) {
	defer observe(ctx, s.observer, "create-flashcard", map[string]any{"subject": card.Subject})(&err)

	card.Front = strings.TrimSpace(card.Front)
	card.Back = strings.TrimSpace(card.Back)
	if err := card.Validate(); err != nil {
		return err
	}
	if card.UserID == "" {
		return fmt.Errorf("user id is required: %w", domain.ErrInvalidInput)
	}

	now := time.Now().UTC().Truncate(time.Second)
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	card.UpdatedAt = card.CreatedAt
	if card.Review.EaseFactor == 0 {
		card.Review = domain.NewReviewState(card.ID, card.CreatedAt)
	}
	card.Review.FlashcardID = card.ID

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteFlashcardRepo(tx).Create(ctx, card)
	})
}

// Review applies one SM-2 step and records it. The new state and the log row
// are written in the same transaction.
func (s *flashcardService) Review(ctx context.Context, cardID string, quality int, now time.Time) (card *domain.Flashcard, err error) {
	fields := map[string]any{"flashcard_id": cardID, "quality": quality}
	defer observe(ctx, s.observer, "review-flashcard", fields)(&err)

	now = now.UTC().Truncate(time.Second)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		cards := repository.NewSQLiteFlashcardRepo(tx)

		card, err = cards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		prev := card.Review
		next, err := scheduler.ComputeNextReview(quality, prev.Interval, prev.Repetitions, prev.EaseFactor)
		if err != nil {
			return err
		}

		reviewedAt := now
		card.Review = domain.FlashcardReviewState{
			FlashcardID:    card.ID,
			Interval:       next.Interval,
			Repetitions:    next.Repetitions,
			EaseFactor:     next.EaseFactor,
			NextReviewDate: next.NextReviewDate(now),
			LastReviewedAt: &reviewedAt,
		}
		card.UpdatedAt = now
		if err := cards.UpdateReviewState(ctx, &card.Review); err != nil {
			return err
		}

		fields["outcome"] = outcome(next.Passed())
		fields["interval"] = next.Interval
		return cards.LogReview(ctx, &domain.ReviewLog{
			ID:          uuid.New().String(),
			FlashcardID: card.ID,
			Quality:     quality,
			Interval:    next.Interval,
			EaseFactor:  next.EaseFactor,
			Repetitions: next.Repetitions,
			ReviewedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func outcome(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}

func (s *flashcardService) ListDue(ctx context.Context, userID string, now time.Time) ([]*domain.Flashcard, error) {
	return s.cards.ListDue(ctx, userID, now)
}

func (s *flashcardService) List(ctx context.Context, userID string) ([]*domain.Flashcard, error) {
	return s.cards.ListByUser(ctx, userID)
}

func (s *flashcardService) GetByID(ctx context.Context, id string) (*domain.Flashcard, error) {
	return s.cards.GetByID(ctx, id)
}

func (s *flashcardService) History(ctx context.Context, cardID string) ([]domain.ReviewLog, error) {
	if _, err := s.cards.GetByID(ctx, cardID); err != nil {
		return nil, err
	}
	return s.cards.ListReviews(ctx, cardID)
}

func (s *flashcardService) Delete(ctx context.Context, id string) error {
	return s.cards.Delete(ctx, id)
}
