package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/edital/internal/db"
	"github.com/alexanderramin/edital/internal/domain"
)

// SQLiteFlashcardRepo implements FlashcardRepo using a SQLite database.
// A card and its review state live in separate tables and are read joined.
type SQLiteFlashcardRepo struct {
	db db.DBTX
}

func NewSQLiteFlashcardRepo(conn db.DBTX) *SQLiteFlashcardRepo {
	return &SQLiteFlashcardRepo{db: conn}
}

const flashcardSelect = `SELECT f.id, f.user_id, f.front, f.back, f.subject, f.created_at, f.updated_at,
	s.interval_days, s.repetitions, s.ease_factor, s.next_review_date, s.last_reviewed_at
	FROM flashcards f
	JOIN flashcard_review_states s ON s.flashcard_id = f.id`

func (r *SQLiteFlashcardRepo) Create(ctx context.Context, f *domain.Flashcard) error {
	query := `INSERT INTO flashcards (id, user_id, front, back, subject, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.UserID,
		f.Front,
		f.Back,
		f.Subject,
		formatTimestamp(f.CreatedAt),
		formatTimestamp(f.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting flashcard: %w", err)
	}

	f.Review.FlashcardID = f.ID
	query = `INSERT INTO flashcard_review_states (flashcard_id, interval_days, repetitions, ease_factor,
		next_review_date, last_reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		f.ID,
		f.Review.Interval,
		f.Review.Repetitions,
		f.Review.EaseFactor,
		formatTimestamp(f.Review.NextReviewDate),
		nullableTimestamp(f.Review.LastReviewedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting flashcard review state: %w", err)
	}
	return nil
}

func (r *SQLiteFlashcardRepo) GetByID(ctx context.Context, id string) (*domain.Flashcard, error) {
	f, err := r.scanFlashcard(r.db.QueryRowContext(ctx, flashcardSelect+` WHERE f.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("flashcard %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}

func (r *SQLiteFlashcardRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Flashcard, error) {
	query := flashcardSelect + ` WHERE f.user_id = ? ORDER BY f.created_at, f.id`
	return r.list(ctx, query, userID)
}

func (r *SQLiteFlashcardRepo) ListDue(ctx context.Context, userID string, now time.Time) ([]*domain.Flashcard, error) {
	query := flashcardSelect + ` WHERE f.user_id = ? AND s.next_review_date <= ?
		ORDER BY s.next_review_date, f.id`
	return r.list(ctx, query, userID, formatTimestamp(now))
}

func (r *SQLiteFlashcardRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Flashcard, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing flashcards: %w", err)
	}
	defer rows.Close()

	var cards []*domain.Flashcard
	for rows.Next() {
		f, err := r.scanFlashcard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating flashcards: %w", err)
	}
	return cards, nil
}

func (r *SQLiteFlashcardRepo) UpdateReviewState(ctx context.Context, s *domain.FlashcardReviewState) error {
	query := `UPDATE flashcard_review_states
		SET interval_days = ?, repetitions = ?, ease_factor = ?, next_review_date = ?, last_reviewed_at = ?
		WHERE flashcard_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Interval,
		s.Repetitions,
		s.EaseFactor,
		formatTimestamp(s.NextReviewDate),
		nullableTimestamp(s.LastReviewedAt),
		s.FlashcardID,
	)
	if err != nil {
		return fmt.Errorf("updating flashcard review state: %w", err)
	}
	if err := mustAffectOne(res, "flashcard "+s.FlashcardID); err != nil {
		return err
	}

	touched := time.Now()
	if s.LastReviewedAt != nil {
		touched = *s.LastReviewedAt
	}
	_, err = r.db.ExecContext(ctx, `UPDATE flashcards SET updated_at = ? WHERE id = ?`,
		formatTimestamp(touched), s.FlashcardID)
	if err != nil {
		return fmt.Errorf("touching flashcard: %w", err)
	}
	return nil
}

func (r *SQLiteFlashcardRepo) LogReview(ctx context.Context, l *domain.ReviewLog) error {
	query := `INSERT INTO flashcard_reviews (id, flashcard_id, quality, interval_days, ease_factor,
		repetitions, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.FlashcardID,
		l.Quality,
		l.Interval,
		l.EaseFactor,
		l.Repetitions,
		formatTimestamp(l.ReviewedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting flashcard review: %w", err)
	}
	return nil
}

func (r *SQLiteFlashcardRepo) ListReviews(ctx context.Context, flashcardID string) ([]domain.ReviewLog, error) {
	query := `SELECT id, flashcard_id, quality, interval_days, ease_factor, repetitions, reviewed_at
		FROM flashcard_reviews WHERE flashcard_id = ? ORDER BY reviewed_at, id`
	rows, err := r.db.QueryContext(ctx, query, flashcardID)
	if err != nil {
		return nil, fmt.Errorf("listing flashcard reviews: %w", err)
	}
	defer rows.Close()

	var logs []domain.ReviewLog
	for rows.Next() {
		var l domain.ReviewLog
		var reviewedAtStr string
		if err := rows.Scan(&l.ID, &l.FlashcardID, &l.Quality, &l.Interval, &l.EaseFactor,
			&l.Repetitions, &reviewedAtStr); err != nil {
			return nil, fmt.Errorf("scanning flashcard review row: %w", err)
		}
		if l.ReviewedAt, err = parseTimestamp(reviewedAtStr); err != nil {
			return nil, fmt.Errorf("parsing reviewed_at: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating flashcard reviews: %w", err)
	}
	return logs, nil
}

func (r *SQLiteFlashcardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting flashcard: %w", err)
	}
	return mustAffectOne(res, "flashcard "+id)
}

// scanFlashcard scans one joined card row; a missing row surfaces as sql.ErrNoRows.
func (r *SQLiteFlashcardRepo) scanFlashcard(row rowScanner) (*domain.Flashcard, error) {
	var f domain.Flashcard
	var createdAtStr, updatedAtStr, nextReviewStr string
	var lastReviewed sql.NullString
	err := row.Scan(
		&f.ID, &f.UserID, &f.Front, &f.Back, &f.Subject, &createdAtStr, &updatedAtStr,
		&f.Review.Interval, &f.Review.Repetitions, &f.Review.EaseFactor, &nextReviewStr, &lastReviewed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning flashcard: %w", err)
	}

	f.Review.FlashcardID = f.ID
	if f.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if f.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	if f.Review.NextReviewDate, err = parseTimestamp(nextReviewStr); err != nil {
		return nil, fmt.Errorf("parsing next_review_date: %w", err)
	}
	if f.Review.LastReviewedAt, err = parseNullableTimestamp(lastReviewed); err != nil {
		return nil, fmt.Errorf("parsing last_reviewed_at: %w", err)
	}
	return &f, nil
}
