package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/edital/internal/db"
	"github.com/alexanderramin/edital/internal/domain"
)

// SQLiteSyllabusRepo implements SyllabusRepo using a SQLite database.
type SQLiteSyllabusRepo struct {
	db db.DBTX
}

func NewSQLiteSyllabusRepo(conn db.DBTX) *SQLiteSyllabusRepo {
	return &SQLiteSyllabusRepo{db: conn}
}

func (r *SQLiteSyllabusRepo) Create(ctx context.Context, s *domain.Syllabus) error {
	query := `INSERT INTO syllabi (id, user_id, name, exam_date, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.Name,
		formatDate(s.ExamDate),
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting syllabus: %w", err)
	}

	for i := range s.Topics {
		t := &s.Topics[i]
		t.SyllabusID = s.ID
		if err := r.insertTopic(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteSyllabusRepo) insertTopic(ctx context.Context, t *domain.Topic) error {
	prereqs, err := encodeStrings(t.Prerequisites)
	if err != nil {
		return err
	}
	subtopics, err := encodeStrings(t.Subtopics)
	if err != nil {
		return err
	}
	query := `INSERT INTO topics (id, syllabus_id, name, subject, weight, estimated_hours,
		difficulty, prerequisites, subtopics, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.SyllabusID,
		t.Name,
		t.Subject,
		t.Weight,
		t.EstimatedHours,
		string(t.Difficulty),
		prereqs,
		subtopics,
		t.OrderIndex,
	)
	if err != nil {
		return fmt.Errorf("inserting topic %s: %w", t.Name, err)
	}
	return nil
}

func (r *SQLiteSyllabusRepo) GetByID(ctx context.Context, id string) (*domain.Syllabus, error) {
	query := `SELECT id, user_id, name, exam_date, created_at FROM syllabi WHERE id = ?`
	s, err := r.scanSyllabus(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("syllabus %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if s.Topics, err = r.listTopics(ctx, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSyllabusRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Syllabus, error) {
	query := `SELECT id, user_id, name, exam_date, created_at
		FROM syllabi WHERE user_id = ? ORDER BY exam_date, created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing syllabi: %w", err)
	}

	var syllabi []*domain.Syllabus
	for rows.Next() {
		s, err := r.scanSyllabus(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		syllabi = append(syllabi, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating syllabi: %w", err)
	}
	rows.Close()

	for _, s := range syllabi {
		if s.Topics, err = r.listTopics(ctx, s.ID); err != nil {
			return nil, err
		}
	}
	return syllabi, nil
}

func (r *SQLiteSyllabusRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM syllabi WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting syllabus: %w", err)
	}
	return mustAffectOne(res, "syllabus "+id)
}

func (r *SQLiteSyllabusRepo) listTopics(ctx context.Context, syllabusID string) ([]domain.Topic, error) {
	query := `SELECT id, syllabus_id, name, subject, weight, estimated_hours, difficulty,
		prerequisites, subtopics, order_index
		FROM topics WHERE syllabus_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, syllabusID)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	defer rows.Close()

	var topics []domain.Topic
	for rows.Next() {
		var t domain.Topic
		var difficulty, prereqs, subtopics string
		if err := rows.Scan(
			&t.ID, &t.SyllabusID, &t.Name, &t.Subject, &t.Weight, &t.EstimatedHours,
			&difficulty, &prereqs, &subtopics, &t.OrderIndex,
		); err != nil {
			return nil, fmt.Errorf("scanning topic row: %w", err)
		}
		t.Difficulty = domain.Difficulty(difficulty)
		if t.Prerequisites, err = decodeStrings(prereqs); err != nil {
			return nil, err
		}
		if t.Subtopics, err = decodeStrings(subtopics); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating topics: %w", err)
	}
	return topics, nil
}

// scanSyllabus scans the syllabus header; a missing row surfaces as sql.ErrNoRows.
func (r *SQLiteSyllabusRepo) scanSyllabus(row rowScanner) (*domain.Syllabus, error) {
	var s domain.Syllabus
	var examDateStr, createdAtStr string
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &examDateStr, &createdAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning syllabus: %w", err)
	}

	var err error
	if s.ExamDate, err = parseDate(examDateStr); err != nil {
		return nil, fmt.Errorf("parsing exam_date: %w", err)
	}
	if s.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &s, nil
}
