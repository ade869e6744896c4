package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/edital/internal/db"
	"github.com/alexanderramin/edital/internal/domain"
)

// SQLiteExamRepo implements ExamRepo using a SQLite database.
type SQLiteExamRepo struct {
	db db.DBTX
}

func NewSQLiteExamRepo(conn db.DBTX) *SQLiteExamRepo {
	return &SQLiteExamRepo{db: conn}
}

func (r *SQLiteExamRepo) CreateExam(ctx context.Context, e *domain.Exam) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO exams (id, title, created_at) VALUES (?, ?, ?)`,
		e.ID, e.Title, formatTimestamp(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting exam: %w", err)
	}

	query := `INSERT INTO questions (id, exam_id, subject, prompt, correct_answer, order_index)
		VALUES (?, ?, ?, ?, ?, ?)`
	for i := range e.Questions {
		q := &e.Questions[i]
		q.ExamID = e.ID
		_, err := r.db.ExecContext(ctx, query, q.ID, q.ExamID, q.Subject, q.Prompt, q.CorrectAnswer, q.OrderIndex)
		if err != nil {
			return fmt.Errorf("inserting question %s: %w", q.ID, err)
		}
	}
	return nil
}

func (r *SQLiteExamRepo) GetExam(ctx context.Context, id string) (*domain.Exam, error) {
	var e domain.Exam
	var createdAtStr string
	err := r.db.QueryRowContext(ctx, `SELECT id, title, created_at FROM exams WHERE id = ?`, id).
		Scan(&e.ID, &e.Title, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("exam %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning exam: %w", err)
	}
	if e.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.Questions, err = r.listQuestions(ctx, e.ID); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *SQLiteExamRepo) listQuestions(ctx context.Context, examID string) ([]domain.Question, error) {
	query := `SELECT id, exam_id, subject, prompt, correct_answer, order_index
		FROM questions WHERE exam_id = ? ORDER BY order_index, id`
	rows, err := r.db.QueryContext(ctx, query, examID)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.ExamID, &q.Subject, &q.Prompt, &q.CorrectAnswer, &q.OrderIndex); err != nil {
			return nil, fmt.Errorf("scanning question row: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating questions: %w", err)
	}
	return questions, nil
}

func (r *SQLiteExamRepo) CreateResult(ctx context.Context, res *domain.ExamResult) error {
	query := `INSERT INTO exam_results (id, exam_id, user_id, time_spent, completed_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		res.ID,
		res.ExamID,
		res.UserID,
		res.TimeSpent,
		formatTimestamp(res.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting exam result: %w", err)
	}

	query = `INSERT INTO exam_answers (result_id, question_id, answer) VALUES (?, ?, ?)`
	for questionID, answer := range res.Answers {
		if _, err := r.db.ExecContext(ctx, query, res.ID, questionID, answer); err != nil {
			return fmt.Errorf("inserting answer for question %s: %w", questionID, err)
		}
	}
	return nil
}

func (r *SQLiteExamRepo) ListResultsByUser(ctx context.Context, userID string) ([]domain.ExamResult, error) {
	query := `SELECT id, exam_id, user_id, time_spent, completed_at
		FROM exam_results WHERE user_id = ? ORDER BY completed_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing exam results: %w", err)
	}

	var results []domain.ExamResult
	for rows.Next() {
		var res domain.ExamResult
		var completedAtStr string
		if err := rows.Scan(&res.ID, &res.ExamID, &res.UserID, &res.TimeSpent, &completedAtStr); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning exam result row: %w", err)
		}
		if res.CompletedAt, err = parseTimestamp(completedAtStr); err != nil {
			rows.Close()
			return nil, fmt.Errorf("parsing completed_at: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating exam results: %w", err)
	}
	rows.Close()

	exams := make(map[string]*domain.Exam)
	for i := range results {
		res := &results[i]
		if res.Answers, err = r.listAnswers(ctx, res.ID); err != nil {
			return nil, err
		}
		exam, ok := exams[res.ExamID]
		if !ok {
			if exam, err = r.GetExam(ctx, res.ExamID); err != nil {
				return nil, err
			}
			exams[res.ExamID] = exam
		}
		res.Exam = exam
	}
	return results, nil
}

func (r *SQLiteExamRepo) listAnswers(ctx context.Context, resultID string) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT question_id, answer FROM exam_answers WHERE result_id = ?`, resultID)
	if err != nil {
		return nil, fmt.Errorf("listing exam answers: %w", err)
	}
	defer rows.Close()

	answers := make(map[string]string)
	for rows.Next() {
		var questionID, answer string
		if err := rows.Scan(&questionID, &answer); err != nil {
			return nil, fmt.Errorf("scanning exam answer row: %w", err)
		}
		answers[questionID] = answer
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exam answers: %w", err)
	}
	return answers, nil
}
