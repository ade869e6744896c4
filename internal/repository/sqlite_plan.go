package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/edital/internal/db"
	"github.com/alexanderramin/edital/internal/domain"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, syllabus_id, user_id, start_date, end_date, total_hours, daily_hours,
	is_active, progress, last_updated, created_at`

const sessionColumns = `id, plan_id, topic_id, topic_name, subject, scheduled_date, duration,
	priority, status, actual_duration, notes, performance, order_index`

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.StudyPlan) error {
	query := `INSERT INTO study_plans (` + planColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.SyllabusID,
		p.UserID,
		formatDate(p.StartDate),
		formatDate(p.EndDate),
		p.TotalHours,
		p.DailyHours,
		boolToInt(p.IsActive),
		p.Progress,
		formatTimestamp(p.LastUpdated),
		formatTimestamp(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting study plan: %w", err)
	}
	return r.insertSessions(ctx, p.ID, p.Sessions)
}

func (r *SQLitePlanRepo) insertSessions(ctx context.Context, planID string, sessions []domain.StudySession) error {
	query := `INSERT INTO study_sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range sessions {
		s := &sessions[i]
		s.PlanID = planID
		_, err := r.db.ExecContext(ctx, query,
			s.ID,
			s.PlanID,
			s.TopicID,
			s.TopicName,
			s.Subject,
			formatDate(s.ScheduledDate),
			s.Duration,
			string(s.Priority),
			string(s.Status),
			nullableIntToValue(s.ActualDuration),
			s.Notes,
			nullableIntToValue(s.Performance),
			s.OrderIndex,
		)
		if err != nil {
			return fmt.Errorf("inserting study session: %w", err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans WHERE id = ?`
	return r.getOne(ctx, fmt.Sprintf("study plan %s", id), query, id)
}

func (r *SQLitePlanRepo) GetActive(ctx context.Context, userID, syllabusID string) (*domain.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans
		WHERE user_id = ? AND syllabus_id = ? AND is_active = 1`
	return r.getOne(ctx, "active study plan", query, userID, syllabusID)
}

func (r *SQLitePlanRepo) getOne(ctx context.Context, what, query string, args ...any) (*domain.StudyPlan, error) {
	p, err := r.scanPlan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		return nil, err
	}
	if p.Sessions, err = r.listSessions(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLitePlanRepo) ListByUser(ctx context.Context, userID string, activeOnly bool) ([]*domain.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans WHERE user_id = ?`
	if activeOnly {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing study plans: %w", err)
	}
	var plans []*domain.StudyPlan
	for rows.Next() {
		p, err := r.scanPlan(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating study plans: %w", err)
	}
	rows.Close()

	for _, p := range plans {
		if p.Sessions, err = r.listSessions(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.StudyPlan) error {
	query := `UPDATE study_plans SET is_active = ?, progress = ?, daily_hours = ?, last_updated = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		boolToInt(p.IsActive),
		p.Progress,
		p.DailyHours,
		formatTimestamp(p.LastUpdated),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating study plan: %w", err)
	}
	return mustAffectOne(res, "study plan "+p.ID)
}

func (r *SQLitePlanRepo) UpdateSession(ctx context.Context, s *domain.StudySession) error {
	query := `UPDATE study_sessions SET status = ?, actual_duration = ?, notes = ?, performance = ?,
		duration = ?, priority = ?
		WHERE id = ? AND plan_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(s.Status),
		nullableIntToValue(s.ActualDuration),
		s.Notes,
		nullableIntToValue(s.Performance),
		s.Duration,
		string(s.Priority),
		s.ID,
		s.PlanID,
	)
	if err != nil {
		return fmt.Errorf("updating study session: %w", err)
	}
	return mustAffectOne(res, "study session "+s.ID)
}

func (r *SQLitePlanRepo) ReplaceSessions(ctx context.Context, planID string, sessions []domain.StudySession) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE plan_id = ?`, planID); err != nil {
		return fmt.Errorf("clearing study sessions: %w", err)
	}
	return r.insertSessions(ctx, planID, sessions)
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting study plan: %w", err)
	}
	return mustAffectOne(res, "study plan "+id)
}

func (r *SQLitePlanRepo) listSessions(ctx context.Context, planID string) ([]domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE plan_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing study sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]domain.StudySession, 0)
	for rows.Next() {
		var s domain.StudySession
		var scheduledStr, priority, status string
		var actual, perf sql.NullInt64
		if err := rows.Scan(
			&s.ID, &s.PlanID, &s.TopicID, &s.TopicName, &s.Subject, &scheduledStr, &s.Duration,
			&priority, &status, &actual, &s.Notes, &perf, &s.OrderIndex,
		); err != nil {
			return nil, fmt.Errorf("scanning study session row: %w", err)
		}
		if s.ScheduledDate, err = parseDate(scheduledStr); err != nil {
			return nil, fmt.Errorf("parsing scheduled_date: %w", err)
		}
		s.Priority = domain.Priority(priority)
		s.Status = domain.SessionStatus(status)
		s.ActualDuration = nullIntToPtr(actual)
		s.Performance = nullIntToPtr(perf)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating study sessions: %w", err)
	}
	return sessions, nil
}

// scanPlan scans the plan header; a missing row surfaces as sql.ErrNoRows.
func (r *SQLitePlanRepo) scanPlan(row rowScanner) (*domain.StudyPlan, error) {
	var p domain.StudyPlan
	var startStr, endStr, lastUpdatedStr, createdAtStr string
	var isActive int
	err := row.Scan(
		&p.ID, &p.SyllabusID, &p.UserID, &startStr, &endStr, &p.TotalHours, &p.DailyHours,
		&isActive, &p.Progress, &lastUpdatedStr, &createdAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning study plan: %w", err)
	}
	return r.populatePlan(&p, isActive, startStr, endStr, lastUpdatedStr, createdAtStr)
}

// populatePlan fills in parsed fields on a StudyPlan after scanning raw strings.
func (r *SQLitePlanRepo) populatePlan(p *domain.StudyPlan, isActive int, startStr, endStr, lastUpdatedStr, createdAtStr string) (*domain.StudyPlan, error) {
	var err error
	p.IsActive = isActive != 0
	if p.StartDate, err = parseDate(startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.EndDate, err = parseDate(endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if p.LastUpdated, err = parseTimestamp(lastUpdatedStr); err != nil {
		return nil, fmt.Errorf("parsing last_updated: %w", err)
	}
	if p.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return p, nil
}
