package domain

import (
	"fmt"
	"math"
	"time"
)

type StudySession struct {
	ID             string
	PlanID         string
	TopicID        string
	TopicName      string
	Subject        string
	ScheduledDate  time.Time
	Duration       int // minutes
	Priority       Priority
	Status         SessionStatus
	ActualDuration *int
	Notes          string
	Performance    *int // 0-100
	OrderIndex     int
}

type StudyPlan struct {
	ID          string
	SyllabusID  string
	UserID      string
	StartDate   time.Time
	EndDate     time.Time
	TotalHours  float64
	DailyHours  float64
	Sessions    []StudySession
	IsActive    bool
	Progress    int // 0-100
	LastUpdated time.Time
	CreatedAt   time.Time
}

// SessionUpdate carries the user-editable fields of a session. Nil pointers
// leave the corresponding field untouched.
type SessionUpdate struct {
	Status         SessionStatus
	ActualDuration *int
	Notes          *string
	Performance    *int
}

// CompletedSessions counts sessions with status completed.
func (p *StudyPlan) CompletedSessions() int {
	n := 0
	for _, s := range p.Sessions {
		if s.Status == SessionCompleted {
			n++
		}
	}
	return n
}

// ComputeProgress returns round(100 * completed / total), or 0 for a plan
// without sessions.
func (p *StudyPlan) ComputeProgress() int {
	if len(p.Sessions) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(p.CompletedSessions()) / float64(len(p.Sessions))))
}

// Session returns a pointer to the session with the given id.
func (p *StudyPlan) Session(id string) (*StudySession, error) {
	for i := range p.Sessions {
		if p.Sessions[i].ID == id {
			return &p.Sessions[i], nil
		}
	}
	return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
}

// UpdateSession applies u to the session and recomputes Progress.
func (p *StudyPlan) UpdateSession(sessionID string, u SessionUpdate, now time.Time) (*StudySession, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	s, err := p.Session(sessionID)
	if err != nil {
		return nil, err
	}
	s.Status = u.Status
	if u.ActualDuration != nil {
		v := *u.ActualDuration
		s.ActualDuration = &v
	}
	if u.Notes != nil {
		s.Notes = *u.Notes
	}
	if u.Performance != nil {
		v := *u.Performance
		s.Performance = &v
	}
	p.Progress = p.ComputeProgress()
	p.LastUpdated = now
	return s, nil
}

// Validate checks status and numeric ranges.
func (u SessionUpdate) Validate() error {
	if !ValidSessionStatuses[string(u.Status)] {
		return fmt.Errorf("session status %q: %w", u.Status, ErrInvalidInput)
	}
	if u.ActualDuration != nil && *u.ActualDuration < 0 {
		return fmt.Errorf("actual duration must not be negative: %w", ErrInvalidInput)
	}
	if u.Performance != nil && (*u.Performance < 0 || *u.Performance > 100) {
		return fmt.Errorf("performance must be between 0 and 100: %w", ErrInvalidInput)
	}
	return nil
}

// Clone returns a deep copy so callers can derive new plans without
// mutating the original.
func (p *StudyPlan) Clone() *StudyPlan {
	c := *p
	c.Sessions = make([]StudySession, len(p.Sessions))
	for i, s := range p.Sessions {
		if s.ActualDuration != nil {
			v := *s.ActualDuration
			s.ActualDuration = &v
		}
		if s.Performance != nil {
			v := *s.Performance
			s.Performance = &v
		}
		c.Sessions[i] = s
	}
	return &c
}
