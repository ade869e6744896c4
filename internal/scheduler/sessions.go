package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/google/uuid"
)

// MaxSessionMin caps a single generated study block.
const MaxSessionMin = 90

// ScheduleInput describes the calendar window and daily budget for
// ScheduleSessions. Topics must already be in priority order.
type ScheduleInput struct {
	Topics     []domain.Topic
	StartDate  time.Time
	ExamDate   time.Time
	DailyHours float64
}

// ScheduleSessions packs prioritized topics greedily into weekdays between
// StartDate (inclusive) and ExamDate (exclusive).
//
// Each weekday's budget goes to the topic at the front of the queue in
// chunks of at most MaxSessionMin minutes; the queue advances once the day's
// budget is used up, so every topic receives one full study day. Saturdays
// and Sundays get no sessions. Scheduling stops when either the topics or
// the days run out.
func ScheduleSessions(in ScheduleInput) ([]domain.StudySession, error) {
	if in.DailyHours <= 0 || math.IsNaN(in.DailyHours) {
		return nil, fmt.Errorf("daily hours must be positive, got %v: %w", in.DailyHours, domain.ErrInvalidInput)
	}

	start := dateOnly(in.StartDate)
	totalDays := daysBetween(in.StartDate, in.ExamDate)
	dailyMin := int(math.Round(in.DailyHours * 60))

	sessions := make([]domain.StudySession, 0)
	if totalDays <= 0 || len(in.Topics) == 0 || dailyMin <= 0 {
		return sessions, nil
	}

	topicIdx := 0
	for day := 0; day < totalDays && topicIdx < len(in.Topics); day++ {
		date := start.AddDate(0, 0, day)
		if isWeekend(date) {
			continue
		}

		remaining := dailyMin
		for remaining > 0 && topicIdx < len(in.Topics) {
			topic := in.Topics[topicIdx]
			duration := min(remaining, MaxSessionMin)

			sessions = append(sessions, domain.StudySession{
				ID:            uuid.New().String(),
				TopicID:       topic.ID,
				TopicName:     topic.Name,
				Subject:       topic.Subject,
				ScheduledDate: date,
				Duration:      duration,
				Priority:      PriorityForScore(PriorityScore(topic)),
				Status:        domain.SessionPending,
				OrderIndex:    len(sessions),
			})

			remaining -= duration
			if remaining <= 0 {
				topicIdx++
			}
		}
	}

	return sessions, nil
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// dateOnly truncates t to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return dateIn(t, t.Location())
}

// dateIn returns midnight of t's calendar date in loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days from the date of a to the date of b,
// each read in its own location. Clock time, DST and zone offsets do not
// affect the count.
func daysBetween(a, b time.Time) int {
	return int(dateIn(b, time.UTC).Sub(dateIn(a, time.UTC)).Hours() / 24)
}
