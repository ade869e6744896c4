package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
)

type RiskInput struct {
	Now        time.Time
	ExamDate   time.Time
	DailyHours float64
	Sessions   []domain.StudySession
}

type RiskResult struct {
	Level            domain.RiskLevel
	DaysLeft         int
	StudyDaysLeft    int // weekdays from today until the exam
	RemainingMin     int // planned minutes of sessions not yet completed
	OverdueSessions  int // pending sessions scheduled before today
	RequiredDailyMin float64
	BudgetDailyMin   float64
}

// ComputeRisk measures whether the remaining sessions of a plan still fit
// the daily budget before the exam.
//
// The level is critical when the exam has passed with work left or the
// required pace exceeds 1.5x the budget, at_risk when it exceeds the budget
// or overdue sessions pile up beyond one day's budget, on_track otherwise.
func ComputeRisk(input RiskInput) RiskResult {
	today := dateOnly(input.Now)

	result := RiskResult{
		DaysLeft:       daysBetween(input.Now, input.ExamDate),
		BudgetDailyMin: input.DailyHours * 60,
	}
	var overdueMin int
	for _, s := range input.Sessions {
		if s.Status == domain.SessionCompleted {
			continue
		}
		result.RemainingMin += s.Duration
		if s.Status == domain.SessionPending && dateOnly(s.ScheduledDate).Before(today) {
			result.OverdueSessions++
			overdueMin += s.Duration
		}
	}
	for d := 0; d < result.DaysLeft; d++ {
		if !isWeekend(today.AddDate(0, 0, d)) {
			result.StudyDaysLeft++
		}
	}

	if result.RemainingMin == 0 {
		result.Level = domain.RiskOnTrack
		return result
	}
	if result.StudyDaysLeft <= 0 {
		result.Level = domain.RiskCritical
		result.RequiredDailyMin = float64(result.RemainingMin)
		return result
	}

	result.RequiredDailyMin = float64(result.RemainingMin) / float64(result.StudyDaysLeft)
	budget := math.Max(result.BudgetDailyMin, 1)
	ratio := result.RequiredDailyMin / budget

	switch {
	case ratio > 1.5:
		result.Level = domain.RiskCritical
	case ratio > 1.0:
		result.Level = domain.RiskAtRisk
	case float64(overdueMin) > result.BudgetDailyMin:
		result.Level = domain.RiskAtRisk
	default:
		result.Level = domain.RiskOnTrack
	}
	return result
}
