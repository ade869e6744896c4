package scheduler

import (
	"time"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/google/uuid"
)

// GeneratePlan builds a fresh, active plan for the syllabus starting today
// (the date of now). Callers enforce the one-active-plan rule before calling.
func GeneratePlan(syllabus *domain.Syllabus, dailyHours float64, now time.Time) (*domain.StudyPlan, error) {
	sessions, err := ScheduleSessions(ScheduleInput{
		Topics:     PrioritizeTopics(syllabus.Topics),
		StartDate:  now,
		ExamDate:   syllabus.ExamDate,
		DailyHours: dailyHours,
	})
	if err != nil {
		return nil, err
	}

	plan := &domain.StudyPlan{
		ID:          uuid.New().String(),
		SyllabusID:  syllabus.ID,
		UserID:      syllabus.UserID,
		StartDate:   dateOnly(now),
		EndDate:     dateOnly(syllabus.ExamDate),
		TotalHours:  syllabus.TotalEstimatedHours(),
		DailyHours:  dailyHours,
		Sessions:    sessions,
		IsActive:    true,
		Progress:    0,
		LastUpdated: now,
		CreatedAt:   now,
	}
	for i := range plan.Sessions {
		plan.Sessions[i].PlanID = plan.ID
	}
	return plan, nil
}
