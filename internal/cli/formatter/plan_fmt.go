package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/scheduler"
)

const planProgressBarWidth = 10

// FormatPlanList renders plans with their progress.
func FormatPlanList(plans []*domain.StudyPlan, now time.Time) string {
	if len(plans) == 0 {
		return Dim("No study plans. Use 'edital plan generate <syllabus-id>' to create one.") + "\n"
	}

	headers := []string{"ID", "STATUS", "PROGRESS", "SESSIONS", "DAILY", "EXAM"}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []string{
			TruncID(p.ID),
			ActivePill(p.IsActive),
			RenderProgress(p.Progress, planProgressBarWidth),
			fmt.Sprintf("%d/%d", p.CompletedSessions(), len(p.Sessions)),
			FormatHours(p.DailyHours),
			ExamCountdown(p.EndDate, now),
		})
	}
	return RenderTable(headers, rows)
}

// FormatPlan renders a plan header, its risk assessment when given, and the
// sessions grouped by day.
func FormatPlan(p *domain.StudyPlan, risk *scheduler.RiskResult, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", ActivePill(p.IsActive), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s → %s  %s/day  %s total\n",
		p.StartDate.Format(time.DateOnly), p.EndDate.Format(time.DateOnly),
		FormatHours(p.DailyHours), FormatHours(p.TotalHours)))
	b.WriteString(RenderProgress(p.Progress, 20) + "\n")

	if risk != nil {
		b.WriteString("\n" + FormatRisk(risk) + "\n")
	}

	if len(p.Sessions) == 0 {
		b.WriteString("\n" + Dim("No sessions fit before the exam.") + "\n")
		return RenderBox("Study Plan", b.String())
	}

	b.WriteString("\n")
	b.WriteString(FormatSessions(p.Sessions, now))
	return RenderBox("Study Plan", b.String())
}

// FormatSessions renders a session table; the date column is shown once per day.
func FormatSessions(sessions []domain.StudySession, now time.Time) string {
	cols := []Column{
		{Title: "#", Right: true}, {Title: "DATE"}, {Title: "ID"}, {Title: "TOPIC"},
		{Title: "DURATION", Right: true}, {Title: "PRIORITY"}, {Title: "STATUS"},
	}
	rows := make([][]string, 0, len(sessions))
	var lastDate string
	for i, s := range sessions {
		date := s.ScheduledDate.Format("Mon 02 Jan")
		if date == lastDate {
			date = ""
		} else {
			lastDate = date
			if s.Status == domain.SessionPending && s.ScheduledDate.Before(startOfDay(now)) {
				date = StyleRed.Render(date)
			}
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			date,
			TruncID(s.ID),
			s.TopicName,
			FormatMinutes(s.Duration),
			PriorityBadge(s.Priority),
			SessionStatusPill(s.Status),
		})
	}
	return RenderColumns(cols, rows)
}

// FormatRisk renders the pace check for a plan.
func FormatRisk(r *scheduler.RiskResult) string {
	var b strings.Builder
	b.WriteString(RiskIndicator(r.Level))
	b.WriteString(Dim(fmt.Sprintf("  %s left over %d study days (need %s/day, budget %s/day)",
		FormatMinutes(r.RemainingMin), r.StudyDaysLeft,
		FormatMinutes(int(r.RequiredDailyMin+0.5)), FormatMinutes(int(r.BudgetDailyMin+0.5)))))
	if r.OverdueSessions > 0 {
		b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf("  %d overdue session(s)", r.OverdueSessions)))
	}
	return b.String()
}

// FormatAdaptation summarizes an adaptation run.
func FormatAdaptation(p *domain.StudyPlan, metrics *scheduler.PerformanceMetrics, changed int) string {
	var b strings.Builder
	if metrics.Len() == 0 {
		b.WriteString(Dim("No exam results yet; plan left unchanged.") + "\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Adapted plan %s: %s of %d sessions changed.\n\n",
		TruncID(p.ID), Bold(fmt.Sprintf("%d", changed)), len(p.Sessions)))
	b.WriteString(FormatPerformance(metrics))
	return b.String()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
