package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/scheduler"
)

// FormatSyllabusList renders the user's syllabi with their exam countdown.
func FormatSyllabusList(syllabi []*domain.Syllabus, now time.Time) string {
	if len(syllabi) == 0 {
		return Dim("No syllabi imported. Use 'edital syllabus import <file>' to add one.") + "\n"
	}

	headers := []string{"ID", "NAME", "TOPICS", "HOURS", "EXAM", ""}
	rows := make([][]string, 0, len(syllabi))
	for _, s := range syllabi {
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(s.Name),
			fmt.Sprintf("%d", len(s.Topics)),
			FormatHours(s.TotalEstimatedHours()),
			s.ExamDate.Format(time.DateOnly),
			ExamCountdown(s.ExamDate, now),
		})
	}
	return RenderTable(headers, rows)
}

// FormatSyllabus renders one syllabus with its topics in priority order.
func FormatSyllabus(s *domain.Syllabus, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", Bold(s.Name), TruncID(s.ID)))
	b.WriteString(fmt.Sprintf("Exam: %s (%s)\n\n", s.ExamDate.Format(time.DateOnly), ExamCountdown(s.ExamDate, now)))

	names := make(map[string]string, len(s.Topics))
	for _, t := range s.Topics {
		names[t.ID] = t.Name
	}

	headers := []string{"TOPIC", "SUBJECT", "WEIGHT", "DIFFICULTY", "HOURS", "PRIORITY", "REQUIRES"}
	rows := make([][]string, 0, len(s.Topics))
	for _, t := range scheduler.PrioritizeTopics(s.Topics) {
		reqs := make([]string, 0, len(t.Prerequisites))
		for _, id := range t.Prerequisites {
			reqs = append(reqs, names[id])
		}
		requires := Dim("--")
		if len(reqs) > 0 {
			requires = strings.Join(reqs, ", ")
		}
		rows = append(rows, []string{
			t.Name,
			StylePurple.Render(t.Subject),
			fmt.Sprintf("%.0f", t.Weight),
			string(t.Difficulty),
			FormatHours(t.EstimatedHours),
			PriorityBadge(scheduler.PriorityForScore(scheduler.PriorityScore(t))),
			requires,
		})
	}
	b.WriteString(RenderTable(headers, rows))

	return RenderBox("Syllabus", b.String())
}
