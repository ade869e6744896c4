package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/scheduler"
)

// FormatPerformance renders per-subject metrics in first-seen order.
func FormatPerformance(m *scheduler.PerformanceMetrics) string {
	if m.Len() == 0 {
		return Dim("No exam results recorded.") + "\n"
	}

	cols := []Column{
		{Title: "SUBJECT"}, {Title: "SCORE", Right: true}, {Title: "ATTEMPTS", Right: true},
		{Title: "TIME", Right: true}, {Title: "LAST"}, {Title: "MASTERY"},
	}
	rows := make([][]string, 0, m.Len())
	for _, pm := range m.All() {
		rows = append(rows, []string{
			pm.TopicID,
			fmt.Sprintf("%d%%", pm.AverageScore),
			fmt.Sprintf("%d", pm.TotalAttempts),
			FormatMinutes(int(pm.TimeSpent + 0.5)),
			pm.LastStudied.Format(time.DateOnly),
			MasteryBadge(pm.Mastery),
		})
	}
	return RenderColumns(cols, rows)
}

// FormatExamResult renders the score of one recorded attempt.
func FormatExamResult(r *domain.ExamResult) string {
	var b strings.Builder
	title := r.ExamID
	total := 0
	correct := 0
	if r.Exam != nil {
		title = r.Exam.Title
		total = len(r.Exam.Questions)
		for _, q := range r.Exam.Questions {
			if r.IsCorrect(q) {
				correct++
			}
		}
	}
	b.WriteString(fmt.Sprintf("Recorded %s %s\n", Bold(title), TruncID(r.ID)))
	if total > 0 {
		b.WriteString(fmt.Sprintf("Score: %d/%d (%d%%) in %s\n",
			correct, total, correct*100/total, FormatMinutes(int(r.TimeSpent+0.5))))
	}
	return b.String()
}
