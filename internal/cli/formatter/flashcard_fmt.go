package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
)

const cardFrontWidth = 40

// FormatCardList renders flashcards with their review schedule.
func FormatCardList(cards []*domain.Flashcard, now time.Time) string {
	if len(cards) == 0 {
		return Dim("No flashcards.") + "\n"
	}

	headers := []string{"ID", "FRONT", "SUBJECT", "REPS", "EASE", "NEXT REVIEW"}
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		next := RelativeDateFrom(c.Review.NextReviewDate, now)
		if c.Review.IsDue(now) {
			next = StyleYellow.Render("due")
		}
		subject := Dim("--")
		if c.Subject != "" {
			subject = StylePurple.Render(c.Subject)
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			truncate(c.Front, cardFrontWidth),
			subject,
			fmt.Sprintf("%d", c.Review.Repetitions),
			fmt.Sprintf("%.2f", c.Review.EaseFactor),
			next,
		})
	}
	return RenderTable(headers, rows)
}

// FormatCardPrompt renders the front of a card for review.
func FormatCardPrompt(c *domain.Flashcard) string {
	return RenderBox(c.Subject, Bold(c.Front))
}

// FormatReviewResult renders the state a review produced.
func FormatReviewResult(c *domain.Flashcard, quality int) string {
	var b strings.Builder
	b.WriteString(Dim("Answer: ") + c.Back + "\n")
	outcome := StyleGreen.Render("✔ recalled")
	if c.Review.Repetitions == 0 {
		outcome = StyleRed.Render("✖ forgotten")
	}
	b.WriteString(fmt.Sprintf("%s  quality %d → next review in %dd (%s), ease %.2f\n",
		outcome, quality, c.Review.Interval,
		c.Review.NextReviewDate.Format(time.DateOnly), c.Review.EaseFactor))
	return b.String()
}

// FormatReviewHistory renders a card's review log.
func FormatReviewHistory(logs []domain.ReviewLog) string {
	if len(logs) == 0 {
		return Dim("Never reviewed.") + "\n"
	}
	cols := []Column{
		{Title: "REVIEWED"}, {Title: "QUALITY", Right: true}, {Title: "INTERVAL", Right: true},
		{Title: "EASE", Right: true}, {Title: "REPS", Right: true},
	}
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			l.ReviewedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", l.Quality),
			fmt.Sprintf("%dd", l.Interval),
			fmt.Sprintf("%.2f", l.EaseFactor),
			fmt.Sprintf("%d", l.Repetitions),
		})
	}
	return RenderColumns(cols, rows)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
