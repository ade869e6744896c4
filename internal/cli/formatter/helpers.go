package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// ExamCountdown colors the days left before an exam by urgency.
func ExamCountdown(exam, now time.Time) string {
	text := RelativeDateFrom(exam, now)
	days := int(math.Round(exam.Sub(now).Hours() / 24))
	switch {
	case days <= 7:
		return StyleRed.Render(text)
	case days <= 21:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// SessionStatusPill returns a colored indicator for a study session status.
func SessionStatusPill(status domain.SessionStatus) string {
	switch status {
	case domain.SessionPending:
		return StyleBlue.Render("○ pending")
	case domain.SessionCompleted:
		return StyleGreen.Render("✔ completed")
	case domain.SessionPostponed:
		return StyleYellow.Render("» postponed")
	default:
		return StyleDim.Render(string(status))
	}
}

// ActivePill marks whether a plan is the active one for its syllabus.
func ActivePill(active bool) string {
	if active {
		return StyleGreen.Render("● active")
	}
	return StyleDim.Render("✖ inactive")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatHours renders fractional hours without trailing zeros, e.g. "1.5h".
func FormatHours(h float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", h), "0"), ".") + "h"
}
