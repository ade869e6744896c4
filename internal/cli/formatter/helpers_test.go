package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestSessionStatusPill(t *testing.T) {
	tests := []struct {
		status   domain.SessionStatus
		contains string
	}{
		{domain.SessionPending, "pending"},
		{domain.SessionCompleted, "completed"},
		{domain.SessionPostponed, "postponed"},
		{"other", "other"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Contains(t, SessionStatusPill(tt.status), tt.contains)
		})
	}
}

func TestBadges(t *testing.T) {
	assert.Contains(t, PriorityBadge(domain.PriorityHigh), "high")
	assert.Contains(t, PriorityBadge(domain.PriorityLow), "low")
	assert.Contains(t, MasteryBadge(domain.MasteryMedium), "medium")
	assert.Contains(t, RiskIndicator(domain.RiskAtRisk), "AT RISK")
	assert.Contains(t, RiskIndicator(""), "UNKNOWN")
	assert.Contains(t, ActivePill(false), "inactive")
}

func TestTruncID(t *testing.T) {
	id := "a1b2c3d4-e5f6-7890-abcd-ef1234567890"
	got := TruncID(id)
	assert.Contains(t, got, "a1b2c3d4")
	assert.NotContains(t, got, "e5f6")

	assert.Contains(t, TruncID("short"), "short")
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{60, "1h"},
		{150, "2h 30m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinutes(tt.input))
		})
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "2h", FormatHours(2))
	assert.Equal(t, "1.5h", FormatHours(1.5))
	assert.Equal(t, "0.25h", FormatHours(0.25))
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("TEST", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")

	assert.Contains(t, RenderBox("", "just content"), "just content")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "LONGER"}, [][]string{{"wide cell", "x"}, {"y"}}))
	lines := splitLines(out)
	assert.Len(t, lines, 4)
	assert.Equal(t, "A          LONGER", lines[0])
	assert.Equal(t, "wide cell  x", lines[2])
	assert.Equal(t, "y", trimRight(lines[3]))

	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderColumns_RightAligned(t *testing.T) {
	cols := []Column{{Title: "NAME"}, {Title: "MIN", Right: true}}
	out := stripANSI(RenderColumns(cols, [][]string{{"crase", "5"}, {"regência", "120"}}))
	lines := splitLines(out)
	assert.Len(t, lines, 4)
	assert.Equal(t, "NAME      MIN", lines[0])
	assert.Equal(t, "crase       5", lines[2])
	assert.Equal(t, "regência  120", lines[3])
}
