package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/scheduler"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 3, 17, 9, 0, 0, 0, time.UTC)

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func trimRight(s string) string {
	return strings.TrimRight(s, " ")
}

func testSyllabus() *domain.Syllabus {
	return &domain.Syllabus{
		ID:       "syl-12345678",
		Name:     "TRF Analista",
		ExamDate: time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC),
		Topics: []domain.Topic{
			{ID: "t1", Name: "Português", Subject: "portugues", Weight: 30, EstimatedHours: 12, Difficulty: domain.DifficultyMedium},
			{ID: "t2", Name: "Constitucional", Subject: "constitucional", Weight: 80, EstimatedHours: 20, Difficulty: domain.DifficultyHard},
			{ID: "t3", Name: "Administrativo", Subject: "administrativo", Weight: 60, EstimatedHours: 1.5, Difficulty: domain.DifficultyHard, Prerequisites: []string{"t2"}},
		},
	}
}

func TestFormatSyllabus_PriorityOrder(t *testing.T) {
	out := stripANSI(FormatSyllabus(testSyllabus(), now))

	assert.Contains(t, out, "TRF Analista")
	assert.Contains(t, out, "2025-05-18")
	constIdx := strings.Index(out, "Constitucional ")
	admIdx := strings.Index(out, "Administrativo ")
	portIdx := strings.Index(out, "Português ")
	assert.True(t, constIdx < admIdx && admIdx < portIdx, "topics are listed by priority score")
	assert.Contains(t, out, "1.5h")
}

func TestFormatSyllabusList(t *testing.T) {
	assert.Contains(t, stripANSI(FormatSyllabusList(nil, now)), "No syllabi")

	out := stripANSI(FormatSyllabusList([]*domain.Syllabus{testSyllabus()}, now))
	assert.Contains(t, out, "syl-1234")
	assert.Contains(t, out, "33.5h")
	assert.Contains(t, out, "In 2mo")
}

func testPlan() *domain.StudyPlan {
	day1 := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	return &domain.StudyPlan{
		ID:         "plan-abcdefgh",
		StartDate:  day1,
		EndDate:    time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		TotalHours: 4,
		DailyHours: 2,
		IsActive:   true,
		Progress:   25,
		Sessions: []domain.StudySession{
			{ID: "s1", TopicName: "Português", ScheduledDate: day1, Duration: 90, Priority: domain.PriorityHigh, Status: domain.SessionCompleted},
			{ID: "s2", TopicName: "Português", ScheduledDate: day1, Duration: 30, Priority: domain.PriorityHigh, Status: domain.SessionPending},
			{ID: "s3", TopicName: "Matemática", ScheduledDate: day2, Duration: 90, Priority: domain.PriorityLow, Status: domain.SessionPending},
			{ID: "s4", TopicName: "Matemática", ScheduledDate: day2, Duration: 30, Priority: domain.PriorityLow, Status: domain.SessionPostponed},
		},
	}
}

func TestFormatPlan(t *testing.T) {
	risk := scheduler.ComputeRisk(scheduler.RiskInput{
		Now: now, ExamDate: testPlan().EndDate, DailyHours: 2, Sessions: testPlan().Sessions,
	})
	out := stripANSI(FormatPlan(testPlan(), &risk, now))

	assert.Contains(t, out, "active")
	assert.Contains(t, out, "2025-03-14 → 2025-03-31")
	assert.Contains(t, out, " 25%")
	assert.Contains(t, out, "ON TRACK")
	assert.Contains(t, out, "1 overdue session(s)")
	assert.Equal(t, 1, strings.Count(out, "Fri 14 Mar"), "date is shown once per day")
	assert.Contains(t, out, "1h 30m")
	assert.Contains(t, out, "postponed")
}

func TestFormatPlan_WithoutSessions(t *testing.T) {
	p := testPlan()
	p.Sessions = nil
	out := stripANSI(FormatPlan(p, nil, now))
	assert.Contains(t, out, "No sessions fit before the exam")
	assert.NotContains(t, out, "ON TRACK")
}

func TestFormatPlanList(t *testing.T) {
	assert.Contains(t, stripANSI(FormatPlanList(nil, now)), "No study plans")

	out := stripANSI(FormatPlanList([]*domain.StudyPlan{testPlan()}, now))
	assert.Contains(t, out, "plan-abc")
	assert.Contains(t, out, "1/4")
	assert.Contains(t, out, "In 2w")
}

func testMetrics() *scheduler.PerformanceMetrics {
	m := scheduler.NewPerformanceMetrics()
	m.Set("constitucional", domain.PerformanceMetric{TopicID: "constitucional", AverageScore: 50, TotalAttempts: 2, TimeSpent: 30, LastStudied: now, Mastery: domain.MasteryLow})
	m.Set("portugues", domain.PerformanceMetric{TopicID: "portugues", AverageScore: 100, TotalAttempts: 1, TimeSpent: 15, LastStudied: now, Mastery: domain.MasteryHigh})
	return m
}

func TestFormatPerformance(t *testing.T) {
	assert.Contains(t, stripANSI(FormatPerformance(scheduler.NewPerformanceMetrics())), "No exam results")

	out := stripANSI(FormatPerformance(testMetrics()))
	lines := splitLines(out)
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "constitucional"), "keys keep first-seen order")
	assert.Contains(t, lines[2], "50%")
	assert.Contains(t, lines[2], "low")
	assert.Contains(t, lines[3], "high")
}

func TestFormatAdaptation(t *testing.T) {
	out := stripANSI(FormatAdaptation(testPlan(), testMetrics(), 3))
	assert.Contains(t, out, "3 of 4 sessions changed")
	assert.Contains(t, out, "constitucional")

	out = stripANSI(FormatAdaptation(testPlan(), scheduler.NewPerformanceMetrics(), 0))
	assert.Contains(t, out, "plan left unchanged")
}

func TestFormatExamResult(t *testing.T) {
	exam := &domain.Exam{ID: "e1", Title: "Simulado 01", Questions: []domain.Question{
		{ID: "q1", CorrectAnswer: "a"}, {ID: "q2", CorrectAnswer: "b"}, {ID: "q3", CorrectAnswer: "c"},
	}}
	r := &domain.ExamResult{ID: "r1", ExamID: "e1", Answers: map[string]string{"q1": "a", "q2": "x", "q3": "c"}, TimeSpent: 45, Exam: exam}

	out := stripANSI(FormatExamResult(r))
	assert.Contains(t, out, "Simulado 01")
	assert.Contains(t, out, "Score: 2/3 (66%) in 45m")
}

func TestFormatCards(t *testing.T) {
	due := &domain.Flashcard{ID: "c1", Front: strings.Repeat("longo ", 20), Subject: "portugues",
		Review: domain.FlashcardReviewState{EaseFactor: 2.5, NextReviewDate: now.Add(-time.Hour)}}
	later := &domain.Flashcard{ID: "c2", Front: "Art. 37", Review: domain.FlashcardReviewState{EaseFactor: 2.36, Repetitions: 2, NextReviewDate: now.AddDate(0, 0, 6)}}

	out := stripANSI(FormatCardList([]*domain.Flashcard{due, later}, now))
	assert.Contains(t, out, "due")
	assert.Contains(t, out, "…")
	assert.Contains(t, out, "In 6d")
	assert.Contains(t, out, "2.36")
	assert.Contains(t, stripANSI(FormatCardList(nil, now)), "No flashcards")

	later.Back = "LIMPE"
	later.Review.Interval = 6
	res := stripANSI(FormatReviewResult(later, 4))
	assert.Contains(t, res, "Answer: LIMPE")
	assert.Contains(t, res, "recalled")
	assert.Contains(t, res, "next review in 6d")

	assert.Contains(t, stripANSI(FormatReviewHistory(nil)), "Never reviewed")
	hist := stripANSI(FormatReviewHistory([]domain.ReviewLog{{Quality: 5, Interval: 1, EaseFactor: 2.6, Repetitions: 1, ReviewedAt: now}}))
	assert.Contains(t, hist, "2025-03-17 09:00")
	assert.Contains(t, hist, "2.60")
}
