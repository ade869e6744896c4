package domain

import "time"

type Question struct {
	ID            string
	ExamID        string
	Subject       string
	Prompt        string
	CorrectAnswer string
	OrderIndex    int
}

type Exam struct {
	ID        string
	Title     string
	Questions []Question
	CreatedAt time.Time
}

// ExamResult is one attempt at an exam. Answers maps question id to the
// submitted answer; TimeSpent is the whole attempt in minutes.
type ExamResult struct {
	ID          string
	ExamID      string
	UserID      string
	Answers     map[string]string
	TimeSpent   float64
	CompletedAt time.Time

	// Exam is the joined exam with its questions; repositories populate it
	// when listing a user's history.
	Exam *Exam
}

// IsCorrect reports whether the answer recorded for q matches its key.
func (r *ExamResult) IsCorrect(q Question) bool {
	answer, ok := r.Answers[q.ID]
	return ok && answer == q.CorrectAnswer
}

// PerformanceMetric summarizes a learner's results on one topic key.
type PerformanceMetric struct {
	TopicID       string
	AverageScore  int
	TotalAttempts int
	TimeSpent     float64 // minutes
	LastStudied   time.Time
	Mastery       Mastery
}
