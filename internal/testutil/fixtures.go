package testutil

import (
	"time"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/google/uuid"
)

// TestUserID owns fixtures unless a test overrides it.
const TestUserID = "user-test"

// now is truncated to whole seconds so fixtures survive an RFC3339 round trip.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Topic options
type TopicOption func(*domain.Topic)

func WithWeight(w float64) TopicOption {
	return func(t *domain.Topic) {
		t.Weight = w
	}
}

func WithDifficulty(d domain.Difficulty) TopicOption {
	return func(t *domain.Topic) {
		t.Difficulty = d
	}
}

func WithEstimatedHours(h float64) TopicOption {
	return func(t *domain.Topic) {
		t.EstimatedHours = h
	}
}

func WithSubject(s string) TopicOption {
	return func(t *domain.Topic) {
		t.Subject = s
	}
}

func WithPrerequisites(ids ...string) TopicOption {
	return func(t *domain.Topic) {
		t.Prerequisites = ids
	}
}

func NewTestTopic(name string, opts ...TopicOption) domain.Topic {
	t := domain.Topic{
		ID:             uuid.New().String(),
		Name:           name,
		Subject:        name,
		Weight:         50,
		EstimatedHours: 2,
		Difficulty:     domain.DifficultyMedium,
		Prerequisites:  []string{},
		Subtopics:      []string{},
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Syllabus options
type SyllabusOption func(*domain.Syllabus)

func WithExamDate(d time.Time) SyllabusOption {
	return func(s *domain.Syllabus) {
		s.ExamDate = d
	}
}

func WithTopics(topics ...domain.Topic) SyllabusOption {
	return func(s *domain.Syllabus) {
		s.Topics = topics
	}
}

func WithOwner(userID string) SyllabusOption {
	return func(s *domain.Syllabus) {
		s.UserID = userID
	}
}

// NewTestSyllabus returns a syllabus for TestUserID with an exam four weeks
// out and two default topics.
func NewTestSyllabus(name string, opts ...SyllabusOption) *domain.Syllabus {
	n := now()
	y, m, d := n.AddDate(0, 0, 28).Date()
	s := &domain.Syllabus{
		ID:        uuid.New().String(),
		UserID:    TestUserID,
		Name:      name,
		ExamDate:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		CreatedAt: n,
		Topics: []domain.Topic{
			NewTestTopic("Português", WithWeight(80), WithDifficulty(domain.DifficultyHard)),
			NewTestTopic("Matemática", WithWeight(40), WithDifficulty(domain.DifficultyEasy)),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	for i := range s.Topics {
		s.Topics[i].SyllabusID = s.ID
		s.Topics[i].OrderIndex = i
	}
	return s
}

// Flashcard options
type FlashcardOption func(*domain.Flashcard)

func WithCardSubject(s string) FlashcardOption {
	return func(f *domain.Flashcard) {
		f.Subject = s
	}
}

func WithNextReview(t time.Time) FlashcardOption {
	return func(f *domain.Flashcard) {
		f.Review.NextReviewDate = t.UTC().Truncate(time.Second)
	}
}

func WithCardOwner(userID string) FlashcardOption {
	return func(f *domain.Flashcard) {
		f.UserID = userID
	}
}

func NewTestFlashcard(front, back string, opts ...FlashcardOption) *domain.Flashcard {
	n := now()
	f := &domain.Flashcard{
		ID:        uuid.New().String(),
		UserID:    TestUserID,
		Front:     front,
		Back:      back,
		CreatedAt: n,
		UpdatedAt: n,
	}
	f.Review = domain.NewReviewState(f.ID, n)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func NewTestQuestion(subject, correct string) domain.Question {
	return domain.Question{
		ID:            uuid.New().String(),
		Subject:       subject,
		Prompt:        "Question on " + subject,
		CorrectAnswer: correct,
	}
}

func NewTestExam(title string, questions ...domain.Question) *domain.Exam {
	e := &domain.Exam{
		ID:        uuid.New().String(),
		Title:     title,
		Questions: questions,
		CreatedAt: now(),
	}
	for i := range e.Questions {
		e.Questions[i].ExamID = e.ID
		e.Questions[i].OrderIndex = i
	}
	return e
}

// Exam result options
type ResultOption func(*domain.ExamResult)

func WithCompletedAt(t time.Time) ResultOption {
	return func(r *domain.ExamResult) {
		r.CompletedAt = t.UTC().Truncate(time.Second)
	}
}

func WithTimeSpent(minutes float64) ResultOption {
	return func(r *domain.ExamResult) {
		r.TimeSpent = minutes
	}
}

// NewTestResult records an attempt at exam by TestUserID. correct lists the
// question ids answered correctly; every other question gets a wrong answer.
func NewTestResult(exam *domain.Exam, correct []string, opts ...ResultOption) *domain.ExamResult {
	right := make(map[string]bool, len(correct))
	for _, id := range correct {
		right[id] = true
	}
	answers := make(map[string]string, len(exam.Questions))
	for _, q := range exam.Questions {
		if right[q.ID] {
			answers[q.ID] = q.CorrectAnswer
		} else {
			answers[q.ID] = q.CorrectAnswer + "-wrong"
		}
	}
	r := &domain.ExamResult{
		ID:          uuid.New().String(),
		ExamID:      exam.ID,
		UserID:      TestUserID,
		Answers:     answers,
		TimeSpent:   30,
		CompletedAt: now(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
