package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/google/uuid"
)

// DefaultEstimatedHours applies when a topic omits estimated_hours.
const DefaultEstimatedHours = 1.0

// ConvertSyllabus turns a validated syllabus file into a domain syllabus
// owned by userID. Call ValidateSyllabusImport first; ConvertSyllabus assumes
// the schema is valid.
func ConvertSyllabus(schema *SyllabusImport, userID string, now time.Time) (*domain.Syllabus, error) {
	examDate, err := time.Parse(time.DateOnly, schema.Syllabus.ExamDate)
	if err != nil {
		return nil, fmt.Errorf("parsing exam_date: %w", err)
	}

	syllabus := &domain.Syllabus{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      schema.Syllabus.Name,
		ExamDate:  examDate,
		CreatedAt: now,
		Topics:    make([]domain.Topic, 0, len(schema.Topics)),
	}

	refMap := make(map[string]string, len(schema.Topics)) // ref -> UUID
	for _, t := range schema.Topics {
		refMap[t.Ref] = uuid.New().String()
	}

	for i, t := range schema.Topics {
		prereqs := make([]string, 0, len(t.Prerequisites))
		for _, ref := range t.Prerequisites {
			if id, ok := refMap[ref]; ok {
				prereqs = append(prereqs, id)
			}
		}
		subtopics := t.Subtopics
		if subtopics == nil {
			subtopics = []string{}
		}

		syllabus.Topics = append(syllabus.Topics, domain.Topic{
			ID:             refMap[t.Ref],
			SyllabusID:     syllabus.ID,
			Name:           t.Name,
			Subject:        firstNonEmpty(t.Subject, t.Name),
			Weight:         float64OrDefault(0, t.Weight),
			EstimatedHours: float64OrDefault(DefaultEstimatedHours, t.EstimatedHours),
			Difficulty:     domain.Difficulty(firstNonEmpty(t.Difficulty, string(domain.DifficultyMedium))),
			Prerequisites:  prereqs,
			Subtopics:      subtopics,
			OrderIndex:     i,
		})
	}

	return syllabus, nil
}

// ConvertExamResult turns a validated exam-result file into the exam and the
// attempt recorded for userID. Exam and question ids are kept as given so
// repeated imports of the same exam share its questions.
func ConvertExamResult(schema *ExamResultImport, userID string, now time.Time) (*domain.Exam, *domain.ExamResult, error) {
	completedAt, err := time.Parse(time.RFC3339, schema.Result.CompletedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing completed_at: %w", err)
	}

	exam := &domain.Exam{
		ID:        schema.Exam.ID,
		Title:     schema.Exam.Title,
		CreatedAt: now,
		Questions: make([]domain.Question, 0, len(schema.Exam.Questions)),
	}
	for i, q := range schema.Exam.Questions {
		exam.Questions = append(exam.Questions, domain.Question{
			ID:            q.ID,
			ExamID:        exam.ID,
			Subject:       q.Subject,
			Prompt:        q.Prompt,
			CorrectAnswer: q.CorrectAnswer,
			OrderIndex:    i,
		})
	}

	answers := make(map[string]string, len(schema.Result.Answers))
	for qid, a := range schema.Result.Answers {
		answers[qid] = a
	}

	result := &domain.ExamResult{
		ID:          uuid.New().String(),
		ExamID:      exam.ID,
		UserID:      userID,
		Answers:     answers,
		TimeSpent:   schema.Result.TimeSpentMin,
		CompletedAt: completedAt.UTC(),
		Exam:        exam,
	}
	return exam, result, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func float64OrDefault(fallback float64, p *float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}
