package importer

import (
	"strings"
	"testing"

	"github.com/alexanderramin/edital/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(f float64) *float64 { return &f }

func validSyllabus() *SyllabusImport {
	return &SyllabusImport{
		Syllabus: SyllabusHeader{Name: "TRF", ExamDate: "2025-05-18"},
		Topics: []TopicImport{
			{Ref: "a", Name: "Constitucional", Weight: ptrFloat(80)},
			{Ref: "b", Name: "Administrativo", Weight: ptrFloat(60), Prerequisites: []string{"a"}},
		},
	}
}

func errorsContain(errs []error, substr string) bool {
	for _, err := range errs {
		if strings.Contains(err.Error(), substr) {
			return true
		}
	}
	return false
}

func TestValidateSyllabusImport_Valid(t *testing.T) {
	assert.Empty(t, ValidateSyllabusImport(validSyllabus()))
}

func TestValidateSyllabusImport_MissingHeader(t *testing.T) {
	s := validSyllabus()
	s.Syllabus = SyllabusHeader{}
	errs := ValidateSyllabusImport(s)
	assert.True(t, errorsContain(errs, "syllabus.name is required"))
	assert.True(t, errorsContain(errs, "syllabus.exam_date is required"))
}

func TestValidateSyllabusImport_InvalidDate(t *testing.T) {
	s := validSyllabus()
	s.Syllabus.ExamDate = "18/05/2025"
	errs := ValidateSyllabusImport(s)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "expected YYYY-MM-DD")
}

func TestValidateSyllabusImport_CollectsAllTopicErrors(t *testing.T) {
	s := validSyllabus()
	s.Topics = append(s.Topics,
		TopicImport{Ref: "a", Name: "", Weight: ptrFloat(120), EstimatedHours: ptrFloat(-1), Difficulty: "brutal"},
		TopicImport{Ref: "c", Name: "No weight"},
	)
	errs := ValidateSyllabusImport(s)

	assert.True(t, errorsContain(errs, `duplicate ref "a"`))
	assert.True(t, errorsContain(errs, "topics[2].name is required"))
	assert.True(t, errorsContain(errs, "weight must be between 0 and 100"))
	assert.True(t, errorsContain(errs, "estimated_hours must not be negative"))
	assert.True(t, errorsContain(errs, `difficulty: invalid value "brutal"`))
	assert.True(t, errorsContain(errs, "topics[3].weight is required"))
}

func TestValidateSyllabusImport_NoTopics(t *testing.T) {
	s := validSyllabus()
	s.Topics = nil
	assert.True(t, errorsContain(ValidateSyllabusImport(s), "at least one topic"))
}

func TestValidateSyllabusImport_UnknownPrerequisite(t *testing.T) {
	s := validSyllabus()
	s.Topics[1].Prerequisites = []string{"zzz"}
	assert.True(t, errorsContain(ValidateSyllabusImport(s), `ref "zzz" not found`))
}

func TestValidateSyllabusImport_SelfPrerequisite(t *testing.T) {
	s := validSyllabus()
	s.Topics[0].Prerequisites = []string{"a"}
	assert.True(t, errorsContain(ValidateSyllabusImport(s), "depends on itself"))
}

func TestValidateSyllabusImport_CircularPrerequisites(t *testing.T) {
	s := validSyllabus()
	s.Topics[0].Prerequisites = []string{"b"}
	errs := ValidateSyllabusImport(s)
	assert.True(t, errorsContain(errs, "circular prerequisite"))
}

func validExamResult() *ExamResultImport {
	return &ExamResultImport{
		Exam: ExamImport{
			ID:    "sim-1",
			Title: "Simulado",
			Questions: []QuestionImport{
				{ID: "q1", Subject: "math", CorrectAnswer: "a"},
				{ID: "q2", Subject: "law", CorrectAnswer: "b"},
			},
		},
		Result: ResultImport{
			TimeSpentMin: 30,
			CompletedAt:  "2025-03-20T21:30:00Z",
			Answers:      map[string]string{"q1": "a"},
		},
	}
}

func TestValidateExamResultImport_Valid(t *testing.T) {
	assert.Empty(t, ValidateExamResultImport(validExamResult()))
}

func TestValidateExamResultImport_Errors(t *testing.T) {
	s := validExamResult()
	s.Exam.Title = ""
	s.Exam.Questions = append(s.Exam.Questions, QuestionImport{ID: "q1"})
	s.Result.TimeSpentMin = -3
	s.Result.CompletedAt = "yesterday"
	s.Result.Answers["q9"] = "c"

	errs := ValidateExamResultImport(s)
	assert.True(t, errorsContain(errs, "exam.title is required"))
	assert.True(t, errorsContain(errs, `duplicate id "q1"`))
	assert.True(t, errorsContain(errs, "exam.questions[2].subject is required"))
	assert.True(t, errorsContain(errs, "exam.questions[2].correct_answer is required"))
	assert.True(t, errorsContain(errs, "time_spent_min must not be negative"))
	assert.True(t, errorsContain(errs, "expected RFC3339"))
	assert.True(t, errorsContain(errs, `question "q9" not found`))
}

func TestValidationError_MatchesInvalidInput(t *testing.T) {
	err := &ValidationError{Errs: ValidateSyllabusImport(&SyllabusImport{})}
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "validation error(s)")
	assert.Contains(t, err.Error(), "syllabus.name is required")
}
