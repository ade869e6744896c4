package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// SyllabusImport is the top-level structure of a syllabus (edital) file.
type SyllabusImport struct {
	Syllabus SyllabusHeader `json:"syllabus"`
	Topics   []TopicImport  `json:"topics"`
}

type SyllabusHeader struct {
	Name     string `json:"name"`
	ExamDate string `json:"exam_date"`
}

// TopicImport is one topic entry. Ref is file-local; prerequisites name
// other topics by ref and are rewritten to generated ids on conversion.
type TopicImport struct {
	Ref            string   `json:"ref"`
	Name           string   `json:"name"`
	Subject        string   `json:"subject,omitempty"`
	Weight         *float64 `json:"weight"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	Difficulty     string   `json:"difficulty,omitempty"`
	Prerequisites  []string `json:"prerequisites,omitempty"`
	Subtopics      []string `json:"subtopics,omitempty"`
}

// ExamResultImport is one graded attempt together with the exam it answers.
type ExamResultImport struct {
	Exam   ExamImport   `json:"exam"`
	Result ResultImport `json:"result"`
}

type ExamImport struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Questions []QuestionImport `json:"questions"`
}

type QuestionImport struct {
	ID            string `json:"id"`
	Subject       string `json:"subject"`
	Prompt        string `json:"prompt,omitempty"`
	CorrectAnswer string `json:"correct_answer"`
}

type ResultImport struct {
	TimeSpentMin float64           `json:"time_spent_min"`
	CompletedAt  string            `json:"completed_at"`
	Answers      map[string]string `json:"answers"`
}

// LoadSyllabusImport reads and parses a syllabus JSON file.
func LoadSyllabusImport(path string) (*SyllabusImport, error) {
	var schema SyllabusImport
	if err := loadJSON(path, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// LoadExamResultImport reads and parses an exam-result JSON file.
func LoadExamResultImport(path string) (*ExamResultImport, error) {
	var schema ExamResultImport
	if err := loadJSON(path, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing import file: %w", err)
	}
	return nil
}
