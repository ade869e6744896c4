package importer

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
)

// ValidateSyllabusImport checks a syllabus file before conversion and
// returns every problem found.
func ValidateSyllabusImport(schema *SyllabusImport) []error {
	var errs []error

	if schema.Syllabus.Name == "" {
		errs = append(errs, fmt.Errorf("syllabus.name is required"))
	}
	if schema.Syllabus.ExamDate == "" {
		errs = append(errs, fmt.Errorf("syllabus.exam_date is required"))
	} else if _, err := time.Parse(time.DateOnly, schema.Syllabus.ExamDate); err != nil {
		errs = append(errs, fmt.Errorf("syllabus.exam_date: invalid date format %q (expected YYYY-MM-DD)", schema.Syllabus.ExamDate))
	}
	if len(schema.Topics) == 0 {
		errs = append(errs, fmt.Errorf("topics: at least one topic is required"))
	}

	refs := make(map[string]bool)
	for i, t := range schema.Topics {
		prefix := fmt.Sprintf("topics[%d]", i)

		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[t.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, t.Ref))
		} else {
			refs[t.Ref] = true
		}
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if t.Weight == nil {
			errs = append(errs, fmt.Errorf("%s.weight is required", prefix))
		} else if *t.Weight < 0 || *t.Weight > 100 {
			errs = append(errs, fmt.Errorf("%s.weight must be between 0 and 100, got %v", prefix, *t.Weight))
		}
		if t.EstimatedHours != nil && *t.EstimatedHours < 0 {
			errs = append(errs, fmt.Errorf("%s.estimated_hours must not be negative", prefix))
		}
		if t.Difficulty != "" && !domain.ValidDifficulties[t.Difficulty] {
			errs = append(errs, fmt.Errorf("%s.difficulty: invalid value %q", prefix, t.Difficulty))
		}
	}

	for i, t := range schema.Topics {
		for _, p := range t.Prerequisites {
			switch {
			case p == t.Ref:
				errs = append(errs, fmt.Errorf("topics[%d].prerequisites: topic %q depends on itself", i, t.Ref))
			case !refs[p]:
				errs = append(errs, fmt.Errorf("topics[%d].prerequisites: ref %q not found in topics", i, p))
			}
		}
	}
	errs = append(errs, detectPrerequisiteCycles(schema.Topics)...)

	return errs
}

func detectPrerequisiteCycles(topics []TopicImport) []error {
	graph := make(map[string][]string)
	for _, t := range topics {
		for _, p := range t.Prerequisites {
			if p != t.Ref {
				graph[p] = append(graph[p], t.Ref)
			}
		}
	}

	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)
	color := make(map[string]int)
	var errs []error

	var visit func(ref string) bool
	visit = func(ref string) bool {
		color[ref] = gray
		for _, next := range graph[ref] {
			if color[next] == gray {
				errs = append(errs, fmt.Errorf("circular prerequisite detected involving %q and %q", ref, next))
				return true
			}
			if color[next] == white && visit(next) {
				return true
			}
		}
		color[ref] = black
		return false
	}

	// Walk in file order so the reported cycle is deterministic.
	for _, t := range topics {
		if color[t.Ref] == white {
			visit(t.Ref)
		}
	}
	return errs
}

// ValidateExamResultImport checks an exam-result file and returns every
// problem found.
func ValidateExamResultImport(schema *ExamResultImport) []error {
	var errs []error

	if schema.Exam.ID == "" {
		errs = append(errs, fmt.Errorf("exam.id is required"))
	}
	if schema.Exam.Title == "" {
		errs = append(errs, fmt.Errorf("exam.title is required"))
	}
	if len(schema.Exam.Questions) == 0 {
		errs = append(errs, fmt.Errorf("exam.questions: at least one question is required"))
	}

	ids := make(map[string]bool)
	for i, q := range schema.Exam.Questions {
		prefix := fmt.Sprintf("exam.questions[%d]", i)
		if q.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[q.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, q.ID))
		} else {
			ids[q.ID] = true
		}
		if q.Subject == "" {
			errs = append(errs, fmt.Errorf("%s.subject is required", prefix))
		}
		if q.CorrectAnswer == "" {
			errs = append(errs, fmt.Errorf("%s.correct_answer is required", prefix))
		}
	}

	if schema.Result.TimeSpentMin < 0 {
		errs = append(errs, fmt.Errorf("result.time_spent_min must not be negative"))
	}
	if schema.Result.CompletedAt == "" {
		errs = append(errs, fmt.Errorf("result.completed_at is required"))
	} else if _, err := time.Parse(time.RFC3339, schema.Result.CompletedAt); err != nil {
		errs = append(errs, fmt.Errorf("result.completed_at: invalid timestamp %q (expected RFC3339)", schema.Result.CompletedAt))
	}
	for _, qid := range slices.Sorted(maps.Keys(schema.Result.Answers)) {
		if !ids[qid] {
			errs = append(errs, fmt.Errorf("result.answers: question %q not found in exam", qid))
		}
	}

	return errs
}

// ValidationError bundles every problem found in an import file. It matches
// domain.ErrInvalidInput under errors.Is.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation error(s):", len(e.Errs))
	for _, err := range e.Errs {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error {
	return append([]error{domain.ErrInvalidInput}, e.Errs...)
}
