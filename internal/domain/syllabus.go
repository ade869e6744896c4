package domain

import "time"

// Topic is a weighted unit of exam content. Weight is the relative
// importance in the exam (0-100); EstimatedHours is the effort budget.
type Topic struct {
	ID             string
	SyllabusID     string
	Name           string
	Subject        string
	Weight         float64
	EstimatedHours float64
	Difficulty     Difficulty
	Prerequisites  []string // topic ids
	Subtopics      []string
	OrderIndex     int
}

// Syllabus (edital) is the set of topics an exam covers, with the exam date.
type Syllabus struct {
	ID        string
	UserID    string
	Name      string
	ExamDate  time.Time
	Topics    []Topic
	CreatedAt time.Time
}

// TotalEstimatedHours sums the effort budget over all topics.
func (s *Syllabus) TotalEstimatedHours() float64 {
	var total float64
	for _, t := range s.Topics {
		total += t.EstimatedHours
	}
	return total
}

// TopicByID returns the topic with the given id, or nil.
func (s *Syllabus) TopicByID(id string) *Topic {
	for i := range s.Topics {
		if s.Topics[i].ID == id {
			return &s.Topics[i]
		}
	}
	return nil
}
