package scheduler

import (
	"sort"

	"github.com/alexanderramin/edital/internal/domain"
)

// Priority score thresholds used to tag generated sessions.
const (
	HighPriorityScore   = 150.0
	MediumPriorityScore = 75.0
)

// DifficultyMultiplier scales a topic's weight by its difficulty.
// Unknown difficulties count as easy.
func DifficultyMultiplier(d domain.Difficulty) float64 {
	switch d {
	case domain.DifficultyHard:
		return 2
	case domain.DifficultyMedium:
		return 1.5
	default:
		return 1
	}
}

// PriorityScore returns weight * DifficultyMultiplier(difficulty).
func PriorityScore(t domain.Topic) float64 {
	return t.Weight * DifficultyMultiplier(t.Difficulty)
}

// PriorityForScore maps a priority score onto the session priority tiers.
func PriorityForScore(score float64) domain.Priority {
	switch {
	case score >= HighPriorityScore:
		return domain.PriorityHigh
	case score >= MediumPriorityScore:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// PrioritizeTopics returns a copy of topics sorted by priority score,
// highest first. Equal scores keep their input order.
func PrioritizeTopics(topics []domain.Topic) []domain.Topic {
	sorted := make([]domain.Topic, len(topics))
	copy(sorted, topics)
	sort.SliceStable(sorted, func(i, j int) bool {
		return PriorityScore(sorted[i]) > PriorityScore(sorted[j])
	})
	return sorted
}
