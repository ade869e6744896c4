package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
)

// Mastery tier thresholds on the 0-100 average score.
const (
	HighMasteryScore   = 80
	MediumMasteryScore = 60
)

// PerformanceMetrics is an insertion-ordered map from topic key to metric.
// Keys are exam question subjects; PlanAdapter resolves them against
// session topic ids and subjects.
type PerformanceMetrics struct {
	keys  []string
	byKey map[string]*domain.PerformanceMetric
}

// NewPerformanceMetrics returns an empty metric set.
func NewPerformanceMetrics() *PerformanceMetrics {
	return &PerformanceMetrics{byKey: make(map[string]*domain.PerformanceMetric)}
}

// Get returns the metric stored under key.
func (m *PerformanceMetrics) Get(key string) (domain.PerformanceMetric, bool) {
	if m == nil {
		return domain.PerformanceMetric{}, false
	}
	pm, ok := m.byKey[key]
	if !ok {
		return domain.PerformanceMetric{}, false
	}
	return *pm, true
}

// Set stores metric under key, appending the key on first insert.
func (m *PerformanceMetrics) Set(key string, metric domain.PerformanceMetric) {
	if existing, ok := m.byKey[key]; ok {
		*existing = metric
		return
	}
	m.keys = append(m.keys, key)
	pm := metric
	m.byKey[key] = &pm
}

// Keys returns the keys in first-seen order.
func (m *PerformanceMetrics) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All returns the metrics in key order.
func (m *PerformanceMetrics) All() []domain.PerformanceMetric {
	if m == nil {
		return nil
	}
	out := make([]domain.PerformanceMetric, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, *m.byKey[k])
	}
	return out
}

func (m *PerformanceMetrics) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// MasteryForScore maps an average score onto a mastery tier.
func MasteryForScore(avg int) domain.Mastery {
	switch {
	case avg >= HighMasteryScore:
		return domain.MasteryHigh
	case avg >= MediumMasteryScore:
		return domain.MasteryMedium
	default:
		return domain.MasteryLow
	}
}

// AggregatePerformance folds exam history into per-subject metrics.
//
// Every question counts as one attempt for its subject and scores 100 when
// answered correctly, 0 otherwise. The attempt's time is split evenly across
// the exam's questions. Results without a joined exam are skipped.
func AggregatePerformance(results []domain.ExamResult) *PerformanceMetrics {
	type acc struct {
		scoreSum    float64
		attempts    int
		timeSpent   float64
		lastStudied time.Time
	}
	var order []string
	accs := make(map[string]*acc)

	for i := range results {
		r := &results[i]
		if r.Exam == nil || len(r.Exam.Questions) == 0 {
			continue
		}
		share := r.TimeSpent / float64(len(r.Exam.Questions))
		for _, q := range r.Exam.Questions {
			a, ok := accs[q.Subject]
			if !ok {
				a = &acc{}
				accs[q.Subject] = a
				order = append(order, q.Subject)
			}
			a.attempts++
			if r.IsCorrect(q) {
				a.scoreSum += 100
			}
			a.timeSpent += share
			if r.CompletedAt.After(a.lastStudied) {
				a.lastStudied = r.CompletedAt
			}
		}
	}

	metrics := NewPerformanceMetrics()
	for _, key := range order {
		a := accs[key]
		avg := int(math.Round(a.scoreSum / float64(a.attempts)))
		metrics.Set(key, domain.PerformanceMetric{
			TopicID:       key,
			AverageScore:  avg,
			TotalAttempts: a.attempts,
			TimeSpent:     a.timeSpent,
			LastStudied:   a.lastStudied,
			Mastery:       MasteryForScore(avg),
		})
	}
	return metrics
}
