package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
)

// Adapted session durations stay within these bounds (minutes).
const (
	MinAdaptedSessionMin = 30
	MaxAdaptedSessionMin = 120

	weakTopicFactor     = 1.5
	masteredTopicFactor = 0.8
)

// AdaptPlan returns a copy of plan with session durations and priorities
// rebalanced toward weak topics.
//
// Low-mastery topics get 1.5x the time and high priority; high-mastery
// topics get 0.8x the time. Medium mastery and sessions without a metric are
// left alone. Each run multiplies the current durations again, so repeated
// adaptation with unchanged metrics compounds until the bounds are hit.
func AdaptPlan(plan *domain.StudyPlan, metrics *PerformanceMetrics, now time.Time) *domain.StudyPlan {
	adapted := plan.Clone()
	for i := range adapted.Sessions {
		s := &adapted.Sessions[i]
		metric, ok := MetricForSession(metrics, *s)
		if !ok {
			continue
		}
		switch metric.Mastery {
		case domain.MasteryLow:
			s.Duration = scaleDuration(s.Duration, weakTopicFactor)
			s.Priority = domain.PriorityHigh
		case domain.MasteryHigh:
			s.Duration = scaleDuration(s.Duration, masteredTopicFactor)
		}
	}
	adapted.LastUpdated = now
	return adapted
}

// MetricForSession resolves the metric for a session by topic id first and
// falls back to the session's subject, since exam questions are tagged by
// subject rather than by syllabus topic.
func MetricForSession(metrics *PerformanceMetrics, s domain.StudySession) (domain.PerformanceMetric, bool) {
	if m, ok := metrics.Get(s.TopicID); ok {
		return m, true
	}
	if s.Subject == "" {
		return domain.PerformanceMetric{}, false
	}
	return metrics.Get(s.Subject)
}

// CountChangedSessions returns how many sessions differ in duration or
// priority between two versions of the same plan.
func CountChangedSessions(before, after *domain.StudyPlan) int {
	prev := make(map[string]domain.StudySession, len(before.Sessions))
	for _, s := range before.Sessions {
		prev[s.ID] = s
	}
	changed := 0
	for _, s := range after.Sessions {
		p, ok := prev[s.ID]
		if !ok || p.Duration != s.Duration || p.Priority != s.Priority {
			changed++
		}
	}
	return changed
}

func scaleDuration(duration int, factor float64) int {
	scaled := int(math.Round(float64(duration) * factor))
	return clamp(scaled, MinAdaptedSessionMin, MaxAdaptedSessionMin)
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
