package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Service use-case metrics
	UseCaseTotal           *prometheus.CounterVec
	UseCaseDurationSeconds *prometheus.HistogramVec

	// Domain metrics
	SessionsAdaptedTotal  prometheus.Counter
	FlashcardReviewsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,

		UseCaseTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "edital_use_case_total",
				Help: "Total number of service use cases by name and status",
			},
			[]string{"use_case", "status"}, // status: success, error
		),

		UseCaseDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edital_use_case_duration_seconds",
				Help:    "Service use case duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"use_case"},
		),

		SessionsAdaptedTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "edital_sessions_adapted_total",
				Help: "Total number of study sessions whose duration or priority changed during adaptation",
			},
		),

		FlashcardReviewsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "edital_flashcard_reviews_total",
				Help: "Total number of flashcard reviews by outcome",
			},
			[]string{"outcome"}, // outcome: pass, fail
		),
	}

	return m
}

// RecordUseCase records one service use case execution
func (m *Metrics) RecordUseCase(name, status string, duration float64) {
	m.UseCaseTotal.WithLabelValues(name, status).Inc()
	m.UseCaseDurationSeconds.WithLabelValues(name).Observe(duration)
}

// RecordSessionsAdapted adds the sessions changed by one adaptation
func (m *Metrics) RecordSessionsAdapted(n int) {
	if n > 0 {
		m.SessionsAdaptedTotal.Add(float64(n))
	}
}

// RecordFlashcardReview records a review outcome
func (m *Metrics) RecordFlashcardReview(outcome string) {
	m.FlashcardReviewsTotal.WithLabelValues(outcome).Inc()
}

// WriteTextfile dumps the registry in the node_exporter textfile-collector format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
