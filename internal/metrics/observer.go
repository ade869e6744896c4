package metrics

import (
	"context"

	"github.com/alexanderramin/edital/internal/service"
)

// Observer feeds service use-case events into Metrics.
type Observer struct {
	m *Metrics
}

func NewObserver(m *Metrics) *Observer {
	return &Observer{m: m}
}

func (o *Observer) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	status := "success"
	if !event.Success {
		status = "error"
	}
	o.m.RecordUseCase(event.Name, status, event.Duration.Seconds())
	if !event.Success {
		return
	}

	switch event.Name {
	case "adapt-plan":
		if n, ok := event.Fields["sessions_changed"].(int); ok {
			o.m.RecordSessionsAdapted(n)
		}
	case "review-flashcard":
		if outcome, ok := event.Fields["outcome"].(string); ok {
			o.m.RecordFlashcardReview(outcome)
		}
	}
}
