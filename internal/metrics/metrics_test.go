package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/edital/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	require.NotNil(t, m)
	assert.NotNil(t, m.UseCaseTotal)
	assert.NotNil(t, m.UseCaseDurationSeconds)
	assert.NotNil(t, m.SessionsAdaptedTotal)
	assert.NotNil(t, m.FlashcardReviewsTotal)
}

func TestRecordUseCase(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordUseCase("generate-plan", "success", 0.02)
	m.RecordUseCase("generate-plan", "success", 0.03)
	m.RecordUseCase("generate-plan", "error", 0.01)

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.UseCaseTotal.WithLabelValues("generate-plan", "success")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.UseCaseTotal.WithLabelValues("generate-plan", "error")), 1e-9)
}

func TestObserver_DomainCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	obs := NewObserver(m)
	ctx := context.Background()

	obs.ObserveUseCase(ctx, service.UseCaseEvent{
		Name: "adapt-plan", Success: true, Duration: time.Millisecond,
		Fields: map[string]any{"sessions_changed": 3},
	})
	obs.ObserveUseCase(ctx, service.UseCaseEvent{
		Name: "review-flashcard", Success: true,
		Fields: map[string]any{"outcome": "pass"},
	})
	obs.ObserveUseCase(ctx, service.UseCaseEvent{
		Name: "review-flashcard", Success: true,
		Fields: map[string]any{"outcome": "fail"},
	})
	obs.ObserveUseCase(ctx, service.UseCaseEvent{
		Name: "review-flashcard", Err: errors.New("not found"),
		Fields: map[string]any{"quality": 4},
	})

	assert.InDelta(t, 3.0, testutil.ToFloat64(m.SessionsAdaptedTotal), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.FlashcardReviewsTotal.WithLabelValues("pass")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.FlashcardReviewsTotal.WithLabelValues("fail")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.UseCaseTotal.WithLabelValues("review-flashcard", "error")), 1e-9)
}

func TestWriteTextfile(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordUseCase("import-syllabus", "success", 0.1)

	path := filepath.Join(t.TempDir(), "edital.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `edital_use_case_total{status="success",use_case="import-syllabus"} 1`)
	assert.Contains(t, string(data), "edital_use_case_duration_seconds_bucket")
}
