package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/edital/internal/domain"
)

// Recall quality bounds. Qualities at or above PassingQuality count as a
// successful recall.
const (
	MinQuality     = 0
	MaxQuality     = 5
	PassingQuality = 3
)

// ReviewResult is the review state produced by one SM-2 step.
type ReviewResult struct {
	Interval    int
	EaseFactor  float64
	Repetitions int
}

// NextReviewDate returns the date the card becomes due when reviewed at from.
func (r ReviewResult) NextReviewDate(from time.Time) time.Time {
	return from.AddDate(0, 0, r.Interval)
}

// Passed reports whether the step counted as a successful recall.
func (r ReviewResult) Passed() bool {
	return r.Repetitions > 0
}

// ComputeNextReview applies one SM-2 step.
//
// Pass (quality >= 3): the first repetition is due in 1 day, the second in
// 6, later ones in round(previousInterval * easeFactor). Fail: repetitions
// reset to 0 and the interval to 1. The ease factor is updated on both
// outcomes and never drops below 1.3.
func ComputeNextReview(quality, previousInterval, repetitions int, easeFactor float64) (ReviewResult, error) {
	if quality < MinQuality || quality > MaxQuality {
		return ReviewResult{}, fmt.Errorf("quality %d outside %d-%d: %w", quality, MinQuality, MaxQuality, domain.ErrInvalidInput)
	}
	if repetitions < 0 {
		return ReviewResult{}, fmt.Errorf("repetition count %d is negative: %w", repetitions, domain.ErrInvalidInput)
	}
	if previousInterval < 1 {
		return ReviewResult{}, fmt.Errorf("previous interval %d is below 1 day: %w", previousInterval, domain.ErrInvalidInput)
	}
	if math.IsNaN(easeFactor) || easeFactor < domain.MinEaseFactor {
		return ReviewResult{}, fmt.Errorf("ease factor %.2f is below %.1f: %w", easeFactor, domain.MinEaseFactor, domain.ErrInvalidInput)
	}

	var result ReviewResult
	if quality >= PassingQuality {
		switch repetitions {
		case 0:
			result.Interval = 1
		case 1:
			result.Interval = 6
		default:
			result.Interval = int(math.Round(float64(previousInterval) * easeFactor))
		}
		result.Repetitions = repetitions + 1
	} else {
		result.Interval = 1
		result.Repetitions = 0
	}

	result.EaseFactor = nextEaseFactor(easeFactor, quality)
	return result, nil
}

// nextEaseFactor is the canonical SM-2 update:
// EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02)), floored at 1.3.
func nextEaseFactor(ef float64, quality int) float64 {
	d := float64(MaxQuality - quality)
	return math.Max(ef+(0.1-d*(0.08+d*0.02)), domain.MinEaseFactor)
}
