package srs

import (
	"math"
	"time"

	"github.com/practico/practico-api/internal/domain"
)

// calculateEaseFactor applies the SM-2 easiness adjustment
//
//	EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02))
//
// and clamps the result to the configured floor. A quality of 5 nudges the
// factor up by 0.1; every step below 5 pulls it down progressively harder.
func calculateEaseFactor(currentEF float64, quality Quality, params *Params) float64 {
	diff := float64(QualityMax - quality)
	newEF := currentEF + (0.1 - diff*(0.08+diff*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	return newEF
}

// calculateInterval determines the next review interval in days.
//
// Failed reviews (quality below PassQuality) always reset to the first
// interval. Passed reviews follow the SM-2 ladder: the first repetition
// waits FirstInterval days, the second SecondInterval days, and every
// later one multiplies the previous interval by the new easiness factor.
//
// repetitions is the count after the current review has been counted.
func calculateInterval(previousInterval, repetitions int, easeFactor float64, quality Quality, params *Params) int {
	if quality < params.PassQuality {
		return params.FirstInterval
	}

	switch repetitions {
	case 1:
		return params.FirstInterval
	case 2:
		return params.SecondInterval
	default:
		return int(math.Round(float64(previousInterval) * easeFactor))
	}
}

// applyReview produces the card's next scheduling state for a review at
// the given time. It follows the immutable update pattern: the input card
// is never modified, a new card is returned with Version incremented so
// the store's compare-and-swap can detect concurrent writers.
func applyReview(card *domain.ReviewCard, quality Quality, now time.Time, params *Params) *domain.ReviewCard {
	next := *card

	next.LastReviewedAt = now
	next.EaseFactor = calculateEaseFactor(card.EaseFactor, quality, params)

	if quality < params.PassQuality {
		next.Repetitions = 0
		next.ConsecutiveCorrect = 0
	} else {
		next.Repetitions = card.Repetitions + 1
		next.ConsecutiveCorrect = card.ConsecutiveCorrect + 1
	}

	next.IntervalDays = calculateInterval(
		card.IntervalDays,
		next.Repetitions,
		next.EaseFactor,
		quality,
		params,
	)

	next.DueDate = now.AddDate(0, 0, next.IntervalDays)
	next.Version = card.Version + 1
	next.UpdatedAt = now

	return &next
}

// deriveQuality maps an attempt's outcome to the 0-5 SM-2 quality score:
// 5 for a fast unaided correct answer, 4 for a slow one, 3 for a correct
// answer after hints, and failure grades by error type (near-misses like
// accent slips score 2, unrecognizable forms 0).
func deriveQuality(isCorrect bool, errType domain.ErrorType, latencyMs int64, hintsUsed int, params *Params) Quality {
	if isCorrect {
		switch {
		case hintsUsed > 0:
			return 3
		case latencyMs <= params.FastLatencyMs:
			return 5
		default:
			return 4
		}
	}

	if q, ok := params.FailQualityByError[errType]; ok {
		return q
	}
	return QualityMin
}
