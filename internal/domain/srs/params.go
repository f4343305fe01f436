package srs

import "github.com/practico/practico-api/internal/domain"

// Quality is the 0-5 review score driving the SM-2 update. 5 is a fast,
// unaided correct answer; scores below PassQuality are failed reviews.
type Quality int

// Quality bounds.
const (
	QualityMin Quality = 0
	QualityMax Quality = 5
)

// IsValid reports whether the quality is inside the SM-2 range.
func (q Quality) IsValid() bool {
	return q >= QualityMin && q <= QualityMax
}

// Params defines all configurable parameters for the scheduling algorithm.
type Params struct {
	// MinEaseFactor is the floor the easiness factor is clamped to.
	MinEaseFactor float64

	// PassQuality is the lowest quality treated as a passed review.
	PassQuality Quality

	// FirstInterval and SecondInterval are the fixed intervals, in days,
	// for the first and second consecutive passed reviews.
	FirstInterval  int
	SecondInterval int

	// FastLatencyMs separates a quality-5 answer from a quality-4 one:
	// correct, unaided answers at or under this latency score 5.
	FastLatencyMs int64

	// FailQualityByError grades a failed review by how instructive the
	// mistake was: near-misses score higher than unrecognizable forms.
	FailQualityByError map[domain.ErrorType]Quality
}

// NewDefaultParams creates a Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:  domain.MinEaseFactor,
		PassQuality:    3,
		FirstInterval:  1,
		SecondInterval: 6,
		FastLatencyMs:  8000,

		FailQualityByError: map[domain.ErrorType]Quality{
			domain.ErrorTypeAccent:         2,
			domain.ErrorTypeStemOrSpelling: 2,
			domain.ErrorTypeMoodConfusion:  1,
			domain.ErrorTypeWrongTense:     1,
			domain.ErrorTypeWrongPerson:    0,
			domain.ErrorTypeUnclassified:   0,
		},
	}
}
