package domain

import "errors"

// ErrInvalidTier is returned when a difficulty tier is not a modeled value.
var ErrInvalidTier = errors.New("invalid difficulty tier")

// DifficultyTier partitions the verb pool and exercise space by learner
// level. Tiers are ordered; promotion and demotion move one step at a time.
type DifficultyTier string

// Difficulty tiers from easiest to hardest.
const (
	TierBeginner     DifficultyTier = "beginner"
	TierIntermediate DifficultyTier = "intermediate"
	TierAdvanced     DifficultyTier = "advanced"
)

// Tiers lists all difficulty tiers in ascending order.
func Tiers() []DifficultyTier {
	return []DifficultyTier{TierBeginner, TierIntermediate, TierAdvanced}
}

// ordinal returns the tier's position in ascending order, or -1.
func (t DifficultyTier) ordinal() int {
	for i, candidate := range Tiers() {
		if t == candidate {
			return i
		}
	}
	return -1
}

// Validate checks that the tier is one of the modeled values.
func (t DifficultyTier) Validate() error {
	if t.ordinal() < 0 {
		return ErrInvalidTier
	}
	return nil
}

// Next returns the tier one level up, capped at the maximum tier.
func (t DifficultyTier) Next() DifficultyTier {
	tiers := Tiers()
	i := t.ordinal()
	if i < 0 || i == len(tiers)-1 {
		return t
	}
	return tiers[i+1]
}

// Previous returns the tier one level down, floored at the minimum tier.
func (t DifficultyTier) Previous() DifficultyTier {
	i := t.ordinal()
	if i <= 0 {
		return t
	}
	return Tiers()[i-1]
}
