// Package difficulty adjusts a learner's tier from rolling accuracy.
package difficulty

import "github.com/practico/practico-api/internal/domain"

// Params defines the thresholds for tier promotion and demotion.
type Params struct {
	// WindowSize is the number of recent attempts considered. No tier
	// change happens until the window is full.
	WindowSize int

	// PromoteThreshold raises the tier when windowed accuracy reaches it.
	PromoteThreshold float64

	// DemoteThreshold lowers the tier when windowed accuracy falls to it.
	DemoteThreshold float64
}

// NewDefaultParams creates a Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		WindowSize:       domain.DefaultAccuracyWindowSize,
		PromoteThreshold: 0.85,
		DemoteThreshold:  0.45,
	}
}

// Manager applies the adaptive difficulty policy to weakness profiles.
// It holds no per-user state of its own and is safe for concurrent use
// as long as callers do not share a profile across goroutines.
type Manager struct {
	params *Params
}

// NewManager creates a manager. A nil params uses the defaults.
func NewManager(params *Params) *Manager {
	if params == nil {
		params = NewDefaultParams()
	}
	return &Manager{params: params}
}

// Record folds one attempt result into the profile's rolling window and
// adjusts the tier when warranted. It returns the tier in effect after
// the attempt and whether it changed.
//
// The window resets on every tier change so that a promotion cannot be
// followed by a demotion (or the reverse) inside the same window.
func (m *Manager) Record(profile *domain.WeaknessProfile, correct bool) (domain.DifficultyTier, bool) {
	profile.Window = append(profile.Window, correct)
	if len(profile.Window) > m.params.WindowSize {
		profile.Window = profile.Window[len(profile.Window)-m.params.WindowSize:]
	}

	accuracy, full := profile.WindowAccuracy(m.params.WindowSize)
	if !full {
		return profile.Tier, false
	}

	switch {
	case accuracy >= m.params.PromoteThreshold:
		next := profile.Tier.Next()
		if next == profile.Tier {
			return profile.Tier, false
		}
		profile.Tier = next
		profile.Window = nil
		return next, true

	case accuracy <= m.params.DemoteThreshold:
		previous := profile.Tier.Previous()
		if previous == profile.Tier {
			return profile.Tier, false
		}
		profile.Tier = previous
		profile.Window = nil
		return previous, true

	default:
		return profile.Tier, false
	}
}
