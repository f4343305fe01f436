package difficulty

import (
	"testing"

	"github.com/google/uuid"

	"github.com/practico/practico-api/internal/domain"
)

func newTestProfile(t *testing.T, tier domain.DifficultyTier) *domain.WeaknessProfile {
	t.Helper()
	profile, err := domain.NewWeaknessProfile(uuid.New())
	if err != nil {
		t.Fatalf("NewWeaknessProfile() error = %v", err)
	}
	profile.Tier = tier
	return profile
}

func record(m *Manager, profile *domain.WeaknessProfile, correct bool, n int) (domain.DifficultyTier, bool) {
	var tier domain.DifficultyTier
	var changed bool
	for i := 0; i < n; i++ {
		tier, changed = m.Record(profile, correct)
	}
	return tier, changed
}

func TestRecordNoChangeUntilWindowFull(t *testing.T) {
	t.Parallel()
	m := NewManager(NewDefaultParams())
	profile := newTestProfile(t, domain.TierBeginner)

	tier, changed := record(m, profile, true, 19)
	if changed {
		t.Error("tier changed before the window filled")
	}
	if tier != domain.TierBeginner {
		t.Errorf("tier = %q, want beginner", tier)
	}
}

func TestRecordPromotesOnHighAccuracy(t *testing.T) {
	t.Parallel()
	m := NewManager(NewDefaultParams())
	profile := newTestProfile(t, domain.TierBeginner)

	tier, changed := record(m, profile, true, 20)
	if !changed {
		t.Fatal("expected promotion at 100% accuracy over a full window")
	}
	if tier != domain.TierIntermediate {
		t.Errorf("tier = %q, want intermediate", tier)
	}
	if len(profile.Window) != 0 {
		t.Errorf("window length = %d, want 0 after tier change", len(profile.Window))
	}
}

func TestRecordDemotesOnLowAccuracy(t *testing.T) {
	t.Parallel()
	m := NewManager(NewDefaultParams())
	profile := newTestProfile(t, domain.TierAdvanced)

	tier, changed := record(m, profile, false, 20)
	if !changed {
		t.Fatal("expected demotion at 0% accuracy over a full window")
	}
	if tier != domain.TierIntermediate {
		t.Errorf("tier = %q, want intermediate", tier)
	}
}

func TestRecordMiddlingAccuracyHoldsTier(t *testing.T) {
	t.Parallel()
	m := NewManager(NewDefaultParams())
	profile := newTestProfile(t, domain.TierIntermediate)

	// 14/20 correct is 70%, between both thresholds.
	record(m, profile, true, 14)
	_, changed := record(m, profile, false, 6)
	if changed {
		t.Error("tier changed inside the hysteresis band")
	}
	if profile.Tier != domain.TierIntermediate {
		t.Errorf("tier = %q, want intermediate", profile.Tier)
	}
}

func TestRecordThresholdBoundaries(t *testing.T) {
	t.Parallel()

	t.Run("exactly at promote threshold", func(t *testing.T) {
		t.Parallel()
		m := NewManager(NewDefaultParams())
		profile := newTestProfile(t, domain.TierBeginner)

		// 17/20 = 0.85.
		record(m, profile, true, 17)
		tier, changed := record(m, profile, false, 3)
		if !changed {
			t.Fatal("expected promotion at exactly the threshold")
		}
		if tier != domain.TierIntermediate {
			t.Errorf("tier = %q, want intermediate", tier)
		}
	})

	t.Run("exactly at demote threshold", func(t *testing.T) {
		t.Parallel()
		m := NewManager(NewDefaultParams())
		profile := newTestProfile(t, domain.TierIntermediate)

		// 9/20 = 0.45.
		record(m, profile, true, 9)
		tier, changed := record(m, profile, false, 11)
		if !changed {
			t.Fatal("expected demotion at exactly the threshold")
		}
		if tier != domain.TierBeginner {
			t.Errorf("tier = %q, want beginner", tier)
		}
	})
}

func TestRecordTierCaps(t *testing.T) {
	t.Parallel()

	t.Run("advanced cannot promote further", func(t *testing.T) {
		t.Parallel()
		m := NewManager(NewDefaultParams())
		profile := newTestProfile(t, domain.TierAdvanced)

		_, changed := record(m, profile, true, 20)
		if changed {
			t.Error("advanced tier must not promote")
		}
	})

	t.Run("beginner cannot demote further", func(t *testing.T) {
		t.Parallel()
		m := NewManager(NewDefaultParams())
		profile := newTestProfile(t, domain.TierBeginner)

		_, changed := record(m, profile, false, 20)
		if changed {
			t.Error("beginner tier must not demote")
		}
	})
}

func TestRecordWindowResetPreventsImmediateFlipBack(t *testing.T) {
	t.Parallel()
	m := NewManager(NewDefaultParams())
	profile := newTestProfile(t, domain.TierBeginner)

	record(m, profile, true, 20) // promote, window resets

	// A single wrong answer right after promotion must not demote: the
	// fresh window is nowhere near full.
	_, changed := m.Record(profile, false)
	if changed {
		t.Error("tier flipped immediately after promotion")
	}
	if profile.Tier != domain.TierIntermediate {
		t.Errorf("tier = %q, want intermediate", profile.Tier)
	}
}
