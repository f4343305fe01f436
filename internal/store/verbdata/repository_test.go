package verbdata

import (
	"errors"
	"testing"

	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/domain/conjugation"
	"github.com/practico/practico-api/internal/store"
)

func TestNewRepositoryLoadsReferenceSet(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository()
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	if got := len(repo.All()); got < 40 {
		t.Errorf("repository holds %d verbs, want at least 40", got)
	}
}

// Every verb in the reference set must conjugate cleanly in both moods
// across every supported tense and person. A verb that cannot is a data
// error, caught here rather than at exercise time.
func TestReferenceSetConjugatesCompletely(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository()
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}

	for _, v := range repo.All() {
		for _, tense := range domain.SubjunctiveTenses() {
			for _, person := range domain.Persons() {
				if _, err := conjugation.Conjugate(v, domain.MoodSubjunctive, tense, person); err != nil {
					t.Errorf("Conjugate(%s, subjunctive, %s, %s) error = %v", v.Infinitive, tense, person, err)
				}
				if _, err := conjugation.Conjugate(v, domain.MoodIndicative, tense, person); err != nil {
					t.Errorf("Conjugate(%s, indicative, %s, %s) error = %v", v.Infinitive, tense, person, err)
				}
			}
		}
	}
}

func TestGetVerb(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository()
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}

	v, err := repo.GetVerb("hablar")
	if err != nil {
		t.Fatalf("GetVerb(hablar) error = %v", err)
	}
	if v.Infinitive != "hablar" || v.Class != domain.ClassRegular {
		t.Errorf("GetVerb(hablar) = (%s, %s)", v.Infinitive, v.Class)
	}

	if _, err := repo.GetVerb("blorgar"); !errors.Is(err, store.ErrVerbNotFound) {
		t.Errorf("GetVerb(unknown) error = %v, want store.ErrVerbNotFound", err)
	}
}

func TestPoolForTierIsCumulative(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository()
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}

	beginner := repo.PoolForTier(domain.TierBeginner)
	intermediate := repo.PoolForTier(domain.TierIntermediate)
	advanced := repo.PoolForTier(domain.TierAdvanced)

	if len(beginner) == 0 {
		t.Fatal("beginner pool is empty")
	}
	if len(intermediate) <= len(beginner) {
		t.Errorf("intermediate pool (%d) not larger than beginner (%d)", len(intermediate), len(beginner))
	}
	if len(advanced) <= len(intermediate) {
		t.Errorf("advanced pool (%d) not larger than intermediate (%d)", len(advanced), len(intermediate))
	}
	if len(advanced) != len(repo.All()) {
		t.Errorf("advanced pool has %d verbs, want the full set of %d", len(advanced), len(repo.All()))
	}

	for i, v := range beginner {
		if v.Tier != domain.TierBeginner {
			t.Errorf("beginner pool[%d] = %s at tier %s", i, v.Infinitive, v.Tier)
		}
	}
}

func TestRepositoryRejectsBadData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
	}{
		{"malformed", `{not json`},
		{"duplicate verb", `[
			{"infinitive": "hablar", "translation": "to speak", "class": "regular", "tier": "beginner"},
			{"infinitive": "hablar", "translation": "to speak", "class": "regular", "tier": "beginner"}
		]`},
		{"invalid class", `[
			{"infinitive": "hablar", "translation": "to speak", "class": "sneaky", "tier": "beginner"}
		]`},
		{"invalid tier", `[
			{"infinitive": "hablar", "translation": "to speak", "class": "regular", "tier": "expert"}
		]`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := newRepositoryFromJSON([]byte(tc.json)); err == nil {
				t.Error("newRepositoryFromJSON() accepted bad data")
			}
		})
	}
}
