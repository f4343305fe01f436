// Package exercise generates practice exercises: tiered verb selection,
// WEIRDO trigger sentences, distractors and ordered hints.
package exercise

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/domain/conjugation"
	"github.com/practico/practico-api/internal/store"
)

// Generator builds exercises from the verb reference set.
//
// Selection is weighted random: a supplied weakness profile biases the
// draw toward weak trigger categories and verb classes without ever
// excluding the rest of the pool, so practice stays varied.
type Generator struct {
	verbs store.VerbRepository

	// rand.Rand is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator over the given verb repository. A nil
// rng gets a time-seeded source; tests inject a fixed seed.
func NewGenerator(verbs store.VerbRepository, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		verbs: verbs,
		rng:   rng,
	}
}

// Generate builds one exercise at the given difficulty tier. The profile
// is optional; without one, selection is uniform within the tier pool.
func (g *Generator) Generate(tier domain.DifficultyTier, profile *domain.WeaknessProfile) (*domain.Exercise, error) {
	if err := tier.Validate(); err != nil {
		return nil, err
	}

	pool := g.verbs.PoolForTier(tier)
	if len(pool) == 0 {
		return nil, fmt.Errorf("no verbs available for tier %q", tier)
	}

	g.mu.Lock()
	tense := g.pickTense(tier)
	verb := g.pickVerb(pool, profile)
	person := domain.Persons()[g.rng.Intn(6)]
	g.mu.Unlock()

	return g.compose(verb, tense, person, tier, profile)
}

// ForCombination builds an exercise for a fixed (verb, tense, person)
// combination, used to materialize due review cards. The trigger category
// and sentence are still drawn randomly.
func (g *Generator) ForCombination(infinitive string, tense domain.Tense, person domain.Person, tier domain.DifficultyTier, profile *domain.WeaknessProfile) (*domain.Exercise, error) {
	verb, err := g.verbs.GetVerb(infinitive)
	if err != nil {
		return nil, err
	}
	return g.compose(verb, tense, person, tier, profile)
}

// compose fills in the sentence, answer, distractors and hints for a
// chosen combination.
func (g *Generator) compose(verb *domain.Verb, tense domain.Tense, person domain.Person, tier domain.DifficultyTier, profile *domain.WeaknessProfile) (*domain.Exercise, error) {
	g.mu.Lock()
	category := g.pickCategory(profile)
	phrases := TriggerPhrases(category, tense)
	phrase := phrases[g.rng.Intn(len(phrases))]
	tail := sentenceTails[g.rng.Intn(len(sentenceTails))]
	g.mu.Unlock()

	answer, err := conjugation.Conjugate(verb, domain.MoodSubjunctive, tense, person)
	if err != nil {
		return nil, err
	}

	distractors, err := g.buildDistractors(verb, tense, person, answer)
	if err != nil {
		return nil, err
	}

	ex := &domain.Exercise{
		ID:              uuid.New(),
		Verb:            verb.Infinitive,
		Tense:           tense,
		Person:          person,
		TriggerCategory: category,
		TriggerPhrase:   phrase,
		Prompt:          buildPrompt(phrase, person, verb.Infinitive, tail),
		CorrectAnswer:   answer,
		Distractors:     distractors,
		Hints:           buildHints(verb, tense, person, answer, category),
		Tier:            tier,
		CreatedAt:       time.Now().UTC(),
	}

	if err := ex.Validate(); err != nil {
		return nil, err
	}
	return ex, nil
}

// pickCategory draws a trigger category, weighting weak categories
// heavier. Unseen categories keep a neutral weight so they are not
// mistaken for weak or strong ones. Caller holds g.mu.
func (g *Generator) pickCategory(profile *domain.WeaknessProfile) domain.TriggerCategory {
	categories := domain.TriggerCategories()
	weights := make([]float64, len(categories))
	for i, c := range categories {
		weights[i] = 1.0
		if profile != nil {
			if stats, ok := profile.CategoryStats[c]; ok && stats.Attempts > 0 {
				weights[i] += 3.0 * (1.0 - stats.Accuracy())
			}
		}
	}
	return categories[g.weightedIndex(weights)]
}

// pickTense draws the tense for the exercise. The imperfect subjunctive
// enters the rotation only at the advanced tier.
func (g *Generator) pickTense(tier domain.DifficultyTier) domain.Tense {
	if tier != domain.TierAdvanced {
		return domain.TensePresent
	}
	switch g.rng.Intn(4) {
	case 0:
		return domain.TenseImperfectRa
	case 1:
		return domain.TenseImperfectSe
	default:
		return domain.TensePresent
	}
}

// pickVerb draws a verb from the pool, boosting verb classes the learner
// keeps getting wrong: stem-or-spelling errors point at stem-changing and
// orthographic verbs, unclassified errors at irregular ones.
func (g *Generator) pickVerb(pool []*domain.Verb, profile *domain.WeaknessProfile) *domain.Verb {
	weights := make([]float64, len(pool))
	for i, v := range pool {
		weights[i] = 1.0
		if profile == nil {
			continue
		}
		var boost int
		switch v.Class {
		case domain.ClassStemChanging, domain.ClassOrthographic:
			boost = profile.ErrorCounts[domain.ErrorTypeStemOrSpelling]
		case domain.ClassIrregular:
			boost = profile.ErrorCounts[domain.ErrorTypeUnclassified]
		}
		if boost > 10 {
			boost = 10
		}
		weights[i] += 0.3 * float64(boost)
	}
	return pool[g.weightedIndex(weights)]
}

// weightedIndex draws an index proportionally to weights. Caller holds
// g.mu.
func (g *Generator) weightedIndex(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	target := g.rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return i
		}
	}
	return len(weights) - 1
}
