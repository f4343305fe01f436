package conjugation

import "github.com/practico/practico-api/internal/domain"

// Config controls answer comparison behavior.
type Config struct {
	// AccentInsensitive accepts answers whose only deviation from the
	// expected form is a missing or misplaced accent mark. The expected
	// form in the result always carries correct accents.
	AccentInsensitive bool
}

// Engine wraps the pure conjugation functions with the configured
// comparison policy. Engines are immutable and safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given comparison configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// ValidationResult reports the outcome of checking a candidate answer.
type ValidationResult struct {
	// IsCorrect is true iff the normalized answer matches the normalized
	// expected form exactly.
	IsCorrect bool `json:"is_correct"`

	// Expected is the correct form, always with correct accents.
	Expected string `json:"expected"`

	// NormalizedAnswer is the answer after trimming, lowercasing and
	// Unicode composition, with accents preserved.
	NormalizedAnswer string `json:"normalized_answer"`
}

// Conjugate maps (verb, mood, tense, person) to its surface form. See the
// package-level Conjugate.
func (e *Engine) Conjugate(v *domain.Verb, mood domain.Mood, tense domain.Tense, person domain.Person) (string, error) {
	return Conjugate(v, mood, tense, person)
}

// Validate checks a submitted answer against the expected subjunctive form
// for the (verb, tense, person) combination.
func (e *Engine) Validate(v *domain.Verb, answer string, tense domain.Tense, person domain.Person) (ValidationResult, error) {
	expected, err := Conjugate(v, domain.MoodSubjunctive, tense, person)
	if err != nil {
		return ValidationResult{}, err
	}

	compareOpts := NormalizeOptions{StripAccents: e.cfg.AccentInsensitive}
	normalized := Normalize(answer, NormalizeOptions{})

	return ValidationResult{
		IsCorrect:        Normalize(answer, compareOpts) == Normalize(expected, compareOpts),
		Expected:         expected,
		NormalizedAnswer: normalized,
	}, nil
}
