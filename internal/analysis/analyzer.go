// Package analysis classifies why a submitted answer was wrong.
package analysis

import (
	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/domain/conjugation"
)

// Analyzer classifies incorrect answers against the conjugation engine.
// It is stateless and safe for concurrent use.
type Analyzer struct{}

// NewAnalyzer creates an analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Classify determines why the answer differs from the expected subjunctive
// form for (verb, tense, person). Call it only for answers Validate has
// already reported incorrect.
//
// Checks run in fixed priority order, first match wins:
//
//	(a) indicative form of the same verb/person/tense -> MoodConfusion
//	(b) subjunctive form of a different person        -> WrongPerson
//	(c) subjunctive form of a different tense         -> WrongTense
//	(d) form missing the stem change or spelling rule -> StemOrSpelling
//	(e) equal once accents are stripped               -> Accent
//	(f) anything else                                 -> Unclassified
//
// Mood confusion is checked first: it is the most common and most
// instructive mistake, and some indicative forms collide with wrong-person
// subjunctive forms.
func (a *Analyzer) Classify(v *domain.Verb, answer, expected string, tense domain.Tense, person domain.Person) (domain.ErrorType, error) {
	if v == nil {
		return "", &domain.UnknownVerbError{}
	}

	given := conjugation.Normalize(answer, conjugation.NormalizeOptions{})
	want := conjugation.Normalize(expected, conjugation.NormalizeOptions{})

	// (a) mood confusion
	indicative, err := conjugation.Conjugate(v, domain.MoodIndicative, tense, person)
	if err != nil {
		return "", err
	}
	if given == conjugation.Normalize(indicative, conjugation.NormalizeOptions{}) {
		return domain.ErrorTypeMoodConfusion, nil
	}

	// (b) wrong person, same tense
	for _, p := range domain.Persons() {
		if p == person {
			continue
		}
		form, err := conjugation.Conjugate(v, domain.MoodSubjunctive, tense, p)
		if err != nil {
			return "", err
		}
		if given == conjugation.Normalize(form, conjugation.NormalizeOptions{}) {
			return domain.ErrorTypeWrongPerson, nil
		}
	}

	// (c) wrong tense, same person
	for _, t := range domain.SubjunctiveTenses() {
		if t == tense {
			continue
		}
		form, err := conjugation.Conjugate(v, domain.MoodSubjunctive, t, person)
		if err != nil {
			return "", err
		}
		if given == conjugation.Normalize(form, conjugation.NormalizeOptions{}) {
			return domain.ErrorTypeWrongTense, nil
		}
	}

	// (d) missed stem change or spelling rule
	match, err := matchesNaiveForm(v, given, want, tense, person)
	if err != nil {
		return "", err
	}
	if match {
		return domain.ErrorTypeStemOrSpelling, nil
	}

	// (e) accent-only difference
	fold := conjugation.NormalizeOptions{StripAccents: true}
	if conjugation.Normalize(answer, fold) == conjugation.Normalize(expected, fold) {
		return domain.ErrorTypeAccent, nil
	}

	// (f) a legitimate outcome, not a classification failure
	return domain.ErrorTypeUnclassified, nil
}

// matchesNaiveForm reports whether the answer is one of the forms produced
// by skipping the verb's stem change, its spelling rule, or both.
func matchesNaiveForm(v *domain.Verb, given, want string, tense domain.Tense, person domain.Person) (bool, error) {
	variants := [][2]bool{
		{true, false}, // missed stem change
		{false, true}, // missed spelling rule
		{true, true},  // missed both
	}

	for _, skip := range variants {
		form, err := conjugation.NaiveForm(v, tense, person, skip[0], skip[1])
		if err != nil {
			return false, err
		}
		normalized := conjugation.Normalize(form, conjugation.NormalizeOptions{})
		if normalized == want {
			// The verb does not exercise the skipped rule here.
			continue
		}
		if normalized == given {
			return true, nil
		}
	}

	return false, nil
}
