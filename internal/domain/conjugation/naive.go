package conjugation

import "github.com/practico/practico-api/internal/domain"

// NaiveForm builds the subjunctive form a learner produces by missing one
// of the verb's rules. Skipping the stem change also skips any irregular
// stem; skipping orthography leaves the raw stem+ending boundary intact
// (buscar -> "busce"). Used for distractor generation and to recognize
// stem-or-spelling mistakes during error analysis.
//
// The naive form can coincide with the correct one for verbs that do not
// exercise the skipped rule; callers filter such duplicates out.
func NaiveForm(v *domain.Verb, tense domain.Tense, person domain.Person, skipStemChange, skipOrthography bool) (string, error) {
	if v == nil {
		return "", &domain.UnknownVerbError{}
	}
	if !person.IsValid() {
		return "", domain.ErrInvalidPerson
	}

	switch tense {
	case domain.TensePresent:
		return naivePresent(v, person, skipStemChange, skipOrthography), nil
	case domain.TenseImperfectRa, domain.TenseImperfectSe:
		return naiveImperfect(v, tense, person, skipStemChange), nil
	default:
		return "", &domain.UnsupportedCombinationError{Mood: domain.MoodSubjunctive, Tense: tense}
	}
}

func naivePresent(v *domain.Verb, person domain.Person, skipStemChange, skipOrthography bool) string {
	var stem string
	explicit := false
	if skipStemChange {
		stem = v.Root()
	} else {
		stem, explicit = presentSubjunctiveStem(v, person)
	}

	ending := presentSubjunctiveEnding(v, person)
	if !skipOrthography && !explicit {
		stem = applyOrthography(stem, ending)
	}
	return stem + ending
}

func naiveImperfect(v *domain.Verb, tense domain.Tense, person domain.Person, skipStemChange bool) string {
	var stem string
	if skipStemChange {
		// Regular formation from the bare root, ignoring the irregular
		// preterite stem and -ir vowel raising.
		if v.Ending() == domain.EndingAR {
			stem = v.Root() + "a"
		} else {
			stem = v.Root() + "ie"
		}
	} else {
		stem = preteriteStem(v)
	}

	if person == domain.PersonNosotros {
		stem = accentFinalVowel(stem)
	}

	if tense == domain.TenseImperfectSe {
		return stem + imperfectSe[person.Index()]
	}
	return stem + imperfectRa[person.Index()]
}
