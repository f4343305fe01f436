package exercise

import (
	"fmt"

	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/domain/conjugation"
)

// buildHints assembles the exercise's hints, ordered from least to most
// specific: trigger rule, verb class, person reminder, and the concrete
// spelling rule when an orthographic change applies to this form.
func buildHints(v *domain.Verb, tense domain.Tense, person domain.Person, answer string, category domain.TriggerCategory) []string {
	hints := []string{
		category.Rule(),
		classHint(v),
		fmt.Sprintf("Conjugate for %s.", person.Pronoun()),
	}

	if spelling := spellingHint(v, tense, person, answer); spelling != "" {
		hints = append(hints, spelling)
	}
	return hints
}

// classHint names the verb's irregularity class.
func classHint(v *domain.Verb) string {
	switch v.Class {
	case domain.ClassStemChanging:
		return fmt.Sprintf("%s (%s) is a stem-changing verb: %s.", v.Infinitive, v.Translation, v.StemChange)
	case domain.ClassOrthographic:
		return fmt.Sprintf("%s (%s) needs a spelling change to keep its sound.", v.Infinitive, v.Translation)
	case domain.ClassIrregular:
		return fmt.Sprintf("%s (%s) is irregular in the subjunctive.", v.Infinitive, v.Translation)
	default:
		return fmt.Sprintf("%s (%s) conjugates regularly: use the opposite-vowel endings.", v.Infinitive, v.Translation)
	}
}

// spellingHint spells out the orthographic rule when skipping it would
// produce a different form, e.g. buscar -> "busque", not "busce".
func spellingHint(v *domain.Verb, tense domain.Tense, person domain.Person, answer string) string {
	naive, err := conjugation.NaiveForm(v, tense, person, false, true)
	if err != nil || naive == answer {
		return ""
	}
	return fmt.Sprintf("Spelling rule: write %q, not %q, so the sound of %s is preserved.",
		answer, naive, v.Infinitive)
}
