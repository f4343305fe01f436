// Package conjugation implements the rule engine that produces and checks
// Spanish subjunctive verb forms.
//
// All conjugation functions are pure and deterministic: the same inputs
// always yield the same form, with no shared mutable state, so they are
// safe to call concurrently without locking.
//
// A form is resolved in priority order, first match wins:
//
//  1. explicit irregular override for the (tense, person)
//  2. irregular or stem-changed stem for the verb
//  3. orthographic spelling adjustment at the stem/ending boundary
//  4. regular stem plus the standard ending table
package conjugation

import (
	"strings"

	"github.com/practico/practico-api/internal/domain"
)

// Ending tables in conjugation-table order (yo, tú, él, nosotros,
// vosotros, ellos).
var (
	presentSubjunctiveAR   = [6]string{"e", "es", "e", "emos", "éis", "en"}
	presentSubjunctiveERIR = [6]string{"a", "as", "a", "amos", "áis", "an"}

	imperfectRa = [6]string{"ra", "ras", "ra", "ramos", "rais", "ran"}
	imperfectSe = [6]string{"se", "ses", "se", "semos", "seis", "sen"}

	presentIndicativeAR = [6]string{"o", "as", "a", "amos", "áis", "an"}
	presentIndicativeER = [6]string{"o", "es", "e", "emos", "éis", "en"}
	presentIndicativeIR = [6]string{"o", "es", "e", "imos", "ís", "en"}

	imperfectIndicativeAR   = [6]string{"aba", "abas", "aba", "ábamos", "abais", "aban"}
	imperfectIndicativeERIR = [6]string{"ía", "ías", "ía", "íamos", "íais", "ían"}
)

// Conjugate maps (verb, mood, tense, person) to its surface form.
//
// The subjunctive supports the present and both imperfect variants. The
// indicative (present, and imperfect as the counterpart of either
// imperfect subjunctive variant) is modeled because distractor generation
// and error analysis compare against it. Anything else fails with
// UnsupportedCombinationError.
func Conjugate(v *domain.Verb, mood domain.Mood, tense domain.Tense, person domain.Person) (string, error) {
	if v == nil {
		return "", &domain.UnknownVerbError{}
	}
	if !person.IsValid() {
		return "", domain.ErrInvalidPerson
	}
	if !tense.IsValid() {
		return "", &domain.UnsupportedCombinationError{Mood: mood, Tense: tense}
	}

	switch mood {
	case domain.MoodSubjunctive:
		if tense == domain.TensePresent {
			return presentSubjunctive(v, person), nil
		}
		return imperfectSubjunctive(v, tense, person), nil
	case domain.MoodIndicative:
		if tense == domain.TensePresent {
			return presentIndicative(v, person), nil
		}
		return imperfectIndicative(v, person), nil
	default:
		return "", &domain.UnsupportedCombinationError{Mood: mood, Tense: tense}
	}
}

// presentSubjunctive resolves the present subjunctive form.
func presentSubjunctive(v *domain.Verb, person domain.Person) string {
	if form, ok := irregularOverride(v, domain.TensePresent, person); ok {
		return form
	}

	stem, explicit := presentSubjunctiveStem(v, person)
	ending := presentSubjunctiveEnding(v, person)

	// Spelling rules preserve pronunciation at the stem/ending boundary
	// (buscar -> busque, llegar -> llegue, vencer -> venza). Explicit
	// irregular stems are already spelled for the subjunctive vowel.
	if !explicit {
		stem = applyOrthography(stem, ending)
	}

	return stem + ending
}

// presentSubjunctiveStem returns the stem to attach endings to, and
// whether it came from an explicit irregular stem (in which case spelling
// adjustment must not be applied on top).
func presentSubjunctiveStem(v *domain.Verb, person domain.Person) (string, bool) {
	if v.PresentSubjunctiveStem != "" {
		return v.PresentSubjunctiveStem, true
	}

	stem := v.Root()
	if v.StemChange == domain.StemChangeNone {
		return stem, false
	}

	// The diphthong applies inside the "boot"; nosotros and vosotros are
	// exempt, except that stem-changing -ir verbs raise the root vowel
	// there (dormir -> durmamos, sentir -> sintamos, pedir -> pidamos).
	if insideBoot(person) {
		return applyStemChange(stem, v.StemChange), false
	}
	if v.Ending() == domain.EndingIR {
		return raiseStem(stem, v.StemChange), false
	}
	return stem, false
}

// presentSubjunctiveEnding returns the regular present subjunctive ending
// for the verb's conjugation family.
func presentSubjunctiveEnding(v *domain.Verb, person domain.Person) string {
	if v.Ending() == domain.EndingAR {
		return presentSubjunctiveAR[person.Index()]
	}
	return presentSubjunctiveERIR[person.Index()]
}

// imperfectSubjunctive resolves the imperfect subjunctive form, -ra or -se
// variant. Both build on the third-person-plural preterite stem.
func imperfectSubjunctive(v *domain.Verb, tense domain.Tense, person domain.Person) string {
	if form, ok := irregularOverride(v, tense, person); ok {
		return form
	}

	stem := preteriteStem(v)

	// The nosotros form carries a written accent on the stem's final
	// vowel: habláramos, comiésemos, fuéramos.
	if person == domain.PersonNosotros {
		stem = accentFinalVowel(stem)
	}

	if tense == domain.TenseImperfectSe {
		return stem + imperfectSe[person.Index()]
	}
	return stem + imperfectRa[person.Index()]
}

// preteriteStem returns the third-person-plural preterite minus -ron,
// which the imperfect subjunctive is built on.
func preteriteStem(v *domain.Verb) string {
	if v.PreteriteStem != "" {
		return v.PreteriteStem
	}

	root := v.Root()
	if v.Ending() == domain.EndingAR {
		return root + "a"
	}
	// Stem-changing -ir verbs raise the root vowel in the third-person
	// preterite (dormir -> durmieron, pedir -> pidieron).
	if v.Ending() == domain.EndingIR && v.StemChange != domain.StemChangeNone {
		root = raiseStem(root, v.StemChange)
	}
	return root + "ie"
}

// presentIndicative resolves the present indicative form, needed for
// mood-confusion distractors and analysis.
func presentIndicative(v *domain.Verb, person domain.Person) string {
	if len(v.PresentIndicative) == 6 {
		return v.PresentIndicative[person.Index()]
	}
	if person == domain.PersonYo && v.IndicativeYo != "" {
		return v.IndicativeYo
	}

	stem := v.Root()
	if v.StemChange != domain.StemChangeNone && insideBoot(person) {
		stem = applyStemChange(stem, v.StemChange)
	}

	switch v.Ending() {
	case domain.EndingAR:
		return stem + presentIndicativeAR[person.Index()]
	case domain.EndingER:
		return stem + presentIndicativeER[person.Index()]
	default:
		return stem + presentIndicativeIR[person.Index()]
	}
}

// imperfectIndicative resolves the imperfect indicative form, the
// indicative counterpart of both imperfect subjunctive variants. Only
// ser, ir and ver are irregular here.
func imperfectIndicative(v *domain.Verb, person domain.Person) string {
	if len(v.ImperfectIndicative) == 6 {
		return v.ImperfectIndicative[person.Index()]
	}

	root := v.Root()
	if v.Ending() == domain.EndingAR {
		return root + imperfectIndicativeAR[person.Index()]
	}
	return root + imperfectIndicativeERIR[person.Index()]
}

// irregularOverride looks up an explicit full-form override, the highest
// priority rule. Returned verbatim when present.
func irregularOverride(v *domain.Verb, tense domain.Tense, person domain.Person) (string, bool) {
	forms, ok := v.Irregulars[tense]
	if !ok {
		return "", false
	}
	form, ok := forms[person]
	return form, ok
}

// insideBoot reports whether the person takes the stem change: every
// person except nosotros and vosotros.
func insideBoot(person domain.Person) bool {
	return person != domain.PersonNosotros && person != domain.PersonVosotros
}

// applyStemChange applies the diphthong or vowel change to the last
// occurrence of the alternating vowel in the stem.
func applyStemChange(stem string, change domain.StemChange) string {
	switch change {
	case domain.StemChangeEIE:
		return replaceLast(stem, "e", "ie")
	case domain.StemChangeOUE:
		return replaceLast(stem, "o", "ue")
	case domain.StemChangeEI:
		return replaceLast(stem, "e", "i")
	case domain.StemChangeUUE:
		return replaceLast(stem, "u", "ue")
	default:
		return stem
	}
}

// raiseStem applies the single-vowel raising that stem-changing -ir verbs
// take outside the boot and in the third-person preterite: e -> i, o -> u.
func raiseStem(stem string, change domain.StemChange) string {
	switch change {
	case domain.StemChangeEIE, domain.StemChangeEI:
		return replaceLast(stem, "e", "i")
	case domain.StemChangeOUE:
		return replaceLast(stem, "o", "u")
	default:
		return stem
	}
}

// replaceLast replaces the last occurrence of old in s with new.
func replaceLast(s, old, new string) string {
	i := strings.LastIndex(s, old)
	if i < 0 {
		return s
	}
	return s[:i] + new + s[i+len(old):]
}

// applyOrthography adjusts the stem's final consonant cluster so that its
// pronunciation survives the ending's first vowel: c->qu, g->gu, gu->gü,
// z->c before e; and the mirror set c->z, g->j, gu->g before a for -er
// and -ir verbs (vencer -> venza, escoger -> escoja, seguir -> siga).
func applyOrthography(stem, ending string) string {
	switch firstVowel(ending) {
	case 'e':
		switch {
		case strings.HasSuffix(stem, "gu"):
			return strings.TrimSuffix(stem, "gu") + "gü"
		case strings.HasSuffix(stem, "g"):
			return stem + "u"
		case strings.HasSuffix(stem, "c"):
			return strings.TrimSuffix(stem, "c") + "qu"
		case strings.HasSuffix(stem, "z"):
			return strings.TrimSuffix(stem, "z") + "c"
		}
	case 'a':
		switch {
		case strings.HasSuffix(stem, "qu"):
			return strings.TrimSuffix(stem, "qu") + "c"
		case strings.HasSuffix(stem, "gu"):
			return strings.TrimSuffix(stem, "gu") + "g"
		case strings.HasSuffix(stem, "g"):
			return strings.TrimSuffix(stem, "g") + "j"
		case strings.HasSuffix(stem, "c"):
			return strings.TrimSuffix(stem, "c") + "z"
		}
	}
	return stem
}

// firstVowel returns the ending's leading vowel with any accent folded,
// or 0 when the ending does not start with a vowel.
func firstVowel(ending string) rune {
	for _, r := range ending {
		switch r {
		case 'a', 'á':
			return 'a'
		case 'e', 'é':
			return 'e'
		default:
			return 0
		}
	}
	return 0
}

// accentFinalVowel puts a written accent on the last vowel of the stem,
// for the nosotros imperfect subjunctive.
func accentFinalVowel(stem string) string {
	runes := []rune(stem)
	for i := len(runes) - 1; i >= 0; i-- {
		switch runes[i] {
		case 'a':
			runes[i] = 'á'
		case 'e':
			runes[i] = 'é'
		case 'i':
			runes[i] = 'í'
		case 'o':
			runes[i] = 'ó'
		case 'u':
			runes[i] = 'ú'
		default:
			continue
		}
		return string(runes)
	}
	return stem
}
