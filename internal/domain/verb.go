package domain

import (
	"errors"
	"strings"
)

// Verb-specific validation errors.
var (
	// ErrVerbInfinitiveEmpty is returned when a verb has no infinitive.
	ErrVerbInfinitiveEmpty = errors.New("verb infinitive cannot be empty")

	// ErrVerbInfinitiveInvalid is returned when an infinitive does not end
	// in a recognized conjugation suffix (-ar, -er, -ir).
	ErrVerbInfinitiveInvalid = errors.New("verb infinitive must end in -ar, -er or -ir")

	// ErrVerbClassInvalid is returned when a verb's conjugation class is
	// not one of the modeled values.
	ErrVerbClassInvalid = errors.New("invalid verb conjugation class")
)

// ConjugationClass categorizes how a verb conjugates.
type ConjugationClass string

// Conjugation classes, from fully regular to fully irregular.
const (
	ClassRegular      ConjugationClass = "regular"
	ClassStemChanging ConjugationClass = "stem_changing"
	ClassOrthographic ConjugationClass = "orthographic"
	ClassIrregular    ConjugationClass = "irregular"
)

// StemChange identifies a root-vowel alternation pattern.
type StemChange string

// Stem change patterns. The empty value means the verb does not stem-change.
const (
	StemChangeNone StemChange = ""
	StemChangeEIE  StemChange = "e->ie"
	StemChangeOUE  StemChange = "o->ue"
	StemChangeEI   StemChange = "e->i"
	StemChangeUUE  StemChange = "u->ue"
)

// VerbEnding identifies the infinitive suffix family of a verb.
type VerbEnding string

// The three Spanish conjugation families.
const (
	EndingAR VerbEnding = "ar"
	EndingER VerbEnding = "er"
	EndingIR VerbEnding = "ir"
)

// Verb is immutable reference data describing one verb in the practice set.
//
// Irregularity is expressed in layers matching how the conjugation engine
// resolves a form: explicit full-form overrides win outright, then irregular
// stems, then the stem-change pattern, then regular formation with
// orthographic adjustment. Fields that are empty simply do not participate.
type Verb struct {
	// Infinitive is the dictionary form, e.g. "hablar". Primary key.
	Infinitive string `json:"infinitive"`

	// Class is the verb's conjugation class, used for difficulty tiering
	// and hint text. The engine itself is driven by the data fields below.
	Class ConjugationClass `json:"class"`

	// StemChange is the root-vowel alternation pattern, if any.
	StemChange StemChange `json:"stem_change,omitempty"`

	// Tier is the difficulty tier whose pool includes this verb.
	Tier DifficultyTier `json:"tier"`

	// Translation is a short English gloss used in hints.
	Translation string `json:"translation"`

	// PresentSubjunctiveStem overrides the regular stem for the present
	// subjunctive (the "irregular yo" stem), e.g. "teng" for tener.
	// Orthographic adjustment is not applied on top of an explicit stem.
	PresentSubjunctiveStem string `json:"present_subjunctive_stem,omitempty"`

	// PreteriteStem overrides the third-person-plural preterite stem that
	// the imperfect subjunctive builds on, e.g. "tuvie" for tener.
	PreteriteStem string `json:"preterite_stem,omitempty"`

	// IndicativeYo overrides the first-person present indicative form,
	// e.g. "tengo" for tener.
	IndicativeYo string `json:"indicative_yo,omitempty"`

	// PresentIndicative overrides the full present indicative paradigm in
	// conjugation-table order, for verbs like ser and estar whose present
	// indicative is not derivable from the stem.
	PresentIndicative []string `json:"present_indicative,omitempty"`

	// ImperfectIndicative overrides the full imperfect indicative paradigm
	// in conjugation-table order (only ser, ir and ver need it).
	ImperfectIndicative []string `json:"imperfect_indicative,omitempty"`

	// Irregulars holds explicit full-form subjunctive overrides per tense
	// and person, returned verbatim by the engine (priority one). Used for
	// verbs like estar and dar whose irregularity is accentual.
	Irregulars map[Tense]map[Person]string `json:"irregulars,omitempty"`
}

// Ending returns the verb's conjugation family derived from its infinitive.
func (v *Verb) Ending() VerbEnding {
	switch {
	case strings.HasSuffix(v.Infinitive, "ar"):
		return EndingAR
	case strings.HasSuffix(v.Infinitive, "er"):
		return EndingER
	default:
		return EndingIR
	}
}

// Root returns the infinitive minus its conjugation suffix, e.g. "habl"
// for hablar. Handles the accented -ír suffix (oír, reír).
func (v *Verb) Root() string {
	runes := []rune(v.Infinitive)
	if len(runes) < 2 {
		return v.Infinitive
	}
	return string(runes[:len(runes)-2])
}

// Validate checks that the verb reference data is internally consistent.
func (v *Verb) Validate() error {
	if v.Infinitive == "" {
		return ErrVerbInfinitiveEmpty
	}

	if !strings.HasSuffix(v.Infinitive, "ar") &&
		!strings.HasSuffix(v.Infinitive, "er") &&
		!strings.HasSuffix(v.Infinitive, "ir") &&
		!strings.HasSuffix(v.Infinitive, "ír") {
		return ErrVerbInfinitiveInvalid
	}

	switch v.Class {
	case ClassRegular, ClassStemChanging, ClassOrthographic, ClassIrregular:
	default:
		return ErrVerbClassInvalid
	}

	if err := v.Tier.Validate(); err != nil {
		return err
	}

	return nil
}
