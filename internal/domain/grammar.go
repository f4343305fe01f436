package domain

import "errors"

// Grammar enum validation errors.
var (
	ErrInvalidMood   = errors.New("invalid mood")
	ErrInvalidTense  = errors.New("invalid tense")
	ErrInvalidPerson = errors.New("invalid person")
)

// Mood identifies the grammatical mood of a conjugated form.
type Mood string

// Supported moods. The subjunctive is the teaching target; the indicative
// is conjugated internally for distractor generation and error analysis.
const (
	MoodSubjunctive Mood = "subjunctive"
	MoodIndicative  Mood = "indicative"
)

// Tense identifies a conjugation tense within a mood.
//
// The imperfect subjunctive has two interchangeable ending sets in Spanish
// (-ra and -se), modeled here as distinct tenses so that exercises, review
// cards and error analysis can distinguish them.
type Tense string

// Supported tenses.
const (
	TensePresent     Tense = "present"
	TenseImperfectRa Tense = "imperfect_ra"
	TenseImperfectSe Tense = "imperfect_se"
)

// SubjunctiveTenses lists every tense modeled for the subjunctive mood,
// in canonical order.
func SubjunctiveTenses() []Tense {
	return []Tense{TensePresent, TenseImperfectRa, TenseImperfectSe}
}

// IsValid reports whether the tense is one of the modeled values.
func (t Tense) IsValid() bool {
	switch t {
	case TensePresent, TenseImperfectRa, TenseImperfectSe:
		return true
	default:
		return false
	}
}

// Person identifies the grammatical person of a conjugated form.
type Person string

// The six grammatical persons of Spanish conjugation.
const (
	PersonYo       Person = "yo"
	PersonTu       Person = "tu"
	PersonEl       Person = "el"       // él / ella / usted
	PersonNosotros Person = "nosotros" // nosotros / nosotras
	PersonVosotros Person = "vosotros" // vosotros / vosotras
	PersonEllos    Person = "ellos"    // ellos / ellas / ustedes
)

// Persons lists all grammatical persons in conjugation-table order
// (yo, tú, él, nosotros, vosotros, ellos).
func Persons() []Person {
	return []Person{
		PersonYo, PersonTu, PersonEl,
		PersonNosotros, PersonVosotros, PersonEllos,
	}
}

// Index returns the position of the person in conjugation-table order,
// or -1 if the person is not valid.
func (p Person) Index() int {
	for i, candidate := range Persons() {
		if p == candidate {
			return i
		}
	}
	return -1
}

// IsValid reports whether the person is one of the six grammatical persons.
func (p Person) IsValid() bool {
	return p.Index() >= 0
}

// Pronoun returns the display pronoun for the person, with correct accents.
func (p Person) Pronoun() string {
	switch p {
	case PersonYo:
		return "yo"
	case PersonTu:
		return "tú"
	case PersonEl:
		return "él"
	case PersonNosotros:
		return "nosotros"
	case PersonVosotros:
		return "vosotros"
	case PersonEllos:
		return "ellos"
	default:
		return string(p)
	}
}
