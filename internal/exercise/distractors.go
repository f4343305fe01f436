package exercise

import (
	"fmt"

	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/domain/conjugation"
)

// buildDistractors produces the ordered multiple-choice distractors:
//
//	1. the indicative form of the same verb/person/tense (mood confusion)
//	2. the subjunctive form of a different person (person confusion)
//	3. the form that misses the verb's stem change or spelling rule, or a
//	   different-tense subjunctive form when the verb has neither
//
// Every distractor is distinct from the answer and from the others; a
// candidate that collides is skipped in favor of the next fallback.
func (g *Generator) buildDistractors(v *domain.Verb, tense domain.Tense, person domain.Person, answer string) ([]string, error) {
	seen := map[string]bool{answer: true}
	var distractors []string

	add := func(form string) {
		if form != "" && !seen[form] {
			seen[form] = true
			distractors = append(distractors, form)
		}
	}

	indicative, err := conjugation.Conjugate(v, domain.MoodIndicative, tense, person)
	if err != nil {
		return nil, err
	}
	add(indicative)

	wrongPerson, err := g.wrongPersonForm(v, tense, person, seen)
	if err != nil {
		return nil, err
	}
	add(wrongPerson)

	naive, err := naiveDistractor(v, tense, person, answer)
	if err != nil {
		return nil, err
	}
	add(naive)

	if len(distractors) < 3 {
		wrongTense, err := wrongTenseForm(v, tense, person, seen)
		if err != nil {
			return nil, err
		}
		add(wrongTense)
	}

	if len(distractors) < 2 {
		return nil, fmt.Errorf("could not build distinct distractors for %q", v.Infinitive)
	}
	return distractors, nil
}

// wrongPersonForm finds a subjunctive form of another person distinct
// from everything chosen so far. Persons are tried in table order from
// the target person onward so the choice is stable for a given exercise.
func (g *Generator) wrongPersonForm(v *domain.Verb, tense domain.Tense, person domain.Person, seen map[string]bool) (string, error) {
	persons := domain.Persons()
	start := person.Index()
	for offset := 1; offset < len(persons); offset++ {
		p := persons[(start+offset)%len(persons)]
		form, err := conjugation.Conjugate(v, domain.MoodSubjunctive, tense, p)
		if err != nil {
			return "", err
		}
		if !seen[form] {
			return form, nil
		}
	}
	return "", nil
}

// naiveDistractor returns the form a learner produces by missing the
// verb's stem change or spelling rule, when that form differs from the
// correct answer.
func naiveDistractor(v *domain.Verb, tense domain.Tense, person domain.Person, answer string) (string, error) {
	variants := [][2]bool{
		{true, false},
		{false, true},
		{true, true},
	}
	for _, skip := range variants {
		form, err := conjugation.NaiveForm(v, tense, person, skip[0], skip[1])
		if err != nil {
			return "", err
		}
		if form != answer {
			return form, nil
		}
	}
	return "", nil
}

// wrongTenseForm finds a same-person subjunctive form in another tense.
func wrongTenseForm(v *domain.Verb, tense domain.Tense, person domain.Person, seen map[string]bool) (string, error) {
	for _, t := range domain.SubjunctiveTenses() {
		if t == tense {
			continue
		}
		form, err := conjugation.Conjugate(v, domain.MoodSubjunctive, t, person)
		if err != nil {
			return "", err
		}
		if !seen[form] {
			return form, nil
		}
	}
	return "", nil
}
