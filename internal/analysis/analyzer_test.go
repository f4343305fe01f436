package analysis

import (
	"testing"

	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/domain/conjugation"
)

func mustConjugate(t *testing.T, v *domain.Verb, tense domain.Tense, person domain.Person) string {
	t.Helper()
	form, err := conjugation.Conjugate(v, domain.MoodSubjunctive, tense, person)
	if err != nil {
		t.Fatalf("Conjugate() error = %v", err)
	}
	return form
}

func TestClassify(t *testing.T) {
	t.Parallel()
	analyzer := NewAnalyzer()

	hablar := &domain.Verb{Infinitive: "hablar", Class: domain.ClassRegular, Tier: domain.TierBeginner, Translation: "to speak"}
	buscar := &domain.Verb{Infinitive: "buscar", Class: domain.ClassOrthographic, Tier: domain.TierAdvanced, Translation: "to look for"}
	dormir := &domain.Verb{Infinitive: "dormir", Class: domain.ClassStemChanging, StemChange: domain.StemChangeOUE, Tier: domain.TierIntermediate, Translation: "to sleep"}

	testCases := []struct {
		name     string
		verb     *domain.Verb
		tense    domain.Tense
		person   domain.Person
		answer   string
		expected domain.ErrorType
	}{
		{
			name: "indicative form is mood confusion", verb: hablar,
			tense: domain.TensePresent, person: domain.PersonYo,
			answer: "hablo", expected: domain.ErrorTypeMoodConfusion,
		},
		{
			name: "subjunctive of another person", verb: hablar,
			tense: domain.TensePresent, person: domain.PersonYo,
			answer: "hables", expected: domain.ErrorTypeWrongPerson,
		},
		{
			name: "imperfect instead of present", verb: hablar,
			tense: domain.TensePresent, person: domain.PersonYo,
			answer: "hablara", expected: domain.ErrorTypeWrongTense,
		},
		{
			name: "missed spelling rule", verb: buscar,
			tense: domain.TensePresent, person: domain.PersonYo,
			answer: "busce", expected: domain.ErrorTypeStemOrSpelling,
		},
		{
			name: "missed stem change", verb: dormir,
			tense: domain.TensePresent, person: domain.PersonYo,
			answer: "dorma", expected: domain.ErrorTypeStemOrSpelling,
		},
		{
			name: "accent only difference", verb: hablar,
			tense: domain.TensePresent, person: domain.PersonVosotros,
			answer: "hableis", expected: domain.ErrorTypeAccent,
		},
		{
			name: "gibberish is unclassified", verb: hablar,
			tense: domain.TensePresent, person: domain.PersonYo,
			answer: "xyzzy", expected: domain.ErrorTypeUnclassified,
		},
		{
			name: "imperfect ra against se variant is not an error type mismatch", verb: hablar,
			tense: domain.TenseImperfectSe, person: domain.PersonYo,
			answer: "hablara", expected: domain.ErrorTypeWrongTense,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			expected := mustConjugate(t, tc.verb, tc.tense, tc.person)
			got, err := analyzer.Classify(tc.verb, tc.answer, expected, tc.tense, tc.person)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if got != tc.expected {
				t.Errorf("Classify(%q) = %q, want %q", tc.answer, got, tc.expected)
			}
		})
	}
}

func TestClassifyMoodConfusionWinsOverWrongPerson(t *testing.T) {
	t.Parallel()
	analyzer := NewAnalyzer()

	// For -er verbs the present indicative tú form ("comes") is not a
	// subjunctive form of any person, but for -ar verbs the indicative
	// "habla" collides with nothing; use comer indicative él ("come")
	// against subjunctive expectations to pin the priority.
	comer := &domain.Verb{Infinitive: "comer", Class: domain.ClassRegular, Tier: domain.TierBeginner, Translation: "to eat"}

	expected := mustConjugate(t, comer, domain.TensePresent, domain.PersonEl)
	got, err := analyzer.Classify(comer, "come", expected, domain.TensePresent, domain.PersonEl)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got != domain.ErrorTypeMoodConfusion {
		t.Errorf("Classify() = %q, want %q", got, domain.ErrorTypeMoodConfusion)
	}
}

func TestClassifyNilVerb(t *testing.T) {
	t.Parallel()
	analyzer := NewAnalyzer()
	if _, err := analyzer.Classify(nil, "hable", "hable", domain.TensePresent, domain.PersonYo); err == nil {
		t.Error("expected error for nil verb")
	}
}
