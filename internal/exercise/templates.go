package exercise

import (
	"fmt"

	"github.com/practico/practico-api/internal/domain"
)

// Canonical trigger phrases per WEIRDO category. Present-tense triggers
// pair with the present subjunctive; past-tense triggers pair with the
// imperfect subjunctive. Ojalá is invariant.
var (
	presentTriggers = map[domain.TriggerCategory][]string{
		domain.TriggerWish:           {"Espero", "Quiero", "Deseo"},
		domain.TriggerEmotion:        {"Me alegra", "Temo", "Me sorprende"},
		domain.TriggerImpersonal:     {"Es importante", "Es necesario", "Es mejor"},
		domain.TriggerRecommendation: {"Recomiendo", "Sugiero", "Te aconsejo"},
		domain.TriggerDoubt:          {"Dudo", "No creo", "Niego"},
		domain.TriggerOjala:          {"Ojalá"},
	}

	pastTriggers = map[domain.TriggerCategory][]string{
		domain.TriggerWish:           {"Esperaba", "Quería", "Deseaba"},
		domain.TriggerEmotion:        {"Me alegraba", "Temía", "Me sorprendió"},
		domain.TriggerImpersonal:     {"Era importante", "Era necesario", "Era mejor"},
		domain.TriggerRecommendation: {"Recomendó", "Sugirió", "Te aconsejó"},
		domain.TriggerDoubt:          {"Dudaba", "No creía", "Negaba"},
		domain.TriggerOjala:          {"Ojalá"},
	}

	// Sentence tails keep prompts varied without affecting the blank.
	sentenceTails = []string{
		"más despacio",
		"todos los días",
		"esta semana",
		"antes de salir",
		"en la reunión",
		"con más cuidado",
		"un poco más",
	}
)

// TriggerPhrases returns the canonical trigger phrases for a category and
// tense. Imperfect subjunctive tenses take the past-tense triggers.
func TriggerPhrases(category domain.TriggerCategory, tense domain.Tense) []string {
	if tense == domain.TensePresent {
		return presentTriggers[category]
	}
	return pastTriggers[category]
}

// buildPrompt renders the cloze sentence: trigger phrase, "que", subject
// pronoun, the blank with the infinitive cue, and a tail.
func buildPrompt(phrase string, person domain.Person, infinitive, tail string) string {
	return fmt.Sprintf("%s que %s ___ (%s) %s.", phrase, person.Pronoun(), infinitive, tail)
}
