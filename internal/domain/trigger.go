package domain

import "errors"

// ErrInvalidTriggerCategory is returned when a trigger category is not one
// of the modeled values.
var ErrInvalidTriggerCategory = errors.New("invalid trigger category")

// TriggerCategory is a closed enumeration of the sentence contexts that
// require the subjunctive, following the WEIRDO mnemonic: Wishes, Emotions,
// Impersonal expressions, Recommendations, Doubt/denial, Ojalá.
type TriggerCategory string

// The WEIRDO trigger categories.
const (
	TriggerWish           TriggerCategory = "wish"
	TriggerEmotion        TriggerCategory = "emotion"
	TriggerImpersonal     TriggerCategory = "impersonal"
	TriggerRecommendation TriggerCategory = "recommendation"
	TriggerDoubt          TriggerCategory = "doubt"
	TriggerOjala          TriggerCategory = "ojala"
)

// TriggerCategories lists all trigger categories in WEIRDO order.
func TriggerCategories() []TriggerCategory {
	return []TriggerCategory{
		TriggerWish, TriggerEmotion, TriggerImpersonal,
		TriggerRecommendation, TriggerDoubt, TriggerOjala,
	}
}

// IsValid reports whether the category is one of the modeled values.
func (c TriggerCategory) IsValid() bool {
	switch c {
	case TriggerWish, TriggerEmotion, TriggerImpersonal,
		TriggerRecommendation, TriggerDoubt, TriggerOjala:
		return true
	default:
		return false
	}
}

// Rule returns the learner-facing statement of why this category triggers
// the subjunctive. Used as the first, least specific hint of an exercise.
func (c TriggerCategory) Rule() string {
	switch c {
	case TriggerWish:
		return "Verbs of wishing or wanting (esperar, querer, desear) trigger the subjunctive in the clause that follows."
	case TriggerEmotion:
		return "Expressions of emotion (alegrarse, temer, sentir) trigger the subjunctive in the clause that follows."
	case TriggerImpersonal:
		return "Impersonal expressions of judgment (es importante, es necesario) trigger the subjunctive in the clause that follows."
	case TriggerRecommendation:
		return "Verbs of recommending or requesting (recomendar, sugerir, pedir) trigger the subjunctive in the clause that follows."
	case TriggerDoubt:
		return "Expressions of doubt or denial (dudar, no creer, negar) trigger the subjunctive in the clause that follows."
	case TriggerOjala:
		return "Ojalá always triggers the subjunctive."
	default:
		return ""
	}
}
