package domain

import "errors"

// ErrInvalidErrorType is returned when an error type is not one of the
// modeled classifications.
var ErrInvalidErrorType = errors.New("invalid answer error type")

// ErrorType is a closed enumeration of why a submitted answer was wrong.
// The zero value ErrorTypeNone marks a correct answer.
//
// Classification is a legitimate outcome of analysis, never a failure:
// an answer that matches no known mistake pattern is ErrorTypeUnclassified.
type ErrorType string

// Answer error classifications, ordered by analysis priority.
const (
	ErrorTypeNone           ErrorType = ""
	ErrorTypeMoodConfusion  ErrorType = "mood_confusion"
	ErrorTypeWrongPerson    ErrorType = "wrong_person"
	ErrorTypeWrongTense     ErrorType = "wrong_tense"
	ErrorTypeStemOrSpelling ErrorType = "stem_or_spelling"
	ErrorTypeAccent         ErrorType = "accent"
	ErrorTypeUnclassified   ErrorType = "unclassified"
)

// ErrorTypes lists every non-empty classification.
func ErrorTypes() []ErrorType {
	return []ErrorType{
		ErrorTypeMoodConfusion,
		ErrorTypeWrongPerson,
		ErrorTypeWrongTense,
		ErrorTypeStemOrSpelling,
		ErrorTypeAccent,
		ErrorTypeUnclassified,
	}
}

// IsValid reports whether the error type is a modeled classification or
// the zero value.
func (e ErrorType) IsValid() bool {
	if e == ErrorTypeNone {
		return true
	}
	for _, candidate := range ErrorTypes() {
		if e == candidate {
			return true
		}
	}
	return false
}

// Explanation returns learner-facing feedback text for the classification.
// Every classification has text; there is no nil or missing-context case.
func (e ErrorType) Explanation() string {
	switch e {
	case ErrorTypeMoodConfusion:
		return "You used the indicative, but this sentence requires the subjunctive. Look at the trigger phrase before \"que\"."
	case ErrorTypeWrongPerson:
		return "That is the subjunctive form for a different person. Re-read the subject of the clause."
	case ErrorTypeWrongTense:
		return "That is the right mood but the wrong tense. Match the tense of the trigger clause."
	case ErrorTypeStemOrSpelling:
		return "Close, but this verb changes its stem or spelling in the subjunctive. Check the stem vowel and any spelling rule."
	case ErrorTypeAccent:
		return "The letters are right but an accent mark is missing or misplaced."
	case ErrorTypeUnclassified:
		return "That form does not match this verb. Review its subjunctive conjugation."
	default:
		return ""
	}
}
