package conjugation

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeOptions controls how answers are canonicalized for comparison.
type NormalizeOptions struct {
	// StripAccents folds accented vowels to their bare forms so that
	// "hable" matches "hablé". The ñ is a distinct letter, not an
	// accented n, and is never folded.
	StripAccents bool
}

// accentFolder maps accented vowels (and ü) to bare vowels.
var accentFolder = strings.NewReplacer(
	"á", "a",
	"é", "e",
	"í", "i",
	"ó", "o",
	"ú", "u",
	"ü", "u",
)

// Normalize canonicalizes an answer string: trims surrounding whitespace,
// lowercases, and composes combining accent sequences to their precomposed
// forms (NFC) so that "e"+U+0301 compares equal to "é". Accent folding is
// applied only when requested.
func Normalize(s string, opts NormalizeOptions) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = norm.NFC.String(s)
	if opts.StripAccents {
		s = accentFolder.Replace(s)
	}
	return s
}
