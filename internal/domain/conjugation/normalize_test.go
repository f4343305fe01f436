package conjugation

import (
	"testing"

	"github.com/practico/practico-api/internal/domain"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		opts     NormalizeOptions
		expected string
	}{
		{"trims whitespace", "  hable  ", NormalizeOptions{}, "hable"},
		{"lowercases", "HABLE", NormalizeOptions{}, "hable"},
		{"keeps accents by default", "habléis", NormalizeOptions{}, "habléis"},
		{"composes decomposed accents", "habléis", NormalizeOptions{}, "habléis"},
		{"strips accents when folding", "habléis", NormalizeOptions{StripAccents: true}, "hableis"},
		{"folding keeps the enye", "señal", NormalizeOptions{StripAccents: true}, "señal"},
		{"folds dieresis", "averigüe", NormalizeOptions{StripAccents: true}, "averigue"},
		{"empty input", "", NormalizeOptions{}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tc.input, tc.opts); got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestEngineValidate(t *testing.T) {
	t.Parallel()

	hablar := regularVerb("hablar")

	t.Run("exact match is correct", func(t *testing.T) {
		t.Parallel()
		engine := NewEngine(Config{})
		res, err := engine.Validate(hablar, "hable", domain.TensePresent, domain.PersonYo)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if !res.IsCorrect {
			t.Error("expected correct")
		}
		if res.Expected != "hable" {
			t.Errorf("Expected = %q, want %q", res.Expected, "hable")
		}
	})

	t.Run("case and whitespace are forgiven", func(t *testing.T) {
		t.Parallel()
		engine := NewEngine(Config{})
		res, err := engine.Validate(hablar, "  HABLE ", domain.TensePresent, domain.PersonYo)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if !res.IsCorrect {
			t.Error("expected correct")
		}
		if res.NormalizedAnswer != "hable" {
			t.Errorf("NormalizedAnswer = %q, want %q", res.NormalizedAnswer, "hable")
		}
	})

	t.Run("missing accent fails by default", func(t *testing.T) {
		t.Parallel()
		engine := NewEngine(Config{})
		res, err := engine.Validate(hablar, "hableis", domain.TensePresent, domain.PersonVosotros)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if res.IsCorrect {
			t.Error("expected incorrect")
		}
		if res.Expected != "habléis" {
			t.Errorf("Expected = %q, want %q", res.Expected, "habléis")
		}
	})

	t.Run("missing accent passes when accent insensitive", func(t *testing.T) {
		t.Parallel()
		engine := NewEngine(Config{AccentInsensitive: true})
		res, err := engine.Validate(hablar, "hableis", domain.TensePresent, domain.PersonVosotros)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if !res.IsCorrect {
			t.Error("expected correct in accent-insensitive mode")
		}
		// The expected form still carries the accent.
		if res.Expected != "habléis" {
			t.Errorf("Expected = %q, want %q", res.Expected, "habléis")
		}
	})

	t.Run("wrong form fails", func(t *testing.T) {
		t.Parallel()
		engine := NewEngine(Config{})
		res, err := engine.Validate(hablar, "hablo", domain.TensePresent, domain.PersonYo)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if res.IsCorrect {
			t.Error("expected incorrect")
		}
	})
}
