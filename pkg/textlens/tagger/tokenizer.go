package tagger

import (
	"strings"
	"unicode"
)

// Words splits a sentence into word tokens. Letters, digits, inner hyphens
// and apostrophes are kept; everything else separates words. The surface
// form is preserved, callers lowercase as needed.
func Words(sentence string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if w := cleanWord(current.String()); w != "" {
			words = append(words, w)
		}
		current.Reset()
	}

	for _, r := range sentence {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'':
			current.WriteRune(r)
		case r == '’':
			current.WriteRune('\'')
		default:
			flush()
		}
	}
	// Don't forget the last word
	flush()

	return words
}

// cleanWord strips leading/trailing hyphens and apostrophes and normalizes
// consecutive hyphens.
func cleanWord(w string) string {
	w = strings.Trim(w, "-'")
	for strings.Contains(w, "--") {
		w = strings.ReplaceAll(w, "--", "-")
	}
	return w
}

// isNumericOnly returns true if the token contains only digits and hyphens.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}
