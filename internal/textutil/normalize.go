// Package textutil holds the text normalization shared by every intent
// matcher. All classification happens over normalized text, so the rules
// here are load-bearing: changing them shifts every downstream heuristic.
package textutil

import (
	"regexp"
	"strings"
)

var (
	// Anything that is not a letter, digit, underscore, or whitespace
	// becomes a space. Unicode classes keep accented Portuguese intact.
	nonWord    = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Normalize lowercases, replaces punctuation with spaces, collapses runs of
// whitespace, and trims. Pure and total: empty input yields empty output.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	t := strings.ToLower(strings.TrimSpace(text))
	t = nonWord.ReplaceAllString(t, " ")
	t = whitespace.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// ContainsAny reports whether any of the needles occurs as a substring of s.
func ContainsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// HasToken reports whether any of the tokens occurs as a whole word of the
// normalized text.
func HasToken(normalized string, tokens ...string) bool {
	for _, field := range strings.Fields(normalized) {
		for _, tok := range tokens {
			if field == tok {
				return true
			}
		}
	}
	return false
}
