package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// đ is a distinct letter, not d plus a combining mark, so NFD leaves it.
var letterFolds = strings.NewReplacer("đ", "d")

// Normalize lowercases, trims, strips diacritics and collapses whitespace
// so "Học Máy" and "hoc may" compare equal.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = letterFolds.Replace(s)

	// Chains keep internal state; build one per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(folded), " ")
}

// Tokenize returns the normalized whitespace-separated tokens of s.
func Tokenize(s string) []string {
	return strings.Fields(Normalize(s))
}
