package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a raw cell value into the single comparison key used for
// all fuzzy matching: diacritics stripped, lowercased, whitespace runs
// collapsed to one space, trimmed. Business logic never compares raw strings.
func Normalize(v string) string {
	folded, _, err := transform.String(stripMarks, v)
	if err != nil {
		folded = v
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// SafeString trims a raw cell value; missing cells read as "".
func SafeString(v string) string {
	return strings.TrimSpace(v)
}

// KeysRelated reports symmetric containment between two normalized keys.
// This is the fallback relation of the occurrence matcher and of the
// occurrence-list visibility filter.
func KeysRelated(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
