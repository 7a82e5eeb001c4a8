package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text (NFKD) and drops combining marks, so accented
// characters compare equal to their base form ("é" == "e").
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize returns the comparison key for a short identifier string:
// trimmed, lowercased, with diacritics stripped. Empty input normalizes to
// the empty string. Normalize is idempotent.
//
// Labels such as operation codes and custom field names arrive with
// inconsistent casing and accents ("Àss", "Diamètre"); all membership checks
// in this package go through Normalize so those variants match.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Transform failures only occur on invalid UTF-8; fall back to the
		// lowercased input so comparisons still behave sensibly.
		return s
	}
	return out
}
