package naming

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize strips diacritical marks, e.g. "Kovács Ödön" -> "Kovacs Odon".
// The text is decomposed, combining marks are dropped and the rest is
// recomposed, so Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	// transform.Chain is stateful, build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// upper uppercases with full Unicode case mapping, so "ß" becomes "SS".
func upper(s string) string {
	// Casers are stateful, build one per call.
	return cases.Upper(language.Und).String(s)
}
