package naming

import "strings"

// companyMarker starts the organisational suffix some documents append to
// the subject's name.
const companyMarker = "Company"

// ParseName turns a raw name into its canonical form: surname first,
// diacritics stripped, uppercase.
//
// Only the first token is looked up. When it is a known first name the
// first two tokens are swapped, so "János Kovács" becomes "KOVACS JANOS"
// when "János" is in dict.
func ParseName(raw string, dict *Dictionary) string {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, companyMarker); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}

	tokens := strings.Fields(raw)
	if len(tokens) >= 2 && dict.Contains(tokens[0]) {
		tokens[0], tokens[1] = tokens[1], tokens[0]
	}

	return upper(Normalize(strings.Join(tokens, " ")))
}
