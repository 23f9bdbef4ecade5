package naming

import "strings"

const shortCodeLen = 4

// ShortCode abbreviates the leading token of a canonical name to at most
// four letters.
func ShortCode(canonical string) (string, error) {
	tokens := strings.Fields(canonical)
	if len(tokens) == 0 {
		return "", ErrEmptyName
	}

	code := []rune(tokens[0])
	if len(code) > shortCodeLen {
		code = code[:shortCodeLen]
	}
	return upper(string(code)), nil
}
