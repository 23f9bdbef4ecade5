package pdf

import (
	"strings"

	"github.com/a3tai/ekho-renamer/internal/naming"
)

// foldText makes text comparable regardless of accents and case.
func foldText(s string) string {
	return strings.ToUpper(naming.Normalize(s))
}
