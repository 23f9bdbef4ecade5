package naming

import (
	"regexp"
	"strings"
	"time"
)

var (
	// preamblePattern matches the "Period <N> Starts ..." line some exports
	// put above the header. It mentions names of its own and must go before
	// the label search.
	preamblePattern = regexp.MustCompile(`(?im)^Period\s+\d+\s+Starts.*`)

	// nameLabelPattern captures the rest of the line after "Name:".
	nameLabelPattern = regexp.MustCompile(`(?i)Name:\s*(.+)`)

	// dateMarkerPattern marks the start of the date section.
	dateMarkerPattern = regexp.MustCompile(`(?i)date`)
)

// Derivation holds the filename derived from a document together with the
// intermediate values it was built from.
type Derivation struct {
	RawName       string
	CanonicalName string
	ShortCode     string
	Dates         []time.Time
	Filename      string
}

// Derive extracts the subject's name and the reporting dates from a
// document's text and composes the EKHO filename.
//
// It fails with ErrLabelNotFound, ErrDateHeaderNotFound or ErrNoDatesFound
// when the text does not follow the expected layout, and with ErrEmptyName
// when the label holds nothing but a company suffix.
func Derive(text string, dict *Dictionary) (*Derivation, error) {
	text = preamblePattern.ReplaceAllString(text, "")

	m := nameLabelPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, ErrLabelNotFound
	}
	raw := strings.TrimSpace(m[1])
	canonical := ParseName(raw, dict)

	loc := dateMarkerPattern.FindStringIndex(text)
	if loc == nil {
		return nil, ErrDateHeaderNotFound
	}

	dates := ExtractDates(text[loc[0]:])
	if len(dates) == 0 {
		return nil, ErrNoDatesFound
	}

	code, err := ShortCode(canonical)
	if err != nil {
		return nil, err
	}
	filename := composeWithCode(canonical, code, dates)

	return &Derivation{
		RawName:       raw,
		CanonicalName: canonical,
		ShortCode:     code,
		Dates:         dates,
		Filename:      filename,
	}, nil
}
