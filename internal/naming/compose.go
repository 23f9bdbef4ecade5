package naming

import (
	"fmt"
	"time"
)

const (
	// fragmentLayout renders a date as two-digit month and day.
	fragmentLayout = "0102"

	filenameTemplate = "%s EKHO - %s_%s-%s - WE25%s.pdf"
)

// Compose builds the final filename from a canonical name and a sorted,
// non-empty date set:
//
//	<name> EKHO - <code>_<first MMDD>-<last MMDD> - WE25<day before last MMDD>.pdf
func Compose(canonical string, dates []time.Time) (string, error) {
	if len(dates) == 0 {
		return "", ErrNoDatesAvailable
	}

	code, err := ShortCode(canonical)
	if err != nil {
		return "", err
	}
	return composeWithCode(canonical, code, dates), nil
}

// composeWithCode renders the filename for an already computed short code.
// dates must not be empty.
func composeWithCode(canonical, code string, dates []time.Time) string {
	first := dates[0]
	last := dates[len(dates)-1]
	dayBeforeLast := last.AddDate(0, 0, -1)

	return fmt.Sprintf(filenameTemplate,
		canonical,
		code,
		first.Format(fragmentLayout),
		last.Format(fragmentLayout),
		dayBeforeLast.Format(fragmentLayout),
	)
}
