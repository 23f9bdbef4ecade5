package naming

import (
	"regexp"
	"sort"
	"strconv"
	"time"
)

// datePattern matches either YYYY.MM.DD or D.M.YY / DD.MM.YYYY, with any of
// '.', '/' or '-' as separator. The year-first form is tried first at each
// position.
var datePattern = regexp.MustCompile(
	`(\d{4})[./-](\d{1,2})[./-](\d{1,2})|(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})`,
)

// ExtractDates returns every valid calendar date found in text, sorted
// ascending. Duplicates are kept. Candidates that do not form a real date
// are dropped silently.
//
// Day-first dates are ambiguous. The first field is tried as the month and
// the second as the day; if that is not a valid date the roles are swapped.
func ExtractDates(text string) []time.Time {
	var dates []time.Time
	for _, m := range datePattern.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			if dt, ok := calendarDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
				dates = append(dates, dt)
			}
			continue
		}

		first, second, yearField := atoi(m[4]), atoi(m[5]), m[6]
		if len(yearField) == 2 {
			yearField = "20" + yearField
		}
		year := atoi(yearField)

		dt, ok := calendarDate(year, first, second)
		if !ok {
			dt, ok = calendarDate(year, second, first)
		}
		if ok {
			dates = append(dates, dt)
		}
	}

	sort.SliceStable(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// calendarDate builds a UTC date, refusing anything time.Date would have to
// normalise (month 13, February 30, year 0).
func calendarDate(year, month, day int) (time.Time, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	dt := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if dt.Year() != year || int(dt.Month()) != month || dt.Day() != day {
		return time.Time{}, false
	}
	return dt, true
}

// atoi parses a run of at most four ASCII digits, as matched by datePattern.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
