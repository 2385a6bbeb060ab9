package roster

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// dayMonthYear matches D/M/Y, D-M-Y and D.M.Y with a 2 or 4 digit year.
var dayMonthYear = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{4}|\d{2})$`)

// TwoDigitYearPivot splits two-digit years: below it is 20YY, otherwise 19YY.
const TwoDigitYearPivot = 50

// NormalizeDate converts a day-first date cell to YYYY-MM-DD.
//
// A blank cell yields "". A cell that does not look like a day-first date is
// returned unchanged, so it still counts as present but will not match any
// member. Day and month ranges are not checked.
func NormalizeDate(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}

	m := dayMonthYear.FindStringSubmatch(trimmed)
	if m == nil {
		return s
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) == 2 {
		if year < TwoDigitYearPivot {
			year += 2000
		} else {
			year += 1900
		}
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// memberBirthday reduces a directory birthday to a comparable date: the
// time component is dropped and day-first literals are normalized.
func memberBirthday(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	return NormalizeDate(s)
}
