package agent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var periodRegex = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)

// ResolvePeriod picks the month and year a need_data call refers to.
// Explicit month and year win, then a YYYY-MM period, then whichever of
// month or year was given with the current calendar filling the rest.
func ResolvePeriod(params map[string]any, today time.Time) (month, year int, err error) {
	m, hasMonth := parseMonth(params["month"])
	y, hasYear := asInt(params["year"])

	switch {
	case hasMonth && hasYear:
		month, year = m, y
	case periodMatch(params["period"]) != nil:
		pm := periodMatch(params["period"])
		year, _ = strconv.Atoi(pm[1])
		month, _ = strconv.Atoi(pm[2])
	default:
		month, year = int(today.Month()), today.Year()
		if hasMonth {
			month = m
		}
		if hasYear {
			year = y
		}
	}

	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month %d out of range", month)
	}
	if year < 1900 || year > 9999 {
		return 0, 0, fmt.Errorf("year %d out of range", year)
	}
	return month, year, nil
}

func periodMatch(v any) []string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return periodRegex.FindStringSubmatch(strings.TrimSpace(s))
}

// parseMonth accepts 1-12 as a number or string, or an English month name.
func parseMonth(v any) (int, bool) {
	if n, ok := asInt(v); ok {
		return n, true
	}
	s := strings.ToLower(asString(v))
	if len(s) < 3 {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(m.String()), s) {
			return int(m), true
		}
	}
	return 0, false
}

func monthName(m int) string {
	return time.Month(m).String()
}
