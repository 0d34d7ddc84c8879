package fields

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthIndex = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var (
	isoDate        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	weekdayPrefix  = regexp.MustCompile(`(?i)^(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*,?\s+`)
	dayNameYear    = regexp.MustCompile(`(?i)^(\d{1,2})(?:st|nd|rd|th)?\s+([a-z]+),?\s+(\d{4})$`)
	slashDashDate  = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{2,4})$`)
	genericLayouts = []string{
		"January 2, 2006",
		"Jan 2, 2006",
		"2006/01/02",
		"2006.01.02",
		"02 01 2006",
	}
)

// NormalizeDate converts a free-form date string to an ISO calendar date
// where possible. Parsers are tried in priority order: ISO passthrough,
// weekday/month-name, generic layouts, then day/month/year with slash or
// dash separators. When every parse fails the original string is returned
// unchanged rather than discarded.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	if isoDate.MatchString(s) {
		if _, err := time.Parse("2006-01-02", s); err == nil {
			return s
		}
		return s
	}

	if iso, ok := parseNamedMonth(s); ok {
		return iso
	}
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if iso, ok := parseNumericDate(s); ok {
		return iso
	}
	return s
}

// parseNamedMonth handles "Saturday, 28 Oct 2023", "28 October 2023" and
// similar, using the fixed month-name table.
func parseNamedMonth(s string) (string, bool) {
	s = weekdayPrefix.ReplaceAllString(s, "")
	m := dayNameYear.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	month, ok := monthIndex[strings.ToLower(m[2])]
	if !ok {
		return "", false
	}
	year, _ := strconv.Atoi(m[3])
	return isoString(year, month, day)
}

// parseNumericDate handles day/month/year with slash, dot, or dash
// separators. Two-digit years are assumed to be 20xx.
func parseNumericDate(s string) (string, bool) {
	m := slashDashDate.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 {
		return "", false
	}
	return isoString(year, time.Month(month), day)
}

func isoString(year int, month time.Month, day int) (string, bool) {
	if day < 1 || day > 31 || year < 1900 || year > 2200 {
		return "", false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return "", false // e.g. 31 Feb rolls over
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day), true
}
