package fields

import (
	"regexp"
	"strings"
)

// Mobile ticket layouts place a field's label on one line and its value on
// the next. Labels are matched case-insensitively against the whole line.
var layoutLabels = map[string]func(*Info, string) bool{
	"name":            func(i *Info, v string) bool { return setIfEmpty(&i.HolderName, v) },
	"order reference": func(i *Info, v string) bool { return setIfEmpty(&i.OrderRef, v) },
	"ticket name":     func(i *Info, v string) bool { return setIfEmpty(&i.TicketType, v) },
	"ticket type":     func(i *Info, v string) bool { return setIfEmpty(&i.TicketType, v) },
	"venue":           func(i *Info, v string) bool { return setIfEmpty(&i.Venue, v) },
	"last entry":      func(i *Info, v string) bool { return setIfEmpty(&i.LastEntry, v) },
}

// Opening-time value lines carry the event date and usually a start time;
// they get a dedicated parse cascade instead of a plain assignment.
const openingTimeLabel = "opening time"

var (
	openingFull = regexp.MustCompile(`(?i)^(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*,?\s+` +
		`(\d{1,2}\s+[a-z]+\s+\d{4})(?:,?\s+(\d{1,2}:\d{2})(?:\s*GMT[+-]\d{1,2})?)?$`)
	openingNoWeekday = regexp.MustCompile(`(?i)^(\d{1,2}\s+[a-z]+\s+\d{4})` +
		`(?:,?\s+(\d{1,2}:\d{2})(?:\s*GMT[+-]\d{1,2})?)?$`)
	openingBare = regexp.MustCompile(`(?i)^(\d{1,2}\s+[a-z]+\s+\d{4})$`)
)

// extractLayout applies label/value line pairing for mobile-ticket layouts.
// It reports whether any field was contributed.
func extractLayout(st *state) bool {
	contributed := false
	lines := st.lines

	for idx, line := range lines {
		lower := strings.ToLower(line)

		// The event name sits directly above the "Name" label with no label
		// of its own.
		if lower == "name" && idx > 0 && !isLayoutLabel(lines[idx-1]) {
			if setIfEmpty(&st.info.EventName, lines[idx-1]) {
				contributed = true
			}
		}

		value := ""
		if idx+1 < len(lines) && !isLayoutLabel(lines[idx+1]) {
			value = lines[idx+1]
		}
		if value == "" {
			continue
		}

		if lower == openingTimeLabel {
			if extractOpeningTime(st.info, value) {
				contributed = true
			}
			continue
		}
		if assign, ok := layoutLabels[lower]; ok {
			if assign(st.info, value) {
				contributed = true
			}
		}
	}
	return contributed
}

func isLayoutLabel(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == openingTimeLabel {
		return true
	}
	_, ok := layoutLabels[lower]
	return ok
}

// extractOpeningTime parses an opening-time value line. The patterns are
// tried in order: full weekday form, the same without the weekday, then a
// bare day-month-year; if none match, the generic date search runs over the
// whole line.
func extractOpeningTime(info *Info, value string) bool {
	for _, re := range []*regexp.Regexp{openingFull, openingNoWeekday, openingBare} {
		m := re.FindStringSubmatch(value)
		if m == nil {
			continue
		}
		contributed := setIfEmpty(&info.EventDate, m[1])
		if len(m) > 2 && m[2] != "" {
			if setIfEmpty(&info.EventTime, m[2]) {
				contributed = true
			}
		}
		return contributed
	}

	contributed := false
	if d := findDate(value); d != "" {
		contributed = setIfEmpty(&info.EventDate, d)
	}
	if t := findTime(value); t != "" {
		if setIfEmpty(&info.EventTime, t) {
			contributed = true
		}
	}
	return contributed
}
