package fields

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Printed and PDF-style tickets label fields inline rather than on the
// preceding line.
var (
	labeledEvent = regexp.MustCompile(`(?im)^\s*event\s*[:\-]\s*(.+)$`)
	labeledVenue = regexp.MustCompile(`(?im)^\s*venue\s*[:\-]\s*(.+)$`)
	labeledDate  = regexp.MustCompile(`(?im)^\s*date\s*[:\-]\s*(.+)$`)

	weekdayDate = regexp.MustCompile(`(?i)\b(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*,?\s+` +
		`\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{4}\b`)
	dayMonthDate = regexp.MustCompile(`(?i)\b\d{1,2}\s+` +
		`(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{4}\b`)
	numericDate = regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`)

	clockTime = regexp.MustCompile(`\b(?:[01]?\d|2[0-3]):[0-5]\d(?:\s*GMT[+-]\d{1,2})?\b`)
)

// Fixed vocabulary of ticket tiers matched as case-insensitive substrings.
var ticketTypeVocabulary = []string{
	"General Admission",
	"Advance Entry",
	"Early Bird",
	"Guest List",
	"VIP",
	"Standing",
	"Seated",
	"Balcony",
	"Student",
}

// findDate returns the first date-shaped substring, preferring the forms
// that carry a weekday.
func findDate(text string) string {
	if m := weekdayDate.FindString(text); m != "" {
		return m
	}
	if m := dayMonthDate.FindString(text); m != "" {
		return m
	}
	return numericDate.FindString(text)
}

// findTime returns the first HH:MM time, with optional GMT offset.
func findTime(text string) string {
	return clockTime.FindString(text)
}

// extractPatterns fills still-empty fields from regex templates applied
// independently across the full text.
func extractPatterns(st *state) bool {
	contributed := false

	if m := labeledEvent.FindStringSubmatch(st.text); m != nil {
		contributed = setIfEmpty(&st.info.EventName, m[1]) || contributed
	}
	if m := labeledVenue.FindStringSubmatch(st.text); m != nil {
		contributed = setIfEmpty(&st.info.Venue, m[1]) || contributed
	}
	if m := labeledDate.FindStringSubmatch(st.text); m != nil {
		contributed = setIfEmpty(&st.info.EventDate, m[1]) || contributed
	}

	if st.info.EventDate == "" {
		if d := findDate(st.text); d != "" {
			contributed = setIfEmpty(&st.info.EventDate, d) || contributed
		}
	}
	if st.info.EventTime == "" {
		if t := findTime(st.text); t != "" {
			contributed = setIfEmpty(&st.info.EventTime, t) || contributed
		}
	}

	if st.info.TicketType == "" {
		lower := strings.ToLower(st.text)
		for _, tt := range ticketTypeVocabulary {
			if strings.Contains(lower, strings.ToLower(tt)) {
				contributed = setIfEmpty(&st.info.TicketType, tt) || contributed
				break
			}
		}
	}
	return contributed
}

// Generic event nouns that anchor the keyword-proximity fallback.
var eventNouns = map[string]bool{
	"party": true, "festival": true, "concert": true, "gig": true,
	"show": true, "rave": true, "fest": true, "tour": true, "bash": true,
}

// extractKeywordProximity is the last-resort event-name strategy: it looks
// for an event noun and checks whether the surrounding token window is
// shaped like a title-cased event name.
func extractKeywordProximity(st *state) bool {
	if st.info.EventName != "" {
		return false
	}
	tokens := strings.Fields(st.text)
	for idx, tok := range tokens {
		word := strings.ToLower(strings.Trim(tok, ".,:;!?()"))
		if !eventNouns[word] {
			continue
		}
		start := max(idx-3, 0)
		window := tokens[start : idx+1]
		if candidate, ok := eventNameShaped(window); ok {
			return setIfEmpty(&st.info.EventName, candidate)
		}
	}
	return false
}

// eventNameShaped accepts a window whose words are title-cased or all-caps.
func eventNameShaped(window []string) (string, bool) {
	if len(window) < 2 {
		return "", false
	}
	for _, w := range window {
		w = strings.Trim(w, ".,:;!?()")
		if w == "" {
			return "", false
		}
		first, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(first) {
			return "", false
		}
	}
	return strings.Join(window, " "), true
}
