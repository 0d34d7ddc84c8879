package fields

import (
	"regexp"
	"strings"
)

var (
	spaceRun   = regexp.MustCompile(`[^\S\n]+`)
	newlineRun = regexp.MustCompile(`\n{2,}`)

	// OCR confusion repairs. Each is applied contextually: the surrounding
	// character class decides which reading is correct.
	pipeBetweenLetters = regexp.MustCompile(`([A-Za-z])\|([A-Za-z])`)
	timePipe           = regexp.MustCompile(`\b(\d{1,2})\|([0-5]\d)\b`)
	dateSeparator      = regexp.MustCompile(`(\d)\s*[|\\]\s*(\d)`)

	zeroBetweenLetters = regexp.MustCompile(`([A-Za-z])0([A-Za-z])`)
	fiveBetweenLetters = regexp.MustCompile(`([A-Za-z])5([A-Za-z])`)
	oneBetweenLetters  = regexp.MustCompile(`([A-Za-z])1([A-Za-z])`)
	oBetweenDigits     = regexp.MustCompile(`(\d)[Oo](\d)`)
	sBetweenDigits     = regexp.MustCompile(`(\d)[Ss](\d)`)
	iBetweenDigits     = regexp.MustCompile(`(\d)[Il](\d)`)

	disallowed = regexp.MustCompile(`[^A-Za-z0-9\s.,:;!?()\[\]'"&@#/\-+%£$€*]`)
)

// Normalize cleans raw OCR output before extraction: whitespace runs
// collapse to single spaces (line structure is preserved), common OCR
// confusions are repaired contextually, and characters outside the ticket
// allow-list are stripped. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	// Repair before stripping: the pipe and backslash confusions must still
	// be visible to the contextual rules, and any leftovers are dropped by
	// the allow-list below.
	text = repairConfusions(text)
	text = disallowed.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = newlineRun.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// repairConfusions applies the contextual replacements until the text is
// stable. Replacements are non-overlapping per pass, so runs like "a|b|c"
// need a second pass to converge.
func repairConfusions(text string) string {
	for range 4 {
		prev := text
		// A pipe flanked by letters is a misread uppercase I.
		text = pipeBetweenLetters.ReplaceAllString(text, "${1}I${2}")
		// A lone pipe between an hour and minute pair is a colon.
		text = timePipe.ReplaceAllString(text, "$1:$2")
		// A pipe or backslash between digit groups is a date separator.
		text = dateSeparator.ReplaceAllString(text, "$1/$2")
		// Digits misread inside words and letters misread inside numbers.
		text = zeroBetweenLetters.ReplaceAllString(text, "${1}O${2}")
		text = fiveBetweenLetters.ReplaceAllString(text, "${1}S${2}")
		text = oneBetweenLetters.ReplaceAllString(text, "${1}I${2}")
		text = oBetweenDigits.ReplaceAllString(text, "${1}0${2}")
		text = sBetweenDigits.ReplaceAllString(text, "${1}5${2}")
		text = iBetweenDigits.ReplaceAllString(text, "${1}1${2}")
		if text == prev {
			break
		}
	}
	return text
}
