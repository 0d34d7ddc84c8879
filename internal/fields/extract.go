package fields

import (
	"regexp"
	"strings"

	"github.com/seatswap/ticketscan/internal/barcode"
)

// state carries one extraction's working data through the strategy cascade.
type state struct {
	text  string
	lines []string
	qr    *barcode.Payload
	info  *Info
}

// strategy is one named step of the cascade. Apply only fills fields that
// are still empty and reports whether it contributed anything, so the
// priority order stays auditable.
type strategy struct {
	name  string
	apply func(*state) bool
}

func strategies() []strategy {
	return []strategy{
		{name: "layout", apply: extractLayout},
		{name: "patterns", apply: extractPatterns},
		{name: "keyword-proximity", apply: extractKeywordProximity},
		{name: "qr-fusion", apply: fuseQR},
	}
}

// StrategyNames returns the cascade order, primarily for diagnostics.
func StrategyNames() []string {
	all := strategies()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.name
	}
	return names
}

// Extract populates structured fields from normalized text and an optional
// QR payload. It returns the fields plus the names of the strategies that
// contributed at least one value.
func Extract(text string, qr *barcode.Payload) (Info, []string) {
	info := Info{}
	st := &state{
		text:  text,
		lines: splitLines(text),
		qr:    qr,
		info:  &info,
	}

	var contributors []string
	for _, s := range strategies() {
		if s.apply(st) {
			contributors = append(contributors, s.name)
		}
	}

	cleanup(&info)
	return info, contributors
}

// fuseQR copies QR-derived values into fields OCR left empty. The decoded
// payload is the more trustworthy source, but only fills gaps here; the
// QR-first strategy upstream handles the fully-trusted case.
func fuseQR(st *state) bool {
	if st.qr == nil {
		return false
	}
	contributed := false
	pairs := []struct {
		dst *string
		src string
	}{
		{&st.info.EventName, st.qr.EventName},
		{&st.info.EventDate, st.qr.EventDate},
		{&st.info.EventTime, st.qr.EventTime},
		{&st.info.Venue, st.qr.Venue},
		{&st.info.TicketType, st.qr.TicketType},
		{&st.info.OrderRef, st.qr.OrderRef},
		{&st.info.HolderName, st.qr.HolderName},
	}
	for _, p := range pairs {
		if p.src != "" && setIfEmpty(p.dst, p.src) {
			contributed = true
		}
	}
	return contributed
}

var nameNoise = regexp.MustCompile(`[^\p{L}\p{N} '&.\-]`)

// cleanup strips residual OCR noise from free-text fields, trims everything,
// and normalizes the event date. A date that fails to normalize keeps its
// original text.
func cleanup(info *Info) {
	info.EventName = cleanFreeText(info.EventName)
	info.Venue = cleanFreeText(info.Venue)
	info.EventDate = NormalizeDate(info.EventDate)

	for _, f := range []*string{
		&info.EventName, &info.EventDate, &info.EventTime, &info.Venue,
		&info.TicketType, &info.OrderRef, &info.HolderName, &info.LastEntry,
	} {
		*f = strings.TrimSpace(*f)
	}
}

func cleanFreeText(s string) string {
	s = nameNoise.ReplaceAllString(s, "")
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// splitLines returns trimmed, non-empty lines.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
