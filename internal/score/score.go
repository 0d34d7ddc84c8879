// Package score turns engine-reported confidence and extraction quality
// signals into the final 0-100 confidence, and flags potential personal
// information for human review.
package score

import (
	"regexp"
	"strings"

	"github.com/seatswap/ticketscan/internal/fields"
)

// Bonuses are the per-field additions applied on top of the weighted engine
// confidence. The magnitudes are tunable; the ordering is the contract:
// event name counts most, then date, then venue/time, then type/reference,
// then bare QR presence.
type Bonuses struct {
	EventName  int
	EventDate  int
	Venue      int
	EventTime  int
	TicketType int
	OrderRef   int
	QRPresence int
	Breadth    int // added once when at least 3 distinct fields populated
}

// DefaultBonuses returns the default bonus table.
func DefaultBonuses() Bonuses {
	return Bonuses{
		EventName:  25,
		EventDate:  20,
		Venue:      10,
		EventTime:  10,
		TicketType: 8,
		OrderRef:   6,
		QRPresence: 5,
		Breadth:    5,
	}
}

// EngineWeight is the share of the engine's own confidence in the final
// score; the remainder comes from extraction completeness.
const EngineWeight = 0.7

// Score combines the engine confidence with field bonuses, clamped to
// [0, 100].
func Score(engineConfidence float64, info *fields.Info, qrPresent bool, b Bonuses) int {
	if engineConfidence < 0 {
		engineConfidence = 0
	}
	if engineConfidence > 100 {
		engineConfidence = 100
	}

	total := engineConfidence * EngineWeight
	if info.EventName != "" {
		total += float64(b.EventName)
	}
	if info.EventDate != "" {
		total += float64(b.EventDate)
	}
	if info.Venue != "" {
		total += float64(b.Venue)
	}
	if info.EventTime != "" {
		total += float64(b.EventTime)
	}
	if info.TicketType != "" {
		total += float64(b.TicketType)
	}
	if info.OrderRef != "" {
		total += float64(b.OrderRef)
	}
	if qrPresent {
		total += float64(b.QRPresence)
	}
	// A generally successful pass, not one lucky match.
	if info.FieldCount() >= 3 {
		total += float64(b.Breadth)
	}

	if total < 0 {
		return 0
	}
	if total > 100 {
		return 100
	}
	return int(total)
}

// Personal-information heuristics. Deliberately over-inclusive: flagging
// benign text prompts a harmless review, while a miss leaks someone's name.
var (
	fullNamePattern = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)
	bookingRefToken = regexp.MustCompile(`\b(?:[A-Za-z]+\d|\d+[A-Za-z])[A-Za-z0-9]{4,}\b`)
)

// DetectPersonalInfo reports whether the extracted values or the raw
// recognized text look like they contain a person's name or a booking
// reference.
func DetectPersonalInfo(info *fields.Info, rawText string) bool {
	if info.HolderName != "" || info.OrderRef != "" {
		return true
	}
	joined := strings.Join(append(info.Values(), rawText), " ")
	if strings.TrimSpace(joined) == "" {
		return false
	}
	if strings.Contains(strings.ToLower(joined), "order ref") {
		return true
	}
	if fullNamePattern.MatchString(joined) {
		return true
	}
	return bookingRefToken.MatchString(joined)
}
