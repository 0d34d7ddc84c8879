package barcode

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Payload holds the decoded QR text plus any structured fields recovered
// from it. Field values are trimmed and may be empty.
type Payload struct {
	Raw        string
	EventName  string
	EventDate  string
	EventTime  string
	Venue      string
	TicketType string
	OrderRef   string
	HolderName string
}

// FieldCount reports how many structured fields were recovered.
func (p *Payload) FieldCount() int {
	n := 0
	for _, v := range []string{
		p.EventName, p.EventDate, p.EventTime, p.Venue,
		p.TicketType, p.OrderRef, p.HolderName,
	} {
		if v != "" {
			n++
		}
	}
	return n
}

// Key aliases seen across issuer QR payloads.
var payloadKeys = map[string]func(*Payload, string){
	"event":      func(p *Payload, v string) { p.EventName = v },
	"eventname":  func(p *Payload, v string) { p.EventName = v },
	"title":      func(p *Payload, v string) { p.EventName = v },
	"date":       func(p *Payload, v string) { p.EventDate = v },
	"eventdate":  func(p *Payload, v string) { p.EventDate = v },
	"time":       func(p *Payload, v string) { p.EventTime = v },
	"venue":      func(p *Payload, v string) { p.Venue = v },
	"location":   func(p *Payload, v string) { p.Venue = v },
	"type":       func(p *Payload, v string) { p.TicketType = v },
	"tickettype": func(p *Payload, v string) { p.TicketType = v },
	"ref":        func(p *Payload, v string) { p.OrderRef = v },
	"orderref":   func(p *Payload, v string) { p.OrderRef = v },
	"reference":  func(p *Payload, v string) { p.OrderRef = v },
	"name":       func(p *Payload, v string) { p.HolderName = v },
	"holder":     func(p *Payload, v string) { p.HolderName = v },
}

var yearToken = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// ParsePayload interprets a decoded QR string. JSON payloads are mapped via
// known key aliases; anything else is split on newlines, commas, and
// semicolons and classified line by line.
func ParsePayload(raw string) *Payload {
	p := &Payload{Raw: raw}
	if parseJSONPayload(p, raw) {
		return p
	}
	parseDelimitedPayload(p, raw)
	return p
}

func parseJSONPayload(p *Payload, raw string) bool {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return false
	}
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(strings.ReplaceAll(k, "_", ""))
		if set, ok := payloadKeys[key]; ok {
			set(p, s)
		}
	}
	return true
}

func parseDelimitedPayload(p *Payload, raw string) {
	split := func(r rune) bool { return r == '\n' || r == ',' || r == ';' }
	for _, line := range strings.FieldsFunc(raw, split) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		switch {
		case p.EventDate == "" && yearToken.MatchString(line):
			p.EventDate = line
		case p.EventName == "" && (strings.Contains(lower, "event") ||
			strings.Contains(lower, "party") || strings.Contains(lower, "concert")):
			p.EventName = line
		}
	}
}
