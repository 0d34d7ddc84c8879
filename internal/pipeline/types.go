package pipeline

// Extraction method labels reported in Result.Method.
const (
	MethodQR       = "qr"
	MethodFast     = "fast"
	MethodAdvanced = "advanced"
	MethodTemplate = "template"
	MethodFallback = "fallback"
	MethodNone     = "none"
)

// Result is the pipeline's sole output: a sparse record of extracted ticket
// fields plus diagnostics. It is immutable once returned; callers own it.
type Result struct {
	EventName  string `json:"event_name,omitempty"`
	EventDate  string `json:"event_date,omitempty"`
	EventTime  string `json:"event_time,omitempty"`
	Venue      string `json:"venue,omitempty"`
	TicketType string `json:"ticket_type,omitempty"`
	OrderRef   string `json:"order_ref,omitempty"`
	HolderName string `json:"holder_name,omitempty"`
	LastEntry  string `json:"last_entry,omitempty"`

	Confidence      int      `json:"confidence"`
	HasPersonalInfo bool     `json:"has_personal_info"`
	RawText         string   `json:"raw_text,omitempty"`
	Method          string   `json:"method"`
	Strategies      []string `json:"strategies,omitempty"`
}

// FieldCount reports how many optional fields are populated.
func (r *Result) FieldCount() int {
	n := 0
	for _, v := range []string{
		r.EventName, r.EventDate, r.EventTime, r.Venue,
		r.TicketType, r.OrderRef, r.HolderName, r.LastEntry,
	} {
		if v != "" {
			n++
		}
	}
	return n
}

// sentinelResult is the uniform zero-confidence result returned when no
// strategy produced a usable attempt.
func sentinelResult() *Result {
	return &Result{
		Confidence:      0,
		HasPersonalInfo: false,
		RawText:         "[no text recognized]",
		Method:          MethodNone,
	}
}
