// Package fields turns raw recognized ticket text (and optional QR payload
// data) into structured ticket fields through an ordered cascade of named
// extraction strategies.
package fields

import "strings"

// Info is the structured-field portion of an extraction result. All values
// are trimmed; empty means the field was not found.
type Info struct {
	EventName  string
	EventDate  string
	EventTime  string
	Venue      string
	TicketType string
	OrderRef   string
	HolderName string
	LastEntry  string
}

// FieldCount reports how many fields are populated.
func (i *Info) FieldCount() int {
	return len(i.Values())
}

// Values returns the populated field values.
func (i *Info) Values() []string {
	var out []string
	for _, v := range []string{
		i.EventName, i.EventDate, i.EventTime, i.Venue,
		i.TicketType, i.OrderRef, i.HolderName, i.LastEntry,
	} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// setIfEmpty assigns a trimmed value only when the target is still empty.
// It reports whether a value was written.
func setIfEmpty(dst *string, value string) bool {
	if *dst != "" {
		return false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	*dst = value
	return true
}
