package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ToJSON serializes a result to pretty JSON.
func ToJSON(res *Result) (string, error) {
	if res == nil {
		return "", errors.New("nil result")
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToText renders a result as aligned label/value lines for terminal output.
func ToText(res *Result) (string, error) {
	if res == nil {
		return "", errors.New("nil result")
	}
	var sb strings.Builder
	write := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "%-16s %s\n", label+":", value)
		}
	}
	write("Event", res.EventName)
	write("Date", res.EventDate)
	write("Time", res.EventTime)
	write("Venue", res.Venue)
	write("Ticket type", res.TicketType)
	write("Order ref", res.OrderRef)
	write("Holder", res.HolderName)
	write("Last entry", res.LastEntry)
	fmt.Fprintf(&sb, "%-16s %d\n", "Confidence:", res.Confidence)
	fmt.Fprintf(&sb, "%-16s %s\n", "Method:", res.Method)
	if res.HasPersonalInfo {
		sb.WriteString("Contains possible personal information; review before publishing.\n")
	}
	return sb.String(), nil
}
