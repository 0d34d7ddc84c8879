package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	return &Result{
		EventName:       "Halloween Bash",
		EventDate:       "2023-10-28",
		EventTime:       "19:00",
		TicketType:      "Advance Entry",
		HolderName:      "John Smith",
		Confidence:      87,
		HasPersonalInfo: true,
		Method:          MethodFast,
		Strategies:      []string{"layout"},
	}
}

func TestToJSON(t *testing.T) {
	out, err := ToJSON(sampleResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Halloween Bash", decoded["event_name"])
	assert.Equal(t, float64(87), decoded["confidence"])
	assert.Equal(t, true, decoded["has_personal_info"])
	assert.Equal(t, "fast", decoded["method"])
	// Empty fields are omitted entirely.
	assert.NotContains(t, decoded, "venue")
	assert.NotContains(t, decoded, "order_ref")
}

func TestToJSON_NilResult(t *testing.T) {
	_, err := ToJSON(nil)
	assert.Error(t, err)
}

func TestToText(t *testing.T) {
	out, err := ToText(sampleResult())
	require.NoError(t, err)

	assert.Contains(t, out, "Event:")
	assert.Contains(t, out, "Halloween Bash")
	assert.Contains(t, out, "Confidence:")
	assert.Contains(t, out, "87")
	assert.Contains(t, out, "personal information")
	assert.NotContains(t, out, "Venue:")
}

func TestToText_NoPersonalInfoLine(t *testing.T) {
	res := sampleResult()
	res.HasPersonalInfo = false
	out, err := ToText(res)
	require.NoError(t, err)
	assert.NotContains(t, out, "personal information")
}
