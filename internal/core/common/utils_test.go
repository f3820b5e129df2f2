package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fact struct {
	Subject  string `json:"subject"`
	Relation string `json:"relation"`
	Object   string `json:"object"`
}

func TestParseJSONArrayWithSurroundingProse(t *testing.T) {
	response := `Sure! Here are the extracted facts:

	[
		{"subject": "Central apnea index", "relation": "is measured by", "object": "5 per hour"},
		{"subject": "Obstructive apnea", "relation": "is associated with", "object": "snoring"}
	]

	I hope this helps.`

	facts, err := ParseJSONArray[fact](response)
	require.NoError(t, err)
	require.Len(t, facts, 2)
	assert.Equal(t, "Central apnea index", facts[0].Subject)
	assert.Equal(t, "is measured by", facts[0].Relation)
	assert.Equal(t, "5 per hour", facts[0].Object)
}

func TestParseJSONArrayNoBrackets(t *testing.T) {
	_, err := ParseJSONArray[fact]("I could not find any triplets in this text.")
	require.Error(t, err)
}

func TestParseJSONArrayEmpty(t *testing.T) {
	facts, err := ParseJSONArray[fact]("[]")
	require.NoError(t, err)
	assert.Empty(t, facts)
}

func TestParseJSONArrayRepairsMalformedJSON(t *testing.T) {
	// Trailing comma and unquoted key, both common model output defects.
	response := `[
		{subject: "A", "relation": "is defined as", "object": "B"},
	]`

	facts, err := ParseJSONArray[fact](response)
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "A", facts[0].Subject)
}

func TestParseJSONArrayMarkdownFence(t *testing.T) {
	response := "```json\n[{\"subject\": \"A\", \"relation\": \"r\", \"object\": \"B\"}]\n```"

	facts, err := ParseJSONArray[fact](response)
	require.NoError(t, err)
	require.Len(t, facts, 1)
}
