package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlightJSON_ZeroScoreIsSerialized(t *testing.T) {
	data, err := json.Marshal(Flight{ID: "worst", Score: 0})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	score, ok := fields["score"]
	require.True(t, ok, "score must be present for the lowest ranked offer")
	assert.Equal(t, 0.0, score)
}

func TestNewDuration(t *testing.T) {
	assert.Equal(t, Duration{Hours: 6, Minutes: 20, TotalMinutes: 380}, NewDuration(380))
	assert.Equal(t, Duration{}, NewDuration(0))
}
