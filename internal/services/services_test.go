package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/courtsim/internal/rotation"
	"github.com/jstittsworth/courtsim/internal/sim"
)

func TestMatchCache_Key(t *testing.T) {
	c := NewMatchCache(nil, 0)

	a := c.Key("harbor", "summit", 42, "standard")
	b := c.Key("harbor", "summit", 42, "standard")
	assert.Equal(t, a, b, "identical requests share a key")
	assert.Contains(t, a, "sim:result:")

	assert.NotEqual(t, a, c.Key("summit", "harbor", 42, "standard"), "home and away are not interchangeable")
	assert.NotEqual(t, a, c.Key("harbor", "summit", 43, "standard"))
	assert.NotEqual(t, a, c.Key("harbor", "summit", 42, "fast"))
}

func TestBuildMatchRecord(t *testing.T) {
	result := &sim.Result{
		Seed: 42,
		Home: sim.TeamResult{Key: "harbor", Name: "harbor", Score: 98},
		Away: sim.TeamResult{Key: "summit", Name: "summit", Score: 91},
		Quarters: []sim.QuarterLine{
			{Quarter: 1, Home: 24, Away: 22},
			{Quarter: 2, Home: 25, Away: 23},
			{Quarter: 3, Home: 24, Away: 24},
			{Quarter: 4, Home: 25, Away: 22},
		},
		Events: []rotation.SubstitutionEvent{
			{Possession: 12, Quarter: 1, Team: "harbor", PlayerOut: 101, PlayerIn: 106, Reason: rotation.ReasonStaminaLow},
		},
	}

	record, err := BuildMatchRecord("match-1", 42, "standard", result)
	require.NoError(t, err)

	assert.Equal(t, "match-1", record.ID)
	assert.Equal(t, "harbor", record.HomeTeam)
	assert.Equal(t, "summit", record.AwayTeam)
	assert.Equal(t, 98, record.HomeScore)
	assert.Equal(t, 91, record.AwayScore)
	assert.Equal(t, int64(42), record.Seed)
	assert.Equal(t, "standard", record.Pace)

	var events []rotation.SubstitutionEvent
	require.NoError(t, json.Unmarshal(record.Events, &events))
	require.Len(t, events, 1)
	assert.Equal(t, rotation.ReasonStaminaLow, events[0].Reason)

	var box map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(record.BoxScore, &box))
	assert.Contains(t, box, "home")
	assert.Contains(t, box, "away")
	assert.Contains(t, box, "quarters")
}
