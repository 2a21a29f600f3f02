package sim

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/courtsim/internal/providers"
	"github.com/jstittsworth/courtsim/internal/rotation"
)

func testTeamConfig(t *testing.T, key string) TeamConfig {
	t.Helper()
	roster, err := providers.NewStaticRosterProvider().Roster(context.Background(), key)
	require.NoError(t, err)
	return TeamConfig{
		Key:    key,
		Name:   key,
		Roster: roster,
		Tactics: rotation.Tactics{
			Pace:           rotation.PaceStandard,
			ScoringOptions: []uint{roster[0].ID, roster[2].ID},
			Closers:        []uint{roster[0].ID, roster[2].ID},
		},
	}
}

func runMatch(t *testing.T, seed int64) *Result {
	t.Helper()
	m, err := NewMatch(testTeamConfig(t, "harbor"), testTeamConfig(t, "summit"), Options{Seed: seed})
	require.NoError(t, err)
	result, err := m.Run()
	require.NoError(t, err)
	return result
}

func TestMatch_DeterministicBySeed(t *testing.T) {
	a := runMatch(t, 42)
	b := runMatch(t, 42)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb), "a replay with the same seed must be byte-identical")

	c := runMatch(t, 43)
	jc, err := json.Marshal(c)
	require.NoError(t, err)
	assert.NotEqual(t, string(ja), string(jc), "a different seed should diverge")
}

func TestMatch_MinutesAccounting(t *testing.T) {
	result := runMatch(t, 7)

	for _, team := range []TeamResult{result.Home, result.Away} {
		total := 0.0
		for _, line := range team.Box {
			total += line.Minutes
			assert.GreaterOrEqual(t, line.Minutes, 0.0)
			assert.LessOrEqual(t, line.Minutes, 48.0+1e-6)
		}
		assert.InDelta(t, 240.0, total, 1e-6, "five players on the floor for 48 minutes: %s", team.Key)
	}
}

func TestMatch_BoxScoreConsistency(t *testing.T) {
	result := runMatch(t, 11)

	for _, team := range []TeamResult{result.Home, result.Away} {
		points := 0
		for _, line := range team.Box {
			points += line.Points
			assert.LessOrEqual(t, line.Fouls, 6)
			if line.FouledOut {
				assert.Equal(t, 6, line.Fouls)
			}
		}
		assert.Equal(t, team.Score, points, "box score points must sum to the team score: %s", team.Key)
	}

	quarterHome, quarterAway := 0, 0
	require.Len(t, result.Quarters, 4)
	for _, q := range result.Quarters {
		quarterHome += q.Home
		quarterAway += q.Away
	}
	assert.Equal(t, result.Home.Score, quarterHome)
	assert.Equal(t, result.Away.Score, quarterAway)
}

func TestMatch_EventsAreWellFormed(t *testing.T) {
	result := runMatch(t, 5)
	require.NotEmpty(t, result.Events, "a full game rotates players")

	lastPossession := 0
	for _, ev := range result.Events {
		assert.GreaterOrEqual(t, ev.Possession, lastPossession, "events stay in possession order")
		lastPossession = ev.Possession
		assert.Contains(t, []string{"harbor", "summit"}, ev.Team)
		assert.NotZero(t, ev.PlayerOut)
		assert.NotZero(t, ev.PlayerIn)
		assert.NotEqual(t, ev.PlayerOut, ev.PlayerIn)
		assert.NotEmpty(t, ev.Reason)
		assert.GreaterOrEqual(t, ev.Quarter, 1)
		assert.LessOrEqual(t, ev.Quarter, 4)
	}
}

func TestMatch_LiveUpdates(t *testing.T) {
	m, err := NewMatch(testTeamConfig(t, "harbor"), testTeamConfig(t, "summit"), Options{Seed: 3})
	require.NoError(t, err)

	counts := make(map[string]int)
	m.OnUpdate(func(u Update) {
		counts[u.Type]++
	})

	result, err := m.Run()
	require.NoError(t, err)

	assert.Equal(t, 4, counts["quarter"])
	assert.Equal(t, 1, counts["final"])
	assert.Equal(t, len(result.Events), counts["substitution"])
}

func TestNewMatch_RejectsBadRoster(t *testing.T) {
	cfg := testTeamConfig(t, "harbor")
	cfg.Roster = cfg.Roster[:3]
	_, err := NewMatch(cfg, testTeamConfig(t, "summit"), Options{Seed: 1})
	require.Error(t, err)
	var cfgErr *rotation.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestPlayerState_DrainAndRecovery(t *testing.T) {
	roster, err := providers.NewStaticRosterProvider().Roster(context.Background(), "harbor")
	require.NoError(t, err)
	state := newPlayerState(roster)

	active := []uint{101, 102, 103, 104, 105}
	bench := []uint{106, 107, 108, 109, 110}
	state.stamina[106] = 50

	rng := rand.New(rand.NewSource(1))
	state.advance(active, bench, 60, rotation.Tactics{Pace: rotation.PaceStandard, ScoringOptions: []uint{101}}, rng)

	// Drain is jittered up to 15 percent either way, so assert the envelope
	// rather than exact values.
	assert.InDelta(t, 100-2.2, state.stamina[102], 2.2*drainJitter+1e-9, "floor time costs the pace drain")
	assert.InDelta(t, 100-2.8, state.stamina[101], 2.8*drainJitter+1e-9, "scoring options pay the surcharge")
	assert.InDelta(t, 52.4, state.stamina[106], 1e-9, "bench time recovers stamina")
	assert.InDelta(t, 100.0, state.stamina[107], 1e-9, "recovery clamps at full")
}

func TestPlayerState_FoulOutAtSix(t *testing.T) {
	roster, err := providers.NewStaticRosterProvider().Roster(context.Background(), "harbor")
	require.NoError(t, err)
	state := newPlayerState(roster)

	for i := 0; i < 5; i++ {
		assert.False(t, state.addFoul(101))
	}
	assert.True(t, state.addFoul(101), "the sixth foul disqualifies")
	assert.True(t, state.FouledOut(101))
	assert.False(t, state.addFoul(101), "only the sixth foul reports the disqualification")
}
