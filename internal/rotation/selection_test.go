package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/courtsim/internal/models"
)

func TestCompatibleRoles(t *testing.T) {
	assert.True(t, CompatibleRoles(models.PositionPointGuard, models.PositionShootingGuard))
	assert.True(t, CompatibleRoles(models.PositionSmallForward, models.PositionPowerForward))
	assert.True(t, CompatibleRoles(models.PositionCenter, models.PositionCenter))
	assert.False(t, CompatibleRoles(models.PositionPointGuard, models.PositionCenter))
	assert.False(t, CompatibleRoles(models.PositionShootingGuard, models.PositionPowerForward))
}

func TestPickReplacement_TierOrder(t *testing.T) {
	e, state := newTestEngine(t, Tactics{})
	out, _ := e.Lineup().Player(1) // PG

	// Everyone fresh: role-compatible with the best rating wins.
	id, ok := e.pickReplacement(out)
	require.True(t, ok)
	assert.Equal(t, uint(6), id)

	// The PG backup goes stale: the fresh SG wins the top tier on role fit.
	state.stamina[6] = 50
	id, ok = e.pickReplacement(out)
	require.True(t, ok)
	assert.Equal(t, uint(7), id)

	// Both guards stale: role compatibility still beats freshness, and the
	// higher rating breaks the stamina tie.
	state.stamina[7] = 50
	id, ok = e.pickReplacement(out)
	require.True(t, ok)
	assert.Equal(t, uint(6), id)

	// No guard available at all: fall through to any fresh body, lowest id
	// among equals.
	state.injured[6] = true
	state.injured[7] = true
	id, ok = e.pickReplacement(out)
	require.True(t, ok)
	assert.Equal(t, uint(8), id)

	// Nobody fresh either: best of what's left.
	state.stamina[8] = 60
	state.stamina[9] = 55
	state.stamina[10] = 50
	id, ok = e.pickReplacement(out)
	require.True(t, ok)
	assert.Equal(t, uint(8), id)
}

func TestPickReplacement_SkipsCoveredStarter(t *testing.T) {
	e, _ := newTestEngine(t, Tactics{})
	require.NoError(t, e.Lineup().Substitute(1, 6))

	// Starter 1 is the strongest bench body, but their stand-in is on the
	// floor: they only return through the starter-return path.
	out, _ := e.Lineup().Player(2) // SG
	id, ok := e.pickReplacement(out)
	require.True(t, ok)
	assert.Equal(t, uint(7), id)
}

func TestPickReplacement_NobodyEligible(t *testing.T) {
	e, state := newTestEngine(t, Tactics{})
	for id := uint(6); id <= 10; id++ {
		state.injured[id] = true
	}
	out, _ := e.Lineup().Player(1)
	_, ok := e.pickReplacement(out)
	assert.False(t, ok)
}

func TestPickDowngrade(t *testing.T) {
	e, _ := newTestEngine(t, Tactics{Closers: []uint{10}})
	require.NoError(t, e.Lineup().Substitute(5, 10))

	// The lone non-starter on the floor goes first.
	id, ok := e.pickDowngrade(false)
	require.True(t, ok)
	assert.Equal(t, uint(10), id)

	// Unless they are a protected closer; then the weakest starter goes,
	// ties broken by id.
	id, ok = e.pickDowngrade(true)
	require.True(t, ok)
	assert.Equal(t, uint(1), id)
}
