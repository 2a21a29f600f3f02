package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/courtsim/internal/models"
)

func testRoster() []models.Player {
	return []models.Player{
		{ID: 1, Name: "Avery Stone", Position: models.PositionPointGuard, Rating: 90},
		{ID: 2, Name: "Ben Holt", Position: models.PositionShootingGuard, Rating: 90},
		{ID: 3, Name: "Cole Draper", Position: models.PositionSmallForward, Rating: 90},
		{ID: 4, Name: "Dre Walton", Position: models.PositionPowerForward, Rating: 90},
		{ID: 5, Name: "Emil Vargas", Position: models.PositionCenter, Rating: 90},
		{ID: 6, Name: "Finn Mercer", Position: models.PositionPointGuard, Rating: 88},
		{ID: 7, Name: "Gus Tolliver", Position: models.PositionShootingGuard, Rating: 30},
		{ID: 8, Name: "Hank Boyd", Position: models.PositionSmallForward, Rating: 30},
		{ID: 9, Name: "Ivo Radic", Position: models.PositionPowerForward, Rating: 30},
		{ID: 10, Name: "Jay Coble", Position: models.PositionCenter, Rating: 30},
	}
}

var testStarters = []uint{1, 2, 3, 4, 5}

func TestNewLineupManager_Validation(t *testing.T) {
	roster := testRoster()

	_, err := NewLineupManager(roster[:4], nil)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr, "short roster should be a config error")

	_, err = NewLineupManager(roster, []uint{1, 2, 3, 4})
	assert.ErrorAs(t, err, &cfgErr, "starting five must have five players")

	_, err = NewLineupManager(roster, []uint{1, 2, 3, 4, 99})
	assert.ErrorAs(t, err, &cfgErr, "starter must be on the roster")

	_, err = NewLineupManager(roster, []uint{1, 2, 3, 4, 4})
	assert.ErrorAs(t, err, &cfgErr, "duplicate starter should be rejected")

	dup := testRoster()
	dup[9].ID = 1
	_, err = NewLineupManager(dup, nil)
	assert.ErrorAs(t, err, &cfgErr, "duplicate roster id should be rejected")
}

func TestNewLineupManager_DefaultStartingFive(t *testing.T) {
	// Top five by rating: 1-5 at 90. Player 6 at 88 stays on the bench.
	m, err := NewLineupManager(testRoster(), nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, m.ActiveIDs())

	// Rating ties break by lower id.
	tied := testRoster()
	for i := range tied {
		tied[i].Rating = 80
	}
	m, err = NewLineupManager(tied, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, m.ActiveIDs())
}

func TestSubstitute_Preconditions(t *testing.T) {
	m, err := NewLineupManager(testRoster(), testStarters)
	require.NoError(t, err)
	before := m.ActiveIDs()

	err = m.Substitute(6, 7) // 6 is not on the floor
	assert.ErrorIs(t, err, ErrSubstitutionRejected)

	err = m.Substitute(1, 2) // 2 is not on the bench
	assert.ErrorIs(t, err, ErrSubstitutionRejected)

	assert.Equal(t, before, m.ActiveIDs(), "rejected substitution must not mutate the lineup")
	assert.NoError(t, m.Validate())
}

func TestSubstitute_SlotAndPartition(t *testing.T) {
	m, err := NewLineupManager(testRoster(), testStarters)
	require.NoError(t, err)

	require.NoError(t, m.Substitute(3, 8))
	active := m.ActiveIDs()
	assert.Equal(t, uint(8), active[2], "incoming player takes the outgoing player's slot")
	assert.False(t, m.IsActive(3))
	assert.Contains(t, m.BenchIDs(), uint(3))
	assert.NoError(t, m.Validate())
}

func TestStandInRelation_RoundTrip(t *testing.T) {
	m, err := NewLineupManager(testRoster(), testStarters)
	require.NoError(t, err)

	require.NoError(t, m.Substitute(1, 6))
	si, ok := m.StandInFor(1)
	require.True(t, ok)
	assert.Equal(t, uint(6), si)
	s, ok := m.StarterFor(6)
	require.True(t, ok)
	assert.Equal(t, uint(1), s)

	// Starter returns; the lineup is restored and the relation dissolves.
	require.NoError(t, m.Substitute(6, 1))
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, m.ActiveIDs())
	_, ok = m.StandInFor(1)
	assert.False(t, ok)
	_, ok = m.StarterFor(6)
	assert.False(t, ok)
}

func TestStandInRelation_TransfersOnChainedSub(t *testing.T) {
	m, err := NewLineupManager(testRoster(), testStarters)
	require.NoError(t, err)

	require.NoError(t, m.Substitute(1, 6))
	require.NoError(t, m.Substitute(6, 7))

	si, ok := m.StandInFor(1)
	require.True(t, ok)
	assert.Equal(t, uint(7), si, "relation follows the player occupying the starter's deployment")
	_, ok = m.StarterFor(6)
	assert.False(t, ok)
	s, ok := m.StarterFor(7)
	require.True(t, ok)
	assert.Equal(t, uint(1), s)
}

func TestAccessors_ReturnCopies(t *testing.T) {
	m, err := NewLineupManager(testRoster(), testStarters)
	require.NoError(t, err)

	active := m.ActiveIDs()
	active[0] = 999
	assert.Equal(t, uint(1), m.ActiveIDs()[0])

	bench := m.BenchIDs()
	bench[0] = 999
	assert.NotContains(t, m.BenchIDs(), uint(999))

	roster := m.Roster()
	roster[0].Rating = -1
	p, _ := m.Player(1)
	assert.Equal(t, 90, p.Rating)
}
