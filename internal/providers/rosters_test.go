package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/courtsim/internal/models"
)

func TestStaticProvider_Teams(t *testing.T) {
	p := NewStaticRosterProvider()
	teams, err := p.Teams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 4)

	for i := 1; i < len(teams); i++ {
		assert.Less(t, teams[i-1].Key, teams[i].Key, "teams come back sorted by key")
	}
}

func TestStaticProvider_Rosters(t *testing.T) {
	p := NewStaticRosterProvider()
	teams, err := p.Teams(context.Background())
	require.NoError(t, err)

	seen := make(map[uint]bool)
	for _, team := range teams {
		roster, err := p.Roster(context.Background(), team.Key)
		require.NoError(t, err)
		require.Len(t, roster, 10, "every demo team carries a full bench")

		positions := make(map[string]int)
		for _, pl := range roster {
			assert.True(t, models.ValidPosition(pl.Position), "player %d has position %q", pl.ID, pl.Position)
			assert.False(t, seen[pl.ID], "player ids are globally unique")
			seen[pl.ID] = true
			assert.Equal(t, team.Key, pl.TeamKey)
			positions[pl.Position]++
		}
		for _, pos := range []string{models.PositionPointGuard, models.PositionShootingGuard, models.PositionSmallForward, models.PositionPowerForward, models.PositionCenter} {
			assert.Equal(t, 2, positions[pos], "two deep at %s on %s", pos, team.Key)
		}
	}

	_, err = p.Roster(context.Background(), "nonesuch")
	assert.Error(t, err)
}

func TestStaticProvider_RosterIsACopy(t *testing.T) {
	p := NewStaticRosterProvider()
	roster, err := p.Roster(context.Background(), "harbor")
	require.NoError(t, err)

	roster[0].Rating = -1
	again, err := p.Roster(context.Background(), "harbor")
	require.NoError(t, err)
	assert.NotEqual(t, -1, again[0].Rating)
}

func TestHTTPProvider_EmptyBaseURLUsesStatic(t *testing.T) {
	p := NewHTTPRosterProvider("", time.Second, 3, logrus.New())

	roster, err := p.Roster(context.Background(), "harbor")
	require.NoError(t, err)
	assert.Len(t, roster, 10)

	teams, err := p.Teams(context.Background())
	require.NoError(t, err)
	assert.Len(t, teams, 4)
}

func TestHTTPProvider_FetchesRemote(t *testing.T) {
	remote := []models.Player{
		{ID: 501, Name: "Omar Wilkes", Position: models.PositionPointGuard, Rating: 82, TeamKey: "custom"},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/teams/custom/roster", r.URL.Path)
		json.NewEncoder(w).Encode(remote)
	}))
	defer srv.Close()

	p := NewHTTPRosterProvider(srv.URL, time.Second, 3, logrus.New())
	roster, err := p.Roster(context.Background(), "custom")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Omar Wilkes", roster[0].Name)
}

func TestHTTPProvider_FallsBackOnRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	p := NewHTTPRosterProvider(srv.URL, time.Second, 2, logger)

	// Every failed call serves static data, and repeated failures trip the
	// breaker without changing what the caller sees.
	for i := 0; i < 4; i++ {
		roster, err := p.Roster(context.Background(), "harbor")
		require.NoError(t, err)
		assert.Len(t, roster, 10)
	}
}

func TestBuiltinSeedData(t *testing.T) {
	teams := BuiltinTeams()
	players := BuiltinPlayers()
	assert.Len(t, teams, 4)
	assert.Len(t, players, 40)
}
