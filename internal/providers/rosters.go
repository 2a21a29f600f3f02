package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/jstittsworth/courtsim/internal/models"
)

// RosterProvider supplies team rosters for simulation.
type RosterProvider interface {
	Teams(ctx context.Context) ([]models.Team, error)
	Roster(ctx context.Context, teamKey string) ([]models.Player, error)
}

// HTTPRosterProvider fetches rosters from a remote API behind a circuit
// breaker, falling back to the built-in static rosters when the remote is
// unconfigured or unhealthy.
type HTTPRosterProvider struct {
	baseURL  string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	fallback *StaticRosterProvider
	logger   *logrus.Logger
}

func NewHTTPRosterProvider(baseURL string, timeout time.Duration, failureThreshold int, logger *logrus.Logger) *HTTPRosterProvider {
	settings := gobreaker.Settings{
		Name:    "roster-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("circuit breaker %s: %s -> %s", name, from, to)
		},
	}
	return &HTTPRosterProvider{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		breaker:  gobreaker.NewCircuitBreaker(settings),
		fallback: NewStaticRosterProvider(),
		logger:   logger,
	}
}

func (p *HTTPRosterProvider) Teams(ctx context.Context) ([]models.Team, error) {
	if p.baseURL == "" {
		return p.fallback.Teams(ctx)
	}
	var teams []models.Team
	if err := p.fetch(ctx, "/teams", &teams); err != nil {
		p.logger.Warnf("roster API teams fetch failed, using static rosters: %v", err)
		return p.fallback.Teams(ctx)
	}
	return teams, nil
}

func (p *HTTPRosterProvider) Roster(ctx context.Context, teamKey string) ([]models.Player, error) {
	if p.baseURL == "" {
		return p.fallback.Roster(ctx, teamKey)
	}
	var roster []models.Player
	if err := p.fetch(ctx, "/teams/"+teamKey+"/roster", &roster); err != nil {
		p.logger.Warnf("roster API fetch for %s failed, using static rosters: %v", teamKey, err)
		return p.fallback.Roster(ctx, teamKey)
	}
	return roster, nil
}

func (p *HTTPRosterProvider) fetch(ctx context.Context, path string, dest interface{}) error {
	_, err := p.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("roster API returned status %d", resp.StatusCode)
		}
		return nil, json.NewDecoder(resp.Body).Decode(dest)
	})
	return err
}

// StaticRosterProvider serves the built-in demo league.
type StaticRosterProvider struct{}

func NewStaticRosterProvider() *StaticRosterProvider {
	return &StaticRosterProvider{}
}

func (p *StaticRosterProvider) Teams(_ context.Context) ([]models.Team, error) {
	teams := make([]models.Team, 0, len(staticTeams))
	for _, t := range staticTeams {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Key < teams[j].Key })
	return teams, nil
}

func (p *StaticRosterProvider) Roster(_ context.Context, teamKey string) ([]models.Player, error) {
	roster, ok := staticRosters[teamKey]
	if !ok {
		return nil, fmt.Errorf("unknown team %q", teamKey)
	}
	out := make([]models.Player, len(roster))
	copy(out, roster)
	return out, nil
}
