package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/courtsim/internal/models"
	"github.com/jstittsworth/courtsim/internal/rotation"
)

// Options controls a single simulated match. Everything random derives from
// Seed, so a match replays byte-identically.
type Options struct {
	Seed           int64
	QuarterMinutes float64
	InjuryRate     float64 // per team-possession probability, 0 disables
}

// TeamConfig describes one side: roster, optional explicit starting five,
// and tactics.
type TeamConfig struct {
	Key          string
	Name         string
	Roster       []models.Player
	StartingFive []uint
	Tactics      rotation.Tactics
}

// Update is a live feed item emitted while a match runs.
type Update struct {
	Type    string      `json:"type"` // "substitution", "quarter", "final"
	Payload interface{} `json:"payload"`
}

// QuarterLine is one row of the quarter-by-quarter scoring summary.
type QuarterLine struct {
	Quarter int `json:"quarter"`
	Home    int `json:"home"`
	Away    int `json:"away"`
}

// PlayerLine is one box score row.
type PlayerLine struct {
	PlayerID  uint    `json:"player_id"`
	Name      string  `json:"name"`
	Team      string  `json:"team"`
	Position  string  `json:"position"`
	Minutes   float64 `json:"minutes"`
	Points    int     `json:"points"`
	Fouls     int     `json:"fouls"`
	Starter   bool    `json:"starter"`
	FouledOut bool    `json:"fouled_out"`
}

// TeamResult is one side of a finished match.
type TeamResult struct {
	Key   string       `json:"key"`
	Name  string       `json:"name"`
	Score int          `json:"score"`
	Box   []PlayerLine `json:"box"`
}

// Result is a completed match.
type Result struct {
	Seed        int64                        `json:"seed"`
	Home        TeamResult                   `json:"home"`
	Away        TeamResult                   `json:"away"`
	Quarters    []QuarterLine                `json:"quarters"`
	Events      []rotation.SubstitutionEvent `json:"events"`
	Shorthanded []string                     `json:"shorthanded,omitempty"`
}

type teamState struct {
	cfg        TeamConfig
	lineup     *rotation.LineupManager
	engine     *rotation.Engine
	state      *playerState
	score      int
	points     map[uint]int
	infeasible bool
}

// Match is a single-threaded possession-by-possession simulation. The two
// teams' rotation engines share nothing but the read-only game context.
type Match struct {
	home *teamState
	away *teamState
	opts Options
	rng  *rand.Rand
	log  *logrus.Logger

	possession int
	events     []rotation.SubstitutionEvent
	onUpdate   func(Update)
}

// NewMatch validates both rosters and wires up lineups, minute plans, and
// rotation engines.
func NewMatch(home, away TeamConfig, opts Options) (*Match, error) {
	if opts.QuarterMinutes <= 0 {
		opts.QuarterMinutes = rotation.QuarterMinutes
	}

	h, err := newTeamState(home, opts)
	if err != nil {
		return nil, fmt.Errorf("home team: %w", err)
	}
	a, err := newTeamState(away, opts)
	if err != nil {
		return nil, fmt.Errorf("away team: %w", err)
	}

	return &Match{
		home: h,
		away: a,
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
		log:  logrus.StandardLogger(),
	}, nil
}

func newTeamState(cfg TeamConfig, opts Options) (*teamState, error) {
	if cfg.Tactics.Pace == "" {
		cfg.Tactics.Pace = rotation.PaceStandard
	}
	lineup, err := rotation.NewLineupManager(cfg.Roster, cfg.StartingFive)
	if err != nil {
		return nil, err
	}
	state := newPlayerState(cfg.Roster)
	plan := rotation.PlanMinutes(cfg.Roster, opts.QuarterMinutes)
	engine := rotation.NewEngine(cfg.Key, lineup, plan, state, state, cfg.Tactics)
	return &teamState{
		cfg:    cfg,
		lineup: lineup,
		engine: engine,
		state:  state,
		points: make(map[uint]int),
	}, nil
}

// OnUpdate registers a live feed callback, invoked synchronously from the
// possession loop.
func (m *Match) OnUpdate(fn func(Update)) {
	m.onUpdate = fn
}

func (m *Match) emit(u Update) {
	if m.onUpdate != nil {
		m.onUpdate(u)
	}
}

// Run plays all four quarters and returns the result.
func (m *Match) Run() (*Result, error) {
	quarters := make([]QuarterLine, 0, 4)
	offense, defense := m.home, m.away

	for q := 1; q <= 4; q++ {
		m.home.engine.StartQuarter(q)
		m.away.engine.StartQuarter(q)

		homeBefore, awayBefore := m.home.score, m.away.score
		clock := m.opts.QuarterMinutes * 60

		for clock > 0 {
			m.possession++

			dur := 12 + m.rng.Float64()*10
			if dur > clock {
				dur = clock
			}
			clock -= dur

			m.resolvePossession(offense, defense)

			// Minutes accrue before any substitution decision so quota and
			// shift clocks see the possession that just ended.
			m.home.engine.AccumulateTime(dur)
			m.away.engine.AccumulateTime(dur)

			m.rollFouls(defense, offense, q, clock)
			if m.opts.InjuryRate > 0 {
				m.rollInjury(offense, defense, q, clock)
				m.rollInjury(defense, offense, q, clock)
			}

			m.home.state.advance(m.home.lineup.ActiveIDs(), m.home.lineup.BenchIDs(), dur, m.home.cfg.Tactics, m.rng)
			m.away.state.advance(m.away.lineup.ActiveIDs(), m.away.lineup.BenchIDs(), dur, m.away.cfg.Tactics, m.rng)

			m.checkRotation(m.home, m.away, q, clock)
			m.checkRotation(m.away, m.home, q, clock)

			offense, defense = defense, offense
		}

		quarters = append(quarters, QuarterLine{
			Quarter: q,
			Home:    m.home.score - homeBefore,
			Away:    m.away.score - awayBefore,
		})
		m.emit(Update{Type: "quarter", Payload: quarters[len(quarters)-1]})
	}

	result := &Result{
		Seed:     m.opts.Seed,
		Home:     m.teamResult(m.home),
		Away:     m.teamResult(m.away),
		Quarters: quarters,
		Events:   m.events,
	}
	for _, t := range []*teamState{m.home, m.away} {
		if t.infeasible {
			result.Shorthanded = append(result.Shorthanded, t.cfg.Key)
		}
	}
	m.emit(Update{Type: "final", Payload: result})
	return result, nil
}

// resolvePossession scores zero, two, or three points for the offense based
// on the quality gap between the units on the floor.
func (m *Match) resolvePossession(offense, defense *teamState) {
	off := m.unitQuality(offense)
	def := m.unitQuality(defense)

	scoreProb := 0.38 + (off-def)/250
	if scoreProb < 0.15 {
		scoreProb = 0.15
	}
	if scoreProb > 0.65 {
		scoreProb = 0.65
	}

	if m.rng.Float64() >= scoreProb {
		return
	}
	points := 2
	if m.rng.Float64() < 0.32 {
		points = 3
	}
	offense.score += points

	scorer := m.weightedScorer(offense)
	offense.points[scorer] += points
}

// unitQuality is the stamina-discounted average rating of the five on court.
func (m *Match) unitQuality(t *teamState) float64 {
	total := 0.0
	for _, id := range t.lineup.ActiveIDs() {
		p, _ := t.lineup.Player(id)
		factor := 0.7 + 0.3*t.state.Stamina(id)/100
		total += float64(p.Rating) * factor
	}
	return total / 5
}

// weightedScorer picks who scored, weighted by rating with a bump for the
// designated options.
func (m *Match) weightedScorer(t *teamState) uint {
	ids := t.lineup.ActiveIDs()
	weights := make([]float64, len(ids))
	sum := 0.0
	for i, id := range ids {
		p, _ := t.lineup.Player(id)
		w := float64(p.Rating)
		if t.cfg.Tactics.IsScoringOption(id) {
			w *= 1.5
		}
		weights[i] = w
		sum += w
	}
	roll := m.rng.Float64() * sum
	for i, id := range ids {
		roll -= weights[i]
		if roll <= 0 {
			return id
		}
	}
	return ids[len(ids)-1]
}

// rollFouls gives one random defender a chance of picking up a personal.
// The sixth foul triggers the forced-substitution entry point.
func (m *Match) rollFouls(defense, offense *teamState, quarter int, clock float64) {
	ids := defense.lineup.ActiveIDs()
	offender := ids[m.rng.Intn(len(ids))]
	if m.rng.Float64() >= 0.12 {
		return
	}
	if !defense.state.addFoul(offender) {
		return
	}
	m.forceOut(defense, offense, offender, rotation.ReasonFoulOut, quarter, clock)
}

func (m *Match) rollInjury(t, opp *teamState, quarter int, clock float64) {
	if m.rng.Float64() >= m.opts.InjuryRate {
		return
	}
	ids := t.lineup.ActiveIDs()
	victim := ids[m.rng.Intn(len(ids))]
	t.state.injured[victim] = true
	m.forceOut(t, opp, victim, rotation.ReasonInjury, quarter, clock)
}

func (m *Match) forceOut(t, opp *teamState, id uint, reason rotation.Reason, quarter int, clock float64) {
	ctx := rotation.GameContext{
		Possession:   m.possession,
		Quarter:      quarter,
		Clock:        clock,
		ScoreFor:     t.score,
		ScoreAgainst: opp.score,
	}
	ev, err := t.engine.ForceSubstitution(id, reason, ctx)
	if err != nil {
		// Empty bench. The team plays on shorthanded.
		m.log.WithFields(logrus.Fields{
			"team":   t.cfg.Key,
			"player": id,
			"reason": reason,
		}).Warnf("forced substitution failed: %v", err)
		t.infeasible = true
		return
	}
	m.recordEvents(*ev)
}

func (m *Match) checkRotation(t, opp *teamState, quarter int, clock float64) {
	ctx := rotation.GameContext{
		Possession:   m.possession,
		Quarter:      quarter,
		Clock:        clock,
		ScoreFor:     t.score,
		ScoreAgainst: opp.score,
	}
	events, err := t.engine.CheckRotation(ctx)
	if err != nil {
		if !t.infeasible {
			m.log.WithField("team", t.cfg.Key).Warnf("rotation halted: %v", err)
			t.infeasible = true
		}
		return
	}
	m.recordEvents(events...)
}

func (m *Match) recordEvents(events ...rotation.SubstitutionEvent) {
	for _, ev := range events {
		m.events = append(m.events, ev)
		m.emit(Update{Type: "substitution", Payload: ev})
	}
}

func (m *Match) teamResult(t *teamState) TeamResult {
	book := t.engine.Book()
	box := make([]PlayerLine, 0, len(t.cfg.Roster))
	for _, p := range t.lineup.Roster() {
		box = append(box, PlayerLine{
			PlayerID:  p.ID,
			Name:      p.Name,
			Team:      t.cfg.Key,
			Position:  p.Position,
			Minutes:   book.TotalPlayed(p.ID),
			Points:    t.points[p.ID],
			Fouls:     t.state.PersonalFouls(p.ID),
			Starter:   t.lineup.IsStarter(p.ID),
			FouledOut: t.state.FouledOut(p.ID),
		})
	}
	return TeamResult{
		Key:   t.cfg.Key,
		Name:  t.cfg.Name,
		Score: t.score,
		Box:   box,
	}
}
