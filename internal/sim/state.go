package sim

import (
	"math/rand"

	"github.com/jstittsworth/courtsim/internal/models"
	"github.com/jstittsworth/courtsim/internal/rotation"
)

// playerState owns the per-match mutable facts the rotation engine reads:
// stamina, personal fouls, injuries. It implements rotation.StaminaSource and
// rotation.DisciplineSource.
type playerState struct {
	stamina map[uint]float64
	fouls   map[uint]int
	injured map[uint]bool
}

func newPlayerState(roster []models.Player) *playerState {
	s := &playerState{
		stamina: make(map[uint]float64, len(roster)),
		fouls:   make(map[uint]int, len(roster)),
		injured: make(map[uint]bool, len(roster)),
	}
	for _, p := range roster {
		s.stamina[p.ID] = 100
	}
	return s
}

func (s *playerState) Stamina(id uint) float64 {
	return s.stamina[id]
}

func (s *playerState) PersonalFouls(id uint) int {
	return s.fouls[id]
}

func (s *playerState) FouledOut(id uint) bool {
	return s.fouls[id] >= 6
}

func (s *playerState) Injured(id uint) bool {
	return s.injured[id]
}

// addFoul increments the count and reports whether this foul is the sixth.
// Counts only ever go up.
func (s *playerState) addFoul(id uint) bool {
	s.fouls[id]++
	return s.fouls[id] == 6
}

// Per-minute stamina movement. On-court drain scales with pace and carries a
// surcharge for primary scoring options; bench players recover.
var courtDrainPerMinute = map[rotation.Pace]float64{
	rotation.PaceSlow:     1.8,
	rotation.PaceStandard: 2.2,
	rotation.PaceFast:     2.6,
}

const (
	scoringOptionDrainPerMinute = 0.6
	benchRecoveryPerMinute      = 2.4
	drainJitter                 = 0.15
)

// advance applies drain to on-court players and recovery to the bench for
// one possession. Jitter comes from the match rng, keeping the whole
// trajectory a pure function of the seed.
func (s *playerState) advance(active, bench []uint, seconds float64, tactics rotation.Tactics, rng *rand.Rand) {
	minutes := seconds / 60
	base := courtDrainPerMinute[tactics.Pace]
	if base == 0 {
		base = courtDrainPerMinute[rotation.PaceStandard]
	}

	for _, id := range active {
		drain := base
		if tactics.IsScoringOption(id) {
			drain += scoringOptionDrainPerMinute
		}
		drain *= 1 + drainJitter*(rng.Float64()*2-1)
		s.stamina[id] = clampStamina(s.stamina[id] - drain*minutes)
	}
	for _, id := range bench {
		s.stamina[id] = clampStamina(s.stamina[id] + benchRecoveryPerMinute*minutes)
	}
}

func clampStamina(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
