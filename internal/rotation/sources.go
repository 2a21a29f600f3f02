package rotation

// StaminaSource exposes current stamina by player. Stamina is a 0-100
// resource owned by the possession-cost model; the rotation engine only
// reads it.
type StaminaSource interface {
	Stamina(playerID uint) float64
}

// DisciplineSource exposes foul and injury state by player. Foul counts are
// non-decreasing and a player fouls out exactly once, at six.
type DisciplineSource interface {
	PersonalFouls(playerID uint) int
	FouledOut(playerID uint) bool
	Injured(playerID uint) bool
}

// Pace is the team's tactical tempo; it drives stamina drain estimation.
type Pace string

const (
	PaceFast     Pace = "fast"
	PaceStandard Pace = "standard"
	PaceSlow     Pace = "slow"
)

// Tactics is the read-only tactical configuration for one team: tempo, the
// designated primary scoring options, and the players trusted to close tight
// games.
type Tactics struct {
	Pace           Pace
	ScoringOptions []uint
	Closers        []uint
}

func (t Tactics) IsScoringOption(id uint) bool {
	for _, o := range t.ScoringOptions {
		if o == id {
			return true
		}
	}
	return false
}

func (t Tactics) IsCloser(id uint) bool {
	for _, c := range t.Closers {
		if c == id {
			return true
		}
	}
	return false
}

// GameContext is the shared game state a rotation check runs against, from
// the perspective of the team being checked.
type GameContext struct {
	Possession   int
	Quarter      int
	Clock        float64 // seconds remaining in the quarter
	ScoreFor     int
	ScoreAgainst int
}

// Margin is positive when the team is leading.
func (g GameContext) Margin() int {
	return g.ScoreFor - g.ScoreAgainst
}
