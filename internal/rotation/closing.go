package rotation

// PlanKind tags how a starter's final quarter is expected to unfold.
type PlanKind int

const (
	// PlanStayIn means the starter can play the whole quarter.
	PlanStayIn PlanKind = iota
	// PlanWillFatigue means the starter must come off at Mark to last.
	PlanWillFatigue
	// PlanInsertAt means the benched starter enters when the clock reaches
	// Mark.
	PlanInsertAt
)

// RotationPlan is a one-shot projection for a single starter, computed at the
// start of the fourth quarter and read-only afterward. Mark is a game clock
// reading in minutes remaining.
type RotationPlan struct {
	PlayerID uint
	Kind     PlanKind
	Mark     float64
	Playable float64

	done bool
}

// Per-minute stamina drain by pace, with a surcharge for primary scoring
// options who carry a heavier possession load.
var paceDrain = map[Pace]float64{
	PaceSlow:     1.8,
	PaceStandard: 2.2,
	PaceFast:     2.6,
}

const scoringOptionDrain = 0.6

// insertBufferSeconds nudges planned insertions slightly ahead of their
// computed mark so a starter is never a possession late.
const insertBufferSeconds = 15.0

// PlayableMinutes estimates how long a player can stay on the floor before
// dropping to the ordinary rest threshold, given current stamina and tempo.
func PlayableMinutes(stamina float64, pace Pace, scoringOption bool) float64 {
	drain, ok := paceDrain[pace]
	if !ok {
		drain = paceDrain[PaceStandard]
	}
	if scoringOption {
		drain += scoringOptionDrain
	}
	playable := (stamina - staminaSubThreshold) / drain
	if playable < 0 {
		return 0
	}
	return playable
}

// PlanClosing projects the final quarter for every member of the starting
// five. Starters on the floor either stay in or get a computed sub-out mark;
// benched starters get an insertion mark that lets them just finish the
// quarter.
func PlanClosing(lineup *LineupManager, stamina StaminaSource, tactics Tactics, quarterMinutes float64) map[uint]*RotationPlan {
	plans := make(map[uint]*RotationPlan, 5)

	for _, id := range lineup.StarterOrder() {
		p, ok := lineup.Player(id)
		if !ok {
			continue
		}
		playable := PlayableMinutes(stamina.Stamina(p.ID), tactics.Pace, tactics.IsScoringOption(p.ID))
		plan := &RotationPlan{PlayerID: p.ID, Playable: playable}

		if lineup.IsActive(p.ID) {
			if playable >= quarterMinutes {
				plan.Kind = PlanStayIn
			} else {
				plan.Kind = PlanWillFatigue
				plan.Mark = quarterMinutes - playable
			}
		} else {
			plan.Kind = PlanInsertAt
			if playable >= quarterMinutes {
				plan.Mark = quarterMinutes
			} else {
				plan.Mark = playable
			}
		}
		plans[p.ID] = plan
	}

	return plans
}
