package rotation

import "fmt"

// Reason is the closed set of causes for a lineup change. It is control data:
// tests and callers branch on it, and Describe renders the human-readable
// text separately.
type Reason string

const (
	ReasonStaminaLow       Reason = "stamina_low"
	ReasonMinutesQuota     Reason = "minutes_quota"
	ReasonStarterReturn    Reason = "starter_return"
	ReasonBlowoutRest      Reason = "blowout_rest"
	ReasonComebackReturn   Reason = "comeback_return"
	ReasonCloserPreference Reason = "closer_preference"
	ReasonClosingFatigue   Reason = "closing_fatigue"
	ReasonClosingInsert    Reason = "closing_insert"
	ReasonFoulOut          Reason = "foul_out"
	ReasonInjury           Reason = "injury"
)

// SubstitutionEvent is the immutable record of one lineup change. Every
// successful substitution produces exactly one.
type SubstitutionEvent struct {
	Possession int     `json:"possession"`
	Quarter    int     `json:"quarter"`
	Clock      float64 `json:"clock"` // seconds remaining in the quarter
	Team       string  `json:"team"`
	PlayerOut  uint    `json:"player_out"`
	PlayerIn   uint    `json:"player_in"`
	OutName    string  `json:"out_name"`
	InName     string  `json:"in_name"`
	Reason     Reason  `json:"reason"`
	StaminaOut float64 `json:"stamina_out"`
	StaminaIn  float64 `json:"stamina_in"`
}

// ClockString renders seconds remaining as a game clock reading, e.g. "6:32".
func ClockString(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

var reasonText = map[Reason]string{
	ReasonStaminaLow:       "comes out for a breather",
	ReasonMinutesQuota:     "has hit his minutes for the quarter",
	ReasonStarterReturn:    "checks back in for",
	ReasonBlowoutRest:      "gets the rest of the night off",
	ReasonComebackReturn:   "hurries back in as the lead shrinks",
	ReasonCloserPreference: "comes in to close it out",
	ReasonClosingFatigue:   "comes out to be ready for the finish",
	ReasonClosingInsert:    "checks in for the closing stretch",
	ReasonFoulOut:          "has fouled out",
	ReasonInjury:           "leaves with an injury",
}

// Describe renders commentary text for the event. Control flow should branch
// on Reason, never on this string.
func (e SubstitutionEvent) Describe() string {
	switch e.Reason {
	case ReasonStarterReturn:
		return fmt.Sprintf("[%s Q%d] %s checks back in for %s", ClockString(e.Clock), e.Quarter, e.InName, e.OutName)
	case ReasonFoulOut, ReasonInjury:
		return fmt.Sprintf("[%s Q%d] %s %s, %s takes his place", ClockString(e.Clock), e.Quarter, e.OutName, reasonText[e.Reason], e.InName)
	default:
		return fmt.Sprintf("[%s Q%d] %s %s, replaced by %s", ClockString(e.Clock), e.Quarter, e.OutName, reasonText[e.Reason], e.InName)
	}
}

// EventLog is an append-only record of substitution events for one team.
type EventLog struct {
	events []SubstitutionEvent
}

func NewEventLog() *EventLog {
	return &EventLog{}
}

func (l *EventLog) Append(e SubstitutionEvent) {
	l.events = append(l.events, e)
}

// Events returns a copy of the log in append order.
func (l *EventLog) Events() []SubstitutionEvent {
	out := make([]SubstitutionEvent, len(l.events))
	copy(out, l.events)
	return out
}

func (l *EventLog) Len() int {
	return len(l.events)
}
