package rotation

import "fmt"

const (
	staminaSubThreshold    = 70.0
	staminaCrunchThreshold = 50.0
	staminaFreshThreshold  = 90.0

	quotaToleranceMinutes = 0.1
	standInMinimumMinutes = 6.0

	crunchClockSeconds = 120.0
	crunchMargin       = 5

	comebackSwing = 10
	foulTrouble   = 5
)

// blowoutBand is a time/margin pair at which a leading team starts resting
// starters. A garbage band shuts the five down completely: benched starters
// stay out too, and nobody returns short of a comeback.
type blowoutBand struct {
	clock   float64 // seconds remaining in Q4, at or under
	margin  int     // lead, at or over
	garbage bool
}

// Ordered most extreme first; the first matching band wins.
var blowoutBands = []blowoutBand{
	{clock: 120, margin: 30, garbage: true},
	{clock: 120, margin: 15},
	{clock: 240, margin: 18},
	{clock: 360, margin: 20},
}

// rotationRule is one guarded step of the decision chain. Rules run in
// declaration order and the first one that produces events ends the check,
// so precedence is explicit rather than buried in control flow.
type rotationRule struct {
	name     string
	applies  func(ctx GameContext) bool
	evaluate func(ctx GameContext) []SubstitutionEvent
}

// Engine is the per-possession rotation evaluator for one team. It is
// single-threaded and fully deterministic: identical roster, stamina
// trajectory, and game-context sequence produce an identical event log.
type Engine struct {
	team       string
	lineup     *LineupManager
	plan       *MinutesPlan
	book       *MinutesBook
	stamina    StaminaSource
	discipline DisciplineSource
	tactics    Tactics
	log        *EventLog

	rules []rotationRule

	quarterMinutes float64

	// Q4 closing plans, computed once when the final quarter starts.
	closing map[uint]*RotationPlan

	// Starters benched by the blowout rule, and the margin/band that put
	// them there. Re-evaluated continuously for a comeback.
	rested     map[uint]bool
	restMargin int
	restBand   int
}

// NewEngine wires a rotation engine over a team's lineup, minute plan, and
// the external stamina/discipline sources.
func NewEngine(team string, lineup *LineupManager, plan *MinutesPlan, stamina StaminaSource, discipline DisciplineSource, tactics Tactics) *Engine {
	e := &Engine{
		team:           team,
		lineup:         lineup,
		plan:           plan,
		book:           NewMinutesBook(),
		stamina:        stamina,
		discipline:     discipline,
		tactics:        tactics,
		log:            NewEventLog(),
		quarterMinutes: QuarterMinutes,
		rested:         make(map[uint]bool),
	}
	e.rules = []rotationRule{
		{name: "stamina", evaluate: e.ruleStamina},
		{name: "minutes_quota", evaluate: e.ruleQuota},
		{name: "starter_return", evaluate: e.ruleStarterReturn},
		{name: "blowout_rest", applies: e.blowoutApplies, evaluate: e.ruleBlowoutRest},
		{name: "comeback", applies: e.comebackApplies, evaluate: e.ruleComeback},
		{name: "closer", applies: e.closerApplies, evaluate: e.ruleCloser},
	}
	return e
}

// Lineup exposes the managed lineup.
func (e *Engine) Lineup() *LineupManager {
	return e.lineup
}

// Plan exposes the minute targets.
func (e *Engine) Plan() *MinutesPlan {
	return e.plan
}

// Book exposes the minutes actually played.
func (e *Engine) Book() *MinutesBook {
	return e.book
}

// Events returns the team's substitution log so far.
func (e *Engine) Events() []SubstitutionEvent {
	return e.log.Events()
}

// AccumulateTime credits elapsed play to everyone on the floor. The caller
// invokes this once per possession, before the rotation check.
func (e *Engine) AccumulateTime(seconds float64) {
	e.book.Accumulate(e.lineup.ActiveIDs(), seconds)
}

// StartQuarter resets per-quarter minute counters and, entering the fourth,
// computes the one-shot closing plans.
func (e *Engine) StartQuarter(quarter int) {
	e.book.StartQuarter()
	if quarter == 4 {
		e.closing = PlanClosing(e.lineup, e.stamina, e.tactics, e.quarterMinutes)
	}
}

// CheckRotation runs the rule chain once. It returns the substitutions made,
// in execution order, or ErrRosterInfeasible when the team can no longer
// field five eligible players.
func (e *Engine) CheckRotation(ctx GameContext) ([]SubstitutionEvent, error) {
	if e.eligibleCount() < 5 {
		return nil, fmt.Errorf("%w: team %s", ErrRosterInfeasible, e.team)
	}

	var events []SubstitutionEvent
	if ctx.Quarter == 4 && len(e.closing) > 0 {
		events = append(events, e.executeClosingPlans(ctx)...)
	}

	for _, rule := range e.rules {
		if rule.applies != nil && !rule.applies(ctx) {
			continue
		}
		fired := rule.evaluate(ctx)
		if len(fired) > 0 {
			events = append(events, fired...)
			break
		}
	}
	return events, nil
}

// ForceSubstitution removes a player who cannot continue (foul-out, injury).
// It bypasses the rule chain, redistributes the player's remaining minute
// targets across the roster first, and always succeeds while the bench is
// non-empty. With an empty bench it returns ErrRosterExhausted and mutates
// nothing.
func (e *Engine) ForceSubstitution(playerOut uint, reason Reason, ctx GameContext) (*SubstitutionEvent, error) {
	p, ok := e.lineup.Player(playerOut)
	if !ok || !e.lineup.IsActive(playerOut) {
		return nil, fmt.Errorf("%w: player %d is not on the floor", ErrSubstitutionRejected, playerOut)
	}
	if len(e.lineup.BenchIDs()) == 0 {
		return nil, fmt.Errorf("%w: no bench player available to replace %s", ErrRosterExhausted, p.Name)
	}

	in, ok := e.pickReplacement(p)
	if !ok {
		// Nobody eligible, but the bench is non-empty: a forced removal
		// cannot wait, so take the best body available regardless.
		in = e.anyBenchPlayer()
	}

	roster := e.lineup.Roster()
	gameLeft := e.plan.GameTarget(playerOut) - e.book.TotalPlayed(playerOut)
	quarterLeft := e.plan.QuarterTarget(playerOut) - e.book.QuarterPlayed(playerOut)
	e.plan.Redistribute(playerOut, gameLeft, roster)
	e.plan.RedistributeQuarter(playerOut, quarterLeft, roster)

	ev, err := e.executeSub(playerOut, in, reason, ctx)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (e *Engine) anyBenchPlayer() uint {
	best := uint(0)
	bestStamina := -1.0
	for _, id := range e.lineup.BenchIDs() {
		st := e.stamina.Stamina(id)
		if st > bestStamina || (st == bestStamina && id < best) {
			best, bestStamina = id, st
		}
	}
	return best
}

// executeSub performs the swap, resets both shift clocks, and records the
// event. All lineup changes inside the engine flow through here.
func (e *Engine) executeSub(out, in uint, reason Reason, ctx GameContext) (SubstitutionEvent, error) {
	pOut, _ := e.lineup.Player(out)
	pIn, _ := e.lineup.Player(in)

	if err := e.lineup.Substitute(out, in); err != nil {
		return SubstitutionEvent{}, err
	}
	e.book.ResetShift(out, in)

	// A starter re-entering by any path is no longer resting.
	delete(e.rested, in)

	ev := SubstitutionEvent{
		Possession: ctx.Possession,
		Quarter:    ctx.Quarter,
		Clock:      ctx.Clock,
		Team:       e.team,
		PlayerOut:  out,
		PlayerIn:   in,
		OutName:    pOut.Name,
		InName:     pIn.Name,
		Reason:     reason,
		StaminaOut: e.stamina.Stamina(out),
		StaminaIn:  e.stamina.Stamina(in),
	}
	e.log.Append(ev)
	return ev, nil
}

func (e *Engine) eligible(id uint) bool {
	return !e.discipline.FouledOut(id) && !e.discipline.Injured(id)
}

func (e *Engine) eligibleCount() int {
	n := 0
	for _, p := range e.lineup.Roster() {
		if e.eligible(p.ID) {
			n++
		}
	}
	return n
}

func (e *Engine) inCrunch(ctx GameContext) bool {
	margin := ctx.Margin()
	if margin < 0 {
		margin = -margin
	}
	return ctx.Quarter == 4 && ctx.Clock <= crunchClockSeconds && margin <= crunchMargin
}

func (e *Engine) matchBand(ctx GameContext) *blowoutBand {
	if ctx.Quarter != 4 || ctx.Margin() <= 0 {
		return nil
	}
	for i := range blowoutBands {
		b := blowoutBands[i]
		if ctx.Clock <= b.clock && ctx.Margin() >= b.margin {
			return &b
		}
	}
	return nil
}

// planned reports whether a Q4 closing plan currently overrides the ordinary
// rules for this player.
func (e *Engine) planned(ctx GameContext, id uint) bool {
	if ctx.Quarter != 4 {
		return false
	}
	_, ok := e.closing[id]
	return ok
}

// --- rule chain ---

// ruleStamina substitutes any on-court player below the stamina threshold.
// The threshold relaxes in crunch time so stars can finish a tight game, and
// the rule stands down entirely while a blowout band covers the leading team.
func (e *Engine) ruleStamina(ctx GameContext) []SubstitutionEvent {
	if e.matchBand(ctx) != nil {
		return nil
	}
	threshold := staminaSubThreshold
	crunch := e.inCrunch(ctx)
	if crunch {
		threshold = staminaCrunchThreshold
	}

	var events []SubstitutionEvent
	for _, id := range e.lineup.ActiveIDs() {
		if e.planned(ctx, id) {
			continue
		}
		if crunch && e.tactics.IsCloser(id) {
			continue
		}
		if e.stamina.Stamina(id) >= threshold {
			continue
		}
		p, _ := e.lineup.Player(id)
		in, ok := e.pickReplacement(p)
		if !ok {
			continue
		}
		if ev, err := e.executeSub(id, in, ReasonStaminaLow, ctx); err == nil {
			events = append(events, ev)
		}
	}
	return events
}

// ruleQuota benches a player who has reached their per-quarter minute target.
func (e *Engine) ruleQuota(ctx GameContext) []SubstitutionEvent {
	var events []SubstitutionEvent
	for _, id := range e.lineup.ActiveIDs() {
		if e.planned(ctx, id) {
			continue
		}
		if e.inCrunch(ctx) && e.tactics.IsCloser(id) {
			continue
		}
		target := e.plan.QuarterTarget(id)
		if target <= 0 || e.book.QuarterPlayed(id) < target-quotaToleranceMinutes {
			continue
		}
		p, _ := e.lineup.Player(id)
		in, ok := e.pickReplacement(p)
		if !ok {
			continue
		}
		if ev, err := e.executeSub(id, in, ReasonMinutesQuota, ctx); err == nil {
			events = append(events, ev)
		}
	}
	return events
}

// ruleStarterReturn brings a recovered starter back for their tracked
// stand-in, but only after the stand-in has logged a minimum continuous
// shift, which keeps the rotation from thrashing.
func (e *Engine) ruleStarterReturn(ctx GameContext) []SubstitutionEvent {
	if b := e.matchBand(ctx); b != nil && b.garbage {
		return nil
	}
	var events []SubstitutionEvent
	for _, s := range e.lineup.StarterOrder() {
		if e.lineup.IsActive(s) || e.rested[s] || e.planned(ctx, s) {
			continue
		}
		if !e.eligible(s) || e.stamina.Stamina(s) < staminaFreshThreshold {
			continue
		}
		si, ok := e.lineup.StandInFor(s)
		if !ok || !e.lineup.IsActive(si) {
			continue
		}
		if e.book.Continuous(si) < standInMinimumMinutes {
			continue
		}
		if ev, err := e.executeSub(si, s, ReasonStarterReturn, ctx); err == nil {
			events = append(events, ev)
		}
	}
	return events
}

func (e *Engine) blowoutApplies(ctx GameContext) bool {
	return e.matchBand(ctx) != nil
}

// ruleBlowoutRest pulls starters once the lead is decided. The margin and
// band that triggered the rest are kept so the comeback rule can undo it.
func (e *Engine) ruleBlowoutRest(ctx GameContext) []SubstitutionEvent {
	band := e.matchBand(ctx)
	if band == nil {
		return nil
	}

	var events []SubstitutionEvent
	for _, id := range e.lineup.ActiveIDs() {
		if !e.lineup.IsStarter(id) {
			continue
		}
		p, _ := e.lineup.Player(id)
		in, ok := e.pickReplacement(p)
		if !ok {
			continue
		}
		ev, err := e.executeSub(id, in, ReasonBlowoutRest, ctx)
		if err != nil {
			continue
		}
		e.rested[id] = true
		events = append(events, ev)
	}
	if band.garbage {
		for _, s := range e.lineup.StarterOrder() {
			if !e.lineup.IsActive(s) {
				e.rested[s] = true
			}
		}
	}
	if len(e.rested) > 0 && e.restMargin == 0 {
		e.restMargin = ctx.Margin()
		e.restBand = band.margin
	}
	return events
}

func (e *Engine) comebackApplies(ctx GameContext) bool {
	return len(e.rested) > 0 && ctx.Quarter == 4 && ctx.Clock > 0
}

// ruleComeback reverses blowout rest when the lead stops being safe: the
// margin shrank by a full comeback swing, or fell below the band that
// justified the rest. Rested starters come back for their tracked stand-ins.
func (e *Engine) ruleComeback(ctx GameContext) []SubstitutionEvent {
	margin := ctx.Margin()
	if e.restMargin-margin < comebackSwing && margin >= e.restBand {
		return nil
	}

	var events []SubstitutionEvent
	for _, s := range e.lineup.StarterOrder() {
		if !e.rested[s] || e.lineup.IsActive(s) || !e.eligible(s) {
			continue
		}
		out, ok := e.lineup.StandInFor(s)
		if !ok || !e.lineup.IsActive(out) {
			out, ok = e.pickDowngrade(false)
			if !ok {
				continue
			}
		}
		ev, err := e.executeSub(out, s, ReasonComebackReturn, ctx)
		if err != nil {
			continue
		}
		delete(e.rested, s)
		events = append(events, ev)
	}
	if len(e.rested) == 0 {
		e.restMargin = 0
		e.restBand = 0
	}
	return events
}

func (e *Engine) closerApplies(ctx GameContext) bool {
	return e.inCrunch(ctx) && len(e.tactics.Closers) > 0
}

// ruleCloser gets the designated closers on the floor for the final possession
// window of a one-possession game. Closers already on the floor are protected
// from the stamina and quota rules by guards in those rules.
func (e *Engine) ruleCloser(ctx GameContext) []SubstitutionEvent {
	var events []SubstitutionEvent
	for _, c := range e.tactics.Closers {
		if e.lineup.IsActive(c) || !e.eligible(c) {
			continue
		}
		if _, onRoster := e.lineup.Player(c); !onRoster {
			continue
		}
		var out uint
		if si, ok := e.lineup.StandInFor(c); ok && e.lineup.IsActive(si) {
			out = si
		} else if dg, ok := e.pickDowngrade(true); ok {
			out = dg
		} else {
			continue
		}
		if ev, err := e.executeSub(out, c, ReasonCloserPreference, ctx); err == nil {
			events = append(events, ev)
		}
	}
	return events
}

// executeClosingPlans applies the Q4 projections: planned fatigue subs come
// off at their mark, planned insertions go in slightly ahead of theirs.
// Eligibility always wins over a plan: a starter in foul trouble (five
// personal fouls), fouled out, or injured is never force-inserted.
func (e *Engine) executeClosingPlans(ctx GameContext) []SubstitutionEvent {
	var events []SubstitutionEvent
	for _, s := range e.lineup.StarterOrder() {
		plan, ok := e.closing[s]
		if !ok || plan.done {
			continue
		}
		switch plan.Kind {
		case PlanStayIn:
			plan.done = true

		case PlanWillFatigue:
			if !e.lineup.IsActive(s) {
				plan.done = true
				continue
			}
			if ctx.Clock > plan.Mark*60 {
				continue
			}
			p, _ := e.lineup.Player(s)
			in, found := e.pickReplacement(p)
			if !found {
				continue
			}
			if ev, err := e.executeSub(s, in, ReasonClosingFatigue, ctx); err == nil {
				plan.done = true
				events = append(events, ev)
			}

		case PlanInsertAt:
			if e.lineup.IsActive(s) {
				plan.done = true
				continue
			}
			if ctx.Clock > plan.Mark*60+insertBufferSeconds {
				continue
			}
			if !e.eligible(s) || e.discipline.PersonalFouls(s) >= foulTrouble {
				continue
			}
			var out uint
			if si, siOK := e.lineup.StandInFor(s); siOK && e.lineup.IsActive(si) {
				out = si
			} else if dg, dgOK := e.pickDowngrade(false); dgOK {
				out = dg
			} else {
				continue
			}
			if ev, err := e.executeSub(out, s, ReasonClosingInsert, ctx); err == nil {
				plan.done = true
				events = append(events, ev)
			}
		}
	}
	return events
}
