package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayableMinutes(t *testing.T) {
	assert.InDelta(t, 30.0/2.2, PlayableMinutes(100, PaceStandard, false), 1e-9)
	assert.InDelta(t, 30.0/1.8, PlayableMinutes(100, PaceSlow, false), 1e-9)
	assert.InDelta(t, 30.0/2.6, PlayableMinutes(100, PaceFast, false), 1e-9)
	assert.InDelta(t, 30.0/2.8, PlayableMinutes(100, PaceStandard, true), 1e-9, "scoring options burn faster")
	assert.Zero(t, PlayableMinutes(65, PaceStandard, false), "already under the rest threshold")
	assert.InDelta(t, 30.0/2.2, PlayableMinutes(100, Pace("bogus"), false), 1e-9, "unknown pace falls back to standard")
}

func TestPlanClosing_Kinds(t *testing.T) {
	lineup, err := NewLineupManager(testRoster(), testStarters)
	require.NoError(t, err)
	state := newStubState(testRoster())

	state.stamina[2] = 80 // on the floor, will not last the quarter
	state.stamina[3] = 92 // on the bench, times an insertion
	require.NoError(t, lineup.Substitute(3, 8))

	plans := PlanClosing(lineup, state, Tactics{Pace: PaceStandard}, QuarterMinutes)
	require.Len(t, plans, 5)

	assert.Equal(t, PlanStayIn, plans[1].Kind)
	assert.Equal(t, PlanStayIn, plans[4].Kind)
	assert.Equal(t, PlanStayIn, plans[5].Kind)

	fatigue := plans[2]
	assert.Equal(t, PlanWillFatigue, fatigue.Kind)
	assert.InDelta(t, 10.0/2.2, fatigue.Playable, 1e-9)
	assert.InDelta(t, 12-10.0/2.2, fatigue.Mark, 1e-9, "come off early enough to be ready for the finish")

	insert := plans[3]
	assert.Equal(t, PlanInsertAt, insert.Kind)
	assert.InDelta(t, 22.0/2.2, insert.Mark, 1e-9, "enter exactly early enough to finish the quarter")
}

func TestPlanClosing_FreshBenchedStarterMarksFullQuarter(t *testing.T) {
	lineup, err := NewLineupManager(testRoster(), testStarters)
	require.NoError(t, err)
	state := newStubState(testRoster())
	require.NoError(t, lineup.Substitute(3, 8))

	plans := PlanClosing(lineup, state, Tactics{Pace: PaceStandard}, QuarterMinutes)
	assert.Equal(t, PlanInsertAt, plans[3].Kind)
	assert.InDelta(t, QuarterMinutes, plans[3].Mark, 1e-9)
}

func TestPlanClosing_ScoringOptionDrain(t *testing.T) {
	lineup, err := NewLineupManager(testRoster(), testStarters)
	require.NoError(t, err)
	state := newStubState(testRoster())
	state.stamina[2] = 80

	plans := PlanClosing(lineup, state, Tactics{Pace: PaceStandard, ScoringOptions: []uint{2}}, QuarterMinutes)
	assert.InDelta(t, 12-10.0/2.8, plans[2].Mark, 1e-9)
}

func TestClosingFatigue_FiresAtMark(t *testing.T) {
	e, state := newTestEngine(t, Tactics{Pace: PaceStandard})
	state.stamina[2] = 80 // playable ~4.5 min, mark ~7:27
	e.StartQuarter(4)

	events, err := e.CheckRotation(GameContext{Quarter: 4, Clock: 600, ScoreFor: 70, ScoreAgainst: 70})
	require.NoError(t, err)
	assert.Empty(t, events, "ahead of the mark the starter plays on, and the stamina rule defers to the plan")

	events, err = e.CheckRotation(GameContext{Quarter: 4, Clock: 440, ScoreFor: 72, ScoreAgainst: 72})
	require.NoError(t, err)
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, ReasonClosingFatigue, ev.Reason)
	assert.Equal(t, uint(2), ev.PlayerOut)
	assert.Equal(t, uint(6), ev.PlayerIn)

	// The plan is one-shot: it does not fire again.
	events, err = e.CheckRotation(GameContext{Quarter: 4, Clock: 430, ScoreFor: 72, ScoreAgainst: 72})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestClosingInsert_FiresJustAheadOfMark(t *testing.T) {
	e, state := newTestEngine(t, Tactics{Pace: PaceStandard})
	require.NoError(t, e.Lineup().Substitute(3, 8))
	state.stamina[3] = 92 // playable 10 min, mark 10:00 plus the insert buffer
	e.StartQuarter(4)

	events, err := e.CheckRotation(GameContext{Quarter: 4, Clock: 650, ScoreFor: 70, ScoreAgainst: 70})
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = e.CheckRotation(GameContext{Quarter: 4, Clock: 610, ScoreFor: 70, ScoreAgainst: 70})
	require.NoError(t, err)
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, ReasonClosingInsert, ev.Reason)
	assert.Equal(t, uint(8), ev.PlayerOut, "the tracked stand-in makes room")
	assert.Equal(t, uint(3), ev.PlayerIn)

	_, ok := e.Lineup().StandInFor(3)
	assert.False(t, ok)
}

func TestClosingInsert_FoulTroubleBlocks(t *testing.T) {
	e, state := newTestEngine(t, Tactics{Pace: PaceStandard})
	require.NoError(t, e.Lineup().Substitute(3, 8))
	state.stamina[3] = 92
	state.fouls[3] = 5
	e.StartQuarter(4)

	for _, clock := range []float64{610, 300, 30} {
		events, err := e.CheckRotation(GameContext{Quarter: 4, Clock: clock, ScoreFor: 70, ScoreAgainst: 70})
		require.NoError(t, err)
		assert.Empty(t, events, "a starter one foul from disqualification is never force-inserted")
	}
	assert.False(t, e.Lineup().IsActive(3))
}
