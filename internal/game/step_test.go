// internal/game/step_test.go
package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestState builds a live room with one player per team at kickoff.
func newTestState(startingTeam int) *LiveState {
	s := NewLiveState(startingTeam)
	s.AddPlayer(1, 0)
	s.AddPlayer(2, 1)
	return s
}

// runClock persists across run calls so stepping one tick at a time in a
// loop still presents a wall clock moving at tick cadence.
var runClock = time.Now()

// run advances the state n ticks with a wall clock moving at tick cadence.
func run(s *LiveState, n int) []StepResult {
	out := make([]StepResult, 0, n)
	for i := 0; i < n; i++ {
		runClock = runClock.Add(TickInterval)
		out = append(out, s.Step(runClock))
	}
	return out
}

func TestContainmentHoldsUnderRandomInput(t *testing.T) {
	s := newTestState(0)
	rng := rand.New(rand.NewSource(7))
	now := time.Now()

	for i := 0; i < 500; i++ {
		for _, id := range []int64{1, 2} {
			s.SetMovement(id, Direction(rng.Intn(4)), rng.Intn(2) == 0)
		}
		now = now.Add(TickInterval)
		s.Step(now)

		for _, p := range s.Players {
			assert.Equal(t, ConstrainPlayer(p.Position), p.Position,
				"player %d out of bounds on tick %d", p.ID, i)
		}
		assert.LessOrEqual(t, s.Ball.Position.X, FieldWidth/2+GoalDepth)
		assert.GreaterOrEqual(t, s.Ball.Position.X, -FieldWidth/2-GoalDepth)
		assert.LessOrEqual(t, s.Ball.Position.Y, FieldHeight/2-BallSize/2)
		assert.GreaterOrEqual(t, s.Ball.Position.Y, -FieldHeight/2+BallSize/2)
	}
}

func TestProtectedKickoffOpensOnStartingTeamTouch(t *testing.T) {
	s := newTestState(0)
	require.Equal(t, PhaseProtected, s.Phase.Kind)
	require.Equal(t, 0, s.Phase.Team)

	// Player 1 (team 0, left half) runs right toward the center ball.
	s.SetMovement(1, DirRight, true)

	opened := false
	for i := 0; i < 2000 && !opened; i++ {
		run(s, 1)
		opened = s.Phase.Kind == PhaseLive
	}

	require.True(t, opened, "starting team touch must open live play")
	assert.Equal(t, int64(1), s.Ball.LastTouchedBy)
	assert.Greater(t, s.Ball.Velocity.Len(), 0.0, "kick must impart velocity")
	assert.Greater(t, s.Ball.Velocity.X, 0.0, "kick vector points away from the kicker")
}

func TestProtectedKickoffIgnoresOtherTeamTouch(t *testing.T) {
	s := newTestState(0)

	// Player 2 (team 1) reaches the ball first; phase must not open, but the
	// ball still reacts physically.
	s.SetMovement(2, DirLeft, true)

	touched := false
	for i := 0; i < 2000 && !touched; i++ {
		run(s, 1)
		touched = s.Ball.LastTouchedBy == 2
	}

	require.True(t, touched)
	assert.Equal(t, PhaseProtected, s.Phase.Kind)
	assert.Equal(t, 0, s.Phase.Team)
	assert.Greater(t, s.Ball.Velocity.Len(), 0.0)
}

func TestGoalScoresOnceAndResets(t *testing.T) {
	s := newTestState(0)
	s.Phase = RoundPhase{Kind: PhaseLive}
	s.Ball.LastTouchedBy = 2

	// Ball exactly at the left goal-mouth boundary: team 1 scores.
	s.Ball.Position = Vec2{X: -FieldWidth / 2, Y: 0}
	res := run(s, 1)[0]

	require.Len(t, res.Goals, 1)
	goal := res.Goals[0]
	assert.Equal(t, 1, goal.WinningTeam)
	assert.Equal(t, 0, goal.LosingTeam)
	assert.Equal(t, int64(2), goal.ScoredBy)
	assert.Equal(t, [2]int{0, 1}, s.Score)
	assert.Equal(t, Vec2{}, s.Ball.Position, "ball resets to center")
	assert.Equal(t, Vec2{}, s.Ball.Velocity)
	assert.Equal(t, PhaseScored, s.Phase.Kind)

	// Next tick the ball has left the mouth: kickoff re-enters protected for
	// the conceding team.
	run(s, 1)
	assert.Equal(t, PhaseProtected, s.Phase.Kind)
	assert.Equal(t, 0, s.Phase.Team)
}

func TestGoalDebounceCountsASingleGoal(t *testing.T) {
	s := newTestState(0)
	s.Phase = RoundPhase{Kind: PhaseLive}

	goals := 0
	// Force the ball back into the mouth every tick; the debounce must still
	// count exactly one goal.
	for i := 0; i < 5; i++ {
		s.Ball.Position = Vec2{X: -FieldWidth / 2, Y: 0}
		s.Ball.Velocity = Vec2{}
		res := run(s, 1)[0]
		goals += len(res.Goals)
	}
	assert.Equal(t, 1, goals)
	assert.Equal(t, [2]int{0, 1}, s.Score)
}

func TestConvergingPlayersSeparate(t *testing.T) {
	s := NewLiveState(0)
	p1 := s.AddPlayer(1, 0)
	p2 := s.AddPlayer(2, 1)

	// Drop both on nearly the same cell, away from walls and ball.
	p1.Position = Vec2{X: 200, Y: 200}
	p2.Position = Vec2{X: 205, Y: 200}

	run(s, 200)
	assert.GreaterOrEqual(t, p1.Position.Sub(p2.Position).Len(), PlayerSize-0.01,
		"push-apart must fully resolve the overlap")
}

func TestAbsentPlayerIntentIsSkipped(t *testing.T) {
	s := newTestState(0)
	// An intent entry for a player no longer in the room must not break the
	// tick for everyone else.
	s.Intents[999] = &Intent{Up: true}
	assert.NotPanics(t, func() { run(s, 10) })
}

func TestTimeBudgetFinishesMatch(t *testing.T) {
	s := newTestState(0)
	s.TimeLeft = 3 * TickInterval

	results := run(s, 3)
	assert.False(t, results[0].Finished)
	assert.False(t, results[1].Finished)
	assert.True(t, results[2].Finished)
	assert.Equal(t, time.Duration(0), s.TimeLeft)
}

func TestRampAdvancesThroughStep(t *testing.T) {
	s := newTestState(0)
	s.SetMovement(1, DirUp, true)
	run(s, 30)
	assert.Equal(t, RampMax, s.Ramps[1], "held direction saturates the ramp")

	s.SetMovement(1, DirUp, false)
	run(s, 30)
	assert.Equal(t, RampMin, s.Ramps[1], "idle decays the ramp to its floor")
}
