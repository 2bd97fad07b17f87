// internal/game/geometry_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstrainPlayerStaysInBounds(t *testing.T) {
	cases := []Vec2{
		{X: 0, Y: 0},
		{X: -10000, Y: 0},
		{X: 10000, Y: 0},
		{X: 0, Y: -10000},
		{X: 0, Y: 10000},
		{X: -FieldWidth, Y: -FieldHeight},
		{X: FieldWidth / 2, Y: FieldHeight / 2},
	}
	for _, pos := range cases {
		got := ConstrainPlayer(pos)
		assert.GreaterOrEqual(t, got.X, -FieldWidth/2+PlayerSize/2)
		assert.LessOrEqual(t, got.X, FieldWidth/2-PlayerSize/2)
		assert.GreaterOrEqual(t, got.Y, -FieldHeight/2+PlayerSize/2)
		assert.LessOrEqual(t, got.Y, FieldHeight/2-PlayerSize/2)
	}
}

func TestConstrainBallReflectsOffWalls(t *testing.T) {
	// Heading up past the top wall: y clamps, vertical velocity flips.
	pos, vel := ConstrainBall(Vec2{X: 0, Y: -FieldHeight}, Vec2{X: 1, Y: -5})
	assert.Equal(t, -FieldHeight/2+BallSize/2, pos.Y)
	assert.Equal(t, 5.0, vel.Y)
	assert.Equal(t, 1.0, vel.X)

	// Outside the goal mouth band, the short edge is a wall too.
	pos, vel = ConstrainBall(Vec2{X: -FieldWidth, Y: FieldHeight / 2 * 0.9}, Vec2{X: -3, Y: 0})
	assert.Equal(t, -FieldWidth/2+BallSize/2, pos.X)
	assert.Equal(t, 3.0, vel.X)
}

func TestConstrainBallAllowsGoalMouth(t *testing.T) {
	// In the mouth band the ball may pass the edge, up to the goal depth.
	pos, _ := ConstrainBall(Vec2{X: -FieldWidth/2 - 20, Y: 0}, Vec2{X: -2, Y: 0})
	assert.Equal(t, -FieldWidth/2-20, pos.X)

	pos, _ = ConstrainBall(Vec2{X: -FieldWidth, Y: 0}, Vec2{X: -2, Y: 0})
	assert.Equal(t, -FieldWidth/2-GoalDepth, pos.X)
}

func TestGoalScoredBy(t *testing.T) {
	assert.Equal(t, -1, GoalScoredBy(Vec2{X: 0, Y: 0}))
	assert.Equal(t, -1, GoalScoredBy(Vec2{X: -FieldWidth / 2, Y: FieldHeight / 2 * 0.9}))

	// Left edge is team 0's goal, so crossing it scores for team 1.
	assert.Equal(t, 1, GoalScoredBy(Vec2{X: -FieldWidth / 2, Y: 0}))
	assert.Equal(t, 0, GoalScoredBy(Vec2{X: FieldWidth / 2, Y: 0}))

	// Exactly at the mouth boundary still counts.
	assert.Equal(t, 1, GoalScoredBy(Vec2{X: -FieldWidth / 2, Y: GoalMouthHeight / 2}))
}

func TestKickoffPositions(t *testing.T) {
	p0 := KickoffPosition(0, 0)
	p1 := KickoffPosition(1, 0)
	assert.Equal(t, Vec2{X: -FieldWidth / 4, Y: 0}, p0)
	assert.Equal(t, Vec2{X: FieldWidth / 4, Y: 0}, p1)

	// Later players fan out vertically, no two on the same spot.
	seen := map[Vec2]bool{}
	for i := 0; i < 4; i++ {
		pos := KickoffPosition(0, i)
		assert.False(t, seen[pos], "kickoff position %d collides", i)
		seen[pos] = true
		assert.Equal(t, ConstrainPlayer(pos), pos, "kickoff position %d out of bounds", i)
	}
}
