// internal/game/collision_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColliding(t *testing.T) {
	assert.True(t, Colliding(Vec2{}, Vec2{X: PlayerSize - 1}, PlayerSize, PlayerSize))
	assert.False(t, Colliding(Vec2{}, Vec2{X: PlayerSize + 1}, PlayerSize, PlayerSize))
	// Touching exactly is not overlapping.
	assert.False(t, Colliding(Vec2{}, Vec2{X: PlayerSize}, PlayerSize, PlayerSize))
}

func TestResolveOverlapSeparates(t *testing.T) {
	p1 := Vec2{X: 0, Y: 0}
	p2 := Vec2{X: 10, Y: 5}

	r1, r2 := ResolveOverlap(p1, p2, PlayerSize, PlayerSize)
	assert.InDelta(t, PlayerSize, r1.Sub(r2).Len(), 1e-9, "no overlap may remain")

	// Symmetric: each moved by half the penetration.
	assert.InDelta(t, r1.Sub(p1).Len(), r2.Sub(p2).Len(), 1e-9)
}

func TestResolveOverlapCoincidentCentersUntouched(t *testing.T) {
	p := Vec2{X: 7, Y: 7}
	r1, r2 := ResolveOverlap(p, p, PlayerSize, PlayerSize)
	assert.Equal(t, p, r1)
	assert.Equal(t, p, r2)
}

func TestResolveOverlapMixedSizes(t *testing.T) {
	r1, r2 := ResolveOverlap(Vec2{}, Vec2{X: 20}, PlayerSize, BallSize)
	assert.InDelta(t, (PlayerSize+BallSize)/2, r1.Sub(r2).Len(), 1e-9)
}
