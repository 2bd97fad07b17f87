// internal/game/movement_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRampHeldIsNonDecreasingToCap(t *testing.T) {
	ramp := RampMin
	for i := 0; i < 40; i++ {
		next := NextRamp(ramp, true)
		assert.GreaterOrEqual(t, next, ramp)
		assert.LessOrEqual(t, next, RampMax)
		ramp = next
	}
	assert.Equal(t, RampMax, ramp)
}

func TestRampIdleIsStrictlyDecreasingToFloor(t *testing.T) {
	ramp := RampMax
	for ramp > RampMin {
		next := NextRamp(ramp, false)
		assert.Less(t, next, ramp)
		assert.GreaterOrEqual(t, next, RampMin)
		ramp = next
	}
	assert.Equal(t, RampMin, NextRamp(RampMin, false))
}

func TestEffectiveSpeedGrowsWithRamp(t *testing.T) {
	prev := 0.0
	for ramp := RampMin; ramp <= RampMax; ramp++ {
		speed := EffectiveSpeed(ramp)
		assert.Greater(t, speed, prev)
		prev = speed
	}
	// The formula floors the bonus, so even a cold start moves decently.
	assert.GreaterOrEqual(t, EffectiveSpeed(RampMin), BaseSpeed+MinSpeedBonus)
}

func TestDisplaceDiagonalIsNotNormalized(t *testing.T) {
	speed := 10.0
	axial := Displace(Vec2{}, Intent{Right: true}, speed)
	diagonal := Displace(Vec2{}, Intent{Right: true, Down: true}, speed)

	assert.Equal(t, Vec2{X: speed}, axial)
	// Both axes get the full speed: diagonal travel is sqrt(2) faster.
	assert.Greater(t, diagonal.Len(), axial.Len())
	assert.Equal(t, Vec2{X: speed, Y: speed}, diagonal)
}

func TestOpposedDirectionsCancel(t *testing.T) {
	got := Displace(Vec2{X: 3, Y: 4}, Intent{Left: true, Right: true}, 7)
	assert.Equal(t, Vec2{X: 3, Y: 4}, got)
}

func TestParseDirection(t *testing.T) {
	for name, want := range map[string]Direction{
		"up": DirUp, "down": DirDown, "left": DirLeft, "right": DirRight,
	} {
		got, ok := ParseDirection(name)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := ParseDirection("diagonal")
	assert.False(t, ok)
}
