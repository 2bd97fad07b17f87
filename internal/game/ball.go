// internal/game/ball.go
package game

import "time"

// Ball is the single match ball of a live room.
type Ball struct {
	Position      Vec2      `json:"position"`
	Velocity      Vec2      `json:"velocity"`
	LastTouchedBy int64     `json:"lastTouchedBy"` // player id, 0 before first touch
	LastUpdate    time.Time `json:"-"`
}

// NewBall returns a ball resting on the center spot.
func NewBall() *Ball {
	return &Ball{}
}

// Reset puts the ball back on the center spot with zero velocity.
func (b *Ball) Reset() {
	b.Position = Vec2{}
	b.Velocity = Vec2{}
}

// Kick sets the ball velocity away from the kicker. dir is the vector from
// the kicker's previous position to the ball; speed is the kicker's effective
// speed this tick.
func (b *Ball) Kick(dir Vec2, speed float64, kickerID int64, now time.Time) {
	b.Velocity = dir.Scale(speed / KickDivisor)
	b.LastTouchedBy = kickerID
	b.LastUpdate = now
}

// Advance applies one tick of travel and friction, then containment. Friction
// decays the velocity geometrically; below BallRestSpeed it snaps to zero so
// the ball comes to an actual stop.
func (b *Ball) Advance() {
	b.Position = b.Position.Add(b.Velocity)
	b.Velocity = b.Velocity.Scale(BallFriction)
	if b.Velocity.Len() < BallRestSpeed {
		b.Velocity = Vec2{}
	}
	b.Position, b.Velocity = ConstrainBall(b.Position, b.Velocity)
}
