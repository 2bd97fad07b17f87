// internal/game/tuning.go
package game

import "time"

// Field dimensions are centered on the origin: x spans [-FieldWidth/2,
// FieldWidth/2], y spans [-FieldHeight/2, FieldHeight/2]. The goal mouths are
// gaps in the two short edges, vertically centered, GoalMouthHeight tall and
// GoalDepth deep.
const (
	FieldWidth      = 1400.0
	FieldHeight     = 800.0
	GoalMouthHeight = 200.0
	GoalDepth       = 60.0

	PlayerSize = 40.0 // diameter
	BallSize   = 30.0 // diameter

	// BaseSpeed is the floor of per-tick displacement; the effective speed is
	// BaseSpeed + max(MinSpeedBonus, BaseSpeed*(1+ramp*RampGain)). Diagonal
	// movement is intentionally not normalized, so holding two directions is
	// faster than one. Known quirk, kept on purpose.
	BaseSpeed     = 5.0
	MinSpeedBonus = 5.0
	RampGain      = 0.05

	// Speed ramp counter bounds: +1 per tick while any direction is held,
	// -2 per tick while idle.
	RampMax       = 20
	RampMin       = 1
	RampIdleDecay = 2

	// KickDivisor scales the impulse a player imparts when overlapping the
	// ball: velocity = speed * direction / KickDivisor.
	KickDivisor = 140.0

	// BallFriction multiplies the ball velocity every tick. BallRestSpeed is
	// the magnitude under which the ball is considered stopped.
	BallFriction  = 0.99
	BallRestSpeed = 0.01

	TickRate         = 30
	InterpolationWin = 100 * time.Millisecond
	MatchDuration    = 5 * time.Minute

	ChatMessageMax = 50

	TeamSizeMin = 1
	TeamSizeMax = 4
	RoomNameMax = 32
)

// TickInterval is the scheduler cadence derived from TickRate.
const TickInterval = time.Second / TickRate
