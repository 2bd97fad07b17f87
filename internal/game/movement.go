// internal/game/movement.go
package game

// Direction is one of the four cardinal movement inputs.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// ParseDirection maps the wire name of a direction to its enum value.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return 0, false
}

// Intent is the held-input state for one player: which directions are down
// plus the kick button. Mutated only through the lobby's input path, read only
// by the simulation step.
type Intent struct {
	Up, Down, Left, Right bool
	Kick                  bool
}

// Set flips one direction flag.
func (in *Intent) Set(d Direction, pressed bool) {
	switch d {
	case DirUp:
		in.Up = pressed
	case DirDown:
		in.Down = pressed
	case DirLeft:
		in.Left = pressed
	case DirRight:
		in.Right = pressed
	}
}

// Moving reports whether any movement direction is held.
func (in Intent) Moving() bool {
	return in.Up || in.Down || in.Left || in.Right
}

// NextRamp advances the speed-ramp counter one tick: +1 while moving (capped
// at RampMax), -RampIdleDecay while idle (floored at RampMin).
func NextRamp(ramp int, moving bool) int {
	if moving {
		if ramp < RampMax {
			ramp++
		}
		return ramp
	}
	ramp -= RampIdleDecay
	if ramp < RampMin {
		ramp = RampMin
	}
	return ramp
}

// EffectiveSpeed converts the ramp counter into per-tick displacement
// magnitude. The bonus grows linearly with the ramp and the ramp cap bounds
// the top speed.
func EffectiveSpeed(ramp int) float64 {
	bonus := BaseSpeed * (1 + float64(ramp)*RampGain)
	if bonus < MinSpeedBonus {
		bonus = MinSpeedBonus
	}
	return BaseSpeed + bonus
}

// Displace applies held directions to pos at the given speed. Diagonals sum
// both axes without normalizing.
func Displace(pos Vec2, in Intent, speed float64) Vec2 {
	if in.Up {
		pos.Y -= speed
	}
	if in.Down {
		pos.Y += speed
	}
	if in.Left {
		pos.X -= speed
	}
	if in.Right {
		pos.X += speed
	}
	return pos
}
