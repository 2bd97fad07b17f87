// internal/game/geometry.go
package game

import "math"

// Vec2 is a position or velocity on the field plane.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// inGoalMouthBand reports whether y lies within the vertical span of the goal
// openings.
func inGoalMouthBand(y float64) bool {
	return math.Abs(y) <= GoalMouthHeight/2
}

// GoalScoredBy returns the team credited with a goal if pos sits inside a goal
// mouth, or -1. Team 0 defends the left goal (negative x), so the ball
// crossing the left edge scores for team 1 and vice versa.
func GoalScoredBy(pos Vec2) int {
	if !inGoalMouthBand(pos.Y) {
		return -1
	}
	if pos.X <= -FieldWidth/2 {
		return 1
	}
	if pos.X >= FieldWidth/2 {
		return 0
	}
	return -1
}

// ConstrainPlayer clamps a player position to the field rectangle. Players
// cannot enter the goal mouths; the field edge is a hard wall for them.
func ConstrainPlayer(pos Vec2) Vec2 {
	half := PlayerSize / 2
	pos.X = clamp(pos.X, -FieldWidth/2+half, FieldWidth/2-half)
	pos.Y = clamp(pos.Y, -FieldHeight/2+half, FieldHeight/2-half)
	return pos
}

// ConstrainBall keeps the ball inside the field, reflecting its velocity off
// walls, except through the goal mouths where it may travel up to GoalDepth
// past the edge so goal detection can observe a scored position.
func ConstrainBall(pos Vec2, vel Vec2) (Vec2, Vec2) {
	half := BallSize / 2

	if pos.Y < -FieldHeight/2+half {
		pos.Y = -FieldHeight/2 + half
		vel.Y = -vel.Y
	} else if pos.Y > FieldHeight/2-half {
		pos.Y = FieldHeight/2 - half
		vel.Y = -vel.Y
	}

	minX, maxX := -FieldWidth/2+half, FieldWidth/2-half
	if inGoalMouthBand(pos.Y) {
		// The mouth is open: allow the ball past the edge, but never beyond
		// the back of the net.
		minX = -FieldWidth/2 - GoalDepth
		maxX = FieldWidth/2 + GoalDepth
	}
	if pos.X < minX {
		pos.X = minX
		vel.X = -vel.X
	} else if pos.X > maxX {
		pos.X = maxX
		vel.X = -vel.X
	}
	return pos, vel
}

// KickoffPosition places the i-th player of a team on its half. The first
// player lines up with the center spot; the rest fan out above and below it.
func KickoffPosition(team, index int) Vec2 {
	x := -FieldWidth / 4
	if team == 1 {
		x = FieldWidth / 4
	}
	// 0, -2d, +2d, -4d, ...
	y := float64((index+1)/2) * PlayerSize * 2
	if index%2 == 1 {
		y = -y
	}
	return Vec2{X: x, Y: y}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
