// internal/game/step.go
package game

import "time"

// StepResult reports what one tick produced, for the lobby to broadcast and
// bookkeep.
type StepResult struct {
	Goals    []GoalEvent // goals counted this tick (at most one)
	Finished bool        // time budget exhausted
}

// Step advances the room one tick. Players are processed in registration
// order; simultaneous overlaps resolve sequentially in that order, an
// accepted approximation of n-body resolution. Containment runs as the last
// positional operation, so every position is in bounds when Step returns.
func (s *LiveState) Step(now time.Time) StepResult {
	var res StepResult

	// A counted goal holds the Scored phase until the ball has left the
	// mouth; it was reset to center on the scoring tick, so this releases on
	// the following tick and re-enters the protected kickoff.
	if s.Phase.Kind == PhaseScored && GoalScoredBy(s.Ball.Position) == -1 {
		s.Phase = RoundPhase{Kind: PhaseProtected, Team: s.Phase.Team}
	}

	for _, p := range s.Players {
		s.stepPlayer(p, now)
	}

	s.Ball.Advance()

	if team := GoalScoredBy(s.Ball.Position); team >= 0 && s.Phase.Kind != PhaseScored {
		goal := GoalEvent{
			WinningTeam: team,
			LosingTeam:  1 - team,
			ScoredBy:    s.Ball.LastTouchedBy,
			ScoredAt:    s.Elapsed,
		}
		s.Goals = append(s.Goals, goal)
		s.Score[team]++
		s.Ball.Reset()
		s.Phase = RoundPhase{Kind: PhaseScored, Team: goal.LosingTeam}
		res.Goals = append(res.Goals, goal)
	}

	s.Elapsed += TickInterval
	s.TimeLeft -= TickInterval
	if s.TimeLeft <= 0 {
		s.TimeLeft = 0
		res.Finished = true
	}
	return res
}

func (s *LiveState) stepPlayer(p *LivePlayer, now time.Time) {
	intent := Intent{}
	if in, ok := s.Intents[p.ID]; ok {
		intent = *in
	}

	ramp := NextRamp(s.Ramps[p.ID], intent.Moving())
	s.Ramps[p.ID] = ramp
	speed := EffectiveSpeed(ramp)

	prev := p.Position
	candidate := Displace(prev, intent, speed)

	// Push apart from every other player we now overlap, half the penetration
	// each. The other player is displaced in place.
	for _, other := range s.Players {
		if other.ID == p.ID {
			continue
		}
		if Colliding(candidate, other.Position, PlayerSize, PlayerSize) {
			candidate, other.Position = ResolveOverlap(candidate, other.Position, PlayerSize, PlayerSize)
			other.Position = ConstrainPlayer(other.Position)
		}
	}

	ballMoved := false
	if Colliding(candidate, s.Ball.Position, PlayerSize, BallSize) {
		s.Ball.Kick(s.Ball.Position.Sub(prev), speed, p.ID, now)
		ballMoved = true
	}

	candidate = ConstrainPlayer(candidate)

	// First-order interpolation toward the candidate smooths the motion
	// clients see without changing the tick cadence.
	if p.LastUpdate.IsZero() {
		p.LastUpdate = now
	}
	elapsed := now.Sub(p.LastUpdate)
	if elapsed < InterpolationWin {
		t := float64(elapsed) / float64(InterpolationWin)
		p.Position = p.Position.Add(candidate.Sub(p.Position).Scale(t))
	} else {
		p.Position = candidate
	}
	p.Position = ConstrainPlayer(p.Position)
	p.LastUpdate = now

	// A protected kickoff opens only to the starting team's touch. Any other
	// touch still moves the ball but does not change phase.
	if ballMoved && s.Phase.Kind == PhaseProtected && p.Team == s.Phase.Team {
		s.Phase = RoundPhase{Kind: PhaseLive}
	}
}
