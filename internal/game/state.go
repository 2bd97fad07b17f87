// internal/game/state.go
package game

import (
	"time"
)

// LivePlayer is one participant of a running match. Positions are mutated
// only by Step.
type LivePlayer struct {
	ID         int64     `json:"id"`
	Team       int       `json:"team"`
	Position   Vec2      `json:"position"`
	LastUpdate time.Time `json:"-"` // interpolation anchor
}

// GoalEvent records one scored goal. Append-only; never mutated afterwards.
type GoalEvent struct {
	WinningTeam int           `json:"winningTeam"`
	LosingTeam  int           `json:"losingTeam"`
	ScoredBy    int64         `json:"scoredBy"`
	ScoredAt    time.Duration `json:"scoredAt"` // relative to round start
}

// ChatMessage is one lobby chat entry, keyed by arrival time.
type ChatMessage struct {
	PlayerID int64     `json:"playerId"`
	Name     string    `json:"name"`
	Text     string    `json:"text"`
	At       time.Time `json:"at"`
}

// PhaseKind enumerates the round sub-states.
type PhaseKind int

const (
	// PhaseProtected: only the starting team's touch begins live play.
	PhaseProtected PhaseKind = iota
	// PhaseLive: normal play.
	PhaseLive
	// PhaseScored: a goal was counted this tick; the phase holds until the
	// ball has left the goal mouth (it is reset to center immediately, so in
	// practice exactly one tick). Doubles as the goal debounce.
	PhaseScored
)

// RoundPhase is the explicit round state machine. Team is the starting team
// for Protected, or the team owed the next kickoff for Scored. Unused for
// Live.
type RoundPhase struct {
	Kind PhaseKind `json:"kind"`
	Team int       `json:"team"`
}

func (p RoundPhase) String() string {
	switch p.Kind {
	case PhaseProtected:
		return "protected"
	case PhaseLive:
		return "live"
	default:
		return "scored"
	}
}

// LiveState is the simulation state of one in-progress room. It is not
// goroutine-safe on its own; the owning lobby serializes access behind its
// mutex so a tick never observes a half-applied intent change.
type LiveState struct {
	Players []*LivePlayer // registration order, the order Step processes
	Intents map[int64]*Intent
	Ramps   map[int64]int
	Ball    *Ball
	Chat    []ChatMessage

	Phase   RoundPhase
	Score   [2]int
	Goals   []GoalEvent
	Elapsed time.Duration

	TimeLeft time.Duration
}

// NewLiveState materializes the simulation for a room whose membership just
// crossed the start threshold. startingTeam owns the first protected kickoff.
func NewLiveState(startingTeam int) *LiveState {
	return &LiveState{
		Intents:  make(map[int64]*Intent),
		Ramps:    make(map[int64]int),
		Ball:     NewBall(),
		Phase:    RoundPhase{Kind: PhaseProtected, Team: startingTeam},
		TimeLeft: MatchDuration,
	}
}

// AddPlayer registers a player and places them at their team's kickoff spot.
func (s *LiveState) AddPlayer(id int64, team int) *LivePlayer {
	idx := 0
	for _, p := range s.Players {
		if p.Team == team {
			idx++
		}
	}
	lp := &LivePlayer{
		ID:       id,
		Team:     team,
		Position: KickoffPosition(team, idx),
	}
	s.Players = append(s.Players, lp)
	s.Intents[id] = &Intent{}
	s.Ramps[id] = RampMin
	return lp
}

// RemovePlayer drops a player and their input state. Unknown ids are a no-op.
func (s *LiveState) RemovePlayer(id int64) {
	for i, p := range s.Players {
		if p.ID == id {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			break
		}
	}
	delete(s.Intents, id)
	delete(s.Ramps, id)
}

// Player returns the live player with the given id, or nil.
func (s *LiveState) Player(id int64) *LivePlayer {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// TeamCounts returns how many live players each team has.
func (s *LiveState) TeamCounts() (int, int) {
	var a, b int
	for _, p := range s.Players {
		if p.Team == 0 {
			a++
		} else {
			b++
		}
	}
	return a, b
}

// SetMovement flips one held-direction flag for a player. Unknown players are
// ignored: the intent may race with a leave and that is benign.
func (s *LiveState) SetMovement(id int64, d Direction, pressed bool) {
	if in, ok := s.Intents[id]; ok {
		in.Set(d, pressed)
	}
}

// SetKick flips the kick flag for a player.
func (s *LiveState) SetKick(id int64, pressed bool) {
	if in, ok := s.Intents[id]; ok {
		in.Kick = pressed
	}
}

// AppendChat records a chat entry.
func (s *LiveState) AppendChat(id int64, name, text string, at time.Time) {
	s.Chat = append(s.Chat, ChatMessage{PlayerID: id, Name: name, Text: text, At: at})
}
