// internal/lobby/snapshot.go
package lobby

import (
	"time"

	"github.com/google/uuid"

	"fuseball/internal/game"
)

// SnapshotPlayer is one player in a per-tick state snapshot, the join of
// membership identity and live simulation position.
type SnapshotPlayer struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Emoji    int       `json:"emoji"`
	Team     int       `json:"team"`
	Position game.Vec2 `json:"position"`
}

// SnapshotBall mirrors the ball for clients.
type SnapshotBall struct {
	Position      game.Vec2 `json:"position"`
	Velocity      game.Vec2 `json:"velocity"`
	LastTouchedBy int64     `json:"lastTouchedBy"`
}

// Snapshot is the full room state delivered each tick and on join.
type Snapshot struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Status       Status             `json:"status"`
	RoundStatus  string             `json:"roundStatus"`
	StartingTeam int                `json:"startingTeam"`
	Score        [2]int             `json:"score"`
	TimeLeftSec  float64            `json:"timeLeft"`
	ElapsedSec   float64            `json:"timeSinceRoundStart"`
	Players      []SnapshotPlayer   `json:"players"`
	Ball         *SnapshotBall      `json:"ball,omitempty"`
	Chat         []game.ChatMessage `json:"chatMessages,omitempty"`
	Goals        []game.GoalEvent   `json:"goals,omitempty"`
}

// Snapshot returns the current room state.
func (l *Lobby) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotUnsafe(time.Now())
}

// snapshotUnsafe builds the snapshot. Lock held by caller.
func (l *Lobby) snapshotUnsafe(now time.Time) Snapshot {
	snap := Snapshot{
		ID:     l.ID,
		Name:   l.Name,
		Status: l.status,
		Score:  l.score,
	}

	byID := make(map[int64]Member, len(l.members))
	for _, m := range l.members {
		byID[m.Identity.ID] = m
	}

	if l.live == nil {
		for _, m := range l.members {
			snap.Players = append(snap.Players, SnapshotPlayer{
				ID:    m.Identity.ID,
				Name:  m.Identity.Name,
				Emoji: m.Identity.Emoji,
				Team:  m.Team,
			})
		}
		return snap
	}

	snap.RoundStatus = l.live.Phase.String()
	snap.StartingTeam = l.live.Phase.Team
	snap.TimeLeftSec = l.live.TimeLeft.Seconds()
	snap.ElapsedSec = l.live.Elapsed.Seconds()
	// Copies, not the live headers: the write pump marshals snapshots outside
	// this lock while later ticks keep appending.
	snap.Chat = append([]game.ChatMessage(nil), l.live.Chat...)
	snap.Goals = append([]game.GoalEvent(nil), l.live.Goals...)
	snap.Ball = &SnapshotBall{
		Position:      l.live.Ball.Position,
		Velocity:      l.live.Ball.Velocity,
		LastTouchedBy: l.live.Ball.LastTouchedBy,
	}
	for _, p := range l.live.Players {
		m := byID[p.ID]
		snap.Players = append(snap.Players, SnapshotPlayer{
			ID:       p.ID,
			Name:     m.Identity.Name,
			Emoji:    m.Identity.Emoji,
			Team:     p.Team,
			Position: p.Position,
		})
	}
	return snap
}
