// internal/lobby/lobby.go
package lobby

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fuseball/internal/game"
	"fuseball/internal/models"
)

// Status is the lobby lifecycle state.
type Status string

const (
	StatusWarmup     Status = "warmup"
	StatusInProgress Status = "in-progress"
	StatusFinished   Status = "finished"
)

// Member is a player's membership in a lobby with their assigned team.
type Member struct {
	Identity models.PlayerIdentity `json:"identity"`
	Team     int                   `json:"team"`
}

// CreateSpec is the client-supplied shape of a create request.
type CreateSpec struct {
	Name        string `json:"name"`
	TeamSize    int    `json:"teamSize"`
	CountryCode string `json:"countryCode"`
}

// Envelope is one outbound websocket message. The session layer serializes
// it; the lobby only pushes onto per-connection channels.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Conn is a player's live delivery channel into the lobby. The session layer
// owns the websocket; the lobby only ever writes the OutChan, and never
// blocks on it.
type Conn struct {
	PlayerID int64
	OutChan  chan Envelope
	Cancel   func()
}

// Write pushes a message non-blockingly. A full or closed channel drops the
// message; the next tick snapshot supersedes it anyway.
func (c *Conn) Write(msg Envelope) {
	select {
	case c.OutChan <- msg:
	default:
		logrus.WithFields(logrus.Fields{
			"player": c.PlayerID,
			"event":  msg.Event,
		}).Warn("lobby out channel full, dropping message")
	}
}

// MatchPlayer is one player's line in a match result.
type MatchPlayer struct {
	Identity models.PlayerIdentity `json:"identity"`
	Team     int                   `json:"team"`
	Goals    int                   `json:"goals"`
	Won      bool                  `json:"won"`
}

// MatchResult summarizes a finished match for persistence and broadcast.
type MatchResult struct {
	RoomID      uuid.UUID        `json:"roomId"`
	Name        string           `json:"name"`
	Score       [2]int           `json:"score"`
	WinningTeam int              `json:"winningTeam"` // -1 on a draw
	Forfeited   bool             `json:"forfeited"`
	Goals       []game.GoalEvent `json:"goals"`
	Players     []MatchPlayer    `json:"players"`
	Duration    time.Duration    `json:"duration"`
}

// Lobby is one discoverable match container. All state behind mu; the
// scheduler, the input path and membership changes all take the same lock, so
// a tick never runs concurrently with itself or observes a half-applied
// mutation. Locks are per-lobby: unrelated rooms never contend.
type Lobby struct {
	ID          uuid.UUID
	Name        string
	TeamSize    int
	CountryCode string

	mu          sync.Mutex
	status      Status
	members     []Member
	score       [2]int
	live        *game.LiveState
	connections map[int64]*Conn

	// nextStartingTeam owns the protected kickoff of the next match in this
	// room: team 0 for the first, the conceding side afterwards.
	nextStartingTeam int
	finishedAt       time.Time

	// OnFinish receives the result of a completed match (stats persistence,
	// leaderboard). Called on its own goroutine; must not touch the lobby.
	OnFinish func(MatchResult)
}

func newLobby(spec CreateSpec) *Lobby {
	return &Lobby{
		ID:          uuid.New(),
		Name:        spec.Name,
		TeamSize:    spec.TeamSize,
		CountryCode: spec.CountryCode,
		status:      StatusWarmup,
		connections: make(map[int64]*Conn),
	}
}

// Summary is the discovery view of a lobby.
type Summary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Status      Status    `json:"status"`
	TeamSize    int       `json:"teamSize"`
	Players     int       `json:"players"`
	CountryCode string    `json:"countryCode"`
	Score       [2]int    `json:"score"`
}

// Summary snapshots the lobby for discovery. No side effects.
func (l *Lobby) Summary() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Summary{
		ID:          l.ID,
		Name:        l.Name,
		Status:      l.status,
		TeamSize:    l.TeamSize,
		Players:     len(l.members),
		CountryCode: l.CountryCode,
		Score:       l.score,
	}
}

// Status returns the lifecycle state.
func (l *Lobby) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Members returns a copy of the membership list.
func (l *Lobby) Members() []Member {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Member, len(l.members))
	copy(out, l.members)
	return out
}

// Attach registers the delivery channel for a member's session. Replacing an
// existing connection cancels the old one.
func (l *Lobby) Attach(conn *Conn) {
	l.mu.Lock()
	old := l.connections[conn.PlayerID]
	l.connections[conn.PlayerID] = conn
	l.mu.Unlock()
	if old != nil && old != conn && old.Cancel != nil {
		old.Cancel()
	}
}

// owns reports whether conn is still the registered attachment for playerID.
// A player with no attachment is owned by any session; a replaced attachment
// is not.
func (l *Lobby) owns(playerID int64, conn *Conn) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, ok := l.connections[playerID]
	return !ok || cur == conn
}

// teamCountsUnsafe counts members per team. Lock held by caller.
func (l *Lobby) teamCountsUnsafe() (int, int) {
	var a, b int
	for _, m := range l.members {
		if m.Team == 0 {
			a++
		} else {
			b++
		}
	}
	return a, b
}

// join adds the requester, picking the preferred team when it has capacity,
// else the smaller team. Crossing full occupancy starts the match.
func (l *Lobby) join(id models.PlayerIdentity, preferredTeam *int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.status == StatusFinished {
		return ErrRoomNotFound
	}
	for _, m := range l.members {
		if m.Identity.ID == id.ID {
			return nil // already a member, idempotent
		}
	}

	t0, t1 := l.teamCountsUnsafe()
	if t0+t1 >= l.TeamSize*2 {
		return ErrRoomFull
	}

	team := 0
	switch {
	case preferredTeam != nil && *preferredTeam == 0 && t0 < l.TeamSize:
		team = 0
	case preferredTeam != nil && *preferredTeam == 1 && t1 < l.TeamSize:
		team = 1
	case t0 <= t1 && t0 < l.TeamSize:
		team = 0
	default:
		team = 1
	}

	l.members = append(l.members, Member{Identity: id, Team: team})

	if l.live != nil {
		// Late join into a running match: drop in at the kickoff spot.
		l.live.AddPlayer(id.ID, team)
		return nil
	}

	if len(l.members) >= l.TeamSize*2 {
		l.startMatchUnsafe()
	}
	return nil
}

// startMatchUnsafe transitions warmup -> in-progress and materializes the
// live state with every member at their kickoff position. Lock held.
func (l *Lobby) startMatchUnsafe() {
	l.status = StatusInProgress
	l.live = game.NewLiveState(l.nextStartingTeam)
	for _, m := range l.members {
		l.live.AddPlayer(m.Identity.ID, m.Team)
	}
	l.broadcastUnsafe(Envelope{Event: "match-started", Data: l.snapshotUnsafe(time.Now())})
	logrus.WithFields(logrus.Fields{
		"lobby":        l.ID,
		"players":      len(l.members),
		"startingTeam": l.nextStartingTeam,
	}).Info("match started")
}

// leave removes a player. Second calls for the same player are no-ops.
// Returns true when the lobby became empty and should be destroyed.
func (l *Lobby) leave(playerID int64) (empty bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	found := false
	for i, m := range l.members {
		if m.Identity.ID == playerID {
			l.members = append(l.members[:i], l.members[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return len(l.members) == 0
	}

	if conn, ok := l.connections[playerID]; ok {
		delete(l.connections, playerID)
		if conn.Cancel != nil {
			conn.Cancel()
		}
	}

	if l.live != nil {
		l.live.RemovePlayer(playerID)
	}

	if l.status == StatusInProgress {
		t0, t1 := l.teamCountsUnsafe()
		if t0 == 0 || t1 == 0 {
			// A deserted team forfeits the match.
			winner := 0
			if t0 == 0 {
				winner = 1
			}
			l.finishMatchUnsafe(time.Now(), winner, true)
		}
	}

	l.broadcastUnsafe(Envelope{Event: "lobby-update", Data: l.snapshotUnsafe(time.Now())})
	return len(l.members) == 0
}

// chat appends a trimmed, length-capped entry to the live chat log and relays
// it. No-op without a live state or when the trimmed message is empty.
func (l *Lobby) chat(id models.PlayerIdentity, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if r := []rune(text); len(r) > game.ChatMessageMax {
		text = string(r[:game.ChatMessageMax])
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.live == nil {
		return
	}
	now := time.Now()
	l.live.AppendChat(id.ID, id.Name, text, now)
	l.broadcastUnsafe(Envelope{Event: "chat-message", Data: game.ChatMessage{
		PlayerID: id.ID,
		Name:     id.Name,
		Text:     text,
		At:       now,
	}})
}

// setMovement is the sole write path from player input into the simulation.
func (l *Lobby) setMovement(playerID int64, d game.Direction, pressed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.live != nil {
		l.live.SetMovement(playerID, d, pressed)
	}
}

func (l *Lobby) setKick(playerID int64, pressed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.live != nil {
		l.live.SetKick(playerID, pressed)
	}
}

// Tick advances the simulation one step and broadcasts the post-tick
// snapshot. A no-op unless the match is in progress.
func (l *Lobby) Tick(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.status != StatusInProgress || l.live == nil {
		return
	}

	res := l.live.Step(now)
	l.score = l.live.Score

	for _, goal := range res.Goals {
		l.broadcastUnsafe(Envelope{Event: "goal-scored", Data: goal})
	}

	l.broadcastUnsafe(Envelope{Event: "lobby-live-update", Data: l.snapshotUnsafe(now)})

	if res.Finished {
		winner := -1
		if l.score[0] != l.score[1] {
			winner = 0
			if l.score[1] > l.score[0] {
				winner = 1
			}
		}
		l.finishMatchUnsafe(now, winner, false)
	}
}

// finishMatchUnsafe ends the match, broadcasts the result and hands it to
// OnFinish. Lock held by caller.
func (l *Lobby) finishMatchUnsafe(now time.Time, winningTeam int, forfeited bool) {
	if l.status == StatusFinished {
		return
	}
	l.status = StatusFinished
	l.finishedAt = now

	result := MatchResult{
		RoomID:      l.ID,
		Name:        l.Name,
		Score:       l.score,
		WinningTeam: winningTeam,
		Forfeited:   forfeited,
	}
	if l.live != nil {
		result.Goals = l.live.Goals
		result.Duration = l.live.Elapsed
		goalsBy := make(map[int64]int)
		for _, g := range l.live.Goals {
			goalsBy[g.ScoredBy]++
		}
		for _, m := range l.members {
			result.Players = append(result.Players, MatchPlayer{
				Identity: m.Identity,
				Team:     m.Team,
				Goals:    goalsBy[m.Identity.ID],
				Won:      m.Team == winningTeam,
			})
		}
	}
	if winningTeam >= 0 {
		l.nextStartingTeam = 1 - winningTeam
	}
	l.live = nil

	l.broadcastUnsafe(Envelope{Event: "match-ended", Data: result})
	logrus.WithFields(logrus.Fields{
		"lobby":  l.ID,
		"score":  result.Score,
		"winner": winningTeam,
	}).Info("match finished")

	if l.OnFinish != nil {
		go l.OnFinish(result)
	}
}

// reapable reports whether a finished lobby has outlived its grace period.
func (l *Lobby) reapable(now time.Time, grace time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status == StatusFinished && now.Sub(l.finishedAt) >= grace
}

// broadcastUnsafe fans a message out to every attached connection. Writes are
// non-blocking so a slow client can never stall a tick. Lock held by caller.
func (l *Lobby) broadcastUnsafe(msg Envelope) {
	for _, conn := range l.connections {
		conn.Write(msg)
	}
}
