// internal/lobby/store.go
package lobby

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fuseball/internal/game"
	"fuseball/internal/models"
)

// Store is the registry owning every active lobby, plus the player -> lobby
// index enforcing the one-room-per-player invariant. The store lock guards
// only the maps; per-lobby state is behind each lobby's own lock. Lock order
// is always store then lobby.
type Store struct {
	mu       sync.Mutex
	lobbies  map[uuid.UUID]*Lobby
	byPlayer map[int64]*Lobby

	// OnFinish is installed on every lobby this store creates.
	OnFinish func(MatchResult)
}

// NewStore returns an empty registry.
func NewStore() *Store {
	return &Store{
		lobbies:  make(map[uuid.UUID]*Lobby),
		byPlayer: make(map[int64]*Lobby),
	}
}

// List snapshots all lobbies for discovery.
func (s *Store) List() []Summary {
	s.mu.Lock()
	all := make([]*Lobby, 0, len(s.lobbies))
	for _, l := range s.lobbies {
		all = append(all, l)
	}
	s.mu.Unlock()

	out := make([]Summary, 0, len(all))
	for _, l := range all {
		out = append(out, l.Summary())
	}
	return out
}

// Create validates the spec, allocates a warmup lobby and auto-joins the
// requester to team 0. A requester already in another room leaves it first.
func (s *Store) Create(spec CreateSpec, requester models.PlayerIdentity) (*Lobby, error) {
	spec.Name = strings.TrimSpace(spec.Name)
	if spec.Name == "" || len(spec.Name) > game.RoomNameMax {
		return nil, ErrInvalidSpec
	}
	if spec.TeamSize < game.TeamSizeMin || spec.TeamSize > game.TeamSizeMax {
		return nil, ErrInvalidSpec
	}

	s.Leave(requester.ID)

	l := newLobby(spec)
	l.OnFinish = s.OnFinish
	team := 0
	l.members = append(l.members, Member{Identity: requester, Team: team})

	s.mu.Lock()
	s.lobbies[l.ID] = l
	s.byPlayer[requester.ID] = l
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"lobby":    l.ID,
		"name":     l.Name,
		"teamSize": l.TeamSize,
		"creator":  requester.ID,
	}).Info("lobby created")
	return l, nil
}

// Join adds the requester to the lobby, preferring preferredTeam when it has
// capacity. A requester already in another room leaves it first.
func (s *Store) Join(id uuid.UUID, requester models.PlayerIdentity, preferredTeam *int) (*Lobby, error) {
	s.mu.Lock()
	l, ok := s.lobbies[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrRoomNotFound
	}

	if cur, _ := s.LobbyFor(requester.ID); cur != nil && cur != l {
		s.Leave(requester.ID)
	}

	if err := l.join(requester, preferredTeam); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.byPlayer[requester.ID] = l
	s.mu.Unlock()
	return l, nil
}

// Leave removes the player from their current lobby, if any. Idempotent: a
// second call for the same player is a no-op. An emptied lobby is destroyed.
func (s *Store) Leave(playerID int64) {
	s.mu.Lock()
	l, ok := s.byPlayer[playerID]
	if ok {
		delete(s.byPlayer, playerID)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	if empty := l.leave(playerID); empty {
		s.Remove(l)
	}
}

// LeaveSession removes the player only while conn still owns their
// attachment. A reconnect replaces the attachment under the same player id;
// the stale session's teardown must not evict the player from the room the
// new session occupies.
func (s *Store) LeaveSession(playerID int64, conn *Conn) {
	s.mu.Lock()
	l, ok := s.byPlayer[playerID]
	s.mu.Unlock()
	if !ok || !l.owns(playerID, conn) {
		return
	}
	s.Leave(playerID)
}

// Remove drops a lobby and any lingering player index entries.
func (s *Store) Remove(l *Lobby) {
	s.mu.Lock()
	delete(s.lobbies, l.ID)
	for pid, pl := range s.byPlayer {
		if pl == l {
			delete(s.byPlayer, pid)
		}
	}
	s.mu.Unlock()
	logrus.WithField("lobby", l.ID).Info("lobby removed")
}

// LobbyFor returns the lobby the player currently belongs to.
func (s *Store) LobbyFor(playerID int64) (*Lobby, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.byPlayer[playerID]
	return l, ok
}

// Get returns a lobby by id.
func (s *Store) Get(id uuid.UUID) (*Lobby, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lobbies[id]
	return l, ok
}

// Chat relays a chat message into the player's current lobby. Silent no-op
// for players without one; that is a benign race with leave.
func (s *Store) Chat(id models.PlayerIdentity, text string) {
	if l, ok := s.LobbyFor(id.ID); ok {
		l.chat(id, text)
	}
}

// SetMovement routes a held-direction change into the player's current room.
// Players without an active room are silently ignored.
func (s *Store) SetMovement(playerID int64, d game.Direction, pressed bool) {
	if l, ok := s.LobbyFor(playerID); ok {
		l.setMovement(playerID, d, pressed)
	}
}

// SetKick routes a kick-button change into the player's current room.
func (s *Store) SetKick(playerID int64, pressed bool) {
	if l, ok := s.LobbyFor(playerID); ok {
		l.setKick(playerID, pressed)
	}
}

// Snapshot returns all lobbies for the scheduler pass.
func (s *Store) Snapshot() []*Lobby {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Lobby, 0, len(s.lobbies))
	for _, l := range s.lobbies {
		out = append(out, l)
	}
	return out
}
