// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"fuseball/internal/auth"
	"fuseball/internal/game"
	"fuseball/internal/lobby"
	"fuseball/internal/models"
)

const maxNameLen = 24

// session is one websocket connection's state. The identity is nil until the
// client completes the handshake; every other event except ping is rejected
// before that.
type session struct {
	conn     *websocket.Conn
	out      chan lobby.Envelope
	cancel   context.CancelFunc
	store    *lobby.Store
	log      *logrus.Logger
	identity *models.PlayerIdentity

	// roomConn is the lobby attachment this session created, nil until a
	// create or join succeeds. The teardown path compares it against the
	// lobby's current attachment so a stale session never evicts a
	// reconnected player.
	roomConn *lobby.Conn
}

// WSHandler upgrades the connection and runs the session until it closes.
// Leaving the current room on disconnect is handled here, so the registry
// never keeps ghost members. The leave is ownership-checked: a reconnect
// replaces the attachment, and the superseded session's teardown must not
// remove the player the new session just joined.
func WSHandler(logger *logrus.Logger, store *lobby.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // tighten in production
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		s := &session{
			conn:   c,
			out:    make(chan lobby.Envelope, 32),
			cancel: cancel,
			store:  store,
			log:    logger,
		}

		logger.WithField("remote", r.RemoteAddr).Info("websocket connected")

		go s.writePump(ctx)
		s.readPump(ctx)

		if s.identity != nil {
			store.LeaveSession(s.identity.ID, s.roomConn)
			logger.WithFields(logrus.Fields{
				"player": s.identity.ID,
				"name":   s.identity.Name,
			}).Info("player disconnected")
		}
	}
}

// send pushes an outbound event without ever blocking the caller.
func (s *session) send(event string, data any) {
	select {
	case s.out <- lobby.Envelope{Event: event, Data: data}:
	default:
		s.log.WithField("event", event).Warn("session out channel full, dropping message")
	}
}

func (s *session) sendError(reason string) {
	s.send("error", errorPayload{Reason: reason})
}

func (s *session) readPump(ctx context.Context) {
	for {
		typ, data, err := s.conn.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			if closeStatus == websocket.StatusNormalClosure || closeStatus == websocket.StatusGoingAway {
				return
			}
			if errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "context canceled") {
				return
			}
			s.log.Debugf("websocket read error: %v", err)
			return
		}
		if typ != websocket.MessageText {
			continue
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			// A malformed frame maps to a rejection, never a crash.
			s.sendError("invalid message format")
			continue
		}
		s.dispatch(msg)
	}
}

func (s *session) writePump(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-s.out:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				s.log.Warnf("failed to marshal outgoing msg: %v", err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = s.conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := s.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

// dispatch routes one inbound event. Unknown events get an error reply.
func (s *session) dispatch(msg inboundMessage) {
	switch msg.Event {
	case "ping":
		s.send("pong", nil)
		return
	case "handshake":
		s.handleHandshake(msg.Data)
		return
	}

	if s.identity == nil {
		s.sendError("handshake required")
		return
	}

	switch msg.Event {
	case "get-lobbies":
		s.send("lobbies", s.store.List())

	case "create-lobby":
		s.handleCreateLobby(msg.Data)

	case "join-lobby":
		s.handleJoinLobby(msg.Data)

	case "leave-lobby":
		s.store.Leave(s.identity.ID)

	case "player-move-start":
		s.handleMove(msg.Data, true)

	case "player-move-end":
		s.handleMove(msg.Data, false)

	case "player-kick-start":
		s.store.SetKick(s.identity.ID, true)

	case "player-kick-end":
		s.store.SetKick(s.identity.ID, false)

	case "chat-message":
		var p chatPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil || p.Message == "" {
			return
		}
		s.store.Chat(*s.identity, p.Message)

	default:
		s.sendError("unknown event")
	}
}

// handleHandshake establishes the session identity: an empty jwt mints a
// fresh guest identity, anything else must verify against our signing key.
// The identity is set at most once per session; switching identities would
// orphan the old id's room membership.
func (s *session) handleHandshake(data json.RawMessage) {
	if s.identity != nil {
		s.sendError("handshake already completed")
		return
	}

	var p handshakePayload
	if err := json.Unmarshal(data, &p); err != nil || p.Timezone == "" {
		s.sendError("invalid handshake payload")
		return
	}

	if p.JWT == "" {
		name := strings.TrimSpace(p.PlayerName)
		if name == "" {
			name = randomPlayerName()
		}
		if r := []rune(name); len(r) > maxNameLen {
			name = string(r[:maxNameLen])
		}

		id := models.PlayerIdentity{
			ID:          models.NewPlayerID(),
			Name:        name,
			Emoji:       p.PlayerEmoji,
			CountryCode: countryFromTimezone(p.Timezone),
		}
		token, err := auth.CreateToken(id)
		if err != nil {
			s.log.Errorf("failed to sign guest token: %v", err)
			s.sendError("handshake failed")
			return
		}
		s.identity = &id
		s.send("handshake", handshakeReply{JWT: token, Player: id})
		s.log.WithFields(logrus.Fields{
			"player":  id.ID,
			"name":    id.Name,
			"country": id.CountryCode,
		}).Info("guest connected")
		return
	}

	id, err := auth.VerifyToken(p.JWT)
	if err != nil {
		s.send("handshake-failed", errorPayload{Reason: "failed to verify token"})
		return
	}
	s.identity = &id
	s.send("handshake", handshakeReply{JWT: p.JWT, Player: id})
	s.log.WithFields(logrus.Fields{
		"player": id.ID,
		"name":   id.Name,
	}).Info("player connected")
}

func (s *session) handleCreateLobby(data json.RawMessage) {
	var p createLobbyPayload
	if err := json.Unmarshal(data, &p); err != nil {
		s.send("create-lobby-error", errorPayload{Reason: "invalid payload"})
		return
	}

	l, err := s.store.Create(lobby.CreateSpec{
		Name:        p.Name,
		TeamSize:    p.TeamSize,
		CountryCode: s.identity.CountryCode,
	}, *s.identity)
	if err != nil {
		s.send("create-lobby-error", errorPayload{Reason: err.Error()})
		return
	}

	conn := &lobby.Conn{PlayerID: s.identity.ID, OutChan: s.out, Cancel: s.cancel}
	l.Attach(conn)
	s.roomConn = conn
	s.send("create-lobby-success", l.Snapshot())
}

func (s *session) handleJoinLobby(data json.RawMessage) {
	var p joinLobbyPayload
	if err := json.Unmarshal(data, &p); err != nil {
		s.send("join-lobby-error", errorPayload{Reason: "invalid payload"})
		return
	}

	l, err := s.store.Join(p.ID, *s.identity, p.Team)
	if err != nil {
		s.send("join-lobby-error", errorPayload{Reason: err.Error()})
		return
	}

	conn := &lobby.Conn{PlayerID: s.identity.ID, OutChan: s.out, Cancel: s.cancel}
	l.Attach(conn)
	s.roomConn = conn
	s.send("join-lobby-success", l.Snapshot())
}

func (s *session) handleMove(data json.RawMessage, pressed bool) {
	var p playerMovePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}
	d, ok := game.ParseDirection(p.Direction)
	if !ok {
		return
	}
	s.store.SetMovement(s.identity.ID, d, pressed)
}
