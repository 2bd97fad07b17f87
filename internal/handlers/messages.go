// internal/handlers/messages.go
package handlers

import (
	"encoding/json"

	"github.com/google/uuid"

	"fuseball/internal/models"
)

// inboundMessage is the wire envelope clients send: an event name plus an
// event-specific payload decoded lazily.
type inboundMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type handshakePayload struct {
	JWT         string `json:"jwt"`
	Timezone    string `json:"timezone"`
	PlayerName  string `json:"playerName"`
	PlayerEmoji int    `json:"playerEmoji"`
}

type handshakeReply struct {
	JWT    string                `json:"jwt"`
	Player models.PlayerIdentity `json:"player"`
}

type createLobbyPayload struct {
	Name     string `json:"name"`
	TeamSize int    `json:"teamSize"`
}

type joinLobbyPayload struct {
	ID   uuid.UUID `json:"id"`
	Team *int      `json:"team,omitempty"`
}

type playerMovePayload struct {
	Direction string `json:"direction"`
}

type chatPayload struct {
	Message string `json:"message"`
}

type errorPayload struct {
	Reason string `json:"reason"`
}
