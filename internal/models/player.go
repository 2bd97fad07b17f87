// internal/models/player.go
package models

import (
	"crypto/rand"
	"encoding/binary"
)

// NewPlayerID draws a random positive 63-bit id. Stable numeric ids are the
// correlation key everywhere in the simulation.
func NewPlayerID() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return int64(binary.BigEndian.Uint64(b[:]) >> 1)
}

// PlayerIdentity is the session-layer identity for a connected player.
// It is established once during the websocket handshake (either minted for a
// guest or recovered from a signed token) and is read-only to the simulation:
// the lobby and game packages only ever consume the numeric ID for correlation.
type PlayerIdentity struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Emoji         int    `json:"emoji"`
	CountryCode   string `json:"countryCode"`
	Authenticated bool   `json:"authenticated"`

	// Cumulative profile stats, updated only by the match-result path.
	TotalWins  int `json:"totalWins"`
	TotalGoals int `json:"totalGoals"`
	TotalGames int `json:"totalGames"`
	XP         int `json:"xp"`
}

// User is a registered account backing an authenticated PlayerIdentity.
// Guests never have a User row; their identity lives entirely in the token.
type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Password    string `json:"-"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	TotalWins   int    `json:"totalWins"`
	TotalGoals  int    `json:"totalGoals"`
	TotalGames  int    `json:"totalGames"`
	XP          int    `json:"xp"`
}

// Identity projects a User into the session-layer identity shape.
func (u *User) Identity() PlayerIdentity {
	return PlayerIdentity{
		ID:            u.ID,
		Name:          u.Name,
		CountryCode:   u.CountryCode,
		Authenticated: true,
		TotalWins:     u.TotalWins,
		TotalGoals:    u.TotalGoals,
		TotalGames:    u.TotalGames,
		XP:            u.XP,
	}
}
