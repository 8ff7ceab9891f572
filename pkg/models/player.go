package models

import (
	"fmt"
	"strings"
	"time"
)

// Side identifies which player owns a unit or habitat.
type Side int

const (
	// Human is the player sitting at the board.
	Human Side = iota
	// Computer is the opposing AI player.
	Computer
)

// String returns the lowercase side name used in scenarios and logs.
func (s Side) String() string {
	switch s {
	case Human:
		return "human"
	case Computer:
		return "computer"
	default:
		return "unknown"
	}
}

// ParseSide accepts the names produced by String.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human", "":
		return Human, nil
	case "computer":
		return Computer, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

// Player represents an authenticated account driving the human side of a board
type Player struct {
	// From JWT claims
	ID       string `json:"id"`       // JWT subject
	Username string `json:"username"` // JWT claim
	Email    string `json:"email"`    // JWT claim

	// Connection state
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`
	LastSeen    time.Time `json:"last_seen"`

	// Board this player is watching
	GameID string `json:"game_id"`
}
