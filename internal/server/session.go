package server

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/gravitas-games/hexboard/internal/board"
	"github.com/gravitas-games/hexboard/internal/game"
	"github.com/gravitas-games/hexboard/internal/intent"
	"github.com/gravitas-games/hexboard/internal/network"
	"github.com/gravitas-games/hexboard/internal/scene"
	"github.com/gravitas-games/hexboard/pkg/models"
)

// Session binds one game store to the players watching it
type Session struct {
	ID        string
	CreatedAt time.Time

	store    *game.Store
	composer *scene.Composer

	// Player management. One player may watch from several connections.
	connections map[*Connection]*models.Player
	mu          sync.RWMutex

	// Serialises gesture handling so each click is translated against the
	// state it is applied to.
	gestureMu sync.Mutex
}

// NewSession creates a new game session
func NewSession(store *game.Store, composer *scene.Composer) *Session {
	log.Printf("Creating session: %s", store.ID())
	return &Session{
		ID:          store.ID(),
		CreatedAt:   time.Now(),
		store:       store,
		composer:    composer,
		connections: make(map[*Connection]*models.Player),
	}
}

// AddPlayer adds a player's connection to the session
func (s *Session) AddPlayer(player *models.Player, conn *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connections[conn] = player
	log.Printf("Player %s (%s) joined session %s", player.Username, player.ID, s.ID)
}

// RemovePlayer removes one connection from the session. Other connections
// of the same player keep receiving scenes.
func (s *Session) RemovePlayer(conn *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player, exists := s.connections[conn]; exists {
		log.Printf("Player %s (%s) left session %s", player.Username, player.ID, s.ID)
		delete(s.connections, conn)
	}
}

// GetPlayers returns the distinct players in the session, ordered by id
func (s *Session) GetPlayers() []*models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool, len(s.connections))
	players := make([]*models.Player, 0, len(s.connections))
	for _, player := range s.connections {
		if seen[player.ID] {
			continue
		}
		seen[player.ID] = true
		players = append(players, player)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players
}

// Translate turns a decoded client message into an intent. Clicks are
// resolved against the current snapshot.
func (s *Session) Translate(d network.Decoded) intent.Intent {
	switch d.Gesture {
	case network.GestureClick:
		return board.Click(d.Point, s.composer.Resolve(s.store.Snapshot()))
	case network.GesturePing:
		return intent.NoOp{}
	default:
		if d.Intent == nil {
			return intent.NoOp{}
		}
		return d.Intent
	}
}

// HandleGesture translates and applies one client gesture.
func (s *Session) HandleGesture(d network.Decoded) (intent.Intent, error) {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	in := s.Translate(d)
	if err := s.store.Apply(in); err != nil {
		return in, fmt.Errorf("failed to apply %s: %w", intent.Describe(in), err)
	}
	return in, nil
}

// Frame renders the current scene as a server message.
func (s *Session) Frame() (*network.ServerMessage, error) {
	sc := s.composer.Compose(s.store.Snapshot())
	svg, panels, err := scene.Markup(sc)
	if err != nil {
		return nil, err
	}
	return &network.ServerMessage{
		Type: network.MsgTypeScene,
		Payload: network.ScenePayload{
			Turn:    sc.Turn,
			Outcome: sc.Outcome.String(),
			SVG:     svg,
			Panels:  panels,
		},
	}, nil
}

// BroadcastScene renders once and sends the frame to every player.
func (s *Session) BroadcastScene() {
	frame, err := s.Frame()
	if err != nil {
		log.Printf("Failed to render scene: %v", err)
		return
	}
	s.BroadcastMessage(frame)
}

// BroadcastMessage sends a message to all connected players
func (s *Session) BroadcastMessage(msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		conn.SendMessage(msg)
	}
}

// errorCode maps store errors to protocol error codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrGameOver):
		return "game_over"
	case errors.Is(err, game.ErrUnknownUnit), errors.Is(err, game.ErrStaleMove):
		return "stale_selection"
	case errors.Is(err, game.ErrNotCommandable), errors.Is(err, game.ErrUnreachable):
		return "illegal_move"
	case errors.Is(err, game.ErrNoHabitat), errors.Is(err, game.ErrAlreadyBuilt):
		return "illegal_order"
	case errors.Is(err, game.ErrInvalidName), errors.Is(err, game.ErrNotEditing):
		return "invalid_name"
	default:
		return "rejected"
	}
}
