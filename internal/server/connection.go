package server

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gravitas-games/hexboard/internal/intent"
	"github.com/gravitas-games/hexboard/internal/network"
	"github.com/gravitas-games/hexboard/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	ws      *websocket.Conn
	server  *Server
	session *Session

	// Player information (set after authentication)
	player *models.Player

	// Buffered channel for outbound messages
	send chan []byte

	closeOnce sync.Once
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server, player *models.Player) *Connection {
	return &Connection{
		ws:      ws,
		server:  server,
		session: server.session,
		player:  player,
		send:    make(chan []byte, 256),
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	c.join()

	go c.writePump()
	c.readPump() // Blocking
}

// join registers the player and sends the welcome and the first frame.
func (c *Connection) join() {
	c.player.Connected = true
	c.player.ConnectedAt = time.Now()
	c.player.GameID = c.session.ID
	c.session.AddPlayer(c.player, c)

	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			PlayerID: c.player.ID,
			Username: c.player.Username,
			GameID:   c.session.ID,
		},
	})

	frame, err := c.session.Frame()
	if err != nil {
		log.Printf("Failed to render scene for %s: %v", c.player.Username, err)
		return
	}
	c.SendMessage(frame)
}

// readPump pumps messages from the WebSocket connection to the session
func (c *Connection) readPump() {
	defer c.Close()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			return
		}
	}
}

// handleMessage decodes a gesture, applies it and broadcasts the new scene
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	decoded, err := network.Decode(*msg)
	if err != nil {
		log.Printf("Rejected message from %s: %v", c.player.Username, err)
		c.SendError("invalid_message", err.Error())
		return
	}

	if decoded.Gesture == network.GesturePing {
		c.SendMessage(&network.ServerMessage{
			Type:    network.MsgTypePong,
			Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
		})
		return
	}

	in, err := c.session.HandleGesture(decoded)
	if err != nil {
		log.Printf("Rejected gesture from %s: %v", c.player.Username, err)
		c.SendError(errorCode(err), err.Error())
		return
	}
	if _, noop := in.(intent.NoOp); noop {
		return
	}
	log.Printf("%s applied %s", c.player.Username, intent.Describe(in))
	c.session.BroadcastScene()
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close closes the connection. It is safe to call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		if c.player != nil {
			c.session.RemovePlayer(c)
			c.player.Connected = false
			c.player.LastSeen = time.Now()
		}
		close(c.send)
		c.ws.Close()
	})
}
