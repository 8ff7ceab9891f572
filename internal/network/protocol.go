package network

import (
	"encoding/json"
	"fmt"

	"github.com/gravitas-games/hexboard/internal/intent"
	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
)

// Message types - Client → Server
const (
	MsgTypeClick      = "click"
	MsgTypeHover      = "hover"
	MsgTypeLeave      = "leave"
	MsgTypeSelectUnit = "select_unit"
	MsgTypeSelectTile = "select_tile"
	MsgTypeBuildOrder = "build_order"
	MsgTypeNameUpdate = "name_update"
	MsgTypeNameSubmit = "name_submit"
	MsgTypeEndTurn    = "end_turn"
	MsgTypePing       = "ping"
)

// Message types - Server → Client
const (
	MsgTypeWelcome = "welcome"
	MsgTypeScene   = "scene"
	MsgTypeError   = "error"
	MsgTypePong    = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// PointPayload carries a hex coordinate for click, hover and select_tile
type PointPayload struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Point converts the payload to a grid point
func (p PointPayload) Point() hexgrid.Point {
	return hexgrid.Point{Q: p.Q, R: p.R}
}

// SelectUnitPayload is sent when the player picks a unit from the panel
type SelectUnitPayload struct {
	UnitID int `json:"unit_id"`
}

// BuildOrderPayload carries the dropdown value; "" clears the order
type BuildOrderPayload struct {
	Choice string `json:"choice"`
}

// NameUpdatePayload is sent on every keystroke in the naming form
type NameUpdatePayload struct {
	Field string `json:"field"` // "full" or "abbreviation"
	Text  string `json:"text"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to client after successful connection
type WelcomePayload struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	GameID   string `json:"game_id"`
}

// ScenePayload carries one rendered frame
type ScenePayload struct {
	Turn    int    `json:"turn"`
	Outcome string `json:"outcome"`
	SVG     string `json:"svg"`
	Panels  string `json:"panels"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Gesture classifies a decoded client message.
type Gesture int

const (
	// GestureIntent maps directly to a game intent.
	GestureIntent Gesture = iota
	// GestureClick must be translated against the current selection.
	GestureClick
	// GesturePing is answered with a pong.
	GesturePing
)

// Decoded is a parsed client message.
type Decoded struct {
	Gesture Gesture
	Point   hexgrid.Point // for GestureClick
	Intent  intent.Intent // for GestureIntent
}

// Decode parses a client message. Click messages are returned unresolved
// because their meaning depends on the board state at the time they are
// applied.
func Decode(msg ClientMessage) (Decoded, error) {
	switch msg.Type {
	case MsgTypePing:
		return Decoded{Gesture: GesturePing}, nil
	case MsgTypeClick:
		p, err := decodePoint(msg.Payload)
		if err != nil {
			return Decoded{}, err
		}
		return Decoded{Gesture: GestureClick, Point: p}, nil
	case MsgTypeHover:
		p, err := decodePoint(msg.Payload)
		if err != nil {
			return Decoded{}, err
		}
		return Decoded{Intent: intent.HoverPoint{Point: p}}, nil
	case MsgTypeLeave:
		return Decoded{Intent: intent.EndHover{}}, nil
	case MsgTypeSelectTile:
		p, err := decodePoint(msg.Payload)
		if err != nil {
			return Decoded{}, err
		}
		return Decoded{Intent: intent.SelectTile{Point: p}}, nil
	case MsgTypeSelectUnit:
		var payload SelectUnitPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return Decoded{}, fmt.Errorf("failed to parse select_unit payload: %w", err)
		}
		return Decoded{Intent: intent.SelectUnit{ID: models.UnitID(payload.UnitID)}}, nil
	case MsgTypeBuildOrder:
		var payload BuildOrderPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return Decoded{}, fmt.Errorf("failed to parse build_order payload: %w", err)
		}
		return Decoded{Intent: intent.ParseBuildOrder(payload.Choice)}, nil
	case MsgTypeNameUpdate:
		var payload NameUpdatePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return Decoded{}, fmt.Errorf("failed to parse name_update payload: %w", err)
		}
		var field models.NameField
		switch payload.Field {
		case models.FullNameField.String():
			field = models.FullNameField
		case models.AbbreviationField.String():
			field = models.AbbreviationField
		default:
			return Decoded{}, fmt.Errorf("unknown name field %q", payload.Field)
		}
		return Decoded{Intent: intent.NameEditorUpdate{Field: field, Text: payload.Text}}, nil
	case MsgTypeNameSubmit:
		return Decoded{Intent: intent.NameEditorSubmit{}}, nil
	case MsgTypeEndTurn:
		return Decoded{Intent: intent.EndTurn{}}, nil
	default:
		return Decoded{}, fmt.Errorf("unknown message type %q", msg.Type)
	}
}

func decodePoint(raw json.RawMessage) (hexgrid.Point, error) {
	var payload PointPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return hexgrid.Point{}, fmt.Errorf("failed to parse point payload: %w", err)
	}
	return payload.Point(), nil
}
