// Package intent defines the messages the board emits toward the game
// state owner. Every user gesture becomes exactly one Intent.
package intent

import (
	"fmt"

	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
)

// Kind names an intent variant.
type Kind string

const (
	KindSelectPoint      Kind = "select_point"
	KindSelectUnit       Kind = "select_unit"
	KindSelectTile       Kind = "select_tile"
	KindHoverPoint       Kind = "hover_point"
	KindEndHover         Kind = "end_hover"
	KindPlanMove         Kind = "plan_move"
	KindBuildOrder       Kind = "build_order"
	KindNameEditorUpdate Kind = "name_editor_update"
	KindNameEditorSubmit Kind = "name_editor_submit"
	KindEndTurn          Kind = "end_turn"
	KindNoOp             Kind = "no_op"
)

// Intent is one outbound request. The concrete types below are the only
// implementations.
type Intent interface {
	Kind() Kind
}

// SelectPoint focuses a grid point.
type SelectPoint struct{ Point hexgrid.Point }

// SelectUnit focuses a unit.
type SelectUnit struct{ ID models.UnitID }

// SelectTile focuses a point from the side panel and opens its habitat panel.
type SelectTile struct{ Point hexgrid.Point }

// HoverPoint marks the point under the pointer.
type HoverPoint struct{ Point hexgrid.Point }

// EndHover clears the hover mark.
type EndHover struct{}

// PlanMove queues a single-step destination for a unit.
type PlanMove struct {
	From hexgrid.Point
	Unit models.UnitID
	To   hexgrid.Point
}

// BuildOrder sets the focused habitat's production. A nil Choice clears it.
type BuildOrder struct{ Choice models.Buildable }

// NameEditorUpdate changes one field of the habitat naming form.
type NameEditorUpdate struct {
	Field models.NameField
	Text  string
}

// NameEditorSubmit confirms the habitat name in the editor.
type NameEditorSubmit struct{}

// EndTurn hands the turn to the resolver.
type EndTurn struct{}

// NoOp is emitted for input that maps to nothing.
type NoOp struct{}

func (SelectPoint) Kind() Kind      { return KindSelectPoint }
func (SelectUnit) Kind() Kind       { return KindSelectUnit }
func (SelectTile) Kind() Kind       { return KindSelectTile }
func (HoverPoint) Kind() Kind       { return KindHoverPoint }
func (EndHover) Kind() Kind         { return KindEndHover }
func (PlanMove) Kind() Kind         { return KindPlanMove }
func (BuildOrder) Kind() Kind       { return KindBuildOrder }
func (NameEditorUpdate) Kind() Kind { return KindNameEditorUpdate }
func (NameEditorSubmit) Kind() Kind { return KindNameEditorSubmit }
func (EndTurn) Kind() Kind          { return KindEndTurn }
func (NoOp) Kind() Kind             { return KindNoOp }

// ParseBuildOrder turns a dropdown value into a BuildOrder. The empty value
// clears the order; anything that is not an enumerated buildable becomes
// NoOp.
func ParseBuildOrder(key string) Intent {
	if key == "" {
		return BuildOrder{}
	}
	b, err := models.ParseBuildable(key)
	if err != nil {
		return NoOp{}
	}
	return BuildOrder{Choice: b}
}

// Describe renders an intent for log lines.
func Describe(in Intent) string {
	switch v := in.(type) {
	case SelectPoint:
		return fmt.Sprintf("%s(%s)", v.Kind(), v.Point)
	case SelectTile:
		return fmt.Sprintf("%s(%s)", v.Kind(), v.Point)
	case HoverPoint:
		return fmt.Sprintf("%s(%s)", v.Kind(), v.Point)
	case SelectUnit:
		return fmt.Sprintf("%s(%d)", v.Kind(), v.ID)
	case PlanMove:
		return fmt.Sprintf("%s(%s, %d, %s)", v.Kind(), v.From, v.Unit, v.To)
	case BuildOrder:
		if v.Choice == nil {
			return fmt.Sprintf("%s(none)", v.Kind())
		}
		return fmt.Sprintf("%s(%s)", v.Kind(), v.Choice.Key())
	case NameEditorUpdate:
		return fmt.Sprintf("%s(%s, %q)", v.Kind(), v.Field, v.Text)
	case nil:
		return "nil"
	default:
		return string(in.Kind())
	}
}
