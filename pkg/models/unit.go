package models

import "github.com/gravitas-games/hexboard/pkg/hexgrid"

// UnitID uniquely identifies a unit for its whole lifetime.
type UnitID int

// Unit is a snapshot of one unit on the board.
type Unit struct {
	ID    UnitID    `json:"id"`
	Side  Side      `json:"side"`
	Class UnitClass `json:"class"`
	// PlannedMove is the single destination queued for this turn; nil means
	// no move is planned.
	PlannedMove *hexgrid.Point `json:"plannedMove,omitempty"`
}

// HasPlannedMove reports whether a destination is queued.
func (u Unit) HasPlannedMove() bool { return u.PlannedMove != nil }

// Located pairs a unit with the point it occupies.
type Located struct {
	Point hexgrid.Point
	Unit  Unit
}
