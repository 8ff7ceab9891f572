package models

import "github.com/gravitas-games/hexboard/pkg/hexgrid"

// Selection is the UI-only interaction mode: NoSelection, PointSelected or
// UnitSelected.
type Selection interface {
	isSelection()
}

// NoSelection means nothing is selected.
type NoSelection struct{}

// PointSelected focuses a grid point.
type PointSelected struct {
	Point hexgrid.Point
}

// UnitSelected focuses a unit by id. The id may be stale; resolvers treat a
// missing unit as no selection.
type UnitSelected struct {
	ID UnitID
}

func (NoSelection) isSelection()   {}
func (PointSelected) isSelection() {}
func (UnitSelected) isSelection()  {}
