// Package board turns a game snapshot into a renderable hex scene and
// turns clicks on that scene into move-planning intents.
package board

import (
	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
	"github.com/zyedidia/generic/mapset"
)

// Geometry places hexes in pixel space and answers movement queries.
// hexgrid.Layout is the production implementation.
type Geometry interface {
	PixelCenter(p hexgrid.Point) (x, y float64)
	Corners(p hexgrid.Point) []hexgrid.Vertex
	Reachable(start hexgrid.Point, speed int, blocked hexgrid.Blocked) mapset.Set[hexgrid.Point]
	StepCounts(speed int, blocked hexgrid.Blocked, start hexgrid.Point) map[hexgrid.Point]int
}

// Stats is the slice of the stat table the board needs.
type Stats interface {
	Speed(c models.UnitClass) int
	Abbreviation(c models.UnitClass) string
	TurnsRemaining(h *models.Habitat) (int, bool)
}
