package models

import (
	"sort"

	"github.com/gravitas-games/hexboard/pkg/hexgrid"
)

// Outcome is the end state of a game, if it has ended.
type Outcome int

const (
	Ongoing Outcome = iota
	Victory
	Defeat
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the authoritative game state, taken once
// per render pass.
type Snapshot struct {
	Turn      int
	Outcome   Outcome
	Tiles     map[hexgrid.Point]Tile
	Selection Selection
	Hover     *hexgrid.Point
	Log       []BattleReport
}

// Points returns every grid point ordered by row then column.
func (s Snapshot) Points() []hexgrid.Point {
	pts := make([]hexgrid.Point, 0, len(s.Tiles))
	for p := range s.Tiles {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].R != pts[j].R {
			return pts[i].R < pts[j].R
		}
		return pts[i].Q < pts[j].Q
	})
	return pts
}

// Tile returns the tile at p.
func (s Snapshot) Tile(p hexgrid.Point) (Tile, bool) {
	t, ok := s.Tiles[p]
	return t, ok
}

// Unit looks a unit up by id.
func (s Snapshot) Unit(id UnitID) (Located, bool) {
	for p, t := range s.Tiles {
		for _, u := range t.Units {
			if u.ID == id {
				return Located{Point: p, Unit: u}, true
			}
		}
	}
	return Located{}, false
}

// UnitsOn returns the units occupying p.
func (s Snapshot) UnitsOn(p hexgrid.Point) []Unit {
	return s.Tiles[p].Units
}

// Habitats returns every habitat with its point, ordered like Points.
func (s Snapshot) Habitats() []HabitatAt {
	var out []HabitatAt
	for _, p := range s.Points() {
		if h, ok := s.Tiles[p].Habitat(); ok {
			out = append(out, HabitatAt{Point: p, Habitat: h})
		}
	}
	return out
}

// HabitatAt pairs a habitat with its mountain.
type HabitatAt struct {
	Point   hexgrid.Point
	Habitat *Habitat
}
