// Package gamemap holds the mutable board grid owned by the game store.
package gamemap

import (
	"fmt"
	"log"

	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
)

// Cell is one mutable grid cell.
type Cell struct {
	Kind    models.FixedKind
	Habitat *models.Habitat
	Units   []models.Unit
}

// GameMap is a hex-shaped board of the given radius around the origin.
type GameMap struct {
	Radius int
	Cells  map[hexgrid.Point]*Cell

	nextUnit models.UnitID
}

// New creates an all-depths map with the specified radius.
func New(radius int) (*GameMap, error) {
	if radius < 0 {
		return nil, fmt.Errorf("invalid map radius %d", radius)
	}

	gm := &GameMap{
		Radius:   radius,
		Cells:    make(map[hexgrid.Point]*Cell),
		nextUnit: 1,
	}
	for _, p := range hexgrid.Disk(hexgrid.Point{}, radius) {
		gm.Cells[p] = &Cell{Kind: models.Depths}
	}

	log.Printf("Game map generated with radius %d (%d cells)", radius, len(gm.Cells))
	return gm, nil
}

// Cell retrieves the cell at p.
func (gm *GameMap) Cell(p hexgrid.Point) (*Cell, bool) {
	c, ok := gm.Cells[p]
	return c, ok
}

// SetMountain turns the cell at p into a mountain.
func (gm *GameMap) SetMountain(p hexgrid.Point) error {
	c, ok := gm.Cells[p]
	if !ok {
		return fmt.Errorf("point %s is off the map", p)
	}
	if len(c.Units) > 0 {
		return fmt.Errorf("point %s is occupied", p)
	}
	c.Kind = models.Mountain
	return nil
}

// FoundHabitat places a habitat on the mountain at p.
func (gm *GameMap) FoundHabitat(p hexgrid.Point, h *models.Habitat) error {
	c, ok := gm.Cells[p]
	if !ok {
		return fmt.Errorf("point %s is off the map", p)
	}
	if c.Kind != models.Mountain {
		return fmt.Errorf("habitats need a mountain, %s is %s", p, c.Kind)
	}
	if c.Habitat != nil {
		return fmt.Errorf("point %s already hosts a habitat", p)
	}
	c.Habitat = h
	return nil
}

// PlaceUnit puts u on the cell at p. A zero id is replaced by the
// next free id, which is returned.
func (gm *GameMap) PlaceUnit(p hexgrid.Point, u models.Unit) (models.UnitID, error) {
	c, ok := gm.Cells[p]
	if !ok {
		return 0, fmt.Errorf("point %s is off the map", p)
	}
	if u.ID == 0 {
		u.ID = gm.nextUnit
	}
	if _, _, exists := gm.Locate(u.ID); exists {
		return 0, fmt.Errorf("unit %d already exists", u.ID)
	}
	if u.ID >= gm.nextUnit {
		gm.nextUnit = u.ID + 1
	}
	c.Units = append(c.Units, u)
	return u.ID, nil
}

// Locate finds a unit by id.
func (gm *GameMap) Locate(id models.UnitID) (hexgrid.Point, *models.Unit, bool) {
	for p, c := range gm.Cells {
		for i := range c.Units {
			if c.Units[i].ID == id {
				return p, &c.Units[i], true
			}
		}
	}
	return hexgrid.Point{}, nil, false
}

// MoveUnit relocates a unit and clears its planned move.
func (gm *GameMap) MoveUnit(id models.UnitID, to hexgrid.Point) error {
	dst, ok := gm.Cells[to]
	if !ok {
		return fmt.Errorf("point %s is off the map", to)
	}
	from, u, ok := gm.Locate(id)
	if !ok {
		return fmt.Errorf("unit %d not found", id)
	}
	moved := *u
	moved.PlannedMove = nil
	src := gm.Cells[from]
	src.Units = removeUnit(src.Units, id)
	dst.Units = append(dst.Units, moved)
	return nil
}

// RemoveUnit deletes a unit from the board.
func (gm *GameMap) RemoveUnit(id models.UnitID) bool {
	p, _, ok := gm.Locate(id)
	if !ok {
		return false
	}
	c := gm.Cells[p]
	c.Units = removeUnit(c.Units, id)
	return true
}

func removeUnit(units []models.Unit, id models.UnitID) []models.Unit {
	out := units[:0]
	for _, u := range units {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

// Tiles returns an independent snapshot copy of every cell.
func (gm *GameMap) Tiles() map[hexgrid.Point]models.Tile {
	tiles := make(map[hexgrid.Point]models.Tile, len(gm.Cells))
	for p, c := range gm.Cells {
		tiles[p] = c.tile()
	}
	return tiles
}

func (c *Cell) tile() models.Tile {
	t := models.Tile{Fixed: models.Fixed{Kind: c.Kind}}
	if c.Habitat != nil {
		t.Fixed.Habitat = copyHabitat(c.Habitat)
	}
	if len(c.Units) > 0 {
		t.Units = make([]models.Unit, len(c.Units))
		for i, u := range c.Units {
			if u.PlannedMove != nil {
				dest := *u.PlannedMove
				u.PlannedMove = &dest
			}
			t.Units[i] = u
		}
	}
	return t
}

func copyHabitat(h *models.Habitat) *models.Habitat {
	cp := *h
	cp.Buildings = append([]models.Building(nil), h.Buildings...)
	if h.Order != nil {
		order := *h.Order
		cp.Order = &order
	}
	return &cp
}
