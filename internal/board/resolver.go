package board

import (
	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
	"github.com/zyedidia/generic/mapset"
)

// Resolution is everything derived from the current selection for one
// render pass.
type Resolution struct {
	// Active is the selected human unit, nil when no unit is active.
	Active *models.Located
	// Focus is the highlighted point: the selected point or the selected
	// unit's position.
	Focus *hexgrid.Point
	// Reachable holds the points the active unit may move into this turn.
	Reachable mapset.Set[hexgrid.Point]
	// Distances maps every reachable point to its step count.
	Distances map[hexgrid.Point]int
	// FriendlyPlannedMoves holds destinations already claimed by human units.
	FriendlyPlannedMoves mapset.Set[hexgrid.Point]
}

// IsFocus reports whether p is the focus point.
func (r Resolution) IsFocus(p hexgrid.Point) bool {
	return r.Focus != nil && *r.Focus == p
}

// CanReach reports whether the active unit may move into p.
func (r Resolution) CanReach(p hexgrid.Point) bool {
	return r.Active != nil && r.Reachable.Has(p)
}

// Resolve derives the active unit, its movement sets and the claimed
// destinations from a snapshot. It never fails: a selection that points at
// a unit that no longer exists resolves to no active unit.
func Resolve(snap models.Snapshot, geom Geometry, st Stats) Resolution {
	res := Resolution{
		Reachable:            mapset.New[hexgrid.Point](),
		Distances:            map[hexgrid.Point]int{},
		FriendlyPlannedMoves: friendlyPlannedMoves(snap),
	}

	switch sel := snap.Selection.(type) {
	case models.PointSelected:
		p := sel.Point
		res.Focus = &p
	case models.UnitSelected:
		loc, ok := snap.Unit(sel.ID)
		if !ok {
			return res
		}
		p := loc.Point
		res.Focus = &p
		// Computer units can be inspected but never commanded.
		if loc.Unit.Side != models.Human {
			return res
		}
		res.Active = &loc
		speed := st.Speed(loc.Unit.Class)
		blocked := BlockedFor(snap)
		res.Reachable = geom.Reachable(loc.Point, speed, blocked)
		res.Distances = geom.StepCounts(speed, blocked, loc.Point)
	}
	return res
}

// friendlyPlannedMoves collects the destinations of human planned moves.
// Computer intentions stay hidden from the player.
func friendlyPlannedMoves(snap models.Snapshot) mapset.Set[hexgrid.Point] {
	out := mapset.New[hexgrid.Point]()
	for _, t := range snap.Tiles {
		for _, u := range t.Units {
			if u.Side == models.Human && u.PlannedMove != nil {
				out.Put(*u.PlannedMove)
			}
		}
	}
	return out
}

// BlockedFor treats off-grid points and points held by the computer side as
// impassable.
func BlockedFor(snap models.Snapshot) hexgrid.Blocked {
	return func(p hexgrid.Point) bool {
		t, ok := snap.Tiles[p]
		if !ok {
			return true
		}
		if h, ok := t.Habitat(); ok && h.Side == models.Computer {
			return true
		}
		return len(t.UnitsOf(models.Computer)) > 0
	}
}
