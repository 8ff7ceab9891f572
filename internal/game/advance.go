package game

import (
	"log"
	"sort"

	"github.com/gravitas-games/hexboard/internal/gamemap"
	"github.com/gravitas-games/hexboard/internal/stats"
	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
)

// TurnAdvancer resolves one turn on the map. turn is the number of the turn
// being closed. Any battle reports it returns are appended to the log.
type TurnAdvancer interface {
	Advance(gm *gamemap.GameMap, turn int) ([]models.BattleReport, error)
}

// DefaultAdvancer carries out planned moves and production. It does not
// resolve combat.
type DefaultAdvancer struct {
	Stats *stats.Table
}

// Advance implements TurnAdvancer.
func (a DefaultAdvancer) Advance(gm *gamemap.GameMap, turn int) ([]models.BattleReport, error) {
	moved := executeMoves(gm)
	founded := settle(gm)
	events := progressProduction(gm, a.Stats)
	for _, ev := range events {
		if ev.Type != EventOrderProgress {
			log.Printf("Turn %d: %s at %s (%s, %s)", turn, ev.Type, ev.Point, ev.Habitat, ev.Target.Key())
		}
	}
	log.Printf("Turn %d resolved: %d moves, %d habitats founded, %d production events", turn, moved, founded, len(events))
	return nil, nil
}

type plannedMove struct {
	id models.UnitID
	to hexgrid.Point
}

// executeMoves moves every unit with a planned move unless its destination
// is held by the other side. Planned moves are cleared either way.
func executeMoves(gm *gamemap.GameMap) int {
	var moves []plannedMove
	for _, c := range gm.Cells {
		for i := range c.Units {
			u := &c.Units[i]
			if u.PlannedMove != nil {
				moves = append(moves, plannedMove{id: u.ID, to: *u.PlannedMove})
				u.PlannedMove = nil
			}
		}
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i].id < moves[j].id })

	moved := 0
	for _, m := range moves {
		_, u, ok := gm.Locate(m.id)
		if !ok {
			continue
		}
		dst, ok := gm.Cell(m.to)
		if !ok || heldByOther(dst, u.Side) {
			continue
		}
		if err := gm.MoveUnit(m.id, m.to); err != nil {
			log.Printf("Failed to move unit %d: %v", m.id, err)
			continue
		}
		moved++
	}
	return moved
}

func heldByOther(c *gamemap.Cell, side models.Side) bool {
	if c.Habitat != nil && c.Habitat.Side != side {
		return true
	}
	for _, u := range c.Units {
		if u.Side != side {
			return true
		}
	}
	return false
}

// settle turns a colony pod standing on a free mountain into a new, unnamed
// habitat.
func settle(gm *gamemap.GameMap) int {
	founded := 0
	for _, p := range sortedPoints(gm) {
		c := gm.Cells[p]
		if c.Kind != models.Mountain || c.Habitat != nil {
			continue
		}
		for _, u := range c.Units {
			if u.Class != models.ColonyPod {
				continue
			}
			if err := gm.FoundHabitat(p, &models.Habitat{Side: u.Side}); err != nil {
				log.Printf("Failed to found habitat at %s: %v", p, err)
				break
			}
			gm.RemoveUnit(u.ID)
			founded++
			break
		}
	}
	return founded
}

func sortedPoints(gm *gamemap.GameMap) []hexgrid.Point {
	pts := make([]hexgrid.Point, 0, len(gm.Cells))
	for p := range gm.Cells {
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
