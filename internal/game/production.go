package game

import (
	"log"

	"github.com/gravitas-games/hexboard/internal/gamemap"
	"github.com/gravitas-games/hexboard/internal/stats"
	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
)

// EventType represents the type of production event.
type EventType int

const (
	// EventOrderProgress is emitted when an order gains production.
	EventOrderProgress EventType = iota
	// EventOrderCompleted is emitted when an order is delivered.
	EventOrderCompleted
	// EventOrderBlocked is emitted when a finished order cannot be delivered.
	EventOrderBlocked
)

// String returns a human-readable representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventOrderProgress:
		return "OrderProgress"
	case EventOrderCompleted:
		return "OrderCompleted"
	case EventOrderBlocked:
		return "OrderBlocked"
	default:
		return "Unknown"
	}
}

// ProductionEvent describes what happened to one habitat's order during a
// turn.
type ProductionEvent struct {
	Type     EventType
	Point    hexgrid.Point
	Habitat  string
	Target   models.Buildable
	Progress int
	Unit     models.UnitID // set when a unit was delivered
}

// progressProduction adds one turn of output to every order on the map and
// delivers the finished ones.
func progressProduction(gm *gamemap.GameMap, st *stats.Table) []ProductionEvent {
	var events []ProductionEvent
	for _, p := range sortedPoints(gm) {
		c := gm.Cells[p]
		h := c.Habitat
		if h == nil || h.Order == nil || h.Order.Target == nil {
			continue
		}

		h.Order.Progress += st.Production(h)
		ev := ProductionEvent{
			Type:     EventOrderProgress,
			Point:    p,
			Habitat:  h.FullName(),
			Target:   h.Order.Target,
			Progress: h.Order.Progress,
		}
		if h.Order.Progress < st.Cost(h.Order.Target) {
			events = append(events, ev)
			continue
		}

		switch target := h.Order.Target.(type) {
		case models.Building:
			if !h.Has(target) {
				h.Buildings = append(h.Buildings, target)
			}
			ev.Type = EventOrderCompleted
		case models.UnitClass:
			id, err := gm.PlaceUnit(p, models.Unit{Side: h.Side, Class: target})
			if err != nil {
				log.Printf("Failed to deliver %s at %s: %v", target, p, err)
				ev.Type = EventOrderBlocked
				events = append(events, ev)
				continue
			}
			ev.Type = EventOrderCompleted
			ev.Unit = id
		}
		h.Order = nil
		events = append(events, ev)
	}
	return events
}
