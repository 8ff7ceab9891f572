package board

import (
	"github.com/gravitas-games/hexboard/internal/intent"
	"github.com/gravitas-games/hexboard/pkg/hexgrid"
)

// Click maps a click on p to an intent. Only a selected human unit with p in
// reach produces a move; everything else re-selects the clicked point.
func Click(p hexgrid.Point, res Resolution) intent.Intent {
	if res.Active != nil && res.CanReach(p) {
		return intent.PlanMove{
			From: res.Active.Point,
			Unit: res.Active.Unit.ID,
			To:   p,
		}
	}
	return intent.SelectPoint{Point: p}
}

// Hover always emits a hover intent for p.
func Hover(p hexgrid.Point) intent.Intent {
	return intent.HoverPoint{Point: p}
}

// Leave always clears the hover.
func Leave() intent.Intent {
	return intent.EndHover{}
}
