package board

import (
	"strconv"

	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
)

// TileView is the renderable state of one hex.
type TileView struct {
	Point   hexgrid.Point
	CenterX float64
	CenterY float64
	Corners []hexgrid.Vertex
	Fill    Color
	Abbrev  TextLine
	Counter TextLine
	Focused bool
	Hovered bool
}

// Renderer composes tile views from a snapshot and its resolution.
type Renderer struct {
	geom       Geometry
	stats      Stats
	palette    Palette
	manyMarker string
	textSize   float64
}

// RendererOption customises a Renderer.
type RendererOption func(*Renderer)

// WithPalette overrides individual fills of the default palette.
func WithPalette(p Palette) RendererOption {
	return func(r *Renderer) { r.palette = r.palette.Merge(p) }
}

// WithManyMarker sets the text shown for tiles holding several of our units.
func WithManyMarker(marker string) RendererOption {
	return func(r *Renderer) {
		if marker != "" {
			r.manyMarker = marker
		}
	}
}

// WithTextSize sets the font size used for centring overlay text.
func WithTextSize(size float64) RendererOption {
	return func(r *Renderer) {
		if size > 0 {
			r.textSize = size
		}
	}
}

// NewRenderer creates a renderer over the given geometry and stat table.
func NewRenderer(geom Geometry, st Stats, opts ...RendererOption) *Renderer {
	r := &Renderer{
		geom:       geom,
		stats:      st,
		palette:    DefaultPalette,
		manyMarker: DefaultManyMarker,
		textSize:   12,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Palette returns the effective palette.
func (r *Renderer) Palette() Palette { return r.palette }

// Render produces one view per grid point, ordered by row then column.
func (r *Renderer) Render(snap models.Snapshot, res Resolution) []TileView {
	points := snap.Points()
	views := make([]TileView, 0, len(points))
	for _, p := range points {
		views = append(views, r.tile(snap, res, p, snap.Tiles[p]))
	}
	return views
}

func (r *Renderer) tile(snap models.Snapshot, res Resolution, p hexgrid.Point, t models.Tile) TileView {
	cx, cy := r.geom.PixelCenter(p)
	focused := res.IsFocus(p)
	hovered := snap.Hover != nil && *snap.Hover == p

	abbrev := r.abbreviation(t)
	counter := r.counter(t, res, p)
	top, bottom := placeLines(abbrev, counter, cx, cy, r.textSize)

	return TileView{
		Point:   p,
		CenterX: cx,
		CenterY: cy,
		Corners: r.geom.Corners(p),
		Fill:    r.fill(t, res, p, focused, hovered),
		Abbrev:  top,
		Counter: bottom,
		Focused: focused,
		Hovered: hovered,
	}
}

func (r *Renderer) fill(t models.Tile, res Resolution, p hexgrid.Point, focused, hovered bool) Color {
	pal := r.palette
	if t.IsDepths() {
		friendly := t.UnitsOf(models.Human)
		switch {
		case focused && len(friendly) > 0:
			return pal.SelectedOccupied
		case focused:
			return pal.Selected
		case anyPlanned(friendly):
			return pal.Claimed
		case res.FriendlyPlannedMoves.Has(p):
			return pal.Claimed
		case hovered:
			return pal.Hover
		default:
			return pal.Depths
		}
	}

	if _, ok := t.Habitat(); ok {
		switch {
		case focused:
			return pal.HabitatSelected
		case hovered:
			return pal.Hover
		default:
			return pal.Habitat
		}
	}

	switch {
	case focused:
		return pal.MountainSelected
	case res.FriendlyPlannedMoves.Has(p):
		return pal.Claimed
	case hovered:
		return pal.Hover
	default:
		return pal.Mountain
	}
}

func anyPlanned(units []models.Unit) bool {
	for _, u := range units {
		if u.HasPlannedMove() {
			return true
		}
	}
	return false
}

// abbreviation picks the top overlay line. Enemy units are never listed.
func (r *Renderer) abbreviation(t models.Tile) string {
	if h, ok := t.Habitat(); ok {
		if a := h.Abbreviation(); a != "" {
			return a
		}
	}
	friendly := t.UnitsOf(models.Human)
	switch len(friendly) {
	case 0:
		return ""
	case 1:
		return r.stats.Abbreviation(friendly[0].Class)
	default:
		return r.manyMarker
	}
}

// counter picks the bottom overlay line. A habitat's production countdown
// wins over the step distance.
func (r *Renderer) counter(t models.Tile, res Resolution, p hexgrid.Point) string {
	if h, ok := t.Habitat(); ok && h.Order != nil {
		if turns, ok := r.stats.TurnsRemaining(h); ok {
			return strconv.Itoa(turns)
		}
	}
	if !res.CanReach(p) {
		return ""
	}
	if d, ok := res.Distances[p]; ok {
		return strconv.Itoa(d)
	}
	return ""
}
