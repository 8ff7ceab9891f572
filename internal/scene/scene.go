// Package scene assembles the board SVG and the HTML side panels sent to
// clients.
package scene

import (
	"fmt"

	"github.com/gravitas-games/hexboard/internal/board"
	"github.com/gravitas-games/hexboard/internal/combatlog"
	"github.com/gravitas-games/hexboard/internal/stats"
	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
)

// Scene is everything one render pass produces.
type Scene struct {
	Turn    int
	Outcome models.Outcome
	ViewBox string
	Width   float64
	Height  float64
	Palette board.Palette
	Tiles   []board.TileView
	Habitat *HabitatPanel
	Units   []UnitLine
	Log     []combatlog.Entry
}

// Banner returns the end-of-game message, or "" while the game goes on.
func (s Scene) Banner() string {
	switch s.Outcome {
	case models.Victory:
		return "Victory! The trench is ours."
	case models.Defeat:
		return "Defeat. Our last outpost has gone silent."
	}
	return ""
}

// HabitatPanel describes the focused habitat.
type HabitatPanel struct {
	Point          hexgrid.Point
	Ours           bool
	Name           string
	Abbreviation   string
	Editing        bool
	Editor         models.NameEditor
	EditorValid    bool
	Buildings      []BuildingLine
	Production     int
	Order          string
	TurnsRemaining int
	Options        []Option
}

// BuildingLine is one building in the habitat panel.
type BuildingLine struct {
	Name   string
	Effect string
}

// Option is one entry of the production dropdown.
type Option struct {
	Key      string
	Label    string
	Selected bool
}

// UnitLine is one unit listed for the focused tile.
type UnitLine struct {
	ID        models.UnitID
	Ours      bool
	Active    bool
	Name      string
	Abbrev    string
	Sensors   int
	Stealth   int
	Firepower int
	Speed     int
	HelpText  string
	Planned   string
}

// Composer builds scenes from snapshots.
type Composer struct {
	layout    hexgrid.Layout
	stats     *stats.Table
	renderer  *board.Renderer
	presenter *combatlog.Presenter
}

// NewComposer creates a composer. Renderer options customise the board.
func NewComposer(layout hexgrid.Layout, st *stats.Table, opts ...board.RendererOption) *Composer {
	return &Composer{
		layout:    layout,
		stats:     st,
		renderer:  board.NewRenderer(layout, st, append([]board.RendererOption{board.WithTextSize(layout.Size * 0.6)}, opts...)...),
		presenter: combatlog.NewPresenter(st),
	}
}

// Resolve exposes the selection resolution used for a snapshot so callers
// can translate clicks against the same state that was drawn.
func (c *Composer) Resolve(snap models.Snapshot) board.Resolution {
	return board.Resolve(snap, c.layout, c.stats)
}

// Compose renders the board and panels for a snapshot.
func (c *Composer) Compose(snap models.Snapshot) Scene {
	res := c.Resolve(snap)
	points := snap.Points()
	minX, minY, maxX, maxY := c.layout.Bounds(points)

	sc := Scene{
		Turn:    snap.Turn,
		Outcome: snap.Outcome,
		ViewBox: fmt.Sprintf("%.1f %.1f %.1f %.1f", minX, minY, maxX-minX, maxY-minY),
		Width:   maxX - minX,
		Height:  maxY - minY,
		Palette: c.renderer.Palette(),
		Tiles:   c.renderer.Render(snap, res),
		Log:     c.presenter.Present(snap.Turn, snap.Log),
	}
	if res.Focus != nil {
		sc.Habitat = c.habitatPanel(snap, *res.Focus)
		sc.Units = c.unitLines(snap, res, *res.Focus)
	}
	return sc
}

func (c *Composer) habitatPanel(snap models.Snapshot, p hexgrid.Point) *HabitatPanel {
	tile, ok := snap.Tile(p)
	if !ok {
		return nil
	}
	h, ok := tile.Habitat()
	if !ok {
		return nil
	}

	panel := &HabitatPanel{
		Point:        p,
		Ours:         h.Side == models.Human,
		Name:         h.FullName(),
		Abbreviation: h.Abbreviation(),
		Production:   c.stats.Production(h),
	}
	if ed, editing := h.Editor(); editing {
		panel.Editing = true
		panel.Editor = ed
		panel.EditorValid = ed.Valid()
	}
	for _, b := range h.Buildings {
		s, _ := c.stats.Building(b)
		panel.Buildings = append(panel.Buildings, BuildingLine{Name: c.stats.Name(b), Effect: s.Effect})
	}
	if h.Order != nil {
		panel.Order = c.stats.Name(h.Order.Target)
		panel.TurnsRemaining, _ = c.stats.TurnsRemaining(h)
	}
	if panel.Ours {
		panel.Options = c.options(h)
	}
	return panel
}

// options lists the buildables a habitat may order. Buildings it already
// has are left out.
func (c *Composer) options(h *models.Habitat) []Option {
	current := ""
	if h.Order != nil {
		current = h.Order.Target.Key()
	}
	opts := []Option{{Key: "", Label: "Nothing", Selected: current == ""}}
	for _, key := range models.BuildableKeys() {
		b, err := models.ParseBuildable(key)
		if err != nil {
			continue
		}
		if building, ok := b.(models.Building); ok && h.Has(building) {
			continue
		}
		opts = append(opts, Option{
			Key:      key,
			Label:    fmt.Sprintf("%s (%d)", c.stats.Name(b), c.stats.Cost(b)),
			Selected: key == current,
		})
	}
	return opts
}

func (c *Composer) unitLines(snap models.Snapshot, res board.Resolution, p hexgrid.Point) []UnitLine {
	var out []UnitLine
	for _, u := range snap.UnitsOn(p) {
		s, _ := c.stats.Unit(u.Class)
		line := UnitLine{
			ID:        u.ID,
			Ours:      u.Side == models.Human,
			Active:    res.Active != nil && res.Active.Unit.ID == u.ID,
			Name:      c.stats.Name(u.Class),
			Abbrev:    c.stats.Abbreviation(u.Class),
			Sensors:   s.Sensors,
			Stealth:   s.Stealth,
			Firepower: s.Firepower,
			Speed:     s.Speed,
			HelpText:  s.HelpText,
		}
		if line.Ours && u.PlannedMove != nil {
			line.Planned = u.PlannedMove.String()
		}
		out = append(out, line)
	}
	return out
}
