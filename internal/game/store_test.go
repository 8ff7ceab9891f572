package game

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gravitas-games/hexboard/internal/archive"
	"github.com/gravitas-games/hexboard/internal/gamemap"
	"github.com/gravitas-games/hexboard/internal/intent"
	"github.com/gravitas-games/hexboard/internal/stats"
	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
)

var home = hexgrid.Point{Q: 1, R: -1}

// newTestStore builds a radius 3 map with a human habitat, a human attack
// submarine at the origin and a computer explorer at (-2,0).
func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	gm, err := gamemap.New(3)
	if err != nil {
		t.Fatalf("failed to create map: %v", err)
	}
	if err := gm.SetMountain(home); err != nil {
		t.Fatalf("failed to set mountain: %v", err)
	}
	if err := gm.FoundHabitat(home, &models.Habitat{Side: models.Human}); err != nil {
		t.Fatalf("failed to found habitat: %v", err)
	}
	if _, err := gm.PlaceUnit(hexgrid.Point{}, models.Unit{ID: 1, Side: models.Human, Class: models.AttackSubmarine}); err != nil {
		t.Fatalf("failed to place unit: %v", err)
	}
	if _, err := gm.PlaceUnit(hexgrid.Point{Q: -2}, models.Unit{ID: 2, Side: models.Computer, Class: models.Explorer}); err != nil {
		t.Fatalf("failed to place unit: %v", err)
	}
	opts = append([]Option{WithNamer(func() string { return "Quiet Lobster" })}, opts...)
	return NewStore("test", gm, stats.Default(), opts...)
}

func mustApply(t *testing.T, s *Store, in intent.Intent) {
	t.Helper()
	if err := s.Apply(in); err != nil {
		t.Fatalf("%s failed: %v", intent.Describe(in), err)
	}
}

func TestSelectionAndHover(t *testing.T) {
	s := newTestStore(t)
	p := hexgrid.Point{Q: 2}

	mustApply(t, s, intent.SelectPoint{Point: p})
	if sel, ok := s.Snapshot().Selection.(models.PointSelected); !ok || sel.Point != p {
		t.Fatalf("expected point selection at %v, got %#v", p, s.Snapshot().Selection)
	}

	mustApply(t, s, intent.SelectUnit{ID: 1})
	if sel, ok := s.Snapshot().Selection.(models.UnitSelected); !ok || sel.ID != 1 {
		t.Fatalf("expected unit selection, got %#v", s.Snapshot().Selection)
	}

	mustApply(t, s, intent.HoverPoint{Point: p})
	if h := s.Snapshot().Hover; h == nil || *h != p {
		t.Fatalf("expected hover at %v, got %v", p, h)
	}
	mustApply(t, s, intent.EndHover{})
	if s.Snapshot().Hover != nil {
		t.Fatal("expected hover cleared")
	}
	mustApply(t, s, intent.NoOp{})
}

func TestPlanMoveValidation(t *testing.T) {
	s := newTestStore(t)
	origin := hexgrid.Point{}

	cases := []struct {
		name string
		move intent.PlanMove
		want error
	}{
		{"unknown unit", intent.PlanMove{From: origin, Unit: 9, To: hexgrid.Point{Q: 1}}, ErrUnknownUnit},
		{"computer unit", intent.PlanMove{From: hexgrid.Point{Q: -2}, Unit: 2, To: hexgrid.Point{Q: -1}}, ErrNotCommandable},
		{"stale origin", intent.PlanMove{From: hexgrid.Point{Q: 1}, Unit: 1, To: hexgrid.Point{Q: 2}}, ErrStaleMove},
		{"too far", intent.PlanMove{From: origin, Unit: 1, To: hexgrid.Point{Q: 3}}, ErrUnreachable},
		{"enemy held", intent.PlanMove{From: origin, Unit: 1, To: hexgrid.Point{Q: -2}}, ErrUnreachable},
	}
	for _, c := range cases {
		if err := s.Apply(c.move); !errors.Is(err, c.want) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, err)
		}
	}

	dest := hexgrid.Point{Q: 2, R: -1}
	mustApply(t, s, intent.PlanMove{From: origin, Unit: 1, To: dest})
	loc, ok := s.Snapshot().Unit(1)
	if !ok || loc.Unit.PlannedMove == nil || *loc.Unit.PlannedMove != dest {
		t.Fatalf("expected planned move to %v, got %+v", dest, loc.Unit)
	}
}

func TestSelectTileOpensEditor(t *testing.T) {
	s := newTestStore(t)
	mustApply(t, s, intent.SelectTile{Point: home})

	tile, _ := s.Snapshot().Tile(home)
	h, _ := tile.Habitat()
	ed, ok := h.Editor()
	if !ok || ed.Full != "Quiet Lobster" {
		t.Fatalf("expected prefilled editor, got %#v", h.Name)
	}

	mustApply(t, s, intent.NameEditorUpdate{Field: models.FullNameField, Text: "  Abyssal Gate "})
	mustApply(t, s, intent.NameEditorUpdate{Field: models.AbbreviationField, Text: "agate"})
	tile, _ = s.Snapshot().Tile(home)
	h, _ = tile.Habitat()
	ed, _ = h.Editor()
	if ed.Full != "Abyssal Gate" || ed.Abbreviation != "AGA" {
		t.Fatalf("unexpected editor state %#v", ed)
	}
	if h.Abbreviation() != "" {
		t.Fatal("abbreviation must stay hidden until the name is confirmed")
	}

	mustApply(t, s, intent.NameEditorSubmit{})
	tile, _ = s.Snapshot().Tile(home)
	h, _ = tile.Habitat()
	if h.FullName() != "Abyssal Gate" || h.Abbreviation() != "AGA" {
		t.Fatalf("expected confirmed name, got %#v", h.Name)
	}
	if err := s.Apply(intent.NameEditorSubmit{}); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}

	// Reopening a named habitat leaves the name alone.
	mustApply(t, s, intent.SelectTile{Point: home})
	tile, _ = s.Snapshot().Tile(home)
	h, _ = tile.Habitat()
	if _, editing := h.Editor(); editing {
		t.Fatal("named habitat reopened the editor")
	}
}

func TestSubmitIncompleteName(t *testing.T) {
	s := newTestStore(t)
	mustApply(t, s, intent.SelectTile{Point: home})
	if err := s.Apply(intent.NameEditorSubmit{}); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName without abbreviation, got %v", err)
	}
}

func TestHabitatIntentsNeedFocus(t *testing.T) {
	s := newTestStore(t)
	mustApply(t, s, intent.SelectPoint{Point: hexgrid.Point{Q: 2}})
	if err := s.Apply(intent.BuildOrder{Choice: models.Reactor}); !errors.Is(err, ErrNoHabitat) {
		t.Fatalf("expected ErrNoHabitat, got %v", err)
	}
	if err := s.Apply(intent.NameEditorUpdate{Field: models.FullNameField, Text: "x"}); !errors.Is(err, ErrNoHabitat) {
		t.Fatalf("expected ErrNoHabitat, got %v", err)
	}
}

func TestBuildOrder(t *testing.T) {
	s := newTestStore(t)
	mustApply(t, s, intent.SelectTile{Point: home})
	mustApply(t, s, intent.BuildOrder{Choice: models.Reactor})

	tile, _ := s.Snapshot().Tile(home)
	h, _ := tile.Habitat()
	if h.Order == nil || h.Order.Target != models.Reactor {
		t.Fatalf("expected reactor order, got %+v", h.Order)
	}

	mustApply(t, s, intent.BuildOrder{})
	tile, _ = s.Snapshot().Tile(home)
	h, _ = tile.Habitat()
	if h.Order != nil {
		t.Fatal("expected order cleared")
	}
}

func TestEndTurnProgressesProduction(t *testing.T) {
	s := newTestStore(t)
	mustApply(t, s, intent.SelectTile{Point: home})
	mustApply(t, s, intent.BuildOrder{Choice: models.Hydroponics})

	// Hydroponics costs 4 at one production point per turn.
	for i := 0; i < 3; i++ {
		mustApply(t, s, intent.EndTurn{})
	}
	tile, _ := s.Snapshot().Tile(home)
	h, _ := tile.Habitat()
	if h.Order == nil || h.Order.Progress != 3 {
		t.Fatalf("expected progress 3, got %+v", h.Order)
	}
	if left, _ := s.Stats().TurnsRemaining(h); left != 1 {
		t.Fatalf("expected 1 turn remaining, got %d", left)
	}

	mustApply(t, s, intent.EndTurn{})
	snap := s.Snapshot()
	tile, _ = snap.Tile(home)
	h, _ = tile.Habitat()
	if h.Order != nil || !h.Has(models.Hydroponics) {
		t.Fatalf("expected hydroponics built, got %+v", h)
	}
	if snap.Turn != 5 {
		t.Fatalf("expected turn 5, got %d", snap.Turn)
	}

	if err := s.Apply(intent.BuildOrder{Choice: models.Hydroponics}); !errors.Is(err, ErrAlreadyBuilt) {
		t.Fatalf("expected ErrAlreadyBuilt, got %v", err)
	}
}

func TestEndTurnDeliversUnits(t *testing.T) {
	s := newTestStore(t)
	mustApply(t, s, intent.SelectTile{Point: home})
	mustApply(t, s, intent.BuildOrder{Choice: models.Explorer})
	for i := 0; i < 4; i++ {
		mustApply(t, s, intent.EndTurn{})
	}
	units := s.Snapshot().UnitsOn(home)
	if len(units) != 1 || units[0].Class != models.Explorer || units[0].Side != models.Human {
		t.Fatalf("expected a new explorer on the habitat, got %+v", units)
	}
	if units[0].ID != 3 {
		t.Fatalf("expected the next free id 3, got %d", units[0].ID)
	}
}

func TestEndTurnMovesUnits(t *testing.T) {
	s := newTestStore(t)
	dest := hexgrid.Point{Q: 1}
	mustApply(t, s, intent.PlanMove{From: hexgrid.Point{}, Unit: 1, To: dest})
	mustApply(t, s, intent.EndTurn{})

	loc, ok := s.Snapshot().Unit(1)
	if !ok || loc.Point != dest {
		t.Fatalf("expected unit at %v, got %+v", dest, loc)
	}
	if loc.Unit.PlannedMove != nil {
		t.Fatal("expected planned move cleared")
	}
}

func TestOutcome(t *testing.T) {
	gm, _ := gamemap.New(2)
	_, _ = gm.PlaceUnit(hexgrid.Point{}, models.Unit{ID: 1, Side: models.Human, Class: models.Explorer})
	_, _ = gm.PlaceUnit(hexgrid.Point{Q: 2}, models.Unit{ID: 2, Side: models.Computer, Class: models.Explorer})
	s := NewStore("outcome", gm, stats.Default())

	gm.RemoveUnit(2)
	mustApply(t, s, intent.EndTurn{})
	if got := s.Snapshot().Outcome; got != models.Victory {
		t.Fatalf("expected victory, got %s", got)
	}
	if err := s.Apply(intent.EndTurn{}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

type fixedAdvancer struct{ reports []models.BattleReport }

func (a fixedAdvancer) Advance(gm *gamemap.GameMap, turn int) ([]models.BattleReport, error) {
	out := make([]models.BattleReport, len(a.reports))
	for i, r := range a.reports {
		r.Turn = turn
		out[i] = r
	}
	return out, nil
}

func TestAdvancerReportsAreArchived(t *testing.T) {
	arch := archive.NewMemoryArchive()
	adv := fixedAdvancer{reports: []models.BattleReport{{Habitat: "Alpha", Events: []models.BattleEvent{
		models.Detection{Observer: models.SonarArray, Enemy: models.Explorer},
	}}}}
	s := newTestStore(t, WithArchive(arch), WithAdvancer(adv))

	mustApply(t, s, intent.EndTurn{})
	snap := s.Snapshot()
	if len(snap.Log) != 1 || snap.Log[0].Turn != 1 {
		t.Fatalf("expected one turn-1 report, got %+v", snap.Log)
	}
	stored, _ := arch.Load(context.Background(), "test")
	if len(stored) != 1 {
		t.Fatalf("expected the report archived, got %d", len(stored))
	}
}

func TestAppendAndRestoreReports(t *testing.T) {
	ctx := context.Background()
	arch := archive.NewMemoryArchive()
	s := newTestStore(t, WithArchive(arch))
	if err := s.AppendReports(ctx, models.BattleReport{Habitat: "Alpha", Turn: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored := newTestStore(t, WithArchive(arch))
	if err := restored.RestoreReports(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log := restored.Snapshot().Log; len(log) != 1 || log[0].Habitat != "Alpha" {
		t.Fatalf("expected restored report, got %+v", log)
	}
}

func TestRestoreReportsMergesSeededLog(t *testing.T) {
	ctx := context.Background()
	arch := archive.NewMemoryArchive()
	detected := []models.BattleEvent{models.Detection{Observer: models.SonarArray, Enemy: models.Explorer}}
	if err := arch.Append(ctx, "test",
		models.BattleReport{Habitat: "Alpha", Turn: 1, Events: detected},
		models.BattleReport{Habitat: "Beta", Turn: 3},
	); err != nil {
		t.Fatalf("failed to seed archive: %v", err)
	}

	s := newTestStore(t, WithArchive(arch), WithLog([]models.BattleReport{
		{Habitat: "Alpha", Turn: 1},
		{Habitat: "Alpha", Turn: 2},
	}))
	if err := s.RestoreReports(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log := s.Snapshot().Log
	if len(log) != 3 {
		t.Fatalf("expected 3 merged reports, got %+v", log)
	}
	for i, want := range []int{1, 2, 3} {
		if log[i].Turn != want {
			t.Fatalf("expected report %d from turn %d, got %d", i, want, log[i].Turn)
		}
	}
	if len(log[0].Events) != 1 {
		t.Fatalf("expected the archived turn-1 report to win, got %+v", log[0])
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := `id: trench
turn: 3
radius: 3
mountains: ["-1,2"]
habitats:
  - at: "1,-1"
    name: Abyssal Gate
    abbreviation: AG
    buildings: [reactor]
    order: unit:hunter_killer
    progress: 2
  - at: "-3,3"
    side: computer
units:
  - id: 7
    at: "0,0"
    class: explorer
    planned: "1,0"
  - at: "2,0"
    side: computer
    class: attack_submarine
log:
  - habitat: Abyssal Gate
    turn: 2
    events:
      - kind: detection
        observer: building:reactor
        enemy: unit:explorer
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}

	s, err := LoadScenario(path, stats.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := s.Snapshot()
	if s.ID() != "trench" || snap.Turn != 3 {
		t.Fatalf("unexpected id/turn %s/%d", s.ID(), snap.Turn)
	}
	if len(snap.Tiles) != 37 {
		t.Fatalf("expected 37 tiles, got %d", len(snap.Tiles))
	}
	if tile, _ := snap.Tile(hexgrid.Point{Q: -1, R: 2}); tile.IsDepths() {
		t.Fatal("expected mountain at -1,2")
	}
	habitats := snap.Habitats()
	if len(habitats) != 2 {
		t.Fatalf("expected 2 habitats, got %d", len(habitats))
	}
	tile, _ := snap.Tile(home)
	h, ok := tile.Habitat()
	if !ok || h.Abbreviation() != "AG" || !h.Has(models.Reactor) || h.Order.Target != models.HunterKiller {
		t.Fatalf("unexpected habitat %+v", h)
	}
	loc, ok := snap.Unit(7)
	if !ok || loc.Unit.PlannedMove == nil || *loc.Unit.PlannedMove != (hexgrid.Point{Q: 1}) {
		t.Fatalf("unexpected unit 7: %+v", loc)
	}
	if len(snap.Log) != 1 || len(snap.Log[0].Events) != 1 {
		t.Fatalf("expected one logged event, got %+v", snap.Log)
	}
}

func TestLoadScenarioRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bad point":    "units:\n  - at: nowhere\n    class: explorer\n",
		"bad class":    "units:\n  - at: \"0,0\"\n    class: battleship\n",
		"off map":      "radius: 1\nmountains: [\"5,5\"]\n",
		"bad building": "habitats:\n  - at: \"0,0\"\n    buildings: [castle]\n",
	}
	for name, data := range cases {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("failed to write scenario: %v", err)
		}
		if _, err := LoadScenario(path, stats.Default()); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := LoadScenario(filepath.Join(dir, "missing.yaml"), stats.Default()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultScenarioBuilds(t *testing.T) {
	s, err := DefaultScenario("demo").Build(stats.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := s.Snapshot()
	units := 0
	for _, tile := range snap.Tiles {
		units += len(tile.Units)
	}
	if len(snap.Habitats()) != 2 || units != 3 {
		t.Fatalf("unexpected default position: %d habitats, %d units", len(snap.Habitats()), units)
	}
}
