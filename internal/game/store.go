// Package game owns the authoritative board state. It applies intents
// coming from the board and hands out read-only snapshots for rendering.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/gravitas-games/hexboard/internal/archive"
	"github.com/gravitas-games/hexboard/internal/board"
	"github.com/gravitas-games/hexboard/internal/gamemap"
	"github.com/gravitas-games/hexboard/internal/intent"
	"github.com/gravitas-games/hexboard/internal/stats"
	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
)

var (
	// ErrGameOver is returned for any state change after the game ended.
	ErrGameOver = errors.New("game is over")
	// ErrUnknownUnit is returned when an intent names a unit that is gone.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrNotCommandable is returned for orders to computer units.
	ErrNotCommandable = errors.New("unit belongs to the computer")
	// ErrStaleMove is returned when a move's origin no longer matches the
	// unit's position.
	ErrStaleMove = errors.New("unit is no longer at the move origin")
	// ErrUnreachable is returned for destinations out of the unit's reach.
	ErrUnreachable = errors.New("destination is out of reach")
	// ErrNoHabitat is returned for habitat intents without a focused human
	// habitat.
	ErrNoHabitat = errors.New("no habitat of ours is selected")
	// ErrAlreadyBuilt is returned when ordering a building the habitat has.
	ErrAlreadyBuilt = errors.New("habitat already has that building")
	// ErrInvalidName is returned when submitting an incomplete name.
	ErrInvalidName = errors.New("habitat needs a full name and a 1-3 letter abbreviation")
	// ErrNotEditing is returned when the focused habitat is already named.
	ErrNotEditing = errors.New("habitat is already named")
)

// Store is the game state accessor. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	id        string
	gm        *gamemap.GameMap
	turn      int
	outcome   models.Outcome
	selection models.Selection
	hover     *hexgrid.Point
	log       []models.BattleReport
	contested bool

	stats    *stats.Table
	advancer TurnAdvancer
	archive  archive.Archive
	namer    func() string
}

// Option configures a Store.
type Option func(*Store)

// WithAdvancer replaces the default turn resolution.
func WithAdvancer(a TurnAdvancer) Option {
	return func(s *Store) { s.advancer = a }
}

// WithArchive mirrors every appended battle report into an archive.
func WithArchive(a archive.Archive) Option {
	return func(s *Store) { s.archive = a }
}

// WithNamer replaces the habitat name suggestion source.
func WithNamer(fn func() string) Option {
	return func(s *Store) { s.namer = fn }
}

// WithTurn sets the starting turn.
func WithTurn(turn int) Option {
	return func(s *Store) { s.turn = turn }
}

// WithLog seeds the battle log.
func WithLog(reports []models.BattleReport) Option {
	return func(s *Store) { s.log = append([]models.BattleReport(nil), reports...) }
}

// NewStore creates a store over an existing map.
func NewStore(id string, gm *gamemap.GameMap, st *stats.Table, opts ...Option) *Store {
	s := &Store{
		id:        id,
		gm:        gm,
		turn:      1,
		selection: models.NoSelection{},
		stats:     st,
		advancer:  DefaultAdvancer{Stats: st},
		namer:     suggestName,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.contested = s.holds(models.Human) && s.holds(models.Computer)
	return s
}

// ID returns the game id.
func (s *Store) ID() string { return s.id }

// Stats returns the stat table the store plays with.
func (s *Store) Stats() *stats.Table { return s.stats }

// Snapshot returns a read-only copy of the current state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() models.Snapshot {
	snap := models.Snapshot{
		Turn:      s.turn,
		Outcome:   s.outcome,
		Tiles:     s.gm.Tiles(),
		Selection: s.selection,
		Log:       append([]models.BattleReport(nil), s.log...),
	}
	if s.hover != nil {
		h := *s.hover
		snap.Hover = &h
	}
	return snap
}

// Apply performs one intent. Rejected intents leave the state untouched.
func (s *Store) Apply(in intent.Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch v := in.(type) {
	case intent.SelectPoint:
		s.selection = models.PointSelected{Point: v.Point}
	case intent.SelectUnit:
		s.selection = models.UnitSelected{ID: v.ID}
	case intent.SelectTile:
		s.selection = models.PointSelected{Point: v.Point}
		s.openEditor(v.Point)
	case intent.HoverPoint:
		p := v.Point
		s.hover = &p
	case intent.EndHover:
		s.hover = nil
	case intent.PlanMove:
		return s.planMove(v)
	case intent.BuildOrder:
		return s.buildOrder(v)
	case intent.NameEditorUpdate:
		return s.updateName(v)
	case intent.NameEditorSubmit:
		return s.submitName()
	case intent.EndTurn:
		return s.endTurn()
	case intent.NoOp, nil:
	default:
		return fmt.Errorf("unsupported intent %T", in)
	}
	return nil
}

func (s *Store) planMove(m intent.PlanMove) error {
	if s.outcome != models.Ongoing {
		return ErrGameOver
	}
	at, u, ok := s.gm.Locate(m.Unit)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownUnit, m.Unit)
	}
	if u.Side != models.Human {
		return fmt.Errorf("%w: %d", ErrNotCommandable, m.Unit)
	}
	if at != m.From {
		return fmt.Errorf("%w: unit %d is at %s, not %s", ErrStaleMove, m.Unit, at, m.From)
	}
	speed := s.stats.Speed(u.Class)
	if hexgrid.Distance(at, m.To) > speed {
		return fmt.Errorf("%w: %s from %s", ErrUnreachable, m.To, at)
	}
	blocked := board.BlockedFor(s.snapshotLocked())
	if !hexgrid.Reachable(at, speed, blocked).Has(m.To) {
		return fmt.Errorf("%w: %s from %s", ErrUnreachable, m.To, at)
	}
	dest := m.To
	u.PlannedMove = &dest
	return nil
}

// focusedHabitat returns the human habitat at the focus point.
func (s *Store) focusedHabitat() (*models.Habitat, hexgrid.Point, error) {
	var p hexgrid.Point
	switch sel := s.selection.(type) {
	case models.PointSelected:
		p = sel.Point
	case models.UnitSelected:
		at, _, ok := s.gm.Locate(sel.ID)
		if !ok {
			return nil, p, ErrNoHabitat
		}
		p = at
	default:
		return nil, p, ErrNoHabitat
	}
	c, ok := s.gm.Cell(p)
	if !ok || c.Habitat == nil || c.Habitat.Side != models.Human {
		return nil, p, ErrNoHabitat
	}
	return c.Habitat, p, nil
}

// openEditor starts naming an unnamed human habitat with a suggested name.
func (s *Store) openEditor(p hexgrid.Point) {
	c, ok := s.gm.Cell(p)
	if !ok || c.Habitat == nil || c.Habitat.Side != models.Human || c.Habitat.Name != nil {
		return
	}
	c.Habitat.Name = models.NameEditor{Full: s.namer()}
}

func (s *Store) buildOrder(b intent.BuildOrder) error {
	if s.outcome != models.Ongoing {
		return ErrGameOver
	}
	h, p, err := s.focusedHabitat()
	if err != nil {
		return err
	}
	if b.Choice == nil {
		h.Order = nil
		log.Printf("Cleared production order at %s", p)
		return nil
	}
	if building, ok := b.Choice.(models.Building); ok && h.Has(building) {
		return fmt.Errorf("%w: %s", ErrAlreadyBuilt, s.stats.Name(building))
	}
	if h.Order != nil && h.Order.Target == b.Choice {
		return nil
	}
	h.Order = &models.ProductionOrder{Target: b.Choice}
	log.Printf("Habitat at %s now producing %s", p, b.Choice.Key())
	return nil
}

func (s *Store) updateName(u intent.NameEditorUpdate) error {
	h, _, err := s.focusedHabitat()
	if err != nil {
		return err
	}
	var ed models.NameEditor
	switch n := h.Name.(type) {
	case nil:
	case models.NameEditor:
		ed = n
	default:
		return ErrNotEditing
	}
	switch u.Field {
	case models.FullNameField:
		ed.Full = strings.TrimSpace(u.Text)
	case models.AbbreviationField:
		ed.Abbreviation = truncateRunes(strings.ToUpper(strings.TrimSpace(u.Text)), models.MaxAbbreviationLen)
	default:
		return fmt.Errorf("unknown name field %d", u.Field)
	}
	h.Name = ed
	return nil
}

func (s *Store) submitName() error {
	h, p, err := s.focusedHabitat()
	if err != nil {
		return err
	}
	ed, ok := h.Editor()
	if !ok {
		return ErrNotEditing
	}
	if !ed.Valid() {
		return ErrInvalidName
	}
	h.Name = models.Name{Full: ed.Full, Abbreviation: ed.Abbreviation}
	log.Printf("Habitat at %s named %s (%s)", p, ed.Full, ed.Abbreviation)
	return nil
}

func (s *Store) endTurn() error {
	if s.outcome != models.Ongoing {
		return ErrGameOver
	}
	reports, err := s.advancer.Advance(s.gm, s.turn)
	if err != nil {
		return fmt.Errorf("failed to advance turn %d: %w", s.turn, err)
	}
	s.log = append(s.log, reports...)
	s.turn++
	s.updateOutcome()
	log.Printf("Game %s advanced to turn %d (%s)", s.id, s.turn, s.outcome)

	if s.archive != nil && len(reports) > 0 {
		if err := s.archive.Append(context.Background(), s.id, reports...); err != nil {
			log.Printf("Warning: failed to archive reports: %v", err)
		}
	}
	return nil
}

// holds reports whether side still has a habitat or a unit on the map.
func (s *Store) holds(side models.Side) bool {
	for _, c := range s.gm.Cells {
		if c.Habitat != nil && c.Habitat.Side == side {
			return true
		}
		for _, u := range c.Units {
			if u.Side == side {
				return true
			}
		}
	}
	return false
}

func (s *Store) updateOutcome() {
	switch {
	case !s.holds(models.Human):
		s.outcome = models.Defeat
	case s.contested && !s.holds(models.Computer):
		s.outcome = models.Victory
	}
}

// AppendReports adds battle reports produced outside the store, such as by
// a combat resolver, and mirrors them into the archive when one is set.
func (s *Store) AppendReports(ctx context.Context, reports ...models.BattleReport) error {
	s.mu.Lock()
	s.log = append(s.log, reports...)
	s.mu.Unlock()

	if s.archive == nil || len(reports) == 0 {
		return nil
	}
	if err := s.archive.Append(ctx, s.id, reports...); err != nil {
		return fmt.Errorf("failed to archive reports: %w", err)
	}
	return nil
}

// RestoreReports merges the archived log into the in-memory one. A habitat
// has one report per turn, so an archived report replaces a seeded report
// for the same habitat and turn.
func (s *Store) RestoreReports(ctx context.Context) error {
	if s.archive == nil {
		return nil
	}
	reports, err := s.archive.Load(ctx, s.id)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		return nil
	}
	s.mu.Lock()
	s.log = mergeReports(s.log, reports)
	s.mu.Unlock()
	log.Printf("Restored %d battle reports for game %s", len(reports), s.id)
	return nil
}

type reportKey struct {
	habitat string
	turn    int
}

// mergeReports combines two logs ordered by turn.
func mergeReports(seeded, archived []models.BattleReport) []models.BattleReport {
	index := make(map[reportKey]int, len(seeded)+len(archived))
	out := make([]models.BattleReport, 0, len(seeded)+len(archived))
	for _, logs := range [][]models.BattleReport{seeded, archived} {
		for _, r := range logs {
			k := reportKey{habitat: r.Habitat, turn: r.Turn}
			if i, ok := index[k]; ok {
				out[i] = r
				continue
			}
			index[k] = len(out)
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Turn < out[j].Turn })
	return out
}
