package game

import (
	"fmt"
	"log"
	"os"

	"github.com/gravitas-games/hexboard/internal/gamemap"
	"github.com/gravitas-games/hexboard/internal/stats"
	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
	"gopkg.in/yaml.v3"
)

// Scenario is the YAML description of a starting position.
type Scenario struct {
	ID        string                `yaml:"id"`
	Turn      int                   `yaml:"turn"`
	Radius    int                   `yaml:"radius"`
	Mountains []string              `yaml:"mountains"`
	Habitats  []HabitatEntry         `yaml:"habitats"`
	Units     []UnitEntry            `yaml:"units"`
	Log       []models.ReportRecord `yaml:"log"`
}

// HabitatEntry places one habitat. Its point is made a mountain if needed.
type HabitatEntry struct {
	At           string   `yaml:"at"`
	Side         string   `yaml:"side"`
	Name         string   `yaml:"name"`
	Abbreviation string   `yaml:"abbreviation"`
	Buildings    []string `yaml:"buildings"`
	Order        string   `yaml:"order"`
	Progress     int      `yaml:"progress"`
}

// UnitEntry places one unit.
type UnitEntry struct {
	ID      int    `yaml:"id"`
	At      string `yaml:"at"`
	Side    string `yaml:"side"`
	Class   string `yaml:"class"`
	Planned string `yaml:"planned"`
}

// LoadScenario reads a scenario file and builds a store from it.
func LoadScenario(path string, st *stats.Table, opts ...Option) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}

	s, err := sc.Build(st, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	log.Printf("Loaded scenario %s from %s", s.ID(), path)
	return s, nil
}

// Build creates the map and store described by the scenario.
func (sc Scenario) Build(st *stats.Table, opts ...Option) (*Store, error) {
	if sc.Radius == 0 {
		sc.Radius = 4
	}
	if sc.Turn == 0 {
		sc.Turn = 1
	}
	if sc.ID == "" {
		sc.ID = "local"
	}

	gm, err := gamemap.New(sc.Radius)
	if err != nil {
		return nil, err
	}

	for _, raw := range sc.Mountains {
		p, err := hexgrid.ParsePoint(raw)
		if err != nil {
			return nil, fmt.Errorf("mountain: %w", err)
		}
		if err := gm.SetMountain(p); err != nil {
			return nil, fmt.Errorf("mountain: %w", err)
		}
	}

	for i, hs := range sc.Habitats {
		p, h, err := hs.habitat()
		if err != nil {
			return nil, fmt.Errorf("habitat %d: %w", i, err)
		}
		if c, ok := gm.Cell(p); ok && c.Kind != models.Mountain {
			if err := gm.SetMountain(p); err != nil {
				return nil, fmt.Errorf("habitat %d: %w", i, err)
			}
		}
		if err := gm.FoundHabitat(p, h); err != nil {
			return nil, fmt.Errorf("habitat %d: %w", i, err)
		}
	}

	for i, us := range sc.Units {
		p, u, err := us.unit()
		if err != nil {
			return nil, fmt.Errorf("unit %d: %w", i, err)
		}
		if _, err := gm.PlaceUnit(p, u); err != nil {
			return nil, fmt.Errorf("unit %d: %w", i, err)
		}
	}

	reports := make([]models.BattleReport, 0, len(sc.Log))
	for i, rec := range sc.Log {
		r, err := rec.Report()
		if err != nil {
			return nil, fmt.Errorf("log entry %d: %w", i, err)
		}
		reports = append(reports, r)
	}

	base := []Option{WithTurn(sc.Turn), WithLog(reports)}
	return NewStore(sc.ID, gm, st, append(base, opts...)...), nil
}

func (hs HabitatEntry) habitat() (hexgrid.Point, *models.Habitat, error) {
	p, err := hexgrid.ParsePoint(hs.At)
	if err != nil {
		return p, nil, err
	}
	side, err := models.ParseSide(hs.Side)
	if err != nil {
		return p, nil, err
	}
	h := &models.Habitat{Side: side}
	if hs.Name != "" {
		h.Name = models.Name{Full: hs.Name, Abbreviation: truncateRunes(hs.Abbreviation, models.MaxAbbreviationLen)}
	}
	for _, raw := range hs.Buildings {
		b, err := models.ParseBuildable("building:" + raw)
		if err != nil {
			return p, nil, err
		}
		h.Buildings = append(h.Buildings, b.(models.Building))
	}
	if hs.Order != "" {
		target, err := models.ParseBuildable(hs.Order)
		if err != nil {
			return p, nil, err
		}
		h.Order = &models.ProductionOrder{Target: target, Progress: hs.Progress}
	}
	return p, h, nil
}

func (us UnitEntry) unit() (hexgrid.Point, models.Unit, error) {
	p, err := hexgrid.ParsePoint(us.At)
	if err != nil {
		return p, models.Unit{}, err
	}
	side, err := models.ParseSide(us.Side)
	if err != nil {
		return p, models.Unit{}, err
	}
	class, err := models.ParseBuildable("unit:" + us.Class)
	if err != nil {
		return p, models.Unit{}, err
	}
	u := models.Unit{ID: models.UnitID(us.ID), Side: side, Class: class.(models.UnitClass)}
	if us.Planned != "" {
		dest, err := hexgrid.ParsePoint(us.Planned)
		if err != nil {
			return p, models.Unit{}, fmt.Errorf("planned move: %w", err)
		}
		u.PlannedMove = &dest
	}
	return p, u, nil
}

// DefaultScenario is the starting position used when no scenario file is
// configured: one unnamed habitat per side and a pair of scouts.
func DefaultScenario(id string) Scenario {
	return Scenario{
		ID:        id,
		Turn:      1,
		Radius:    5,
		Mountains: []string{"2,-3", "-2,1", "3,1", "-4,2", "0,4", "4,-2"},
		Habitats: []HabitatEntry{
			{At: "1,-1", Side: "human"},
			{At: "-2,4", Side: "computer", Name: "Black Smoker", Abbreviation: "BS", Order: "unit:attack_submarine"},
		},
		Units: []UnitEntry{
			{At: "0,0", Side: "human", Class: "explorer"},
			{At: "1,0", Side: "human", Class: "colony_pod"},
			{At: "-1,3", Side: "computer", Class: "explorer"},
		},
	}
}
