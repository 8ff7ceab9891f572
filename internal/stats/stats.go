// Package stats holds the unit and building stat tables consumed by the
// board: names, abbreviations, movement and production numbers.
package stats

import (
	"fmt"
	"os"

	"github.com/gravitas-games/hexboard/pkg/models"
	"gopkg.in/yaml.v3"
)

// UnitStats describes a unit class.
type UnitStats struct {
	Name         string `yaml:"name"`
	Abbreviation string `yaml:"abbreviation"`
	Sensors      int    `yaml:"sensors"`
	Stealth      int    `yaml:"stealth"`
	Firepower    int    `yaml:"firepower"`
	Speed        int    `yaml:"speed"`
	Cost         int    `yaml:"cost"` // production points
	HelpText     string `yaml:"help_text"`
}

// BuildingStats describes a habitat building.
type BuildingStats struct {
	Name         string `yaml:"name"`
	Abbreviation string `yaml:"abbreviation"`
	Effect       string `yaml:"effect"`     // production effect shown in the habitat panel
	Production   int    `yaml:"production"` // extra production points per turn
	Sensors      int    `yaml:"sensors"`
	Firepower    int    `yaml:"firepower"`
	Cost         int    `yaml:"cost"`
}

// Table is the full stat table.
type Table struct {
	Units     map[models.UnitClass]UnitStats    `yaml:"units"`
	Buildings map[models.Building]BuildingStats `yaml:"buildings"`
}

// Default returns the built-in stat table.
func Default() *Table {
	return &Table{
		Units: map[models.UnitClass]UnitStats{
			models.Explorer: {
				Name: "Explorer", Abbreviation: "E",
				Sensors: 2, Stealth: 1, Firepower: 0, Speed: 3, Cost: 4,
				HelpText: "Fast and quiet. Scouts the depths but cannot fight.",
			},
			models.AttackSubmarine: {
				Name: "Attack Submarine", Abbreviation: "AS",
				Sensors: 1, Stealth: 1, Firepower: 2, Speed: 2, Cost: 6,
				HelpText: "General purpose warship armed with torpedoes.",
			},
			models.HunterKiller: {
				Name: "Hunter-Killer", Abbreviation: "HK",
				Sensors: 2, Stealth: 2, Firepower: 3, Speed: 2, Cost: 9,
				HelpText: "Silent hunter with wire-guided torpedoes.",
			},
			models.ColonyPod: {
				Name: "Colony Pod", Abbreviation: "CP",
				Sensors: 0, Stealth: 0, Firepower: 0, Speed: 1, Cost: 8,
				HelpText: "Founds a new habitat on an unclaimed mountain.",
			},
		},
		Buildings: map[models.Building]BuildingStats{
			models.SonarArray: {
				Name: "Sonar Array", Abbreviation: "SA", Sensors: 3, Cost: 5,
				Effect: "Detects submarines within three hexes.",
			},
			models.TorpedoBattery: {
				Name: "Torpedo Battery", Abbreviation: "TB", Firepower: 3, Cost: 6,
				Effect: "Fires on enemy submarines next to the habitat.",
			},
			models.Reactor: {
				Name: "Reactor", Abbreviation: "R", Production: 2, Cost: 8,
				Effect: "+2 production per turn.",
			},
			models.Hydroponics: {
				Name: "Hydroponics Bay", Abbreviation: "HB", Production: 1, Cost: 4,
				Effect: "+1 production per turn.",
			},
		},
	}
}

// Load reads a YAML stat file and layers it over the defaults. Entries in
// the file replace the default entry for the same key wholesale.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats file: %w", err)
	}

	var override Table
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse stats file: %w", err)
	}

	t := Default()
	for class, s := range override.Units {
		if s.Speed < 0 || s.Cost < 0 {
			return nil, fmt.Errorf("invalid stats for unit %q: negative speed or cost", class)
		}
		t.Units[class] = s
	}
	for b, s := range override.Buildings {
		if s.Cost < 0 || s.Production < 0 {
			return nil, fmt.Errorf("invalid stats for building %q: negative cost or production", b)
		}
		t.Buildings[b] = s
	}
	return t, nil
}

// Unit returns the stats of a unit class.
func (t *Table) Unit(c models.UnitClass) (UnitStats, bool) {
	s, ok := t.Units[c]
	return s, ok
}

// Building returns the stats of a building.
func (t *Table) Building(b models.Building) (BuildingStats, bool) {
	s, ok := t.Buildings[b]
	return s, ok
}

// Speed returns the movement allowance of a unit class, 0 if unknown.
func (t *Table) Speed(c models.UnitClass) int {
	return t.Units[c].Speed
}

// Name returns the display name of any buildable. Unknown entries fall back
// to their raw identifier.
func (t *Table) Name(b models.Buildable) string {
	switch v := b.(type) {
	case models.UnitClass:
		if s, ok := t.Units[v]; ok && s.Name != "" {
			return s.Name
		}
		return string(v)
	case models.Building:
		if s, ok := t.Buildings[v]; ok && s.Name != "" {
			return s.Name
		}
		return string(v)
	}
	return ""
}

// Abbreviation returns the short label of a unit class.
func (t *Table) Abbreviation(c models.UnitClass) string {
	if s, ok := t.Units[c]; ok && s.Abbreviation != "" {
		return s.Abbreviation
	}
	return "?"
}

// Cost returns the production cost of a buildable, 0 if unknown.
func (t *Table) Cost(b models.Buildable) int {
	switch v := b.(type) {
	case models.UnitClass:
		return t.Units[v].Cost
	case models.Building:
		return t.Buildings[v].Cost
	}
	return 0
}

// Production returns the per-turn production of a habitat: one base point
// plus whatever its buildings add. It is never less than 1.
func (t *Table) Production(h *models.Habitat) int {
	total := 1
	for _, b := range h.Buildings {
		total += t.Buildings[b].Production
	}
	if total < 1 {
		return 1
	}
	return total
}

// TurnsRemaining returns how many turns the habitat's order still needs,
// or false when it has no order.
func (t *Table) TurnsRemaining(h *models.Habitat) (int, bool) {
	if h.Order == nil {
		return 0, false
	}
	left := t.Cost(h.Order.Target) - h.Order.Progress
	if left <= 0 {
		return 0, true
	}
	rate := t.Production(h)
	return (left + rate - 1) / rate, true
}
