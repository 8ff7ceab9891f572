package board

import (
	"fmt"
	"regexp"
)

// Color is an SVG fill in #rrggbb form.
type Color string

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Valid reports whether c is a #rrggbb colour.
func (c Color) Valid() bool { return hexColor.MatchString(string(c)) }

// Palette holds every fill the renderer can choose.
type Palette struct {
	Selected         Color `yaml:"selected"`          // focused empty water
	SelectedOccupied Color `yaml:"selected_occupied"` // focused water with our units
	Claimed          Color `yaml:"claimed"`           // destination of one of our planned moves
	Hover            Color `yaml:"hover"`
	Depths           Color `yaml:"depths"`
	MountainSelected Color `yaml:"mountain_selected"`
	Mountain         Color `yaml:"mountain"`
	HabitatSelected  Color `yaml:"habitat_selected"`
	Habitat          Color `yaml:"habitat"`
	Text             Color `yaml:"text"`
	Stroke           Color `yaml:"stroke"`
}

// DefaultPalette is the built-in colour scheme.
var DefaultPalette = Palette{
	Selected:         "#4f9fd8",
	SelectedOccupied: "#2fd0a0",
	Claimed:          "#c9a227",
	Hover:            "#6fb4e6",
	Depths:           "#0b2e4f",
	MountainSelected: "#a08a70",
	Mountain:         "#6b5b4a",
	HabitatSelected:  "#e0a060",
	Habitat:          "#b06a30",
	Text:             "#f0f0f0",
	Stroke:           "#02111f",
}

// Merge returns p with every non-empty field of override applied.
func (p Palette) Merge(override Palette) Palette {
	pick := func(base, o Color) Color {
		if o != "" {
			return o
		}
		return base
	}
	return Palette{
		Selected:         pick(p.Selected, override.Selected),
		SelectedOccupied: pick(p.SelectedOccupied, override.SelectedOccupied),
		Claimed:          pick(p.Claimed, override.Claimed),
		Hover:            pick(p.Hover, override.Hover),
		Depths:           pick(p.Depths, override.Depths),
		MountainSelected: pick(p.MountainSelected, override.MountainSelected),
		Mountain:         pick(p.Mountain, override.Mountain),
		HabitatSelected:  pick(p.HabitatSelected, override.HabitatSelected),
		Habitat:          pick(p.Habitat, override.Habitat),
		Text:             pick(p.Text, override.Text),
		Stroke:           pick(p.Stroke, override.Stroke),
	}
}

// Validate checks every colour of a fully merged palette.
func (p Palette) Validate() error {
	fields := map[string]Color{
		"selected":          p.Selected,
		"selected_occupied": p.SelectedOccupied,
		"claimed":           p.Claimed,
		"hover":             p.Hover,
		"depths":            p.Depths,
		"mountain_selected": p.MountainSelected,
		"mountain":          p.Mountain,
		"habitat_selected":  p.HabitatSelected,
		"habitat":           p.Habitat,
		"text":              p.Text,
		"stroke":            p.Stroke,
	}
	for name, c := range fields {
		if !c.Valid() {
			return fmt.Errorf("invalid palette colour %s: %q", name, c)
		}
	}
	return nil
}
