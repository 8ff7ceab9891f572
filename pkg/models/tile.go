package models

// FixedKind is the permanent terrain of a tile.
type FixedKind int

const (
	// Depths is open water.
	Depths FixedKind = iota
	// Mountain is a seamount that may host a habitat.
	Mountain
)

// String returns the terrain name used in scenarios.
func (k FixedKind) String() string {
	switch k {
	case Depths:
		return "depths"
	case Mountain:
		return "mountain"
	default:
		return "unknown"
	}
}

// Fixed is the terrain/feature tag of a tile. Habitat is only ever set on
// mountains.
type Fixed struct {
	Kind    FixedKind
	Habitat *Habitat
}

// Tile is an immutable snapshot of one grid cell.
type Tile struct {
	Fixed Fixed
	Units []Unit
}

// IsDepths reports whether the tile is open water.
func (t Tile) IsDepths() bool { return t.Fixed.Kind == Depths }

// Habitat returns the hosted habitat, if any.
func (t Tile) Habitat() (*Habitat, bool) {
	if t.Fixed.Kind != Mountain || t.Fixed.Habitat == nil {
		return nil, false
	}
	return t.Fixed.Habitat, true
}

// UnitsOf returns the units on the tile owned by side.
func (t Tile) UnitsOf(side Side) []Unit {
	var out []Unit
	for _, u := range t.Units {
		if u.Side == side {
			out = append(out, u)
		}
	}
	return out
}
