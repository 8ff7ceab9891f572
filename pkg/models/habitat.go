package models

import "unicode/utf8"

// MaxAbbreviationLen bounds habitat abbreviations so they fit on a hex.
const MaxAbbreviationLen = 3

// HabitatName is either a confirmed Name or an in-progress NameEditor.
// A habitat never holds both.
type HabitatName interface {
	isHabitatName()
}

// Name is a confirmed habitat name.
type Name struct {
	Full         string `json:"full"`
	Abbreviation string `json:"abbreviation"`
}

func (Name) isHabitatName() {}

// NameEditor holds the naming form while the player types.
type NameEditor struct {
	Full         string `json:"full"`
	Abbreviation string `json:"abbreviation"`
}

func (NameEditor) isHabitatName() {}

// Valid reports whether the editor may be submitted.
func (e NameEditor) Valid() bool {
	n := utf8.RuneCountInString(e.Abbreviation)
	return e.Full != "" && n >= 1 && n <= MaxAbbreviationLen
}

// NameField selects which editor field an update targets.
type NameField int

const (
	FullNameField NameField = iota
	AbbreviationField
)

// String returns the wire name of the field.
func (f NameField) String() string {
	switch f {
	case FullNameField:
		return "full"
	case AbbreviationField:
		return "abbreviation"
	default:
		return "unknown"
	}
}

// ProductionOrder is the habitat's current build.
type ProductionOrder struct {
	Target   Buildable
	Progress int
}

// Habitat is a production facility sited on a mountain.
type Habitat struct {
	Side      Side
	Name      HabitatName
	Buildings []Building
	Order     *ProductionOrder
}

// Abbreviation returns the confirmed abbreviation, or "" while unnamed.
func (h *Habitat) Abbreviation() string {
	if n, ok := h.Name.(Name); ok {
		return n.Abbreviation
	}
	return ""
}

// FullName returns the confirmed name, or a placeholder while unnamed.
func (h *Habitat) FullName() string {
	if n, ok := h.Name.(Name); ok {
		return n.Full
	}
	return "Unnamed habitat"
}

// Editor returns the name editor when the habitat is still being named.
func (h *Habitat) Editor() (NameEditor, bool) {
	e, ok := h.Name.(NameEditor)
	return e, ok
}

// Has reports whether the habitat already contains building b.
func (h *Habitat) Has(b Building) bool {
	for _, got := range h.Buildings {
		if got == b {
			return true
		}
	}
	return false
}
