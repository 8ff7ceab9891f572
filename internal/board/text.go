package board

import "unicode/utf8"

// DefaultManyMarker replaces the abbreviation when two or more of our units
// share a tile.
const DefaultManyMarker = "**"

// TextLine is one overlay string anchored in pixel space.
type TextLine struct {
	Text string
	X    float64
	Y    float64
}

// centerOffset returns the x shift that keeps text centred on the hex for
// a font sized relative to the hex.
func centerOffset(text string, size float64) float64 {
	switch n := utf8.RuneCountInString(text); {
	case n == 0:
		return 0
	case n == 1:
		return -0.2 * size
	case n == 2:
		return -0.4 * size
	default:
		return -0.6 * size
	}
}

// placeLines positions the abbreviation above the centre and the counter
// below it.
func placeLines(abbrev, counter string, cx, cy, size float64) (TextLine, TextLine) {
	top := TextLine{Text: abbrev, X: cx + centerOffset(abbrev, size), Y: cy - 0.1*size}
	bottom := TextLine{Text: counter, X: cx + centerOffset(counter, size), Y: cy + 0.55*size}
	return top, bottom
}
