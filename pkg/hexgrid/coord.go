package hexgrid

import "fmt"

// Point is an axial (q, r) coordinate in pointy-top orientation.
// It is comparable and safe to use as a map key.
type Point struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// Directions for axial neighbors in pointy-top orientation.
var Directions = []Point{
	{+1, 0}, {+1, -1}, {0, -1}, {-1, 0}, {-1, +1}, {0, +1},
}

// Add returns a+b in axial space.
func (a Point) Add(b Point) Point { return Point{a.Q + b.Q, a.R + b.R} }

// Neighbors returns the six adjacent points in direction order.
func (a Point) Neighbors() []Point {
	out := make([]Point, 0, len(Directions))
	for _, d := range Directions {
		out = append(out, a.Add(d))
	}
	return out
}

// String renders the point as "q,r".
func (a Point) String() string { return fmt.Sprintf("%d,%d", a.Q, a.R) }

// ParsePoint parses the "q,r" form produced by String.
func ParsePoint(s string) (Point, error) {
	var p Point
	if _, err := fmt.Sscanf(s, "%d,%d", &p.Q, &p.R); err != nil {
		return Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return p, nil
}

// Distance returns the number of steps between two points on an open grid.
func Distance(a, b Point) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
