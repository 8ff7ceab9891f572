package hexgrid

import "github.com/zyedidia/generic/mapset"

// Blocked reports whether a unit may not enter p. Callers fold grid bounds
// and obstacles into a single predicate.
type Blocked func(p Point) bool

// StepCounts runs a breadth-first walk from start and returns the number of
// steps to every point reachable within speed steps. The start point itself
// is not included.
func StepCounts(speed int, blocked Blocked, start Point) map[Point]int {
	steps := make(map[Point]int)
	if speed <= 0 {
		return steps
	}
	visited := mapset.New[Point]()
	visited.Put(start)
	frontier := []Point{start}
	for depth := 1; depth <= speed && len(frontier) > 0; depth++ {
		var next []Point
		for _, cur := range frontier {
			for _, nxt := range cur.Neighbors() {
				if visited.Has(nxt) {
					continue
				}
				visited.Put(nxt)
				if blocked != nil && blocked(nxt) {
					continue
				}
				steps[nxt] = depth
				next = append(next, nxt)
			}
		}
		frontier = next
	}
	return steps
}

// Reachable returns the set of points a unit at start could enter within
// speed steps. The start point itself is not included.
func Reachable(start Point, speed int, blocked Blocked) mapset.Set[Point] {
	out := mapset.New[Point]()
	for p := range StepCounts(speed, blocked, start) {
		out.Put(p)
	}
	return out
}

// Reachable is the Layout form of the package-level Reachable so a Layout
// satisfies the board's geometry contract on its own.
func (l Layout) Reachable(start Point, speed int, blocked Blocked) mapset.Set[Point] {
	return Reachable(start, speed, blocked)
}

// StepCounts is the Layout form of the package-level StepCounts.
func (l Layout) StepCounts(speed int, blocked Blocked, start Point) map[Point]int {
	return StepCounts(speed, blocked, start)
}
