package hexgrid

// Disk returns all axial coordinates at distance <= r from center c,
// ordered by q then r.
func Disk(c Point, r int) []Point {
	if r < 0 {
		return nil
	}
	res := make([]Point, 0, 1+3*r*(r+1))
	for q := -r; q <= r; q++ {
		for r2 := max(-r, -q-r); r2 <= min(r, -q+r); r2++ {
			res = append(res, c.Add(Point{q, r2}))
		}
	}
	return res
}
