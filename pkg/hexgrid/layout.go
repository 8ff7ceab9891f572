package hexgrid

import "math"

// Vertex is a pixel-space corner of a hex polygon.
type Vertex struct {
	X float64
	Y float64
}

// Layout places pointy-top hexes in pixel space.
// Size is the hex radius (corner to center) in pixels.
type Layout struct {
	Size    float64
	OriginX float64
	OriginY float64
}

// PixelCenter converts an axial point to the pixel center of its hex.
func (l Layout) PixelCenter(p Point) (x, y float64) {
	// pointy-top: x = size*sqrt(3)*(q + r/2); y = size*3/2*r
	x = l.OriginX + l.Size*math.Sqrt(3)*(float64(p.Q)+float64(p.R)/2.0)
	y = l.OriginY + l.Size*1.5*float64(p.R)
	return
}

// Corners returns the six polygon vertices of the hex at p, clockwise
// starting from the upper-right corner.
func (l Layout) Corners(p Point) []Vertex {
	cx, cy := l.PixelCenter(p)
	out := make([]Vertex, 0, 6)
	for i := 0; i < 6; i++ {
		angle := math.Pi / 180 * float64(60*i-30)
		out = append(out, Vertex{
			X: cx + l.Size*math.Cos(angle),
			Y: cy + l.Size*math.Sin(angle),
		})
	}
	return out
}

// Bounds returns the pixel bounding box of the given points, padded by one hex.
func (l Layout) Bounds(points []Point) (minX, minY, maxX, maxY float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		x, y := l.PixelCenter(p)
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return minX - l.Size, minY - l.Size, maxX + l.Size, maxY + l.Size
}
