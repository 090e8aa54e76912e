package world

import "math"

// Point is a tile coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p offset by (dx, dy)
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// DistanceSquared returns the squared euclidean distance to o
func (p Point) DistanceSquared(o Point) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// Pythagoras returns the euclidean distance to o
func (p Point) Pythagoras(o Point) float64 {
	return math.Sqrt(float64(p.DistanceSquared(o)))
}

// Manhattan returns the taxicab distance to o
func (p Point) Manhattan(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Chebyshev returns the chessboard distance to o
func (p Point) Chebyshev(o Point) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

// Rect is a half-open rectangle of tiles: X1 <= x < X2, Y1 <= y < Y2
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// NewRect creates a rectangle from its top-left corner and size
func NewRect(x, y, width, height int) Rect {
	return Rect{X1: x, Y1: y, X2: x + width, Y2: y + height}
}

// Width of the rectangle in tiles
func (r Rect) Width() int {
	return r.X2 - r.X1
}

// Height of the rectangle in tiles
func (r Rect) Height() int {
	return r.Y2 - r.Y1
}

// Area in tiles
func (r Rect) Area() int {
	return r.Width() * r.Height()
}

// Center returns the central tile; it lies inside any non-empty rectangle
func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2 - 1) / 2, Y: (r.Y1 + r.Y2 - 1) / 2}
}

// Contains returns true if p lies inside the rectangle
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X1 && p.X < r.X2 && p.Y >= r.Y1 && p.Y < r.Y2
}

// Intersects returns true if the rectangles share at least one tile
func (r Rect) Intersects(o Rect) bool {
	return r.X1 < o.X2 && r.X2 > o.X1 && r.Y1 < o.Y2 && r.Y2 > o.Y1
}

// Inset shrinks the rectangle by n tiles on every side (negative n grows it)
func (r Rect) Inset(n int) Rect {
	return Rect{X1: r.X1 + n, Y1: r.Y1 + n, X2: r.X2 - n, Y2: r.Y2 - n}
}

// ForEach calls fn for every tile in the rectangle, row by row
func (r Rect) ForEach(fn func(p Point)) {
	for y := r.Y1; y < r.Y2; y++ {
		for x := r.X1; x < r.X2; x++ {
			fn(Point{X: x, Y: y})
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
