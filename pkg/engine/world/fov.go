package world

import (
	"github.com/zyedidia/generic/stack"
)

// FOVRadius is the default sight radius in tiles
const FOVRadius = 8

// OpacityMap is anything field of view can be computed over
type OpacityMap interface {
	Dimensions() (width, height int)
	IsOpaqueAt(x, y int) bool
}

// FOVFunc computes the set of tiles visible from origin within radius
type FOVFunc func(origin Point, radius int, m OpacityMap) []Point

// octant maps local (depth, col) coordinates to map offsets:
// dx = col*xx + depth*xy, dy = col*yx + depth*yy.
// Within an octant col runs from 0 to depth.
type octant struct {
	xx, xy, yx, yy int
}

var octants = [8]octant{
	{1, 0, 0, -1},
	{-1, 0, 0, -1},
	{0, 1, -1, 0},
	{0, 1, 1, 0},
	{1, 0, 0, 1},
	{-1, 0, 0, 1},
	{0, -1, -1, 0},
	{0, -1, 1, 0},
}

// slope is an exact rational num/den with den > 0
type slope struct {
	num, den int
}

// tileSlope is the slope through the near edge of the tile at (depth, col)
func tileSlope(depth, col int) slope {
	return slope{num: 2*col - 1, den: 2 * depth}
}

// scanRow is one row of an octant bounded by two slopes
type scanRow struct {
	oct   int
	depth int
	start slope
	end   slope
}

func firstRow(oct int) scanRow {
	return scanRow{oct: oct, depth: 1, start: slope{0, 1}, end: slope{1, 1}}
}

func (r scanRow) next() scanRow {
	return scanRow{oct: r.oct, depth: r.depth + 1, start: r.start, end: r.end}
}

// minCol rounds depth*start to the nearest column, ties up
func (r scanRow) minCol() int {
	return floorDiv(2*r.depth*r.start.num+r.start.den, 2*r.start.den)
}

// maxCol rounds depth*end to the nearest column, ties down
func (r scanRow) maxCol() int {
	return ceilDiv(2*r.depth*r.end.num-r.end.den, 2*r.end.den)
}

// isSymmetric reports whether the centre of the tile lies within the row's slopes
func (r scanRow) isSymmetric(col int) bool {
	return col*r.start.den >= r.depth*r.start.num && col*r.end.den <= r.depth*r.end.num
}

type shadowcaster struct {
	m       OpacityMap
	origin  Point
	radius  int
	width   int
	height  int
	seen    []bool
	visible []Point
}

func newShadowcaster(origin Point, radius int, m OpacityMap) *shadowcaster {
	w, h := m.Dimensions()
	if origin.X < 0 || origin.X >= w || origin.Y < 0 || origin.Y >= h {
		return nil
	}
	if radius < 0 {
		radius = 0
	}

	s := &shadowcaster{
		m:      m,
		origin: origin,
		radius: radius,
		width:  w,
		height: h,
		seen:   make([]bool, w*h),
	}
	s.mark(origin.X, origin.Y)
	return s
}

func (s *shadowcaster) position(r scanRow, col int) (int, int) {
	o := octants[r.oct]
	return s.origin.X + col*o.xx + r.depth*o.xy, s.origin.Y + col*o.yx + r.depth*o.yy
}

func (s *shadowcaster) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

func (s *shadowcaster) isWall(r scanRow, col int) bool {
	x, y := s.position(r, col)
	if !s.inBounds(x, y) {
		return true
	}
	return s.m.IsOpaqueAt(x, y)
}

func (s *shadowcaster) reveal(r scanRow, col int) {
	x, y := s.position(r, col)
	if !s.inBounds(x, y) {
		return
	}
	dx, dy := x-s.origin.X, y-s.origin.Y
	if dx*dx+dy*dy > s.radius*s.radius {
		return
	}
	s.mark(x, y)
}

func (s *shadowcaster) mark(x, y int) {
	idx := y*s.width + x
	if s.seen[idx] {
		return
	}
	s.seen[idx] = true
	s.visible = append(s.visible, Point{X: x, Y: y})
}

// scan walks one row, revealing tiles and handing every row that still
// needs scanning to next.
func (s *shadowcaster) scan(r scanRow, next func(scanRow)) {
	if r.depth > s.radius {
		return
	}

	minCol, maxCol := r.minCol(), r.maxCol()
	hasPrev, prevWall := false, false
	for col := minCol; col <= maxCol; col++ {
		wall := s.isWall(r, col)
		if wall || r.isSymmetric(col) {
			s.reveal(r, col)
		}
		if hasPrev && prevWall && !wall {
			r.start = tileSlope(r.depth, col)
		}
		if hasPrev && !prevWall && wall {
			n := r.next()
			n.end = tileSlope(r.depth, col)
			next(n)
		}
		hasPrev, prevWall = true, wall
	}
	if hasPrev && !prevWall {
		next(r.next())
	}
}

// FieldOfView computes visible tiles with recursive symmetric shadowcasting.
// The origin is always visible; a transparent tile is visible from another
// exactly when the reverse holds.
func FieldOfView(origin Point, radius int, m OpacityMap) []Point {
	s := newShadowcaster(origin, radius, m)
	if s == nil {
		return nil
	}

	var recurse func(scanRow)
	recurse = func(r scanRow) {
		s.scan(r, recurse)
	}
	for oct := range octants {
		recurse(firstRow(oct))
	}
	return s.visible
}

// FieldOfViewSweep computes the same visible set as FieldOfView using an
// explicit work stack instead of recursion.
func FieldOfViewSweep(origin Point, radius int, m OpacityMap) []Point {
	s := newShadowcaster(origin, radius, m)
	if s == nil {
		return nil
	}

	rows := stack.New[scanRow]()
	for oct := len(octants) - 1; oct >= 0; oct-- {
		rows.Push(firstRow(oct))
	}
	for rows.Size() > 0 {
		s.scan(rows.Pop(), rows.Push)
	}
	return s.visible
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
