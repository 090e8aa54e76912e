package generator

import (
	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
	"delving/pkg/game/spawn"
)

// Symmetry mirrors what a digger carves
type Symmetry int

const (
	NoSymmetry Symmetry = iota
	Horizontal
	Vertical
	BothAxes
)

// MaxSpawnsPerRegion caps how many entities one region or room receives
const MaxSpawnsPerRegion = 4

// paint carves floor around (x, y) with the given brush size and symmetry
func paint(m *world.Map, mode Symmetry, brush, x, y int) {
	switch mode {
	case NoSymmetry:
		applyPaint(m, brush, x, y)
	case Horizontal:
		centerX := m.Width / 2
		if x == centerX {
			applyPaint(m, brush, x, y)
		} else {
			dist := abs(centerX - x)
			applyPaint(m, brush, centerX+dist, y)
			applyPaint(m, brush, centerX-dist, y)
		}
	case Vertical:
		centerY := m.Height / 2
		if y == centerY {
			applyPaint(m, brush, x, y)
		} else {
			dist := abs(centerY - y)
			applyPaint(m, brush, x, centerY+dist)
			applyPaint(m, brush, x, centerY-dist)
		}
	case BothAxes:
		centerX := m.Width / 2
		centerY := m.Height / 2
		if x == centerX && y == centerY {
			applyPaint(m, brush, x, y)
		} else {
			distX := abs(centerX - x)
			distY := abs(centerY - y)
			applyPaint(m, brush, centerX+distX, y)
			applyPaint(m, brush, centerX-distX, y)
			applyPaint(m, brush, x, centerY+distY)
			applyPaint(m, brush, x, centerY-distY)
		}
	}
}

func applyPaint(m *world.Map, brush, x, y int) {
	if brush <= 1 {
		if m.IsPlayablePosition(x, y) {
			m.Set(x, y, world.Floor)
		}
		return
	}
	half := brush / 2
	for by := y - half; by < y-half+brush; by++ {
		for bx := x - half; bx < x-half+brush; bx++ {
			if m.IsPlayablePosition(bx, by) {
				m.Set(bx, by, world.Floor)
			}
		}
	}
}

// drawCorridor walks from a to b one axis step at a time, x first, carving
// every tile it crosses. It returns the tiles it turned into floor, in walking
// order.
func drawCorridor(m *world.Map, a, b world.Point) []int {
	return carvePath(m, doglegPath(a, b, true))
}

// doglegPath returns the L-shaped path from a to b, excluding a
func doglegPath(a, b world.Point, xFirst bool) []world.Point {
	var path []world.Point
	x, y := a.X, a.Y
	stepX := func() {
		for x != b.X {
			if x < b.X {
				x++
			} else {
				x--
			}
			path = append(path, world.Pt(x, y))
		}
	}
	stepY := func() {
		for y != b.Y {
			if y < b.Y {
				y++
			} else {
				y--
			}
			path = append(path, world.Pt(x, y))
		}
	}
	if xFirst {
		stepX()
		stepY()
	} else {
		stepY()
		stepX()
	}
	return path
}

// carvePath turns every playable tile of the path into floor and returns
// the ones that were not floor already, in path order
func carvePath(m *world.Map, path []world.Point) []int {
	var carved []int
	for _, p := range path {
		if !m.IsPlayablePosition(p.X, p.Y) {
			continue
		}
		idx := m.Index(p.X, p.Y)
		if m.Tiles[idx] != world.Floor {
			m.Tiles[idx] = world.Floor
			carved = append(carved, idx)
		}
	}
	return carved
}

// carveRect fills the rectangle with floor, staying off the perimeter
func carveRect(m *world.Map, r world.Rect) {
	r.ForEach(func(p world.Point) {
		if m.IsPlayablePosition(p.X, p.Y) {
			m.Set(p.X, p.Y, world.Floor)
		}
	})
}

// randomPointIn picks a tile inside the rectangle
func randomPointIn(r *rng.RNG, rect world.Rect) world.Point {
	return world.Point{X: r.Range(rect.X1, rect.X2), Y: r.Range(rect.Y1, rect.Y2)}
}

// tilesOfType returns the indices of every tile of type t, in index order
func tilesOfType(m *world.Map, t world.TileType) []int {
	var tiles []int
	for i, tile := range m.Tiles {
		if tile == t {
			tiles = append(tiles, i)
		}
	}
	return tiles
}

// spawnRegion populates one area (a room, a corridor or a Voronoi region) from
// the level's spawn table, placing at most limit entities. Larger depths roll
// more entities; the start and exit tiles and tiles that already hold
// something are skipped.
func spawnRegion(r *rng.RNG, ctx *BuildContext, area []int, table *spawn.Table, limit int) {
	candidates := make([]int, 0, len(area))
	for _, idx := range area {
		if !ctx.Map.IsWalkable(idx) || ctx.isReserved(idx) || ctx.SpawnAt(idx) {
			continue
		}
		candidates = append(candidates, idx)
	}

	count := r.RollDice(1, MaxSpawnsPerRegion+3) + ctx.Map.Depth - 4
	count = min(count, limit, len(candidates))
	if count <= 0 {
		return
	}

	for i := 0; i < count; i++ {
		pick := r.Intn(len(candidates))
		idx := candidates[pick]
		candidates = append(candidates[:pick], candidates[pick+1:]...)
		if tag := table.Roll(r); tag != "" {
			ctx.AddSpawn(idx, tag)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
