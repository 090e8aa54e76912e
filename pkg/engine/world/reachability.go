package world

import (
	"math"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/queue"
)

// Unreachable marks tiles a distance field never reached
const Unreachable = math.MaxFloat64

// Step costs are summed as whole thousandths so that routes of equal length
// always compare equal
const (
	costScale     = 1000
	cardinalUnits = 1000
	diagonalUnits = 1414
)

// Step costs for the distance field
const (
	CardinalCost = float64(cardinalUnits) / costScale
	DiagonalCost = float64(diagonalUnits) / costScale
)

func stepUnits(dir Direction) int64 {
	if dir.IsDiagonal() {
		return diagonalUnits
	}
	return cardinalUnits
}

// unreachableUnits marks tiles a search has not reached
const unreachableUnits = math.MaxInt64

// CanStep reports whether an actor standing at (x, y) may move one tile in dir.
// The target must be walkable, and a diagonal step may not squeeze between two
// opaque orthogonal neighbours.
func CanStep(m *Map, x, y int, dir Direction) bool {
	dx, dy := dir.Delta()
	if !m.IsWalkableAt(x+dx, y+dy) {
		return false
	}
	if dir.IsDiagonal() && m.IsOpaqueAt(x+dx, y) && m.IsOpaqueAt(x, y+dy) {
		return false
	}
	return true
}

// FloodFill returns, for every tile, whether it can be reached from start
// by 8-directional movement. The start tile itself is always reached.
func FloodFill(m *Map, start Point) []bool {
	reached := make([]bool, m.Size())
	if !m.InBounds(start.X, start.Y) {
		return reached
	}

	q := queue.New[int]()
	startIdx := m.Index(start.X, start.Y)
	reached[startIdx] = true
	q.Enqueue(startIdx)

	for !q.Empty() {
		idx := q.Dequeue()
		x, y := m.Coords(idx)
		for _, dir := range AllDirections() {
			if !CanStep(m, x, y, dir) {
				continue
			}
			dx, dy := dir.Delta()
			n := m.Index(x+dx, y+dy)
			if reached[n] {
				continue
			}
			reached[n] = true
			q.Enqueue(n)
		}
	}

	return reached
}

// CountReached returns how many entries of a flood fill result are set
func CountReached(reached []bool) int {
	n := 0
	for _, r := range reached {
		if r {
			n++
		}
	}
	return n
}

type frontierNode struct {
	idx  int
	dist int64
}

func newFrontier() *heap.Heap[frontierNode] {
	return heap.New[frontierNode](func(a, b frontierNode) bool {
		if a.dist == b.dist {
			return a.idx < b.idx
		}
		return a.dist < b.dist
	})
}

// DistanceField runs Dijkstra from every start tile. Cardinal steps cost 1,
// diagonal steps 1.414. Tiles that are unreachable, or further than maxDistance
// when it is positive, are set to Unreachable.
func DistanceField(m *Map, starts []Point, maxDistance float64) []float64 {
	units := make([]int64, m.Size())
	for i := range units {
		units[i] = unreachableUnits
	}
	limit := int64(unreachableUnits)
	if maxDistance > 0 {
		limit = int64(math.Round(maxDistance * costScale))
	}

	frontier := newFrontier()
	for _, s := range starts {
		if !m.InBounds(s.X, s.Y) {
			continue
		}
		idx := m.Index(s.X, s.Y)
		units[idx] = 0
		frontier.Push(frontierNode{idx: idx})
	}

	for frontier.Size() > 0 {
		node, _ := frontier.Pop()
		if node.dist > units[node.idx] {
			continue
		}
		x, y := m.Coords(node.idx)
		for _, dir := range AllDirections() {
			if !CanStep(m, x, y, dir) {
				continue
			}
			nd := node.dist + stepUnits(dir)
			if nd > limit {
				continue
			}
			dx, dy := dir.Delta()
			n := m.Index(x+dx, y+dy)
			if nd < units[n] {
				units[n] = nd
				frontier.Push(frontierNode{idx: n, dist: nd})
			}
		}
	}

	dist := make([]float64, len(units))
	for i, u := range units {
		if u == unreachableUnits {
			dist[i] = Unreachable
		} else {
			dist[i] = float64(u) / costScale
		}
	}
	return dist
}

// FindPath returns the cheapest walkable route from one tile to another,
// weighting every step by the cost of the tile entered. Both ends are included.
func FindPath(m *Map, from, to Point) ([]Point, bool) {
	if !m.InBounds(from.X, from.Y) || !m.InBounds(to.X, to.Y) {
		return nil, false
	}

	dist := make([]int64, m.Size())
	prev := make([]int, m.Size())
	for i := range dist {
		dist[i] = unreachableUnits
		prev[i] = -1
	}

	startIdx := m.Index(from.X, from.Y)
	goalIdx := m.Index(to.X, to.Y)
	dist[startIdx] = 0
	frontier := newFrontier()
	frontier.Push(frontierNode{idx: startIdx})

	for frontier.Size() > 0 {
		node, _ := frontier.Pop()
		if node.dist > dist[node.idx] {
			continue
		}
		if node.idx == goalIdx {
			break
		}
		x, y := m.Coords(node.idx)
		for _, dir := range AllDirections() {
			if !CanStep(m, x, y, dir) {
				continue
			}
			dx, dy := dir.Delta()
			n := m.Index(x+dx, y+dy)
			nd := node.dist + int64(math.Round(float64(stepUnits(dir))*m.Tiles[n].Cost()))
			if nd < dist[n] {
				dist[n] = nd
				prev[n] = node.idx
				frontier.Push(frontierNode{idx: n, dist: nd})
			}
		}
	}

	if dist[goalIdx] == unreachableUnits {
		return nil, false
	}

	var path []Point
	for idx := goalIdx; idx != -1; idx = prev[idx] {
		path = append(path, m.PointOf(idx))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
