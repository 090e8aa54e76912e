package generator

import (
	"fmt"

	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// YellowBrickRoad turns a cave into a forest clearing: the floor becomes
// grass, a road runs from the start to an exit on the far right, and a stream
// crosses the map from top to bottom.
type YellowBrickRoad struct{}

// NewYellowBrickRoad creates the forest road stage
func NewYellowBrickRoad() *YellowBrickRoad {
	return &YellowBrickRoad{}
}

// Name returns the name of this builder
func (b *YellowBrickRoad) Name() string {
	return "Yellow Brick Road"
}

// BuildMap lays the grass, the road and the stream, and puts the exit at the
// road's end
func (b *YellowBrickRoad) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if ctx.StartingPosition == nil {
		panic("YellowBrickRoad requires a starting position; place one in an earlier stage")
	}
	m := ctx.Map
	start := *ctx.StartingPosition
	m.Outdoors = true

	for i, t := range m.Tiles {
		if t == world.Floor {
			m.Tiles[i] = world.Grass
		}
	}

	startIdx := m.Index(start.X, start.Y)
	end, ok := nearestWalkable(m, world.Pt(m.Width-2, m.Height/2), func(idx int) bool { return idx == startIdx })
	if !ok {
		return ErrDegenerateMap
	}
	road, ok := world.FindPath(m, start, end)
	if !ok {
		return fmt.Errorf("%w: no route from %v to %v", ErrDegenerateMap, start, end)
	}

	for _, p := range road {
		b.pave(m, p.X, p.Y)
		for _, dir := range world.Cardinals() {
			dx, dy := dir.Delta()
			if m.IsWalkableAt(p.X+dx, p.Y+dy) {
				b.pave(m, p.X+dx, p.Y+dy)
			}
		}
	}
	ctx.TakeSnapshot()

	b.stream(r, m)
	ctx.SetExit(end)
	return nil
}

// pave lays road on a walkable tile that is not a staircase
func (b *YellowBrickRoad) pave(m *world.Map, x, y int) {
	if !m.IsPlayablePosition(x, y) {
		return
	}
	switch m.At(x, y) {
	case world.UpStairs, world.DownStairs:
		return
	}
	if m.IsWalkableAt(x, y) {
		m.Set(x, y, world.Road)
	}
}

// stream floods the grass along a path between a random point at the top of
// the map and one at the bottom. Water stays walkable, so nothing is cut off.
func (b *YellowBrickRoad) stream(r *rng.RNG, m *world.Map) {
	top, okTop := nearestWalkable(m, world.Pt(r.Range(1, m.Width-1), 1), nil)
	bottom, okBottom := nearestWalkable(m, world.Pt(r.Range(1, m.Width-1), m.Height-2), nil)
	if !okTop || !okBottom {
		return
	}
	path, ok := world.FindPath(m, top, bottom)
	if !ok {
		return
	}
	for _, p := range path {
		if m.At(p.X, p.Y) == world.Grass {
			m.Set(p.X, p.Y, world.ShallowWater)
		}
	}
}
