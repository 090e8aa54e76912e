package generator

import (
	"fmt"

	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// ChainFactory builds a fresh chain for a level of the given size
type ChainFactory func(depth, width, height int) *BuilderChain

// Transition grows a second, independently built level and grafts its right
// hand side onto the current map, for levels where one biome gives way to
// another.
type Transition struct {
	Label string
	Sub   ChainFactory
	// FromX is the first column taken from the second level; zero means half way
	FromX int
}

// NewTransition creates a transition into the level built by sub
func NewTransition(label string, sub ChainFactory) *Transition {
	return &Transition{Label: label, Sub: sub}
}

// Name returns the name of this builder
func (b *Transition) Name() string {
	return "Transition: " + b.Label
}

// BuildMap builds the second level with the same rng and stitches it in.
// Stairs copied from the second level become floor; later stages place new
// ones. At least one row crosses the seam on walkable tiles.
func (b *Transition) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	sub := b.Sub(m.Depth, m.Width, m.Height)
	sub.SetRecordHistory(ctx.RecordHistory)
	if err := sub.BuildMap(r); err != nil {
		return fmt.Errorf("building %s: %w", b.Label, err)
	}
	subCtx := sub.Context()

	from := b.FromX
	if from <= 0 || from >= m.Width-1 {
		from = m.Width / 2
	}

	for y := 0; y < m.Height; y++ {
		for x := from; x < m.Width; x++ {
			t := subCtx.Map.At(x, y)
			if t == world.UpStairs || t == world.DownStairs {
				t = world.Floor
			}
			m.Set(x, y, t)
		}
	}

	onLeft := func(idx int) bool { return idx%m.Width < from }
	ctx.RetainSpawns(func(s SpawnEntry) bool { return onLeft(s.Index) })
	for _, s := range subCtx.SpawnList {
		if !onLeft(s.Index) && m.IsWalkable(s.Index) {
			ctx.AddSpawn(s.Index, s.Tag)
		}
	}

	if p := ctx.StartingPosition; p != nil && p.X >= from {
		ctx.StartingPosition = nil
	}
	if p := ctx.ExitPosition; p != nil && p.X >= from {
		ctx.ExitPosition = nil
	}
	if subCtx.HasRooms() {
		for _, room := range subCtx.Rooms {
			if room.X1 >= from {
				ctx.Rooms = append(ctx.Rooms, room)
			}
		}
	}
	ctx.History = append(ctx.History, subCtx.History...)

	b.joinSeam(m, from)
	return nil
}

// joinSeam carves a connector across the seam if no row is walkable on both
// sides of it
func (b *Transition) joinSeam(m *world.Map, from int) {
	for y := 1; y < m.Height-1; y++ {
		if m.IsWalkableAt(from-1, y) && m.IsWalkableAt(from, y) {
			return
		}
	}

	mid := m.Height / 2
	left, okLeft := nearestWalkable(m, world.Pt(from-1, mid), func(idx int) bool { return idx%m.Width >= from })
	right, okRight := nearestWalkable(m, world.Pt(from, mid), func(idx int) bool { return idx%m.Width < from })
	switch {
	case okLeft && okRight:
		carvePath(m, doglegPath(left, right, true))
	case okLeft:
		carvePath(m, doglegPath(left, world.Pt(from, left.Y), true))
	case okRight:
		carvePath(m, doglegPath(right, world.Pt(from-1, right.Y), true))
	default:
		carvePath(m, []world.Point{{X: from - 1, Y: mid}, {X: from, Y: mid}})
	}
}
