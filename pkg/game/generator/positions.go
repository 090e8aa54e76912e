package generator

import (
	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// XPos is the horizontal part of an area placement
type XPos int

const (
	XLeft XPos = iota
	XCenter
	XRight
)

// YPos is the vertical part of an area placement
type YPos int

const (
	YTop YPos = iota
	YCenter
	YBottom
)

var (
	xPosNames = [...]string{"Left", "Center", "Right"}
	yPosNames = [...]string{"Top", "Center", "Bottom"}
)

// areaSeed returns the tile a placement search begins from
func areaSeed(m *world.Map, x XPos, y YPos) world.Point {
	p := world.Pt(m.Width/2, m.Height/2)
	switch x {
	case XLeft:
		p.X = 1
	case XRight:
		p.X = m.Width - 2
	}
	switch y {
	case YTop:
		p.Y = 1
	case YBottom:
		p.Y = m.Height - 2
	}
	return p
}

// nearestWalkable searches rings of growing Chebyshev radius around seed and
// returns the lowest-index walkable tile of the first ring holding one. The
// search widens until it covers the whole map.
func nearestWalkable(m *world.Map, seed world.Point, skip func(idx int) bool) (world.Point, bool) {
	limit := max(m.Width, m.Height)
	for radius := 0; radius <= limit; radius++ {
		for y := seed.Y - radius; y <= seed.Y+radius; y++ {
			for x := seed.X - radius; x <= seed.X+radius; x++ {
				if max(abs(x-seed.X), abs(y-seed.Y)) != radius || !m.InBounds(x, y) {
					continue
				}
				idx := m.Index(x, y)
				if m.IsWalkable(idx) && (skip == nil || !skip(idx)) {
					return world.Pt(x, y), true
				}
			}
		}
	}
	return world.Point{}, false
}

// AreaStartingPosition puts the start on the walkable tile nearest a point of
// the map picked by its horizontal and vertical placement
type AreaStartingPosition struct {
	X XPos
	Y YPos
}

// NewAreaStartingPosition creates a start placement stage
func NewAreaStartingPosition(x XPos, y YPos) *AreaStartingPosition {
	return &AreaStartingPosition{X: x, Y: y}
}

// Name returns the name of this builder
func (b *AreaStartingPosition) Name() string {
	return "Area Starting Position: " + xPosNames[b.X] + " " + yPosNames[b.Y]
}

// BuildMap sets the start, or fails if nothing on the map is walkable
func (b *AreaStartingPosition) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	p, ok := nearestWalkable(m, areaSeed(m, b.X, b.Y), func(idx int) bool {
		return m.Tiles[idx] == world.DownStairs
	})
	if !ok {
		return ErrNoWalkableTile
	}
	ctx.SetStart(p)
	return nil
}

// AreaEndingPosition puts the down stairs on the walkable tile nearest a point
// of the map, never on the start
type AreaEndingPosition struct {
	X XPos
	Y YPos
}

// NewAreaEndingPosition creates an exit placement stage
func NewAreaEndingPosition(x XPos, y YPos) *AreaEndingPosition {
	return &AreaEndingPosition{X: x, Y: y}
}

// Name returns the name of this builder
func (b *AreaEndingPosition) Name() string {
	return "Area Ending Position: " + xPosNames[b.X] + " " + yPosNames[b.Y]
}

// BuildMap places the exit
func (b *AreaEndingPosition) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	p, ok := nearestWalkable(m, areaSeed(m, b.X, b.Y), func(idx int) bool {
		return ctx.StartingPosition != nil && idx == m.Index(ctx.StartingPosition.X, ctx.StartingPosition.Y)
	})
	if !ok {
		return ErrNoWalkableTile
	}
	ctx.SetExit(p)
	return nil
}

// RoomBasedStartingPosition starts the player in the first room
type RoomBasedStartingPosition struct{}

// NewRoomBasedStartingPosition creates a room based start stage
func NewRoomBasedStartingPosition() *RoomBasedStartingPosition {
	return &RoomBasedStartingPosition{}
}

// Name returns the name of this builder
func (b *RoomBasedStartingPosition) Name() string {
	return "Room Based Starting Position"
}

// BuildMap starts at the centre of the first room, or the nearest walkable tile to it
func (b *RoomBasedStartingPosition) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if !ctx.HasRooms() {
		panic("RoomBasedStartingPosition only works after rooms have been created")
	}
	if len(ctx.Rooms) == 0 {
		return ErrNoWalkableTile
	}
	p, ok := nearestWalkable(ctx.Map, ctx.Rooms[0].Center(), nil)
	if !ok {
		return ErrNoWalkableTile
	}
	ctx.SetStart(p)
	return nil
}

// RoomBasedStairs puts the down stairs in the last room
type RoomBasedStairs struct{}

// NewRoomBasedStairs creates a room based stairs stage
func NewRoomBasedStairs() *RoomBasedStairs {
	return &RoomBasedStairs{}
}

// Name returns the name of this builder
func (b *RoomBasedStairs) Name() string {
	return "Room Based Stairs"
}

// BuildMap places the exit at the centre of the last room, never on the start
func (b *RoomBasedStairs) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if !ctx.HasRooms() {
		panic("RoomBasedStairs only works after rooms have been created")
	}
	if len(ctx.Rooms) == 0 {
		return ErrNoWalkableTile
	}
	m := ctx.Map
	p, ok := nearestWalkable(m, ctx.Rooms[len(ctx.Rooms)-1].Center(), func(idx int) bool {
		return ctx.StartingPosition != nil && idx == m.Index(ctx.StartingPosition.X, ctx.StartingPosition.Y)
	})
	if !ok {
		return ErrNoWalkableTile
	}
	ctx.SetExit(p)
	return nil
}

// DistantExit puts the down stairs on the reachable tile furthest from the start
type DistantExit struct{}

// NewDistantExit creates a distant exit stage
func NewDistantExit() *DistantExit {
	return &DistantExit{}
}

// Name returns the name of this builder
func (b *DistantExit) Name() string {
	return "Distant Exit"
}

// BuildMap runs a distance field from the start. The furthest tile wins; on a
// tie the lowest index does.
func (b *DistantExit) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if ctx.StartingPosition == nil {
		panic("DistantExit requires a starting position; place one in an earlier stage")
	}
	m := ctx.Map
	dist := world.DistanceField(m, []world.Point{*ctx.StartingPosition}, 0)

	best, bestDist := -1, 0.0
	for idx, d := range dist {
		if d == world.Unreachable || !m.IsWalkable(idx) {
			continue
		}
		if d > bestDist {
			best, bestDist = idx, d
		}
	}
	if best < 0 {
		return ErrDegenerateMap
	}

	ctx.SetExit(m.PointOf(best))
	return nil
}
