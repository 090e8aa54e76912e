package generator

import (
	"github.com/zyedidia/generic/mapset"

	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
	"delving/pkg/game/spawn"
)

// DoglegCorridors joins consecutive rooms with L-shaped corridors between
// their centres
type DoglegCorridors struct{}

// NewDoglegCorridors creates a dogleg corridor stage
func NewDoglegCorridors() *DoglegCorridors {
	return &DoglegCorridors{}
}

// Name returns the name of this builder
func (b *DoglegCorridors) Name() string {
	return "Dogleg Corridors"
}

// BuildMap digs a corridor from every room to the one before it
func (b *DoglegCorridors) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if !ctx.HasRooms() {
		return nil
	}
	m := ctx.Map
	corridors := [][]int{}
	for i := 1; i < len(ctx.Rooms); i++ {
		prev := ctx.Rooms[i-1].Center()
		next := ctx.Rooms[i].Center()
		path := doglegPath(prev, next, r.RollDice(1, 2) == 1)
		if corridor := carvePath(m, path); len(corridor) > 0 {
			corridors = append(corridors, corridor)
		}
		ctx.TakeSnapshot()
	}
	ctx.addCorridors(corridors)
	return nil
}

// BSPCorridors joins consecutive rooms between random floor tiles inside each
type BSPCorridors struct{}

// NewBSPCorridors creates a BSP corridor stage
func NewBSPCorridors() *BSPCorridors {
	return &BSPCorridors{}
}

// Name returns the name of this builder
func (b *BSPCorridors) Name() string {
	return "BSP Corridors"
}

// BuildMap digs a corridor from every room to the one before it
func (b *BSPCorridors) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if !ctx.HasRooms() {
		return nil
	}
	m := ctx.Map
	corridors := [][]int{}
	for i := 1; i < len(ctx.Rooms); i++ {
		start := roomFloor(r, m, ctx.Rooms[i-1])
		end := roomFloor(r, m, ctx.Rooms[i])
		if corridor := drawCorridor(m, start, end); len(corridor) > 0 {
			corridors = append(corridors, corridor)
		}
		ctx.TakeSnapshot()
	}
	ctx.addCorridors(corridors)
	return nil
}

// StraightLineCorridors joins every room to its nearest room that has not
// been processed yet, with a straight four-connected line
type StraightLineCorridors struct{}

// NewStraightLineCorridors creates a straight line corridor stage
func NewStraightLineCorridors() *StraightLineCorridors {
	return &StraightLineCorridors{}
}

// Name returns the name of this builder
func (b *StraightLineCorridors) Name() string {
	return "Straight Line Corridors"
}

// BuildMap digs the corridors
func (b *StraightLineCorridors) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	return connectNearest(ctx, func(m *world.Map, a, c world.Point) []int {
		return carvePath(m, world.OrthogonalLine(a, c))
	})
}

// NearestCorridors joins every room to its nearest room that has not been
// processed yet, with an axis-stepping corridor
type NearestCorridors struct{}

// NewNearestCorridors creates a nearest corridor stage
func NewNearestCorridors() *NearestCorridors {
	return &NearestCorridors{}
}

// Name returns the name of this builder
func (b *NearestCorridors) Name() string {
	return "Nearest Corridors"
}

// BuildMap digs the corridors
func (b *NearestCorridors) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	return connectNearest(ctx, drawCorridor)
}

// connectNearest links room i to the closest room not yet processed. Every
// room but the last gains an edge to a later one, so the rooms end up joined.
func connectNearest(ctx *BuildContext, dig func(m *world.Map, a, b world.Point) []int) error {
	if !ctx.HasRooms() {
		return nil
	}
	m := ctx.Map
	connected := mapset.New[int]()
	corridors := [][]int{}

	for i, room := range ctx.Rooms {
		center := room.Center()
		nearest, nearestDist := -1, 0
		for j, other := range ctx.Rooms {
			if i == j || connected.Has(j) {
				continue
			}
			d := center.DistanceSquared(other.Center())
			if nearest < 0 || d < nearestDist {
				nearest, nearestDist = j, d
			}
		}
		connected.Put(i)
		if nearest < 0 {
			continue
		}

		if corridor := dig(m, center, ctx.Rooms[nearest].Center()); len(corridor) > 0 {
			corridors = append(corridors, corridor)
		}
		ctx.TakeSnapshot()
	}

	ctx.addCorridors(corridors)
	return nil
}

// CorridorSpawner populates every corridor like a small room
type CorridorSpawner struct{}

// NewCorridorSpawner creates a corridor spawner
func NewCorridorSpawner() *CorridorSpawner {
	return &CorridorSpawner{}
}

// Name returns the name of this builder
func (b *CorridorSpawner) Name() string {
	return "Corridor Spawner"
}

// BuildMap rolls spawns along each corridor
func (b *CorridorSpawner) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if !ctx.HasCorridors() {
		return nil
	}
	table := spawn.TableForDepth(ctx.Map.Depth)
	for _, corridor := range ctx.Corridors {
		spawnRegion(r, ctx, corridor, table, MaxSpawnsPerRegion)
	}
	return nil
}
