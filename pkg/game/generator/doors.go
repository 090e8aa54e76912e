package generator

import (
	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
	"delving/pkg/game/spawn"
)

// DoorPlacement queues doors on single tile chokepoints. With corridors, each
// corridor gets a door at its first chokepoint; otherwise about one in three
// chokepoints on the map gets one.
type DoorPlacement struct{}

// NewDoorPlacement creates a door placement stage
func NewDoorPlacement() *DoorPlacement {
	return &DoorPlacement{}
}

// Name returns the name of this builder
func (b *DoorPlacement) Name() string {
	return "Door Placement"
}

// BuildMap adds Door spawn entries. The tiles stay floor.
func (b *DoorPlacement) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if ctx.HasCorridors() {
		for _, corridor := range ctx.Corridors {
			for _, idx := range corridor {
				if b.doorPossible(ctx, idx) {
					ctx.AddSpawn(idx, spawn.Door)
					break
				}
			}
		}
		return nil
	}

	for idx := range ctx.Map.Tiles {
		if b.doorPossible(ctx, idx) && r.RollDice(1, 3) == 1 {
			ctx.AddSpawn(idx, spawn.Door)
		}
	}
	return nil
}

func (b *DoorPlacement) doorPossible(ctx *BuildContext, idx int) bool {
	m := ctx.Map
	x, y := m.Coords(idx)
	if !m.IsPlayablePosition(x, y) || m.Tiles[idx] != world.Floor {
		return false
	}
	if ctx.isReserved(idx) || ctx.SpawnAt(idx) {
		return false
	}
	for _, dir := range world.Cardinals() {
		dx, dy := dir.Delta()
		if hasDoor(ctx, m.Index(x+dx, y+dy)) {
			return false
		}
	}
	return IsChokepoint(m, x, y)
}

func hasDoor(ctx *BuildContext, idx int) bool {
	for _, s := range ctx.SpawnList {
		if s.Index == idx && s.Tag == spawn.Door {
			return true
		}
	}
	return false
}

// IsChokepoint reports whether (x, y) is open on two opposite sides and walled
// on the other two
func IsChokepoint(m *world.Map, x, y int) bool {
	if !m.IsWalkableAt(x, y) {
		return false
	}
	eastWest := m.IsWalkableAt(x-1, y) && m.IsWalkableAt(x+1, y) &&
		m.IsOpaqueAt(x, y-1) && m.IsOpaqueAt(x, y+1)
	northSouth := m.IsWalkableAt(x, y-1) && m.IsWalkableAt(x, y+1) &&
		m.IsOpaqueAt(x-1, y) && m.IsOpaqueAt(x+1, y)
	return eastWest || northSouth
}
