package generator

import (
	"delving/pkg/engine/rng"
	"delving/pkg/game/spawn"
)

// VoronoiSpawning splits the walkable area into Voronoi regions and rolls
// spawns for each one
type VoronoiSpawning struct {
	// Seeds is the number of regions; zero picks one per 144 tiles
	Seeds int
	// Cap bounds the entities placed in one region
	Cap int
}

// NewVoronoiSpawning creates a Voronoi spawner with default sizing
func NewVoronoiSpawning() *VoronoiSpawning {
	return &VoronoiSpawning{Cap: MaxSpawnsPerRegion}
}

// Name returns the name of this builder
func (b *VoronoiSpawning) Name() string {
	return "Voronoi Spawning"
}

// BuildMap assigns walkable tiles to their nearest seed by Manhattan distance
// and populates the regions in seed order
func (b *VoronoiSpawning) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	seeds := b.Seeds
	if seeds <= 0 {
		seeds = max(1, m.Size()/144)
	}
	limit := b.Cap
	if limit <= 0 {
		limit = MaxSpawnsPerRegion
	}

	points := scatterSeeds(r, m, seeds)
	membership := voronoiMembership(m, points, Manhattan)
	regions := make([][]int, len(points))
	for idx, region := range membership {
		if region >= 0 && m.IsWalkable(idx) {
			regions[region] = append(regions[region], idx)
		}
	}

	table := spawn.TableForDepth(m.Depth)
	for _, area := range regions {
		spawnRegion(r, ctx, area, table, limit)
	}
	return nil
}

// RoomBasedSpawner rolls spawns for every room
type RoomBasedSpawner struct{}

// NewRoomBasedSpawner creates a room spawner
func NewRoomBasedSpawner() *RoomBasedSpawner {
	return &RoomBasedSpawner{}
}

// Name returns the name of this builder
func (b *RoomBasedSpawner) Name() string {
	return "Room Based Spawner"
}

// BuildMap populates each room. The first room holds the start and is left empty.
func (b *RoomBasedSpawner) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if !ctx.HasRooms() {
		panic("RoomBasedSpawner only works after rooms have been created")
	}
	table := spawn.TableForDepth(ctx.Map.Depth)
	for i, room := range ctx.Rooms {
		if i == 0 {
			continue
		}
		spawnRegion(r, ctx, roomTiles(ctx.Map, room), table, MaxSpawnsPerRegion)
	}
	return nil
}
