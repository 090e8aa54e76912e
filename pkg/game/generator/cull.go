package generator

import (
	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// CullUnreachable walls in every walkable tile the start cannot reach, leaving
// one connected region
type CullUnreachable struct{}

// NewCullUnreachable creates a culling stage
func NewCullUnreachable() *CullUnreachable {
	return &CullUnreachable{}
}

// Name returns the name of this builder
func (b *CullUnreachable) Name() string {
	return "Cull Unreachable"
}

// BuildMap floods from the start and walls in whatever the flood missed.
// Spawns on culled tiles are dropped.
func (b *CullUnreachable) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if ctx.StartingPosition == nil {
		panic("CullUnreachable requires a starting position; place one in an earlier stage")
	}
	m := ctx.Map
	reached := world.FloodFill(m, *ctx.StartingPosition)

	culled := 0
	for idx, t := range m.Tiles {
		if t.IsWalkable() && !reached[idx] {
			m.Tiles[idx] = world.Wall
			culled++
		}
	}
	if culled == 0 {
		return nil
	}

	ctx.RetainSpawns(func(s SpawnEntry) bool { return reached[s.Index] })
	if p := ctx.ExitPosition; p != nil && !reached[m.Index(p.X, p.Y)] {
		ctx.ExitPosition = nil
	}
	return nil
}
