package generator

import (
	"fmt"

	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// DragonTag is the spawn placed by DragonSpawner
const DragonTag = "Black Dragon"

// dragonClearance is how far around the dragon other spawns are cleared
const dragonClearance = 10.0

// DragonsLair grows a symmetric cave over the middle of the map and opens it
// into whatever is already there. Tiles already walkable are left alone.
type DragonsLair struct {
	// Lair builds the cave; nil means an insectoid aggregation
	Lair func() InitialBuilder
}

// NewDragonsLair creates the lair stage
func NewDragonsLair() *DragonsLair {
	return &DragonsLair{}
}

// Name returns the name of this builder
func (b *DragonsLair) Name() string {
	return "Dragon's Lair"
}

// BuildMap builds the lair as its own level with the same rng and carves
// every lair floor tile that is a wall here
func (b *DragonsLair) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	var lair InitialBuilder = DLAInsectoid()
	if b.Lair != nil {
		lair = b.Lair()
	}

	sub := NewBuilderChain(m.Depth, m.Width, m.Height, m.Name)
	sub.StartWith(lair)
	sub.SetRecordHistory(ctx.RecordHistory)
	if err := sub.BuildMap(r); err != nil {
		return fmt.Errorf("digging the lair: %w", err)
	}
	subCtx := sub.Context()
	ctx.History = append(ctx.History, subCtx.History...)

	for idx, t := range subCtx.Map.Tiles {
		if t == world.Floor && m.Tiles[idx] == world.Wall {
			m.Tiles[idx] = world.Floor
		}
	}
	ctx.TakeSnapshot()
	return nil
}

// DragonSpawner puts the dragon on the walkable tile nearest the middle of
// the map and chases everything else out of its reach
type DragonSpawner struct{}

// NewDragonSpawner creates the dragon placement stage
func NewDragonSpawner() *DragonSpawner {
	return &DragonSpawner{}
}

// Name returns the name of this builder
func (b *DragonSpawner) Name() string {
	return "Dragon Spawner"
}

// BuildMap places the dragon away from the start and exit
func (b *DragonSpawner) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	lair, ok := nearestWalkable(m, m.CenterPosition(), ctx.isReserved)
	if !ok {
		return ErrNoWalkableTile
	}

	ctx.RetainSpawns(func(s SpawnEntry) bool {
		return m.PointOf(s.Index).Pythagoras(lair) >= dragonClearance
	})
	ctx.AddSpawn(m.Index(lair.X, lair.Y), DragonTag)
	return nil
}
