package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// corridorLevel is a culled 40x30 level whose only walkable area is a
// corridor along row 15, with the start at its west end and the exit at its
// east end
func corridorLevel(t *testing.T) *BuildContext {
	t.Helper()
	ctx := NewBuildContext(2, 40, 30, "corridor")
	for x := 1; x < 39; x++ {
		ctx.Map.Set(x, 15, world.Floor)
	}
	ctx.SetStart(world.Pt(1, 15))
	ctx.SetExit(world.Pt(38, 15))
	require.NoError(t, NewCullUnreachable().BuildMap(rng.New(1), ctx))
	return ctx
}

func countTag(ctx *BuildContext, tag string) int {
	n := 0
	for _, s := range ctx.SpawnList {
		if s.Tag == tag {
			n++
		}
	}
	return n
}

func TestPrefabSectionKeepsCorridorConnected(t *testing.T) {
	ctx := corridorLevel(t)
	require.NoError(t, NewPrefabSectional(GuardPost).BuildMap(rng.New(1), ctx))

	assert.Equal(t, 4, countTag(ctx, "Orc"), "guard post was not stamped")
	assertConnected(t, ctx)

	reached := world.FloodFill(ctx.Map, *ctx.StartingPosition)
	assert.True(t, reached[ctx.Map.Index(38, 15)], "exit cut off by the section")
	assert.Equal(t, world.DownStairs, ctx.Map.At(38, 15))
	assert.Equal(t, world.UpStairs, ctx.Map.At(1, 15))
}

func TestPrefabSectionAtPreferredPlacement(t *testing.T) {
	ctx := NewBuildContext(4, 40, 30, "open")
	carveRect(ctx.Map, world.NewRect(1, 1, 38, 28))

	require.NoError(t, NewPrefabSectional(OrcCamp).BuildMap(rng.New(1), ctx))
	// centre placement puts the camp's corner at (14, 9)
	leader := ctx.Map.Index(14+6, 9+4)
	assert.Contains(t, ctx.SpawnList, SpawnEntry{Index: leader, Tag: "Orc Leader"})
	assert.Equal(t, world.DeepWater, ctx.Map.At(14+1, 9+1))
}

func TestPrefabSectionReplacesSpawnsUnderneath(t *testing.T) {
	ctx := NewBuildContext(4, 40, 30, "open")
	carveRect(ctx.Map, world.NewRect(1, 1, 38, 28))
	under := ctx.Map.Index(16, 12)
	outside := ctx.Map.Index(2, 2)
	ctx.AddSpawn(under, "Kobold")
	ctx.AddSpawn(outside, "Kobold")

	require.NoError(t, NewPrefabSectional(OrcCamp).BuildMap(rng.New(1), ctx))
	assert.False(t, ctx.SpawnAt(under))
	assert.True(t, ctx.SpawnAt(outside))
}

func TestPrefabSectionNeverCoversStartOrExit(t *testing.T) {
	ctx := corridorLevel(t)
	s := GuardPost.parse()
	assert.False(t, stampKeepsConnectivity(ctx, s, world.Pt(1, 10)), "placement over the start accepted")
	assert.False(t, stampKeepsConnectivity(ctx, s, world.Pt(29, 10)), "placement over the exit accepted")
}

func TestPrefabSectionRejectsCuttingPlacement(t *testing.T) {
	ctx := corridorLevel(t)
	wall := Template{Name: "Wall", Width: 3, Height: 3, Layout: "###\n###\n###"}
	assert.False(t, stampKeepsConnectivity(ctx, wall.parse(), world.Pt(10, 14)))

	require.NoError(t, NewPrefabSectional(wall).BuildMap(rng.New(1), ctx))
	assertConnected(t, ctx)
	assert.Equal(t, 38, ctx.Map.CountWalkable(), "a solid section must land away from the corridor")
}

func TestTemplateParse(t *testing.T) {
	s := UndergroundGate.parse()
	assert.Equal(t, 10, s.width)
	assert.Equal(t, 7, s.height)
	assert.Equal(t, world.DownStairs, s.tiles[3*s.width+5])
	assert.Equal(t, world.Wall, s.tiles[1*s.width+1])
	assert.Equal(t, world.Floor, s.tiles[0])
	assert.Equal(t, "Door", s.spawns[3*s.width+1])
	assert.Equal(t, "Dark Elf", s.spawns[2*s.width+2])
	assert.Nil(t, s.start)
}

func TestPrefabVaultsKeepLevelConnected(t *testing.T) {
	ctx := NewBuildContext(3, 60, 40, "hall")
	carveRect(ctx.Map, world.NewRect(1, 1, 58, 38))
	ctx.SetStart(world.Pt(2, 2))

	vaults := NewPrefabVaults()
	require.NoError(t, vaults.BuildMap(rng.New(5), ctx))
	assert.NotEmpty(t, ctx.SpawnList, "no vault was placed")
	assertConnected(t, ctx)
}

func TestPrefabVaultsRespectDepth(t *testing.T) {
	ctx := NewBuildContext(1, 60, 40, "hall")
	carveRect(ctx.Map, world.NewRect(1, 1, 58, 38))

	vaults := &PrefabVaults{Vaults: []Template{{Name: "Deep", Width: 3, Height: 3, MinDepth: 5, Layout: "\n k"}}, MaxVaults: 3}
	require.NoError(t, vaults.BuildMap(rng.New(5), ctx))
	assert.Empty(t, ctx.SpawnList)
}
