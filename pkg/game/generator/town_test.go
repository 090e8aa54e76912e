package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
	"delving/pkg/game/spawn"
)

func buildTown(t *testing.T, width, height int, seed int64) *BuildContext {
	t.Helper()
	chain := NewBuilderChain(1, width, height, "town")
	chain.StartWith(NewTown())
	chain.With(NewCullUnreachable())
	require.NoError(t, chain.BuildMap(rng.New(seed)))
	return chain.Context()
}

func TestTownLayout(t *testing.T) {
	for _, size := range [][2]int{{80, 50}, {40, 30}, {20, 20}} {
		for seed := int64(1); seed <= 4; seed++ {
			t.Run(fmt.Sprintf("%dx%d seed %d", size[0], size[1], seed), func(t *testing.T) {
				ctx := buildTown(t, size[0], size[1], seed)
				m := ctx.Map

				assert.True(t, m.Outdoors)
				assertSealed(t, m)
				assertConnected(t, ctx)
				require.NotNil(t, ctx.ExitPosition)
				assert.Equal(t, 1, m.Count(world.DownStairs))
				assert.Zero(t, m.Count(world.UpStairs))
				assert.Equal(t, world.Bridge, m.At(ctx.StartingPosition.X, ctx.StartingPosition.Y))
				assert.Equal(t, 1, ctx.StartingPosition.X)

				for _, s := range ctx.SpawnList {
					assert.True(t, m.IsWalkable(s.Index), "%s on %v", s.Tag, m.PointOf(s.Index))
					assert.False(t, ctx.isReserved(s.Index), "%s on the start or exit", s.Tag)
				}
			})
		}
	}
}

func TestTownBuildingsHaveDoorsAndRoads(t *testing.T) {
	ctx := buildTown(t, 80, 50, 7)
	m := ctx.Map
	require.NotEmpty(t, ctx.Rooms)

	doors := 0
	for _, s := range ctx.SpawnList {
		if s.Tag == spawn.Door {
			doors++
			assert.Equal(t, world.WoodFloor, m.Tiles[s.Index])
		}
	}
	assert.Equal(t, len(ctx.Rooms), doors)
	assert.Positive(t, m.Count(world.Road))

	for _, room := range ctx.Rooms {
		room.ForEach(func(p world.Point) {
			assert.Equal(t, world.WoodFloor, m.At(p.X, p.Y), "inside house at %v", p)
		})
	}
	for i, a := range ctx.Rooms {
		for _, b := range ctx.Rooms[i+1:] {
			assert.False(t, a.Inset(-3).Intersects(b), "houses %v and %v touch", a, b)
		}
	}
}

func TestTownHasAPub(t *testing.T) {
	ctx := buildTown(t, 80, 50, 3)
	tags := map[string]int{}
	for _, s := range ctx.SpawnList {
		tags[s.Tag]++
	}
	assert.Equal(t, 1, tags["Barkeep"])
	assert.Equal(t, 3, tags["Patron"])
}

func TestTownHarbourFlanksTheLeftEdge(t *testing.T) {
	ctx := buildTown(t, 80, 50, 2)
	m := ctx.Map
	for y := 1; y < m.Height-1; y++ {
		tile := m.At(1, y)
		assert.True(t, tile == world.DeepWater || tile == world.Bridge, "row %d starts with %v", y, tile)
	}
}

func TestDragonsLairOpensIntoExistingMap(t *testing.T) {
	ctx := NewBuildContext(6, 60, 40, "fort")
	room := world.NewRect(2, 2, 6, 4)
	carveRect(ctx.Map, room)
	ctx.RecordHistory = true
	before := ctx.Map.Count(world.Floor)

	require.NoError(t, NewDragonsLair().BuildMap(rng.New(5), ctx))
	assert.Greater(t, ctx.Map.Count(world.Floor), before)
	room.ForEach(func(p world.Point) {
		assert.Equal(t, world.Floor, ctx.Map.At(p.X, p.Y))
	})
	assert.NotEmpty(t, ctx.History)
	centre := ctx.Map.CenterPosition()
	assert.Equal(t, world.Floor, ctx.Map.At(centre.X, centre.Y))
}

func TestDragonsLairKeepsOtherWalkableTiles(t *testing.T) {
	ctx := NewBuildContext(6, 40, 30, "fort")
	ctx.Map.Set(3, 3, world.ShallowWater)
	require.NoError(t, NewDragonsLair().BuildMap(rng.New(1), ctx))
	assert.Equal(t, world.ShallowWater, ctx.Map.At(3, 3))
}

func TestDragonSpawnerClearsTheLair(t *testing.T) {
	ctx := NewBuildContext(6, 41, 31, "fort")
	carveRect(ctx.Map, world.NewRect(1, 1, 39, 29))
	m := ctx.Map
	centre := m.CenterPosition()
	ctx.AddSpawn(m.Index(centre.X+3, centre.Y), "Goblin")
	ctx.AddSpawn(m.Index(centre.X, centre.Y+9), "Orc")
	ctx.AddSpawn(m.Index(2, 2), "Rations")
	ctx.SetStart(world.Pt(1, 1))
	ctx.SetExit(world.Pt(39, 29))

	require.NoError(t, NewDragonSpawner().BuildMap(rng.New(1), ctx))
	tags := map[string]world.Point{}
	for _, s := range ctx.SpawnList {
		tags[s.Tag] = m.PointOf(s.Index)
	}
	assert.Equal(t, centre, tags[DragonTag])
	assert.NotContains(t, tags, "Goblin")
	assert.NotContains(t, tags, "Orc")
	assert.Contains(t, tags, "Rations")
}

func TestDragonSpawnerAvoidsTheStart(t *testing.T) {
	ctx := contextFromRows(6,
		"#####",
		"#...#",
		"#####",
	)
	ctx.SetStart(world.Pt(2, 1))
	require.NoError(t, NewDragonSpawner().BuildMap(rng.New(1), ctx))
	require.Len(t, ctx.SpawnList, 1)
	assert.Equal(t, ctx.Map.Index(1, 1), ctx.SpawnList[0].Index)
}

func TestDragonSpawnerOnSolidMap(t *testing.T) {
	ctx := NewBuildContext(6, 10, 10, "fort")
	assert.ErrorIs(t, NewDragonSpawner().BuildMap(rng.New(1), ctx), ErrNoWalkableTile)
}

func TestRoomExploderNeedsRooms(t *testing.T) {
	ctx := NewBuildContext(3, 20, 20, "test")
	assert.Panics(t, func() { _ = NewRoomExploder().BuildMap(rng.New(1), ctx) })
}

func TestRoomExploderDigsOutOfRooms(t *testing.T) {
	ctx := NewBuildContext(3, 60, 40, "test")
	for i := 0; i < 8; i++ {
		room := world.NewRect(4+(i%4)*14, 6+(i/4)*18, 3, 3)
		carveRect(ctx.Map, room)
		ctx.Rooms = append(ctx.Rooms, room)
	}
	ctx.RecordHistory = true
	before := ctx.Map.Count(world.Floor)

	exploder := NewRoomExploder()
	exploder.Lifetime = 200
	require.NoError(t, exploder.BuildMap(rng.New(4), ctx))
	assert.Greater(t, ctx.Map.Count(world.Floor), before)
	assert.Len(t, ctx.History, len(ctx.Rooms))
	for _, room := range ctx.Rooms {
		room.ForEach(func(p world.Point) {
			assert.Equal(t, world.Floor, ctx.Map.At(p.X, p.Y))
		})
	}
	for y := 0; y < ctx.Map.Height; y++ {
		for x := 0; x < ctx.Map.Width; x++ {
			if ctx.Map.IsOnPerimeter(x, y) {
				assert.Equal(t, world.Wall, ctx.Map.At(x, y))
			}
		}
	}
}
