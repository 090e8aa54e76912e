package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
	"delving/pkg/game/spawn"
)

func TestCullUnreachableWithoutStartPanics(t *testing.T) {
	ctx := contextFromRows(1,
		"#####",
		"#...#",
		"#####",
	)
	assert.Panics(t, func() { _ = NewCullUnreachable().BuildMap(rng.New(1), ctx) })
}

func TestCullUnreachableLeavesOneRegion(t *testing.T) {
	ctx := contextFromRows(1,
		"##########",
		"#...#....#",
		"#...#....#",
		"#####....#",
		"#..#######",
		"##########",
	)
	ctx.AddSpawn(ctx.Map.Index(6, 2), "Goblin")
	ctx.AddSpawn(ctx.Map.Index(2, 2), "Rations")
	ctx.SetStart(world.Pt(1, 1))

	require.NoError(t, NewCullUnreachable().BuildMap(rng.New(1), ctx))
	assertConnected(t, ctx)
	assert.Equal(t, 6, ctx.Map.CountWalkable())
	assert.Equal(t, world.Wall, ctx.Map.At(6, 2))
	assert.Equal(t, []SpawnEntry{{Index: ctx.Map.Index(2, 2), Tag: "Rations"}}, ctx.SpawnList)
}

func TestCullUnreachableRespectsCorners(t *testing.T) {
	// the two floors touch only diagonally between two walls
	ctx := contextFromRows(1,
		"#####",
		"#.###",
		"##.##",
		"#####",
	)
	ctx.SetStart(world.Pt(1, 1))
	require.NoError(t, NewCullUnreachable().BuildMap(rng.New(1), ctx))
	assert.Equal(t, world.Wall, ctx.Map.At(2, 2))
}

func TestDistantExitWithoutStartPanics(t *testing.T) {
	ctx := contextFromRows(1,
		"#####",
		"#...#",
		"#####",
	)
	assert.Panics(t, func() { _ = NewDistantExit().BuildMap(rng.New(1), ctx) })
}

func TestDistantExitPicksFurthestTile(t *testing.T) {
	ctx := contextFromRows(1,
		"###########",
		"#.........#",
		"#.#######.#",
		"#.#.......#",
		"###########",
	)
	ctx.SetStart(world.Pt(1, 3))
	require.NoError(t, NewDistantExit().BuildMap(rng.New(1), ctx))
	require.NotNil(t, ctx.ExitPosition)
	assert.Equal(t, world.Pt(3, 3), *ctx.ExitPosition)
	assertExitIsMaximal(t, ctx)
}

func TestDistantExitBreaksTiesByIndex(t *testing.T) {
	ctx := contextFromRows(1,
		"#######",
		"#.....#",
		"#######",
	)
	ctx.SetStart(world.Pt(3, 1))
	require.NoError(t, NewDistantExit().BuildMap(rng.New(1), ctx))
	assert.Equal(t, world.Pt(1, 1), *ctx.ExitPosition)
}

func TestDistantExitTieAcrossDiagonalRoutes(t *testing.T) {
	ctx := NewBuildContext(1, 13, 11, "test")
	for y := 1; y < 10; y++ {
		for x := 1; x < 12; x++ {
			ctx.Map.Set(x, y, world.Floor)
		}
	}
	// the four corners are equally far, each mixing diagonal and straight steps
	ctx.SetStart(world.Pt(6, 5))
	require.NoError(t, NewDistantExit().BuildMap(rng.New(1), ctx))
	assert.Equal(t, world.Pt(1, 1), *ctx.ExitPosition)
}

func TestDistantExitOnDegenerateMap(t *testing.T) {
	ctx := contextFromRows(1,
		"###",
		"#.#",
		"###",
	)
	ctx.SetStart(world.Pt(1, 1))
	err := NewDistantExit().BuildMap(rng.New(1), ctx)
	assert.ErrorIs(t, err, ErrDegenerateMap)
	assert.Nil(t, ctx.ExitPosition)
}

func assertExitIsMaximal(t *testing.T, ctx *BuildContext) {
	t.Helper()
	m := ctx.Map
	dist := world.DistanceField(m, []world.Point{*ctx.StartingPosition}, 0)
	exit := m.Index(ctx.ExitPosition.X, ctx.ExitPosition.Y)
	require.True(t, m.IsWalkable(exit), "exit must be walkable")
	require.NotEqual(t, world.Unreachable, dist[exit], "exit must be reachable")
	for idx, d := range dist {
		if !m.IsWalkable(idx) || d == world.Unreachable {
			continue
		}
		if d > dist[exit] || (d == dist[exit] && idx < exit) {
			t.Fatalf("tile %d at distance %.3f beats exit %d at %.3f", idx, d, exit, dist[exit])
		}
	}
}

func TestAreaStartingPositionFindsNearestWalkable(t *testing.T) {
	ctx := NewBuildContext(1, 20, 20, "test")
	ctx.Map.Set(5, 10, world.Floor)
	ctx.Map.Set(3, 3, world.Floor)

	require.NoError(t, NewAreaStartingPosition(XLeft, YCenter).BuildMap(rng.New(1), ctx))
	assert.Equal(t, world.Pt(5, 10), *ctx.StartingPosition)
}

func TestAreaStartingPositionPrefersLowestIndexInRing(t *testing.T) {
	ctx := NewBuildContext(1, 20, 20, "test")
	ctx.Map.Set(3, 12, world.Floor)
	ctx.Map.Set(3, 8, world.Floor)

	require.NoError(t, NewAreaStartingPosition(XLeft, YCenter).BuildMap(rng.New(1), ctx))
	assert.Equal(t, world.Pt(3, 8), *ctx.StartingPosition)
}

func TestAreaStartingPositionWidensToWholeMap(t *testing.T) {
	ctx := NewBuildContext(1, 30, 20, "test")
	ctx.Map.Set(28, 18, world.Floor)

	require.NoError(t, NewAreaStartingPosition(XLeft, YTop).BuildMap(rng.New(1), ctx))
	assert.Equal(t, world.Pt(28, 18), *ctx.StartingPosition)
}

func TestAreaStartingPositionOnSolidMap(t *testing.T) {
	ctx := NewBuildContext(1, 20, 20, "test")
	err := NewAreaStartingPosition(XCenter, YCenter).BuildMap(rng.New(1), ctx)
	assert.True(t, errors.Is(err, ErrNoWalkableTile))
}

func TestAreaEndingPositionAvoidsStart(t *testing.T) {
	ctx := contextFromRows(3,
		"######",
		"#...##",
		"######",
	)
	ctx.SetStart(world.Pt(3, 1))
	require.NoError(t, NewAreaEndingPosition(XRight, YCenter).BuildMap(rng.New(1), ctx))
	assert.Equal(t, world.Pt(2, 1), *ctx.ExitPosition)
	assert.Equal(t, world.DownStairs, ctx.Map.At(2, 1))
	assert.Equal(t, world.UpStairs, ctx.Map.At(3, 1))
}

func TestRoomBasedPositionsNeedRooms(t *testing.T) {
	ctx := contextFromRows(1,
		"#####",
		"#...#",
		"#####",
	)
	assert.Panics(t, func() { _ = NewRoomBasedStartingPosition().BuildMap(rng.New(1), ctx) })
	assert.Panics(t, func() { _ = NewRoomBasedStairs().BuildMap(rng.New(1), ctx) })
}

func TestRoomBasedStartAndStairs(t *testing.T) {
	ctx := NewBuildContext(2, 30, 20, "test")
	first := world.NewRect(2, 2, 5, 5)
	last := world.NewRect(20, 10, 5, 5)
	carveRect(ctx.Map, first)
	carveRect(ctx.Map, last)
	ctx.Rooms = []world.Rect{first, last}

	r := rng.New(1)
	require.NoError(t, NewRoomBasedStartingPosition().BuildMap(r, ctx))
	require.NoError(t, NewRoomBasedStairs().BuildMap(r, ctx))
	assert.Equal(t, first.Center(), *ctx.StartingPosition)
	assert.Equal(t, last.Center(), *ctx.ExitPosition)
	assert.Equal(t, 1, ctx.Map.Count(world.UpStairs))
	assert.Equal(t, 1, ctx.Map.Count(world.DownStairs))
}

func TestRoomSorter(t *testing.T) {
	rooms := []world.Rect{
		world.NewRect(30, 2, 4, 4),
		world.NewRect(2, 20, 4, 4),
		world.NewRect(18, 10, 4, 4),
		world.NewRect(2, 2, 4, 4),
	}
	tests := []struct {
		sort RoomSort
		want []int
	}{
		{Leftmost, []int{1, 3, 2, 0}},
		{Rightmost, []int{0, 2, 1, 3}},
		{Topmost, []int{0, 3, 2, 1}},
		{ReadingOrder, []int{3, 0, 2, 1}},
		{Central, []int{2, 0, 1, 3}},
	}
	for _, tt := range tests {
		t.Run(NewRoomSorter(tt.sort).Name(), func(t *testing.T) {
			ctx := NewBuildContext(1, 40, 30, "test")
			ctx.Rooms = append([]world.Rect(nil), rooms...)
			require.NoError(t, NewRoomSorter(tt.sort).BuildMap(rng.New(1), ctx))
			for i, want := range tt.want {
				assert.Equal(t, rooms[want], ctx.Rooms[i], "position %d", i)
			}
		})
	}
}

func TestRoomCornerRounder(t *testing.T) {
	ctx := NewBuildContext(1, 12, 12, "test")
	room := world.NewRect(3, 3, 5, 5)
	carveRect(ctx.Map, room)
	ctx.Rooms = []world.Rect{room}

	require.NoError(t, NewRoomCornerRounder().BuildMap(rng.New(1), ctx))
	for _, c := range []world.Point{{X: 3, Y: 3}, {X: 7, Y: 3}, {X: 3, Y: 7}, {X: 7, Y: 7}} {
		assert.Equal(t, world.Wall, ctx.Map.At(c.X, c.Y), "corner %v", c)
	}
	assert.Equal(t, 21, ctx.Map.CountWalkable())
}

func TestCorridorStagesConnectRooms(t *testing.T) {
	stages := []MetaBuilder{
		NewDoglegCorridors(),
		NewBSPCorridors(),
		NewStraightLineCorridors(),
		NewNearestCorridors(),
	}
	for _, stage := range stages {
		t.Run(stage.Name(), func(t *testing.T) {
			chain := NewBuilderChain(1, 80, 50, "test")
			chain.StartWith(NewBSPDungeon())
			chain.With(NewRoomSorter(Leftmost))
			chain.With(stage)
			require.NoError(t, chain.BuildMap(rng.New(13)))

			ctx := chain.Context()
			require.True(t, ctx.HasCorridors())
			require.NotEmpty(t, ctx.Corridors)
			reached := world.FloodFill(ctx.Map, ctx.Rooms[0].Center())
			for _, room := range ctx.Rooms {
				c := room.Center()
				assert.True(t, reached[ctx.Map.Index(c.X, c.Y)], "room %+v not connected", room)
			}
		})
	}
}

func TestDoorPlacementOnCorridors(t *testing.T) {
	ctx := contextFromRows(1,
		"###########",
		"#...###...#",
		"#.........#",
		"#...###...#",
		"###########",
	)
	ctx.Corridors = [][]int{{
		ctx.Map.Index(4, 2),
		ctx.Map.Index(5, 2),
		ctx.Map.Index(6, 2),
	}}

	require.NoError(t, NewDoorPlacement().BuildMap(rng.New(1), ctx))
	assert.Equal(t, []SpawnEntry{{Index: ctx.Map.Index(4, 2), Tag: spawn.Door}}, ctx.SpawnList)
	assert.Equal(t, world.Floor, ctx.Map.At(4, 2), "doors do not change the tile")
}

func TestDoorPlacementWithoutCorridorsUsesChokepoints(t *testing.T) {
	chain := NewBuilderChain(1, 80, 50, "test")
	chain.StartWith(NewCellularAutomata())
	chain.With(NewDoorPlacement())
	require.NoError(t, chain.BuildMap(rng.New(2)))

	ctx := chain.Context()
	for _, s := range ctx.SpawnList {
		require.Equal(t, spawn.Door, s.Tag)
		x, y := ctx.Map.Coords(s.Index)
		assert.True(t, IsChokepoint(ctx.Map, x, y), "door at (%d,%d) is not a chokepoint", x, y)
	}
}

func TestIsChokepoint(t *testing.T) {
	ctx := contextFromRows(1,
		"#######",
		"#.#...#",
		"#.....#",
		"#.#...#",
		"#######",
	)
	assert.True(t, IsChokepoint(ctx.Map, 2, 2))
	assert.False(t, IsChokepoint(ctx.Map, 1, 1))
	assert.False(t, IsChokepoint(ctx.Map, 4, 2))
}

func TestVoronoiSpawning(t *testing.T) {
	ctx := NewBuildContext(6, 40, 40, "test")
	carveRect(ctx.Map, world.NewRect(1, 1, 38, 38))
	ctx.SetStart(world.Pt(5, 5))
	ctx.SetExit(world.Pt(30, 30))

	stage := NewVoronoiSpawning()
	stage.Seeds = 8
	require.NoError(t, stage.BuildMap(rng.New(17), ctx))

	require.NotEmpty(t, ctx.SpawnList)
	assert.LessOrEqual(t, len(ctx.SpawnList), 8*MaxSpawnsPerRegion)
	seen := map[int]bool{}
	for _, s := range ctx.SpawnList {
		assert.True(t, ctx.Map.IsWalkable(s.Index))
		assert.False(t, ctx.isReserved(s.Index), "spawn on the start or exit")
		assert.False(t, seen[s.Index], "two spawns on tile %d", s.Index)
		seen[s.Index] = true
	}
}

func TestRoomBasedSpawnerSkipsFirstRoom(t *testing.T) {
	ctx := NewBuildContext(8, 40, 20, "test")
	first := world.NewRect(2, 2, 6, 6)
	ctx.Rooms = []world.Rect{first, world.NewRect(20, 5, 8, 8), world.NewRect(30, 2, 6, 6)}
	for _, room := range ctx.Rooms {
		carveRect(ctx.Map, room)
	}

	require.NoError(t, NewRoomBasedSpawner().BuildMap(rng.New(3), ctx))
	require.NotEmpty(t, ctx.SpawnList)
	for _, s := range ctx.SpawnList {
		assert.False(t, first.Contains(ctx.Map.PointOf(s.Index)), "spawn in the starting room")
	}
}

func TestCaveDecoratorKeepsReachability(t *testing.T) {
	chain := NewBuilderChain(3, 80, 50, "test")
	chain.StartWith(NewCellularAutomata())
	chain.With(NewAreaStartingPosition(XCenter, YCenter))
	chain.With(NewCullUnreachable())
	require.NoError(t, chain.BuildMap(rng.New(8)))

	ctx := chain.Context()
	before := ctx.Map.Clone()
	require.NoError(t, NewCaveDecorator(LimestoneCaves()).BuildMap(rng.New(9), ctx))

	changed := 0
	for idx := range before.Tiles {
		was, now := before.Tiles[idx], ctx.Map.Tiles[idx]
		assert.Equal(t, was.IsWalkable(), now.IsWalkable(), "tile %d walkability changed", idx)
		if was != now {
			changed++
			assert.Contains(t, []world.TileType{world.Floor, world.Wall}, was, "decorated a %v tile", was)
		}
	}
	assert.Positive(t, changed)
	assertConnected(t, ctx)
	assertSealed(t, ctx.Map)
}

func TestYellowBrickRoad(t *testing.T) {
	chain := NewBuilderChain(2, 80, 50, "test")
	chain.StartWith(NewCellularAutomata())
	chain.With(NewAreaStartingPosition(XCenter, YCenter))
	chain.With(NewCullUnreachable())
	chain.With(NewAreaStartingPosition(XLeft, YCenter))
	chain.With(NewYellowBrickRoad())
	require.NoError(t, chain.BuildMap(rng.New(4)))

	ctx := chain.Context()
	assert.True(t, ctx.Map.Outdoors)
	assert.Zero(t, ctx.Map.Count(world.Floor), "forest floor should be grass")
	assert.Positive(t, ctx.Map.Count(world.Road))
	require.NotNil(t, ctx.ExitPosition)
	assert.Equal(t, 1, ctx.Map.Count(world.DownStairs))
	assertConnected(t, ctx)
}

func TestTransitionJoinsBothHalves(t *testing.T) {
	chain := NewBuilderChain(5, 80, 50, "test")
	chain.SetRecordHistory(true)
	chain.StartWith(NewCellularAutomata())
	chain.With(NewTransition("fort", func(depth, width, height int) *BuilderChain {
		sub := NewBuilderChain(depth, width, height, "fort")
		sub.StartWith(NewBSPInterior())
		return sub
	}))
	require.NoError(t, chain.BuildMap(rng.New(12)))

	m := chain.Context().Map
	from := m.Width / 2
	seam := false
	for y := 1; y < m.Height-1; y++ {
		if m.IsWalkableAt(from-1, y) && m.IsWalkableAt(from, y) {
			seam = true
		}
	}
	assert.True(t, seam, "no walkable row crosses the seam")
	assert.Zero(t, m.Count(world.UpStairs)+m.Count(world.DownStairs))
	assertSealed(t, m)
	assert.NotEmpty(t, chain.Context().History)
}
