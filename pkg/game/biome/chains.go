package biome

import (
	"delving/pkg/engine/rng"
	"delving/pkg/game/generator"
)

// Chain assembles the builder chain for a depth. Depths without a biome of
// their own get a random chain drawn from r.
func Chain(depth, width, height int, r *rng.RNG) *generator.BuilderChain {
	switch depth {
	case 1:
		return town(depth, width, height)
	case 2:
		return forest(depth, width, height)
	case 3:
		return limestoneCaverns(depth, width, height)
	case 4:
		return deepLimestoneCaverns(depth, width, height)
	case 5:
		return dwarfFortEntrance(depth, width, height)
	case 6:
		return dwarfFort(depth, width, height)
	case 7:
		return mushroomEntrance(depth, width, height)
	case 8:
		return mushroomGrove(depth, width, height)
	case 9:
		return mushroomExit(depth, width, height)
	case 10:
		return darkElfCity(depth, width, height)
	default:
		return randomChain(depth, width, height, r)
	}
}

// town is the surface, where every descent begins
func town(depth, width, height int) *generator.BuilderChain {
	chain := generator.NewBuilderChain(depth, width, height, Name(depth))
	chain.StartWith(generator.NewTown())
	chain.With(generator.NewCullUnreachable())
	return chain
}

func forest(depth, width, height int) *generator.BuilderChain {
	chain := generator.NewBuilderChain(depth, width, height, Name(depth))
	chain.StartWith(generator.NewCellularAutomata())
	chain.With(generator.NewAreaStartingPosition(generator.XCenter, generator.YCenter))
	chain.With(generator.NewCullUnreachable())
	chain.With(generator.NewAreaStartingPosition(generator.XLeft, generator.YCenter))
	chain.With(generator.NewVoronoiSpawning())
	chain.With(generator.NewYellowBrickRoad())
	return chain
}

func limestoneCaverns(depth, width, height int) *generator.BuilderChain {
	chain := generator.NewBuilderChain(depth, width, height, Name(depth))
	chain.StartWith(generator.WindingPassages())
	chain.With(generator.NewAreaStartingPosition(generator.XCenter, generator.YCenter))
	chain.With(generator.NewCullUnreachable())
	chain.With(generator.NewAreaStartingPosition(generator.XLeft, generator.YCenter))
	chain.With(generator.NewVoronoiSpawning())
	chain.With(generator.NewDistantExit())
	chain.With(generator.NewCaveDecorator(generator.LimestoneCaves()))
	return chain
}

func deepLimestoneCaverns(depth, width, height int) *generator.BuilderChain {
	chain := generator.NewBuilderChain(depth, width, height, Name(depth))
	chain.StartWith(generator.DLACentralAttractor())
	chain.With(generator.NewAreaStartingPosition(generator.XLeft, generator.YTop))
	chain.With(generator.NewCullUnreachable())
	chain.With(generator.NewVoronoiSpawning())
	chain.With(generator.NewDistantExit())
	chain.With(generator.NewCaveDecorator(generator.LimestoneCaves()))
	chain.With(generator.NewPrefabSectional(generator.OrcCamp))
	return chain
}

// dwarfFortEntrance is a cave on the left that gives way to worked halls on
// the right
func dwarfFortEntrance(depth, width, height int) *generator.BuilderChain {
	chain := generator.NewBuilderChain(depth, width, height, Name(depth))
	chain.StartWith(generator.NewCellularAutomata())
	chain.With(generator.NewAreaStartingPosition(generator.XCenter, generator.YCenter))
	chain.With(generator.NewCullUnreachable())
	chain.With(generator.NewAreaStartingPosition(generator.XLeft, generator.YCenter))
	chain.With(generator.NewVoronoiSpawning())
	chain.With(generator.NewCaveDecorator(generator.DwarfHold()))
	chain.With(generator.NewTransition("Dwarf Fort", fortHalls))
	chain.With(generator.NewAreaStartingPosition(generator.XLeft, generator.YCenter))
	chain.With(generator.NewCullUnreachable())
	chain.With(generator.NewAreaEndingPosition(generator.XRight, generator.YCenter))
	return chain
}

// fortHalls builds the rooms and corridors of a dwarf fort without stairs
func fortHalls(depth, width, height int) *generator.BuilderChain {
	chain := generator.NewBuilderChain(depth, width, height, Name(6))
	chain.StartWith(generator.NewBSPDungeon())
	chain.With(generator.NewRoomSorter(generator.Central))
	chain.With(generator.NewRoomDrawer())
	chain.With(generator.NewBSPCorridors())
	chain.With(generator.NewCorridorSpawner())
	chain.With(generator.NewDoorPlacement())
	return chain
}

func dwarfFort(depth, width, height int) *generator.BuilderChain {
	chain := fortHalls(depth, width, height)
	chain.With(generator.NewDragonsLair())
	chain.With(generator.NewAreaStartingPosition(generator.XLeft, generator.YTop))
	chain.With(generator.NewCullUnreachable())
	chain.With(generator.NewAreaEndingPosition(generator.XRight, generator.YBottom))
	chain.With(generator.NewVoronoiSpawning())
	chain.With(generator.NewDistantExit())
	chain.With(generator.NewDragonSpawner())
	return chain
}

func mushroomGroveChain(depth, width, height int) *generator.BuilderChain {
	chain := generator.NewBuilderChain(depth, width, height, Name(depth))
	chain.StartWith(generator.NewCellularAutomata())
	chain.With(generator.NewWaveformCollapse())
	chain.With(generator.NewAreaStartingPosition(generator.XCenter, generator.YCenter))
	chain.With(generator.NewCullUnreachable())
	chain.With(generator.NewAreaStartingPosition(generator.XRight, generator.YCenter))
	chain.With(generator.NewAreaEndingPosition(generator.XLeft, generator.YCenter))
	chain.With(generator.NewVoronoiSpawning())
	return chain
}

func mushroomEntrance(depth, width, height int) *generator.BuilderChain {
	chain := mushroomGroveChain(depth, width, height)
	chain.With(generator.NewCaveDecorator(generator.MushroomCaves()))
	chain.With(generator.NewPrefabSectional(generator.FungalShrine))
	return chain
}

func mushroomGrove(depth, width, height int) *generator.BuilderChain {
	chain := mushroomGroveChain(depth, width, height)
	chain.With(generator.NewCaveDecorator(generator.MushroomCaves()))
	return chain
}

func mushroomExit(depth, width, height int) *generator.BuilderChain {
	chain := mushroomGroveChain(depth, width, height)
	chain.With(generator.NewPrefabSectional(generator.UndergroundGate))
	return chain
}

func darkElfCity(depth, width, height int) *generator.BuilderChain {
	chain := generator.NewBuilderChain(depth, width, height, Name(depth))
	chain.StartWith(generator.NewBSPInterior())
	chain.With(generator.NewRoomBasedStartingPosition())
	chain.With(generator.NewCullUnreachable())
	chain.With(generator.NewDoorPlacement())
	chain.With(generator.NewRoomBasedSpawner())
	chain.With(generator.NewRoomBasedStairs())
	return chain
}

// randomChain picks either a room based or a shape based level
func randomChain(depth, width, height int, r *rng.RNG) *generator.BuilderChain {
	chain := generator.NewBuilderChain(depth, width, height, Name(depth))
	if r.RollDice(1, 2) == 1 {
		randomRoomBuilder(r, chain)
	} else {
		randomShapeBuilder(r, chain)
	}
	chain.With(generator.NewPrefabVaults())
	return chain
}

func randomRoomBuilder(r *rng.RNG, chain *generator.BuilderChain) {
	switch r.RollDice(1, 3) {
	case 1:
		chain.StartWith(generator.NewBSPDungeon())
	case 2:
		chain.StartWith(generator.NewSimpleMap())
	default:
		// interior leaves already come joined up
		chain.StartWith(generator.NewBSPInterior())
		chain.With(generator.NewRoomBasedStartingPosition())
		chain.With(generator.NewCullUnreachable())
		chain.With(generator.NewDoorPlacement())
		chain.With(generator.NewRoomBasedSpawner())
		chain.With(generator.NewRoomBasedStairs())
		return
	}

	sorts := []generator.RoomSort{
		generator.Leftmost, generator.Rightmost, generator.Topmost,
		generator.Bottommost, generator.ReadingOrder, generator.Central,
	}
	chain.With(generator.NewRoomSorter(sorts[r.Intn(len(sorts))]))
	chain.With(generator.NewRoomDrawer())
	if r.RollDice(1, 3) == 1 {
		chain.With(generator.NewRoomExploder())
	}

	switch r.RollDice(1, 4) {
	case 1:
		chain.With(generator.NewDoglegCorridors())
	case 2:
		chain.With(generator.NewBSPCorridors())
	case 3:
		chain.With(generator.NewStraightLineCorridors())
	default:
		chain.With(generator.NewNearestCorridors())
	}
	if r.RollDice(1, 2) == 1 {
		chain.With(generator.NewCorridorSpawner())
	}
	if r.RollDice(1, 3) == 1 {
		chain.With(generator.NewRoomCornerRounder())
	}

	chain.With(generator.NewRoomBasedStartingPosition())
	chain.With(generator.NewCullUnreachable())
	chain.With(generator.NewDoorPlacement())
	chain.With(generator.NewRoomBasedSpawner())
	chain.With(generator.NewRoomBasedStairs())
}

func randomShapeBuilder(r *rng.RNG, chain *generator.BuilderChain) {
	switch r.RollDice(1, 16) {
	case 1:
		chain.StartWith(generator.NewCellularAutomata())
	case 2:
		chain.StartWith(generator.OpenArea())
	case 3:
		chain.StartWith(generator.OpenHalls())
	case 4:
		chain.StartWith(generator.WindingPassages())
	case 5:
		chain.StartWith(generator.FatPassages())
	case 6:
		chain.StartWith(generator.FearfulSymmetry())
	case 7:
		chain.StartWith(generator.LongTunnels())
	case 8:
		chain.StartWith(generator.DLAWalkInwards())
	case 9:
		chain.StartWith(generator.DLAWalkOutwards())
	case 10:
		chain.StartWith(generator.DLACentralAttractor())
	case 11:
		chain.StartWith(generator.DLAInsectoid())
	case 12:
		chain.StartWith(generator.DLARootlike())
	case 13:
		chain.StartWith(generator.NewVoronoiCells(generator.Pythagoras))
	case 14:
		chain.StartWith(generator.NewVoronoiCells(generator.Manhattan))
	case 15:
		chain.StartWith(generator.NewVoronoiCells(generator.Chebyshev))
	default:
		chain.StartWith(generator.NewMaze())
	}

	if r.RollDice(1, 3) == 1 {
		chain.With(generator.NewWaveformCollapse())
	}

	xs := []generator.XPos{generator.XLeft, generator.XCenter, generator.XRight}
	ys := []generator.YPos{generator.YTop, generator.YCenter, generator.YBottom}
	chain.With(generator.NewAreaStartingPosition(xs[r.Intn(len(xs))], ys[r.Intn(len(ys))]))
	chain.With(generator.NewCullUnreachable())
	chain.With(generator.NewVoronoiSpawning())
	chain.With(generator.NewDistantExit())
}
