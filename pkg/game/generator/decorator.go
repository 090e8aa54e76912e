package generator

import (
	"github.com/aquilax/go-perlin"

	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// Decoration is one floor variant and its relative weight
type Decoration struct {
	Tile   world.TileType
	Weight int
}

// DecorationTable describes how a biome dresses its caves
type DecorationTable struct {
	Name string
	// Floors lists the variants plain floor may become
	Floors []Decoration
	// Density is the share of floor tiles that get decorated, 0 to 1
	Density float64
	// DressWalls adds stalactites, stalagmites and pools to thin walls
	DressWalls bool
}

// LimestoneCaves is gravel and puddles between dripping rock
func LimestoneCaves() DecorationTable {
	return DecorationTable{
		Name:       "Limestone",
		Floors:     []Decoration{{world.Gravel, 3}, {world.ShallowWater, 1}},
		Density:    0.3,
		DressWalls: true,
	}
}

// MushroomCaves is soft moss with the odd puddle
func MushroomCaves() DecorationTable {
	return DecorationTable{
		Name:    "Mushroom",
		Floors:  []Decoration{{world.Grass, 4}, {world.ShallowWater, 1}},
		Density: 0.45,
	}
}

// DwarfHold is worked stone, gravel and planking
func DwarfHold() DecorationTable {
	return DecorationTable{
		Name:    "Dwarf Hold",
		Floors:  []Decoration{{world.Gravel, 2}, {world.WoodFloor, 1}},
		Density: 0.2,
	}
}

// CaveDecorator swaps plain floor for cosmetic variants, clustered by Perlin
// noise, and dresses thin walls. It only touches Floor and Wall tiles inside
// the perimeter and never changes what is reachable.
type CaveDecorator struct {
	Table DecorationTable
	// Scale is the noise frequency; smaller values give larger patches
	Scale float64
}

// NewCaveDecorator creates a decorator for a biome table
func NewCaveDecorator(table DecorationTable) *CaveDecorator {
	return &CaveDecorator{Table: table, Scale: 0.12}
}

// Name returns the name of this builder
func (b *CaveDecorator) Name() string {
	return "Cave Decorator: " + b.Table.Name
}

// BuildMap decorates the map
func (b *CaveDecorator) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	noise := perlin.NewPerlin(2, 2, 3, r.Int63())
	total := 0
	for _, d := range b.Table.Floors {
		total += d.Weight
	}

	// decide every tile against the undecorated map
	source := m.Clone()
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			idx := m.Index(x, y)
			switch source.Tiles[idx] {
			case world.Floor:
				if total == 0 || ctx.isReserved(idx) {
					continue
				}
				// Noise2D is roughly -1..1
				n := (noise.Noise2D(float64(x)*b.Scale, float64(y)*b.Scale) + 1) / 2
				if n < 1-b.Table.Density {
					continue
				}
				m.Tiles[idx] = b.pickFloor(r, total)
			case world.Wall:
				if b.Table.DressWalls {
					m.Tiles[idx] = b.dressWall(r, source, x, y)
				}
			}
		}
	}
	return nil
}

func (b *CaveDecorator) pickFloor(r *rng.RNG, total int) world.TileType {
	roll := r.Intn(total)
	for _, d := range b.Table.Floors {
		roll -= d.Weight
		if roll < 0 {
			return d.Tile
		}
	}
	return world.Floor
}

// dressWall decorates a wall with one wall neighbour as a rock formation, and
// a wall spanning a gap between two opposite open tiles as a pool. Formations
// stay opaque; a pool only appears where it cannot open a diagonal step.
func (b *CaveDecorator) dressWall(r *rng.RNG, m *world.Map, x, y int) world.TileType {
	var open []world.Direction
	for _, dir := range world.Cardinals() {
		dx, dy := dir.Delta()
		if m.At(x+dx, y+dy) != world.Wall {
			open = append(open, dir)
		}
	}

	switch len(open) {
	case 3:
		switch r.RollDice(1, 4) {
		case 1:
			return world.Stalactite
		case 2:
			return world.Stalagmite
		}
	case 2:
		if open[0].Opposite() == open[1] && r.RollDice(1, 3) == 1 {
			return world.DeepWater
		}
	}
	return world.Wall
}
