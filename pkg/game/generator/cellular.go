package generator

import (
	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// CellularAutomata grows organic caves from random noise
type CellularAutomata struct {
	// WallChance is the probability (0..100) that a starting tile is wall
	WallChance  int
	Generations int
}

// NewCellularAutomata creates a cave builder with 55% starting walls and 15 generations
func NewCellularAutomata() *CellularAutomata {
	return &CellularAutomata{WallChance: 55, Generations: 15}
}

// Name returns the name of this builder
func (b *CellularAutomata) Name() string {
	return "Cellular Automata"
}

// BuildMap seeds the interior with noise and smooths it
func (b *CellularAutomata) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if r.RollDice(1, 100) > b.WallChance {
				m.Set(x, y, world.Floor)
			} else {
				m.Set(x, y, world.Wall)
			}
		}
	}
	ctx.TakeSnapshot()

	for i := 0; i < b.Generations; i++ {
		if !CellularStep(m) {
			break
		}
		ctx.TakeSnapshot()
	}
	return nil
}

// CellularStep applies one generation of the cave rule to every interior tile:
// a tile with five or more wall neighbours becomes wall, any other becomes floor.
// It reports whether anything changed.
func CellularStep(m *world.Map) bool {
	next := append([]world.TileType(nil), m.Tiles...)
	changed := false

	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			walls := 0
			for _, dir := range world.AllDirections() {
				dx, dy := dir.Delta()
				if m.At(x+dx, y+dy) == world.Wall {
					walls++
				}
			}

			idx := m.Index(x, y)
			tile := world.Floor
			if walls >= 5 {
				tile = world.Wall
			}
			if next[idx] != tile {
				next[idx] = tile
				changed = true
			}
		}
	}

	copy(m.Tiles, next)
	return changed
}
