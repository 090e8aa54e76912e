package generator

import (
	"sort"

	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
	"delving/pkg/game/spawn"
)

// Town builds the surface town the dungeon opens under: a harbour on the left
// with piers reaching into deep water, wooden buildings on the grass, and
// roads from every door to the road east out of town where the exit lies.
// The player arrives at the end of a pier.
type Town struct {
	// Attempts is how many building footprints are tried
	Attempts int
}

// NewTown creates the town builder
func NewTown() *Town {
	return &Town{Attempts: 400}
}

// Name returns the name of this builder
func (b *Town) Name() string {
	return "Town"
}

// building is one house of the town. Door is on its wall and Outside is the
// tile in front of it.
type building struct {
	Walls   world.Rect
	Door    world.Point
	Outside world.Point
}

func (h building) interior() world.Rect {
	return h.Walls.Inset(1)
}

// BuildMap lays out the town
func (b *Town) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	m.Outdoors = true
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			m.Set(x, y, world.Grass)
		}
	}

	shore := b.harbour(r, m)
	ctx.TakeSnapshot()
	piers := b.piers(r, m, shore)
	ctx.TakeSnapshot()

	houses := b.buildings(r, m, shore)
	ctx.Rooms = make([]world.Rect, 0, len(houses))
	for _, h := range houses {
		ctx.Rooms = append(ctx.Rooms, h.interior())
	}
	ctx.TakeSnapshot()

	ctx.SetStart(piers[0])
	exit, ok := nearestWalkable(m, world.Pt(m.Width-2, m.Height/2), func(idx int) bool {
		return m.Tiles[idx] != world.Grass
	})
	if !ok {
		return ErrNoWalkableTile
	}

	for _, h := range houses {
		b.road(m, h.Outside, exit)
	}
	b.road(m, world.Pt(shore+1, piers[0].Y), exit)
	ctx.SetExit(exit)
	ctx.TakeSnapshot()

	b.populate(r, ctx, houses)
	return nil
}

// harbour floods the left of the map: deep water against the edge, a band of
// shallows, then the shore. It returns the first column that is dry on every row.
func (b *Town) harbour(r *rng.RNG, m *world.Map) int {
	width := max(2, m.Width/12)
	shore := 0
	for y := 1; y < m.Height-1; y++ {
		deep := r.Range(1, width+1)
		x := 1
		for ; x < 1+deep; x++ {
			m.Set(x, y, world.DeepWater)
		}
		for ; x < 1+deep+2; x++ {
			m.Set(x, y, world.ShallowWater)
		}
		shore = max(shore, x)
	}
	return shore
}

// piers lays a few planked walkways from the map edge to the shore and
// returns the outer end of each
func (b *Town) piers(r *rng.RNG, m *world.Map, shore int) []world.Point {
	count := max(1, min(3, (m.Height-4)/10))
	rows := make([]int, m.Height-4)
	for i := range rows {
		rows[i] = i + 2
	}
	r.Shuffle(len(rows), func(a, c int) { rows[a], rows[c] = rows[c], rows[a] })
	var ends []world.Point
	used := map[int]bool{}
	for _, y := range rows {
		if len(ends) == count {
			break
		}
		if used[y-1] || used[y] || used[y+1] {
			continue
		}
		used[y] = true
		for x := 1; x <= shore; x++ {
			m.Set(x, y, world.Bridge)
		}
		ends = append(ends, world.Pt(1, y))
	}
	return ends
}

// buildings places non-overlapping wooden houses east of the shore, keeping
// a two tile lane of grass around every one
func (b *Town) buildings(r *rng.RNG, m *world.Map, shore int) []building {
	minX := shore + 3
	maxX := m.Width - 3
	var houses []building
	for attempt := 0; attempt < b.Attempts; attempt++ {
		w := r.Range(5, 12)
		h := r.Range(5, 9)
		if maxX-w <= minX || m.Height-3-h <= 2 {
			continue
		}
		walls := world.NewRect(r.Range(minX, maxX-w), r.Range(2, m.Height-2-h), w, h)
		crowded := false
		for _, other := range houses {
			if walls.Inset(-2).Intersects(other.Walls) {
				crowded = true
				break
			}
		}
		if crowded {
			continue
		}

		house := building{Walls: walls}
		walls.ForEach(func(p world.Point) {
			m.Set(p.X, p.Y, world.Wall)
		})
		house.interior().ForEach(func(p world.Point) {
			m.Set(p.X, p.Y, world.WoodFloor)
		})
		house.Door, house.Outside = b.doorway(r, m, walls)
		m.Set(house.Door.X, house.Door.Y, world.WoodFloor)
		houses = append(houses, house)
	}

	// the biggest houses get the important tenants
	sort.SliceStable(houses, func(i, j int) bool {
		return houses[i].interior().Area() > houses[j].interior().Area()
	})
	return houses
}

// doorway picks a door in the middle of the wall that faces the centre row
func (b *Town) doorway(r *rng.RNG, m *world.Map, walls world.Rect) (door, outside world.Point) {
	x := r.Range(walls.X1+1, walls.X2-1)
	if walls.Center().Y < m.Height/2 {
		return world.Pt(x, walls.Y2-1), world.Pt(x, walls.Y2)
	}
	return world.Pt(x, walls.Y1), world.Pt(x, walls.Y1-1)
}

// road paves the cheapest walk from one point to another. Only grass turns
// into road; piers, water and floors keep their look.
func (b *Town) road(m *world.Map, from, to world.Point) {
	path, ok := world.FindPath(m, from, to)
	if !ok {
		return
	}
	for _, p := range path {
		if m.At(p.X, p.Y) == world.Grass {
			m.Set(p.X, p.Y, world.Road)
		}
	}
}

// townsfolk lists who lives in a house, by size rank. Houses beyond the list
// are ordinary homes.
var townsfolk = [][]string{
	{"Barkeep", "Patron", "Patron", "Patron"},
	{"Priest", "Townsperson"},
	{"Blacksmith"},
	{"Alchemist"},
}

// populate puts a door in every doorway and the townsfolk indoors. Some
// homes stand empty and have rats.
func (b *Town) populate(r *rng.RNG, ctx *BuildContext, houses []building) {
	m := ctx.Map
	for i, h := range houses {
		ctx.AddSpawn(m.Index(h.Door.X, h.Door.Y), spawn.Door)

		var tenants []string
		switch {
		case i < len(townsfolk):
			tenants = townsfolk[i]
		case r.RollDice(1, 4) == 1:
			tenants = []string{"Rat", "Rat", "Rat"}
		default:
			tenants = []string{"Townsperson", "Townsperson"}
		}

		free := roomTiles(m, h.interior())
		r.Shuffle(len(free), func(a, c int) { free[a], free[c] = free[c], free[a] })
		for _, tag := range tenants {
			for len(free) > 0 && (ctx.isReserved(free[0]) || ctx.SpawnAt(free[0])) {
				free = free[1:]
			}
			if len(free) == 0 {
				break
			}
			ctx.AddSpawn(free[0], tag)
			free = free[1:]
		}
	}
}
