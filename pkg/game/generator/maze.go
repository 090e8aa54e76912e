package generator

import (
	"github.com/zyedidia/generic/stack"

	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// Maze carves a perfect maze with a recursive backtracker over a lattice of
// cells. Cell (cx, cy) occupies tile (2cx+1, 2cy+1); the tiles between cells
// are walls until a passage is opened.
type Maze struct {
	// Braid is the chance that a dead end is opened into a loop
	Braid float64
}

// NewMaze creates a perfect maze builder
func NewMaze() *Maze {
	return &Maze{}
}

// Name returns the name of this builder
func (b *Maze) Name() string {
	return "Maze"
}

type mazeCell struct {
	x, y int
}

var mazeSteps = []mazeCell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// BuildMap runs the backtracker from the top-left cell
func (b *Maze) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	cols, rows := (m.Width-1)/2, (m.Height-1)/2
	if cols < 1 || rows < 1 {
		return nil
	}

	visited := make([]bool, cols*rows)
	tileOf := func(c mazeCell) (int, int) { return 2*c.x + 1, 2*c.y + 1 }

	s := stack.New[mazeCell]()
	start := mazeCell{0, 0}
	visited[0] = true
	sx, sy := tileOf(start)
	m.Set(sx, sy, world.Floor)
	s.Push(start)

	carved := 0
	for s.Size() > 0 {
		curr := s.Peek()
		candidates := make([]mazeCell, 0, 4)
		for _, d := range mazeSteps {
			nx, ny := curr.x+d.x, curr.y+d.y
			if nx >= 0 && nx < cols && ny >= 0 && ny < rows && !visited[ny*cols+nx] {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			s.Pop()
			continue
		}

		d := candidates[r.Intn(len(candidates))]
		next := mazeCell{curr.x + d.x, curr.y + d.y}
		visited[next.y*cols+next.x] = true

		cx, cy := tileOf(curr)
		m.Set(cx+d.x, cy+d.y, world.Floor)
		m.Set(cx+2*d.x, cy+2*d.y, world.Floor)
		s.Push(next)

		carved++
		if carved%50 == 0 {
			ctx.TakeSnapshot()
		}
	}

	if b.Braid > 0 {
		b.braid(r, m, cols, rows)
	}
	return nil
}

// braid opens a wall of some dead ends so the maze gains loops
func (b *Maze) braid(r *rng.RNG, m *world.Map, cols, rows int) {
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			x, y := 2*cx+1, 2*cy+1
			exits := 0
			var closed []mazeCell
			for _, d := range mazeSteps {
				if m.At(x+d.x, y+d.y) == world.Floor {
					exits++
					continue
				}
				nx, ny := cx+d.x, cy+d.y
				if nx >= 0 && nx < cols && ny >= 0 && ny < rows {
					closed = append(closed, d)
				}
			}
			if exits != 1 || len(closed) == 0 || !r.Chance(b.Braid) {
				continue
			}
			d := closed[r.Intn(len(closed))]
			m.Set(x+d.x, y+d.y, world.Floor)
		}
	}
}
