package generator

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/zyedidia/generic/queue"
	"github.com/zyedidia/generic/stack"

	"delving/pkg/engine/logging"
	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// WaveformCollapse cuts the current map into chunks and resynthesises a new
// map of the same size from those chunks. Neighbouring chunks must agree on
// their open edges, or must have been neighbours somewhere in the source.
type WaveformCollapse struct {
	ChunkSize int
	// MaxAttempts is how many fresh solves are tried before giving up
	MaxAttempts int
	// MaxBacktracks bounds how many collapses one attempt may undo
	MaxBacktracks int
}

// NewWaveformCollapse creates a collapse stage with 8x8 chunks
func NewWaveformCollapse() *WaveformCollapse {
	return &WaveformCollapse{ChunkSize: 8, MaxAttempts: 10, MaxBacktracks: 64}
}

// Name returns the name of this builder
func (b *WaveformCollapse) Name() string {
	return "Waveform Collapse"
}

// BuildMap replaces the map with a resynthesised one. Rooms, corridors, spawns
// and the start no longer describe the new map and are cleared.
func (b *WaveformCollapse) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	n := b.ChunkSize
	cols, rows := m.Width/n, m.Height/n
	if n <= 0 || cols == 0 || rows == 0 {
		return fmt.Errorf("%w: %dx%d map is smaller than one %d tile chunk",
			ErrWaveformContradiction, m.Width, m.Height, n)
	}

	wave := newWaveform(m, n)
	for attempt := 1; attempt <= b.MaxAttempts; attempt++ {
		solution, ok := wave.solve(r, b.MaxBacktracks)
		if !ok {
			logging.Warn("waveform collapse attempt %d of %d hit a contradiction", attempt, b.MaxAttempts)
			continue
		}

		out := m.Clone()
		out.Fill(world.Wall)
		wave.render(out, solution)
		out.SealPerimeter()
		if out.CountWalkable() == 0 {
			logging.Warn("waveform collapse attempt %d of %d produced no floor", attempt, b.MaxAttempts)
			continue
		}

		copy(m.Tiles, out.Tiles)
		ctx.Rooms = nil
		ctx.Corridors = nil
		ctx.SpawnList = nil
		ctx.StartingPosition = nil
		ctx.ExitPosition = nil
		return nil
	}
	return ErrWaveformContradiction
}

// patternSet is a bitset over pattern indices
type patternSet []uint64

func newPatternSet(n int, full bool) patternSet {
	s := make(patternSet, (n+63)/64)
	if full {
		for i := 0; i < n; i++ {
			s.add(i)
		}
	}
	return s
}

func (s patternSet) has(i int) bool { return s[i/64]&(1<<(i%64)) != 0 }
func (s patternSet) add(i int)      { s[i/64] |= 1 << (i % 64) }
func (s patternSet) remove(i int)   { s[i/64] &^= 1 << (i % 64) }

func (s patternSet) count() int {
	c := 0
	for _, w := range s {
		c += bits.OnesCount64(w)
	}
	return c
}

func (s patternSet) union(o patternSet) {
	for i := range s {
		s[i] |= o[i]
	}
}

// intersect keeps only members of o and reports whether anything was removed
func (s patternSet) intersect(o patternSet) bool {
	changed := false
	for i := range s {
		next := s[i] & o[i]
		if next != s[i] {
			changed = true
			s[i] = next
		}
	}
	return changed
}

func (s patternSet) clone() patternSet {
	return append(patternSet(nil), s...)
}

// chunk sides, in the order N, E, S, W
var chunkSides = [4]struct{ dx, dy int }{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func oppositeSide(d int) int { return (d + 2) % 4 }

type wfcPattern struct {
	tiles  []world.TileType
	weight int
	exits  [4][]bool
	open   [4]bool
}

type waveform struct {
	size       int
	cols, rows int
	patterns   []wfcPattern
	// compat[d][a] is the set of patterns that may sit on side d of a
	compat [4][]patternSet
}

func newWaveform(m *world.Map, size int) *waveform {
	w := &waveform{size: size, cols: m.Width / size, rows: m.Height / size}
	lookup := make(map[string]int)

	var observed [][4][]int
	for _, flip := range [][2]bool{{false, false}, {true, false}, {false, true}, {true, true}} {
		grid := make([]int, w.cols*w.rows)
		for cy := 0; cy < w.rows; cy++ {
			for cx := 0; cx < w.cols; cx++ {
				tiles := w.extract(m, cx, cy, flip[0], flip[1])
				gx, gy := cx, cy
				if flip[0] {
					gx = w.cols - 1 - cx
				}
				if flip[1] {
					gy = w.rows - 1 - cy
				}
				grid[gy*w.cols+gx] = w.intern(lookup, tiles)
			}
		}

		for len(observed) < len(w.patterns) {
			observed = append(observed, [4][]int{})
		}
		for gy := 0; gy < w.rows; gy++ {
			for gx := 0; gx < w.cols; gx++ {
				a := grid[gy*w.cols+gx]
				for d, side := range chunkSides {
					nx, ny := gx+side.dx, gy+side.dy
					if nx < 0 || nx >= w.cols || ny < 0 || ny >= w.rows {
						continue
					}
					observed[a][d] = append(observed[a][d], grid[ny*w.cols+nx])
				}
			}
		}
	}

	w.buildCompatibility(observed)
	return w
}

// extract copies one chunk, optionally mirrored
func (w *waveform) extract(m *world.Map, cx, cy int, flipX, flipY bool) []world.TileType {
	n := w.size
	tiles := make([]world.TileType, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			sx, sy := x, y
			if flipX {
				sx = n - 1 - x
			}
			if flipY {
				sy = n - 1 - y
			}
			tiles[y*n+x] = m.At(cx*n+sx, cy*n+sy)
		}
	}
	return tiles
}

// intern returns the index of the pattern, adding it on first sight
func (w *waveform) intern(lookup map[string]int, tiles []world.TileType) int {
	var key strings.Builder
	for _, t := range tiles {
		key.WriteByte(byte(t))
	}
	if idx, ok := lookup[key.String()]; ok {
		w.patterns[idx].weight++
		return idx
	}

	p := wfcPattern{tiles: tiles, weight: 1}
	n := w.size
	for i := 0; i < 4; i++ {
		p.exits[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		p.exits[0][i] = tiles[i].IsWalkable()
		p.exits[1][i] = tiles[i*n+n-1].IsWalkable()
		p.exits[2][i] = tiles[(n-1)*n+i].IsWalkable()
		p.exits[3][i] = tiles[i*n].IsWalkable()
	}
	for d := 0; d < 4; d++ {
		for _, open := range p.exits[d] {
			p.open[d] = p.open[d] || open
		}
	}

	idx := len(w.patterns)
	lookup[key.String()] = idx
	w.patterns = append(w.patterns, p)
	return idx
}

// socketsMatch reports whether b may sit on side d of a: both edges sealed,
// or at least one opening lines up.
func (w *waveform) socketsMatch(a, b wfcPattern, d int) bool {
	o := oppositeSide(d)
	if !a.open[d] || !b.open[o] {
		return !a.open[d] && !b.open[o]
	}
	for i := range a.exits[d] {
		if a.exits[d][i] && b.exits[o][i] {
			return true
		}
	}
	return false
}

func (w *waveform) buildCompatibility(observed [][4][]int) {
	n := len(w.patterns)
	for d := 0; d < 4; d++ {
		w.compat[d] = make([]patternSet, n)
		for a := 0; a < n; a++ {
			w.compat[d][a] = newPatternSet(n, false)
			for b := 0; b < n; b++ {
				if w.socketsMatch(w.patterns[a], w.patterns[b], d) {
					w.compat[d][a].add(b)
				}
			}
		}
	}
	for a, sides := range observed {
		for d, neighbours := range sides {
			for _, b := range neighbours {
				w.compat[d][a].add(b)
				w.compat[oppositeSide(d)][b].add(a)
			}
		}
	}
}

type collapseFrame struct {
	cell, choice int
	saved        []patternSet
}

// solve collapses every cell to one pattern. A contradiction undoes the most
// recent collapse and forbids that choice; after maxBacktracks undos the
// attempt fails.
func (w *waveform) solve(r *rng.RNG, maxBacktracks int) ([]int, bool) {
	n := len(w.patterns)
	cells := make([]patternSet, w.cols*w.rows)
	for i := range cells {
		cells[i] = newPatternSet(n, true)
	}

	trail := stack.New[collapseFrame]()
	backtracks := 0
	for {
		cell := w.lowestEntropy(cells)
		if cell < 0 {
			break
		}

		choice := w.pick(r, cells[cell])
		saved := make([]patternSet, len(cells))
		for i, c := range cells {
			saved[i] = c.clone()
		}
		trail.Push(collapseFrame{cell: cell, choice: choice, saved: saved})
		cells[cell] = newPatternSet(n, false)
		cells[cell].add(choice)

		for !w.propagate(cells, cell) {
			backtracks++
			if backtracks > maxBacktracks || trail.Size() == 0 {
				return nil, false
			}
			f := trail.Pop()
			cells = f.saved
			cells[f.cell].remove(f.choice)
			cell = f.cell
		}
	}

	solution := make([]int, len(cells))
	for i, c := range cells {
		for p := 0; p < n; p++ {
			if c.has(p) {
				solution[i] = p
				break
			}
		}
	}
	return solution, true
}

// lowestEntropy returns the undecided cell with the fewest options, or -1 when
// every cell is decided
func (w *waveform) lowestEntropy(cells []patternSet) int {
	best, bestCount := -1, 0
	for i, c := range cells {
		count := c.count()
		if count <= 1 {
			continue
		}
		if best < 0 || count < bestCount {
			best, bestCount = i, count
		}
	}
	return best
}

// pick chooses one option weighted by how often the pattern occurs
func (w *waveform) pick(r *rng.RNG, options patternSet) int {
	total := 0
	last := -1
	for p := range w.patterns {
		if options.has(p) {
			total += w.patterns[p].weight
			last = p
		}
	}
	roll := r.Intn(total)
	for p := range w.patterns {
		if !options.has(p) {
			continue
		}
		roll -= w.patterns[p].weight
		if roll < 0 {
			return p
		}
	}
	return last
}

// propagate narrows neighbours until nothing changes; false on contradiction
func (w *waveform) propagate(cells []patternSet, start int) bool {
	n := len(w.patterns)
	pending := queue.New[int]()
	pending.Enqueue(start)
	for !pending.Empty() {
		c := pending.Dequeue()
		if cells[c].count() == 0 {
			return false
		}
		cx, cy := c%w.cols, c/w.cols
		for d, side := range chunkSides {
			nx, ny := cx+side.dx, cy+side.dy
			if nx < 0 || nx >= w.cols || ny < 0 || ny >= w.rows {
				continue
			}
			allowed := newPatternSet(n, false)
			for p := 0; p < n; p++ {
				if cells[c].has(p) {
					allowed.union(w.compat[d][p])
				}
			}
			neighbour := ny*w.cols + nx
			if cells[neighbour].intersect(allowed) {
				if cells[neighbour].count() == 0 {
					return false
				}
				pending.Enqueue(neighbour)
			}
		}
	}
	return true
}

func (w *waveform) render(m *world.Map, solution []int) {
	n := w.size
	for i, p := range solution {
		cx, cy := i%w.cols, i/w.cols
		tiles := w.patterns[p].tiles
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				m.Set(cx*n+x, cy*n+y, tiles[y*n+x])
			}
		}
	}
}
