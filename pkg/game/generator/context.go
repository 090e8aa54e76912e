package generator

import (
	"errors"

	"delving/pkg/engine/world"
)

// Generation failures a stage can report. Callers may retry with another seed.
var (
	ErrNoWalkableTile        = errors.New("no walkable tile on the map")
	ErrDegenerateMap         = errors.New("nothing is reachable from the start")
	ErrWaveformContradiction = errors.New("waveform collapse could not resolve the map")
)

// SpawnEntry asks for an entity with the given tag on the tile at Index
type SpawnEntry struct {
	Index int    `json:"index"`
	Tag   string `json:"tag"`
}

// BuildContext is the state shared and mutated by every stage of a chain
type BuildContext struct {
	Map              *world.Map
	SpawnList        []SpawnEntry
	StartingPosition *world.Point
	ExitPosition     *world.Point
	// Rooms and Corridors are nil until a stage produces them
	Rooms         []world.Rect
	Corridors     [][]int
	History       []*world.Map
	RecordHistory bool
	Width         int
	Height        int
}

// NewBuildContext creates a context holding a wall-filled map
func NewBuildContext(depth, width, height int, name string) *BuildContext {
	return &BuildContext{
		Map:    world.NewMap(depth, width, height, name),
		Width:  width,
		Height: height,
	}
}

// HasRooms reports whether a stage has produced a room list
func (ctx *BuildContext) HasRooms() bool {
	return ctx.Rooms != nil
}

// HasCorridors reports whether a stage has produced a corridor list
func (ctx *BuildContext) HasCorridors() bool {
	return ctx.Corridors != nil
}

// TakeSnapshot appends a fully revealed copy of the map to the history
func (ctx *BuildContext) TakeSnapshot() {
	if !ctx.RecordHistory {
		return
	}
	snapshot := ctx.Map.Clone()
	snapshot.RevealAll()
	ctx.History = append(ctx.History, snapshot)
}

// SetStart moves the starting position. Below the first level the start tile
// becomes the way back up, and any previous up-stairs revert to floor.
func (ctx *BuildContext) SetStart(p world.Point) {
	m := ctx.Map
	if prev := ctx.StartingPosition; prev != nil && m.At(prev.X, prev.Y) == world.UpStairs {
		m.Set(prev.X, prev.Y, world.Floor)
	}
	ctx.StartingPosition = &world.Point{X: p.X, Y: p.Y}
	if m.Depth > 1 && m.IsWalkableAt(p.X, p.Y) && m.At(p.X, p.Y) != world.DownStairs {
		m.Set(p.X, p.Y, world.UpStairs)
	}
	ctx.RemoveSpawnsAt(m.Index(p.X, p.Y))
}

// SetExit places the single down staircase at p
func (ctx *BuildContext) SetExit(p world.Point) {
	m := ctx.Map
	for i, t := range m.Tiles {
		if t == world.DownStairs {
			m.Tiles[i] = world.Floor
		}
	}
	m.Set(p.X, p.Y, world.DownStairs)
	ctx.ExitPosition = &world.Point{X: p.X, Y: p.Y}
	ctx.RemoveSpawnsAt(m.Index(p.X, p.Y))
}

// AddSpawn queues an entity for the tile at idx
func (ctx *BuildContext) AddSpawn(idx int, tag string) {
	ctx.SpawnList = append(ctx.SpawnList, SpawnEntry{Index: idx, Tag: tag})
}

// SpawnAt reports whether anything is queued on the tile at idx
func (ctx *BuildContext) SpawnAt(idx int) bool {
	for _, s := range ctx.SpawnList {
		if s.Index == idx {
			return true
		}
	}
	return false
}

// RemoveSpawnsAt drops every spawn queued on the tile at idx
func (ctx *BuildContext) RemoveSpawnsAt(idx int) {
	ctx.RetainSpawns(func(s SpawnEntry) bool { return s.Index != idx })
}

// RetainSpawns keeps only the spawns for which keep returns true
func (ctx *BuildContext) RetainSpawns(keep func(SpawnEntry) bool) {
	kept := ctx.SpawnList[:0]
	for _, s := range ctx.SpawnList {
		if keep(s) {
			kept = append(kept, s)
		}
	}
	ctx.SpawnList = kept
}

// isReserved reports whether idx is the start or exit tile
func (ctx *BuildContext) isReserved(idx int) bool {
	if p := ctx.StartingPosition; p != nil && ctx.Map.Index(p.X, p.Y) == idx {
		return true
	}
	if p := ctx.ExitPosition; p != nil && ctx.Map.Index(p.X, p.Y) == idx {
		return true
	}
	return false
}

// addCorridors records corridors, marking the corridor list present even when
// none were dug
func (ctx *BuildContext) addCorridors(corridors [][]int) {
	if ctx.Corridors == nil {
		ctx.Corridors = [][]int{}
	}
	ctx.Corridors = append(ctx.Corridors, corridors...)
}
