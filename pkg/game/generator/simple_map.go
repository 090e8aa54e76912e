package generator

import (
	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// SimpleMap scatters non-overlapping rectangular rooms over the map
type SimpleMap struct {
	MaxRooms int
	MinSize  int
	MaxSize  int
}

// NewSimpleMap creates a room scatterer with default sizing
func NewSimpleMap() *SimpleMap {
	return &SimpleMap{MaxRooms: 30, MinSize: 6, MaxSize: 10}
}

// Name returns the name of this builder
func (b *SimpleMap) Name() string {
	return "Simple Rooms"
}

// BuildMap tries MaxRooms placements and keeps the ones that do not touch an existing room
func (b *SimpleMap) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	rooms := []world.Rect{}

	for i := 0; i < b.MaxRooms; i++ {
		w := r.Range(b.MinSize, b.MaxSize+1)
		h := r.Range(b.MinSize, b.MaxSize+1)
		if w > m.Width-2 || h > m.Height-2 {
			continue
		}
		x := r.Range(1, m.Width-w)
		y := r.Range(1, m.Height-h)
		candidate := world.NewRect(x, y, w, h)

		ok := true
		for _, other := range rooms {
			if candidate.Inset(-1).Intersects(other) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		carveRect(m, candidate)
		rooms = append(rooms, candidate)
		ctx.TakeSnapshot()
	}

	ctx.Rooms = rooms
	return nil
}
