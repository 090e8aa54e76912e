package generator

import (
	"delving/pkg/engine/rng"
)

// RoomExploder sends a handful of short-lived diggers out of the middle of
// every room, roughening the rooms into ragged caves
type RoomExploder struct {
	// Lifetime is how many steps each digger takes
	Lifetime int
}

// NewRoomExploder creates a room exploder
func NewRoomExploder() *RoomExploder {
	return &RoomExploder{Lifetime: 20}
}

// Name returns the name of this builder
func (b *RoomExploder) Name() string {
	return "Room Exploder"
}

// BuildMap digs out of every room. It needs a room list.
func (b *RoomExploder) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if !ctx.HasRooms() {
		panic("Room Explosions require a builder with room structures")
	}

	m := ctx.Map
	for _, room := range ctx.Rooms {
		start := room.Center()
		diggers := r.RollDice(1, 20) - 5
		for d := 0; d < diggers; d++ {
			pos := start
			for life := b.Lifetime; life > 0; life-- {
				applyPaint(m, 1, pos.X, pos.Y)
				pos = stagger(r, m, pos)
			}
		}
		ctx.TakeSnapshot()
	}
	return nil
}
