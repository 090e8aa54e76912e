package generator

import (
	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// BSPInterior subdivides the whole map into rooms separated by single walls,
// like the inside of a building, and joins consecutive rooms with short corridors.
type BSPInterior struct {
	MinRoomSize int
}

// NewBSPInterior creates an interior builder with default sizing
func NewBSPInterior() *BSPInterior {
	return &BSPInterior{MinRoomSize: 8}
}

// Name returns the name of this builder
func (b *BSPInterior) Name() string {
	return "BSP Interior"
}

// BuildMap fills every partition with floor and links them
func (b *BSPInterior) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	var rooms []world.Rect
	b.split(r, world.NewRect(1, 1, m.Width-2, m.Height-2), &rooms)

	for _, room := range rooms {
		carveRect(m, room)
		ctx.TakeSnapshot()
	}

	ctx.Corridors = [][]int{}
	for i := 0; i+1 < len(rooms); i++ {
		corridor := drawCorridor(m, rooms[i].Center(), rooms[i+1].Center())
		if len(corridor) > 0 {
			ctx.Corridors = append(ctx.Corridors, corridor)
			ctx.TakeSnapshot()
		}
	}

	ctx.Rooms = rooms
	return nil
}

// split halves rect along a random axis, leaving a one tile wall between the
// halves, until a half would fall below the minimum room size
func (b *BSPInterior) split(r *rng.RNG, rect world.Rect, rooms *[]world.Rect) {
	width, height := rect.Width(), rect.Height()
	halfWidth, halfHeight := width/2, height/2

	if r.RollDice(1, 4) <= 2 {
		if halfWidth > b.MinRoomSize {
			b.split(r, world.NewRect(rect.X1, rect.Y1, halfWidth-1, height), rooms)
			b.split(r, world.NewRect(rect.X1+halfWidth, rect.Y1, width-halfWidth, height), rooms)
			return
		}
	} else if halfHeight > b.MinRoomSize {
		b.split(r, world.NewRect(rect.X1, rect.Y1, width, halfHeight-1), rooms)
		b.split(r, world.NewRect(rect.X1, rect.Y1+halfHeight, width, height-halfHeight), rooms)
		return
	}

	*rooms = append(*rooms, rect)
}
