package generator

import (
	"sort"

	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// RoomSort is the ordering RoomSorter applies
type RoomSort int

const (
	Leftmost RoomSort = iota
	Rightmost
	Topmost
	Bottommost
	ReadingOrder
	Central
)

var roomSortNames = map[RoomSort]string{
	Leftmost:     "Leftmost",
	Rightmost:    "Rightmost",
	Topmost:      "Topmost",
	Bottommost:   "Bottommost",
	ReadingOrder: "Reading Order",
	Central:      "Central",
}

// RoomSorter reorders the room list so later stages walk rooms in a known order
type RoomSorter struct {
	Sort RoomSort
}

// NewRoomSorter creates a sorter
func NewRoomSorter(s RoomSort) *RoomSorter {
	return &RoomSorter{Sort: s}
}

// Name returns the name of this builder
func (b *RoomSorter) Name() string {
	return "Room Sorter: " + roomSortNames[b.Sort]
}

// BuildMap sorts the rooms. Equal keys keep their previous order.
func (b *RoomSorter) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if !ctx.HasRooms() {
		return nil
	}
	rooms := ctx.Rooms
	center := ctx.Map.CenterPosition()

	var less func(a, c world.Rect) bool
	switch b.Sort {
	case Rightmost:
		less = func(a, c world.Rect) bool { return a.X1 > c.X1 }
	case Topmost:
		less = func(a, c world.Rect) bool { return a.Y1 < c.Y1 }
	case Bottommost:
		less = func(a, c world.Rect) bool { return a.Y2 > c.Y2 }
	case ReadingOrder:
		less = func(a, c world.Rect) bool {
			if a.Y1 != c.Y1 {
				return a.Y1 < c.Y1
			}
			return a.X1 < c.X1
		}
	case Central:
		less = func(a, c world.Rect) bool {
			return a.Center().DistanceSquared(center) < c.Center().DistanceSquared(center)
		}
	default:
		less = func(a, c world.Rect) bool { return a.X1 < c.X1 }
	}

	sort.SliceStable(rooms, func(i, j int) bool { return less(rooms[i], rooms[j]) })
	return nil
}

// RoomDrawer redraws every room, turning roughly one in four into a circle
type RoomDrawer struct{}

// NewRoomDrawer creates a room drawer
func NewRoomDrawer() *RoomDrawer {
	return &RoomDrawer{}
}

// Name returns the name of this builder
func (b *RoomDrawer) Name() string {
	return "Room Drawer"
}

// BuildMap carves each room as a rectangle or as the largest circle it holds
func (b *RoomDrawer) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if !ctx.HasRooms() {
		return nil
	}
	m := ctx.Map
	for _, room := range ctx.Rooms {
		if r.RollDice(1, 4) == 1 && min(room.Width(), room.Height()) >= 5 {
			drawCircle(m, room)
		} else {
			carveRect(m, room)
		}
		ctx.TakeSnapshot()
	}
	return nil
}

func drawCircle(m *world.Map, room world.Rect) {
	center := room.Center()
	radius := min(room.Width(), room.Height()) / 2
	room.ForEach(func(p world.Point) {
		if !m.IsPlayablePosition(p.X, p.Y) {
			return
		}
		if p.DistanceSquared(center) <= radius*radius {
			m.Set(p.X, p.Y, world.Floor)
		} else {
			m.Set(p.X, p.Y, world.Wall)
		}
	})
}

// roomFloor picks a random walkable tile inside the room, or its centre if the
// room holds none
func roomFloor(r *rng.RNG, m *world.Map, room world.Rect) world.Point {
	var floors []world.Point
	room.ForEach(func(p world.Point) {
		if m.IsWalkableAt(p.X, p.Y) {
			floors = append(floors, p)
		}
	})
	if len(floors) == 0 {
		return room.Center()
	}
	return floors[r.Intn(len(floors))]
}

// roomTiles returns the indices of the tiles inside the room
func roomTiles(m *world.Map, room world.Rect) []int {
	var tiles []int
	room.ForEach(func(p world.Point) {
		if m.InBounds(p.X, p.Y) {
			tiles = append(tiles, m.Index(p.X, p.Y))
		}
	})
	return tiles
}

// RoomCornerRounder walls off the corner tiles of rectangular rooms
type RoomCornerRounder struct{}

// NewRoomCornerRounder creates a corner rounder
func NewRoomCornerRounder() *RoomCornerRounder {
	return &RoomCornerRounder{}
}

// Name returns the name of this builder
func (b *RoomCornerRounder) Name() string {
	return "Room Corner Rounder"
}

// BuildMap turns each room corner that is floor with exactly two cardinal
// wall neighbours into wall
func (b *RoomCornerRounder) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	if !ctx.HasRooms() {
		return nil
	}
	m := ctx.Map
	for _, room := range ctx.Rooms {
		if room.Width() < 3 || room.Height() < 3 {
			continue
		}
		corners := []world.Point{
			{X: room.X1, Y: room.Y1},
			{X: room.X2 - 1, Y: room.Y1},
			{X: room.X1, Y: room.Y2 - 1},
			{X: room.X2 - 1, Y: room.Y2 - 1},
		}
		for _, c := range corners {
			if !m.IsPlayablePosition(c.X, c.Y) || m.At(c.X, c.Y) != world.Floor {
				continue
			}
			idx := m.Index(c.X, c.Y)
			if ctx.isReserved(idx) || wallNeighbours(m, c.X, c.Y) != 2 {
				continue
			}
			m.Set(c.X, c.Y, world.Wall)
			ctx.RemoveSpawnsAt(idx)
		}
		ctx.TakeSnapshot()
	}
	return nil
}

// wallNeighbours counts the cardinal neighbours of (x, y) that are wall
func wallNeighbours(m *world.Map, x, y int) int {
	n := 0
	for _, dir := range world.Cardinals() {
		dx, dy := dir.Delta()
		if m.At(x+dx, y+dy) == world.Wall {
			n++
		}
	}
	return n
}
