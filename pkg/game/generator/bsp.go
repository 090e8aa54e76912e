package generator

import (
	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// BSPDungeon partitions the map with a binary space partition tree and
// carves one room in every leaf. It records rooms but digs no corridors.
type BSPDungeon struct {
	// MinNodeSize is the smallest partition a split may produce
	MinNodeSize int
}

// NewBSPDungeon creates a BSP dungeon builder with default sizing
func NewBSPDungeon() *BSPDungeon {
	return &BSPDungeon{MinNodeSize: minNodeSize}
}

// Name returns the name of this builder
func (b *BSPDungeon) Name() string {
	return "BSP Dungeon"
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *world.Rect
}

// Constants for BSP generation
const (
	minNodeSize = 8 // Minimum size of a BSP node
	minRoomSize = 4 // Minimum size of a room
	roomPadding = 2 // Padding between room and node edge
)

// BuildMap splits the map, creates rooms in the leaves and carves them
func (b *BSPDungeon) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map

	// Leave a 1 cell border for perimeter walls
	root := &bspNode{
		x:      1,
		y:      1,
		width:  m.Width - 2,
		height: m.Height - 2,
	}

	minSize := b.MinNodeSize
	if minSize < minRoomSize+roomPadding {
		minSize = minRoomSize + roomPadding
	}
	splitBSP(r, root, minSize)
	createRooms(r, root)

	rooms := collectRooms(root)
	ctx.Rooms = make([]world.Rect, 0, len(rooms))
	for _, room := range rooms {
		carveRect(m, *room)
		ctx.Rooms = append(ctx.Rooms, *room)
		ctx.TakeSnapshot()
	}
	return nil
}

// splitBSP recursively splits a BSP node
func splitBSP(r *rng.RNG, node *bspNode, minSize int) {
	if node.width < minSize*2 && node.height < minSize*2 {
		return // Too small to split
	}

	// Decide split direction
	var splitHorizontal bool
	if node.width > node.height && node.width >= minSize*2 {
		splitHorizontal = false // Split vertically
	} else if node.height > node.width && node.height >= minSize*2 {
		splitHorizontal = true // Split horizontally
	} else if node.width >= minSize*2 && node.height >= minSize*2 {
		splitHorizontal = r.Intn(2) == 0
	} else if node.width >= minSize*2 {
		splitHorizontal = false
	} else {
		splitHorizontal = true
	}

	if splitHorizontal {
		// Split horizontally (top and bottom)
		splitPoint := minSize + r.Intn(node.height-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPoint}
		node.right = &bspNode{x: node.x, y: node.y + splitPoint, width: node.width, height: node.height - splitPoint}
	} else {
		// Split vertically (left and right)
		splitPoint := minSize + r.Intn(node.width-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: splitPoint, height: node.height}
		node.right = &bspNode{x: node.x + splitPoint, y: node.y, width: node.width - splitPoint, height: node.height}
	}

	splitBSP(r, node.left, minSize)
	splitBSP(r, node.right, minSize)
}

// createRooms creates rooms in leaf nodes
func createRooms(r *rng.RNG, node *bspNode) {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			createRooms(r, node.left)
		}
		if node.right != nil {
			createRooms(r, node.right)
		}
		return
	}

	// Leaf node - create a room that keeps clear of the node's far edges
	maxWidth := max(node.width-roomPadding, 1)
	maxHeight := max(node.height-roomPadding, 1)
	roomWidth := min(minRoomSize+r.Intn(maxWidth-minRoomSize+1), maxWidth)
	roomHeight := min(minRoomSize+r.Intn(maxHeight-minRoomSize+1), maxHeight)

	roomX := node.x + r.Intn(node.width-roomWidth)
	roomY := node.y + r.Intn(node.height-roomHeight)

	room := world.NewRect(roomX, roomY, roomWidth, roomHeight)
	node.room = &room
}

// collectRooms collects all rooms from the BSP tree, left subtree first
func collectRooms(node *bspNode) []*world.Rect {
	var rooms []*world.Rect

	if node.room != nil {
		rooms = append(rooms, node.room)
	}
	if node.left != nil {
		rooms = append(rooms, collectRooms(node.left)...)
	}
	if node.right != nil {
		rooms = append(rooms, collectRooms(node.right)...)
	}

	return rooms
}
