package world

import (
	"github.com/google/uuid"
)

// Color is an RGB colour used for bloodstains and light tints
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// EntityHandle is an opaque reference to an entity owned by the simulation layer
type EntityHandle uint64

// Map is the tile grid of one level. Tiles are stored row-major: idx = y*Width + x.
type Map struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Depth       int              `json:"depth"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Tiles       []TileType       `json:"tiles"`
	Revealed    []bool           `json:"revealed"`
	Visible     []bool           `json:"visible"`
	Light       []float32        `json:"light"`
	Outdoors    bool             `json:"outdoors"`
	Bloodstains map[int]Color    `json:"bloodstains,omitempty"`
	// TileContent lists the entities standing on each tile
	TileContent [][]EntityHandle `json:"tile_content"`
}

// NewMap creates a map of the given dimensions filled with Wall
func NewMap(depth, width, height int, name string) *Map {
	if width <= 0 || height <= 0 {
		panic("Map dimensions must be positive")
	}

	size := width * height
	m := &Map{
		Name:        name,
		Depth:       depth,
		Width:       width,
		Height:      height,
		Tiles:       make([]TileType, size),
		Revealed:    make([]bool, size),
		Visible:     make([]bool, size),
		Light:       make([]float32, size),
		Bloodstains: make(map[int]Color),
		TileContent: make([][]EntityHandle, size),
	}
	for i := range m.Tiles {
		m.Tiles[i] = Wall
	}
	return m
}

// Index converts a coordinate to a tile index
func (m *Map) Index(x, y int) int {
	return y*m.Width + x
}

// Coords converts a tile index back to a coordinate
func (m *Map) Coords(idx int) (int, int) {
	return idx % m.Width, idx / m.Width
}

// PointOf converts a tile index to a Point
func (m *Map) PointOf(idx int) Point {
	x, y := m.Coords(idx)
	return Point{X: x, Y: y}
}

// Size returns the number of tiles
func (m *Map) Size() int {
	return len(m.Tiles)
}

// Dimensions returns the width and height of the map
func (m *Map) Dimensions() (int, int) {
	return m.Width, m.Height
}

// InBounds checks if a position is within map bounds
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// IsPlayablePosition checks if a position is within the playable area (not on the perimeter)
func (m *Map) IsPlayablePosition(x, y int) bool {
	return x >= 1 && x < m.Width-1 && y >= 1 && y < m.Height-1
}

// IsOnPerimeter checks if a position is on the edge of the map
func (m *Map) IsOnPerimeter(x, y int) bool {
	return m.InBounds(x, y) && !m.IsPlayablePosition(x, y)
}

// CenterPosition returns the coordinate of the map center
func (m *Map) CenterPosition() Point {
	return Point{X: m.Width / 2, Y: m.Height / 2}
}

// At returns the tile at (x, y); out-of-bounds positions read as Wall
func (m *Map) At(x, y int) TileType {
	if !m.InBounds(x, y) {
		return Wall
	}
	return m.Tiles[m.Index(x, y)]
}

// Set writes a tile; out-of-bounds writes are ignored
func (m *Map) Set(x, y int, t TileType) {
	if m.InBounds(x, y) {
		m.Tiles[m.Index(x, y)] = t
	}
}

// IsWalkable reports whether the tile at idx can be stood on
func (m *Map) IsWalkable(idx int) bool {
	return idx >= 0 && idx < len(m.Tiles) && m.Tiles[idx].IsWalkable()
}

// IsWalkableAt reports whether (x, y) is in bounds and walkable
func (m *Map) IsWalkableAt(x, y int) bool {
	return m.InBounds(x, y) && m.Tiles[m.Index(x, y)].IsWalkable()
}

// IsOpaque reports whether the tile at idx blocks sight
func (m *Map) IsOpaque(idx int) bool {
	return m.Tiles[idx].IsOpaque()
}

// IsOpaqueAt reports whether (x, y) blocks sight; out-of-bounds positions are opaque
func (m *Map) IsOpaqueAt(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.Tiles[m.Index(x, y)].IsOpaque()
}

// SealPerimeter forces every edge tile to Wall
func (m *Map) SealPerimeter() {
	for x := 0; x < m.Width; x++ {
		m.Tiles[m.Index(x, 0)] = Wall
		m.Tiles[m.Index(x, m.Height-1)] = Wall
	}
	for y := 0; y < m.Height; y++ {
		m.Tiles[m.Index(0, y)] = Wall
		m.Tiles[m.Index(m.Width-1, y)] = Wall
	}
}

// Fill sets every tile to t
func (m *Map) Fill(t TileType) {
	for i := range m.Tiles {
		m.Tiles[i] = t
	}
}

// Count returns how many tiles are of type t
func (m *Map) Count(t TileType) int {
	n := 0
	for _, tile := range m.Tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// CountWalkable returns how many tiles are walkable
func (m *Map) CountWalkable() int {
	n := 0
	for _, tile := range m.Tiles {
		if tile.IsWalkable() {
			n++
		}
	}
	return n
}

// ForEachTile iterates over all tiles in index order
func (m *Map) ForEachTile(fn func(x, y int, t TileType)) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			fn(x, y, m.Tiles[m.Index(x, y)])
		}
	}
}

// Clone returns a deep copy of the map
func (m *Map) Clone() *Map {
	c := *m
	c.Tiles = append([]TileType(nil), m.Tiles...)
	c.Revealed = append([]bool(nil), m.Revealed...)
	c.Visible = append([]bool(nil), m.Visible...)
	c.Light = append([]float32(nil), m.Light...)
	c.Bloodstains = make(map[int]Color, len(m.Bloodstains))
	for idx, col := range m.Bloodstains {
		c.Bloodstains[idx] = col
	}
	c.TileContent = make([][]EntityHandle, len(m.TileContent))
	for i, content := range m.TileContent {
		if len(content) > 0 {
			c.TileContent[i] = append([]EntityHandle(nil), content...)
		}
	}
	return &c
}

// RevealAll marks every tile as revealed
func (m *Map) RevealAll() {
	for i := range m.Revealed {
		m.Revealed[i] = true
	}
}

// UpdateVisibility recomputes the visible set from viewer and adds it to the revealed set
func (m *Map) UpdateVisibility(viewer Point, radius int, fov FOVFunc) {
	for i := range m.Visible {
		m.Visible[i] = false
	}
	for _, p := range fov(viewer, radius, m) {
		idx := m.Index(p.X, p.Y)
		m.Visible[idx] = true
		m.Revealed[idx] = true
	}
}

// AddBloodstain records a stain on the tile at idx
func (m *Map) AddBloodstain(idx int, c Color) {
	if m.Bloodstains == nil {
		m.Bloodstains = make(map[int]Color)
	}
	m.Bloodstains[idx] = c
}

// Validate checks the map for structural issues and returns an error description or empty string if valid
func (m *Map) Validate() string {
	if m.Width <= 0 || m.Height <= 0 {
		return "Map has invalid dimensions"
	}

	size := m.Width * m.Height
	if len(m.Tiles) != size || len(m.Revealed) != size || len(m.Visible) != size || len(m.Light) != size || len(m.TileContent) != size {
		return "Map layers do not match its dimensions"
	}

	for x := 0; x < m.Width; x++ {
		if m.At(x, 0) != Wall || m.At(x, m.Height-1) != Wall {
			return "Map perimeter is not sealed"
		}
	}
	for y := 0; y < m.Height; y++ {
		if m.At(0, y) != Wall || m.At(m.Width-1, y) != Wall {
			return "Map perimeter is not sealed"
		}
	}

	return ""
}
