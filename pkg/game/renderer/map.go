// Package renderer draws maps as text, coloured or plain.
package renderer

import (
	"bufio"
	"io"

	"delving/pkg/engine/world"
	"delving/pkg/game/generator"
	"delving/pkg/game/spawn"
)

// Icon constants
const (
	PlayerIcon  = "@"
	IconVoid    = " "
	IconUnknown = "¿"
)

type glyph struct {
	icon  string
	style TextStyle
}

var tileGlyphs = map[world.TileType]glyph{
	world.Wall:         {"#", StyleWall},
	world.Stalactite:   {"▼", StyleRock},
	world.Stalagmite:   {"▲", StyleRock},
	world.Floor:        {".", StyleFloor},
	world.WoodFloor:    {"_", StyleWood},
	world.Bridge:       {"=", StyleWood},
	world.Road:         {"≡", StyleRoad},
	world.Grass:        {"\"", StyleGrass},
	world.ShallowWater: {"~", StyleWater},
	world.DeepWater:    {"≈", StyleDeepWater},
	world.Gravel:       {":", StyleFloor},
	world.UpStairs:     {"<", StyleStairs},
	world.DownStairs:   {">", StyleStairs},
}

var spawnGlyphs = map[string]glyph{
	"Goblin":               {"g", StyleMonster},
	"Kobold":               {"k", StyleMonster},
	"Orc":                  {"o", StyleMonster},
	"Orc Leader":           {"O", StyleMonster},
	"Cave Spider":          {"s", StyleMonster},
	"Dwarf Guard":          {"h", StyleMonster},
	"Fungal Shambler":      {"f", StyleMonster},
	"Dark Elf":             {"e", StyleMonster},
	"Rat":                  {"r", StyleMonster},
	"Black Dragon":         {"D", StyleMonster},
	"Barkeep":              {"B", StyleNormal},
	"Patron":               {"p", StyleNormal},
	"Priest":               {"P", StyleNormal},
	"Blacksmith":           {"S", StyleNormal},
	"Alchemist":            {"A", StyleNormal},
	"Townsperson":          {"t", StyleNormal},
	"Health Potion":        {"!", StyleItem},
	"Rations":              {"%", StyleItem},
	"Dagger":               {"/", StyleItem},
	"Shield":               {"[", StyleItem},
	"Longsword":            {"/", StyleItem},
	"Magic Mapping Scroll": {"?", StyleItem},
	"Torch":                {"*", StyleItem},
	"Bear Trap":            {"^", StyleTrap},
	spawn.Door:             {"+", StyleDoor},
}

// TileIcon returns the unstyled character for a tile type
func TileIcon(t world.TileType) string {
	if g, ok := tileGlyphs[t]; ok {
		return g.icon
	}
	return IconUnknown
}

// SpawnIcon returns the unstyled character for a spawn tag
func SpawnIcon(tag string) string {
	if g, ok := spawnGlyphs[tag]; ok {
		return g.icon
	}
	return IconUnknown
}

// Options control what Render shows
type Options struct {
	// Player is drawn over the map when set, and the viewport follows it
	Player *world.Point
	Spawns []generator.SpawnEntry
	// ShowAll ignores the revealed and visible layers
	ShowAll bool
	// Cols and Rows crop the output; zero means the whole map
	Cols int
	Rows int
	// Renderer overrides Current, for output that must stay plain
	Renderer Renderer
	// DarkBelow draws visible tiles lit less than this as if remembered
	DarkBelow float32
}

func (o Options) style(text string, style TextStyle) string {
	if o.Renderer != nil {
		return o.Renderer.StyleText(text, style)
	}
	return StyleText(text, style)
}

// Render writes the map to w, one line per row
func Render(w io.Writer, m *world.Map, opts Options) error {
	spawns := make(map[int]string, len(opts.Spawns))
	for _, s := range opts.Spawns {
		if _, taken := spawns[s.Index]; !taken {
			spawns[s.Index] = s.Tag
		}
	}

	x0, y0, cols, rows := window(m, opts)
	out := bufio.NewWriter(w)
	for y := y0; y < y0+rows; y++ {
		for x := x0; x < x0+cols; x++ {
			out.WriteString(renderTile(m, x, y, spawns, opts))
		}
		out.WriteByte('\n')
	}
	return out.Flush()
}

// window picks the part of the map to draw, centred on the player when the
// map does not fit
func window(m *world.Map, opts Options) (x0, y0, cols, rows int) {
	cols, rows = m.Width, m.Height
	if opts.Cols > 0 && opts.Cols < cols {
		cols = opts.Cols
	}
	if opts.Rows > 0 && opts.Rows < rows {
		rows = opts.Rows
	}

	focus := m.CenterPosition()
	if opts.Player != nil {
		focus = *opts.Player
	}
	x0 = clamp(focus.X-cols/2, 0, m.Width-cols)
	y0 = clamp(focus.Y-rows/2, 0, m.Height-rows)
	return x0, y0, cols, rows
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// renderTile returns the string representation of a tile
func renderTile(m *world.Map, x, y int, spawns map[int]string, opts Options) string {
	idx := m.Index(x, y)
	visible := opts.ShowAll || m.Visible[idx]
	if !visible && !m.Revealed[idx] {
		return IconVoid
	}

	if opts.Player != nil && opts.Player.X == x && opts.Player.Y == y {
		return opts.style(PlayerIcon, StylePlayer)
	}

	if visible {
		if tag, ok := spawns[idx]; ok {
			g, known := spawnGlyphs[tag]
			if !known {
				g = glyph{IconUnknown, StyleItem}
			}
			return opts.style(g.icon, g.style)
		}
	}

	g, ok := tileGlyphs[m.Tiles[idx]]
	if !ok {
		return IconUnknown
	}
	if !visible || m.Light[idx] < opts.DarkBelow {
		// remembered, out of sight or too dark to make out
		return opts.style(g.icon, StyleSubtle)
	}
	return opts.style(g.icon, g.style)
}
