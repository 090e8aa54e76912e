package generator

import (
	"sort"
	"strings"

	"delving/pkg/engine/logging"
	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
	"delving/pkg/game/spawn"
)

// HorizontalPlacement anchors a section along the x axis
type HorizontalPlacement int

const (
	PlaceLeft HorizontalPlacement = iota
	PlaceCenter
	PlaceRight
)

// VerticalPlacement anchors a section along the y axis
type VerticalPlacement int

const (
	PlaceTop VerticalPlacement = iota
	PlaceMiddle
	PlaceBottom
)

// Template is a hand drawn block of map. Glyphs:
//
//	' ' '.' floor    '#' wall        '~' deep water   'w' shallow water
//	'=' road         '"' grass       ';' gravel       '_' wood floor
//	'+' bridge       '@' start       '>' down stairs  '<' up stairs
//
// Letters and symbols listed in templateSpawns are floor with an entity on it.
type Template struct {
	Name     string
	Width    int
	Height   int
	Layout   string
	Horiz    HorizontalPlacement
	Vert     VerticalPlacement
	MinDepth int
	MaxDepth int
}

var templateSpawns = map[rune]string{
	'g': "Goblin",
	'o': "Orc",
	'O': "Orc Leader",
	'k': "Kobold",
	'e': "Dark Elf",
	's': "Cave Spider",
	'f': "Fungal Shambler",
	'^': "Bear Trap",
	'%': "Rations",
	'!': "Health Potion",
	'*': "Torch",
	'D': spawn.Door,
}

// stamp is a parsed template
type stamp struct {
	width, height int
	tiles         []world.TileType
	spawns        map[int]string
	start         *world.Point
}

func (t Template) parse() stamp {
	s := stamp{
		width:  t.Width,
		height: t.Height,
		tiles:  make([]world.TileType, t.Width*t.Height),
		spawns: make(map[int]string),
	}
	for i := range s.tiles {
		s.tiles[i] = world.Floor
	}

	lines := strings.Split(strings.TrimPrefix(t.Layout, "\n"), "\n")
	for y := 0; y < t.Height && y < len(lines); y++ {
		x := 0
		for _, ch := range lines[y] {
			if x >= t.Width {
				break
			}
			idx := y*t.Width + x
			tile := world.Floor
			switch ch {
			case '#':
				tile = world.Wall
			case '~':
				tile = world.DeepWater
			case 'w':
				tile = world.ShallowWater
			case '=':
				tile = world.Road
			case '"':
				tile = world.Grass
			case ';':
				tile = world.Gravel
			case '_':
				tile = world.WoodFloor
			case '+':
				tile = world.Bridge
			case '>':
				tile = world.DownStairs
			case '<':
				tile = world.UpStairs
			case '@':
				s.start = &world.Point{X: x, Y: y}
			default:
				if tag, ok := templateSpawns[ch]; ok {
					s.spawns[idx] = tag
				}
			}
			s.tiles[idx] = tile
			x++
		}
	}
	return s
}

// apply writes the stamp onto m with its top-left corner at origin
func (s stamp) apply(m *world.Map, origin world.Point) {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			mx, my := origin.X+x, origin.Y+y
			if m.IsPlayablePosition(mx, my) {
				m.Set(mx, my, s.tiles[y*s.width+x])
			}
		}
	}
}

// place updates the context after the stamp was applied at origin
func (s stamp) place(ctx *BuildContext, origin world.Point) {
	m := ctx.Map
	area := world.NewRect(origin.X, origin.Y, s.width, s.height)
	ctx.RetainSpawns(func(e SpawnEntry) bool {
		return !area.Contains(m.PointOf(e.Index))
	})

	locals := make([]int, 0, len(s.spawns))
	for idx := range s.spawns {
		locals = append(locals, idx)
	}
	sort.Ints(locals)
	for _, idx := range locals {
		mx, my := origin.X+idx%s.width, origin.Y+idx/s.width
		if m.IsPlayablePosition(mx, my) {
			ctx.AddSpawn(m.Index(mx, my), s.spawns[idx])
		}
	}

	if s.start != nil {
		ctx.SetStart(world.Pt(origin.X+s.start.X, origin.Y+s.start.Y))
	}
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			if s.tiles[y*s.width+x] == world.DownStairs {
				ctx.SetExit(world.Pt(origin.X+x, origin.Y+y))
			}
		}
	}
}

// PrefabLevel stamps a complete hand drawn level, centred on the map
type PrefabLevel struct {
	Template Template
}

// NewPrefabLevel creates a builder for a whole-level template
func NewPrefabLevel(t Template) *PrefabLevel {
	return &PrefabLevel{Template: t}
}

// Name returns the name of this builder
func (b *PrefabLevel) Name() string {
	return "Prefab Level: " + b.Template.Name
}

// BuildMap stamps the template and records its start marker
func (b *PrefabLevel) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	s := b.Template.parse()
	origin := world.Pt((m.Width-s.width)/2, (m.Height-s.height)/2)
	s.apply(m, origin)
	s.place(ctx, origin)
	ctx.TakeSnapshot()
	return nil
}

// PrefabSectional stamps a template onto an existing map. When the map already
// has a start, the stamp may not cut off anything reachable from it; if the
// preferred spot would, nearby spots are tried and the section is skipped if
// none works.
type PrefabSectional struct {
	Section Template
	// MaxPlacements bounds how many positions are tried
	MaxPlacements int
}

// NewPrefabSectional creates a sectional builder
func NewPrefabSectional(section Template) *PrefabSectional {
	return &PrefabSectional{Section: section, MaxPlacements: 64}
}

// Name returns the name of this builder
func (b *PrefabSectional) Name() string {
	return "Prefab Section: " + b.Section.Name
}

// BuildMap places the section at the best valid spot
func (b *PrefabSectional) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	s := b.Section.parse()
	if s.width > m.Width-2 || s.height > m.Height-2 {
		logging.Warn("section %s does not fit a %dx%d map", b.Section.Name, m.Width, m.Height)
		return nil
	}

	preferred := b.preferredOrigin(m, s)
	for _, origin := range candidateOrigins(m, s, preferred, b.MaxPlacements) {
		if stampKeepsConnectivity(ctx, s, origin) {
			s.apply(m, origin)
			s.place(ctx, origin)
			ctx.TakeSnapshot()
			return nil
		}
	}

	logging.Warn("section %s skipped: every placement would cut the level apart", b.Section.Name)
	return nil
}

func (b *PrefabSectional) preferredOrigin(m *world.Map, s stamp) world.Point {
	var x, y int
	switch b.Section.Horiz {
	case PlaceLeft:
		x = 1
	case PlaceCenter:
		x = (m.Width - s.width) / 2
	case PlaceRight:
		x = m.Width - 1 - s.width
	}
	switch b.Section.Vert {
	case PlaceTop:
		y = 1
	case PlaceMiddle:
		y = (m.Height - s.height) / 2
	case PlaceBottom:
		y = m.Height - 1 - s.height
	}
	return clampOrigin(m, s, world.Pt(x, y))
}

func clampOrigin(m *world.Map, s stamp, p world.Point) world.Point {
	p.X = max(1, min(p.X, m.Width-1-s.width))
	p.Y = max(1, min(p.Y, m.Height-1-s.height))
	return p
}

// candidateOrigins lists valid origins ordered by distance from preferred,
// ties broken by position
func candidateOrigins(m *world.Map, s stamp, preferred world.Point, limit int) []world.Point {
	var all []world.Point
	for y := 1; y+s.height <= m.Height-1; y++ {
		for x := 1; x+s.width <= m.Width-1; x++ {
			all = append(all, world.Pt(x, y))
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Manhattan(preferred) < all[j].Manhattan(preferred)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// stampKeepsConnectivity reports whether stamping s at origin keeps every
// tile that was reachable from the start reachable (when it stays walkable),
// makes the stamp's own walkable tiles reachable, and leaves the start and
// exit tiles untouched.
func stampKeepsConnectivity(ctx *BuildContext, s stamp, origin world.Point) bool {
	m := ctx.Map
	area := world.NewRect(origin.X, origin.Y, s.width, s.height)
	for _, p := range []*world.Point{ctx.StartingPosition, ctx.ExitPosition} {
		if p != nil && area.Contains(*p) {
			return false
		}
	}

	start := ctx.StartingPosition
	if start == nil {
		return true
	}

	trial := m.Clone()
	s.apply(trial, origin)

	before := world.FloodFill(m, *start)
	after := world.FloodFill(trial, *start)
	for idx := range trial.Tiles {
		if before[idx] && trial.IsWalkable(idx) && !after[idx] {
			return false
		}
		if area.Contains(trial.PointOf(idx)) && trial.IsWalkable(idx) && !after[idx] {
			return false
		}
	}
	return true
}

// PrefabVaults drops small set pieces into stretches of open floor
type PrefabVaults struct {
	Vaults []Template
	// MaxVaults caps how many vaults one level receives
	MaxVaults int
}

// NewPrefabVaults creates a vault builder using the built-in vault list
func NewPrefabVaults() *PrefabVaults {
	return &PrefabVaults{Vaults: Vaults, MaxVaults: 3}
}

// Name returns the name of this builder
func (b *PrefabVaults) Name() string {
	return "Prefab Vaults"
}

// BuildMap picks vaults suited to the depth and stamps them where the floor is open
func (b *PrefabVaults) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	var eligible []Template
	for _, v := range b.Vaults {
		if m.Depth >= v.MinDepth && (v.MaxDepth == 0 || m.Depth <= v.MaxDepth) {
			eligible = append(eligible, v)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	count := min(r.RollDice(1, b.MaxVaults), b.MaxVaults)
	var used []world.Rect
	for i := 0; i < count; i++ {
		vault := eligible[r.Intn(len(eligible))]
		s := vault.parse()

		var spots []world.Point
		for y := 1; y+s.height <= m.Height-1; y++ {
			for x := 1; x+s.width <= m.Width-1; x++ {
				p := world.Pt(x, y)
				if b.openFloor(ctx, world.NewRect(x, y, s.width, s.height), used) {
					spots = append(spots, p)
				}
			}
		}
		r.Shuffle(len(spots), func(a, c int) { spots[a], spots[c] = spots[c], spots[a] })

		for _, origin := range spots {
			if stampKeepsConnectivity(ctx, s, origin) {
				s.apply(m, origin)
				s.place(ctx, origin)
				used = append(used, world.NewRect(origin.X, origin.Y, s.width, s.height))
				ctx.TakeSnapshot()
				break
			}
		}
	}
	return nil
}

func (b *PrefabVaults) openFloor(ctx *BuildContext, area world.Rect, used []world.Rect) bool {
	for _, u := range used {
		if area.Inset(-1).Intersects(u) {
			return false
		}
	}
	open := true
	area.ForEach(func(p world.Point) {
		if !open {
			return
		}
		idx := ctx.Map.Index(p.X, p.Y)
		if ctx.Map.Tiles[idx] != world.Floor || ctx.isReserved(idx) || ctx.SpawnAt(idx) {
			open = false
		}
	})
	return open
}
