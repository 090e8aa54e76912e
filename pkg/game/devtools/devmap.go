package devtools

import (
	"delving/pkg/engine/world"
	"delving/pkg/game/generator"
	"delving/pkg/game/spawn"
)

// showcaseTags are the spawns laid out on the developer map
var showcaseTags = []string{
	"Goblin", "Kobold", "Orc", "Orc Leader", "Cave Spider", "Dwarf Guard",
	"Fungal Shambler", "Dark Elf", "Rat", "Black Dragon",
	"Barkeep", "Patron", "Priest", "Blacksmith", "Alchemist", "Townsperson",
	"Health Potion", "Rations", "Dagger", "Shield", "Longsword",
	"Magic Mapping Scroll", "Torch", "Bear Trap", spawn.Door,
}

// DevMap builds a small hard-coded map with every tile type in the top row
// and every known spawn in the bottom row, with a one tile margin between
// each. It is used to check how the renderers draw things.
func DevMap() (*world.Map, []generator.SpawnEntry) {
	const margin = 1
	tiles := world.AllTileTypes()
	width := max(len(tiles), len(showcaseTags))*(margin+1) + 2
	m := world.NewMap(1, width, 7, "Developer Map")

	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			m.Set(x, y, world.Floor)
		}
	}
	for i, t := range tiles {
		m.Set(1+i*(margin+1), 2, t)
	}

	var spawns []generator.SpawnEntry
	for i, tag := range showcaseTags {
		spawns = append(spawns, generator.SpawnEntry{Index: m.Index(1+i*(margin+1), 4), Tag: tag})
	}
	m.RevealAll()
	return m, spawns
}
