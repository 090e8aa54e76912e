// Package spawn holds weighted spawn tables and the collaborator interface
// that turns spawn tags into entities.
package spawn

import (
	"delving/pkg/engine/rng"
)

// Tags with special meaning to the builders
const (
	Door = "Door"
)

// Entry is one weighted row of a spawn table
type Entry struct {
	Tag    string
	Weight int
	// WeightPerDepth is added to Weight once per dungeon level
	WeightPerDepth int
	MinDepth       int
	// MaxDepth of 0 means no upper bound
	MaxDepth int
}

func (e Entry) weightAt(depth int) int {
	if depth < e.MinDepth || (e.MaxDepth > 0 && depth > e.MaxDepth) {
		return 0
	}
	return e.Weight + e.WeightPerDepth*depth
}

// Table picks tags with probability proportional to their weight
type Table struct {
	tags    []string
	weights []int
	total   int
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{}
}

// Add appends a tag; non-positive weights are ignored
func (t *Table) Add(tag string, weight int) *Table {
	if weight <= 0 {
		return t
	}
	t.tags = append(t.tags, tag)
	t.weights = append(t.weights, weight)
	t.total += weight
	return t
}

// Len returns the number of tags in the table
func (t *Table) Len() int {
	return len(t.tags)
}

// TotalWeight returns the sum of all weights
func (t *Table) TotalWeight() int {
	return t.total
}

// Roll picks a tag. An empty table yields "".
func (t *Table) Roll(r *rng.RNG) string {
	if t.total == 0 {
		return ""
	}
	roll := r.Intn(t.total)
	for i, w := range t.weights {
		if roll < w {
			return t.tags[i]
		}
		roll -= w
	}
	return t.tags[len(t.tags)-1]
}

// catalog lists what can appear in the dungeon and where
var catalog = []Entry{
	{Tag: "Goblin", Weight: 10, MinDepth: 1, MaxDepth: 6},
	{Tag: "Kobold", Weight: 8, MinDepth: 1, MaxDepth: 4},
	{Tag: "Orc", Weight: 1, WeightPerDepth: 1, MinDepth: 3},
	{Tag: "Cave Spider", Weight: 6, MinDepth: 3, MaxDepth: 9},
	{Tag: "Dwarf Guard", Weight: 6, MinDepth: 5, MaxDepth: 7},
	{Tag: "Fungal Shambler", Weight: 7, MinDepth: 7, MaxDepth: 9},
	{Tag: "Dark Elf", Weight: 8, MinDepth: 9},
	{Tag: "Health Potion", Weight: 7, MinDepth: 1},
	{Tag: "Rations", Weight: 10, MinDepth: 1},
	{Tag: "Dagger", Weight: 3, MinDepth: 1, MaxDepth: 3},
	{Tag: "Shield", Weight: 3, MinDepth: 1, MaxDepth: 5},
	{Tag: "Longsword", Weight: 2, MinDepth: 3},
	{Tag: "Magic Mapping Scroll", Weight: 2, MinDepth: 2},
	{Tag: "Bear Trap", Weight: 5, MinDepth: 2},
	{Tag: "Torch", Weight: 4, MinDepth: 1},
}

// TableForDepth builds the spawn table for a dungeon level
func TableForDepth(depth int) *Table {
	t := NewTable()
	for _, e := range catalog {
		t.Add(e.Tag, e.weightAt(depth))
	}
	return t
}
