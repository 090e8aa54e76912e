package spawn

import (
	"sort"
)

// Spawner turns a spawn tag at a tile index into an entity
type Spawner interface {
	Spawn(index int, tag string) error
}

// SpawnerFunc adapts a function to the Spawner interface
type SpawnerFunc func(index int, tag string) error

// Spawn calls f
func (f SpawnerFunc) Spawn(index int, tag string) error {
	return f(index, tag)
}

// Spawned is one entity created by a Recorder
type Spawned struct {
	Index int    `json:"index"`
	Tag   string `json:"tag"`
}

// Recorder is a Spawner that only remembers what it was asked to create
type Recorder struct {
	Spawned []Spawned
}

// Spawn records the request
func (r *Recorder) Spawn(index int, tag string) error {
	r.Spawned = append(r.Spawned, Spawned{Index: index, Tag: tag})
	return nil
}

// TagCount is the number of spawns of one tag
type TagCount struct {
	Tag   string
	Count int
}

// Counts returns how often each tag was spawned, most frequent first
func (r *Recorder) Counts() []TagCount {
	byTag := make(map[string]int)
	for _, s := range r.Spawned {
		byTag[s.Tag]++
	}
	counts := make([]TagCount, 0, len(byTag))
	for tag, n := range byTag {
		counts = append(counts, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Tag < counts[j].Tag
	})
	return counts
}
