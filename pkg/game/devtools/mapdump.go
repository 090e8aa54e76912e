// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"delving/pkg/engine/world"
	"delving/pkg/game/biome"
	"delving/pkg/game/generator"
	"delving/pkg/game/renderer"
)

// DumpLevel writes a full debug dump of a level: metadata, legend, the map as
// seen from the start, the whole map, and every queued spawn. The format is
// sectioned key: value text so it reads well and diffs cleanly.
func DumpLevel(w io.Writer, level *biome.Level, fovRadius int) error {
	out := bufio.NewWriter(w)
	m := level.Map

	fmt.Fprintln(out, "=== LEVEL DUMP ===")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "--- Metadata ---")
	fmt.Fprintf(out, "id: %s\n", level.ID)
	fmt.Fprintf(out, "name: %s\n", level.Name)
	fmt.Fprintf(out, "depth: %d\n", level.Depth)
	fmt.Fprintf(out, "seed: %d\n", level.Seed)
	fmt.Fprintf(out, "attempts: %d\n", level.Attempts)
	fmt.Fprintf(out, "width: %d\n", m.Width)
	fmt.Fprintf(out, "height: %d\n", m.Height)
	fmt.Fprintf(out, "outdoors: %v\n", m.Outdoors)
	fmt.Fprintf(out, "coordinate_system: x,y (0-based, x=horizontal, y=vertical)\n")
	fmt.Fprintf(out, "start: %d,%d\n", level.Start.X, level.Start.Y)
	if level.Exit != nil {
		fmt.Fprintf(out, "exit: %d,%d\n", level.Exit.X, level.Exit.Y)
	} else {
		fmt.Fprintln(out, "exit: none")
	}
	fmt.Fprintf(out, "walkable_tiles: %d\n", m.CountWalkable())
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, "--- Stages ---")
	for i, stage := range level.Stages {
		fmt.Fprintf(out, "%2d. %s\n", i+1, stage)
	}
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, "--- Legend ---")
	for _, t := range world.AllTileTypes() {
		if n := m.Count(t); n > 0 {
			fmt.Fprintf(out, "%s = %s (%d)\n", renderer.TileIcon(t), t, n)
		}
	}
	fmt.Fprintf(out, "%s = start\n", renderer.PlayerIcon)
	fmt.Fprintln(out, "")

	if fovRadius > 0 {
		view := m.Clone()
		view.UpdateVisibility(level.Start, fovRadius, world.FieldOfView)
		fmt.Fprintf(out, "--- Map (visible from start, radius %d) ---\n", fovRadius)
		if err := renderer.Render(out, view, renderer.Options{Player: &level.Start, Spawns: level.Spawns, Renderer: renderer.Plain{}}); err != nil {
			return err
		}
		fmt.Fprintln(out, "")
	}

	fmt.Fprintln(out, "--- Map (fully revealed) ---")
	if err := renderer.Render(out, m, renderer.Options{Player: &level.Start, Spawns: level.Spawns, ShowAll: true, Renderer: renderer.Plain{}}); err != nil {
		return err
	}
	fmt.Fprintln(out, "")

	writeSpawns(out, m, level.Spawns)
	return out.Flush()
}

// writeSpawns lists spawns grouped by tag, tags in alphabetical order
func writeSpawns(out io.Writer, m *world.Map, spawns []generator.SpawnEntry) {
	byTag := make(map[string][]int)
	for _, s := range spawns {
		byTag[s.Tag] = append(byTag[s.Tag], s.Index)
	}
	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	fmt.Fprintf(out, "--- Spawns (%d) ---\n", len(spawns))
	for _, tag := range tags {
		fmt.Fprintf(out, "%s (%s):\n", tag, renderer.SpawnIcon(tag))
		for _, idx := range byTag[tag] {
			x, y := m.Coords(idx)
			fmt.Fprintf(out, "  x: %d y: %d tile: %s\n", x, y, m.Tiles[idx])
		}
	}
}

// DumpLevelToFile writes the dump to path and returns its absolute path
func DumpLevelToFile(path string, level *biome.Level, fovRadius int) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	if err := DumpLevel(f, level, fovRadius); err != nil {
		f.Close()
		return "", err
	}
	return absPath, f.Close()
}
