// Package gameplay lets a player walk the generated levels.
package gameplay

import (
	"fmt"
	"sort"
	"strings"

	"delving/pkg/engine/world"
	"delving/pkg/game/state"
)

func logMessage(g *state.Game, msg string, a ...any) {
	g.AddMessage(fmt.Sprintf(msg, a...))
}

// Move steps the player one tile in dir. It reports whether the player moved.
func Move(g *state.Game, dir world.Direction) bool {
	m := g.Level.Map
	if !world.CanStep(m, g.Player.X, g.Player.Y, dir) {
		logMessage(g, "You can't go %s.", strings.ToLower(dir.String()))
		return false
	}
	dx, dy := dir.Delta()
	g.Player = world.Pt(g.Player.X+dx, g.Player.Y+dy)
	g.Turn++
	UpdateView(g)

	if m.At(g.Player.X, g.Player.Y) == world.DownStairs {
		logMessage(g, "There is a staircase down here.")
	}
	reportSightings(g)
	return true
}

// Wait passes a turn without moving
func Wait(g *state.Game) {
	g.Turn++
	UpdateView(g)
	reportSightings(g)
}

// reportSightings tells the player about spawns that came into view for the
// first time
func reportSightings(g *state.Game) {
	m := g.Level.Map
	counts := map[string]int{}
	for _, s := range g.Level.Spawns {
		if !m.Visible[s.Index] || g.Seen.Has(s.Index) {
			continue
		}
		g.Seen.Put(s.Index)
		counts[s.Tag]++
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		if n := counts[tag]; n > 1 {
			logMessage(g, "You spot %s (x%d).", tag, n)
		} else {
			logMessage(g, "You spot %s.", tag)
		}
	}
}
