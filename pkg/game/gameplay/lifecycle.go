package gameplay

import (
	"fmt"

	"delving/pkg/engine/world"
	"delving/pkg/game/biome"
	"delving/pkg/game/state"
)

// depthSeedStride separates the seeds of consecutive levels of one session
const depthSeedStride = 7919

// LevelSeed derives the seed of a level from the session seed
func LevelSeed(seed int64, depth int) int64 {
	return seed + int64(depth-1)*depthSeedStride
}

// BuildGame generates the first level and places the player on its start
func BuildGame(depth int, seed int64, fovRadius int, opts biome.Options) (*state.Game, error) {
	level, err := biome.Generate(depth, LevelSeed(seed, depth), opts)
	if err != nil {
		return nil, err
	}
	g := state.NewGame(level, seed, fovRadius, opts)
	enterLevel(g, level)
	return g, nil
}

// Descend takes the player down the stairs they are standing on
func Descend(g *state.Game) error {
	if g.Level.Map.At(g.Player.X, g.Player.Y) != world.DownStairs {
		logMessage(g, "There is no way down here.")
		return nil
	}
	depth := g.Depth() + 1
	level, err := biome.Generate(depth, LevelSeed(g.Seed, depth), g.Options)
	if err != nil {
		return fmt.Errorf("descending to depth %d: %w", depth, err)
	}
	enterLevel(g, level)
	return nil
}

// Regenerate throws the current level away and builds the same depth from
// the next session seed
func Regenerate(g *state.Game) error {
	g.Seed++
	depth := g.Depth()
	level, err := biome.Generate(depth, LevelSeed(g.Seed, depth), g.Options)
	if err != nil {
		return fmt.Errorf("regenerating depth %d: %w", depth, err)
	}
	enterLevel(g, level)
	return nil
}

func enterLevel(g *state.Game, level *biome.Level) {
	g.EnterLevel(level)
	g.ClearMessages()
	logMessage(g, "You enter %s (depth %d).", level.Name, level.Depth)
	UpdateView(g)
}
