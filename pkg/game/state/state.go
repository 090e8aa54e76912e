// Package state holds the state of an exploration session.
package state

import (
	"github.com/zyedidia/generic/mapset"

	"delving/pkg/engine/world"
	"delving/pkg/game/biome"
)

// maxMessages is how many log lines the session keeps
const maxMessages = 5

// Game represents one walk through the generated dungeon
type Game struct {
	Level  *biome.Level
	Player world.Point

	// Seed is the seed of the first level; deeper levels derive theirs from it
	Seed      int64
	FOVRadius int
	// Options is how every level of the session is generated
	Options biome.Options
	// RevealMap draws the whole level instead of only what was seen
	RevealMap bool

	// Seen holds the spawn tiles already reported to the player
	Seen mapset.Set[int]

	Messages []string
	Turn     int
}

// NewGame creates a session on level, standing at its start
func NewGame(level *biome.Level, seed int64, fovRadius int, opts biome.Options) *Game {
	return &Game{
		Level:     level,
		Options:   opts,
		Player:    level.Start,
		Seed:      seed,
		FOVRadius: fovRadius,
		Seen:      mapset.New[int](),
		Messages:  make([]string, 0),
	}
}

// Depth returns the current dungeon level
func (g *Game) Depth() int {
	return g.Level.Depth
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}

// EnterLevel moves the session onto a new level
func (g *Game) EnterLevel(level *biome.Level) {
	g.Level = level
	g.Player = level.Start
	g.Seen = mapset.New[int]()
	g.RevealMap = false
}
