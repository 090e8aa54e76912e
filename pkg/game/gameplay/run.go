package gameplay

import (
	"context"
	"errors"
	"fmt"
	"io"

	engineinput "delving/pkg/engine/input"
	"delving/pkg/engine/terminal"
	"delving/pkg/game/renderer"
	"delving/pkg/game/state"
)

// statusLines is the room below the map for the status line and the message log
const statusLines = 7

// KeySource delivers key codes, one press at a time
type KeySource interface {
	ReadKey() (string, error)
}

// Run draws the game and feeds key presses to it until the player quits,
// keys runs dry or ctx is cancelled
func Run(ctx context.Context, g *state.Game, keys KeySource, w io.Writer) error {
	for {
		if err := Draw(w, g); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		code, err := keys.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		raw := engineinput.RawInput{Device: engineinput.DeviceTerminal, Code: code}
		intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(raw))
		quit, err := ProcessIntent(g, intent)
		if err != nil {
			logMessage(g, "%v", err)
		}
		if quit {
			return nil
		}
	}
}

// Draw writes one frame: the map around the player, a status line and the
// message log
func Draw(w io.Writer, g *state.Game) error {
	m := g.Level.Map
	cols, rows := terminal.Viewport(m.Width, m.Height, statusLines)

	renderer.Clear(w)
	err := renderer.Render(w, m, renderer.Options{
		Player:    &g.Player,
		Spawns:    g.Level.Spawns,
		ShowAll:   g.RevealMap,
		Cols:      cols,
		Rows:      rows,
		DarkBelow: DarkThreshold,
	})
	if err != nil {
		return err
	}

	status := fmt.Sprintf("%s  depth %d  turn %d  (%d,%d)", g.Level.Name, g.Depth(), g.Turn, g.Player.X, g.Player.Y)
	if _, err := fmt.Fprintln(w, renderer.StyleText(status, renderer.StyleStatus)); err != nil {
		return err
	}
	for _, msg := range g.Messages {
		if _, err := fmt.Fprintln(w, msg); err != nil {
			return err
		}
	}
	return nil
}
