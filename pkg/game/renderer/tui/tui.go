package tui

import (
	"io"

	"github.com/gookit/color"

	"delving/pkg/game/renderer"
)

// clearScreen homes the cursor and erases the screen
const clearScreen = "\033[H\033[2J"

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	styles map[renderer.TextStyle]color.Style
}

// New creates a new TUI renderer
func New() *TUIRenderer {
	return &TUIRenderer{}
}

// Init initializes the TUI renderer colours
func (t *TUIRenderer) Init() {
	t.styles = map[renderer.TextStyle]color.Style{
		renderer.StyleWall:      {color.FgGray},
		renderer.StyleRock:      {color.FgWhite},
		renderer.StyleFloor:     {color.FgDarkGray},
		renderer.StyleWood:      {color.FgYellow},
		renderer.StyleGrass:     {color.FgGreen},
		renderer.StyleRoad:      {color.FgYellow, color.OpBold},
		renderer.StyleWater:     {color.FgCyan},
		renderer.StyleDeepWater: {color.FgBlue, color.OpBold},
		renderer.StyleStairs:    {color.FgWhite, color.OpBold},
		renderer.StylePlayer:    {color.FgGreen, color.BgBlack, color.OpBold},
		renderer.StyleMonster:   {color.FgRed, color.OpBold},
		renderer.StyleItem:      {color.FgMagenta},
		renderer.StyleTrap:      {color.FgRed},
		renderer.StyleDoor:      {color.FgYellow, color.OpBold}, // Yellow for doors
		renderer.StyleSubtle:    {color.FgGray, color.OpBold},
		renderer.StyleStatus:    {color.FgMagenta},
	}
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear(w io.Writer) {
	io.WriteString(w, clearScreen)
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	s, ok := t.styles[style]
	if !ok {
		return text
	}
	return s.Sprint(text)
}
