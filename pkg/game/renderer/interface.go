package renderer

import (
	"io"
)

// TextStyle names the look of one piece of output
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleWall
	StyleRock
	StyleFloor
	StyleWood
	StyleGrass
	StyleRoad
	StyleWater
	StyleDeepWater
	StyleStairs
	StylePlayer
	StyleMonster
	StyleItem
	StyleTrap
	StyleDoor
	StyleSubtle
	StyleStatus
)

// Renderer defines the interface for output backends. The terminal renderer
// colours text; the plain renderer leaves it alone for files and pipes.
type Renderer interface {
	// Init prepares styles
	Init()

	// Clear wipes the display behind w
	Clear(w io.Writer)

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string
}

// Current holds the active renderer instance
var Current Renderer = Plain{}

// SetRenderer sets the active renderer and initialises it
func SetRenderer(r Renderer) {
	Current = r
	Current.Init()
}

// StyleText applies a style with the current renderer
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}

// Clear clears the display using the current renderer
func Clear(w io.Writer) {
	if Current != nil {
		Current.Clear(w)
	}
}

// Plain renders without any escape codes
type Plain struct{}

// Init does nothing
func (Plain) Init() {}

// Clear separates frames with a blank line
func (Plain) Clear(w io.Writer) {
	io.WriteString(w, "\n")
}

// StyleText returns text unchanged
func (Plain) StyleText(text string, style TextStyle) string {
	return text
}
