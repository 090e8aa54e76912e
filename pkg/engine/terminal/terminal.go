package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Viewport returns how many map columns and rows fit on screen, leaving
// reserved rows free for status lines.
func Viewport(mapWidth, mapHeight, reserved int) (cols, rows int) {
	width, height := GetSize()
	return clampViewport(width, height, mapWidth, mapHeight, reserved)
}

func clampViewport(width, height, mapWidth, mapHeight, reserved int) (int, int) {
	rows := height - reserved
	if rows < 1 {
		rows = 1
	}
	return min(width, mapWidth), min(rows, mapHeight)
}
