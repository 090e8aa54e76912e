package renderer

import (
	"context"
	"fmt"
	"io"
	"time"

	"delving/pkg/engine/terminal"
	"delving/pkg/engine/world"
)

// statusLines is the room PlayHistory keeps below the map
const statusLines = 2

// PlayHistory draws each frame in turn, waiting delay between them. The map
// is cropped to the terminal. It stops early when ctx is cancelled.
func PlayHistory(ctx context.Context, w io.Writer, title string, frames []*world.Map, delay time.Duration) error {
	for i, frame := range frames {
		cols, rows := terminal.Viewport(frame.Width, frame.Height, statusLines)

		Clear(w)
		if err := Render(w, frame, Options{ShowAll: true, Cols: cols, Rows: rows}); err != nil {
			return err
		}
		status := fmt.Sprintf("%s: frame %d of %d", title, i+1, len(frames))
		if _, err := fmt.Fprintln(w, StyleText(status, StyleStatus)); err != nil {
			return err
		}

		if i == len(frames)-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil
}
