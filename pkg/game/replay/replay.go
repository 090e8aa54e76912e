// Package replay stores the build history of a level so it can be watched
// again later.
package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"delving/pkg/engine/world"
	"delving/pkg/game/biome"
)

// FormatVersion is bumped whenever the recording layout changes
const FormatVersion = 1

// ErrNoFrames is returned when a recording holds nothing to play
var ErrNoFrames = errors.New("recording has no frames")

// Recording is the build history of one level
type Recording struct {
	Version int          `json:"version"`
	LevelID uuid.UUID    `json:"level_id"`
	Name    string       `json:"name"`
	Depth   int          `json:"depth"`
	Seed    int64        `json:"seed"`
	Stages  []string     `json:"stages"`
	Frames  []*world.Map `json:"frames"`
}

// FromLevel records a generated level. The final map is appended when the
// level was built without history.
func FromLevel(level *biome.Level) *Recording {
	frames := level.History
	if len(frames) == 0 {
		final := level.Map.Clone()
		final.RevealAll()
		frames = []*world.Map{final}
	}
	return &Recording{
		Version: FormatVersion,
		LevelID: level.ID,
		Name:    level.Name,
		Depth:   level.Depth,
		Seed:    level.Seed,
		Stages:  level.Stages,
		Frames:  frames,
	}
}

// Write encodes the recording as zstd compressed JSON
func Write(w io.Writer, rec *Recording) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("creating compressor: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(rec); err != nil {
		enc.Close()
		return fmt.Errorf("encoding recording: %w", err)
	}
	return enc.Close()
}

// Read decodes a recording written by Write
func Read(r io.Reader) (*Recording, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer dec.Close()

	var rec Recording
	if err := json.NewDecoder(dec).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding recording: %w", err)
	}
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("recording format %d is not supported (want %d)", rec.Version, FormatVersion)
	}
	if len(rec.Frames) == 0 {
		return nil, ErrNoFrames
	}
	for i, frame := range rec.Frames {
		// recordings written before tile content was kept carry none
		if frame.TileContent == nil && frame.Width > 0 && frame.Height > 0 {
			frame.TileContent = make([][]world.EntityHandle, frame.Size())
		}
		if problem := frame.Validate(); problem != "" {
			return nil, fmt.Errorf("frame %d: %s", i, problem)
		}
		if frame.Bloodstains == nil {
			frame.Bloodstains = make(map[int]world.Color)
		}
	}
	return &rec, nil
}

// Save writes the recording to path
func Save(path string, rec *Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, rec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a recording from path
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
