package replay

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delving/pkg/engine/logging"
	"delving/pkg/engine/world"
	"delving/pkg/game/biome"
)

func init() {
	logging.SetDefault(logging.Discard())
}

func TestRoundTripKeepsFrames(t *testing.T) {
	level, err := biome.Generate(3, 21, biome.Options{Width: 40, Height: 30, RecordHistory: true})
	require.NoError(t, err)
	rec := FromLevel(level)
	require.NotEmpty(t, rec.Frames)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rec))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, rec.LevelID, got.LevelID)
	assert.Equal(t, rec.Name, got.Name)
	assert.Equal(t, rec.Stages, got.Stages)
	require.Len(t, got.Frames, len(rec.Frames))
	last := got.Frames[len(got.Frames)-1]
	assert.Equal(t, level.Map.Tiles, last.Tiles)
	assert.Len(t, last.TileContent, last.Size())
}

func TestFromLevelWithoutHistoryUsesFinalMap(t *testing.T) {
	level, err := biome.Generate(1, 2, biome.Options{Width: 40, Height: 30})
	require.NoError(t, err)

	rec := FromLevel(level)
	require.Len(t, rec.Frames, 1)
	assert.Equal(t, level.Map.Tiles, rec.Frames[0].Tiles)
	assert.True(t, rec.Frames[0].Revealed[0])
	assert.False(t, level.Map.Revealed[0], "the level map itself is untouched")
}

func TestSaveAndLoadFile(t *testing.T) {
	m := world.NewMap(2, 20, 20, "file")
	m.Set(5, 5, world.Floor)
	m.TileContent[m.Index(5, 5)] = []world.EntityHandle{7, 9}
	rec := &Recording{Version: FormatVersion, Name: "file", Depth: 2, Frames: []*world.Map{m}}

	path := filepath.Join(t.TempDir(), "history.zst")
	require.NoError(t, Save(path, rec))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, world.Floor, got.Frames[0].At(5, 5))
	assert.Equal(t, []world.EntityHandle{7, 9}, got.Frames[0].TileContent[m.Index(5, 5)])
	assert.Len(t, got.Frames[0].TileContent, m.Size())
}

func TestReadRejectsBadInput(t *testing.T) {
	t.Run("not zstd", func(t *testing.T) {
		_, err := Read(bytes.NewBufferString("plain text"))
		assert.Error(t, err)
	})

	encode := func(t *testing.T, body string) *bytes.Buffer {
		t.Helper()
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = enc.Write([]byte(body))
		require.NoError(t, err)
		require.NoError(t, enc.Close())
		return &buf
	}

	t.Run("wrong version", func(t *testing.T) {
		_, err := Read(encode(t, `{"version": 99, "frames": []}`))
		assert.ErrorContains(t, err, "not supported")
	})
	t.Run("no frames", func(t *testing.T) {
		_, err := Read(encode(t, `{"version": 1, "frames": []}`))
		assert.ErrorIs(t, err, ErrNoFrames)
	})
	t.Run("broken frame", func(t *testing.T) {
		_, err := Read(encode(t, `{"version": 1, "frames": [{"width": 2, "height": 2, "tiles": ["Wall"]}]}`))
		assert.ErrorContains(t, err, "frame 0")
	})
}
