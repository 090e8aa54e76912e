package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "delving.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	t.Setenv("DELVING_CONFIG", "")
	t.Setenv("DELVING_SEED", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv("DELVING_SEED", "")
	path := writeConfig(t, `
generation:
  width: 100
  depth: 3
  seed: 77
  record_history: true
fov:
  radius: 12
metrics:
  addr: ":2112"
output:
  history_file: run.zst
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Generation.Width)
	assert.Equal(t, 50, cfg.Generation.Height, "unset fields keep their defaults")
	assert.Equal(t, 3, cfg.Generation.Depth)
	assert.Equal(t, int64(77), cfg.Generation.Seed)
	assert.True(t, cfg.Generation.RecordHistory)
	assert.Equal(t, 12, cfg.FOV.Radius)
	assert.Equal(t, ":2112", cfg.Metrics.Addr)
	assert.Equal(t, "run.zst", cfg.Output.HistoryFile)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFallsBackToEnvironment(t *testing.T) {
	path := writeConfig(t, "generation:\n  depth: 4\n")
	t.Setenv("DELVING_CONFIG", path)
	t.Setenv("DELVING_SEED", "31337")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Generation.Depth)
	assert.Equal(t, int64(31337), cfg.Generation.Seed)
}

func TestSeedInFileBeatsEnvironment(t *testing.T) {
	t.Setenv("DELVING_SEED", "5")
	cfg, err := Load(writeConfig(t, "generation:\n  seed: 9\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), cfg.Generation.Seed)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string]string{
		"too narrow": "generation:\n  width: 10\n",
		"too short":  "generation:\n  height: 19\n",
		"no radius":  "fov:\n  radius: 0\n",
		"depth zero": "generation:\n  depth: 0\n",
		"not yaml":   "generation: [\n",
		"wrong type": "generation:\n  width: wide\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
