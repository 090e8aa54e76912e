// Package config loads the YAML settings for the level generator.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Minimum map dimensions a config may ask for
const (
	MinWidth  = 20
	MinHeight = 20
)

// Config is the root of the configuration file
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	FOV        FOVConfig        `yaml:"fov"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Output     OutputConfig     `yaml:"output"`
	Locale     LocaleConfig     `yaml:"locale"`
}

type GenerationConfig struct {
	Width         int   `yaml:"width"`
	Height        int   `yaml:"height"`
	Depth         int   `yaml:"depth"`
	Seed          int64 `yaml:"seed"`
	RecordHistory bool  `yaml:"record_history"`
}

type FOVConfig struct {
	Radius int `yaml:"radius"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Color bool   `yaml:"color"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type OutputConfig struct {
	HistoryFile string `yaml:"history_file"`
	DumpFile    string `yaml:"dump_file"`
}

type LocaleConfig struct {
	Dir  string `yaml:"dir"`
	Lang string `yaml:"lang"`
}

// Default returns the settings used when no file is given
func Default() *Config {
	return &Config{
		Generation: GenerationConfig{Width: 80, Height: 50, Depth: 1},
		FOV:        FOVConfig{Radius: 8},
		Logging:    LoggingConfig{Level: "info", Color: true},
		Locale:     LocaleConfig{Dir: "locale", Lang: "en_GB"},
	}
}

// Load reads a YAML config over the defaults. An empty path falls back to
// DELVING_CONFIG; with neither set the defaults are returned. DELVING_SEED
// fills in a seed the file leaves unset.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("DELVING_CONFIG")
		if path == "" {
			cfg.applyEnv()
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets DELVING_SEED override an unset seed
func (c *Config) applyEnv() {
	if c.Generation.Seed != 0 {
		return
	}
	if v := os.Getenv("DELVING_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Generation.Seed = seed
		}
	}
}

// Validate rejects settings the generator cannot work with
func (c *Config) Validate() error {
	if c.Generation.Width < MinWidth || c.Generation.Height < MinHeight {
		return fmt.Errorf("map size %dx%d is below the minimum of %dx%d",
			c.Generation.Width, c.Generation.Height, MinWidth, MinHeight)
	}
	if c.Generation.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", c.Generation.Depth)
	}
	if c.FOV.Radius <= 0 {
		return fmt.Errorf("fov radius must be positive, got %d", c.FOV.Radius)
	}
	return nil
}
