package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiledeck/tiledeck/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "tcp://127.0.0.1:9321", cfg.Listen)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 800*time.Millisecond, cfg.AnimationDuration)
	assert.Equal(t, 50.0, cfg.Thresholds.Warning)
	assert.Equal(t, 75.0, cfg.Thresholds.Critical)
	require.Len(t, cfg.Tiles, 2)
	assert.Equal(t, "CPU_TEMP", cfg.Tiles[0].Metric)
	assert.Equal(t, "GPU_TEMP", cfg.Tiles[1].Metric)

	assert.NoError(t, cfg.Validate())
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
version: 1
listen: unix:///tmp/deck.sock
poll_interval: 2s
animation_duration: 500ms
thresholds:
  warning: 60
  critical: 85
tiles:
  - metric: CPU_TEMP
    label: Core
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "unix:///tmp/deck.sock", cfg.Listen)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.AnimationDuration)
	assert.Equal(t, 60.0, cfg.Thresholds.Warning)
	assert.Equal(t, 85.0, cfg.Thresholds.Critical)
	require.Len(t, cfg.Tiles, 1)
	assert.Equal(t, "Core", cfg.Tiles[0].Label)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
poll_interval: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, DefaultAnimationDuration, cfg.AnimationDuration)
	assert.Len(t, cfg.Tiles, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "tiles: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errmsg string
	}{
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }, "poll_interval"},
		{"negative animation", func(c *Config) { c.AnimationDuration = -time.Second }, "animation_duration"},
		{"inverted thresholds", func(c *Config) { c.Thresholds = Thresholds{Warning: 80, Critical: 50} }, "warning"},
		{"equal thresholds", func(c *Config) { c.Thresholds = Thresholds{Warning: 50, Critical: 50} }, "warning"},
		{"bad listen scheme", func(c *Config) { c.Listen = "http://localhost" }, "listen"},
		{"no tiles", func(c *Config) { c.Tiles = nil }, "at least one tile"},
		{"unknown metric", func(c *Config) { c.Tiles = []Tile{{Metric: "FAN_SPEED"}} }, "unknown tile metric"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.errmsg)
		})
	}
}

func TestFind_ExplicitPathMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind_ExplicitPathWins(t *testing.T) {
	path := writeConfig(t, "poll_interval: 3s\n")

	found, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestLoadOrDefault_ExplicitMissingIsAnError(t *testing.T) {
	_, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadOrDefault_NoConfigFallsBack(t *testing.T) {
	// Run from an empty directory with HOME pointed somewhere empty so
	// neither search location has a config file.
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
