package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(GetDefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultDangoConfig(), cfg)
}

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultDangoConfig().Validate())
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("token:\n  speed: 2\ncooldown: 10\n"))
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.Token.Speed)
	assert.Equal(t, 10, cfg.Cooldown)
	assert.Equal(t, 700.0, cfg.Canvas.Width)
	assert.Equal(t, "right", cfg.Token.Heading)
}

func TestParseFixedAngles(t *testing.T) {
	data := []byte(`
bars:
  rows: 1
  cols: 3
  angles: [0, 90, 270]
`)
	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 90, 270}, cfg.Bars.Angles)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DangoConfig)
	}{
		{"zero canvas", func(c *DangoConfig) { c.Canvas.Width = 0 }},
		{"bars too wide", func(c *DangoConfig) { c.Bars.Cols = 8 }},
		{"bars too tall", func(c *DangoConfig) { c.Bars.Rows = 6 }},
		{"no bar rows", func(c *DangoConfig) { c.Bars.Rows = 0 }},
		{"empty bar grid", func(c *DangoConfig) {
			c.Bars.Rows = 0
			c.Bars.Cols = 0
		}},
		{"angle count", func(c *DangoConfig) { c.Bars.Angles = []int{0, 90} }},
		{"odd angle", func(c *DangoConfig) {
			c.Bars.Angles = make([]int, 20)
			c.Bars.Angles[3] = 45
		}},
		{"no speed", func(c *DangoConfig) { c.Token.Speed = 0 }},
		{"bad heading", func(c *DangoConfig) { c.Token.Heading = "north" }},
		{"negative cooldown", func(c *DangoConfig) { c.Cooldown = -1 }},
		{"empty goal", func(c *DangoConfig) { c.Goal.Width = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultDangoConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("canvas: [not, a, map]"))
	assert.Error(t, err)
}

func TestLoadDangoCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	require.NoError(t, os.WriteFile(path, []byte("goal:\n  x: 500\n"), 0o600))

	cfg, err := LoadDango(path)
	require.NoError(t, err)
	assert.Equal(t, 500.0, cfg.Goal.X)
}

func TestLoadDangoMissingCustomPath(t *testing.T) {
	_, err := LoadDango(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadDangoInvalidCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token:\n  speed: -1\n"), 0o600))

	_, err := LoadDango(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultDangoConfig()
	cfg.Bars.Rows = 1
	cfg.Bars.Cols = 2
	cfg.Bars.Angles = []int{90, 180}

	data, err := Marshal(cfg)
	require.NoError(t, err)
	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in       string
		preset   DifficultyPreset
		speed    float64
		cooldown int
	}{
		{"", DifficultyNormal, 1, 30},
		{"normal", DifficultyNormal, 1, 30},
		{"easy", DifficultyEasy, 0.5, 60},
		{"hard", DifficultyHard, 2, 15},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			preset, err := ParsePreset(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.preset, preset)

			cfg := DefaultDangoConfig()
			ApplyDangoPreset(&cfg, preset)
			assert.Equal(t, tc.speed, cfg.Token.Speed)
			assert.Equal(t, tc.cooldown, cfg.Cooldown)
		})
	}

	_, err := ParsePreset("nightmare")
	assert.Error(t, err)
}
