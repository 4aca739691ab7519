// Package config provides YAML-based game configuration loading and
// difficulty presets for the dango maze.
package config

import (
	"errors"
	"fmt"
)

// DangoConfig contains all configuration for the dango maze.
type DangoConfig struct {
	Canvas   CanvasConfig `yaml:"canvas"`
	Bars     BarsConfig   `yaml:"bars"`
	Token    TokenConfig  `yaml:"token"`
	Goal     GoalConfig   `yaml:"goal"`
	Cooldown int          `yaml:"cooldown"` // Frames without collision checks after a turn
}

// CanvasConfig defines the playfield size in canvas units.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BarsConfig defines the obstacle grid.
type BarsConfig struct {
	Rows      int     `yaml:"rows"`
	Cols      int     `yaml:"cols"`
	Length    float64 `yaml:"length"`
	Thickness float64 `yaml:"thickness"`
	// Angles fixes the initial orientation of every bar, row by row.
	// Empty means random.
	Angles []int `yaml:"angles,omitempty"`
}

// TokenConfig defines the dango itself.
type TokenConfig struct {
	StartX   float64 `yaml:"start_x"`
	StartY   float64 `yaml:"start_y"`
	Heading  string  `yaml:"heading"` // right, left, up or down
	Diameter float64 `yaml:"diameter"`
	Speed    float64 `yaml:"speed"` // Canvas units per frame
}

// GoalConfig defines the goal rectangle.
type GoalConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Validate checks that the configuration describes a playable maze.
func (c DangoConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Canvas.Width > 0 && c.Canvas.Height > 0, "canvas size %gx%g", c.Canvas.Width, c.Canvas.Height)
	check(c.Bars.Rows >= 1 && c.Bars.Cols >= 1, "bar grid %dx%d", c.Bars.Rows, c.Bars.Cols)
	check(c.Bars.Length > 0 && c.Bars.Thickness > 0, "bar size %g/%g", c.Bars.Length, c.Bars.Thickness)
	check(float64(c.Bars.Cols)*c.Bars.Length <= c.Canvas.Width, "%d bars of length %g do not fit width %g",
		c.Bars.Cols, c.Bars.Length, c.Canvas.Width)
	check(float64(c.Bars.Rows)*c.Bars.Length <= c.Canvas.Height, "%d bars of length %g do not fit height %g",
		c.Bars.Rows, c.Bars.Length, c.Canvas.Height)
	if len(c.Bars.Angles) > 0 {
		check(len(c.Bars.Angles) == c.Bars.Rows*c.Bars.Cols, "bars.angles has %d entries, want %d",
			len(c.Bars.Angles), c.Bars.Rows*c.Bars.Cols)
		for i, a := range c.Bars.Angles {
			check(a == 0 || a == 90 || a == 180 || a == 270, "bars.angles[%d] = %d is not a right angle", i, a)
		}
	}
	check(c.Token.Diameter > 0 && c.Token.Diameter < c.Canvas.Width && c.Token.Diameter < c.Canvas.Height,
		"token diameter %g", c.Token.Diameter)
	check(c.Token.Speed > 0, "token speed %g", c.Token.Speed)
	switch c.Token.Heading {
	case "right", "left", "up", "down":
	default:
		check(false, "token heading %q", c.Token.Heading)
	}
	check(c.Goal.Width > 0 && c.Goal.Height > 0, "goal size %gx%g", c.Goal.Width, c.Goal.Height)
	check(c.Cooldown >= 0, "cooldown %d", c.Cooldown)

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}

// SpeedMultiplierForPreset returns how much a preset scales token speed.
func SpeedMultiplierForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 2.0
	default:
		return 1.0
	}
}
