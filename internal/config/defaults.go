package config

import (
	_ "embed"
)

//go:embed defaults/dango.yaml
var defaultDangoYAML []byte

// DefaultDangoConfig returns the reference configuration: a 700x500 canvas,
// a 4x5 grid of 100x10 bars, a 30-unit dango moving right from (50,50) at one
// unit per frame, and a 200x200 goal at (600,400).
func DefaultDangoConfig() DangoConfig {
	return DangoConfig{
		Canvas: CanvasConfig{
			Width:  700,
			Height: 500,
		},
		Bars: BarsConfig{
			Rows:      4,
			Cols:      5,
			Length:    100,
			Thickness: 10,
		},
		Token: TokenConfig{
			StartX:   50,
			StartY:   50,
			Heading:  "right",
			Diameter: 30,
			Speed:    1,
		},
		Goal: GoalConfig{
			X:      600,
			Y:      400,
			Width:  200,
			Height: 200,
		},
		Cooldown: 30,
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultDangoYAML
}
