// Package maze implements the dango maze simulation: a token that travels on a
// fixed heading, turns when it hits a rotatable L-shaped bar or the boundary, and
// wins on reaching the goal. The package is pure: no terminal, no clock except the
// injected one in Timer, no global state.
package maze

// Reference tuning, matching the embedded default configuration.
const (
	DefaultCanvasW      = 700.0
	DefaultCanvasH      = 500.0
	DefaultBarLength    = 100.0
	DefaultBarThickness = 10.0
	DefaultRows         = 4
	DefaultCols         = 5
	DefaultDiameter     = 30.0
	DefaultSpeed        = 1.0
	DefaultCooldown     = 30 // frames
)

// Params holds the fixed geometry and tuning of a session.
type Params struct {
	Bounds       Rect    // Canvas rectangle, anchored at the origin
	BarLength    float64 // Arm length of every bar
	BarThickness float64 // Arm thickness of every bar
	Rows, Cols   int     // Bar grid
	Radius       float64 // Token radius
	Speed        float64 // Units per frame
	Cooldown     int     // Frames without collision checks after a redirect
	Start        Vec
	StartHeading Heading
	Goal         Rect
}

// DefaultParams returns the reference layout: a 700x500 canvas, a 4x5 grid of bars
// and a 200x200 goal in the bottom-right corner.
func DefaultParams() Params {
	return Params{
		Bounds:       NewRect(0, 0, DefaultCanvasW, DefaultCanvasH),
		BarLength:    DefaultBarLength,
		BarThickness: DefaultBarThickness,
		Rows:         DefaultRows,
		Cols:         DefaultCols,
		Radius:       DefaultDiameter / 2,
		Speed:        DefaultSpeed,
		Cooldown:     DefaultCooldown,
		Start:        Vec{X: 50, Y: 50},
		StartHeading: Right,
		Goal:         NewRect(600, 400, 200, 200),
	}
}

// Inner returns the rectangle the token centre is clamped to.
func (p Params) Inner() Rect {
	return NewRect(
		p.Bounds.X+p.Radius,
		p.Bounds.Y+p.Radius,
		p.Bounds.W-2*p.Radius,
		p.Bounds.H-2*p.Radius,
	)
}
