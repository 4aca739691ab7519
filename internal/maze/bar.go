package maze

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownBar is returned when a bar id is outside the obstacle set.
var ErrUnknownBar = errors.New("maze: unknown bar")

// Angle is a bar orientation in degrees. Valid values are 0, 90, 180 and 270.
type Angle int

// Cardinal angles in the order used for random initial orientation.
var Angles = [4]Angle{0, 90, 180, 270}

// Next returns the angle rotated clockwise by 90 degrees.
func (a Angle) Next() Angle {
	return (a + 90) % 360
}

// Valid reports whether a is one of the four cardinal angles.
func (a Angle) Valid() bool {
	return a == 0 || a == 90 || a == 180 || a == 270
}

// cosSin returns cos and sin of the angle. Cardinal angles are exact so that
// rotated geometry stays on whole coordinates.
func (a Angle) cosSin() (float64, float64) {
	switch ((a % 360) + 360) % 360 {
	case 0:
		return 1, 0
	case 90:
		return 0, 1
	case 180:
		return -1, 0
	case 270:
		return 0, -1
	}
	rad := float64(a) * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}

// Bar is an L-shaped obstacle: two perpendicular arms sharing the corner at the
// anchor (X, Y), rotated by Angle around that corner.
type Bar struct {
	X, Y  float64
	Angle Angle
}

// Anchor returns the shared corner of the two arms.
func (b Bar) Anchor() Vec {
	return Vec{X: b.X, Y: b.Y}
}

// toLocal moves a canvas point into the bar's unrotated frame.
func (b Bar) toLocal(p Vec) Vec {
	cos, sin := b.Angle.cosSin()
	rel := p.Sub(b.Anchor())
	return Vec{
		X: rel.X*cos + rel.Y*sin,
		Y: -rel.X*sin + rel.Y*cos,
	}
}

// toWorld is the inverse of toLocal.
func (b Bar) toWorld(p Vec) Vec {
	cos, sin := b.Angle.cosSin()
	return Vec{
		X: b.X + p.X*cos - p.Y*sin,
		Y: b.Y + p.X*sin + p.Y*cos,
	}
}

// Arms returns the horizontal and vertical arm as canvas-space rectangles.
// The result is exact for cardinal angles, where a rotated arm stays axis-aligned.
func (b Bar) Arms(length, thickness float64) [2]Rect {
	return [2]Rect{
		b.worldRect(NewRect(0, 0, length, thickness)),
		b.worldRect(NewRect(0, 0, thickness, length)),
	}
}

func (b Bar) worldRect(local Rect) Rect {
	corners := [4]Vec{
		b.toWorld(Vec{X: local.X, Y: local.Y}),
		b.toWorld(Vec{X: local.Right(), Y: local.Y}),
		b.toWorld(Vec{X: local.X, Y: local.Bottom()}),
		b.toWorld(Vec{X: local.Right(), Y: local.Bottom()}),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return NewRect(minX, minY, maxX-minX, maxY-minY)
}

// ButtonCenter returns where the rotate control of a bar sits: the middle of the
// unrotated horizontal arm. It does not move when the bar rotates.
func ButtonCenter(b Bar, length, thickness float64) Vec {
	return Vec{X: b.X + length/2, Y: b.Y + thickness/2}
}

// Obstacles is the fixed, ordered set of bars in a session.
// Membership never changes after construction; only angles do.
type Obstacles struct {
	bars      []Bar
	length    float64
	thickness float64
}

// NewObstacles creates an obstacle set from explicit bars.
func NewObstacles(bars []Bar, length, thickness float64) *Obstacles {
	cp := make([]Bar, len(bars))
	copy(cp, bars)
	return &Obstacles{bars: cp, length: length, thickness: thickness}
}

// GridLayout places rows x cols bars evenly on the canvas. Spacing per axis is
// (size - cells*length) / (cells+1). Angles come from angles when it holds one
// entry per bar, otherwise each bar gets a uniformly random cardinal angle.
func GridLayout(p Params, rng Rand, angles []Angle) *Obstacles {
	spacingX := (p.Bounds.W - float64(p.Cols)*p.BarLength) / float64(p.Cols+1)
	spacingY := (p.Bounds.H - float64(p.Rows)*p.BarLength) / float64(p.Rows+1)

	useFixed := len(angles) == p.Rows*p.Cols
	bars := make([]Bar, 0, p.Rows*p.Cols)
	for row := 0; row < p.Rows; row++ {
		for col := 0; col < p.Cols; col++ {
			var angle Angle
			if useFixed {
				angle = angles[len(bars)]
			} else {
				angle = Angles[rng.IntN(len(Angles))]
			}
			bars = append(bars, Bar{
				X:     p.Bounds.X + spacingX + float64(col)*(p.BarLength+spacingX),
				Y:     p.Bounds.Y + spacingY + float64(row)*(p.BarLength+spacingY),
				Angle: angle,
			})
		}
	}
	return &Obstacles{bars: bars, length: p.BarLength, thickness: p.BarThickness}
}

// Len returns the number of bars.
func (o *Obstacles) Len() int {
	return len(o.bars)
}

// Bars returns a copy of all bars in layout order.
func (o *Obstacles) Bars() []Bar {
	cp := make([]Bar, len(o.bars))
	copy(cp, o.bars)
	return cp
}

// Bar returns the bar with the given id.
func (o *Obstacles) Bar(id int) (Bar, error) {
	if id < 0 || id >= len(o.bars) {
		return Bar{}, fmt.Errorf("%w: %d", ErrUnknownBar, id)
	}
	return o.bars[id], nil
}

// Angles returns the current angle of every bar in layout order.
func (o *Obstacles) Angles() []Angle {
	out := make([]Angle, len(o.bars))
	for i, b := range o.bars {
		out[i] = b.Angle
	}
	return out
}

// Rotate turns the bar with the given id by 90 degrees.
func (o *Obstacles) Rotate(id int) error {
	if id < 0 || id >= len(o.bars) {
		return fmt.Errorf("%w: %d", ErrUnknownBar, id)
	}
	o.bars[id].Angle = o.bars[id].Angle.Next()
	return nil
}

// HitAny returns the ids of all bars whose arms strictly contain p.
func (o *Obstacles) HitAny(p Vec) []int {
	var hits []int
	for i, b := range o.bars {
		if BarHitTest(p, b, o.length, o.thickness) {
			hits = append(hits, i)
		}
	}
	return hits
}

// ButtonAt returns the id of the bar whose rotate control (a square of side
// 2*reach around ButtonCenter) contains p.
func (o *Obstacles) ButtonAt(p Vec, reach float64) (int, bool) {
	for i, b := range o.bars {
		c := ButtonCenter(b, o.length, o.thickness)
		if NewRect(c.X-reach, c.Y-reach, 2*reach, 2*reach).ContainsClosed(p) {
			return i, true
		}
	}
	return 0, false
}
