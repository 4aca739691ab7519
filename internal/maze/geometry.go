package maze

// Vec is a point or displacement in canvas coordinates.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Rect is an axis-aligned rectangle in canvas coordinates.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the centre point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// ContainsClosed reports whether p lies inside r, edges included.
func (r Rect) ContainsClosed(p Vec) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// containsOpen reports whether p lies strictly inside r.
func (r Rect) containsOpen(p Vec) bool {
	return p.X > r.X && p.X < r.Right() && p.Y > r.Y && p.Y < r.Bottom()
}

// Clamp restricts p to r.
func (r Rect) Clamp(p Vec) Vec {
	return Vec{X: clampF(p.X, r.X, r.Right()), Y: clampF(p.Y, r.Y, r.Bottom())}
}

func clampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// BarHitTest reports whether p lies strictly inside either arm of bar.
// The point is moved into the bar's local frame (rotation by -angle around the
// anchor); there the horizontal arm spans (0,length)x(0,thickness) and the
// vertical arm (0,thickness)x(0,length). Touching an edge is not a hit.
func BarHitTest(p Vec, bar Bar, length, thickness float64) bool {
	local := bar.toLocal(p)
	horizontal := NewRect(0, 0, length, thickness)
	vertical := NewRect(0, 0, thickness, length)
	return horizontal.containsOpen(local) || vertical.containsOpen(local)
}

// BoundaryHitTest reports whether a token of the given radius centred at p touches
// or crosses any edge of bounds. Unlike BarHitTest the comparison is closed.
func BoundaryHitTest(p Vec, radius float64, bounds Rect) bool {
	return p.X <= bounds.X+radius ||
		p.X >= bounds.Right()-radius ||
		p.Y <= bounds.Y+radius ||
		p.Y >= bounds.Bottom()-radius
}

// GoalHitTest reports whether p lies inside the goal, edges included.
func GoalHitTest(p Vec, goal Rect) bool {
	return goal.ContainsClosed(p)
}
