package maze

// Rand is the random source behind heading choices and initial bar angles.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Heading is one of the four cardinal directions of travel.
type Heading int

const (
	Right Heading = iota
	Left
	Up
	Down
)

// String returns a human-readable name for the heading.
func (h Heading) String() string {
	switch h {
	case Right:
		return "right"
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ParseHeading converts a name produced by String back to a Heading.
func ParseHeading(s string) (Heading, bool) {
	switch s {
	case "right":
		return Right, true
	case "left":
		return Left, true
	case "up":
		return Up, true
	case "down":
		return Down, true
	}
	return Right, false
}

// Horizontal reports whether the heading moves along the x axis.
func (h Heading) Horizontal() bool {
	return h == Right || h == Left
}

// Delta returns the unit displacement for the heading. Screen y grows downward.
func (h Heading) Delta() Vec {
	switch h {
	case Right:
		return Vec{X: 1}
	case Left:
		return Vec{X: -1}
	case Up:
		return Vec{Y: -1}
	case Down:
		return Vec{Y: 1}
	}
	return Vec{}
}

// Redirect picks the heading after a collision. The token always turns 90
// degrees: horizontal travel becomes Up or Down, vertical travel Left or Right,
// each with probability one half.
func Redirect(h Heading, rng Rand) Heading {
	first := rng.IntN(2) == 0
	if h.Horizontal() {
		if first {
			return Up
		}
		return Down
	}
	if first {
		return Left
	}
	return Right
}

// Token is the moving dango.
type Token struct {
	Pos     Vec
	Heading Heading
	// Cooldown counts frames left during which collision checks are skipped.
	// Zero means checks are active.
	Cooldown int
}

// Cooling reports whether collision checks are currently suppressed.
func (t Token) Cooling() bool {
	return t.Cooldown > 0
}
