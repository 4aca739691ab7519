package maze

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand returns its values in order, repeating the last one.
type scriptedRand struct {
	values []int
	calls  int
}

func (r *scriptedRand) IntN(n int) int {
	v := r.values[len(r.values)-1]
	if r.calls < len(r.values) {
		v = r.values[r.calls]
	}
	r.calls++
	return v % n
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// emptyState returns a state with the reference parameters and no bars.
func emptyState() *State {
	p := DefaultParams()
	s := &State{Params: p, Obstacles: NewObstacles(nil, p.BarLength, p.BarThickness)}
	s.Reset()
	return s
}

func TestBarHitTestArms(t *testing.T) {
	bar := Bar{X: 100, Y: 50, Angle: 0}

	tests := []struct {
		name     string
		p        Vec
		expected bool
	}{
		{"inside horizontal arm", Vec{150, 55}, true},
		{"inside vertical arm", Vec{105, 100}, true},
		{"in neither arm", Vec{150, 100}, false},
		{"on anchor corner", Vec{100, 50}, false},
		{"on horizontal arm top edge", Vec{150, 50}, false},
		{"on horizontal arm bottom edge", Vec{150, 60}, false},
		{"on horizontal arm far end", Vec{200, 55}, false},
		{"just inside far end", Vec{199.9, 55}, true},
		{"on vertical arm far end", Vec{105, 150}, false},
		{"left of anchor", Vec{95, 55}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BarHitTest(tc.p, bar, DefaultBarLength, DefaultBarThickness))
		})
	}
}

func TestBarHitTestRotated(t *testing.T) {
	// At 90 degrees the horizontal arm points down and the vertical arm left.
	bar := Bar{X: 200, Y: 200, Angle: 90}

	assert.True(t, BarHitTest(Vec{195, 250}, bar, DefaultBarLength, DefaultBarThickness))
	assert.True(t, BarHitTest(Vec{150, 205}, bar, DefaultBarLength, DefaultBarThickness))
	assert.False(t, BarHitTest(Vec{250, 205}, bar, DefaultBarLength, DefaultBarThickness))

	// At 180 degrees both arms extend up and left of the anchor.
	bar.Angle = 180
	assert.True(t, BarHitTest(Vec{150, 195}, bar, DefaultBarLength, DefaultBarThickness))
	assert.True(t, BarHitTest(Vec{195, 150}, bar, DefaultBarLength, DefaultBarThickness))
	assert.False(t, BarHitTest(Vec{150, 205}, bar, DefaultBarLength, DefaultBarThickness))

	// At 270 degrees the horizontal arm points up and the vertical arm right.
	bar.Angle = 270
	assert.True(t, BarHitTest(Vec{205, 150}, bar, DefaultBarLength, DefaultBarThickness))
	assert.True(t, BarHitTest(Vec{250, 195}, bar, DefaultBarLength, DefaultBarThickness))
	assert.False(t, BarHitTest(Vec{250, 205}, bar, DefaultBarLength, DefaultBarThickness))
}

func TestBarHitTestFullRotationConsistent(t *testing.T) {
	rng := newRand(7)
	obs := NewObstacles([]Bar{{X: 300, Y: 200, Angle: 90}}, DefaultBarLength, DefaultBarThickness)
	before, err := obs.Bar(0)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, obs.Rotate(0))
	}
	after, err := obs.Bar(0)
	require.NoError(t, err)
	assert.Equal(t, before.Angle, after.Angle)

	for i := 0; i < 2000; i++ {
		p := Vec{X: 180 + rng.Float64()*240, Y: 80 + rng.Float64()*240}
		assert.Equal(t,
			BarHitTest(p, before, DefaultBarLength, DefaultBarThickness),
			BarHitTest(p, after, DefaultBarLength, DefaultBarThickness),
			"point %v", p)
	}
}

func TestBarArms(t *testing.T) {
	tests := []struct {
		angle      Angle
		horizontal Rect
		vertical   Rect
	}{
		{0, NewRect(100, 100, 100, 10), NewRect(100, 100, 10, 100)},
		{90, NewRect(90, 100, 10, 100), NewRect(0, 100, 100, 10)},
		{180, NewRect(0, 90, 100, 10), NewRect(90, 0, 10, 100)},
		{270, NewRect(100, 0, 10, 100), NewRect(100, 90, 100, 10)},
	}

	for _, tc := range tests {
		arms := Bar{X: 100, Y: 100, Angle: tc.angle}.Arms(DefaultBarLength, DefaultBarThickness)
		assert.Equal(t, tc.horizontal, arms[0], "horizontal arm at %d", tc.angle)
		assert.Equal(t, tc.vertical, arms[1], "vertical arm at %d", tc.angle)
	}
}

func TestArmsAgreeWithHitTest(t *testing.T) {
	rng := newRand(3)
	for _, a := range Angles {
		bar := Bar{X: 350, Y: 250, Angle: a}
		arms := bar.Arms(DefaultBarLength, DefaultBarThickness)
		for i := 0; i < 1000; i++ {
			p := Vec{X: 230 + rng.Float64()*240, Y: 130 + rng.Float64()*240}
			inArms := arms[0].containsOpen(p) || arms[1].containsOpen(p)
			assert.Equal(t, inArms, BarHitTest(p, bar, DefaultBarLength, DefaultBarThickness), "angle %d point %v", a, p)
		}
	}
}

func TestBoundaryHitTestClosed(t *testing.T) {
	bounds := NewRect(0, 0, 700, 500)

	tests := []struct {
		name     string
		p        Vec
		expected bool
	}{
		{"centre", Vec{350, 250}, false},
		{"exactly at left threshold", Vec{15, 250}, true},
		{"just inside left threshold", Vec{15.5, 250}, false},
		{"exactly at right threshold", Vec{685, 250}, true},
		{"exactly at top threshold", Vec{350, 15}, true},
		{"exactly at bottom threshold", Vec{350, 485}, true},
		{"beyond bottom", Vec{350, 499}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BoundaryHitTest(tc.p, 15, bounds))
		})
	}
}

func TestGoalHitTestClosed(t *testing.T) {
	goal := NewRect(600, 400, 200, 200)

	assert.True(t, GoalHitTest(Vec{600, 400}, goal), "top-left corner")
	assert.True(t, GoalHitTest(Vec{800, 600}, goal), "bottom-right corner")
	assert.True(t, GoalHitTest(Vec{650, 450}, goal))
	assert.False(t, GoalHitTest(Vec{599.99, 450}, goal))
	assert.False(t, GoalHitTest(Vec{650, 399.99}, goal))
}

func TestRedirectIsPerpendicular(t *testing.T) {
	tests := []struct {
		from    Heading
		allowed []Heading
	}{
		{Right, []Heading{Up, Down}},
		{Left, []Heading{Up, Down}},
		{Up, []Heading{Left, Right}},
		{Down, []Heading{Left, Right}},
	}

	for _, tc := range tests {
		t.Run(tc.from.String(), func(t *testing.T) {
			seen := make(map[Heading]bool)
			for _, v := range []int{0, 1} {
				got := Redirect(tc.from, &scriptedRand{values: []int{v}})
				assert.Contains(t, tc.allowed, got)
				seen[got] = true
			}
			assert.Len(t, seen, 2, "both turns must be reachable")
		})
	}
}

func TestRedirectUsesFirstChoiceOnZero(t *testing.T) {
	assert.Equal(t, Up, Redirect(Right, &scriptedRand{values: []int{0}}))
	assert.Equal(t, Down, Redirect(Left, &scriptedRand{values: []int{1}}))
	assert.Equal(t, Left, Redirect(Down, &scriptedRand{values: []int{0}}))
	assert.Equal(t, Right, Redirect(Up, &scriptedRand{values: []int{1}}))
}

func TestStepStraightLine(t *testing.T) {
	s := emptyState()
	rng := &scriptedRand{values: []int{0}}

	const n = 200
	for i := 0; i < n; i++ {
		res := Step(s, rng)
		require.False(t, res.Collided, "frame %d", i)
		assert.Equal(t, Right, s.Token.Heading)
	}

	assert.Equal(t, 50.0+n, s.Token.Pos.X)
	assert.Equal(t, 50.0, s.Token.Pos.Y)
	assert.Equal(t, n, s.Frame)
	assert.Equal(t, 0, rng.calls, "no random choice without collisions")
}

func TestStepMovesBySpeed(t *testing.T) {
	s := emptyState()
	s.Params.Speed = 2.5
	s.Token = Token{Pos: Vec{300, 300}, Heading: Down}

	Step(s, &scriptedRand{values: []int{0}})

	assert.Equal(t, Vec{300, 302.5}, s.Token.Pos)
}

func TestStepCooldownSequence(t *testing.T) {
	s := emptyState()
	s.Token = Token{Pos: Vec{684, 250}, Heading: Right}
	rng := &scriptedRand{values: []int{0}}

	// Frame K: the token reaches x=685 and touches the right boundary.
	res := Step(s, rng)
	require.True(t, res.Collided)
	assert.Equal(t, Up, s.Token.Heading)
	assert.Equal(t, DefaultCooldown, s.Token.Cooldown)

	// Still touching the boundary, but checks are suppressed while cooling.
	for want := DefaultCooldown - 1; want >= 0; want-- {
		res = Step(s, rng)
		require.False(t, res.Collided)
		assert.Equal(t, want, s.Token.Cooldown)
		assert.Equal(t, Up, s.Token.Heading)
	}

	// Checks are active again and the boundary is still touched.
	res = Step(s, rng)
	assert.True(t, res.Collided)
	assert.Equal(t, DefaultCooldown, s.Token.Cooldown)
	assert.Equal(t, Left, s.Token.Heading)
}

func TestStepRedirectsOnBar(t *testing.T) {
	s := emptyState()
	s.Obstacles = NewObstacles([]Bar{{X: 200, Y: 40, Angle: 0}}, DefaultBarLength, DefaultBarThickness)
	s.Token = Token{Pos: Vec{195, 70}, Heading: Right}
	rng := &scriptedRand{values: []int{1}}

	// x=196..200 is outside the open vertical arm (200,210).
	for i := 0; i < 5; i++ {
		res := Step(s, rng)
		require.False(t, res.Collided, "frame %d", i)
	}

	res := Step(s, rng)
	require.True(t, res.Collided)
	assert.Equal(t, 1, res.Hits)
	assert.Equal(t, Down, s.Token.Heading)
	assert.Equal(t, Vec{201, 70}, s.Token.Pos)
}

func TestStepRedirectsOncePerHit(t *testing.T) {
	s := emptyState()
	// Two bars sharing the same anchor: one frame, two hits, two turns.
	s.Obstacles = NewObstacles([]Bar{
		{X: 200, Y: 40, Angle: 0},
		{X: 200, Y: 40, Angle: 0},
	}, DefaultBarLength, DefaultBarThickness)
	s.Token = Token{Pos: Vec{200, 70}, Heading: Right}

	res := Step(s, &scriptedRand{values: []int{0, 0}})

	assert.Equal(t, 2, res.Hits)
	assert.Equal(t, Left, s.Token.Heading, "right -> up -> left")
}

func TestStepClampsIntoBounds(t *testing.T) {
	s := emptyState()
	s.Params.Speed = 10
	s.Token = Token{Pos: Vec{20, 300}, Heading: Left}

	Step(s, &scriptedRand{values: []int{0}})

	assert.Equal(t, 15.0, s.Token.Pos.X)
	assert.Equal(t, Up, s.Token.Heading)
}

func TestStepReachesGoal(t *testing.T) {
	s := emptyState()
	s.Token = Token{Pos: Vec{599, 450}, Heading: Right}

	res := Step(s, &scriptedRand{values: []int{0}})
	require.True(t, res.Won)
	require.True(t, s.Won)
	pos := s.Token.Pos

	// Terminal: nothing moves afterwards, rotations are ignored.
	res = Step(s, &scriptedRand{values: []int{0}})
	assert.True(t, res.Won)
	assert.Equal(t, pos, s.Token.Pos)
	assert.Equal(t, 1, s.Frame)
}

func TestStepBoundsInvariant(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := newRand(seed)
		s := NewState(DefaultParams(), rng, nil)
		inner := s.Params.Inner()

		for frame := 0; frame < 5000 && !s.Won; frame++ {
			if frame%97 == 0 {
				require.NoError(t, s.Rotate(rng.IntN(s.Obstacles.Len())))
			}
			prev := s.Token.Heading
			res := Step(s, rng)

			pos := s.Token.Pos
			require.True(t, inner.ContainsClosed(pos), "seed %d frame %d: %v out of bounds", seed, frame, pos)
			if res.Hits == 1 {
				require.NotEqual(t, prev.Horizontal(), s.Token.Heading.Horizontal(),
					"seed %d frame %d: %s -> %s", seed, frame, prev, s.Token.Heading)
			}
			if res.Hits == 0 && !res.Won {
				require.Equal(t, prev, s.Token.Heading)
			}
		}
	}
}

func TestStepDeterministic(t *testing.T) {
	run := func() (Vec, Heading, bool) {
		rng := newRand(12345)
		s := NewState(DefaultParams(), rng, nil)
		for i := 0; i < 3000 && !s.Won; i++ {
			Step(s, rng)
		}
		return s.Token.Pos, s.Token.Heading, s.Won
	}

	p1, h1, w1 := run()
	p2, h2, w2 := run()
	assert.Equal(t, p1, p2)
	assert.Equal(t, h1, h2)
	assert.Equal(t, w1, w2)
}

func TestGridLayout(t *testing.T) {
	p := DefaultParams()
	angles := make([]Angle, p.Rows*p.Cols)
	for i := range angles {
		angles[i] = Angles[i%4]
	}

	obs := GridLayout(p, &scriptedRand{values: []int{0}}, angles)
	bars := obs.Bars()
	require.Len(t, bars, 20)

	spacingX := (700.0 - 5*100) / 6
	assert.InDelta(t, spacingX, bars[0].X, 1e-9)
	assert.InDelta(t, 20.0, bars[0].Y, 1e-9)
	assert.InDelta(t, spacingX+4*(100+spacingX), bars[19].X, 1e-9)
	assert.InDelta(t, 20.0+3*120, bars[19].Y, 1e-9)
	assert.Equal(t, angles, obs.Angles())
}

func TestGridLayoutRandomAngles(t *testing.T) {
	p := DefaultParams()
	obs := GridLayout(p, &scriptedRand{values: []int{3, 2, 1, 0}}, nil)

	got := obs.Angles()
	assert.Equal(t, []Angle{270, 180, 90, 0, 0}, got[:5])
	for _, a := range got {
		assert.True(t, a.Valid())
	}
}

func TestObstaclesRotate(t *testing.T) {
	obs := NewObstacles([]Bar{{X: 0, Y: 0, Angle: 270}}, 100, 10)

	require.NoError(t, obs.Rotate(0))
	b, err := obs.Bar(0)
	require.NoError(t, err)
	assert.Equal(t, Angle(0), b.Angle)

	assert.ErrorIs(t, obs.Rotate(1), ErrUnknownBar)
	assert.ErrorIs(t, obs.Rotate(-1), ErrUnknownBar)
	_, err = obs.Bar(5)
	assert.ErrorIs(t, err, ErrUnknownBar)
}

func TestObstaclesBarsIsCopy(t *testing.T) {
	obs := NewObstacles([]Bar{{X: 10, Y: 10, Angle: 0}}, 100, 10)
	bars := obs.Bars()
	bars[0].Angle = 180

	b, _ := obs.Bar(0)
	assert.Equal(t, Angle(0), b.Angle)
}

func TestStateRotateCountsAndStopsAfterWin(t *testing.T) {
	s := emptyState()
	s.Obstacles = NewObstacles([]Bar{{X: 300, Y: 300}}, 100, 10)

	require.NoError(t, s.Rotate(0))
	assert.Equal(t, 1, s.Rotations)
	assert.ErrorIs(t, s.Rotate(3), ErrUnknownBar)
	assert.Equal(t, 1, s.Rotations)

	s.Won = true
	require.NoError(t, s.Rotate(0))
	assert.Equal(t, 1, s.Rotations)
	assert.Equal(t, []Angle{90}, s.Obstacles.Angles())
}

func TestStateResetKeepsBars(t *testing.T) {
	rng := newRand(9)
	s := NewState(DefaultParams(), rng, nil)
	require.NoError(t, s.Rotate(4))
	angles := s.Obstacles.Angles()
	for i := 0; i < 100; i++ {
		Step(s, rng)
	}

	s.Reset()

	assert.Equal(t, Vec{50, 50}, s.Token.Pos)
	assert.Equal(t, Right, s.Token.Heading)
	assert.Equal(t, 0, s.Token.Cooldown)
	assert.Equal(t, 0, s.Rotations)
	assert.Equal(t, angles, s.Obstacles.Angles())
}

func TestButtonAt(t *testing.T) {
	obs := NewObstacles([]Bar{
		{X: 100, Y: 100, Angle: 90},
		{X: 300, Y: 100, Angle: 0},
	}, 100, 10)

	id, ok := obs.ButtonAt(Vec{150, 105}, 8)
	require.True(t, ok)
	assert.Equal(t, 0, id)

	id, ok = obs.ButtonAt(Vec{356, 111}, 8)
	require.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = obs.ButtonAt(Vec{250, 105}, 8)
	assert.False(t, ok)
}

func TestHeadingParseRoundTrip(t *testing.T) {
	for _, h := range []Heading{Right, Left, Up, Down} {
		got, ok := ParseHeading(h.String())
		require.True(t, ok)
		assert.Equal(t, h, got)
	}
	_, ok := ParseHeading("north")
	assert.False(t, ok)
}
