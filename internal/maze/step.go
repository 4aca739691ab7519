package maze

// State is the complete simulation state of one session.
type State struct {
	Params    Params
	Obstacles *Obstacles
	Token     Token
	Won       bool
	Frame     int // Frames stepped since the last reset
	Rotations int // Bar rotations since the last reset
}

// NewState lays out the bars and places the token at the start.
// angles may be nil for a random layout.
func NewState(p Params, rng Rand, angles []Angle) *State {
	s := &State{
		Params:    p,
		Obstacles: GridLayout(p, rng, angles),
	}
	s.Reset()
	return s
}

// Reset puts the token back at the start with checks active and clears the won
// flag. Bars keep their current angles.
func (s *State) Reset() {
	s.Token = Token{Pos: s.Params.Start, Heading: s.Params.StartHeading}
	s.Won = false
	s.Frame = 0
	s.Rotations = 0
}

// Rotate turns a bar by 90 degrees. Rotations after a win are ignored.
func (s *State) Rotate(id int) error {
	if s.Won {
		return nil
	}
	if err := s.Obstacles.Rotate(id); err != nil {
		return err
	}
	s.Rotations++
	return nil
}

// StepResult describes what happened during one frame.
type StepResult struct {
	Collided bool // At least one bar or the boundary was hit
	Hits     int  // Number of redirects applied this frame
	Won      bool // The token reached the goal this frame or earlier
}

// Step advances the simulation by one frame:
//  1. move the token by Speed along its heading;
//  2. unless cooling down, test every bar and then the boundary, redirecting once
//     per hit;
//  3. on reaching the goal, mark the state won and stop;
//  4. reset the cooldown after a collision, otherwise count it down;
//  5. clamp the token into the radius-aware bounds.
//
// A won state is terminal: further steps change nothing.
func Step(s *State, rng Rand) StepResult {
	if s.Won {
		return StepResult{Won: true}
	}
	s.Frame++

	p := s.Params
	tok := &s.Token
	tok.Pos = tok.Pos.Add(tok.Heading.Delta().Scale(p.Speed))

	var res StepResult
	if !tok.Cooling() {
		for range s.Obstacles.HitAny(tok.Pos) {
			tok.Heading = Redirect(tok.Heading, rng)
			res.Hits++
		}
		if BoundaryHitTest(tok.Pos, p.Radius, p.Bounds) {
			tok.Heading = Redirect(tok.Heading, rng)
			res.Hits++
		}
		res.Collided = res.Hits > 0
	}

	if GoalHitTest(tok.Pos, p.Goal) {
		tok.Pos = p.Inner().Clamp(tok.Pos)
		s.Won = true
		res.Won = true
		return res
	}

	if res.Collided {
		tok.Cooldown = p.Cooldown
	} else if tok.Cooldown > 0 {
		tok.Cooldown--
	}

	tok.Pos = p.Inner().Clamp(tok.Pos)
	return res
}
