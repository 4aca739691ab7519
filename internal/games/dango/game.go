// Package dango implements the dango maze: a rolling token bounces off
// rotatable L-shaped bars until it reaches the goal. The player's only move is
// rotating bars, by clicking their buttons or selecting them from the keyboard.
package dango

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/dango-maze/internal/config"
	"github.com/vovakirdan/dango-maze/internal/core"
	"github.com/vovakirdan/dango-maze/internal/maze"
	"github.com/vovakirdan/dango-maze/internal/registry"
)

// GameID is the registry and storage identifier of the maze.
const GameID = "dango"

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// LoadConfig resolves the configuration the CLI selected: the config search
// order followed by the difficulty preset.
func LoadConfig() (config.DangoConfig, error) {
	cfg, err := config.LoadDango(configPath)
	if err != nil {
		return config.DefaultDangoConfig(), err
	}
	config.ApplyDangoPreset(&cfg, difficultyPreset)
	return cfg, nil
}

// ParamsFromConfig converts a validated configuration into simulation parameters
// and the fixed initial bar angles (nil for a random layout).
func ParamsFromConfig(cfg config.DangoConfig) (maze.Params, []maze.Angle) {
	heading, ok := maze.ParseHeading(cfg.Token.Heading)
	if !ok {
		heading = maze.Right
	}

	p := maze.Params{
		Bounds:       maze.NewRect(0, 0, cfg.Canvas.Width, cfg.Canvas.Height),
		BarLength:    cfg.Bars.Length,
		BarThickness: cfg.Bars.Thickness,
		Rows:         cfg.Bars.Rows,
		Cols:         cfg.Bars.Cols,
		Radius:       cfg.Token.Diameter / 2,
		Speed:        cfg.Token.Speed,
		Cooldown:     cfg.Cooldown,
		Start:        maze.Vec{X: cfg.Token.StartX, Y: cfg.Token.StartY},
		StartHeading: heading,
		Goal:         maze.NewRect(cfg.Goal.X, cfg.Goal.Y, cfg.Goal.Width, cfg.Goal.Height),
	}

	var angles []maze.Angle
	if len(cfg.Bars.Angles) > 0 {
		angles = make([]maze.Angle, len(cfg.Bars.Angles))
		for i, a := range cfg.Bars.Angles {
			angles[i] = maze.Angle(a)
		}
	}
	return p, angles
}

// NewRand returns the random source for a session seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// Game implements the dango maze for the game platform.
type Game struct {
	cfg       config.DangoConfig
	cfgLoaded bool
	state     *maze.State
	rng       *rand.Rand
	timer     *maze.Timer
	now       func() time.Time
	seed      int64
	drifted   bool // bars differ from the seeded layout
	selected  int  // Bar chosen with the keyboard
	paused    bool // Whether stepping is suspended
	config    core.RuntimeConfig

	// buttons maps screen cell index (y*width+x) to bar id, rebuilt on every Render.
	buttons     *intmap.Map[int, int]
	buttonWidth int
}

// New creates a game that loads its configuration on first Reset.
func New() *Game {
	return &Game{now: time.Now}
}

// NewWithConfig creates a game with an explicit configuration and clock.
// A nil clock means time.Now.
func NewWithConfig(cfg config.DangoConfig, now func() time.Time) *Game {
	if now == nil {
		now = time.Now
	}
	return &Game{cfg: cfg, cfgLoaded: true, now: now}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dango Maze"
}

// Reset starts a session. The first call lays out the bars from the seed;
// later calls (restart after a win) only put the dango back at the start and
// restart the timer, keeping the bars as the player left them.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.paused = false

	if g.state == nil {
		if !g.cfgLoaded {
			// LoadConfig falls back to the defaults on error.
			g.cfg, _ = LoadConfig()
			g.cfgLoaded = true
		}
		params, angles := ParamsFromConfig(g.cfg)
		g.seed = cfg.Seed
		g.rng = NewRand(cfg.Seed)
		g.state = maze.NewState(params, g.rng, angles)
		g.timer = maze.NewTimer(g.now)
		g.selected = 0
		g.drifted = false
	} else {
		if g.state.Rotations > 0 {
			g.drifted = true
		}
		g.state.Reset()
	}
	g.timer.Start()
}

// Step applies queued rotations, then advances the maze by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state.Won {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	g.applySelection(in)
	for _, c := range in.Clicks {
		if id, ok := g.ButtonAt(c.X, c.Y); ok {
			//nolint:errcheck // id comes from the button map, always valid
			g.RotateBar(id)
		}
	}
	if in.Has(core.ActionRotate) {
		//nolint:errcheck // selection is kept within the obstacle set
		g.state.Rotate(g.selected)
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	res := maze.Step(g.state, g.rng)
	if res.Won {
		g.timer.Stop()
	}

	return core.StepResult{State: g.State(), Collided: res.Collided}
}

// RotateBar selects a bar and turns it by 90 degrees. Drivers with their own
// hit testing call it between steps.
func (g *Game) RotateBar(id int) error {
	if err := g.state.Rotate(id); err != nil {
		return fmt.Errorf("dango: %w", err)
	}
	g.selected = id
	return nil
}

// applySelection moves the keyboard selection across the bar grid.
func (g *Game) applySelection(in core.InputFrame) {
	n := g.state.Obstacles.Len()
	if n == 0 {
		return
	}
	cols := core.Max(g.state.Params.Cols, 1)
	row, col := g.selected/cols, g.selected%cols
	rows := (n + cols - 1) / cols

	switch {
	case in.Has(core.ActionLeft):
		col--
	case in.Has(core.ActionRight):
		col++
	case in.Has(core.ActionUp):
		row--
	case in.Has(core.ActionDown):
		row++
	case in.Has(core.ActionNext):
		g.selected = (g.selected + 1) % n
		return
	case in.Has(core.ActionPrev):
		g.selected = (g.selected - 1 + n) % n
		return
	default:
		return
	}

	row = core.Clamp(row, 0, rows-1)
	col = core.Clamp(col, 0, cols-1)
	g.selected = core.Min(row*cols+col, n-1)
}

// Sample refreshes the timer display.
func (g *Game) Sample() {
	if g.timer != nil {
		g.timer.Update()
	}
}

// Seed returns the seed the bar layout was generated from.
func (g *Game) Seed() int64 {
	return g.seed
}

// LayoutSeed returns the session seed while the run started from the seeded
// layout. After a restart that follows rotations it reports false.
func (g *Game) LayoutSeed() (int64, bool) {
	return g.seed, !g.drifted
}

// Selected returns the id of the bar chosen with the keyboard.
func (g *Game) Selected() int {
	return g.selected
}

// Maze exposes the simulation state for inspection.
func (g *Game) Maze() *maze.State {
	return g.state
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{Paused: g.paused}
	if g.state != nil {
		st.Won = g.state.Won
		st.Rotations = g.state.Rotations
		st.Frames = g.state.Frame
	}
	if g.timer != nil {
		st.Elapsed = g.timer.Elapsed()
	}
	return st
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
