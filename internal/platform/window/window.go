//go:build window

// Package window runs the maze in a desktop window with Ebiten, drawing the
// canvas at its native size. Bars are rotated by clicking their buttons.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/dango-maze/internal/config"
	"github.com/vovakirdan/dango-maze/internal/core"
	"github.com/vovakirdan/dango-maze/internal/games/dango"
	"github.com/vovakirdan/dango-maze/internal/maze"
	"github.com/vovakirdan/dango-maze/internal/storage"
)

// ButtonSize is the side of the square rotate button drawn over each bar.
const ButtonSize = 18

var (
	colorBackground = color.RGBA{250, 250, 245, 255}
	colorBorder     = color.RGBA{40, 40, 40, 255}
	colorBar        = color.RGBA{60, 90, 160, 255}
	colorButton     = color.RGBA{240, 200, 80, 255}
	colorGoal       = color.NRGBA{255, 0, 0, 77}
	colorDango      = color.RGBA{110, 190, 90, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 160}
)

// Options configures a window session.
type Options struct {
	Config   config.DangoConfig
	Seed     int64
	TickRate int
	Store    *storage.Store // Nil disables persistence
	Logger   *log.Logger
}

// Game adapts the maze to ebiten.Game.
type Game struct {
	game       *dango.Game
	runtime    core.RuntimeConfig
	store      *storage.Store
	logger     *log.Logger
	lastSample time.Time
	saved      bool
}

// New creates a window game and starts the session.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}

	g := &Game{
		game:   dango.NewWithConfig(opts.Config, nil),
		store:  opts.Store,
		logger: logger,
		runtime: core.RuntimeConfig{
			ScreenW:  int(opts.Config.Canvas.Width),
			ScreenH:  int(opts.Config.Canvas.Height),
			TickRate: opts.TickRate,
			Seed:     opts.Seed,
		},
	}
	g.game.Reset(g.runtime)
	g.lastSample = time.Now()
	return g
}

// Update applies input, advances one frame and refreshes the timer on its
// own cadence.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	st := g.game.State()
	if st.Won {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.game.Reset(g.runtime)
			g.saved = false
			g.lastSample = time.Now()
		}
		return nil
	}

	in := core.NewInputFrame()
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		in.Set(core.ActionPause)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		p := maze.Vec{X: float64(x), Y: float64(y)}
		if id, ok := g.game.Maze().Obstacles.ButtonAt(p, ButtonSize/2); ok {
			//nolint:errcheck // id comes from the obstacle set
			g.game.RotateBar(id)
		}
	}

	res := g.game.Step(in)

	if now := time.Now(); now.Sub(g.lastSample) >= maze.TimerInterval {
		g.game.Sample()
		g.lastSample = now
	}

	if res.State.Won && !g.saved {
		g.saved = true
		g.saveRun(g.game.State())
	}
	return nil
}

// saveRun stores a finished run, logging instead of failing.
func (g *Game) saveRun(st core.GameState) {
	g.logger.Info("goal reached", "time", maze.FormatElapsed(st.Elapsed), "rotations", st.Rotations)
	if g.store == nil {
		return
	}
	seed, ok := g.game.LayoutSeed()
	if !ok {
		seed = 0
	}
	run, err := g.store.SaveRun(storage.Run{
		GameID:    g.game.ID(),
		Elapsed:   st.Elapsed,
		Rotations: st.Rotations,
		Seed:      seed,
	})
	if err != nil {
		g.logger.Warn("could not save run", "error", err)
		return
	}
	g.logger.Debug("run saved", "run", run.RunID)
}

// Draw renders the canvas: boundary, goal, bars, buttons, dango, labels, timer.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.game.Maze()
	p := s.Params

	screen.Fill(colorBackground)
	vector.StrokeRect(screen, float32(p.Bounds.X), float32(p.Bounds.Y),
		float32(p.Bounds.W), float32(p.Bounds.H), 2, colorBorder, false)

	if s.Won {
		g.drawWon(screen, p)
		return
	}

	vector.DrawFilledRect(screen, float32(p.Goal.X), float32(p.Goal.Y),
		float32(p.Goal.W), float32(p.Goal.H), colorGoal, false)

	bars := s.Obstacles.Bars()
	for _, bar := range bars {
		for _, arm := range bar.Arms(p.BarLength, p.BarThickness) {
			vector.DrawFilledRect(screen, float32(arm.X), float32(arm.Y),
				float32(arm.W), float32(arm.H), colorBar, false)
		}
	}
	for _, bar := range bars {
		c := maze.ButtonCenter(bar, p.BarLength, p.BarThickness)
		x, y := float32(c.X)-ButtonSize/2, float32(c.Y)-ButtonSize/2
		vector.DrawFilledRect(screen, x, y, ButtonSize, ButtonSize, colorButton, false)
		vector.StrokeRect(screen, x, y, ButtonSize, ButtonSize, 1, colorBorder, false)
	}

	tok := s.Token.Pos
	vector.DrawFilledCircle(screen, float32(tok.X), float32(tok.Y), float32(p.Radius), colorDango, true)

	ebitenutil.DebugPrintAt(screen, "START", int(p.Start.X)-20, int(p.Start.Y)-30)
	ebitenutil.DebugPrintAt(screen, "GOAL", int(p.Goal.X)+10, int(p.Goal.Y+p.Goal.H/2)-20)

	hud := fmt.Sprintf("%s  Rotations: %d", maze.FormatElapsed(g.game.State().Elapsed), s.Rotations)
	if g.game.State().Paused {
		hud += "  PAUSED"
	}
	ebitenutil.DebugPrintAt(screen, hud, 8, 4)
}

// drawWon replaces the board with the congratulations message.
func (g *Game) drawWon(screen *ebiten.Image, p maze.Params) {
	vector.DrawFilledRect(screen, 0, 0, float32(p.Bounds.W), float32(p.Bounds.H), colorOverlay, false)
	cx, cy := int(p.Bounds.Center().X), int(p.Bounds.Center().Y)
	ebitenutil.DebugPrintAt(screen, "Congratulations!", cx-48, cy-24)
	ebitenutil.DebugPrintAt(screen, maze.FormatElapsed(g.game.State().Elapsed), cx-54, cy-4)
	ebitenutil.DebugPrintAt(screen, "R restart  Q quit", cx-51, cy+16)
}

// Layout keeps the logical screen at the canvas size; Ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	p := g.game.Maze().Params
	return int(p.Bounds.W), int(p.Bounds.H)
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g := New(opts)
	w, h := g.Layout(0, 0)

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(g.game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.runtime.TickRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
