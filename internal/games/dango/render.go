package dango

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/dango-maze/internal/core"
	"github.com/vovakirdan/dango-maze/internal/maze"
)

// Visual characters for rendering
const (
	BarChar      = '█'
	ButtonChar   = '◆'
	TokenChar    = '●'
	GoalChar     = '░'
	minBoardW    = 20
	minBoardH    = 6
	helpControls = "Tab/arrows select  Space rotate  click ◆ rotate  P pause  Q quit"
)

// viewport maps canvas coordinates onto the board area of the screen.
type viewport struct {
	board  core.Rect // Cells inside the boundary box
	canvas maze.Rect
}

// newViewport reserves the top row for the HUD, the bottom row for help and a
// one-cell boundary box around the board.
func newViewport(w, h int, canvas maze.Rect) viewport {
	return viewport{
		board:  core.NewRect(1, 2, w-2, h-4),
		canvas: canvas,
	}
}

func (v viewport) cellX(x float64) int {
	return v.board.X + int(math.Floor((x-v.canvas.X)/v.canvas.W*float64(v.board.W)))
}

func (v viewport) cellY(y float64) int {
	return v.board.Y + int(math.Floor((y-v.canvas.Y)/v.canvas.H*float64(v.board.H)))
}

// cell returns the screen cell containing a canvas point.
func (v viewport) cell(p maze.Vec) core.Point {
	return core.Point{X: v.cellX(p.X), Y: v.cellY(p.Y)}
}

// cellRect returns the cells covered by a canvas rectangle, clipped to the board.
// Thin rectangles still cover at least one cell on each axis.
func (v viewport) cellRect(r maze.Rect) core.Rect {
	x0, y0 := v.cellX(r.X), v.cellY(r.Y)
	x1 := v.board.X + int(math.Ceil((r.Right()-v.canvas.X)/v.canvas.W*float64(v.board.W)))
	y1 := v.board.Y + int(math.Ceil((r.Bottom()-v.canvas.Y)/v.canvas.H*float64(v.board.H)))
	x1, y1 = core.Max(x1, x0+1), core.Max(y1, y0+1)

	x0 = core.Clamp(x0, v.board.X, v.board.Right())
	y0 = core.Clamp(y0, v.board.Y, v.board.Bottom())
	x1 = core.Clamp(x1, v.board.X, v.board.Right())
	y1 = core.Clamp(y1, v.board.Y, v.board.Bottom())
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// clampToBoard keeps a cell inside the board.
func (v viewport) clampToBoard(p core.Point) core.Point {
	return core.Point{
		X: core.Clamp(p.X, v.board.X, v.board.Right()-1),
		Y: core.Clamp(p.Y, v.board.Y, v.board.Bottom()-1),
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	g.buttons = intmap.New[int, int](g.state.Obstacles.Len() * 3)
	g.buttonWidth = w

	if w-2 < minBoardW || h-4 < minBoardH {
		dst.DrawTextCentered(h/2, "Terminal too small", core.ColorBrightRed)
		return
	}

	p := g.state.Params
	v := newViewport(w, h, p.Bounds)

	g.drawHUD(dst)
	dst.DrawBox(core.NewRect(0, 1, w, h-2), core.ColorWhite)

	if g.state.Won {
		g.drawCongratulations(dst)
		return
	}

	// Goal first, so bars and the dango draw over it.
	dst.FillRect(v.cellRect(p.Goal), GoalChar, core.ColorRed)

	bars := g.state.Obstacles.Bars()
	for id, bar := range bars {
		color := core.ColorBlue
		if id == g.selected {
			color = core.ColorBrightYellow
		}
		for _, arm := range bar.Arms(p.BarLength, p.BarThickness) {
			dst.FillRect(v.cellRect(arm), BarChar, color)
		}
	}

	// Buttons draw over the bars.
	for id, bar := range bars {
		c := v.clampToBoard(v.cell(maze.ButtonCenter(bar, p.BarLength, p.BarThickness)))
		color := core.ColorCyan
		if id == g.selected {
			color = core.ColorBrightYellow
		}
		dst.SetColored(c.X, c.Y, ButtonChar, color)
		g.buttons.Put(c.Y*w+c.X, id)
		for _, dx := range []int{-1, 1} {
			key := c.Y*w + c.X + dx
			if _, taken := g.buttons.Get(key); !taken && v.board.Contains(c.X+dx, c.Y) {
				g.buttons.Put(key, id)
			}
		}
	}

	g.drawToken(dst, v)

	start := v.clampToBoard(v.cell(p.Start.Sub(maze.Vec{X: 20, Y: 20})))
	dst.DrawTextColored(start.X, start.Y, "START", core.ColorWhite)
	goalLabel := v.clampToBoard(v.cell(maze.Vec{X: p.Goal.X + 10, Y: p.Goal.Y + p.Goal.H/2 + 5}))
	dst.DrawTextColored(goalLabel.X, goalLabel.Y, "GOAL", core.ColorBrightRed)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	dst.DrawTextColored(1, h-1, helpControls, core.ColorGray)
}

// drawToken fills every cell whose centre lies within the dango's radius,
// and always at least the cell holding its centre.
func (g *Game) drawToken(dst *core.Screen, v viewport) {
	p := g.state.Params
	pos := g.state.Token.Pos
	cellW := p.Bounds.W / float64(v.board.W)
	cellH := p.Bounds.H / float64(v.board.H)

	area := v.cellRect(maze.NewRect(pos.X-p.Radius, pos.Y-p.Radius, 2*p.Radius, 2*p.Radius))
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			cx := p.Bounds.X + (float64(x-v.board.X)+0.5)*cellW
			cy := p.Bounds.Y + (float64(y-v.board.Y)+0.5)*cellH
			if math.Hypot(cx-pos.X, cy-pos.Y) <= p.Radius {
				dst.SetColored(x, y, TokenChar, core.ColorBrightGreen)
			}
		}
	}
	c := v.clampToBoard(v.cell(pos))
	dst.SetColored(c.X, c.Y, TokenChar, core.ColorBrightGreen)
}

// drawHUD draws the timer and counters on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  |  Rotations: %d ", g.timer.String(), g.state.Rotations)
	if n := g.state.Obstacles.Len(); n > 0 {
		hud += fmt.Sprintf(" |  Bar %d/%d ", g.selected+1, n)
	}
	dst.DrawTextColored(1, 0, hud, core.ColorBrightYellow)
}

// drawCongratulations replaces the board once the goal is reached.
func (g *Game) drawCongratulations(dst *core.Screen) {
	g.drawCenteredMessage(dst, "Congratulations!",
		fmt.Sprintf("%s  |  R restart  Tab scores  Q quit", g.timer.String()))
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Min(core.Max(runeLen(title), runeLen(subtitle))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-runeLen(title))/2, boxY+1, title, core.ColorBrightGreen)
	dst.DrawTextColored(boxX+(boxW-runeLen(subtitle))/2, boxY+3, subtitle, core.ColorWhite)
}

// ButtonAt returns the bar whose button was drawn at the given screen cell in
// the last Render.
func (g *Game) ButtonAt(x, y int) (int, bool) {
	if g.buttons == nil || x < 0 || x >= g.buttonWidth || y < 0 {
		return 0, false
	}
	return g.buttons.Get(y*g.buttonWidth + x)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
