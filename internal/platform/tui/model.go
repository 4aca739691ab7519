package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dango-maze/internal/core"
	"github.com/vovakirdan/dango-maze/internal/registry"
	"github.com/vovakirdan/dango-maze/internal/storage"
)

// Result describes how a terminal session ended.
type Result struct {
	State   core.GameState
	Run     *storage.Run // Last run saved, nil if none
	SaveErr error        // Set when a finished run could not be stored
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	scoreboard *ScoreboardModel // Non-nil while the scoreboard is shown
	lastRun    *storage.Run
	saveErr    error
	quitting   bool
	runSaved   bool // Whether the run has been saved for the current win
}

// NewModel creates a new Bubble Tea model for the given game.
// store may be nil, in which case runs are not persisted.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tea.Batch(tickCmd(m.config.TickRate), timerCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.scoreboard == nil {
			m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case TimerMsg:
		if c, ok := m.game.(registry.Clocked); ok {
			c.Sample()
		}
		return m, timerCmd()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.scoreboard != nil {
		return m.updateScoreboard(msg)
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Tab after a win shows the fastest runs instead of selecting a bar.
	if action == core.ActionNext && m.gameState.Won {
		m.openScoreboard()
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// updateScoreboard forwards a message to the open scoreboard.
func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		return m, cmd
	}

	switch {
	case sb.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case sb.Closed():
		m.scoreboard = nil
	default:
		m.scoreboard = &sb
	}
	return m, cmd
}

// openScoreboard shows the fastest runs, selecting the run just finished.
func (m *Model) openScoreboard() {
	highlight := ""
	if m.lastRun != nil {
		highlight = m.lastRun.RunID
	}
	sb := NewScoreboardModel(m.store, m.game.ID(), m.game.Title(), highlight, m.config.ScreenW, m.config.ScreenH)
	sb.embedded = true
	m.scoreboard = &sb
}

// handleResize processes window resize events. The session keeps running;
// only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.scoreboard != nil {
		return m.updateScoreboard(msg)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.Won {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save the run once per win
	if m.gameState.Won && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the finished run. Failures are kept for the caller to
// report; the game continues regardless.
func (m *Model) saveRun() {
	if m.store == nil {
		return
	}

	seed := m.config.Seed
	if s, ok := m.game.(registry.Seeded); ok {
		if layoutSeed, seeded := s.LayoutSeed(); seeded {
			seed = layoutSeed
		} else {
			seed = 0
		}
	}

	run, err := m.store.SaveRun(storage.Run{
		GameID:    m.game.ID(),
		Elapsed:   m.gameState.Elapsed,
		Rotations: m.gameState.Rotations,
		Seed:      seed,
	})
	if err != nil {
		m.saveErr = err
		return
	}
	m.lastRun = &run
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".dango", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Result returns the outcome of the session so far.
func (m Model) Result() Result {
	return Result{State: m.gameState, Run: m.lastRun, SaveErr: m.saveErr}
}

// ShowingScoreboard reports whether the scoreboard replaces the board.
func (m Model) ShowingScoreboard() bool {
	return m.scoreboard != nil
}

// Run starts the Bubble Tea program with the given model and returns how the
// session ended.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (Result, error) {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks on rotate buttons
	)

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}

	fm, ok := final.(Model)
	if !ok {
		return Result{}, nil
	}
	return fm.Result(), nil
}
