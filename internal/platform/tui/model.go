package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockdash/internal/config"
	"github.com/vovakirdan/blockdash/internal/core"
	"github.com/vovakirdan/blockdash/internal/games/dash"
	"github.com/vovakirdan/blockdash/internal/storage"
)

// Options configures a Model.
type Options struct {
	Config  config.DashConfig
	Store   *storage.Store // Optional; runs are not recorded without it
	Runtime core.RuntimeConfig
	Logger  *log.Logger
}

// Model is the Bubble Tea model for a Block Dash session.
type Model struct {
	game    *dash.Game
	screen  *core.Screen
	store   *storage.Store
	logger  *log.Logger
	keys    KeyMap
	gesture *core.GestureTracker
	config  core.RuntimeConfig

	cellW, cellH float64

	scores     ScoreboardModel
	showScores bool

	state    core.GameState
	lastTick time.Time
	recorded bool // Whether the current ended run was saved
	quitting bool

	now func() time.Time
}

// NewModel creates a model and resets the game onto its title screen.
func NewModel(game *dash.Game, opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	game.Reset(cfg)

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   opts.Store,
		logger:  logger,
		keys:    DefaultKeyMap(),
		gesture: core.NewGestureTracker(opts.Config.Input.SwipeMaxDuration, opts.Config.Input.SwipeMinDistance),
		config:  cfg,
		cellW:   opts.Config.Render.CellWidth,
		cellH:   opts.Config.Render.CellHeight,
		state:   game.State(),
		now:     time.Now,
	}
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showScores {
			return m.updateScores(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		if m.showScores {
			return m.updateScores(msg)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey applies an intent as soon as its key arrives.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil

	case key.Matches(msg, m.keys.Scores):
		if m.state.Phase != core.PhaseRunning {
			m.scores = NewScoreboardModel(m.store, m.game.ID(), m.config.ScreenW, m.config.ScreenH)
			m.showScores = true
		}
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
		return m, nil
	case core.ActionRestart:
		// R only acts on the game over screen
		if m.state.Phase != core.PhaseEnded {
			return m, nil
		}
	}

	m.apply(action)
	return m, nil
}

// handleMouse turns a press/release pair into a jump or a dash. Outside a
// run any completed gesture starts one.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showScores {
		return m, nil
	}

	x, y := float64(msg.X)*m.cellW, float64(msg.Y)*m.cellH
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.gesture.Begin(x, y, m.now())
	case msg.Action == tea.MouseActionPress:
		m.gesture.Cancel()
	case msg.Action == tea.MouseActionRelease:
		action := m.gesture.End(x, y, m.now())
		if action == core.ActionNone {
			return m, nil
		}
		if m.state.Phase != core.PhaseRunning {
			action = core.ActionStart
		}
		m.apply(action)
	}
	return m, nil
}

func (m *Model) apply(a core.Action) {
	m.game.Handle(a)
	m.state = m.game.State()
	if m.state.Phase == core.PhaseRunning {
		m.recorded = false
	}
}

func (m Model) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scores = sb
	}
	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.showScores = false
		return m, nil
	}
	return m, cmd
}

// handleTick advances the simulation by the time since the previous tick.
// The simulation clamps long frames.
func (m Model) handleTick(at time.Time) (tea.Model, tea.Cmd) {
	dt := 0.0
	if !m.lastTick.IsZero() {
		dt = at.Sub(m.lastTick).Seconds()
	}
	m.lastTick = at

	result := m.game.Advance(dt)
	m.state = result.State

	if m.state.GameOver() && !m.recorded {
		m.recordRun()
		m.recorded = true
	}

	return m, tickCmd(m.config.TickRate)
}

// recordRun stores the finished run. A failure is logged and play goes on.
func (m *Model) recordRun() {
	if m.store == nil {
		return
	}
	sim := m.game.Sim()
	run := storage.Run{
		GameID:   m.game.ID(),
		Score:    m.state.Score,
		Distance: m.state.Distance,
		Duration: time.Duration(sim.Elapsed() * float64(time.Second)),
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not record run", "err", err)
	}
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: screenshot: %w", err)
	}
	dir := filepath.Join(home, ".blockdash", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: screenshot: %w", err)
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), m.now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: screenshot: %w", err)
	}
	return path, nil
}

// State returns the game state after the last message.
func (m Model) State() core.GameState {
	return m.state
}

// ShowingScores reports whether the scoreboard is open.
func (m Model) ShowingScores() bool {
	return m.showScores
}

// View renders the current frame or the scoreboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scores.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts an interactive session in the current terminal.
func Run(game *dash.Game, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
