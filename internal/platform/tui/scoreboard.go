package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockdash/internal/storage"
)

const maxRuns = 50 // Runs loaded into the table

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/tab", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists the best runs of a game with its aggregate stats.
type ScoreboardModel struct {
	store     *storage.Store
	gameID    string
	runs      []storage.Run
	stats     *storage.Stats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard and loads its rows. A nil store
// shows an empty board.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		store:  store,
		gameID: gameID,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Distance", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Title, stats, help and borders
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the top runs and stats for the board's game.
func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		if m.runs, m.loadErr = m.store.TopRuns(m.gameID, maxRuns); m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats(m.gameID)
		}
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%.1fm", r.Distance),
			formatDuration(r.Duration),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Runs returns the loaded runs, best first.
func (m ScoreboardModel) Runs() []storage.Run {
	return m.runs
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("BLOCK DASH - BEST RUNS", m.width)))
	b.WriteString("\n\n")

	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(statsStyle.Render(centerText(m.statsLine(), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	switch {
	case m.loadErr != nil:
		return "Scores unavailable: " + m.loadErr.Error()
	case m.stats == nil || m.stats.RunsCount == 0:
		return "No runs yet"
	}
	s := m.stats
	return fmt.Sprintf("Runs: %d  Best: %d  Avg: %.1f  Total: %.1fm  Last: %s",
		s.RunsCount, s.HighScore, s.AvgScore, s.TotalDistance, s.LastPlayed.Local().Format("Jan 02 15:04"))
}

func (m ScoreboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nPress Enter and dash your way onto the board!")
	}
	return m.table.View()
}

// IsGoingBack returns true if the user closed the scoreboard.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// formatDuration renders a run length as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// exitOnBack quits a standalone scoreboard when it is closed.
type exitOnBack struct {
	ScoreboardModel
}

func (m exitOnBack) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.ScoreboardModel.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.ScoreboardModel = sb
	}
	if m.IsGoingBack() {
		return m, tea.Quit
	}
	return m, cmd
}

// RunScoreboard shows the scoreboard as its own program.
func RunScoreboard(store *storage.Store, gameID string, width, height int) error {
	p := tea.NewProgram(
		exitOnBack{NewScoreboardModel(store, gameID, width, height)},
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
