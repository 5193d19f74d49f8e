package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockdash/internal/core"
)

// KeyMap holds the key bindings for a run. Terminals cannot report a bare
// Shift press, so Shift+Right stands in for it.
type KeyMap struct {
	Jump       key.Binding
	Dash       key.Binding
	Start      key.Binding
	Restart    key.Binding
	Scores     key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("up/w", "jump"),
		),
		Dash: key.NewBinding(
			key.WithKeys(" ", "d", "shift+right"),
			key.WithHelp("space/d", "dash"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Dash, k.Start, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Dash},
		{k.Start, k.Restart, k.Scores},
		{k.Screenshot, k.Quit},
	}
}

// Action translates a key message into a game intent. Platform keys
// (scores, screenshot, quit) map to ActionNone except Quit.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Dash):
		return core.ActionDash
	case key.Matches(msg, k.Start):
		return core.ActionStart
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}
