// Package tui runs Block Dash in the terminal with Bubble Tea. It owns the
// frame clock, maps keys and mouse gestures to intents, records finished
// runs and serves the game over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per frame with the frame's timestamp.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after one frame
// interval.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
