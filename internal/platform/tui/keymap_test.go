package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockdash/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"w", runeKey('w'), core.ActionJump},
		{"space", runeKey(' '), core.ActionDash},
		{"d", runeKey('d'), core.ActionDash},
		{"shift+right", tea.KeyMsg{Type: tea.KeyShiftRight}, core.ActionDash},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart},
		{"r", runeKey('r'), core.ActionRestart},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionNone},
		{"x", runeKey('x'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	keys := DefaultKeyMap()

	if !key.Matches(tea.KeyMsg{Type: tea.KeyTab}, keys.Scores) {
		t.Error("tab should open the scoreboard")
	}
	if len(keys.ShortHelp()) == 0 {
		t.Error("short help is empty")
	}
	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total != 7 {
		t.Errorf("full help lists %d bindings, expected 7", total)
	}
}
