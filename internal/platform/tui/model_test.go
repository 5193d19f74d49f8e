package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockdash/internal/config"
	"github.com/vovakirdan/blockdash/internal/core"
	"github.com/vovakirdan/blockdash/internal/games/dash"
	"github.com/vovakirdan/blockdash/internal/storage"
)

const frame = 16 * time.Millisecond

var epoch = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	cfg := config.DefaultDashConfig()
	m := NewModel(dash.NewGame(cfg), Options{
		Config:  cfg,
		Store:   store,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
	})
	m.now = func() time.Time { return epoch }
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

// runTicks advances n frames after the clock position at.
func runTicks(t *testing.T, m Model, at *time.Time, n int) Model {
	t.Helper()
	for range n {
		*at = at.Add(frame)
		m = send(t, m, TickMsg(*at))
	}
	return m
}

// runUntilOver ticks an idle runner into the first obstacle.
func runUntilOver(t *testing.T, m Model, at *time.Time) Model {
	t.Helper()
	for range 1000 {
		if m.State().GameOver() {
			return m
		}
		m = runTicks(t, m, at, 1)
	}
	t.Fatal("run never ended")
	return m
}

func TestModelStartsOnTitle(t *testing.T) {
	m := newTestModel(t, nil)
	if m.State().Phase != core.PhaseIdle {
		t.Fatalf("phase = %v, expected Idle", m.State().Phase)
	}
	if view := m.View(); !strings.Contains(view, "BLOCK DASH") {
		t.Errorf("title screen missing:\n%s", view)
	}
	if m.Init() == nil {
		t.Error("Init should start the frame clock")
	}
}

func TestModelRunAdvancesWithTicks(t *testing.T) {
	m := newTestModel(t, nil)
	at := epoch

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State().Phase != core.PhaseRunning {
		t.Fatalf("phase after enter = %v", m.State().Phase)
	}

	m = runTicks(t, m, &at, 10)
	if m.State().Distance <= 0 {
		t.Error("distance should grow while running")
	}

	before := m.State().Distance
	m = send(t, m, runeKey('r'))
	if m.State().Distance != before {
		t.Error("R should be ignored while running")
	}
}

func TestModelJumpAppliesImmediately(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.game.Sim().Player().Grounded {
		t.Error("jump should leave the ground before the next tick")
	}
}

func TestModelRecordsRunOnce(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, store)
	at := epoch

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = runUntilOver(t, m, &at)
	m = runTicks(t, m, &at, 30)

	runs, err := store.TopRuns(dash.GameID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(runs))
	}
	if runs[0].Score != m.State().Score || runs[0].Duration <= 0 {
		t.Errorf("recorded run = %+v, state = %+v", runs[0], m.State())
	}

	m = send(t, m, runeKey('r'))
	if m.State().Phase != core.PhaseRunning {
		t.Fatalf("R after game over should restart, phase %v", m.State().Phase)
	}
	m = runUntilOver(t, m, &at)
	m = runTicks(t, m, &at, 1)

	if stats, _ := store.Stats(dash.GameID); stats.RunsCount != 2 {
		t.Errorf("RunsCount = %d, expected 2", stats.RunsCount)
	}
}

func TestModelScoreboardToggle(t *testing.T) {
	m := newTestModel(t, openStore(t))
	at := epoch

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.ShowingScores() {
		t.Fatal("scoreboard must not open during a run")
	}

	m = runUntilOver(t, m, &at)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.ShowingScores() {
		t.Fatal("tab on game over should open the scoreboard")
	}
	if view := m.View(); !strings.Contains(view, "BEST RUNS") {
		t.Errorf("scoreboard view:\n%s", view)
	}

	// Keys go to the scoreboard while it is open
	m = send(t, m, runeKey('r'))
	if m.State().Phase != core.PhaseEnded {
		t.Error("R should not restart behind the scoreboard")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.ShowingScores() {
		t.Error("esc should close the scoreboard")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if view := next.View(); view != "" {
		t.Error("view after quit should be empty")
	}
}

func TestModelMouseGestures(t *testing.T) {
	m := newTestModel(t, nil)
	press := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	}
	release := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
	}

	// A tap on the title screen starts a run
	m = send(t, m, press(40, 10))
	m = send(t, m, release(40, 10))
	if m.State().Phase != core.PhaseRunning {
		t.Fatalf("tap should start the run, phase %v", m.State().Phase)
	}

	// Four rows up is 80 world units, well past the swipe threshold
	m = send(t, m, press(40, 12))
	m = send(t, m, release(40, 8))
	if m.game.Sim().Player().Grounded {
		t.Error("swipe up should jump")
	}

	m = send(t, m, press(40, 10))
	m = send(t, m, release(40, 10))
	if !m.game.Sim().Player().Dashing {
		t.Error("tap during a run should dash")
	}
}

func TestModelOtherButtonCancelsGesture(t *testing.T) {
	m := newTestModel(t, nil)

	m = send(t, m, tea.MouseMsg{X: 40, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = send(t, m, tea.MouseMsg{X: 40, Y: 10, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	m = send(t, m, tea.MouseMsg{X: 40, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	if m.State().Phase != core.PhaseIdle {
		t.Errorf("cancelled gesture should not start a run, phase %v", m.State().Phase)
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m := newTestModel(t, nil)
	at := epoch
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = runTicks(t, m, &at, 5)
	before := m.State().Distance

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if w, h := m.game.Sim().Viewport(); w != 1000 || h != 600 {
		t.Errorf("viewport = %vx%v, expected 1000x600", w, h)
	}
	if m.State().Phase != core.PhaseRunning || m.State().Distance != before {
		t.Error("resize should not reset the run")
	}
	if lines := strings.Count(m.View(), "\n") + 1; lines != 30 {
		t.Errorf("view has %d lines, expected 30", lines)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 2)
	s.DrawTextColor(2, 0, "Score", core.ColorYellow)
	s.DrawTextColor(2, 1, "Best", core.ColorDarkGray)

	out := RenderScreen(s)
	for _, want := range []string{"Score", "Best"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q", want)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}
