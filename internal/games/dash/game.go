package dash

import (
	"github.com/vovakirdan/blockdash/internal/config"
	"github.com/vovakirdan/blockdash/internal/core"
)

// GameID is the key under which runs and the best score are stored.
const GameID = "blockdash"

// Game wires a Sim to the platform. The terminal screen is mapped onto the
// world through the configured cell scale.
type Game struct {
	cfg     config.DashConfig
	opts    []Option
	sim     *Sim
	runtime core.RuntimeConfig
}

// NewGame creates a game adapter. Options are forwarded to the simulation
// each time it is rebuilt by Reset.
func NewGame(cfg config.DashConfig, opts ...Option) *Game {
	return &Game{cfg: cfg, opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Block Dash"
}

// Reset rebuilds the simulation for a screen and seed. The game is left on
// the title screen.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt
	w, h := g.viewport(rt.ScreenW, rt.ScreenH)

	opts := append([]Option{}, g.opts...)
	opts = append(opts, WithSeed(rt.Seed), WithViewport(w, h))
	g.sim = NewSim(g.cfg, opts...)
}

func (g *Game) viewport(cols, rows int) (float64, float64) {
	return float64(cols) * g.cfg.Render.CellWidth, float64(rows) * g.cfg.Render.CellHeight
}

// Sim returns the underlying simulation. Reset must have been called.
func (g *Game) Sim() *Sim {
	return g.sim
}

// Handle applies one intent immediately and reports whether it changed the
// game.
func (g *Game) Handle(a core.Action) bool {
	switch a {
	case core.ActionJump:
		return g.sim.Jump()
	case core.ActionDash:
		return g.sim.Dash()
	case core.ActionStart, core.ActionConfirm:
		return g.sim.Start() == nil
	case core.ActionRestart:
		g.sim.Restart()
		return true
	default:
		return false
	}
}

// Step applies a frame's intents and then advances by dt. Restart and Start
// go first so a replay can begin a run and act on the same frame.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	for _, a := range []core.Action{
		core.ActionRestart, core.ActionStart, core.ActionConfirm,
		core.ActionJump, core.ActionDash,
	} {
		if in.Has(a) {
			g.Handle(a)
		}
	}
	return g.Advance(dt)
}

// Advance moves the simulation forward by dt seconds.
func (g *Game) Advance(dt float64) core.StepResult {
	ended := g.sim.Update(dt)
	return core.StepResult{State: g.sim.State(), Ended: ended}
}

// Resize adapts the viewport to a new terminal size without resetting the
// run.
func (g *Game) Resize(cols, rows int) {
	g.runtime.ScreenW, g.runtime.ScreenH = cols, rows
	g.sim.Resize(g.viewport(cols, rows))
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	Draw(dst, g.sim.Snapshot(), g.cfg.Render.CellWidth, g.cfg.Render.CellHeight)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.sim.State()
}

// Snapshot returns a copy of the current frame.
func (g *Game) Snapshot() Snapshot {
	return g.sim.Snapshot()
}
