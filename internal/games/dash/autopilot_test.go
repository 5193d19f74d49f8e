package dash

import (
	"math"
	"testing"

	"github.com/vovakirdan/blockdash/internal/config"
	"github.com/vovakirdan/blockdash/internal/core"
)

const testGroundY = 480 * 0.68

// runnerAt builds a running snapshot with the player grounded at the default
// position and blocks whose left edges sit ttc seconds ahead at 420 u/s.
func runnerAt(blocks ...ObstacleView) Snapshot {
	return Snapshot{
		Phase:      core.PhaseRunning,
		GroundY:    testGroundY,
		WorldSpeed: 420,
		Player: PlayerView{
			Rect:     core.NewRectF(140, testGroundY-46, 46, 46),
			Grounded: true,
		},
		Obstacles: blocks,
	}
}

func blockAhead(ttc, w, h float64) ObstacleView {
	return ObstacleView{Kind: TallBlock, Rect: core.NewRectF(186+ttc*420, testGroundY-h, w, h)}
}

func TestAutopilotDecide(t *testing.T) {
	pair := func(ttc float64) []ObstacleView {
		first := blockAhead(ttc, 44, 40)
		second := first
		second.Rect.X += 120
		return []ObstacleView{first, second}
	}

	tests := []struct {
		name   string
		snap   Snapshot
		expect core.Action
	}{
		{"nothing ahead", runnerAt(), core.ActionNone},
		{"tall block far away", runnerAt(blockAhead(0.3, 52, 100)), core.ActionNone},
		{"tall block in jump window", runnerAt(blockAhead(0.2, 52, 100)), core.ActionJump},
		{"too tall, still far", runnerAt(blockAhead(0.2, 52, 200)), core.ActionNone},
		{"too tall, contact imminent", runnerAt(blockAhead(0.03, 52, 200)), core.ActionDash},
		{"pair not yet", runnerAt(pair(0.12)...), core.ActionNone},
		{"pair in window", runnerAt(pair(0.08)...), core.ActionJump},
		{"block behind player", runnerAt(ObstacleView{Rect: core.NewRectF(20, testGroundY-100, 52, 100)}), core.ActionNone},
	}

	ap := NewAutopilot(config.DefaultDashConfig())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ap.Decide(tc.snap); got != tc.expect {
				t.Errorf("Decide() = %s, expected %s", got, tc.expect)
			}
		})
	}
}

func TestAutopilotRespectsState(t *testing.T) {
	ap := NewAutopilot(config.DefaultDashConfig())

	idle := runnerAt(blockAhead(0.03, 52, 200))
	idle.Phase = core.PhaseIdle
	if got := ap.Decide(idle); got != core.ActionNone {
		t.Errorf("Decide() while Idle = %s", got)
	}

	cooling := runnerAt(blockAhead(0.03, 52, 200))
	cooling.Player.CooldownLeft = 0.5
	if got := ap.Decide(cooling); got != core.ActionNone {
		t.Errorf("Decide() on cooldown = %s", got)
	}

	// Airborne above the block top: nothing to do.
	airborne := runnerAt(blockAhead(0.03, 52, 40))
	airborne.Player.Grounded = false
	airborne.Player.Rect.Y -= 60
	if got := ap.Decide(airborne); got != core.ActionNone {
		t.Errorf("Decide() above the block = %s", got)
	}
}

func TestAutopilotOutlastsIdleRunner(t *testing.T) {
	run := func(ap *Autopilot) float64 {
		s := startedSim(t, config.DefaultDashConfig(), WithSeed(2024))
		for i := 0; i < 60*60; i++ {
			if ap != nil {
				switch ap.Decide(s.Snapshot()) {
				case core.ActionJump:
					s.Jump()
				case core.ActionDash:
					s.Dash()
				}
			}
			if s.Update(1.0 / 60) {
				break
			}
		}
		return s.Distance()
	}

	idle := run(nil)
	bot := run(NewAutopilot(config.DefaultDashConfig()))
	if bot <= idle {
		t.Errorf("autopilot distance %.3f, idle runner %.3f", bot, idle)
	}
}

func TestAutopilotDrive(t *testing.T) {
	cfg := config.DefaultDashConfig()
	play := func(frames int) RunSummary {
		g := NewGame(cfg)
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 7})
		return NewAutopilot(cfg).Drive(g, frames, 1.0/60)
	}

	short := play(10)
	if short.Frames != 10 || short.Ended {
		t.Errorf("10-frame budget: %+v", short)
	}
	if math.Abs(short.Elapsed-10.0/60) > 1e-9 {
		t.Errorf("Elapsed = %f, expected %f", short.Elapsed, 10.0/60)
	}

	a, b := play(60*60), play(60*60)
	if a != b {
		t.Errorf("same seed gave different runs:\n%+v\n%+v", a, b)
	}
	if a.Jumps+a.Dashes == 0 || a.Spawned == 0 {
		t.Errorf("bot never acted: %+v", a)
	}
	if a.Ended && a.Best != a.Score {
		t.Errorf("best %d should match the first ended run's score %d", a.Best, a.Score)
	}
}
