package dash

import (
	"cmp"
	"math"
	"slices"

	"github.com/vovakirdan/blockdash/internal/config"
	"github.com/vovakirdan/blockdash/internal/core"
)

// Autopilot is a deterministic bot that picks an intent from a snapshot.
// It jumps when the next cluster of blocks can be cleared and dashes through
// it otherwise.
type Autopilot struct {
	Gravity      float64
	JumpImpulse  float64
	ClusterGap   float64 // Blocks closer than this are cleared in one jump
	HeightMargin float64 // Extra clearance over the tallest block
	JumpMargin   float64 // Seconds of slack before the last moment to jump
	DashLead     float64 // Seconds before contact to trigger a dash
}

// NewAutopilot creates a bot tuned to cfg's physics.
func NewAutopilot(cfg config.DashConfig) *Autopilot {
	return &Autopilot{
		Gravity:      cfg.Physics.Gravity,
		JumpImpulse:  cfg.Physics.JumpImpulse,
		ClusterGap:   80,
		HeightMargin: 8,
		JumpMargin:   0.02,
		DashLead:     0.04,
	}
}

// Decide returns ActionJump, ActionDash or ActionNone for this frame.
func (a *Autopilot) Decide(snap Snapshot) core.Action {
	if snap.Phase != core.PhaseRunning || snap.WorldSpeed <= 0 {
		return core.ActionNone
	}
	p := snap.Player
	left, right, top, ok := a.nextCluster(snap.Obstacles, p.Rect.X)
	if !ok {
		return core.ActionNone
	}

	v := snap.WorldSpeed
	ttc := math.Max(0, (left-p.Rect.Right())/v)

	if p.Grounded {
		if t1, t2, ok := a.clearWindow(snap.GroundY - top + a.HeightMargin); ok {
			latest := t2 - (right-left+p.Rect.W)/v - a.JumpMargin
			if latest >= t1 && ttc >= t1 {
				if ttc <= latest {
					return core.ActionJump
				}
				return core.ActionNone
			}
		}
	}

	if p.DashReady() && ttc <= a.DashLead && p.Rect.Bottom() > top {
		return core.ActionDash
	}
	return core.ActionNone
}

// nextCluster finds the nearest group of blocks ahead of x and returns its
// horizontal extent and the y of its highest top.
func (a *Autopilot) nextCluster(obstacles []ObstacleView, x float64) (left, right, top float64, ok bool) {
	ahead := make([]core.RectF, 0, len(obstacles))
	for _, o := range obstacles {
		if o.Rect.Right() > x {
			ahead = append(ahead, o.Rect)
		}
	}
	if len(ahead) == 0 {
		return 0, 0, 0, false
	}
	slices.SortFunc(ahead, func(p, q core.RectF) int { return cmp.Compare(p.X, q.X) })

	left, right, top = ahead[0].X, ahead[0].Right(), ahead[0].Y
	for _, r := range ahead[1:] {
		if r.X-right >= a.ClusterGap {
			break
		}
		right = math.Max(right, r.Right())
		top = math.Min(top, r.Y)
	}
	return left, right, top, true
}

// clearWindow returns the interval after takeoff during which the player's
// feet are at least h above the ground.
func (a *Autopilot) clearWindow(h float64) (t1, t2 float64, ok bool) {
	disc := a.JumpImpulse*a.JumpImpulse - 2*a.Gravity*h
	if disc < 0 || a.Gravity <= 0 {
		return 0, 0, false
	}
	root := math.Sqrt(disc)
	return (-a.JumpImpulse - root) / a.Gravity, (-a.JumpImpulse + root) / a.Gravity, true
}

// RunSummary describes a run played by the autopilot.
type RunSummary struct {
	Frames   int
	Jumps    int
	Dashes   int
	Elapsed  float64 // Simulated seconds
	Score    int
	Best     int
	Distance float64
	Spawned  int
	Ended    bool // False when the frame budget ran out first
}

// Drive starts a run on g if none is active and plays it for at most frames
// frames of dt seconds. g must have been Reset.
func (a *Autopilot) Drive(g *Game, frames int, dt float64) RunSummary {
	if g.State().Phase != core.PhaseRunning {
		g.Handle(core.ActionStart)
	}

	var sum RunSummary
	for sum.Frames < frames {
		switch act := a.Decide(g.Snapshot()); act {
		case core.ActionJump:
			if g.Handle(act) {
				sum.Jumps++
			}
		case core.ActionDash:
			if g.Handle(act) {
				sum.Dashes++
			}
		}

		res := g.Advance(dt)
		sum.Frames++
		if res.Ended {
			sum.Ended = true
			break
		}
	}

	sim := g.Sim()
	sum.Elapsed = sim.Elapsed()
	sum.Score = sim.FinalScore()
	sum.Best = sim.Best()
	sum.Distance = sim.Distance()
	sum.Spawned = sim.Spawned()
	return sum
}
