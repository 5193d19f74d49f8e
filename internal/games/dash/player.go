package dash

import "github.com/vovakirdan/blockdash/internal/core"

// Player is the runner block. X never changes during a run.
type Player struct {
	X, Y         float64
	W, H         float64
	VY           float64
	Grounded     bool
	JumpImpulse  float64
	Dashing      bool
	DashLeft     float64 // Seconds of the current dash remaining
	CooldownLeft float64 // Seconds until the next dash is allowed
	Invulnerable bool    // True exactly while dashing
}

// Rect returns the player's bounding box in world units.
func (p Player) Rect() core.RectF {
	return core.NewRectF(p.X, p.Y, p.W, p.H)
}

// land puts the player on the ground line.
func (p *Player) land(groundLine float64) {
	p.Y = groundLine
	p.VY = 0
	p.Grounded = true
}

// integrate applies gravity while airborne and lands on the ground line.
func (p *Player) integrate(dt, gravity, groundLine float64) {
	if p.Grounded {
		return
	}
	p.VY += gravity * dt
	p.Y += p.VY * dt
	if p.Y >= groundLine {
		p.land(groundLine)
	}
}
