package dash

import (
	"math/rand"

	"github.com/vovakirdan/blockdash/internal/config"
	"github.com/vovakirdan/blockdash/internal/core"
)

// Particle is a short-lived cosmetic spark.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // Seconds remaining
	Color  core.Color
}

// particleSeedMix separates the particle stream from the spawn stream.
const particleSeedMix = 0x5eed

// particleSystem owns all live particles of a run. It draws from its own RNG
// so bursts never shift obstacle spawning.
type particleSystem struct {
	cfg   config.ParticlesConfig
	rng   *rand.Rand
	items []Particle
}

func newParticleSystem(cfg config.ParticlesConfig, seed int64) *particleSystem {
	return &particleSystem{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed ^ particleSeedMix)),
		items: make([]Particle, 0, 32),
	}
}

// burst spawns n particles at (x, y). Velocities are biased upward.
func (ps *particleSystem) burst(x, y float64, color core.Color, n int) {
	rng := ps.rng
	spread := ps.cfg.Spread
	for i := 0; i < n; i++ {
		ps.items = append(ps.items, Particle{
			X:     x,
			Y:     y,
			VX:    (rng.Float64() - 0.5) * spread,
			VY:    (rng.Float64() - 1.5) * spread,
			Life:  ps.cfg.LifeMin + rng.Float64()*ps.cfg.LifeSpan,
			Color: color,
		})
	}
}

// update integrates every particle and drops the expired ones.
func (ps *particleSystem) update(dt, gravity float64) {
	alive := ps.items[:0]
	for _, p := range ps.items {
		p.VY += gravity * dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Life -= dt
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	ps.items = alive
}

func (ps *particleSystem) clear() {
	ps.items = ps.items[:0]
}

func (ps *particleSystem) len() int {
	return len(ps.items)
}

func (ps *particleSystem) snapshot() []Particle {
	return append([]Particle(nil), ps.items...)
}
