// Package dash implements Block Dash, an endless runner where the player
// jumps over blocks or dashes through them.
//
// Sim is the whole simulation: it owns the player, obstacles, particles and
// timers and advances them by a frame's elapsed time. It never reads a clock,
// so a run is fully determined by its seed, intents and frame times.
package dash

import (
	"errors"
	"math"
	"math/rand"

	"github.com/vovakirdan/blockdash/internal/config"
	"github.com/vovakirdan/blockdash/internal/core"
)

// ErrInvalidTransition is returned when a phase change is not allowed.
var ErrInvalidTransition = errors.New("dash: invalid phase transition")

// Default viewport, the world size of an 80x24 terminal.
const (
	DefaultViewportW = 800
	DefaultViewportH = 480
)

// Sim is the per-run game state and its transition functions.
type Sim struct {
	cfg  config.DashConfig
	seed int64
	rng  *rand.Rand

	viewW, viewH float64

	player    Player
	obstacles []Obstacle
	particles *particleSystem

	worldSpeed    float64
	distance      float64
	score         float64
	scroll        float64 // Total world scroll, for ground texture
	elapsed       float64 // Seconds of simulated time this run
	spawnTimer    float64
	spawnInterval float64
	spawned       int

	phase core.Phase
	best  int

	cues   CueSink
	keeper BestKeeper
}

// NewSim creates a simulation in the Idle phase. The best score is read from
// the keeper once; a failing keeper means a best of 0.
func NewSim(cfg config.DashConfig, opts ...Option) *Sim {
	s := &Sim{
		cfg:       cfg,
		viewW:     DefaultViewportW,
		viewH:     DefaultViewportH,
		obstacles: make([]Obstacle, 0, 16),
		cues:      nopCues{},
		keeper:    &memoryBest{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	s.particles = newParticleSystem(cfg.Particles, s.seed)

	if best, err := s.keeper.LoadBest(); err == nil && best > 0 {
		s.best = best
	}

	s.player = Player{
		X:           cfg.Player.X,
		W:           cfg.Player.Width,
		H:           cfg.Player.Height,
		JumpImpulse: cfg.Physics.JumpImpulse,
	}
	s.reset()
	s.phase = core.PhaseIdle
	return s
}

// Phase returns the current lifecycle phase.
func (s *Sim) Phase() core.Phase {
	return s.phase
}

// Start begins a run from Idle or Ended. Starting while Running is rejected.
func (s *Sim) Start() error {
	if s.phase == core.PhaseRunning {
		return ErrInvalidTransition
	}
	s.reset()
	s.phase = core.PhaseRunning
	return nil
}

// Restart resets all per-run state and enters Running from any phase.
func (s *Sim) Restart() {
	s.reset()
	s.phase = core.PhaseRunning
}

// Resize sets the viewport in world units. A grounded player follows the
// ground line; everything else keeps its absolute position.
func (s *Sim) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	s.viewW, s.viewH = w, h
	if s.player.Grounded {
		s.player.land(s.playerGround())
	}
}

// Viewport returns the viewport size in world units.
func (s *Sim) Viewport() (w, h float64) {
	return s.viewW, s.viewH
}

// GroundY is the world y of the ground surface.
func (s *Sim) GroundY() float64 {
	return s.viewH * s.cfg.World.GroundRatio
}

// playerGround is the player's y when standing on the ground.
func (s *Sim) playerGround() float64 {
	return s.GroundY() - s.player.H
}

// reset restores every per-run value. The player value is reused.
func (s *Sim) reset() {
	s.obstacles = s.obstacles[:0]
	s.particles.clear()

	p := &s.player
	p.land(s.playerGround())
	p.Dashing = false
	p.DashLeft = 0
	p.CooldownLeft = 0
	p.Invulnerable = false

	s.worldSpeed = s.cfg.World.BaseSpeed
	s.distance = 0
	s.score = 0
	s.scroll = 0
	s.elapsed = 0
	s.spawnInterval = s.cfg.Spawn.InitialInterval
	s.spawnTimer = s.cfg.Spawn.InitialDelay
	s.spawned = 0
}

// Jump launches the player. Only allowed while Running and grounded.
func (s *Sim) Jump() bool {
	if s.phase != core.PhaseRunning || !s.player.Grounded {
		return false
	}
	s.player.VY = s.player.JumpImpulse
	s.player.Grounded = false
	s.cues.Cue(CueJump)
	return true
}

// Dash starts a dash. Only allowed while Running and off cooldown. The
// world speed is multiplied by the burst factor until the dash expires.
func (s *Sim) Dash() bool {
	if s.phase != core.PhaseRunning || s.player.CooldownLeft > 0 {
		return false
	}
	p := &s.player
	p.Dashing = true
	p.Invulnerable = true
	p.DashLeft = s.cfg.Dash.Duration
	p.CooldownLeft = s.cfg.Dash.Cooldown
	s.worldSpeed *= s.cfg.Dash.SpeedFactor

	s.particles.burst(p.X, p.Y+p.H/2, core.ColorBrightGreen, s.cfg.Particles.DashCount)
	s.cues.Cue(CueDash)
	return true
}

// Update advances the run by dt seconds, clamped to the configured maximum.
// It returns true on the frame the run ends. Outside Running it does nothing.
func (s *Sim) Update(dt float64) bool {
	if s.phase != core.PhaseRunning {
		return false
	}
	dt = core.ClampF(dt, 0, s.cfg.Physics.MaxFrameDT)
	s.elapsed += dt

	s.player.integrate(dt, s.cfg.Physics.Gravity, s.playerGround())
	s.updateDash(dt)
	s.updateSpawn(dt)

	if s.updateObstacles(dt) {
		s.end()
		return true
	}

	s.particles.update(dt, s.cfg.Physics.Gravity*s.cfg.Physics.ParticleGravityScale)
	s.updateScore(dt)
	return false
}

func (s *Sim) updateDash(dt float64) {
	p := &s.player
	if p.CooldownLeft > 0 {
		p.CooldownLeft = math.Max(0, p.CooldownLeft-dt)
	}
	if !p.Dashing {
		return
	}
	p.DashLeft -= dt
	if p.DashLeft <= 0 {
		p.DashLeft = 0
		p.Dashing = false
		p.Invulnerable = false
		// Ramp accrued during the dash is kept, so this is not an exact inverse.
		s.worldSpeed /= s.cfg.Dash.SpeedFactor
	}
}

func (s *Sim) updateSpawn(dt float64) {
	sc := s.cfg.Spawn
	s.spawnTimer -= dt
	if s.spawnTimer > 0 {
		return
	}
	s.obstacles = spawnPattern(s.obstacles, s.rng, sc, s.viewW+sc.EdgeMargin)
	s.spawned++
	s.spawnTimer = s.spawnInterval * (sc.JitterMin + s.rng.Float64()*sc.JitterSpan)
	s.spawnInterval = math.Max(sc.MinInterval, s.spawnInterval-sc.IntervalStep)
}

// updateObstacles scrolls, culls and collides in spawn order. It reports a
// fatal hit; the obstacles after the hit are left untouched for the frame.
func (s *Sim) updateObstacles(dt float64) bool {
	shift := s.worldSpeed * dt
	groundY := s.GroundY()
	pr := s.player.Rect()

	kept := s.obstacles[:0]
	hit := false
	for _, o := range s.obstacles {
		if hit {
			kept = append(kept, o)
			continue
		}
		o.X -= shift
		if o.offscreen(s.cfg.Spawn.DespawnMargin) {
			continue
		}
		kept = append(kept, o)
		if !s.player.Invulnerable && pr.Intersects(o.Rect(groundY)) {
			hit = true
		}
	}
	s.obstacles = kept
	return hit
}

func (s *Sim) updateScore(dt float64) {
	w := s.cfg.World
	travelled := s.worldSpeed * dt
	s.scroll += travelled
	s.distance += travelled * w.DistanceScale
	s.score += travelled * w.ScoreScale
	if s.distance > w.RampThreshold {
		s.worldSpeed += w.RampRate * dt
	}
}

// end finishes the run after a fatal collision.
func (s *Sim) end() {
	cx, cy := s.player.Rect().Center()
	s.particles.burst(cx, cy, core.ColorBrightRed, s.cfg.Particles.DeathCount)

	s.phase = core.PhaseEnded
	if final := s.FinalScore(); final > s.best {
		s.best = final
		//nolint:errcheck // Persistence is best-effort; the run is already over
		s.keeper.SaveBest(final)
	}
	s.cues.Cue(CueDeath)
}

// FinalScore is the score floored to an integer.
func (s *Sim) FinalScore() int {
	return int(math.Floor(s.score))
}

// Best returns the best score known to this simulation.
func (s *Sim) Best() int {
	return s.best
}

// Player returns a copy of the player.
func (s *Sim) Player() Player {
	return s.player
}

// Obstacles returns a copy of the live obstacles.
func (s *Sim) Obstacles() []Obstacle {
	return append([]Obstacle(nil), s.obstacles...)
}

// ParticleCount returns the number of live particles.
func (s *Sim) ParticleCount() int {
	return s.particles.len()
}

// WorldSpeed returns the current scroll speed in world units per second.
func (s *Sim) WorldSpeed() float64 {
	return s.worldSpeed
}

// Distance returns the distance travelled this run.
func (s *Sim) Distance() float64 {
	return s.distance
}

// Score returns the unfloored score.
func (s *Sim) Score() float64 {
	return s.score
}

// SpawnInterval returns the current base spawn interval.
func (s *Sim) SpawnInterval() float64 {
	return s.spawnInterval
}

// Elapsed returns the simulated seconds of the current run.
func (s *Sim) Elapsed() float64 {
	return s.elapsed
}

// Spawned returns how many patterns were spawned this run.
func (s *Sim) Spawned() int {
	return s.spawned
}

// State summarizes the run for the platform.
func (s *Sim) State() core.GameState {
	return core.GameState{
		Score:    s.FinalScore(),
		Best:     s.best,
		Distance: s.distance,
		Phase:    s.phase,
	}
}
