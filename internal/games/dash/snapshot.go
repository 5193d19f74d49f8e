package dash

import "github.com/vovakirdan/blockdash/internal/core"

// PlayerView is the read-only player state a renderer needs.
type PlayerView struct {
	Rect             core.RectF
	Grounded         bool
	Dashing          bool
	Invulnerable     bool
	CooldownLeft     float64
	CooldownFraction float64 // 1 right after a dash, 0 when ready
}

// DashReady reports whether a dash would be accepted.
func (v PlayerView) DashReady() bool {
	return v.CooldownLeft <= 0
}

// ObstacleView is one obstacle in world space.
type ObstacleView struct {
	Kind ObstacleKind
	Rect core.RectF
}

// Snapshot is a value copy of everything drawable. It shares no memory with
// the simulation.
type Snapshot struct {
	ViewW, ViewH  float64
	GroundY       float64
	Player        PlayerView
	Obstacles     []ObstacleView
	Particles     []Particle
	Distance      float64
	Score         int
	RawScore      float64
	Best          int
	Phase         core.Phase
	WorldSpeed    float64
	SpawnInterval float64
	Elapsed       float64
	Scroll        float64
}

// Snapshot captures the current frame.
func (s *Sim) Snapshot() Snapshot {
	groundY := s.GroundY()
	obstacles := make([]ObstacleView, len(s.obstacles))
	for i, o := range s.obstacles {
		obstacles[i] = ObstacleView{Kind: o.Kind, Rect: o.Rect(groundY)}
	}

	p := s.player
	frac := 0.0
	if cd := s.cfg.Dash.Cooldown; cd > 0 {
		frac = core.ClampF(p.CooldownLeft/cd, 0, 1)
	}

	return Snapshot{
		ViewW:   s.viewW,
		ViewH:   s.viewH,
		GroundY: groundY,
		Player: PlayerView{
			Rect:             p.Rect(),
			Grounded:         p.Grounded,
			Dashing:          p.Dashing,
			Invulnerable:     p.Invulnerable,
			CooldownLeft:     p.CooldownLeft,
			CooldownFraction: frac,
		},
		Obstacles:     obstacles,
		Particles:     s.particles.snapshot(),
		Distance:      s.distance,
		Score:         s.FinalScore(),
		RawScore:      s.score,
		Best:          s.best,
		Phase:         s.phase,
		WorldSpeed:    s.worldSpeed,
		SpawnInterval: s.spawnInterval,
		Elapsed:       s.elapsed,
		Scroll:        s.scroll,
	}
}
