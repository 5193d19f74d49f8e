package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/blockdash.yaml
var defaultDashYAML []byte

// DefaultDashConfig returns the built-in configuration. It mirrors the
// embedded defaults/blockdash.yaml.
func DefaultDashConfig() DashConfig {
	return DashConfig{
		Physics: PhysicsConfig{
			Gravity:              2400,
			JumpImpulse:          -820,
			ParticleGravityScale: 0.9,
			MaxFrameDT:           0.05,
		},
		Player: PlayerConfig{
			X:      140,
			Width:  46,
			Height: 46,
		},
		Dash: DashAbility{
			Duration:    0.22,
			Cooldown:    1.1,
			SpeedFactor: 1.45,
		},
		World: WorldConfig{
			BaseSpeed:     420,
			GroundRatio:   0.68,
			DistanceScale: 0.001,
			ScoreScale:    0.02,
			RampThreshold: 1,
			RampRate:      0.2,
		},
		Spawn: SpawnConfig{
			InitialDelay:    0.6,
			InitialInterval: 0.9,
			MinInterval:     0.45,
			IntervalStep:    0.006,
			JitterMin:       0.7,
			JitterSpan:      0.8,
			EdgeMargin:      80,
			DespawnMargin:   120,
			Tall:            TallPattern{Weight: 0.55, Width: 52, MinHeight: 50, MaxHeight: 210},
			Low:             BlockPattern{Weight: 0.23, Width: 70, Height: 28},
			Pair:            PairPattern{Weight: 0.22, Width: 44, Height: 40, Gap: 120},
		},
		Particles: ParticlesConfig{
			DeathCount: 16,
			DashCount:  8,
			Spread:     420,
			LifeMin:    0.45,
			LifeSpan:   0.45,
		},
		Render: RenderConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Master:     1.0,
			Jump:       CueTone{Frequency: 880, Duration: 80 * time.Millisecond, Wave: "triangle", Volume: 0.06},
			Dash:       CueTone{Frequency: 1400, Duration: 90 * time.Millisecond, Wave: "square", Volume: 0.06},
			Death:      CueTone{Frequency: 160, Duration: 500 * time.Millisecond, Wave: "saw", Volume: 0.08},
		},
		Input: InputConfig{
			SwipeMaxDuration: 700 * time.Millisecond,
			SwipeMinDistance: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultDashYAML
}
