// Package config provides YAML-based configuration loading and difficulty
// presets for Block Dash.
package config

import "time"

// DashConfig contains all tunables of the dash runner. World units are the
// pixels of the original canvas; the renderer maps them onto cells.
type DashConfig struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Dash      DashAbility     `yaml:"dash"`
	World     WorldConfig     `yaml:"world"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Particles ParticlesConfig `yaml:"particles"`
	Render    RenderConfig    `yaml:"render"`
	Audio     AudioConfig     `yaml:"audio"`
	Input     InputConfig     `yaml:"input"`
}

// PhysicsConfig defines gravity and frame-time limits.
type PhysicsConfig struct {
	Gravity              float64 `yaml:"gravity"`
	JumpImpulse          float64 `yaml:"jump_impulse"`
	ParticleGravityScale float64 `yaml:"particle_gravity_scale"`
	MaxFrameDT           float64 `yaml:"max_frame_dt"` // Seconds
}

// PlayerConfig defines the player block.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DashAbility defines the dash burst.
type DashAbility struct {
	Duration    float64 `yaml:"duration"` // Seconds
	Cooldown    float64 `yaml:"cooldown"` // Seconds
	SpeedFactor float64 `yaml:"speed_factor"`
}

// WorldConfig defines scrolling, scoring and the speed ramp.
type WorldConfig struct {
	BaseSpeed     float64 `yaml:"base_speed"`
	GroundRatio   float64 `yaml:"ground_ratio"` // Ground line as a fraction of viewport height
	DistanceScale float64 `yaml:"distance_scale"`
	ScoreScale    float64 `yaml:"score_scale"`
	RampThreshold float64 `yaml:"ramp_threshold"` // Distance after which the ramp applies
	RampRate      float64 `yaml:"ramp_rate"`      // Speed added per second
}

// SpawnConfig defines obstacle timing and patterns.
type SpawnConfig struct {
	InitialDelay    float64      `yaml:"initial_delay"`
	InitialInterval float64      `yaml:"initial_interval"`
	MinInterval     float64      `yaml:"min_interval"`
	IntervalStep    float64      `yaml:"interval_step"`
	JitterMin       float64      `yaml:"jitter_min"`
	JitterSpan      float64      `yaml:"jitter_span"`
	EdgeMargin      float64      `yaml:"edge_margin"`    // Spawn distance past the right edge
	DespawnMargin   float64      `yaml:"despawn_margin"` // Removal distance past the left edge
	Tall            TallPattern  `yaml:"tall"`
	Low             BlockPattern `yaml:"low"`
	Pair            PairPattern  `yaml:"pair"`
}

// TallPattern is a single block of random height.
type TallPattern struct {
	Weight    float64 `yaml:"weight"`
	Width     float64 `yaml:"width"`
	MinHeight float64 `yaml:"min_height"`
	MaxHeight float64 `yaml:"max_height"`
}

// BlockPattern is a single fixed-size block.
type BlockPattern struct {
	Weight float64 `yaml:"weight"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PairPattern is two fixed-size blocks separated by a gap.
type PairPattern struct {
	Weight float64 `yaml:"weight"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Gap    float64 `yaml:"gap"`
}

// ParticlesConfig defines particle bursts.
type ParticlesConfig struct {
	DeathCount int     `yaml:"death_count"`
	DashCount  int     `yaml:"dash_count"`
	Spread     float64 `yaml:"spread"`
	LifeMin    float64 `yaml:"life_min"`
	LifeSpan   float64 `yaml:"life_span"`
}

// RenderConfig maps world units onto terminal cells.
type RenderConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// AudioConfig defines the cue synthesizer.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Master     float64 `yaml:"master_volume"`
	Jump       CueTone `yaml:"jump"`
	Dash       CueTone `yaml:"dash"`
	Death      CueTone `yaml:"death"`
}

// CueTone is the parameter set of one sound cue.
type CueTone struct {
	Frequency float64       `yaml:"frequency"`
	Duration  time.Duration `yaml:"duration"`
	Wave      string        `yaml:"wave"` // sine, triangle, square, saw
	Volume    float64       `yaml:"volume"`
}

// InputConfig defines pointer gesture thresholds.
type InputConfig struct {
	SwipeMaxDuration time.Duration `yaml:"swipe_max_duration"`
	SwipeMinDistance float64       `yaml:"swipe_min_distance"` // World units
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)
