package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "blockdash.yaml"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// LoadDash loads the runner configuration.
// Search order: customPath -> ~/.blockdash/configs/blockdash.yaml ->
// ./configs/blockdash.yaml -> embedded default.
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names. Only a failing customPath is an error; unreadable or
// broken files in the other locations are skipped.
func LoadDash(customPath string) (DashConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DashConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DashConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultDashYAML)
	if err != nil {
		return DefaultDashConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (DashConfig, error) {
	cfg := DefaultDashConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DashConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return DashConfig{}, err
	}
	return cfg, nil
}

func searchPaths() []string {
	paths := make([]string, 0, 2)
	if p := userConfigPath(ConfigFile); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", ConfigFile))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockdash", "configs", filename)
}

// Validate checks the values the simulation relies on.
func (c DashConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.JumpImpulse < 0, "physics.jump_impulse must be negative (upward), got %v", c.Physics.JumpImpulse)
	check(c.Physics.MaxFrameDT > 0, "physics.max_frame_dt must be positive, got %v", c.Physics.MaxFrameDT)
	check(c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive, got %vx%v", c.Player.Width, c.Player.Height)
	check(c.Dash.Duration > 0, "dash.duration must be positive, got %v", c.Dash.Duration)
	check(c.Dash.Cooldown >= c.Dash.Duration, "dash.cooldown %v shorter than dash.duration %v", c.Dash.Cooldown, c.Dash.Duration)
	check(c.Dash.SpeedFactor > 0, "dash.speed_factor must be positive, got %v", c.Dash.SpeedFactor)
	check(c.World.BaseSpeed > 0, "world.base_speed must be positive, got %v", c.World.BaseSpeed)
	check(c.World.GroundRatio > 0 && c.World.GroundRatio <= 1, "world.ground_ratio must be in (0, 1], got %v", c.World.GroundRatio)
	check(c.Spawn.MinInterval >= MinSpawnFloor, "spawn.min_interval must be at least %v, got %v", MinSpawnFloor, c.Spawn.MinInterval)
	check(c.Spawn.InitialInterval >= c.Spawn.MinInterval, "spawn.initial_interval %v below spawn.min_interval %v", c.Spawn.InitialInterval, c.Spawn.MinInterval)
	check(c.Spawn.IntervalStep >= 0, "spawn.interval_step must not be negative, got %v", c.Spawn.IntervalStep)
	check(c.Spawn.JitterMin > 0 && c.Spawn.JitterSpan >= 0, "spawn jitter must be positive, got %v+%v", c.Spawn.JitterMin, c.Spawn.JitterSpan)
	check(c.Spawn.Tall.MaxHeight >= c.Spawn.Tall.MinHeight, "spawn.tall height range inverted: %v..%v", c.Spawn.Tall.MinHeight, c.Spawn.Tall.MaxHeight)

	weights := []float64{c.Spawn.Tall.Weight, c.Spawn.Low.Weight, c.Spawn.Pair.Weight}
	total := 0.0
	for _, w := range weights {
		check(w >= 0, "spawn pattern weight must not be negative, got %v", w)
		total += w
	}
	check(total > 0, "spawn pattern weights must sum to a positive value")

	check(c.Render.CellWidth > 0 && c.Render.CellHeight > 0, "render cell size must be positive, got %vx%v", c.Render.CellWidth, c.Render.CellHeight)
	check(c.Particles.DeathCount >= 0 && c.Particles.DashCount >= 0, "particle counts must not be negative")

	return errors.Join(errs...)
}
