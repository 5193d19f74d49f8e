package config

import "fmt"

// MinSpawnFloor is the shortest spawn interval any configuration may reach.
const MinSpawnFloor = 0.45

// ParsePreset converts a flag value into a preset. The empty string means
// "keep the config as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalidConfig, s)
	}
}

// ApplyPreset scales speed and the spawn ramp for a preset. Normal leaves a
// valid configuration untouched. Every preset keeps the spawn floor; hard
// only reaches it sooner.
func ApplyPreset(cfg *DashConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.World.BaseSpeed *= 0.85
		cfg.World.RampRate *= 0.5
		cfg.Spawn.InitialInterval *= 1.15
		cfg.Spawn.MinInterval *= 1.25
		cfg.Spawn.IntervalStep *= 0.5
	case DifficultyHard:
		cfg.World.BaseSpeed *= 1.2
		cfg.World.RampRate *= 2
		cfg.Spawn.InitialInterval *= 0.9
		cfg.Spawn.IntervalStep *= 2
	}
	cfg.Spawn.MinInterval = max(cfg.Spawn.MinInterval, MinSpawnFloor)
}
