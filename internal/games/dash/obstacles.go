package dash

import (
	"math/rand"

	"github.com/vovakirdan/blockdash/internal/config"
	"github.com/vovakirdan/blockdash/internal/core"
)

// ObstacleKind tags the pattern an obstacle was spawned from.
type ObstacleKind int

const (
	TallBlock ObstacleKind = iota
	LowBlock
	PairBlock
)

// String returns the kind name.
func (k ObstacleKind) String() string {
	switch k {
	case TallBlock:
		return "tall"
	case LowBlock:
		return "low"
	case PairBlock:
		return "pair"
	default:
		return "unknown"
	}
}

// Obstacle is a block standing on the ground line. X is its horizontal
// center.
type Obstacle struct {
	X    float64
	W, H float64
	Kind ObstacleKind
}

// Rect returns the collision box for a given ground line.
func (o Obstacle) Rect(groundY float64) core.RectF {
	return core.NewRectF(o.X-o.W/2, groundY-o.H, o.W, o.H)
}

// offscreen reports whether the obstacle has scrolled past the left margin.
func (o Obstacle) offscreen(margin float64) bool {
	return o.X+o.W < -margin
}

// spawnPattern appends one pattern at x, chosen by a weighted uniform draw.
// With the default weights the thresholds are 0.55 (tall) and 0.78 (low).
func spawnPattern(dst []Obstacle, rng *rand.Rand, cfg config.SpawnConfig, x float64) []Obstacle {
	total := cfg.Tall.Weight + cfg.Low.Weight + cfg.Pair.Weight
	r := rng.Float64() * total

	switch {
	case r < cfg.Tall.Weight:
		h := cfg.Tall.MinHeight + rng.Float64()*(cfg.Tall.MaxHeight-cfg.Tall.MinHeight)
		return append(dst, Obstacle{X: x, W: cfg.Tall.Width, H: h, Kind: TallBlock})
	case r < cfg.Tall.Weight+cfg.Low.Weight:
		return append(dst, Obstacle{X: x, W: cfg.Low.Width, H: cfg.Low.Height, Kind: LowBlock})
	default:
		p := cfg.Pair
		return append(dst,
			Obstacle{X: x, W: p.Width, H: p.Height, Kind: PairBlock},
			Obstacle{X: x + p.Gap, W: p.Width, H: p.Height, Kind: PairBlock},
		)
	}
}
