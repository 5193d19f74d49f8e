package core

import (
	"math"
	"time"
)

// Gesture thresholds used when no explicit ones are configured.
const (
	DefaultSwipeMaxDuration = 700 * time.Millisecond
	DefaultSwipeMinDistance = 30.0
)

// GestureTracker turns a pointer press/release pair into an intent.
// A quick release that travelled far enough is a swipe: upward swipes jump,
// every other swipe dashes. Anything else is a tap, which dashes.
type GestureTracker struct {
	MaxDuration time.Duration
	MinDistance float64

	active bool
	x, y   float64
	at     time.Time
}

// NewGestureTracker creates a tracker with the given thresholds. Zero values
// fall back to the defaults.
func NewGestureTracker(maxDuration time.Duration, minDistance float64) *GestureTracker {
	if maxDuration <= 0 {
		maxDuration = DefaultSwipeMaxDuration
	}
	if minDistance <= 0 {
		minDistance = DefaultSwipeMinDistance
	}
	return &GestureTracker{MaxDuration: maxDuration, MinDistance: minDistance}
}

// Begin records the press position.
func (g *GestureTracker) Begin(x, y float64, at time.Time) {
	g.active = true
	g.x, g.y = x, y
	g.at = at
}

// End classifies the gesture. Without a matching Begin it returns ActionNone.
func (g *GestureTracker) End(x, y float64, at time.Time) Action {
	if !g.active {
		return ActionNone
	}
	g.active = false

	dx := x - g.x
	dy := y - g.y
	absX, absY := math.Abs(dx), math.Abs(dy)

	swipe := at.Sub(g.at) < g.MaxDuration && math.Max(absX, absY) > g.MinDistance
	if swipe && absY > absX && dy < 0 {
		return ActionJump
	}
	return ActionDash
}

// Cancel drops any tracked press.
func (g *GestureTracker) Cancel() {
	g.active = false
}
