// Package core provides fundamental types and utilities for Block Dash.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an integer axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// RectF is a box in world units. Y grows downward, like the screen.
type RectF struct {
	X, Y float64
	W, H float64
}

// NewRectF creates a world-space rectangle.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r RectF) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects is the strict AABB overlap test. Boxes that only share an edge
// do not intersect.
func (r RectF) Intersects(other RectF) bool {
	return r.X < other.Right() && r.Right() > other.X &&
		r.Y < other.Bottom() && r.Bottom() > other.Y
}

// ToCells converts a world rectangle into screen cells given the world size
// of one cell. The result always covers at least one cell.
func (r RectF) ToCells(cellW, cellH float64) Rect {
	if cellW <= 0 || cellH <= 0 {
		return Rect{}
	}
	x := floorInt(r.X / cellW)
	y := floorInt(r.Y / cellH)
	right := ceilInt(r.Right() / cellW)
	bottom := ceilInt(r.Bottom() / cellH)
	return NewRect(x, y, Max(right-x, 1), Max(bottom-y, 1))
}

func floorInt(v float64) int {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return i
}

func ceilInt(v float64) int {
	i := int(v)
	if v > 0 && float64(i) != v {
		i++
	}
	return i
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
