package core

import "testing"

func TestRectFIntersects(t *testing.T) {
	player := NewRectF(140, 280, 46, 46)

	tests := []struct {
		name     string
		other    RectF
		expected bool
	}{
		{"overlapping", NewRectF(160, 300, 52, 60), true},
		{"left of player", NewRectF(60, 280, 40, 46), false},
		{"touching right edge", NewRectF(186, 280, 40, 46), false},
		{"touching bottom edge", NewRectF(140, 326, 46, 10), false},
		{"sliver overlap", NewRectF(185.9, 325.9, 10, 10), true},
		{"contained", NewRectF(150, 290, 5, 5), true},
		{"above player", NewRectF(140, 100, 46, 50), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := player.Intersects(tc.other); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.other.Intersects(player); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectFToCells(t *testing.T) {
	tests := []struct {
		name     string
		r        RectF
		expected Rect
	}{
		{"aligned", NewRectF(100, 40, 50, 40), NewRect(10, 2, 5, 2)},
		{"partial cells round outward", NewRectF(105, 30, 46, 46), NewRect(10, 1, 6, 3)},
		{"tiny rect covers one cell", NewRectF(12, 12, 1, 1), NewRect(1, 0, 1, 1)},
		{"negative x", NewRectF(-15, 0, 10, 20), NewRect(-2, 0, 2, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.r.ToCells(10, 20)
			if got != tc.expected {
				t.Errorf("ToCells() = %+v, expected %+v", got, tc.expected)
			}
		})
	}

	if got := NewRectF(0, 0, 10, 10).ToCells(0, 20); got != (Rect{}) {
		t.Errorf("ToCells with zero cell size = %+v, expected empty", got)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{0.016, 0, 0.05, 0.016},
		{0.5, 0, 0.05, 0.05},
		{-1, 0, 0.05, 0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
