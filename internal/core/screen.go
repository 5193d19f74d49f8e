package core

import (
	"strings"
)

// Cell is one character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a 2D cell buffer for rendering game graphics.
// It decouples game rendering from the terminal, allowing games to draw
// using simple rune operations while the platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  Max(width, 0),
		height: Max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = Max(width, 0), Max(height, 0)
	if width == s.width && height == s.height {
		return
	}

	old := s.cells
	copyW := Min(s.width, width)
	copyH := Min(s.height, height)

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], old[y][:copyW])
	}
}

// Clear fills the entire screen with blank cells.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blankCell
		}
	}
}

// Set places a rune with the default color.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColor(x, y, r, ColorDefault)
}

// SetColor places a colored rune. Out-of-bounds coordinates are ignored.
func (s *Screen) SetColor(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position, or space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position, or a blank cell when out
// of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blankCell
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor writes a colored string horizontally starting at (x, y).
// Characters beyond the screen bounds are clipped.
func (s *Screen) DrawTextColor(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetColor(x+i, y, r, c)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawTextColor(x, y, text, c)
}

// DrawRect fills a rectangular area with the given rune and color.
func (s *Screen) DrawRect(r Rect, fill rune, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetColor(x, y, fill, c)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	s.SetColor(r.X, r.Y, '┌', c)
	s.SetColor(r.Right()-1, r.Y, '┐', c)
	s.SetColor(r.X, r.Bottom()-1, '└', c)
	s.SetColor(r.Right()-1, r.Bottom()-1, '┘', c)

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.SetColor(x, r.Y, '─', c)
		s.SetColor(x, r.Bottom()-1, '─', c)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.SetColor(r.X, y, '│', c)
		s.SetColor(r.Right()-1, y, '│', c)
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (s *Screen) DrawHLine(x, y, length int, r rune, c Color) {
	for i := 0; i < length; i++ {
		s.SetColor(x+i, y, r, c)
	}
}

// String converts the screen buffer to plain text, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
