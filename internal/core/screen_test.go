package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("dimensions = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColorAndBounds(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColor(5, 5, '█', ColorBlue)
	if c := s.GetCell(5, 5); c.Rune != '█' || c.Color != ColorBlue {
		t.Errorf("GetCell(5, 5) = %+v, expected blue block", c)
	}

	s.SetColor(-1, 0, 'A', ColorRed)
	s.SetColor(10, 0, 'A', ColorRed)
	s.SetColor(0, 10, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(100, 100) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColor(2, 1, "Skor: 12", ColorWhite)

	if !strings.HasPrefix(s.Row(1)[2:], "Skor: 12") {
		t.Errorf("row 1 = %q, expected text at x=2", s.Row(1))
	}
	if s.GetCell(2, 1).Color != ColorWhite {
		t.Error("text should carry its color")
	}

	// Clipped at the right edge
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorDefault)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("centered text not at x=%d: %q", x, s.Row(2))
	}
}

func TestScreenDrawRectAndLine(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '▓', ColorRed)
	s.DrawHLine(0, 8, 10, '═', ColorGray)

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if c := s.GetCell(x, y); c.Rune != '▓' || c.Color != ColorRed {
				t.Errorf("DrawRect cell (%d, %d) = %+v", x, y, c)
			}
		}
	}
	if s.Get(1, 1) != ' ' || s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
	if s.Row(8) != strings.Repeat("═", 10) {
		t.Errorf("DrawHLine row = %q", s.Row(8))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorDefault)

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges not drawn")
	}
}

func TestScreenStringAndResize(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	if got := s.String(); got != "AAAAA\nBBBBB\nCCCCC" {
		t.Errorf("String() = %q", got)
	}

	s.Resize(3, 2)
	if got := s.String(); got != "AAA\nBBB" {
		t.Errorf("after shrink String() = %q", got)
	}

	s.Resize(6, 3)
	if got := s.Row(0); got != "AAA   " {
		t.Errorf("after grow row 0 = %q", got)
	}
	if got := s.Row(-1); got != "      " {
		t.Errorf("out of bounds row = %q", got)
	}
}
