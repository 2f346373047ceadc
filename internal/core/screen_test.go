package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	if got := s.String(); strings.Trim(got, " \n") != "" {
		t.Errorf("new screen should be blank, got %q", got)
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 5)
	s.SetColored(3, 2, '▓', ColorBrightRed)

	c := s.GetCell(3, 2)
	if c.Rune != '▓' || c.Color != ColorBrightRed {
		t.Errorf("GetCell(3, 2) = %+v, expected ▓ in bright red", c)
	}

	// Out of bounds writes are ignored and reads are blank.
	s.Set(-1, 0, 'A')
	s.Set(10, 0, 'A')
	s.Set(0, 5, 'A')
	if got := s.GetCell(-1, 0); got != blankCell {
		t.Errorf("GetCell out of bounds = %+v, expected blank", got)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.Fill('#')
	s.Clear()

	if s.String() != "    \n    " {
		t.Errorf("Clear() left %q", s.String())
	}
	if s.GetCell(0, 0).Color != ColorDefault {
		t.Error("Clear() should reset colours")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(8, 1)
	s.DrawTextColored(5, 0, "♪ 50%", ColorGray)

	if got := s.Row(0); got != "     ♪ 5" {
		t.Errorf("Row(0) = %q, expected clipped text", got)
	}
	if s.GetCell(5, 0).Color != ColorGray {
		t.Error("text should carry its colour")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "★ABC")

	// Rune width, not byte length, decides the position.
	if got := s.Row(0); got != "   ★ABC    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3))

	expected := "┌──┐\n│  │\n└──┘"
	if s.String() != expected {
		t.Errorf("DrawBox() =\n%s\nexpected\n%s", s.String(), expected)
	}

	// Degenerate boxes draw nothing.
	s.Clear()
	s.DrawBox(NewRect(0, 0, 1, 3))
	if strings.TrimSpace(s.String()) != "" {
		t.Error("1-wide box should not be drawn")
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(5, 3)
	s.FillRect(NewRect(1, 1, 3, 1), '=', ColorMagenta)

	if got := s.Row(1); got != " === " {
		t.Errorf("Row(1) = %q", got)
	}
	if s.GetCell(2, 1).Color != ColorMagenta {
		t.Error("FillRect should colour the cells")
	}
}

func TestScreenLines(t *testing.T) {
	s := NewScreen(3, 3)
	s.DrawHLine(0, 0, 3, '─')
	s.DrawVLine(2, 0, 3, '│')

	expected := "──│\n  │\n  │"
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")

	s.Resize(4, 2)
	if s.Row(0) != "Hell" {
		t.Errorf("shrinking should keep the top-left corner, row 0 = %q", s.Row(0))
	}

	s.Resize(8, 3)
	if s.Row(0) != "Hell    " || s.Row(2) != "        " {
		t.Errorf("growing should pad with blanks, got %q", s.String())
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, expected blanks", got)
	}
}
