package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'o', ColorRed)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'o' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red 'o'", cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawRect(NewRect(0, 0, 4, 3), 'X')
	s.Clear()

	if strings.ContainsRune(s.String(), 'X') {
		t.Error("Clear() should remove all content")
	}
}

func TestScreenDrawTextClipped(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(2, 0, "wicket")

	if got := s.Row(0); got != "  wic" {
		t.Errorf("Row(0) = %q, expected %q", got, "  wic")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "SIX", ColorGold)

	if got := s.Row(0); got != "    SIX    " {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(4, 0).Color != ColorGold {
		t.Error("centered text should keep its color")
	}
}

func TestScreenMessageBox(t *testing.T) {
	s := NewScreen(30, 9)
	s.DrawMessageBox([]string{"GAME OVER", "Score: 12"}, ColorWhite)

	out := s.String()
	for _, want := range []string{"GAME OVER", "Score: 12", "┌", "┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("message box missing %q:\n%s", want, out)
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Resize(20, 5)

	if s.Width() != 20 || s.Height() != 5 {
		t.Errorf("Resize() produced %dx%d, expected 20x5", s.Width(), s.Height())
	}
	if len(strings.Split(s.String(), "\n")) != 5 {
		t.Error("String() should produce one line per row")
	}
}
