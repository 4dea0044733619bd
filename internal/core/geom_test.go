package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %f, expected 1", got)
	}
}

func TestRemap(t *testing.T) {
	tests := []struct {
		v, inLo, inHi float64
		outLo, outHi  int
		expected      int
	}{
		{400, 400, 950, 2, 22, 2},
		{950, 400, 950, 2, 22, 22},
		{675, 400, 950, 2, 22, 12},
		{5, 5, 5, 3, 9, 3},
	}

	for _, tc := range tests {
		if got := Remap(tc.v, tc.inLo, tc.inHi, tc.outLo, tc.outHi); got != tc.expected {
			t.Errorf("Remap(%v) = %d, expected %d", tc.v, got, tc.expected)
		}
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	f.Set(ActionSwing)

	if !f.Has(ActionSwing) {
		t.Error("Has(ActionSwing) should be true after Set")
	}
	f.Clear()
	if f.Has(ActionSwing) {
		t.Error("Clear() should reset actions")
	}
	if ActionSwing.String() != "Swing" {
		t.Errorf("String() = %q", ActionSwing.String())
	}
}

func TestTickMillis(t *testing.T) {
	if got := (RuntimeConfig{TickRate: 50}).TickMillis(); got != 20 {
		t.Errorf("TickMillis() = %f, expected 20", got)
	}
	if got := (RuntimeConfig{}).TickMillis(); got < 16.6 || got > 16.7 {
		t.Errorf("TickMillis() with zero rate = %f, expected 60fps fallback", got)
	}
}
