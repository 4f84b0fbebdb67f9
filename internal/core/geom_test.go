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
		{"last cell", 29, 24, true},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInner(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		expected Rect
	}{
		{"regular box", NewRect(2, 3, 22, 12), NewRect(3, 4, 20, 10)},
		{"border only", NewRect(0, 0, 2, 2), NewRect(1, 1, 0, 0)},
		{"degenerate", NewRect(0, 0, 1, 0), NewRect(1, 1, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Inner(); got != tc.expected {
				t.Errorf("Inner() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestCenterRect(t *testing.T) {
	tests := []struct {
		name     string
		areaW    int
		w        int
		expected int
	}{
		{"fits", 80, 22, 29},
		{"exact", 22, 22, 0},
		{"too wide", 10, 22, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := CenterRect(tc.areaW, 2, tc.w, 12)
			if r.X != tc.expected || r.Y != 2 || r.W != tc.w || r.H != 12 {
				t.Errorf("CenterRect(%d, 2, %d, 12) = %+v, expected X=%d", tc.areaW, tc.w, r, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMax(t *testing.T) {
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
}

func TestInputFrameFirst(t *testing.T) {
	f := NewInputFrame()
	if _, ok := f.First(ActionLeft, ActionDown); ok {
		t.Error("empty frame should report no action")
	}

	f.Set(ActionUp)
	f.Set(ActionDown)
	a, ok := f.First(ActionLeft, ActionDown, ActionUp, ActionRight)
	if !ok || a != ActionDown {
		t.Errorf("First() = %v, %v, expected Down by priority", a, ok)
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionUp) {
		t.Error("Clear should remove all actions")
	}
	if !clone.Has(ActionUp) {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionPause)
	if !zero.Has(ActionPause) {
		t.Error("Set on zero frame should allocate")
	}
}
