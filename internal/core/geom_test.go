package core

import "testing"

func TestWrapAxis(t *testing.T) {
	tests := []struct {
		name     string
		v, size  int
		expected int
	}{
		{"inside", 5, 20, 5},
		{"zero", 0, 20, 0},
		{"past right edge", 20, 20, 0},
		{"far past right edge", 45, 20, 5},
		{"one before left edge", -1, 20, 19},
		{"far before left edge", -41, 20, 19},
		{"zero size passthrough", 7, 0, 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := WrapAxis(tc.v, tc.size)
			if result != tc.expected {
				t.Errorf("WrapAxis(%d, %d) = %d, expected %d", tc.v, tc.size, result, tc.expected)
			}
		})
	}
}

func TestWrapPoint(t *testing.T) {
	tests := []struct {
		name     string
		p        Point
		expected Point
	}{
		{"right edge wraps to column zero", Point{X: 19, Y: 10}.Add(1, 0), Point{X: 0, Y: 10}},
		{"left edge wraps to last column", Point{X: 0, Y: 3}.Add(-1, 0), Point{X: 19, Y: 3}},
		{"top edge wraps to last row", Point{X: 4, Y: 0}.Add(0, -1), Point{X: 4, Y: 17}},
		{"bottom edge wraps to row zero", Point{X: 4, Y: 17}.Add(0, 1), Point{X: 4, Y: 0}},
		{"interior unchanged", Point{X: 7, Y: 7}, Point{X: 7, Y: 7}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := WrapPoint(tc.p, 20, 18)
			if result != tc.expected {
				t.Errorf("WrapPoint(%v) = %v, expected %v", tc.p, result, tc.expected)
			}
		})
	}
}

func TestTorusDelta(t *testing.T) {
	tests := []struct {
		name           string
		from, to, size int
		expected       int
	}{
		{"same cell", 3, 3, 20, 0},
		{"forward short", 3, 6, 20, 3},
		{"backward short", 6, 3, 20, -3},
		{"forward across seam", 18, 1, 20, 3},
		{"backward across seam", 1, 18, 20, -3},
		{"exact half is positive", 0, 10, 20, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := TorusDelta(tc.from, tc.to, tc.size)
			if result != tc.expected {
				t.Errorf("TorusDelta(%d, %d, %d) = %d, expected %d", tc.from, tc.to, tc.size, result, tc.expected)
			}
		})
	}
}

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
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
}
