// Package core provides fundamental types and utilities for the terminal platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Point represents a cell on a grid board.
type Point struct {
	X, Y int
}

// Add returns the point offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// WrapAxis maps v into [0, size) using Euclidean modulo.
// A non-positive size returns v unchanged.
func WrapAxis(v, size int) int {
	if size <= 0 {
		return v
	}
	m := v % size
	if m < 0 {
		m += size
	}
	return m
}

// WrapPoint wraps both coordinates of p onto a w×h torus.
func WrapPoint(p Point, w, h int) Point {
	return Point{X: WrapAxis(p.X, w), Y: WrapAxis(p.Y, h)}
}

// TorusDelta returns the shortest signed offset from -> to on a ring of the given size.
// Ties (exactly half the ring) resolve to the positive direction.
func TorusDelta(from, to, size int) int {
	d := WrapAxis(to-from, size)
	if size > 0 && d > size/2 {
		d -= size
	}
	return d
}

// Rect represents an axis-aligned rectangle used for overlay layout.
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

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
