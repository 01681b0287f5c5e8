package snake

import "github.com/vovakirdan/snake-rogue/internal/core"

// Body is a ring-buffer deque of board cells with the head at index 0.
type Body struct {
	cells []core.Point
	head  int // index of the front cell in cells
	n     int
}

// NewBody creates a body from cells listed head first.
func NewBody(cells ...core.Point) *Body {
	b := &Body{}
	b.Reset(cells)
	return b
}

// Reset replaces the contents with a copy of cells (head first).
func (b *Body) Reset(cells []core.Point) {
	size := max(8, len(cells))
	b.cells = make([]core.Point, size)
	copy(b.cells, cells)
	b.head = 0
	b.n = len(cells)
}

// Len returns the number of cells.
func (b *Body) Len() int {
	return b.n
}

// At returns the i-th cell counted from the head.
func (b *Body) At(i int) core.Point {
	return b.cells[(b.head+i)%len(b.cells)]
}

// Head returns the front cell. The body must not be empty.
func (b *Body) Head() core.Point {
	return b.At(0)
}

// Tail returns the last cell. The body must not be empty.
func (b *Body) Tail() core.Point {
	return b.At(b.n - 1)
}

// PushFront adds a new head.
func (b *Body) PushFront(p core.Point) {
	if b.n == len(b.cells) {
		b.grow()
	}
	b.head = (b.head - 1 + len(b.cells)) % len(b.cells)
	b.cells[b.head] = p
	b.n++
}

// PushBack appends a cell behind the tail.
func (b *Body) PushBack(p core.Point) {
	if b.n == len(b.cells) {
		b.grow()
	}
	b.cells[(b.head+b.n)%len(b.cells)] = p
	b.n++
}

// PopBack removes and returns the tail.
func (b *Body) PopBack() (core.Point, bool) {
	if b.n == 0 {
		return core.Point{}, false
	}
	p := b.Tail()
	b.n--
	return p, true
}

// Truncate keeps the first n cells from the head.
func (b *Body) Truncate(n int) {
	if n >= 0 && n < b.n {
		b.n = n
	}
}

// Contains reports whether any cell equals p.
func (b *Body) Contains(p core.Point) bool {
	for i := 0; i < b.n; i++ {
		if b.At(i) == p {
			return true
		}
	}
	return false
}

// Cells returns a copy of the cells, head first.
func (b *Body) Cells() []core.Point {
	out := make([]core.Point, b.n)
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}

func (b *Body) grow() {
	next := make([]core.Point, max(8, len(b.cells)*2))
	for i := 0; i < b.n; i++ {
		next[i] = b.At(i)
	}
	b.cells = next
	b.head = 0
}
