package snake

import (
	"testing"

	"github.com/vovakirdan/snake-rogue/internal/core"
)

func TestBodyDeque(t *testing.T) {
	b := NewBody(core.Point{X: 2, Y: 0}, core.Point{X: 1, Y: 0}, core.Point{X: 0, Y: 0})

	// Push past the initial capacity to force growth across the ring seam.
	for x := 3; x < 20; x++ {
		b.PushFront(core.Point{X: x, Y: 0})
		if _, ok := b.PopBack(); !ok {
			t.Fatal("PopBack on non-empty body failed")
		}
		b.PushFront(core.Point{X: x, Y: 1})
	}

	if b.Len() != 20 {
		t.Fatalf("Len = %d, expected 20", b.Len())
	}
	if b.Head() != (core.Point{X: 19, Y: 1}) {
		t.Errorf("Head = %v, expected (19,1)", b.Head())
	}

	cells := b.Cells()
	for i, c := range cells {
		if c != b.At(i) {
			t.Errorf("Cells()[%d] = %v, At = %v", i, c, b.At(i))
		}
	}
}

func TestBodyTruncateAndContains(t *testing.T) {
	b := NewBody()
	for i := 0; i < 10; i++ {
		b.PushBack(core.Point{X: i, Y: 0})
	}

	b.Truncate(4)
	if b.Len() != 4 {
		t.Fatalf("Len after Truncate = %d, expected 4", b.Len())
	}
	if !b.Contains(core.Point{X: 3, Y: 0}) {
		t.Error("Body should still contain (3,0)")
	}
	if b.Contains(core.Point{X: 4, Y: 0}) {
		t.Error("Body should no longer contain (4,0)")
	}

	b.Truncate(10)
	if b.Len() != 4 {
		t.Error("Truncate to a larger length should be a no-op")
	}
}

func TestBodyCellsIsCopy(t *testing.T) {
	b := NewBody(core.Point{X: 1, Y: 1})
	cells := b.Cells()
	cells[0] = core.Point{X: 9, Y: 9}

	if b.Head() != (core.Point{X: 1, Y: 1}) {
		t.Error("Mutating Cells() result changed the body")
	}
}

func TestBodyPopEmpty(t *testing.T) {
	b := NewBody()
	if _, ok := b.PopBack(); ok {
		t.Error("PopBack on empty body should fail")
	}
}
