package snake

import (
	"fmt"

	"github.com/vovakirdan/snake-rogue/internal/core"
)

// Direction is a unit step on the board.
type Direction struct {
	DX, DY int
}

var (
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
)

// IsZero reports whether d is the zero direction.
func (d Direction) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// Valid reports whether d is one of the four unit directions.
func (d Direction) Valid() bool {
	return core.Abs(d.DX)+core.Abs(d.DY) == 1
}

// Opposite reports whether d and o point in exactly opposite directions.
func (d Direction) Opposite(o Direction) bool {
	return !d.IsZero() && d.DX == -o.DX && d.DY == -o.DY
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("(%d,%d)", d.DX, d.DY)
}

// InputQueueCapacity bounds the number of pending heading changes.
const InputQueueCapacity = 2

// InputQueue is a fixed-capacity FIFO of heading changes, one consumed per tick.
type InputQueue struct {
	items [InputQueueCapacity]Direction
	n     int
}

// Len returns the number of pending directions.
func (q *InputQueue) Len() int {
	return q.n
}

// Full reports whether another push would be rejected.
func (q *InputQueue) Full() bool {
	return q.n == InputQueueCapacity
}

// Push appends d. Returns false when the queue is full.
func (q *InputQueue) Push(d Direction) bool {
	if q.Full() {
		return false
	}
	q.items[q.n] = d
	q.n++
	return true
}

// Pop removes the oldest direction.
func (q *InputQueue) Pop() (Direction, bool) {
	if q.n == 0 {
		return Direction{}, false
	}
	d := q.items[0]
	copy(q.items[:], q.items[1:q.n])
	q.n--
	return d, true
}

// Last returns the most recently pushed direction.
func (q *InputQueue) Last() (Direction, bool) {
	if q.n == 0 {
		return Direction{}, false
	}
	return q.items[q.n-1], true
}

// Clear drops all pending directions.
func (q *InputQueue) Clear() {
	q.n = 0
}
