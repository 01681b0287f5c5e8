// Package snake implements a roguelike Snake on a wrap-around board.
//
// The simulation is deterministic: a run is fully described by its seed,
// level, the heading changes accepted while playing and the index picked at
// each choice event. Session holds the per-tick rules, Runner drives the
// lifecycle and records the timelines needed for replay, and Game adapts
// both to the terminal platform.
package snake

import (
	"errors"

	"github.com/vovakirdan/snake-rogue/internal/core"
)

// NoPosition marks an absent food or power-up.
var NoPosition = core.Point{X: -1, Y: -1}

var (
	// ErrEmptyBody is returned when restoring a snapshot without body cells.
	ErrEmptyBody = errors.New("snake: snapshot body is empty")
	// ErrNoStart is returned when the level leaves no room for the starting body.
	ErrNoStart = errors.New("snake: no free starting position")
	// ErrNoSession is returned by runner operations that need an active session.
	ErrNoSession = errors.New("snake: no active session")
)

// SessionState is the mutable record of a run, owned by Session.
type SessionState struct {
	Food               core.Point
	PowerUpPos         core.Point
	PowerUpType        BuffID
	ActiveBuff         BuffID
	BuffTicksRemaining int
	BuffTicksTotal     int
	ShieldActive       bool
	Heading            Direction
	Score              int
	Obstacles          []core.Point
	Tick               int
	LastChoiceScore    int
}

// Clone returns a copy that shares no memory with s.
func (s SessionState) Clone() SessionState {
	out := s
	out.Obstacles = append([]core.Point(nil), s.Obstacles...)
	return out
}

// HasPowerUp reports whether a power-up is on the board.
func (s SessionState) HasPowerUp() bool {
	return s.PowerUpPos != NoPosition
}

// Snapshot is a save/restore value of a session.
type Snapshot struct {
	State SessionState
	Body  []core.Point
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		State: s.State.Clone(),
		Body:  append([]core.Point(nil), s.Body...),
	}
}

// PreviewSeed is a hand-built state used to start a session without bootstrap.
type PreviewSeed Snapshot

// GhostRun is everything needed to replay a finished run. Tuning is the
// rule set the run was recorded with; a zero Tuning replays under whatever
// rules the replaying runner was built with.
type GhostRun struct {
	Seed       int64
	LevelIndex int
	Score      int
	Tuning     RunnerConfig
	Inputs     []ReplayFrame
	Choices    []ChoiceRecord
}

// Clone deep-copies the run.
func (g GhostRun) Clone() GhostRun {
	out := g
	out.Tuning = g.Tuning.Clone()
	out.Inputs = append([]ReplayFrame(nil), g.Inputs...)
	out.Choices = append([]ChoiceRecord(nil), g.Choices...)
	return out
}
