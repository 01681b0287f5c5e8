// Package telemetry writes per-tick traces of a run as CSV, for diffing a
// replay against the live run it was recorded from.
package telemetry

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/snake-rogue/internal/games/snake"
)

// TickRow is one simulation tick as seen after the runner advanced.
type TickRow struct {
	Tick     int    `csv:"tick"`
	Mode     string `csv:"mode"`
	HeadX    int    `csv:"head_x"`
	HeadY    int    `csv:"head_y"`
	Length   int    `csv:"length"`
	Score    int    `csv:"score"`
	Buff     string `csv:"buff"`
	BuffLeft int    `csv:"buff_left"`
	Shield   bool   `csv:"shield"`
	FoodX    int    `csv:"food_x"`
	FoodY    int    `csv:"food_y"`
	PowerUp  string `csv:"powerup"`
	Events   string `csv:"events"`
}

// RowFrom captures the runner after a Tick that returned res.
func RowFrom(r *snake.Runner, res snake.TickResult) TickRow {
	s := r.Session()
	st := s.State()
	row := TickRow{
		Tick:     st.Tick,
		Mode:     res.Mode.String(),
		HeadX:    s.Head().X,
		HeadY:    s.Head().Y,
		Length:   s.Length(),
		Score:    st.Score,
		BuffLeft: st.BuffTicksRemaining,
		Shield:   st.ShieldActive,
		FoodX:    st.Food.X,
		FoodY:    st.Food.Y,
	}
	if st.ActiveBuff != snake.BuffNone {
		row.Buff = st.ActiveBuff.String()
	}
	if st.HasPowerUp() {
		row.PowerUp = fmt.Sprintf("%s@%d,%d", st.PowerUpType, st.PowerUpPos.X, st.PowerUpPos.Y)
	}
	kinds := make([]string, 0, len(res.Events))
	for _, e := range res.Events {
		kinds = append(kinds, e.Kind.String())
	}
	row.Events = strings.Join(kinds, ";")
	return row
}

// TraceWriter streams TickRows as CSV. A nil writer discards rows.
type TraceWriter struct {
	out           io.Writer
	headerWritten bool
	rows          int
}

// NewTraceWriter returns a writer emitting to out, or nil if out is nil.
func NewTraceWriter(out io.Writer) *TraceWriter {
	if out == nil {
		return nil
	}
	return &TraceWriter{out: out}
}

// Write appends one row, emitting the header first.
func (w *TraceWriter) Write(row TickRow) error {
	if w == nil {
		return nil
	}
	records := []TickRow{row}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.out); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		w.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, w.out); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	w.rows++
	return nil
}

// Rows returns the number of rows written.
func (w *TraceWriter) Rows() int {
	if w == nil {
		return 0
	}
	return w.rows
}

// ReadTrace parses a trace produced by TraceWriter.
func ReadTrace(in io.Reader) ([]TickRow, error) {
	var rows []TickRow
	if err := gocsv.Unmarshal(in, &rows); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return rows, nil
}

// FirstDivergence returns the index of the first row that differs between
// two traces, or -1 when they agree. A length mismatch diverges at the end
// of the shorter trace.
func FirstDivergence(a, b []TickRow) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
