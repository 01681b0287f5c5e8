// Package spectate broadcasts a running game to WebSocket watchers.
package spectate

import "github.com/vovakirdan/snake-rogue/internal/games/snake"

// FrameType is the message type of a board frame.
const FrameType = "frame"

// Cell is an [x, y] pair.
type Cell [2]int

// Frame is one simulation tick as sent to watchers.
type Frame struct {
	Type    string   `json:"type"`
	Run     string   `json:"run,omitempty"`
	Tick    int      `json:"tick"`
	Mode    string   `json:"mode"`
	Score   int      `json:"score"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Body    []Cell   `json:"body"`
	Food    Cell     `json:"food"`
	PowerUp *PowerUp `json:"powerUp,omitempty"`
	Buff    string   `json:"buff,omitempty"`
	Shield  bool     `json:"shield,omitempty"`
	Choices []string `json:"choices,omitempty"`
	Events  []string `json:"events,omitempty"`
}

// PowerUp is the power-up on the board.
type PowerUp struct {
	At   Cell   `json:"at"`
	Type string `json:"type"`
}

// FrameFrom captures the runner after a Tick that returned res. run labels
// the stream so a watcher can tell players apart.
func FrameFrom(run string, r *snake.Runner, res snake.TickResult) Frame {
	s := r.Session()
	st := s.State()
	f := Frame{
		Type:   FrameType,
		Run:    run,
		Tick:   st.Tick,
		Mode:   r.Mode().String(),
		Score:  st.Score,
		Width:  s.Width(),
		Height: s.Height(),
		Food:   Cell{st.Food.X, st.Food.Y},
		Shield: st.ShieldActive,
	}
	for _, p := range s.Body() {
		f.Body = append(f.Body, Cell{p.X, p.Y})
	}
	if st.HasPowerUp() {
		f.PowerUp = &PowerUp{At: Cell{st.PowerUpPos.X, st.PowerUpPos.Y}, Type: st.PowerUpType.String()}
	}
	if st.ActiveBuff != snake.BuffNone {
		f.Buff = st.ActiveBuff.String()
	}
	for _, c := range r.Choices() {
		f.Choices = append(f.Choices, c.Name)
	}
	for _, e := range res.Events {
		f.Events = append(f.Events, e.Kind.String())
	}
	return f
}
