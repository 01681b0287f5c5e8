package snake

// ReplayFrame is an accepted heading change, tagged with the tick it was queued on.
type ReplayFrame struct {
	Tick int `json:"tick"`
	DX   int `json:"dx"`
	DY   int `json:"dy"`
}

// Direction returns the recorded heading.
func (f ReplayFrame) Direction() Direction {
	return Direction{DX: f.DX, DY: f.DY}
}

// ChoiceRecord is the index picked at a choice event.
type ChoiceRecord struct {
	Tick  int `json:"tick"`
	Index int `json:"index"`
}

// ApplyInputsForTick feeds every frame recorded for tick to onDirection and
// advances cursor past them. Stale frames are skipped; calling it again for
// the same tick does nothing.
func ApplyInputsForTick(frames []ReplayFrame, tick int, cursor *int, onDirection func(Direction)) {
	for *cursor < len(frames) {
		f := frames[*cursor]
		if f.Tick > tick {
			return
		}
		*cursor++
		if f.Tick == tick {
			onDirection(f.Direction())
		}
	}
}

// ApplyChoiceForTick applies at most one choice recorded for tick.
// Returns true if a choice was applied.
func ApplyChoiceForTick(choices []ChoiceRecord, tick int, cursor *int, onChoice func(int)) bool {
	for *cursor < len(choices) {
		c := choices[*cursor]
		if c.Tick > tick {
			return false
		}
		*cursor++
		if c.Tick == tick {
			onChoice(c.Index)
			return true
		}
	}
	return false
}
