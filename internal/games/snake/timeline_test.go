package snake

import "testing"

func TestApplyInputsForTick(t *testing.T) {
	frames := []ReplayFrame{
		{Tick: 0, DX: 0, DY: 1},
		{Tick: 2, DX: 1, DY: 0},
		{Tick: 2, DX: 0, DY: -1},
		{Tick: 5, DX: -1, DY: 0},
	}
	cursor := 0
	var applied []Direction
	collect := func(d Direction) { applied = append(applied, d) }

	steps := []struct {
		tick         int
		expectCount  int
		expectCursor int
	}{
		{0, 1, 1},
		{0, 1, 1}, // repeated tick is a no-op
		{1, 1, 1},
		{2, 3, 3},
		{2, 3, 3},
		{5, 4, 4},
		{6, 4, 4},
	}

	for _, s := range steps {
		ApplyInputsForTick(frames, s.tick, &cursor, collect)
		if len(applied) != s.expectCount || cursor != s.expectCursor {
			t.Fatalf("tick %d: applied %d cursor %d, expected %d and %d", s.tick, len(applied), cursor, s.expectCount, s.expectCursor)
		}
	}

	if applied[1] != Right || applied[2] != Up {
		t.Errorf("Frames at tick 2 applied out of order: %v", applied)
	}
}

func TestApplyInputsSkipsStaleFrames(t *testing.T) {
	frames := []ReplayFrame{{Tick: 1, DX: 1}, {Tick: 3, DY: 1}}
	cursor := 0
	count := 0

	ApplyInputsForTick(frames, 2, &cursor, func(Direction) { count++ })
	if count != 0 || cursor != 1 {
		t.Errorf("Stale frame: applied %d cursor %d, expected 0 and 1", count, cursor)
	}
}

func TestApplyChoiceForTick(t *testing.T) {
	choices := []ChoiceRecord{{Tick: 4, Index: 1}, {Tick: 7, Index: 0}}
	cursor := 0
	var got []int
	collect := func(i int) { got = append(got, i) }

	if ApplyChoiceForTick(choices, 3, &cursor, collect) {
		t.Error("No choice is recorded for tick 3")
	}
	if !ApplyChoiceForTick(choices, 4, &cursor, collect) {
		t.Error("Choice at tick 4 should apply")
	}
	if ApplyChoiceForTick(choices, 4, &cursor, collect) {
		t.Error("Second call at tick 4 should be a no-op")
	}
	if !ApplyChoiceForTick(choices, 7, &cursor, collect) {
		t.Error("Choice at tick 7 should apply")
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 0 || cursor != 2 {
		t.Errorf("Applied %v cursor %d", got, cursor)
	}
}

func TestApplyChoiceOnePerTick(t *testing.T) {
	choices := []ChoiceRecord{{Tick: 2, Index: 0}, {Tick: 2, Index: 2}}
	cursor := 0
	count := 0

	ApplyChoiceForTick(choices, 2, &cursor, func(int) { count++ })
	if count != 1 || cursor != 1 {
		t.Errorf("Applied %d choices, cursor %d; expected 1 and 1", count, cursor)
	}
}
