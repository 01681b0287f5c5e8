package core

import "testing"

func TestInputFrameOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionLeft)

	if !f.Has(ActionUp) || !f.Has(ActionLeft) {
		t.Fatal("Frame should report both actions")
	}
	if len(f.Order) != 2 || f.Order[0] != ActionUp || f.Order[1] != ActionLeft {
		t.Errorf("Order = %v, expected [Up Left]", f.Order)
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionUp) || len(f.Order) != 0 {
		t.Error("Clear should remove all actions")
	}
	if !clone.Has(ActionUp) || len(clone.Order) != 2 {
		t.Error("Clone should be independent of the original")
	}
}

func TestChoiceIndex(t *testing.T) {
	tests := []struct {
		action Action
		index  int
		ok     bool
	}{
		{ActionChoice1, 0, true},
		{ActionChoice2, 1, true},
		{ActionChoice3, 2, true},
		{ActionUp, -1, false},
	}

	for _, tc := range tests {
		idx, ok := tc.action.ChoiceIndex()
		if idx != tc.index || ok != tc.ok {
			t.Errorf("%s.ChoiceIndex() = (%d, %v), expected (%d, %v)", tc.action, idx, ok, tc.index, tc.ok)
		}
	}
}
