package snake

// ChoiceSpec is one roguelike upgrade offered at a choice event.
type ChoiceSpec struct {
	ID          BuffID
	Name        string
	Description string
}

var choiceCatalog = []ChoiceSpec{
	{ID: BuffGhost, Name: "Phase Shift", Description: "Slide through your own body"},
	{ID: BuffSlow, Name: "Time Dilation", Description: "The world crawls for a while"},
	{ID: BuffMagnet, Name: "Lodestone", Description: "Food drifts toward your head"},
	{ID: BuffShield, Name: "Aegis", Description: "Survive one bite of your own tail"},
	{ID: BuffPortal, Name: "Wormhole", Description: "Pass through walls unharmed"},
	{ID: BuffDouble, Name: "Twin Feast", Description: "Food is worth 2 points"},
	{ID: BuffRich, Name: "Diamond Hoard", Description: "Food is worth 3 points"},
	{ID: BuffLaser, Name: "Cutting Beam", Description: "Burn through the next wall you hit"},
	{ID: BuffMini, Name: "Shed Skin", Description: "Halve your length right now"},
}

// ChoiceCatalog returns a copy of every upgrade that can be offered.
func ChoiceCatalog() []ChoiceSpec {
	out := make([]ChoiceSpec, len(choiceCatalog))
	copy(out, choiceCatalog)
	return out
}

// PickChoices shuffles the catalog with seed and returns the first count entries.
func PickChoices(seed int64, count int) []ChoiceSpec {
	if count <= 0 {
		return nil
	}
	deck := ChoiceCatalog()
	rng := NewSimpleRNG(seed)
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck[:min(count, len(deck))]
}

// ChoiceSeed derives the shuffle key of a choice event from the run seed and
// the moment it happened, so offering choices never draws from the run RNG.
func ChoiceSeed(runSeed int64, tick, score int) int64 {
	h := mix64(uint64(runSeed))      //#nosec G115 -- bit reinterpretation
	h = mix64(h ^ uint64(tick))      //#nosec G115 -- tick is non-negative
	h = mix64(h ^ uint64(score)<<32) //#nosec G115 -- score is non-negative
	return int64(h >> 1)             //#nosec G115 -- top bit dropped
}
