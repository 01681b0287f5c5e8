package snake

import "github.com/vovakirdan/snake-rogue/internal/core"

// Choice trigger tuning.
const (
	choiceMinScore     = 8
	choiceCooldown     = 6
	choicePityInterval = 20
	choiceBonusStep    = 10
	choiceBonusPercent = 8
	choiceMaxPercent   = 65
)

// ChoiceChancePercent returns the chance that a meal moving the score from
// prev to next offers a roguelike choice.
func ChoiceChancePercent(prev, next, lastChoiceScore int) int {
	if next < choiceMinScore {
		return 0
	}
	if next-lastChoiceScore < choiceCooldown {
		return 0
	}
	if prev/choicePityInterval < next/choicePityInterval {
		return 100
	}

	var chance int
	switch {
	case next < 15:
		chance = 10
	case next < 25:
		chance = 16
	case next < 40:
		chance = 24
	default:
		chance = 34
	}
	if prev/choiceBonusStep < next/choiceBonusStep {
		chance += choiceBonusPercent
	}
	return min(chance, choiceMaxPercent)
}

// FoodInput is what PlanFood needs to know about the session.
type FoodInput struct {
	Score           int
	LastChoiceScore int
	ActiveBuff      BuffID
	PowerUpPresent  bool
	SpawnPercent    int
}

// FoodOutcome describes a meal.
type FoodOutcome struct {
	Points        int
	NewScore      int
	ChancePercent int
	TriggerChoice bool
	SpawnPowerUp  bool
}

// PlanFood scores a meal and rolls for a choice and then, if none triggered
// and the board has no power-up, for a power-up spawn.
func PlanFood(in FoodInput, rnd RandomFunc) FoodOutcome {
	points := FoodPointsForBuff(in.ActiveBuff)
	out := FoodOutcome{
		Points:   points,
		NewScore: in.Score + points,
	}
	out.ChancePercent = ChoiceChancePercent(in.Score, out.NewScore, in.LastChoiceScore)

	if out.ChancePercent >= 100 {
		out.TriggerChoice = true
	} else {
		out.TriggerChoice = rnd(100) < out.ChancePercent
	}

	if !out.TriggerChoice && !in.PowerUpPresent {
		out.SpawnPowerUp = rnd(100) < in.SpawnPercent
	}
	return out
}

// PowerUpOutcome describes picking up (or being granted) a power-up.
// When SetsBuff is false the active buff and its timer are left unchanged.
type PowerUpOutcome struct {
	Acquired        BuffID
	ShieldActivated bool
	MiniApplied     bool
	SetsBuff        bool
	BuffAfter       BuffID
	Duration        int
	SlowMode        bool
}

// PlanPowerUp resolves the effect of acquiring a buff. Rich is halved only
// when halveRich is set, which pickups do and choice grants do not.
func PlanPowerUp(acquired BuffID, baseDuration int, halveRich bool) PowerUpOutcome {
	out := PowerUpOutcome{Acquired: acquired}
	switch acquired {
	case BuffNone:
	case BuffShield:
		out.ShieldActivated = true
	case BuffMini:
		out.MiniApplied = true
		out.SetsBuff = true
		out.BuffAfter = BuffNone
	default:
		out.SetsBuff = true
		out.BuffAfter = acquired
		out.Duration = baseDuration
		if halveRich {
			out.Duration = BuffDurationTicks(acquired, baseDuration)
		}
		out.SlowMode = acquired == BuffSlow
	}
	return out
}

// MagnetCandidates returns up to two cells next to food, one step toward
// head along each axis, the axis with the larger wrapped distance first.
func MagnetCandidates(head, food core.Point, w, h int) []core.Point {
	dx := core.TorusDelta(food.X, head.X, w)
	dy := core.TorusDelta(food.Y, head.Y, h)

	stepX := core.WrapPoint(food.Add(sign(dx), 0), w, h)
	stepY := core.WrapPoint(food.Add(0, sign(dy)), w, h)

	out := make([]core.Point, 0, 2)
	if core.Abs(dx) >= core.Abs(dy) {
		if dx != 0 {
			out = append(out, stepX)
		}
		if dy != 0 {
			out = append(out, stepY)
		}
	} else {
		out = append(out, stepY)
		if dx != 0 {
			out = append(out, stepX)
		}
	}
	return out
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
