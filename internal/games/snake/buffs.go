package snake

import "github.com/vovakirdan/snake-rogue/internal/config"

// BuffID identifies a power-up type. BuffNone doubles as "no active buff".
type BuffID int

const (
	BuffNone BuffID = iota
	BuffGhost
	BuffSlow
	BuffMagnet
	BuffShield
	BuffPortal
	BuffDouble
	BuffRich
	BuffLaser
	BuffMini
)

var buffNames = [...]string{
	BuffNone:   "none",
	BuffGhost:  "ghost",
	BuffSlow:   "slow",
	BuffMagnet: "magnet",
	BuffShield: "shield",
	BuffPortal: "portal",
	BuffDouble: "double",
	BuffRich:   "rich",
	BuffLaser:  "laser",
	BuffMini:   "mini",
}

func (b BuffID) String() string {
	if b < 0 || int(b) >= len(buffNames) {
		return "unknown"
	}
	return buffNames[b]
}

// ParseBuff resolves a config name such as "magnet" to its BuffID.
func ParseBuff(name string) (BuffID, bool) {
	for i, n := range buffNames {
		if BuffID(i) != BuffNone && n == name {
			return BuffID(i), true
		}
	}
	return BuffNone, false
}

// BuffWeight is one entry of a weighted power-up table.
type BuffWeight struct {
	Buff   BuffID
	Weight int
}

// WeightTable converts config rows into a weight table, skipping unknown buff names.
// An empty result falls back to the default table.
func WeightTable(rows []config.BuffWeight) []BuffWeight {
	table := make([]BuffWeight, 0, len(rows))
	for _, row := range rows {
		id, ok := ParseBuff(row.Buff)
		if !ok || row.Weight < 0 {
			continue
		}
		table = append(table, BuffWeight{Buff: id, Weight: row.Weight})
	}
	if len(table) == 0 {
		return WeightTable(config.DefaultSnakeConfig().PowerUps.Weights)
	}
	return table
}

// FoodPointsForBuff returns the score for one food under the active buff.
func FoodPointsForBuff(active BuffID) int {
	switch active {
	case BuffDouble:
		return 2
	case BuffRich:
		return 3
	default:
		return 1
	}
}

// BuffDurationTicks returns how long a picked-up buff lasts. Rich is halved.
func BuffDurationTicks(b BuffID, base int) int {
	if b == BuffRich {
		return base / 2
	}
	return base
}

// MiniShrinkTargetLength returns the body length after a Mini effect.
// Bodies already at or below the minimum are left alone.
func MiniShrinkTargetLength(current, minimum int) int {
	if current <= minimum {
		return current
	}
	return max(minimum, current/2)
}

// WeightedRandomBuffID picks a buff from the table with a single draw.
// A non-positive total or an out-of-range draw yields the first entry.
func WeightedRandomBuffID(table []BuffWeight, rnd RandomFunc) BuffID {
	if len(table) == 0 {
		return BuffNone
	}

	total := 0
	for _, w := range table {
		total += w.Weight
	}
	if total <= 0 {
		return table[0].Buff
	}

	roll := rnd(total)
	if roll < 0 || roll >= total {
		return table[0].Buff
	}

	cumulative := 0
	for _, w := range table {
		cumulative += w.Weight
		if roll < cumulative {
			return w.Buff
		}
	}
	return table[0].Buff
}

// TickBuffCountdown decrements remaining and reports true exactly when it reaches zero.
func TickBuffCountdown(remaining *int) bool {
	if *remaining <= 0 {
		return false
	}
	*remaining--
	return *remaining == 0
}
