package snake

import "github.com/vovakirdan/snake-rogue/internal/core"

// Occupancy answers whether a cell is covered. *Body implements it.
type Occupancy interface {
	Contains(p core.Point) bool
}

// Modifiers are the buff states that affect collision.
type Modifiers struct {
	Ghost  bool
	Portal bool
	Laser  bool
	Shield bool
}

// CollisionOutcome is the result of Resolve. ObstacleIndex is -1 unless the
// head landed on an obstacle.
type CollisionOutcome struct {
	Collision     bool
	ConsumeShield bool
	ConsumeLaser  bool
	ObstacleIndex int
}

// Resolve decides what happens when the head enters a cell.
// Obstacles are checked before the body; the caller applies any side effects.
func Resolve(head core.Point, w, h int, obstacles []core.Point, body Occupancy, mods Modifiers) CollisionOutcome {
	head = core.WrapPoint(head, w, h)
	out := CollisionOutcome{ObstacleIndex: -1}

	for i, o := range obstacles {
		if o != head {
			continue
		}
		out.ObstacleIndex = i
		switch {
		case mods.Portal:
		case mods.Laser:
			out.ConsumeLaser = true
		default:
			out.Collision = true
		}
		return out
	}

	if mods.Ghost || body == nil || !body.Contains(head) {
		return out
	}
	if mods.Shield {
		out.ConsumeShield = true
	} else {
		out.Collision = true
	}
	return out
}
