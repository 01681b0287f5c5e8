package snake

import "github.com/vovakirdan/snake-rogue/internal/core"

// EventKind classifies something notable that happened during a tick.
type EventKind int

const (
	EventAteFood EventKind = iota + 1
	EventPowerUpSpawned
	EventPowerUpCollected
	EventShieldSpent
	EventLaserCut
	EventPortalPass
	EventMagnetPull
	EventMiniShrink
	EventChoiceOffered
	EventChoiceTaken
	EventBuffExpired
	EventCollision
)

var eventNames = map[EventKind]string{
	EventAteFood:          "ate_food",
	EventPowerUpSpawned:   "powerup_spawned",
	EventPowerUpCollected: "powerup_collected",
	EventShieldSpent:      "shield_spent",
	EventLaserCut:         "laser_cut",
	EventPortalPass:       "portal_pass",
	EventMagnetPull:       "magnet_pull",
	EventMiniShrink:       "mini_shrink",
	EventChoiceOffered:    "choice_offered",
	EventChoiceTaken:      "choice_taken",
	EventBuffExpired:      "buff_expired",
	EventCollision:        "collision",
}

func (k EventKind) String() string {
	if n, ok := eventNames[k]; ok {
		return n
	}
	return "unknown"
}

// Event is a plain value describing an effect; callers map them to sound,
// messages or telemetry.
type Event struct {
	Kind   EventKind
	Pos    core.Point
	Buff   BuffID
	Points int
}

// Message returns a short human-readable line for the event, or "" if the
// event is not worth showing.
func (e Event) Message() string {
	switch e.Kind {
	case EventPowerUpCollected:
		return "Picked up " + e.Buff.String()
	case EventShieldSpent:
		return "Shield absorbed a bite"
	case EventLaserCut:
		return "Laser cut through a wall"
	case EventMiniShrink:
		return "Shed skin"
	case EventChoiceTaken:
		return "Chose " + e.Buff.String()
	case EventBuffExpired:
		return e.Buff.String() + " wore off"
	}
	return ""
}
