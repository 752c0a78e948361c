package component

import (
	"github.com/noname-game/horde/internal/core/timer"
	"github.com/noname-game/horde/internal/vmath"
)

// ResourceKind is a collectible resource type.
type ResourceKind int

const (
	Gold ResourceKind = iota
	Crystals
	Mercury
	Sulfur
	Ore
	Wood
	Gems

	ResourceKindCount
)

var resourceNames = [ResourceKindCount]string{
	Gold:     "gold",
	Crystals: "crystals",
	Mercury:  "mercury",
	Sulfur:   "sulfur",
	Ore:      "ore",
	Wood:     "wood",
	Gems:     "gems",
}

func (k ResourceKind) String() string {
	if k < 0 || k >= ResourceKindCount {
		return "unknown"
	}
	return resourceNames[k]
}

// ParseResourceKind is the inverse of String.
func ParseResourceKind(s string) (ResourceKind, bool) {
	for k, name := range resourceNames {
		if name == s {
			return ResourceKind(k), true
		}
	}
	return 0, false
}

// AllResourceKinds lists kinds in declaration order.
func AllResourceKinds() []ResourceKind {
	out := make([]ResourceKind, ResourceKindCount)
	for i := range out {
		out[i] = ResourceKind(i)
	}
	return out
}

// Resource is a dropped collectible.
type Resource struct {
	Kind ResourceKind
	// Collected is set when the pickup fires so a second overlap in the same
	// tick cannot count it again.
	Collected bool
}

// Homing is the one-shot tween a resource plays toward the player before it
// starts following.
type Homing struct {
	From, To vmath.Vec2
	Timer    timer.Timer
}

// Following makes a resource chase the player every tick.
type Following struct{}

var resourceClips = [ResourceKindCount]string{
	Gold:     "gold_blink",
	Crystals: "crystals_blink",
	Mercury:  "mercury",
	Sulfur:   "sulfur",
	Ore:      "ore",
	Wood:     "wood",
	Gems:     "gems_blink",
}

// Clip is the name of the animation a dropped resource of this kind plays.
func (k ResourceKind) Clip() string {
	if k < 0 || k >= ResourceKindCount {
		return ""
	}
	return resourceClips[k]
}
