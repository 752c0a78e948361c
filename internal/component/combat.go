package component

import (
	"image/color"

	"github.com/noname-game/horde/internal/core/timer"
)

// Health is current hit points. It never goes below zero: a hit that would
// reach zero stores 0 and moves the entity to Dying.
type Health struct {
	Current uint32
	Max     uint32
}

func NewHealth(hp uint32) *Health {
	return &Health{Current: hp, Max: hp}
}

// Speed is movement speed in units per second.
type Speed float64

type WeaponKind int

const (
	WeaponOrb WeaponKind = iota
)

// Weapon is a damage-dealing entity, parented to its wielder.
type Weapon struct {
	Kind          WeaponKind
	Damage        uint32
	RotationSpeed float64 // radians per second about the parent origin
}

// DotTimer applies Damage to its entity every time the timer fires.
type DotTimer struct {
	Timer  timer.Timer
	Damage uint32
}

// FlashTimer reverts the hit flash when it runs out.
type FlashTimer struct {
	Timer timer.Timer
}

// TintBackup holds the tint to restore after a hit flash.
type TintBackup struct {
	Tint color.RGBA
}
