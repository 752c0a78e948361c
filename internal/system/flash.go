package system

import (
	"image/color"
	"time"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	coresys "github.com/noname-game/horde/internal/core/system"
	"github.com/noname-game/horde/internal/core/timer"
)

// FlashSystem tints an entity the moment it is hurt and restores the previous
// tint once the flash timer runs out. Phase 3 (PostUpdate).
type FlashSystem struct {
	world    *ecs.World
	color    color.RGBA
	duration time.Duration
	// flashed holds entities flashed this tick whose FlashTimer insert is
	// still queued.
	flashed map[ecs.EntityID]struct{}
}

func NewFlashSystem(w *ecs.World, bus *event.Bus, c color.RGBA, d time.Duration) *FlashSystem {
	s := &FlashSystem{world: w, color: c, duration: d, flashed: make(map[ecs.EntityID]struct{})}
	event.ObserveAny(bus, func(tr event.Trigger[event.Hurt]) {
		s.Flash(tr.Target)
	})
	return s
}

func (s *FlashSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

// Flash overwrites id's tint with the flash colour. A running flash is
// restarted and keeps its first backup.
func (s *FlashSystem) Flash(id ecs.EntityID) {
	sprite, ok := ecs.Get[component.Sprite](s.world, id)
	if !ok {
		return
	}
	if ft, ok := ecs.Get[component.FlashTimer](s.world, id); ok {
		ft.Timer.Reset()
		sprite.Tint = s.color
		return
	}
	if _, pending := s.flashed[id]; pending {
		return
	}
	s.flashed[id] = struct{}{}
	ecs.DeferInsert(s.world, id, &component.TintBackup{Tint: sprite.Tint})
	ecs.DeferInsert(s.world, id, &component.FlashTimer{Timer: timer.New(s.duration, timer.Once)})
	sprite.Tint = s.color
}

func (s *FlashSystem) Update(dt time.Duration) {
	clear(s.flashed)
	ecs.Each2(s.world, func(id ecs.EntityID, ft *component.FlashTimer, backup *component.TintBackup) {
		ft.Timer.Tick(dt)
		if !ft.Timer.JustFinished() {
			return
		}
		if sprite, ok := ecs.Get[component.Sprite](s.world, id); ok {
			sprite.Tint = backup.Tint
		}
		ecs.DeferRemove[component.FlashTimer](s.world, id)
		ecs.DeferRemove[component.TintBackup](s.world, id)
	})
}

// SetBaseTint changes the tint id shows when no flash is running. During a
// flash it replaces the backup so the flash stays visible until it ends.
func SetBaseTint(w *ecs.World, id ecs.EntityID, tint color.RGBA) {
	if backup, ok := ecs.Get[component.TintBackup](w, id); ok {
		backup.Tint = tint
		return
	}
	if sprite, ok := ecs.Get[component.Sprite](w, id); ok {
		sprite.Tint = tint
	}
}
