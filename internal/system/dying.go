package system

import (
	"image/color"
	"time"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	coresys "github.com/noname-game/horde/internal/core/system"
	"github.com/noname-game/horde/internal/data"
	"go.uber.org/zap"
)

// DyingSystem starts the terminal clip and death tint on entities that
// became Dying at the last flush. Phase 3 (PostUpdate), before animation.
type DyingSystem struct {
	world       *ecs.World
	lib         *data.Library
	deathSuffix string
	tint        color.RGBA
	log         *zap.Logger
}

func NewDyingSystem(w *ecs.World, lib *data.Library, deathSuffix string, tint color.RGBA, log *zap.Logger) *DyingSystem {
	return &DyingSystem{world: w, lib: lib, deathSuffix: deathSuffix, tint: tint, log: log}
}

func (s *DyingSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *DyingSystem) Update(_ time.Duration) {
	ecs.Each(s.world, func(id ecs.EntityID, d *component.Dying) {
		if d.ClipSwitched {
			return
		}
		d.ClipSwitched = true
		SetBaseTint(s.world, id, s.tint)

		a, ok := ecs.Get[component.Animation](s.world, id)
		if !ok {
			return
		}
		clip := a.Clip
		frames := a.Frames
		if name, ok := ecs.Get[component.Name](s.world, id); ok {
			deathClip := string(*name) + s.deathSuffix
			if f, err := s.lib.Clip(deathClip); err != nil {
				s.log.Warn("no death clip, replaying current", zap.String("clip", deathClip), zap.Error(err))
			} else {
				clip, frames = deathClip, f
			}
		}
		// Counting restarts so the next completed loop is repetition 1.
		restart(a, clip, frames)
	})
}

// deathLoopEnded reports whether ev is the first completed loop of id's
// terminal clip.
func deathLoopEnded(w *ecs.World, ev event.AnimationRepetitionEnd) (*component.Dying, bool) {
	if ev.Repetition != 1 || !w.Alive(ev.Entity) {
		return nil, false
	}
	d, ok := ecs.Get[component.Dying](w, ev.Entity)
	if !ok || !d.ClipSwitched {
		return nil, false
	}
	if a, ok := ecs.Get[component.Animation](w, ev.Entity); ok && a.Clip != ev.Clip {
		return nil, false
	}
	return d, true
}

// DeathDespawnSystem despawns a Dying entity once its terminal clip has
// played through once. Phase 3 (PostUpdate), after the drop system.
type DeathDespawnSystem struct {
	world     *ecs.World
	reader    *event.Reader[event.AnimationRepetitionEnd]
	despawned int
}

func NewDeathDespawnSystem(w *ecs.World, bus *event.Bus) *DeathDespawnSystem {
	return &DeathDespawnSystem{world: w, reader: event.NewReader[event.AnimationRepetitionEnd](bus)}
}

func (s *DeathDespawnSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *DeathDespawnSystem) Update(_ time.Duration) {
	for _, ev := range s.reader.Read() {
		d, ok := deathLoopEnded(s.world, ev)
		if !ok || d.Despawned {
			continue
		}
		d.Despawned = true
		s.world.Despawn(ev.Entity)
		s.despawned++
	}
}

// Despawned returns how many despawns this system requested.
func (s *DeathDespawnSystem) Despawned() int { return s.despawned }
