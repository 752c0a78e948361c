package system

import (
	"time"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	coresys "github.com/noname-game/horde/internal/core/system"
	"github.com/noname-game/horde/internal/data"
	"go.uber.org/zap"
)

// AnimationSystem advances every active clip and emits
// AnimationRepetitionEnd each time a clip wraps. Phase 3 (PostUpdate).
type AnimationSystem struct {
	world    *ecs.World
	bus      *event.Bus
	lib      *data.Library
	frameDur time.Duration
	log      *zap.Logger
}

func NewAnimationSystem(w *ecs.World, bus *event.Bus, lib *data.Library, frameDur time.Duration, log *zap.Logger) *AnimationSystem {
	return &AnimationSystem{world: w, bus: bus, lib: lib, frameDur: frameDur, log: log}
}

func (s *AnimationSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *AnimationSystem) Update(dt time.Duration) {
	ecs.Each(s.world, func(id ecs.EntityID, a *component.Animation) {
		if len(a.Frames) == 0 {
			return
		}
		step := a.FrameDuration
		if step <= 0 {
			step = s.frameDur
		}
		if step <= 0 {
			return
		}
		a.Elapsed += dt
		for a.Elapsed >= step {
			a.Elapsed -= step
			a.Cursor++
			if a.Cursor < len(a.Frames) {
				continue
			}
			a.Cursor = 0
			a.Repetition++
			event.Emit(s.bus, event.AnimationRepetitionEnd{
				Entity:     id,
				Clip:       a.Clip,
				Repetition: a.Repetition,
			})
		}
	})
}

// Play switches id to the named clip from its first frame. Replaying the
// current clip is a no-op.
func (s *AnimationSystem) Play(id ecs.EntityID, clip string) error {
	a, ok := ecs.Get[component.Animation](s.world, id)
	if !ok || a.Clip == clip {
		return nil
	}
	frames, err := s.lib.Clip(clip)
	if err != nil {
		return err
	}
	restart(a, clip, frames)
	return nil
}

func restart(a *component.Animation, clip string, frames []int) {
	a.Clip = clip
	a.Frames = frames
	a.Cursor = 0
	a.Elapsed = 0
	a.Repetition = 0
}

// FollowDirection keeps id's clip in step with its movement: idleClip when
// Idle, runPrefix+direction otherwise.
func (s *AnimationSystem) FollowDirection(id ecs.EntityID, idleClip, runPrefix string) {
	event.Observe(s.bus, id, func(tr event.Trigger[event.DirectionChanged]) {
		clip := idleClip
		if tr.Event.To != component.Idle {
			clip = runPrefix + tr.Event.To.String()
		}
		if err := s.Play(tr.Target, clip); err != nil {
			s.log.Warn("keep current clip", zap.String("clip", clip), zap.Error(err))
		}
	})
}
