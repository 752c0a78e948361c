package system

import (
	"time"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/config"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	"github.com/noname-game/horde/internal/core/rng"
	coresys "github.com/noname-game/horde/internal/core/system"
	"github.com/noname-game/horde/internal/core/timer"
	"github.com/noname-game/horde/internal/data"
	"github.com/noname-game/horde/internal/vmath"
	"github.com/noname-game/horde/internal/world"
	"go.uber.org/zap"
)

// ResourceDropSystem drops one resource where a Dying enemy stands when its
// terminal clip first completes. Phase 3 (PostUpdate), after animation.
type ResourceDropSystem struct {
	world    *ecs.World
	bus      *event.Bus
	lib      *data.Library
	table    *data.DropTable
	src      rng.Source
	cfg      config.ResourcesConfig
	frameDur time.Duration
	reader   *event.Reader[event.AnimationRepetitionEnd]
	dropped  int
	log      *zap.Logger
}

func NewResourceDropSystem(
	w *ecs.World,
	bus *event.Bus,
	lib *data.Library,
	table *data.DropTable,
	src rng.Source,
	cfg *config.Config,
	log *zap.Logger,
) *ResourceDropSystem {
	return &ResourceDropSystem{
		world:    w,
		bus:      bus,
		lib:      lib,
		table:    table,
		src:      src,
		cfg:      cfg.Resources,
		frameDur: cfg.Animation.FrameDuration,
		reader:   event.NewReader[event.AnimationRepetitionEnd](bus),
		log:      log,
	}
}

func (s *ResourceDropSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *ResourceDropSystem) Update(_ time.Duration) {
	for _, ev := range s.reader.Read() {
		d, ok := deathLoopEnded(s.world, ev)
		if !ok || d.Dropped {
			continue
		}
		d.Dropped = true
		if _, err := s.Drop(worldPosition(s.world, ev.Entity)); err != nil {
			s.log.Warn("skip drop, missing asset", zap.Stringer("entity", ev.Entity), zap.Error(err))
		}
	}
}

// Dropped returns how many resources this system created.
func (s *ResourceDropSystem) Dropped() int { return s.dropped }

// Drop rolls a kind and spawns the resource at pos.
func (s *ResourceDropSystem) Drop(pos vmath.Vec2) (ecs.EntityID, error) {
	kind := s.table.Roll(s.src)
	id, err := SpawnResource(s.world, s.lib, s.cfg, s.frameDur, kind, pos)
	if err != nil {
		return ecs.NoEntity, err
	}
	s.dropped++
	event.Emit(s.bus, event.ResourceDropped{Entity: id, Kind: kind, Pos: pos})
	return id, nil
}

// SpawnResource queues a resource entity of kind at pos with its clip and
// collider.
func SpawnResource(w *ecs.World, lib *data.Library, cfg config.ResourcesConfig, frameDur time.Duration, kind component.ResourceKind, pos vmath.Vec2) (ecs.EntityID, error) {
	arch, err := lib.Archetype(cfg.Sheet, kind.Clip())
	if err != nil {
		return ecs.NoEntity, err
	}
	id := w.CreateEntity()
	ecs.DeferInsert(w, id, &component.Resource{Kind: kind})
	ecs.DeferInsert(w, id, ptr(component.Name(kind.String())))
	ecs.DeferInsert(w, id, component.NewTransform(pos.X, pos.Y))
	ecs.DeferInsert(w, id, &component.GlobalTransform{Pos: pos, Scale: 1})
	ecs.DeferInsert(w, id, &component.Sprite{
		Sheet: arch.Sheet.Name,
		Tint:  component.White,
		W:     arch.Layout.TileWidth,
		H:     arch.Layout.TileHeight,
	})
	ecs.DeferInsert(w, id, &component.Animation{
		Clip:          arch.StartClip,
		Frames:        arch.Frames,
		FrameDuration: frameDur,
	})
	ecs.DeferInsert(w, id, component.RectCollider(cfg.ColliderSize, cfg.ColliderSize))
	return id, nil
}

// PickupSystem collects every resource the player currently overlaps: it
// fires ResourceCollected at the resource and despawns it.
// Phase 3 (PostUpdate), gated on the player.
type PickupSystem struct {
	world     *ecs.World
	bus       *event.Bus
	collected int
}

func NewPickupSystem(w *ecs.World, bus *event.Bus) *PickupSystem {
	return &PickupSystem{world: w, bus: bus}
}

func (s *PickupSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *PickupSystem) Update(_ time.Duration) {
	ecs.Each(s.world, func(_ ecs.EntityID, touching *component.CollidingEntities) {
		ecs.Each(s.world, func(id ecs.EntityID, r *component.Resource) {
			if r.Collected || !touching.Contains(id) {
				return
			}
			r.Collected = true
			event.Fire(s.bus, id, event.ResourceCollected{Kind: r.Kind, Amount: 1})
			s.world.Despawn(id)
			s.collected++
		})
	}, ecs.With[component.Player]())
}

// Collected returns how many resources were picked up.
func (s *PickupSystem) Collected() int { return s.collected }

// ObserveInventory tallies every collected resource into inv.
func ObserveInventory(bus *event.Bus, inv *world.Inventory) {
	event.ObserveAny(bus, func(tr event.Trigger[event.ResourceCollected]) {
		inv.Add(tr.Event.Kind, tr.Event.Amount)
	})
}

// HomingSystem pulls resources near the player in: a one-shot tween toward
// where the player stood, then a constant-speed chase until pickup.
// Phase 3 (PostUpdate), before pickup, gated on the player.
type HomingSystem struct {
	world    *ecs.World
	grid     *world.ProximityGrid
	radius   float64
	duration time.Duration
	speed    float64
}

func NewHomingSystem(w *ecs.World, grid *world.ProximityGrid, cfg config.ResourcesConfig) *HomingSystem {
	return &HomingSystem{
		world:    w,
		grid:     grid,
		radius:   cfg.PickupRadius,
		duration: cfg.HomingDuration,
		speed:    cfg.FollowSpeed,
	}
}

func (s *HomingSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *HomingSystem) Update(dt time.Duration) {
	_, target, ok := playerPosition(s.world)
	if !ok {
		return
	}

	ecs.Each2(s.world, func(id ecs.EntityID, h *component.Homing, t *component.Transform) {
		h.Timer.Tick(dt)
		t.Pos = vmath.Lerp(h.From, h.To, h.Timer.Fraction())
		if h.Timer.JustFinished() {
			ecs.DeferRemove[component.Homing](s.world, id)
			ecs.DeferInsert(s.world, id, &component.Following{})
		}
	})

	step := s.speed * dt.Seconds()
	ecs.Each2(s.world, func(_ ecs.EntityID, _ *component.Following, t *component.Transform) {
		if t.Pos.Distance(target) <= step {
			t.Pos = target
			return
		}
		t.Pos = t.Pos.Add(vmath.Towards(t.Pos, target).Scale(step))
	})

	for _, id := range s.grid.Within(target, s.radius) {
		r, ok := ecs.Get[component.Resource](s.world, id)
		if !ok || r.Collected ||
			ecs.Has[component.Homing](s.world, id) ||
			ecs.Has[component.Following](s.world, id) {
			continue
		}
		from := worldPosition(s.world, id)
		ecs.DeferInsert(s.world, id, &component.Homing{
			From:  from,
			To:    target,
			Timer: timer.New(s.duration, timer.Once),
		})
	}
}
