package system

import (
	"time"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	coresys "github.com/noname-game/horde/internal/core/system"
	"github.com/noname-game/horde/internal/scripting"
	"go.uber.org/zap"
)

// damageable reports whether id can still take a hit this tick. Health at
// zero means a Dying transition is already queued.
func damageable(w *ecs.World, id ecs.EntityID) (*component.Health, bool) {
	if !w.Alive(id) || ecs.Has[component.Dying](w, id) {
		return nil, false
	}
	h, ok := ecs.Get[component.Health](w, id)
	if !ok || h.Current == 0 {
		return nil, false
	}
	return h, true
}

// HitDetectionSystem turns weapon-versus-enemy collisions into EnemyHit.
// Phase 2 (Update), after collision.
type HitDetectionSystem struct {
	world    *ecs.World
	bus      *event.Bus
	formulas scripting.Formulas
	reader   *event.Reader[event.CollisionStarted]
}

func NewHitDetectionSystem(w *ecs.World, bus *event.Bus, formulas scripting.Formulas) *HitDetectionSystem {
	if formulas == nil {
		formulas = scripting.Fallback{}
	}
	return &HitDetectionSystem{
		world:    w,
		bus:      bus,
		formulas: formulas,
		reader:   event.NewReader[event.CollisionStarted](bus),
	}
}

func (s *HitDetectionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *HitDetectionSystem) Update(_ time.Duration) {
	for _, ev := range s.reader.Read() {
		weaponID, targetID := ev.A, ev.B
		wpn, ok := ecs.Get[component.Weapon](s.world, weaponID)
		if !ok {
			weaponID, targetID = ev.B, ev.A
			if wpn, ok = ecs.Get[component.Weapon](s.world, weaponID); !ok {
				continue
			}
		}
		if ecs.Has[component.Weapon](s.world, targetID) || !ecs.Has[component.Enemy](s.world, targetID) {
			continue
		}
		h, ok := damageable(s.world, targetID)
		if !ok {
			continue
		}
		event.Emit(s.bus, event.EnemyHit{
			Target: targetID,
			Source: weaponID,
			Damage: s.formulas.CalcHitDamage(scripting.HitContext{
				Damage:       wpn.Damage,
				TargetHealth: h.Current,
				TargetMax:    h.Max,
				Kind:         event.HitWeapon.String(),
			}),
			Kind: event.HitWeapon,
		})
	}
}

// DotSystem ticks every living entity's damage-over-time timer and emits an
// EnemyHit per firing. Phase 2 (Update).
type DotSystem struct {
	world    *ecs.World
	bus      *event.Bus
	formulas scripting.Formulas
}

func NewDotSystem(w *ecs.World, bus *event.Bus, formulas scripting.Formulas) *DotSystem {
	if formulas == nil {
		formulas = scripting.Fallback{}
	}
	return &DotSystem{world: w, bus: bus, formulas: formulas}
}

func (s *DotSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *DotSystem) Update(dt time.Duration) {
	ecs.Each2(s.world, func(id ecs.EntityID, dot *component.DotTimer, h *component.Health) {
		dot.Timer.Tick(dt)
		for i := 0; i < dot.Timer.TimesFinished(); i++ {
			event.Emit(s.bus, event.EnemyHit{
				Target: id,
				Damage: s.formulas.CalcDotDamage(scripting.HitContext{
					Damage:       dot.Damage,
					TargetHealth: h.Current,
					TargetMax:    h.Max,
					Kind:         event.HitDot.String(),
				}),
				Kind: event.HitDot,
			})
		}
	}, ecs.Without[component.Dying]())
}

// DamageSystem drains EnemyHit. Damage that would take health to zero or
// below stores 0 and queues the Dying transition together with the removal
// of Health and Collider. Phase 2 (Update), after hit detection and dot.
type DamageSystem struct {
	world  *ecs.World
	bus    *event.Bus
	reader *event.Reader[event.EnemyHit]
	log    *zap.Logger
}

func NewDamageSystem(w *ecs.World, bus *event.Bus, log *zap.Logger) *DamageSystem {
	return &DamageSystem{
		world:  w,
		bus:    bus,
		reader: event.NewReader[event.EnemyHit](bus),
		log:    log,
	}
}

func (s *DamageSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *DamageSystem) Update(_ time.Duration) {
	for _, ev := range s.reader.Read() {
		s.Apply(ev.Target, ev.Damage)
	}
}

// Apply subtracts damage from target. Stale or already dying targets are
// ignored. It reports whether the hit was the killing blow.
func (s *DamageSystem) Apply(target ecs.EntityID, damage uint32) bool {
	h, ok := damageable(s.world, target)
	if !ok {
		return false
	}
	if damage < h.Current {
		h.Current -= damage
		event.Fire(s.bus, target, event.Hurt{Damage: damage, Remaining: h.Current})
		return false
	}

	h.Current = 0
	ecs.DeferInsert(s.world, target, &component.Dying{})
	ecs.DeferRemove[component.Health](s.world, target)
	ecs.DeferRemove[component.Collider](s.world, target)
	pos := worldPosition(s.world, target)
	event.Emit(s.bus, event.EnemyDied{Entity: target, Pos: pos})
	event.Fire(s.bus, target, event.Hurt{Damage: damage, Remaining: 0})
	s.log.Debug("enemy died", zap.Stringer("entity", target))
	return true
}
