package system

import (
	"time"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	coresys "github.com/noname-game/horde/internal/core/system"
	"github.com/noname-game/horde/internal/vmath"
)

// PlayerMovementSystem moves the player along the input axis and reports
// direction transitions. Phase 1 (PreUpdate), gated on the player.
type PlayerMovementSystem struct {
	world *ecs.World
	bus   *event.Bus
	input *InputState
}

func NewPlayerMovementSystem(w *ecs.World, bus *event.Bus, input *InputState) *PlayerMovementSystem {
	return &PlayerMovementSystem{world: w, bus: bus, input: input}
}

func (s *PlayerMovementSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *PlayerMovementSystem) Update(dt time.Duration) {
	id, ok := ecs.Single[component.Player](s.world)
	if !ok {
		return
	}
	raw := s.input.Axis

	if dir, ok := ecs.Get[component.MovementDirection](s.world, id); ok {
		setDirection(s.bus, id, dir, component.Classify(raw))
	}

	t, ok := ecs.Get[component.Transform](s.world, id)
	if !ok {
		return
	}
	speed := 0.0
	if sp, ok := ecs.Get[component.Speed](s.world, id); ok {
		speed = float64(*sp)
	}
	t.Pos = t.Pos.Add(raw.Normalize().Scale(speed * dt.Seconds()))
}

// setDirection stores next and fires DirectionChanged only on a transition.
func setDirection(bus *event.Bus, id ecs.EntityID, cur *component.MovementDirection, next component.MovementDirection) {
	if *cur == next {
		return
	}
	prev := *cur
	*cur = next
	event.Fire(bus, id, event.DirectionChanged{From: prev, To: next})
}

// EnemySteeringSystem walks every living enemy toward the player and keeps
// its facing current. Dying enemies stay put. Phase 1 (PreUpdate), gated on
// the player.
type EnemySteeringSystem struct {
	world    *ecs.World
	bus      *event.Bus
	deadzone float64
}

func NewEnemySteeringSystem(w *ecs.World, bus *event.Bus, deadzone float64) *EnemySteeringSystem {
	return &EnemySteeringSystem{world: w, bus: bus, deadzone: deadzone}
}

func (s *EnemySteeringSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EnemySteeringSystem) Update(dt time.Duration) {
	_, target, ok := playerPosition(s.world)
	if !ok {
		return
	}
	ecs.Each2(s.world, func(id ecs.EntityID, t *component.Transform, sp *component.Speed) {
		offset := target.Sub(t.Pos)
		if offset.Len() <= s.deadzone {
			return
		}
		forward := offset.Normalize()
		t.Pos = t.Pos.Add(forward.Scale(float64(*sp) * dt.Seconds()))

		if dir, ok := ecs.Get[component.MovementDirection](s.world, id); ok {
			setDirection(s.bus, id, dir, component.FromHeading(forward))
		}
	}, ecs.With[component.Enemy](), ecs.Without[component.Dying]())
}

// ObserveFacing mirrors id's sprite whenever it turns to face left or right.
// Straight up or down keeps the previous flip.
func ObserveFacing(w *ecs.World, bus *event.Bus, id ecs.EntityID) {
	event.Observe(bus, id, func(tr event.Trigger[event.DirectionChanged]) {
		sprite, ok := ecs.Get[component.Sprite](w, tr.Target)
		if !ok {
			return
		}
		switch {
		case tr.Event.To.FacesLeft():
			sprite.FlipX = true
		case tr.Event.To.FacesRight():
			sprite.FlipX = false
		}
	})
}

// WeaponOrbitSystem spins weapons about their parent's origin.
// Phase 1 (PreUpdate).
type WeaponOrbitSystem struct {
	world *ecs.World
}

func NewWeaponOrbitSystem(w *ecs.World) *WeaponOrbitSystem {
	return &WeaponOrbitSystem{world: w}
}

func (s *WeaponOrbitSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *WeaponOrbitSystem) Update(dt time.Duration) {
	ecs.Each2(s.world, func(_ ecs.EntityID, wpn *component.Weapon, t *component.Transform) {
		angle := wpn.RotationSpeed * dt.Seconds()
		t.Pos = t.Pos.Rotate(angle)
		t.Rotation += angle
	})
}

// Orbit returns the local offset of a weapon radius units from its parent
// after turning by angle radians from the +X axis.
func Orbit(radius, angle float64) vmath.Vec2 {
	return vmath.V(radius, 0).Rotate(angle)
}
