package event

import (
	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/vmath"
)

// Targeted events (Fire/Observe).

// DirectionChanged is fired at an entity whose MovementDirection changed.
type DirectionChanged struct {
	From, To component.MovementDirection
}

// Hurt is fired at an entity after damage was subtracted from its health.
type Hurt struct {
	Damage    uint32
	Remaining uint32
}

// ResourceCollected is fired at a resource entity as the player picks it up.
type ResourceCollected struct {
	Kind   component.ResourceKind
	Amount uint32
}

// Broadcast events (Emit/Reader).

// CollisionStarted reports that A and B began overlapping. A < B.
type CollisionStarted struct {
	A, B ecs.EntityID
}

// CollisionEnded reports that A and B stopped overlapping. A < B.
type CollisionEnded struct {
	A, B ecs.EntityID
}

type HitKind int

const (
	HitWeapon HitKind = iota
	HitDot
)

func (k HitKind) String() string {
	if k == HitDot {
		return "dot"
	}
	return "weapon"
}

// EnemyHit asks the damage system to subtract Damage from Target.
type EnemyHit struct {
	Target ecs.EntityID
	Source ecs.EntityID // weapon entity; NoEntity for damage over time
	Damage uint32
	Kind   HitKind
}

// AnimationRepetitionEnd is emitted each time the active clip of Entity
// completes a full loop. Repetition counts from 1.
type AnimationRepetitionEnd struct {
	Entity     ecs.EntityID
	Clip       string
	Repetition uint32
}

type EnemySpawned struct {
	Entity    ecs.EntityID
	Archetype string
	Pos       vmath.Vec2
}

// EnemyDied is emitted on the Alive to Dying transition.
type EnemyDied struct {
	Entity ecs.EntityID
	Pos    vmath.Vec2
}

type ColliderAttached struct {
	Entity ecs.EntityID
}

type ResourceDropped struct {
	Entity ecs.EntityID
	Kind   component.ResourceKind
	Pos    vmath.Vec2
}
