package system

import (
	"testing"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	"github.com/noname-game/horde/internal/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	circle := *component.CircleCollider(5)
	box := *component.RectCollider(10, 10)

	tests := []struct {
		name   string
		pa     vmath.Vec2
		a      component.Collider
		pb     vmath.Vec2
		b      component.Collider
		expect bool
	}{
		{"circles apart", vmath.V(0, 0), circle, vmath.V(11, 0), circle, false},
		{"circles touching", vmath.V(0, 0), circle, vmath.V(10, 0), circle, true},
		{"boxes overlapping", vmath.V(0, 0), box, vmath.V(9, 9), box, true},
		{"boxes touching", vmath.V(0, 0), box, vmath.V(10, 0), box, true},
		{"boxes apart", vmath.V(0, 0), box, vmath.V(0, 10.5), box, false},
		{"circle beside box", vmath.V(9, 0), circle, vmath.V(0, 0), box, true},
		{"box beside circle", vmath.V(0, 0), box, vmath.V(9, 0), circle, true},
		{"circle off corner", vmath.V(9, 9), circle, vmath.V(0, 0), box, false},
		{"circle inside box", vmath.V(1, 1), circle, vmath.V(0, 0), box, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Overlaps(tt.pa, tt.a, tt.pb, tt.b))
		})
	}
}

func TestCollision_StartedAndEnded(t *testing.T) {
	f := newFixture()
	player := f.spawnPlayer(vmath.V(0, 0))
	enemy := f.spawnEnemy(vmath.V(100, 0), 40)
	_ = ecs.Insert(f.w, enemy, component.RectCollider(10, 10))
	s := NewCollisionSystem(f.w, f.bus)
	started := event.NewReader[event.CollisionStarted](f.bus)
	ended := event.NewReader[event.CollisionEnded](f.bus)

	s.Update(frame)
	assert.Empty(t, started.Read())
	f.endTick()

	f.moveTo(enemy, vmath.V(15, 0))
	s.Update(frame)
	got := started.Read()
	require.Len(t, got, 1)
	assert.Equal(t, event.CollisionStarted{A: player, B: enemy}, got[0])
	ce, _ := ecs.Get[component.CollidingEntities](f.w, player)
	assert.Equal(t, []ecs.EntityID{enemy}, ce.IDs())
	f.endTick()

	s.Update(frame)
	assert.Empty(t, started.Read(), "continuing overlap is not a new start")
	f.endTick()

	f.moveTo(enemy, vmath.V(100, 0))
	s.Update(frame)
	assert.Equal(t, []event.CollisionEnded{{A: player, B: enemy}}, ended.Read())
	assert.Empty(t, ce.IDs())
}

func TestCollision_RemovedColliderEnds(t *testing.T) {
	f := newFixture()
	player := f.spawnPlayer(vmath.V(0, 0))
	enemy := f.spawnEnemy(vmath.V(5, 0), 40)
	_ = ecs.Insert(f.w, enemy, component.RectCollider(10, 10))
	s := NewCollisionSystem(f.w, f.bus)
	ended := event.NewReader[event.CollisionEnded](f.bus)

	s.Update(frame)
	f.endTick()
	ecs.Remove[component.Collider](f.w, enemy)
	s.Update(frame)
	assert.Equal(t, []event.CollisionEnded{{A: player, B: enemy}}, ended.Read())
}

func TestCollision_ScaledShapes(t *testing.T) {
	f := newFixture()
	a := f.spawnOrb(ecs.NoEntity, vmath.V(0, 0), 1)
	b := f.spawnOrb(ecs.NoEntity, vmath.V(0, 0), 1)
	ga, _ := ecs.Get[component.GlobalTransform](f.w, a)
	ga.Scale = 2
	f.moveTo(b, vmath.V(14, 0))
	s := NewCollisionSystem(f.w, f.bus)
	started := event.NewReader[event.CollisionStarted](f.bus)

	s.Update(frame)
	assert.Len(t, started.Read(), 1, "radius 10 plus radius 5 reaches 14")
}
