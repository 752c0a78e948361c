package system

import (
	"time"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	coresys "github.com/noname-game/horde/internal/core/system"
	"github.com/noname-game/horde/internal/world"
)

// ProximitySystem rebuilds the proximity grid every rebuildEvery ticks and
// equips colliders on enemies that come within radius of the player.
// Phase 2 (Update), after transform propagation, gated on the player.
type ProximitySystem struct {
	world        *ecs.World
	bus          *event.Bus
	grid         *world.ProximityGrid
	radius       float64
	rebuildEvery int
	ticks        int
	attached     int
}

func NewProximitySystem(w *ecs.World, bus *event.Bus, grid *world.ProximityGrid, radius float64, rebuildEvery int) *ProximitySystem {
	if rebuildEvery < 1 {
		rebuildEvery = 1
	}
	return &ProximitySystem{world: w, bus: bus, grid: grid, radius: radius, rebuildEvery: rebuildEvery}
}

func (s *ProximitySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ProximitySystem) Update(_ time.Duration) {
	if s.ticks%s.rebuildEvery == 0 {
		s.Rebuild()
	}
	s.ticks++

	_, center, ok := playerPosition(s.world)
	if !ok {
		return
	}
	for _, id := range s.grid.Within(center, s.radius) {
		s.attach(id)
	}
}

// Rebuild reindexes every entity that has a global position.
func (s *ProximitySystem) Rebuild() {
	s.grid.Reset()
	ecs.Each(s.world, func(id ecs.EntityID, g *component.GlobalTransform) {
		s.grid.Insert(id, g.Pos)
	})
}

// attach is a no-op for anything already equipped, dying, or without a
// template. The insert lands at the next flush.
func (s *ProximitySystem) attach(id ecs.EntityID) {
	if !s.world.Alive(id) ||
		ecs.Has[component.Collider](s.world, id) ||
		ecs.Has[component.Dying](s.world, id) {
		return
	}
	tmpl, ok := ecs.Get[component.ColliderTemplate](s.world, id)
	if !ok {
		return
	}
	if h, ok := ecs.Get[component.Health](s.world, id); ok && h.Current == 0 {
		return
	}
	c := tmpl.Collider
	ecs.DeferInsert(s.world, id, &c)
	ecs.DeferRemove[component.ColliderTemplate](s.world, id)
	s.attached++
	event.Emit(s.bus, event.ColliderAttached{Entity: id})
}

// Attached returns how many colliders this system has equipped.
func (s *ProximitySystem) Attached() int { return s.attached }
