package system

import (
	"time"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	coresys "github.com/noname-game/horde/internal/core/system"
)

// TransformPropagationSystem recomputes GlobalTransform from the local
// transforms down the parent chain. Phase 2 (Update), first.
type TransformPropagationSystem struct {
	world *ecs.World
}

func NewTransformPropagationSystem(w *ecs.World) *TransformPropagationSystem {
	return &TransformPropagationSystem{world: w}
}

func (s *TransformPropagationSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *TransformPropagationSystem) Update(_ time.Duration) {
	for _, id := range ecs.Query(s.world, ecs.With[component.Transform]()) {
		if _, child := s.world.Parent(id); child {
			continue
		}
		s.propagate(id, component.Identity())
	}
}

func (s *TransformPropagationSystem) propagate(id ecs.EntityID, parent component.GlobalTransform) {
	local, ok := ecs.Get[component.Transform](s.world, id)
	if !ok {
		return
	}
	global := parent.Mul(*local)
	if g, ok := ecs.Get[component.GlobalTransform](s.world, id); ok {
		*g = global
	}
	for _, child := range s.world.Children(id) {
		s.propagate(child, global)
	}
}
