package system

import (
	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/vmath"
)

// PlayerExists is the run condition of every system that needs the player.
func PlayerExists(w *ecs.World) func() bool {
	return func() bool {
		_, ok := ecs.Single[component.Player](w)
		return ok
	}
}

// playerPosition returns the player and its world position.
func playerPosition(w *ecs.World) (ecs.EntityID, vmath.Vec2, bool) {
	id, ok := ecs.Single[component.Player](w)
	if !ok {
		return ecs.NoEntity, vmath.Vec2{}, false
	}
	return id, worldPosition(w, id), true
}

// worldPosition reads a root entity's local transform, which is current even
// before propagation runs, and a child's last propagated global transform.
func worldPosition(w *ecs.World, id ecs.EntityID) vmath.Vec2 {
	if _, child := w.Parent(id); !child {
		if t, ok := ecs.Get[component.Transform](w, id); ok {
			return t.Pos
		}
	}
	if g, ok := ecs.Get[component.GlobalTransform](w, id); ok {
		return g.Pos
	}
	return vmath.Vec2{}
}

func ptr[T any](v T) *T { return &v }
