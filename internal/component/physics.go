package component

import (
	"slices"

	"github.com/noname-game/horde/internal/core/ecs"
)

type ShapeKind int

const (
	Rectangle ShapeKind = iota
	Circle
)

// Collider is the physical shape of an entity, centred on its global position.
type Collider struct {
	Shape ShapeKind
	W, H  float64 // Rectangle
	R     float64 // Circle
}

func RectCollider(w, h float64) *Collider { return &Collider{Shape: Rectangle, W: w, H: h} }
func CircleCollider(r float64) *Collider  { return &Collider{Shape: Circle, R: r} }

// Extent returns the radius of a circle bounding the shape.
func (c *Collider) Extent() float64 {
	if c.Shape == Circle {
		return c.R
	}
	return 0.5 * (c.W + c.H)
}

// ColliderTemplate is the collider an entity gets once it is close enough
// to the player to be worth simulating.
type ColliderTemplate struct {
	Collider Collider
}

// CollidingEntities is the current overlap set of an entity.
type CollidingEntities struct {
	Set map[ecs.EntityID]struct{}
}

func NewCollidingEntities() *CollidingEntities {
	return &CollidingEntities{Set: make(map[ecs.EntityID]struct{})}
}

func (c *CollidingEntities) Contains(id ecs.EntityID) bool {
	_, ok := c.Set[id]
	return ok
}

// IDs returns the overlap set in ascending order.
func (c *CollidingEntities) IDs() []ecs.EntityID {
	out := make([]ecs.EntityID, 0, len(c.Set))
	for id := range c.Set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
