package system

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	coresys "github.com/noname-game/horde/internal/core/system"
	"github.com/noname-game/horde/internal/vmath"
)

type pair struct {
	a, b ecs.EntityID // a < b
}

func makePair(x, y ecs.EntityID) pair {
	if x > y {
		x, y = y, x
	}
	return pair{a: x, b: y}
}

// CollisionSystem computes overlaps between collider-bearing entities,
// refreshes every CollidingEntities set and emits CollisionStarted and
// CollisionEnded on changes. Phase 2 (Update), after proximity.
type CollisionSystem struct {
	world   *ecs.World
	bus     *event.Bus
	current map[pair]struct{}
}

func NewCollisionSystem(w *ecs.World, bus *event.Bus) *CollisionSystem {
	return &CollisionSystem{world: w, bus: bus, current: make(map[pair]struct{})}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

type body struct {
	id    ecs.EntityID
	pos   vmath.Vec2
	shape component.Collider
}

func (s *CollisionSystem) Update(_ time.Duration) {
	var bodies []body
	ecs.Each2(s.world, func(id ecs.EntityID, c *component.Collider, g *component.GlobalTransform) {
		shape := *c
		if g.Scale > 0 && g.Scale != 1 {
			shape.W, shape.H, shape.R = shape.W*g.Scale, shape.H*g.Scale, shape.R*g.Scale
		}
		bodies = append(bodies, body{id: id, pos: g.Pos, shape: shape})
	})

	next := make(map[pair]struct{}, len(s.current))
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			if Overlaps(bodies[i].pos, bodies[i].shape, bodies[j].pos, bodies[j].shape) {
				next[makePair(bodies[i].id, bodies[j].id)] = struct{}{}
			}
		}
	}

	ecs.Each(s.world, func(_ ecs.EntityID, ce *component.CollidingEntities) {
		clear(ce.Set)
	})
	for p := range next {
		if ce, ok := ecs.Get[component.CollidingEntities](s.world, p.a); ok {
			ce.Set[p.b] = struct{}{}
		}
		if ce, ok := ecs.Get[component.CollidingEntities](s.world, p.b); ok {
			ce.Set[p.a] = struct{}{}
		}
	}

	// Emission follows body order so events are deterministic.
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			p := makePair(bodies[i].id, bodies[j].id)
			_, now := next[p]
			_, before := s.current[p]
			if now && !before {
				event.Emit(s.bus, event.CollisionStarted{A: p.a, B: p.b})
			}
		}
	}
	var ended []pair
	for p := range s.current {
		if _, still := next[p]; !still {
			ended = append(ended, p)
		}
	}
	slices.SortFunc(ended, comparePairs)
	for _, p := range ended {
		event.Emit(s.bus, event.CollisionEnded{A: p.a, B: p.b})
	}
	s.current = next
}

func comparePairs(x, y pair) int {
	if c := cmp.Compare(x.a, y.a); c != 0 {
		return c
	}
	return cmp.Compare(x.b, y.b)
}

// Overlaps tests two colliders centred on pa and pb. Touching edges count.
func Overlaps(pa vmath.Vec2, a component.Collider, pb vmath.Vec2, b component.Collider) bool {
	switch {
	case a.Shape == component.Circle && b.Shape == component.Circle:
		return pa.Distance(pb) <= a.R+b.R
	case a.Shape == component.Rectangle && b.Shape == component.Rectangle:
		return math.Abs(pa.X-pb.X) <= (a.W+b.W)/2 && math.Abs(pa.Y-pb.Y) <= (a.H+b.H)/2
	case a.Shape == component.Circle:
		return circleRect(pa, a.R, pb, b.W, b.H)
	default:
		return circleRect(pb, b.R, pa, a.W, a.H)
	}
}

func circleRect(c vmath.Vec2, r float64, rc vmath.Vec2, w, h float64) bool {
	nearest := vmath.V(
		math.Max(rc.X-w/2, math.Min(c.X, rc.X+w/2)),
		math.Max(rc.Y-h/2, math.Min(c.Y, rc.Y+h/2)),
	)
	return nearest.Distance(c) <= r
}
