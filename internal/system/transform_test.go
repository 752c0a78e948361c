package system

import (
	"math"
	"testing"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformPropagation(t *testing.T) {
	f := newFixture()
	root := f.w.CreateEntity()
	_ = ecs.Insert(f.w, root, &component.Transform{Pos: vmath.V(10, 10), Rotation: math.Pi / 2, Scale: 1})
	_ = ecs.Insert(f.w, root, &component.GlobalTransform{})

	child := f.w.CreateEntity()
	_ = ecs.Insert(f.w, child, component.NewTransform(5, 0))
	_ = ecs.Insert(f.w, child, &component.GlobalTransform{})
	require.NoError(t, f.w.SetParent(child, root))

	// No GlobalTransform of its own, but its child still inherits.
	bare := f.w.CreateEntity()
	_ = ecs.Insert(f.w, bare, component.NewTransform(0, 1))
	require.NoError(t, f.w.SetParent(bare, child))
	leaf := f.w.CreateEntity()
	_ = ecs.Insert(f.w, leaf, component.NewTransform(1, 0))
	_ = ecs.Insert(f.w, leaf, &component.GlobalTransform{})
	require.NoError(t, f.w.SetParent(leaf, bare))

	NewTransformPropagationSystem(f.w).Update(frame)

	g, _ := ecs.Get[component.GlobalTransform](f.w, child)
	assert.InDelta(t, 10, g.Pos.X, 1e-9)
	assert.InDelta(t, 15, g.Pos.Y, 1e-9)

	l, _ := ecs.Get[component.GlobalTransform](f.w, leaf)
	assert.InDelta(t, 9, l.Pos.X, 1e-9)
	assert.InDelta(t, 16, l.Pos.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, l.Rotation, 1e-9)
	assert.False(t, ecs.Has[component.GlobalTransform](f.w, bare))
}
