package component

import "github.com/noname-game/horde/internal/vmath"

// Transform is an entity's placement relative to its parent (or the world
// when it has none).
type Transform struct {
	Pos      vmath.Vec2
	Rotation float64 // radians
	Scale    float64
}

func NewTransform(x, y float64) *Transform {
	return &Transform{Pos: vmath.V(x, y), Scale: 1}
}

// GlobalTransform is the world-space placement composed up the parent chain.
// Written by the transform propagation system once per tick.
type GlobalTransform struct {
	Pos      vmath.Vec2
	Rotation float64
	Scale    float64
}

// Mul composes child local placement t under parent g.
func (g GlobalTransform) Mul(t Transform) GlobalTransform {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	return GlobalTransform{
		Pos:      g.Pos.Add(t.Pos.Scale(g.Scale).Rotate(g.Rotation)),
		Rotation: g.Rotation + t.Rotation,
		Scale:    g.Scale * scale,
	}
}

// Identity is the world origin.
func Identity() GlobalTransform {
	return GlobalTransform{Scale: 1}
}
