package system

import (
	"time"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/config"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	"github.com/noname-game/horde/internal/data"
	"github.com/noname-game/horde/internal/vmath"
)

const frame = 100 * time.Millisecond

func testLibrary() *data.Library {
	lib := data.NewLibrary()
	lib.AddLayout("grid", data.Layout{TileWidth: 16, TileHeight: 16, Columns: 4, Rows: 4})
	lib.AddSheet("characters/cleric", "cleric.png", "grid")
	lib.AddSheet("monsters/monk", "monk.png", "grid")
	lib.AddSheet("resources", "resources.png", "grid")
	lib.AddClip("player_idle", []int{0, 1})
	lib.AddClip("player_running_left", []int{2, 3})
	lib.AddClip("player_running_right", []int{4, 5})
	lib.AddClip("monk_walk", []int{0, 1})
	lib.AddClip("monk_idle", []int{2, 3})
	for _, kind := range component.AllResourceKinds() {
		lib.AddClip(kind.Clip(), []int{int(kind)})
	}
	return lib
}

type fixture struct {
	w   *ecs.World
	bus *event.Bus
	cfg *config.Config
	lib *data.Library
}

func newFixture() *fixture {
	w := ecs.NewWorld()
	bus := event.NewBus()
	w.OnDestroy(bus.Forget)
	return &fixture{w: w, bus: bus, cfg: config.Default(), lib: testLibrary()}
}

// endTick does what CleanupSystem does.
func (f *fixture) endTick() {
	f.w.Flush()
	f.bus.Clear()
}

func (f *fixture) spawnPlayer(pos vmath.Vec2) ecs.EntityID {
	id := f.w.CreateEntity()
	_ = ecs.Insert(f.w, id, &component.Player{})
	_ = ecs.Insert(f.w, id, component.NewTransform(pos.X, pos.Y))
	_ = ecs.Insert(f.w, id, &component.GlobalTransform{Pos: pos, Scale: 1})
	_ = ecs.Insert(f.w, id, ptr(component.Speed(100)))
	_ = ecs.Insert(f.w, id, ptr(component.Idle))
	_ = ecs.Insert(f.w, id, &component.Sprite{Tint: component.White})
	_ = ecs.Insert(f.w, id, &component.Animation{Clip: "player_idle", Frames: []int{0, 1}, FrameDuration: frame})
	_ = ecs.Insert(f.w, id, component.RectCollider(30, 35))
	_ = ecs.Insert(f.w, id, component.NewCollidingEntities())
	return id
}

func (f *fixture) spawnEnemy(pos vmath.Vec2, hp uint32) ecs.EntityID {
	id := f.w.CreateEntity()
	_ = ecs.Insert(f.w, id, &component.Enemy{})
	_ = ecs.Insert(f.w, id, ptr(component.Name("monk")))
	_ = ecs.Insert(f.w, id, component.NewTransform(pos.X, pos.Y))
	_ = ecs.Insert(f.w, id, &component.GlobalTransform{Pos: pos, Scale: 1})
	_ = ecs.Insert(f.w, id, ptr(component.Speed(30)))
	_ = ecs.Insert(f.w, id, component.NewHealth(hp))
	_ = ecs.Insert(f.w, id, ptr(component.Idle))
	_ = ecs.Insert(f.w, id, &component.Sprite{Tint: component.White})
	_ = ecs.Insert(f.w, id, &component.Animation{Clip: "monk_walk", Frames: []int{0, 1}, FrameDuration: frame})
	_ = ecs.Insert(f.w, id, &component.ColliderTemplate{Collider: *component.RectCollider(10, 10)})
	return id
}

func (f *fixture) spawnOrb(parent ecs.EntityID, offset vmath.Vec2, damage uint32) ecs.EntityID {
	id := f.w.CreateEntity()
	_ = ecs.Insert(f.w, id, &component.Weapon{Kind: component.WeaponOrb, Damage: damage, RotationSpeed: 5})
	_ = ecs.Insert(f.w, id, component.NewTransform(offset.X, offset.Y))
	_ = ecs.Insert(f.w, id, &component.GlobalTransform{Scale: 1})
	_ = ecs.Insert(f.w, id, component.CircleCollider(5))
	if parent != ecs.NoEntity {
		_ = f.w.SetParent(id, parent)
	}
	return id
}

// moveTo sets both transforms, as propagation would for a root entity.
func (f *fixture) moveTo(id ecs.EntityID, pos vmath.Vec2) {
	t, _ := ecs.Get[component.Transform](f.w, id)
	t.Pos = pos
	g, _ := ecs.Get[component.GlobalTransform](f.w, id)
	g.Pos = pos
}

func (f *fixture) pos(id ecs.EntityID) vmath.Vec2 {
	t, _ := ecs.Get[component.Transform](f.w, id)
	return t.Pos
}

type scriptedInput []Input

func (s *scriptedInput) Poll() Input {
	if len(*s) == 0 {
		return Input{}
	}
	in := (*s)[0]
	*s = (*s)[1:]
	return in
}
