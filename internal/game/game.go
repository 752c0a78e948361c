// Package game assembles a play session: the world, the event bus, the
// resources and the fixed system schedule.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/config"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	"github.com/noname-game/horde/internal/core/rng"
	coresys "github.com/noname-game/horde/internal/core/system"
	"github.com/noname-game/horde/internal/data"
	"github.com/noname-game/horde/internal/hud"
	"github.com/noname-game/horde/internal/scripting"
	"github.com/noname-game/horde/internal/system"
	"github.com/noname-game/horde/internal/vmath"
	"github.com/noname-game/horde/internal/world"
	"go.uber.org/zap"
)

// ErrNoPlayer is returned when the player cannot be built at startup.
var ErrNoPlayer = errors.New("player could not be spawned")

// Options are the collaborators a session is built from. Zero fields get
// defaults: an empty library, the built-in drop table, Go damage formulas,
// a randomness source seeded from config and no input.
type Options struct {
	Library  *data.Library
	Drops    *data.DropTable
	Formulas scripting.Formulas
	Source   rng.Source
	Input    system.InputSource
}

// Game is one play session. Not safe for concurrent use; the frontend or the
// simulate loop drives it from a single goroutine.
type Game struct {
	cfg *config.Config
	log *zap.Logger

	world    *ecs.World
	bus      *event.Bus
	runner   *coresys.Runner
	inv      *world.Inventory
	grid     *world.ProximityGrid
	input    *system.InputState
	viewport *system.Viewport
	lib      *data.Library

	anim    *system.AnimationSystem
	spawner *system.SpawnerSystem
	player  ecs.EntityID
}

// New builds the schedule and spawns the player.
func New(cfg *config.Config, log *zap.Logger, opts Options) (*Game, error) {
	if opts.Library == nil {
		opts.Library = data.NewLibrary()
	}
	if opts.Drops == nil {
		opts.Drops = data.DefaultDropTable()
	}
	if opts.Formulas == nil {
		opts.Formulas = scripting.Fallback{}
	}
	if opts.Source == nil {
		opts.Source = rng.New(cfg.Game.Seed)
	}

	g := &Game{
		cfg:      cfg,
		log:      log,
		world:    ecs.NewWorld(),
		bus:      event.NewBus(),
		runner:   coresys.NewRunner(),
		inv:      world.NewInventory(),
		grid:     world.NewProximityGrid(cfg.Proximity.CellSize),
		input:    &system.InputState{},
		viewport: &system.Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height},
		lib:      opts.Library,
	}
	g.world.OnDestroy(g.bus.Forget)
	system.ObserveInventory(g.bus, g.inv)
	g.schedule(opts)

	if err := g.spawnPlayer(); err != nil {
		return nil, err
	}
	log.Info("session started",
		zap.Stringer("player", g.player),
		zap.Int("clips", g.lib.Count()),
		zap.Int("drop_kinds", opts.Drops.Count()),
	)
	return g, nil
}

func (g *Game) schedule(opts Options) {
	w, bus, cfg, log := g.world, g.bus, g.cfg, g.log
	hasPlayer := system.PlayerExists(w)
	gate := func(s coresys.System) coresys.System { return coresys.RunIf(s, hasPlayer) }

	g.anim = system.NewAnimationSystem(w, bus, g.lib, cfg.Animation.FrameDuration, log)
	g.spawner = system.NewSpawnerSystem(w, bus, g.lib, opts.Source, g.viewport, cfg, log)

	// Phase order is fixed by the runner; registration order within a phase
	// is the order below.
	systems := []coresys.System{
		system.NewInputSystem(opts.Input, g.input),

		gate(system.NewPlayerMovementSystem(w, bus, g.input)),
		gate(system.NewEnemySteeringSystem(w, bus, cfg.Enemy.Deadzone)),
		system.NewWeaponOrbitSystem(w),
		gate(g.spawner),

		system.NewTransformPropagationSystem(w),
		gate(system.NewProximitySystem(w, bus, g.grid, cfg.Proximity.ColliderRadius, cfg.Proximity.RebuildEvery)),
		system.NewCollisionSystem(w, bus),
		system.NewHitDetectionSystem(w, bus, opts.Formulas),
		system.NewDotSystem(w, bus, opts.Formulas),
		system.NewDamageSystem(w, bus, log),

		system.NewDyingSystem(w, g.lib, cfg.Enemy.DeathSuffix, cfg.Enemy.DeathTint.Color(), log),
		g.anim,
		system.NewResourceDropSystem(w, bus, g.lib, opts.Drops, opts.Source, cfg, log),
		system.NewDeathDespawnSystem(w, bus),
		gate(system.NewHomingSystem(w, g.grid, cfg.Resources)),
		gate(system.NewPickupSystem(w, bus)),
		system.NewFlashSystem(w, bus, cfg.Flash.Color.Color(), cfg.Flash.Duration),

		system.NewReportSystem(g.inv, log),

		system.NewCleanupSystem(w, bus),
	}
	for _, s := range systems {
		g.runner.Register(s)
	}
}

// spawnPlayer builds the player with its camera and orb children. This runs
// outside a tick, so components are inserted immediately.
func (g *Game) spawnPlayer() error {
	pc := g.cfg.Player
	arch, err := g.lib.Archetype(pc.Archetype, pc.IdleClip)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoPlayer, err)
	}

	w := g.world
	id := w.CreateEntity()
	_ = ecs.Insert(w, id, &component.Player{})
	_ = ecs.Insert(w, id, ptr(component.Name(pc.Archetype)))
	_ = ecs.Insert(w, id, component.NewTransform(0, 0))
	_ = ecs.Insert(w, id, &component.GlobalTransform{Scale: 1})
	_ = ecs.Insert(w, id, ptr(component.Speed(pc.Speed)))
	_ = ecs.Insert(w, id, component.NewHealth(pc.Health))
	_ = ecs.Insert(w, id, ptr(component.Idle))
	_ = ecs.Insert(w, id, &component.Sprite{
		Sheet: arch.Sheet.Name,
		Tint:  component.White,
		W:     arch.Layout.TileWidth,
		H:     arch.Layout.TileHeight,
	})
	_ = ecs.Insert(w, id, &component.Animation{
		Clip:          arch.StartClip,
		Frames:        arch.Frames,
		FrameDuration: g.cfg.Animation.FrameDuration,
	})
	_ = ecs.Insert(w, id, component.RectCollider(pc.ColliderWidth, pc.ColliderHeight))
	_ = ecs.Insert(w, id, component.NewCollidingEntities())
	system.ObserveFacing(w, g.bus, id)
	g.anim.FollowDirection(id, pc.IdleClip, pc.RunClipPrefix)

	camera := w.CreateEntity()
	_ = ecs.Insert(w, camera, &component.Camera{})
	_ = ecs.Insert(w, camera, component.NewTransform(0, 0))
	_ = ecs.Insert(w, camera, &component.GlobalTransform{Scale: 1})
	if err := w.SetParent(camera, id); err != nil {
		return fmt.Errorf("%w: camera: %w", ErrNoPlayer, err)
	}

	wc := g.cfg.Weapon
	orb := w.CreateEntity()
	offset := system.Orbit(wc.Radius, 0)
	_ = ecs.Insert(w, orb, &component.Weapon{
		Kind:          component.WeaponOrb,
		Damage:        wc.Damage,
		RotationSpeed: wc.RotationSpeed,
	})
	_ = ecs.Insert(w, orb, ptr(component.Name("orb")))
	_ = ecs.Insert(w, orb, component.NewTransform(offset.X, offset.Y))
	_ = ecs.Insert(w, orb, &component.GlobalTransform{Pos: offset, Scale: 1})
	_ = ecs.Insert(w, orb, &component.Sprite{Tint: component.White, W: 2 * wc.ColliderRadius, H: 2 * wc.ColliderRadius})
	_ = ecs.Insert(w, orb, component.CircleCollider(wc.ColliderRadius))
	if err := w.SetParent(orb, id); err != nil {
		return fmt.Errorf("%w: orb: %w", ErrNoPlayer, err)
	}

	g.player = id
	return nil
}

// Tick advances the session by dt.
func (g *Game) Tick(dt time.Duration) {
	g.runner.Tick(dt)
}

// Step advances the session by the configured tick rate.
func (g *Game) Step() {
	g.Tick(g.cfg.Game.TickRate)
}

// Reset starts a new session: every entity is despawned, the inventory is
// zeroed and a fresh player is spawned.
func (g *Game) Reset() error {
	g.world.Clear()
	g.bus.Clear()
	g.inv.Reset()
	g.input.Axis = vmath.Vec2{}
	if err := g.spawnPlayer(); err != nil {
		return err
	}
	g.log.Info("session reset", zap.Stringer("player", g.player))
	return nil
}

// SetViewport changes the extent the spawner places enemies around.
func (g *Game) SetViewport(width, height float64) {
	g.viewport.Width, g.viewport.Height = width, height
}

func (g *Game) World() *ecs.World           { return g.world }
func (g *Game) Bus() *event.Bus             { return g.bus }
func (g *Game) Inventory() *world.Inventory { return g.inv }
func (g *Game) Input() *system.InputState   { return g.input }
func (g *Game) Ticks() uint64               { return g.runner.Ticks() }
func (g *Game) Spawned() int                { return g.spawner.Spawned() }

// Player returns the live player, if any.
func (g *Game) Player() (ecs.EntityID, bool) {
	if !g.world.Alive(g.player) {
		return ecs.NoEntity, false
	}
	return g.player, true
}

// CameraPosition is the view centre in world coordinates.
func (g *Game) CameraPosition() vmath.Vec2 {
	id, ok := ecs.Single[component.Camera](g.world)
	if !ok {
		return vmath.Vec2{}
	}
	if gt, ok := ecs.Get[component.GlobalTransform](g.world, id); ok {
		return gt.Pos
	}
	return vmath.Vec2{}
}

// Stats collects the inspector numbers.
func (g *Game) Stats() hud.Stats {
	s := hud.Stats{
		Tick:      g.runner.Ticks(),
		Entities:  g.world.Len(),
		Enemies:   len(ecs.Query(g.world, ecs.With[component.Enemy]())),
		Dying:     len(ecs.Query(g.world, ecs.With[component.Dying]())),
		Resources: len(ecs.Query(g.world, ecs.With[component.Resource]())),
		Colliders: len(ecs.Query(g.world, ecs.With[component.Collider]())),
	}
	if id, ok := g.Player(); ok {
		pos := g.CameraPosition()
		s.Player = fmt.Sprintf("%s at (%.0f, %.0f)", id, pos.X, pos.Y)
		if h, ok := ecs.Get[component.Health](g.world, id); ok {
			s.Player += fmt.Sprintf(" hp %d/%d", h.Current, h.Max)
		}
	}
	return s
}

func ptr[T any](v T) *T { return &v }
