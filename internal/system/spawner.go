package system

import (
	"errors"
	"time"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/config"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	"github.com/noname-game/horde/internal/core/rng"
	coresys "github.com/noname-game/horde/internal/core/system"
	"github.com/noname-game/horde/internal/core/timer"
	"github.com/noname-game/horde/internal/data"
	"github.com/noname-game/horde/internal/vmath"
	"go.uber.org/zap"
)

// SpawnDirection is the offscreen edge an enemy enters from.
type SpawnDirection int

const (
	North SpawnDirection = iota
	East
	South
	West
)

var spawnDirectionNames = [...]string{"north", "east", "south", "west"}

func (d SpawnDirection) String() string {
	if d < 0 || int(d) >= len(spawnDirectionNames) {
		return "unknown"
	}
	return spawnDirectionNames[d]
}

// Viewport is the visible extent of the world, centred on the player.
type Viewport struct {
	Width, Height float64
}

// SpawnPoint places a point margin units beyond the dir edge of a viewport
// centred on center. u in [0,1) picks the coordinate along that edge.
func SpawnPoint(dir SpawnDirection, center vmath.Vec2, vp Viewport, margin, u float64) vmath.Vec2 {
	halfW, halfH := vp.Width/2, vp.Height/2
	alongX := center.X - halfW + u*vp.Width
	alongY := center.Y - halfH + u*vp.Height
	switch dir {
	case North:
		return vmath.V(alongX, center.Y+halfH+margin)
	case South:
		return vmath.V(alongX, center.Y-halfH-margin)
	case East:
		return vmath.V(center.X+halfW+margin, alongY)
	default:
		return vmath.V(center.X-halfW-margin, alongY)
	}
}

// SpawnerSystem creates one enemy offscreen every time its timer fires.
// Phase 1 (PreUpdate), gated on the player.
type SpawnerSystem struct {
	world    *ecs.World
	bus      *event.Bus
	lib      *data.Library
	src      rng.Source
	viewport *Viewport
	cfg      config.EnemyConfig
	margin   float64
	frameDur time.Duration
	timer    timer.Timer
	spawned  int
	log      *zap.Logger
}

func NewSpawnerSystem(
	w *ecs.World,
	bus *event.Bus,
	lib *data.Library,
	src rng.Source,
	viewport *Viewport,
	cfg *config.Config,
	log *zap.Logger,
) *SpawnerSystem {
	return &SpawnerSystem{
		world:    w,
		bus:      bus,
		lib:      lib,
		src:      src,
		viewport: viewport,
		cfg:      cfg.Enemy,
		margin:   cfg.Spawner.Margin,
		frameDur: cfg.Animation.FrameDuration,
		timer:    timer.New(cfg.Spawner.Period, timer.Repeating),
		log:      log,
	}
}

func (s *SpawnerSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *SpawnerSystem) Update(dt time.Duration) {
	s.timer.Tick(dt)
	for i := 0; i < s.timer.TimesFinished(); i++ {
		if _, err := s.Spawn(); err != nil && !errors.Is(err, data.ErrMissingAsset) {
			s.log.Error("spawn enemy", zap.Error(err))
		}
	}
}

// Spawned returns how many enemies this spawner created.
func (s *SpawnerSystem) Spawned() int { return s.spawned }

// Spawn creates one enemy at a random offscreen point. A missing asset logs a
// warning and creates nothing; the next firing tries again.
func (s *SpawnerSystem) Spawn() (ecs.EntityID, error) {
	_, center, ok := playerPosition(s.world)
	if !ok {
		return ecs.NoEntity, nil
	}
	if len(s.cfg.Archetypes) == 0 {
		return ecs.NoEntity, nil
	}

	dir := SpawnDirection(s.src.IntN(4))
	pos := SpawnPoint(dir, center, *s.viewport, s.margin, s.src.Float64())
	name := s.cfg.Archetypes[0]
	if n := len(s.cfg.Archetypes); n > 1 {
		name = s.cfg.Archetypes[s.src.IntN(n)]
	}

	arch, err := s.lib.Archetype(name, name+s.cfg.WalkSuffix)
	if err == nil {
		_, err = s.lib.Clip(name + s.cfg.DeathSuffix)
	}
	if err != nil {
		s.log.Warn("skip spawn, missing asset", zap.String("archetype", name), zap.Error(err))
		return ecs.NoEntity, err
	}

	id := s.world.CreateEntity()
	ecs.DeferInsert(s.world, id, &component.Enemy{})
	ecs.DeferInsert(s.world, id, ptr(component.Name(name)))
	ecs.DeferInsert(s.world, id, component.NewTransform(pos.X, pos.Y))
	ecs.DeferInsert(s.world, id, &component.GlobalTransform{Pos: pos, Scale: 1})
	ecs.DeferInsert(s.world, id, ptr(component.Speed(s.cfg.Speed)))
	ecs.DeferInsert(s.world, id, component.NewHealth(s.cfg.Health))
	ecs.DeferInsert(s.world, id, ptr(component.Idle))
	ecs.DeferInsert(s.world, id, &component.Sprite{
		Sheet: arch.Sheet.Name,
		Tint:  component.White,
		W:     arch.Layout.TileWidth,
		H:     arch.Layout.TileHeight,
	})
	ecs.DeferInsert(s.world, id, &component.Animation{
		Clip:          arch.StartClip,
		Frames:        arch.Frames,
		FrameDuration: s.frameDur,
	})
	ecs.DeferInsert(s.world, id, &component.ColliderTemplate{
		Collider: *component.RectCollider(s.cfg.ColliderWidth, s.cfg.ColliderHeight),
	})
	if s.cfg.DotDamage > 0 {
		ecs.DeferInsert(s.world, id, &component.DotTimer{
			Timer:  timer.New(s.cfg.DotPeriod, timer.Repeating),
			Damage: s.cfg.DotDamage,
		})
	}
	ObserveFacing(s.world, s.bus, id)

	s.spawned++
	event.Emit(s.bus, event.EnemySpawned{Entity: id, Archetype: name, Pos: pos})
	s.log.Debug("enemy spawned",
		zap.Stringer("entity", id),
		zap.String("archetype", name),
		zap.Stringer("edge", dir),
	)
	return id, nil
}
