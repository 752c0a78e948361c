package config

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game      GameConfig      `toml:"game"`
	Window    WindowConfig    `toml:"window"`
	Player    PlayerConfig    `toml:"player"`
	Enemy     EnemyConfig     `toml:"enemy"`
	Spawner   SpawnerConfig   `toml:"spawner"`
	Proximity ProximityConfig `toml:"proximity"`
	Weapon    WeaponConfig    `toml:"weapon"`
	Resources ResourcesConfig `toml:"resources"`
	Flash     FlashConfig     `toml:"flash"`
	Animation AnimationConfig `toml:"animation"`
	Data      DataConfig      `toml:"data"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
}

type GameConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	Seed     uint64        `toml:"seed"` // 0 = seed from clock
}

type WindowConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Title  string  `toml:"title"`
}

type PlayerConfig struct {
	Archetype      string  `toml:"archetype"` // character sheet name
	IdleClip       string  `toml:"idle_clip"`
	RunClipPrefix  string  `toml:"run_clip_prefix"` // + direction name
	Speed          float64 `toml:"speed"`
	Health         uint32  `toml:"health"`
	ColliderWidth  float64 `toml:"collider_width"`
	ColliderHeight float64 `toml:"collider_height"`
}

type EnemyConfig struct {
	Archetypes     []string      `toml:"archetypes"`
	Speed          float64       `toml:"speed"`
	Health         uint32        `toml:"health"`
	Deadzone       float64       `toml:"deadzone"`
	DotPeriod      time.Duration `toml:"dot_period"`
	DotDamage      uint32        `toml:"dot_damage"` // 0 disables damage over time
	WalkSuffix     string        `toml:"walk_suffix"`
	DeathSuffix    string        `toml:"death_suffix"`
	DeathTint      RGBA          `toml:"death_tint"`
	ColliderWidth  float64       `toml:"collider_width"`
	ColliderHeight float64       `toml:"collider_height"`
}

type SpawnerConfig struct {
	Period time.Duration `toml:"period"`
	Margin float64       `toml:"margin"` // distance beyond the window edge
}

type ProximityConfig struct {
	CellSize       float64 `toml:"cell_size"`
	ColliderRadius float64 `toml:"collider_radius"`
	RebuildEvery   int     `toml:"rebuild_every"` // ticks between index rebuilds
}

type WeaponConfig struct {
	Damage         uint32  `toml:"damage"`
	Radius         float64 `toml:"radius"`
	RotationSpeed  float64 `toml:"rotation_speed"` // radians per second
	ColliderRadius float64 `toml:"collider_radius"`
}

type ResourcesConfig struct {
	PickupRadius   float64       `toml:"pickup_radius"`
	HomingDuration time.Duration `toml:"homing_duration"`
	FollowSpeed    float64       `toml:"follow_speed"`
	ColliderSize   float64       `toml:"collider_size"`
	Sheet          string        `toml:"sheet"`
}

type FlashConfig struct {
	Duration time.Duration `toml:"duration"`
	Color    RGBA          `toml:"color"`
}

type AnimationConfig struct {
	FrameDuration time.Duration `toml:"frame_duration"`
}

type DataConfig struct {
	Assets string `toml:"assets"`
	Drops  string `toml:"drops"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// RGBA is a colour written as [r, g, b, a] in TOML.
type RGBA [4]uint8

func (c RGBA) Color() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Game.TickRate <= 0:
		return fmt.Errorf("game.tick_rate must be positive")
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive")
	case len(c.Enemy.Archetypes) == 0:
		return fmt.Errorf("enemy.archetypes is empty")
	case c.Proximity.CellSize <= 0:
		return fmt.Errorf("proximity.cell_size must be positive")
	}
	if c.Proximity.RebuildEvery < 1 {
		c.Proximity.RebuildEvery = 1
	}
	return nil
}

// Default returns the built-in configuration every file overlays.
func Default() *Config {
	return &Config{
		Game: GameConfig{
			TickRate: time.Second / 60,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "NONAME",
		},
		Player: PlayerConfig{
			Archetype:      "cleric",
			IdleClip:       "player_idle",
			RunClipPrefix:  "player_running_",
			Speed:          100,
			Health:         100,
			ColliderWidth:  30,
			ColliderHeight: 35,
		},
		Enemy: EnemyConfig{
			Archetypes:     []string{"monk"},
			Speed:          30,
			Health:         40,
			Deadzone:       10,
			DotPeriod:      2 * time.Second,
			DotDamage:      10,
			WalkSuffix:     "_walk",
			DeathSuffix:    "_idle",
			DeathTint:      RGBA{110, 110, 110, 255},
			ColliderWidth:  10,
			ColliderHeight: 10,
		},
		Spawner: SpawnerConfig{
			Period: time.Second,
			Margin: 30,
		},
		Proximity: ProximityConfig{
			CellSize:       64,
			ColliderRadius: 200,
			RebuildEvery:   1,
		},
		Weapon: WeaponConfig{
			Damage:         10,
			Radius:         70,
			RotationSpeed:  5,
			ColliderRadius: 5,
		},
		Resources: ResourcesConfig{
			PickupRadius:   100,
			HomingDuration: 300 * time.Millisecond,
			FollowSpeed:    300,
			ColliderSize:   35,
			Sheet:          "resources",
		},
		Flash: FlashConfig{
			Duration: 100 * time.Millisecond,
			Color:    RGBA{255, 60, 60, 255},
		},
		Animation: AnimationConfig{
			FrameDuration: 100 * time.Millisecond,
		},
		Data: DataConfig{
			Assets: "data/yaml/assets.yaml",
			Drops:  "data/yaml/resource_drops.yaml",
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
