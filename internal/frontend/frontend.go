// Package frontend runs a session in an ebiten window. Sprites are drawn as
// tinted shapes; sheet images are not loaded.
package frontend

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/config"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/game"
	"github.com/noname-game/horde/internal/hud"
	"github.com/noname-game/horde/internal/system"
	"github.com/noname-game/horde/internal/vmath"
)

var (
	background    = color.RGBA{R: 24, G: 28, B: 24, A: 255}
	colliderColor = color.RGBA{R: 80, G: 200, B: 255, A: 255}
)

// Keyboard is the input source: WASD or arrows to move, slash toggles the
// inspector.
type Keyboard struct{}

func (Keyboard) Poll() system.Input {
	return system.Input{
		Up:              ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:            ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:            ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:           ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		ToggleInspector: inpututil.IsKeyJustPressed(ebiten.KeySlash),
	}
}

// Frontend adapts a game session to ebiten.Game.
type Frontend struct {
	game   *game.Game
	dt     time.Duration
	width  int
	height int
}

func New(g *game.Game, window config.WindowConfig, tick time.Duration) *Frontend {
	return &Frontend{game: g, dt: tick, width: int(window.Width), height: int(window.Height)}
}

// Run opens the window and blocks until it is closed.
func Run(f *Frontend, title string) error {
	ebiten.SetWindowSize(f.width, f.height)
	ebiten.SetWindowTitle(title)
	if f.dt > 0 {
		ebiten.SetTPS(int(time.Second / f.dt))
	}
	if err := ebiten.RunGame(f); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (f *Frontend) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := f.game.Reset(); err != nil {
			return err
		}
	}
	f.game.Tick(f.dt)
	return nil
}

func (f *Frontend) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != f.width || outsideHeight != f.height) {
		f.width, f.height = outsideWidth, outsideHeight
		f.game.SetViewport(float64(outsideWidth), float64(outsideHeight))
	}
	return f.width, f.height
}

// toScreen maps world coordinates (y up, camera centred) to screen pixels.
func (f *Frontend) toScreen(p, camera vmath.Vec2) (float32, float32) {
	return float32(p.X - camera.X + float64(f.width)/2),
		float32(float64(f.height)/2 - (p.Y - camera.Y))
}

func (f *Frontend) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	w := f.game.World()
	camera := f.game.CameraPosition()
	inspect := f.game.Input().Inspector

	ecs.Each2(w, func(id ecs.EntityID, sp *component.Sprite, g *component.GlobalTransform) {
		x, y := f.toScreen(g.Pos, camera)
		if ecs.Has[component.Weapon](w, id) {
			vector.DrawFilledCircle(screen, x, y, float32(sp.W/2), sp.Tint, true)
		} else {
			vector.DrawFilledRect(screen, x-float32(sp.W/2), y-float32(sp.H/2), float32(sp.W), float32(sp.H), sp.Tint, false)
			// facing marker
			dx := float32(sp.W / 2)
			if sp.FlipX {
				dx = -dx
			}
			vector.StrokeLine(screen, x, y, x+dx, y, 2, color.Black, false)
		}
		if !inspect {
			return
		}
		if c, ok := ecs.Get[component.Collider](w, id); ok {
			if c.Shape == component.Circle {
				vector.StrokeCircle(screen, x, y, float32(c.R), 1, colliderColor, true)
			} else {
				vector.StrokeRect(screen, x-float32(c.W/2), y-float32(c.H/2), float32(c.W), float32(c.H), 1, colliderColor, false)
			}
		}
	})

	ebitenutil.DebugPrintAt(screen, hud.Tally(f.game.Inventory().Snapshot()), 8, 8)
	if inspect {
		ebitenutil.DebugPrintAt(screen, hud.Inspector(f.game.Stats()), 8, 28)
	}
}
