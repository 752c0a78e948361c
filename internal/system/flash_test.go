package system

import (
	"image/color"
	"testing"
	"time"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	"github.com/noname-game/horde/internal/vmath"
	"github.com/stretchr/testify/assert"
)

var flashRed = color.RGBA{R: 255, G: 60, B: 60, A: 255}

func TestFlash_RestoresAfterDuration(t *testing.T) {
	f := newFixture()
	enemy := f.spawnEnemy(vmath.V(0, 0), 40)
	s := NewFlashSystem(f.w, f.bus, flashRed, 100*time.Millisecond)
	sprite, _ := ecs.Get[component.Sprite](f.w, enemy)

	event.Fire(f.bus, enemy, event.Hurt{Damage: 5, Remaining: 35})
	event.Fire(f.bus, enemy, event.Hurt{Damage: 5, Remaining: 30})
	assert.Equal(t, flashRed, sprite.Tint)
	s.Update(frame)
	f.endTick()

	backup, ok := ecs.Get[component.TintBackup](f.w, enemy)
	assert.True(t, ok)
	assert.Equal(t, component.White, backup.Tint, "second hit in the tick did not back up the flash colour")

	s.Update(50 * time.Millisecond)
	assert.Equal(t, flashRed, sprite.Tint)

	// A hit during the flash restarts it.
	event.Fire(f.bus, enemy, event.Hurt{Damage: 5, Remaining: 25})
	s.Update(60 * time.Millisecond)
	assert.Equal(t, flashRed, sprite.Tint)
	f.endTick()

	s.Update(40 * time.Millisecond)
	assert.Equal(t, component.White, sprite.Tint)
	f.endTick()
	assert.False(t, ecs.Has[component.FlashTimer](f.w, enemy))
	assert.False(t, ecs.Has[component.TintBackup](f.w, enemy))
}

func TestFlash_NoSprite(t *testing.T) {
	f := newFixture()
	id := f.w.CreateEntity()
	s := NewFlashSystem(f.w, f.bus, flashRed, 100*time.Millisecond)
	s.Flash(id)
	assert.Zero(t, f.w.Pending())
}

func TestSetBaseTint(t *testing.T) {
	f := newFixture()
	enemy := f.spawnEnemy(vmath.V(0, 0), 40)
	sprite, _ := ecs.Get[component.Sprite](f.w, enemy)

	SetBaseTint(f.w, enemy, deathTint)
	assert.Equal(t, deathTint, sprite.Tint)

	s := NewFlashSystem(f.w, f.bus, flashRed, 100*time.Millisecond)
	s.Flash(enemy)
	f.endTick()
	SetBaseTint(f.w, enemy, component.White)
	assert.Equal(t, flashRed, sprite.Tint)

	s.Update(100 * time.Millisecond)
	assert.Equal(t, component.White, sprite.Tint)
}
