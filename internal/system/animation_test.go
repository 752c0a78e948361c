package system

import (
	"testing"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	"github.com/noname-game/horde/internal/data"
	"github.com/noname-game/horde/internal/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAnimation_WrapsAndCounts(t *testing.T) {
	f := newFixture()
	enemy := f.spawnEnemy(vmath.V(0, 0), 40)
	s := NewAnimationSystem(f.w, f.bus, f.lib, frame, zap.NewNop())
	ends := event.NewReader[event.AnimationRepetitionEnd](f.bus)
	a, _ := ecs.Get[component.Animation](f.w, enemy)

	s.Update(frame)
	assert.Equal(t, 1, a.Frame())
	assert.Empty(t, ends.Read())

	s.Update(frame)
	assert.Equal(t, 0, a.Frame())
	assert.Equal(t, []event.AnimationRepetitionEnd{{Entity: enemy, Clip: "monk_walk", Repetition: 1}}, ends.Read())

	// One long step can complete several loops.
	s.Update(4 * frame)
	got := ends.Read()
	require.Len(t, got, 2)
	assert.Equal(t, uint32(2), got[0].Repetition)
	assert.Equal(t, uint32(3), got[1].Repetition)
}

func TestAnimation_DefaultFrameDuration(t *testing.T) {
	f := newFixture()
	id := f.w.CreateEntity()
	_ = ecs.Insert(f.w, id, &component.Animation{Clip: "monk_walk", Frames: []int{0, 1}})
	s := NewAnimationSystem(f.w, f.bus, f.lib, frame, zap.NewNop())
	s.Update(frame)
	a, _ := ecs.Get[component.Animation](f.w, id)
	assert.Equal(t, 1, a.Cursor)
}

func TestAnimation_Play(t *testing.T) {
	f := newFixture()
	enemy := f.spawnEnemy(vmath.V(0, 0), 40)
	s := NewAnimationSystem(f.w, f.bus, f.lib, frame, zap.NewNop())
	a, _ := ecs.Get[component.Animation](f.w, enemy)
	a.Cursor, a.Repetition = 1, 2

	require.NoError(t, s.Play(enemy, "monk_walk"))
	assert.Equal(t, 1, a.Cursor, "same clip keeps running")

	require.NoError(t, s.Play(enemy, "monk_idle"))
	assert.Equal(t, "monk_idle", a.Clip)
	assert.Zero(t, a.Cursor)
	assert.Zero(t, a.Repetition)

	assert.ErrorIs(t, s.Play(enemy, "monk_fly"), data.ErrMissingAsset)
	assert.Equal(t, "monk_idle", a.Clip)
}

func TestAnimation_FollowDirection(t *testing.T) {
	f := newFixture()
	player := f.spawnPlayer(vmath.V(0, 0))
	s := NewAnimationSystem(f.w, f.bus, f.lib, frame, zap.NewNop())
	s.FollowDirection(player, "player_idle", "player_running_")
	a, _ := ecs.Get[component.Animation](f.w, player)

	event.Fire(f.bus, player, event.DirectionChanged{From: component.Idle, To: component.Left})
	assert.Equal(t, "player_running_left", a.Clip)

	event.Fire(f.bus, player, event.DirectionChanged{From: component.Left, To: component.Up})
	assert.Equal(t, "player_running_left", a.Clip, "missing clip keeps the current one")

	event.Fire(f.bus, player, event.DirectionChanged{From: component.Up, To: component.Idle})
	assert.Equal(t, "player_idle", a.Clip)
}
