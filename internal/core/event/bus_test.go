package event

import (
	"testing"

	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/stretchr/testify/assert"
)

type ping struct{ N int }
type pong struct{ N int }

func TestBroadcast_EveryReaderSeesEveryEventInOrder(t *testing.T) {
	b := NewBus()
	first := NewReader[ping](b)
	second := NewReader[ping](b)

	Emit(b, ping{1})
	Emit(b, ping{2})
	assert.Equal(t, []ping{{1}, {2}}, first.Read())

	Emit(b, ping{3})
	assert.Equal(t, []ping{{3}}, first.Read(), "cursor continues from the last read")
	assert.Equal(t, []ping{{1}, {2}, {3}}, second.Read())
	assert.Nil(t, second.Read())
	assert.Equal(t, 3, Pending[ping](b))
	assert.Equal(t, 0, Pending[pong](b))
}

func TestBroadcast_UnreadEventsAreLostAtTickBoundary(t *testing.T) {
	b := NewBus()
	r := NewReader[ping](b)

	Emit(b, ping{1})
	b.Clear()
	assert.Nil(t, r.Read())
	assert.Equal(t, uint64(1), b.Tick())

	Emit(b, ping{2})
	assert.Equal(t, []ping{{2}}, r.Read())
}

func TestFire_EntityObserversThenAny(t *testing.T) {
	b := NewBus()
	target := ecs.NewEntityID(1, 0)
	other := ecs.NewEntityID(2, 0)

	var calls []string
	ObserveAny(b, func(tr Trigger[ping]) { calls = append(calls, "any") })
	Observe(b, target, func(tr Trigger[ping]) {
		calls = append(calls, "target")
		assert.Equal(t, target, tr.Target)
		assert.Equal(t, 7, tr.Event.N)
	})
	Observe(b, other, func(tr Trigger[ping]) { calls = append(calls, "other") })

	n := Fire(b, target, ping{7})
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"target", "any"}, calls)
}

func TestFire_IsSynchronousAndReentrant(t *testing.T) {
	b := NewBus()
	id := ecs.NewEntityID(1, 0)
	var got []int

	Observe(b, id, func(tr Trigger[ping]) {
		got = append(got, tr.Event.N)
		Fire(b, id, pong{tr.Event.N + 1})
		got = append(got, -tr.Event.N)
	})
	Observe(b, id, func(tr Trigger[pong]) {
		got = append(got, tr.Event.N)
	})

	Fire(b, id, ping{1})
	assert.Equal(t, []int{1, 2, -1}, got, "the nested chain completes before Fire returns")
}

func TestForget_DropsEntityObserversOnly(t *testing.T) {
	b := NewBus()
	id := ecs.NewEntityID(1, 0)
	hits := 0
	Observe(b, id, func(Trigger[ping]) { hits++ })
	Observe(b, id, func(Trigger[pong]) { hits++ })
	ObserveAny(b, func(Trigger[ping]) { hits++ })
	assert.Equal(t, 1, ObserverCount[ping](b, id))

	b.Forget(id)
	assert.Equal(t, 0, ObserverCount[ping](b, id))
	assert.Equal(t, 1, Fire(b, id, ping{}))
	assert.Equal(t, 0, Fire(b, id, pong{}))
	assert.Equal(t, 1, hits)
}
