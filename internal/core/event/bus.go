package event

import (
	"reflect"
	"sync"

	"github.com/noname-game/horde/internal/core/ecs"
)

// Bus carries two kinds of delivery.
//
// Broadcast: Emit appends to a per-type queue. Every Reader created for that
// type sees every event emitted during the current tick, in emission order,
// from the point it last read. Clear() at the tick boundary drops whatever is
// left, so a reader that does not read within the tick loses those events.
//
// Targeted: Fire invokes the observers registered for (type, entity) plus the
// "any entity" observers for that type, synchronously and re-entrantly, before
// Fire returns.
type Bus struct {
	mu        sync.Mutex // only protects observer registration
	tick      uint64
	queues    map[reflect.Type][]any
	observers map[reflect.Type]map[ecs.EntityID][]any
	global    map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		queues:    make(map[reflect.Type][]any),
		observers: make(map[reflect.Type]map[ecs.EntityID][]any),
		global:    make(map[reflect.Type][]any),
	}
}

func keyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues a broadcast event, readable by readers later in this tick.
func Emit[T any](b *Bus, event T) {
	t := keyOf[T]()
	b.queues[t] = append(b.queues[t], event)
}

// Pending returns how many events of type T were emitted this tick.
func Pending[T any](b *Bus) int {
	return len(b.queues[keyOf[T]()])
}

// Clear ends the tick: all broadcast queues are emptied and readers rewind.
func (b *Bus) Clear() {
	b.tick++
	for k := range b.queues {
		b.queues[k] = b.queues[k][:0]
	}
}

// Tick returns the number of completed Clear calls.
func (b *Bus) Tick() uint64 { return b.tick }

// Reader is one consumer's cursor into the broadcast queue of T.
type Reader[T any] struct {
	bus    *Bus
	key    reflect.Type
	tick   uint64
	cursor int
}

func NewReader[T any](b *Bus) *Reader[T] {
	return &Reader[T]{bus: b, key: keyOf[T](), tick: b.tick}
}

// Read returns the events emitted since the previous Read in this tick.
func (r *Reader[T]) Read() []T {
	if r.tick != r.bus.tick {
		r.tick = r.bus.tick
		r.cursor = 0
	}
	q := r.bus.queues[r.key]
	if r.cursor >= len(q) {
		return nil
	}
	out := make([]T, 0, len(q)-r.cursor)
	for _, ev := range q[r.cursor:] {
		out = append(out, ev.(T))
	}
	r.cursor = len(q)
	return out
}

// Trigger is what a targeted observer receives.
type Trigger[T any] struct {
	Target ecs.EntityID
	Event  T
}

// Observe registers fn for events of type T fired at target.
func Observe[T any](b *Bus, target ecs.EntityID, fn func(Trigger[T])) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := keyOf[T]()
	byEntity := b.observers[t]
	if byEntity == nil {
		byEntity = make(map[ecs.EntityID][]any)
		b.observers[t] = byEntity
	}
	byEntity[target] = append(byEntity[target], fn)
}

// ObserveAny registers fn for events of type T fired at any entity.
func ObserveAny[T any](b *Bus, fn func(Trigger[T])) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := keyOf[T]()
	b.global[t] = append(b.global[t], fn)
}

// Fire delivers event to the observers of target immediately: entity
// observers first, in registration order, then "any" observers. It returns
// how many observers ran.
func Fire[T any](b *Bus, target ecs.EntityID, event T) int {
	t := keyOf[T]()
	b.mu.Lock()
	handlers := make([]any, 0, len(b.observers[t][target])+len(b.global[t]))
	handlers = append(handlers, b.observers[t][target]...)
	handlers = append(handlers, b.global[t]...)
	b.mu.Unlock()

	trig := Trigger[T]{Target: target, Event: event}
	for _, h := range handlers {
		h.(func(Trigger[T]))(trig)
	}
	return len(handlers)
}

// Forget drops every observer bound to target. Called when it is despawned.
func (b *Bus) Forget(target ecs.EntityID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, byEntity := range b.observers {
		delete(byEntity, target)
	}
}

// ObserverCount returns how many observers are bound to target for T.
func ObserverCount[T any](b *Bus, target ecs.EntityID) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.observers[keyOf[T]()][target])
}
