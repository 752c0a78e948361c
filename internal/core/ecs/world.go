package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrDeadEntity is returned by immediate mutations on a despawned id.
	ErrDeadEntity = errors.New("entity is not alive")
	// ErrHierarchyCycle is returned when a re-parent would make an entity its own ancestor.
	ErrHierarchyCycle = errors.New("hierarchy cycle")
)

// World is the top-level ECS container. It owns the entity pool, the component
// registry, the parent/child tree and a deferred command queue flushed by
// CleanupSystem at the end of each tick.
//
// Structural changes requested while systems run (component insert/remove,
// despawn, re-parent) go through the queue so every system in a tick observes
// the same entity layout. Mutating the value of an existing component is
// immediate.
type World struct {
	pool      *EntityPool
	registry  *Registry
	parent    map[EntityID]EntityID
	children  map[EntityID][]EntityID
	queue     []func(*World)
	onDestroy []func(EntityID)
}

func NewWorld() *World {
	return &World{
		pool:     NewEntityPool(),
		registry: NewRegistry(),
		parent:   make(map[EntityID]EntityID),
		children: make(map[EntityID][]EntityID),
		queue:    make([]func(*World), 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

// CreateEntity reserves a live id. It holds no components until some are
// inserted, so queries do not see it before the next flush when inserts are deferred.
func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Len returns the number of live entities.
func (w *World) Len() int { return w.pool.Len() }

// OnDestroy registers a hook invoked for every entity as it is destroyed.
func (w *World) OnDestroy(fn func(EntityID)) {
	w.onDestroy = append(w.onDestroy, fn)
}

// Insert attaches (or replaces) component c on id immediately.
func Insert[T any](w *World, id EntityID, c *T) error {
	if !w.pool.Alive(id) {
		return fmt.Errorf("insert %s on %s: %w", typeOf[T](), id, ErrDeadEntity)
	}
	StoreOf[T](w.registry).Set(id, c)
	return nil
}

// Remove detaches component T from id immediately. Missing components are ignored.
func Remove[T any](w *World, id EntityID) {
	StoreOf[T](w.registry).Remove(id)
}

// Get returns the component T of id.
func Get[T any](w *World, id EntityID) (*T, bool) {
	return StoreOf[T](w.registry).Get(id)
}

// Has reports whether id carries component T.
func Has[T any](w *World, id EntityID) bool {
	return StoreOf[T](w.registry).Has(id)
}

// Defer queues fn to run at the next flush.
func (w *World) Defer(fn func(*World)) {
	w.queue = append(w.queue, fn)
}

// DeferInsert queues an insert. It is dropped if id is gone by flush time.
func DeferInsert[T any](w *World, id EntityID, c *T) {
	w.Defer(func(w *World) {
		if w.pool.Alive(id) {
			StoreOf[T](w.registry).Set(id, c)
		}
	})
}

// DeferRemove queues the removal of component T from id.
func DeferRemove[T any](w *World, id EntityID) {
	w.Defer(func(w *World) {
		StoreOf[T](w.registry).Remove(id)
	})
}

// Despawn queues id and all its descendants for destruction.
// Despawning an id twice, or a stale id, is harmless.
func (w *World) Despawn(id EntityID) {
	w.Defer(func(w *World) {
		w.DespawnNow(id)
	})
}

// DespawnNow destroys id and its descendants immediately.
func (w *World) DespawnNow(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	for _, child := range w.Children(id) {
		w.DespawnNow(child)
	}
	w.detach(id)
	delete(w.children, id)
	for _, fn := range w.onDestroy {
		fn(id)
	}
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
}

// Pending returns the number of queued commands.
func (w *World) Pending() int { return len(w.queue) }

// Flush applies all queued commands in request order and returns how many
// ran. Commands queued by commands run in the same flush.
func (w *World) Flush() int {
	n := 0
	for len(w.queue) > 0 {
		batch := w.queue
		w.queue = make([]func(*World), 0, cap(batch))
		for _, cmd := range batch {
			cmd(w)
		}
		n += len(batch)
	}
	return n
}

// Clear destroys every live entity and drops pending commands.
func (w *World) Clear() {
	w.queue = w.queue[:0]
	for idx := uint32(1); idx < w.pool.nextIndex; idx++ {
		id := NewEntityID(idx, w.pool.generations[idx])
		if _, hasParent := w.parent[id]; !hasParent {
			w.DespawnNow(id)
		}
	}
}
