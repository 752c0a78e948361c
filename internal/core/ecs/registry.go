package ecs

import "reflect"

// Registry tracks one store per component type and supports bulk cleanup
// on entity destroy. Stores are created lazily on first use.
type Registry struct {
	stores map[reflect.Type]Store
	order  []Store
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make(map[reflect.Type]Store, 32),
		order:  make([]Store, 0, 32),
	}
}

// StoreOf returns the store for T, creating and registering it if needed.
func StoreOf[T any](r *Registry) *PtrComponentStore[T] {
	t := typeOf[T]()
	if s, ok := r.stores[t]; ok {
		return s.(*PtrComponentStore[T])
	}
	s := NewPtrComponentStore[T]()
	r.stores[t] = s
	r.order = append(r.order, s)
	return s
}

func (r *Registry) lookup(t reflect.Type) (Store, bool) {
	s, ok := r.stores[t]
	return s, ok
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.order {
		s.Remove(id)
	}
}

// Count returns how many stores hold a component for id.
func (r *Registry) Count(id EntityID) int {
	n := 0
	for _, s := range r.order {
		if s.Has(id) {
			n++
		}
	}
	return n
}
