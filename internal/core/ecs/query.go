package ecs

import "reflect"

// Filter is one AND-composed term of a query: the entity must have
// (With) or lack (Without) a component type.
type Filter struct {
	typ     reflect.Type
	exclude bool
}

func With[T any]() Filter    { return Filter{typ: typeOf[T]()} }
func Without[T any]() Filter { return Filter{typ: typeOf[T](), exclude: true} }

// Query returns the ids matching every filter, in ascending id order.
// It iterates the smallest included store and checks the others.
// A query without any With term matches nothing.
func Query(w *World, filters ...Filter) []EntityID {
	var (
		include  []Store
		exclude  []Store
		smallest Store
	)
	for _, f := range filters {
		s, ok := w.registry.lookup(f.typ)
		if f.exclude {
			if ok {
				exclude = append(exclude, s)
			}
			continue
		}
		if !ok {
			return nil
		}
		include = append(include, s)
		if smallest == nil || s.Len() < smallest.Len() {
			smallest = s
		}
	}
	if smallest == nil {
		return nil
	}

	out := make([]EntityID, 0, smallest.Len())
next:
	for _, id := range smallest.IDs() {
		for _, s := range include {
			if s != smallest && !s.Has(id) {
				continue next
			}
		}
		for _, s := range exclude {
			if s.Has(id) {
				continue next
			}
		}
		out = append(out, id)
	}
	return out
}

// Each iterates over entities that have component A and match filters.
func Each[A any](w *World, fn func(EntityID, *A), filters ...Filter) {
	sa := StoreOf[A](w.registry)
	for _, id := range Query(w, append(filters, With[A]())...) {
		a, _ := sa.Get(id)
		fn(id, a)
	}
}

// Each2 iterates over entities that have both component A and B.
func Each2[A, B any](w *World, fn func(EntityID, *A, *B), filters ...Filter) {
	sa, sb := StoreOf[A](w.registry), StoreOf[B](w.registry)
	for _, id := range Query(w, append(filters, With[A](), With[B]())...) {
		a, _ := sa.Get(id)
		b, _ := sb.Get(id)
		fn(id, a, b)
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](w *World, fn func(EntityID, *A, *B, *C), filters ...Filter) {
	sa, sb, sc := StoreOf[A](w.registry), StoreOf[B](w.registry), StoreOf[C](w.registry)
	for _, id := range Query(w, append(filters, With[A](), With[B](), With[C]())...) {
		a, _ := sa.Get(id)
		b, _ := sb.Get(id)
		c, _ := sc.Get(id)
		fn(id, a, b, c)
	}
}

// Single returns the only entity carrying T. ok is false when there are
// zero or several.
func Single[T any](w *World) (EntityID, bool) {
	s := StoreOf[T](w.registry)
	if s.Len() != 1 {
		return NoEntity, false
	}
	return s.IDs()[0], true
}

// Any reports whether at least one entity carries T.
func Any[T any](w *World) bool {
	return StoreOf[T](w.registry).Len() > 0
}
