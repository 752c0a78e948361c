package ecs

import "fmt"

// SetParent makes child a child of parent immediately, detaching it from any
// previous parent. A child may never become its own ancestor.
func (w *World) SetParent(child, parent EntityID) error {
	if !w.pool.Alive(child) {
		return fmt.Errorf("set parent of %s: %w", child, ErrDeadEntity)
	}
	if !w.pool.Alive(parent) {
		return fmt.Errorf("set parent %s: %w", parent, ErrDeadEntity)
	}
	for cur, ok := parent, true; ok; cur, ok = w.parent[cur] {
		if cur == child {
			return fmt.Errorf("parent %s under %s: %w", child, parent, ErrHierarchyCycle)
		}
	}
	w.detach(child)
	w.parent[child] = parent
	w.children[parent] = append(w.children[parent], child)
	return nil
}

// Parent returns the parent of id, if any.
func (w *World) Parent(id EntityID) (EntityID, bool) {
	p, ok := w.parent[id]
	return p, ok
}

// Children returns a copy of id's child list in insertion order.
func (w *World) Children(id EntityID) []EntityID {
	kids := w.children[id]
	if len(kids) == 0 {
		return nil
	}
	out := make([]EntityID, len(kids))
	copy(out, kids)
	return out
}

// Ancestors returns id's parent chain, nearest first.
func (w *World) Ancestors(id EntityID) []EntityID {
	var out []EntityID
	for p, ok := w.parent[id]; ok; p, ok = w.parent[p] {
		out = append(out, p)
	}
	return out
}

func (w *World) detach(child EntityID) {
	old, ok := w.parent[child]
	if !ok {
		return
	}
	delete(w.parent, child)
	kids := w.children[old]
	for i, k := range kids {
		if k == child {
			w.children[old] = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	if len(w.children[old]) == 0 {
		delete(w.children, old)
	}
}

// DeferSetParent queues a re-parent. Failures at flush time (dead ids,
// cycles) leave the tree unchanged.
func (w *World) DeferSetParent(child, parent EntityID) {
	w.Defer(func(w *World) {
		_ = w.SetParent(child, parent)
	})
}
