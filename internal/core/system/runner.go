package system

import (
	"sort"
	"time"
)

// Runner executes systems in phase order each tick. Within a phase systems
// run in registration order, so data dependencies are expressed by
// registering producers before consumers.
type Runner struct {
	systems []System
	sorted  bool
	ticks   uint64
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 32),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if c, ok := s.(Conditional); ok && !c.ShouldRun() {
			continue
		}
		s.Update(dt)
	}
	r.ticks++
}

// TickPhase runs only the systems of one phase. Used by tests to drive a
// single stage of the pipeline.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() != phase {
			continue
		}
		if c, ok := s.(Conditional); ok && !c.ShouldRun() {
			continue
		}
		s.Update(dt)
	}
}

// Ticks returns the number of completed Tick calls.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Systems returns the schedule in execution order.
func (r *Runner) Systems() []System {
	r.ensureSorted()
	out := make([]System, len(r.systems))
	copy(out, r.systems)
	return out
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}

// gated wraps a System with a run condition.
type gated struct {
	System
	cond func() bool
}

func (g gated) ShouldRun() bool {
	if c, ok := g.System.(Conditional); ok && !c.ShouldRun() {
		return false
	}
	return g.cond()
}

// RunIf returns s gated on cond.
func RunIf(s System, cond func() bool) System {
	return gated{System: s, cond: cond}
}
