package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase { return r.phase }

func (r recorder) Update(time.Duration) { *r.log = append(*r.log, r.name) }

func TestRunner_PhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{"cleanup", PhaseCleanup, &log})
	r.Register(recorder{"collide", PhaseUpdate, &log})
	r.Register(recorder{"input", PhaseInput, &log})
	r.Register(recorder{"damage", PhaseUpdate, &log})
	r.Register(recorder{"move", PhasePreUpdate, &log})

	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"input", "move", "collide", "damage", "cleanup"}, log)
	assert.Equal(t, uint64(1), r.Ticks())
	assert.Len(t, r.Systems(), 5)
}

func TestRunner_RunIf(t *testing.T) {
	var log []string
	open := false
	r := NewRunner()
	r.Register(RunIf(recorder{"gated", PhaseUpdate, &log}, func() bool { return open }))
	r.Register(recorder{"always", PhaseUpdate, &log})

	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"always"}, log)

	open = true
	log = nil
	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"gated", "always"}, log)

	nested := RunIf(RunIf(recorder{"nested", PhaseUpdate, &log}, func() bool { return false }), func() bool { return true })
	assert.False(t, nested.(Conditional).ShouldRun())
	assert.Equal(t, PhaseUpdate, nested.Phase())
}

func TestRunner_TickPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{"input", PhaseInput, &log})
	r.Register(recorder{"anim", PhasePostUpdate, &log})
	r.TickPhase(PhasePostUpdate, time.Millisecond)
	assert.Equal(t, []string{"anim"}, log)
	assert.Zero(t, r.Ticks())
	assert.Equal(t, "post_update", PhasePostUpdate.String())
}
