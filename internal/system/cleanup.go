package system

import (
	"time"

	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/core/event"
	coresys "github.com/noname-game/horde/internal/core/system"
)

// CleanupSystem applies the deferred command queue and ends the event tick.
// Phase 5 (Cleanup).
type CleanupSystem struct {
	world *ecs.World
	bus   *event.Bus
}

func NewCleanupSystem(w *ecs.World, bus *event.Bus) *CleanupSystem {
	return &CleanupSystem{world: w, bus: bus}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.Flush()
	s.bus.Clear()
}
