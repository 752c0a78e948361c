package system

import (
	"time"

	"github.com/noname-game/horde/internal/component"
	coresys "github.com/noname-game/horde/internal/core/system"
	"github.com/noname-game/horde/internal/world"
	"go.uber.org/zap"
)

// ReportSystem logs the inventory once per change. Phase 4 (Output).
type ReportSystem struct {
	inv  *world.Inventory
	last uint64
	log  *zap.Logger
}

func NewReportSystem(inv *world.Inventory, log *zap.Logger) *ReportSystem {
	return &ReportSystem{inv: inv, last: inv.Version(), log: log}
}

func (s *ReportSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *ReportSystem) Update(_ time.Duration) {
	v := s.inv.Version()
	if v == s.last {
		return
	}
	s.last = v
	counts := s.inv.Snapshot()
	fields := make([]zap.Field, 0, len(counts))
	for _, kind := range component.AllResourceKinds() {
		fields = append(fields, zap.Uint32(kind.String(), counts[kind]))
	}
	s.log.Info("inventory changed", fields...)
}
