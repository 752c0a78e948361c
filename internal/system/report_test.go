package system

import (
	"testing"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReport_LogsOnChange(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	inv := world.NewInventory()
	s := NewReportSystem(inv, zap.New(core))

	s.Update(frame)
	assert.Zero(t, logs.Len())

	inv.Add(component.Gold, 2)
	inv.Add(component.Wood, 1)
	s.Update(frame)
	s.Update(frame)

	entries := logs.FilterMessage("inventory changed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, uint32(2), fields["gold"])
	assert.Equal(t, uint32(1), fields["wood"])
	assert.Equal(t, uint32(0), fields["gems"])
}
