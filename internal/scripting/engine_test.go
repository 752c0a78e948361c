package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestEngine_MissingDirFallsBack(t *testing.T) {
	e := newEngine(t, filepath.Join(t.TempDir(), "nothing"))

	assert.False(t, e.Has("calc_hit_damage"))
	ctx := HitContext{Damage: 12, TargetHealth: 40, TargetMax: 40, Kind: "weapon"}
	assert.Equal(t, uint32(12), e.CalcHitDamage(ctx))
	assert.Equal(t, uint32(12), e.CalcDotDamage(ctx))
}

func TestEngine_LoadsCombatScripts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "combat"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "combat", "damage.lua"), []byte(`
function calc_hit_damage(ctx)
  if ctx.kind == "weapon" then
    return ctx.damage * 2
  end
  return 0
end
`), 0o644))

	e := newEngine(t, dir)
	assert.True(t, e.Has("calc_hit_damage"))
	assert.Equal(t, uint32(20), e.CalcHitDamage(HitContext{Damage: 10, Kind: "weapon"}))
	assert.Equal(t, uint32(0), e.CalcHitDamage(HitContext{Damage: 10, Kind: "dot"}))
	assert.Equal(t, uint32(10), e.CalcDotDamage(HitContext{Damage: 10}), "undefined formula")
}

func TestEngine_BadResultsFallBack(t *testing.T) {
	e := newEngine(t, t.TempDir())
	require.NoError(t, e.LoadString(`
function calc_hit_damage(ctx) error("boom") end
function calc_dot_damage(ctx) return "lots" end
`))
	ctx := HitContext{Damage: 7}
	assert.Equal(t, uint32(7), e.CalcHitDamage(ctx), "runtime error")
	assert.Equal(t, uint32(7), e.CalcDotDamage(ctx), "non-number result")

	require.NoError(t, e.LoadString(`function calc_dot_damage(ctx) return -5 end`))
	assert.Equal(t, uint32(0), e.CalcDotDamage(ctx), "negative damage clamps to zero")

	assert.Error(t, e.LoadString(`function (`))
}

func TestEngine_ShippedScripts(t *testing.T) {
	e := newEngine(t, filepath.Join("..", "..", "scripts"))
	assert.True(t, e.Has("calc_hit_damage"))
	assert.True(t, e.Has("calc_dot_damage"))
	assert.Equal(t, uint32(10), e.CalcHitDamage(HitContext{Damage: 10, TargetHealth: 40, TargetMax: 40, Kind: "weapon"}))
	assert.Equal(t, uint32(5), e.CalcDotDamage(HitContext{Damage: 10, TargetHealth: 5, TargetMax: 40, Kind: "dot"}))
}

func TestFallback(t *testing.T) {
	var f Formulas = Fallback{}
	assert.Equal(t, uint32(3), f.CalcHitDamage(HitContext{Damage: 3}))
	assert.Equal(t, uint32(4), f.CalcDotDamage(HitContext{Damage: 4}))
}
