package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// HitContext is what a damage formula sees.
type HitContext struct {
	Damage       uint32 // base damage
	TargetHealth uint32
	TargetMax    uint32
	Kind         string // "weapon" or "dot"
}

// Formulas computes the damage a hit actually deals.
type Formulas interface {
	CalcHitDamage(ctx HitContext) uint32
	CalcDotDamage(ctx HitContext) uint32
}

// Fallback returns the base damage unchanged. Used when no script is loaded.
type Fallback struct{}

func (Fallback) CalcHitDamage(ctx HitContext) uint32 { return ctx.Damage }
func (Fallback) CalcDotDamage(ctx HitContext) uint32 { return ctx.Damage }

// Engine wraps a single gopher-lua VM holding the combat formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts under scriptsDir/combat.
// A missing directory is not an error: every formula then falls back to Go.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(filepath.Join(scriptsDir, "combat")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load combat scripts: %w", err)
	}
	for _, name := range []string{"calc_hit_damage", "calc_dot_damage"} {
		if !e.Has(name) {
			log.Debug("lua function not defined, using go fallback", zap.String("func", name))
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a chunk of Lua source, replacing any formulas it defines.
func (e *Engine) LoadString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load lua chunk: %w", err)
	}
	return nil
}

// Has reports whether a global Lua function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// CalcHitDamage calls Lua calc_hit_damage(ctx), or returns the base damage.
func (e *Engine) CalcHitDamage(ctx HitContext) uint32 {
	return e.callDamage("calc_hit_damage", ctx)
}

// CalcDotDamage calls Lua calc_dot_damage(ctx), or returns the base damage.
func (e *Engine) CalcDotDamage(ctx HitContext) uint32 {
	return e.callDamage("calc_dot_damage", ctx)
}

func (e *Engine) callDamage(name string, ctx HitContext) uint32 {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return ctx.Damage
	}

	t := e.vm.NewTable()
	t.RawSetString("damage", lua.LNumber(ctx.Damage))
	t.RawSetString("target_health", lua.LNumber(ctx.TargetHealth))
	t.RawSetString("target_max", lua.LNumber(ctx.TargetMax))
	t.RawSetString("kind", lua.LString(ctx.Kind))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return ctx.Damage
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("func", name))
		return ctx.Damage
	}
	if n < 0 {
		return 0
	}
	return uint32(n)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
