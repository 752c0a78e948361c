package game

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/noname-game/horde/internal/config"
	"github.com/noname-game/horde/internal/data"
	"github.com/noname-game/horde/internal/scripting"
	"go.uber.org/zap"
)

// LoadOptions reads the asset library, the drop table and the combat
// scripts named by cfg. The returned func releases the script engine.
// A missing drop table file falls back to the built-in weights.
func LoadOptions(cfg *config.Config, log *zap.Logger) (Options, func(), error) {
	lib, err := data.LoadLibrary(cfg.Data.Assets)
	if err != nil {
		return Options{}, nil, fmt.Errorf("load assets: %w", err)
	}

	drops, err := data.LoadDropTable(cfg.Data.Drops)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn("resource drop table not found, using defaults", zap.String("path", cfg.Data.Drops))
		drops = data.DefaultDropTable()
	case err != nil:
		return Options{}, nil, fmt.Errorf("load drops: %w", err)
	}

	engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return Options{}, nil, fmt.Errorf("scripting: %w", err)
	}

	log.Info("assets loaded",
		zap.Int("clips", lib.Count()),
		zap.Int("drop_kinds", drops.Count()),
	)
	return Options{Library: lib, Drops: drops, Formulas: engine}, engine.Close, nil
}
