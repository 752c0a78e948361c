package main

import (
	"fmt"

	"github.com/noname-game/horde/internal/frontend"
	"github.com/noname-game/horde/internal/game"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		opts, closeScripts, err := game.LoadOptions(cfg, log)
		if err != nil {
			return err
		}
		defer closeScripts()
		opts.Input = frontend.Keyboard{}

		g, err := game.New(cfg, log, opts)
		if err != nil {
			return err
		}
		return frontend.Run(frontend.New(g, cfg.Window, cfg.Game.TickRate), cfg.Window.Title)
	},
}
