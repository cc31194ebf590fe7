package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/plus3/santa/internal/game"
	"github.com/plus3/santa/internal/render"
)

var flagDebug bool

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	world, err := game.NewWorld(game.Options{
		Width:  float64(cfg.Window.Width),
		Height: float64(cfg.Window.Height),
		Seed:   cfg.Seed,
		Logger: logger,
		Out:    os.Stdout,
	})
	if err != nil {
		return err
	}

	logger.Info("starting", "seed", cfg.Seed, "assets", cfg.Assets.Dir, "debug", cfg.Debug)
	g := render.NewGame(world, render.Options{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: cfg.Window.Resizable,
		TPS:       cfg.TPS,
		Assets:    os.DirFS(cfg.Assets.Dir),
		Debug:     cfg.Debug,
		Logger:    logger,
	})
	return g.Run()
}
