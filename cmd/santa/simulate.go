package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/plus3/santa/internal/sim"
)

var (
	flagDuration time.Duration
	flagTPS      int
	flagRealtime bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a session headless with the autopilot",
	Long: `Run one session without a window. An autopilot steers Santa toward the
nearest present and away from snowflakes. The session runs until it is won or
lost, or until --duration of game time has passed, and a report is printed.

Examples:
  santa simulate
  santa simulate --seed 7 --duration 30s
  santa simulate --realtime --tps 60`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagDuration, "duration", 5*time.Minute, "Longest session to simulate")
	simulateCmd.Flags().IntVar(&flagTPS, "tps", 60, "Simulation ticks per second")
	simulateCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Tick on a wall-clock timer instead of as fast as possible")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	report, err := sim.Run(cmd.Context(), sim.Options{
		Width:    float64(cfg.Window.Width),
		Height:   float64(cfg.Window.Height),
		Seed:     cfg.Seed,
		TPS:      cfg.TPS,
		Duration: flagDuration,
		Realtime: flagRealtime,
		Logger:   logger,
		Out:      os.Stdout,
	})
	if err != nil {
		return err
	}

	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
