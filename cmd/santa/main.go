// santa is a small arcade game: steer Santa around the window, collect every
// present and avoid the snowflakes.
//
// Usage:
//
//	santa                 - Play in a window
//	santa simulate        - Play headless with the autopilot and print a report
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.santa/config.yaml, ./configs/santa.yaml)
//	--seed <value>      - RNG seed for spawn positions (0 = random based on time)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagSeed     uint64
	flagLogLevel string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "santa",
	Short: "Collect the presents, dodge the snowflakes",
	Long: `Santa moves with the arrow keys or J/L/I/K. Every present collected
scores a point and makes everything faster; every snowflake touched costs a
life. Collect all presents to win, lose all three lives and the game is over.

Examples:
  santa
  santa --seed 42 --debug
  santa simulate --duration 2m
  santa --config ./my-santa.yaml`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show the ImGui debug overlay")

	rootCmd.AddCommand(simulateCmd)
}
