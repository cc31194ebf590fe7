// Package sim plays sessions without a window, steered by an autopilot.
package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/santa/internal/game"
)

// Options configures a simulated session.
type Options struct {
	Width, Height float64
	Seed          uint64
	TPS           int
	// Duration caps the session. It is game time for fixed-step runs and wall
	// time for realtime runs.
	Duration time.Duration
	// Realtime drives the world from a ticker at TPS instead of stepping as
	// fast as possible.
	Realtime bool
	Logger   *log.Logger
	// Out receives the outcome line.
	Out io.Writer
}

// Run plays one session with the autopilot until it ends, the duration is
// used up or ctx is cancelled, and reports on it.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.TPS <= 0 {
		return nil, fmt.Errorf("tps must be positive, got %d", opts.TPS)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	world, err := game.NewWorld(game.Options{
		Width:  opts.Width,
		Height: opts.Height,
		Seed:   opts.Seed,
		Logger: logger,
		Out:    opts.Out,
	})
	if err != nil {
		return nil, fmt.Errorf("create world: %w", err)
	}
	pilot := NewAutopilot(world)

	report := &Report{
		Seed:     opts.Seed,
		Width:    opts.Width,
		Height:   opts.Height,
		TPS:      opts.TPS,
		Realtime: opts.Realtime,
	}

	logger.Info("simulation started", "seed", opts.Seed, "tps", opts.TPS, "realtime", opts.Realtime)
	start := time.Now()
	if opts.Realtime {
		runRealtime(ctx, world, pilot, opts)
	} else {
		runFixed(ctx, world, pilot, opts, &report.FrameStats)
	}
	report.WallTime = time.Since(start)

	stats := world.Scheduler().GetStats()
	session := world.Session()
	report.Outcome = session.Outcome
	report.Session = session
	report.Frames = stats.Frames
	report.GameTime = time.Duration(stats.Frames) * time.Second / time.Duration(opts.TPS)
	if opts.Realtime {
		report.GameTime = report.WallTime
	}
	report.Scheduler = stats
	report.Storage = world.Storage().CollectStats()
	report.Remaining = map[string]int{
		game.KindPresent.String():   world.Remaining(game.KindPresent),
		game.KindSnowflake.String(): world.Remaining(game.KindSnowflake),
	}
	report.FrameStats.Finalize()

	logger.Info("simulation finished", "outcome", session.Outcome, "score", session.Score, "frames", stats.Frames)
	return report, nil
}

func runFixed(ctx context.Context, world *game.World, pilot *Autopilot, opts Options, frames *Stats) {
	dt := 1 / float64(opts.TPS)
	limit := int64(-1)
	if opts.Duration > 0 {
		limit = int64(opts.Duration.Seconds() * float64(opts.TPS))
	}

	for n := int64(0); limit < 0 || n < limit; n++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		running := world.Step(dt, pilot)
		frames.Samples = append(frames.Samples, time.Since(frameStart))
		if !running {
			return
		}
	}
}

func runRealtime(ctx context.Context, world *game.World, pilot *Autopilot, opts Options) {
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}
	world.Run(ctx, time.Second/time.Duration(opts.TPS), pilot)
}
