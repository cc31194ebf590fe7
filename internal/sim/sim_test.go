package sim

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/plus3/santa/ecs"
	"github.com/plus3/santa/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld(t *testing.T) *game.World {
	t.Helper()
	w, err := game.NewWorld(game.Options{Width: 800, Height: 600, Seed: 11})
	require.NoError(t, err)
	return w
}

// arrange moves the first present to dx,dy from the player, parks every other
// object in the far corner and the snowflakes at the given offsets.
func arrange(w *game.World, present game.Position, snowflakes ...game.Position) {
	player := w.PlayerPosition()
	placedPresent := false
	for o := range ecs.NewView[tracked](w.Storage()).Iter() {
		switch *o.Kind {
		case game.KindPresent:
			if !placedPresent {
				*o.Position = game.Position{X: player.X + present.X, Y: player.Y + present.Y}
				placedPresent = true
				continue
			}
			*o.Position = game.Position{X: 780, Y: 580}
		case game.KindSnowflake:
			if len(snowflakes) > 0 {
				*o.Position = game.Position{X: player.X + snowflakes[0].X, Y: player.Y + snowflakes[0].Y}
				snowflakes = snowflakes[1:]
				continue
			}
			*o.Position = game.Position{X: 20, Y: 580}
		}
	}
}

func TestAutopilotSeeksPresent(t *testing.T) {
	w := newWorld(t)
	pilot := NewAutopilot(w)

	arrange(w, game.Position{X: 150, Y: 0})
	assert.Equal(t, game.DirRight, pilot.Directions())
	assert.True(t, pilot.IsKeyPressed(game.KeyArrowRight))
	assert.False(t, pilot.IsKeyPressed(game.KeyArrowLeft))
	assert.False(t, pilot.IsKeyPressed(game.KeyL))

	arrange(w, game.Position{X: -100, Y: -100})
	assert.Equal(t, game.DirLeft|game.DirUp, pilot.Directions())
}

func TestAutopilotDecidesOncePerFrame(t *testing.T) {
	w := newWorld(t)
	pilot := NewAutopilot(w)

	arrange(w, game.Position{X: 150, Y: 0})
	for _, k := range game.AllKeys() {
		pilot.IsKeyPressed(k)
	}
	assert.True(t, pilot.IsKeyPressed(game.KeyArrowRight))

	// the same frame keeps its decision after the world changes
	arrange(w, game.Position{X: -150, Y: 0})
	assert.True(t, pilot.IsKeyPressed(game.KeyArrowRight))
	assert.False(t, pilot.IsKeyPressed(game.KeyArrowLeft))

	w.Step(0, nil)
	assert.True(t, pilot.IsKeyPressed(game.KeyArrowLeft))
	assert.False(t, pilot.IsKeyPressed(game.KeyArrowRight))
}

func TestAutopilotAvoidsSnowflake(t *testing.T) {
	w := newWorld(t)
	pilot := NewAutopilot(w)

	// present far to the right, snowflake just to the right
	arrange(w, game.Position{X: 300, Y: 0}, game.Position{X: 30, Y: 0})
	assert.True(t, pilot.Directions().Has(game.DirLeft))
}

func TestRunFixedStopsAtDuration(t *testing.T) {
	var out bytes.Buffer
	report, err := Run(context.Background(), Options{
		Width:    800,
		Height:   600,
		Seed:     5,
		TPS:      60,
		Duration: time.Second,
		Out:      &out,
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, report.Frames, int64(60))
	assert.Positive(t, report.Frames)
	assert.Equal(t, report.Outcome, report.Session.Outcome)
	assert.Len(t, report.FrameStats.Samples, int(report.Frames))
	assert.NotNil(t, report.Scheduler)
	if report.Outcome == game.Playing {
		assert.Equal(t, int64(60), report.Frames)
		assert.Empty(t, out.String())
	} else {
		assert.Equal(t, report.Outcome.Message()+"\n", out.String())
	}
}

func TestRunIsDeterministic(t *testing.T) {
	opts := Options{Width: 800, Height: 600, Seed: 8, TPS: 30, Duration: 20 * time.Second}
	a, err := Run(context.Background(), opts)
	require.NoError(t, err)
	b, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, a.Session, b.Session)
	assert.Equal(t, a.Frames, b.Frames)
	assert.Equal(t, a.Remaining, b.Remaining)
}

func TestRunRealtime(t *testing.T) {
	report, err := Run(context.Background(), Options{
		Width:    800,
		Height:   600,
		TPS:      100,
		Duration: 100 * time.Millisecond,
		Realtime: true,
	})
	require.NoError(t, err)
	assert.Positive(t, report.Frames)
	assert.True(t, report.Realtime)
}

func TestRunRejectsBadOptions(t *testing.T) {
	_, err := Run(context.Background(), Options{Width: 800, Height: 600})
	assert.Error(t, err)

	_, err = Run(context.Background(), Options{Width: 100, Height: 100, TPS: 60})
	assert.Error(t, err)
}

func TestRunHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, Options{Width: 800, Height: 600, TPS: 60})
	require.NoError(t, err)
	assert.Zero(t, report.Frames)
}

func TestReportGenerate(t *testing.T) {
	report, err := Run(context.Background(), Options{Width: 800, Height: 600, Seed: 2, TPS: 60, Duration: 2 * time.Second})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	text := buf.String()
	assert.Contains(t, text, "# Santa Simulation Report")
	assert.Contains(t, text, "**Seed:** 2")
	assert.Contains(t, text, "**Window:** 800x600")
	assert.Contains(t, text, "**Present left:**")
	assert.Contains(t, text, "| movement | MoveAutoMoversSystem |")
	assert.Contains(t, text, "| evaluate | LoseSystem |")
}
