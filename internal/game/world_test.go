package game_test

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

type placed struct {
	ecs.EntityId
	*game.Kind
	*game.Position
}

type heart struct {
	*game.Heart
}

func newWorld(t *testing.T) (*game.World, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	w, err := game.NewWorld(game.Options{Width: 800, Height: 600, Seed: 3, Out: out})
	require.NoError(t, err)
	return w, out
}

// moveOnto puts one live object of kind k on top of the player and reports
// whether one was found.
func moveOnto(w *game.World, k game.Kind) bool {
	target := w.PlayerPosition()
	for p := range ecs.NewView[placed](w.Storage()).Iter() {
		if *p.Kind == k {
			*p.Position = target
			return true
		}
	}
	return false
}

func heartSlots(w *game.World) []uint32 {
	var slots []uint32
	for h := range ecs.NewView[heart](w.Storage()).Iter() {
		slots = append(slots, h.Slot)
	}
	return slots
}

func TestNewWorld(t *testing.T) {
	w, out := newWorld(t)

	assert.Equal(t, game.PresentCount, w.Remaining(game.KindPresent))
	assert.Equal(t, game.SnowflakeCount, w.Remaining(game.KindSnowflake))
	assert.Equal(t, 1, w.Remaining(game.KindPlayer))
	assert.Equal(t, game.Position{X: 400, Y: 300}, w.PlayerPosition())
	assert.Equal(t, game.NewSession(), w.Session())
	assert.Equal(t, "Score: 0", w.ScoreText())
	assert.ElementsMatch(t, []uint32{1, 2, 3}, heartSlots(w))
	assert.Equal(t, game.Stages(), w.Scheduler().Stages())
	assert.Empty(t, out.String())
}

func TestNewWorldRejectsTinyWindow(t *testing.T) {
	_, err := game.NewWorld(game.Options{Width: 320, Height: 240})
	assert.Error(t, err)
}

func TestStepWithoutEventsChangesNothing(t *testing.T) {
	w, out := newWorld(t)

	for i := 0; i < 5; i++ {
		assert.True(t, w.Step(0, nil))
	}

	assert.Equal(t, game.NewSession(), w.Session())
	assert.Equal(t, game.PresentCount, w.Remaining(game.KindPresent))
	assert.Empty(t, out.String())
}

func TestPresentPickup(t *testing.T) {
	w, _ := newWorld(t)

	require.True(t, moveOnto(w, game.KindPresent))
	assert.True(t, w.Step(0, nil))

	s := w.Session()
	assert.Equal(t, uint32(1), s.Score)
	assert.Equal(t, game.InitialSpeed+game.SpeedIncrement, s.Speed)
	assert.Equal(t, uint32(game.InitialLives), s.Lives)
	assert.Equal(t, game.PresentCount-1, w.Remaining(game.KindPresent))
	assert.Equal(t, "Score: 1", w.ScoreText())
}

func TestSnowflakeHit(t *testing.T) {
	w, _ := newWorld(t)

	require.True(t, moveOnto(w, game.KindSnowflake))
	assert.True(t, w.Step(0, nil))

	s := w.Session()
	assert.Equal(t, uint32(game.InitialLives-1), s.Lives)
	assert.Equal(t, uint32(0), s.Score)
	assert.Equal(t, game.InitialSpeed, s.Speed)
	assert.Equal(t, game.SnowflakeCount-1, w.Remaining(game.KindSnowflake))
	assert.ElementsMatch(t, []uint32{1, 2}, heartSlots(w))
}

func TestThreeHitsLose(t *testing.T) {
	w, out := newWorld(t)

	for i := 0; i < game.InitialLives; i++ {
		require.True(t, moveOnto(w, game.KindSnowflake))
		running := w.Step(0, nil)
		assert.Equal(t, i < game.InitialLives-1, running)
	}

	s := w.Session()
	assert.Equal(t, game.Lost, s.Outcome)
	assert.Equal(t, uint32(0), s.Lives)
	assert.Empty(t, heartSlots(w))
	assert.Equal(t, "You loose!\n", out.String())

	// further steps are ignored
	require.True(t, moveOnto(w, game.KindPresent))
	assert.False(t, w.Step(0, nil))
	assert.Equal(t, uint32(0), w.Session().Score)
	assert.Equal(t, "You loose!\n", out.String())
}

func TestAllPresentsWin(t *testing.T) {
	w, out := newWorld(t)

	for i := 0; i < game.PresentCount; i++ {
		require.True(t, moveOnto(w, game.KindPresent))
		w.Step(0, nil)
	}

	s := w.Session()
	assert.Equal(t, game.Won, s.Outcome)
	assert.Equal(t, uint32(game.PresentCount), s.Score)
	assert.Equal(t, uint32(game.InitialLives), s.Lives)
	assert.Equal(t, game.InitialSpeed+game.PresentCount*game.SpeedIncrement, s.Speed)
	assert.Equal(t, "Score: 10", w.ScoreText())
	assert.Equal(t, "You win!\n", out.String())
	assert.True(t, w.Over())
}

func TestSimultaneousHitsInOneStep(t *testing.T) {
	w, _ := newWorld(t)

	require.True(t, moveOnto(w, game.KindPresent))
	require.True(t, moveOnto(w, game.KindSnowflake))
	w.Step(0, nil)

	s := w.Session()
	assert.Equal(t, uint32(1), s.Score)
	assert.Equal(t, uint32(game.InitialLives-1), s.Lives)
}

func TestPlayerFollowsKeys(t *testing.T) {
	w, _ := newWorld(t)
	start := w.PlayerPosition()

	w.Step(0.1, game.KeySet{game.KeyL: true, game.KeyI: true})

	got := w.PlayerPosition()
	assert.InDelta(t, start.X+game.InitialSpeed*0.1, got.X, 1e-9)
	assert.InDelta(t, start.Y-game.InitialSpeed*0.1, got.Y, 1e-9)
}

func TestPlayerStaysInWindow(t *testing.T) {
	w, _ := newWorld(t)

	for i := 0; i < 200; i++ {
		w.Step(0.05, game.KeySet{game.KeyArrowLeft: true, game.KeyArrowUp: true})
		if w.Over() {
			break
		}
	}

	p := w.PlayerPosition()
	assert.GreaterOrEqual(t, p.X, game.HalfExtent)
	assert.GreaterOrEqual(t, p.Y, game.HalfExtent)
}

func TestAutoMoversMove(t *testing.T) {
	w, _ := newWorld(t)

	before := map[ecs.EntityId]game.Position{}
	for p := range ecs.NewView[placed](w.Storage()).Iter() {
		before[p.EntityId] = *p.Position
	}

	w.Step(0.01, nil)

	moved := 0
	for p := range ecs.NewView[placed](w.Storage()).Iter() {
		if *p.Kind == game.KindPlayer {
			assert.Equal(t, before[p.EntityId], *p.Position)
			continue
		}
		d := game.Distance(before[p.EntityId], *p.Position)
		assert.InDelta(t, game.InitialSpeed*0.01, d, 1e-9)
		moved++
	}
	assert.Equal(t, game.PresentCount+game.SnowflakeCount, moved)
}

func TestResize(t *testing.T) {
	w, _ := newWorld(t)
	w.Resize(1024, 768)
	assert.Equal(t, game.Window{Width: 1024, Height: 768}, w.Window())
}

type moving struct {
	*game.Position
	*game.AutoMover
}

func TestShrinkingWindowConfinesEverything(t *testing.T) {
	w, _ := newWorld(t)
	for p := range ecs.NewView[placed](w.Storage()).Iter() {
		if *p.Kind == game.KindPlayer {
			*p.Position = game.Position{X: 780, Y: 300}
		}
	}
	var far moving
	for m := range ecs.NewView[moving](w.Storage()).Iter() {
		far = m
		break
	}
	require.NotNil(t, far.Position)
	*far.Position = game.Position{X: 700, Y: 300}
	*far.AutoMover = game.AutoMover{DX: 1, DY: 0}

	w.Resize(400, 600)

	assert.Equal(t, game.Position{X: 384, Y: 300}, w.PlayerPosition())
	assert.Equal(t, game.Position{X: 384, Y: 300}, *far.Position)
	assert.Less(t, far.DX, 0.0)
	for p := range ecs.NewView[placed](w.Storage()).Iter() {
		assert.LessOrEqual(t, p.X, 384.0)
		assert.GreaterOrEqual(t, p.X, game.HalfExtent)
	}

	// the player can walk back in
	w.Step(0.1, game.KeySet{game.KeyArrowLeft: true})
	assert.InDelta(t, 384-game.InitialSpeed*0.1, w.PlayerPosition().X, 1e-9)
}

func TestRunStopsOnOutcome(t *testing.T) {
	w, _ := newWorld(t)
	for p := range ecs.NewView[placed](w.Storage()).Iter() {
		if *p.Kind == game.KindPresent {
			*p.Position = w.Window().Centre()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	w.Run(ctx, time.Millisecond, nil)

	assert.Equal(t, game.Won, w.Session().Outcome)
	assert.NoError(t, ctx.Err())
}
