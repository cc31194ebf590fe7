package game

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/santa/ecs"
)

// Options configures a new World.
type Options struct {
	Width, Height float64
	Seed          uint64

	// Logger receives gameplay logs. Defaults to a discarding logger.
	Logger *log.Logger
	// Out receives the outcome line. Nil disables it.
	Out io.Writer
}

// World is one session: the ECS storage, its scheduler and the systems that
// implement the rules.
type World struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ReadInputSystem
	logger    *log.Logger

	session  *ecs.Singleton[Session]
	window   *ecs.Singleton[Window]
	label    *ecs.Singleton[ScoreLabel]
	objects  *ecs.Query[object]
	player   *ecs.Query[playerView]
	confined *ecs.Query[confined]
}

// NewWorld spawns a fresh session. It fails when the window is too small to
// place objects outside the free zone.
func NewWorld(opts Options) (*World, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	window := Window{Width: opts.Width, Height: opts.Height}
	if !CanSpawn(window) {
		return nil, fmt.Errorf("window %.0fx%.0f is too small: objects must spawn more than %.0f px from the centre", window.Width, window.Height, FreeZone)
	}

	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	storage := ecs.NewStorage(registry)

	w := &World{
		storage:  storage,
		logger:   logger,
		session:  ecs.NewSingleton(storage, NewSession()),
		window:   ecs.NewSingleton(storage, window),
		label:    ecs.NewSingleton(storage, ScoreLabel{Text: scoreText(0)}),
		objects:  ecs.NewQuery[object](storage),
		player:   ecs.NewQuery[playerView](storage),
		confined: ecs.NewQuery[confined](storage),
	}
	ecs.NewSingleton(storage, Controls{})
	ecs.AddEvent[Collision](storage)
	ecs.AddEvent[ScoreChanged](storage)
	ecs.AddEvent[LivesChanged](storage)

	spawner := NewSpawner(opts.Seed)
	for _, k := range Kinds() {
		if k.SpawnCount() == 0 {
			continue
		}
		if _, err := spawner.SpawnAutoMovers(storage, k, k.SpawnCount(), window); err != nil {
			return nil, fmt.Errorf("spawn %s: %w", k, err)
		}
	}
	SpawnPlayer(storage, window)
	SpawnHearts(storage, InitialLives)

	w.scheduler = ecs.NewScheduler(storage, Stages()...)
	w.input = &ReadInputSystem{}
	w.registerSystems(opts.Out)

	logger.Debug("world created",
		"width", window.Width,
		"height", window.Height,
		"seed", opts.Seed,
		"presents", PresentCount,
		"snowflakes", SnowflakeCount,
	)
	return w, nil
}

func (w *World) registerSystems(out io.Writer) {
	s := w.scheduler
	s.Register(&MoveAutoMoversSystem{}, ecs.InStage(StageMovement))
	s.Register(&BounceSystem{}, ecs.InStage(StageBoundary))
	s.Register(w.input, ecs.InStage(StageInput))
	s.Register(&MovePlayerSystem{}, ecs.InStage(StageInput))
	s.Register(&DetectCollisionsSystem{Target: KindPresent}, ecs.InStage(StageDetect))
	s.Register(&DetectCollisionsSystem{Target: KindSnowflake}, ecs.InStage(StageDetect))
	s.Register(&CollisionEffectsSystem{Logger: w.logger},
		ecs.InStage(StageEffects), ecs.RunIf(ecs.OnEvent[Collision]()))
	s.Register(&UpdateScoreLabelSystem{},
		ecs.InStage(StageEffects), ecs.RunIf(ecs.OnEvent[ScoreChanged]()))
	s.Register(&UpdateHeartsSystem{},
		ecs.InStage(StageEffects), ecs.RunIf(ecs.OnEvent[LivesChanged]()))
	s.Register(&DespawnCollidedSystem{},
		ecs.InStage(StageCleanup), ecs.RunIf(ecs.OnEvent[Collision]()))
	s.Register(&WinSystem{Out: out, Logger: w.logger}, ecs.InStage(StageEvaluate))
	s.Register(&LoseSystem{Out: out, Logger: w.logger},
		ecs.InStage(StageEvaluate), ecs.RunIf(ecs.OnEvent[LivesChanged]()))
}

// Register adds an extra system, such as a debug overlay, to the scheduler.
func (w *World) Register(system ecs.System, opts ...ecs.Option) {
	w.scheduler.Register(system, opts...)
}

// Step runs one frame of dt seconds with kb as the input device. It does
// nothing once the session is over and reports whether the session is still
// being played.
func (w *World) Step(dt float64, kb Keyboard) bool {
	if w.Over() {
		return false
	}
	w.input.Keyboard = kb
	w.scheduler.Once(dt)
	return !w.Over()
}

// Run steps the world on a ticker until the session ends or ctx is done.
func (w *World) Run(ctx context.Context, interval time.Duration, kb Keyboard) {
	if w.Over() {
		return
	}
	w.input.Keyboard = kb
	w.scheduler.Run(ctx, interval, w.Over)
}

// Over reports whether the session reached an outcome.
func (w *World) Over() bool {
	return w.session.MustGet().Over()
}

// Session returns a copy of the session state.
func (w *World) Session() Session {
	return *w.session.MustGet()
}

// Window returns the current window size.
func (w *World) Window() Window {
	return *w.window.MustGet()
}

// Resize records a new window size. The player and every auto-mover left
// outside the new bounds are moved back onto the edge, and movers on a clamped
// axis are turned to head inside.
func (w *World) Resize(width, height float64) {
	win := w.window.MustGet()
	if win.Width == width && win.Height == height {
		return
	}
	win.Width, win.Height = width, height
	for c := range w.confined.Iter() {
		Confine(c.Position, c.Mover, HalfExtent, *win)
	}
	w.logger.Debug("window resized", "width", width, "height", height)
}

// ScoreText is the HUD score label.
func (w *World) ScoreText() string {
	return w.label.MustGet().Text
}

// Remaining returns how many objects of kind k are alive.
func (w *World) Remaining(k Kind) int {
	return countKind(w.objects, k)
}

// PlayerPosition returns where the player is.
func (w *World) PlayerPosition() Position {
	return *w.player.Single().Position
}

// Storage exposes the ECS storage for rendering and debugging.
func (w *World) Storage() *ecs.Storage {
	return w.storage
}

// Scheduler exposes the scheduler for statistics.
func (w *World) Scheduler() *ecs.Scheduler {
	return w.scheduler
}
