// Package render runs a game.World in an ebiten window.
package render

import (
	"fmt"
	"io/fs"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/santa/ecs"
	"github.com/plus3/santa/ecs/debugui"
	debugui_ebiten "github.com/plus3/santa/ecs/debugui/ebiten"
	"github.com/plus3/santa/internal/game"
)

const drawStage = "draw"

// Options configures the window front end.
type Options struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	TPS       int
	Assets    fs.FS
	Debug     bool
	Logger    *log.Logger
}

// Game implements ebiten.Game for one session.
type Game struct {
	world    *game.World
	drawer   *ecs.Scheduler
	screen   *ecs.Singleton[Screen]
	keyboard game.Keyboard
	dt       float64
	backend  *debugui_ebiten.ImguiBackend
	logger   *log.Logger
}

// NewGame sets up the window and the draw systems for world.
func NewGame(world *game.World, opts Options) *Game {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	if opts.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if opts.TPS > 0 {
		ebiten.SetTPS(opts.TPS)
	}

	storage := world.Storage()
	assets := NewAssets(opts.Assets, opts.Logger)

	g := &Game{
		world:  world,
		drawer: ecs.NewScheduler(storage, drawStage),
		screen: ecs.NewSingleton(storage, Screen{}),
		dt:     1 / float64(ebiten.TPS()),
		logger: opts.Logger,
	}
	g.drawer.Register(&SpriteSystem{Assets: assets})
	g.drawer.Register(&HUDSystem{Assets: assets})

	if !opts.Debug {
		g.keyboard = Keyboard{}
		return g
	}

	g.backend = debugui_ebiten.NewImguiBackend(opts.Title, opts.Width, opts.Height)
	world.Register(debugui.Install(storage, world.Scheduler()), ecs.InStage(game.StageDebug))
	storage.Spawn(debugui.ImguiItem{Render: func() { renderSession(world) }})

	input := ecs.NewSingleton[debugui.ImguiInputState](storage)
	g.keyboard = Keyboard{captured: func() bool {
		state := input.Get()
		return state != nil && state.WantCaptureKeyboard
	}}
	return g
}

// Update advances the world by one tick and stops the loop once the session is over.
func (g *Game) Update() error {
	if g.world.Over() {
		return ebiten.Termination
	}

	running := true
	step := func() { running = g.world.Step(g.dt, g.keyboard) }
	if g.backend != nil {
		g.backend.Frame(step)
	} else {
		step()
	}

	if !running {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.MustGet().Image = screen
	g.drawer.Once(0)

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.world.Resize(float64(outsideWidth), float64(outsideHeight))
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until the session ends or the window is closed.
func (g *Game) Run() error {
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func renderSession(world *game.World) {
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	s := world.Session()
	imgui.Text(fmt.Sprintf("Score: %d", s.Score))
	imgui.Text(fmt.Sprintf("Lives: %d", s.Lives))
	imgui.Text(fmt.Sprintf("Speed: %.0f", s.Speed))
	imgui.Text(fmt.Sprintf("Outcome: %s", s.Outcome))
	imgui.Separator()
	for _, k := range game.Kinds() {
		imgui.BulletText(fmt.Sprintf("%s: %d", k, world.Remaining(k)))
	}
	p := world.PlayerPosition()
	imgui.Text(fmt.Sprintf("Player: (%.0f, %.0f)", p.X, p.Y))
	imgui.End()
}
