package render

import (
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/santa/ecs"
	"github.com/plus3/santa/internal/game"
)

var (
	background  = color.RGBA{R: 24, G: 38, B: 64, A: 255}
	heartColour = color.RGBA{R: 220, G: 30, B: 60, A: 255}
)

// Screen is the image being drawn this frame.
type Screen struct {
	Image *ebiten.Image
}

// SpriteSystem draws every positioned sprite centred on its position.
type SpriteSystem struct {
	Screen  ecs.Singleton[Screen]
	Objects ecs.Query[struct {
		*game.Position
		*game.Sprite
		Kind *game.Kind `ecs:"optional"`
	}]
	Assets *Assets
}

func (s *SpriteSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.MustGet().Image
	screen.Fill(background)

	for obj := range s.Objects.Iter() {
		img := s.Assets.Image(obj.Path)
		if img == nil {
			clr := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if obj.Kind != nil {
				clr = obj.Kind.Placeholder()
			}
			vector.DrawFilledCircle(screen, float32(obj.X), float32(obj.Y), game.HalfExtent, clr, true)
			continue
		}

		b := img.Bounds()
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Scale(game.SpriteSize/float64(b.Dx()), game.SpriteSize/float64(b.Dy()))
		opts.GeoM.Translate(obj.X-game.HalfExtent, obj.Y-game.HalfExtent)
		screen.DrawImage(img, opts)
	}
}

// HUDSystem draws the score label and one heart per remaining life.
type HUDSystem struct {
	Screen ecs.Singleton[Screen]
	Label  ecs.Singleton[game.ScoreLabel]
	Window ecs.Singleton[game.Window]
	Hearts ecs.Query[struct {
		*game.Heart
		*game.Sprite
	}]
	Assets *Assets
}

func (s *HUDSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.MustGet().Image
	ebitenutil.DebugPrintAt(screen, s.Label.MustGet().Text, ScoreOrigin.X, ScoreOrigin.Y)

	type heart struct {
		slot uint32
		path string
	}
	var hearts []heart
	for h := range s.Hearts.Iter() {
		hearts = append(hearts, heart{slot: h.Slot, path: h.Path})
	}
	slices.SortFunc(hearts, func(a, b heart) int { return int(a.slot) - int(b.slot) })

	rects := HeartRects(int(s.Window.MustGet().Width), len(hearts))
	for i, h := range hearts {
		r := rects[i]
		img := s.Assets.Image(h.path)
		if img == nil {
			vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), heartColour, false)
			continue
		}
		b := img.Bounds()
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Scale(float64(r.Dx())/float64(b.Dx()), float64(r.Dy())/float64(b.Dy()))
		opts.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
		screen.DrawImage(img, opts)
	}
}
