package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/santa/internal/game"
)

var ebitenKeys = map[game.Key]ebiten.Key{
	game.KeyArrowLeft:  ebiten.KeyArrowLeft,
	game.KeyArrowRight: ebiten.KeyArrowRight,
	game.KeyArrowUp:    ebiten.KeyArrowUp,
	game.KeyArrowDown:  ebiten.KeyArrowDown,
	game.KeyJ:          ebiten.KeyJ,
	game.KeyL:          ebiten.KeyL,
	game.KeyI:          ebiten.KeyI,
	game.KeyK:          ebiten.KeyK,
}

// Keyboard reads the game keys from ebiten. While captured reports true
// (an ImGui widget has focus) no key is held.
type Keyboard struct {
	captured func() bool
}

func (k Keyboard) IsKeyPressed(key game.Key) bool {
	if k.captured != nil && k.captured() {
		return false
	}
	ek, ok := ebitenKeys[key]
	return ok && ebiten.IsKeyPressed(ek)
}
