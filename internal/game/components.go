package game

import (
	"github.com/plus3/santa/ecs"
)

const (
	PresentCount   = 10
	SnowflakeCount = 10

	// FreeZone is the radius around the window centre kept clear of auto-movers at spawn.
	FreeZone = 200.0

	SpriteSize     = 32.0
	HalfExtent     = SpriteSize / 2
	ColliderRadius = 16.0

	// HitFactor widens the combined collider radius used for pickups and hits.
	HitFactor = 1.7

	InitialSpeed   = 100.0
	SpeedIncrement = 50.0
	InitialLives   = 3
)

// Position is an object's centre in window pixels, y pointing down.
type Position struct {
	X, Y float64
}

// AutoMover is the unit direction an object travels along on its own.
type AutoMover struct {
	DX, DY float64
}

// Collider is the radius used by the proximity test. Radius is never negative.
type Collider struct {
	Radius float64 `min:"0"`
}

// Sprite associates an object with an image asset.
type Sprite struct {
	Path string
}

// Player marks the keyboard-controlled object.
type Player struct {
	Name string
}

// Heart is one life icon in the HUD. Slot counts from 1.
type Heart struct {
	Slot uint32
}

// ScoreLabel is the HUD score text.
type ScoreLabel struct {
	Text string
}

// Window holds the current window size.
type Window struct {
	Width, Height float64
}

// Centre returns the middle of the window.
func (w Window) Centre() Position {
	return Position{X: w.Width / 2, Y: w.Height / 2}
}

// Controls is the direction set held this frame.
type Controls struct {
	Held Direction
}

func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Kind](registry)
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[AutoMover](registry)
	ecs.RegisterComponent[Collider](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Heart](registry)
}
