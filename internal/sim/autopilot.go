package sim

import (
	"math"

	"github.com/plus3/santa/ecs"
	"github.com/plus3/santa/internal/game"
)

const (
	// dangerRadius is how close a snowflake has to be before the autopilot
	// steers away from it.
	dangerRadius = 120.0
	// deadZone keeps the autopilot from jittering around an axis it is aligned on.
	deadZone = 0.15
)

type tracked struct {
	*game.Kind
	*game.Position
}

// Autopilot is a Keyboard that steers the player toward the nearest present
// while pushing away from nearby snowflakes. It holds arrow keys only.
// Key state is decided once per frame.
type Autopilot struct {
	world   *game.World
	objects *ecs.Query[tracked]

	frame int64
	held  game.Direction
}

func NewAutopilot(world *game.World) *Autopilot {
	return &Autopilot{
		world:   world,
		objects: ecs.NewQuery[tracked](world.Storage()),
		frame:   -1,
	}
}

func (a *Autopilot) IsKeyPressed(k game.Key) bool {
	held := a.current()
	switch k {
	case game.KeyArrowLeft:
		return held.Has(game.DirLeft)
	case game.KeyArrowRight:
		return held.Has(game.DirRight)
	case game.KeyArrowUp:
		return held.Has(game.DirUp)
	case game.KeyArrowDown:
		return held.Has(game.DirDown)
	}
	return false
}

func (a *Autopilot) current() game.Direction {
	if frame := a.world.Scheduler().Frames(); frame != a.frame {
		a.frame, a.held = frame, a.Directions()
	}
	return a.held
}

// Directions is the set of directions the autopilot wants to move in now.
func (a *Autopilot) Directions() game.Direction {
	vx, vy := a.heading()
	l := math.Hypot(vx, vy)
	if l == 0 {
		return 0
	}
	vx, vy = vx/l, vy/l

	var held game.Direction
	switch {
	case vx < -deadZone:
		held |= game.DirLeft
	case vx > deadZone:
		held |= game.DirRight
	}
	switch {
	case vy < -deadZone:
		held |= game.DirUp
	case vy > deadZone:
		held |= game.DirDown
	}
	return held
}

func (a *Autopilot) heading() (float64, float64) {
	player := a.world.PlayerPosition()

	var (
		target  *game.Position
		nearest = math.Inf(1)
		ax, ay  float64
	)
	for o := range a.objects.Iter() {
		d := game.Distance(player, *o.Position)
		switch *o.Kind {
		case game.KindPresent:
			if d < nearest {
				nearest, target = d, o.Position
			}
		case game.KindSnowflake:
			if d < dangerRadius && d > 0 {
				// inverse-square push, equal to the pull of a present at dangerRadius
				push := (dangerRadius / d) * (dangerRadius / d)
				ax += (player.X - o.X) / d * push
				ay += (player.Y - o.Y) / d * push
			}
		}
	}

	if target != nil && nearest > 0 {
		ax += (target.X - player.X) / nearest
		ay += (target.Y - player.Y) / nearest
	}
	return ax, ay
}
