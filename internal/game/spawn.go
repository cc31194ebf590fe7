package game

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/plus3/santa/ecs"
)

// Spawner places auto-movers at random positions away from the window centre.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner returns a spawner drawing from a PCG source seeded with seed.
func NewSpawner(seed uint64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// CanSpawn reports whether the inset window reaches beyond the free zone at all.
// Position loops forever on windows where it does not.
func CanSpawn(w Window) bool {
	dx := w.Width/2 - HalfExtent
	dy := w.Height/2 - HalfExtent
	return dx > 0 && dy > 0 && math.Hypot(dx, dy) > FreeZone
}

// Position samples uniformly from the window inset by half a sprite, rejecting
// points within FreeZone of the centre.
func (s *Spawner) Position(w Window) Position {
	centre := w.Centre()
	for {
		p := Position{
			X: HalfExtent + s.rng.Float64()*(w.Width-SpriteSize),
			Y: HalfExtent + s.rng.Float64()*(w.Height-SpriteSize),
		}
		if Distance(p, centre) > FreeZone {
			return p
		}
	}
}

// Direction returns a random unit vector.
func (s *Spawner) Direction() AutoMover {
	for {
		x := s.rng.Float64()*2 - 1
		y := s.rng.Float64()*2 - 1
		if l := math.Hypot(x, y); l > 1e-9 {
			return AutoMover{DX: x / l, DY: y / l}
		}
	}
}

// SpawnAutoMovers creates n objects of kind k and returns their IDs.
func (s *Spawner) SpawnAutoMovers(storage *ecs.Storage, k Kind, n int, w Window) ([]ecs.EntityId, error) {
	if !CanSpawn(w) {
		return nil, fmt.Errorf("window %.0fx%.0f leaves no room outside the %.0f px free zone", w.Width, w.Height, FreeZone)
	}
	ids := make([]ecs.EntityId, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, storage.Spawn(
			k,
			s.Position(w),
			s.Direction(),
			Collider{Radius: ColliderRadius},
			Sprite{Path: k.SpritePath()},
		))
	}
	return ids, nil
}

// SpawnPlayer creates the player at the window centre.
func SpawnPlayer(storage *ecs.Storage, w Window) ecs.EntityId {
	return storage.Spawn(
		KindPlayer,
		Player{Name: KindPlayer.String()},
		w.Centre(),
		Collider{Radius: ColliderRadius},
		Sprite{Path: KindPlayer.SpritePath()},
	)
}

// SpawnHearts creates one HUD heart per life, slots 1..lives.
func SpawnHearts(storage *ecs.Storage, lives uint32) {
	for slot := uint32(1); slot <= lives; slot++ {
		storage.Spawn(Heart{Slot: slot}, Sprite{Path: HeartSprite})
	}
}
