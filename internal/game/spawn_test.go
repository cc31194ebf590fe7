package game_test

import (
	"math"
	"testing"

	"github.com/plus3/santa/ecs"
	"github.com/plus3/santa/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawned struct {
	*game.Kind
	*game.Position
	*game.AutoMover
	*game.Collider
	*game.Sprite
}

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[game.Kind](registry)
	ecs.RegisterComponent[game.Position](registry)
	ecs.RegisterComponent[game.AutoMover](registry)
	ecs.RegisterComponent[game.Collider](registry)
	ecs.RegisterComponent[game.Sprite](registry)
	return ecs.NewStorage(registry)
}

func TestSpawnAutoMoversOutsideFreeZone(t *testing.T) {
	for _, seed := range []uint64{1, 7, 42, 1234} {
		storage := newStorage()
		ids, err := game.NewSpawner(seed).SpawnAutoMovers(storage, game.KindSnowflake, 10, testWindow)
		require.NoError(t, err)
		require.Len(t, ids, 10)

		centre := testWindow.Centre()
		count := 0
		for s := range ecs.NewView[spawned](storage).Iter() {
			count++
			assert.Equal(t, game.KindSnowflake, *s.Kind)
			assert.Greater(t, game.Distance(*s.Position, centre), game.FreeZone)
			assert.GreaterOrEqual(t, s.X, game.HalfExtent)
			assert.LessOrEqual(t, s.X, testWindow.Width-game.HalfExtent)
			assert.GreaterOrEqual(t, s.Y, game.HalfExtent)
			assert.LessOrEqual(t, s.Y, testWindow.Height-game.HalfExtent)
			assert.InDelta(t, 1, math.Hypot(s.DX, s.DY), 1e-9)
			assert.Equal(t, game.ColliderRadius, s.Radius)
			assert.Equal(t, "snowflake.png", s.Path)
		}
		assert.Equal(t, 10, count)
	}
}

func TestSpawnerIsDeterministic(t *testing.T) {
	a, b := game.NewSpawner(99), game.NewSpawner(99)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Position(testWindow), b.Position(testWindow))
		assert.Equal(t, a.Direction(), b.Direction())
	}
}

func TestSpawnRejectsTinyWindow(t *testing.T) {
	small := game.Window{Width: 300, Height: 300}
	assert.False(t, game.CanSpawn(small))

	_, err := game.NewSpawner(1).SpawnAutoMovers(newStorage(), game.KindPresent, 1, small)
	assert.Error(t, err)
}
