package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/santa/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEdgeCases(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
		generation  uint32
	}{
		{0, 0, 0},
		{0xFFFFFFFF, ecs.MaxEntityIndex, ecs.MaxGeneration},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0x12345678, 0xABCDE, 0x9F0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d,gen=%d", tt.archetypeId, tt.index, tt.generation), func(t *testing.T) {
			entityId := ecs.NewEntityId(tt.archetypeId, tt.index, tt.generation)
			assert.Equal(t, tt.archetypeId, entityId.ArchetypeId())
			assert.Equal(t, tt.index, entityId.Index())
			assert.Equal(t, tt.generation, entityId.Generation())
		})
	}
}

func TestEntityIdGenerationWraps(t *testing.T) {
	id := ecs.NewEntityId(7, 3, ecs.MaxGeneration+1)
	assert.Equal(t, uint32(0), id.Generation())
	assert.Equal(t, uint32(3), id.Index())
	assert.Equal(t, uint32(7), id.ArchetypeId())
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 3, Y: 4}, Name("Test Entity"))
	assert.NotEqual(t, ecs.EntityId(0), id)
	assert.True(t, storage.Alive(id))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(3), pos.X)
	assert.Equal(t, float32(4), pos.Y)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, Name("Test Entity"), *name)

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Position]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
}

func TestSpawnPointerComponentsAreCopied(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	src := &Position{X: 1, Y: 1}
	id := storage.Spawn(src)
	src.X = 99

	assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, id).X)
}

func TestSameComponentSetSharesArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})
	c := storage.Spawn(Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.ArchetypeId(), c.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())
	assert.Len(t, storage.GetArchetypes(), 2)
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1}, Health{Current: 10, Max: 10})
	other := storage.Spawn(Position{X: 2}, Health{Current: 20, Max: 20})

	assert.True(t, storage.Delete(id))
	assert.False(t, storage.Alive(id))
	assert.Nil(t, ecs.ReadComponent[Position](storage, id))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Position]()))

	assert.False(t, storage.Delete(id), "second delete is a no-op")

	require.True(t, storage.Alive(other))
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, other).X)
}

func TestDeletedSlotIsReused(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Score(1))
	storage.Delete(first)
	second := storage.Spawn(Score(2))

	assert.Equal(t, first.Index(), second.Index())
	assert.NotEqual(t, first, second)
	assert.Equal(t, Score(2), *ecs.ReadComponent[Score](storage, second))
}

func TestStaleIdDoesNotReachNewOccupant(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[scoreView](storage)

	stale := storage.Spawn(Score(1))
	require.True(t, storage.Delete(stale))
	fresh := storage.Spawn(Score(2))
	require.Equal(t, stale.Index(), fresh.Index())

	assert.False(t, storage.Alive(stale))
	assert.Nil(t, ecs.ReadComponent[Score](storage, stale))
	assert.False(t, storage.HasComponent(stale, reflect.TypeFor[Score]()))
	assert.Nil(t, view.Get(stale))
	assert.False(t, storage.Delete(stale))

	require.True(t, storage.Alive(fresh))
	got := view.Get(fresh)
	require.NotNil(t, got)
	assert.Equal(t, fresh, got.EntityId)
	assert.Equal(t, Score(2), *got.Score)
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 7})
	pos := ecs.ReadComponent[Position](storage, id)

	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	pos.X = 42
	assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, id).X)
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() }, "no components")
	assert.Panics(t, func() { storage.Spawn(Velocity{}, Velocity{}) }, "duplicate component")
	assert.Panics(t, func() { storage.Spawn(Health{}, 3.5) }, "unregistered float64")
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) }, "map component")
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var missing *Health
	assert.False(t, storage.ReadSingleton(&missing))

	hp := ecs.NewSingleton(storage, Health{Current: 3, Max: 3})
	hp.Get().Current--

	var read *Health
	require.True(t, storage.ReadSingleton(&read))
	assert.Equal(t, 2, read.Current)

	again := ecs.NewSingleton[Health](storage, Health{Current: 99})
	assert.Equal(t, 2, again.Get().Current, "initializer ignored when singleton exists")

	storage.AddSingleton(Health{Current: 10, Max: 10})
	assert.Equal(t, 10, hp.Get().Current, "accessors follow a replaced singleton")

	storage.RemoveSingleton(reflect.TypeFor[Health]())
	assert.False(t, hp.Exists())
	assert.Nil(t, hp.Get())
	assert.Panics(t, func() { hp.MustGet() })
}

func TestSingletonsDoNotNeedRegistration(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	type window struct{ W, H float64 }
	w := ecs.NewSingleton(storage, window{W: 800, H: 600})

	assert.Equal(t, 800.0, w.MustGet().W)
	assert.Empty(t, storage.GetArchetypes())
}
