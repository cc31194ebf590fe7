package ecs_test

import (
	"testing"

	"github.com/plus3/santa/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkDelete(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	ids := make([]ecs.EntityId, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Delete(ids[i])
	}
}

func BenchmarkGetComponent(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.ReadComponent[Position](storage, id)
	}
}

func BenchmarkQueryIter(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 1000; i++ {
		storage.Spawn(Position{X: float32(i)}, Velocity{DX: 1})
	}
	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for item := range query.Iter() {
			item.Position.X += item.Velocity.DX
		}
	}
}

func BenchmarkSchedulerOnceWithEvents(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 100; i++ {
		storage.Spawn(Position{X: float32(i)}, Velocity{DX: 1})
	}
	hits := ecs.NewEvents[Hit](storage)

	scheduler := ecs.NewScheduler(storage, "send", "read")
	scheduler.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		hits.Send(Hit{})
	}), ecs.InStage("send"))
	scheduler.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		for range hits.Read() {
		}
	}), ecs.InStage("read"), ecs.RunIf(ecs.OnEvent[Hit]()))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheduler.Once(1.0 / 60.0)
	}
}
