package ecs

import (
	"reflect"
)

// Singleton provides access to a single component instance that is not
// associated with any entity. Use this for session state, window metrics,
// input snapshots or other world-wide data.
type Singleton[T any] struct {
	storage *Storage
}

// NewSingleton creates a new Singleton accessor for the given storage.
// If the singleton doesn't exist yet it is created from initializer, or from
// the zero value when no initializer is given.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}
	return &Singleton[T]{storage: storage}
}

// Init binds the Singleton to a storage. Called by the Scheduler during system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
}

// Get returns a pointer to the singleton component, or nil when it has not
// been added to storage.
func (s *Singleton[T]) Get() *T {
	if s.storage == nil {
		return nil
	}
	entry := s.storage.getSingletonEntry(reflect.TypeFor[T]())
	if entry == nil {
		return nil
	}
	return (*T)(entry.dataPtr)
}

// MustGet is Get for singletons the world cannot run without; it panics when
// the singleton is missing.
func (s *Singleton[T]) MustGet() *T {
	v := s.Get()
	if v == nil {
		panic("ecs: missing singleton " + reflect.TypeFor[T]().String())
	}
	return v
}

// Exists returns true if the singleton component has been added to storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
