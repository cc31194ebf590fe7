package ecs

import (
	"fmt"
	"iter"
	"reflect"
)

// Query wraps a View with a cache of matching archetypes. The cache is rebuilt
// whenever the storage creates a new archetype. Query fields on systems are
// bound by the Scheduler at registration.
type Query[T any] struct {
	view       *View[T]
	storage    *Storage
	archetypes []*Archetype
	generation int
}

// NewQuery creates a new Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.generation = -1
}

func (q *Query[T]) matching() []*Archetype {
	if q.view == nil {
		panic("ecs: Query[" + reflect.TypeFor[T]().String() + "] used before Init")
	}
	if q.generation != q.storage.generation {
		q.archetypes = q.archetypes[:0]
		for _, archetype := range q.storage.GetArchetypes() {
			if q.view.matchesArchetype(archetype) {
				q.archetypes = append(q.archetypes, archetype)
			}
		}
		q.generation = q.storage.generation
	}
	return q.archetypes
}

// Iter returns an iterator over the current matches.
func (q *Query[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, archetype := range q.matching() {
			if !q.view.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}

// Empty reports whether nothing matches.
func (q *Query[T]) Empty() bool {
	for range q.Iter() {
		return false
	}
	return true
}

// Get returns the view of a single entity.
func (q *Query[T]) Get(id EntityId) (T, bool) {
	var result T
	if q.view == nil {
		return result, false
	}
	ok := q.view.Fill(id, &result)
	return result, ok
}

// Single returns the only match. It panics when there is not exactly one,
// which is how systems assert a unique entity such as the player.
func (q *Query[T]) Single() T {
	var (
		result T
		n      int
	)
	for item := range q.Iter() {
		result = item
		n++
	}
	if n != 1 {
		panic(fmt.Sprintf("ecs: Query[%s].Single matched %d entities", reflect.TypeFor[T](), n))
	}
	return result
}
