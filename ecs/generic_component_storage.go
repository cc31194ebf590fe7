package ecs

import (
	"iter"
	"reflect"
)

// componentColumn is a type-erased column of components inside an archetype.
type componentColumn interface {
	Append(item any) int
	Delete(index int) bool
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentColumn
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentColumn),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() componentColumn {
		return &blockColumn[T]{}
	}
}

// Registered reports whether T has been registered.
func Registered[T any](r *ComponentRegistry) bool {
	_, ok := r.factories[reflect.TypeFor[T]()]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentColumn {
	return r.factories[t]
}

const blockSize = 64

// blockColumn stores components of type T in fixed-size blocks. Blocks are
// individually allocated so pointers handed out by Get stay valid while the
// column grows.
type blockColumn[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
}

func (c *blockColumn[T]) locate(index int) (int, int, bool) {
	if index < 0 {
		return 0, 0, false
	}
	b, s := index/blockSize, index%blockSize
	if b >= len(c.blocks) {
		return 0, 0, false
	}
	return b, s, true
}

// Append adds a component to the column and returns its index.
func (c *blockColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var index int
	if n := len(c.freeSlots); n > 0 {
		index = c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
	} else {
		index = c.nextIndex
		c.nextIndex++
		if index/blockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, new([blockSize]T))
			c.filled = append(c.filled, new([blockSize]bool))
		}
	}

	b, s := index/blockSize, index%blockSize
	c.blocks[b][s] = value
	c.filled[b][s] = true
	return index
}

// Get returns a *T for the component at index, or nil for an empty slot.
func (c *blockColumn[T]) Get(index int) any {
	b, s, ok := c.locate(index)
	if !ok || !c.filled[b][s] {
		return nil
	}
	return &c.blocks[b][s]
}

// Delete empties the slot at index. It reports whether a component was removed.
func (c *blockColumn[T]) Delete(index int) bool {
	b, s, ok := c.locate(index)
	if !ok || !c.filled[b][s] {
		return false
	}
	var zero T
	c.blocks[b][s] = zero
	c.filled[b][s] = false
	c.freeSlots = append(c.freeSlots, index)
	return true
}

func (c *blockColumn[T]) Has(index int) bool {
	b, s, ok := c.locate(index)
	return ok && c.filled[b][s]
}

func (c *blockColumn[T]) Len() int {
	return c.nextIndex - len(c.freeSlots)
}

func (c *blockColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.nextIndex; i++ {
			if !c.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
