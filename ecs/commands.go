package ecs

import "github.com/kamstrup/intmap"

// Commands provides a buffer for deferred ECS operations. The Scheduler flushes
// it at the end of every stage, so structural changes never happen while a
// system is iterating.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues a function to run when the buffer is flushed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion operation. Queuing the same entity more than
// once per flush deletes it once.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies all queued operations to storage and resets the buffer:
// deletes first, then spawns, then deferred functions.
func (c *Commands) Flush(storage *Storage) {
	if len(c.deletes) > 0 {
		seen := intmap.New[EntityId, struct{}](len(c.deletes))
		for _, id := range c.deletes {
			if _, dup := seen.Get(id); dup {
				continue
			}
			seen.Put(id, struct{}{})
			storage.Delete(id)
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
}
