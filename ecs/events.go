package ecs

import (
	"iter"
	"reflect"
)

type eventQueue interface {
	clear()
	len() int
}

type queue[E any] struct {
	items []E
}

func (q *queue[E]) clear() { q.items = q.items[:0] }
func (q *queue[E]) len() int { return len(q.items) }

// AddEvent registers an event queue for E. Sending to an unregistered event type
// registers it on first use, so calling AddEvent is only needed to make the
// type visible to readers before anything was sent.
func AddEvent[E any](storage *Storage) {
	eventsOf[E](storage)
}

func eventsOf[E any](storage *Storage) *queue[E] {
	t := reflect.TypeFor[E]()
	if q, ok := storage.events[t]; ok {
		return q.(*queue[E])
	}
	q := &queue[E]{}
	storage.events[t] = q
	return q
}

// Events is a typed event channel between systems of the same frame. Events sent
// by a system are visible to every system that runs later in the frame and are
// dropped when the frame ends.
type Events[E any] struct {
	q *queue[E]
}

// NewEvents returns an Events accessor bound to storage.
func NewEvents[E any](storage *Storage) *Events[E] {
	return &Events[E]{q: eventsOf[E](storage)}
}

// Init binds the accessor to a storage. Called by the Scheduler during system registration.
func (e *Events[E]) Init(storage *Storage) {
	e.q = eventsOf[E](storage)
}

// Send appends an event to the queue.
func (e *Events[E]) Send(event E) {
	e.q.items = append(e.q.items, event)
}

// Read iterates the events sent so far this frame, in send order.
func (e *Events[E]) Read() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, ev := range e.q.items {
			if !yield(ev) {
				return
			}
		}
	}
}

// Len returns the number of pending events.
func (e *Events[E]) Len() int {
	return len(e.q.items)
}

// Empty reports whether no events are pending.
func (e *Events[E]) Empty() bool {
	return len(e.q.items) == 0
}

// clearEvents drops every pending event. Called by the Scheduler at frame end.
func (s *Storage) clearEvents() {
	for _, q := range s.events {
		q.clear()
	}
}

// PendingEvents returns the number of queued events of type E.
func PendingEvents[E any](storage *Storage) int {
	q, ok := storage.events[reflect.TypeFor[E]()]
	if !ok {
		return 0
	}
	return q.len()
}

// Condition gates a system: the system only runs on frames where it returns true.
type Condition func(storage *Storage) bool

// OnEvent runs the system only when events of type E are pending.
func OnEvent[E any]() Condition {
	return func(storage *Storage) bool {
		return PendingEvents[E](storage) > 0
	}
}
