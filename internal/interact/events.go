package interact

import (
	"sync"

	"github.com/grindlemire/floatui/internal/loop"
)

// Events is a small synchronous event bus, generic over the event type.
type Events[T any] struct {
	mu        sync.RWMutex
	next      int
	listeners map[int]func(T)
	order     []int
}

// NewEvents creates an empty bus.
func NewEvents[T any]() *Events[T] {
	return &Events[T]{listeners: make(map[int]func(T))}
}

// Emit sends event to every listener in subscription order. Listeners added
// or removed during Emit take effect on the next Emit.
func (e *Events[T]) Emit(event T) {
	e.mu.RLock()
	fns := make([]func(T), 0, len(e.order))
	for _, id := range e.order {
		fns = append(fns, e.listeners[id])
	}
	e.mu.RUnlock()

	for _, fn := range fns {
		fn(event)
	}
}

// Subscribe adds a listener and returns its disposer.
func (e *Events[T]) Subscribe(fn func(T)) loop.Cancel {
	e.mu.Lock()
	id := e.next
	e.next++
	e.listeners[id] = fn
	e.order = append(e.order, id)
	e.mu.Unlock()

	return loop.Once(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
		for i, v := range e.order {
			if v == id {
				e.order = append(e.order[:i], e.order[i+1:]...)
				break
			}
		}
	})
}

// Len returns the number of listeners.
func (e *Events[T]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}
