package loop

import "sync"

// Cancel is a disposer returned by every subscribe, observe or schedule call.
// Calling it more than once is a no-op.
type Cancel func()

// Noop is a Cancel that does nothing.
func Noop() {}

// Once wraps fn so only the first call runs it.
func Once(fn func()) Cancel {
	if fn == nil {
		return Noop
	}
	var once sync.Once
	return func() { once.Do(fn) }
}

// Group holds a set of active disposers and cancels them in bulk.
// The zero value is ready to use. A Group can be disposed any number of times
// and reused afterwards; Dispose only cancels what is currently held.
type Group struct {
	mu      sync.Mutex
	next    uint64
	cancels map[uint64]Cancel
	order   []uint64
}

// Add registers c with the group and returns a disposer that cancels c and
// removes it from the group.
func (g *Group) Add(c Cancel) Cancel {
	if c == nil {
		return Noop
	}
	g.mu.Lock()
	if g.cancels == nil {
		g.cancels = make(map[uint64]Cancel)
	}
	id := g.next
	g.next++
	g.cancels[id] = c
	g.order = append(g.order, id)
	g.mu.Unlock()

	return Once(func() {
		g.mu.Lock()
		fn, ok := g.cancels[id]
		delete(g.cancels, id)
		g.mu.Unlock()
		if ok {
			fn()
		}
	})
}

// Dispose cancels every held disposer, most recently added first.
func (g *Group) Dispose() {
	g.mu.Lock()
	pending := make([]Cancel, 0, len(g.cancels))
	for i := len(g.order) - 1; i >= 0; i-- {
		if fn, ok := g.cancels[g.order[i]]; ok {
			pending = append(pending, fn)
		}
	}
	g.cancels = nil
	g.order = nil
	g.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// Len returns the number of held disposers.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.cancels)
}
