package dom

import "github.com/grindlemire/floatui/internal/loop"

// Listener handles a dispatched event.
type Listener func(Event)

type listener struct {
	fn      Listener
	capture bool
	active  bool
}

// ListenerOption configures an event listener.
type ListenerOption func(*listener)

// Capture registers the listener for the capture phase.
func Capture() ListenerOption {
	return func(l *listener) { l.capture = true }
}

type listenerSet map[EventType][]*listener

func (s *listenerSet) add(typ EventType, fn Listener, opts []ListenerOption) loop.Cancel {
	if *s == nil {
		*s = make(listenerSet)
	}
	l := &listener{fn: fn, active: true}
	for _, opt := range opts {
		opt(l)
	}
	(*s)[typ] = append((*s)[typ], l)
	set := *s
	return loop.Once(func() {
		l.active = false
		live := set[typ][:0]
		for _, existing := range set[typ] {
			if existing.active {
				live = append(live, existing)
			}
		}
		set[typ] = live
	})
}

func (s listenerSet) snapshot(typ EventType, capture bool) []*listener {
	var out []*listener
	for _, l := range s[typ] {
		if l.active && l.capture == capture {
			out = append(out, l)
		}
	}
	return out
}

func (s listenerSet) count() int {
	n := 0
	for _, ls := range s {
		for _, l := range ls {
			if l.active {
				n++
			}
		}
	}
	return n
}

// AddEventListener registers fn for events of typ dispatched to n or, for
// bubbling types, to its descendants. Each listener runs independently: a
// panicking listener is recovered and logged and its siblings still run.
func (n *Node) AddEventListener(typ EventType, fn Listener, opts ...ListenerOption) loop.Cancel {
	return n.listeners.add(typ, fn, opts)
}

// ListenerCount returns the number of live listeners on the node.
func (n *Node) ListenerCount() int {
	return n.listeners.count()
}
