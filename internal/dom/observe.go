package dom

import (
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/grindlemire/floatui/internal/loop"
	logdebug "github.com/grindlemire/floatui/pkg/debug"
)

type observeKind int

const (
	observeResize observeKind = iota
	observeGeometry
	observeDisabled
)

type observer struct {
	kind   observeKind
	fn     func()
	active bool
}

// ObserveResize calls fn whenever the node's size changes, the analogue of a
// ResizeObserver.
func (n *Node) ObserveResize(fn func()) loop.Cancel {
	return n.observe(observeResize, fn)
}

// ObserveGeometry calls fn whenever the node's layout rect changes in
// position or size.
func (n *Node) ObserveGeometry(fn func()) loop.Cancel {
	return n.observe(observeGeometry, fn)
}

// ObserveDisabled calls fn whenever the node's disabled flag flips.
func (n *Node) ObserveDisabled(fn func()) loop.Cancel {
	return n.observe(observeDisabled, fn)
}

// ObserverCount returns the number of live observers on the node.
func (n *Node) ObserverCount() int {
	count := 0
	for _, o := range n.observers {
		if o.active {
			count++
		}
	}
	return count
}

func (n *Node) observe(kind observeKind, fn func()) loop.Cancel {
	o := &observer{kind: kind, fn: fn, active: true}
	n.observers = append(n.observers, o)
	return loop.Once(func() {
		o.active = false
		live := n.observers[:0]
		for _, existing := range n.observers {
			if existing.active {
				live = append(live, existing)
			}
		}
		n.observers = live
	})
}

func (n *Node) notify(kind observeKind) {
	for _, o := range append([]*observer(nil), n.observers...) {
		if o.active && o.kind == kind {
			safeCall(n, "observer", o.fn)
		}
	}
}

// safeCall runs fn and recovers a panic so one failing callback cannot stop
// its siblings from running.
func safeCall(n *Node, what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logdebug.Logger().Error("dom: recovered panic in "+what,
				zap.Stringer("node", n),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()
	fn()
}
