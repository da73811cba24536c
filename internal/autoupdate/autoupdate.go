// Package autoupdate re-runs placement whenever the geometry of a reference
// or its floating element may have changed.
package autoupdate

import (
	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/pkg/debug"
)

type options struct {
	ancestorScroll bool
	ancestorResize bool
	elementResize  bool
	layoutShift    bool
	animationFrame bool
}

// Option configures AutoUpdate.
type Option func(*options)

// WithAncestorScroll toggles listening to scroll on every scroll container of
// the reference and the floating element, and on the document. Default on.
func WithAncestorScroll(on bool) Option {
	return func(o *options) { o.ancestorScroll = on }
}

// WithAncestorResize toggles observing viewport and scroll container
// resizes. Default on.
func WithAncestorResize(on bool) Option {
	return func(o *options) { o.ancestorResize = on }
}

// WithElementResize toggles observing the size of the reference and the
// floating element. Default on.
func WithElementResize(on bool) Option {
	return func(o *options) { o.elementResize = on }
}

// WithLayoutShift toggles observing the reference moving in layout without
// a scroll. Default on.
func WithLayoutShift(on bool) Option {
	return func(o *options) { o.layoutShift = on }
}

// WithAnimationFrame polls the reference rect every frame and updates when
// it changed. Use it for references that move without any event, such as
// virtual elements. Default off.
func WithAnimationFrame(on bool) Option {
	return func(o *options) { o.animationFrame = on }
}

// AutoUpdate calls update once immediately and then whenever a geometry
// trigger fires. Triggers are coalesced so update runs at most once per
// frame. The returned Cancel removes every listener and observer and drops a
// pending frame; calling it again does nothing.
func AutoUpdate(ref dom.Reference, floating *dom.Node, sched loop.Scheduler, update func(), opts ...Option) loop.Cancel {
	o := options{
		ancestorScroll: true,
		ancestorResize: true,
		elementResize:  true,
		layoutShift:    true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var g loop.Group
	batch := loop.NewFrameBatcher(sched, update)
	g.Add(batch.Cancel)
	request := func() { batch.Request() }
	onEvent := func(dom.Event) { batch.Request() }

	refNode := dom.ReferenceNode(ref)

	if o.ancestorScroll || o.ancestorResize {
		seen := make(map[*dom.Node]bool)
		for _, n := range append(dom.ScrollAncestors(refNode), dom.ScrollAncestors(floating)...) {
			if seen[n] {
				continue
			}
			seen[n] = true
			if o.ancestorScroll {
				g.Add(n.AddEventListener(dom.EventScroll, onEvent))
			}
			if o.ancestorResize {
				g.Add(n.ObserveResize(request))
			}
		}

		if doc := document(refNode, floating); doc != nil {
			if o.ancestorScroll {
				// Scroll does not bubble; a capture listener sees the
				// document's own scroll, which has no target.
				g.Add(doc.AddEventListener(dom.EventScroll, func(ev dom.Event) {
					if ev.Base().Target == nil {
						batch.Request()
					}
				}, dom.Capture()))
			}
			if o.ancestorResize {
				g.Add(doc.ObserveWindowResize(request))
			}
		}
	}

	if o.elementResize {
		if refNode != nil {
			g.Add(refNode.ObserveResize(request))
		}
		if floating != nil {
			g.Add(floating.ObserveResize(request))
		}
	}

	if o.layoutShift && refNode != nil {
		g.Add(refNode.ObserveGeometry(request))
	}

	if o.animationFrame {
		g.Add(pollFrames(ref, sched, update))
	}

	debug.Log("autoupdate: subscribed %d disposers", g.Len())
	update()

	return loop.Once(g.Dispose)
}

// pollFrames compares the reference rect every frame and calls update when
// it moved or resized.
func pollFrames(ref dom.Reference, sched loop.Scheduler, update func()) loop.Cancel {
	var (
		prev    geom.Rect
		started bool
		stopped bool
		cancel  loop.Cancel
	)
	var frame func()
	frame = func() {
		if stopped {
			return
		}
		rect := ref.BoundingRect()
		if started && rect != prev {
			update()
		}
		prev, started = rect, true
		if !stopped {
			cancel = sched.RequestFrame(frame)
		}
	}
	frame()

	return func() {
		stopped = true
		if cancel != nil {
			cancel()
		}
	}
}

func document(nodes ...*dom.Node) *dom.Document {
	for _, n := range nodes {
		if n != nil && n.Document() != nil {
			return n.Document()
		}
	}
	return nil
}
