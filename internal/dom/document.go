package dom

import (
	"slices"

	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/pkg/debug"
)

// Document owns a node tree, the viewport and document-level listeners.
// It also tracks the focused node and the node under the pointer so hosts
// can feed raw input through PointerMove, PointerDown, KeyDown and Focus.
type Document struct {
	root     *Node
	viewport geom.Size
	content  geom.Size
	scrollX  float64
	scrollY  float64

	listeners listenerSet
	resize    []*observer

	active  *Node
	hovered []*Node
	pressed *Node
}

// NewDocument creates a document with a root node covering the viewport.
func NewDocument(width, height float64) *Document {
	d := &Document{viewport: geom.Size{Width: width, Height: height}}
	d.root = d.CreateElement("root")
	d.root.layout = geom.NewRect(0, 0, width, height)
	return d
}

// CreateElement creates a detached node owned by the document.
func (d *Document) CreateElement(name string) *Node {
	return &Node{name: name, doc: d}
}

// Root returns the root node.
func (d *Document) Root() *Node {
	return d.root
}

// Viewport returns the viewport size.
func (d *Document) Viewport() geom.Size {
	return d.viewport
}

// SetViewport resizes the viewport and notifies window resize observers.
func (d *Document) SetViewport(width, height float64) {
	d.viewport = geom.Size{Width: width, Height: height}
	d.root.SetRect(geom.NewRect(0, 0, max(width, d.content.Width), max(height, d.content.Height)))
	for _, o := range slices.Clone(d.resize) {
		if o.active {
			safeCall(nil, "window resize observer", o.fn)
		}
	}
}

// SetContentSize sets the scrollable document size used by RootDocument.
func (d *Document) SetContentSize(width, height float64) {
	d.content = geom.Size{Width: width, Height: height}
}

// ObserveWindowResize calls fn whenever the viewport size changes.
func (d *Document) ObserveWindowResize(fn func()) loop.Cancel {
	o := &observer{fn: fn, active: true}
	d.resize = append(d.resize, o)
	return loop.Once(func() {
		o.active = false
		d.resize = slices.DeleteFunc(d.resize, func(x *observer) bool { return !x.active })
	})
}

// ScrollTo scrolls the viewport and dispatches a scroll event to the document.
func (d *Document) ScrollTo(x, y float64) {
	x, y = max(x, 0), max(y, 0)
	if d.scrollX == x && d.scrollY == y {
		return
	}
	d.scrollX, d.scrollY = x, y
	d.Dispatch(nil, &ScrollEvent{EventBase: EventBase{typ: EventScroll}})
}

// RootRect returns the root clipping rect in viewport coordinates.
func (d *Document) RootRect(root RootBoundary) geom.Rect {
	if root == RootDocument {
		w := max(d.viewport.Width, d.content.Width)
		h := max(d.viewport.Height, d.content.Height)
		return geom.NewRect(-d.scrollX, -d.scrollY, w, h)
	}
	return geom.NewRect(0, 0, d.viewport.Width, d.viewport.Height)
}

// AddEventListener registers a document-level listener. Capture listeners see
// every event, including non-bubbling ones, before any node listener; bubble
// listeners run last and only for bubbling events.
func (d *Document) AddEventListener(typ EventType, fn Listener, opts ...ListenerOption) loop.Cancel {
	return d.listeners.add(typ, fn, opts)
}

// ListenerCount returns the number of live document-level listeners.
func (d *Document) ListenerCount() int {
	return d.listeners.count()
}

// Dispatch delivers ev to target following capture then bubble order:
// document capture listeners, node capture listeners from the root down,
// listeners on the target, node bubble listeners up to the root, then
// document bubble listeners. A nil target dispatches to the document only.
func (d *Document) Dispatch(target *Node, ev Event) {
	base := ev.Base()
	base.Target = target
	typ := ev.Type()

	var path []*Node
	for cur := target; cur != nil; cur = cur.parent {
		path = append(path, cur)
	}

	run := func(owner *Node, ls []*listener) bool {
		for _, l := range ls {
			base.CurrentTarget = owner
			safeCall(owner, typ.String()+" listener", func() { l.fn(ev) })
		}
		return base.stopped
	}

	if run(nil, d.listeners.snapshot(typ, true)) {
		return
	}
	for i := len(path) - 1; i >= 1; i-- {
		if run(path[i], path[i].listeners.snapshot(typ, true)) {
			return
		}
	}
	if target != nil {
		ls := append(target.listeners.snapshot(typ, true), target.listeners.snapshot(typ, false)...)
		if run(target, ls) {
			return
		}
	}
	if !typ.Bubbles() {
		return
	}
	for i := 1; i < len(path); i++ {
		if run(path[i], path[i].listeners.snapshot(typ, false)) {
			return
		}
	}
	run(nil, d.listeners.snapshot(typ, false))
}

// ActiveElement returns the focused node, or nil.
func (d *Document) ActiveElement() *Node {
	return d.active
}

// Focus moves focus to n. visible marks keyboard-origin focus. Passing nil
// blurs the current node. Blur/focusout fire on the old node before
// focus/focusin fire on the new one.
func (d *Document) Focus(n *Node, visible bool) {
	if n != nil && !n.Focusable() {
		return
	}
	prev := d.active
	if prev == n {
		return
	}
	d.active = n
	debug.Log("dom: focus %s -> %s (visible=%v)", prev, n, visible)
	if prev != nil {
		d.Dispatch(prev, &FocusEvent{EventBase: EventBase{typ: EventBlur}, RelatedTarget: n, Visible: visible})
		d.Dispatch(prev, &FocusEvent{EventBase: EventBase{typ: EventFocusOut}, RelatedTarget: n, Visible: visible})
	}
	if n != nil {
		d.Dispatch(n, &FocusEvent{EventBase: EventBase{typ: EventFocus}, RelatedTarget: prev, Visible: visible})
		d.Dispatch(n, &FocusEvent{EventBase: EventBase{typ: EventFocusIn}, RelatedTarget: prev, Visible: visible})
	}
}

// KeyDown dispatches a keydown event to the focused node (or the root).
func (d *Document) KeyDown(key Key, r rune, mod Modifier) *KeyEvent {
	ev := NewKeyEvent(key, r, mod)
	target := d.active
	if target == nil {
		target = d.root
	}
	d.Dispatch(target, ev)
	return ev
}

// PointerMove moves the pointer to (x, y): leave events fire on nodes the
// pointer exited (deepest first), enter events on nodes it entered (outermost
// first), then a bubbling pointermove on the node under the pointer.
func (d *Document) PointerMove(x, y float64, ptype PointerType) {
	target := d.ElementAt(x, y)
	var chain []*Node
	for cur := target; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}

	prev := d.hovered
	d.hovered = chain

	for _, n := range prev {
		if !slices.Contains(chain, n) {
			ev := NewPointerEvent(EventPointerLeave, x, y)
			ev.PointerType = ptype
			ev.RelatedTarget = target
			d.Dispatch(n, ev)
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		if !slices.Contains(prev, n) {
			ev := NewPointerEvent(EventPointerEnter, x, y)
			ev.PointerType = ptype
			if len(prev) > 0 {
				ev.RelatedTarget = prev[0]
			}
			d.Dispatch(n, ev)
		}
	}

	ev := NewPointerEvent(EventPointerMove, x, y)
	ev.PointerType = ptype
	d.Dispatch(target, ev)
}

// PointerDown presses a button at (x, y). A primary press moves focus to the
// nearest focusable ancestor of the hit node as pointer-origin focus; a
// secondary press also dispatches contextmenu.
func (d *Document) PointerDown(x, y float64, button MouseButton, ptype PointerType) *PointerEvent {
	target := d.ElementAt(x, y)
	ev := NewPointerEvent(EventPointerDown, x, y)
	ev.Button = button
	ev.PointerType = ptype
	d.Dispatch(target, ev)
	d.pressed = target

	if ev.DefaultPrevented() {
		return ev
	}
	if button == MouseLeft {
		for cur := target; cur != nil; cur = cur.parent {
			if cur.Focusable() {
				d.Focus(cur, false)
				break
			}
		}
	}
	if button == MouseRight {
		cm := NewPointerEvent(EventContextMenu, x, y)
		cm.Button = button
		cm.PointerType = ptype
		d.Dispatch(target, cm)
	}
	return ev
}

// PointerUp releases a button at (x, y) and dispatches click when the release
// lands on the node that was pressed (or its descendant).
func (d *Document) PointerUp(x, y float64, button MouseButton, ptype PointerType) {
	target := d.ElementAt(x, y)
	ev := NewPointerEvent(EventPointerUp, x, y)
	ev.Button = button
	ev.PointerType = ptype
	d.Dispatch(target, ev)

	pressed := d.pressed
	d.pressed = nil
	if button != MouseLeft || pressed == nil || target == nil || !pressed.Contains(target) {
		return
	}
	click := NewPointerEvent(EventClick, x, y)
	click.Button = button
	click.PointerType = ptype
	d.Dispatch(pressed, click)
}

// Click is PointerDown followed by PointerUp at the same point.
func (d *Document) Click(x, y float64, ptype PointerType) {
	d.PointerDown(x, y, MouseLeft, ptype)
	d.PointerUp(x, y, MouseLeft, ptype)
}

// ElementAt finds the deepest node whose bounding rect contains (x, y) and
// which is not clipped away at that point. Later siblings render on top, so
// children are checked in reverse order.
func (d *Document) ElementAt(x, y float64) *Node {
	return elementAt(d.root, x, y)
}

func elementAt(n *Node, x, y float64) *Node {
	bounds := n.BoundingRect()
	inside := bounds.Contains(x, y)
	if !inside && n.Clips() {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := elementAt(n.children[i], x, y); hit != nil {
			return hit
		}
	}
	if inside {
		return n
	}
	return nil
}

// nodeDetached drops document references to a subtree that left the tree.
func (d *Document) nodeDetached(n *Node) {
	if d.active != nil && n.Contains(d.active) {
		d.active = nil
	}
	d.hovered = slices.DeleteFunc(d.hovered, n.Contains)
	if d.pressed != nil && n.Contains(d.pressed) {
		d.pressed = nil
	}
}
