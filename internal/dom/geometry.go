package dom

import "github.com/grindlemire/floatui/internal/geom"

// RootBoundary selects the outermost clipping rect.
type RootBoundary int

const (
	// RootViewport clips against the visible viewport (default).
	RootViewport RootBoundary = iota
	// RootDocument clips against the whole scrollable document.
	RootDocument
)

// SetRect sets the node's layout rect. Resize observers fire when the size
// changes; geometry observers fire on any change.
func (n *Node) SetRect(r geom.Rect) {
	old := n.layout
	if old == r {
		return
	}
	n.layout = r
	if old.Width != r.Width || old.Height != r.Height {
		n.notify(observeResize)
	}
	n.notify(observeGeometry)
}

// Layout returns the layout rect as set by SetRect, before scrolling.
func (n *Node) Layout() geom.Rect {
	return n.layout
}

// Size returns the layout size.
func (n *Node) Size() geom.Size {
	return n.layout.Size()
}

// BoundingRect returns the node's rect in viewport coordinates, the analogue
// of getBoundingClientRect. Detached nodes report a zero rect.
func (n *Node) BoundingRect() geom.Rect {
	if !n.Connected() {
		return geom.Rect{}
	}
	dx, dy := 0.0, 0.0
	fixed := n.position == PositionFixed
	for cur := n.parent; cur != nil && !fixed; cur = cur.parent {
		if cur.overflow == OverflowScroll {
			dx += cur.scrollX
			dy += cur.scrollY
		}
		fixed = cur.position == PositionFixed
	}
	if !fixed {
		dx += n.doc.scrollX
		dy += n.doc.scrollY
	}
	return n.layout.Translate(-dx, -dy)
}

// ScrollTo sets the scroll offset of a scroll container and dispatches a
// scroll event to it. Offsets are clamped at zero.
func (n *Node) ScrollTo(x, y float64) {
	x, y = max(x, 0), max(y, 0)
	if n.scrollX == x && n.scrollY == y {
		return
	}
	n.scrollX, n.scrollY = x, y
	if n.doc != nil {
		n.doc.Dispatch(n, &ScrollEvent{EventBase: EventBase{typ: EventScroll}})
	}
}

// ScrollOffset returns the current scroll offset.
func (n *Node) ScrollOffset() (x, y float64) {
	return n.scrollX, n.scrollY
}

// Clips reports whether the node clips its descendants.
func (n *Node) Clips() bool {
	return n.overflow != OverflowVisible
}

// ClippingAncestors returns the ancestors that clip n, nearest first. The walk
// stops at a fixed-position node since the viewport is its containing block.
func ClippingAncestors(n *Node) []*Node {
	var out []*Node
	if n == nil || n.position == PositionFixed {
		return nil
	}
	for cur := n.parent; cur != nil; cur = cur.parent {
		if cur.Clips() {
			out = append(out, cur)
		}
		if cur.position == PositionFixed {
			break
		}
	}
	return out
}

// ScrollAncestors returns the ancestors of n that scroll, nearest first.
func ScrollAncestors(n *Node) []*Node {
	var out []*Node
	for _, a := range ClippingAncestors(n) {
		if a.overflow == OverflowScroll {
			out = append(out, a)
		}
	}
	return out
}

// ClippingRect intersects the bounding rects of every clipping ancestor of n
// with the root boundary. Nested scroll containers accumulate by intersection,
// so the result is the region in which n can actually be seen. The result may
// have negative extent when the ancestors do not overlap.
func ClippingRect(n *Node, root RootBoundary) geom.Rect {
	var rect geom.Rect
	if n != nil && n.doc != nil {
		rect = n.doc.RootRect(root)
	}
	for _, a := range ClippingAncestors(n) {
		rect = rect.Clip(a.BoundingRect())
	}
	return rect
}

// OffsetParent returns the nearest positioned ancestor, or the root.
func OffsetParent(n *Node) *Node {
	for cur := n.parent; cur != nil; cur = cur.parent {
		if cur.position != PositionStatic || cur.parent == nil {
			return cur
		}
	}
	return nil
}
