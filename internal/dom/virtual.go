package dom

import "github.com/grindlemire/floatui/internal/geom"

// Reference is anything a popup can be anchored to: a Node, a virtual element
// with a caller-supplied rect, or a fixed point.
type Reference interface {
	// BoundingRect returns the reference rect in viewport coordinates.
	BoundingRect() geom.Rect
}

// ContextElement is implemented by references that live inside a node tree.
// The node's clipping ancestors and scroll containers apply to the reference.
type ContextElement interface {
	ContextNode() *Node
}

// ContextNode returns the node itself.
func (n *Node) ContextNode() *Node {
	return n
}

var (
	_ Reference      = (*Node)(nil)
	_ ContextElement = (*Node)(nil)
	_ Reference      = (*VirtualElement)(nil)
	_ Reference      = PointAnchor{}
)

// VirtualElement is a reference whose rect is computed on demand, such as a
// text selection or the caret.
type VirtualElement struct {
	// Rect returns the current rect in viewport coordinates.
	Rect func() geom.Rect
	// Context optionally names the node whose clipping ancestors apply.
	Context *Node
}

// BoundingRect calls Rect.
func (v *VirtualElement) BoundingRect() geom.Rect {
	if v.Rect == nil {
		return geom.Rect{}
	}
	return v.Rect()
}

// ContextNode returns the configured context node.
func (v *VirtualElement) ContextNode() *Node {
	return v.Context
}

// PointAnchor is a zero-size reference at a fixed point, used for context
// menus and pointer-following popups.
type PointAnchor struct {
	X, Y float64
}

// BoundingRect returns a zero-size rect at the point.
func (p PointAnchor) BoundingRect() geom.Rect {
	return geom.NewRect(p.X, p.Y, 0, 0)
}

// ReferenceNode returns the node a reference belongs to, or nil.
func ReferenceNode(ref Reference) *Node {
	if ce, ok := ref.(ContextElement); ok {
		return ce.ContextNode()
	}
	return nil
}

// ReferenceConnected reports whether a reference can still be measured.
// References without a context node are always connected.
func ReferenceConnected(ref Reference) bool {
	if ref == nil {
		return false
	}
	n := ReferenceNode(ref)
	if n == nil {
		return true
	}
	return n.Connected()
}
