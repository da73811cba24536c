package dom

import (
	"maps"
	"slices"

	"github.com/grindlemire/floatui/internal/geom"
)

// Overflow controls whether a node clips and scrolls its descendants.
type Overflow int

const (
	// OverflowVisible neither clips nor scrolls (default).
	OverflowVisible Overflow = iota
	// OverflowHidden clips descendants without user scrolling.
	OverflowHidden
	// OverflowScroll clips descendants and scrolls.
	OverflowScroll
)

// Position is the CSS positioning scheme of a node.
type Position int

const (
	// PositionStatic nodes move with their scroll ancestors (default).
	PositionStatic Position = iota
	// PositionAbsolute nodes are offset parents for their descendants.
	PositionAbsolute
	// PositionFixed nodes are laid out against the viewport and ignore scroll.
	PositionFixed
)

// Node is one box in the tree.
type Node struct {
	name     string
	doc      *Document
	parent   *Node
	children []*Node

	// layout rect in document coordinates (viewport coordinates for fixed nodes)
	layout   geom.Rect
	overflow Overflow
	position Position
	scrollX  float64
	scrollY  float64

	focusable bool
	disabled  bool

	attrs  map[string]string
	styles map[string]string

	listeners listenerSet
	observers []*observer
}

// Name returns the debug name given at creation.
func (n *Node) Name() string {
	return n.name
}

// String implements fmt.Stringer for debug logging.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.name
}

// Document returns the owning document.
func (n *Node) Document() *Document {
	return n.doc
}

// Parent returns the parent node, or nil for the root or a detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// AppendChild adds child as the last child of n, detaching it from any
// previous parent first.
func (n *Node) AppendChild(child *Node) *Node {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// RemoveChild detaches child from n. Does nothing if child is not a child of n.
func (n *Node) RemoveChild(child *Node) {
	idx := slices.Index(n.children, child)
	if idx == -1 {
		return
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
	if n.doc != nil {
		n.doc.nodeDetached(child)
	}
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// Connected reports whether n is attached to its document's root.
func (n *Node) Connected() bool {
	if n.doc == nil {
		return false
	}
	for cur := n; cur != nil; cur = cur.parent {
		if cur == n.doc.root {
			return true
		}
	}
	return false
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// SetFocusable marks the node as able to receive focus.
func (n *Node) SetFocusable(focusable bool) *Node {
	n.focusable = focusable
	return n
}

// Focusable reports whether the node can currently receive focus.
func (n *Node) Focusable() bool {
	return n.focusable && !n.disabled
}

// SetDisabled marks the node disabled. Disabled nodes cannot take focus.
func (n *Node) SetDisabled(disabled bool) *Node {
	if n.disabled == disabled {
		return n
	}
	n.disabled = disabled
	n.notify(observeDisabled)
	return n
}

// Disabled reports whether the node is disabled.
func (n *Node) Disabled() bool {
	return n.disabled
}

// SetAttr sets an attribute. An empty value is kept (boolean attribute).
func (n *Node) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, name)
}

// Attr returns an attribute value and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// Attrs returns a copy of all attributes. The result is never nil.
func (n *Node) Attrs() map[string]string {
	out := make(map[string]string, len(n.attrs))
	maps.Copy(out, n.attrs)
	return out
}

// SetStyle sets an inline style property (including custom properties).
func (n *Node) SetStyle(prop, value string) {
	if n.styles == nil {
		n.styles = make(map[string]string)
	}
	n.styles[prop] = value
}

// RemoveStyle deletes an inline style property.
func (n *Node) RemoveStyle(prop string) {
	delete(n.styles, prop)
}

// Style returns an inline style property.
func (n *Node) Style(prop string) string {
	return n.styles[prop]
}

// Styles returns a copy of all inline style properties. The result is never
// nil.
func (n *Node) Styles() map[string]string {
	out := make(map[string]string, len(n.styles))
	maps.Copy(out, n.styles)
	return out
}

// SetOverflow sets how the node clips its descendants.
func (n *Node) SetOverflow(o Overflow) *Node {
	n.overflow = o
	return n
}

// Overflow returns the node's overflow mode.
func (n *Node) Overflow() Overflow {
	return n.overflow
}

// SetPosition sets the node's positioning scheme.
func (n *Node) SetPosition(p Position) *Node {
	n.position = p
	return n
}

// Position returns the node's positioning scheme.
func (n *Node) Position() Position {
	return n.position
}
