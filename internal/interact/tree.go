package interact

import (
	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/internal/openstate"
)

// TreeEventKind names a cross-popup signal.
type TreeEventKind int

const (
	// TreeOpened is emitted when a popup starts opening.
	TreeOpened TreeEventKind = iota
	// TreeClosed is emitted when a popup starts closing.
	TreeClosed
)

// TreeEvent is published on Tree.Events.
type TreeEvent struct {
	Kind   TreeEventKind
	ID     string
	Reason openstate.Reason
}

// Tree links nested popups (a submenu inside a menu, a popover inside a
// dialog) so outside-press checks and closes can span the whole family.
type Tree struct {
	Events *Events[TreeEvent]
	nodes  map[string]*treeNode
}

type treeNode struct {
	parentID string
	ctx      *Context
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		Events: NewEvents[TreeEvent](),
		nodes:  make(map[string]*treeNode),
	}
}

// add registers ctx under parentID. Closing a parent closes its children
// with the same reason.
func (t *Tree) add(ctx *Context, parentID string) loop.Cancel {
	t.nodes[ctx.id] = &treeNode{parentID: parentID, ctx: ctx}

	var g loop.Group
	g.Add(ctx.ctrl.Subscribe(func(ch openstate.Change) {
		switch ch.To {
		case openstate.Opening:
			t.Events.Emit(TreeEvent{Kind: TreeOpened, ID: ctx.id, Reason: ch.Reason})
		case openstate.Closing:
			t.Events.Emit(TreeEvent{Kind: TreeClosed, ID: ctx.id, Reason: ch.Reason})
		}
	}))
	if parentID != "" {
		g.Add(t.Events.Subscribe(func(ev TreeEvent) {
			if ev.Kind == TreeClosed && ev.ID == parentID {
				ctx.ctrl.RequestClose(ev.Reason, nil)
			}
		}))
	}
	g.Add(func() { delete(t.nodes, ctx.id) })
	return loop.Once(g.Dispose)
}

// Get returns the context registered under id.
func (t *Tree) Get(id string) *Context {
	if n, ok := t.nodes[id]; ok {
		return n.ctx
	}
	return nil
}

// Parent returns the parent context of id, or nil for a root popup.
func (t *Tree) Parent(id string) *Context {
	n, ok := t.nodes[id]
	if !ok || n.parentID == "" {
		return nil
	}
	return t.Get(n.parentID)
}

// Children returns the direct children of id.
func (t *Tree) Children(id string) []*Context {
	var out []*Context
	for _, n := range t.nodes {
		if n.parentID == id {
			out = append(out, n.ctx)
		}
	}
	return out
}

// Descendants returns every context below id.
func (t *Tree) Descendants(id string) []*Context {
	var out []*Context
	for _, child := range t.Children(id) {
		out = append(out, child)
		out = append(out, t.Descendants(child.id)...)
	}
	return out
}

// Ancestors returns the parent chain of id, nearest first.
func (t *Tree) Ancestors(id string) []*Context {
	var out []*Context
	for p := t.Parent(id); p != nil; p = t.Parent(p.id) {
		out = append(out, p)
	}
	return out
}

// ContainsInDescendants reports whether node lies inside the trigger or
// floating element of an open descendant of id.
func (t *Tree) ContainsInDescendants(id string, node *dom.Node) bool {
	for _, d := range t.Descendants(id) {
		if d.ctrl.Open() && d.ownNodesContain(node) {
			return true
		}
	}
	return false
}

// Len returns the number of registered popups.
func (t *Tree) Len() int {
	return len(t.nodes)
}
