package interact

import (
	"errors"

	"github.com/google/uuid"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/internal/openstate"
)

var (
	// ErrNilDocument is returned by NewContext without a document.
	ErrNilDocument = errors.New("interact: document is required")
	// ErrNilTrigger is returned by NewContext without a trigger node.
	ErrNilTrigger = errors.New("interact: trigger node is required")
	// ErrNilFloating is returned by NewContext without a floating node.
	ErrNilFloating = errors.New("interact: floating node is required")
	// ErrNilController is returned by NewContext without a controller.
	ErrNilController = errors.New("interact: controller is required")
	// ErrNilScheduler is returned by NewContext without a scheduler.
	ErrNilScheduler = errors.New("interact: scheduler is required")
)

// Context is the state every hook of one popup shares.
type Context struct {
	id       string
	doc      *dom.Document
	sched    loop.Scheduler
	trigger  *dom.Node
	floating *dom.Node
	ref      dom.Reference
	ctrl     *openstate.Controller

	tree     *Tree
	parentID string
	kind     string

	instant  string
	refFuncs *Events[dom.Reference]
	group    loop.Group
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithTree places the popup in tree under parentID (empty for a root).
func WithTree(tree *Tree, parentID string) ContextOption {
	return func(c *Context) {
		c.tree = tree
		c.parentID = parentID
	}
}

// WithKind names the popup type. Popups of one kind share a dismiss stack.
func WithKind(kind string) ContextOption {
	return func(c *Context) { c.kind = kind }
}

// WithID overrides the generated id.
func WithID(id string) ContextOption {
	return func(c *Context) { c.id = id }
}

// NewContext creates the shared context for one popup. The trigger receives
// interaction listeners and is also the placement reference unless
// SetReference replaces it.
func NewContext(doc *dom.Document, sched loop.Scheduler, trigger, floating *dom.Node, ctrl *openstate.Controller, opts ...ContextOption) (*Context, error) {
	switch {
	case doc == nil:
		return nil, ErrNilDocument
	case sched == nil:
		return nil, ErrNilScheduler
	case trigger == nil:
		return nil, ErrNilTrigger
	case floating == nil:
		return nil, ErrNilFloating
	case ctrl == nil:
		return nil, ErrNilController
	}

	c := &Context{
		id:       "floatui-" + uuid.NewString(),
		doc:      doc,
		sched:    sched,
		trigger:  trigger,
		floating: floating,
		ref:      trigger,
		ctrl:     ctrl,
		kind:     "popup",
		refFuncs: NewEvents[dom.Reference](),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tree == nil {
		c.tree = NewTree()
	}
	c.group.Add(c.tree.add(c, c.parentID))
	c.group.Add(ctrl.Subscribe(func(ch openstate.Change) {
		if ch.To == openstate.Closed {
			c.instant = ""
		}
	}))
	return c, nil
}

// ID returns the popup id, also used as the floating element's id.
func (c *Context) ID() string { return c.id }

// Document returns the document.
func (c *Context) Document() *dom.Document { return c.doc }

// Scheduler returns the scheduler hooks time against.
func (c *Context) Scheduler() loop.Scheduler { return c.sched }

// Trigger returns the node interaction listeners attach to.
func (c *Context) Trigger() *dom.Node { return c.trigger }

// Floating returns the floating element.
func (c *Context) Floating() *dom.Node { return c.floating }

// Controller returns the open-state controller.
func (c *Context) Controller() *openstate.Controller { return c.ctrl }

// Tree returns the popup tree.
func (c *Context) Tree() *Tree { return c.tree }

// ParentID returns the parent popup id, or "".
func (c *Context) ParentID() string { return c.parentID }

// Kind returns the popup type name.
func (c *Context) Kind() string { return c.kind }

// Reference returns the current placement reference.
func (c *Context) Reference() dom.Reference { return c.ref }

// SetReference replaces the placement reference and notifies
// OnReferenceChange listeners.
func (c *Context) SetReference(ref dom.Reference) {
	c.ref = ref
	c.refFuncs.Emit(ref)
}

// OnReferenceChange registers fn for SetReference calls.
func (c *Context) OnReferenceChange(fn func(dom.Reference)) loop.Cancel {
	return c.refFuncs.Subscribe(fn)
}

// Instant returns the data-instant reason for the current open, or "".
func (c *Context) Instant() string { return c.instant }

// SetInstant marks the current transition as instant ("delay", "click",
// "dismiss"). It is cleared when the popup closes.
func (c *Context) SetInstant(reason string) { c.instant = reason }

// Contains reports whether node is inside the trigger, the floating element
// or any open descendant popup in the tree.
func (c *Context) Contains(node *dom.Node) bool {
	if node == nil {
		return false
	}
	return c.ownNodesContain(node) || c.tree.ContainsInDescendants(c.id, node)
}

func (c *Context) ownNodesContain(node *dom.Node) bool {
	return c.trigger.Contains(node) || c.floating.Contains(node)
}

// Own ties a disposer to the context lifetime.
func (c *Context) Own(cancel loop.Cancel) loop.Cancel {
	return c.group.Add(cancel)
}

// Dispose removes the popup from its tree and disposes everything owned.
func (c *Context) Dispose() {
	c.group.Dispose()
}
