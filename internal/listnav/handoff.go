package listnav

import (
	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/openstate"
	"github.com/grindlemire/floatui/pkg/debug"
)

// Handoff is the submenu an item owns: its open state and its own list
// controller.
type Handoff struct {
	Controller *openstate.Controller
	Nav        *Controller
}

// OpenSubmenu opens the submenu of item i and hands control to its
// controller, which highlights its first enabled item. It reports whether
// the item has a submenu.
func (c *Controller) OpenSubmenu(i int, ev dom.Event) bool {
	item := c.reg.At(i)
	if item == nil || item.opts.Submenu == nil || !c.Enabled(i) {
		return false
	}
	c.setActive(i, true)
	c.openChild(item.opts.Submenu, ev)
	return true
}

// Adopt links an already opening submenu (opened by hover) so keys and
// closes route through it.
func (c *Controller) Adopt(h *Handoff) {
	if c.child == h.Nav {
		return
	}
	c.closeChild(nil)
	c.link(h)
}

// CloseSubmenu closes the handed-off submenu and takes control back. The
// active index is unchanged.
func (c *Controller) CloseSubmenu(ev dom.Event) {
	c.closeChild(ev)
}

func (c *Controller) openChild(h *Handoff, ev dom.Event) {
	if c.child != h.Nav {
		c.closeChild(nil)
		c.link(h)
	}
	h.Controller.RequestOpen(openstate.ReasonListNavigation, ev)
	h.Nav.Move(First)
	debug.Log("listnav: handed off to submenu (active=%d)", c.Active())
}

func (c *Controller) link(h *Handoff) {
	c.child = h.Nav
	c.handoff = h
	h.Nav.parent = c
	c.childSub = h.Controller.Subscribe(func(ch openstate.Change) {
		if !ch.To.IsOpen() && c.child == h.Nav {
			c.release()
		}
	})
}

func (c *Controller) closeChild(ev dom.Event) {
	if c.child == nil {
		return
	}
	h := c.handoff
	c.release()
	h.Controller.RequestClose(openstate.ReasonListNavigation, ev)
}

// release drops the child link and returns focus to the active item.
func (c *Controller) release() {
	child := c.child
	if c.childSub != nil {
		c.childSub()
		c.childSub = nil
	}
	c.child = nil
	c.handoff = nil
	child.Reset()
	debug.Log("listnav: control returned to parent (active=%d)", c.Active())

	if !c.focusItems {
		return
	}
	if it := c.ActiveItem(); it != nil && it.node != nil && it.node.Document() != nil {
		it.node.Document().Focus(it.node, true)
	}
}
