package floatui

import (
	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/openstate"
)

// Popover is an interactive dialog anchored to its trigger. A click or
// Enter/Space on the trigger toggles it; opening moves focus to the first
// focusable node inside it and closing returns focus to the trigger.
type Popover struct {
	*Popup
}

// NewPopover creates a popover below trigger. WithModal keeps it open on
// outside presses.
func NewPopover(doc *dom.Document, trigger, floating *dom.Node, opts ...Option) (*Popover, error) {
	cfg := defaultConfig()
	cfg.kind = "popover"
	cfg.interactions = Interactions{
		Click:   &ClickOptions{},
		Dismiss: &DismissOptions{},
		Role:    RoleDialog,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	p, err := newPopup(doc, trigger, floating, cfg)
	if err != nil {
		return nil, err
	}
	p.own(p.ctrl.Subscribe(func(ch openstate.Change) {
		if ch.To != openstate.Opening || ch.From != openstate.Closed || ch.Reason == openstate.ReasonHover {
			return
		}
		_, keyboard := ch.Event.(*dom.KeyEvent)
		focusFirst(doc, floating, keyboard)
	}))
	return &Popover{Popup: p}, nil
}

// MustNewPopover is like NewPopover but panics on error.
func MustNewPopover(doc *dom.Document, trigger, floating *dom.Node, opts ...Option) *Popover {
	p, err := NewPopover(doc, trigger, floating, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// focusFirst focuses the first enabled focusable node under root.
func focusFirst(doc *dom.Document, root *dom.Node, visible bool) {
	var target *dom.Node
	dom.Walk(root, func(n *dom.Node) bool {
		if target != nil {
			return false
		}
		if n != root && n.Focusable() && !n.Disabled() {
			target = n
			return false
		}
		return true
	})
	if target != nil {
		doc.Focus(target, visible)
	}
}
