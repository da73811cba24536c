package floatui

import (
	"github.com/mattn/go-runewidth"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/interact"
	"github.com/grindlemire/floatui/internal/listnav"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/internal/openstate"
)

// list is the list-navigation half shared by Menu and Select.
type list struct {
	*Popup
	nav  *listnav.Controller
	role Role
}

// anchorKeys lets arrow keys on the anchor open and drive the list; submenus
// leave their anchor to the parent list.
func newList(p *Popup, role Role, onSelect func(int, dom.Event), anchorKeys bool, extra ...listnav.Option) (*list, error) {
	opts := []listnav.Option{
		listnav.WithFocusItems(true),
		listnav.WithOnSelect(onSelect),
		listnav.WithRTL(p.cfg.rtl),
	}
	opts = append(opts, extra...)
	opts = append(opts, p.cfg.listOpts...)
	nav, err := listnav.New(nil, p.cfg.sched, opts...)
	if err != nil {
		return nil, err
	}

	l := &list{Popup: p, nav: nav, role: role}
	p.own(nav.Bind(p.ctrl))
	p.own(nav.Attach(p.floating))
	p.own(p.floating.AddEventListener(dom.EventPointerLeave, func(dom.Event) {
		nav.PointerLeave()
	}))
	if anchorKeys {
		p.own(p.anchor.AddEventListener(dom.EventKeyDown, l.onAnchorKey))
	}
	return l, nil
}

// onAnchorKey opens the list from the arrow keys and, once it is open,
// lets the anchor drive navigation while focus stays on it.
func (l *list) onAnchorKey(e dom.Event) {
	ev := e.(*dom.KeyEvent)
	if ev.DefaultPrevented() || ev.Base().Target != l.anchor {
		return
	}
	if l.ctrl.Open() {
		l.nav.HandleKey(ev)
		return
	}
	if ev.Key != dom.KeyDown && ev.Key != dom.KeyUp {
		return
	}
	ev.PreventDefault()
	l.ctrl.RequestOpen(openstate.ReasonListNavigation, ev)
}

// addItem registers node as an item and routes clicks on it to activate.
func (l *list) addItem(node *dom.Node, opts listnav.ItemOptions, activate func(i int, ev dom.Event)) Cancel {
	var g loop.Group
	node.SetFocusable(true)
	g.Add(l.nav.RegisterItem(node, opts))
	g.Add(node.AddEventListener(dom.EventClick, func(e dom.Event) {
		if i := l.indexOf(node); i >= 0 {
			activate(i, e)
		}
	}))
	interact.ItemPropsFor(l.role, false, false, opts.Disabled || node.Disabled()).Apply(node)
	g.Add(func() {
		node.RemoveAttr("role")
		node.RemoveAttr("aria-selected")
		node.RemoveAttr("aria-disabled")
		node.RemoveAttr("data-highlighted")
	})
	return l.own(loop.Once(g.Dispose))
}

func (l *list) indexOf(node *dom.Node) int {
	for i, it := range l.nav.Registry().Items() {
		if it.Node() == node {
			return i
		}
	}
	return -1
}

// Len returns the number of items.
func (l *list) Len() int {
	return l.nav.Registry().Len()
}

// Label returns the label of item i, or "".
func (l *list) Label(i int) string {
	if it := l.nav.Registry().At(i); it != nil {
		return it.Label()
	}
	return ""
}

// Active returns the highlighted index, or -1.
func (l *list) Active() int {
	return l.nav.Active()
}

// Highlight makes item i active. Disabled or out of range indices clear it.
func (l *list) Highlight(i int) {
	l.nav.Highlight(i)
}

// ContentWidth returns the widest label in terminal cells.
func (l *list) ContentWidth() int {
	w := 0
	for _, it := range l.nav.Registry().Items() {
		w = max(w, runewidth.StringWidth(it.Label()))
	}
	return w
}
