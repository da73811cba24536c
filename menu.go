package floatui

import (
	"time"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/interact"
	"github.com/grindlemire/floatui/internal/listnav"
	"github.com/grindlemire/floatui/internal/openstate"
)

// DefaultSubmenuDelay is the hover open delay of a submenu.
const DefaultSubmenuDelay = 100 * time.Millisecond

// Menu is a list of actions opened from a trigger. Items are highlighted
// with the arrow keys, typeahead or the pointer and chosen with click,
// Enter or Space. Choosing an item closes the whole menu tree.
type Menu struct {
	*list
	parent *Menu
}

// NewMenu creates a menu opened by clicking trigger or pressing Enter,
// Space or an arrow key on it.
func NewMenu(doc *dom.Document, trigger, floating *dom.Node, opts ...Option) (*Menu, error) {
	cfg := defaultConfig()
	cfg.kind = "menu"
	cfg.placement = BottomStart
	cfg.interactions = Interactions{
		Click:   &ClickOptions{},
		Dismiss: &DismissOptions{},
		Role:    RoleMenu,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return newMenu(doc, trigger, floating, cfg, nil)
}

// MustNewMenu is like NewMenu but panics on error.
func MustNewMenu(doc *dom.Document, trigger, floating *dom.Node, opts ...Option) *Menu {
	m, err := NewMenu(doc, trigger, floating, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// NewContextMenu creates a menu that opens at the pointer when area is
// pressed with the secondary button.
func NewContextMenu(doc *dom.Document, area, floating *dom.Node, opts ...Option) (*Menu, error) {
	cfg := defaultConfig()
	cfg.kind = "menu"
	cfg.placement = BottomStart
	cfg.interactions = Interactions{
		ClientPoint: &ClientPointOptions{},
		Dismiss:     &DismissOptions{},
		Role:        RoleMenu,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	m, err := newMenu(doc, area, floating, cfg, nil)
	if err != nil {
		return nil, err
	}
	// Registered after the client point hook so the anchor moves first.
	m.own(area.AddEventListener(dom.EventContextMenu, func(e dom.Event) {
		e.Base().PreventDefault()
		m.ctrl.RequestOpen(openstate.ReasonClick, e)
	}))
	return m, nil
}

func newMenu(doc *dom.Document, trigger, floating *dom.Node, cfg config, parent *Menu) (*Menu, error) {
	p, err := newPopup(doc, trigger, floating, cfg)
	if err != nil {
		return nil, err
	}
	m := &Menu{parent: parent}
	var extra []listnav.Option
	if parent != nil {
		extra = append(extra, listnav.WithParent(parent.nav))
	}
	l, err := newList(p, RoleMenu, m.activate, parent == nil, extra...)
	if err != nil {
		p.Dispose()
		return nil, err
	}
	m.list = l
	return m, nil
}

// AddItem adds node as an item labelled label. Disable it with
// node.SetDisabled before or after adding. The returned Cancel removes it.
func (m *Menu) AddItem(node *dom.Node, label string) Cancel {
	return m.addItem(node, listnav.ItemOptions{Label: label}, m.activate)
}

// NewSubmenu makes item, labelled label, open a nested menu shown in
// floating. The submenu opens on hover after DefaultSubmenuDelay, on click,
// and from the keyboard with the inline arrow key, Enter or Space.
func (m *Menu) NewSubmenu(item *dom.Node, label string, floating *dom.Node, opts ...Option) (*Menu, error) {
	cfg := defaultConfig()
	cfg.sched = m.cfg.sched
	cfg.kind = m.cfg.kind
	cfg.rtl = m.cfg.rtl
	cfg.layoutSync = m.cfg.layoutSync
	cfg.strategy = m.cfg.strategy
	cfg.placement = RightStart
	if m.cfg.rtl {
		cfg.placement = LeftStart
	}
	cfg.tree = m.Tree()
	cfg.parentID = m.ID()
	delay := DefaultSubmenuDelay
	cfg.openDelay = &delay
	cfg.interactions = Interactions{
		Hover:   &HoverOptions{SafePolygon: interact.NewSafePolygon(SafePolygonOptions{})},
		Dismiss: &DismissOptions{},
		Role:    RoleMenu,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	sub, err := newMenu(m.doc, item, floating, cfg, m)
	if err != nil {
		return nil, err
	}
	h := &listnav.Handoff{Controller: sub.ctrl, Nav: sub.nav}
	sub.own(m.addItem(item, listnav.ItemOptions{Label: label, Submenu: h}, m.activate))
	sub.own(sub.ctrl.Subscribe(func(ch openstate.Change) {
		if ch.To == openstate.Opening && ch.From == openstate.Closed && ch.Reason == openstate.ReasonHover {
			m.nav.Adopt(h)
		}
	}))
	return sub, nil
}

// Parent returns the menu this submenu belongs to, or nil.
func (m *Menu) Parent() *Menu {
	return m.parent
}

// activate chooses item i: a submenu item opens its submenu, any other
// enabled item reports the selection and closes the menu tree.
func (m *Menu) activate(i int, ev dom.Event) {
	if !m.nav.Enabled(i) {
		return
	}
	it := m.nav.Registry().At(i)
	if it.Submenu() != nil {
		m.nav.OpenSubmenu(i, ev)
		return
	}
	if fn := m.onItemSelect(); fn != nil {
		fn(i, it.Label())
	}
	root := m
	for root.parent != nil {
		root = root.parent
	}
	root.ctrl.RequestClose(openstate.ReasonClick, ev)
}

func (m *Menu) onItemSelect() func(int, string) {
	for cur := m; cur != nil; cur = cur.parent {
		if cur.cfg.onItemSelect != nil {
			return cur.cfg.onItemSelect
		}
	}
	return nil
}
