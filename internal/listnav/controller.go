package listnav

import (
	"errors"
	"fmt"
	"time"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/internal/openstate"
	"github.com/grindlemire/floatui/pkg/debug"
)

// ErrNilScheduler is returned by New without a scheduler.
var ErrNilScheduler = errors.New("listnav: scheduler is required")

// Orientation selects which arrow keys move the active item.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
	Both
)

// Direction is a Move target.
type Direction int

const (
	Next Direction = iota
	Previous
	First
	Last
)

// FocusOnOpen decides whether opening highlights an item.
type FocusOnOpen int

const (
	// FocusAuto highlights the first item when the popup was opened from the
	// keyboard (the last item for ArrowUp), and nothing for pointer opens.
	FocusAuto FocusOnOpen = iota
	FocusAlways
	FocusNever
)

// Option configures a Controller.
type Option func(*Controller) error

// WithLoop wraps Next/Previous around the ends instead of clamping.
func WithLoop(loop bool) Option {
	return func(c *Controller) error {
		c.loop = loop
		return nil
	}
}

// WithOrientation sets the arrow key axis.
func WithOrientation(o Orientation) Option {
	return func(c *Controller) error {
		if o < Vertical || o > Both {
			return fmt.Errorf("unknown orientation %d", o)
		}
		c.orientation = o
		return nil
	}
}

// WithRTL swaps the meaning of ArrowLeft and ArrowRight.
func WithRTL(rtl bool) Option {
	return func(c *Controller) error {
		c.rtl = rtl
		return nil
	}
}

// WithFocusItemOnOpen sets what is highlighted when the popup opens.
func WithFocusItemOnOpen(f FocusOnOpen) Option {
	return func(c *Controller) error {
		c.focusOnOpen = f
		return nil
	}
}

// WithDisabledIndices marks positions as disabled in addition to the items'
// own flags.
func WithDisabledIndices(indices ...int) Option {
	return func(c *Controller) error {
		for _, i := range indices {
			if i < 0 {
				return fmt.Errorf("disabled index must be >= 0, got %d", i)
			}
			c.disabled[i] = true
		}
		return nil
	}
}

// WithOnNavigate registers fn for every active index change. -1 means no
// item is active.
func WithOnNavigate(fn func(index int)) Option {
	return func(c *Controller) error {
		c.onNavigate = fn
		return nil
	}
}

// WithOnSelect registers fn for Enter or Space on an active item that has no
// submenu.
func WithOnSelect(fn func(index int, ev dom.Event)) Option {
	return func(c *Controller) error {
		c.onSelect = fn
		return nil
	}
}

// WithTypeaheadTimeout overrides DefaultTypeaheadTimeout.
func WithTypeaheadTimeout(d time.Duration) Option {
	return func(c *Controller) error {
		if d <= 0 {
			return fmt.Errorf("typeahead timeout must be > 0, got %s", d)
		}
		c.typeaheadTimeout = d
		return nil
	}
}

// WithoutTypeahead disables character matching.
func WithoutTypeahead() Option {
	return func(c *Controller) error {
		c.noTypeahead = true
		return nil
	}
}

// WithFocusItems moves document focus to the active item's node. Without
// it the controller only marks the active node with data-highlighted, for
// lists whose focus stays on an input.
func WithFocusItems(focus bool) Option {
	return func(c *Controller) error {
		c.focusItems = focus
		return nil
	}
}

// WithParent nests the controller under the list that owns its submenu.
func WithParent(parent *Controller) Option {
	return func(c *Controller) error {
		c.parent = parent
		return nil
	}
}

// Controller is the active-index state machine of one list.
type Controller struct {
	reg   *Registry
	sched loop.Scheduler

	active      Token
	highlighted *dom.Node

	loop             bool
	orientation      Orientation
	rtl              bool
	focusOnOpen      FocusOnOpen
	focusItems       bool
	disabled         map[int]bool
	onNavigate       func(int)
	onSelect         func(int, dom.Event)
	noTypeahead      bool
	typeaheadTimeout time.Duration
	typeahead        *Typeahead

	parent   *Controller
	child    *Controller
	handoff  *Handoff
	childSub loop.Cancel
}

// New creates a controller over reg.
func New(reg *Registry, sched loop.Scheduler, opts ...Option) (*Controller, error) {
	if sched == nil {
		return nil, ErrNilScheduler
	}
	if reg == nil {
		reg = NewRegistry()
	}
	c := &Controller{reg: reg, sched: sched, disabled: make(map[int]bool)}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.typeahead = NewTypeahead(sched, c.typeaheadTimeout)
	reg.changed = c.itemsChanged
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(reg *Registry, sched loop.Scheduler, opts ...Option) *Controller {
	c, err := New(reg, sched, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Registry returns the item arena.
func (c *Controller) Registry() *Registry { return c.reg }

// Orientation returns the arrow key axis.
func (c *Controller) Orientation() Orientation { return c.orientation }

// Parent returns the controller this one is nested under, or nil.
func (c *Controller) Parent() *Controller { return c.parent }

// Child returns the submenu controller currently holding control, or nil.
func (c *Controller) Child() *Controller { return c.child }

// Typeahead returns the typeahead matcher.
func (c *Controller) Typeahead() *Typeahead { return c.typeahead }

// RegisterItem adds an item to the list and routes pointer hover on its
// node to PointerEnter.
func (c *Controller) RegisterItem(node *dom.Node, opts ItemOptions) loop.Cancel {
	tok, unregister := c.reg.Register(node, opts)
	var g loop.Group
	if node != nil {
		g.Add(node.AddEventListener(dom.EventPointerEnter, func(dom.Event) {
			c.PointerEnter(c.reg.IndexOf(tok))
		}))
	}
	g.Add(unregister)
	return loop.Once(g.Dispose)
}

// Active returns the active index, or -1.
func (c *Controller) Active() int {
	if c.active == 0 {
		return -1
	}
	return c.reg.IndexOf(c.active)
}

// ActiveItem returns the active item, or nil.
func (c *Controller) ActiveItem() *Item {
	return c.reg.At(c.Active())
}

// Enabled reports whether index i can become active.
func (c *Controller) Enabled(i int) bool {
	it := c.reg.At(i)
	return it != nil && !it.Disabled() && !c.disabled[i]
}

// Highlight makes index i active. Out of range or disabled indices clear
// the active item.
func (c *Controller) Highlight(i int) {
	if !c.Enabled(i) {
		i = -1
	}
	c.setActive(i, true)
}

// Move advances the active index in dir, skipping disabled items. Next and
// Previous wrap with WithLoop and stay put at the ends otherwise. It
// reports whether the active index changed.
func (c *Controller) Move(dir Direction) bool {
	before := c.Active()
	target := c.find(dir, before)
	if target == -1 {
		return false
	}
	c.setActive(target, true)
	return target != before
}

func (c *Controller) find(dir Direction, from int) int {
	n := c.reg.Len()
	switch dir {
	case First:
		return c.scan(0, n, 1)
	case Last:
		return c.scan(n-1, n, -1)
	case Next:
		if from < 0 {
			return c.scan(0, n, 1)
		}
		if i := c.scan(from+1, n, 1); i != -1 {
			return i
		}
		if c.loop {
			return c.scan(0, n, 1)
		}
		return from
	case Previous:
		if from < 0 {
			return c.scan(n-1, n, -1)
		}
		if i := c.scan(from-1, n, -1); i != -1 {
			return i
		}
		if c.loop {
			return c.scan(n-1, n, -1)
		}
		return from
	}
	return -1
}

// scan returns the first enabled index from start stepping by step, or -1.
func (c *Controller) scan(start, n, step int) int {
	for i := start; i >= 0 && i < n; i += step {
		if c.Enabled(i) {
			return i
		}
	}
	return -1
}

// PointerEnter handles the pointer moving over item i. Hovering a disabled
// item clears the active index.
func (c *Controller) PointerEnter(i int) {
	if c.child != nil && i != c.Active() {
		c.closeChild(nil)
	}
	if !c.Enabled(i) {
		c.setActive(-1, false)
		return
	}
	c.setActive(i, false)
}

// PointerLeave clears the active index unless a submenu holds control.
func (c *Controller) PointerLeave() {
	if c.child != nil {
		return
	}
	c.setActive(-1, false)
}

// TypeaheadInput feeds a character to typeahead and activates the match.
// It reports whether an item matched.
func (c *Controller) TypeaheadInput(r rune) bool {
	if c.noTypeahead {
		return false
	}
	i := c.typeahead.Input(r, c.Active(), c.reg.Items(), c.Enabled)
	if i == -1 {
		return false
	}
	c.setActive(i, true)
	return true
}

// OnOpen applies the focus-on-open policy for an open triggered by ev.
func (c *Controller) OnOpen(ev dom.Event) {
	switch c.focusOnOpen {
	case FocusNever:
		return
	case FocusAuto:
		key, ok := ev.(*dom.KeyEvent)
		if !ok {
			return
		}
		if key.Key == dom.KeyUp {
			c.Move(Last)
			return
		}
	}
	c.Move(First)
}

// Reset clears the active index, the typeahead query and any handed-off
// submenu.
func (c *Controller) Reset() {
	c.closeChild(nil)
	c.typeahead.Reset()
	c.setActive(-1, false)
}

// Bind applies OnOpen when ctrl starts opening and Reset once it closes.
func (c *Controller) Bind(ctrl *openstate.Controller) loop.Cancel {
	return ctrl.Subscribe(func(ch openstate.Change) {
		switch ch.To {
		case openstate.Opening:
			if ch.From == openstate.Closed {
				c.OnOpen(ch.Event)
			}
		case openstate.Closed:
			c.Reset()
		}
	})
}

// Attach routes keydown events on n to HandleKey.
func (c *Controller) Attach(n *dom.Node) loop.Cancel {
	return n.AddEventListener(dom.EventKeyDown, func(e dom.Event) {
		ev := e.(*dom.KeyEvent)
		if ev.DefaultPrevented() {
			return
		}
		c.HandleKey(ev)
	})
}

// HandleKey routes ev to the submenu holding control, if any, and otherwise
// dispatches it through KeyMap. It reports whether the key was handled.
func (c *Controller) HandleKey(ev *dom.KeyEvent) bool {
	if c.child != nil {
		if c.child.HandleKey(ev) {
			return true
		}
	}
	return c.KeyMap().Dispatch(ev)
}

// KeyMap returns the bindings for the current state.
func (c *Controller) KeyMap() KeyMap {
	prev, next := dom.KeyUp, dom.KeyDown
	if c.orientation == Horizontal {
		prev, next = c.inline()
	}

	km := KeyMap{
		OnKey(next, func(*dom.KeyEvent) { c.Move(Next) }),
		OnKey(prev, func(*dom.KeyEvent) { c.Move(Previous) }),
		OnKey(dom.KeyHome, func(*dom.KeyEvent) { c.Move(First) }),
		OnKey(dom.KeyEnd, func(*dom.KeyEvent) { c.Move(Last) }),
	}
	if c.orientation == Both {
		l, r := c.inline()
		km = append(km,
			OnKey(r, func(*dom.KeyEvent) { c.Move(Next) }),
			OnKey(l, func(*dom.KeyEvent) { c.Move(Previous) }),
		)
	}

	if item := c.ActiveItem(); item != nil && item.opts.Submenu != nil {
		open := func(ev *dom.KeyEvent) { c.openChild(item.opts.Submenu, ev) }
		km = append(km, OnKey(c.submenuOpenKey(), open), OnKey(dom.KeyEnter, open))
		if !c.typeahead.Active() {
			km = append(km, OnKey(dom.KeySpace, open))
		}
	}

	if c.parent != nil {
		back := func(ev *dom.KeyEvent) { c.parent.closeChild(ev) }
		km = append(km, OnKey(c.submenuCloseKey(), back), OnKey(dom.KeyEscape, back))
	}

	if c.typeahead.Active() && !c.noTypeahead {
		km = append(km, OnKey(dom.KeySpace, func(*dom.KeyEvent) { c.TypeaheadInput(' ') }))
	}
	if c.onSelect != nil && c.Active() >= 0 {
		sel := func(ev *dom.KeyEvent) { c.onSelect(c.Active(), ev) }
		km = append(km, OnKey(dom.KeyEnter, sel), OnKey(dom.KeySpace, sel))
	}
	if !c.noTypeahead {
		km = append(km, KeyBinding{
			Pattern: KeyPattern{AnyRune: true},
			Handler: func(ev *dom.KeyEvent) { c.TypeaheadInput(ev.Rune) },
			Stop:    true,
		})
	}
	return km
}

// inline returns the previous and next keys along the inline axis.
func (c *Controller) inline() (dom.Key, dom.Key) {
	if c.rtl {
		return dom.KeyRight, dom.KeyLeft
	}
	return dom.KeyLeft, dom.KeyRight
}

func (c *Controller) submenuOpenKey() dom.Key {
	if c.orientation == Horizontal {
		return dom.KeyDown
	}
	_, next := c.inline()
	return next
}

func (c *Controller) submenuCloseKey() dom.Key {
	prev, _ := c.inline()
	return prev
}

func (c *Controller) setActive(i int, keyboard bool) {
	var tok Token
	item := c.reg.At(i)
	if item != nil {
		tok = item.token
	}
	if tok == c.active {
		return
	}
	c.active = tok

	if c.highlighted != nil {
		c.highlighted.RemoveAttr("data-highlighted")
		c.highlighted = nil
	}
	if item != nil && item.node != nil {
		item.node.SetAttr("data-highlighted", "")
		c.highlighted = item.node
		if c.focusItems && item.node.Document() != nil {
			item.node.SetFocusable(true)
			item.node.Document().Focus(item.node, keyboard)
		}
	}

	debug.Log("listnav: active -> %d", i)
	if c.onNavigate != nil {
		c.onNavigate(i)
	}
}

// itemsChanged drops the active token when its item was unregistered or
// became disabled.
func (c *Controller) itemsChanged() {
	if c.active == 0 {
		return
	}
	if it, ok := c.reg.items[c.active]; ok && !it.Disabled() {
		return
	}
	c.active = 0
	if c.highlighted != nil {
		c.highlighted.RemoveAttr("data-highlighted")
		c.highlighted = nil
	}
	debug.Log("listnav: active item gone")
	if c.onNavigate != nil {
		c.onNavigate(-1)
	}
}
