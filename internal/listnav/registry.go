package listnav

import (
	"cmp"
	"slices"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/loop"
)

// Token identifies a registered item. Tokens increase monotonically and are
// never reused.
type Token uint64

// ItemOptions describes an item at registration.
type ItemOptions struct {
	Disabled bool
	// Label is matched by typeahead. Empty labels never match.
	Label string
	// Index is an explicit position hint for virtualized lists whose nodes
	// are not all mounted. Hints are used only when every item has one.
	Index *int
	// Submenu is opened and handed control when the item is activated.
	Submenu *Handoff
}

// Item is one registered entry.
type Item struct {
	token Token
	node  *dom.Node
	opts  ItemOptions
}

// Token returns the registration token.
func (it *Item) Token() Token { return it.token }

// Node returns the item's node. It may be nil for virtual items.
func (it *Item) Node() *dom.Node { return it.node }

// Label returns the typeahead label.
func (it *Item) Label() string { return it.opts.Label }

// Disabled reports whether the item was registered disabled or its node is
// disabled.
func (it *Item) Disabled() bool {
	return it.opts.Disabled || (it.node != nil && it.node.Disabled())
}

// Submenu returns the nested submenu handle, or nil.
func (it *Item) Submenu() *Handoff { return it.opts.Submenu }

// Registry is the item arena of one list.
type Registry struct {
	next    Token
	items   map[Token]*Item
	ordered []*Item
	dirty   bool
	changed func()
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[Token]*Item)}
}

// Register adds an item and returns a Cancel that removes it.
func (r *Registry) Register(node *dom.Node, opts ItemOptions) (Token, loop.Cancel) {
	r.next++
	tok := r.next
	r.items[tok] = &Item{token: tok, node: node, opts: opts}
	var stop loop.Cancel = loop.Noop
	if node != nil {
		stop = node.ObserveDisabled(r.notify)
	}
	r.invalidate()
	return tok, loop.Once(func() {
		stop()
		delete(r.items, tok)
		r.invalidate()
	})
}

// SetDisabled updates an item's disabled flag.
func (r *Registry) SetDisabled(tok Token, disabled bool) {
	if it, ok := r.items[tok]; ok && it.opts.Disabled != disabled {
		it.opts.Disabled = disabled
		r.notify()
	}
}

// SetLabel updates an item's typeahead label.
func (r *Registry) SetLabel(tok Token, label string) {
	if it, ok := r.items[tok]; ok {
		it.opts.Label = label
	}
}

// Len returns the number of items.
func (r *Registry) Len() int {
	return len(r.items)
}

// Items returns the items in navigation order. The slice is shared; do not
// modify it.
func (r *Registry) Items() []*Item {
	if r.dirty {
		r.sort()
	}
	return r.ordered
}

// At returns the item at index i, or nil.
func (r *Registry) At(i int) *Item {
	items := r.Items()
	if i < 0 || i >= len(items) {
		return nil
	}
	return items[i]
}

// IndexOf returns the navigation index of tok, or -1.
func (r *Registry) IndexOf(tok Token) int {
	return slices.IndexFunc(r.Items(), func(it *Item) bool { return it.token == tok })
}

// Invalidate forces a re-sort, for hosts that move item nodes in the tree.
func (r *Registry) Invalidate() {
	r.invalidate()
}

func (r *Registry) invalidate() {
	r.dirty = true
	r.notify()
}

func (r *Registry) notify() {
	if r.changed != nil {
		r.changed()
	}
}

func (r *Registry) sort() {
	r.ordered = make([]*Item, 0, len(r.items))
	hinted := true
	for _, it := range r.items {
		r.ordered = append(r.ordered, it)
		if it.opts.Index == nil {
			hinted = false
		}
	}
	slices.SortFunc(r.ordered, func(a, b *Item) int {
		if hinted {
			if c := cmp.Compare(*a.opts.Index, *b.opts.Index); c != 0 {
				return c
			}
		} else if c := dom.ComparePosition(a.node, b.node); c != 0 {
			return c
		}
		return cmp.Compare(a.token, b.token)
	})
	r.dirty = false
}
