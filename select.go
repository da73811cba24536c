package floatui

import (
	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/interact"
	"github.com/grindlemire/floatui/internal/listnav"
	"github.com/grindlemire/floatui/internal/openstate"
)

// Select picks one value from a list of options. Opening highlights the
// selected option; choosing an option sets the value and closes the list.
// While closed, typing on the trigger selects the matching option.
type Select struct {
	*list
	values   map[*dom.Node]string
	value    string
	onChange func(string)
}

// NewSelect creates a select whose option list is shown in floating. By
// default the list overlays its selected option on the trigger; see
// WithAlignItemToTrigger.
func NewSelect(doc *dom.Document, trigger, floating *dom.Node, opts ...Option) (*Select, error) {
	cfg := defaultConfig()
	cfg.kind = "select"
	cfg.placement = BottomStart
	cfg.alignItem = true
	cfg.interactions = Interactions{
		Click:   &ClickOptions{},
		Dismiss: &DismissOptions{},
		Role:    RoleSelect,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	s := &Select{values: make(map[*dom.Node]string), value: cfg.value, onChange: cfg.onValueChange}
	if cfg.alignItem {
		cfg.itemAnchor = s.selectedNode
	}
	p, err := newPopup(doc, trigger, floating, cfg)
	if err != nil {
		return nil, err
	}
	l, err := newList(p, RoleSelect, s.activate, true)
	if err != nil {
		p.Dispose()
		return nil, err
	}
	s.list = l

	p.own(p.ctrl.Subscribe(func(ch openstate.Change) {
		if ch.To == openstate.Opening && ch.From == openstate.Closed {
			if i := s.SelectedIndex(); i >= 0 {
				s.nav.Highlight(i)
			}
		}
	}))
	p.own(trigger.AddEventListener(dom.EventKeyDown, s.onTriggerKey))
	return s, nil
}

// MustNewSelect is like NewSelect but panics on error.
func MustNewSelect(doc *dom.Document, trigger, floating *dom.Node, opts ...Option) *Select {
	s, err := NewSelect(doc, trigger, floating, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// AddOption adds node as the option for value, labelled label.
func (s *Select) AddOption(node *dom.Node, value, label string) Cancel {
	s.values[node] = value
	remove := s.addItem(node, listnav.ItemOptions{Label: label}, s.activate)
	s.refresh()
	return s.own(func() {
		remove()
		delete(s.values, node)
	})
}

// Value returns the selected value, or "" when nothing is selected.
func (s *Select) Value() string {
	return s.value
}

// SetValue selects v without opening or closing the list.
func (s *Select) SetValue(v string) {
	if v == s.value {
		return
	}
	s.value = v
	s.refresh()
	if s.onChange != nil {
		s.onChange(v)
	}
}

// SelectedIndex returns the index of the selected option, or -1.
func (s *Select) SelectedIndex() int {
	for i, it := range s.nav.Registry().Items() {
		if v, ok := s.values[it.Node()]; ok && v == s.value {
			return i
		}
	}
	return -1
}

// SelectedLabel returns the label of the selected option, or "".
func (s *Select) SelectedLabel() string {
	return s.Label(s.SelectedIndex())
}

func (s *Select) selectedNode() *dom.Node {
	if it := s.nav.Registry().At(s.SelectedIndex()); it != nil {
		return it.Node()
	}
	return nil
}

func (s *Select) activate(i int, ev dom.Event) {
	if !s.nav.Enabled(i) {
		return
	}
	s.SetValue(s.values[s.nav.Registry().At(i).Node()])
	s.ctrl.RequestClose(openstate.ReasonClick, ev)
}

// onTriggerKey runs typeahead against the options while the list is
// closed.
func (s *Select) onTriggerKey(e dom.Event) {
	ev := e.(*dom.KeyEvent)
	if s.ctrl.Open() || ev.DefaultPrevented() || !ev.IsRune() || ev.Rune == ' ' {
		return
	}
	i := s.nav.Typeahead().Input(ev.Rune, s.SelectedIndex(), s.nav.Registry().Items(), s.nav.Enabled)
	if i < 0 {
		return
	}
	ev.PreventDefault()
	s.SetValue(s.values[s.nav.Registry().At(i).Node()])
}

// refresh rewrites the selection state of every option.
func (s *Select) refresh() {
	sel, active := s.SelectedIndex(), s.nav.Active()
	for i, it := range s.nav.Registry().Items() {
		n := it.Node()
		interact.ItemPropsFor(RoleSelect, i == sel, i == active, it.Disabled()).Apply(n)
		setFlag(n, "data-selected", i == sel)
	}
}
