package floatui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/geom"
)

type selectFixture struct {
	*env
	trigger *dom.Node
	sel     *Select
	options []*dom.Node
	changes []string
}

var fruits = []struct{ value, label string }{
	{"a", "Apple"},
	{"b", "Banana"},
	{"c", "Cherry"},
}

// newSelectFixture puts the trigger at (100, 100) and the option list's
// layout at the origin, one option per 20 rows.
func newSelectFixture(t *testing.T, opts ...Option) *selectFixture {
	t.Helper()
	f := &selectFixture{env: newEnv(400, 300)}
	f.trigger = f.node(nil, "trigger", geom.NewRect(100, 100, 120, 20)).SetFocusable(true)
	floating := f.node(nil, "listbox", geom.NewRect(0, 0, 120, 60))

	opts = append([]Option{
		WithScheduler(f.clock),
		WithOnValueChange(func(v string) { f.changes = append(f.changes, v) }),
	}, opts...)
	s, err := NewSelect(f.doc, f.trigger, floating, opts...)
	require.NoError(t, err)
	t.Cleanup(s.Dispose)
	f.sel = s

	for i, fr := range fruits {
		n := f.node(floating, fr.label, geom.NewRect(0, 20*float64(i), 120, 20))
		s.AddOption(n, fr.value, fr.label)
		f.options = append(f.options, n)
	}
	return f
}

func TestSelect_InitialValue(t *testing.T) {
	f := newSelectFixture(t, WithValue("b"))

	assert.Equal(t, "b", f.sel.Value())
	assert.Equal(t, 1, f.sel.SelectedIndex())
	assert.Equal(t, "Banana", f.sel.SelectedLabel())
	assert.True(t, f.options[1].HasAttr("data-selected"))
	assert.Equal(t, "true", attr(f.options[1], "aria-selected"))
	assert.Equal(t, "combobox", attr(f.trigger, "role"))
	assert.Equal(t, "listbox", attr(f.sel.Floating(), "role"))
	assert.Empty(t, f.changes)
}

func TestSelect_NoValue(t *testing.T) {
	f := newSelectFixture(t)

	assert.Equal(t, "", f.sel.Value())
	assert.Equal(t, -1, f.sel.SelectedIndex())
	assert.Equal(t, "", f.sel.SelectedLabel())
}

func TestSelect_OpenHighlightsSelected(t *testing.T) {
	f := newSelectFixture(t, WithValue("c"))

	f.doc.Click(150, 110, dom.PointerMouse)

	require.True(t, f.sel.IsOpen())
	assert.Equal(t, 2, f.sel.Active())
	assert.True(t, f.options[2].HasAttr("data-highlighted"))
}

func TestSelect_ChooseOption(t *testing.T) {
	f := newSelectFixture(t, WithValue("a"))
	f.doc.Click(150, 110, dom.PointerMouse)
	require.True(t, f.sel.IsOpen())

	f.doc.Click(50, 50, dom.PointerMouse)

	assert.Equal(t, "c", f.sel.Value())
	assert.Equal(t, []string{"c"}, f.changes)
	assert.False(t, f.sel.IsOpen())
	assert.False(t, f.options[0].HasAttr("data-selected"))
	assert.True(t, f.options[2].HasAttr("data-selected"))
}

func TestSelect_KeyboardChoose(t *testing.T) {
	f := newSelectFixture(t, WithValue("a"))
	f.doc.Focus(f.trigger, true)
	f.doc.KeyDown(dom.KeyDown, 0, dom.ModNone)
	require.True(t, f.sel.IsOpen())
	require.Equal(t, 0, f.sel.Active())

	f.doc.KeyDown(dom.KeyDown, 0, dom.ModNone)
	f.doc.KeyDown(dom.KeyEnter, 0, dom.ModNone)

	assert.Equal(t, "b", f.sel.Value())
	assert.False(t, f.sel.IsOpen())
	assert.Same(t, f.trigger, f.doc.ActiveElement())
}

func TestSelect_ItemAlignment(t *testing.T) {
	type tc struct {
		opts []Option
		rect geom.Rect
		side string
	}

	tests := map[string]tc{
		"selected option overlays the trigger": {
			opts: []Option{WithValue("b")},
			rect: geom.NewRect(100, 80, 120, 60),
			side: "none",
		},
		"first option when the value is the first": {
			opts: []Option{WithValue("a")},
			rect: geom.NewRect(100, 100, 120, 60),
			side: "none",
		},
		"no selection falls back to the side": {
			rect: geom.NewRect(100, 120, 120, 60),
			side: "bottom",
		},
		"alignment disabled": {
			opts: []Option{WithValue("b"), WithAlignItemToTrigger(false)},
			rect: geom.NewRect(100, 120, 120, 60),
			side: "bottom",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newSelectFixture(t, tt.opts...)

			f.sel.RequestOpen(ReasonProgrammatic)

			l, ok := f.sel.Layout()
			require.True(t, ok)
			assert.Equal(t, tt.rect, l.Rect)
			assert.Equal(t, tt.side, attr(f.sel.Floating(), AttrSide))
		})
	}
}

func TestSelect_TypeaheadOnClosedTrigger(t *testing.T) {
	f := newSelectFixture(t, WithValue("a"))
	f.doc.Focus(f.trigger, true)

	ev := f.doc.KeyDown(dom.KeyRune, 'c', dom.ModNone)

	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, "c", f.sel.Value())
	assert.False(t, f.sel.IsOpen(), "typing does not open the list")

	ev = f.doc.KeyDown(dom.KeyRune, 'z', dom.ModNone)
	assert.False(t, ev.DefaultPrevented())
	assert.Equal(t, "c", f.sel.Value())
}

func TestSelect_SetValue(t *testing.T) {
	f := newSelectFixture(t)

	f.sel.SetValue("b")
	f.sel.SetValue("b")

	assert.Equal(t, []string{"b"}, f.changes, "unchanged values are not reported")
	assert.True(t, f.options[1].HasAttr("data-selected"))
}

func TestSelect_RemoveOption(t *testing.T) {
	f := newSelectFixture(t, WithValue("c"))
	extra := f.node(f.sel.Floating(), "Date", geom.NewRect(0, 60, 120, 20))
	remove := f.sel.AddOption(extra, "d", "Date")
	require.Equal(t, 4, f.sel.Len())

	remove()

	assert.Equal(t, 3, f.sel.Len())
	assert.Equal(t, 2, f.sel.SelectedIndex())
}
