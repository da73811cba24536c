package floatui

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/internal/loop"
)

// env is a document driven by a manual clock.
type env struct {
	doc   *dom.Document
	clock *loop.Manual
}

func newEnv(w, h float64) *env {
	return &env{doc: dom.NewDocument(w, h), clock: loop.NewManual()}
}

// node appends a node with rect r to parent, or to the root when parent is
// nil.
func (e *env) node(parent *dom.Node, name string, r geom.Rect) *dom.Node {
	if parent == nil {
		parent = e.doc.Root()
	}
	n := parent.AppendChild(e.doc.CreateElement(name))
	n.SetRect(r)
	return n
}

func (e *env) popup(t *testing.T, anchor, floating *dom.Node, opts ...Option) *Popup {
	t.Helper()
	p, err := NewPopup(e.doc, anchor, floating, append([]Option{WithScheduler(e.clock)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(p.Dispose)
	return p
}

// settle runs the frame that finishes a zero-duration transition.
func (e *env) settle() {
	e.clock.Frame()
}

func TestNewPopup_Errors(t *testing.T) {
	e := newEnv(100, 100)
	n := e.node(nil, "n", geom.NewRect(0, 0, 10, 10))

	type tc struct {
		doc      *dom.Document
		anchor   *dom.Node
		floating *dom.Node
		opts     []Option
		sentinel error
	}

	tests := map[string]tc{
		"nil document":        {anchor: n, floating: n, opts: []Option{WithScheduler(e.clock)}, sentinel: ErrNilDocument},
		"nil anchor":          {doc: e.doc, floating: n, opts: []Option{WithScheduler(e.clock)}, sentinel: ErrNilAnchor},
		"nil floating":        {doc: e.doc, anchor: n, opts: []Option{WithScheduler(e.clock)}, sentinel: ErrNilFloating},
		"missing scheduler":   {doc: e.doc, anchor: n, floating: n, sentinel: ErrNoScheduler},
		"nil scheduler":       {doc: e.doc, anchor: n, floating: n, opts: []Option{WithScheduler(nil)}, sentinel: ErrNoScheduler},
		"invalid placement":   {doc: e.doc, anchor: n, floating: n, opts: []Option{WithScheduler(e.clock), WithPlacement(Placement{Side: 7})}, sentinel: ErrInvalidPlacement},
		"negative padding":    {doc: e.doc, anchor: n, floating: n, opts: []Option{WithScheduler(e.clock), WithCollisionPadding(Edges{Top: -1})}},
		"negative open delay": {doc: e.doc, anchor: n, floating: n, opts: []Option{WithScheduler(e.clock), WithOpenDelay(-time.Second)}},
		"negative duration":   {doc: e.doc, anchor: n, floating: n, opts: []Option{WithScheduler(e.clock), WithTransitionDurations(0, -1)}},
		"unknown strategy":    {doc: e.doc, anchor: n, floating: n, opts: []Option{WithScheduler(e.clock), WithStrategy(Strategy(9))}},
		"nil arrow":           {doc: e.doc, anchor: n, floating: n, opts: []Option{WithScheduler(e.clock), WithArrow(nil, 0)}},
		"nil boundary":        {doc: e.doc, anchor: n, floating: n, opts: []Option{WithScheduler(e.clock), WithCollisionBoundary(nil)}},
		"empty kind":          {doc: e.doc, anchor: n, floating: n, opts: []Option{WithScheduler(e.clock), WithKind("")}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := NewPopup(tt.doc, tt.anchor, tt.floating, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, p)
			if tt.sentinel != nil {
				assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			}
		})
	}
}

func TestMustNewPopup_Panics(t *testing.T) {
	e := newEnv(100, 100)
	n := e.node(nil, "n", geom.NewRect(0, 0, 10, 10))
	assert.Panics(t, func() { MustNewPopup(e.doc, n, n) })
}

func TestPopup_Position(t *testing.T) {
	type tc struct {
		viewport  geom.Size
		anchor    geom.Rect
		floating  geom.Size
		boundary  *geom.Rect
		opts      []Option
		placement Placement
		x, y      float64
	}

	tests := map[string]tc{
		"flips to top near the bottom edge": {
			viewport:  geom.Size{Width: 800, Height: 800},
			anchor:    geom.NewRect(0, 780, 100, 20),
			floating:  geom.Size{Width: 200, Height: 150},
			opts:      []Option{WithSideOffset(4)},
			placement: Top,
			x:         0,
			y:         780 - 150 - 4,
		},
		"bottom when there is room": {
			viewport:  geom.Size{Width: 800, Height: 800},
			anchor:    geom.NewRect(300, 100, 100, 20),
			floating:  geom.Size{Width: 200, Height: 150},
			opts:      []Option{WithSideOffset(4)},
			placement: Bottom,
			x:         250,
			y:         124,
		},
		"align offset skids along the anchor": {
			viewport:  geom.Size{Width: 800, Height: 800},
			anchor:    geom.NewRect(300, 100, 100, 20),
			floating:  geom.Size{Width: 200, Height: 150},
			opts:      []Option{WithPlacement(BottomStart), WithAlignOffset(10)},
			placement: BottomStart,
			x:         310,
			y:         120,
		},
		"collision padding keeps distance from the edge": {
			viewport:  geom.Size{Width: 800, Height: 800},
			anchor:    geom.NewRect(0, 300, 20, 20),
			floating:  geom.Size{Width: 200, Height: 100},
			opts:      []Option{WithCollisionPadding(EdgeAll(8))},
			placement: Bottom,
			x:         8,
			y:         320,
		},
		"collision boundary replaces the viewport": {
			viewport:  geom.Size{Width: 800, Height: 800},
			anchor:    geom.NewRect(210, 300, 20, 20),
			floating:  geom.Size{Width: 200, Height: 100},
			boundary:  &geom.Rect{X: 200, Y: 0, Width: 400, Height: 800},
			placement: Bottom,
			x:         200,
			y:         320,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEnv(tt.viewport.Width, tt.viewport.Height)
			anchor := e.node(nil, "anchor", tt.anchor)
			floating := e.node(nil, "floating", geom.NewRect(0, 0, tt.floating.Width, tt.floating.Height))
			opts := tt.opts
			if tt.boundary != nil {
				b := e.node(nil, "boundary", *tt.boundary)
				opts = append(opts[:len(opts):len(opts)], WithCollisionBoundary(b))
			}
			p := e.popup(t, anchor, floating, opts...)

			require.True(t, p.RequestOpen(ReasonProgrammatic))

			l, ok := p.Layout()
			require.True(t, ok, "position is computed when opening starts")
			assert.Equal(t, tt.placement, l.Placement)
			assert.Equal(t, tt.x, l.X)
			assert.Equal(t, tt.y, l.Y)
			assert.Equal(t, px(tt.x), floating.Style("left"))
			assert.Equal(t, px(tt.y), floating.Style("top"))
			assert.Equal(t, "absolute", floating.Style("position"))
			assert.Equal(t, tt.placement.Side.String(), attr(floating, AttrSide))
			assert.Equal(t, tt.placement.Align.String(), attr(floating, AttrAlign))
			assert.False(t, l.NoFit)
		})
	}
}

func attr(n *dom.Node, name string) string {
	v, _ := n.Attr(name)
	return v
}

func TestPopup_CustomProperties(t *testing.T) {
	e := newEnv(800, 800)
	anchor := e.node(nil, "anchor", geom.NewRect(0, 780, 100, 20))
	floating := e.node(nil, "floating", geom.NewRect(0, 0, 200, 150))
	p := e.popup(t, anchor, floating, WithSideOffset(4))

	p.RequestOpen(ReasonProgrammatic)

	l, _ := p.Layout()
	assert.Equal(t, float64(776), l.AvailableHeight)
	assert.Equal(t, "776px", floating.Style(VarAvailableHeight))
	assert.Equal(t, "100px", floating.Style(VarAnchorWidth))
	assert.Equal(t, "20px", floating.Style(VarAnchorHeight))
	assert.Equal(t, "50px 154px", floating.Style(VarTransformOrigin))
	assert.Equal(t, "50px 154px", l.TransformOrigin)
}

func TestPopup_StrategyCoordinates(t *testing.T) {
	type tc struct {
		strategy  Strategy
		inside    bool
		scrollY   float64
		left, top string
	}

	tests := map[string]tc{
		"absolute is relative to the offset parent": {strategy: Absolute, inside: true, left: "25px", top: "70px"},
		"fixed is relative to the viewport":         {strategy: Fixed, inside: true, left: "125px", top: "170px"},
		"absolute under the root ignores scroll":    {strategy: Absolute, scrollY: 50, left: "125px", top: "170px"},
		"fixed follows the scrolled anchor":         {strategy: Fixed, scrollY: 50, left: "125px", top: "120px"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEnv(800, 600)
			container := e.node(nil, "container", geom.NewRect(100, 100, 400, 400))
			container.SetPosition(dom.PositionAbsolute)
			anchor := e.node(nil, "anchor", geom.NewRect(150, 150, 50, 20))
			parent := e.doc.Root()
			if tt.inside {
				parent = container
			}
			floating := e.node(parent, "floating", geom.NewRect(0, 0, 100, 50))
			e.doc.ScrollTo(0, tt.scrollY)

			p := e.popup(t, anchor, floating, WithStrategy(tt.strategy))
			p.RequestOpen(ReasonProgrammatic)

			assert.Equal(t, tt.strategy.String(), floating.Style("position"))
			assert.Equal(t, tt.left, floating.Style("left"))
			assert.Equal(t, tt.top, floating.Style("top"))
		})
	}
}

func TestPopup_Arrow(t *testing.T) {
	type tc struct {
		anchor     geom.Rect
		padding    float64
		expected   ArrowLayout
		uncentered bool
	}

	tests := map[string]tc{
		"centered on the anchor": {
			anchor:   geom.NewRect(100, 100, 100, 20),
			expected: ArrowLayout{X: 95, Y: -5},
		},
		"clamped by padding near the edge": {
			anchor:   geom.NewRect(790, 100, 10, 20),
			padding:  10,
			expected: ArrowLayout{X: 180, Y: -5, Uncentered: true},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEnv(800, 600)
			anchor := e.node(nil, "anchor", tt.anchor)
			floating := e.node(nil, "floating", geom.NewRect(0, 0, 200, 100))
			arrow := e.node(floating, "arrow", geom.NewRect(0, 0, 10, 5))
			p := e.popup(t, anchor, floating, WithArrow(arrow, tt.padding))

			p.RequestOpen(ReasonProgrammatic)

			l, _ := p.Layout()
			require.NotNil(t, l.Arrow)
			if diff := cmp.Diff(tt.expected, *l.Arrow); diff != "" {
				t.Errorf("arrow mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, px(tt.expected.X), arrow.Style("left"))
			assert.Equal(t, px(tt.expected.Y), arrow.Style("top"))
			assert.Equal(t, tt.expected.Uncentered, arrow.HasAttr(AttrUncentered))
			assert.Equal(t, "bottom", attr(arrow, AttrSide))
		})
	}
}

func TestPopup_StateAttributes(t *testing.T) {
	e := newEnv(800, 600)
	anchor := e.node(nil, "anchor", geom.NewRect(100, 100, 100, 20))
	floating := e.node(nil, "floating", geom.NewRect(0, 0, 200, 100))
	p := e.popup(t, anchor, floating)

	type snapshot struct {
		Open, Closed, Starting, Ending, AnchorOpen bool
	}
	snap := func() snapshot {
		return snapshot{
			Open:       floating.HasAttr(AttrOpen),
			Closed:     floating.HasAttr(AttrClosed),
			Starting:   floating.HasAttr(AttrStartingStyle),
			Ending:     floating.HasAttr(AttrEndingStyle),
			AnchorOpen: anchor.HasAttr(AttrPopupOpen),
		}
	}

	assert.Equal(t, snapshot{Closed: true}, snap())
	_, computed := p.Layout()
	assert.False(t, computed, "nothing is computed while closed")

	p.RequestOpen(ReasonProgrammatic)
	assert.Equal(t, snapshot{Open: true, Starting: true, AnchorOpen: true}, snap())

	e.settle()
	assert.Equal(t, Open, p.State())
	assert.Equal(t, snapshot{Open: true, AnchorOpen: true}, snap())

	p.RequestClose(ReasonProgrammatic)
	assert.Equal(t, snapshot{Closed: true, Ending: true}, snap())

	e.settle()
	assert.Equal(t, Closed, p.State())
	assert.Equal(t, snapshot{Closed: true}, snap())
}

func TestPopup_AutoUpdateScopedToOpenStates(t *testing.T) {
	e := newEnv(800, 600)
	anchor := e.node(nil, "anchor", geom.NewRect(100, 100, 100, 20))
	floating := e.node(nil, "floating", geom.NewRect(0, 0, 200, 100))
	p := e.popup(t, anchor, floating)
	baseline := anchor.ObserverCount()

	p.RequestOpen(ReasonProgrammatic)
	e.settle()
	assert.Equal(t, "120px", floating.Style("top"))
	assert.Greater(t, anchor.ObserverCount(), baseline)

	anchor.SetRect(geom.NewRect(100, 200, 100, 20))
	assert.Equal(t, "120px", floating.Style("top"), "updates are batched to the next frame")
	e.settle()
	assert.Equal(t, "220px", floating.Style("top"))

	p.RequestClose(ReasonProgrammatic)
	e.settle()
	require.Equal(t, Closed, p.State())
	assert.Equal(t, baseline, anchor.ObserverCount(), "closing disposes observers")

	anchor.SetRect(geom.NewRect(100, 300, 100, 20))
	assert.Zero(t, e.clock.PendingFrames())
	assert.Equal(t, "220px", floating.Style("top"))
}

func TestPopup_AnchorHidden(t *testing.T) {
	e := newEnv(800, 600)
	scroller := e.node(nil, "scroller", geom.NewRect(0, 0, 800, 100))
	scroller.SetOverflow(dom.OverflowScroll)
	anchor := e.node(scroller, "anchor", geom.NewRect(10, 50, 50, 20))
	floating := e.node(nil, "floating", geom.NewRect(0, 0, 100, 40))
	p := e.popup(t, anchor, floating)

	p.RequestOpen(ReasonProgrammatic)
	e.settle()
	assert.False(t, floating.HasAttr(AttrAnchorHidden))

	scroller.ScrollTo(0, 200)
	e.settle()
	assert.True(t, floating.HasAttr(AttrAnchorHidden), "anchor scrolled out of its container")

	scroller.ScrollTo(0, 0)
	e.settle()
	assert.False(t, floating.HasAttr(AttrAnchorHidden))
}

func TestPopup_DetachedAnchorKeepsLastPosition(t *testing.T) {
	e := newEnv(800, 600)
	anchor := e.node(nil, "anchor", geom.NewRect(100, 100, 100, 20))
	floating := e.node(nil, "floating", geom.NewRect(0, 0, 200, 100))
	p := e.popup(t, anchor, floating)
	p.RequestOpen(ReasonProgrammatic)
	e.settle()

	anchor.Remove()
	p.Update()

	assert.True(t, floating.HasAttr(AttrAnchorHidden))
	assert.Equal(t, "120px", floating.Style("top"))
	assert.Equal(t, "50px", floating.Style("left"))
}

func TestPopup_Vetoes(t *testing.T) {
	type tc struct {
		opts     []Option
		close    func(e *env)
		expected State
	}

	escape := func(e *env) { e.doc.KeyDown(dom.KeyEscape, 0, dom.ModNone) }
	outside := func(e *env) { e.doc.PointerDown(700, 500, dom.MouseLeft, dom.PointerMouse) }

	tests := map[string]tc{
		"escape closes":                  {close: escape, expected: Closing},
		"outside press closes":           {close: outside, expected: Closing},
		"not dismissible ignores escape": {opts: []Option{WithDismissible(false)}, close: escape, expected: Open},
		"not dismissible ignores press":  {opts: []Option{WithDismissible(false)}, close: outside, expected: Open},
		"modal ignores outside press":    {opts: []Option{WithModal(true)}, close: outside, expected: Open},
		"modal still closes on escape":   {opts: []Option{WithModal(true)}, close: escape, expected: Closing},
		"user veto": {
			opts: []Option{WithOnOpenChange(func(open bool, d *ChangeDetails) {
				if !open && d.Reason == ReasonEscapeKey {
					d.Cancel()
				}
			})},
			close:    escape,
			expected: Open,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEnv(800, 600)
			anchor := e.node(nil, "anchor", geom.NewRect(100, 100, 100, 20))
			floating := e.node(nil, "floating", geom.NewRect(100, 120, 200, 100))
			p := e.popup(t, anchor, floating, tt.opts...)
			p.RequestOpen(ReasonProgrammatic)
			e.settle()

			tt.close(e)
			assert.Equal(t, tt.expected, p.State())
		})
	}
}

func TestPopup_InstantAttribute(t *testing.T) {
	e := newEnv(800, 600)
	anchor := e.node(nil, "anchor", geom.NewRect(100, 100, 100, 20))
	floating := e.node(nil, "floating", geom.NewRect(100, 120, 200, 100))
	p := e.popup(t, anchor, floating)
	p.RequestOpen(ReasonProgrammatic)
	e.settle()
	assert.False(t, floating.HasAttr(AttrInstant))

	e.doc.KeyDown(dom.KeyEscape, 0, dom.ModNone)
	assert.Equal(t, "dismiss", attr(floating, AttrInstant))

	e.settle()
	assert.False(t, floating.HasAttr(AttrInstant), "cleared once closed")
}

func TestPopup_SetReference(t *testing.T) {
	e := newEnv(800, 600)
	anchor := e.node(nil, "anchor", geom.NewRect(100, 100, 100, 20))
	floating := e.node(nil, "floating", geom.NewRect(0, 0, 200, 100))
	p := e.popup(t, anchor, floating, WithPlacement(BottomStart))
	p.RequestOpen(ReasonProgrammatic)
	e.settle()
	assert.Equal(t, "100px", floating.Style("left"))

	p.SetReference(PointAnchor{X: 300, Y: 200})
	assert.Equal(t, "300px", floating.Style("left"), "re-anchoring an open popup repositions it")
	assert.Equal(t, "200px", floating.Style("top"))
	assert.Equal(t, "0px", floating.Style(VarAnchorWidth))

	moving := geom.NewRect(400, 300, 10, 10)
	p.SetReference(&VirtualElement{Rect: func() geom.Rect { return moving }})
	assert.Equal(t, "400px", floating.Style("left"))
	moving = geom.NewRect(420, 300, 10, 10)
	e.settle()
	e.settle()
	assert.Equal(t, "420px", floating.Style("left"), "free virtual elements are polled every frame")
}

func TestPopup_RestoresFocusToAnchor(t *testing.T) {
	e := newEnv(800, 600)
	anchor := e.node(nil, "anchor", geom.NewRect(100, 100, 100, 20)).SetFocusable(true)
	floating := e.node(nil, "floating", geom.NewRect(100, 120, 200, 100))
	input := e.node(floating, "input", geom.NewRect(110, 130, 100, 20)).SetFocusable(true)
	p := e.popup(t, anchor, floating)
	p.RequestOpen(ReasonProgrammatic)
	e.settle()
	e.doc.Focus(input, true)

	e.doc.KeyDown(dom.KeyEscape, 0, dom.ModNone)

	assert.Same(t, anchor, e.doc.ActiveElement())
}

func TestPopup_LayoutSync(t *testing.T) {
	e := newEnv(800, 600)
	anchor := e.node(nil, "anchor", geom.NewRect(100, 100, 100, 20))
	floating := e.node(nil, "floating", geom.NewRect(0, 0, 200, 100))
	e.doc.ScrollTo(0, 40)
	p := e.popup(t, anchor, floating, WithLayoutSync())

	p.RequestOpen(ReasonProgrammatic)

	l, _ := p.Layout()
	assert.Equal(t, geom.NewRect(50, 80, 200, 100), l.Rect)
	assert.Equal(t, geom.NewRect(50, 120, 200, 100), floating.Layout(), "layout rects are in document space")
	assert.Equal(t, l.Rect, floating.BoundingRect())
}

func TestPopup_Dispose(t *testing.T) {
	e := newEnv(800, 600)
	anchor := e.node(nil, "anchor", geom.NewRect(100, 100, 100, 20))
	floating := e.node(nil, "floating", geom.NewRect(100, 120, 200, 100))
	p, err := NewPopup(e.doc, anchor, floating,
		WithScheduler(e.clock),
		WithInteractions(Interactions{
			Hover:   &HoverOptions{},
			Focus:   &FocusOptions{},
			Click:   &ClickOptions{},
			Dismiss: &DismissOptions{},
			Role:    RoleDialog,
		}),
	)
	require.NoError(t, err)
	p.RequestOpen(ReasonProgrammatic)
	e.settle()
	require.NotZero(t, anchor.ListenerCount())

	p.Dispose()
	p.Dispose()

	assert.Zero(t, anchor.ListenerCount())
	assert.Zero(t, floating.ListenerCount())
	assert.Zero(t, e.doc.ListenerCount())
	assert.False(t, anchor.HasAttr("aria-haspopup"))
	assert.False(t, floating.HasAttr("role"))
	assert.Zero(t, e.clock.PendingFrames())
}
