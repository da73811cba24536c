package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindlemire/floatui/internal/geom"
)

// buildTree creates root > scroller(0,100 200x200, scroll) > item(0,150 100x20)
// plus a sibling overlay appended last.
func buildTree(t *testing.T) (*Document, *Node, *Node, *Node) {
	t.Helper()
	doc := NewDocument(800, 600)
	scroller := doc.Root().AppendChild(doc.CreateElement("scroller"))
	scroller.SetOverflow(OverflowScroll)
	scroller.SetRect(geom.NewRect(0, 100, 200, 200))

	item := scroller.AppendChild(doc.CreateElement("item"))
	item.SetRect(geom.NewRect(0, 150, 100, 20))
	item.SetFocusable(true)

	overlay := doc.Root().AppendChild(doc.CreateElement("overlay"))
	overlay.SetRect(geom.NewRect(50, 140, 100, 100))
	return doc, scroller, item, overlay
}

func TestBoundingRect_AppliesScroll(t *testing.T) {
	type tc struct {
		scrollerY float64
		docY      float64
		fixed     bool
		expected  geom.Rect
	}

	tests := map[string]tc{
		"no scroll": {
			expected: geom.NewRect(0, 150, 100, 20),
		},
		"scroll container offset": {
			scrollerY: 30,
			expected:  geom.NewRect(0, 120, 100, 20),
		},
		"document and container scroll": {
			scrollerY: 30,
			docY:      10,
			expected:  geom.NewRect(0, 110, 100, 20),
		},
		"fixed node ignores scroll": {
			scrollerY: 30,
			docY:      10,
			fixed:     true,
			expected:  geom.NewRect(0, 150, 100, 20),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			doc, scroller, item, _ := buildTree(t)
			if tt.fixed {
				item.SetPosition(PositionFixed)
			}
			scroller.ScrollTo(0, tt.scrollerY)
			doc.ScrollTo(0, tt.docY)

			assert.Equal(t, tt.expected, item.BoundingRect())
		})
	}
}

func TestBoundingRect_DetachedIsZero(t *testing.T) {
	_, _, item, _ := buildTree(t)
	item.Remove()

	assert.False(t, item.Connected())
	assert.Equal(t, geom.Rect{}, item.BoundingRect())
}

func TestClippingRect_IntersectsNestedContainers(t *testing.T) {
	doc := NewDocument(800, 600)
	outer := doc.Root().AppendChild(doc.CreateElement("outer"))
	outer.SetOverflow(OverflowHidden)
	outer.SetRect(geom.NewRect(100, 100, 300, 300))

	inner := outer.AppendChild(doc.CreateElement("inner"))
	inner.SetOverflow(OverflowScroll)
	inner.SetRect(geom.NewRect(50, 200, 200, 400))

	leaf := inner.AppendChild(doc.CreateElement("leaf"))
	leaf.SetRect(geom.NewRect(60, 210, 10, 10))

	assert.Equal(t, []*Node{inner, outer}, ClippingAncestors(leaf))
	assert.Equal(t, []*Node{inner}, ScrollAncestors(leaf))
	assert.Equal(t, geom.NewRect(100, 200, 150, 200), ClippingRect(leaf, RootViewport))
}

func TestClippingRect_RootDocument(t *testing.T) {
	doc := NewDocument(800, 600)
	doc.SetContentSize(800, 2000)
	doc.ScrollTo(0, 500)
	leaf := doc.Root().AppendChild(doc.CreateElement("leaf"))

	assert.Equal(t, geom.NewRect(0, 0, 800, 600), ClippingRect(leaf, RootViewport))
	assert.Equal(t, geom.NewRect(0, -500, 800, 2000), ClippingRect(leaf, RootDocument))
}

func TestDispatch_CaptureThenBubbleOrder(t *testing.T) {
	doc, scroller, item, _ := buildTree(t)
	var order []string
	record := func(s string) Listener { return func(Event) { order = append(order, s) } }

	doc.AddEventListener(EventKeyDown, record("doc-capture"), Capture())
	doc.AddEventListener(EventKeyDown, record("doc-bubble"))
	scroller.AddEventListener(EventKeyDown, record("scroller-capture"), Capture())
	scroller.AddEventListener(EventKeyDown, record("scroller-bubble"))
	item.AddEventListener(EventKeyDown, record("item"))

	doc.Dispatch(item, NewKeyEvent(KeyEscape, 0, ModNone))

	assert.Equal(t, []string{"doc-capture", "scroller-capture", "item", "scroller-bubble", "doc-bubble"}, order)
}

func TestDispatch_StopPropagation(t *testing.T) {
	doc, scroller, item, _ := buildTree(t)
	reachedScroller := false
	item.AddEventListener(EventKeyDown, func(ev Event) { ev.Base().StopPropagation() })
	scroller.AddEventListener(EventKeyDown, func(Event) { reachedScroller = true })

	doc.Dispatch(item, NewKeyEvent(KeyEscape, 0, ModNone))

	assert.False(t, reachedScroller)
}

func TestDispatch_PanickingListenerDoesNotStopSiblings(t *testing.T) {
	doc, _, item, _ := buildTree(t)
	ran := false
	item.AddEventListener(EventKeyDown, func(Event) { panic("boom") })
	item.AddEventListener(EventKeyDown, func(Event) { ran = true })

	assert.NotPanics(t, func() {
		doc.Dispatch(item, NewKeyEvent(KeyEnter, 0, ModNone))
	})
	assert.True(t, ran)
}

func TestDispatch_NonBubblingSkipsAncestors(t *testing.T) {
	doc, scroller, item, _ := buildTree(t)
	var seen []string
	doc.AddEventListener(EventFocus, func(Event) { seen = append(seen, "doc-capture") }, Capture())
	scroller.AddEventListener(EventFocus, func(Event) { seen = append(seen, "scroller") })
	item.AddEventListener(EventFocus, func(Event) { seen = append(seen, "item") })

	doc.Focus(item, true)

	assert.Equal(t, []string{"doc-capture", "item"}, seen)
	assert.Equal(t, item, doc.ActiveElement())
}

func TestListenerCancel_IsIdempotent(t *testing.T) {
	_, _, item, _ := buildTree(t)
	cancel := item.AddEventListener(EventClick, func(Event) {})
	require.Equal(t, 1, item.ListenerCount())

	cancel()
	cancel()

	assert.Equal(t, 0, item.ListenerCount())
}

func TestPointerMove_EnterLeave(t *testing.T) {
	doc, scroller, item, overlay := buildTree(t)
	var events []string
	for _, n := range []*Node{scroller, item, overlay} {
		n := n
		n.AddEventListener(EventPointerEnter, func(Event) { events = append(events, "enter "+n.Name()) })
		n.AddEventListener(EventPointerLeave, func(Event) { events = append(events, "leave "+n.Name()) })
	}

	doc.PointerMove(10, 160, PointerMouse)
	assert.Equal(t, []string{"enter scroller", "enter item"}, events)

	events = nil
	doc.PointerMove(60, 160, PointerMouse) // overlay sits on top of item here
	assert.Equal(t, []string{"leave item", "leave scroller", "enter overlay"}, events)
}

func TestElementAt_RespectsClipping(t *testing.T) {
	doc, scroller, item, _ := buildTree(t)
	scroller.ScrollTo(0, 200) // item moves to y=-50, outside the scroller

	assert.Nil(t, doc.ElementAt(10, -45))
	assert.Equal(t, doc.Root(), doc.ElementAt(500, 500))
	assert.NotEqual(t, item, doc.ElementAt(10, 110))
}

func TestPointerDown_FocusesWithoutVisibility(t *testing.T) {
	doc, _, item, _ := buildTree(t)
	var visible *bool
	item.AddEventListener(EventFocus, func(ev Event) {
		v := ev.(*FocusEvent).Visible
		visible = &v
	})

	doc.PointerDown(10, 160, MouseLeft, PointerMouse)

	require.NotNil(t, visible)
	assert.False(t, *visible)
	assert.Equal(t, item, doc.ActiveElement())
}

func TestClick_DispatchedOnRelease(t *testing.T) {
	doc, _, item, _ := buildTree(t)
	clicks := 0
	item.AddEventListener(EventClick, func(Event) { clicks++ })

	doc.Click(10, 160, PointerMouse)
	doc.PointerDown(10, 160, MouseLeft, PointerMouse)
	doc.PointerUp(500, 500, MouseLeft, PointerMouse)

	assert.Equal(t, 1, clicks)
}

func TestObservers(t *testing.T) {
	_, _, item, _ := buildTree(t)
	resizes, moves := 0, 0
	cancelResize := item.ObserveResize(func() { resizes++ })
	item.ObserveGeometry(func() { moves++ })

	item.SetRect(geom.NewRect(5, 150, 100, 20)) // move only
	item.SetRect(geom.NewRect(5, 150, 120, 20)) // resize
	item.SetRect(geom.NewRect(5, 150, 120, 20)) // no change

	assert.Equal(t, 1, resizes)
	assert.Equal(t, 2, moves)

	cancelResize()
	cancelResize()
	assert.Equal(t, 1, item.ObserverCount())
}

func TestComparePosition(t *testing.T) {
	doc, scroller, item, overlay := buildTree(t)
	detached := doc.CreateElement("detached")

	assert.Equal(t, -1, ComparePosition(scroller, item))
	assert.Equal(t, 1, ComparePosition(item, scroller))
	assert.Equal(t, -1, ComparePosition(item, overlay))
	assert.Equal(t, 1, ComparePosition(overlay, item))
	assert.Equal(t, 0, ComparePosition(item, item))
	assert.Equal(t, 0, ComparePosition(item, detached))
}

func TestWindowResize(t *testing.T) {
	doc := NewDocument(100, 100)
	calls := 0
	cancel := doc.ObserveWindowResize(func() { calls++ })

	doc.SetViewport(200, 100)
	cancel()
	doc.SetViewport(300, 100)

	assert.Equal(t, 1, calls)
	assert.Equal(t, geom.Size{Width: 300, Height: 100}, doc.Viewport())
}

func TestReferenceConnected(t *testing.T) {
	_, _, item, _ := buildTree(t)

	assert.True(t, ReferenceConnected(item))
	assert.True(t, ReferenceConnected(PointAnchor{X: 1, Y: 2}))
	assert.True(t, ReferenceConnected(&VirtualElement{Rect: func() geom.Rect { return geom.Rect{} }}))

	item.Remove()
	assert.False(t, ReferenceConnected(item))
	assert.Equal(t, geom.NewRect(1, 2, 0, 0), PointAnchor{X: 1, Y: 2}.BoundingRect())
}
