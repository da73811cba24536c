package autoupdate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/internal/loop"
)

type fixture struct {
	doc      *dom.Document
	scroller *dom.Node
	anchor   *dom.Node
	floating *dom.Node
	sched    *loop.Manual
	updates  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{doc: dom.NewDocument(800, 600), sched: loop.NewManual()}
	f.scroller = f.doc.Root().AppendChild(f.doc.CreateElement("scroller"))
	f.scroller.SetOverflow(dom.OverflowScroll)
	f.scroller.SetRect(geom.NewRect(0, 0, 400, 400))
	f.anchor = f.scroller.AppendChild(f.doc.CreateElement("anchor"))
	f.anchor.SetRect(geom.NewRect(10, 10, 50, 20))
	f.floating = f.doc.Root().AppendChild(f.doc.CreateElement("floating"))
	f.floating.SetRect(geom.NewRect(0, 0, 100, 80))
	return f
}

func (f *fixture) update() { f.updates++ }

func (f *fixture) liveCount() int {
	return f.scroller.ListenerCount() + f.scroller.ObserverCount() +
		f.anchor.ObserverCount() + f.floating.ObserverCount() +
		f.doc.ListenerCount()
}

func TestAutoUpdate_Triggers(t *testing.T) {
	type tc struct {
		opts    []Option
		trigger func(f *fixture)
		updates int
	}

	tests := map[string]tc{
		"ancestor scroll": {
			trigger: func(f *fixture) { f.scroller.ScrollTo(0, 30) },
			updates: 1,
		},
		"document scroll": {
			trigger: func(f *fixture) { f.doc.ScrollTo(0, 30) },
			updates: 1,
		},
		"window resize": {
			trigger: func(f *fixture) { f.doc.SetViewport(1024, 768) },
			updates: 1,
		},
		"floating element resize": {
			trigger: func(f *fixture) { f.floating.SetRect(geom.NewRect(0, 0, 100, 120)) },
			updates: 1,
		},
		"anchor resize": {
			trigger: func(f *fixture) { f.anchor.SetRect(geom.NewRect(10, 10, 80, 20)) },
			updates: 1,
		},
		"anchor layout shift": {
			trigger: func(f *fixture) { f.anchor.SetRect(geom.NewRect(40, 10, 50, 20)) },
			updates: 1,
		},
		"many triggers coalesce into one frame": {
			trigger: func(f *fixture) {
				f.scroller.ScrollTo(0, 10)
				f.scroller.ScrollTo(0, 20)
				f.floating.SetRect(geom.NewRect(0, 0, 120, 80))
				f.doc.SetViewport(900, 600)
			},
			updates: 1,
		},
		"scroll ignored when disabled": {
			opts:    []Option{WithAncestorScroll(false)},
			trigger: func(f *fixture) { f.scroller.ScrollTo(0, 30) },
			updates: 0,
		},
		"element resize ignored when disabled": {
			opts:    []Option{WithElementResize(false)},
			trigger: func(f *fixture) { f.floating.SetRect(geom.NewRect(0, 0, 100, 120)) },
			updates: 0,
		},
		"layout shift ignored when disabled": {
			opts:    []Option{WithLayoutShift(false)},
			trigger: func(f *fixture) { f.anchor.SetRect(geom.NewRect(40, 10, 50, 20)) },
			updates: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			cancel := AutoUpdate(f.anchor, f.floating, f.sched, f.update, tt.opts...)
			defer cancel()
			require.Equal(t, 1, f.updates, "runs once on subscribe")

			tt.trigger(f)
			assert.Equal(t, 1, f.updates, "nothing runs before the frame")

			f.sched.Frame()
			assert.Equal(t, 1+tt.updates, f.updates)
		})
	}
}

func TestAutoUpdate_DisposeRemovesEverything(t *testing.T) {
	f := newFixture(t)
	before := f.liveCount()

	cancel := AutoUpdate(f.anchor, f.floating, f.sched, f.update)
	require.Greater(t, f.liveCount(), before)

	f.scroller.ScrollTo(0, 10) // leaves a frame pending
	require.Equal(t, 1, f.sched.PendingFrames())

	cancel()
	cancel()

	assert.Equal(t, before, f.liveCount())
	assert.Equal(t, 0, f.sched.PendingFrames())

	f.sched.Frame()
	f.scroller.ScrollTo(0, 40)
	f.doc.SetViewport(100, 100)
	f.sched.Frame()
	assert.Equal(t, 1, f.updates, "no callbacks after dispose")
}

func TestAutoUpdate_AnimationFramePollsVirtualReference(t *testing.T) {
	f := newFixture(t)
	rect := geom.NewRect(100, 100, 0, 0)
	ref := &dom.VirtualElement{Rect: func() geom.Rect { return rect }}

	cancel := AutoUpdate(ref, f.floating, f.sched, f.update, WithAnimationFrame(true))
	require.Equal(t, 1, f.updates)

	f.sched.Frame()
	assert.Equal(t, 1, f.updates, "unchanged rect does not update")

	rect = geom.NewRect(120, 100, 0, 0)
	f.sched.Frame()
	assert.Equal(t, 2, f.updates)

	f.sched.Frame()
	assert.Equal(t, 2, f.updates)

	cancel()
	rect = geom.NewRect(0, 0, 0, 0)
	f.sched.Frame()
	assert.Equal(t, 2, f.updates)
	assert.Equal(t, 0, f.sched.PendingFrames())
}

func TestAutoUpdate_PointAnchorWithoutNode(t *testing.T) {
	f := newFixture(t)

	cancel := AutoUpdate(dom.PointAnchor{X: 5, Y: 5}, f.floating, f.sched, f.update)
	f.doc.ScrollTo(0, 50)
	f.sched.Frame()
	cancel()

	assert.Equal(t, 2, f.updates)
	assert.Equal(t, 0, f.doc.ListenerCount())
}
