package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/geom"
)

func TestUseClientPoint(t *testing.T) {
	type tc struct {
		opts     ClientPointOptions
		run      func(f *fixture)
		expected geom.Rect
	}

	tests := map[string]tc{
		"context menu press": {
			run:      func(f *fixture) { f.doc.PointerDown(120, 105, dom.MouseRight, dom.PointerMouse) },
			expected: geom.NewRect(120, 105, 0, 0),
		},
		"primary press ignored by default": {
			run:      func(f *fixture) { f.doc.PointerDown(120, 105, dom.MouseLeft, dom.PointerMouse) },
			expected: geom.NewRect(100, 100, 100, 20),
		},
		"primary press": {
			opts:     ClientPointOptions{OnPress: true},
			run:      func(f *fixture) { f.doc.PointerDown(120, 105, dom.MouseLeft, dom.PointerMouse) },
			expected: geom.NewRect(120, 105, 0, 0),
		},
		"x axis keeps trigger height": {
			opts:     ClientPointOptions{Axis: ClientPointX},
			run:      func(f *fixture) { f.doc.PointerDown(130, 105, dom.MouseRight, dom.PointerMouse) },
			expected: geom.NewRect(130, 100, 0, 20),
		},
		"y axis keeps trigger width": {
			opts:     ClientPointOptions{Axis: ClientPointY},
			run:      func(f *fixture) { f.doc.PointerDown(130, 105, dom.MouseRight, dom.PointerMouse) },
			expected: geom.NewRect(100, 105, 100, 0),
		},
		"follow while closed": {
			opts: ClientPointOptions{Follow: true},
			run: func(f *fixture) {
				f.doc.PointerMove(110, 101, dom.PointerMouse)
				f.doc.PointerMove(180, 115, dom.PointerMouse)
			},
			expected: geom.NewRect(180, 115, 0, 0),
		},
		"follow stops once open": {
			opts: ClientPointOptions{Follow: true},
			run: func(f *fixture) {
				f.doc.PointerMove(110, 101, dom.PointerMouse)
				openNow(f.ctx)
				f.doc.PointerMove(180, 115, dom.PointerMouse)
			},
			expected: geom.NewRect(110, 101, 0, 0),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			UseClientPoint(f.ctx, tt.opts)
			tt.run(f)
			assert.Equal(t, tt.expected, f.ctx.Reference().BoundingRect())
		})
	}
}

func TestUseClientPoint_VirtualTracksTrigger(t *testing.T) {
	f := newFixture(t)
	UseClientPoint(f.ctx, ClientPointOptions{Axis: ClientPointX})
	f.doc.PointerDown(130, 105, dom.MouseRight, dom.PointerMouse)

	f.trigger.SetRect(geom.NewRect(100, 300, 100, 20))
	assert.Equal(t, geom.NewRect(130, 300, 0, 20), f.ctx.Reference().BoundingRect())
	assert.Equal(t, f.trigger, dom.ReferenceNode(f.ctx.Reference()))
	assert.False(t, f.ctrl.State().IsOpen())
}
