package interact

import (
	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/internal/loop"
)

// ClientPointAxis limits which coordinates follow the pointer.
type ClientPointAxis int

const (
	ClientPointBoth ClientPointAxis = iota
	// ClientPointX takes x from the pointer and y from the trigger.
	ClientPointX
	// ClientPointY takes y from the pointer and x from the trigger.
	ClientPointY
)

// ClientPointOptions configures UseClientPoint.
type ClientPointOptions struct {
	Axis ClientPointAxis
	// Follow keeps updating the anchor while the pointer moves over the
	// trigger and the popup is closed.
	Follow bool
	// OnPress anchors on primary press as well as on contextmenu.
	OnPress bool
}

// UseClientPoint anchors the popup at the pointer instead of the trigger
// rect, for context menus and cursor-following tooltips.
func UseClientPoint(ctx *Context, opts ClientPointOptions) loop.Cancel {
	var g loop.Group

	anchor := func(x, y float64) {
		if opts.Axis == ClientPointBoth {
			ctx.SetReference(dom.PointAnchor{X: x, Y: y})
			return
		}
		trigger := ctx.trigger
		ctx.SetReference(&dom.VirtualElement{
			Context: trigger,
			Rect: func() geom.Rect {
				r := trigger.BoundingRect()
				if opts.Axis == ClientPointX {
					return geom.NewRect(x, r.Y, 0, r.Height)
				}
				return geom.NewRect(r.X, y, r.Width, 0)
			},
		})
	}

	g.Add(ctx.trigger.AddEventListener(dom.EventContextMenu, func(e dom.Event) {
		ev := e.(*dom.PointerEvent)
		anchor(ev.X, ev.Y)
	}))
	if opts.OnPress {
		g.Add(ctx.trigger.AddEventListener(dom.EventPointerDown, func(e dom.Event) {
			ev := e.(*dom.PointerEvent)
			if ev.Button == dom.MouseLeft {
				anchor(ev.X, ev.Y)
			}
		}))
	}
	if opts.Follow {
		g.Add(ctx.trigger.AddEventListener(dom.EventPointerMove, func(e dom.Event) {
			if ctx.ctrl.Open() {
				return
			}
			ev := e.(*dom.PointerEvent)
			anchor(ev.X, ev.Y)
		}))
	}

	return ctx.Own(loop.Once(g.Dispose))
}
