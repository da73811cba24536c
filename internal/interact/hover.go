package interact

import (
	"time"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/internal/openstate"
	"github.com/grindlemire/floatui/pkg/debug"
)

// HoverOptions configures UseHover.
type HoverOptions struct {
	OpenDelay  time.Duration
	CloseDelay time.Duration
	// RestTime opens only after the pointer stops moving over the trigger
	// for this long. Zero disables resting.
	RestTime time.Duration
	// MouseOnly ignores pen input as well as touch.
	MouseOnly bool
	// SafePolygon keeps the popup open while the pointer crosses from the
	// trigger to the floating element. Nil closes after CloseDelay.
	SafePolygon *SafePolygon
	// Group shares open delays with sibling popups.
	Group *DelayGroup
}

type hover struct {
	ctx  *Context
	opts HoverOptions

	openTimer  loop.Cancel
	closeTimer loop.Cancel
	restTimer  loop.Cancel
	polygon    loop.Cancel
}

// UseHover opens the popup after the pointer rests on the trigger and
// closes it once the pointer has left both the trigger and the floating
// element. Touch input never opens. Re-entering either element cancels a
// pending close.
func UseHover(ctx *Context, opts HoverOptions) loop.Cancel {
	h := &hover{ctx: ctx, opts: opts}
	var g loop.Group

	g.Add(ctx.trigger.AddEventListener(dom.EventPointerEnter, h.onTriggerEnter))
	g.Add(ctx.trigger.AddEventListener(dom.EventPointerMove, h.onTriggerMove))
	g.Add(ctx.trigger.AddEventListener(dom.EventPointerLeave, h.onTriggerLeave))
	g.Add(ctx.floating.AddEventListener(dom.EventPointerEnter, h.onFloatingEnter))
	g.Add(ctx.floating.AddEventListener(dom.EventPointerLeave, h.onFloatingLeave))
	if opts.Group != nil {
		g.Add(opts.Group.Join(ctx))
	}
	g.Add(ctx.ctrl.Subscribe(func(ch openstate.Change) {
		if ch.To == openstate.Closed {
			h.clearTimers()
			h.stopPolygon()
		}
	}))
	g.Add(h.clearTimers)
	g.Add(h.stopPolygon)

	return ctx.Own(loop.Once(g.Dispose))
}

func (h *hover) accepts(ev *dom.PointerEvent) bool {
	switch ev.PointerType {
	case dom.PointerTouch:
		return false
	case dom.PointerPen:
		return !h.opts.MouseOnly
	}
	return true
}

func (h *hover) onTriggerEnter(e dom.Event) {
	ev := e.(*dom.PointerEvent)
	if !h.accepts(ev) {
		return
	}
	h.cancel(&h.closeTimer)
	h.stopPolygon()
	if h.ctx.ctrl.Open() {
		return
	}

	delay, instant := h.opts.OpenDelay, false
	if h.opts.Group != nil {
		delay, instant = h.opts.Group.openDelay()
	}
	if h.opts.RestTime > 0 && !instant {
		h.armRest(ev)
		return
	}
	h.scheduleOpen(delay, instant, ev)
}

func (h *hover) onTriggerMove(e dom.Event) {
	ev := e.(*dom.PointerEvent)
	if h.opts.RestTime <= 0 || !h.accepts(ev) || h.ctx.ctrl.Open() || h.openTimer != nil {
		return
	}
	h.armRest(ev)
}

func (h *hover) armRest(ev *dom.PointerEvent) {
	h.cancel(&h.restTimer)
	h.restTimer = h.ctx.sched.AfterFunc(h.opts.RestTime, func() {
		h.restTimer = nil
		h.scheduleOpen(h.opts.OpenDelay, false, ev)
	})
}

func (h *hover) scheduleOpen(delay time.Duration, instant bool, ev *dom.PointerEvent) {
	open := func() {
		h.openTimer = nil
		if instant {
			h.ctx.SetInstant("delay")
		}
		h.ctx.ctrl.RequestOpen(openstate.ReasonHover, ev)
	}
	h.cancel(&h.openTimer)
	if delay <= 0 {
		open()
		return
	}
	h.openTimer = h.ctx.sched.AfterFunc(delay, open)
}

func (h *hover) onTriggerLeave(e dom.Event) {
	ev := e.(*dom.PointerEvent)
	h.cancel(&h.openTimer)
	h.cancel(&h.restTimer)
	if !h.ctx.ctrl.Open() {
		return
	}
	if ev.RelatedTarget != nil && h.ctx.Contains(ev.RelatedTarget) {
		return
	}
	if h.opts.SafePolygon != nil && ev.PointerType != dom.PointerTouch {
		h.startPolygon(ev)
		return
	}
	h.scheduleClose()
}

func (h *hover) onFloatingEnter(dom.Event) {
	h.cancel(&h.closeTimer)
	h.stopPolygon()
}

func (h *hover) onFloatingLeave(e dom.Event) {
	ev := e.(*dom.PointerEvent)
	if !h.ctx.ctrl.Open() {
		return
	}
	if ev.RelatedTarget != nil && h.ctx.Contains(ev.RelatedTarget) {
		return
	}
	h.scheduleClose()
}

// scheduleClose always goes through a timer so an enter dispatched in the
// same pointer move can cancel it.
func (h *hover) scheduleClose() {
	delay := h.opts.CloseDelay
	if h.opts.Group != nil {
		delay = h.opts.Group.opts.CloseDelay
	}
	h.cancel(&h.closeTimer)
	h.closeTimer = h.ctx.sched.AfterFunc(delay, func() {
		h.closeTimer = nil
		h.ctx.ctrl.RequestClose(openstate.ReasonHover, nil)
	})
}

func (h *hover) startPolygon(ev *dom.PointerEvent) {
	h.stopPolygon()
	sp := h.opts.SafePolygon
	sp.Start(geom.Pt(ev.X, ev.Y), h.ctx.trigger.BoundingRect(), h.ctx.floating.BoundingRect(), h.ctx.sched.Now())
	debug.Log("interact: %s safe polygon from (%.0f, %.0f)", h.ctx.id, ev.X, ev.Y)

	cancelMove := h.ctx.doc.AddEventListener(dom.EventPointerMove, func(e dom.Event) {
		move := e.(*dom.PointerEvent)
		pt := geom.Pt(move.X, move.Y)
		if sp.Allow(pt, h.ctx.trigger.BoundingRect(), h.ctx.floating.BoundingRect(), h.ctx.sched.Now()) {
			return
		}
		if move.Base().Target != nil && h.ctx.Contains(move.Base().Target) {
			return
		}
		h.stopPolygon()
		h.ctx.ctrl.RequestClose(openstate.ReasonHover, move)
	}, dom.Capture())
	h.polygon = func() {
		cancelMove()
		sp.Stop()
	}
}

func (h *hover) stopPolygon() {
	h.cancel(&h.polygon)
}

func (h *hover) clearTimers() {
	h.cancel(&h.openTimer)
	h.cancel(&h.closeTimer)
	h.cancel(&h.restTimer)
}

func (h *hover) cancel(c *loop.Cancel) {
	if *c != nil {
		(*c)()
		*c = nil
	}
}
