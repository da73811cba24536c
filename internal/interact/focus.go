package interact

import (
	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/internal/openstate"
)

// FocusOptions configures UseFocus.
type FocusOptions struct {
	// AllowPointer opens on pointer-origin focus too. By default only
	// keyboard focus (focus-visible) opens.
	AllowPointer bool
}

// UseFocus opens the popup when the trigger receives visible focus and
// closes it when focus leaves both the trigger and the floating element.
func UseFocus(ctx *Context, opts FocusOptions) loop.Cancel {
	var g loop.Group

	g.Add(ctx.trigger.AddEventListener(dom.EventFocus, func(e dom.Event) {
		ev := e.(*dom.FocusEvent)
		if !ev.Visible && !opts.AllowPointer {
			return
		}
		ctx.ctrl.RequestOpen(openstate.ReasonFocus, ev)
	}))
	g.Add(ctx.trigger.AddEventListener(dom.EventBlur, func(e dom.Event) {
		ev := e.(*dom.FocusEvent)
		if ev.RelatedTarget != nil && ctx.Contains(ev.RelatedTarget) {
			return
		}
		ctx.ctrl.RequestClose(openstate.ReasonFocus, ev)
	}))
	g.Add(ctx.floating.AddEventListener(dom.EventFocusOut, func(e dom.Event) {
		ev := e.(*dom.FocusEvent)
		if ev.RelatedTarget != nil && ctx.Contains(ev.RelatedTarget) {
			return
		}
		ctx.ctrl.RequestClose(openstate.ReasonFocusOut, ev)
	}))

	return ctx.Own(loop.Once(g.Dispose))
}
