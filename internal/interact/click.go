package interact

import (
	"time"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/internal/openstate"
)

// PatientClickThreshold is how long after a hover open a click on the
// trigger is treated as a deliberate close rather than the tail of the
// hover gesture.
const PatientClickThreshold = 500 * time.Millisecond

// ClickEvent selects which pointer event toggles the popup.
type ClickEvent int

const (
	// OnClick toggles on click (press and release on the trigger).
	OnClick ClickEvent = iota
	// OnPointerDown toggles on press.
	OnPointerDown
)

// ClickOptions configures UseClick.
type ClickOptions struct {
	Event ClickEvent
	// NoToggle makes a click on an open trigger keep it open.
	NoToggle bool
	// IgnoreMouse ignores mouse input, leaving touch, pen and keyboard.
	IgnoreMouse bool
	// NoStickIfOpen closes a hover-opened popup on click instead of
	// keeping it open.
	NoStickIfOpen bool
	// NoKeyboard ignores Enter and Space on the trigger.
	NoKeyboard bool
}

// UseClick toggles the popup from pointer presses and Enter/Space on the
// trigger. A click shortly after a hover open keeps the popup open.
func UseClick(ctx *Context, opts ClickOptions) loop.Cancel {
	var g loop.Group

	typ := dom.EventClick
	if opts.Event == OnPointerDown {
		typ = dom.EventPointerDown
	}
	g.Add(ctx.trigger.AddEventListener(typ, func(e dom.Event) {
		ev := e.(*dom.PointerEvent)
		if typ == dom.EventPointerDown && ev.Button != dom.MouseLeft {
			return
		}
		if opts.IgnoreMouse && ev.PointerType == dom.PointerMouse {
			return
		}
		toggle(ctx, opts, ev)
	}))

	if !opts.NoKeyboard {
		g.Add(ctx.trigger.AddEventListener(dom.EventKeyDown, func(e dom.Event) {
			ev := e.(*dom.KeyEvent)
			if ev.Base().Target != ctx.trigger {
				return
			}
			if ev.Key != dom.KeyEnter && ev.Key != dom.KeySpace {
				return
			}
			ev.PreventDefault()
			toggle(ctx, opts, ev)
		}))
	}

	return ctx.Own(loop.Once(g.Dispose))
}

func toggle(ctx *Context, opts ClickOptions, ev dom.Event) {
	ctrl := ctx.ctrl
	if !ctrl.Open() {
		ctrl.RequestOpen(openstate.ReasonClick, ev)
		return
	}
	if ctrl.Reason() == openstate.ReasonHover && !opts.NoStickIfOpen {
		if ctx.sched.Now().Sub(ctrl.OpenedAt()) < PatientClickThreshold {
			return
		}
	}
	if opts.NoToggle {
		return
	}
	ctrl.RequestClose(openstate.ReasonClick, ev)
}
