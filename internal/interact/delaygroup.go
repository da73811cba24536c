package interact

import (
	"time"

	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/internal/openstate"
)

// GroupOptions configures a DelayGroup.
type GroupOptions struct {
	// OpenDelay is the delay for the first popup of the group.
	OpenDelay time.Duration
	// CloseDelay is the delay every member uses to close.
	CloseDelay time.Duration
	// Timeout keeps the group warm after the last member closes, so moving
	// to a sibling within it still opens instantly.
	Timeout time.Duration
}

// DelayGroup lets sibling hover popups (a toolbar of tooltips) skip the open
// delay once one of them is open. Only one member is open at a time.
type DelayGroup struct {
	opts      GroupOptions
	sched     loop.Scheduler
	current   *Context
	warmUntil time.Time
}

// NewDelayGroup creates a group timed on sched.
func NewDelayGroup(sched loop.Scheduler, opts GroupOptions) *DelayGroup {
	return &DelayGroup{opts: opts, sched: sched}
}

// Options returns the group configuration.
func (g *DelayGroup) Options() GroupOptions {
	return g.opts
}

// Warm reports whether a member is open or one closed within Timeout.
func (g *DelayGroup) Warm() bool {
	return g.current != nil || g.sched.Now().Before(g.warmUntil)
}

// Current returns the open member, or nil.
func (g *DelayGroup) Current() *Context {
	return g.current
}

// Join tracks ctx's open state. Opening a member closes the previously open
// one instantly.
func (g *DelayGroup) Join(ctx *Context) loop.Cancel {
	return ctx.ctrl.Subscribe(func(ch openstate.Change) {
		switch ch.To {
		case openstate.Opening:
			prev := g.current
			g.current = ctx
			if prev != nil && prev != ctx && prev.ctrl.Open() {
				prev.SetInstant("delay")
				prev.ctrl.RequestClose(openstate.ReasonHover, nil)
				prev.ctrl.FinishTransition()
			}
		case openstate.Closing, openstate.Closed:
			if g.current == ctx {
				g.current = nil
				g.warmUntil = g.sched.Now().Add(g.opts.Timeout)
			}
		}
	})
}

// openDelay returns the delay for a member about to open and whether the
// open is instant.
func (g *DelayGroup) openDelay() (time.Duration, bool) {
	if g.Warm() {
		return 0, true
	}
	return g.opts.OpenDelay, false
}
