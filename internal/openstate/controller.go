package openstate

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/loop"
	logdebug "github.com/grindlemire/floatui/pkg/debug"
)

// ErrNilScheduler is returned by New without a scheduler.
var ErrNilScheduler = errors.New("openstate: scheduler is required")

// ChangeDetails is passed to the veto hook before a transition. Calling
// Cancel keeps the current state.
type ChangeDetails struct {
	Open     bool
	Reason   Reason
	Event    dom.Event
	canceled bool
}

// Cancel vetoes the transition.
func (d *ChangeDetails) Cancel() {
	d.canceled = true
}

// Canceled reports whether the transition was vetoed.
func (d *ChangeDetails) Canceled() bool {
	return d.canceled
}

// Change describes one state change delivered to subscribers.
type Change struct {
	From   State
	To     State
	Reason Reason
	Event  dom.Event
}

// Unsubscribe removes a subscriber. Calling it more than once is a no-op.
type Unsubscribe = loop.Cancel

// Option configures a Controller.
type Option func(*Controller) error

// WithInitialOpen starts the controller in Open instead of Closed.
func WithInitialOpen(open bool) Option {
	return func(c *Controller) error {
		if open {
			c.state = Open
			c.reason = ReasonProgrammatic
		}
		return nil
	}
}

// WithOpenDuration sets how long Opening lasts. Zero (default) settles on the
// next frame, giving one frame of starting style.
func WithOpenDuration(d time.Duration) Option {
	return func(c *Controller) error {
		if d < 0 {
			return fmt.Errorf("open duration must be >= 0, got %s", d)
		}
		c.openDuration = d
		return nil
	}
}

// WithCloseDuration sets how long Closing lasts. Zero (default) settles on
// the next frame.
func WithCloseDuration(d time.Duration) Option {
	return func(c *Controller) error {
		if d < 0 {
			return fmt.Errorf("close duration must be >= 0, got %s", d)
		}
		c.closeDuration = d
		return nil
	}
}

// WithOnOpenChange installs the veto hook consulted before every accepted
// request.
func WithOnOpenChange(fn func(open bool, d *ChangeDetails)) Option {
	return func(c *Controller) error {
		c.veto = fn
		return nil
	}
}

// WithName labels the controller in debug logs.
func WithName(name string) Option {
	return func(c *Controller) error {
		c.name = name
		return nil
	}
}

// Controller owns the open state of one popup. It is not safe for concurrent
// use; drive it from the loop goroutine.
type Controller struct {
	name  string
	sched loop.Scheduler

	state    State
	reason   Reason
	event    dom.Event
	openedAt time.Time

	openDuration  time.Duration
	closeDuration time.Duration
	pending       loop.Cancel

	veto func(open bool, d *ChangeDetails)

	nextSub int
	subs    map[int]func(Change)
	order   []int
}

// New creates a Controller that schedules its transitions on sched.
func New(sched loop.Scheduler, opts ...Option) (*Controller, error) {
	if sched == nil {
		return nil, ErrNilScheduler
	}
	c := &Controller{sched: sched, name: "popup"}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.state == Open {
		c.openedAt = sched.Now()
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(sched loop.Scheduler, opts ...Option) *Controller {
	c, err := New(sched, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Open reports whether the state is Opening or Open.
func (c *Controller) Open() bool {
	return c.state.IsOpen()
}

// Reason returns the reason of the last accepted request.
func (c *Controller) Reason() Reason {
	return c.reason
}

// Event returns the event that triggered the last accepted request, if any.
func (c *Controller) Event() dom.Event {
	return c.event
}

// OpenedAt returns when the controller last entered Opening.
func (c *Controller) OpenedAt() time.Time {
	return c.openedAt
}

// RequestOpen asks to open. It returns false when already open or opening,
// or when the veto hook cancelled the change. A request during Closing
// reverses the exit transition.
func (c *Controller) RequestOpen(reason Reason, ev dom.Event) bool {
	if c.state.IsOpen() {
		return false
	}
	if !c.allow(true, reason, ev) {
		return false
	}
	c.openedAt = c.sched.Now()
	c.begin(Opening, Open, c.openDuration, reason, ev)
	return true
}

// RequestClose asks to close. It returns false when already closed or
// closing, or when vetoed. A request during Opening reverses the enter
// transition.
func (c *Controller) RequestClose(reason Reason, ev dom.Event) bool {
	if !c.state.IsOpen() {
		return false
	}
	if !c.allow(false, reason, ev) {
		return false
	}
	c.begin(Closing, Closed, c.closeDuration, reason, ev)
	return true
}

// SetOpen requests open or close.
func (c *Controller) SetOpen(open bool, reason Reason, ev dom.Event) bool {
	if open {
		return c.RequestOpen(reason, ev)
	}
	return c.RequestClose(reason, ev)
}

// Toggle requests the opposite of the current open state.
func (c *Controller) Toggle(reason Reason, ev dom.Event) bool {
	return c.SetOpen(!c.Open(), reason, ev)
}

// FinishTransition settles an in-flight transition immediately, for
// consumers that know their animation ended.
func (c *Controller) FinishTransition() {
	switch c.state {
	case Opening:
		c.settle(Open)
	case Closing:
		c.settle(Closed)
	}
}

// Subscribe registers fn for every state change. Subscribers run in
// registration order; a panicking subscriber is logged and skipped.
func (c *Controller) Subscribe(fn func(Change)) Unsubscribe {
	if c.subs == nil {
		c.subs = make(map[int]func(Change))
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.order = append(c.order, id)
	return loop.Once(func() {
		delete(c.subs, id)
		for i, v := range c.order {
			if v == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	})
}

// SubscriberCount returns the number of live subscribers.
func (c *Controller) SubscriberCount() int {
	return len(c.subs)
}

// Dispose cancels a pending transition timer and drops every subscriber.
func (c *Controller) Dispose() {
	c.cancelPending()
	c.subs = nil
	c.order = nil
}

func (c *Controller) allow(open bool, reason Reason, ev dom.Event) bool {
	if !reason.Valid() {
		logdebug.Logger().Error("openstate: unknown reason", zap.String("popup", c.name), zap.String("reason", string(reason)))
		return false
	}
	if c.veto == nil {
		return true
	}
	d := &ChangeDetails{Open: open, Reason: reason, Event: ev}
	c.veto(open, d)
	if d.canceled {
		logdebug.Log("openstate: %s %s vetoed (%s)", c.name, verb(open), reason)
	}
	return !d.canceled
}

// begin enters a transitional state and schedules the settle. The settle is
// scheduled before subscribers run so one of them can reverse it.
func (c *Controller) begin(transit, target State, d time.Duration, reason Reason, ev dom.Event) {
	c.cancelPending()
	from := c.state
	c.state = transit
	c.reason = reason
	c.event = ev

	settle := func() {
		c.pending = nil
		c.settle(target)
	}
	if d > 0 {
		c.pending = c.sched.AfterFunc(d, settle)
	} else {
		c.pending = c.sched.RequestFrame(settle)
	}

	logdebug.Log("openstate: %s %s -> %s (%s)", c.name, from, transit, reason)
	c.notify(Change{From: from, To: transit, Reason: reason, Event: ev})
}

func (c *Controller) settle(to State) {
	c.cancelPending()
	from := c.state
	if from == to {
		return
	}
	c.state = to
	logdebug.Log("openstate: %s %s -> %s", c.name, from, to)
	c.notify(Change{From: from, To: to, Reason: c.reason, Event: c.event})
}

func (c *Controller) cancelPending() {
	if c.pending != nil {
		c.pending()
		c.pending = nil
	}
}

func (c *Controller) notify(ch Change) {
	for _, id := range append([]int(nil), c.order...) {
		fn, ok := c.subs[id]
		if !ok {
			continue
		}
		c.safeCall(fn, ch)
	}
}

func (c *Controller) safeCall(fn func(Change), ch Change) {
	defer func() {
		if r := recover(); r != nil {
			logdebug.Logger().Error("openstate: recovered panic in subscriber",
				zap.String("popup", c.name),
				zap.Stringer("to", ch.To),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()
	fn(ch)
}

func verb(open bool) string {
	if open {
		return "open"
	}
	return "close"
}
