package loop

import "time"

// Scheduler is the event-loop surface the engine schedules work on.
// All callbacks run on the loop goroutine, one at a time.
type Scheduler interface {
	// Now returns the loop's current time.
	Now() time.Time

	// AfterFunc runs fn on the loop after d. The returned Cancel guarantees
	// fn never runs once it has been called.
	AfterFunc(d time.Duration, fn func()) Cancel

	// RequestFrame runs fn once at the start of the next frame, before paint.
	RequestFrame(fn func()) Cancel
}

// FrameBatcher coalesces any number of Request calls made before the next
// frame into a single invocation of its callback.
type FrameBatcher struct {
	sched   Scheduler
	fn      func()
	pending Cancel
}

// NewFrameBatcher creates a batcher that calls fn at most once per frame.
func NewFrameBatcher(sched Scheduler, fn func()) *FrameBatcher {
	return &FrameBatcher{sched: sched, fn: fn}
}

// Request schedules the callback for the next frame if it is not already
// scheduled.
func (b *FrameBatcher) Request() {
	if b.pending != nil {
		return
	}
	b.pending = b.sched.RequestFrame(func() {
		b.pending = nil
		b.fn()
	})
}

// Pending reports whether a frame is scheduled.
func (b *FrameBatcher) Pending() bool {
	return b.pending != nil
}

// Cancel drops a scheduled frame.
func (b *FrameBatcher) Cancel() {
	if b.pending != nil {
		b.pending()
		b.pending = nil
	}
}
