package loop

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by hand. Time only moves when Advance is
// called and frames only run when Frame is called, which makes timer and
// frame ordering fully deterministic in tests.
type Manual struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
	frames []*frameEntry
}

type manualTimer struct {
	due       time.Time
	seq       uint64
	fn        func()
	cancelled bool
}

var _ Scheduler = (*Manual)(nil)

// NewManual creates a Manual scheduler starting at a fixed epoch.
func NewManual() *Manual {
	return &Manual{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// AfterFunc schedules fn at Now()+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Cancel {
	t := &manualTimer{due: m.now.Add(d), seq: m.seq, fn: fn}
	m.seq++
	m.timers = append(m.timers, t)
	return Once(func() { t.cancelled = true })
}

// RequestFrame queues fn for the next Frame call.
func (m *Manual) RequestFrame(fn func()) Cancel {
	entry := &frameEntry{fn: fn}
	m.frames = append(m.frames, entry)
	return Once(func() { entry.cancelled = true })
}

// Advance moves virtual time forward by d, firing due timers in due order.
// Timers scheduled by fired callbacks run too when they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now.Add(d)
	for {
		next := m.nextDue(end)
		if next == nil {
			break
		}
		if next.due.After(m.now) {
			m.now = next.due
		}
		next.cancelled = true
		next.fn()
	}
	m.now = end
}

func (m *Manual) nextDue(end time.Time) *manualTimer {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.timers = live
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due.Equal(m.timers[j].due) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].due.Before(m.timers[j].due)
	})
	if len(m.timers) == 0 || m.timers[0].due.After(end) {
		return nil
	}
	return m.timers[0]
}

// Frame runs the frame callbacks queued so far. Callbacks requested while the
// frame runs are deferred to the next Frame call.
func (m *Manual) Frame() {
	frames := m.frames
	m.frames = nil
	for _, f := range frames {
		if !f.cancelled {
			f.fn()
		}
	}
}

// Tick advances time by d and then runs one frame.
func (m *Manual) Tick(d time.Duration) {
	m.Advance(d)
	m.Frame()
}

// PendingTimers returns the number of live timers.
func (m *Manual) PendingTimers() int {
	n := 0
	for _, t := range m.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// PendingFrames returns the number of live frame callbacks.
func (m *Manual) PendingFrames() int {
	n := 0
	for _, f := range m.frames {
		if !f.cancelled {
			n++
		}
	}
	return n
}
