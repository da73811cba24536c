package loop

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/grindlemire/floatui/pkg/debug"
)

// Option is a functional option for configuring a Loop.
type Option func(*Loop) error

// WithFrameRate sets the target frame rate. Default is 60 fps. Valid range is 1-240 fps.
func WithFrameRate(fps int) Option {
	return func(l *Loop) error {
		if fps < 1 {
			return fmt.Errorf("frame rate must be at least 1 fps")
		}
		if fps > 240 {
			return fmt.Errorf("frame rate cannot exceed 240 fps")
		}
		l.frameDuration = time.Second / time.Duration(fps)
		return nil
	}
}

// WithQueueSize sets the capacity of the event queue buffer.
// Default is 256. Must be at least 1.
func WithQueueSize(size int) Option {
	return func(l *Loop) error {
		if size < 1 {
			return fmt.Errorf("event queue size must be at least 1")
		}
		l.queueSize = size
		return nil
	}
}

// Loop is a frame-based event loop. Events posted with Post run in order on
// the goroutine that called Run; frame callbacks run once per frame after the
// event budget is spent.
type Loop struct {
	frameDuration time.Duration
	queueSize     int

	queue  chan func()
	stopCh chan struct{}
	stop   sync.Once

	mu     sync.Mutex
	frames []*frameEntry

	running atomic.Bool
}

type frameEntry struct {
	fn        func()
	cancelled bool
}

var _ Scheduler = (*Loop)(nil)

// New creates a Loop. It does not start running until Run is called.
func New(opts ...Option) (*Loop, error) {
	l := &Loop{
		frameDuration: time.Second / 60,
		queueSize:     256,
		stopCh:        make(chan struct{}),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	l.queue = make(chan func(), l.queueSize)
	return l, nil
}

// Now returns the wall clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post enqueues fn to run on the loop. Safe to call from any goroutine.
// Posts after Stop are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.stopCh:
		return
	default:
	}
	select {
	case l.queue <- fn:
	case <-l.stopCh:
	}
}

// AfterFunc runs fn on the loop after d. The timer goroutine only posts; the
// cancelled check happens on the loop so a cancel issued before the posted
// closure runs still wins.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Cancel {
	var cancelled atomic.Bool
	t := time.AfterFunc(d, func() {
		l.Post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})
	return Once(func() {
		cancelled.Store(true)
		t.Stop()
	})
}

// RequestFrame runs fn at the start of the next frame.
func (l *Loop) RequestFrame(fn func()) Cancel {
	entry := &frameEntry{fn: fn}
	l.mu.Lock()
	l.frames = append(l.frames, entry)
	l.mu.Unlock()
	return Once(func() {
		l.mu.Lock()
		entry.cancelled = true
		l.mu.Unlock()
	})
}

// Run drives the loop until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return fmt.Errorf("loop is already running")
	}
	defer l.running.Store(false)

	for {
		frameStart := time.Now()

		// Process events for up to half the frame budget (non-blocking)
		eventDeadline := frameStart.Add(l.frameDuration / 2)
		for time.Now().Before(eventDeadline) {
			select {
			case handler := <-l.queue:
				handler()
				continue
			case <-l.stopCh:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			break
		}

		l.runFrame()

		elapsed := time.Since(frameStart)
		if elapsed < l.frameDuration {
			timer := time.NewTimer(l.frameDuration - elapsed)
			select {
			case <-timer.C:
			case <-l.stopCh:
				timer.Stop()
				return nil
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}
}

// runFrame runs the callbacks queued before this frame started. Callbacks
// requested while the frame runs wait for the next one.
func (l *Loop) runFrame() {
	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.mu.Unlock()

	if len(frames) > 0 {
		debug.Log("loop: running %d frame callbacks", len(frames))
	}
	for _, f := range frames {
		l.mu.Lock()
		cancelled := f.cancelled
		l.mu.Unlock()
		if !cancelled {
			f.fn()
		}
	}
}

// Stop signals Run to return. Stop is idempotent - multiple calls are safe.
func (l *Loop) Stop() {
	l.stop.Do(func() { close(l.stopCh) })
}
