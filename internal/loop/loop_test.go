package loop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestNew_ValidatesOptions(t *testing.T) {
	type tc struct {
		opts    []Option
		wantErr bool
	}

	tests := map[string]tc{
		"defaults":            {},
		"valid frame rate":    {opts: []Option{WithFrameRate(120)}},
		"zero frame rate":     {opts: []Option{WithFrameRate(0)}, wantErr: true},
		"frame rate too high": {opts: []Option{WithFrameRate(500)}, wantErr: true},
		"zero queue size":     {opts: []Option{WithQueueSize(0)}, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(tt.opts...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoop_RunsPostsTimersAndFrames(t *testing.T) {
	defer goleak.VerifyNone(t)

	l, err := New(WithFrameRate(240))
	require.NoError(t, err)

	var posted, timed, framed atomic.Int32
	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	l.Post(func() {
		posted.Add(1)
		l.RequestFrame(func() { framed.Add(1) })
	})
	l.AfterFunc(5*time.Millisecond, func() { timed.Add(1) })

	require.Eventually(t, func() bool {
		return posted.Load() == 1 && timed.Load() == 1 && framed.Load() == 1
	}, time.Second, time.Millisecond)

	l.Stop()
	l.Stop()
	require.NoError(t, <-done)
}

func TestLoop_CancelledTimerDoesNotRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	l, err := New()
	require.NoError(t, err)

	var fired atomic.Bool
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	stop := l.AfterFunc(10*time.Millisecond, func() { fired.Store(true) })
	stop()

	time.Sleep(40 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.False(t, fired.Load())
}

func TestLoop_RunTwiceFails(t *testing.T) {
	defer goleak.VerifyNone(t)

	l, err := New()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()
	require.Eventually(t, l.running.Load, time.Second, time.Millisecond)

	assert.Error(t, l.Run(context.Background()))

	l.Stop()
	require.NoError(t, <-done)
}
