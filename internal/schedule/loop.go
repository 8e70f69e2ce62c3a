package schedule

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/mixer/clock"
)

// Loop is a Scheduler backed by a clock.Clock.
// Timers fire on clock goroutines; their callbacks are queued and only run
// when the owning event loop calls RunPending, so every callback executes on
// that loop. Wait signals when callbacks are queued.
type Loop struct {
	clock clock.Clock
	frame time.Duration

	mu    sync.Mutex
	ready []*loopTask
	wake  chan struct{}
}

type loopTask struct {
	fn   func()
	done atomic.Bool
}

// NewLoop creates a loop scheduler.
// A nil clock uses the real-time clock; a zero frame uses DefaultFrame.
func NewLoop(c clock.Clock, frame time.Duration) *Loop {
	if c == nil {
		c = clock.DefaultClock{}
	}
	if frame <= 0 {
		frame = DefaultFrame
	}
	return &Loop{
		clock: c,
		frame: frame,
		wake:  make(chan struct{}, 1),
	}
}

// AfterFunc queues fn for the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Cancel {
	t := &loopTask{fn: fn}
	timer := l.clock.AfterFunc(d, func() { l.enqueue(t) })

	return func() bool {
		timer.Stop()
		// Claiming the task here stops a callback that already fired
		// but has not yet been run by the loop.
		return t.done.CompareAndSwap(false, true)
	}
}

// NextFrame queues fn for the loop one frame interval from now.
func (l *Loop) NextFrame(fn func()) Cancel {
	return l.AfterFunc(l.frame, fn)
}

// Now returns the clock's current time.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// Wait returns a channel that receives when callbacks are ready to run.
func (l *Loop) Wait() <-chan struct{} {
	return l.wake
}

// RunPending runs every queued callback on the calling goroutine.
// Returns the number of callbacks run.
func (l *Loop) RunPending() int {
	l.mu.Lock()
	ready := l.ready
	l.ready = nil
	l.mu.Unlock()

	ran := 0
	for _, t := range ready {
		if !t.done.CompareAndSwap(false, true) {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

func (l *Loop) enqueue(t *loopTask) {
	l.mu.Lock()
	l.ready = append(l.ready, t)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}
