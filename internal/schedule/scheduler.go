package schedule

import "time"

// DefaultFrame is the animation frame interval used when none is configured.
const DefaultFrame = 16 * time.Millisecond

// Cancel stops a scheduled callback.
// It reports whether the callback was still pending.
type Cancel func() bool

// Scheduler arms one-shot callbacks.
// Callbacks never run concurrently with each other or with the loop that owns the scheduler.
type Scheduler interface {
	// AfterFunc runs fn once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Cancel
	// NextFrame runs fn on the next animation frame.
	NextFrame(fn func()) Cancel
	// Now returns the scheduler's current time.
	Now() time.Time
}

// Stop cancels c if it is non-nil and reports whether a callback was pending.
func Stop(c Cancel) bool {
	if c == nil {
		return false
	}
	return c()
}
