package display

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"

	"github.com/jmylchreest/toasty/internal/schedule"
)

// Scheduler runs toast timers as glib timeout sources, so every callback
// executes on the GTK main loop.
type Scheduler struct {
	frame time.Duration
}

// NewScheduler creates a glib scheduler. A zero frame uses schedule.DefaultFrame.
func NewScheduler(frame time.Duration) *Scheduler {
	if frame <= 0 {
		frame = schedule.DefaultFrame
	}
	return &Scheduler{frame: frame}
}

// AfterFunc runs fn on the main loop once d has elapsed.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) schedule.Cancel {
	// Only touched on the main loop
	done := false
	handle := glib.TimeoutAdd(uint(max(d.Milliseconds(), 0)), func() bool {
		done = true
		fn()
		return false
	})

	return func() bool {
		if done {
			return false
		}
		done = true
		glib.SourceRemove(handle)
		return true
	}
}

// NextFrame runs fn on the main loop one frame interval from now.
func (s *Scheduler) NextFrame(fn func()) schedule.Cancel {
	return s.AfterFunc(s.frame, fn)
}

// Now returns the wall clock time.
func (s *Scheduler) Now() time.Time {
	return time.Now()
}
