package schedule

import (
	"container/heap"
	"time"
)

// Virtual is a deterministic Scheduler whose time only moves when Advance is called.
// Due callbacks run on the goroutine calling Advance, ordered by due time and
// then by the order they were scheduled.
type Virtual struct {
	start time.Time
	now   time.Time
	frame time.Duration
	seq   uint64
	tasks taskHeap
}

type virtualTask struct {
	due       time.Time
	seq       uint64
	fn        func()
	cancelled bool
	ran       bool
}

// NewVirtual creates a virtual scheduler starting at start.
// A zero frame uses DefaultFrame.
func NewVirtual(start time.Time, frame time.Duration) *Virtual {
	if frame <= 0 {
		frame = DefaultFrame
	}
	return &Virtual{
		start: start,
		now:   start,
		frame: frame,
	}
}

// AfterFunc schedules fn to run once d has elapsed on the virtual clock.
func (v *Virtual) AfterFunc(d time.Duration, fn func()) Cancel {
	if d < 0 {
		d = 0
	}
	v.seq++
	t := &virtualTask{due: v.now.Add(d), seq: v.seq, fn: fn}
	heap.Push(&v.tasks, t)

	return func() bool {
		if t.cancelled || t.ran {
			return false
		}
		t.cancelled = true
		return true
	}
}

// NextFrame schedules fn one frame interval from now.
func (v *Virtual) NextFrame(fn func()) Cancel {
	return v.AfterFunc(v.frame, fn)
}

// Now returns the virtual time.
func (v *Virtual) Now() time.Time {
	return v.now
}

// Elapsed returns the virtual time passed since the scheduler was created.
func (v *Virtual) Elapsed() time.Duration {
	return v.now.Sub(v.start)
}

// Advance moves the clock forward by d, running every callback that becomes due.
// Callbacks scheduled while advancing run too if they fall due within the window.
// Returns the number of callbacks run.
func (v *Virtual) Advance(d time.Duration) int {
	target := v.now.Add(d)
	ran := 0

	for v.tasks.Len() > 0 {
		next := v.tasks[0]
		if next.due.After(target) {
			break
		}
		heap.Pop(&v.tasks)
		if next.cancelled {
			continue
		}
		if next.due.After(v.now) {
			v.now = next.due
		}
		next.ran = true
		next.fn()
		ran++
	}

	v.now = target
	return ran
}

// RunUntilIdle advances until no callbacks remain or limit has passed.
// Returns the virtual time consumed.
func (v *Virtual) RunUntilIdle(limit time.Duration) time.Duration {
	began := v.now
	deadline := began.Add(limit)

	for {
		next, ok := v.nextDue()
		if !ok || next.After(deadline) {
			break
		}
		v.Advance(next.Sub(v.now))
	}

	return v.now.Sub(began)
}

// Pending returns the number of callbacks still scheduled.
func (v *Virtual) Pending() int {
	n := 0
	for _, t := range v.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// nextDue returns the due time of the earliest live callback.
func (v *Virtual) nextDue() (time.Time, bool) {
	for v.tasks.Len() > 0 {
		if v.tasks[0].cancelled {
			heap.Pop(&v.tasks)
			continue
		}
		return v.tasks[0].due, true
	}
	return time.Time{}, false
}

// taskHeap orders tasks by due time, then scheduling order.
type taskHeap []*virtualTask

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) { *h = append(*h, x.(*virtualTask)) }

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
