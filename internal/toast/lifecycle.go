package toast

import (
	"time"

	"github.com/jmylchreest/toasty/internal/schedule"
	"github.com/jmylchreest/toasty/internal/surface"
)

// pausedScale emphasizes a hovered toast.
const pausedScale = 1.02

// Toast is the handle for one displayed notification.
// It must not be relied on after it reaches StateRemoved.
type Toast struct {
	id        string
	category  Category
	message   string
	state     State
	node      *surface.Node
	createdAt time.Time

	revealed bool // first frame has applied visible styling
	faded    bool // exit fade has started

	dismiss schedule.Cancel // pending auto-dismiss timer, at most one
	frame   schedule.Cancel // pending entry frame
	exit    schedule.Cancel // pending exit continuation

	onRemoved []func()
}

// ID returns the toast's unique ID.
func (t *Toast) ID() string { return t.id }

// Category returns the toast's category.
func (t *Toast) Category() Category { return t.category }

// Message returns the displayed message, never empty.
func (t *Toast) Message() string { return t.message }

// State returns the current lifecycle state.
func (t *Toast) State() State { return t.state }

// Node returns the toast's root node.
func (t *Toast) Node() *surface.Node { return t.node }

// CreatedAt returns the scheduler time the toast was shown.
func (t *Toast) CreatedAt() time.Time { return t.createdAt }

// OnRemoved registers fn to run once the toast is detached.
// If the toast is already removed, fn runs immediately.
func (t *Toast) OnRemoved(fn func()) {
	if t.state == StateRemoved {
		fn()
		return
	}
	t.onRemoved = append(t.onRemoved, fn)
}

// style derives the toast's visual state from its lifecycle.
func (t *Toast) style() surface.Style {
	s := surface.Style{
		Position:      surface.PositionRelative,
		Opacity:       1,
		Scale:         1,
		PointerEvents: true,
	}
	switch {
	case t.faded:
		s.Opacity = 0
		s.TranslateX = 100
	case !t.revealed:
		s.Opacity = 0
		s.TranslateY = -100
	}
	if t.state == StatePaused {
		s.Scale = pausedScale
	}
	return s
}

// enter starts the lifecycle of a freshly attached toast.
func (m *Manager) enter(t *Toast) {
	t.state = StateEntering
	m.surface.SetStyle(t.node, t.style())

	t.frame = m.scheduler.NextFrame(func() {
		t.frame = nil
		m.handle(t, EventFrame)
	})
	m.armDismiss(t, m.cfg.Timing.AutoDismiss.Duration())
}

// armDismiss replaces any pending auto-dismiss timer with one firing after d.
func (m *Manager) armDismiss(t *Toast, d time.Duration) {
	schedule.Stop(t.dismiss)
	t.dismiss = m.scheduler.AfterFunc(d, func() {
		t.dismiss = nil
		m.handle(t, EventTimeout)
	})
}

// clearDismiss cancels the pending auto-dismiss timer.
func (m *Manager) clearDismiss(t *Toast) {
	schedule.Stop(t.dismiss)
	t.dismiss = nil
}

// handle applies e to t through the transition table and performs the
// side effects of the state entered.
func (m *Manager) handle(t *Toast, e Event) {
	from := t.state
	to, ok := Next(from, e)
	if !ok {
		// A hover during entry, even one already left, still lets the
		// first frame reveal the toast
		if e == EventFrame && !t.revealed && (from == StatePaused || from == StateVisible) {
			m.reveal(t)
			return
		}
		m.logger.Debug("toast event ignored", "toast_id", t.id, "state", from, "event", e)
		return
	}

	t.state = to
	m.logger.Debug("toast transition", "toast_id", t.id, "from", from, "to", to, "event", e)
	m.emit(Change{Kind: ChangeTransition, ToastID: t.id, Event: e, From: from, To: to})

	switch e {
	case EventFrame:
		m.reveal(t)

	case EventPointerEnter:
		m.clearDismiss(t)
		m.surface.SetStyle(t.node, t.style())

	case EventPointerLeave:
		m.surface.SetStyle(t.node, t.style())
		m.armDismiss(t, m.cfg.Timing.Resume.Duration())

	case EventTimeout:
		m.beginExit(t)

	case EventFadeOut:
		t.faded = true
		m.surface.SetStyle(t.node, t.style())
		t.exit = m.scheduler.AfterFunc(m.cfg.Timing.RemoveDelay.Duration(), func() {
			t.exit = nil
			m.handle(t, EventDetach)
		})

	case EventDetach:
		m.detach(t)
	}
}

// reveal applies visible styling and starts the icon entry animation.
func (m *Manager) reveal(t *Toast) {
	t.revealed = true
	m.surface.SetStyle(t.node, t.style())

	bg, symbol := iconAnimations(t.category, true)
	m.animateIcon(t, bg, symbol)
}

// beginExit starts the uncancellable exit sequence.
func (m *Manager) beginExit(t *Toast) {
	m.clearDismiss(t)
	schedule.Stop(t.frame)
	t.frame = nil

	bg, symbol := iconAnimations(t.category, false)
	m.animateIcon(t, bg, symbol)

	t.exit = m.scheduler.AfterFunc(m.cfg.Timing.ExitDelay.Duration(), func() {
		t.exit = nil
		m.handle(t, EventFadeOut)
	})
}

func (m *Manager) animateIcon(t *Toast, bg, symbol surface.Animation) {
	if n := IconBackground(t.node); n != nil {
		m.surface.SetAnimation(n, bg)
	}
	if n := IconSymbol(t.node); n != nil {
		m.surface.SetAnimation(n, symbol)
	}
}

// detach removes t from the container and tears the container down if t
// was its last child. Detaching an already detached toast is a no-op.
func (m *Manager) detach(t *Toast) {
	c := m.container
	if c != nil {
		if !m.surface.Remove(c.node, t.node) {
			m.logger.Debug("toast node already detached", "toast_id", t.id)
		}
		c.removeChild(t)
	}

	callbacks := t.onRemoved
	t.onRemoved = nil
	for _, fn := range callbacks {
		fn()
	}

	m.releaseIfEmpty()
}
