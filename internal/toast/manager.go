package toast

import (
	"crypto/rand"
	"log/slog"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/schedule"
	"github.com/jmylchreest/toasty/internal/surface"
)

// ChangeKind identifies an observable manager event.
type ChangeKind int

const (
	// ChangeCreated is a toast being shown.
	ChangeCreated ChangeKind = iota
	// ChangeTransition is a toast changing state.
	ChangeTransition
	// ChangeContainerCreated is the stacking container being created.
	ChangeContainerCreated
	// ChangeContainerDestroyed is the stacking container being torn down.
	ChangeContainerDestroyed
	// ChangeOffset is the container moving.
	ChangeOffset
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeTransition:
		return "transition"
	case ChangeContainerCreated:
		return "container-created"
	case ChangeContainerDestroyed:
		return "container-destroyed"
	case ChangeOffset:
		return "offset"
	default:
		return "unknown"
	}
}

// Change describes something that happened in the manager.
type Change struct {
	At       time.Time
	Kind     ChangeKind
	ToastID  string
	Category Category
	Message  string
	Event    Event
	From     State
	To       State
	Offset   int
}

type subscriber struct {
	id int
	fn func(Change)
}

// Manager owns the stacking container and every toast it hosts.
type Manager struct {
	cfg       *config.Config
	logger    *slog.Logger
	surface   surface.Surface
	viewport  surface.Viewport
	scheduler schedule.Scheduler
	presenter Presenter
	tracker   *PositionTracker

	container *container

	subscribers []subscriber
	nextSub     int
}

// NewManager creates a toast manager drawing on s and timing with sched.
// A nil viewport is an empty page; nil cfg and logger use defaults.
func NewManager(s surface.Surface, viewport surface.Viewport, sched schedule.Scheduler, cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if viewport == nil {
		viewport = surface.NewPage()
	}

	return &Manager{
		cfg:       cfg,
		logger:    logger,
		surface:   s,
		viewport:  viewport,
		scheduler: sched,
		presenter: DefaultPresenter{},
		tracker:   NewPositionTracker(viewport, cfg.Layout),
	}
}

// Subscribe registers fn for every Change. The returned func unsubscribes.
func (m *Manager) Subscribe(fn func(Change)) func() {
	m.nextSub++
	id := m.nextSub
	m.subscribers = append(m.subscribers, subscriber{id: id, fn: fn})

	return func() {
		m.subscribers = slices.DeleteFunc(m.subscribers, func(s subscriber) bool {
			return s.id == id
		})
	}
}

func (m *Manager) emit(c Change) {
	c.At = m.scheduler.Now()
	for _, s := range slices.Clone(m.subscribers) {
		s.fn(c)
	}
}

// Notify shows a toast and returns its handle. It never fails: an empty or
// whitespace-only message is replaced with the category default.
func (m *Manager) Notify(message string, category Category) *Toast {
	message = normalizeMessage(message, category, m.cfg.Messages)
	c := m.ensureContainer()

	now := m.scheduler.Now()
	t := &Toast{
		id:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		category:  category,
		message:   message,
		node:      m.presenter.Render(category, message),
		createdAt: now,
	}

	c.children = append(c.children, t)
	m.surface.SetStyle(t.node, t.style())
	m.surface.Append(c.node, t.node)

	m.logger.Debug("toast shown",
		"toast_id", t.id,
		"category", category,
		"position", len(c.children)-1,
	)
	m.emit(Change{Kind: ChangeCreated, ToastID: t.id, Category: category, Message: message, To: StateEntering})

	m.enter(t)
	return t
}

// NotifyDefault shows an error toast with the default message.
func (m *Manager) NotifyDefault() *Toast {
	return m.Notify("", CategoryError)
}

// PointerEnter delivers pointer-enter intent for t.
func (m *Manager) PointerEnter(t *Toast) {
	if t == nil {
		return
	}
	m.handle(t, EventPointerEnter)
}

// PointerLeave delivers pointer-leave intent for t.
func (m *Manager) PointerLeave(t *Toast) {
	if t == nil {
		return
	}
	m.handle(t, EventPointerLeave)
}

// Find returns the active toast whose root node is n.
func (m *Manager) Find(n *surface.Node) *Toast {
	if m.container == nil {
		return nil
	}
	for _, t := range m.container.children {
		if t.node == n {
			return t
		}
	}
	return nil
}

// Active returns the hosted toasts in stacking order.
func (m *Manager) Active() []*Toast {
	if m.container == nil {
		return nil
	}
	return slices.Clone(m.container.children)
}

// HasContainer reports whether the stacking container exists.
func (m *Manager) HasContainer() bool {
	return m.container != nil
}

// ContainerNode returns the container's node, or nil if there is none.
func (m *Manager) ContainerNode() *surface.Node {
	if m.container == nil {
		return nil
	}
	return m.container.node
}

// Offset returns the container's current offset, or 0 if there is none.
func (m *Manager) Offset() int {
	if m.container == nil {
		return 0
	}
	return m.container.offset
}

// Config returns the active configuration.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// UpdateConfig applies a reloaded configuration. Timers already armed keep
// their original durations; the container is restyled immediately.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.tracker.SetLayout(cfg.Layout)
	m.recomputeOffset()

	m.logger.Debug("toast manager config updated",
		"auto_dismiss", cfg.Timing.AutoDismiss.Duration(),
		"resume", cfg.Timing.Resume.Duration(),
	)
}

// Shutdown cancels every pending timer, detaches all toasts and destroys the container.
func (m *Manager) Shutdown() {
	c := m.container
	if c == nil {
		return
	}

	for _, t := range slices.Clone(c.children) {
		m.clearDismiss(t)
		schedule.Stop(t.frame)
		schedule.Stop(t.exit)
		t.frame, t.exit = nil, nil
		from := t.state
		t.state = StateRemoved
		m.emit(Change{Kind: ChangeTransition, ToastID: t.id, Event: EventDetach, From: from, To: StateRemoved})
		m.detach(t)
	}
	m.releaseIfEmpty()
}
