package scenario

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/schedule"
	"github.com/jmylchreest/toasty/internal/surface"
	"github.com/jmylchreest/toasty/internal/toast"
)

// idleLimit bounds the idle step so a paused toast cannot spin forever.
const idleLimit = time.Hour

// epoch is the virtual start time. Traces report offsets from it.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Runner executes scenarios against an in-memory surface.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRunner creates a runner. Nil cfg and logger use defaults.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// session is the state of one run.
type session struct {
	cfg    *config.Config
	sched  *schedule.Virtual
	page   *surface.Page
	mgr    *toast.Manager
	toasts map[string]*toast.Toast
	labels map[string]string // toast ID to label
	next   string            // label of the toast being created
	order  []string
	trace  *Trace
}

// Run executes sc and returns its trace. It stops early when ctx is done.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Trace, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	s := &session{
		cfg:    r.cfg,
		sched:  schedule.NewVirtual(epoch, r.cfg.Timing.Frame.Duration()),
		page:   surface.NewPage(),
		toasts: make(map[string]*toast.Toast),
		labels: make(map[string]string),
		trace:  &Trace{Name: sc.Name},
	}

	if nav := sc.Page.Nav; nav != nil {
		o := surface.Obstruction{Height: nav.Height}
		if nav.Hidden {
			o.Classes = []string{r.cfg.Layout.HiddenClass}
		}
		s.page.SetElement(r.cfg.Layout.ObstructionSelector, o)
	}
	s.page.ScrollTo(sc.Page.Scroll)

	s.mgr = toast.NewManager(surface.NewTree(), s.page, s.sched, r.cfg, r.logger)
	s.mgr.Subscribe(s.record)

	r.logger.Debug("running scenario", "name", sc.Name, "steps", len(sc.Steps))

	notified := 0
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return nil, &StepError{Index: i, Action: step.Action(), Err: err}
		}

		switch {
		case step.Notify != nil:
			notified++
			label := labelFor(step.Notify, notified)
			s.order = append(s.order, label)
			s.next = label
			s.toasts[label] = s.mgr.Notify(step.Notify.Message, step.Notify.Category)

		case step.Advance != nil:
			s.sched.Advance(time.Duration(*step.Advance))

		case step.Hover != "":
			s.mgr.PointerEnter(s.toasts[step.Hover])

		case step.Leave != "":
			s.mgr.PointerLeave(s.toasts[step.Leave])

		case step.Scroll != nil:
			s.page.ScrollTo(*step.Scroll)

		case step.ToggleNav:
			hidden := s.page.ToggleClass(r.cfg.Layout.ObstructionSelector, r.cfg.Layout.HiddenClass)
			r.logger.Debug("nav toggled", "hidden", hidden)

		case step.Idle:
			s.sched.RunUntilIdle(idleLimit)
		}
	}

	s.finish()
	return s.trace, nil
}

func (s *session) record(c toast.Change) {
	at := c.At.Sub(epoch)
	e := Entry{
		At:   at,
		AtMS: at.Milliseconds(),
		Kind: c.Kind.String(),
	}

	switch c.Kind {
	case toast.ChangeCreated:
		s.labels[c.ToastID] = s.next
		e.Toast = s.next
		e.Category = c.Category.String()
		e.Message = c.Message
		e.To = c.To.String()
	case toast.ChangeTransition:
		e.Toast = s.labels[c.ToastID]
		e.Event = c.Event.String()
		e.From = c.From.String()
		e.To = c.To.String()
	case toast.ChangeContainerCreated, toast.ChangeOffset:
		e.Offset = c.Offset
	}

	s.trace.Entries = append(s.trace.Entries, e)
}

func (s *session) finish() {
	s.trace.Elapsed = s.sched.Elapsed()
	s.trace.ElapsedMS = s.trace.Elapsed.Milliseconds()

	final := Final{
		Container: s.mgr.HasContainer(),
		Offset:    s.mgr.Offset(),
		States:    make(map[string]string, len(s.order)),
	}
	for _, t := range s.mgr.Active() {
		final.Active = append(final.Active, s.labels[t.ID()])
	}
	for _, label := range s.order {
		final.States[label] = s.toasts[label].State().String()
	}
	s.trace.Final = final
}
