package toast

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/schedule"
	"github.com/jmylchreest/toasty/internal/surface"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	mgr     *Manager
	sched   *schedule.Virtual
	tree    *surface.Tree
	page    *surface.Page
	changes []Change
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sched: schedule.NewVirtual(epoch, 16*time.Millisecond),
		tree:  surface.NewTree(),
		page:  surface.NewPage(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.mgr = NewManager(f.tree, f.page, f.sched, config.DefaultConfig(), logger)
	f.mgr.Subscribe(func(c Change) { f.changes = append(f.changes, c) })
	return f
}

// at advances the scheduler to the given offset from epoch.
func (f *fixture) at(t *testing.T, ms int) {
	t.Helper()
	target := time.Duration(ms) * time.Millisecond
	require.GreaterOrEqual(t, target, f.sched.Elapsed())
	f.sched.Advance(target - f.sched.Elapsed())
}

func (f *fixture) kinds() []ChangeKind {
	var out []ChangeKind
	for _, c := range f.changes {
		out = append(out, c.Kind)
	}
	return out
}

func TestNotify_FullLifecycle(t *testing.T) {
	f := newFixture(t)
	toast := f.mgr.Notify("Saved", CategorySuccess)

	assert.Equal(t, StateEntering, toast.State())
	assert.Equal(t, "Saved", toast.Message())
	assert.NotEmpty(t, toast.ID())
	assert.Equal(t, epoch, toast.CreatedAt())
	assert.Equal(t, 0.0, toast.Node().Style.Opacity)
	assert.Equal(t, -100.0, toast.Node().Style.TranslateY)

	f.at(t, 16)
	assert.Equal(t, StateVisible, toast.State())
	assert.Equal(t, 1.0, toast.Node().Style.Opacity)
	assert.Equal(t, 0.0, toast.Node().Style.TranslateY)
	assert.Equal(t, "successCheckmarkIn", IconSymbol(toast.Node()).Animation.Name)

	f.at(t, 2999)
	assert.Equal(t, StateVisible, toast.State())

	f.at(t, 3000)
	assert.Equal(t, StateExiting, toast.State())
	assert.Equal(t, "successBackgroundOut", IconBackground(toast.Node()).Animation.Name)
	assert.Equal(t, 1.0, toast.Node().Style.Opacity)

	f.at(t, 3200)
	assert.Equal(t, 0.0, toast.Node().Style.Opacity)
	assert.Equal(t, 100.0, toast.Node().Style.TranslateX)
	assert.True(t, f.mgr.HasContainer())

	f.at(t, 3599)
	assert.Equal(t, StateExiting, toast.State())

	f.at(t, 3600)
	assert.Equal(t, StateRemoved, toast.State())
	assert.False(t, f.mgr.HasContainer())
	assert.Empty(t, f.tree.Roots())
	assert.Equal(t, 0, f.sched.Pending())

	assert.Equal(t, []ChangeKind{
		ChangeContainerCreated,
		ChangeCreated,
		ChangeTransition, // entering -> visible
		ChangeTransition, // visible -> exiting
		ChangeTransition, // fade-out
		ChangeTransition, // exiting -> removed
		ChangeContainerDestroyed,
	}, f.kinds())
}

func TestNotify_EmptyMessageUsesDefault(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, config.DefaultErrorMessage, f.mgr.Notify("   ", CategoryError).Message())
	assert.Equal(t, config.DefaultOKMessage, f.mgr.Notify("", CategorySuccess).Message())

	def := f.mgr.NotifyDefault()
	assert.Equal(t, CategoryError, def.Category())
	assert.Equal(t, config.DefaultErrorMessage, def.Message())
	assert.True(t, IconSymbol(def.Node()).HasClass("icon-cross"))
}

func TestNotify_StacksInCreationOrder(t *testing.T) {
	f := newFixture(t)
	a := f.mgr.Notify("a", CategoryError)
	f.at(t, 100)
	b := f.mgr.Notify("b", CategorySuccess)
	c := f.mgr.Notify("c", CategoryError)

	require.Len(t, f.tree.Roots(), 1)
	container := f.mgr.ContainerNode()
	assert.Equal(t, []*surface.Node{a.Node(), b.Node(), c.Node()}, container.Children())
	assert.Equal(t, []*Toast{a, b, c}, f.mgr.Active())

	// Each toast keeps its own timer
	f.at(t, 3600)
	assert.Equal(t, StateRemoved, a.State())
	assert.Equal(t, StateExiting, b.State())
	assert.Equal(t, []*Toast{b, c}, f.mgr.Active())

	f.at(t, 3700)
	assert.False(t, f.mgr.HasContainer())
	assert.Nil(t, f.mgr.Active())
}

func TestHover_BlocksExitIndefinitely(t *testing.T) {
	f := newFixture(t)
	toast := f.mgr.Notify("hold", CategoryError)

	f.at(t, 1000)
	f.mgr.PointerEnter(toast)
	assert.Equal(t, StatePaused, toast.State())
	assert.Equal(t, 1.02, toast.Node().Style.Scale)

	f.at(t, 60_000)
	assert.Equal(t, StatePaused, toast.State())
	assert.True(t, f.mgr.HasContainer())
	assert.Equal(t, 0, f.sched.Pending())
}

func TestHover_ResumeUsesShorterTimer(t *testing.T) {
	f := newFixture(t)
	toast := f.mgr.Notify("hold", CategoryError)

	f.at(t, 1000)
	f.mgr.PointerEnter(toast)
	f.at(t, 5000)
	f.mgr.PointerLeave(toast)
	assert.Equal(t, StateVisible, toast.State())
	assert.Equal(t, 1.0, toast.Node().Style.Scale)

	f.at(t, 6999)
	assert.Equal(t, StateVisible, toast.State())
	f.at(t, 7000)
	assert.Equal(t, StateExiting, toast.State())
	f.at(t, 7600)
	assert.Equal(t, StateRemoved, toast.State())
}

func TestHover_RepeatedResumeKeepsOneTimer(t *testing.T) {
	f := newFixture(t)
	toast := f.mgr.Notify("hold", CategoryError)

	f.at(t, 100)
	for range 5 {
		f.mgr.PointerEnter(toast)
		f.mgr.PointerLeave(toast)
	}
	assert.Equal(t, 1, f.sched.Pending())

	f.at(t, 2100)
	assert.Equal(t, StateExiting, toast.State())
}

func TestHover_DuringEntering(t *testing.T) {
	f := newFixture(t)
	toast := f.mgr.Notify("early", CategoryError)

	f.mgr.PointerEnter(toast)
	assert.Equal(t, StatePaused, toast.State())

	// The first frame still reveals a hovered toast
	f.at(t, 16)
	assert.Equal(t, StatePaused, toast.State())
	assert.Equal(t, 1.0, toast.Node().Style.Opacity)

	f.at(t, 10_000)
	assert.Equal(t, StatePaused, toast.State())
}

func TestHover_EnterAndLeaveBeforeFirstFrame(t *testing.T) {
	f := newFixture(t)
	toast := f.mgr.Notify("brief", CategoryError)

	f.mgr.PointerEnter(toast)
	f.mgr.PointerLeave(toast)
	assert.Equal(t, StateVisible, toast.State())
	assert.Equal(t, 0.0, toast.Node().Style.Opacity)

	f.at(t, 16)
	assert.Equal(t, StateVisible, toast.State())
	assert.Equal(t, 1.0, toast.Node().Style.Opacity)
	assert.Equal(t, 0.0, toast.Node().Style.TranslateY)
	assert.Equal(t, "errorCrossIn", IconSymbol(toast.Node()).Animation.Name)

	// The resume timer armed on leave still runs
	f.at(t, 1999)
	assert.Equal(t, StateVisible, toast.State())
	f.at(t, 2000)
	assert.Equal(t, StateExiting, toast.State())
}

func TestExiting_IgnoresPointer(t *testing.T) {
	f := newFixture(t)
	toast := f.mgr.Notify("bye", CategoryError)

	f.at(t, 3100)
	require.Equal(t, StateExiting, toast.State())
	f.mgr.PointerEnter(toast)
	f.mgr.PointerLeave(toast)
	assert.Equal(t, StateExiting, toast.State())

	f.at(t, 3600)
	assert.Equal(t, StateRemoved, toast.State())

	// Events after removal are ignored
	f.mgr.PointerEnter(toast)
	f.mgr.PointerLeave(toast)
	assert.Equal(t, StateRemoved, toast.State())
	assert.Equal(t, 0, f.sched.Pending())
}

func TestPointer_NilToastIsNoop(t *testing.T) {
	f := newFixture(t)
	f.mgr.PointerEnter(nil)
	f.mgr.PointerLeave(nil)
	assert.False(t, f.mgr.HasContainer())
}

func TestContainer_ExistsOnlyWhileActive(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.mgr.HasContainer())
	assert.Nil(t, f.mgr.ContainerNode())
	assert.Equal(t, 0, f.mgr.Offset())

	first := f.mgr.Notify("one", CategoryError)
	assert.True(t, f.mgr.HasContainer())
	assert.True(t, f.tree.Mounted(f.mgr.ContainerNode()))
	f.at(t, 3600)
	assert.Equal(t, StateRemoved, first.State())
	assert.False(t, f.mgr.HasContainer())

	// A new toast after teardown creates a fresh container
	second := f.mgr.Notify("two", CategoryError)
	assert.True(t, f.mgr.HasContainer())
	assert.Same(t, f.mgr.ContainerNode(), second.Node().Parent())
	assert.Len(t, f.tree.Roots(), 1)
}

func TestContainer_ScrollListenerScopedToLifetime(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, 0, f.page.Listeners())

	f.mgr.Notify("one", CategoryError)
	f.mgr.Notify("two", CategoryError)
	assert.Equal(t, 1, f.page.Listeners())

	f.at(t, 3600)
	assert.Equal(t, 0, f.page.Listeners())

	// Scrolling after teardown neither fails nor recreates the container
	f.page.ScrollTo(500)
	assert.False(t, f.mgr.HasContainer())
}

func TestContainer_Style(t *testing.T) {
	f := newFixture(t)
	f.mgr.Notify("one", CategoryError)

	style := f.mgr.ContainerNode().Style
	assert.Equal(t, surface.PositionFixed, style.Position)
	assert.True(t, style.CenterX)
	assert.Equal(t, 10, style.Gap)
	assert.False(t, style.PointerEvents)
	assert.Equal(t, 20, style.Top)
}

func TestOffset_FollowsObstruction(t *testing.T) {
	f := newFixture(t)
	f.page.SetElement("nav", surface.Obstruction{Height: 60})

	f.mgr.Notify("one", CategoryError)
	assert.Equal(t, 80, f.mgr.Offset())
	assert.Equal(t, 80, f.mgr.ContainerNode().Style.Top)

	f.page.ScrollTo(30)
	assert.Equal(t, 80, f.mgr.Offset())

	f.page.ScrollTo(60)
	assert.Equal(t, 20, f.mgr.Offset())
	assert.Equal(t, 20, f.mgr.ContainerNode().Style.Top)

	f.page.ScrollTo(0)
	assert.Equal(t, 80, f.mgr.Offset())

	// A class toggle is picked up on the next scroll event
	f.page.ToggleClass("nav", "nav-hidden")
	assert.Equal(t, 80, f.mgr.Offset())
	f.page.ScrollTo(0)
	assert.Equal(t, 20, f.mgr.Offset())

	var offsets []int
	for _, c := range f.changes {
		if c.Kind == ChangeOffset {
			offsets = append(offsets, c.Offset)
		}
	}
	assert.Equal(t, []int{20, 80, 20}, offsets)
}

func TestOnRemoved(t *testing.T) {
	f := newFixture(t)
	toast := f.mgr.Notify("one", CategoryError)

	var calls []bool
	toast.OnRemoved(func() { calls = append(calls, f.mgr.HasContainer()) })

	f.at(t, 3600)
	require.Len(t, calls, 1)
	assert.True(t, calls[0], "callbacks run before the container is released")

	late := false
	toast.OnRemoved(func() { late = true })
	assert.True(t, late)
}

func TestOnRemoved_NotifyKeepsContainer(t *testing.T) {
	f := newFixture(t)
	first := f.mgr.Notify("one", CategoryError)

	var next *Toast
	first.OnRemoved(func() { next = f.mgr.Notify("two", CategorySuccess) })

	f.at(t, 3600)
	require.NotNil(t, next)
	assert.True(t, f.mgr.HasContainer())
	assert.Equal(t, []*Toast{next}, f.mgr.Active())

	destroyed := 0
	for _, c := range f.changes {
		if c.Kind == ChangeContainerDestroyed {
			destroyed++
		}
	}
	assert.Equal(t, 0, destroyed)
}

func TestShutdown(t *testing.T) {
	f := newFixture(t)
	a := f.mgr.Notify("a", CategoryError)
	b := f.mgr.Notify("b", CategorySuccess)
	f.mgr.PointerEnter(b)

	f.changes = nil
	f.mgr.Shutdown()
	assert.Equal(t, StateRemoved, a.State())
	assert.Equal(t, StateRemoved, b.State())

	var removed []Change
	for _, c := range f.changes {
		if c.Kind == ChangeTransition {
			removed = append(removed, c)
		}
	}
	require.Len(t, removed, 2)
	assert.Equal(t, a.ID(), removed[0].ToastID)
	assert.Equal(t, StateEntering, removed[0].From)
	assert.Equal(t, b.ID(), removed[1].ToastID)
	assert.Equal(t, StatePaused, removed[1].From)
	for _, c := range removed {
		assert.Equal(t, EventDetach, c.Event)
		assert.Equal(t, StateRemoved, c.To)
	}
	assert.Equal(t, ChangeContainerDestroyed, f.changes[len(f.changes)-1].Kind)
	assert.False(t, f.mgr.HasContainer())
	assert.Equal(t, 0, f.page.Listeners())
	assert.Equal(t, 0, f.sched.Pending())

	f.mgr.Shutdown()
	f.at(t, 10_000)
	assert.False(t, f.mgr.HasContainer())
}

func TestUpdateConfig(t *testing.T) {
	f := newFixture(t)
	f.page.SetElement("nav", surface.Obstruction{Height: 60})
	first := f.mgr.Notify("one", CategoryError)

	cfg := config.DefaultConfig()
	cfg.Timing.AutoDismiss = config.Duration(time.Second)
	cfg.Layout.ObstructionGap = 4
	f.mgr.UpdateConfig(cfg)
	f.mgr.UpdateConfig(nil)

	assert.Same(t, cfg, f.mgr.Config())
	assert.Equal(t, 64, f.mgr.Offset())

	second := f.mgr.Notify("two", CategoryError)
	f.at(t, 1000)
	assert.Equal(t, StateExiting, second.State())
	assert.Equal(t, StateVisible, first.State(), "armed timers keep their duration")
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	f := newFixture(t)
	count := 0
	unsubscribe := f.mgr.Subscribe(func(Change) { count++ })

	f.mgr.Notify("one", CategoryError)
	seen := count
	assert.Positive(t, seen)

	unsubscribe()
	f.at(t, 3600)
	assert.Equal(t, seen, count)
}

func TestFind(t *testing.T) {
	f := newFixture(t)
	assert.Nil(t, f.mgr.Find(nil))

	toast := f.mgr.Notify("one", CategoryError)
	assert.Same(t, toast, f.mgr.Find(toast.Node()))
	assert.Nil(t, f.mgr.Find(surface.NewNode(surface.RoleToast)))
}

func TestChangeKind_String(t *testing.T) {
	assert.Equal(t, "container-destroyed", ChangeContainerDestroyed.String())
	assert.Equal(t, "unknown", ChangeKind(42).String())
}
