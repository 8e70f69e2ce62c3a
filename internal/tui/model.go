// Package tui provides the BubbleTea-based terminal demo: a scrollable page
// with a navigation bar and a toast stack drawn over it.
package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/schedule"
	"github.com/jmylchreest/toasty/internal/surface"
	"github.com/jmylchreest/toasty/internal/toast"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModePage Mode = iota
	ModePrompt
)

// wheelStep is the number of lines one mouse wheel notch scrolls.
const wheelStep = 3

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg    *config.Config
	logger *slog.Logger

	// Toasts
	mgr  *toast.Manager
	page *surface.Page
	loop *schedule.Loop // nil when timers are driven externally

	// Current mode
	mode           Mode
	promptCategory toast.Category

	// Key bindings
	keys KeyMap

	// Components
	viewport viewport.Model
	prompt   textinput.Model
	help     help.Model

	// State
	width       int
	height      int
	ready       bool
	hovered     *toast.Toast
	pointerX    int
	pointerY    int
	pointerSeen bool

	// Status message
	statusMsg string
	statusErr bool
}

// New creates a TUI model whose timers run on the real clock.
func New(cfg *config.Config, logger *slog.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	loop := schedule.NewLoop(nil, cfg.Timing.Frame.Duration())
	m := newModel(cfg, loop, logger)
	m.loop = loop
	return m
}

// newModel creates a model on the given scheduler.
func newModel(cfg *config.Config, sched schedule.Scheduler, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	page := surface.NewPage()
	page.SetElement(cfg.Layout.ObstructionSelector, surface.Obstruction{
		Height: cfg.TUI.NavRows * cfg.TUI.CellHeight,
	})

	prompt := textinput.New()
	prompt.Placeholder = "message (empty uses the default)"
	prompt.CharLimit = 120

	return Model{
		cfg:    cfg,
		logger: logger,
		mgr:    toast.NewManager(surface.NewTree(), page, sched, cfg, logger),
		page:   page,
		mode:   ModePage,
		keys:   DefaultKeyMap(),
		prompt: prompt,
		help:   help.New(),
	}
}

// Manager returns the toast manager driven by the model.
func (m Model) Manager() *toast.Manager {
	return m.mgr
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return m.waitForTimers()
}

// waitForTimers blocks until the loop has queued timer callbacks.
func (m Model) waitForTimers() tea.Cmd {
	if m.loop == nil {
		return nil
	}
	wake := m.loop.Wait()
	return func() tea.Msg {
		<-wake
		return timersMsg{}
	}
}

type timersMsg struct{}

type configReloadedMsg struct {
	cfg *config.Config
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height)
			m.ready = true
		}
		m.viewport.Width = msg.Width
		m.help.Width = msg.Width
		m.refreshPage()
		m.resize()
		return m, nil

	case timersMsg:
		if m.loop != nil {
			m.loop.RunPending()
		}
		m.afterLayoutChange()
		return m, m.waitForTimers()

	case configReloadedMsg:
		m.mgr.UpdateConfig(msg.cfg)
		m.afterLayoutChange()
		return m, status("Configuration reloaded", false)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		m.resize()
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		m.resize()
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModePrompt {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.mgr.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()

	case key.Matches(msg, m.keys.Error):
		m.mgr.NotifyDefault()
		m.afterLayoutChange()

	case key.Matches(msg, m.keys.Success):
		m.mgr.Notify("", toast.CategorySuccess)
		m.afterLayoutChange()

	case key.Matches(msg, m.keys.Prompt):
		m.mode = ModePrompt
		m.promptCategory = toast.CategoryError
		m.prompt.SetValue("")
		m.resize()
		cmd := m.prompt.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ToggleNav):
		m.toggleNav()

	case key.Matches(msg, m.keys.Up):
		m.scrollTo(m.viewport.YOffset - 1)
	case key.Matches(msg, m.keys.Down):
		m.scrollTo(m.viewport.YOffset + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollTo(m.viewport.YOffset - m.viewport.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollTo(m.viewport.YOffset + m.viewport.Height)
	case key.Matches(msg, m.keys.Home):
		m.scrollTo(0)
	case key.Matches(msg, m.keys.End):
		m.scrollTo(m.viewport.TotalLineCount())
	}

	return m, nil
}

// handlePromptKey handles keys while typing a message.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.mgr.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.mgr.Notify(m.prompt.Value(), m.promptCategory)
		m.closePrompt()
		m.afterLayoutChange()
		return m, nil

	case key.Matches(msg, m.keys.Category):
		if m.promptCategory == toast.CategoryError {
			m.promptCategory = toast.CategorySuccess
		} else {
			m.promptCategory = toast.CategoryError
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.mode = ModePage
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.resize()
}

// handleMouse scrolls on the wheel and tracks the pointer for hover.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollTo(m.viewport.YOffset - wheelStep)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollTo(m.viewport.YOffset + wheelStep)
		return m, nil
	}

	m.pointerX, m.pointerY = msg.X, msg.Y
	m.pointerSeen = true
	m.updateHover()
	return m, nil
}

// scrollTo moves the page and dispatches a scroll event when it moved.
func (m *Model) scrollTo(line int) {
	before := m.viewport.YOffset
	m.viewport.SetYOffset(line)
	if m.viewport.YOffset == before {
		return
	}
	m.page.ScrollTo(m.viewport.YOffset * m.cfg.TUI.CellHeight)
	m.afterLayoutChange()
}

// toggleNav flips the nav hidden class. The page has no class observer, so
// a scroll event is dispatched at the current position to reposition the stack.
func (m *Model) toggleNav() {
	hidden := m.page.ToggleClass(m.cfg.Layout.ObstructionSelector, m.cfg.Layout.HiddenClass)
	m.logger.Debug("nav toggled", "hidden", hidden)

	m.refreshPage()
	m.page.ScrollTo(m.page.ScrollY())
	m.afterLayoutChange()
}

// navHidden reports whether the nav carries the hidden class.
func (m Model) navHidden() bool {
	o, ok := m.page.Query(m.cfg.Layout.ObstructionSelector)
	return ok && o.HasClass(m.cfg.Layout.HiddenClass)
}

// refreshPage re-renders the document into the viewport.
func (m *Model) refreshPage() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderPage(m.width, m.cfg.TUI.NavRows, m.cfg.TUI.PageLines, m.navHidden()))
}

// resize fits the viewport above the footer.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	m.viewport.Height = max(m.height-lipgloss.Height(m.footer()), 1)
}

// afterLayoutChange re-runs hover detection because the stack may have
// moved under a stationary pointer.
func (m *Model) afterLayoutChange() {
	if m.hovered != nil && !m.hovered.State().Active() {
		m.hovered = nil
	}
	if m.pointerSeen {
		m.updateHover()
	}
}

// updateHover delivers pointer enter and leave as the hovered toast changes.
func (m *Model) updateHover() {
	var hit *toast.Toast
	for _, p := range m.placements() {
		if p.toast.Node().Style.PointerEvents && p.contains(m.pointerX, m.pointerY) {
			hit = p.toast
			break
		}
	}
	if hit == m.hovered {
		return
	}

	if m.hovered != nil {
		m.mgr.PointerLeave(m.hovered)
	}
	if hit != nil {
		m.mgr.PointerEnter(hit)
	}
	m.hovered = hit
}

func (m Model) placements() []placement {
	return layoutStack(m.mgr.ContainerNode(), m.mgr.Active(), m.width, m.cfg.TUI.CellHeight)
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	view := m.viewport.View() + "\n" + m.footer()
	for _, p := range m.placements() {
		view = Place(view, p.block, p.row, p.col, m.width)
	}
	return view
}

// footer renders the prompt, the status message or the help bar.
func (m Model) footer() string {
	if m.mode == ModePrompt {
		category := lipgloss.NewStyle().Foreground(errorColor).Render(m.promptCategory.String())
		if m.promptCategory == toast.CategorySuccess {
			category = lipgloss.NewStyle().Foreground(successColor).Render(m.promptCategory.String())
		}
		return m.prompt.View() + " " + category + "  " + m.help.ShortHelpView(m.keys.promptHelp())
	}

	if m.statusMsg != "" {
		style := statusStyle
		if m.statusErr {
			style = style.Foreground(errorColor)
		}
		return style.Render(m.statusMsg)
	}

	info := fmt.Sprintf("%d active", len(m.mgr.Active()))
	if m.mgr.HasContainer() {
		info += fmt.Sprintf(" · offset %dpx", m.mgr.Offset())
	}
	info = lipgloss.NewStyle().Foreground(mutedColor).Render(info)

	return m.help.View(m.keys) + "  " + info
}
