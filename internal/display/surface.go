package display

import (
	"log/slog"
	"strings"
	"unicode"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/surface"
)

// Namespace is the layer-shell namespace of the container window.
const Namespace = "toasty-toasts"

// DisplayError represents a display-related error.
type DisplayError struct {
	Message string
	Cause   error
}

func (e *DisplayError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DisplayError) Unwrap() error {
	return e.Cause
}

// HoverFunc receives pointer enter (inside=true) and leave for a toast node.
type HoverFunc func(n *surface.Node, inside bool)

// widget is the GTK side of one node.
type widget struct {
	root    *gtk.Widget
	box     *gtk.Box     // set for nodes that stack children
	overlay *gtk.Overlay // set for the icon, which layers its children
	window  *gtk.Window  // set for the mounted container
	filled  bool         // overlay has its base child

	state []string // classes derived from the node style
	anim  string   // class of the running animation
}

// Surface mirrors the toast node tree into GTK widgets. The node tree
// itself is kept by an in-memory surface.Tree.
// All methods must be called on the GTK main loop.
type Surface struct {
	app     *gtk.Application
	cfg     config.PopupConfig
	logger  *slog.Logger
	tree    *surface.Tree
	widgets map[*surface.Node]*widget
	onHover HoverFunc
}

// NewSurface creates a surface whose windows belong to app.
func NewSurface(app *gtk.Application, cfg config.PopupConfig, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{
		app:     app,
		cfg:     cfg,
		logger:  logger,
		tree:    surface.NewTree(),
		widgets: make(map[*surface.Node]*widget),
	}
}

// SetHoverFunc sets the pointer callback for toast nodes.
func (s *Surface) SetHoverFunc(fn HoverFunc) {
	s.onHover = fn
}

// SetPopupConfig applies reloaded popup settings to the mounted container.
func (s *Surface) SetPopupConfig(cfg config.PopupConfig) {
	s.cfg = cfg
	for _, root := range s.tree.Roots() {
		if w := s.widgets[root]; w != nil && w.window != nil {
			w.window.SetDefaultSize(cfg.Width, -1)
			placeWindow(w.window, root.Style, cfg, s.logger)
		}
	}
}

// Mount creates the layer-shell window hosting root.
func (s *Surface) Mount(root *surface.Node) error {
	if s.widgets[root] != nil {
		return nil
	}

	window := gtk.NewWindow()
	window.SetApplication(s.app)
	window.SetDecorated(false)
	window.SetResizable(false)
	window.SetDefaultSize(s.cfg.Width, -1)
	window.AddCSSClass("toast-container")

	layershell.InitForWindow(window)
	layershell.SetLayer(window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(window, 0) // Don't reserve space
	layershell.SetKeyboardMode(window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(window, Namespace)

	box := gtk.NewBox(gtk.OrientationVertical, root.Style.Gap)
	for _, class := range root.Classes {
		box.AddCSSClass(class)
	}
	window.SetChild(box)

	w := &widget{root: &box.Widget, box: box, window: window}
	s.widgets[root] = w
	_ = s.tree.Mount(root)

	placeWindow(window, root.Style, s.cfg, s.logger)
	for _, child := range root.Children() {
		s.attach(w, s.build(child))
	}
	window.Present()

	s.logger.Debug("container window mounted", "node", root.ID, "top", root.Style.Top)
	return nil
}

// Unmount closes the window hosting root.
func (s *Surface) Unmount(root *surface.Node) {
	w := s.widgets[root]
	if w == nil || w.window == nil {
		return
	}
	s.forget(root)
	s.tree.Unmount(root)
	w.window.Close()
	s.logger.Debug("container window closed", "node", root.ID)
}

// Append builds widgets for child and its subtree under parent.
func (s *Surface) Append(parent, child *surface.Node) {
	s.tree.Append(parent, child)

	pw := s.widgets[parent]
	if pw == nil {
		return
	}
	s.attach(pw, s.build(child))
}

// Remove detaches child's widgets from parent.
func (s *Surface) Remove(parent, child *surface.Node) bool {
	if !s.tree.Remove(parent, child) {
		return false
	}

	pw, cw := s.widgets[parent], s.widgets[child]
	s.forget(child)
	if pw != nil && cw != nil {
		switch {
		case pw.box != nil:
			pw.box.Remove(cw.root)
		case pw.overlay != nil:
			pw.overlay.RemoveOverlay(cw.root)
		}
	}
	return true
}

// SetStyle applies s to the node's widget. The container moves its window;
// toasts switch their style classes.
func (s *Surface) SetStyle(n *surface.Node, st surface.Style) {
	s.tree.SetStyle(n, st)

	w := s.widgets[n]
	if w == nil {
		return
	}
	if w.window != nil {
		w.box.SetSpacing(st.Gap)
		placeWindow(w.window, st, s.cfg, s.logger)
		return
	}

	w.root.SetCanTarget(st.PointerEvents)
	setClasses(w.root, &w.state, styleClasses(st))
}

// SetAnimation swaps the node's animation class.
func (s *Surface) SetAnimation(n *surface.Node, a surface.Animation) {
	s.tree.SetAnimation(n, a)

	if w := s.widgets[n]; w != nil {
		applyAnimation(w, a)
	}
}

// build creates widgets for n and its subtree.
func (s *Surface) build(n *surface.Node) *widget {
	w := &widget{}

	switch {
	case n.Role == surface.RoleIcon:
		w.overlay = gtk.NewOverlay()
		w.root = &w.overlay.Widget
	case n.Role == surface.RoleText || n.Text != "":
		label := gtk.NewLabel(n.Text)
		label.SetWrap(true)
		label.SetXAlign(0)
		w.root = &label.Widget
	default:
		orientation := gtk.OrientationVertical
		if n.Role == surface.RoleContent {
			orientation = gtk.OrientationHorizontal
		}
		w.box = gtk.NewBox(orientation, 0)
		w.root = &w.box.Widget
	}

	for _, class := range n.Classes {
		w.root.AddCSSClass(class)
	}
	if n.Role == surface.RoleText {
		w.root.AddCSSClass("toast-message")
	}
	s.widgets[n] = w

	if n.Role == surface.RoleToast {
		w.root.SetSizeRequest(s.cfg.Width, -1)
		w.root.SetCanTarget(n.Style.PointerEvents)
		setClasses(w.root, &w.state, styleClasses(n.Style))
		s.connectHover(n, w)
	}
	applyAnimation(w, n.Animation)

	for _, child := range n.Children() {
		s.attach(w, s.build(child))
	}
	return w
}

func (s *Surface) attach(parent, child *widget) {
	switch {
	case parent.box != nil:
		parent.box.Append(child.root)
	case parent.overlay != nil && !parent.filled:
		parent.overlay.SetChild(child.root)
		parent.filled = true
	case parent.overlay != nil:
		parent.overlay.AddOverlay(child.root)
	}
}

func (s *Surface) connectHover(n *surface.Node, w *widget) {
	motion := gtk.NewEventControllerMotion()
	motion.ConnectEnter(func(x, y float64) {
		if s.onHover != nil {
			s.onHover(n, true)
		}
	})
	motion.ConnectLeave(func() {
		if s.onHover != nil {
			s.onHover(n, false)
		}
	})
	w.root.AddController(motion)
}

// forget drops the widget bookkeeping for n and its subtree.
func (s *Surface) forget(n *surface.Node) {
	n.Walk(func(d *surface.Node) {
		delete(s.widgets, d)
	})
}

func applyAnimation(w *widget, a surface.Animation) {
	if w.anim != "" {
		w.root.RemoveCSSClass(w.anim)
		w.anim = ""
	}
	if class := animationClass(a); class != "" {
		w.root.AddCSSClass(class)
		w.anim = class
	}
}

func setClasses(w *gtk.Widget, current *[]string, next []string) {
	for _, class := range *current {
		w.RemoveCSSClass(class)
	}
	for _, class := range next {
		w.AddCSSClass(class)
	}
	*current = next
}

// styleClasses maps a toast style onto the theme's state classes.
func styleClasses(st surface.Style) []string {
	var classes []string
	switch {
	case st.Opacity <= 0 && st.TranslateX != 0:
		classes = append(classes, "toast-faded")
	case st.Opacity <= 0:
		classes = append(classes, "toast-hidden-above")
	}
	if st.EffectiveScale() > 1 {
		classes = append(classes, "toast-paused")
	}
	return classes
}

// animationClass converts an animation name such as "errorCrossIn" to the
// theme class "anim-error-cross-in". An empty name has no class.
func animationClass(a surface.Animation) string {
	if a.Name == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("anim-")
	for i, r := range a.Name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
