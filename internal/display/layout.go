package display

import (
	"log/slog"
	"unsafe"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/surface"
)

// placeWindow anchors the container window to the top edge with the
// stack's offset as margin. A centered stack is anchored top only, which
// layer-shell centers horizontally.
func placeWindow(window *gtk.Window, st surface.Style, cfg config.PopupConfig, logger *slog.Logger) {
	layershell.SetAnchor(window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(window, layershell.LayerShellEdgeBottom, false)
	layershell.SetAnchor(window, layershell.LayerShellEdgeLeft, !st.CenterX)
	layershell.SetAnchor(window, layershell.LayerShellEdgeRight, false)
	layershell.SetMargin(window, layershell.LayerShellEdgeTop, st.Top)

	if monitor := monitorFor(gdk.DisplayGetDefault(), cfg.Monitor, logger); monitor != nil {
		layershell.SetMonitor(window, monitor)
	}
}

// monitorFor returns the configured output. 0 leaves the choice to the
// compositor and returns nil; an out-of-range index falls back to the first
// output.
func monitorFor(display *gdk.Display, index int, logger *slog.Logger) *gdk.Monitor {
	if display == nil || index == 0 {
		return nil
	}

	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		logger.Warn("no monitors available")
		return nil
	}

	i := uint(index - 1)
	if i >= monitors.NItems() {
		logger.Warn("configured monitor not available, using first",
			"configured", index,
			"available", monitors.NItems(),
		)
		i = 0
	}
	return wrapMonitor(monitors.Item(i))
}

// wrapMonitor wraps a glib.Object as a gdk.Monitor.
// gotk4 does not export its own wrapper; gdk.Monitor embeds *glib.Object.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}

// NewViewport builds the desktop document the stack is positioned against:
// a top panel of the configured height, marked hidden when it auto-hides.
// A desktop never scrolls, so the panel counts whenever it is visible.
func NewViewport(cfg *config.Config) *surface.Page {
	page := surface.NewPage()
	if cfg.Popup.PanelHeight <= 0 {
		return page
	}

	o := surface.Obstruction{Height: cfg.Popup.PanelHeight}
	if cfg.Popup.PanelHidden {
		o.Classes = []string{cfg.Layout.HiddenClass}
	}
	page.SetElement(cfg.Layout.ObstructionSelector, o)
	return page
}
