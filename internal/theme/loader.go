package theme

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Loader owns the CSS provider for the popup surface.
// Its methods must be called on the GTK main loop.
type Loader struct {
	logger   *slog.Logger
	provider *gtk.CSSProvider
}

// NewLoader creates a loader with the bundled stylesheet loaded.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(Stylesheet())
	logger.Debug("loaded stylesheet", "name", DefaultThemeName)

	return &Loader{
		logger:   logger,
		provider: provider,
	}
}

// Apply attaches the provider to display, or to the default display if nil.
// This should be called after the GTK application is initialized.
func (l *Loader) Apply(display *gdk.Display) {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply stylesheet")
		return
	}

	gtk.StyleContextAddProviderForDisplay(
		display,
		l.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
