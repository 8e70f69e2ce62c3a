// Package display shows toasts on the desktop with GTK4/libadwaita.
// The stacking container is a Wayland layer-shell window anchored to the
// top of the output, and toast lifecycle timers run on the glib main loop.
package display
