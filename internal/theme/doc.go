// Package theme provides the CSS stylesheet for the popup toast surface.
// The stylesheet is embedded in the binary and mapped onto the class names
// the display package assigns to toast widgets.
package theme
