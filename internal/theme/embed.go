package theme

import (
	"embed"
	"strings"
)

// EmbeddedThemes contains the bundled stylesheet and its partials.
//
//go:embed themes/*.css
var EmbeddedThemes embed.FS

// DefaultThemeName is the name of the built-in stylesheet.
const DefaultThemeName = "default"

// GetEmbeddedTheme retrieves a bundled stylesheet or partial by name.
// Partials start with an underscore and are meant to be imported.
func GetEmbeddedTheme(name string) (string, bool) {
	name = strings.TrimSuffix(name, ".css")
	data, err := EmbeddedThemes.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", false
	}
	return string(data), true
}
