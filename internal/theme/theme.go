package theme

import (
	"path"
	"regexp"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Stylesheet returns the bundled stylesheet with its imports inlined.
// GTK CSS providers do not resolve imports from embedded files.
func Stylesheet() string {
	css, _ := GetEmbeddedTheme(DefaultThemeName)
	return ProcessImports(css, nil)
}

// ProcessImports inlines @import statements naming bundled partials.
// The seen map prevents circular imports.
func ProcessImports(css string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		name := path.Base(submatch[1])

		if seen[name] {
			return "/* circular import prevented: " + name + " */"
		}
		seen[name] = true

		imported, ok := GetEmbeddedTheme(name)
		if !ok {
			return "/* import failed: " + name + " */"
		}
		return "/* imported: " + name + " */\n" + ProcessImports(imported, seen)
	})
}
