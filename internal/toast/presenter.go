package toast

import (
	"time"

	"github.com/jmylchreest/toasty/internal/surface"
)

// Presenter builds the node tree for a toast.
type Presenter interface {
	Render(c Category, message string) *surface.Node
}

// DefaultPresenter renders an icon (background and symbol) beside the message.
type DefaultPresenter struct{}

// Render builds:
//
//	toast (alert alert-<category>)
//	└── content
//	    ├── icon
//	    │   ├── icon-background
//	    │   └── icon-symbol (glyph)
//	    └── text (message)
func (DefaultPresenter) Render(c Category, message string) *surface.Node {
	root := surface.NewNode(surface.RoleToast, "alert", "alert-"+c.String())

	content := surface.NewNode(surface.RoleContent, "content-wrapper")
	icon := surface.NewNode(surface.RoleIcon, "icon-wrapper")
	icon.Add(surface.NewNode(surface.RoleIconBackground, "icon-background"))

	symbol := surface.NewNode(surface.RoleIconSymbol, symbolClass(c))
	symbol.Text = c.Glyph()
	icon.Add(symbol)

	text := surface.NewNode(surface.RoleText)
	text.Text = message

	content.Add(icon)
	content.Add(text)
	root.Add(content)
	return root
}

func symbolClass(c Category) string {
	if c == CategorySuccess {
		return "icon-checkmark"
	}
	return "icon-cross"
}

// IconBackground returns the icon background node of a rendered toast.
func IconBackground(n *surface.Node) *surface.Node {
	return n.Find(surface.RoleIconBackground)
}

// IconSymbol returns the icon symbol node of a rendered toast.
func IconSymbol(n *surface.Node) *surface.Node {
	return n.Find(surface.RoleIconSymbol)
}

// Icon animation timings.
const (
	iconInDuration  = time.Second
	iconOutDuration = 500 * time.Millisecond
	iconInEasing    = "cubic-bezier(0.34, 1.56, 0.64, 1)"
	iconOutEasing   = "cubic-bezier(0.4, 0, 0.2, 1)"
)

// iconAnimations returns the background and symbol animations for a category.
func iconAnimations(c Category, entering bool) (surface.Animation, surface.Animation) {
	symbol := "Cross"
	if c == CategorySuccess {
		symbol = "Checkmark"
	}
	phase, dur, easing := "Out", iconOutDuration, iconOutEasing
	if entering {
		phase, dur, easing = "In", iconInDuration, iconInEasing
	}

	prefix := c.String()
	return surface.Animation{Name: prefix + "Background" + phase, Duration: dur, Easing: easing},
		surface.Animation{Name: prefix + symbol + phase, Duration: dur, Easing: easing}
}
