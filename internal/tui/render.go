package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/toasty/internal/surface"
	"github.com/jmylchreest/toasty/internal/toast"
)

var (
	errorColor   = lipgloss.Color("9")
	successColor = lipgloss.Color("10")
	mutedColor   = lipgloss.Color("8")

	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	navStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)

	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// pxToRows converts a pixel length to terminal rows, rounding up.
func pxToRows(px, cellHeight int) int {
	if px <= 0 || cellHeight <= 0 {
		return 0
	}
	return (px + cellHeight - 1) / cellHeight
}

// placement is a rendered toast and where it sits on screen.
type placement struct {
	toast  *toast.Toast
	block  string
	row    int
	col    int
	width  int
	height int
}

// contains reports whether the cell (x, y) is inside the placement.
func (p placement) contains(x, y int) bool {
	return y >= p.row && y < p.row+p.height && x >= p.col && x < p.col+p.width
}

// layoutStack positions the toasts of a container the way the container
// style asks: fixed at Top, centered, stacked with Gap between children.
func layoutStack(container *surface.Node, toasts []*toast.Toast, width, cellHeight int) []placement {
	if container == nil {
		return nil
	}

	style := container.Style
	row := pxToRows(style.Top, cellHeight)
	gap := pxToRows(style.Gap, cellHeight)
	maxWidth := max(width-4, 10)

	placements := make([]placement, 0, len(toasts))
	for _, t := range toasts {
		block := renderToast(t.Node(), maxWidth)
		w, h := lipgloss.Width(block), lipgloss.Height(block)

		col := 0
		if style.CenterX {
			col = max((width-w)/2, 0)
		}

		placements = append(placements, placement{
			toast:  t,
			block:  block,
			row:    row,
			col:    col,
			width:  w,
			height: h,
		})
		row += h + gap
	}
	return placements
}

// renderToast draws a toast node. A transparent toast keeps its size but
// renders as blank cells so the page shows through.
func renderToast(n *surface.Node, maxWidth int) string {
	color := errorColor
	if n.HasClass("alert-success") {
		color = successColor
	}

	icon := lipgloss.NewStyle().Foreground(color)
	if symbol := toast.IconSymbol(n); symbol != nil {
		switch {
		case strings.HasSuffix(symbol.Animation.Name, "In"):
			icon = icon.Bold(true)
		case strings.HasSuffix(symbol.Animation.Name, "Out"):
			icon = icon.Faint(true)
		}
	}

	glyph := ""
	if symbol := toast.IconSymbol(n); symbol != nil {
		glyph = symbol.Text
	}
	text := ""
	if t := n.Find(surface.RoleText); t != nil {
		text = t.Text
	}

	style := toastStyle.BorderForeground(color).MaxWidth(maxWidth)
	if n.Style.EffectiveScale() > 1 {
		style = style.BorderStyle(lipgloss.ThickBorder()).Bold(true)
	}

	block := style.Render(icon.Render(glyph) + " " + text)
	if n.Style.Opacity <= 0 {
		return blank(block)
	}
	return block
}

// blank replaces every cell of block with a space.
func blank(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = strings.Repeat(" ", lipgloss.Width(line))
	}
	return strings.Join(lines, "\n")
}

// renderPage builds the scrollable document: the nav bar, then body lines.
func renderPage(width, navRows, bodyLines int, navHidden bool) string {
	var sb strings.Builder

	for i := range navRows {
		line := ""
		if !navHidden {
			if i == navRows/2 {
				line = ansi.Truncate(navTitle, max(width-2, 0), "…")
			}
			line = navStyle.Width(width).Render(line)
		}
		sb.WriteString(line + "\n")
	}

	for i := range bodyLines {
		sb.WriteString(bodyStyle.Render(ansi.Truncate(bodyLine(i), width, "…")))
		if i < bodyLines-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

const navTitle = "toasty  ·  e error  s success  n message  h hide nav"

var filler = []string{
	"Scroll with j/k or the mouse wheel and watch the stack follow the nav bar.",
	"Hover a toast to pause its timer; moving away resumes it for two seconds.",
	"Toasts leave on their own. Hovering an exiting toast does not bring it back.",
	"Hiding the nav bar takes effect on the next scroll event.",
}

func bodyLine(i int) string {
	if i%5 == 4 {
		return ""
	}
	return filler[(i/5)%len(filler)]
}
