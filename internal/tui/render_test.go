package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/toasty/internal/surface"
	"github.com/jmylchreest/toasty/internal/toast"
)

func TestPxToRows(t *testing.T) {
	assert.Equal(t, 0, pxToRows(0, 20))
	assert.Equal(t, 1, pxToRows(10, 20))
	assert.Equal(t, 1, pxToRows(20, 20))
	assert.Equal(t, 4, pxToRows(80, 20))
	assert.Equal(t, 0, pxToRows(80, 0))
}

func TestPlace(t *testing.T) {
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"

	got := Place(base, "XY\n  \n Z", 0, 3, 10)
	assert.Equal(t, "aaaXYaaaaa\nbbbbbbbbbb\nccccZccccc", got)

	// Rows outside the base are dropped
	got = Place(base, "Q\nR", 2, 0, 10)
	assert.Equal(t, "aaaaaaaaaa\nbbbbbbbbbb\nQccccccccc", got)

	// Blocks are clipped at the right edge
	got = Place(base, "LONG", 1, 8, 10)
	assert.Equal(t, "aaaaaaaaaa\nbbbbbbbbLO\ncccccccccc", got)
}

func TestPlace_PadsShortLines(t *testing.T) {
	assert.Equal(t, "ab   X", Place("ab", "X", 0, 5, 6))
}

func TestRenderToast(t *testing.T) {
	n := toast.DefaultPresenter{}.Render(toast.CategorySuccess, "Saved")
	n.Style.Opacity = 1

	block := ansi.Strip(renderToast(n, 60))
	assert.Contains(t, block, "✓ Saved")
	assert.Equal(t, 3, lipgloss.Height(block))

	n.Style.Opacity = 0
	hidden := renderToast(n, 60)
	assert.Equal(t, "", strings.TrimSpace(hidden))
	assert.Equal(t, lipgloss.Width(block), lipgloss.Width(hidden))
}

func TestRenderToast_PausedUsesThickBorder(t *testing.T) {
	n := toast.DefaultPresenter{}.Render(toast.CategoryError, "Nope")
	n.Style.Opacity = 1
	n.Style.Scale = 1.02

	block := ansi.Strip(renderToast(n, 60))
	assert.Contains(t, block, "┏")
	assert.Contains(t, block, "× Nope")
}

func TestLayoutStack_NoContainer(t *testing.T) {
	assert.Nil(t, layoutStack(nil, nil, 80, 20))
}

func TestLayoutStack_EmptyContainer(t *testing.T) {
	container := surface.NewNode(surface.RoleContainer)
	container.Style = surface.Style{Top: 40, Gap: 10}

	assert.Empty(t, layoutStack(container, nil, 80, 20))
}

func TestRenderPage(t *testing.T) {
	page := ansi.Strip(renderPage(40, 3, 10, false))
	lines := strings.Split(page, "\n")
	assert.Len(t, lines, 13)
	assert.Contains(t, lines[1], "toasty")

	hidden := strings.Split(ansi.Strip(renderPage(40, 3, 10, true)), "\n")
	assert.Len(t, hidden, 13)
	assert.Equal(t, "", hidden[1])
}
