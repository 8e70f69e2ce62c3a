package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Place draws block over base with its top-left corner at (row, col).
// Leading and trailing spaces of each block line are transparent, so the
// base shows through around the block and through blank lines.
// This function is ANSI-aware and handles styled text correctly.
func Place(base, block string, row, col, width int) string {
	baseLines := strings.Split(base, "\n")
	blockLines := strings.Split(block, "\n")

	for i, blockLine := range blockLines {
		target := row + i
		if target < 0 {
			continue
		}
		if target >= len(baseLines) {
			break
		}

		// Strip ANSI to find visible content bounds
		plain := ansi.Strip(blockLine)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		lead := len(plain) - len(strings.TrimLeft(plain, " "))
		trimmed := strings.TrimRight(plain, " ")
		visible := ansi.StringWidth(trimmed[lead:])

		content := ansi.Cut(blockLine, lead, lead+visible)
		startCol := col + lead
		endCol := startCol + visible
		if startCol >= width {
			continue
		}
		if endCol > width {
			content = ansi.Cut(content, 0, width-startCol)
			endCol = width
		}

		baseLine := baseLines[target]
		baseWidth := ansi.StringWidth(baseLine)
		if baseWidth < width {
			baseLine += strings.Repeat(" ", width-baseWidth)
		}

		result := ansi.Cut(baseLine, 0, startCol) + content
		if endCol < width {
			result += ansi.Cut(baseLine, endCol, width)
		}
		baseLines[target] = result
	}

	return strings.Join(baseLines, "\n")
}
