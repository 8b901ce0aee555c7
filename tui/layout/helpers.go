package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PadToWidth pads or truncates s to exactly width cells.
func PadToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	currentWidth := lipgloss.Width(s)
	if currentWidth == width {
		return s
	}
	if currentWidth > width {
		s = ansi.Truncate(s, width, "")
		currentWidth = lipgloss.Width(s)
	}
	if currentWidth < width {
		return s + strings.Repeat(" ", width-currentWidth)
	}
	return s
}

// NormalizeLines pads or truncates a slice of strings to exactly the given height.
func NormalizeLines(lines []string, height int) []string {
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// ScrollOffset returns the first line to show so that line sel stays inside
// a window of height lines, keeping a margin of one line where possible.
func ScrollOffset(sel, height, total int) int {
	if height <= 0 || total <= height {
		return 0
	}
	offset := sel - height/2
	return min(max(offset, 0), total-height)
}
