package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/setlist-archive-cli/tui/styles"
)

// Responsive layout constants.
const (
	MinTerminalWidth = 60 // below this only the setlist is shown
	VideoColMin      = 24 // narrowest video column
	VideoColMax      = 44 // widest video column
)

// ComputeColumnWidths splits the terminal into the setlist column and the
// video column. The video column takes a third of the width within its
// bounds; below MinTerminalWidth it is hidden.
func ComputeColumnWidths(termWidth int) (setlist, videos int, showVideos bool) {
	if termWidth < MinTerminalWidth {
		return termWidth, 0, false
	}
	// one border character between the columns
	usable := termWidth - 1
	videos = usable / 3
	if videos < VideoColMin {
		videos = VideoColMin
	}
	if videos > VideoColMax {
		videos = VideoColMax
	}
	return usable - videos, videos, true
}

// JoinColumns joins pre-rendered column strings side by side with border
// separators. Each column is normalized to height and padded to its width.
func JoinColumns(columns []string, widths []int, height int) string {
	border := lipgloss.NewStyle().Foreground(styles.Rule).Render("│")

	colLines := make([][]string, len(columns))
	for i, col := range columns {
		colLines[i] = NormalizeLines(strings.Split(col, "\n"), height)
	}

	rows := make([]string, 0, height)
	for row := 0; row < height; row++ {
		parts := make([]string, len(colLines))
		for i, lines := range colLines {
			parts[i] = PadToWidth(lines[row], widths[i])
		}
		rows = append(rows, strings.Join(parts, border))
	}
	return strings.Join(rows, "\n")
}
