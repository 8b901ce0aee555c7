package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/tui/styles"
)

// TabStripState is the date strip.
type TabStripState struct {
	Tabs   []archive.Tab
	Active string
	// Matched holds the dates of filter results; nil when not filtering.
	Matched map[string]bool
}

// TabStrip renders the tabs, wrapping into as many rows as width needs.
func TabStrip(state TabStripState, width int) string {
	var rows []string
	row, rowWidth := "", 0
	for _, t := range state.Tabs {
		label := tabStyle(state, t).Render(t.Date)
		w := lipgloss.Width(label)
		if rowWidth > 0 && rowWidth+w > width {
			rows = append(rows, row)
			row, rowWidth = "", 0
		}
		row += label
		rowWidth += w
	}
	if row != "" {
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func tabStyle(state TabStripState, t archive.Tab) lipgloss.Style {
	switch {
	case t.Disabled:
		return styles.DisabledTab
	case state.Matched != nil && state.Matched[t.Date]:
		return styles.MatchTab
	case state.Matched != nil:
		return styles.DimText.Padding(0, 1)
	case t.Date == state.Active:
		return styles.ActiveTab
	default:
		return styles.Tab
	}
}
