package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/layout"
	"github.com/user/setlist-archive-cli/tui/styles"
)

// SetlistState is what the setlist column shows.
type SetlistState struct {
	Cards    []*archive.Card
	Selected string
	Scene    layout.Scene
	// Dimmed holds entry ids greyed out by the filter.
	Dimmed map[string]bool
	// Playing is the entry under the playhead, empty when none.
	Playing string
}

// SetlistLines renders every card as a block of lines and returns them with
// the index of the selected entry's line, or -1.
func SetlistLines(state SetlistState, width int) ([]string, int) {
	var lines []string
	selected := -1
	for i, card := range state.Cards {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			styles.Header.Render(card.Date),
			styles.SecondaryText.Render(ansi.Truncate(card.Heading, width, "…")))
		for _, e := range card.Entries {
			if e.ID == state.Selected {
				selected = len(lines)
			}
			lines = append(lines, entryLine(state, e, width))
		}
	}
	return lines, selected
}

func entryLine(state SetlistState, e *archive.Entry, width int) string {
	marker := "  "
	if c, ok := state.Scene.Connector(e.ID); ok {
		switch {
		case e.ID == state.Playing:
			marker = styles.Connector(c.ColorIndex).Render("▶ ")
		case c.Lit():
			marker = styles.Connector(c.ColorIndex).Render("● ")
		default:
			marker = styles.SecondaryText.Render("○ ")
		}
	}

	num := fmt.Sprintf("%2d. ", e.Num)
	stamp := ""
	if e.Timestamp != "" {
		stamp = " " + e.Timestamp
	}
	titleWidth := max(width-lipgloss.Width(marker)-len(num)-len(stamp), 1)
	title := ansi.Truncate(e.DisplayTitle(), titleWidth, "…")
	pad := max(titleWidth-lipgloss.Width(title), 0)
	body := num + title + fmt.Sprintf("%*s", pad, "") + stamp

	style := styles.PrimaryText
	switch {
	case e.ID == state.Selected:
		style = styles.Selected
	case state.Dimmed[e.ID]:
		style = styles.DimText
	case state.Scene.EntryActive(e.ID):
		style = styles.Success
	case e.Highlight:
		style = styles.PrimaryText.Bold(true)
	}
	return marker + style.Render(body)
}
