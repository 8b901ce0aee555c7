package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/setlist-archive-cli/pkg/timeutil"
	"github.com/user/setlist-archive-cli/tui/styles"
)

// StatusBarState holds what the status bar shows.
type StatusBarState struct {
	// Title is the playing song; empty when nothing plays.
	Title string
	// Start is the playing song's start in its video.
	Start float64
	// Position is the playing video's clock.
	Position float64
	// ColorIndex is the playing connector's colour.
	ColorIndex int
	// Route is the shareable route of the current view.
	Route string
	// Message is a transient notice, e.g. the last error.
	Message string
}

// StatusBar renders the top line: the playing song on the left, the route
// and any notice on the right.
func StatusBar(state StatusBarState, width int) string {
	left := " " + styles.SecondaryText.Render("■ nothing playing")
	if state.Title != "" {
		into := max(state.Position-state.Start, 0)
		left = " " + styles.Connector(state.ColorIndex).Render("▶") + " " +
			styles.PrimaryText.Bold(true).Render(state.Title) + " " +
			styles.SecondaryText.Render(fmt.Sprintf("%s (+%s)", timeutil.FormatClock(state.Position), timeutil.FormatClock(into)))
	}

	right := styles.SecondaryText.Render(state.Route) + " "
	if state.Message != "" {
		right = styles.Warning.Render(state.Message) + "  " + right
	}

	pad := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return lipgloss.NewStyle().
		Background(styles.Ink).
		Width(width).
		Render(left + fmt.Sprintf("%*s", pad, "") + right)
}
