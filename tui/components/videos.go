package components

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/playback"
	"github.com/user/setlist-archive-cli/tui/styles"
)

// VideoLines lists the recordings of the shown cards with their player
// state.
func VideoLines(cards []*archive.Card, states map[string]playback.State, playingVideo string, width int) []string {
	var lines []string
	for _, card := range cards {
		if len(card.Videos) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styles.Header.Render(card.Date))
		for _, v := range card.Videos {
			state, ok := states[v.ID]
			if !ok {
				state = playback.Unstarted
			}
			label := ansi.Truncate(v.Label, max(width-2, 1), "…")
			style := styles.PrimaryText
			if v.ID == playingVideo {
				style = styles.Success
			}
			lines = append(lines,
				style.Render(label),
				"  "+styles.SecondaryText.Render(state.String()))
		}
	}
	return lines
}
