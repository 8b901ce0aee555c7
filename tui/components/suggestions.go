package components

import (
	"strings"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/tui/styles"
)

// maxSuggestions caps the autocomplete list.
const maxSuggestions = 6

// Suggestions renders autocomplete hits under the filter input.
func Suggestions(list []archive.Suggestion, width int) string {
	if len(list) == 0 {
		return ""
	}
	var b strings.Builder
	for i, s := range list {
		if i == maxSuggestions {
			b.WriteString(styles.DimText.Render("  …"))
			break
		}
		if i > 0 {
			b.WriteString("\n")
		}
		line := "  " + s.Text + " " + styles.DimText.Render(string(s.Type))
		if i == 0 {
			line = styles.Key.Render("⇥ ") + s.Text + " " + styles.DimText.Render(string(s.Type))
		}
		b.WriteString(line)
	}
	return b.String()
}
