package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/setlist-archive-cli/tui/styles"
)

// Container wraps content into an exact Width x Height bounding box.
type Container struct {
	Width  int
	Height int
	// Offset is the first content line shown.
	Offset int
}

// Render returns the content constrained to exactly Width columns and Height
// lines. Hidden lines above or below are marked with scroll indicators.
func (c Container) Render(content string) string {
	if c.Height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	indicator := lipgloss.NewStyle().Foreground(styles.Rule)

	offset := min(max(c.Offset, 0), max(len(lines)-1, 0))
	above := offset > 0
	lines = lines[offset:]
	below := len(lines) > c.Height
	if below {
		lines = lines[:c.Height]
		lines[c.Height-1] = indicator.Render("↓ more")
	}
	if above {
		lines[0] = indicator.Render("↑ more")
	}

	lines = NormalizeLines(lines, c.Height)
	for i, line := range lines {
		lines[i] = PadToWidth(line, c.Width)
	}
	return strings.Join(lines, "\n")
}
