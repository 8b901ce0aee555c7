package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/setlist-archive-cli/tui/styles"
)

// HelpOverlay renders the key bindings centred in a bordered panel.
func HelpOverlay(width, height int) string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.Sand).Bold(true).Width(10)
	groupStyle := styles.Header.MarginTop(1)

	lines := []string{lipgloss.NewStyle().Foreground(styles.Sky).Bold(true).Render("Keybindings")}
	for _, group := range GetControlGroups() {
		lines = append(lines, groupStyle.Render(group.Name))
		for _, c := range group.Controls {
			lines = append(lines, "  "+keyStyle.Render(c.Shortcut)+styles.PrimaryText.Render(c.Help))
		}
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(styles.Sand).Italic(true).Render("Press any key to close"))

	panel := lipgloss.NewStyle().
		Background(styles.Ink).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Plum).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
