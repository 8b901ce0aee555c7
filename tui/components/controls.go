// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/setlist-archive-cli/tui/styles"
)

// Control represents a single key binding with its display info.
type Control struct {
	Name     string
	Shortcut string
	Help     string
}

// ControlGroup is a titled set of related controls.
type ControlGroup struct {
	Name     string
	Controls []Control
}

// GetControlGroups returns the key bindings shown in the key bar and help.
func GetControlGroups() []ControlGroup {
	return []ControlGroup{
		{
			Name: "Archive",
			Controls: []Control{
				{Name: "Date", Shortcut: "←/→", Help: "Previous / next performance"},
				{Name: "Song", Shortcut: "↑/↓", Help: "Move through the setlist"},
				{Name: "Play", Shortcut: "Enter", Help: "Play the song, or pause it near its start"},
			},
		},
		{
			Name: "Filter",
			Controls: []Control{
				{Name: "Search", Shortcut: "/", Help: "Filter by song, venue, city or country"},
				{Name: "Suggest", Shortcut: "Tab", Help: "Complete with the first suggestion"},
				{Name: "Clear", Shortcut: "Esc", Help: "Leave the filter"},
			},
		},
		{
			Name: "App",
			Controls: []Control{
				{Name: "Help", Shortcut: "?", Help: "Show/hide this help"},
				{Name: "Quit", Shortcut: "q", Help: "Quit and close the players"},
			},
		},
	}
}

// RenderInfoBox renders a bordered box with a tab-style header. Content
// lines are rendered as-is; the caller handles styling.
func RenderInfoBox(title string, contentLines []string, width int) string {
	if width < 4 {
		return ""
	}
	innerWidth := width - 2
	border := lipgloss.NewStyle().Foreground(styles.Rule)

	// ╭─ Title ─────╮
	header := styles.Header.Render(" " + title + " ")
	fill := max(innerWidth-1-lipgloss.Width(header), 0)
	lines := []string{border.Render("╭─") + header + border.Render(strings.Repeat("─", fill)+"╮")}

	for _, line := range contentLines {
		pad := max(innerWidth-lipgloss.Width(line), 0)
		lines = append(lines, border.Render("│")+line+strings.Repeat(" ", pad)+border.Render("│"))
	}

	lines = append(lines, border.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(lines, "\n")
}

// KeyBar renders the controls as one centred line.
func KeyBar(width int) string {
	var groups []string
	for _, group := range GetControlGroups() {
		var parts []string
		for _, c := range group.Controls {
			parts = append(parts, styles.PrimaryText.Render(c.Name)+" "+styles.Key.Render("["+c.Shortcut+"]"))
		}
		groups = append(groups, strings.Join(parts, "  "))
	}
	bar := strings.Join(groups, "   ")
	pad := max((width-lipgloss.Width(bar))/2, 0)
	return strings.Repeat(" ", pad) + bar
}
