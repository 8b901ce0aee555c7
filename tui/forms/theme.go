package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/setlist-archive-cli/tui/styles"
)

// Theme returns a huh theme in the TUI palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused field styles
	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Plum).
		PaddingLeft(1)
	t.Focused.Title = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(styles.Sand)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(styles.Brick).Bold(true)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(styles.Brick)
	t.Focused.SelectSelector = lipgloss.NewStyle().SetString("▸ ").Foreground(styles.Sky)
	t.Focused.Option = lipgloss.NewStyle().Foreground(styles.Cream)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(styles.Sky)
	t.Focused.NextIndicator = lipgloss.NewStyle().Foreground(styles.Sand)
	t.Focused.PrevIndicator = lipgloss.NewStyle().Foreground(styles.Sand)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(styles.Sky)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(styles.Rule)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(styles.Sky)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(styles.Cream)
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Background(styles.Plum).
		Foreground(styles.Cream).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Background(styles.Ink).
		Foreground(styles.Sand).
		Padding(0, 1)
	t.Focused.Next = t.Focused.FocusedButton

	// Blurred field styles
	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(styles.Sand)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(styles.Rule)
	t.Blurred.SelectSelector = lipgloss.NewStyle().SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().Foreground(styles.Sand)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(styles.Sand)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(styles.Sand)
	t.Blurred.Next = t.Blurred.FocusedButton

	return t
}
