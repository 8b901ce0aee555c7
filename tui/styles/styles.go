// Package styles provides Lipgloss styles for the TUI. The palette is the
// warm Ciapre scheme; connector colours come from the layout spectrum so
// the terminal and the SVG agree.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/user/setlist-archive-cli/layout"
)

// Color palette
const (
	// Night is the main background colour
	Night = lipgloss.Color("#191C27")
	// Ink is a secondary dark background
	Ink = lipgloss.Color("#181818")
	// Rule is the border/dim accent colour
	Rule = lipgloss.Color("#5C4F4B")
	// Plum is used for focus and selection
	Plum = lipgloss.Color("#724D7C")
	// Sand is a secondary text colour
	Sand = lipgloss.Color("#AEA47A")
	// Cream is the primary text colour
	Cream = lipgloss.Color("#F3DBB2")
	// Rose is for headers and the active tab
	Rose = lipgloss.Color("#D33061")
	// Sky is for keys and interactive elements
	Sky = lipgloss.Color("#3097C6")
	// Amber marks highlighted songs
	Amber = lipgloss.Color("#CC8B3F")
	// Brick is used for errors
	Brick = lipgloss.Color("#AC3835")
	// Olive is used for playing status
	Olive = lipgloss.Color("#A6A75D")
)

// Text styles
var (
	PrimaryText   = lipgloss.NewStyle().Foreground(Cream)
	SecondaryText = lipgloss.NewStyle().Foreground(Sand)
	DimText       = lipgloss.NewStyle().Foreground(Rule)
	Header        = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	Key           = lipgloss.NewStyle().Foreground(Sky).Bold(true)
	Warning       = lipgloss.NewStyle().Foreground(Brick).Bold(true)
	Success       = lipgloss.NewStyle().Foreground(Olive).Bold(true)
)

// Selected is the style for the entry under the cursor
var Selected = lipgloss.NewStyle().
	Background(Plum).
	Foreground(Cream).
	Bold(true)

// Tab styles
var (
	Tab         = lipgloss.NewStyle().Foreground(Sand).Padding(0, 1)
	ActiveTab   = lipgloss.NewStyle().Foreground(Night).Background(Rose).Bold(true).Padding(0, 1)
	DisabledTab = lipgloss.NewStyle().Foreground(Rule).Strikethrough(true).Padding(0, 1)
	MatchTab    = lipgloss.NewStyle().Foreground(Cream).Underline(true).Padding(0, 1)
)

// Connector returns the style of the connector with the given colour index.
func Connector(colorIndex int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(layout.Spectrum[layout.ColorIndex(colorIndex)])).
		Bold(true)
}
