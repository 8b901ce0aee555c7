package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/archive/archivetest"
	"github.com/user/setlist-archive-cli/layout"
	"github.com/user/setlist-archive-cli/playback"
)

func sampleCard(t *testing.T, date string) *archive.Card {
	t.Helper()
	card, err := archive.NewDeck(archivetest.Sample()).Render(date)
	require.NoError(t, err)
	return card
}

func TestTabStripWraps(t *testing.T) {
	tabs := archivetest.Sample().Tabs([]string{"20251231"})
	one := TabStrip(TabStripState{Tabs: tabs, Active: "20240301"}, 200)
	assert.Equal(t, 1, lipgloss.Height(one))
	assert.Contains(t, one, "20251231")

	// each tab is ten cells wide with its padding
	wrapped := TabStrip(TabStripState{Tabs: tabs}, 25)
	assert.Equal(t, 2, lipgloss.Height(wrapped))
}

func TestSetlistLinesSelection(t *testing.T) {
	card := sampleCard(t, "20240301")
	lines, sel := SetlistLines(SetlistState{
		Cards:    []*archive.Card{card},
		Selected: "li-20240301-2",
	}, 40)

	require.Len(t, lines, 6)
	assert.Equal(t, "20240301", lines[0])
	assert.Contains(t, lines[1], "Bowery Ballroom")
	assert.Equal(t, 4, sel)
	assert.Contains(t, lines[4], "LSD")
	assert.Contains(t, lines[4], "3:30")
	for _, line := range lines[2:] {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}

func TestSetlistLinesMarkers(t *testing.T) {
	card := sampleCard(t, "20240301")
	scene := layout.Scene{Connectors: []layout.Connector{
		{Source: "li-20240301-1", Kind: layout.ListConnector, ColorIndex: 1, Playing: true},
		{Source: "li-20240301-2", Kind: layout.ListConnector, ColorIndex: 2},
	}}
	lines, sel := SetlistLines(SetlistState{
		Cards:   []*archive.Card{card},
		Scene:   scene,
		Playing: "li-20240301-1",
	}, 40)

	assert.Equal(t, -1, sel)
	assert.True(t, strings.HasPrefix(lines[3], "▶ "), lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "○ "), lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "  "), "unlinked songs carry no marker")
}

func TestVideoLines(t *testing.T) {
	card := sampleCard(t, "20250510")
	lines := VideoLines([]*archive.Card{card}, map[string]playback.State{"v20250510a": playback.Paused}, "", 30)
	assert.Equal(t, []string{"20250510", "Part 1", "  paused", "Part 2", "  unstarted"}, lines)
}

func TestSuggestions(t *testing.T) {
	assert.Empty(t, Suggestions(nil, 40))
	out := Suggestions([]archive.Suggestion{
		{Text: "London", Type: archive.SuggestCity},
		{Text: "Le Trabendo", Type: archive.SuggestVenue},
	}, 40)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "London")
	assert.Contains(t, lines[1], "Le Trabendo")
}

func TestStatusBar(t *testing.T) {
	idle := StatusBar(StatusBarState{Route: "/?date=20240301"}, 60)
	assert.Contains(t, idle, "nothing playing")
	assert.Contains(t, idle, "/?date=20240301")
	assert.Equal(t, 60, lipgloss.Width(idle))

	playing := StatusBar(StatusBarState{Title: "Vines", Start: 95, Position: 100}, 60)
	assert.Contains(t, playing, "Vines")
	assert.Contains(t, playing, "1:40 (+0:05)")
}
