package tui

import (
	"strings"

	"github.com/user/setlist-archive-cli/tui/components"
	"github.com/user/setlist-archive-cli/tui/layout"
)

// renderColumns lays the setlist and, when wide enough, the videos side by
// side.
func (m *Model) renderColumns(height int) string {
	setlistWidth, videoWidth, showVideos := layout.ComputeColumnWidths(m.width)
	setlist := m.renderSetlistColumn(setlistWidth, height)
	if !showVideos {
		return setlist
	}
	videos := m.renderVideoColumn(videoWidth, height)
	return layout.JoinColumns([]string{setlist, videos}, []int{setlistWidth, videoWidth}, height)
}

// renderSetlistColumn renders the visible cards, scrolled to the cursor.
func (m *Model) renderSetlistColumn(width, height int) string {
	state := components.SetlistState{
		Cards:    m.snap.Cards,
		Selected: m.selected,
		Scene:    m.snap.Scene,
	}
	if m.snap.Filter != nil {
		state.Dimmed = m.snap.Filter.Dimmed
	}
	if m.snap.Playing != nil {
		state.Playing = m.snap.Playing.ID
	}
	lines, sel := components.SetlistLines(state, width)
	offset := 0
	if sel >= 0 {
		offset = layout.ScrollOffset(sel, height, len(lines))
	}
	return layout.Container{Width: width, Height: height, Offset: offset}.Render(strings.Join(lines, "\n"))
}

// renderVideoColumn renders the recordings of the visible cards.
func (m *Model) renderVideoColumn(width, height int) string {
	lines := components.VideoLines(m.snap.Cards, m.snap.States, m.snap.PlayingVideo, width)
	return layout.Container{Width: width, Height: height}.Render(strings.Join(lines, "\n"))
}
