package tui

// FocusTarget represents which panel currently has focus.
type FocusTarget int

const (
	// FocusSetlist focuses the setlist; keys navigate and play.
	FocusSetlist FocusTarget = iota
	// FocusFilter focuses the filter input; keys edit the query.
	FocusFilter
)
