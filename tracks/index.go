// Package tracks indexes linked setlist entries by video and start time so
// the entry playing at a given video position can be looked up.
package tracks

import (
	"slices"

	"github.com/user/setlist-archive-cli/archive"
)

// Lookahead is how far ahead of the reported player time an entry may start
// and still count as active. It absorbs poll granularity and clock jitter.
const Lookahead = 0.6

// Track pairs a start time with the entry that begins there.
type Track struct {
	Start float64
	Entry *archive.Entry
}

// Index holds, per video, the tracks sorted by start time.
type Index struct {
	byVideo map[string][]Track
	seen    map[string]bool
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		byVideo: make(map[string][]Track),
		seen:    make(map[string]bool),
	}
}

// Register adds every linked entry of card. Entries already indexed are
// skipped, so registering the same card twice changes nothing.
func (x *Index) Register(card *archive.Card) {
	touched := make(map[string]bool)
	for _, e := range card.Entries {
		if !e.Linked() || x.seen[e.ID] {
			continue
		}
		x.seen[e.ID] = true
		x.byVideo[e.VideoID] = append(x.byVideo[e.VideoID], Track{Start: e.Start, Entry: e})
		touched[e.VideoID] = true
	}
	for videoID := range touched {
		slices.SortStableFunc(x.byVideo[videoID], func(a, b Track) int {
			switch {
			case a.Start < b.Start:
				return -1
			case a.Start > b.Start:
				return 1
			}
			return 0
		})
	}
}

// Tracks returns a copy of the sorted tracks for a video.
func (x *Index) Tracks(videoID string) []Track {
	return slices.Clone(x.byVideo[videoID])
}

// Has reports whether any track is indexed for the video.
func (x *Index) Has(videoID string) bool {
	return len(x.byVideo[videoID]) > 0
}

// Videos returns the ids of all indexed videos.
func (x *Index) Videos() []string {
	ids := make([]string, 0, len(x.byVideo))
	for id := range x.byVideo {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ActiveEntry returns the entry with the greatest start not after
// t+Lookahead. Before the first start it returns the first entry. It
// returns false only when the video has no tracks.
func (x *Index) ActiveEntry(videoID string, t float64) (*archive.Entry, bool) {
	list := x.byVideo[videoID]
	if len(list) == 0 {
		return nil, false
	}
	candidate := list[0]
	for _, tr := range list {
		if t+Lookahead < tr.Start {
			break
		}
		candidate = tr
	}
	return candidate.Entry, true
}
