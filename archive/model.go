// Package archive holds the concert archive data: the performances document,
// the performance cards built from it, and the filter/route logic that
// decides which cards are visible.
package archive

import (
	"fmt"
	"strings"
)

// SetlistItem is one setlist line in the performances document.
type SetlistItem struct {
	Num       int      `json:"num" yaml:"num"`
	Title     string   `json:"title" yaml:"title"`
	Highlight bool     `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	Partial   bool     `json:"partial,omitempty" yaml:"partial,omitempty"`
	VideoID   string   `json:"videoId,omitempty" yaml:"videoId,omitempty"`
	Start     *float64 `json:"start,omitempty" yaml:"start,omitempty"`
	Timestamp string   `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// VideoItem is one embedded recording in the performances document.
type VideoItem struct {
	ID        string `json:"id"`
	YouTubeID string `json:"youtubeId"`
	Label     string `json:"label"`
}

// Performance is one dated show in the performances document.
type Performance struct {
	Venue     string        `json:"venue"`
	City      string        `json:"city"`
	State     string        `json:"state,omitempty"`
	Country   string        `json:"country"`
	Complete  bool          `json:"complete,omitempty"`
	MediaType string        `json:"mediaType,omitempty"`
	Setlist   []SetlistItem `json:"setlist"`
	Videos    []VideoItem   `json:"videos"`
}

// Heading returns "venue, city[, state], country".
func (p Performance) Heading() string {
	parts := []string{p.Venue, p.City}
	if p.State != "" {
		parts = append(parts, p.State)
	}
	parts = append(parts, p.Country)
	return strings.Join(parts, ", ")
}

// Entry is one rendered setlist line of a card.
type Entry struct {
	// ID is the entry's anchor, unique across the document.
	ID        string
	CardID    string
	Num       int
	Title     string
	Highlight bool
	Partial   bool
	Timestamp string
	// VideoID and Start are only meaningful when Linked reports true.
	VideoID string
	Start   float64
	linked  bool
}

// Linked reports whether the entry points at a playable recording.
func (e *Entry) Linked() bool {
	return e.linked
}

// DisplayTitle returns the title with a "(partial)" suffix when applicable.
func (e *Entry) DisplayTitle() string {
	if e.Partial {
		return e.Title + " (partial)"
	}
	return e.Title
}

// Video is one rendered recording of a card.
type Video struct {
	// ID is the placeholder anchor and the player key.
	ID        string
	CardID    string
	YouTubeID string
	Label     string
}

// WatchURL returns the public YouTube URL for the video.
func (v *Video) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + v.YouTubeID
}

// Card is one rendered performance.
type Card struct {
	ID      string
	Date    string
	Heading string
	Venue   string
	City    string
	State   string
	Country string
	Entries []*Entry
	Videos  []*Video
}

// LinkedEntries returns the entries that point at a recording, in setlist order.
func (c *Card) LinkedEntries() []*Entry {
	var linked []*Entry
	for _, e := range c.Entries {
		if e.Linked() {
			linked = append(linked, e)
		}
	}
	return linked
}

// Video returns the card's video with the given id.
func (c *Card) Video(id string) (*Video, bool) {
	for _, v := range c.Videos {
		if v.ID == id {
			return v, true
		}
	}
	return nil, false
}

// CardID returns the card anchor for a date.
func CardID(date string) string {
	return "card-" + date
}

// DateFromCardID strips the card prefix.
func DateFromCardID(cardID string) string {
	return strings.TrimPrefix(cardID, "card-")
}

// TabAnchor returns the tab anchor for a date.
func TabAnchor(date string) string {
	return "tab-" + date
}

// PanelAnchor returns the left panel anchor for a date.
func PanelAnchor(date string) string {
	return "leftPanel-" + date
}

// EntryAnchor returns the anchor of the n-th setlist line (0-based) of a date.
func EntryAnchor(date string, n int) string {
	return fmt.Sprintf("li-%s-%d", date, n)
}

// newCard builds a card from a performance.
func newCard(date string, p Performance) *Card {
	card := &Card{
		ID:      CardID(date),
		Date:    date,
		Heading: p.Heading(),
		Venue:   p.Venue,
		City:    p.City,
		State:   p.State,
		Country: p.Country,
	}
	for i, item := range p.Setlist {
		e := &Entry{
			ID:        EntryAnchor(date, i),
			CardID:    card.ID,
			Num:       item.Num,
			Title:     item.Title,
			Highlight: item.Highlight,
			Partial:   item.Partial,
			Timestamp: item.Timestamp,
		}
		if item.VideoID != "" && item.Start != nil {
			e.VideoID = item.VideoID
			e.Start = *item.Start
			e.linked = true
		}
		card.Entries = append(card.Entries, e)
	}
	for _, v := range p.Videos {
		card.Videos = append(card.Videos, &Video{
			ID:        v.ID,
			CardID:    card.ID,
			YouTubeID: v.YouTubeID,
			Label:     v.Label,
		})
	}
	return card
}
