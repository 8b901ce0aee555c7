package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// ErrUnknownDate is returned when a date has no performance.
var ErrUnknownDate = errors.New("archive: unknown performance date")

// Archive is the parsed performances document.
type Archive struct {
	Performances map[string]Performance `json:"performances"`
}

// Load reads the performances document from a JSON file.
func Load(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open performances: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a performances document.
func Parse(r io.Reader) (*Archive, error) {
	var a Archive
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode performances: %w", err)
	}
	if a.Performances == nil {
		a.Performances = make(map[string]Performance)
	}
	return &a, nil
}

// Dates returns the performance dates in ascending order.
func (a *Archive) Dates() []string {
	dates := make([]string, 0, len(a.Performances))
	for d := range a.Performances {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Latest returns the most recent performance date, or "" for an empty archive.
func (a *Archive) Latest() string {
	dates := a.Dates()
	if len(dates) == 0 {
		return ""
	}
	return dates[len(dates)-1]
}

// Has reports whether a performance exists for date.
func (a *Archive) Has(date string) bool {
	_, ok := a.Performances[date]
	return ok
}

// Tab is one entry of the date tab strip.
type Tab struct {
	Date      string
	Disabled  bool
	Complete  bool
	MediaType string
}

// Anchor returns the tab's anchor id.
func (t Tab) Anchor() string {
	return TabAnchor(t.Date)
}

// Tabs returns the date tabs in ascending order. Pending dates without a
// performance are included as disabled tabs.
func (a *Archive) Tabs(pending []string) []Tab {
	seen := make(map[string]bool)
	var tabs []Tab
	for _, d := range pending {
		if a.Has(d) || seen[d] {
			continue
		}
		seen[d] = true
		tabs = append(tabs, Tab{Date: d, Disabled: true})
	}
	for d, p := range a.Performances {
		tabs = append(tabs, Tab{Date: d, Complete: p.Complete, MediaType: p.MediaType})
	}
	sort.Slice(tabs, func(i, j int) bool { return tabs[i].Date < tabs[j].Date })
	return tabs
}
