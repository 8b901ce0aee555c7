// Package timestamps turns the chapter links of a YouTube description into
// setlist items.
package timestamps

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/pkg/timeutil"
)

var (
	clockText = regexp.MustCompile(`^[\d:]+$`)
	hrefTime  = regexp.MustCompile(`[&?](?:amp;)?t=(\d+)s`)
	space     = regexp.MustCompile(`\s+`)
	// dashes, colons and spaces around a title
	edges = regexp.MustCompile(`^[-–—:\s]+|[-–—:\s]+$`)
)

// marker is one timestamp link with the text that precedes it.
type marker struct {
	href    string
	display string
	before  string
}

// Parse reads description HTML and returns one setlist item per distinct
// timestamp, ordered by time and numbered from 1. Every item points at
// videoID.
func Parse(r io.Reader, videoID string) ([]archive.SetlistItem, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse description: %w", err)
	}

	markers, tail := collect(doc.Selection)
	titles := make(map[int]string)
	var lastTitle string
	for i, m := range markers {
		before := normalize(m.before)
		after := tail
		if i+1 < len(markers) {
			after = markers[i+1].before
		}
		after = normalize(after)

		title := before
		switch {
		case before != "" && !strings.EqualFold(before, lastTitle):
		case after != "":
			title = after
		}

		seconds := parseSeconds(m.href, m.display)
		if _, seen := titles[seconds]; !seen && title != "" {
			titles[seconds] = title
		}
		if title != "" {
			lastTitle = title
		}
	}

	seconds := make([]int, 0, len(titles))
	for s := range titles {
		seconds = append(seconds, s)
	}
	sort.Ints(seconds)

	caser := cases.Title(language.Und)
	items := make([]archive.SetlistItem, 0, len(seconds))
	for i, s := range seconds {
		start := float64(s)
		items = append(items, archive.SetlistItem{
			Num:       i + 1,
			Title:     caser.String(titles[s]),
			VideoID:   videoID,
			Start:     &start,
			Timestamp: timeutil.FormatClock(start),
		})
	}
	return items, nil
}

// collect walks the document in order, splitting its text at every timestamp
// link. Tags count as word breaks. It returns the markers and the text after
// the last one.
func collect(root *goquery.Selection) ([]marker, string) {
	var (
		markers []marker
		text    strings.Builder
	)
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			switch goquery.NodeName(c) {
			case "#text":
				text.WriteString(c.Text())
			case "a":
				href, ok := c.Attr("href")
				display := strings.TrimSpace(c.Text())
				if ok && clockText.MatchString(display) {
					markers = append(markers, marker{href: href, display: display, before: text.String()})
					text.Reset()
					return
				}
				fallthrough
			default:
				text.WriteByte(' ')
				walk(c)
				text.WriteByte(' ')
			}
		})
	}
	walk(root)
	return markers, text.String()
}

func normalize(s string) string {
	s = space.ReplaceAllString(s, " ")
	return strings.TrimSpace(edges.ReplaceAllString(s, ""))
}

// parseSeconds prefers the t=NNNs parameter of the link and falls back to
// the displayed clock.
func parseSeconds(href, display string) int {
	if m := hrefTime.FindStringSubmatch(href); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	s, err := timeutil.ParseTimeToSeconds(display)
	if err != nil {
		return 0
	}
	return int(s)
}
