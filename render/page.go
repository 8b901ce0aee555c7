// Package render lays the archive out as boxes keyed by anchor id and
// writes the result, connectors included, as a standalone SVG document.
package render

import (
	"math"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/geometry"
	"github.com/user/setlist-archive-cli/layout"
	"github.com/user/setlist-archive-cli/playback"
)

// Box model, in layout units.
const (
	DefaultWidth = 1100.0

	margin      = 24.0
	stripLeft   = 120.0
	tabWidth    = 96.0
	tabHeight   = 28.0
	tabGap      = 8.0
	stripToCard = 48.0
	messageRow  = 32.0
	cardGap     = 32.0
	cardPad     = 16.0
	headingRow  = 40.0
	panelRatio  = 0.42
	panelPad    = 12.0
	entryHeight = 24.0
	entryGap    = 6.0
	gutter      = 120.0
	labelRow    = 22.0
	videoGap    = 16.0
	minWidth    = 640.0
)

// MessageAnchor is the box of the filter notice.
const MessageAnchor = "filterMessage"

// Document is everything a page shows.
type Document struct {
	Tabs []archive.Tab
	// Cards are the visible cards: the active one, or every filter match.
	Cards      []*archive.Card
	ActiveDate string
	// Filter is nil when no filter is applied.
	Filter  *archive.FilterResult
	Playing string
	States  map[string]playback.State
}

// Filtering reports whether the document shows filter results.
func (d Document) Filtering() bool {
	return d.Filter != nil
}

// Options tune the page.
type Options struct {
	Width float64
	// EntryHref, when set, turns linked entries into hyperlinks.
	EntryHref func(entryID string) string
	// TabHref, when set, turns enabled tabs into hyperlinks.
	TabHref func(date string) string
}

// TabBox is one laid out tab.
type TabBox struct {
	Tab    archive.Tab
	Rect   geometry.Rect
	Active bool
	Dimmed bool
}

// EntryBox is one laid out setlist line.
type EntryBox struct {
	Entry   *archive.Entry
	Rect    geometry.Rect
	Dimmed  bool
	Playing bool
}

// VideoBox is one laid out video placeholder and its label.
type VideoBox struct {
	Video *archive.Video
	Rect  geometry.Rect
	Label geometry.Rect
	State playback.State
	Known bool
}

// CardBox is one laid out card.
type CardBox struct {
	Card    *archive.Card
	Rect    geometry.Rect
	Heading geometry.Rect
	Panel   geometry.Rect
	Entries []EntryBox
	Videos  []VideoBox
}

// Page is a laid out Document. It implements layout.Measurer.
type Page struct {
	Width   float64
	Height  float64
	Doc     Document
	Opts    Options
	Strip   geometry.Rect
	Tabs    []TabBox
	Message string
	Cards   []CardBox

	boxes map[string]geometry.Rect
}

// Bounds returns the box of an anchor.
func (p *Page) Bounds(id string) (geometry.Rect, bool) {
	r, ok := p.boxes[id]
	return r, ok
}

// Build lays out doc.
func Build(doc Document, opts Options) *Page {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	width = math.Max(width, minWidth)

	p := &Page{
		Width: width,
		Doc:   doc,
		Opts:  opts,
		boxes: make(map[string]geometry.Rect),
	}

	y := p.layoutTabs(margin)
	if doc.Filter != nil && doc.Filter.Message != "" {
		p.Message = doc.Filter.Message
		y += tabGap
		p.set(MessageAnchor, geometry.Rect{X: margin, Y: y, Width: width - 2*margin, Height: messageRow - tabGap})
		y += messageRow - tabGap
	}
	y += stripToCard

	for _, card := range doc.Cards {
		if card == nil {
			continue
		}
		cb := p.layoutCard(card, y)
		p.Cards = append(p.Cards, cb)
		y = cb.Rect.Bottom() + cardGap
	}

	p.Height = y - cardGap + margin
	if len(p.Cards) == 0 {
		p.Height = y + margin
	}
	p.set(layout.OriginAnchor, geometry.Rect{Width: p.Width, Height: p.Height})
	return p
}

func (p *Page) set(id string, r geometry.Rect) {
	p.boxes[id] = r
}

// layoutTabs wraps the tabs into rows and returns the strip bottom.
func (p *Page) layoutTabs(top float64) float64 {
	right := p.Width - margin
	x, y := stripLeft, top
	for i, tab := range p.Doc.Tabs {
		if i > 0 && x+tabWidth > right {
			x = stripLeft
			y += tabHeight + tabGap
		}
		r := geometry.Rect{X: x, Y: y, Width: tabWidth, Height: tabHeight}
		tb := TabBox{
			Tab:    tab,
			Rect:   r,
			Active: !p.Doc.Filtering() && tab.Date == p.Doc.ActiveDate && !tab.Disabled,
		}
		if p.Doc.Filtering() {
			tb.Dimmed = tab.Disabled || !p.Doc.Filter.Matches(archive.CardID(tab.Date))
		}
		p.Tabs = append(p.Tabs, tb)
		p.set(tab.Anchor(), r)
		x += tabWidth + tabGap
	}

	bottom := top
	if len(p.Doc.Tabs) > 0 {
		bottom = y + tabHeight
	}
	p.Strip = geometry.Rect{X: stripLeft, Y: top, Width: right - stripLeft, Height: bottom - top}
	p.set(layout.StripAnchor, p.Strip)
	return bottom
}

func (p *Page) layoutCard(card *archive.Card, top float64) CardBox {
	left := margin
	width := p.Width - 2*margin
	cb := CardBox{
		Card:    card,
		Heading: geometry.Rect{X: left + cardPad, Y: top + cardPad, Width: width - 2*cardPad, Height: headingRow - cardPad},
	}

	inner := width - 2*cardPad
	panelTop := top + headingRow + cardPad/2
	panelWidth := inner * panelRatio
	n := float64(len(card.Entries))
	panelHeight := 2*panelPad + math.Max(0, n*(entryHeight+entryGap)-entryGap)
	cb.Panel = geometry.Rect{X: left + cardPad, Y: panelTop, Width: panelWidth, Height: panelHeight}
	p.set(archive.PanelAnchor(card.Date), cb.Panel)

	for i, e := range card.Entries {
		r := geometry.Rect{
			X:      cb.Panel.X + panelPad,
			Y:      panelTop + panelPad + float64(i)*(entryHeight+entryGap),
			Width:  panelWidth - 2*panelPad,
			Height: entryHeight,
		}
		eb := EntryBox{Entry: e, Rect: r, Playing: p.Doc.Playing != "" && e.ID == p.Doc.Playing}
		if p.Doc.Filter != nil {
			eb.Dimmed = p.Doc.Filter.Dimmed[e.ID]
		}
		cb.Entries = append(cb.Entries, eb)
		p.set(e.ID, r)
	}

	videoLeft := cb.Panel.Right() + gutter
	videoWidth := left + width - cardPad - videoLeft
	vy := panelTop
	for _, v := range card.Videos {
		h := videoWidth * 9 / 16
		vb := VideoBox{
			Video: v,
			Rect:  geometry.Rect{X: videoLeft, Y: vy, Width: videoWidth, Height: h},
			Label: geometry.Rect{X: videoLeft, Y: vy + h, Width: videoWidth, Height: labelRow},
		}
		vb.State, vb.Known = p.Doc.States[v.ID]
		cb.Videos = append(cb.Videos, vb)
		p.set(v.ID, vb.Rect)
		vy += h + labelRow + videoGap
	}
	videoHeight := math.Max(0, vy-videoGap-panelTop)

	height := headingRow + cardPad/2 + math.Max(panelHeight, videoHeight) + cardPad
	cb.Rect = geometry.Rect{X: left, Y: top, Width: width, Height: height}
	p.set(card.ID, cb.Rect)
	return cb
}
