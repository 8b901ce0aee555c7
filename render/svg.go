package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/geometry"
	"github.com/user/setlist-archive-cli/layout"
)

const (
	fontFamily = "Helvetica, Arial, sans-serif"
	ink        = "#1d1f23"
	muted      = "#6b7079"
	paper      = "#fbfaf7"
	panelFill  = "#f1efe9"
)

const svgStyle = `
.tab rect { fill: #ffffff; stroke: #c9c6bd; }
.tab.active rect { fill: #1d1f23; }
.tab.active text { fill: #ffffff; }
.tab.disabled text { fill: #b0ada5; }
.tab.dimmed { opacity: 0.15; }
.entry text { fill: #1d1f23; }
.entry.linked { cursor: pointer; }
.entry.highlight text { font-weight: bold; }
.entry.dim { opacity: 0.3; }
.entry.playing rect { fill: #fff4c2; }
.entry.active rect { fill: #eef3ff; }
.connector { stroke-width: 1; stroke-linecap: round; stroke-linejoin: round; fill: none; }
.connector.playing { stroke-width: 2; }
.tab-connector { stroke-width: 1; fill: none; }
`

// WriteSVG writes the page and the connector scene as one SVG document.
func WriteSVG(w io.Writer, p *Page, scene layout.Scene) error {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" viewBox="0 0 %s %s" width="%s" height="%s" font-family="%s" font-size="13">`+"\n",
		layout.OriginAnchor, num(p.Width), num(p.Height), num(p.Width), num(p.Height), fontFamily)
	fmt.Fprintf(&b, "<style>%s</style>\n", svgStyle)
	writeMarkers(&b)
	fmt.Fprintf(&b, `<rect width="%s" height="%s" fill="%s"/>`+"\n", num(p.Width), num(p.Height), paper)

	writeTabs(&b, p)
	if p.Message != "" {
		r, _ := p.Bounds(MessageAnchor)
		fmt.Fprintf(&b, `<text id="%s" x="%s" y="%s" fill="%s">%s</text>`+"\n",
			MessageAnchor, num(r.X), num(r.CenterY()+4), muted, esc(p.Message))
	}
	for _, cb := range p.Cards {
		writeCard(&b, p, cb, scene)
	}
	writeConnectors(&b, scene)

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func writeMarkers(b *strings.Builder) {
	b.WriteString("<defs>\n")
	marker := func(id, fill string) {
		fmt.Fprintf(b, `<marker id="%s" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="5" markerHeight="5" orient="auto-start-reverse">`+
			`<path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker>`+"\n", id, fill)
	}
	marker("arrow", layout.NeutralStroke)
	for i, color := range layout.Spectrum {
		marker(layout.MarkerID(i), color)
	}
	b.WriteString("</defs>\n")
}

func writeTabs(b *strings.Builder, p *Page) {
	fmt.Fprintf(b, `<g id="%s">`+"\n", layout.StripAnchor)
	for _, tb := range p.Tabs {
		class := "tab"
		if tb.Active {
			class += " active"
		}
		if tb.Tab.Disabled {
			class += " disabled"
		}
		if tb.Dimmed {
			class += " dimmed"
		}
		fmt.Fprintf(b, `<g class="%s" id="%s"`, class, tb.Tab.Anchor())
		if tb.Tab.Complete {
			b.WriteString(` data-complete="true"`)
		}
		if tb.Tab.MediaType != "" {
			fmt.Fprintf(b, ` data-media-type="%s"`, esc(tb.Tab.MediaType))
		}
		b.WriteString(">")
		if tb.Tab.Disabled {
			b.WriteString("<title>Known date, recording not yet added</title>")
		}
		href := ""
		if !tb.Tab.Disabled && p.Opts.TabHref != nil {
			href = p.Opts.TabHref(tb.Tab.Date)
		}
		if href != "" {
			fmt.Fprintf(b, `<a href="%s">`, esc(href))
		}
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" rx="4"/>`,
			num(tb.Rect.X), num(tb.Rect.Y), num(tb.Rect.Width), num(tb.Rect.Height))
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle">%s</text>`,
			num(tb.Rect.CenterX()), num(tb.Rect.CenterY()+4), esc(tb.Tab.Date))
		if href != "" {
			b.WriteString("</a>")
		}
		b.WriteString("</g>\n")
	}
	b.WriteString("</g>\n")
}

func writeCard(b *strings.Builder, p *Page, cb CardBox, scene layout.Scene) {
	class := "card"
	if p.Doc.Filtering() {
		class += " filter-match"
	} else {
		class += " active"
	}
	fmt.Fprintf(b, `<g class="%s" id="%s">`+"\n", class, cb.Card.ID)
	rect(b, cb.Rect, "#ffffff", `stroke="#d9d6ce" rx="8"`)
	fmt.Fprintf(b, `<text x="%s" y="%s" font-size="16" font-weight="bold" fill="%s">%s</text>`+"\n",
		num(cb.Heading.X), num(cb.Heading.Bottom()-4), ink, esc(cb.Card.Heading))

	fmt.Fprintf(b, `<g class="panel-left" id="%s">`, esc(archive.PanelAnchor(cb.Card.Date)))
	rect(b, cb.Panel, panelFill, `rx="6"`)
	b.WriteString("\n")
	for _, eb := range cb.Entries {
		writeEntry(b, p, eb, scene)
	}
	b.WriteString("</g>\n")

	for _, vb := range cb.Videos {
		writeVideo(b, vb)
	}
	b.WriteString("</g>\n")
}

func writeEntry(b *strings.Builder, p *Page, eb EntryBox, scene layout.Scene) {
	e := eb.Entry
	class := "entry"
	if e.Linked() {
		class += " linked"
	}
	if e.Highlight {
		class += " highlight"
	}
	if eb.Dimmed {
		class += " dim"
	}
	if eb.Playing {
		class += " playing"
	}
	if scene.EntryActive(e.ID) {
		class += " active"
	}

	href := ""
	if e.Linked() && p.Opts.EntryHref != nil {
		href = p.Opts.EntryHref(e.ID)
	}
	if href != "" {
		fmt.Fprintf(b, `<a href="%s">`, esc(href))
	}
	fmt.Fprintf(b, `<g class="%s" id="%s"`, class, esc(e.ID))
	if e.Linked() {
		fmt.Fprintf(b, ` data-link-to="%s" data-start="%s"`, esc(e.VideoID), num(e.Start))
	}
	b.WriteString(">")
	rect(b, eb.Rect, "transparent", `rx="3"`)

	label := fmt.Sprintf("%d. %s", e.Num, e.DisplayTitle())
	fmt.Fprintf(b, `<text x="%s" y="%s">%s</text>`,
		num(eb.Rect.X+6), num(eb.Rect.CenterY()+4), esc(label))
	if e.Timestamp != "" {
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="end" fill="%s">%s</text>`,
			num(eb.Rect.Right()-6), num(eb.Rect.CenterY()+4), muted, esc(e.Timestamp))
	}
	b.WriteString("</g>")
	if href != "" {
		b.WriteString("</a>")
	}
	b.WriteString("\n")
}

func writeVideo(b *strings.Builder, vb VideoBox) {
	v := vb.Video
	fmt.Fprintf(b, `<g class="video-placeholder" id="%s" data-youtube-id="%s">`, esc(v.ID), esc(v.YouTubeID))
	rect(b, vb.Rect, "#111318", `rx="6"`)
	status := "not started"
	if vb.Known {
		status = vb.State.String()
	}
	fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" fill="#e6e6e6">%s</text>`,
		num(vb.Rect.CenterX()), num(vb.Rect.CenterY()+4), esc(status))
	b.WriteString("</g>\n")

	fmt.Fprintf(b, `<a href="%s" target="_blank"><text class="video-label" x="%s" y="%s" fill="%s">%s</text></a>`+"\n",
		esc(v.WatchURL()), num(vb.Label.X), num(vb.Label.CenterY()+4), muted, esc(v.Label))
}

func writeConnectors(b *strings.Builder, scene layout.Scene) {
	b.WriteString(`<g id="connectors">` + "\n")
	for _, c := range scene.Connectors {
		if c.Kind == layout.TabConnector {
			fmt.Fprintf(b, `<path class="tab-connector" d="%s" stroke="%s" marker-end="url(#arrow)"/>`+"\n",
				c.Path, layout.NeutralStroke)
			continue
		}
		class := "connector"
		if c.Playing {
			class += " playing"
		}
		if c.Active {
			class += " active"
		}
		fmt.Fprintf(b, `<path class="%s" d="%s" stroke="%s" marker-end="url(#%s)" data-source="%s" data-color-index="%d"/>`+"\n",
			class, c.Path, c.Stroke(), c.MarkerEnd(), esc(c.Source), c.ColorIndex)
	}
	b.WriteString("</g>\n")
}

func rect(b *strings.Builder, r geometry.Rect, fill, extra string) {
	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s" %s/>`,
		num(r.X), num(r.Y), num(r.Width), num(r.Height), fill, extra)
}

// num prints coordinates the way path data does.
func num(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func esc(s string) string {
	return html.EscapeString(s)
}
