package layout

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/geometry"
)

// Measurer reports the box of an anchor. Boxes share one coordinate space;
// the adapter rebases them on OriginAnchor.
type Measurer interface {
	Bounds(anchorID string) (geometry.Rect, bool)
}

// View is what a redraw draws: the visible cards, whether they are the
// result of a filter, and the anchors of every tab in the strip.
type View struct {
	Cards     []*archive.Card
	Filtering bool
	Tabs      []string
}

// Visibility supplies the current View.
type Visibility interface {
	Visible() View
}

// Adapter owns the connector scene. Like the playback machine it must only
// be used from one goroutine.
type Adapter struct {
	measure Measurer
	view    Visibility
	tuning  geometry.TabTuning
	log     *slog.Logger

	scene   Scene
	playing string
	// lit holds sources hovered either through their entry or their
	// connector; viaConnector holds the latter only.
	lit          map[string]bool
	viaConnector map[string]bool
	redraws      int
}

// NewAdapter creates an adapter with an empty scene.
func NewAdapter(m Measurer, v Visibility, tuning geometry.TabTuning, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		measure:      m,
		view:         v,
		tuning:       tuning,
		log:          logger,
		lit:          make(map[string]bool),
		viaConnector: make(map[string]bool),
	}
}

// Scene returns a copy of the current scene.
func (a *Adapter) Scene() Scene {
	return a.scene.Clone()
}

// Redraws reports how many redraws completed.
func (a *Adapter) Redraws() int {
	return a.redraws
}

// Redraw rebuilds every connector from fresh measurements and reapplies the
// hover and playing decorations. A panic while drawing is logged and
// returned as an error; the previous scene is kept.
func (a *Adapter) Redraw() (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("redraw panicked", "panic", r)
			err = fmt.Errorf("redraw: %v", r)
		}
	}()

	origin, ok := a.measure.Bounds(OriginAnchor)
	if !ok {
		a.log.Debug("origin anchor missing, skipping redraw")
		return nil
	}
	v := a.view.Visible()

	var conns []Connector
	for _, card := range v.Cards {
		if card == nil {
			continue
		}
		if !v.Filtering {
			if c, ok := a.tabConnector(card, v.Tabs, origin); ok {
				conns = append(conns, c)
			}
		}
		conns = append(conns, a.listConnectors(card, origin)...)
	}

	a.scene = Scene{Width: origin.Width, Height: origin.Height, Connectors: conns}
	a.decorate()
	a.redraws++
	return nil
}

func (a *Adapter) bounds(id string, origin geometry.Rect) (geometry.Rect, bool) {
	r, ok := a.measure.Bounds(id)
	if !ok {
		a.log.Debug("anchor missing", "anchor", id)
		return geometry.Rect{}, false
	}
	return r.Relative(origin), true
}

func (a *Adapter) tabConnector(card *archive.Card, tabs []string, origin geometry.Rect) (Connector, bool) {
	tabID := archive.TabAnchor(card.Date)
	panelID := archive.PanelAnchor(card.Date)
	tab, ok := a.bounds(tabID, origin)
	if !ok {
		return Connector{}, false
	}
	panel, ok := a.bounds(panelID, origin)
	if !ok {
		return Connector{}, false
	}
	strip, ok := a.bounds(StripAnchor, origin)
	if !ok {
		return Connector{}, false
	}

	lastBottom := math.Round(tab.Bottom())
	for _, id := range tabs {
		if r, ok := a.measure.Bounds(id); ok {
			lastBottom = math.Max(lastBottom, math.Round(r.Relative(origin).Bottom()))
		}
	}
	lastRow := math.Round(tab.Bottom()) == lastBottom

	return Connector{
		Source: tabID,
		Target: panelID,
		CardID: card.ID,
		Kind:   TabConnector,
		Path:   geometry.TabConnectorPath(tab, panel, strip, lastRow, a.tuning),
	}, true
}

func (a *Adapter) listConnectors(card *archive.Card, origin geometry.Rect) []Connector {
	linked := card.LinkedEntries()
	n := len(linked)
	conns := make([]Connector, 0, n)
	for i, e := range linked {
		src, ok := a.bounds(e.ID, origin)
		if !ok {
			continue
		}
		dst, ok := a.bounds(e.VideoID, origin)
		if !ok {
			continue
		}

		start := geometry.Point{X: src.Right(), Y: src.CenterY()}
		end := geometry.Point{X: dst.Left(), Y: dst.CenterY()}
		midX := start.X + (end.X-start.X)*0.5 -
			float64(n-1)*StaggerSpacing/2 +
			float64(i)*StaggerSpacing

		conns = append(conns, Connector{
			Source:     e.ID,
			Target:     e.VideoID,
			CardID:     card.ID,
			Kind:       ListConnector,
			ColorIndex: ColorIndex(i),
			Path:       geometry.OrthogonalRoundedPath(start, end, midX, ListCornerRadius),
		})
	}
	return conns
}

func (a *Adapter) decorate() {
	for i := range a.scene.Connectors {
		c := &a.scene.Connectors[i]
		if c.Kind != ListConnector {
			continue
		}
		c.Active = a.lit[c.Source]
		c.Playing = a.playing != "" && c.Source == a.playing
	}
	a.scene.ActiveEntries = a.scene.ActiveEntries[:0]
	for id := range a.viaConnector {
		if _, ok := a.scene.Connector(id); ok {
			a.scene.ActiveEntries = append(a.scene.ActiveEntries, id)
		}
	}
	slices.Sort(a.scene.ActiveEntries)
}

// ApplyPlaying moves the playing decoration to the connector of entryID.
// An empty id clears it.
func (a *Adapter) ApplyPlaying(entryID string) {
	a.playing = entryID
	a.decorate()
}

// PlayingEntry returns the entry whose connector carries the playing
// decoration, or "".
func (a *Adapter) PlayingEntry() string {
	return a.playing
}

// HoverEntry lights the connector of an entry.
func (a *Adapter) HoverEntry(id string) {
	a.lit[id] = true
	a.decorate()
}

// LeaveEntry removes an entry hover.
func (a *Adapter) LeaveEntry(id string) {
	if a.viaConnector[id] {
		return
	}
	delete(a.lit, id)
	a.decorate()
}

// HoverConnector lights the connector starting at source and its entry.
func (a *Adapter) HoverConnector(source string) {
	a.lit[source] = true
	a.viaConnector[source] = true
	a.decorate()
}

// LeaveConnector removes a connector hover.
func (a *Adapter) LeaveConnector(source string) {
	delete(a.lit, source)
	delete(a.viaConnector, source)
	a.decorate()
}

// ConnectorSource resolves a list connector to the entry it starts from.
func (a *Adapter) ConnectorSource(source string) (string, bool) {
	c, ok := a.scene.Connector(source)
	if !ok {
		return "", false
	}
	return c.Source, true
}
