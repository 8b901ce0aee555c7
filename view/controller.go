// Package view owns the interactive state of an archive session: the active
// card or filter, the players, the playback machine and the connector scene.
// All of it lives on a single event loop; hosts talk to it through the
// Controller's methods, which are safe for concurrent use.
package view

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/geometry"
	"github.com/user/setlist-archive-cli/layout"
	"github.com/user/setlist-archive-cli/pkg/timeutil"
	"github.com/user/setlist-archive-cli/playback"
	"github.com/user/setlist-archive-cli/render"
	"github.com/user/setlist-archive-cli/tracks"
)

// ReadyDelay is how long after a player reports ready the layout is redrawn.
const ReadyDelay = 100 * time.Millisecond

// ErrUnknownEntry is returned for clicks on anchors that are not rendered
// setlist entries.
var ErrUnknownEntry = errors.New("view: unknown entry")

// Callbacks are handed to a new player. They may be called from any goroutine.
type Callbacks struct {
	Ready       func()
	StateChange func(playback.State)
}

// PlayerFactory creates the player for a video. It is called at most once
// per video id unless it fails.
type PlayerFactory func(v *archive.Video, cb Callbacks) (playback.Player, error)

// Options configure a Controller.
type Options struct {
	Catalog     *archive.Catalog
	DefaultDate string
	Pending     []string
	Width       float64
	Tuning      geometry.TabTuning
	Players     PlayerFactory
	Clock       timeutil.Clock
	Logger      *slog.Logger
	EntryHref   func(entryID string) string
	TabHref     func(date string) string
}

// Controller drives one archive session.
type Controller struct {
	archive   *archive.Archive
	catalog   *archive.Catalog
	deck      *archive.Deck
	index     *tracks.Index
	machine   *playback.Machine
	adapter   *layout.Adapter
	scheduler *layout.Scheduler
	clock     timeutil.Clock
	log       *slog.Logger
	opts      Options

	events   chan func()
	quit     chan struct{}
	stopOnce sync.Once

	subMu sync.Mutex
	subs  []func(playback.Highlight)

	tabs    []archive.Tab
	active  string
	filter  *archive.FilterResult
	query   string
	route   archive.Route
	width   float64
	page    *render.Page
	players map[string]playback.Player
	states  map[string]playback.State
}

// New creates a controller over an archive. Nothing is shown until Navigate
// or ActivateCard is called and Run is processing events.
func New(a *archive.Archive, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = timeutil.RealClock{}
	}
	if opts.Catalog == nil {
		opts.Catalog = archive.NewCatalog(a, nil, nil)
	}
	if opts.Tuning == (geometry.TabTuning{}) {
		opts.Tuning = geometry.DefaultTabTuning()
	}

	c := &Controller{
		archive: a,
		catalog: opts.Catalog,
		deck:    archive.NewDeck(a),
		index:   tracks.NewIndex(),
		log:     opts.Logger,
		opts:    opts,
		events:  make(chan func(), 256),
		quit:    make(chan struct{}),
		tabs:    a.Tabs(opts.Pending),
		width:   opts.Width,
		players: make(map[string]playback.Player),
		states:  make(map[string]playback.State),
	}
	c.clock = loopClock{c: c, inner: opts.Clock}
	c.deck.OnRender(c.index.Register)
	c.machine = playback.NewMachine(c.index, c.clock, c.log.With("component", "playback"))
	c.adapter = layout.NewAdapter(pageMeasurer{c}, visibility{c}, opts.Tuning, c.log.With("component", "layout"))
	c.scheduler = layout.NewScheduler(c.clock, c.redraw)
	c.machine.OnHighlight(c.onHighlight)
	return c
}

// Catalog returns the searchable vocabulary.
func (c *Controller) Catalog() *archive.Catalog {
	return c.catalog
}

// Autocomplete returns suggestions for a partial query.
func (c *Controller) Autocomplete(q string) []archive.Suggestion {
	return c.catalog.Autocomplete(q)
}

// DefaultDate is the date shown when nothing else is requested.
func (c *Controller) DefaultDate() string {
	if c.archive.Has(c.opts.DefaultDate) {
		return c.opts.DefaultDate
	}
	return c.archive.Latest()
}

// Subscribe registers fn for highlight changes. fn runs on the loop and must
// not block or call back into the controller synchronously.
func (c *Controller) Subscribe(fn func(playback.Highlight)) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.subs = append(c.subs, fn)
}

// Navigate shows the view a route describes. Unknown dates and song slugs
// fall back to the default card.
func (c *Controller) Navigate(r archive.Route) error {
	return c.Do(func() {
		switch {
		case r.Date != "" && c.archive.Has(r.Date):
			c.activate(r.Date)
		case r.Date == "" && r.Song != "":
			title, ok := c.catalog.SongForSlug(r.Song)
			if !ok {
				c.activate(c.DefaultDate())
				return
			}
			c.applyFilter(title)
		default:
			c.activate(c.DefaultDate())
		}
	})
}

// ActivateCard shows the card of date, leaving any filter.
func (c *Controller) ActivateCard(date string) error {
	if !c.archive.Has(date) {
		return fmt.Errorf("activate %s: %w", date, archive.ErrUnknownDate)
	}
	return c.Do(func() { c.activate(date) })
}

// ApplyFilter shows every card matching q. An empty query clears the filter.
func (c *Controller) ApplyFilter(q string) error {
	return c.Do(func() {
		if archive.Normalize(q) == "" {
			c.activate(c.DefaultDate())
			return
		}
		c.applyFilter(q)
	})
}

// ClearFilter leaves filter mode and shows the default card.
func (c *Controller) ClearFilter() error {
	return c.Do(func() { c.activate(c.DefaultDate()) })
}

// ClickEntry plays, seeks or pauses the entry with the given anchor.
func (c *Controller) ClickEntry(id string) error {
	var err error
	if doErr := c.Do(func() {
		e, ok := c.deck.Entry(id)
		if !ok {
			err = fmt.Errorf("click %s: %w", id, ErrUnknownEntry)
			return
		}
		c.machine.Activate(e)
	}); doErr != nil {
		return doErr
	}
	return err
}

// ClickConnector clicks the entry a list connector starts from.
func (c *Controller) ClickConnector(source string) error {
	var id string
	var ok bool
	if err := c.Do(func() { id, ok = c.adapter.ConnectorSource(source) }); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("click connector %s: %w", source, ErrUnknownEntry)
	}
	return c.ClickEntry(id)
}

// HoverEntry lights an entry's connector.
func (c *Controller) HoverEntry(id string) error {
	return c.Do(func() { c.adapter.HoverEntry(id) })
}

// LeaveEntry ends an entry hover.
func (c *Controller) LeaveEntry(id string) error {
	return c.Do(func() { c.adapter.LeaveEntry(id) })
}

// HoverConnector lights a connector and its entry.
func (c *Controller) HoverConnector(source string) error {
	return c.Do(func() { c.adapter.HoverConnector(source) })
}

// LeaveConnector ends a connector hover.
func (c *Controller) LeaveConnector(source string) error {
	return c.Do(func() { c.adapter.LeaveConnector(source) })
}

// Resize relays out the page at a new width.
func (c *Controller) Resize(width float64) error {
	return c.Do(func() {
		c.width = width
		c.invalidate()
		c.scheduler.Request()
	})
}

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	Tabs       []archive.Tab
	Cards      []*archive.Card
	ActiveDate string
	Query      string
	Filter     *archive.FilterResult
	Route      archive.Route
	Scene      layout.Scene
	Page       *render.Page
	// PlayingVideo and Playing are set while an entry is playing; Position
	// is the playing video's clock at snapshot time.
	PlayingVideo string
	Playing      *archive.Entry
	Position     float64
	States       map[string]playback.State
}

// Filtering reports whether the snapshot shows filter results.
func (s Snapshot) Filtering() bool {
	return s.Filter != nil
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() (Snapshot, error) {
	var s Snapshot
	err := c.Do(func() {
		v := c.visible()
		s = Snapshot{
			Tabs:       c.tabs,
			Cards:      v.Cards,
			ActiveDate: c.active,
			Query:      c.query,
			Filter:     c.filter,
			Route:      c.route,
			Scene:      c.adapter.Scene(),
			Page:       c.currentPage(),
			States:     maps.Clone(c.states),
		}
		if videoID, e, ok := c.machine.Playing(); ok {
			s.PlayingVideo, s.Playing = videoID, e
			if p, ok := c.players[videoID]; ok {
				if t, err := p.CurrentTime(); err == nil {
					s.Position = t
				}
			}
		}
	})
	return s, err
}

// visible returns what the scene shows. It runs on the loop.
func (c *Controller) visible() layout.View {
	anchors := make([]string, len(c.tabs))
	for i, t := range c.tabs {
		anchors[i] = t.Anchor()
	}
	v := layout.View{Tabs: anchors}
	if c.filter != nil {
		v.Cards = c.filter.Cards
		v.Filtering = true
		return v
	}
	if card, ok := c.deck.Card(c.active); ok {
		v.Cards = []*archive.Card{card}
	}
	return v
}

func (c *Controller) activate(date string) {
	card, err := c.deck.Render(date)
	if err != nil {
		c.log.Warn("activate card", "date", date, "error", err)
		return
	}
	c.active = date
	c.filter = nil
	c.query = ""
	c.route = archive.Route{Date: date}
	c.ensurePlayers(card)
	c.invalidate()
	c.scheduler.Request()
}

func (c *Controller) applyFilter(q string) {
	res := archive.Filter(c.deck, c.catalog, q)
	c.filter = res
	c.query = q
	if song, ok := c.catalog.SongForQuery(q); ok {
		if slug := c.catalog.Slug(song); slug != "" {
			c.route = archive.Route{Song: slug}
		}
	}
	for _, card := range res.Cards {
		c.ensurePlayers(card)
	}
	c.invalidate()
	c.scheduler.Request()
}

func (c *Controller) ensurePlayers(card *archive.Card) {
	if c.opts.Players == nil {
		return
	}
	for _, v := range card.Videos {
		if _, ok := c.players[v.ID]; ok {
			continue
		}
		videoID := v.ID
		cb := Callbacks{
			Ready: func() {
				_ = c.Post(func() { c.scheduler.After(ReadyDelay) })
			},
			StateChange: func(s playback.State) {
				_ = c.Post(func() {
					c.states[videoID] = s
					c.invalidate()
					c.machine.HandleStateChange(videoID, s)
				})
			},
		}
		p, err := c.opts.Players(v, cb)
		if err != nil {
			c.log.Warn("create player", "video", videoID, "error", err)
			continue
		}
		c.players[videoID] = p
		c.machine.Attach(videoID, p)
	}
}

func (c *Controller) closePlayers() {
	for id, p := range c.players {
		if closer, ok := p.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				c.log.Debug("close player", "video", id, "error", err)
			}
		}
		c.machine.Detach(id)
		delete(c.players, id)
	}
}

func (c *Controller) onHighlight(h playback.Highlight) {
	id := ""
	if h.Entry != nil {
		id = h.Entry.ID
	}
	c.adapter.ApplyPlaying(id)
	c.invalidate()

	c.subMu.Lock()
	subs := slices.Clone(c.subs)
	c.subMu.Unlock()
	for _, fn := range subs {
		fn(h)
	}
}

func (c *Controller) redraw() {
	if err := c.adapter.Redraw(); err != nil {
		c.log.Debug("redraw failed", "error", err)
	}
}

func (c *Controller) invalidate() {
	c.page = nil
}

func (c *Controller) currentPage() *render.Page {
	if c.page == nil {
		doc := render.Document{
			Tabs:       c.tabs,
			Cards:      c.visible().Cards,
			ActiveDate: c.active,
			Filter:     c.filter,
			States:     maps.Clone(c.states),
		}
		if _, e, ok := c.machine.Playing(); ok {
			doc.Playing = e.ID
		}
		c.page = render.Build(doc, render.Options{Width: c.width, EntryHref: c.opts.EntryHref, TabHref: c.opts.TabHref})
	}
	return c.page
}

type visibility struct {
	c *Controller
}

func (v visibility) Visible() layout.View {
	return v.c.visible()
}

// pageMeasurer measures against the controller's current page.
type pageMeasurer struct {
	c *Controller
}

func (m pageMeasurer) Bounds(id string) (geometry.Rect, bool) {
	return m.c.currentPage().Bounds(id)
}
