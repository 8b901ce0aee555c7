package archive

import "fmt"

// Deck builds performance cards on demand and keeps them for the life of the
// process. Rendering a date twice returns the card built the first time.
type Deck struct {
	archive   *Archive
	cards     map[string]*Card
	entries   map[string]*Entry
	observers []func(*Card)
}

// NewDeck creates an empty deck over an archive.
func NewDeck(a *Archive) *Deck {
	return &Deck{
		archive: a,
		cards:   make(map[string]*Card),
		entries: make(map[string]*Entry),
	}
}

// Archive returns the underlying document.
func (d *Deck) Archive() *Archive {
	return d.archive
}

// OnRender registers fn to be called once for every newly built card.
func (d *Deck) OnRender(fn func(*Card)) {
	d.observers = append(d.observers, fn)
}

// Render returns the card for date, building it on first use.
func (d *Deck) Render(date string) (*Card, error) {
	if card, ok := d.cards[date]; ok {
		return card, nil
	}
	perf, ok := d.archive.Performances[date]
	if !ok {
		return nil, fmt.Errorf("render %s: %w", date, ErrUnknownDate)
	}

	card := newCard(date, perf)
	d.cards[date] = card
	for _, e := range card.Entries {
		d.entries[e.ID] = e
	}
	for _, fn := range d.observers {
		fn(card)
	}
	return card, nil
}

// RenderAll builds every card and returns them in date order.
func (d *Deck) RenderAll() []*Card {
	dates := d.archive.Dates()
	cards := make([]*Card, 0, len(dates))
	for _, date := range dates {
		card, err := d.Render(date)
		if err != nil {
			continue
		}
		cards = append(cards, card)
	}
	return cards
}

// Card returns an already built card.
func (d *Deck) Card(date string) (*Card, bool) {
	card, ok := d.cards[date]
	return card, ok
}

// Rendered reports how many cards have been built.
func (d *Deck) Rendered() int {
	return len(d.cards)
}

// Entry looks up a built entry by anchor id.
func (d *Deck) Entry(id string) (*Entry, bool) {
	e, ok := d.entries[id]
	return e, ok
}
