package archive

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSuggestions caps the autocomplete list.
const MaxSuggestions = 10

// NoPlayableMessage is shown when a searched song appears on setlists but
// none of its occurrences has a recording.
const NoPlayableMessage = "The song you've searched for exists on setlists, but does not currently have a viewable or listenable performance here."

var nonWord = regexp.MustCompile(`[^a-z0-9\s]`)

// Normalize folds accents, lowercases and drops punctuation so that
// "Nausicaä (Love…)" and "nausicaa love" compare equal by substring.
func Normalize(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(folded)
	folded = nonWord.ReplaceAllString(folded, "")
	return strings.TrimSpace(folded)
}

// SuggestionType labels an autocomplete suggestion.
type SuggestionType string

const (
	SuggestSong    SuggestionType = "song"
	SuggestVenue   SuggestionType = "venue"
	SuggestCity    SuggestionType = "city"
	SuggestCountry SuggestionType = "country"
)

// Suggestion is one autocomplete item.
type Suggestion struct {
	Text string         `json:"text"`
	Type SuggestionType `json:"type"`
}

// Catalog is the searchable vocabulary of the archive.
type Catalog struct {
	Songs     []string
	Venues    []string
	Cities    []string
	Countries []string

	slugs  map[string]string
	titles map[string]string
}

// NewCatalog collects song titles, venues, cities and countries from the
// archive. countries overrides the derived country list when non-empty;
// slugs maps song titles to short route identifiers.
func NewCatalog(a *Archive, countries []string, slugs map[string]string) *Catalog {
	c := &Catalog{
		slugs:  make(map[string]string),
		titles: make(map[string]string),
	}
	songs := make(map[string]bool)
	seenVenue := make(map[string]bool)
	seenCity := make(map[string]bool)
	seenCountry := make(map[string]bool)

	for _, date := range a.Dates() {
		p := a.Performances[date]
		if p.Venue != "" && !seenVenue[p.Venue] {
			seenVenue[p.Venue] = true
			c.Venues = append(c.Venues, p.Venue)
		}
		if p.City != "" && !seenCity[p.City] {
			seenCity[p.City] = true
			c.Cities = append(c.Cities, p.City)
		}
		if p.Country != "" && !seenCountry[p.Country] {
			seenCountry[p.Country] = true
			c.Countries = append(c.Countries, p.Country)
		}
		for _, item := range p.Setlist {
			if item.Title != "" {
				songs[item.Title] = true
			}
		}
	}
	if len(countries) > 0 {
		c.Countries = append([]string(nil), countries...)
	}

	for title := range songs {
		c.Songs = append(c.Songs, title)
	}
	sort.Strings(c.Songs)

	for _, title := range c.Songs {
		slug := slugs[title]
		if slug == "" {
			slug = strings.ReplaceAll(Normalize(title), " ", "")
		}
		if slug == "" {
			continue
		}
		if _, taken := c.titles[slug]; taken {
			continue
		}
		c.slugs[title] = slug
		c.titles[slug] = title
	}
	return c
}

// Slug returns the route identifier for a song title.
func (c *Catalog) Slug(title string) string {
	return c.slugs[title]
}

// SongForSlug resolves a route identifier back to its title.
func (c *Catalog) SongForSlug(slug string) (string, bool) {
	title, ok := c.titles[slug]
	return title, ok
}

// SongForQuery returns the first song title containing the normalized query.
func (c *Catalog) SongForQuery(query string) (string, bool) {
	q := Normalize(query)
	if q == "" {
		return "", false
	}
	for _, s := range c.Songs {
		if strings.Contains(Normalize(s), q) {
			return s, true
		}
	}
	return "", false
}

// IsCountry reports whether the query names a known country exactly.
func (c *Catalog) IsCountry(query string) bool {
	q := Normalize(query)
	for _, country := range c.Countries {
		if Normalize(country) == q {
			return true
		}
	}
	return false
}

// Autocomplete returns up to MaxSuggestions substring matches: songs first,
// then venues, cities and countries.
func (c *Catalog) Autocomplete(query string) []Suggestion {
	if query == "" {
		return nil
	}
	q := Normalize(query)
	var out []Suggestion
	add := func(items []string, typ SuggestionType) {
		for _, item := range items {
			if strings.Contains(Normalize(item), q) {
				out = append(out, Suggestion{Text: item, Type: typ})
			}
		}
	}
	add(c.Songs, SuggestSong)
	add(c.Venues, SuggestVenue)
	add(c.Cities, SuggestCity)
	add(c.Countries, SuggestCountry)

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// FilterResult describes the outcome of a filter query.
type FilterResult struct {
	// Query is the normalized query.
	Query string
	// Cards holds the matching cards in date order.
	Cards []*Card
	// Dimmed marks entry anchors rendered dimmed.
	Dimmed map[string]bool
	// Message is a user-facing notice, empty when there is nothing to say.
	Message string
	// Country is set when the query named a country.
	Country bool

	matched map[string]bool
}

// Matches reports whether the card with the given id matched.
func (r *FilterResult) Matches(cardID string) bool {
	if r == nil {
		return false
	}
	return r.matched[cardID]
}

// Filter renders every card of the deck and evaluates query against it.
// A card matches on its heading or on a song that has a recording. Song
// hits without a recording stay dimmed; if those are the only hits the
// result carries NoPlayableMessage.
func Filter(deck *Deck, catalog *Catalog, query string) *FilterResult {
	q := Normalize(query)
	res := &FilterResult{
		Query:   q,
		Dimmed:  make(map[string]bool),
		matched: make(map[string]bool),
	}
	if q == "" {
		return res
	}

	var countryRe *regexp.Regexp
	if catalog.IsCountry(q) {
		res.Country = true
		countryRe = regexp.MustCompile(`\b` + regexp.QuoteMeta(q) + `\b`)
	}

	foundWithVideo, foundWithoutVideo := false, false
	for _, card := range deck.RenderAll() {
		heading := Normalize(card.Heading)
		var headingMatch bool
		if countryRe != nil {
			headingMatch = countryRe.MatchString(heading)
		} else {
			headingMatch = strings.Contains(heading, q)
		}

		songMatch := false
		for _, e := range card.Entries {
			if !strings.Contains(Normalize(e.DisplayTitle()), q) {
				res.Dimmed[e.ID] = true
				continue
			}
			if e.Linked() {
				foundWithVideo = true
				songMatch = true
			} else {
				foundWithoutVideo = true
				res.Dimmed[e.ID] = true
			}
		}

		if !headingMatch && !songMatch {
			continue
		}
		res.matched[card.ID] = true
		res.Cards = append(res.Cards, card)
		if headingMatch {
			for _, e := range card.Entries {
				delete(res.Dimmed, e.ID)
			}
		}
	}

	if foundWithoutVideo && !foundWithVideo && !res.Country {
		res.Message = NoPlayableMessage
	}
	return res
}
