package tracks

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/archive/archivetest"
)

func sampleIndex(t *testing.T) (*Index, *archive.Deck) {
	t.Helper()
	deck := archive.NewDeck(archivetest.Sample())
	idx := NewIndex()
	deck.OnRender(idx.Register)
	deck.RenderAll()
	return idx, deck
}

func TestActiveEntryLookahead(t *testing.T) {
	idx, deck := sampleIndex(t)
	card, _ := deck.Card("20240301")
	intro, vines, lsd := card.Entries[0], card.Entries[1], card.Entries[2]

	cases := []struct {
		at   float64
		want *archive.Entry
	}{
		{100, vines},
		{94.5, vines},
		{94.3, intro},
		{0, intro},
		{209.5, lsd},
		{209.3, vines},
		{5000, lsd},
	}
	for _, tc := range cases {
		got, ok := idx.ActiveEntry("v20240301", tc.at)
		require.True(t, ok)
		assert.Same(t, tc.want, got, "at %.1fs", tc.at)
	}
}

func TestActiveEntryBeforeFirstStart(t *testing.T) {
	idx, deck := sampleIndex(t)
	card, _ := deck.Card("20250510")

	got, ok := idx.ActiveEntry("v20250510b", 0)
	require.True(t, ok)
	assert.Same(t, card.Entries[2], got)
}

func TestActiveEntryUnknownVideo(t *testing.T) {
	idx, _ := sampleIndex(t)
	got, ok := idx.ActiveEntry("nope", 10)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.False(t, idx.Has("nope"))
}

func TestActiveEntryMonotonic(t *testing.T) {
	idx, _ := sampleIndex(t)
	rng := rand.New(rand.NewPCG(7, 0))

	for _, video := range idx.Videos() {
		now := -5.0
		last := -1.0
		for i := 0; i < 500; i++ {
			now += rng.Float64() * 4
			e, ok := idx.ActiveEntry(video, now)
			require.True(t, ok)
			assert.GreaterOrEqual(t, e.Start, last, "video %s went backwards at %.2f", video, now)
			last = e.Start
		}
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	idx, deck := sampleIndex(t)
	card, _ := deck.Card("20240301")

	before := idx.Tracks("v20240301")
	idx.Register(card)
	idx.Register(card)
	after := idx.Tracks("v20240301")

	require.Len(t, after, 3)
	assert.Equal(t, before, after)
	for i, tr := range after {
		assert.Same(t, card.Entries[i], tr.Entry)
	}
}

func TestRegisterSortsByStart(t *testing.T) {
	start := func(v float64) *float64 { return &v }
	a := &archive.Archive{Performances: map[string]archive.Performance{
		"20200101": {
			Setlist: []archive.SetlistItem{
				{Num: 1, Title: "C", VideoID: "v", Start: start(300)},
				{Num: 2, Title: "A", VideoID: "v", Start: start(10)},
				{Num: 3, Title: "B", VideoID: "v", Start: start(120)},
			},
			Videos: []archive.VideoItem{{ID: "v"}},
		},
	}}
	deck := archive.NewDeck(a)
	idx := NewIndex()
	deck.OnRender(idx.Register)
	_, err := deck.Render("20200101")
	require.NoError(t, err)

	var titles []string
	for _, tr := range idx.Tracks("v") {
		titles = append(titles, tr.Entry.Title)
	}
	assert.Equal(t, []string{"A", "B", "C"}, titles)
}
