package layout_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/archive/archivetest"
	"github.com/user/setlist-archive-cli/geometry"
	"github.com/user/setlist-archive-cli/layout"
	"github.com/user/setlist-archive-cli/pkg/timeutil"
)

type boxes struct {
	rects   map[string]geometry.Rect
	panicOn string
}

func (b *boxes) Bounds(id string) (geometry.Rect, bool) {
	if id == b.panicOn {
		panic("measure " + id)
	}
	r, ok := b.rects[id]
	return r, ok
}

type visible struct{ view layout.View }

func (v *visible) Visible() layout.View { return v.view }

var tabAnchors = []string{"tab-20240301", "tab-20250510", "tab-20251130"}

func pageBoxes() *boxes {
	return &boxes{rects: map[string]geometry.Rect{
		layout.OriginAnchor:  {X: 10, Y: 20, Width: 1000, Height: 800},
		layout.StripAnchor:   {X: 110, Y: 20, Width: 600, Height: 60},
		"tab-20240301":       {X: 120, Y: 30, Width: 80, Height: 20},
		"tab-20250510":       {X: 210, Y: 30, Width: 80, Height: 20},
		"tab-20251130":       {X: 120, Y: 55, Width: 80, Height: 20},
		"leftPanel-20240301": {X: 60, Y: 120, Width: 400, Height: 300},
		"li-20240301-0":      {X: 70, Y: 140, Width: 300, Height: 20},
		"li-20240301-1":      {X: 70, Y: 170, Width: 300, Height: 20},
		"li-20240301-2":      {X: 70, Y: 200, Width: 300, Height: 20},
		"li-20240301-3":      {X: 70, Y: 230, Width: 300, Height: 20},
		"v20240301":          {X: 560, Y: 140, Width: 320, Height: 180},
	}}
}

func setup(t *testing.T) (*layout.Adapter, *boxes, *visible) {
	t.Helper()
	deck := archive.NewDeck(archivetest.Sample())
	card, err := deck.Render("20240301")
	require.NoError(t, err)

	b := pageBoxes()
	v := &visible{view: layout.View{Cards: []*archive.Card{card}, Tabs: tabAnchors}}
	return layout.NewAdapter(b, v, geometry.DefaultTabTuning(), nil), b, v
}

func TestRedrawBuildsTabAndListConnectors(t *testing.T) {
	a, _, _ := setup(t)
	require.NoError(t, a.Redraw())

	scene := a.Scene()
	assert.Equal(t, 1000.0, scene.Width)
	assert.Equal(t, 800.0, scene.Height)
	require.Len(t, scene.Connectors, 4)

	tab := scene.Connectors[0]
	assert.Equal(t, layout.TabConnector, tab.Kind)
	assert.Equal(t, "tab-20240301", tab.Source)
	assert.Equal(t, "leftPanel-20240301", tab.Target)
	// Upper row tabs detour around the strip with four elbows.
	assert.Equal(t, 4, tab.Path.Curves())

	for i, c := range scene.Connectors[1:] {
		assert.Equal(t, layout.ListConnector, c.Kind)
		assert.Equal(t, archive.EntryAnchor("20240301", i), c.Source)
		assert.Equal(t, "v20240301", c.Target)
		assert.Equal(t, i, c.ColorIndex)
		assert.Equal(t, layout.NeutralStroke, c.Stroke())
		assert.Equal(t, "arrow", c.MarkerEnd())
	}
}

func TestListConnectorsFanOut(t *testing.T) {
	a, _, _ := setup(t)
	require.NoError(t, a.Redraw())

	c, ok := a.Scene().Connector("li-20240301-1")
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 360, Y: 160}, c.Path.Start())
	assert.Equal(t, geometry.Point{X: 550, Y: 210}, c.Path.End())
	// base midpoint 455, three links: offsets -8, 0, +8
	assert.Equal(t, "M 360.00,160.00 L 445.00,160.00 Q 455.00,160.00 455.00,170.00 "+
		"L 455.00,200.00 Q 455.00,210.00 465.00,210.00 L 550.00,210.00", c.Path.String())

	first, ok := a.Scene().Connector("li-20240301-0")
	require.True(t, ok)
	assert.Contains(t, first.Path.String(), "Q 447.00,130.00")
}

func TestLastRowTabConnector(t *testing.T) {
	a, b, _ := setup(t)
	b.rects["tab-20240301"] = geometry.Rect{X: 120, Y: 55, Width: 80, Height: 20}
	b.rects["tab-20251130"] = geometry.Rect{X: 120, Y: 30, Width: 80, Height: 20}
	require.NoError(t, a.Redraw())

	tab := a.Scene().Connectors[0]
	require.Equal(t, layout.TabConnector, tab.Kind)
	assert.Equal(t, 2, tab.Path.Curves())
	assert.Equal(t, geometry.Point{X: 150, Y: 55}, tab.Path.Start())
	assert.Equal(t, geometry.Point{X: 250, Y: 108}, tab.Path.End())
}

func TestFilteringDropsTabConnector(t *testing.T) {
	a, _, v := setup(t)
	v.view.Filtering = true
	require.NoError(t, a.Redraw())

	for _, c := range a.Scene().Connectors {
		assert.Equal(t, layout.ListConnector, c.Kind)
	}
	assert.Len(t, a.Scene().Connectors, 3)
}

func TestMissingAnchorsSkipConnector(t *testing.T) {
	a, b, _ := setup(t)
	delete(b.rects, "li-20240301-0")
	delete(b.rects, "leftPanel-20240301")
	require.NoError(t, a.Redraw())

	scene := a.Scene()
	require.Len(t, scene.Connectors, 2)
	assert.Equal(t, 1, scene.Connectors[0].ColorIndex)
	assert.Equal(t, 2, scene.Connectors[1].ColorIndex)
}

func TestMissingOriginKeepsScene(t *testing.T) {
	a, b, _ := setup(t)
	delete(b.rects, layout.OriginAnchor)
	require.NoError(t, a.Redraw())
	assert.Zero(t, a.Redraws())
	assert.Empty(t, a.Scene().Connectors)
}

func TestRedrawIsIdempotent(t *testing.T) {
	a, _, _ := setup(t)
	a.HoverEntry("li-20240301-2")
	a.ApplyPlaying("li-20240301-0")
	require.NoError(t, a.Redraw())
	first := a.Scene()
	require.NoError(t, a.Redraw())
	require.NoError(t, a.Redraw())
	assert.Equal(t, first, a.Scene())
	assert.Equal(t, 3, a.Redraws())
}

func TestRedrawRecoversPanic(t *testing.T) {
	a, b, _ := setup(t)
	require.NoError(t, a.Redraw())
	before := a.Scene()

	b.panicOn = "v20240301"
	assert.Error(t, a.Redraw())
	assert.Equal(t, before, a.Scene())

	b.panicOn = ""
	assert.NoError(t, a.Redraw())
	assert.Equal(t, 2, a.Redraws())
}

func TestPlayingAndHoverDecorations(t *testing.T) {
	a, _, _ := setup(t)
	require.NoError(t, a.Redraw())

	a.ApplyPlaying("li-20240301-1")
	c, _ := a.Scene().Connector("li-20240301-1")
	assert.True(t, c.Playing)
	assert.Equal(t, layout.Spectrum[1], c.Stroke())
	assert.Equal(t, "arrow-rainbow-1", c.MarkerEnd())
	playing, ok := a.Scene().Playing()
	require.True(t, ok)
	assert.Equal(t, "li-20240301-1", playing.Source)

	a.HoverEntry("li-20240301-1")
	a.LeaveEntry("li-20240301-1")
	c, _ = a.Scene().Connector("li-20240301-1")
	assert.Equal(t, layout.Spectrum[1], c.Stroke(), "playing connector stays lit after hover")

	a.HoverEntry("li-20240301-2")
	c, _ = a.Scene().Connector("li-20240301-2")
	assert.True(t, c.Active)
	assert.Equal(t, "arrow-rainbow-2", c.MarkerEnd())
	a.LeaveEntry("li-20240301-2")
	c, _ = a.Scene().Connector("li-20240301-2")
	assert.Equal(t, "arrow", c.MarkerEnd())

	a.ApplyPlaying("li-20240301-2")
	old, _ := a.Scene().Connector("li-20240301-1")
	assert.False(t, old.Playing)
	assert.Equal(t, layout.NeutralStroke, old.Stroke())

	a.ApplyPlaying("")
	_, ok = a.Scene().Playing()
	assert.False(t, ok)
}

func TestHoverConnectorLightsEntry(t *testing.T) {
	a, _, _ := setup(t)
	require.NoError(t, a.Redraw())

	a.HoverConnector("li-20240301-0")
	assert.True(t, a.Scene().EntryActive("li-20240301-0"))
	a.LeaveEntry("li-20240301-0")
	c, _ := a.Scene().Connector("li-20240301-0")
	assert.True(t, c.Active)

	src, ok := a.ConnectorSource("li-20240301-0")
	require.True(t, ok)
	assert.Equal(t, "li-20240301-0", src)
	_, ok = a.ConnectorSource("li-20240301-3")
	assert.False(t, ok)

	a.LeaveConnector("li-20240301-0")
	assert.False(t, a.Scene().EntryActive("li-20240301-0"))
	c, _ = a.Scene().Connector("li-20240301-0")
	assert.False(t, c.Active)
}

func TestColorIndexWraps(t *testing.T) {
	assert.Equal(t, 0, layout.ColorIndex(12))
	assert.Equal(t, 1, layout.ColorIndex(13))
	assert.Equal(t, 11, layout.ColorIndex(23))
}

func TestSceneCloneIsIndependent(t *testing.T) {
	a, _, _ := setup(t)
	require.NoError(t, a.Redraw())
	s := a.Scene()
	s.Connectors[0].Source = "changed"
	assert.Equal(t, "tab-20240301", a.Scene().Connectors[0].Source)
}

func TestSchedulerStagger(t *testing.T) {
	clock := timeutil.NewManualClock()
	n := 0
	s := layout.NewScheduler(clock, func() { n++ })

	s.Request()
	assert.Equal(t, 1, n)
	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, 2, n)
	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, 3, n)
	clock.Advance(150 * time.Millisecond)
	assert.Equal(t, 4, n)
	assert.Zero(t, s.Pending())

	s.Request()
	s.Request()
	assert.Equal(t, 6, n)
	assert.Equal(t, 6, s.Pending())
	clock.Advance(time.Second)
	assert.Equal(t, 12, n)

	s.After(100 * time.Millisecond)
	s.Stop()
	clock.Advance(time.Second)
	assert.Equal(t, 12, n)
}
