package geometry

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertFinite(t *testing.T, p Path) {
	t.Helper()
	for _, s := range p.Segments {
		for _, v := range []float64{s.To.X, s.To.Y, s.Ctrl.X, s.Ctrl.Y} {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "non-finite coordinate in %s", p)
		}
	}
}

func TestOrthogonalRoundedPathShape(t *testing.T) {
	p := OrthogonalRoundedPath(Point{0, 0}, Point{100, 50}, 50, 10)

	require.Len(t, p.Segments, 6)
	kinds := []SegmentKind{MoveTo, LineTo, QuadTo, LineTo, QuadTo, LineTo}
	for i, s := range p.Segments {
		assert.Equal(t, kinds[i], s.Kind, "segment %d", i)
	}
	assert.Equal(t, "M 0.00,0.00 L 40.00,0.00 Q 50.00,0.00 50.00,10.00 L 50.00,40.00 Q 50.00,50.00 60.00,50.00 L 100.00,50.00", p.String())
}

func TestOrthogonalRoundedPathUpwardAndLeftward(t *testing.T) {
	p := OrthogonalRoundedPath(Point{100, 50}, Point{0, 0}, 50, 10)

	assert.Equal(t, Point{60, 50}, p.Segments[1].To)
	assert.Equal(t, Point{50, 40}, p.Segments[2].To)
	assert.Equal(t, Point{50, 10}, p.Segments[3].To)
	assert.Equal(t, Point{40, 0}, p.Segments[4].To)
}

func TestOrthogonalRoundedPathDegenerate(t *testing.T) {
	cases := []struct {
		name       string
		start, end Point
		mid        float64
	}{
		{"start equals end", Point{10, 10}, Point{10, 10}, 10},
		{"start on midline", Point{10, 0}, Point{50, 40}, 10},
		{"end on midline", Point{0, 0}, Point{30, 40}, 30},
		{"flat", Point{0, 20}, Point{80, 20}, 40},
		{"all zero", Point{}, Point{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := OrthogonalRoundedPath(tc.start, tc.end, tc.mid, 12)
			require.Len(t, p.Segments, 6)
			assertFinite(t, p)
			assert.Equal(t, tc.start, p.Start())
			assert.Equal(t, tc.end, p.End())
		})
	}
}

func TestElbowRadiiNeverOvershoot(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for i := 0; i < 5000; i++ {
		start := Point{rng.Float64()*800 - 400, rng.Float64()*800 - 400}
		end := Point{rng.Float64()*800 - 400, rng.Float64()*800 - 400}
		mid := rng.Float64()*800 - 400
		r := rng.Float64() * 30

		r1, r2 := ElbowRadii(start, end, mid, r)
		h1 := math.Abs(mid - start.X)
		h3 := math.Abs(end.X - mid)
		v := math.Abs(end.Y - start.Y)

		assert.LessOrEqual(t, r1, r)
		assert.LessOrEqual(t, r2, r)
		assert.LessOrEqual(t, r1, h1/2)
		assert.LessOrEqual(t, r2, h3/2)
		assert.LessOrEqual(t, r1, v/2)
		assert.LessOrEqual(t, r2, v/2)
		assert.GreaterOrEqual(t, r1, 0.0)
		assert.GreaterOrEqual(t, r2, 0.0)

		assertFinite(t, OrthogonalRoundedPath(start, end, mid, r))
	}
}

func TestTabConnectorStraightWhenAligned(t *testing.T) {
	tab := Rect{X: 100, Y: 0, Width: 60, Height: 20}
	panel := Rect{X: 30.5, Y: 80, Width: 200, Height: 300}
	strip := Rect{X: 0, Y: 0, Width: 400, Height: 20}

	p := TabConnectorPath(tab, panel, strip, true, DefaultTabTuning())

	require.Len(t, p.Segments, 2)
	assert.Equal(t, 0, p.Curves())
	assert.Equal(t, Point{130, 20}, p.Start())
	assert.Equal(t, Point{130.5, 88}, p.End())
	assert.Equal(t, "M 130.00,20.00 L 130.50,88.00", p.String())
}

func TestTabConnectorLastRow(t *testing.T) {
	tab := Rect{X: 300, Y: 0, Width: 60, Height: 20}
	panel := Rect{X: 0, Y: 80, Width: 200, Height: 300}
	strip := Rect{X: 0, Y: 0, Width: 400, Height: 20}

	p := TabConnectorPath(tab, panel, strip, true, DefaultTabTuning())

	require.Len(t, p.Segments, 6)
	assert.Equal(t, 2, p.Curves())
	// drops to strip.Bottom+7 = 27, runs left to x=100, enters panel at 88
	assert.Equal(t, Point{330, 17}, p.Segments[1].To)
	assert.Equal(t, Point{320, 27}, p.Segments[2].To)
	assert.Equal(t, Point{110, 27}, p.Segments[3].To)
	assert.Equal(t, Point{100, 37}, p.Segments[4].To)
	assert.Equal(t, Point{100, 88}, p.End())
}

func TestTabConnectorLastRowShortDropNeverNegative(t *testing.T) {
	tab := Rect{X: 300, Y: 0, Width: 60, Height: 20}
	panel := Rect{X: 0, Y: 0, Width: 200, Height: 10}
	strip := Rect{X: 0, Y: 0, Width: 400, Height: 20}

	p := TabConnectorPath(tab, panel, strip, true, DefaultTabTuning())
	assertFinite(t, p)
	// radius clamps at zero: the corner collapses onto its vertex
	assert.Equal(t, Point{330, 27}, p.Segments[1].To)
}

func TestTabConnectorUpperRowDetoursLeft(t *testing.T) {
	tab := Rect{X: 200, Y: 0, Width: 60, Height: 20}
	panel := Rect{X: 40, Y: 120, Width: 200, Height: 300}
	strip := Rect{X: 50, Y: 0, Width: 400, Height: 60}

	p := TabConnectorPath(tab, panel, strip, false, DefaultTabTuning())

	require.Len(t, p.Segments, 10)
	assert.Equal(t, 4, p.Curves())
	assertFinite(t, p)

	// clearance column: max(10, 50-24) = 26
	assert.Equal(t, Point{26, 36}, p.Segments[4].To)
	assert.Equal(t, Point{26, 57}, p.Segments[5].To)
	assert.Equal(t, Point{140, 128}, p.End())
	for _, s := range p.Segments[3:7] {
		assert.LessOrEqual(t, s.To.X, 50.0, "detour must stay left of the strip")
	}
}

func TestTabConnectorClearanceColumnFloor(t *testing.T) {
	tab := Rect{X: 100, Y: 0, Width: 60, Height: 20}
	panel := Rect{X: 0, Y: 120, Width: 200, Height: 300}
	strip := Rect{X: 5, Y: 0, Width: 400, Height: 60}

	p := TabConnectorPath(tab, panel, strip, false, DefaultTabTuning())
	assert.Equal(t, 10.0, p.Segments[4].Ctrl.X)
}

func TestRectRelative(t *testing.T) {
	r := Rect{X: 110, Y: 220, Width: 30, Height: 40}.Relative(Rect{X: 10, Y: 20})
	assert.Equal(t, Rect{X: 100, Y: 200, Width: 30, Height: 40}, r)
	assert.Equal(t, 115.0, r.CenterX())
	assert.Equal(t, 240.0, r.Bottom())
}
