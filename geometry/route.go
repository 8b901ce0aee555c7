package geometry

import "math"

// StraightThreshold is the horizontal offset below which a last-row tab
// connector is drawn as a plain line.
const StraightThreshold = 2.0

// TabTuning holds the tab connector layout constants.
type TabTuning struct {
	CurveRadius float64
	LeftMargin  float64
	Clearance   float64
	LocalDrop   float64
	ArrowExtend float64
}

// DefaultTabTuning returns the stock tab connector constants.
func DefaultTabTuning() TabTuning {
	return TabTuning{
		CurveRadius: 10,
		LeftMargin:  24,
		Clearance:   7,
		LocalDrop:   6,
		ArrowExtend: 8,
	}
}

// sign returns -1 or +1; zero maps to +1.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// ElbowRadii returns the effective corner radii for the two elbows of an
// orthogonal route through midX. Each is clamped to r, half its horizontal
// leg and half the vertical run.
func ElbowRadii(start, end Point, midX, r float64) (r1, r2 float64) {
	h1 := math.Abs(midX - start.X)
	h3 := math.Abs(end.X - midX)
	v := math.Abs(end.Y - start.Y)

	r1 = math.Max(0, math.Min(r, math.Min(h1/2, v/2)))
	r2 = math.Max(0, math.Min(r, math.Min(h3/2, v/2)))
	return r1, r2
}

// OrthogonalRoundedPath routes from start to end horizontally to midX,
// vertically to end.Y, then horizontally to end, rounding both elbows.
func OrthogonalRoundedPath(start, end Point, midX, r float64) Path {
	dir1 := sign(midX - start.X)
	dir3 := sign(end.X - midX)
	dirV := sign(end.Y - start.Y)

	rr1, rr2 := ElbowRadii(start, end, midX, r)

	b := &builder{}
	return b.move(start.X, start.Y).
		line(midX-dir1*rr1, start.Y).
		quad(midX, start.Y, midX, start.Y+dirV*rr1).
		line(midX, end.Y-dirV*rr2).
		quad(midX, end.Y, midX+dir3*rr2, end.Y).
		line(end.X, end.Y).
		path()
}

// TabConnectorPath routes from a date tab down into its card's left panel.
// All rects must share one origin. When lastRow is false the route detours
// around the tab strip on its left so it never crosses lower tab rows.
func TabConnectorPath(tab, panel, strip Rect, lastRow bool, t TabTuning) Path {
	sx := tab.CenterX()
	tabBottom := tab.Bottom()
	dropY := tabBottom + t.LocalDrop

	ex := panel.CenterX()
	ey := panel.Top() + t.ArrowExtend

	clearY := strip.Bottom() + t.Clearance

	b := &builder{}
	if lastRow {
		dir := -1.0
		if ex > sx {
			dir = 1
		}
		horiz := math.Abs(ex - sx)
		if horiz < StraightThreshold {
			return b.move(sx, tabBottom).line(ex, ey).path()
		}
		drop := ey - clearY
		r := math.Max(0, math.Min(t.CurveRadius, math.Min(horiz/2, drop/2)))

		return b.move(sx, tabBottom).
			line(sx, clearY-r).
			quad(sx, clearY, sx+dir*r, clearY).
			line(ex-dir*r, clearY).
			quad(ex, clearY, ex, clearY+r).
			line(ex, ey).
			path()
	}

	safeX := math.Max(10, strip.Left()-t.LeftMargin)
	r := math.Min(t.CurveRadius, math.Abs(clearY-dropY)/2)

	return b.move(sx, tabBottom).
		line(sx, dropY-r).
		quad(sx, dropY, sx-r, dropY).
		line(safeX+r, dropY).
		quad(safeX, dropY, safeX, dropY+r).
		line(safeX, clearY-r).
		quad(safeX, clearY, safeX+r, clearY).
		line(ex-r, clearY).
		quad(ex, clearY, ex, clearY+r).
		line(ex, ey).
		path()
}
