// Package geometry computes orthogonal, rounded connector paths between
// on-screen boxes. Everything here is pure: no state, no I/O.
package geometry

import (
	"fmt"
	"strings"
)

// Point is a position in layout units.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box in layout units.
type Rect struct {
	X, Y, Width, Height float64
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal centre.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical centre.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Relative returns r translated so that origin's top-left corner becomes (0,0).
func (r Rect) Relative(origin Rect) Rect {
	return Rect{X: r.X - origin.X, Y: r.Y - origin.Y, Width: r.Width, Height: r.Height}
}

// SegmentKind identifies a path command.
type SegmentKind byte

const (
	MoveTo SegmentKind = 'M'
	LineTo SegmentKind = 'L'
	// QuadTo is a quadratic curve through Ctrl ending at To.
	QuadTo SegmentKind = 'Q'
)

// Segment is one path command.
type Segment struct {
	Kind SegmentKind
	Ctrl Point
	To   Point
}

// Path is an ordered list of segments starting with a MoveTo.
type Path struct {
	Segments []Segment
}

// Start returns the first point of the path.
func (p Path) Start() Point {
	if len(p.Segments) == 0 {
		return Point{}
	}
	return p.Segments[0].To
}

// End returns the last point of the path.
func (p Path) End() Point {
	if len(p.Segments) == 0 {
		return Point{}
	}
	return p.Segments[len(p.Segments)-1].To
}

// Curves reports how many quadratic segments the path contains.
func (p Path) Curves() int {
	n := 0
	for _, s := range p.Segments {
		if s.Kind == QuadTo {
			n++
		}
	}
	return n
}

// String renders the path as SVG path data with two decimals per coordinate.
func (p Path) String() string {
	parts := make([]string, 0, len(p.Segments))
	for _, s := range p.Segments {
		switch s.Kind {
		case QuadTo:
			parts = append(parts, fmt.Sprintf("Q %s %s", pt(s.Ctrl), pt(s.To)))
		default:
			parts = append(parts, fmt.Sprintf("%c %s", s.Kind, pt(s.To)))
		}
	}
	return strings.Join(parts, " ")
}

func pt(p Point) string {
	return fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
}

// builder accumulates segments.
type builder struct {
	segs []Segment
}

func (b *builder) move(x, y float64) *builder {
	b.segs = append(b.segs, Segment{Kind: MoveTo, To: Point{x, y}})
	return b
}

func (b *builder) line(x, y float64) *builder {
	b.segs = append(b.segs, Segment{Kind: LineTo, To: Point{x, y}})
	return b
}

func (b *builder) quad(cx, cy, x, y float64) *builder {
	b.segs = append(b.segs, Segment{Kind: QuadTo, Ctrl: Point{cx, cy}, To: Point{x, y}})
	return b
}

func (b *builder) path() Path {
	return Path{Segments: b.segs}
}
