// Package layout turns measured anchor boxes into the connector scene drawn
// between setlist entries, tabs and video placeholders.
package layout

import (
	"fmt"
	"slices"

	"github.com/user/setlist-archive-cli/geometry"
)

const (
	// OriginAnchor is the box every other box is measured relative to.
	OriginAnchor = "wrap"
	// StripAnchor is the tab strip box.
	StripAnchor = "tabStrip"

	// StaggerSpacing separates the vertical legs of a card's list connectors.
	StaggerSpacing = 8.0
	// ListCornerRadius is the elbow radius of list connectors.
	ListCornerRadius = 10.0

	// NeutralStroke colours connectors that are neither hovered nor playing.
	NeutralStroke = "#8a8f98"
)

// Spectrum is the fixed rainbow connectors cycle through.
var Spectrum = [12]string{
	"#FF0000", "#FF4500", "#FF8C00", "#FFD700",
	"#ADFF2F", "#32CD32", "#00CED1", "#1E90FF",
	"#0000FF", "#4B0082", "#8B00FF", "#FF1493",
}

// ColorIndex maps a connector's position among its card's links to a
// spectrum slot.
func ColorIndex(i int) int {
	return i % len(Spectrum)
}

// MarkerID returns the arrowhead marker id for a spectrum slot.
func MarkerID(colorIndex int) string {
	return fmt.Sprintf("arrow-rainbow-%d", colorIndex)
}

// Kind distinguishes tab connectors from list connectors.
type Kind string

const (
	TabConnector  Kind = "tab"
	ListConnector Kind = "list"
)

// Connector is one routed path of the scene.
type Connector struct {
	// Source is the anchor the path starts from: an entry id for list
	// connectors, a tab anchor for tab connectors.
	Source     string
	Target     string
	CardID     string
	Kind       Kind
	ColorIndex int
	Path       geometry.Path
	Active     bool
	Playing    bool
}

// Lit reports whether the connector shows its spectrum colour.
func (c Connector) Lit() bool {
	return c.Kind == ListConnector && (c.Active || c.Playing)
}

// Stroke returns the connector's current stroke colour.
func (c Connector) Stroke() string {
	if c.Lit() {
		return Spectrum[c.ColorIndex]
	}
	return NeutralStroke
}

// MarkerEnd returns the id of the arrowhead marker to draw.
func (c Connector) MarkerEnd() string {
	if c.Lit() {
		return MarkerID(c.ColorIndex)
	}
	return "arrow"
}

// Scene is the full connector set of one redraw plus the hover decorations
// applied on top of it.
type Scene struct {
	Width      float64
	Height     float64
	Connectors []Connector
	// ActiveEntries are entries lit by hovering their connector.
	ActiveEntries []string
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s Scene) Clone() Scene {
	return Scene{
		Width:         s.Width,
		Height:        s.Height,
		Connectors:    slices.Clone(s.Connectors),
		ActiveEntries: slices.Clone(s.ActiveEntries),
	}
}

// Connector returns the list connector starting at source.
func (s Scene) Connector(source string) (Connector, bool) {
	for _, c := range s.Connectors {
		if c.Kind == ListConnector && c.Source == source {
			return c, true
		}
	}
	return Connector{}, false
}

// Playing returns the connector carrying the playing decoration.
func (s Scene) Playing() (Connector, bool) {
	for _, c := range s.Connectors {
		if c.Playing {
			return c, true
		}
	}
	return Connector{}, false
}

// EntryActive reports whether the entry is lit by a connector hover.
func (s Scene) EntryActive(id string) bool {
	return slices.Contains(s.ActiveEntries, id)
}
