// Package vertex models the typed routing graph's six vertex kinds as
// a sealed interface with one comparable struct per variant, so a
// Vertex can be used directly as a map key: Go's interface equality
// already compares dynamic type before value, so two different
// variants never collide even if their fields happen to match.
package vertex

import (
	"github.com/bmander/skilift"
	"github.com/bmander/skilift/pattern"
	"github.com/bmander/skilift/street"
)

// Vertex is the sealed union of every routable location in the graph.
type Vertex interface {
	Kind() string
	isVertex()
}

// Edge is one directed transition out of a vertex.
type Edge struct {
	To     Vertex
	Weight float64
}

// OnEarthSurface is an arbitrary (lon, lat) point not yet snapped to
// the street network -- a journey's origin or destination.
type OnEarthSurface struct {
	Lon float64
	Lat float64
}

func (OnEarthSurface) Kind() string { return "OnEarthSurface" }
func (OnEarthSurface) isVertex()    {}

// Midstreet is a point along a street segment, reached by walking.
type Midstreet struct {
	Ref  street.MidSegmentRef
	Time uint32
}

func (Midstreet) Kind() string { return "Midstreet" }
func (Midstreet) isVertex()    {}

// NewMidstreet quantizes offset to skilift.MidsegOffsetQuantum so
// that two floating point computations of "the same" point collide to
// an equal Vertex.
func NewMidstreet(seg street.SegmentRef, offset float64, t uint32) Midstreet {
	q := skilift.MidsegOffsetQuantum
	quantized := float64(int64(offset/q+0.5)) * q
	return Midstreet{Ref: street.MidSegmentRef{Segment: seg, Offset: quantized}, Time: t}
}

// StreetNode is a junction node in the street graph.
type StreetNode struct {
	NodeID int64
	Time   uint32
}

func (StreetNode) Kind() string { return "StreetNode" }
func (StreetNode) isVertex()    {}

// AtStop is a rider standing at a transit stop, not yet boarded.
type AtStop struct {
	StopID string
	Time   uint32
}

func (AtStop) Kind() string { return "AtStop" }
func (AtStop) isVertex()    {}

// Departure is a rider boarding trip Row of pattern Pattern/service
// Service at stop column Col, departing at Time.
type Departure struct {
	Pattern pattern.ID
	Service string
	Row     int
	Col     int
	Time    uint32
}

func (Departure) Kind() string { return "Departure" }
func (Departure) isVertex()    {}

// Arrival is a rider still onboard trip Row, having just reached stop
// column Col at Time.
type Arrival struct {
	Pattern pattern.ID
	Service string
	Row     int
	Col     int
	Time    uint32
}

func (Arrival) Kind() string { return "Arrival" }
func (Arrival) isVertex()    {}
