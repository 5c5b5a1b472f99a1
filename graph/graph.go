// Package graph supplies the typed vertex graph's edges on demand: a
// TransitProvider for boarding/riding/alighting, a StreetProvider for
// walking the street network, and a ConnectorProvider bridging the
// two. Edges are generated lazily from Outgoing(v) rather than
// materialized up front.
package graph

import (
	"math"

	"github.com/pkg/errors"

	"github.com/bmander/skilift"
	"github.com/bmander/skilift/vertex"
)

// ErrUnsupported is returned by every provider's Incoming, which this
// graph never needs: search only walks forward from the origin.
var ErrUnsupported = errors.New("graph: incoming edges unsupported")

// EdgeProvider generates the edges leaving a vertex on demand.
type EdgeProvider interface {
	Outgoing(v vertex.Vertex) ([]vertex.Edge, error)
	Incoming(v vertex.Vertex) ([]vertex.Edge, error)
}

// Options overrides the cost-model defaults of the package skilift
// constants, so a search driver can tune weights without touching
// provider code.
type Options struct {
	WalkingSpeed      float64
	WalkingReluctance float64
	AlightingPenalty  float64
	SearchRadius      float64
}

// DefaultOptions mirrors the package-level constants.
func DefaultOptions() Options {
	return Options{
		WalkingSpeed:      skilift.WalkingSpeed,
		WalkingReluctance: skilift.WalkingReluctance,
		AlightingPenalty:  skilift.AlightingPenalty,
		SearchRadius:      skilift.SearchRadius,
	}
}

// HaversineDistance returns the great-circle distance, in meters,
// between two (lon, lat) points.
func HaversineDistance(aLon, aLat, bLon, bLat float64) float64 {
	aLatRad := aLat * math.Pi / 180
	aLonRad := aLon * math.Pi / 180
	bLatRad := bLat * math.Pi / 180
	bLonRad := bLon * math.Pi / 180
	deltaLat := aLatRad - bLatRad
	deltaLon := aLonRad - bLonRad

	a := math.Cos(aLatRad)*math.Cos(bLatRad)*math.Pow(math.Sin(deltaLon/2), 2) + math.Pow(math.Sin(deltaLat/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return c * skilift.EarthRadius
}

func walkWeight(meters float64, opts Options) float64 {
	return meters / opts.WalkingSpeed * opts.WalkingReluctance
}

func walkSeconds(meters float64, opts Options) uint32 {
	return uint32(meters / opts.WalkingSpeed)
}

