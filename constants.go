package skilift

// Default cost-model and geometry constants for edge providers.
// WalkingSpeed, WalkingReluctance, AlightingPenalty and SearchRadius are
// overridable via graph.Options; MidsegOffsetQuantum and EarthRadius are
// fixed.
const (
	// WalkingSpeed is meters per second for a pedestrian on a street
	// segment.
	WalkingSpeed = 1.2

	// WalkingReluctance multiplies walking time to trade it off
	// against waiting/riding time in the search cost.
	WalkingReluctance = 1.0

	// AlightingPenalty is a fixed cost, in seconds, added whenever a
	// rider gets off a vehicle.
	AlightingPenalty = 60.0

	// SearchRadius is the default radius, in degrees, used when
	// snapping a point to the nearest street segment.
	SearchRadius = 0.001

	// MidsegOffsetQuantum quantizes a MidSegmentRef's fractional
	// offset along a segment, so two floating point computations of
	// "the same" point collide to the same vertex key.
	MidsegOffsetQuantum = 1.0 / 100000.0

	// EarthRadius is the mean radius of the earth, in meters, used
	// by the haversine distance calculation.
	EarthRadius = 6371000.0
)
