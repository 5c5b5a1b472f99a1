package skilift

import "github.com/pkg/errors"

// ErrMalformedFeed is returned when a GTFS feed is missing a required
// file, has an unparseable time field, or violates a timetable
// invariant. Fatal at ingest.
var ErrMalformedFeed = errors.New("skilift: malformed feed")

// ErrOutOfRange names a coordinate outside [-180,180]x[-90,90], or an
// index argument out of bounds. No function in this module returns it:
// coordinates are not range-checked, and street.SegmentEndpoints does
// not check its segment index.
var ErrOutOfRange = errors.New("skilift: value out of range")

// ErrNotFound is returned when a lookup by id or name has no match.
var ErrNotFound = errors.New("skilift: not found")
