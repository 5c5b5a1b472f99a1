// Package pattern canonicalizes GTFS trips into dense stop-pattern ids.
// Every trip that visits the same ordered tuple of stop_ids shares a
// pattern; a timetable is then built per (pattern, service_id) pair
// rather than per trip, since trips sharing a pattern and service
// differ only in their departure offsets.
package pattern

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/bmander/skilift/storage"
)

// ID is a dense index into Index.Stops, assigned in first-seen order.
type ID int

// Index maps trips to stop patterns and back.
type Index struct {
	// Stops holds, for every pattern id, the ordered tuple of
	// stop_ids every trip in that pattern visits.
	Stops [][]string

	// TripPattern is the pattern id of every known trip_id.
	TripPattern map[string]ID

	// StopPatterns is, for every stop_id, the set of pattern ids
	// with a visit to that stop. Used to seed a search starting at
	// a given stop.
	StopPatterns map[string]map[ID]bool
}

// stopKey joins a stop-id tuple into a single map key. GTFS stop_ids
// can't contain commas (they're CSV fields), so this is collision-free
// in practice; the teacher's own CSV tags make the same assumption.
func stopKey(stopIDs []string) string {
	return strings.Join(stopIDs, ",")
}

// Build groups every trip in reader by its ordered stop_id sequence.
func Build(reader storage.FeedReader) (*Index, error) {
	trips, err := reader.Trips()
	if err != nil {
		return nil, errors.Wrap(err, "reading trips")
	}

	stopTimesByTrip, err := reader.StopTimesByTrip()
	if err != nil {
		return nil, errors.Wrap(err, "reading stop times")
	}

	patternIDByKey := map[string]ID{}
	patternStops := [][]string{}
	tripPattern := map[string]ID{}

	for _, trip := range trips {
		stopTimes := stopTimesByTrip[trip.ID]
		if len(stopTimes) == 0 {
			continue
		}

		stopIDs := make([]string, len(stopTimes))
		for i, st := range stopTimes {
			stopIDs[i] = st.StopID
		}

		key := stopKey(stopIDs)
		id, ok := patternIDByKey[key]
		if !ok {
			id = ID(len(patternStops))
			patternIDByKey[key] = id
			patternStops = append(patternStops, stopIDs)
		}

		tripPattern[trip.ID] = id
	}

	stopPatterns := map[string]map[ID]bool{}
	for id, stopIDs := range patternStops {
		for _, stopID := range stopIDs {
			if stopPatterns[stopID] == nil {
				stopPatterns[stopID] = map[ID]bool{}
			}
			stopPatterns[stopID][ID(id)] = true
		}
	}

	return &Index{
		Stops:        patternStops,
		TripPattern:  tripPattern,
		StopPatterns: stopPatterns,
	}, nil
}

// StopSequence returns the ordered stop_id tuple for pattern id.
func (idx *Index) StopSequence(id ID) ([]string, error) {
	if int(id) < 0 || int(id) >= len(idx.Stops) {
		return nil, errors.Errorf("unknown pattern id %d", id)
	}
	return idx.Stops[id], nil
}

// StopPosition returns the index of stopID within pattern id's stop
// sequence, or false if the pattern never visits that stop.
func (idx *Index) StopPosition(id ID, stopID string) (int, bool) {
	if int(id) < 0 || int(id) >= len(idx.Stops) {
		return 0, false
	}
	for i, s := range idx.Stops[id] {
		if s == stopID {
			return i, true
		}
	}
	return 0, false
}
