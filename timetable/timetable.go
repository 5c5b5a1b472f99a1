// Package timetable indexes a single (stop pattern, service) schedule
// as a trip x stop matrix, and answers "next departure"/"previous
// arrival" queries against it with binary search.
package timetable

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrNotFIFO is returned by Build when two trips in the same pattern
// cross each other at a stop -- the schedule isn't first-in-first-out,
// which binary search over departure time assumes.
var ErrNotFIFO = errors.New("timetable: departure times are not FIFO ordered at every stop")

// Event is one scheduled visit, identified by its position in the
// timetable's trip x stop matrix.
type Event struct {
	TripIdx int
	StopIdx int
	Time    uint32
}

// Timetable holds every trip sharing one stop pattern and service_id,
// as parallel trip x stop matrices of arrival and departure times.
// Rows (trips) are sorted so that every column (stop) is non-decreasing
// top to bottom -- the FIFO property that makes binary search valid.
type Timetable struct {
	TripIDs []string
	StopIDs []string

	// ArrivalTimes[row][col] / DepartureTimes[row][col], seconds
	// since midnight (which may exceed 86400, see model.StopTime).
	ArrivalTimes   [][]uint32
	DepartureTimes [][]uint32
}

// Build constructs a Timetable from per-trip rows of stop-ordered
// arrival/departure times, sorting trips by first departure and
// verifying the FIFO property holds at every stop.
func Build(tripIDs []string, stopIDs []string, arrival, departure [][]uint32) (*Timetable, error) {
	n := len(tripIDs)
	if len(arrival) != n || len(departure) != n {
		return nil, errors.New("timetable: trip count mismatch between ids and time matrices")
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if len(departure[order[i]]) == 0 || len(departure[order[j]]) == 0 {
			return false
		}
		return departure[order[i]][0] < departure[order[j]][0]
	})

	tt := &Timetable{
		TripIDs:        make([]string, n),
		StopIDs:        stopIDs,
		ArrivalTimes:   make([][]uint32, n),
		DepartureTimes: make([][]uint32, n),
	}
	for i, src := range order {
		tt.TripIDs[i] = tripIDs[src]
		tt.ArrivalTimes[i] = arrival[src]
		tt.DepartureTimes[i] = departure[src]
	}

	if err := tt.verifyFIFO(); err != nil {
		return nil, err
	}

	return tt, nil
}

func (tt *Timetable) verifyFIFO() error {
	for col := range tt.StopIDs {
		for row := range tt.TripIDs {
			if tt.ArrivalTimes[row][col] > tt.DepartureTimes[row][col] {
				return ErrNotFIFO
			}
			if col < len(tt.StopIDs)-1 && tt.DepartureTimes[row][col] >= tt.ArrivalTimes[row][col+1] {
				return ErrNotFIFO
			}
			if row > 0 {
				if tt.DepartureTimes[row][col] < tt.DepartureTimes[row-1][col] {
					return ErrNotFIFO
				}
				if tt.ArrivalTimes[row][col] < tt.ArrivalTimes[row-1][col] {
					return ErrNotFIFO
				}
			}
		}
	}
	return nil
}

// NextDeparture finds the earliest trip departing stopIdx at or after
// queryTime. There is never a departure from the last stop in a
// pattern.
func (tt *Timetable) NextDeparture(stopIdx int, queryTime uint32) (tripIdx int, eventTime uint32, ok bool) {
	if stopIdx == len(tt.StopIDs)-1 {
		return 0, 0, false
	}

	col := column(tt.DepartureTimes, stopIdx)
	row := sort.Search(len(col), func(i int) bool { return col[i] >= queryTime })
	if row == len(col) {
		return 0, 0, false
	}

	return row, tt.DepartureTimes[row][stopIdx], true
}

// PrevArrival finds the latest trip whose departure from stopIdx is at
// or before queryTime, and returns that trip's arrival time at
// stopIdx. There is never an arrival at the first stop in a pattern.
//
// Like the reference implementation this searches the departure-time
// column rather than arrival times, since that is the column the FIFO
// property is verified against.
func (tt *Timetable) PrevArrival(stopIdx int, queryTime uint32) (tripIdx int, eventTime uint32, ok bool) {
	if stopIdx == 0 {
		return 0, 0, false
	}

	col := column(tt.DepartureTimes, stopIdx)
	row := sort.Search(len(col), func(i int) bool { return col[i] > queryTime }) - 1
	if row < 0 {
		return 0, 0, false
	}

	return row, tt.ArrivalTimes[row][stopIdx], true
}

// EventsAt looks up every occurrence of stopID in the pattern (a
// pattern may revisit a stop), returning the next departure (or
// previous arrival) event at each occurrence.
func (tt *Timetable) EventsAt(stopID string, queryTime uint32, nextDeparture bool) []Event {
	var events []Event
	for stopIdx, s := range tt.StopIDs {
		if s != stopID {
			continue
		}

		var (
			tripIdx int
			t       uint32
			ok      bool
		)
		if nextDeparture {
			tripIdx, t, ok = tt.NextDeparture(stopIdx, queryTime)
		} else {
			tripIdx, t, ok = tt.PrevArrival(stopIdx, queryTime)
		}
		if ok {
			events = append(events, Event{TripIdx: tripIdx, StopIdx: stopIdx, Time: t})
		}
	}
	return events
}

func column(matrix [][]uint32, col int) []uint32 {
	out := make([]uint32, len(matrix))
	for i, row := range matrix {
		out[i] = row[col]
	}
	return out
}
