package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSimple(t *testing.T) *Timetable {
	tripIDs := []string{"t1", "t2", "t3"}
	stopIDs := []string{"a", "b", "c"}

	// three trips, each visiting a -> b -> c, five minutes apart
	arrival := [][]uint32{
		{0, 100, 200},
		{300, 400, 500},
		{600, 700, 800},
	}
	departure := [][]uint32{
		{10, 110, 210},
		{310, 410, 510},
		{610, 710, 810},
	}

	tt, err := Build(tripIDs, stopIDs, arrival, departure)
	require.NoError(t, err)
	return tt
}

func TestNextDeparture(t *testing.T) {
	tt := buildSimple(t)

	tripIdx, eventTime, ok := tt.NextDeparture(0, 50)
	require.True(t, ok)
	assert.Equal(t, 1, tripIdx)
	assert.Equal(t, uint32(310), eventTime)

	// exact match should be returned (side=left semantics)
	tripIdx, eventTime, ok = tt.NextDeparture(0, 310)
	require.True(t, ok)
	assert.Equal(t, 1, tripIdx)
	assert.Equal(t, uint32(310), eventTime)

	// past the last departure
	_, _, ok = tt.NextDeparture(0, 1000)
	assert.False(t, ok)

	// no departure from the last stop in the pattern
	_, _, ok = tt.NextDeparture(2, 0)
	assert.False(t, ok)
}

func TestPrevArrival(t *testing.T) {
	tt := buildSimple(t)

	tripIdx, eventTime, ok := tt.PrevArrival(2, 750)
	require.True(t, ok)
	assert.Equal(t, 1, tripIdx)
	assert.Equal(t, uint32(500), eventTime)

	// exact departure match is included (side=right semantics)
	tripIdx, eventTime, ok = tt.PrevArrival(2, 610)
	require.True(t, ok)
	assert.Equal(t, 1, tripIdx)
	assert.Equal(t, uint32(500), eventTime)

	// before the first departure
	_, _, ok = tt.PrevArrival(2, 5)
	assert.False(t, ok)

	// no arrival at the first stop in the pattern
	_, _, ok = tt.PrevArrival(0, 1000)
	assert.False(t, ok)
}

func TestEventsAtRevisitedStop(t *testing.T) {
	// pattern revisits stop "a" at positions 0 and 2; neither is the
	// terminal stop, so both have a departure
	tripIDs := []string{"t1"}
	stopIDs := []string{"a", "b", "a", "c"}
	arrival := [][]uint32{{0, 100, 200, 300}}
	departure := [][]uint32{{10, 110, 210, 310}}

	tt, err := Build(tripIDs, stopIDs, arrival, departure)
	require.NoError(t, err)

	events := tt.EventsAt("a", 0, true)
	require.Len(t, events, 2)
	assert.Equal(t, 0, events[0].StopIdx)
	assert.Equal(t, 2, events[1].StopIdx)
}

func TestBuildSortsTripsByDeparture(t *testing.T) {
	tripIDs := []string{"late", "early"}
	stopIDs := []string{"a", "b"}
	arrival := [][]uint32{{500, 600}, {0, 100}}
	departure := [][]uint32{{510, 610}, {10, 110}}

	tt, err := Build(tripIDs, stopIDs, arrival, departure)
	require.NoError(t, err)

	assert.Equal(t, []string{"early", "late"}, tt.TripIDs)
}

func TestBuildRejectsNonFIFOSchedule(t *testing.T) {
	tripIDs := []string{"t1", "t2"}
	stopIDs := []string{"a", "b"}
	// t1 departs a before t2, but arrives at b after t2: they cross.
	arrival := [][]uint32{{0, 500}, {10, 100}}
	departure := [][]uint32{{0, 510}, {10, 110}}

	_, err := Build(tripIDs, stopIDs, arrival, departure)
	assert.ErrorIs(t, err, ErrNotFIFO)
}
