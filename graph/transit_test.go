package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmander/skilift"
	"github.com/bmander/skilift/model"
	"github.com/bmander/skilift/storage"
	"github.com/bmander/skilift/vertex"
)

func buildTransitFeed(t *testing.T) *skilift.Feed {
	mem := storage.NewMemory()

	require.NoError(t, mem.WriteStop(model.Stop{ID: "A", Name: "A"}))
	require.NoError(t, mem.WriteStop(model.Stop{ID: "B", Name: "B"}))

	require.NoError(t, mem.WriteCalendar(model.Calendar{
		ServiceID: "wd",
		StartDate: "20200101",
		EndDate:   "20201231",
		Weekday:   1 << time.Monday,
	}))

	require.NoError(t, mem.BeginTrips())
	require.NoError(t, mem.WriteTrip(model.Trip{ID: "t1", RouteID: "r1", ServiceID: "wd"}))
	require.NoError(t, mem.EndTrips())

	require.NoError(t, mem.BeginStopTimes())
	require.NoError(t, mem.WriteStopTime(model.StopTime{TripID: "t1", StopID: "A", StopSequence: 0, Arrival: 28800, Departure: 28800}))
	require.NoError(t, mem.WriteStopTime(model.StopTime{TripID: "t1", StopID: "B", StopSequence: 1, Arrival: 29400, Departure: 29500}))
	require.NoError(t, mem.EndStopTimes())

	feed, err := skilift.Build(mem)
	require.NoError(t, err)
	return feed
}

func TestTransitProviderFromAtStop(t *testing.T) {
	feed := buildTransitFeed(t)
	p := NewTransitProvider(feed, "20200106", DefaultOptions())

	edges, err := p.Outgoing(vertex.AtStop{StopID: "A", Time: 28000})
	require.NoError(t, err)
	require.Len(t, edges, 1)

	dep, ok := edges[0].To.(vertex.Departure)
	require.True(t, ok)
	assert.Equal(t, uint32(28800), dep.Time)
	assert.Equal(t, float64(800), edges[0].Weight)
}

func TestTransitProviderFromDeparture(t *testing.T) {
	feed := buildTransitFeed(t)
	p := NewTransitProvider(feed, "20200106", DefaultOptions())

	edges, err := p.Outgoing(vertex.Departure{Pattern: 0, Service: "wd", Row: 0, Col: 0, Time: 28800})
	require.NoError(t, err)
	require.Len(t, edges, 1)

	arr, ok := edges[0].To.(vertex.Arrival)
	require.True(t, ok)
	assert.Equal(t, uint32(29400), arr.Time)
}

func TestTransitProviderFromArrivalOrdersWaitThenAlight(t *testing.T) {
	feed := buildTransitFeed(t)
	p := NewTransitProvider(feed, "20200106", DefaultOptions())

	edges, err := p.Outgoing(vertex.Arrival{Pattern: 0, Service: "wd", Row: 0, Col: 1, Time: 29400})
	require.NoError(t, err)
	require.Len(t, edges, 2)

	_, isDeparture := edges[0].To.(vertex.Departure)
	assert.True(t, isDeparture)

	atStop, isAtStop := edges[1].To.(vertex.AtStop)
	require.True(t, isAtStop)
	assert.Equal(t, "B", atStop.StopID)
	assert.Equal(t, skilift.AlightingPenalty, edges[1].Weight)
}

func TestTransitProviderNoPastDeparture(t *testing.T) {
	feed := buildTransitFeed(t)
	p := NewTransitProvider(feed, "20200106", DefaultOptions())

	edges, err := p.Outgoing(vertex.AtStop{StopID: "A", Time: 40000})
	require.NoError(t, err)
	assert.Empty(t, edges)
}
