package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmander/skilift"
	"github.com/bmander/skilift/osmdata"
	"github.com/bmander/skilift/spatial"
	"github.com/bmander/skilift/street"
	"github.com/bmander/skilift/vertex"
)

func buildConnectorGraph(t *testing.T) (*street.Topology, *spatial.SegmentIndex) {
	data := &osmdata.Data{
		Nodes: map[int64]osmdata.Node{
			1: {Lon: 0, Lat: 0},
			2: {Lon: 1, Lat: 0},
		},
		Ways: []osmdata.Way{
			{ID: 10, NodeRefs: []int64{1, 2}},
		},
	}
	topo := street.Build(data)

	a, b, err := topo.SegmentEndpoints(street.SegmentRef{WayID: 10, Index: 0})
	require.NoError(t, err)
	idx := spatial.Build([]spatial.Segment{{
		Ref: street.SegmentRef{WayID: 10, Index: 0},
		A:   spatial.Point{Lon: a.Lon, Lat: a.Lat},
		B:   spatial.Point{Lon: b.Lon, Lat: b.Lat},
	}}, 0.5)

	return topo, idx
}

func TestConnectorProviderFromAtStop(t *testing.T) {
	topo, idx := buildConnectorGraph(t)
	stops := map[string]skilift.GeoPoint{"S": {Lon: 0.5, Lat: 0.0005}}
	c := NewConnectorProvider(topo, idx, stops, DefaultOptions())

	edges, err := c.Outgoing(vertex.AtStop{StopID: "S", Time: 0})
	require.NoError(t, err)
	require.Len(t, edges, 1)
	_, ok := edges[0].To.(vertex.Midstreet)
	assert.True(t, ok)
}

func TestConnectorProviderUnknownStopYieldsNoEdges(t *testing.T) {
	topo, idx := buildConnectorGraph(t)
	c := NewConnectorProvider(topo, idx, map[string]skilift.GeoPoint{}, DefaultOptions())

	edges, err := c.Outgoing(vertex.AtStop{StopID: "missing"})
	require.NoError(t, err)
	assert.Nil(t, edges)
}

func TestConnectorProviderFromStreetNode(t *testing.T) {
	topo, idx := buildConnectorGraph(t)
	stops := map[string]skilift.GeoPoint{"S": {Lon: 0.5, Lat: 0.0005}}
	c := NewConnectorProvider(topo, idx, stops, DefaultOptions())

	edges, err := c.Outgoing(vertex.StreetNode{NodeID: 1, Time: 0})
	require.NoError(t, err)
	require.Len(t, edges, 1)
}

func TestConnectorProviderMidstreetToAtStopUnimplemented(t *testing.T) {
	topo, idx := buildConnectorGraph(t)
	c := NewConnectorProvider(topo, idx, map[string]skilift.GeoPoint{}, DefaultOptions())

	edges, err := c.Outgoing(vertex.Midstreet{})
	require.NoError(t, err)
	assert.Nil(t, edges)
}
