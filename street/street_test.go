package street

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmander/skilift/osmdata"
)

func buildLineTopology(t *testing.T, oneway bool) *Topology {
	data := &osmdata.Data{
		Nodes: map[int64]osmdata.Node{
			1: {Lon: 0, Lat: 0},
			2: {Lon: 1, Lat: 0},
			3: {Lon: 2, Lat: 0},
			4: {Lon: 3, Lat: 0},
		},
		Ways: []osmdata.Way{
			{ID: 10, NodeRefs: []int64{1, 2, 3, 4}, Oneway: oneway},
		},
	}
	return Build(data)
}

func TestVertexNodeIndexEndpointsOnly(t *testing.T) {
	topo := buildLineTopology(t, false)
	assert.Equal(t, []int{0, 3}, topo.VertexNodeIndex(10))
}

func TestVertexNodeIndexIncludesSharedNode(t *testing.T) {
	data := &osmdata.Data{
		Nodes: map[int64]osmdata.Node{
			1: {Lon: 0, Lat: 0},
			2: {Lon: 1, Lat: 0},
			3: {Lon: 2, Lat: 0},
		},
		Ways: []osmdata.Way{
			{ID: 10, NodeRefs: []int64{1, 2, 3}},
			{ID: 11, NodeRefs: []int64{2, 3}}, // node 2 shared across ways
		},
	}
	topo := Build(data)
	assert.Equal(t, []int{0, 1, 2}, topo.VertexNodeIndex(10))
}

func TestNextVertexIndexForward(t *testing.T) {
	topo := buildLineTopology(t, false)
	i, ok := topo.NextVertexIndex(10, 1, true)
	require.True(t, ok)
	assert.Equal(t, 3, i)

	i, ok = topo.NextVertexIndex(10, 0, true)
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestNextVertexIndexReverse(t *testing.T) {
	topo := buildLineTopology(t, false)
	i, ok := topo.NextVertexIndex(10, 2, false)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = topo.NextVertexIndex(10, 3, false)
	require.True(t, ok)
	assert.Equal(t, 3, i)
}

func TestIsOneway(t *testing.T) {
	topo := buildLineTopology(t, true)
	assert.True(t, topo.IsOneway(10))
	assert.False(t, topo.IsOneway(999))
}

func TestSegmentsFlattensWay(t *testing.T) {
	topo := buildLineTopology(t, false)
	segs := topo.Segments()
	assert.Len(t, segs, 3)
}

func TestSegmentEndpoints(t *testing.T) {
	topo := buildLineTopology(t, false)
	a, b, err := topo.SegmentEndpoints(SegmentRef{WayID: 10, Index: 1})
	require.NoError(t, err)
	assert.Equal(t, osmdata.Node{Lon: 1, Lat: 0}, a)
	assert.Equal(t, osmdata.Node{Lon: 2, Lat: 0}, b)
}

func TestSegmentEndpointsUnknownWay(t *testing.T) {
	topo := buildLineTopology(t, false)
	_, _, err := topo.SegmentEndpoints(SegmentRef{WayID: 999, Index: 0})
	assert.ErrorIs(t, err, ErrUnknownWay)
}
