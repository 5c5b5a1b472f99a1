package osmdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestKeepsQualifyingWaysAndReferencedNodes(t *testing.T) {
	nodes := []RawNode{
		{ID: 1, Lon: 0, Lat: 0},
		{ID: 2, Lon: 1, Lat: 0},
		{ID: 3, Lon: 2, Lat: 0}, // unreferenced by any qualifying way
	}
	ways := []RawWay{
		{ID: 100, NodeRefs: []int64{1, 2}, Tags: map[string]string{"highway": "residential"}},
	}

	data, err := Ingest(nodes, ways)
	require.NoError(t, err)

	assert.Len(t, data.Nodes, 2)
	_, ok := data.Nodes[3]
	assert.False(t, ok)
	require.Len(t, data.Ways, 1)
	assert.Equal(t, int64(100), data.Ways[0].ID)
}

func TestIngestExcludesMotorways(t *testing.T) {
	nodes := []RawNode{{ID: 1, Lon: 0, Lat: 0}, {ID: 2, Lon: 1, Lat: 0}}
	ways := []RawWay{
		{ID: 1, NodeRefs: []int64{1, 2}, Tags: map[string]string{"highway": "motorway"}},
		{ID: 2, NodeRefs: []int64{1, 2}, Tags: map[string]string{"highway": "motorway_link"}},
	}

	data, err := Ingest(nodes, ways)
	require.NoError(t, err)
	assert.Empty(t, data.Ways)
	assert.Empty(t, data.Nodes)
}

func TestIngestSkipsWaysMissingHighwayTag(t *testing.T) {
	nodes := []RawNode{{ID: 1}, {ID: 2}}
	ways := []RawWay{{ID: 1, NodeRefs: []int64{1, 2}, Tags: map[string]string{"building": "yes"}}}

	data, err := Ingest(nodes, ways)
	require.NoError(t, err)
	assert.Empty(t, data.Ways)
}

func TestIngestSkipsShortWays(t *testing.T) {
	nodes := []RawNode{{ID: 1}}
	ways := []RawWay{{ID: 1, NodeRefs: []int64{1}, Tags: map[string]string{"highway": "residential"}}}

	data, err := Ingest(nodes, ways)
	require.NoError(t, err)
	assert.Empty(t, data.Ways)
}

func TestIngestFailsOnUnknownNodeRef(t *testing.T) {
	nodes := []RawNode{{ID: 1}}
	ways := []RawWay{{ID: 1, NodeRefs: []int64{1, 99}, Tags: map[string]string{"highway": "residential"}}}

	_, err := Ingest(nodes, ways)
	assert.ErrorIs(t, err, ErrMalformedOSM)
}

func TestIsOnewayRecognizesVariants(t *testing.T) {
	assert.True(t, isOneway(map[string]string{"oneway": "yes"}))
	assert.True(t, isOneway(map[string]string{"oneway": "true"}))
	assert.True(t, isOneway(map[string]string{"oneway": "1"}))
	assert.False(t, isOneway(map[string]string{"oneway": "no"}))
	assert.False(t, isOneway(map[string]string{}))
}
