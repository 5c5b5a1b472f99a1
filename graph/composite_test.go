package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmander/skilift/vertex"
)

type fakeProvider struct {
	edges []vertex.Edge
	err   error
}

func (f *fakeProvider) Outgoing(v vertex.Vertex) ([]vertex.Edge, error) { return f.edges, f.err }
func (f *fakeProvider) Incoming(v vertex.Vertex) ([]vertex.Edge, error) { return nil, ErrUnsupported }

func TestCompositeProviderConcatenatesInOrder(t *testing.T) {
	transit := &fakeProvider{edges: []vertex.Edge{{To: vertex.AtStop{StopID: "t"}}}}
	street := &fakeProvider{edges: []vertex.Edge{{To: vertex.StreetNode{NodeID: 1}}}}
	connector := &fakeProvider{edges: []vertex.Edge{{To: vertex.Midstreet{}}}}

	p := &CompositeProvider{Transit: transit, Street: street, Connector: connector}
	edges, err := p.Outgoing(vertex.OnEarthSurface{})
	require.NoError(t, err)
	require.Len(t, edges, 3)

	_, ok0 := edges[0].To.(vertex.AtStop)
	_, ok1 := edges[1].To.(vertex.StreetNode)
	_, ok2 := edges[2].To.(vertex.Midstreet)
	assert.True(t, ok0)
	assert.True(t, ok1)
	assert.True(t, ok2)
}

func TestCompositeProviderSkipsNilProviders(t *testing.T) {
	transit := &fakeProvider{edges: []vertex.Edge{{To: vertex.AtStop{StopID: "t"}}}}
	p := &CompositeProvider{Transit: transit}

	edges, err := p.Outgoing(vertex.OnEarthSurface{})
	require.NoError(t, err)
	assert.Len(t, edges, 1)
}

func TestCompositeProviderPropagatesError(t *testing.T) {
	transit := &fakeProvider{err: assert.AnError}
	p := &CompositeProvider{Transit: transit}

	_, err := p.Outgoing(vertex.OnEarthSurface{})
	assert.Error(t, err)
}

func TestCompositeProviderIncomingUnsupported(t *testing.T) {
	p := &CompositeProvider{}
	_, err := p.Incoming(vertex.OnEarthSurface{})
	assert.ErrorIs(t, err, ErrUnsupported)
}
