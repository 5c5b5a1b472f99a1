package graph

import "github.com/bmander/skilift/vertex"

// CompositeProvider fans a single Outgoing call out to the transit,
// street, and connector providers and concatenates their results in
// that fixed order, so a search driver can hold one EdgeProvider
// instead of three. This is additive plumbing on top of the three
// providers' individually documented semantics, not a change to them.
type CompositeProvider struct {
	Transit   EdgeProvider
	Street    EdgeProvider
	Connector EdgeProvider
}

// Outgoing concatenates edges from transit, then street, then
// connector, skipping any provider left nil.
func (p *CompositeProvider) Outgoing(v vertex.Vertex) ([]vertex.Edge, error) {
	var edges []vertex.Edge

	for _, provider := range []EdgeProvider{p.Transit, p.Street, p.Connector} {
		if provider == nil {
			continue
		}
		e, err := provider.Outgoing(v)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e...)
	}

	return edges, nil
}

// Incoming is unsupported.
func (p *CompositeProvider) Incoming(v vertex.Vertex) ([]vertex.Edge, error) {
	return nil, ErrUnsupported
}
