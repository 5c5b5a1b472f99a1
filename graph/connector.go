package graph

import (
	"github.com/bmander/skilift"
	"github.com/bmander/skilift/spatial"
	"github.com/bmander/skilift/street"
	"github.com/bmander/skilift/vertex"
)

// ConnectorProvider bridges the transit and street graphs: it
// precomputes, at construction, the nearest street segment to every
// stop, plus reverse indices from the segment's endpoint nodes back to
// that snap point.
type ConnectorProvider struct {
	topo    *street.Topology
	options Options

	stopPoint map[string]skilift.GeoPoint
	stopSnap  map[string]street.MidSegmentRef
	nodeSnaps map[int64][]street.MidSegmentRef
}

// NewConnectorProvider snaps every stop in stops to its nearest street
// segment (within options.SearchRadius) and builds the node-to-snap
// reverse index.
func NewConnectorProvider(topo *street.Topology, idx *spatial.SegmentIndex, stops map[string]skilift.GeoPoint, options Options) *ConnectorProvider {
	c := &ConnectorProvider{
		topo:      topo,
		options:   options,
		stopPoint: stops,
		stopSnap:  map[string]street.MidSegmentRef{},
		nodeSnaps: map[int64][]street.MidSegmentRef{},
	}

	for stopID, pt := range stops {
		ref, offset, ok := idx.NearestSegment(pt.Lon, pt.Lat, options.SearchRadius)
		if !ok {
			continue
		}
		snap := street.MidSegmentRef{Segment: ref, Offset: offset}
		c.stopSnap[stopID] = snap

		nds, err := topo.WayNodes(ref.WayID)
		if err != nil {
			continue
		}
		c.nodeSnaps[nds[ref.Index]] = append(c.nodeSnaps[nds[ref.Index]], snap)
		c.nodeSnaps[nds[ref.Index+1]] = append(c.nodeSnaps[nds[ref.Index+1]], snap)
	}

	return c
}

// Outgoing implements EdgeProvider for AtStop and StreetNode vertices.
// Midstreet -> AtStop is deliberately left unimplemented (returns
// nil, nil): the source this system is grounded on never resolves it
// either, and spec.md documents it as an open gap rather than a
// decision for this system to invent.
func (c *ConnectorProvider) Outgoing(v vertex.Vertex) ([]vertex.Edge, error) {
	switch vv := v.(type) {
	case vertex.AtStop:
		return c.fromAtStop(vv)
	case vertex.StreetNode:
		return c.fromStreetNode(vv)
	default:
		return nil, nil
	}
}

// Incoming is unsupported.
func (c *ConnectorProvider) Incoming(v vertex.Vertex) ([]vertex.Edge, error) {
	return nil, ErrUnsupported
}

func (c *ConnectorProvider) snapCoord(ref street.MidSegmentRef) (lon, lat float64, err error) {
	a, b, err := c.topo.SegmentEndpoints(ref.Segment)
	if err != nil {
		return 0, 0, err
	}
	return a.Lon + ref.Offset*(b.Lon-a.Lon), a.Lat + ref.Offset*(b.Lat-a.Lat), nil
}

// fromAtStop emits one edge to the stop's precomputed nearest
// mid-segment point, weighted by the walking distance between them.
func (c *ConnectorProvider) fromAtStop(v vertex.AtStop) ([]vertex.Edge, error) {
	snap, ok := c.stopSnap[v.StopID]
	if !ok {
		return nil, nil
	}

	snapLon, snapLat, err := c.snapCoord(snap)
	if err != nil {
		return nil, err
	}

	pt := c.stopPoint[v.StopID]
	dist := HaversineDistance(pt.Lon, pt.Lat, snapLon, snapLat)

	return []vertex.Edge{{
		To:     vertex.NewMidstreet(snap.Segment, snap.Offset, v.Time+walkSeconds(dist, c.options)),
		Weight: walkWeight(dist, c.options),
	}}, nil
}

// fromStreetNode emits one edge per stop whose nearest-segment snap
// touches this node, weighted by the walking distance from the node's
// coordinate to the snap point.
func (c *ConnectorProvider) fromStreetNode(v vertex.StreetNode) ([]vertex.Edge, error) {
	refs, ok := c.nodeSnaps[v.NodeID]
	if !ok {
		return nil, nil
	}

	node, ok := c.topo.NodeCoord(v.NodeID)
	if !ok {
		return nil, nil
	}

	var edges []vertex.Edge
	for _, ref := range refs {
		snapLon, snapLat, err := c.snapCoord(ref)
		if err != nil {
			return nil, err
		}
		dist := HaversineDistance(node.Lon, node.Lat, snapLon, snapLat)
		edges = append(edges, vertex.Edge{
			To:     vertex.NewMidstreet(ref.Segment, ref.Offset, v.Time+walkSeconds(dist, c.options)),
			Weight: walkWeight(dist, c.options),
		})
	}
	return edges, nil
}
