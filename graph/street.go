package graph

import (
	"github.com/pkg/errors"

	"github.com/bmander/skilift/spatial"
	"github.com/bmander/skilift/street"
	"github.com/bmander/skilift/vertex"
)

// StreetProvider generates walking edges across the street network:
// snapping an arbitrary point to the nearest segment, walking from a
// mid-segment point to the nearest junction, and walking junction to
// junction.
type StreetProvider struct {
	topo    *street.Topology
	idx     *spatial.SegmentIndex
	options Options
}

// NewStreetProvider builds a provider over an already-indexed topology.
func NewStreetProvider(topo *street.Topology, idx *spatial.SegmentIndex, options Options) *StreetProvider {
	return &StreetProvider{topo: topo, idx: idx, options: options}
}

// Outgoing implements EdgeProvider for OnEarthSurface, Midstreet, and
// StreetNode vertices.
func (s *StreetProvider) Outgoing(v vertex.Vertex) ([]vertex.Edge, error) {
	switch vv := v.(type) {
	case vertex.OnEarthSurface:
		return s.fromOnEarthSurface(vv)
	case vertex.Midstreet:
		return s.fromMidstreet(vv)
	case vertex.StreetNode:
		return s.fromStreetNode(vv)
	default:
		return nil, nil
	}
}

// Incoming is unsupported.
func (s *StreetProvider) Incoming(v vertex.Vertex) ([]vertex.Edge, error) {
	return nil, ErrUnsupported
}

// snapPoint returns the coordinate at offset along seg.
func (s *StreetProvider) snapPoint(seg street.SegmentRef, offset float64) (lon, lat float64, err error) {
	a, b, err := s.topo.SegmentEndpoints(seg)
	if err != nil {
		return 0, 0, err
	}
	return a.Lon + offset*(b.Lon-a.Lon), a.Lat + offset*(b.Lat-a.Lat), nil
}

// fromOnEarthSurface snaps the query point to its nearest segment,
// within the configured search radius. An OnEarthSurface vertex always
// represents the search's origin point, at time zero.
func (s *StreetProvider) fromOnEarthSurface(v vertex.OnEarthSurface) ([]vertex.Edge, error) {
	ref, offset, ok := s.idx.NearestSegment(v.Lon, v.Lat, s.options.SearchRadius)
	if !ok {
		return nil, nil
	}

	snapLon, snapLat, err := s.snapPoint(ref, offset)
	if err != nil {
		return nil, err
	}

	dist := HaversineDistance(v.Lon, v.Lat, snapLon, snapLat)
	return []vertex.Edge{{
		To:     vertex.NewMidstreet(ref, offset, walkSeconds(dist, s.options)),
		Weight: walkWeight(dist, s.options),
	}}, nil
}

// fromMidstreet walks from the mid-segment point to the nearest
// junction in each walkable direction: always forward, and in reverse
// only when the way is not one-way.
func (s *StreetProvider) fromMidstreet(v vertex.Midstreet) ([]vertex.Edge, error) {
	wayID := v.Ref.Segment.WayID
	segIdx := v.Ref.Segment.Index

	nds, err := s.topo.WayNodes(wayID)
	if err != nil {
		return nil, err
	}

	snapLon, snapLat, err := s.snapPoint(v.Ref.Segment, v.Ref.Offset)
	if err != nil {
		return nil, err
	}

	var edges []vertex.Edge

	if nextIdx, ok := s.topo.NextVertexIndex(wayID, segIdx+1, true); ok {
		path := nodeRange(nds, segIdx+1, nextIdx, 1)
		dist, err := pathDistance(s.topo, snapLon, snapLat, path)
		if err != nil {
			return nil, err
		}
		edges = append(edges, vertex.Edge{
			To:     vertex.StreetNode{NodeID: path[len(path)-1], Time: v.Time + walkSeconds(dist, s.options)},
			Weight: walkWeight(dist, s.options),
		})
	}

	if !s.topo.IsOneway(wayID) {
		if prevIdx, ok := s.topo.NextVertexIndex(wayID, segIdx, false); ok {
			path := nodeRange(nds, segIdx, prevIdx, -1)
			dist, err := pathDistance(s.topo, snapLon, snapLat, path)
			if err != nil {
				return nil, err
			}
			edges = append(edges, vertex.Edge{
				To:     vertex.StreetNode{NodeID: path[len(path)-1], Time: v.Time + walkSeconds(dist, s.options)},
				Weight: walkWeight(dist, s.options),
			})
		}
	}

	return edges, nil
}

// fromStreetNode walks from a junction node to the next junction
// along every incident way, forward always and reverse when the way
// permits it.
func (s *StreetProvider) fromStreetNode(v vertex.StreetNode) ([]vertex.Edge, error) {
	var edges []vertex.Edge

	start, ok := s.topo.NodeCoord(v.NodeID)
	if !ok {
		return nil, nil
	}

	for _, nr := range s.topo.NodeRefs(v.NodeID) {
		nds, err := s.topo.WayNodes(nr.WayID)
		if err != nil {
			return nil, err
		}

		if nr.Index < len(nds)-1 {
			if nextIdx, ok := s.topo.NextVertexIndex(nr.WayID, nr.Index+1, true); ok {
				path := nodeRange(nds, nr.Index+1, nextIdx, 1)
				dist, err := pathDistance(s.topo, start.Lon, start.Lat, path)
				if err != nil {
					return nil, err
				}
				edges = append(edges, vertex.Edge{
					To:     vertex.StreetNode{NodeID: path[len(path)-1], Time: v.Time + walkSeconds(dist, s.options)},
					Weight: walkWeight(dist, s.options),
				})
			}
		}

		if nr.Index > 0 && !s.topo.IsOneway(nr.WayID) {
			if prevIdx, ok := s.topo.NextVertexIndex(nr.WayID, nr.Index-1, false); ok {
				path := nodeRange(nds, nr.Index-1, prevIdx, -1)
				dist, err := pathDistance(s.topo, start.Lon, start.Lat, path)
				if err != nil {
					return nil, err
				}
				edges = append(edges, vertex.Edge{
					To:     vertex.StreetNode{NodeID: path[len(path)-1], Time: v.Time + walkSeconds(dist, s.options)},
					Weight: walkWeight(dist, s.options),
				})
			}
		}
	}

	return edges, nil
}

// nodeRange returns nds[from], nds[from+step], ..., nds[to] inclusive.
func nodeRange(nds []int64, from, to, step int) []int64 {
	var out []int64
	for i := from; ; i += step {
		out = append(out, nds[i])
		if i == to {
			break
		}
	}
	return out
}

// pathDistance sums the haversine length of the path starting at
// (startLon, startLat) and passing through each node in nodeIDs.
func pathDistance(topo *street.Topology, startLon, startLat float64, nodeIDs []int64) (float64, error) {
	total := 0.0
	prevLon, prevLat := startLon, startLat
	for _, id := range nodeIDs {
		n, ok := topo.NodeCoord(id)
		if !ok {
			return 0, errors.Errorf("street: node %d missing coordinate", id)
		}
		total += HaversineDistance(prevLon, prevLat, n.Lon, n.Lat)
		prevLon, prevLat = n.Lon, n.Lat
	}
	return total, nil
}
