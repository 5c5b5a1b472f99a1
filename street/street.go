// Package street builds a routable topology out of osmdata's ingested
// node/way graph: per-way vertex-node indices, the flattened segment
// list, and the one/way-aware adjacency walks the pedestrian edge
// provider needs.
package street

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/bmander/skilift/osmdata"
)

// ErrUnknownWay is returned when a way id has no entry in the topology.
var ErrUnknownWay = errors.New("street: unknown way id")

// SegmentRef identifies one consecutive pair of nodes within a way:
// the segment runs from NodeRefs(WayID)[Index] to NodeRefs(WayID)[Index+1].
type SegmentRef struct {
	WayID int64
	Index int
}

// NodeRef locates one occurrence of a node within a way's node list.
type NodeRef struct {
	WayID int64
	Index int
}

// MidSegmentRef is a point along a segment, given as a normalized
// offset in [0,1] from the segment's first endpoint.
type MidSegmentRef struct {
	Segment SegmentRef
	Offset  float64
}

// Topology is the routable view over an osmdata.Data graph.
type Topology struct {
	nodes map[int64]osmdata.Node
	ways  map[int64]osmdata.Way

	// nodeRefs indexes every (way, position) a node participates in,
	// so a StreetNode vertex can enumerate its incident ways.
	nodeRefs map[int64][]NodeRef

	// vertexNodes[wayID] is the sorted list of indices into that
	// way's NodeRefs which are "junctions": the two endpoints, or any
	// node shared with another way (or visited twice by this one).
	vertexNodes map[int64][]int
}

// Build indexes data into a Topology.
func Build(data *osmdata.Data) *Topology {
	t := &Topology{
		nodes:    data.Nodes,
		ways:     make(map[int64]osmdata.Way, len(data.Ways)),
		nodeRefs: map[int64][]NodeRef{},
	}

	for _, w := range data.Ways {
		t.ways[w.ID] = w
		for i, nodeID := range w.NodeRefs {
			t.nodeRefs[nodeID] = append(t.nodeRefs[nodeID], NodeRef{WayID: w.ID, Index: i})
		}
	}

	t.vertexNodes = make(map[int64][]int, len(t.ways))
	for _, w := range data.Ways {
		t.vertexNodes[w.ID] = t.buildVertexNodes(w)
	}

	return t
}

func (t *Topology) buildVertexNodes(w osmdata.Way) []int {
	var vns []int
	last := len(w.NodeRefs) - 1
	for i, nodeID := range w.NodeRefs {
		if i == 0 || i == last || len(t.nodeRefs[nodeID]) > 1 {
			vns = append(vns, i)
		}
	}
	return vns
}

// NodeCoord returns the coordinate of a retained node.
func (t *Topology) NodeCoord(nodeID int64) (osmdata.Node, bool) {
	n, ok := t.nodes[nodeID]
	return n, ok
}

// WayNodes returns a way's ordered node-id list.
func (t *Topology) WayNodes(wayID int64) ([]int64, error) {
	w, ok := t.ways[wayID]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownWay, "%d", wayID)
	}
	return w.NodeRefs, nil
}

// IsOneway reports whether wayID is tagged oneway.
func (t *Topology) IsOneway(wayID int64) bool {
	return t.ways[wayID].Oneway
}

// NodeRefs returns every (way, index) a node participates in.
func (t *Topology) NodeRefs(nodeID int64) []NodeRef {
	return t.nodeRefs[nodeID]
}

// VertexNodeIndex returns wayID's precomputed junction indices.
func (t *Topology) VertexNodeIndex(wayID int64) []int {
	return t.vertexNodes[wayID]
}

// NextVertexIndex finds the next junction reachable from position i in
// wayID without turning off the way: the smallest vertex-node index
// >= i when forward, or the largest <= i when reverse. Both bounds
// are inclusive of i itself.
func (t *Topology) NextVertexIndex(wayID int64, i int, forward bool) (int, bool) {
	vns := t.vertexNodes[wayID]
	if len(vns) == 0 {
		return 0, false
	}

	if forward {
		j := sort.SearchInts(vns, i)
		if j == len(vns) {
			return 0, false
		}
		return vns[j], true
	}

	j := sort.SearchInts(vns, i+1) - 1
	if j < 0 {
		return 0, false
	}
	return vns[j], true
}

// Segments flattens every way into its consecutive node-pair segments.
func (t *Topology) Segments() []SegmentRef {
	var segs []SegmentRef
	for _, w := range t.ways {
		for i := 0; i < len(w.NodeRefs)-1; i++ {
			segs = append(segs, SegmentRef{WayID: w.ID, Index: i})
		}
	}
	return segs
}

// SegmentEndpoints returns the coordinates of a segment's two nodes.
func (t *Topology) SegmentEndpoints(seg SegmentRef) (osmdata.Node, osmdata.Node, error) {
	w, ok := t.ways[seg.WayID]
	if !ok {
		return osmdata.Node{}, osmdata.Node{}, errors.Wrapf(ErrUnknownWay, "%d", seg.WayID)
	}
	a, ok := t.nodes[w.NodeRefs[seg.Index]]
	if !ok {
		return osmdata.Node{}, osmdata.Node{}, errors.Errorf("street: segment endpoint node %d missing", w.NodeRefs[seg.Index])
	}
	b, ok := t.nodes[w.NodeRefs[seg.Index+1]]
	if !ok {
		return osmdata.Node{}, osmdata.Node{}, errors.Errorf("street: segment endpoint node %d missing", w.NodeRefs[seg.Index+1])
	}
	return a, b, nil
}
