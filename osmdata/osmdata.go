// Package osmdata ingests pre-decoded OpenStreetMap nodes and ways into
// the node/way graph the street package builds its topology from. It
// does not parse PBF or XML itself -- any OSM reader in the ecosystem
// can supply RawNode/RawWay, the same way the example pack's Overpass
// client decodes OSM elements into plain structs before use.
package osmdata

import (
	"github.com/pkg/errors"
)

// ErrMalformedOSM is returned when a way references a node id that was
// never declared.
var ErrMalformedOSM = errors.New("osmdata: malformed OSM input")

// RawNode is one decoded OSM node.
type RawNode struct {
	ID  int64   `json:"id"`
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// RawWay is one decoded OSM way: an ordered list of node refs plus its
// tag map.
type RawWay struct {
	ID       int64             `json:"id"`
	NodeRefs []int64           `json:"node_refs"`
	Tags     map[string]string `json:"tags"`
}

// Node is a retained node's coordinate.
type Node struct {
	Lon float64
	Lat float64
}

// Way is a retained, qualifying way.
type Way struct {
	ID       int64
	NodeRefs []int64
	Oneway   bool
}

// Data is the ingested node/way graph, ready for street.Build.
type Data struct {
	Nodes map[int64]Node
	Ways  []Way
}

var excludedHighways = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
}

func isOneway(tags map[string]string) bool {
	switch tags["oneway"] {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}

func qualifies(tags map[string]string) bool {
	highway, ok := tags["highway"]
	if !ok {
		return false
	}
	return !excludedHighways[highway]
}

// Ingest performs the two-pass ingest: pass one collects qualifying
// ways (tagged highway, not motorway/motorway_link) and unions their
// node refs; pass two retains only the coordinates of nodes referenced
// by a qualifying way. Ways with fewer than two nodes are skipped
// silently. A way referencing a node id absent from nodes is fatal.
func Ingest(nodes []RawNode, ways []RawWay) (*Data, error) {
	referenced := map[int64]bool{}
	var qualifyingWays []RawWay

	for _, w := range ways {
		if !qualifies(w.Tags) {
			continue
		}
		if len(w.NodeRefs) < 2 {
			continue
		}
		qualifyingWays = append(qualifyingWays, w)
		for _, ref := range w.NodeRefs {
			referenced[ref] = true
		}
	}

	byID := make(map[int64]RawNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	retained := make(map[int64]Node, len(referenced))
	for id := range referenced {
		n, ok := byID[id]
		if !ok {
			return nil, errors.Wrapf(ErrMalformedOSM, "way references unknown node %d", id)
		}
		retained[id] = Node{Lon: n.Lon, Lat: n.Lat}
	}

	outWays := make([]Way, len(qualifyingWays))
	for i, w := range qualifyingWays {
		outWays[i] = Way{
			ID:       w.ID,
			NodeRefs: w.NodeRefs,
			Oneway:   isOneway(w.Tags),
		}
	}

	return &Data{Nodes: retained, Ways: outWays}, nil
}
