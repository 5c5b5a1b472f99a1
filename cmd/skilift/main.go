package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/bmander/skilift"
	"github.com/bmander/skilift/osmdata"
	"github.com/bmander/skilift/parse"
	"github.com/bmander/skilift/skiliftcfg"
	"github.com/bmander/skilift/spatial"
	"github.com/bmander/skilift/storage"
	"github.com/bmander/skilift/street"
)

var rootCmd = &cobra.Command{
	Use:          "skilift",
	Short:        "skilift journey planner tool",
	Long:         "Indexes a GTFS feed and optional street network, and answers simple queries against them",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(departuresCmd)
	rootCmd.AddCommand(nearestStreetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadFeed reads SKILIFT_FEED_PATH's GTFS zip and indexes it.
func loadFeed() (*skilift.Feed, error) {
	cfg, err := skiliftcfg.Load("skilift")
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}

	buf, err := os.ReadFile(cfg.FeedPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading feed file")
	}

	mem := storage.NewMemory()
	if _, err := parse.ParseStatic(mem, buf); err != nil {
		return nil, errors.Wrap(err, "parsing feed")
	}

	return skilift.Build(mem)
}

// loadStreetTopology reads SKILIFT_OSM_NODES_PATH/SKILIFT_OSM_WAYS_PATH
// as JSON arrays of osmdata.RawNode/osmdata.RawWay and builds a
// topology plus its spatial index.
func loadStreetTopology() (*street.Topology, *spatial.SegmentIndex, error) {
	cfg, err := skiliftcfg.Load("skilift")
	if err != nil {
		return nil, nil, errors.Wrap(err, "loading config")
	}
	if cfg.OSMNodesPath == "" || cfg.OSMWaysPath == "" {
		return nil, nil, errors.New("SKILIFT_OSM_NODES_PATH and SKILIFT_OSM_WAYS_PATH are both required")
	}

	nodesBuf, err := os.ReadFile(cfg.OSMNodesPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading OSM nodes")
	}
	waysBuf, err := os.ReadFile(cfg.OSMWaysPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading OSM ways")
	}

	var nodes []osmdata.RawNode
	if err := json.Unmarshal(nodesBuf, &nodes); err != nil {
		return nil, nil, errors.Wrap(err, "decoding OSM nodes")
	}
	var ways []osmdata.RawWay
	if err := json.Unmarshal(waysBuf, &ways); err != nil {
		return nil, nil, errors.Wrap(err, "decoding OSM ways")
	}

	data, err := osmdata.Ingest(nodes, ways)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ingesting OSM data")
	}

	topo := street.Build(data)

	var segs []spatial.Segment
	for _, ref := range topo.Segments() {
		a, b, err := topo.SegmentEndpoints(ref)
		if err != nil {
			return nil, nil, err
		}
		segs = append(segs, spatial.Segment{
			Ref: ref,
			A:   spatial.Point{Lon: a.Lon, Lat: a.Lat},
			B:   spatial.Point{Lon: b.Lon, Lat: b.Lat},
		})
	}

	return topo, spatial.Build(segs, 0.01), nil
}
