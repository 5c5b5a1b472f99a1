// Package skiliftcfg loads the demo CLI's configuration from the
// environment, grounded on the envconfig dependency declared by
// jmartynas-pss-backend in the example pack for exactly this purpose:
// struct-tagged environment variable loading for a service's
// entrypoint. Library packages (parse, calendar, graph, ...) never
// read the environment themselves -- only the cmd/skilift binary does.
package skiliftcfg

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config is the demo binary's full set of inputs.
type Config struct {
	// FeedPath is a GTFS static zip archive.
	FeedPath string `envconfig:"FEED_PATH" required:"true"`

	// OSMNodesPath/OSMWaysPath point at pre-decoded OSM node/way JSON,
	// consumed by osmdata.Ingest. Optional: without them the street
	// network is simply unavailable to the demo.
	OSMNodesPath string `envconfig:"OSM_NODES_PATH"`
	OSMWaysPath  string `envconfig:"OSM_WAYS_PATH"`

	// ElevationRasterPath is optional; without it elevation.Sample is
	// never called.
	ElevationRasterPath string `envconfig:"ELEVATION_RASTER_PATH"`

	// Cost-model overrides, all optional -- zero means "use the
	// package default".
	WalkingSpeed      float64 `envconfig:"WALKING_SPEED"`
	WalkingReluctance float64 `envconfig:"WALKING_RELUCTANCE"`
	AlightingPenalty  float64 `envconfig:"ALIGHTING_PENALTY"`
	SearchRadius      float64 `envconfig:"SEARCH_RADIUS"`
}

// Load reads Config from the environment, using prefix as the
// envconfig variable prefix (e.g. "SKILIFT" for SKILIFT_FEED_PATH).
func Load(prefix string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "loading skilift config")
	}
	return &cfg, nil
}
