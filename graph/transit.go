package graph

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/bmander/skilift"
	"github.com/bmander/skilift/pattern"
	"github.com/bmander/skilift/vertex"
)

// TransitProvider generates boarding, riding, and alighting edges. It
// is scoped to a single resolved service date: the search driver
// resolves query_datetime into (service_date, seconds_since_midnight)
// and any day-rollover once, at search setup, via skilift.Feed's own
// rollover rule -- the provider itself does not re-derive it per call.
type TransitProvider struct {
	feed    *skilift.Feed
	date    string
	options Options
}

// NewTransitProvider scopes a TransitProvider to date (YYYYMMDD).
func NewTransitProvider(feed *skilift.Feed, date string, options Options) *TransitProvider {
	return &TransitProvider{feed: feed, date: date, options: options}
}

type patternService struct {
	pattern pattern.ID
	service string
}

// Outgoing implements EdgeProvider for AtStop, Departure, and Arrival
// vertices; every other vertex kind yields no edges.
func (p *TransitProvider) Outgoing(v vertex.Vertex) ([]vertex.Edge, error) {
	switch vv := v.(type) {
	case vertex.AtStop:
		return p.fromAtStop(vv)
	case vertex.Departure:
		return p.fromDeparture(vv)
	case vertex.Arrival:
		return p.fromArrival(vv)
	default:
		return nil, nil
	}
}

// Incoming is unsupported; search never needs to walk the transit
// graph backwards.
func (p *TransitProvider) Incoming(v vertex.Vertex) ([]vertex.Edge, error) {
	return nil, ErrUnsupported
}

// fromAtStop emits, for every pattern/service pair serving the stop and
// every position of the stop in that pattern, one Departure edge to the
// next departure at or after the vertex's time, sorted by pattern id
// then service id ascending.
func (p *TransitProvider) fromAtStop(at vertex.AtStop) ([]vertex.Edge, error) {
	active, err := p.feed.ActiveServices(p.date)
	if err != nil {
		return nil, errors.Wrap(err, "resolving active services")
	}

	var candidates []patternService
	for patID := range p.feed.PatternsServing(at.StopID) {
		for serviceID := range active {
			candidates = append(candidates, patternService{pattern: patID, service: serviceID})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].pattern != candidates[j].pattern {
			return candidates[i].pattern < candidates[j].pattern
		}
		return candidates[i].service < candidates[j].service
	})

	var edges []vertex.Edge
	for _, c := range candidates {
		tt, ok := p.feed.Timetable(c.pattern, c.service)
		if !ok {
			continue
		}

		stopIDs, err := p.feed.StopSequence(c.pattern)
		if err != nil {
			return nil, err
		}

		for col, stopID := range stopIDs {
			if stopID != at.StopID {
				continue
			}
			row, depTime, ok := tt.NextDeparture(col, at.Time)
			if !ok {
				continue
			}
			edges = append(edges, vertex.Edge{
				To: vertex.Departure{
					Pattern: c.pattern,
					Service: c.service,
					Row:     row,
					Col:     col,
					Time:    depTime,
				},
				Weight: float64(depTime - at.Time),
			})
		}
	}

	return edges, nil
}

// fromDeparture emits exactly one edge: riding the hop to the next
// stop in the pattern.
func (p *TransitProvider) fromDeparture(d vertex.Departure) ([]vertex.Edge, error) {
	tt, ok := p.feed.Timetable(d.Pattern, d.Service)
	if !ok {
		return nil, nil
	}
	if d.Col+1 >= len(tt.StopIDs) {
		return nil, nil
	}

	arr := tt.ArrivalTimes[d.Row][d.Col+1]
	dep := tt.DepartureTimes[d.Row][d.Col]

	return []vertex.Edge{{
		To: vertex.Arrival{
			Pattern: d.Pattern,
			Service: d.Service,
			Row:     d.Row,
			Col:     d.Col + 1,
			Time:    d.Time + (arr - dep),
		},
		Weight: float64(arr - dep),
	}}, nil
}

// fromArrival emits [wait, alight] in that order: staying onboard to
// the same stop's next departure, or getting off.
func (p *TransitProvider) fromArrival(a vertex.Arrival) ([]vertex.Edge, error) {
	tt, ok := p.feed.Timetable(a.Pattern, a.Service)
	if !ok {
		return nil, nil
	}

	dwell := tt.DepartureTimes[a.Row][a.Col] - tt.ArrivalTimes[a.Row][a.Col]
	wait := vertex.Edge{
		To: vertex.Departure{
			Pattern: a.Pattern,
			Service: a.Service,
			Row:     a.Row,
			Col:     a.Col,
			Time:    a.Time + dwell,
		},
		Weight: float64(dwell),
	}

	alight := vertex.Edge{
		To:     vertex.AtStop{StopID: tt.StopIDs[a.Col], Time: a.Time},
		Weight: p.options.AlightingPenalty,
	}

	return []vertex.Edge{wait, alight}, nil
}
