// Package skilift is the root package: it ties the GTFS ingest
// packages (parse, calendar, pattern, timetable) together into a
// single queryable Feed, and hosts the shared cost/geometry constants
// and error taxonomy the rest of the module's packages use.
package skilift

import (
	"github.com/pkg/errors"

	"github.com/bmander/skilift/calendar"
	"github.com/bmander/skilift/model"
	"github.com/bmander/skilift/pattern"
	"github.com/bmander/skilift/storage"
	"github.com/bmander/skilift/timetable"
)

// GeoPoint is a bare (lon, lat) coordinate, the shape every package
// downstream of the feed (street, spatial, vertex) builds its own
// geometry on top of.
type GeoPoint struct {
	Lon float64
	Lat float64
}

type timetableKey struct {
	pattern pattern.ID
	service string
}

// StopEvent is one scheduled visit to a stop, resolved against a
// concrete calendar date.
type StopEvent struct {
	ServiceDate string
	PatternID   pattern.ID
	ServiceID   string
	TripID      string
	TripIdx     int
	StopIdx     int
	Time        uint32
}

// Feed is a fully indexed, queryable GTFS static feed: the composition
// of a calendar.Index, pattern.Index, and one timetable.Timetable per
// (pattern, service) pair actually present in the data.
type Feed struct {
	reader     storage.FeedReader
	calendar   *calendar.Index
	patterns   *pattern.Index
	timetables map[timetableKey]*timetable.Timetable

	// dayEnd is the largest departure time (seconds since midnight)
	// seen anywhere in the feed. Used by the day-rollover rule: a
	// trip scheduled past midnight is still indexed against the
	// service date it *started* on, so a query near midnight must
	// also check the previous day's services.
	dayEnd uint32
}

// Build indexes a feed already loaded into reader (see parse.ParseStatic).
func Build(reader storage.FeedReader) (*Feed, error) {
	calIdx, err := calendar.Build(reader)
	if err != nil {
		return nil, errors.Wrap(err, "building calendar index")
	}

	patIdx, err := pattern.Build(reader)
	if err != nil {
		return nil, errors.Wrap(err, "building pattern index")
	}

	trips, err := reader.Trips()
	if err != nil {
		return nil, errors.Wrap(err, "reading trips")
	}
	tripService := make(map[string]string, len(trips))
	for _, t := range trips {
		tripService[t.ID] = t.ServiceID
	}

	stopTimesByTrip, err := reader.StopTimesByTrip()
	if err != nil {
		return nil, errors.Wrap(err, "reading stop times")
	}

	dayEnd, err := reader.MaxDeparture()
	if err != nil {
		return nil, errors.Wrap(err, "reading max departure")
	}

	groups := map[timetableKey][]string{}
	for tripID, patID := range patIdx.TripPattern {
		key := timetableKey{pattern: patID, service: tripService[tripID]}
		groups[key] = append(groups[key], tripID)
	}

	timetables := map[timetableKey]*timetable.Timetable{}
	for key, tripIDs := range groups {
		stopIDs, err := patIdx.StopSequence(key.pattern)
		if err != nil {
			return nil, errors.Wrap(err, "resolving pattern stop sequence")
		}

		arrival := make([][]uint32, len(tripIDs))
		departure := make([][]uint32, len(tripIDs))
		for i, tripID := range tripIDs {
			sts := stopTimesByTrip[tripID]
			arr := make([]uint32, len(sts))
			dep := make([]uint32, len(sts))
			for j, st := range sts {
				arr[j] = st.Arrival
				dep[j] = st.Departure
			}
			arrival[i] = arr
			departure[i] = dep
		}

		tt, err := timetable.Build(tripIDs, stopIDs, arrival, departure)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedFeed, "pattern %d service %q: %v", key.pattern, key.service, err)
		}
		timetables[key] = tt
	}

	return &Feed{
		reader:     reader,
		calendar:   calIdx,
		patterns:   patIdx,
		timetables: timetables,
		dayEnd:     dayEnd,
	}, nil
}

// FindStopEvents returns, for every pattern and active service serving
// stopID on date, the next departure at or after querySecs (or the
// previous arrival at or before it) at each position of the stop in
// the pattern. Later departures of the same pattern and service are
// not returned.
//
// Per the day-rollover rule, a trip logged past midnight is still
// indexed under the date it started on. So when querySecs is early
// enough that a late-running trip from the *previous* service day
// could still be arriving (querySecs+86400 < dayEnd), the previous
// day's active services are checked too, with querySecs shifted
// forward by a day to match that day's time axis.
//
// TODO: the symmetric end-of-day case (early trips on the *next*
// service day already visible from a late querySecs) is not handled.
func (f *Feed) FindStopEvents(stopID string, date string, querySecs uint32, wantDeparture bool) ([]StopEvent, error) {
	events, err := f.findStopEvents(stopID, date, querySecs, wantDeparture)
	if err != nil {
		return nil, err
	}

	if querySecs+86400 < f.dayEnd {
		prevDate, err := shiftDate(date, -1)
		if err != nil {
			return nil, err
		}
		prevEvents, err := f.findStopEvents(stopID, prevDate, querySecs+86400, wantDeparture)
		if err != nil {
			return nil, err
		}
		events = append(events, prevEvents...)
	}

	return events, nil
}

func (f *Feed) findStopEvents(stopID string, date string, querySecs uint32, wantDeparture bool) ([]StopEvent, error) {
	active, err := f.calendar.ActiveServices(date)
	if err != nil {
		return nil, err
	}

	var events []StopEvent
	for patID := range f.patterns.StopPatterns[stopID] {
		for serviceID := range active {
			tt, ok := f.timetables[timetableKey{pattern: patID, service: serviceID}]
			if !ok {
				continue
			}

			for _, ev := range tt.EventsAt(stopID, querySecs, wantDeparture) {
				events = append(events, StopEvent{
					ServiceDate: date,
					PatternID:   patID,
					ServiceID:   serviceID,
					TripID:      tt.TripIDs[ev.TripIdx],
					TripIdx:     ev.TripIdx,
					StopIdx:     ev.StopIdx,
					Time:        ev.Time,
				})
			}
		}
	}

	return events, nil
}

// PatternsServing returns the set of pattern ids with a scheduled
// visit to stopID.
func (f *Feed) PatternsServing(stopID string) map[pattern.ID]bool {
	return f.patterns.StopPatterns[stopID]
}

// ActiveServices delegates to the calendar index.
func (f *Feed) ActiveServices(date string) (map[string]bool, error) {
	return f.calendar.ActiveServices(date)
}

// StopSequence returns the ordered stop_id tuple of a pattern.
func (f *Feed) StopSequence(id pattern.ID) ([]string, error) {
	return f.patterns.StopSequence(id)
}

// Timetable returns the (pattern, service) timetable, if any trips
// run it.
func (f *Feed) Timetable(id pattern.ID, serviceID string) (*timetable.Timetable, bool) {
	tt, ok := f.timetables[timetableKey{pattern: id, service: serviceID}]
	return tt, ok
}

// DayEnd is the largest departure time, in seconds since midnight,
// seen anywhere in the feed.
func (f *Feed) DayEnd() uint32 {
	return f.dayEnd
}

// GetStopPoint returns the coordinate of stopID, for use as the seed
// vertex of a journey search.
func (f *Feed) GetStopPoint(stopID string) (GeoPoint, error) {
	stops, err := f.reader.Stops()
	if err != nil {
		return GeoPoint{}, errors.Wrap(err, "reading stops")
	}
	for _, s := range stops {
		if s.ID == stopID {
			return GeoPoint{Lon: s.Lon, Lat: s.Lat}, nil
		}
	}
	return GeoPoint{}, errors.Wrapf(ErrNotFound, "stop %q", stopID)
}

// StopsWithName returns every stop whose stop_name matches name
// exactly, for resolving a human-entered origin/destination.
func (f *Feed) StopsWithName(name string) ([]model.Stop, error) {
	stops, err := f.reader.Stops()
	if err != nil {
		return nil, errors.Wrap(err, "reading stops")
	}

	matches := []model.Stop{}
	for _, s := range stops {
		if s.Name == name {
			matches = append(matches, s)
		}
	}
	if len(matches) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "stop name %q", name)
	}
	return matches, nil
}
