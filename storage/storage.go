// Package storage defines the ingest seam between the feed parser and the
// indices that are actually queried at routing time (calendar, pattern,
// timetable). There is exactly one implementation, an in-memory one --
// this system keeps no state beyond a single process lifetime.
package storage

import (
	"github.com/bmander/skilift/model"
)

// FeedWriter receives GTFS records as they are decoded off the wire. As
// stop_times.txt tends to be very large, BeginStopTimes()/EndStopTimes()
// bracket the stream of WriteStopTime calls, mirroring BeginTrips/EndTrips,
// so an implementation can batch or index once all rows are in.
type FeedWriter interface {
	WriteAgency(agency model.Agency) error
	WriteStop(stop model.Stop) error
	WriteRoute(route model.Route) error
	BeginTrips() error
	WriteTrip(trip model.Trip) error
	EndTrips() error
	WriteCalendar(cal model.Calendar) error
	WriteCalendarDate(cd model.CalendarDate) error
	BeginStopTimes() error
	WriteStopTime(st model.StopTime) error
	EndStopTimes() error
	Close() error
}

// FeedReader is how the calendar/pattern/timetable builders pull the
// decoded feed back out once ingest is complete.
type FeedReader interface {
	Agencies() ([]model.Agency, error)
	Stops() ([]model.Stop, error)
	Routes() ([]model.Route, error)
	Trips() ([]model.Trip, error)
	Calendars() ([]model.Calendar, error)
	CalendarDates() ([]model.CalendarDate, error)

	// StopTimesByTrip returns, for every trip, its stop_times rows in
	// stop_sequence order. This is the shape the pattern grouper and
	// timetable builder both need.
	StopTimesByTrip() (map[string][]model.StopTime, error)

	// MaxDeparture is the largest departure time (seconds since
	// midnight) seen across the whole feed. Used for the day-rollover
	// rule in the feed facade.
	MaxDeparture() (uint32, error)
}

// NewMemory returns a fresh in-memory FeedWriter+FeedReader pair. The
// returned writer and reader share the same backing store: write
// everything, Close() the writer, then use the reader.
func NewMemory() *Memory {
	return &Memory{
		agencies:        map[string]model.Agency{},
		stops:           map[string]model.Stop{},
		routes:          map[string]model.Route{},
		trips:           map[string]model.Trip{},
		calendars:       map[string]model.Calendar{},
		calendarDates:   map[string][]model.CalendarDate{},
		stopTimesByTrip: map[string][]model.StopTime{},
	}
}
