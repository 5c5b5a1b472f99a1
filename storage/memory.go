package storage

import (
	"sort"

	"github.com/bmander/skilift/model"
)

// Memory is the in-memory FeedWriter/FeedReader. It is the only storage
// backend this system carries -- see DESIGN.md for why the teacher's SQL
// backends were not brought forward.
type Memory struct {
	agencies      map[string]model.Agency
	stops         map[string]model.Stop
	routes        map[string]model.Route
	trips         map[string]model.Trip
	calendars     map[string]model.Calendar
	calendarDates map[string][]model.CalendarDate

	stopTimesByTrip map[string][]model.StopTime
	maxDeparture    uint32
}

func (m *Memory) WriteAgency(agency model.Agency) error {
	m.agencies[agency.ID] = agency
	return nil
}

func (m *Memory) WriteStop(stop model.Stop) error {
	m.stops[stop.ID] = stop
	return nil
}

func (m *Memory) WriteRoute(route model.Route) error {
	m.routes[route.ID] = route
	return nil
}

func (m *Memory) BeginTrips() error { return nil }

func (m *Memory) WriteTrip(trip model.Trip) error {
	m.trips[trip.ID] = trip
	return nil
}

func (m *Memory) EndTrips() error { return nil }

func (m *Memory) WriteCalendar(cal model.Calendar) error {
	m.calendars[cal.ServiceID] = cal
	return nil
}

func (m *Memory) WriteCalendarDate(cd model.CalendarDate) error {
	m.calendarDates[cd.ServiceID] = append(m.calendarDates[cd.ServiceID], cd)
	return nil
}

func (m *Memory) BeginStopTimes() error { return nil }

func (m *Memory) WriteStopTime(st model.StopTime) error {
	m.stopTimesByTrip[st.TripID] = append(m.stopTimesByTrip[st.TripID], st)
	if st.Departure > m.maxDeparture {
		m.maxDeparture = st.Departure
	}
	return nil
}

func (m *Memory) EndStopTimes() error {
	for tripID, sts := range m.stopTimesByTrip {
		sort.Slice(sts, func(i, j int) bool {
			return sts[i].StopSequence < sts[j].StopSequence
		})
		m.stopTimesByTrip[tripID] = sts
	}
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Agencies() ([]model.Agency, error) {
	agencies := make([]model.Agency, 0, len(m.agencies))
	for _, a := range m.agencies {
		agencies = append(agencies, a)
	}
	return agencies, nil
}

func (m *Memory) Stops() ([]model.Stop, error) {
	stops := make([]model.Stop, 0, len(m.stops))
	for _, s := range m.stops {
		stops = append(stops, s)
	}
	return stops, nil
}

func (m *Memory) Routes() ([]model.Route, error) {
	routes := make([]model.Route, 0, len(m.routes))
	for _, r := range m.routes {
		routes = append(routes, r)
	}
	return routes, nil
}

func (m *Memory) Trips() ([]model.Trip, error) {
	trips := make([]model.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		trips = append(trips, t)
	}
	return trips, nil
}

func (m *Memory) Calendars() ([]model.Calendar, error) {
	cals := make([]model.Calendar, 0, len(m.calendars))
	for _, c := range m.calendars {
		cals = append(cals, c)
	}
	return cals, nil
}

func (m *Memory) CalendarDates() ([]model.CalendarDate, error) {
	cds := []model.CalendarDate{}
	for _, v := range m.calendarDates {
		cds = append(cds, v...)
	}
	return cds, nil
}

func (m *Memory) StopTimesByTrip() (map[string][]model.StopTime, error) {
	return m.stopTimesByTrip, nil
}

func (m *Memory) MaxDeparture() (uint32, error) {
	return m.maxDeparture, nil
}

// StopByID is a convenience lookup by stop id. It is not part of
// FeedReader; the feed facade and the connector provider do not call it.
func (m *Memory) StopByID(id string) (model.Stop, bool) {
	s, ok := m.stops[id]
	return s, ok
}

func (m *Memory) StopsWithName(name string) []model.Stop {
	matches := []model.Stop{}
	for _, s := range m.stops {
		if s.Name == name {
			matches = append(matches, s)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches
}

func (m *Memory) AllStops() []model.Stop {
	stops, _ := m.Stops()
	return stops
}
