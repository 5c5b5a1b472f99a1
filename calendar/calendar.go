// Package calendar resolves which GTFS service_ids run on a given
// calendar date, combining the weekly calendar.txt template with the
// calendar_dates.txt add/remove exception overlay.
package calendar

import (
	"time"

	"github.com/pkg/errors"

	"github.com/bmander/skilift/model"
	"github.com/bmander/skilift/storage"
)

// Index answers "which services run on date d" queries against a
// feed's calendar.txt and calendar_dates.txt rows.
type Index struct {
	calendars     []model.Calendar
	calendarDates map[string][]model.CalendarDate // date -> exceptions
}

// Build reads the calendar and calendar_dates rows out of reader and
// indexes calendar_dates by date, so ActiveServices doesn't rescan the
// whole exception table on every call.
func Build(reader storage.FeedReader) (*Index, error) {
	calendars, err := reader.Calendars()
	if err != nil {
		return nil, errors.Wrap(err, "reading calendars")
	}

	calendarDates, err := reader.CalendarDates()
	if err != nil {
		return nil, errors.Wrap(err, "reading calendar dates")
	}

	byDate := map[string][]model.CalendarDate{}
	for _, cd := range calendarDates {
		byDate[cd.Date] = append(byDate[cd.Date], cd)
	}

	return &Index{
		calendars:     calendars,
		calendarDates: byDate,
	}, nil
}

// ActiveServices returns the set of service_ids running on date,
// given as "YYYYMMDD". The weekly template is evaluated first, then
// calendar_dates.txt exceptions are applied: exception_type 1 adds a
// service not otherwise running that day, exception_type 2 removes
// one that is.
func (idx *Index) ActiveServices(date string) (map[string]bool, error) {
	parsedDate, err := time.Parse("20060102", date)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid date '%s'", date)
	}

	services := map[string]bool{}

	for _, cal := range idx.calendars {
		if cal.Weekday&(1<<parsedDate.Weekday()) == 0 {
			continue
		}
		if cal.StartDate > date || cal.EndDate < date {
			continue
		}
		services[cal.ServiceID] = true
	}

	for _, cd := range idx.calendarDates[date] {
		switch cd.ExceptionType {
		case model.ExceptionAdd:
			services[cd.ServiceID] = true
		case model.ExceptionRemove:
			delete(services, cd.ServiceID)
		}
	}

	return services, nil
}
