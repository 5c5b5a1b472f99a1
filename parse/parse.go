// Package parse decodes a zipped GTFS static feed into a storage.FeedWriter.
package parse

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/spkg/bom"

	"github.com/bmander/skilift/storage"
)

// FeedMetadata summarizes a few feed-wide facts gathered in the course
// of ingest. The feed facade does not read it: its day-rollover rule
// takes the max departure from storage.FeedReader.MaxDeparture.
type FeedMetadata struct {
	CalendarStartDate string
	CalendarEndDate   string
	Timezone          string
	MaxArrival        uint32
	MaxDeparture      uint32
}

// ParseStatic decodes a zipped GTFS static feed, writing every record to
// writer, and returns a metadata summary of the feed.
func ParseStatic(writer storage.FeedWriter, buf []byte) (*FeedMetadata, error) {
	// These are the files we load for static dumps.
	file := map[string]io.ReadCloser{
		"agency.txt":         nil,
		"routes.txt":         nil,
		"stops.txt":          nil,
		"trips.txt":          nil,
		"stop_times.txt":     nil,
		"calendar.txt":       nil,
		"calendar_dates.txt": nil,
	}

	defer func() {
		for _, rc := range file {
			if rc != nil {
				rc.Close()
			}
		}
	}()

	r, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, errors.Wrap(err, "unzipping")
	}

	for _, f := range r.File {
		// There should not be any subdirectories. But, some
		// agencies don't care.
		if f.FileInfo().IsDir() {
			continue
		}
		path := strings.Split(f.Name, "/")
		fName := path[len(path)-1]

		if _, found := file[fName]; !found {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", f.Name)
		}

		file[fName] = rc
	}

	if file["calendar.txt"] == nil && file["calendar_dates.txt"] == nil {
		return nil, errors.New("missing calendar.txt and calendar_dates.txt")
	}

	for _, required := range []string{"routes.txt", "stops.txt", "trips.txt", "stop_times.txt"} {
		if file[required] == nil {
			return nil, errors.Errorf("missing %s", required)
		}
	}

	// LazyCSVReader required (at least) to survive sloppy use of
	// quotes. The BOM reader strips unicode BOMs if present.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return gocsv.LazyCSVReader(bom.NewReader(in))
	})

	// Parse agency.txt, if present. Extract timezone and set of
	// agency IDs in the process; agency.txt is optional, unlike the
	// four files required above.
	var agency map[string]bool
	var timezone string
	if file["agency.txt"] != nil {
		agency, timezone, err = ParseAgency(writer, file["agency.txt"])
		if err != nil {
			return nil, errors.Wrap(err, "parsing agency.txt")
		}
	}

	// Parse routes.txt. Extract route IDs in the process.
	routes, err := ParseRoutes(writer, file["routes.txt"], agency)
	if err != nil {
		return nil, errors.Wrap(err, "parsing routes.txt")
	}

	// Parse calendar.txt and calendar_dates.txt. Extract set of
	// all service IDs, and min/max date of services seen.
	var calendarStart, calendarEnd string
	services := map[string]bool{}
	if file["calendar.txt"] != nil {
		services, calendarStart, calendarEnd, err = ParseCalendar(writer, file["calendar.txt"])
		if err != nil {
			return nil, errors.Wrap(err, "parsing calendar.txt")
		}
	}
	if file["calendar_dates.txt"] != nil {
		cdServices, minDate, maxDate, err := ParseCalendarDates(writer, file["calendar_dates.txt"])
		if err != nil {
			return nil, errors.Wrap(err, "parsing calendar_dates.txt")
		}
		for serviceID := range cdServices {
			services[serviceID] = true
		}
		if calendarStart == "" || minDate < calendarStart {
			calendarStart = minDate
		}
		if calendarEnd == "" || maxDate > calendarEnd {
			calendarEnd = maxDate
		}
	}

	// Parse trips.txt. Extract trip IDs in the process.
	if err := writer.BeginTrips(); err != nil {
		return nil, errors.Wrap(err, "beginning trips")
	}
	trips, err := ParseTrips(writer, file["trips.txt"], routes, services)
	if err != nil {
		return nil, errors.Wrap(err, "parsing trips.txt")
	}
	if err := writer.EndTrips(); err != nil {
		return nil, errors.Wrap(err, "ending trips")
	}

	// Parse stops.txt. Extract stop IDs in the process.
	stops, err := ParseStops(writer, file["stops.txt"])
	if err != nil {
		return nil, errors.Wrap(err, "parsing stops.txt")
	}

	// Parse stop_times.txt.
	if err := writer.BeginStopTimes(); err != nil {
		return nil, errors.Wrap(err, "beginning stop_times")
	}
	maxArrival, maxDeparture, err := ParseStopTimes(writer, file["stop_times.txt"], trips, stops)
	if err != nil {
		return nil, errors.Wrap(err, "parsing stop_times.txt")
	}
	if err := writer.EndStopTimes(); err != nil {
		return nil, errors.Wrap(err, "ending stop_times")
	}

	// All files parsed: close the writer.
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "closing feed writer")
	}

	return &FeedMetadata{
		CalendarStartDate: calendarStart,
		CalendarEndDate:   calendarEnd,
		Timezone:          timezone,
		MaxArrival:        maxArrival,
		MaxDeparture:      maxDeparture,
	}, nil
}
