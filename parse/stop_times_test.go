package parse

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmander/skilift/model"
	"github.com/bmander/skilift/storage"
)

func TestParseStopTimes(t *testing.T) {
	for _, tc := range []struct {
		name         string
		content      string
		trips        map[string]bool
		stops        map[string]bool
		err          bool
		stopTimes    []model.StopTime
		maxArrival   uint32
		maxDeparture uint32
	}{
		{
			"minimal",
			`
trip_id,arrival_time,departure_time,stop_id,stop_sequence
t,10:00:00,10:00:01,s,1`,
			map[string]bool{"t": true},
			map[string]bool{"s": true},
			false,
			[]model.StopTime{
				{
					TripID:       "t",
					Arrival:      36000,
					Departure:    36001,
					StopID:       "s",
					StopSequence: 1,
				},
			},
			36000, 36001,
		},

		{
			"all_fields_set_and_multiple_records",
			`
trip_id,arrival_time,departure_time,stop_id,stop_sequence,stop_headsign
t,10:00:00,10:00:01,s1,1,sh1
t,10:00:02,10:00:03,s2,2,sh2
`,
			map[string]bool{"t": true},
			map[string]bool{"s1": true, "s2": true},
			false,
			[]model.StopTime{
				{
					TripID:       "t",
					Arrival:      36000,
					Departure:    36001,
					StopID:       "s1",
					StopSequence: 1,
					Headsign:     "sh1",
				},
				{
					TripID:       "t",
					Arrival:      36002,
					Departure:    36003,
					StopID:       "s2",
					StopSequence: 2,
					Headsign:     "sh2",
				},
			},
			36002, 36003,
		},

		{
			"times above 24h",
			`
trip_id,arrival_time,departure_time,stop_id,stop_sequence
t,25:00:00,25:00:01,s,1`,
			map[string]bool{"t": true},
			map[string]bool{"s": true},
			false,
			[]model.StopTime{
				{
					TripID:       "t",
					Arrival:      90000,
					Departure:    90001,
					StopID:       "s",
					StopSequence: 1,
				},
			},
			90000, 90001,
		},

		{
			"missing trip_id",
			`
arrival_time,departure_time,stop_id,stop_sequence
10:00:00,10:00:01,s,1`,
			nil, nil, true, nil, 0, 0,
		},

		{
			"missing arrival_time",
			`
trip_id,departure_time,stop_id,stop_sequence
t,10:00:01,s,1`,
			nil, nil, true, nil, 0, 0,
		},

		{
			"missing departure_time",
			`
trip_id,arrival_time,stop_id,stop_sequence
t,10:00:00,s,1`,
			nil, nil, true, nil, 0, 0,
		},

		{
			"missing stop_id",
			`
trip_id,arrival_time,departure_time,stop_sequence
t,10:00:00,10:00:01,1`,
			nil, nil, true, nil, 0, 0,
		},

		{
			"missing stop_sequence",
			`
trip_id,arrival_time,departure_time,stop_id
t,10:00:00,10:00:01,s`,
			nil, nil, true, nil, 0, 0,
		},

		{
			"unknown trip",
			`
trip_id,arrival_time,departure_time,stop_id,stop_sequence
t,10:00:00,10:00:01,s,1`,
			map[string]bool{"t2": true},
			map[string]bool{"s": true},
			true,
			nil, 0, 0,
		},

		{
			"unknown stop",
			`
trip_id,arrival_time,departure_time,stop_id,stop_sequence
t,10:00:00,10:00:01,s,1`,
			map[string]bool{"t": true},
			map[string]bool{"s2": true},
			true,
			nil, 0, 0,
		},

		{
			"invalid arrival_time",
			`
trip_id,arrival_time,departure_time,stop_id,stop_sequence
t,10:00:derp,10:00:01,s,1`,
			map[string]bool{"t": true},
			map[string]bool{"s": true},
			true,
			nil, 0, 0,
		},

		{
			"invalid departure_time",
			`
trip_id,arrival_time,departure_time,stop_id,stop_sequence
t,10:00:00,10:00:derp,s,1`,
			map[string]bool{"t": true},
			map[string]bool{"s": true},
			true,
			nil, 0, 0,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			mem := storage.NewMemory()

			require.NoError(t, mem.BeginStopTimes())
			maxArrival, maxDeparture, err := ParseStopTimes(
				mem,
				bytes.NewBufferString(tc.content),
				tc.trips,
				tc.stops,
			)
			if tc.err {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NoError(t, mem.EndStopTimes())

			assert.Equal(t, tc.maxArrival, maxArrival)
			assert.Equal(t, tc.maxDeparture, maxDeparture)

			byTrip, err := mem.StopTimesByTrip()
			require.NoError(t, err)

			stopTimes := []model.StopTime{}
			for _, sts := range byTrip {
				stopTimes = append(stopTimes, sts...)
			}
			sort.Slice(stopTimes, func(i, j int) bool {
				if stopTimes[i].TripID != stopTimes[j].TripID {
					return stopTimes[i].TripID < stopTimes[j].TripID
				}
				return stopTimes[i].StopSequence < stopTimes[j].StopSequence
			})

			assert.Equal(t, len(tc.stopTimes), len(stopTimes))
			assert.Equal(t, tc.stopTimes, stopTimes)
		})
	}
}
