package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmander/skilift/model"
	"github.com/bmander/skilift/storage"
)

func weekdayMask(days ...time.Weekday) int8 {
	var m int8
	for _, d := range days {
		m |= 1 << d
	}
	return m
}

func buildIndex(t *testing.T, calendars []model.Calendar, calendarDates []model.CalendarDate) *Index {
	mem := storage.NewMemory()
	for _, c := range calendars {
		require.NoError(t, mem.WriteCalendar(c))
	}
	for _, cd := range calendarDates {
		require.NoError(t, mem.WriteCalendarDate(cd))
	}
	idx, err := Build(mem)
	require.NoError(t, err)
	return idx
}

func TestActiveServicesCalendarOnly(t *testing.T) {
	// Feb 15-17 2020 spans Saturday - Monday. This service is not
	// active on the Sunday.
	idx := buildIndex(t, []model.Calendar{
		{
			ServiceID: "s",
			StartDate: "20200215",
			EndDate:   "20200217",
			Weekday:   weekdayMask(time.Monday, time.Saturday),
		},
	}, nil)

	for _, tc := range []struct {
		date   string
		active []string
		msg    string
	}{
		{"20200214", nil, "friday outside date range"},
		{"20200215", []string{"s"}, "saturday should be active"},
		{"20200216", nil, "sunday should not be active"},
		{"20200217", []string{"s"}, "monday should be active"},
		{"20200218", nil, "tuesday outside date range"},
	} {
		active, err := idx.ActiveServices(tc.date)
		require.NoError(t, err)
		assert.Equal(t, len(tc.active), len(active), tc.msg)
		for _, s := range tc.active {
			assert.True(t, active[s], tc.msg)
		}
	}
}

func TestActiveServicesCalendarDateAdded(t *testing.T) {
	idx := buildIndex(t, []model.Calendar{
		{
			ServiceID: "s",
			StartDate: "20200215",
			EndDate:   "20200217",
			Weekday:   weekdayMask(time.Monday, time.Saturday),
		},
	}, []model.CalendarDate{
		{ServiceID: "s", Date: "20200216", ExceptionType: model.ExceptionAdd},
	})

	active, err := idx.ActiveServices("20200216")
	require.NoError(t, err)
	assert.True(t, active["s"], "sunday has calendar date added")
}

func TestActiveServicesCalendarDateRemoved(t *testing.T) {
	idx := buildIndex(t, []model.Calendar{
		{
			ServiceID: "s",
			StartDate: "20200215",
			EndDate:   "20200217",
			Weekday:   weekdayMask(time.Monday, time.Saturday),
		},
	}, []model.CalendarDate{
		{ServiceID: "s", Date: "20200215", ExceptionType: model.ExceptionRemove},
	})

	active, err := idx.ActiveServices("20200215")
	require.NoError(t, err)
	assert.False(t, active["s"], "saturday was removed by calendar date")
}

func TestActiveServicesNoCalendar(t *testing.T) {
	idx := buildIndex(t, nil, nil)

	active, err := idx.ActiveServices("20200215")
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestActiveServicesInvalidDate(t *testing.T) {
	idx := buildIndex(t, nil, nil)

	_, err := idx.ActiveServices("not-a-date")
	assert.Error(t, err)
}
