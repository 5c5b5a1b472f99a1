package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var departuresCmd = &cobra.Command{
	Use:   "departures <stop-id>",
	Short: "Lists scheduled departures from a stop",
	Args:  cobra.ExactArgs(1),
	RunE:  departures,
}

var (
	departureDate string
	departureTime string
)

func init() {
	now := time.Now()
	departuresCmd.Flags().StringVarP(&departureDate, "date", "d", now.Format("20060102"), "Service date, YYYYMMDD")
	departuresCmd.Flags().StringVarP(&departureTime, "time", "t", now.Format("15:04:05"), "Query time of day, HH:MM:SS")
}

func departures(cmd *cobra.Command, args []string) error {
	stopID := args[0]

	feed, err := loadFeed()
	if err != nil {
		return err
	}

	t, err := time.Parse("15:04:05", departureTime)
	if err != nil {
		return err
	}
	querySecs := uint32(t.Hour()*3600 + t.Minute()*60 + t.Second())

	events, err := feed.FindStopEvents(stopID, departureDate, querySecs, true)
	if err != nil {
		return err
	}

	for _, ev := range events {
		tt, ok := feed.Timetable(ev.PatternID, ev.ServiceID)
		if !ok {
			continue
		}
		tripID := tt.TripIDs[ev.TripIdx]
		fmt.Printf("%s  trip=%s  pattern=%d  %02d:%02d:%02d\n",
			ev.ServiceDate, tripID, ev.PatternID, ev.Time/3600, (ev.Time/60)%60, ev.Time%60)
	}

	return nil
}
