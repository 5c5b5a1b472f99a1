package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var nearestStreetCmd = &cobra.Command{
	Use:   "nearest-street <lon> <lat>",
	Short: "Finds the street segment nearest a geographical point",
	Args:  cobra.ExactArgs(2),
	RunE:  nearestStreet,
}

var nearestStreetRadius float64

func init() {
	nearestStreetCmd.Flags().Float64VarP(&nearestStreetRadius, "radius", "r", 0.01, "Search radius, degrees")
}

func nearestStreet(cmd *cobra.Command, args []string) error {
	lon, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return err
	}
	lat, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return err
	}

	_, idx, err := loadStreetTopology()
	if err != nil {
		return err
	}

	ref, offset, ok := idx.NearestSegment(lon, lat, nearestStreetRadius)
	if !ok {
		fmt.Println("no street segment found within radius")
		return nil
	}

	fmt.Printf("way=%d index=%d offset=%.4f\n", ref.WayID, ref.Index, offset)
	return nil
}
