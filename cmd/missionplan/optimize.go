package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"missionplan/internal/mission"
)

var (
	optMission string
	optDrone   string
	optOut     string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Reorder waypoints to shorten the route",
	Long:  "optimize runs the nearest-neighbor heuristic over a mission's ordinary waypoints and writes the reordered document.",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		pl, err := loadMission(optMission, optDrone, catalog)
		if err != nil {
			return err
		}

		before := pl.TotalDistanceM()
		if _, err := pl.Optimize(); err != nil {
			if errors.Is(err, mission.ErrInsufficientWaypoints) {
				fmt.Println("nothing to optimize: fewer than 2 reorderable waypoints")
				return nil
			}
			return err
		}
		after := pl.TotalDistanceM()
		fmt.Printf("route length: %.0f m -> %.0f m (%.1f%% saved)\n",
			before, after, savingsPercent(before, after))

		out := optOut
		if out == "" {
			out = optMission
		}
		data, err := pl.Export()
		if err != nil {
			return err
		}
		return os.WriteFile(out, data, 0o644)
	},
}

func savingsPercent(before, after float64) float64 {
	if before <= 0 {
		return 0
	}
	return (before - after) / before * 100
}

func init() {
	optimizeCmd.Flags().StringVar(&optMission, "mission", "", "Path to mission JSON document")
	optimizeCmd.Flags().StringVar(&optDrone, "drone", "", "Catalog id of the drone to plan for")
	optimizeCmd.Flags().StringVar(&optOut, "out", "", "Output path (defaults to rewriting the input)")
	_ = optimizeCmd.MarkFlagRequired("mission")
}
