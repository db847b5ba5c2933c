package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"missionplan/internal/energy"
)

var (
	planMission string
	planDrone   string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Evaluate the feasibility of a mission",
	Long:  "plan loads a mission document, runs the route and energy models, and prints the feasibility verdict with warnings.",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		pl, err := loadMission(planMission, planDrone, catalog)
		if err != nil {
			return err
		}
		printReport(pl.Feasibility())
		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&planMission, "mission", "", "Path to mission JSON document")
	planCmd.Flags().StringVar(&planDrone, "drone", "", "Catalog id of the drone to plan for (overrides the document)")
	_ = planCmd.MarkFlagRequired("mission")
}

func printReport(res energy.Result) {
	fmt.Printf("status:            %s\n", res.Status)
	fmt.Printf("total distance:    %.0f m\n", res.TotalDistanceM)
	if res.Status != energy.StatusIndeterminate {
		fmt.Printf("flight time:       %.1f min\n", res.EstimatedFlightMinutes)
		fmt.Printf("battery required:  %.1f %%\n", res.BatteryRequiredPercent)
		fmt.Printf("with reserve:      %.1f %%\n", res.BatteryWithReservePercent)
		fmt.Printf("remaining margin:  %.1f %%\n", res.BatteryAvailablePercent)
	}
	for _, w := range res.Warnings {
		fmt.Printf("  [%s] %s\n", w.Severity, w.Message)
	}
}
