package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"missionplan/internal/config"
	"missionplan/internal/planner"
)

var (
	catalogPath string
	schemaPath  string
)

var rootCmd = &cobra.Command{
	Use:   "missionplan",
	Short: "UAV mission planning toolkit",
	Long:  "missionplan turns waypoints and a drone profile into an ordered route, a smoothed path, and a go/no-go feasibility verdict, with tools to optimize, simulate, and export missions.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "config/catalog.yaml", "Path to drone catalog YAML")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "schemas/catalog.cue", "Path to CUE schema file (empty to skip validation)")
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadCatalog reads the drone catalog, tolerating a missing schema file by
// skipping CUE validation.
func loadCatalog() (*config.Catalog, error) {
	schema := schemaPath
	if schema != "" {
		if _, err := os.Stat(schema); err != nil {
			schema = ""
		}
	}
	return config.Load(catalogPath, schema)
}

// loadMission builds a planner from a mission document file, optionally
// overriding the document's drone with droneID.
func loadMission(path, droneID string, catalog *config.Catalog) (*planner.Planner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pl := planner.NewFromDefaults(catalog.Defaults)
	if _, err := pl.Import(data, catalog); err != nil {
		return nil, err
	}
	if droneID != "" {
		profile := catalog.Find(droneID)
		if profile == nil {
			return nil, fmt.Errorf("drone %q not found in catalog", droneID)
		}
		pl.SelectDrone(profile)
	}
	return pl, nil
}
