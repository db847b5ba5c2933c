package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"missionplan/internal/kml"
)

var (
	exportMission string
	exportDrone   string
	exportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a mission to KML",
	Long:  "export renders the mission's waypoints and smoothed path as a KML document for map viewers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		pl, err := loadMission(exportMission, exportDrone, catalog)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = kml.FileName(exportMission)
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		name := strings.TrimSuffix(filepath.Base(exportMission), filepath.Ext(exportMission))
		if err := kml.Write(f, name, pl.Waypoints(), pl.SmoothedPath()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportMission, "mission", "", "Path to mission JSON document")
	exportCmd.Flags().StringVar(&exportDrone, "drone", "", "Catalog id of the drone (for altitude context)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output path (defaults to <mission>.kml)")
	_ = exportCmd.MarkFlagRequired("mission")
}
