package main

import (
	"os"

	"missionplan/internal/planner"
	"missionplan/internal/sim"
)

// newWriters sets up the telemetry writer chain from flags and env vars.
// It returns the writer and a cleanup function to close any resources.
func newWriters(pl *planner.Planner, missionID string, printOnly, useTUI bool, logFile string) (sim.TelemetryWriter, func(), error) {
	cleanup := func() {}

	var writer sim.TelemetryWriter
	switch {
	case useTUI:
		tw := sim.NewTUIWriter(missionID, pl.Waypoints(), pl.Feasibility())
		writer = tw
		cleanup = func() { _ = tw.Close() }
	case !printOnly && os.Getenv("GREPTIMEDB_ENDPOINT") != "":
		gw, err := sim.NewGreptimeDBWriter(
			os.Getenv("GREPTIMEDB_ENDPOINT"),
			envOr("GREPTIMEDB_DATABASE", "public"),
			os.Getenv("GREPTIMEDB_TABLE"))
		if err != nil {
			return nil, nil, err
		}
		writer = gw
	default:
		writer = sim.NewColorStdoutWriter()
	}

	if logFile != "" {
		fw, err := sim.NewFileWriter(logFile)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		inner := cleanup
		cleanup = func() {
			_ = fw.Close()
			inner()
		}
		writer = sim.NewMultiWriter(writer, fw)
	}
	return writer, cleanup, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
