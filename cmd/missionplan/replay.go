package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"missionplan/internal/sim"
)

var (
	replayInput string
	replaySpeed float64
	replayJSON  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a telemetry log file",
	Long:  "replay feeds telemetry rows from a JSONL log file back to stdout at the recorded pace.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var writer sim.TelemetryWriter
		if replayJSON {
			writer = &sim.StdoutWriter{}
		} else {
			writer = sim.NewColorStdoutWriter()
		}
		n, err := sim.ReplayLogFile(replayInput, writer, replaySpeed)
		if err != nil {
			return err
		}
		fmt.Printf("replayed %d rows\n", n)
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to telemetry log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (0 for no delay)")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "Emit raw JSON lines instead of colorized output")
	_ = replayCmd.MarkFlagRequired("input")
}
