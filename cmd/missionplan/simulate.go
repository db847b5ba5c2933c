package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"missionplan/internal/admin"
	"missionplan/internal/logging"
	"missionplan/internal/sim"
)

var (
	simMission   string
	simDrone     string
	simPrintOnly bool
	simTUI       bool
	simTick      time.Duration
	simLogFile   string
	simAdminAddr string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Fly a planned mission with simulated telemetry",
	Long:  "simulate flies the mission's route synthetically and emits per-tick telemetry to stdout, a TUI, a log file, or GreptimeDB. No real vehicle is contacted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		pl, err := loadMission(simMission, simDrone, catalog)
		if err != nil {
			return err
		}

		missionID := strings.TrimSuffix(filepath.Base(simMission), filepath.Ext(simMission))
		writer, cleanup, err := newWriters(pl, missionID, simPrintOnly, simTUI, simLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		log := logging.New()
		ctx = logging.NewContext(ctx, log)

		simulator := sim.NewSimulator(missionID, pl, writer, simTick)

		if simAdminAddr != "" {
			srv := admin.NewServer(pl, simulator)
			go func() {
				log.Info("admin UI listening", "addr", simAdminAddr)
				if err := srv.Start(ctx, simAdminAddr); err != nil && err != http.ErrServerClosed {
					log.Error("admin server failed", "err", err)
				}
			}()
		}

		done := make(chan struct{})
		go func() {
			simulator.Run(ctx)
			close(done)
		}()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigs:
		case <-done:
		}
		cancel()
		log.Info("simulation stopped")
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simMission, "mission", "", "Path to mission JSON document")
	simulateCmd.Flags().StringVar(&simDrone, "drone", "", "Catalog id of the drone to fly")
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print telemetry to STDOUT instead of writing to DB")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Render telemetry in an interactive TUI")
	simulateCmd.Flags().DurationVar(&simTick, "tick", time.Second, "Telemetry tick interval (e.g. 500ms, 2s)")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export telemetry log (JSONL)")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin", "", "Address for the admin UI (e.g. :8080, empty to disable)")
	_ = simulateCmd.MarkFlagRequired("mission")
}
