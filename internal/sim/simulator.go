// Simulator flying a planned mission and emitting telemetry ticks
package sim

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"missionplan/internal/logging"
	"missionplan/internal/planner"
	"missionplan/internal/telemetry"
)

// Simulator flies the planned route of a mission and writes one telemetry
// row per tick. The flight is synthetic: positions, battery, and status are
// derived from the plan, never from hardware.
type Simulator struct {
	missionID    string
	flight       *telemetry.Flight
	writer       TelemetryWriter
	tickInterval time.Duration

	mu      sync.Mutex
	lastRow telemetry.TelemetryRow
	haveRow bool
}

// NewSimulator builds a flight from the planner's current mission. The
// drone id is derived from the selected profile.
func NewSimulator(missionID string, pl *planner.Planner, writer TelemetryWriter, tickInterval time.Duration) *Simulator {
	drone := pl.Drone()
	droneID := "unassigned"
	if drone != nil {
		droneID = drone.ID + "-" + uuid.New().String()[:8]
	}
	return &Simulator{
		missionID:    missionID,
		flight:       telemetry.NewFlight(missionID, droneID, drone, pl.Waypoints(), pl.Parameters()),
		writer:       writer,
		tickInterval: tickInterval,
	}
}

// Run starts the simulation loop and blocks until the flight completes or
// the context is done.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting flight simulation", "mission_id", s.missionID, "tick_interval", s.tickInterval)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			done := s.tick(ctx)
			if done {
				log.Info("flight complete", "mission_id", s.missionID)
				return
			}
		case <-ctx.Done():
			log.Info("stopping flight simulation")
			return
		}
	}
}

// tick advances the flight by one interval and writes the row. Returns true
// once the final row (complete or failed) has been written.
func (s *Simulator) tick(ctx context.Context) bool {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	wasDone := s.flight.Done()
	row := s.flight.Step(s.tickInterval)
	s.lastRow = row
	s.haveRow = true
	done := s.flight.Done()
	s.mu.Unlock()

	if wasDone {
		return true
	}
	if err := s.writer.Write(row); err != nil {
		log.Error("write failed", "drone_id", row.DroneID, "err", err)
	}
	return done
}

// Snapshot returns the most recent telemetry row, if any.
func (s *Simulator) Snapshot() (telemetry.TelemetryRow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRow, s.haveRow
}
