// Telemetry structs with greptime tags
package telemetry

import (
	"os"
	"time"
)

// TelemetryRow represents one simulated telemetry record.
type TelemetryRow struct {
	MissionID   string    `json:"mission_id"` // TAG
	DroneID     string    `json:"drone_id"`   // TAG
	Lat         float64   `json:"lat"`        // FIELD
	Lon         float64   `json:"lon"`        // FIELD
	Alt         float64   `json:"alt"`        // FIELD
	SpeedMPS    float64   `json:"speed_mps"`  // FIELD
	HeadingDeg  float64   `json:"heading_deg"`
	Battery     float64   `json:"battery"`
	TargetIndex int       `json:"target_index"`
	Hovering    bool      `json:"hovering"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"ts"` // TIME INDEX
}

// TelemetryTableName holds the table name used when writing to GreptimeDB.
// It defaults to "mission_telemetry" but can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var TelemetryTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "mission_telemetry"
}()

func (TelemetryRow) TableName() string {
	return TelemetryTableName
}

// Flight status constants.
const (
	StatusOK         = "ok"
	StatusHovering   = "hovering"
	StatusLowBattery = "low_battery"
	StatusFailure    = "failed"
	StatusComplete   = "complete"
)
