package sim

import "missionplan/internal/telemetry"

// TelemetryWriter is an interface to support different output writers.
type TelemetryWriter interface {
	Write(telemetry.TelemetryRow) error
}

// Optional: writers can also support batch mode.
type batchWriter interface {
	WriteBatch([]telemetry.TelemetryRow) error
}
