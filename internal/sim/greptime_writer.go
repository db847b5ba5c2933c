package sim

import (
	"context"
	"net"
	"strconv"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"missionplan/internal/logging"
	"missionplan/internal/telemetry"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes telemetry to GreptimeDB via the ingester client.
type GreptimeDBWriter struct {
	client greptimeClient
	table  string
}

// NewGreptimeDBWriter connects to GreptimeDB at endpoint (host:port) and
// writes rows into the given database. The table is created on first ingest.
func NewGreptimeDBWriter(endpoint, database, tableName string) (*GreptimeDBWriter, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		host = endpoint
		portStr = ""
	}
	cfg := greptime.NewConfig(host).WithDatabase(database)
	if portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, err
		}
		cfg.WithPort(port)
	}
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if tableName == "" {
		tableName = telemetry.TelemetryTableName
	}
	return &GreptimeDBWriter{client: client, table: tableName}, nil
}

// Write inserts a single telemetry row.
func (w *GreptimeDBWriter) Write(row telemetry.TelemetryRow) error {
	return w.WriteBatch([]telemetry.TelemetryRow{row})
}

// WriteBatch inserts multiple telemetry rows.
func (w *GreptimeDBWriter) WriteBatch(rows []telemetry.TelemetryRow) error {
	if len(rows) == 0 {
		return nil
	}
	log := logging.New()

	tbl, err := table.New(w.table)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("mission_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("drone_id", types.STRING); err != nil {
		return err
	}
	for _, field := range []string{"lat", "lon", "alt", "speed_mps", "heading_deg", "battery"} {
		if err := tbl.AddFieldColumn(field, types.FLOAT64); err != nil {
			return err
		}
	}
	if err := tbl.AddFieldColumn("target_index", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("hovering", types.BOOLEAN); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("status", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		err := tbl.AddRow(r.MissionID, r.DroneID,
			r.Lat, r.Lon, r.Alt, r.SpeedMPS, r.HeadingDeg, r.Battery,
			int64(r.TargetIndex), r.Hovering, r.Status, r.Timestamp)
		if err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Error("greptime write failed", "err", err)
		return err
	}
	log.Debug("greptime rows written", "count", len(rows))
	return nil
}
