package sim

import (
	"context"
	"testing"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
)

type mockGreptimeClient struct {
	table *table.Table
}

func (m *mockGreptimeClient) Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error) {
	if len(tables) > 0 {
		m.table = tables[0]
	}
	return &gpb.GreptimeResponse{}, nil
}

func TestGreptimeWriterTelemetry(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, table: "mission_telemetry"}

	row := sampleRow()
	if err := w.Write(row); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if m.table == nil {
		t.Fatalf("expected table to be captured")
	}

	rows := m.table.GetRows()
	if len(rows.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows.Rows))
	}
	if got := rows.Rows[0].Values[0].GetStringValue(); got != "m1" {
		t.Fatalf("mission_id = %s, want m1", got)
	}
	if got := rows.Rows[0].Values[1].GetStringValue(); got != "d1" {
		t.Fatalf("drone_id = %s, want d1", got)
	}
	if got := rows.Rows[0].Values[7].GetF64Value(); got != 87.5 {
		t.Fatalf("battery = %v, want 87.5", got)
	}
}

func TestGreptimeWriterEmptyBatch(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, table: "mission_telemetry"}
	if err := w.WriteBatch(nil); err != nil {
		t.Fatalf("WriteBatch(nil): %v", err)
	}
	if m.table != nil {
		t.Fatalf("unexpected write for empty batch")
	}
}
