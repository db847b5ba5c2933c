package sim

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"missionplan/internal/telemetry"
)

func sampleRow() telemetry.TelemetryRow {
	return telemetry.TelemetryRow{
		MissionID:   "m1",
		DroneID:     "d1",
		Lat:         48.2,
		Lon:         16.4,
		Alt:         50,
		SpeedMPS:    10,
		HeadingDeg:  90,
		Battery:     87.5,
		TargetIndex: 2,
		Status:      telemetry.StatusOK,
		Timestamp:   time.Unix(0, 0).UTC(),
	}
}

func TestFileWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.jsonl")
	fw, err := NewFileWriter(path)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	row := sampleRow()
	if err := fw.Write(row); err != nil {
		t.Fatalf("Write: %v", err)
	}
	fw.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var got telemetry.TelemetryRow
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.DroneID != row.DroneID || got.Battery != row.Battery || got.Status != row.Status {
		t.Fatalf("unexpected row: %#v", got)
	}
}

type countingWriter struct {
	rows    []telemetry.TelemetryRow
	batches int
}

func (c *countingWriter) Write(row telemetry.TelemetryRow) error {
	c.rows = append(c.rows, row)
	return nil
}

type countingBatchWriter struct {
	countingWriter
}

func (c *countingBatchWriter) WriteBatch(rows []telemetry.TelemetryRow) error {
	c.batches++
	c.rows = append(c.rows, rows...)
	return nil
}

func TestMultiWriterFansOut(t *testing.T) {
	a := &countingWriter{}
	b := &countingWriter{}
	mw := NewMultiWriter(a, b)
	if err := mw.Write(sampleRow()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(a.rows) != 1 || len(b.rows) != 1 {
		t.Fatalf("rows not fanned out: %d, %d", len(a.rows), len(b.rows))
	}
}

func TestMultiWriterBatchPrefersBatchMode(t *testing.T) {
	plain := &countingWriter{}
	batch := &countingBatchWriter{}
	mw := NewMultiWriter(plain, batch)
	rows := []telemetry.TelemetryRow{sampleRow(), sampleRow()}
	if err := mw.WriteBatch(rows); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if len(plain.rows) != 2 {
		t.Fatalf("plain writer got %d rows, want 2", len(plain.rows))
	}
	if batch.batches != 1 || len(batch.rows) != 2 {
		t.Fatalf("batch writer not used in batch mode: %d batches, %d rows", batch.batches, len(batch.rows))
	}
}

func TestReplayLogOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	fw, err := NewFileWriter(path)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	for i := 0; i < 3; i++ {
		row := sampleRow()
		row.TargetIndex = i
		row.Timestamp = time.Unix(int64(i), 0).UTC()
		if err := fw.Write(row); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	fw.Close()

	out := &countingWriter{}
	n, err := ReplayLogFile(path, out, 0)
	if err != nil {
		t.Fatalf("ReplayLogFile: %v", err)
	}
	if n != 3 || len(out.rows) != 3 {
		t.Fatalf("replayed %d rows (counted %d), want 3", len(out.rows), n)
	}
	for i, r := range out.rows {
		if r.TargetIndex != i {
			t.Fatalf("row %d out of order: %#v", i, r)
		}
	}
}

func TestReplayLogMissingFile(t *testing.T) {
	if _, err := ReplayLogFile("does-not-exist.jsonl", &countingWriter{}, 0); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestReplayLogRejectsMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	if err := os.WriteFile(path, []byte("{\"mission_id\":\"m1\"}\nnot json\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	n, err := ReplayLogFile(path, &countingWriter{}, 0)
	if err == nil {
		t.Fatalf("expected error for malformed line")
	}
	if n != 1 {
		t.Fatalf("replayed %d rows before failure, want 1", n)
	}
}
