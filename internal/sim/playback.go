package sim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"missionplan/internal/telemetry"
)

// maxReplayDelay caps the pause between rows so a log with a recording gap
// (paused simulation, clock jump) does not stall playback.
const maxReplayDelay = 5 * time.Second

// ReplayLog feeds telemetry rows from a JSONL stream to writer, pacing them
// by their recorded timestamps. speed scales the pacing (2 = twice as fast);
// speed <= 0 disables pacing entirely. Returns the number of rows replayed.
func ReplayLog(r io.Reader, writer TelemetryWriter, speed float64) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var prev time.Time
	count := 0
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var row telemetry.TelemetryRow
		if err := json.Unmarshal(line, &row); err != nil {
			return count, fmt.Errorf("log line %d: %w", count+1, err)
		}
		if !prev.IsZero() && speed > 0 {
			delay := time.Duration(float64(row.Timestamp.Sub(prev)) / speed)
			if delay > maxReplayDelay {
				delay = maxReplayDelay
			}
			if delay > 0 {
				time.Sleep(delay)
			}
		}
		if err := writer.Write(row); err != nil {
			return count, err
		}
		prev = row.Timestamp
		count++
	}
	return count, sc.Err()
}

// ReplayLogFile opens a telemetry log file and replays its rows.
func ReplayLogFile(path string, writer TelemetryWriter, speed float64) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return ReplayLog(f, writer, speed)
}
