// ColorStdoutWriter prints human-friendly, colorized telemetry to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"missionplan/internal/telemetry"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

// ColorStdoutWriter prints telemetry rows using ANSI colors. Colors are
// suppressed when stdout is not a terminal.
type ColorStdoutWriter struct {
	out   io.Writer
	isTTY bool
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter() *ColorStdoutWriter {
	return &ColorStdoutWriter{
		out:   os.Stdout,
		isTTY: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

func (w *ColorStdoutWriter) paint(color, s string) string {
	if !w.isTTY {
		return s
	}
	return color + s + colorReset
}

// Write outputs one telemetry row as a colorized key=value line.
func (w *ColorStdoutWriter) Write(row telemetry.TelemetryRow) error {
	statusColor := colorGreen
	switch row.Status {
	case telemetry.StatusFailure:
		statusColor = colorRed
	case telemetry.StatusLowBattery:
		statusColor = colorYellow
	case telemetry.StatusHovering:
		statusColor = colorCyan
	case telemetry.StatusComplete:
		statusColor = colorBlue
	}

	_, err := fmt.Fprintf(w.out, "%s %s %s %s %s %s %s %s %s %s\n",
		w.paint(colorGray, "["+row.Timestamp.Format(time.RFC3339)+"]"),
		w.paint(colorBlue, "mission="+row.MissionID),
		w.paint(colorMagenta, "drone="+row.DroneID),
		w.paint(colorGreen, fmt.Sprintf("lat=%.5f", row.Lat)),
		w.paint(colorYellow, fmt.Sprintf("lon=%.5f", row.Lon)),
		w.paint(colorMagenta, fmt.Sprintf("alt=%.1f", row.Alt)),
		w.paint(colorCyan, fmt.Sprintf("spd=%.1f hdg=%.0f", row.SpeedMPS, row.HeadingDeg)),
		w.paint(colorCyan, fmt.Sprintf("batt=%.1f", row.Battery)),
		w.paint(colorGray, fmt.Sprintf("wp=%d", row.TargetIndex)),
		w.paint(statusColor, "status="+row.Status),
	)
	return err
}

// WriteBatch outputs multiple telemetry rows.
func (w *ColorStdoutWriter) WriteBatch(rows []telemetry.TelemetryRow) error {
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}
