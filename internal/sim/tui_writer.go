package sim

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"missionplan/internal/energy"
	"missionplan/internal/mission"
	"missionplan/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries a telemetry log line for the viewport.
type logMsg struct{ line string }

// telemetryMsg carries the raw row for the live-state header.
type telemetryMsg struct{ telemetry.TelemetryRow }

// TUIWriter renders mission progress using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program showing the mission plan, its
// feasibility verdict, and a scrolling telemetry log.
func NewTUIWriter(missionID string, wps []mission.Waypoint, verdict energy.Result) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(missionID, wps, verdict), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// Write implements TelemetryWriter.
func (w *TUIWriter) Write(row telemetry.TelemetryRow) error {
	statusColor := colorGreen
	switch row.Status {
	case telemetry.StatusFailure:
		statusColor = colorRed
	case telemetry.StatusLowBattery:
		statusColor = colorYellow
	case telemetry.StatusHovering:
		statusColor = colorCyan
	}
	line := fmt.Sprintf("%s[%s]%s %slat=%.5f%s %slon=%.5f%s %salt=%.1f%s %sspd=%.1f%s %shdg=%.0f%s %sbatt=%.1f%s %swp=%d%s %sstatus=%s%s",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorGreen, row.Lat, colorReset,
		colorYellow, row.Lon, colorReset,
		colorMagenta, row.Alt, colorReset,
		colorCyan, row.SpeedMPS, colorReset,
		colorCyan, row.HeadingDeg, colorReset,
		colorBlue, row.Battery, colorReset,
		colorGray, row.TargetIndex, colorReset,
		statusColor, row.Status, colorReset)
	w.program.Send(logMsg{line: line})
	w.program.Send(telemetryMsg{row})
	return nil
}

// WriteBatch outputs multiple telemetry rows.
func (w *TUIWriter) WriteBatch(rows []telemetry.TelemetryRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

var (
	tuiTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tuiStatusStyle = map[energy.Status]lipgloss.Style{
		energy.StatusFeasible:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		energy.StatusRisky:          lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		energy.StatusCannotComplete: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		energy.StatusIndeterminate:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

type tuiModel struct {
	missionID  string
	verdict    energy.Result
	table      table.Model
	vp         viewport.Model
	logs       []string
	last       telemetry.TelemetryRow
	haveRow    bool
	autoscroll bool
	width      int
	height     int
}

func newTUIModel(missionID string, wps []mission.Waypoint, verdict energy.Result) tuiModel {
	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Role", Width: 9},
		{Title: "Lat", Width: 10},
		{Title: "Lon", Width: 11},
		{Title: "Alt", Width: 6},
		{Title: "Hover", Width: 6},
	}
	rows := make([]table.Row, len(wps))
	for i, wp := range wps {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i),
			string(wp.Role),
			fmt.Sprintf("%.5f", wp.Position.Lat),
			fmt.Sprintf("%.5f", wp.Position.Lon),
			fmt.Sprintf("%.0f", wp.AltitudeM),
			fmt.Sprintf("%.0fs", wp.HoverSec),
		}
	}
	height := len(rows) + 1
	if height > 8 {
		height = 8
	}
	t := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithHeight(height))
	return tuiModel{
		missionID:  missionID,
		verdict:    verdict,
		table:      t,
		vp:         viewport.New(0, 0),
		autoscroll: true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.resizeViewport()
		m.refreshViewport()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "a":
			m.autoscroll = !m.autoscroll
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	case logMsg:
		m.logs = append(m.logs, msg.line)
		m.refreshViewport()
	case telemetryMsg:
		m.last = msg.TelemetryRow
		m.haveRow = true
	}
	return m, nil
}

func (m *tuiModel) resizeViewport() {
	headerHeight := lipgloss.Height(m.renderHeader())
	h := m.height - headerHeight - 1
	if h < 3 {
		h = 3
	}
	m.vp.Height = h
}

func (m *tuiModel) refreshViewport() {
	m.vp.SetContent(joinLines(m.logs))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) renderHeader() string {
	v := m.verdict
	style, ok := tuiStatusStyle[v.Status]
	if !ok {
		style = lipgloss.NewStyle()
	}
	summary := fmt.Sprintf("%s  dist=%.0fm  flight=%.1fmin  battery=%.1f%% (+reserve %.1f%%)",
		style.Render(string(v.Status)),
		v.TotalDistanceM, v.EstimatedFlightMinutes,
		v.BatteryRequiredPercent, v.BatteryWithReservePercent)

	var warnings string
	for _, warn := range v.Warnings {
		warnings += "\n  - " + warn.Message
	}
	if warnings != "" && m.width > 0 {
		warnings = wordwrap.String(warnings, m.width)
	}

	live := ""
	if m.haveRow {
		live = fmt.Sprintf("\nvehicle: lat=%.5f lon=%.5f alt=%.1fm batt=%.1f%% wp=%d %s",
			m.last.Lat, m.last.Lon, m.last.Alt, m.last.Battery, m.last.TargetIndex, m.last.Status)
	}

	return tuiTitleStyle.Render("mission "+m.missionID) + "\n" +
		summary + warnings + live + "\n" + m.table.View()
}

func (m tuiModel) View() string {
	return m.renderHeader() + "\n" + m.vp.View()
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
