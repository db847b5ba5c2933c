// Mission domain types shared by the planner, route tools, and exporters.
package mission

import "missionplan/internal/geo"

// Role marks a waypoint's function inside the route.
type Role string

// Waypoint roles. Home and return-to-launch are anchors: at most one of
// each may exist, and they are pinned to the start and end of the route.
const (
	RoleOrdinary       Role = "waypoint"
	RoleHome           Role = "home"
	RoleReturnToLaunch Role = "rtl"
)

// Waypoint is a single point the vehicle must visit.
type Waypoint struct {
	ID        string    `json:"id"`
	Position  geo.Point `json:"position"`
	AltitudeM float64   `json:"altitude_m"`
	SpeedMPS  float64   `json:"speed_mps"`
	HoverSec  float64   `json:"hover_sec"`
	Role      Role      `json:"role"`
}

// Parameters holds mission-wide planning inputs.
// A DefaultSpeedMPS of 0 means "use the drone's cruise speed".
type Parameters struct {
	DefaultAltitudeM     float64 `json:"default_altitude_m"`
	DefaultSpeedMPS      float64 `json:"default_speed_mps"`
	SafetyReservePercent float64 `json:"safety_reserve_percent"`
	WindSpeedMPS         float64 `json:"wind_speed_mps"`
}

// Positions extracts the coordinate sequence of wps in visiting order.
func Positions(wps []Waypoint) []geo.Point {
	pts := make([]geo.Point, len(wps))
	for i, wp := range wps {
		pts[i] = wp.Position
	}
	return pts
}

// TotalHoverSec sums the hover dwell over all waypoints.
func TotalHoverSec(wps []Waypoint) float64 {
	var total float64
	for _, wp := range wps {
		total += wp.HoverSec
	}
	return total
}

// MaxAltitudeM returns the highest waypoint altitude, or 0 for an empty route.
func MaxAltitudeM(wps []Waypoint) float64 {
	var max float64
	for _, wp := range wps {
		if wp.AltitudeM > max {
			max = wp.AltitudeM
		}
	}
	return max
}
