package energy

import (
	"fmt"

	"missionplan/internal/config"
	"missionplan/internal/mission"
)

// Status is the go/no-go classification of a planned mission.
type Status string

const (
	StatusFeasible       Status = "feasible"
	StatusRisky          Status = "risky"
	StatusCannotComplete Status = "cannot_complete"
	StatusIndeterminate  Status = "indeterminate"
)

// Severity grades a warning message.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Warning is a human-readable note attached to a feasibility verdict.
type Warning struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Result is the recomputed-on-demand feasibility verdict. It is derived data
// and never persisted.
type Result struct {
	TotalDistanceM            float64   `json:"total_distance_m"`
	EstimatedFlightMinutes    float64   `json:"estimated_flight_minutes"`
	BatteryRequiredPercent    float64   `json:"battery_required_percent"`
	BatteryWithReservePercent float64   `json:"battery_with_reserve_percent"`
	BatteryAvailablePercent   float64   `json:"battery_available_percent"`
	Status                    Status    `json:"status"`
	Warnings                  []Warning `json:"warnings"`
}

// Battery-reserve thresholds. Hitting a boundary exactly lands in the more
// cautious class: 80.0 is risky, 100.0 cannot complete.
const (
	riskyThresholdPercent  = 80.0
	cannotThresholdPercent = 100.0
)

// Evaluate classifies a mission from its energy estimate and the drone's
// limits, and emits the full ordered warning list. It is state-free: the same
// inputs always produce the same Result.
func Evaluate(est Estimate, wps []mission.Waypoint, params mission.Parameters, drone *config.DroneProfile) Result {
	res := Result{
		TotalDistanceM:            est.TotalDistanceM,
		EstimatedFlightMinutes:    est.FlightMinutes,
		BatteryRequiredPercent:    est.BatteryRequiredPercent,
		BatteryWithReservePercent: est.BatteryWithReservePercent,
		BatteryAvailablePercent:   est.BatteryAvailablePercent,
		Status:                    classify(est, len(wps), drone),
	}

	if drone == nil {
		res.warn(SeverityInfo, "no drone selected; feasibility cannot be assessed")
	}
	if len(wps) == 0 {
		res.warn(SeverityInfo, "mission has no waypoints")
	}
	switch res.Status {
	case StatusCannotComplete:
		res.warn(SeverityError, fmt.Sprintf("mission cannot be completed: %.1f%% battery required including reserve", est.BatteryWithReservePercent))
	case StatusRisky:
		res.warn(SeverityWarning, fmt.Sprintf("mission is risky: %.1f%% battery required including reserve", est.BatteryWithReservePercent))
	case StatusFeasible:
		res.warn(SeveritySuccess, fmt.Sprintf("mission is feasible: %.1f%% battery required including reserve", est.BatteryWithReservePercent))
	case StatusIndeterminate:
		if drone != nil && len(wps) >= 2 {
			res.warn(SeverityInfo, "insufficient drone data to estimate battery usage")
		}
	}
	if drone != nil && drone.MaxAltitudeM > 0 {
		if maxAlt := mission.MaxAltitudeM(wps); maxAlt > drone.MaxAltitudeM {
			res.warn(SeverityWarning, fmt.Sprintf("waypoint altitude %.0f m exceeds drone limit of %.0f m", maxAlt, drone.MaxAltitudeM))
		}
	}
	windLimit := config.DefaultWindResistanceMPS
	if drone != nil {
		windLimit = drone.WindResistanceOrDefault()
	}
	if params.WindSpeedMPS > windLimit {
		res.warn(SeverityWarning, fmt.Sprintf("wind speed %.1f m/s exceeds drone wind resistance of %.1f m/s", params.WindSpeedMPS, windLimit))
	}
	if !hasHome(wps) {
		res.warn(SeverityInfo, "no home waypoint set")
	}
	return res
}

func classify(est Estimate, waypointCount int, drone *config.DroneProfile) Status {
	if drone == nil || waypointCount < 2 || !est.HasBattery {
		return StatusIndeterminate
	}
	switch {
	case est.BatteryWithReservePercent >= cannotThresholdPercent:
		return StatusCannotComplete
	case est.BatteryWithReservePercent >= riskyThresholdPercent:
		return StatusRisky
	default:
		return StatusFeasible
	}
}

func (r *Result) warn(sev Severity, msg string) {
	r.Warnings = append(r.Warnings, Warning{Severity: sev, Message: msg})
}

func hasHome(wps []mission.Waypoint) bool {
	for _, wp := range wps {
		if wp.Role == mission.RoleHome {
			return true
		}
	}
	return false
}
