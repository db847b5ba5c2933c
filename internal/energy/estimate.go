// Flight-time and battery estimation for planned missions.
package energy

import (
	"missionplan/internal/config"
	"missionplan/internal/mission"
)

const (
	// windDerating scales how strongly headwind-equivalent wind reduces the
	// effective ground speed: factor = 1 + (wind/speed) * windDerating.
	windDerating = 0.3

	// usableBatteryFraction models discharging only 80% of nominal capacity
	// when deriving a max flight time from capacity and hover current.
	usableBatteryFraction = 0.8
)

// Estimate carries the time and battery figures for one route.
// HasFlightTime is false when the effective speed is zero (nothing to divide
// by) and HasBattery is false when the drone profile lacks the data to tie
// flight time to battery usage. Both degrade to an indeterminate verdict.
type Estimate struct {
	TotalDistanceM            float64
	TravelMinutes             float64
	HoverMinutes              float64
	FlightMinutes             float64
	BatteryRequiredPercent    float64
	BatteryWithReservePercent float64
	BatteryAvailablePercent   float64
	HasFlightTime             bool
	HasBattery                bool
}

// EffectiveSpeedMPS resolves the mission speed: the mission default when
// positive, otherwise the drone's cruise speed. 0 when neither is set.
func EffectiveSpeedMPS(params mission.Parameters, drone *config.DroneProfile) float64 {
	if params.DefaultSpeedMPS > 0 {
		return params.DefaultSpeedMPS
	}
	if drone != nil {
		return drone.CruiseSpeedMPS
	}
	return 0
}

// AdjustedSpeedMPS is the wind-derated ground speed used for both time
// estimates and simulated flight. 0 when the effective speed is unknown.
func AdjustedSpeedMPS(params mission.Parameters, drone *config.DroneProfile) float64 {
	speed := EffectiveSpeedMPS(params, drone)
	if speed <= 0 {
		return 0
	}
	return speed / (1 + (params.WindSpeedMPS/speed)*windDerating)
}

// Compute translates route length, hover dwell, mission parameters, and the
// drone profile into an Estimate. It never fails; missing inputs clear the
// corresponding Has* flags instead.
func Compute(distanceM, hoverSec float64, params mission.Parameters, drone *config.DroneProfile) Estimate {
	est := Estimate{
		TotalDistanceM: distanceM,
		HoverMinutes:   hoverSec / 60,
	}

	adjusted := AdjustedSpeedMPS(params, drone)
	if adjusted <= 0 {
		return est
	}
	est.TravelMinutes = (distanceM / adjusted) / 60
	est.FlightMinutes = est.TravelMinutes + est.HoverMinutes
	est.HasFlightTime = true

	maxFlight := maxFlightTimeMin(drone)
	if maxFlight <= 0 {
		return est
	}
	est.BatteryRequiredPercent = (est.FlightMinutes / maxFlight) * 100
	est.BatteryWithReservePercent = est.BatteryRequiredPercent * (1 + params.SafetyReservePercent/100)
	est.BatteryAvailablePercent = 100 - est.BatteryWithReservePercent
	est.HasBattery = true
	return est
}

// maxFlightTimeMin resolves the drone's max flight time in minutes, deriving
// it from battery capacity and hover current when not declared directly.
// Returns 0 when the profile has insufficient data.
func maxFlightTimeMin(drone *config.DroneProfile) float64 {
	if drone == nil {
		return 0
	}
	if drone.MaxFlightTimeMin > 0 {
		return drone.MaxFlightTimeMin
	}
	if drone.BatteryCapacityMAH > 0 && drone.HoverCurrentA > 0 {
		return (drone.BatteryCapacityMAH / 1000 / drone.HoverCurrentA) * 60 * usableBatteryFraction
	}
	return 0
}
