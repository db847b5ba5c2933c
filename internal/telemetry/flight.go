package telemetry

import (
	"math"
	"time"

	"missionplan/internal/config"
	"missionplan/internal/energy"
	"missionplan/internal/geo"
	"missionplan/internal/mission"
)

// metersPerDegLat converts small lat/lon deltas to meters on a flat-earth
// approximation, good enough for per-tick movement.
const metersPerDegLat = 111000.0

// climbRateMPS bounds how fast the simulated vehicle changes altitude.
const climbRateMPS = 3.0

// Flight simulates a vehicle flying the planned route: straight legs between
// waypoints at the wind-derated speed, hover dwell at each stop, battery
// drained against the drone's max flight time. It is purely synthetic; no
// real vehicle is involved.
type Flight struct {
	MissionID string
	DroneID   string

	route  []mission.Waypoint
	params mission.Parameters
	drone  *config.DroneProfile

	pos         geo.Point
	alt         float64
	heading     float64
	battery     float64
	drainPerSec float64
	target      int
	hoverLeft   float64
	done        bool
	now         func() time.Time
}

// NewFlight positions a simulated vehicle at the first waypoint with a full
// battery. A nil drone or an empty route yields an immediately-done flight.
func NewFlight(missionID, droneID string, drone *config.DroneProfile, wps []mission.Waypoint, params mission.Parameters) *Flight {
	f := &Flight{
		MissionID: missionID,
		DroneID:   droneID,
		route:     append([]mission.Waypoint(nil), wps...),
		params:    params,
		drone:     drone,
		battery:   100,
		now:       time.Now,
	}
	if drone != nil && drone.MaxFlightTimeMin > 0 {
		f.drainPerSec = 100 / (drone.MaxFlightTimeMin * 60)
	}
	if len(f.route) == 0 || energy.AdjustedSpeedMPS(params, drone) <= 0 {
		f.done = true
		return f
	}
	f.pos = f.route[0].Position
	f.alt = f.route[0].AltitudeM
	f.hoverLeft = f.route[0].HoverSec
	f.target = 1
	if f.target >= len(f.route) {
		f.done = true
	}
	return f
}

// Done reports whether the route is complete or the battery is exhausted.
func (f *Flight) Done() bool { return f.done }

// Step advances the flight by dt and returns the resulting telemetry row.
func (f *Flight) Step(dt time.Duration) TelemetryRow {
	sec := dt.Seconds()
	speed := 0.0
	hovering := false

	if !f.done {
		f.battery -= f.drainPerSec * sec
		if f.battery <= 0 {
			f.battery = 0
			f.done = true
		}
	}

	switch {
	case f.done:
	case f.hoverLeft > 0:
		hovering = true
		f.hoverLeft -= sec
	default:
		speed = f.legSpeed()
		f.advance(speed * sec)
	}

	return TelemetryRow{
		MissionID:   f.MissionID,
		DroneID:     f.DroneID,
		Lat:         f.pos.Lat,
		Lon:         f.pos.Lon,
		Alt:         f.alt,
		SpeedMPS:    speed,
		HeadingDeg:  f.heading,
		Battery:     f.battery,
		TargetIndex: f.target,
		Hovering:    hovering,
		Status:      f.status(),
		Timestamp:   f.now().UTC(),
	}
}

// legSpeed prefers the target waypoint's own speed over the mission default.
func (f *Flight) legSpeed() float64 {
	if f.target < len(f.route) && f.route[f.target].SpeedMPS > 0 {
		return f.route[f.target].SpeedMPS
	}
	return energy.AdjustedSpeedMPS(f.params, f.drone)
}

// advance moves up to stepM meters toward the current target, consuming
// waypoints (and starting their hover dwell) as they are reached.
func (f *Flight) advance(stepM float64) {
	for stepM > 0 && f.target < len(f.route) {
		tgt := f.route[f.target]
		northM := (tgt.Position.Lat - f.pos.Lat) * metersPerDegLat
		eastM := (tgt.Position.Lon - f.pos.Lon) * metersPerDegLat * math.Cos(f.pos.Lat*math.Pi/180)
		dist := math.Hypot(northM, eastM)

		if dist > 1e-6 {
			f.heading = headingDeg(eastM, northM)
		}
		if dist <= stepM {
			f.pos = tgt.Position
			f.alt = tgt.AltitudeM
			f.hoverLeft = tgt.HoverSec
			f.target++
			if f.target >= len(f.route) {
				f.done = true
			}
			if f.hoverLeft > 0 {
				return
			}
			stepM -= dist
			continue
		}

		frac := stepM / dist
		f.pos.Lat += northM * frac / metersPerDegLat
		f.pos.Lon += eastM * frac / (metersPerDegLat * math.Cos(f.pos.Lat*math.Pi/180))
		f.alt = stepToward(f.alt, tgt.AltitudeM, climbRateMPS*stepM/f.legSpeedSafe())
		return
	}
}

func (f *Flight) legSpeedSafe() float64 {
	if s := f.legSpeed(); s > 0 {
		return s
	}
	return 1
}

func (f *Flight) status() string {
	switch {
	case f.done && f.battery <= 0:
		return StatusFailure
	case f.done:
		return StatusComplete
	case f.battery <= 20:
		return StatusLowBattery
	case f.hoverLeft > 0:
		return StatusHovering
	default:
		return StatusOK
	}
}

// headingDeg converts a local east/north vector to a compass heading,
// 0 = north, 90 = east.
func headingDeg(east, north float64) float64 {
	deg := math.Atan2(east, north) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

func stepToward(cur, target, maxStep float64) float64 {
	switch {
	case math.Abs(target-cur) <= maxStep:
		return target
	case target > cur:
		return cur + maxStep
	default:
		return cur - maxStep
	}
}
