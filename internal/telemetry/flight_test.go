package telemetry

import (
	"math"
	"testing"
	"time"

	"missionplan/internal/config"
	"missionplan/internal/geo"
	"missionplan/internal/mission"
)

func flightDrone() *config.DroneProfile {
	return &config.DroneProfile{ID: "scout-x1", CruiseSpeedMPS: 10, MaxFlightTimeMin: 25}
}

func northboundRoute(legM float64) []mission.Waypoint {
	dLat := legM / metersPerDegLat
	return []mission.Waypoint{
		{ID: "a", Position: geo.Point{Lat: 0, Lon: 0}, Role: mission.RoleHome},
		{ID: "b", Position: geo.Point{Lat: dLat, Lon: 0}, Role: mission.RoleOrdinary},
	}
}

func TestNewFlightStartsAtFirstWaypoint(t *testing.T) {
	wps := northboundRoute(100)
	f := NewFlight("m1", "d1", flightDrone(), wps, mission.Parameters{})
	if f.Done() {
		t.Fatalf("fresh flight already done")
	}
	row := f.Step(0)
	if row.Lat != 0 || row.Lon != 0 {
		t.Fatalf("start position = (%v, %v), want first waypoint", row.Lat, row.Lon)
	}
	if row.Battery != 100 {
		t.Fatalf("start battery = %v, want 100", row.Battery)
	}
}

func TestFlightEmptyRouteDone(t *testing.T) {
	f := NewFlight("m1", "d1", flightDrone(), nil, mission.Parameters{})
	if !f.Done() {
		t.Fatalf("empty route should be immediately done")
	}
}

func TestFlightNoSpeedDone(t *testing.T) {
	f := NewFlight("m1", "d1", nil, northboundRoute(100), mission.Parameters{})
	if !f.Done() {
		t.Fatalf("flight without a usable speed should be done")
	}
}

func TestFlightReachesTarget(t *testing.T) {
	wps := northboundRoute(50)
	f := NewFlight("m1", "d1", flightDrone(), wps, mission.Parameters{})
	// 50 m at 10 m/s: done within 5 seconds of simulated time.
	var row TelemetryRow
	for i := 0; i < 10 && !f.Done(); i++ {
		row = f.Step(time.Second)
	}
	if !f.Done() {
		t.Fatalf("flight did not complete")
	}
	if row.Status != StatusComplete {
		t.Fatalf("final status = %q, want complete", row.Status)
	}
	if math.Abs(row.Lat-wps[1].Position.Lat) > 1e-9 {
		t.Fatalf("final lat = %v, want %v", row.Lat, wps[1].Position.Lat)
	}
}

func TestFlightHeadingNorth(t *testing.T) {
	f := NewFlight("m1", "d1", flightDrone(), northboundRoute(1000), mission.Parameters{})
	row := f.Step(time.Second)
	if math.Abs(row.HeadingDeg) > 0.5 {
		t.Fatalf("heading = %v, want ~0 (north)", row.HeadingDeg)
	}
	if row.SpeedMPS != 10 {
		t.Fatalf("speed = %v, want cruise 10", row.SpeedMPS)
	}
}

func TestFlightHoverBeforeMoving(t *testing.T) {
	wps := northboundRoute(1000)
	wps[0].HoverSec = 2
	f := NewFlight("m1", "d1", flightDrone(), wps, mission.Parameters{})

	row := f.Step(time.Second)
	if !row.Hovering || row.Status != StatusHovering {
		t.Fatalf("expected hover first, got %+v", row)
	}
	if row.Lat != 0 {
		t.Fatalf("moved while hovering: lat = %v", row.Lat)
	}
	f.Step(time.Second)
	row = f.Step(time.Second)
	if row.Hovering {
		t.Fatalf("still hovering after dwell elapsed")
	}
	if row.Lat <= 0 {
		t.Fatalf("did not move after hover: lat = %v", row.Lat)
	}
}

func TestFlightBatteryDrain(t *testing.T) {
	drone := flightDrone()
	drone.MaxFlightTimeMin = 1 // 100% over 60 s
	f := NewFlight("m1", "d1", drone, northboundRoute(100000), mission.Parameters{})

	row := f.Step(30 * time.Second)
	if math.Abs(row.Battery-50) > 0.01 {
		t.Fatalf("battery after 30s = %v, want ~50", row.Battery)
	}
	row = f.Step(60 * time.Second)
	if row.Battery != 0 || row.Status != StatusFailure {
		t.Fatalf("expected exhausted battery failure, got %+v", row)
	}
	if !f.Done() {
		t.Fatalf("flight not done after battery exhaustion")
	}
}

func TestFlightLowBatteryStatus(t *testing.T) {
	drone := flightDrone()
	drone.MaxFlightTimeMin = 1
	f := NewFlight("m1", "d1", drone, northboundRoute(100000), mission.Parameters{})
	row := f.Step(50 * time.Second) // ~17% left
	if row.Status != StatusLowBattery {
		t.Fatalf("status = %q, want low_battery", row.Status)
	}
}

func TestFlightWaypointSpeedOverride(t *testing.T) {
	wps := northboundRoute(1000)
	wps[1].SpeedMPS = 25
	f := NewFlight("m1", "d1", flightDrone(), wps, mission.Parameters{})
	row := f.Step(time.Second)
	if row.SpeedMPS != 25 {
		t.Fatalf("speed = %v, want waypoint override 25", row.SpeedMPS)
	}
}
