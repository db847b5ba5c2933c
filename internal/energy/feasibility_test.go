package energy

import (
	"math"
	"strings"
	"testing"

	"missionplan/internal/config"
	"missionplan/internal/geo"
	"missionplan/internal/mission"
)

func sanFranciscoRoute() []mission.Waypoint {
	return []mission.Waypoint{
		{ID: "a", Position: geo.Point{Lat: 37.7749, Lon: -122.4194}, Role: mission.RoleHome},
		{ID: "b", Position: geo.Point{Lat: 37.7849, Lon: -122.4294}, Role: mission.RoleOrdinary},
	}
}

func evaluateRoute(t *testing.T, wps []mission.Waypoint, params mission.Parameters, drone *config.DroneProfile) Result {
	t.Helper()
	dist := geo.TotalPathLength(mission.Positions(wps))
	est := Compute(dist, mission.TotalHoverSec(wps), params, drone)
	return Evaluate(est, wps, params, drone)
}

func TestEvaluateShortMissionFeasible(t *testing.T) {
	drone := &config.DroneProfile{ID: "x", CruiseSpeedMPS: 15, MaxFlightTimeMin: 20}
	params := mission.Parameters{SafetyReservePercent: 20}
	res := evaluateRoute(t, sanFranciscoRoute(), params, drone)

	if res.Status != StatusFeasible {
		t.Fatalf("Status = %q, want feasible", res.Status)
	}
	if math.Abs(res.TotalDistanceM-1417.33) > 0.5 {
		t.Errorf("TotalDistanceM = %v, want ~1417.33", res.TotalDistanceM)
	}
	if math.Abs(res.EstimatedFlightMinutes-1.5748) > 0.001 {
		t.Errorf("EstimatedFlightMinutes = %v, want ~1.5748", res.EstimatedFlightMinutes)
	}
	if math.Abs(res.BatteryWithReservePercent-9.449) > 0.001 {
		t.Errorf("BatteryWithReservePercent = %v, want ~9.449", res.BatteryWithReservePercent)
	}
	if !hasWarning(res, SeveritySuccess, "feasible") {
		t.Errorf("missing feasible message in %v", res.Warnings)
	}
}

func TestEvaluateTinyBatteryCannotComplete(t *testing.T) {
	drone := &config.DroneProfile{ID: "x", CruiseSpeedMPS: 15, MaxFlightTimeMin: 1}
	params := mission.Parameters{SafetyReservePercent: 20}
	res := evaluateRoute(t, sanFranciscoRoute(), params, drone)

	if res.Status != StatusCannotComplete {
		t.Fatalf("Status = %q, want cannot_complete", res.Status)
	}
	if math.Abs(res.BatteryRequiredPercent-157.48) > 0.01 {
		t.Errorf("BatteryRequiredPercent = %v, want ~157.48", res.BatteryRequiredPercent)
	}
	if !hasWarning(res, SeverityError, "cannot be completed") {
		t.Errorf("missing cannot-complete message in %v", res.Warnings)
	}
}

func TestEvaluateBoundariesAreInclusive(t *testing.T) {
	tests := []struct {
		name    string
		reserve float64
		want    Status
	}{
		{"just under risky", 79.99, StatusFeasible},
		{"exactly risky", 80.0, StatusRisky},
		{"just under cannot", 99.99, StatusRisky},
		{"exactly cannot", 100.0, StatusCannotComplete},
	}
	for _, tc := range tests {
		est := Estimate{
			HasFlightTime:             true,
			HasBattery:                true,
			BatteryWithReservePercent: tc.reserve,
		}
		drone := &config.DroneProfile{ID: "x", CruiseSpeedMPS: 10}
		res := Evaluate(est, sanFranciscoRoute(), mission.Parameters{}, drone)
		if res.Status != tc.want {
			t.Errorf("%s: Status = %q, want %q", tc.name, res.Status, tc.want)
		}
	}
}

func TestEvaluateNoDroneIndeterminate(t *testing.T) {
	res := evaluateRoute(t, sanFranciscoRoute(), mission.Parameters{}, nil)
	if res.Status != StatusIndeterminate {
		t.Fatalf("Status = %q, want indeterminate", res.Status)
	}
	if !hasWarning(res, SeverityInfo, "no drone selected") {
		t.Errorf("missing no-drone message in %v", res.Warnings)
	}
}

func TestEvaluateMissingBatteryDataIndeterminate(t *testing.T) {
	drone := &config.DroneProfile{ID: "x", CruiseSpeedMPS: 15}
	res := evaluateRoute(t, sanFranciscoRoute(), mission.Parameters{}, drone)
	if res.Status != StatusIndeterminate {
		t.Fatalf("Status = %q, want indeterminate", res.Status)
	}
	if !hasWarning(res, SeverityInfo, "insufficient drone data") {
		t.Errorf("missing insufficient-data message in %v", res.Warnings)
	}
}

func TestEvaluateEmptyMission(t *testing.T) {
	drone := &config.DroneProfile{ID: "x", CruiseSpeedMPS: 15, MaxFlightTimeMin: 20}
	res := evaluateRoute(t, nil, mission.Parameters{}, drone)
	if res.Status != StatusIndeterminate {
		t.Fatalf("Status = %q, want indeterminate", res.Status)
	}
	if !hasWarning(res, SeverityInfo, "no waypoints") {
		t.Errorf("missing empty-mission message in %v", res.Warnings)
	}
}

func TestEvaluateAltitudeWarning(t *testing.T) {
	drone := &config.DroneProfile{ID: "x", CruiseSpeedMPS: 15, MaxFlightTimeMin: 20, MaxAltitudeM: 100}
	wps := sanFranciscoRoute()
	wps[1].AltitudeM = 150
	res := evaluateRoute(t, wps, mission.Parameters{SafetyReservePercent: 20}, drone)
	if !hasWarning(res, SeverityWarning, "exceeds drone limit") {
		t.Fatalf("missing altitude warning in %v", res.Warnings)
	}
}

func TestEvaluateWindWarning(t *testing.T) {
	drone := &config.DroneProfile{ID: "x", CruiseSpeedMPS: 15, MaxFlightTimeMin: 20, WindResistanceMPS: 8}
	params := mission.Parameters{WindSpeedMPS: 9}
	res := evaluateRoute(t, sanFranciscoRoute(), params, drone)
	if !hasWarning(res, SeverityWarning, "wind resistance") {
		t.Fatalf("missing wind warning in %v", res.Warnings)
	}
}

func TestEvaluateNoHomeNote(t *testing.T) {
	wps := sanFranciscoRoute()
	wps[0].Role = mission.RoleOrdinary
	drone := &config.DroneProfile{ID: "x", CruiseSpeedMPS: 15, MaxFlightTimeMin: 20}
	res := evaluateRoute(t, wps, mission.Parameters{}, drone)
	if !hasWarning(res, SeverityInfo, "no home waypoint") {
		t.Fatalf("missing home note in %v", res.Warnings)
	}
}

func TestEvaluateWarningOrder(t *testing.T) {
	// No drone, no waypoints: the no-drone note must precede the
	// empty-mission note, matching the fixed emission order.
	res := Evaluate(Estimate{}, nil, mission.Parameters{}, nil)
	if len(res.Warnings) < 2 {
		t.Fatalf("expected at least 2 warnings, got %v", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0].Message, "no drone") {
		t.Errorf("first warning = %q, want no-drone note", res.Warnings[0].Message)
	}
	if !strings.Contains(res.Warnings[1].Message, "no waypoints") {
		t.Errorf("second warning = %q, want empty-mission note", res.Warnings[1].Message)
	}
}

func hasWarning(res Result, sev Severity, substr string) bool {
	for _, w := range res.Warnings {
		if w.Severity == sev && strings.Contains(w.Message, substr) {
			return true
		}
	}
	return false
}
