package route

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"missionplan/internal/geo"
	"missionplan/internal/mission"
)

func wp(id string, lat, lon float64, role mission.Role) mission.Waypoint {
	return mission.Waypoint{ID: id, Position: geo.Point{Lat: lat, Lon: lon}, Role: role}
}

// A home anchor plus waypoints deliberately listed in a zig-zag order, so
// insertion order is not already the shortest route.
func scatteredRoute() []mission.Waypoint {
	return []mission.Waypoint{
		wp("home", 48.20, 16.40, mission.RoleHome),
		wp("far", 48.30, 16.50, mission.RoleOrdinary),
		wp("near", 48.21, 16.41, mission.RoleOrdinary),
		wp("mid2", 48.26, 16.46, mission.RoleOrdinary),
		wp("mid1", 48.23, 16.43, mission.RoleOrdinary),
		wp("edge", 48.28, 16.48, mission.RoleOrdinary),
	}
}

func ids(wps []mission.Waypoint) []string {
	out := make([]string, len(wps))
	for i, w := range wps {
		out[i] = w.ID
	}
	return out
}

func TestOptimizeIsPermutation(t *testing.T) {
	in := scatteredRoute()
	out, err := Optimize(in)
	if err != nil {
		t.Fatalf("Optimize() error: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("Optimize() returned %d waypoints, want %d", len(out), len(in))
	}
	a, b := ids(in), ids(out)
	sort.Strings(a)
	sort.Strings(b)
	if fmt.Sprint(a) != fmt.Sprint(b) {
		t.Fatalf("Optimize() changed the waypoint set: %v vs %v", a, b)
	}
}

func TestOptimizeHomeStaysFirst(t *testing.T) {
	out, err := Optimize(scatteredRoute())
	if err != nil {
		t.Fatalf("Optimize() error: %v", err)
	}
	if out[0].Role != mission.RoleHome {
		t.Fatalf("first waypoint role = %q, want home", out[0].Role)
	}
}

func TestOptimizeRTLStaysLast(t *testing.T) {
	in := scatteredRoute()
	// Insert the return anchor mid-sequence to prove it gets pinned back.
	in = append(in[:3], append([]mission.Waypoint{wp("rtl", 48.20, 16.40, mission.RoleReturnToLaunch)}, in[3:]...)...)
	out, err := Optimize(in)
	if err != nil {
		t.Fatalf("Optimize() error: %v", err)
	}
	if out[len(out)-1].ID != "rtl" {
		t.Fatalf("last waypoint = %q, want rtl", out[len(out)-1].ID)
	}
}

func TestOptimizeShortensScatteredRoute(t *testing.T) {
	in := scatteredRoute()
	before := geo.TotalPathLength(mission.Positions(in))
	out, err := Optimize(in)
	if err != nil {
		t.Fatalf("Optimize() error: %v", err)
	}
	after := geo.TotalPathLength(mission.Positions(out))
	if after > before {
		t.Fatalf("optimized length %.0f m exceeds insertion order %.0f m", after, before)
	}
}

func TestOptimizeDeterministic(t *testing.T) {
	out1, _ := Optimize(scatteredRoute())
	out2, _ := Optimize(scatteredRoute())
	if fmt.Sprint(ids(out1)) != fmt.Sprint(ids(out2)) {
		t.Fatalf("Optimize() not deterministic: %v vs %v", ids(out1), ids(out2))
	}
}

func TestOptimizeInsufficientWaypoints(t *testing.T) {
	in := []mission.Waypoint{
		wp("home", 0, 0, mission.RoleHome),
		wp("a", 1, 1, mission.RoleOrdinary),
	}
	out, err := Optimize(in)
	if !errors.Is(err, mission.ErrInsufficientWaypoints) {
		t.Fatalf("Optimize() error = %v, want ErrInsufficientWaypoints", err)
	}
	if fmt.Sprint(ids(out)) != fmt.Sprint(ids(in)) {
		t.Fatalf("order changed despite error: %v", ids(out))
	}
}

func TestOptimizeDoesNotMutateInput(t *testing.T) {
	in := scatteredRoute()
	before := fmt.Sprint(ids(in))
	if _, err := Optimize(in); err != nil {
		t.Fatalf("Optimize() error: %v", err)
	}
	if fmt.Sprint(ids(in)) != before {
		t.Fatalf("input slice reordered: %v", ids(in))
	}
}
