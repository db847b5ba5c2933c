package route

import (
	"missionplan/internal/geo"
	"missionplan/internal/mission"
)

// Optimize reorders the ordinary waypoints of wps with a greedy
// nearest-neighbor pass to shorten the total route. This is deliberately not
// an optimal TSP solver; interactive missions stay small enough that the
// O(n²) heuristic is a good trade for speed.
//
// The home waypoint (or the first element when no home exists) stays first
// and a return-to-launch waypoint stays last, even when a closer reordering
// would shorten the route. Ties go to the earliest remaining waypoint, so
// the result is deterministic. The output is always a permutation of wps.
//
// With fewer than 2 ordinary waypoints the input is returned unchanged
// together with mission.ErrInsufficientWaypoints.
func Optimize(wps []mission.Waypoint) ([]mission.Waypoint, error) {
	var (
		home *mission.Waypoint
		rtl  *mission.Waypoint
		pool []mission.Waypoint
	)
	for i := range wps {
		switch wps[i].Role {
		case mission.RoleHome:
			home = &wps[i]
		case mission.RoleReturnToLaunch:
			rtl = &wps[i]
		default:
			pool = append(pool, wps[i])
		}
	}

	if len(pool) < 2 {
		out := make([]mission.Waypoint, len(wps))
		copy(out, wps)
		return out, mission.ErrInsufficientWaypoints
	}

	result := make([]mission.Waypoint, 0, len(wps))
	if home != nil {
		result = append(result, *home)
	} else {
		// No home anchor: the first sequence element is the fixed start.
		result = append(result, pool[0])
		pool = pool[1:]
	}

	for len(pool) > 0 {
		tail := result[len(result)-1].Position
		best := 0
		bestDist := geo.Distance(tail, pool[0].Position)
		for i := 1; i < len(pool); i++ {
			if d := geo.Distance(tail, pool[i].Position); d < bestDist {
				best = i
				bestDist = d
			}
		}
		result = append(result, pool[best])
		pool = append(pool[:best], pool[best+1:]...)
	}

	if rtl != nil {
		result = append(result, *rtl)
	}
	return result, nil
}
