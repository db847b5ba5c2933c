// Route shaping tools: display-path smoothing and visiting-order optimization.
package route

import "missionplan/internal/geo"

// SamplesPerSegment is the number of interpolated points emitted for each
// waypoint-to-waypoint segment when smoothing.
const SamplesPerSegment = 20

// Smooth returns a dense Catmull-Rom polyline through the given points,
// for display only. Distance and energy math always use the straight
// waypoint-to-waypoint path. Fewer than 3 points are returned as-is.
//
// Out-of-range control indices clamp to the first/last element, and the
// exact final point is appended so the path terminates on the last waypoint.
func Smooth(points []geo.Point) []geo.Point {
	if len(points) < 3 {
		out := make([]geo.Point, len(points))
		copy(out, points)
		return out
	}

	out := make([]geo.Point, 0, SamplesPerSegment*(len(points)-1)+1)
	for i := 0; i < len(points)-1; i++ {
		p0 := points[clampIndex(i-1, len(points))]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[clampIndex(i+2, len(points))]
		for s := 0; s < SamplesPerSegment; s++ {
			t := float64(s) / SamplesPerSegment
			out = append(out, geo.Point{
				Lat: catmullRom(p0.Lat, p1.Lat, p2.Lat, p3.Lat, t),
				Lon: catmullRom(p0.Lon, p1.Lon, p2.Lon, p3.Lon, t),
			})
		}
	}
	return append(out, points[len(points)-1])
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// catmullRom evaluates the standard Catmull-Rom basis for one scalar component.
func catmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * (2*p1 +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}
