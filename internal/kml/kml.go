// KML export of planned missions for viewing in Google Earth and the like.
package kml

import (
	"fmt"
	"io"
	"strings"

	kml "github.com/twpayne/go-kml"

	"missionplan/internal/geo"
	"missionplan/internal/mission"
)

// Write renders the mission as KML: one placemark per waypoint plus a track
// line following the smoothed display path.
func Write(w io.Writer, name string, wps []mission.Waypoint, path []geo.Point) error {
	doc := kml.Folder(kml.Name(name))

	track := make([]kml.Coordinate, len(path))
	for i, pt := range path {
		track[i] = kml.Coordinate{Lon: pt.Lon, Lat: pt.Lat}
	}
	doc.Add(kml.Placemark(
		kml.Name("Planned path"),
		kml.LineString(
			kml.AltitudeMode(kml.AltitudeModeRelativeToGround),
			kml.Tessellate(true),
			kml.Coordinates(track...),
		),
	))

	for i, wp := range wps {
		doc.Add(kml.Placemark(
			kml.Name(placemarkName(i, wp.Role)),
			kml.Description(fmt.Sprintf("Altitude: %.0f m<br/>Speed: %.1f m/s<br/>Hover: %.0f s",
				wp.AltitudeM, wp.SpeedMPS, wp.HoverSec)),
			kml.Point(
				kml.AltitudeMode(kml.AltitudeModeRelativeToGround),
				kml.Coordinates(kml.Coordinate{Lon: wp.Position.Lon, Lat: wp.Position.Lat, Alt: wp.AltitudeM}),
			),
		))
	}

	return kml.KML(doc).WriteIndent(w, "", "  ")
}

func placemarkName(index int, role mission.Role) string {
	switch role {
	case mission.RoleHome:
		return "Home"
	case mission.RoleReturnToLaunch:
		return "RTL"
	default:
		return fmt.Sprintf("WP%d", index+1)
	}
}

// FileName derives a .kml file name from a mission file path.
func FileName(missionPath string) string {
	base := missionPath
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base + ".kml"
}
