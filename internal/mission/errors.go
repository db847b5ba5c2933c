package mission

import (
	"errors"
	"fmt"
)

// Sentinel errors for recoverable planning failures. None of these are fatal;
// callers decide how to surface them.
var (
	ErrInvalidCoordinate     = errors.New("coordinate outside valid range")
	ErrInsufficientWaypoints = errors.New("at least 2 reorderable waypoints required")
	ErrNoDroneSelected       = errors.New("no drone selected")
	ErrUnknownWaypoint       = errors.New("unknown waypoint id")
)

// ValidateCoordinate rejects latitudes outside [-90,90] and longitudes
// outside [-180,180]. Invalid input is never silently corrected.
func ValidateCoordinate(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, lon)
	}
	return nil
}
