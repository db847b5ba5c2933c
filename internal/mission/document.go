package mission

import (
	"encoding/json"
	"fmt"
)

// Document is the JSON interchange format for a planned mission.
// The waypoint index is informational; array order is the visiting order.
type Document struct {
	Drone      DroneRef      `json:"drone"`
	Parameters DocParameters `json:"parameters"`
	Waypoints  []DocWaypoint `json:"waypoints"`
}

// DroneRef identifies the drone a mission was planned for.
type DroneRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// DocParameters mirrors Parameters in the interchange document.
type DocParameters struct {
	DefaultAltitude float64 `json:"defaultAltitude"`
	DefaultSpeed    float64 `json:"defaultSpeed"`
	SafetyReserve   float64 `json:"safetyReserve"`
	WindSpeed       float64 `json:"windSpeed"`
}

// DocWaypoint mirrors Waypoint in the interchange document.
type DocWaypoint struct {
	Index     int     `json:"index"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	Speed     float64 `json:"speed"`
	HoverTime float64 `json:"hoverTime"`
	Type      Role    `json:"type"`
}

// ParseDocument decodes and validates a mission document. On any failure the
// returned error carries the parse reason and no document is produced, so a
// caller can keep its current state untouched.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse mission document: %w", err)
	}
	for i, wp := range doc.Waypoints {
		if err := ValidateCoordinate(wp.Latitude, wp.Longitude); err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}
		switch wp.Type {
		case RoleOrdinary, RoleHome, RoleReturnToLaunch:
		default:
			return nil, fmt.Errorf("waypoint %d: unknown type %q", i, wp.Type)
		}
	}
	return &doc, nil
}

// Encode serializes the document with stable indentation.
func (d *Document) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
