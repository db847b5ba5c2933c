// YAML drone-catalog loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DroneProfile describes the performance figures of a drone model.
// Optional fields use 0 for "not provided"; the energy model degrades to an
// indeterminate verdict rather than guessing.
type DroneProfile struct {
	ID                 string  `yaml:"id"`
	Name               string  `yaml:"name"`
	Type               string  `yaml:"type"`
	CruiseSpeedMPS     float64 `yaml:"cruise_speed_mps"`
	MaxFlightTimeMin   float64 `yaml:"max_flight_time_min,omitempty"`
	BatteryCapacityMAH float64 `yaml:"battery_capacity_mah,omitempty"`
	HoverCurrentA      float64 `yaml:"hover_current_a,omitempty"`
	MaxAltitudeM       float64 `yaml:"max_altitude_m,omitempty"`
	WindResistanceMPS  float64 `yaml:"wind_resistance_mps,omitempty"`
}

// DefaultWindResistanceMPS applies when a profile does not declare one.
const DefaultWindResistanceMPS = 10.0

// WindResistanceOrDefault returns the declared wind resistance or the default.
func (p *DroneProfile) WindResistanceOrDefault() float64 {
	if p.WindResistanceMPS > 0 {
		return p.WindResistanceMPS
	}
	return DefaultWindResistanceMPS
}

// PlannerDefaults seeds new missions with parameter values.
type PlannerDefaults struct {
	AltitudeM        float64 `yaml:"altitude_m"`
	SpeedMPS         float64 `yaml:"speed_mps"`
	SafetyReservePct float64 `yaml:"safety_reserve_pct"`
	WindSpeedMPS     float64 `yaml:"wind_speed_mps"`
}

// Catalog is the root configuration: available drones plus planner defaults.
type Catalog struct {
	Drones   []DroneProfile  `yaml:"drones"`
	Defaults PlannerDefaults `yaml:"defaults"`
}

// Find returns the profile with the given id, or nil if absent.
func (c *Catalog) Find(id string) *DroneProfile {
	for i := range c.Drones {
		if c.Drones[i].ID == id {
			return &c.Drones[i]
		}
	}
	return nil
}

// Load loads a YAML catalog and validates it against a CUE schema.
// An empty schemaPath skips schema validation.
func Load(configPath, cueSchemaPath string) (*Catalog, error) {
	if cueSchemaPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, d := range cat.Drones {
		if d.ID == "" {
			return nil, fmt.Errorf("catalog drone %d: missing id", i)
		}
		if d.CruiseSpeedMPS < 0 {
			return nil, fmt.Errorf("catalog drone %q: negative cruise speed", d.ID)
		}
	}
	return &cat, nil
}
