package planner

import (
	"fmt"

	"github.com/google/uuid"

	"missionplan/internal/config"
	"missionplan/internal/energy"
	"missionplan/internal/geo"
	"missionplan/internal/mission"
	"missionplan/internal/store"
)

// Export serializes the mission to its JSON interchange document. The
// waypoint index field is informational; array order is the visiting order.
func (p *Planner) Export() ([]byte, error) {
	return p.ExportDocument().Encode()
}

// ExportDocument builds the interchange document for the current mission.
func (p *Planner) ExportDocument() *mission.Document {
	p.mu.Lock()
	defer p.mu.Unlock()
	doc := &mission.Document{
		Parameters: mission.DocParameters{
			DefaultAltitude: p.params.DefaultAltitudeM,
			DefaultSpeed:    p.params.DefaultSpeedMPS,
			SafetyReserve:   p.params.SafetyReservePercent,
			WindSpeed:       p.params.WindSpeedMPS,
		},
	}
	if p.drone != nil {
		doc.Drone = mission.DroneRef{ID: p.drone.ID, Name: p.drone.Name, Type: p.drone.Type}
	}
	for i, wp := range p.waypoints {
		doc.Waypoints = append(doc.Waypoints, mission.DocWaypoint{
			Index:     i,
			Latitude:  wp.Position.Lat,
			Longitude: wp.Position.Lon,
			Altitude:  wp.AltitudeM,
			Speed:     wp.SpeedMPS,
			HoverTime: wp.HoverSec,
			Type:      wp.Role,
		})
	}
	return doc
}

// Import replaces the mission with the content of a JSON document. The
// document is fully parsed and validated before any state changes, so a
// malformed import leaves the mission untouched. Waypoints get fresh IDs;
// IDs are opaque and not part of the interchange format. The catalog, when
// non-nil, resolves the document's drone reference to a profile.
func (p *Planner) Import(data []byte, catalog *config.Catalog) (energy.Result, error) {
	doc, err := mission.ParseDocument(data)
	if err != nil {
		return p.Feasibility(), err
	}

	var wps []mission.Waypoint
	var rtl *mission.Waypoint
	seenHome := false
	for i, dw := range doc.Waypoints {
		if dw.Type == mission.RoleHome {
			if seenHome {
				return p.Feasibility(), fmt.Errorf("waypoint %d: duplicate home waypoint", i)
			}
			seenHome = true
		}
		wp := mission.Waypoint{
			ID:        uuid.New().String(),
			Position:  geo.Point{Lat: dw.Latitude, Lon: dw.Longitude},
			AltitudeM: dw.Altitude,
			SpeedMPS:  dw.Speed,
			HoverSec:  dw.HoverTime,
			Role:      dw.Type,
		}
		if dw.Type == mission.RoleReturnToLaunch {
			if rtl != nil {
				return p.Feasibility(), fmt.Errorf("waypoint %d: duplicate return-to-launch waypoint", i)
			}
			rtl = &wp
			continue
		}
		wps = append(wps, wp)
	}
	if rtl != nil {
		wps = append(wps, *rtl)
	}

	var drone *config.DroneProfile
	if catalog != nil && doc.Drone.ID != "" {
		drone = catalog.Find(doc.Drone.ID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.waypoints = wps
	p.params = mission.Parameters{
		DefaultAltitudeM:     doc.Parameters.DefaultAltitude,
		DefaultSpeedMPS:      doc.Parameters.DefaultSpeed,
		SafetyReservePercent: doc.Parameters.SafetyReserve,
		WindSpeedMPS:         doc.Parameters.WindSpeed,
	}
	p.drone = drone
	p.recompute()
	return p.resultCopy(), nil
}

// Save writes the exported mission document to the store under key.
func (p *Planner) Save(st store.Store, key string) error {
	data, err := p.Export()
	if err != nil {
		return err
	}
	return st.Put(key, data)
}

// Load replaces the mission with a document read from the store.
func (p *Planner) Load(st store.Store, key string, catalog *config.Catalog) (energy.Result, error) {
	data, err := st.Get(key)
	if err != nil {
		return p.Feasibility(), err
	}
	return p.Import(data, catalog)
}
