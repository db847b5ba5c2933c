// Planner owns the mission being edited and orchestrates route smoothing,
// optimization, and feasibility recomputation on every mutation.
package planner

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"missionplan/internal/config"
	"missionplan/internal/energy"
	"missionplan/internal/geo"
	"missionplan/internal/mission"
	"missionplan/internal/route"
)

// Planner is the authoritative owner of the ordered waypoint sequence, the
// anchor roles, and the mission parameters. Every mutation runs a synchronous
// recompute pass (distance, smoothed path, energy estimate, feasibility) and
// returns the fresh verdict. Other components only ever see copies.
//
// The mutex serializes access from the CLI, the admin server, and the
// simulator; each operation still runs to completion within its call.
type Planner struct {
	mu        sync.Mutex
	waypoints []mission.Waypoint
	params    mission.Parameters
	drone     *config.DroneProfile

	// derived, refreshed by recompute
	totalDistanceM float64
	smoothed       []geo.Point
	result         energy.Result
}

// New creates an empty mission with the given parameters.
func New(params mission.Parameters) *Planner {
	p := &Planner{params: params}
	p.recompute()
	return p
}

// NewFromDefaults seeds the mission parameters from catalog defaults.
func NewFromDefaults(d config.PlannerDefaults) *Planner {
	return New(mission.Parameters{
		DefaultAltitudeM:     d.AltitudeM,
		DefaultSpeedMPS:      d.SpeedMPS,
		SafetyReservePercent: d.SafetyReservePct,
		WindSpeedMPS:         d.WindSpeedMPS,
	})
}

// recompute refreshes all derived state. Callers must hold mu.
func (p *Planner) recompute() {
	positions := mission.Positions(p.waypoints)
	p.totalDistanceM = geo.TotalPathLength(positions)
	p.smoothed = route.Smooth(positions)
	est := energy.Compute(p.totalDistanceM, mission.TotalHoverSec(p.waypoints), p.params, p.drone)
	p.result = energy.Evaluate(est, p.waypoints, p.params, p.drone)
}

// AddWaypoint appends an ordinary waypoint with the mission's default
// altitude and speed. If a return-to-launch anchor exists it stays last.
func (p *Planner) AddWaypoint(lat, lon float64) (mission.Waypoint, energy.Result, error) {
	if err := mission.ValidateCoordinate(lat, lon); err != nil {
		return mission.Waypoint{}, p.Feasibility(), err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	wp := mission.Waypoint{
		ID:        uuid.New().String(),
		Position:  geo.Point{Lat: lat, Lon: lon},
		AltitudeM: p.params.DefaultAltitudeM,
		SpeedMPS:  p.params.DefaultSpeedMPS,
		Role:      mission.RoleOrdinary,
	}
	if n := len(p.waypoints); n > 0 && p.waypoints[n-1].Role == mission.RoleReturnToLaunch {
		p.waypoints = append(p.waypoints[:n-1], wp, p.waypoints[n-1])
	} else {
		p.waypoints = append(p.waypoints, wp)
	}
	p.recompute()
	return wp, p.resultCopy(), nil
}

// RemoveWaypoint deletes the waypoint with the given id.
func (p *Planner) RemoveWaypoint(id string) (energy.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, err := p.index(id)
	if err != nil {
		return p.resultCopy(), err
	}
	p.waypoints = append(p.waypoints[:i], p.waypoints[i+1:]...)
	p.recompute()
	return p.resultCopy(), nil
}

// MoveWaypoint updates a waypoint's position (marker drag). The new
// coordinate is validated before anything changes.
func (p *Planner) MoveWaypoint(id string, lat, lon float64) (energy.Result, error) {
	if err := mission.ValidateCoordinate(lat, lon); err != nil {
		return p.Feasibility(), err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	i, err := p.index(id)
	if err != nil {
		return p.resultCopy(), err
	}
	p.waypoints[i].Position = geo.Point{Lat: lat, Lon: lon}
	p.recompute()
	return p.resultCopy(), nil
}

// ReorderWaypoint moves a waypoint to a new sequence index. A
// return-to-launch anchor cannot be displaced from the end.
func (p *Planner) ReorderWaypoint(id string, newIndex int) (energy.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, err := p.index(id)
	if err != nil {
		return p.resultCopy(), err
	}
	if newIndex < 0 || newIndex >= len(p.waypoints) {
		return p.resultCopy(), fmt.Errorf("index %d out of range", newIndex)
	}
	wp := p.waypoints[i]
	p.waypoints = append(p.waypoints[:i], p.waypoints[i+1:]...)
	rest := append([]mission.Waypoint{wp}, p.waypoints[newIndex:]...)
	p.waypoints = append(p.waypoints[:newIndex], rest...)
	p.pinAnchors()
	p.recompute()
	return p.resultCopy(), nil
}

// SetRole assigns a role, demoting any previous holder of a unique anchor
// role to ordinary and keeping return-to-launch pinned to the end.
func (p *Planner) SetRole(id string, role mission.Role) (energy.Result, error) {
	switch role {
	case mission.RoleOrdinary, mission.RoleHome, mission.RoleReturnToLaunch:
	default:
		return p.Feasibility(), fmt.Errorf("unknown role %q", role)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	i, err := p.index(id)
	if err != nil {
		return p.resultCopy(), err
	}
	if role != mission.RoleOrdinary {
		for j := range p.waypoints {
			if j != i && p.waypoints[j].Role == role {
				p.waypoints[j].Role = mission.RoleOrdinary
			}
		}
	}
	p.waypoints[i].Role = role
	p.pinAnchors()
	p.recompute()
	return p.resultCopy(), nil
}

// SetHoverTime sets a waypoint's hover dwell in seconds.
func (p *Planner) SetHoverTime(id string, seconds float64) (energy.Result, error) {
	if seconds < 0 {
		return p.Feasibility(), fmt.Errorf("hover time must be >= 0")
	}
	return p.updateWaypoint(id, func(wp *mission.Waypoint) { wp.HoverSec = seconds })
}

// SetWaypointSpeed sets a waypoint's approach speed in m/s.
func (p *Planner) SetWaypointSpeed(id string, mps float64) (energy.Result, error) {
	return p.updateWaypoint(id, func(wp *mission.Waypoint) { wp.SpeedMPS = mps })
}

// SetWaypointAltitude sets a waypoint's altitude in meters.
func (p *Planner) SetWaypointAltitude(id string, m float64) (energy.Result, error) {
	return p.updateWaypoint(id, func(wp *mission.Waypoint) { wp.AltitudeM = m })
}

func (p *Planner) updateWaypoint(id string, fn func(*mission.Waypoint)) (energy.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, err := p.index(id)
	if err != nil {
		return p.resultCopy(), err
	}
	fn(&p.waypoints[i])
	p.recompute()
	return p.resultCopy(), nil
}

// SetDefaultAltitude updates the mission default altitude.
func (p *Planner) SetDefaultAltitude(m float64) energy.Result {
	return p.updateParams(func(pr *mission.Parameters) { pr.DefaultAltitudeM = m })
}

// SetDefaultSpeed updates the mission default speed. 0 falls back to the
// drone's cruise speed.
func (p *Planner) SetDefaultSpeed(mps float64) energy.Result {
	return p.updateParams(func(pr *mission.Parameters) { pr.DefaultSpeedMPS = mps })
}

// SetSafetyReserve updates the battery safety reserve percentage.
func (p *Planner) SetSafetyReserve(percent float64) energy.Result {
	return p.updateParams(func(pr *mission.Parameters) { pr.SafetyReservePercent = percent })
}

// SetWindSpeed updates the scalar wind speed in m/s.
func (p *Planner) SetWindSpeed(mps float64) energy.Result {
	return p.updateParams(func(pr *mission.Parameters) { pr.WindSpeedMPS = mps })
}

func (p *Planner) updateParams(fn func(*mission.Parameters)) energy.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.params)
	p.recompute()
	return p.resultCopy()
}

// SelectDrone sets the drone the mission is planned for. nil clears the
// selection and degrades feasibility to indeterminate.
func (p *Planner) SelectDrone(profile *config.DroneProfile) energy.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drone = profile
	p.recompute()
	return p.resultCopy()
}

// Optimize reorders the ordinary waypoints with the nearest-neighbor
// heuristic. With fewer than 2 reorderable waypoints the sequence is left
// unchanged and mission.ErrInsufficientWaypoints is returned.
func (p *Planner) Optimize() (energy.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	optimized, err := route.Optimize(p.waypoints)
	if err != nil {
		return p.resultCopy(), err
	}
	p.waypoints = optimized
	p.recompute()
	return p.resultCopy(), nil
}

// pinAnchors restores the rtl-last invariant after reordering or role
// changes. Callers must hold mu.
func (p *Planner) pinAnchors() {
	for i := range p.waypoints {
		if p.waypoints[i].Role == mission.RoleReturnToLaunch && i != len(p.waypoints)-1 {
			wp := p.waypoints[i]
			p.waypoints = append(p.waypoints[:i], p.waypoints[i+1:]...)
			p.waypoints = append(p.waypoints, wp)
			return
		}
	}
}

func (p *Planner) index(id string) (int, error) {
	for i := range p.waypoints {
		if p.waypoints[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", mission.ErrUnknownWaypoint, id)
}

// Waypoints returns a copy of the ordered waypoint sequence.
func (p *Planner) Waypoints() []mission.Waypoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]mission.Waypoint, len(p.waypoints))
	copy(out, p.waypoints)
	return out
}

// Parameters returns the current mission parameters.
func (p *Planner) Parameters() mission.Parameters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.params
}

// Drone returns the selected drone profile, or nil.
func (p *Planner) Drone() *config.DroneProfile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.drone
}

// SmoothedPath returns a copy of the display path through the waypoints.
func (p *Planner) SmoothedPath() []geo.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]geo.Point, len(p.smoothed))
	copy(out, p.smoothed)
	return out
}

// TotalDistanceM returns the straight waypoint-to-waypoint route length.
func (p *Planner) TotalDistanceM() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalDistanceM
}

// Feasibility returns the current verdict.
func (p *Planner) Feasibility() energy.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resultCopy()
}

// resultCopy deep-copies the verdict so callers cannot alias the warning
// slice. Callers must hold mu.
func (p *Planner) resultCopy() energy.Result {
	res := p.result
	res.Warnings = make([]energy.Warning, len(p.result.Warnings))
	copy(res.Warnings, p.result.Warnings)
	return res
}
