// Planner admin UI: a small HTTP surface over the mission being edited.
package admin

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"missionplan/internal/planner"
	"missionplan/internal/sim"
)

// Server exposes the planner state (and, when present, the running
// simulation) over HTTP. It renders data the engine computed; it never
// computes feasibility itself.
type Server struct {
	Planner *planner.Planner
	Sim     *sim.Simulator
	tpl     *template.Template
}

//go:embed templates/index.html
var content embed.FS

// NewServer creates a server for the given planner. sim may be nil.
func NewServer(pl *planner.Planner, simulator *sim.Simulator) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	return &Server{Planner: pl, Sim: simulator, tpl: tpl}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/mission", s.handleMission)
	mux.HandleFunc("/feasibility", s.handleFeasibility)
	mux.HandleFunc("/path", s.handlePath)
	mux.HandleFunc("/telemetry", s.handleTelemetry)
	mux.HandleFunc("/optimize", s.handleOptimize)
	mux.HandleFunc("/add-waypoint", s.handleAddWaypoint)
	return mux
}

// Start serves until the context is canceled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.routes()}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	verdict := s.Planner.Feasibility()
	data := struct {
		Waypoints any
		Verdict   any
		Distance  float64
	}{
		Waypoints: s.Planner.Waypoints(),
		Verdict:   verdict,
		Distance:  verdict.TotalDistanceM,
	}
	_ = s.tpl.Execute(w, data)
}

func (s *Server) handleMission(w http.ResponseWriter, r *http.Request) {
	data, err := s.Planner.Export()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleFeasibility(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Planner.Feasibility())
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Planner.SmoothedPath())
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.Sim == nil {
		_ = json.NewEncoder(w).Encode(nil)
		return
	}
	row, ok := s.Sim.Snapshot()
	if !ok {
		_ = json.NewEncoder(w).Encode(nil)
		return
	}
	_ = json.NewEncoder(w).Encode(row)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	verdict, err := s.Planner.Optimize()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(verdict)
}

func (s *Server) handleAddWaypoint(w http.ResponseWriter, r *http.Request) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, err2 := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err1 != nil || err2 != nil {
		http.Error(w, "lat and lon query parameters required", http.StatusBadRequest)
		return
	}
	_, verdict, err := s.Planner.AddWaypoint(lat, lon)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(verdict)
}
