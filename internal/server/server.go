package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/export"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/sim"
)

// Server is a read-only JSON viewer over one completed simulation run,
// for inspecting results without re-opening the exported CSV tables.
type Server struct {
	run     export.Run
	summary sim.Summary
	port    int
}

// New creates a viewer for the given finished run.
func New(run export.Run, summary sim.Summary, port int) *Server {
	return &Server{run: run, summary: summary, port: port}
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/timeseries", s.handleTimeSeries)
	mux.HandleFunc("GET /api/config", s.handleConfig)
	mux.HandleFunc("GET /api/utilization", s.handleUtilization)
	mux.HandleFunc("GET /", s.handleIndex)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Corridor viewer starting on http://localhost%s", addr)
	log.Printf("Run: %s (%s)", s.run.ID, s.run.Description)

	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html><head><title>Corridor Simulation</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Corridor Simulation</h1>
<p>%s</p>
<p><code>/api/summary</code> | <code>/api/timeseries</code> | <code>/api/config</code> | <code>/api/utilization</code></p>
</div>
</body></html>`, s.run.Description)
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"run":        s.run.ID,
		"summary":    s.summary,
		"statistics": s.run.Statistics,
	})
}

func (s *Server) handleTimeSeries(w http.ResponseWriter, _ *http.Request) {
	ts := s.run.Series
	writeJSON(w, map[string]any{
		"timestamps":              ts.TimesS,
		"active_vehicles":         ts.ActiveVehicles,
		"mean_speeds_kmh":         ts.MeanSpeedsKmh,
		"congestion_lengths_km":   ts.CongestionLengthsKm,
		"priority_lane_occupancy": ts.PriorityLaneOccupancy,
		"queue_depths":            ts.QueueDepths,
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.run)
}

func (s *Server) handleUtilization(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.run.Utilization)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
