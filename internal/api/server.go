// Package api provides a read-only HTTP API for observing a running
// simulation: run status, aggregate metrics, and household snapshots.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/talgya/flood-adapt/internal/engine"
)

// Server serves the simulation state over HTTP. All endpoints are GET,
// read-only; the simulation is never mutated through the API.
type Server struct {
	Sim  *engine.Simulation
	Port int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/stats", s.handleStats)
	mux.HandleFunc("/api/v1/agents", s.handleAgents)

	addr := ":" + strconv.Itoa(s.Port)
	go func() {
		slog.Info("observation API listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("api server stopped", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"step":          s.Sim.CurrentStep(),
		"steps":         s.Sim.Config.Steps,
		"flood_step":    s.Sim.Config.FloodStep,
		"flood_map":     s.Sim.Config.FloodMap,
		"population":    len(s.Sim.Agents),
		"total_adapted": s.Sim.TotalAdapted(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	meanPerception := 0.0
	meanSavings := 0.0
	if n := len(s.Sim.Agents); n > 0 {
		for _, a := range s.Sim.Agents {
			meanPerception += a.RiskPerception
			meanSavings += a.Savings
		}
		meanPerception /= float64(n)
		meanSavings /= float64(n)
	}

	writeJSON(w, map[string]any{
		"total_adapted":        s.Sim.TotalAdapted(),
		"government_spending":  s.Sim.Government.Spending(),
		"mean_risk_perception": meanPerception,
		"mean_savings":         meanSavings,
	})
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	latest := s.Sim.Collector.Latest()
	if latest == nil {
		writeJSON(w, []any{})
		return
	}
	writeJSON(w, latest.Agents)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("encode: %v", err), http.StatusInternalServerError)
	}
}
