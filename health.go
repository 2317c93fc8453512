package tracemap

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status        string `json:"status"`
	Traces        int    `json:"traces"`
	Segments      int    `json:"segments"`
	Events        int    `json:"events"`
	Sessions      int    `json:"sessions"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	// Bounds is [minLon, minLat, maxLon, maxLat]; absent for an empty dataset.
	Bounds []float64 `json:"bounds,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		Traces:        len(s.data.Traces),
		Segments:      len(s.data.Segments),
		Events:        len(s.data.Events),
		Sessions:      s.sessions.Count(),
		UptimeSeconds: int64(time.Since(s.started) / time.Second),
	}
	if b, ok := s.data.Bounds(); ok {
		resp.Bounds = []float64{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()}
	}
	writeJSON(w, http.StatusOK, resp)
}
