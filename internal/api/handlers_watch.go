package api

import (
	"net/http"
	"strconv"

	"github.com/JustinTDCT/MediaShelf/internal/httputil"
	"github.com/JustinTDCT/MediaShelf/internal/watch"
)

// POST /api/watch/mark
func (s *Server) handleMarkWatched(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil || req.Path == "" {
		httputil.WriteError(w, http.StatusBadRequest, "MISSING_PATH", "path is required")
		return
	}
	s.tracker.MarkWatched(req.Path)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "marked"})
}

// POST /api/watch/time
func (s *Server) handleAddWatchTime(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path    string  `json:"path"`
		Seconds float64 `json:"seconds"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil || req.Path == "" {
		httputil.WriteError(w, http.StatusBadRequest, "MISSING_PATH", "path is required")
		return
	}
	if !s.tracker.AddWatchTime(req.Path, req.Seconds) {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_SECONDS", "seconds must be a positive finite number")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// POST /api/watch/position
func (s *Server) handleSetPosition(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path    string  `json:"path"`
		Seconds float64 `json:"seconds"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil || req.Path == "" {
		httputil.WriteError(w, http.StatusBadRequest, "MISSING_PATH", "path is required")
		return
	}
	if !s.tracker.SetLastPosition(req.Path, req.Seconds) {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_SECONDS", "seconds must be a non-negative finite number")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "stored"})
}

// GET /api/watch/stats?path=
func (s *Server) handleWatchStats(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		httputil.WriteError(w, http.StatusBadRequest, "MISSING_PATH", "path is required")
		return
	}
	stats, ok := s.tracker.Stats(path)
	if !ok {
		// Never-watched files read as an empty record, not an error.
		stats = watch.Stats{Path: path}
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

// GET /api/watch/daily?days=
func (s *Server) handleDailyTotals(w http.ResponseWriter, r *http.Request) {
	days := 30
	if d := r.URL.Query().Get("days"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v > 0 {
			days = v
		}
	}
	httputil.WriteJSON(w, http.StatusOK, s.tracker.DailyTotals(days))
}
