package api

import (
	"net/http"
	"time"

	"github.com/JustinTDCT/MediaShelf/internal/httputil"
	"github.com/JustinTDCT/MediaShelf/internal/insights"
)

// POST /api/insights
//
// The UI supplies the durations it already holds for the files on screen;
// paths it says nothing about simply cannot classify as completed. This keeps
// the aggregation free of per-file probing.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Days      int            `json:"days"`
		Durations map[string]int `json:"durations"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	workingSet := s.tracker.WorkingSet(insights.WorkingSetLimit)
	entries := make([]insights.Entry, 0, len(workingSet))
	for _, ws := range workingSet {
		e := insights.Entry{
			Path:            ws.Path,
			TotalMinutes:    ws.TotalMinutes,
			Last14Minutes:   ws.Last14Minutes,
			LastPositionSec: ws.LastPositionSec,
		}
		if dur, ok := req.Durations[ws.Path]; ok {
			e.DurationSec = &dur
		}
		entries = append(entries, e)
	}

	report := insights.Build(entries, s.categories.List(), s.tracker.DailyBuckets(), req.Days, time.Now())
	httputil.WriteJSON(w, http.StatusOK, report)
}
