package api

import (
	"net/http"

	"github.com/JustinTDCT/MediaShelf/internal/classify"
	"github.com/JustinTDCT/MediaShelf/internal/httputil"
	"github.com/JustinTDCT/MediaShelf/internal/jobs"
)

// GET /api/asset?path=
func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		httputil.WriteError(w, http.StatusBadRequest, "MISSING_PATH", "path is required")
		return
	}

	asset := s.cache.GetOrCreate(path)
	if asset.DurationSec == nil && asset.ThumbnailPath == nil {
		// Both tools came up empty: most likely the binaries are missing.
		s.wsHub.Broadcast("toast", map[string]string{
			"level":   "warning",
			"message": "could not read video metadata; check the ffmpeg/ffprobe paths in settings",
		})
	}
	httputil.WriteJSON(w, http.StatusOK, asset)
}

// POST /api/assets/warm
func (s *Server) handleWarmAssets(w http.ResponseWriter, r *http.Request) {
	if s.queue == nil {
		httputil.WriteError(w, http.StatusServiceUnavailable, "QUEUE_UNAVAILABLE", "background warming requires Redis")
		return
	}

	var req struct {
		Root string `json:"root"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil || req.Root == "" {
		httputil.WriteError(w, http.StatusBadRequest, "MISSING_ROOT", "root is required")
		return
	}

	id, err := s.queue.EnqueueUnique(jobs.TaskWarmAssets, jobs.WarmPayload{Root: req.Root},
		"warm:"+classify.AssetKey(req.Root))
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "ENQUEUE_FAILED", "could not start warm job")
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"task_id": id})
}
