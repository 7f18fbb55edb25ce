package api

import (
	"net/http"

	"github.com/JustinTDCT/MediaShelf/internal/httputil"
	"github.com/JustinTDCT/MediaShelf/internal/scan"
)

// POST /api/scan
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Root      string `json:"root"`
		Recursive bool   `json:"recursive"`
		MaxDepth  int    `json:"max_depth"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if req.Root == "" {
		httputil.WriteError(w, http.StatusBadRequest, "MISSING_ROOT", "root is required")
		return
	}

	snap := scan.Scan(req.Root, scan.Options{Recursive: req.Recursive, MaxDepth: req.MaxDepth})
	s.settings.SetLastFolder(req.Root)
	s.wsHub.Broadcast("scan:done", map[string]interface{}{
		"root":  req.Root,
		"count": len(snap.Videos),
	})
	httputil.WriteJSON(w, http.StatusOK, snap)
}

// GET /api/folders?root=
func (s *Server) handleFolders(w http.ResponseWriter, r *http.Request) {
	root := r.URL.Query().Get("root")
	if root == "" {
		httputil.WriteError(w, http.StatusBadRequest, "MISSING_ROOT", "root is required")
		return
	}
	folders := scan.ListFolders(root)
	if folders == nil {
		folders = []scan.FolderEntry{}
	}
	httputil.WriteJSON(w, http.StatusOK, folders)
}
