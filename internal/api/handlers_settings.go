package api

import (
	"encoding/json"
	"net/http"

	"github.com/JustinTDCT/MediaShelf/internal/httputil"
)

// GET /api/settings
func (s *Server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"settings":    s.settings.Load(),
		"last_folder": s.settings.LastFolder(),
	})
}

// PUT /api/settings
func (s *Server) handleSettingsPut(w http.ResponseWriter, r *http.Request) {
	var req map[string]interface{}
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	applied, err := s.settings.Apply(req)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_SETTING", err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, applied)
}

// GET /api/covers
func (s *Server) handleCoversGet(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"folders":    s.settings.FolderCovers(),
		"categories": s.settings.CategoryCovers(),
	})
}

// PUT /api/covers/folder
func (s *Server) handleFolderCoverPut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path  string `json:"path"`
		Image string `json:"image"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil || req.Path == "" {
		httputil.WriteError(w, http.StatusBadRequest, "MISSING_PATH", "path is required")
		return
	}
	if err := s.settings.SetFolderCover(req.Path, req.Image); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to save cover")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// PUT /api/covers/category
func (s *Server) handleCategoryCoverPut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID    string `json:"id"`
		Image string `json:"image"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil || req.ID == "" {
		httputil.WriteError(w, http.StatusBadRequest, "MISSING_ID", "id is required")
		return
	}
	if err := s.settings.SetCategoryCover(req.ID, req.Image); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to save cover")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// GET /api/uiprefs
func (s *Server) handleUIPrefsGet(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, s.settings.UIPrefs())
}

// PUT /api/uiprefs
func (s *Server) handleUIPrefsPut(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := httputil.ReadJSON(w, r, &raw); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if err := s.settings.SetUIPrefs(raw); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to save preferences")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
