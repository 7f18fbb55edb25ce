package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JustinTDCT/MediaShelf/internal/categories"
	"github.com/JustinTDCT/MediaShelf/internal/httputil"
)

// GET /api/categories
func (s *Server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, s.categories.List())
}

// POST /api/categories
func (s *Server) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	cat, err := s.categories.Create(req.Name)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_NAME", err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, cat)
}

// PUT /api/categories/{id}
func (s *Server) handleCategoryRename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if !s.categories.Rename(chi.URLParam(r, "id"), req.Name) {
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no such category")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "renamed"})
}

// DELETE /api/categories/{id}
func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	if !s.categories.Delete(chi.URLParam(r, "id")) {
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no such category")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// POST /api/categories/{id}/items
func (s *Server) handleCategoryAddItems(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []categories.Item `json:"items"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	id := chi.URLParam(r, "id")
	if !s.categories.AddItems(id, req.Items) {
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no such category")
		return
	}
	cat, _ := s.categories.Get(id)
	httputil.WriteJSON(w, http.StatusOK, cat)
}

// DELETE /api/categories/{id}/items
func (s *Server) handleCategoryRemoveItem(w http.ResponseWriter, r *http.Request) {
	var req categories.Item
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	id := chi.URLParam(r, "id")
	if !s.categories.RemoveItem(id, req) {
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no such category")
		return
	}
	cat, _ := s.categories.Get(id)
	httputil.WriteJSON(w, http.StatusOK, cat)
}
