package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JustinTDCT/MediaShelf/internal/assets"
	"github.com/JustinTDCT/MediaShelf/internal/categories"
	"github.com/JustinTDCT/MediaShelf/internal/config"
	"github.com/JustinTDCT/MediaShelf/internal/jobs"
	"github.com/JustinTDCT/MediaShelf/internal/settings"
	"github.com/JustinTDCT/MediaShelf/internal/store"
	"github.com/JustinTDCT/MediaShelf/internal/watch"
)

type Server struct {
	config     *config.Config
	store      *store.Store
	settings   *settings.Service
	categories *categories.Service
	tracker    *watch.Tracker
	cache      *assets.Cache
	queue      *jobs.Queue
	wsHub      *WSHub
	router     chi.Router
}

func NewServer(cfg *config.Config, st *store.Store) *Server {
	s := &Server{
		config:     cfg,
		store:      st,
		settings:   settings.NewService(st),
		categories: categories.NewService(st),
		tracker:    watch.NewTracker(st),
		cache:      assets.NewCache(cfg.FFprobePath, cfg.FFmpegPath, cfg.CacheDir),
		wsHub:      NewWSHub(),
	}
	s.routes()
	return s
}

// SetQueue attaches the optional background queue; nil leaves warming off.
func (s *Server) SetQueue(q *jobs.Queue) { s.queue = q }

// Hub exposes the event hub so job handlers can broadcast progress.
func (s *Server) Hub() *WSHub { return s.wsHub }

// Cache exposes the derived-asset cache for job handler wiring.
func (s *Server) Cache() *assets.Cache { return s.cache }

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/scan", s.handleScan)
		r.Get("/folders", s.handleFolders)

		r.Get("/asset", s.handleAsset)
		r.Post("/assets/warm", s.handleWarmAssets)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleCategoryList)
			r.Post("/", s.handleCategoryCreate)
			r.Put("/{id}", s.handleCategoryRename)
			r.Delete("/{id}", s.handleCategoryDelete)
			r.Post("/{id}/items", s.handleCategoryAddItems)
			r.Delete("/{id}/items", s.handleCategoryRemoveItem)
		})

		r.Route("/watch", func(r chi.Router) {
			r.Post("/mark", s.handleMarkWatched)
			r.Post("/time", s.handleAddWatchTime)
			r.Post("/position", s.handleSetPosition)
			r.Get("/stats", s.handleWatchStats)
			r.Get("/daily", s.handleDailyTotals)
		})

		r.Post("/insights", s.handleInsights)

		r.Get("/settings", s.handleSettingsGet)
		r.Put("/settings", s.handleSettingsPut)
		r.Get("/covers", s.handleCoversGet)
		r.Put("/covers/folder", s.handleFolderCoverPut)
		r.Put("/covers/category", s.handleCategoryCoverPut)
		r.Get("/uiprefs", s.handleUIPrefsGet)
		r.Put("/uiprefs", s.handleUIPrefsPut)

		r.Get("/events", s.handleWebSocket)
	})
	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
