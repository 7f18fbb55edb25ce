package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/JustinTDCT/MediaShelf/internal/api"
	"github.com/JustinTDCT/MediaShelf/internal/config"
	"github.com/JustinTDCT/MediaShelf/internal/jobs"
	"github.com/JustinTDCT/MediaShelf/internal/settings"
	"github.com/JustinTDCT/MediaShelf/internal/store"
	"github.com/JustinTDCT/MediaShelf/internal/version"
)

func main() {
	ver := version.Load()
	log.Printf("MediaShelf %s starting...", ver.Version)

	cfg := config.Load()

	st := store.Open(cfg.DatabaseURL, cfg.DataDir)
	defer st.Close()

	cfg.MergeFromStore(settings.NewService(st))

	srv := api.NewServer(cfg, st)

	if cfg.RedisAddr != "" {
		queue := jobs.NewQueue(cfg.RedisAddr)
		jobs.RegisterHandlers(queue, srv.Cache(), srv.Hub())
		if err := queue.Start(); err != nil {
			log.Printf("job queue unavailable, background warming disabled: %v", err)
		} else {
			srv.SetQueue(queue)
			defer queue.Stop()
		}
	}

	httpServer := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)
}
