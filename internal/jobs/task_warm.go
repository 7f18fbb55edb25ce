package jobs

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"

	"github.com/JustinTDCT/MediaShelf/internal/assets"
	"github.com/JustinTDCT/MediaShelf/internal/scan"
)

type WarmPayload struct {
	Root string `json:"root"`
}

// EventNotifier delivers progress to connected UI clients.
type EventNotifier interface {
	Broadcast(event string, data interface{})
}

// WarmHandler pre-generates derived assets for every video directly under a
// folder, so the grid has thumbnails before the user scrolls to them.
type WarmHandler struct {
	cache    *assets.Cache
	notifier EventNotifier
}

func NewWarmHandler(cache *assets.Cache, notifier EventNotifier) *WarmHandler {
	return &WarmHandler{cache: cache, notifier: notifier}
}

func (h *WarmHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p WarmPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}

	snap := scan.Scan(p.Root, scan.Options{Recursive: false})
	log.Printf("Job: warming assets for %s (%d videos)", p.Root, len(snap.Videos))

	for i, v := range snap.Videos {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		h.cache.GetOrCreate(v.Path)
		h.notifier.Broadcast("warm:progress", map[string]interface{}{
			"root":  p.Root,
			"done":  i + 1,
			"total": len(snap.Videos),
		})
	}

	h.notifier.Broadcast("warm:done", map[string]interface{}{
		"root":  p.Root,
		"total": len(snap.Videos),
	})
	return nil
}

// RegisterHandlers wires every task handler onto the queue mux.
func RegisterHandlers(q *Queue, cache *assets.Cache, notifier EventNotifier) {
	q.RegisterHandler(TaskWarmAssets, NewWarmHandler(cache, notifier))
}
