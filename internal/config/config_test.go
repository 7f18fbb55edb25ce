package config

import (
	"testing"

	"github.com/JustinTDCT/MediaShelf/internal/settings"
	"github.com/JustinTDCT/MediaShelf/internal/store"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/shelf")
	t.Setenv("PORT", "")
	t.Setenv("FFMPEG_PATH", "")
	t.Setenv("CACHE_DIR", "")

	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.CacheDir != "/srv/shelf/thumbnails" {
		t.Errorf("cache dir = %q", cfg.CacheDir)
	}
	if cfg.FFmpegPath != "ffmpeg" || cfg.FFprobePath != "ffprobe" {
		t.Errorf("tool paths = %q, %q", cfg.FFmpegPath, cfg.FFprobePath)
	}
}

func TestMergeFromStore(t *testing.T) {
	svc := settings.NewService(store.Open("", t.TempDir()))
	if _, err := svc.Apply(map[string]interface{}{
		settings.KeyFFprobePath: "/opt/bin/ffprobe",
	}); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{FFmpegPath: "ffmpeg", FFprobePath: "ffprobe"}
	cfg.MergeFromStore(svc)
	if cfg.FFprobePath != "/opt/bin/ffprobe" {
		t.Errorf("override not applied: %q", cfg.FFprobePath)
	}
	if cfg.FFmpegPath != "ffmpeg" {
		t.Errorf("unset override clobbered default: %q", cfg.FFmpegPath)
	}
}
