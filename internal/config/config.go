package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/JustinTDCT/MediaShelf/internal/settings"
)

type Config struct {
	Port        int
	DatabaseURL string
	RedisAddr   string
	DataDir     string
	CacheDir    string
	FFmpegPath  string
	FFprobePath string
}

func Load() *Config {
	dataDir := env("DATA_DIR", "/data")
	return &Config{
		Port:        envInt("PORT", 8080),
		DatabaseURL: env("DATABASE_URL", ""),
		RedisAddr:   env("REDIS_ADDR", ""),
		DataDir:     dataDir,
		CacheDir:    env("CACHE_DIR", filepath.Join(dataDir, "thumbnails")),
		FFmpegPath:  env("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: env("FFPROBE_PATH", "ffprobe"),
	}
}

// MergeFromStore applies persisted tool-path overrides on top of the
// environment defaults, the last word in precedence.
func (c *Config) MergeFromStore(svc *settings.Service) {
	s := svc.Load()
	if s.FFmpegPath != "" {
		c.FFmpegPath = s.FFmpegPath
	}
	if s.FFprobePath != "" {
		c.FFprobePath = s.FFprobePath
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
