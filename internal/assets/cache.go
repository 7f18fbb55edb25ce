package assets

import (
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/JustinTDCT/MediaShelf/internal/classify"
	"github.com/JustinTDCT/MediaShelf/internal/ffmpeg"
)

const thumbnailWidth = 480

// Asset is the derived metadata for one video path. Either field may be
// absent when the external tool failed or is missing; callers render what
// they get.
type Asset struct {
	DurationSec   *int    `json:"duration_sec,omitempty"`
	ThumbnailPath *string `json:"thumbnail_path,omitempty"`
}

// Cache resolves derived assets for video paths. Thumbnails are keyed by the
// md5 of the path and live in cacheDir; a keyed file that already exists is
// served as-is and never regenerated. Entries are never evicted.
type Cache struct {
	probe     *ffmpeg.FFprobe
	extractor *ffmpeg.Extractor
	cacheDir  string

	mu       sync.Mutex
	inFlight map[string]chan struct{} // path → done signal for an active generation
}

func NewCache(ffprobePath, ffmpegPath, cacheDir string) *Cache {
	return &Cache{
		probe:     ffmpeg.NewFFprobe(ffprobePath),
		extractor: ffmpeg.NewExtractor(ffmpegPath),
		cacheDir:  cacheDir,
		inFlight:  make(map[string]chan struct{}),
	}
}

// GetOrCreate resolves the derived asset for path. It never fails: a tool
// error degrades the affected field to absent. The duration probe runs on
// every call; the thumbnail is generated at most once per path, concurrent
// callers for the same path wait on the first one's result.
func (c *Cache) GetOrCreate(path string) Asset {
	var a Asset

	if dur, err := c.probe.Duration(path); err != nil {
		log.Printf("[assets] probe failed for %s: %v", path, err)
	} else {
		sec := int(dur)
		a.DurationSec = &sec
		if thumb := c.thumbnail(path, dur); thumb != "" {
			a.ThumbnailPath = &thumb
		}
		return a
	}

	// Duration unknown: still try the thumbnail with a zero offset so a file
	// ffprobe chokes on can keep a cached image it already has.
	if thumb := c.thumbnail(path, 0); thumb != "" {
		a.ThumbnailPath = &thumb
	}
	return a
}

// thumbnail returns the cached thumbnail path for the video, generating it
// first if needed. Empty string means absent.
func (c *Cache) thumbnail(path string, durationSec float64) string {
	final := filepath.Join(c.cacheDir, classify.AssetKey(path)+".jpg")
	if _, err := os.Stat(final); err == nil {
		return final
	}

	c.mu.Lock()
	if done, ok := c.inFlight[path]; ok {
		c.mu.Unlock()
		<-done
		if _, err := os.Stat(final); err == nil {
			return final
		}
		return ""
	}
	done := make(chan struct{})
	c.inFlight[path] = done
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inFlight, path)
		c.mu.Unlock()
		close(done)
	}()

	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		log.Printf("[assets] cache dir: %v", err)
		return ""
	}

	offset := durationSec * 0.05
	if offset < 1 {
		offset = 1
	}
	offset = math.Floor(offset*100) / 100

	tmp := final + ".tmp"
	if err := c.extractor.ExtractFrame(path, offset, thumbnailWidth, tmp); err != nil {
		os.Remove(tmp)
		return ""
	}
	if err := os.Rename(tmp, final); err != nil {
		log.Printf("[assets] publish thumbnail for %s: %v", path, err)
		os.Remove(tmp)
		return ""
	}
	return final
}
