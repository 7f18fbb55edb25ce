package scan

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/JustinTDCT/MediaShelf/internal/classify"
)

// statWorkers bounds the concurrent per-entry stat calls during a walk.
const statWorkers = 8

// VideoFile is one discovered video. Duration and thumbnail are filled in
// later by the asset cache, never by the scanner.
type VideoFile struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	Ext     string    `json:"ext"`
}

// FolderEntry is one subdirectory under a listed root.
type FolderEntry struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	ModTime time.Time `json:"mod_time"`
}

type Options struct {
	Recursive bool `json:"recursive"`
	MaxDepth  int  `json:"max_depth"`
}

type Snapshot struct {
	Videos []VideoFile `json:"videos"`
}

// Scan walks root and returns the eligible videos, most recently modified
// first. Per-entry failures (permissions, broken symlinks, stat errors) are
// skipped silently; an unreadable root yields an empty snapshot rather than an
// error, so the caller cannot distinguish it from an empty directory.
func Scan(root string, opts Options) Snapshot {
	names := collect(root, 0, opts)

	videos := make([]VideoFile, 0, len(names))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, statWorkers)

	for _, path := range names {
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				return
			}
			v := VideoFile{
				Path:    path,
				Name:    info.Name(),
				Size:    info.Size(),
				ModTime: info.ModTime(),
				Ext:     classify.Ext(path),
			}
			mu.Lock()
			videos = append(videos, v)
			mu.Unlock()
		}(path)
	}
	wg.Wait()

	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].ModTime.After(videos[j].ModTime)
	})
	return Snapshot{Videos: videos}
}

// collect gathers candidate paths depth-first. Directories are descended only
// while recursive is set and depth < MaxDepth; with recursive off only direct
// children are read no matter what MaxDepth says.
func collect(dir string, depth int, opts Options) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if depth == 0 {
			log.Printf("[scan] unreadable root %s: %v", dir, err)
		}
		return nil
	}

	var out []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if opts.Recursive && depth+1 < opts.MaxDepth {
				out = append(out, collect(path, depth+1, opts)...)
			} else if opts.Recursive && opts.MaxDepth <= 0 {
				// No depth bound given: recurse freely.
				out = append(out, collect(path, depth+1, opts)...)
			}
			continue
		}
		if classify.IsVideoFile(e.Name()) {
			out = append(out, path)
		}
	}
	return out
}

// ListFolders returns the direct subdirectories of root, most recently
// modified first. Same degradation rules as Scan.
func ListFolders(root string) []FolderEntry {
	entries, err := os.ReadDir(root)
	if err != nil {
		log.Printf("[scan] unreadable root %s: %v", root, err)
		return nil
	}

	var out []FolderEntry
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, FolderEntry{
			Path:    filepath.Join(root, e.Name()),
			Name:    e.Name(),
			ModTime: info.ModTime(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ModTime.After(out[j].ModTime)
	})
	return out
}
