package settings

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"

	"github.com/JustinTDCT/MediaShelf/internal/store"
)

// Value keys accepted by Apply.
const (
	KeyHoverPreviews = "enable_hover_previews"
	KeyFFmpegPath    = "ffmpeg_path"
	KeyFFprobePath   = "ffprobe_path"
)

// AppSettings is the singleton settings document. Tool paths are overrides;
// empty means "use the configured default".
type AppSettings struct {
	EnableHoverPreviews bool   `json:"enable_hover_previews"`
	FFmpegPath          string `json:"ffmpeg_path,omitempty"`
	FFprobePath         string `json:"ffprobe_path,omitempty"`
}

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Load returns the persisted settings, or the zero document when none exist.
func (s *Service) Load() AppSettings {
	var out AppSettings
	s.store.Get(store.SlotSettings, &out)
	return out
}

// Apply coerces and merges the given values into the settings document.
// Unknown keys are rejected before anything is written.
func (s *Service) Apply(values map[string]interface{}) (AppSettings, error) {
	cur := s.Load()
	for key, v := range values {
		switch key {
		case KeyHoverPreviews:
			b, err := cast.ToBoolE(v)
			if err != nil {
				return cur, fmt.Errorf("setting %s: %w", key, err)
			}
			cur.EnableHoverPreviews = b
		case KeyFFmpegPath:
			cur.FFmpegPath = cast.ToString(v)
		case KeyFFprobePath:
			cur.FFprobePath = cast.ToString(v)
		default:
			return cur, fmt.Errorf("unknown setting %q", key)
		}
	}
	if err := s.store.Set(store.SlotSettings, cur); err != nil {
		return cur, err
	}
	return cur, nil
}

// LastFolder returns the most recently scanned root, empty when none.
func (s *Service) LastFolder() string {
	var folder string
	s.store.Get(store.SlotLastFolder, &folder)
	return folder
}

func (s *Service) SetLastFolder(path string) {
	if path == "" {
		return
	}
	_ = s.store.Set(store.SlotLastFolder, path)
}

// Cover images are plain path→reference maps, one slot per kind.

func (s *Service) SetFolderCover(folder, imageRef string) error {
	covers := map[string]string{}
	s.store.Get(store.SlotFolderCovers, &covers)
	covers[folder] = imageRef
	return s.store.Set(store.SlotFolderCovers, covers)
}

func (s *Service) FolderCovers() map[string]string {
	covers := map[string]string{}
	s.store.Get(store.SlotFolderCovers, &covers)
	return covers
}

func (s *Service) SetCategoryCover(categoryID, imageRef string) error {
	covers := map[string]string{}
	s.store.Get(store.SlotCategoryCovers, &covers)
	covers[categoryID] = imageRef
	return s.store.Set(store.SlotCategoryCovers, covers)
}

func (s *Service) CategoryCovers() map[string]string {
	covers := map[string]string{}
	s.store.Get(store.SlotCategoryCovers, &covers)
	return covers
}

// UIPrefs is an opaque document owned by the UI shell; the server only
// round-trips it.
func (s *Service) UIPrefs() json.RawMessage {
	var raw json.RawMessage
	if !s.store.Get(store.SlotUIPrefs, &raw) {
		return json.RawMessage("{}")
	}
	return raw
}

func (s *Service) SetUIPrefs(raw json.RawMessage) error {
	return s.store.Set(store.SlotUIPrefs, raw)
}
