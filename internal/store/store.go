package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// Slot names. The store is a fixed set of named slots, each holding one JSON
// document; there is no schema migration beyond defaulting a missing slot.
const (
	SlotSettings       = "settings"
	SlotLastFolder     = "lastFolder"
	SlotCategories     = "categories"
	SlotWatchStats     = "watchStats"
	SlotWatchDaily     = "watchDaily"
	SlotFolderCovers   = "folderCovers"
	SlotCategoryCovers = "categoryCovers"
	SlotUIPrefs        = "uiPrefs"
)

// Backend persists raw slot documents.
type Backend interface {
	Load(slot string) (json.RawMessage, error)
	Save(slot string, value json.RawMessage) error
	Name() string
	Close() error
}

// Store is a durable slot map with read-your-writes semantics inside one
// process: every write lands in the in-memory cache before the backend is
// asked to persist it, so a following Get observes it even if the disk write
// failed. Whole-slot writes are last-write-wins; the mutex serializes them
// within this process only.
type Store struct {
	mu      sync.Mutex
	backend Backend
	cache   map[string]json.RawMessage
}

// Open connects the primary Postgres backend when databaseURL is set and
// reachable, and otherwise falls back to a JSON document file under dataDir.
// The store itself never fails to open.
func Open(databaseURL, dataDir string) *Store {
	var backend Backend
	if databaseURL != "" {
		pg, err := openPostgres(databaseURL)
		if err != nil {
			log.Printf("[store] postgres unavailable, falling back to file store: %v", err)
		} else {
			backend = pg
		}
	}
	if backend == nil {
		backend = openFile(dataDir)
	}
	log.Printf("[store] using %s backend", backend.Name())
	return &Store{
		backend: backend,
		cache:   make(map[string]json.RawMessage),
	}
}

// NewWithBackend wires an explicit backend; used by tests and by callers that
// already decided where data lives.
func NewWithBackend(b Backend) *Store {
	return &Store{backend: b, cache: make(map[string]json.RawMessage)}
}

// Get unmarshals the slot into dst. A missing or corrupt slot leaves dst at
// its zero/default value and reports false; it never returns an error.
func (s *Store) Get(slot string, dst interface{}) bool {
	s.mu.Lock()
	raw, ok := s.cache[slot]
	if !ok {
		loaded, err := s.backend.Load(slot)
		if err != nil {
			log.Printf("[store] load %s: %v", slot, err)
			s.mu.Unlock()
			return false
		}
		if loaded == nil {
			s.mu.Unlock()
			return false
		}
		s.cache[slot] = loaded
		raw = loaded
	}
	s.mu.Unlock()

	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("[store] corrupt slot %s: %v", slot, err)
		return false
	}
	return true
}

// Set replaces the slot's document. The cache is updated unconditionally so
// reads within this process see the write; a backend failure is reported to
// the caller and otherwise swallowed.
func (s *Store) Set(slot string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal slot %s: %w", slot, err)
	}

	s.mu.Lock()
	s.cache[slot] = raw
	err = s.backend.Save(slot, raw)
	s.mu.Unlock()

	if err != nil {
		log.Printf("[store] save %s: %v", slot, err)
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}
