package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// fileBackend keeps every slot in one JSON document on disk, published
// atomically via a temp file and rename so a crash mid-write cannot corrupt
// the previous document.
type fileBackend struct {
	path string
	doc  map[string]json.RawMessage
}

func openFile(dataDir string) *fileBackend {
	b := &fileBackend{
		path: filepath.Join(dataDir, "store.json"),
		doc:  make(map[string]json.RawMessage),
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[store] read %s: %v", b.path, err)
		}
		return b
	}
	if err := json.Unmarshal(data, &b.doc); err != nil {
		log.Printf("[store] corrupt %s, starting empty: %v", b.path, err)
		b.doc = make(map[string]json.RawMessage)
	}
	return b
}

func (b *fileBackend) Load(slot string) (json.RawMessage, error) {
	return b.doc[slot], nil
}

func (b *fileBackend) Save(slot string, value json.RawMessage) error {
	b.doc[slot] = value

	data, err := json.MarshalIndent(b.doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return err
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, b.path)
}

func (b *fileBackend) Name() string { return "file" }

func (b *fileBackend) Close() error { return nil }
