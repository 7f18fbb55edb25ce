package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileBackendRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := Open("", dir)

	if err := s.Set(SlotLastFolder, "/media/films"); err != nil {
		t.Fatalf("set: %v", err)
	}

	var folder string
	if !s.Get(SlotLastFolder, &folder) || folder != "/media/films" {
		t.Fatalf("read-your-writes failed: %q", folder)
	}

	// A fresh store over the same directory must see the persisted value.
	s2 := Open("", dir)
	folder = ""
	if !s2.Get(SlotLastFolder, &folder) || folder != "/media/films" {
		t.Fatalf("persistence failed: %q", folder)
	}
}

func TestMissingSlotLeavesDefault(t *testing.T) {
	s := Open("", t.TempDir())

	folder := "unchanged"
	if s.Get(SlotLastFolder, &folder) {
		t.Fatal("missing slot reported present")
	}
	if folder != "unchanged" {
		t.Fatalf("missing slot mutated dst: %q", folder)
	}
}

func TestCorruptDocumentStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "store.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open("", dir)
	var folder string
	if s.Get(SlotLastFolder, &folder) {
		t.Fatal("corrupt document should read as empty")
	}
	if err := s.Set(SlotLastFolder, "/x"); err != nil {
		t.Fatalf("write after corruption: %v", err)
	}
}

type failingBackend struct{}

func (failingBackend) Load(string) (json.RawMessage, error) { return nil, nil }
func (failingBackend) Save(string, json.RawMessage) error   { return errors.New("disk full") }
func (failingBackend) Name() string                         { return "failing" }
func (failingBackend) Close() error                         { return nil }

func TestWriteFailureStillReadable(t *testing.T) {
	s := NewWithBackend(failingBackend{})

	if err := s.Set(SlotLastFolder, "/media"); err == nil {
		t.Fatal("expected a failure indicator from Set")
	}
	var folder string
	if !s.Get(SlotLastFolder, &folder) || folder != "/media" {
		t.Fatalf("in-process read after failed persist: %q", folder)
	}
}
