package categories

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/JustinTDCT/MediaShelf/internal/store"
)

type ItemKind string

const (
	KindVideo  ItemKind = "video"
	KindFolder ItemKind = "folder"
)

// Item is one category member. A member may dangle: the path it names can
// disappear from disk and stays in the category until removed.
type Item struct {
	Kind ItemKind `json:"kind"`
	Path string   `json:"path"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Service mutates the categories slot as a whole document. Concurrent writers
// from other processes are last-write-wins at slot granularity; within this
// process the store serializes the read-modify-write cycles below.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) load() []Category {
	var cats []Category
	s.store.Get(store.SlotCategories, &cats)
	return cats
}

func (s *Service) List() []Category {
	cats := s.load()
	if cats == nil {
		cats = []Category{}
	}
	return cats
}

func (s *Service) Create(name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, fmt.Errorf("category name is empty")
	}
	cat := Category{ID: uuid.NewString(), Name: name, Items: []Item{}}
	cats := append(s.load(), cat)
	if err := s.store.Set(store.SlotCategories, cats); err != nil {
		return Category{}, err
	}
	return cat, nil
}

// Rename reports false when no category has the id.
func (s *Service) Rename(id, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	cats := s.load()
	for i := range cats {
		if cats[i].ID == id {
			cats[i].Name = name
			return s.store.Set(store.SlotCategories, cats) == nil
		}
	}
	return false
}

func (s *Service) Delete(id string) bool {
	cats := s.load()
	for i := range cats {
		if cats[i].ID == id {
			cats = append(cats[:i], cats[i+1:]...)
			return s.store.Set(store.SlotCategories, cats) == nil
		}
	}
	return false
}

// AddItems appends the members not already present, de-duplicated by the
// (kind, path) pair. Duplicates inside items itself collapse too.
func (s *Service) AddItems(id string, items []Item) bool {
	cats := s.load()
	for i := range cats {
		if cats[i].ID != id {
			continue
		}
		seen := make(map[Item]bool, len(cats[i].Items))
		for _, it := range cats[i].Items {
			seen[it] = true
		}
		for _, it := range items {
			if seen[it] {
				continue
			}
			seen[it] = true
			cats[i].Items = append(cats[i].Items, it)
		}
		return s.store.Set(store.SlotCategories, cats) == nil
	}
	return false
}

// RemoveItem removes the exact (kind, path) member; removing an absent member
// is a no-op that still reports success.
func (s *Service) RemoveItem(id string, item Item) bool {
	cats := s.load()
	for i := range cats {
		if cats[i].ID != id {
			continue
		}
		for j, it := range cats[i].Items {
			if it == item {
				cats[i].Items = append(cats[i].Items[:j], cats[i].Items[j+1:]...)
				break
			}
		}
		return s.store.Set(store.SlotCategories, cats) == nil
	}
	return false
}

// Get returns the category by id, if present.
func (s *Service) Get(id string) (Category, bool) {
	for _, c := range s.load() {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
