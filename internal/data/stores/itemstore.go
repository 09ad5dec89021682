// Package stores implements JSON-document persistence for action items and
// growth metrics. Documents are pretty-printed UTF-8 JSON so they stay
// readable and diffable outside the tool.
package stores

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/colonyops/ait/internal/core/item"
)

// Document is the root JSON structure stored on disk.
//
// Stats always equals the summary recomputed from Items: Save recomputes it
// on every write, never incrementally.
type Document struct {
	Items []item.Item  `json:"items"`
	Stats item.Summary `json:"stats"`
}

// ItemStore persists the action item document at a single file path.
//
// The mutex serializes load-modify-save cycles within this process. Two
// separate processes can still race a full cycle against each other; the
// tracker assumes a single active writer at a time.
type ItemStore struct {
	path string
	mu   sync.RWMutex
}

// NewItemStore creates an item store backed by the given file path.
func NewItemStore(path string) *ItemStore {
	return &ItemStore{path: path}
}

// Path returns the file path backing the store.
func (s *ItemStore) Path() string { return s.path }

// Load returns the persisted document, or a freshly initialized empty
// document when none exists. Decode failures wrap ErrCorrupt.
func (s *ItemStore) Load() (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load()
}

// Save recomputes stats from items and writes the whole document. The write
// goes through a temp file and rename so readers never observe a partial
// document.
func (s *ItemStore) Save(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(doc)
}

// Append loads the document, appends the item, and saves.
func (s *ItemStore) Append(it item.Item) error {
	return s.Mutate(func(doc *Document) error {
		doc.Items = append(doc.Items, it)
		return nil
	})
}

// Mutate runs fn over the loaded document and saves the result, holding the
// store lock across the whole cycle. If fn returns an error the document is
// not written.
func (s *ItemStore) Mutate(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	if err := fn(&doc); err != nil {
		return err
	}

	return s.save(doc)
}

// load reads the document from disk. Missing or empty files yield an empty
// initialized document.
func (s *ItemStore) load() (Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return emptyDocument(), nil
		}
		return Document{}, fmt.Errorf("read action items: %w", err)
	}

	if len(data) == 0 {
		return emptyDocument(), nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode %s: %w: %w", s.path, ErrCorrupt, err)
	}

	if doc.Items == nil {
		doc.Items = []item.Item{}
	}

	return doc, nil
}

// save recomputes stats and writes the document atomically.
func (s *ItemStore) save(doc Document) error {
	doc.Stats = item.Summarize(doc.Items)
	if doc.Items == nil {
		doc.Items = []item.Item{}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create tracker dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode action items: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write action items: %w", err)
	}

	return os.Rename(tmp, s.path)
}

func emptyDocument() Document {
	return Document{
		Items: []item.Item{},
		Stats: item.Summarize(nil),
	}
}
